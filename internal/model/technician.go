package model

// Technician is one row of the "Technician List" reference sheet.
type Technician struct {
	ID   uint   `json:"id,omitempty" gorm:"primaryKey"`
	Name string `json:"name" gorm:"type:varchar(255);uniqueIndex"`
}

package model

// Project is one row of the "Project List" reference sheet. The (Owner, Name)
// pair is unique; quotas are the planned totals per unit category.
type Project struct {
	ID      uint   `json:"id,omitempty" gorm:"primaryKey"`
	Owner   string `json:"owner" gorm:"type:varchar(255);uniqueIndex:idx_project_owner_name"`
	Name    string `json:"name" gorm:"type:varchar(255);uniqueIndex:idx_project_owner_name"`
	Emirate string `json:"emirate" gorm:"type:varchar(100)"`

	IndoorQty int `json:"indoor_qty"`
	VRFQty    int `json:"vrf_qty"`
	DXQty     int `json:"dx_qty"`
	AHUQty    int `json:"ahu_qty"`
}

// Quotas returns the planned totals as a UnitCounts value.
func (p Project) Quotas() UnitCounts {
	return UnitCounts{
		Indoor: p.IndoorQty,
		VRF:    p.VRFQty,
		DX:     p.DXQty,
		AHU:    p.AHUQty,
	}
}

// UnitCounts groups the four unit categories tracked per project.
type UnitCounts struct {
	Indoor int `json:"indoor"`
	VRF    int `json:"vrf"`
	DX     int `json:"dx"`
	AHU    int `json:"ahu"`
}

package model

import (
	"strings"
	"time"
)

// Role values for the phone registry.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User is one entry of the phone registry. Unknown phone numbers are
// auto-registered with RoleUser on first login; roles are only ever changed by
// editing the registry out of band.
type User struct {
	ID        uint      `json:"id,omitempty" gorm:"primaryKey"`
	Phone     string    `json:"phone" gorm:"type:varchar(32);uniqueIndex"`
	Name      string    `json:"name" gorm:"type:varchar(255)"`
	Role      string    `json:"role" gorm:"type:varchar(16)"`
	CreatedAt time.Time `json:"created_at,omitempty"`
}

// IsAdmin reports whether the user holds the admin role. The comparison is
// case-insensitive to tolerate hand-edited registry files.
func (u User) IsAdmin() bool {
	return strings.EqualFold(u.Role, RoleAdmin)
}

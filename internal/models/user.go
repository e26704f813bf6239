package models

import (
	"time"

	"gorm.io/gorm"
)

type StaffRole string

const (
	RoleManager     StaffRole = "manager"
	RoleChef        StaffRole = "chef"
	RoleDutyManager StaffRole = "duty_manager"
	RoleExecutive   StaffRole = "executive"
)

// ValidRole reports whether r is one of the known staff roles.
func ValidRole(r StaffRole) bool {
	switch r {
	case RoleManager, RoleChef, RoleDutyManager, RoleExecutive:
		return true
	}
	return false
}

// WorkingRoles are the roles that own scheduled tasks. The executive role
// only reads dashboards and never appears in a completion denominator.
func WorkingRoles() []StaffRole {
	return []StaffRole{RoleManager, RoleChef, RoleDutyManager}
}

// AllRoles returns every known staff role.
func AllRoles() []StaffRole {
	return []StaffRole{RoleManager, RoleChef, RoleDutyManager, RoleExecutive}
}

type User struct {
	ID           uint64         `gorm:"primarykey" json:"id"`
	Username     string         `gorm:"type:varchar(50);uniqueIndex;not null" json:"username"`
	PasswordHash string         `gorm:"type:varchar(255);not null" json:"-"`
	Role         StaffRole      `gorm:"type:varchar(20);not null" json:"role"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Submissions []TaskSubmission `gorm:"foreignKey:SubmittedByID" json:"-"`
}

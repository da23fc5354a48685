package model

import (
	"time"

	"gorm.io/gorm"
)

// UserRole is the authorization role stored on users.role
type UserRole string

const (
	RoleUser         UserRole = "user"
	RoleAdmin        UserRole = "admin"
	RoleCompanyAdmin UserRole = "company_admin"
)

// Valid reports whether r is one of the known roles
func (r UserRole) Valid() bool {
	switch r {
	case RoleUser, RoleAdmin, RoleCompanyAdmin:
		return true
	}
	return false
}

// User represents an account row. Soft-deleted rows are hidden by gorm.
type User struct {
	ID              int64          `gorm:"primaryKey;autoIncrement" json:"id"`
	Name            string         `gorm:"size:255;not null" json:"name"`
	Email           string         `gorm:"size:255;not null;uniqueIndex" json:"email"`
	PasswordHash    string         `gorm:"column:password_hash;not null" json:"-"`
	Role            UserRole       `gorm:"size:20;not null;default:'user'" json:"role"`
	CompanyID       *int64         `gorm:"index" json:"company_id,omitempty"`
	MustSetPassword bool           `gorm:"not null;default:false" json:"must_set_password"`
	LastLogin       *time.Time     `json:"last_login,omitempty"`
	LastLogout      *time.Time     `json:"last_logout,omitempty"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for GORM
func (User) TableName() string {
	return "users"
}

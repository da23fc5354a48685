package model

import "time"

// Company is a customer organisation. Uniqueness of (email, cnpj) is checked before insert.
type Company struct {
	ID             int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Name           string    `gorm:"size:255;not null" json:"name"`
	Email          string    `gorm:"size:255;index" json:"email"`
	CNPJ           string    `gorm:"column:cnpj;size:32;index" json:"cnpj"`
	Phone          string    `gorm:"size:32" json:"phone"`
	PlanContracted string    `gorm:"size:100" json:"plan_contracted"`
	EmployeeCount  *int      `json:"employee_count,omitempty"`
	RazaoSocial    string    `gorm:"size:255" json:"razao_social"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// TableName specifies the table name for GORM
func (Company) TableName() string {
	return "companies"
}

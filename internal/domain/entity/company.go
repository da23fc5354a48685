package entity

import (
	"time"

	"github.com/fpcgarcias/site-ticketwise-sub000/internal/domain/model"
)

type Company struct {
	ID             int64     `json:"id"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	CNPJ           string    `json:"cnpj"`
	Phone          string    `json:"phone"`
	PlanContracted string    `json:"plan_contracted"`
	EmployeeCount  *int      `json:"employee_count,omitempty"`
	RazaoSocial    string    `json:"razao_social"`
	CreatedAt      time.Time `json:"created_at"`
}

func NewCompany(m *model.Company) *Company {
	if m == nil {
		return nil
	}
	return &Company{
		ID:             m.ID,
		Name:           m.Name,
		Email:          m.Email,
		CNPJ:           m.CNPJ,
		Phone:          m.Phone,
		PlanContracted: m.PlanContracted,
		EmployeeCount:  m.EmployeeCount,
		RazaoSocial:    m.RazaoSocial,
		CreatedAt:      m.CreatedAt,
	}
}

// CompanyInput is the registration payload shared by company register,
// pre-checkout register, checkout metadata and process-session.
type CompanyInput struct {
	Name          string `json:"name" validate:"required,max=255"`
	Email         string `json:"email" validate:"omitempty,email"`
	CNPJ          string `json:"cnpj" validate:"omitempty,max=32"`
	Phone         string `json:"phone" validate:"omitempty,max=32"`
	EmployeeCount *int   `json:"employee_count" validate:"omitempty,min=0"`
	RazaoSocial   string `json:"razao_social" validate:"omitempty,max=255"`
	Plan          string `json:"plan" validate:"omitempty,max=100"`
}

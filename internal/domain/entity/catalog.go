package entity

// Plan is one entry of configs/plans.yaml
type Plan struct {
	Slug         string `yaml:"slug" json:"slug"`
	Name         string `yaml:"name" json:"name"`
	PriceID      string `yaml:"price_id" json:"price_id"`
	Interval     string `yaml:"interval" json:"interval"`
	EmployeesMax int    `yaml:"employees_max" json:"employees_max,omitempty"`
}

type Product struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	Description string            `json:"description"`
	Images      []string          `json:"images,omitempty"`
	Metadata    map[string]string `json:"metadata,omitempty"`
}

type Price struct {
	ID            string `json:"id"`
	ProductID     string `json:"product_id"`
	ProductName   string `json:"product_name"`
	PlanSlug      string `json:"plan_slug,omitempty"`
	UnitAmount    int64  `json:"unit_amount"`
	Amount        string `json:"amount"`
	Currency      string `json:"currency"`
	Interval      string `json:"interval,omitempty"`
	IntervalCount int64  `json:"interval_count,omitempty"`
	Nickname      string `json:"nickname,omitempty"`
}

// CheckoutRequest starts a subscription checkout
type CheckoutRequest struct {
	PriceID    string        `json:"price_id" validate:"required"`
	Name       string        `json:"name" validate:"omitempty,max=255"`
	Email      string        `json:"email" validate:"omitempty,email"`
	UserID     *int64        `json:"-"`
	Company    *CompanyInput `json:"company" validate:"omitempty"`
	SuccessURL string        `json:"success_url" validate:"omitempty,url"`
	CancelURL  string        `json:"cancel_url" validate:"omitempty,url"`
}

type CheckoutSession struct {
	SessionID string `json:"session_id"`
	URL       string `json:"url"`
}

package entity

type RegisterRequest struct {
	Name      string `json:"name" validate:"required,max=255"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=8,max=72"`
	Role      string `json:"role" validate:"omitempty,oneof=user admin company_admin"`
	CompanyID *int64 `json:"company_id" validate:"omitempty,gt=0"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=8,max=72"`
}

type CheckUserRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// PreCheckoutRegisterRequest creates the account and company before payment
type PreCheckoutRegisterRequest struct {
	Name     string        `json:"name" validate:"required,max=255"`
	Email    string        `json:"email" validate:"required,email"`
	Password string        `json:"password" validate:"required,min=8,max=72"`
	Company  *CompanyInput `json:"company" validate:"required"`
}

// ClaimRequest sets the first password of a checkout-provisioned account
type ClaimRequest struct {
	Token    string `json:"token" validate:"required"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

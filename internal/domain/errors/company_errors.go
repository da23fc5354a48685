package errors

import "errors"

var (
	// ErrCompanyAlreadyExists indicates a company with the same email or CNPJ exists
	ErrCompanyAlreadyExists = errors.New("company already exists")

	// ErrUserAlreadyHasCompany guards users.company_id from being overwritten
	ErrUserAlreadyHasCompany = errors.New("user already belongs to a company")

	ErrCompanyNotFound = errors.New("company not found")

	ErrCompanyAccessDenied = errors.New("not a member of this company")
)

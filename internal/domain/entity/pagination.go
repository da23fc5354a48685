package entity

// PaginationParams represents pagination request parameters
type PaginationParams struct {
	Page  int `json:"page" query:"page"`
	Limit int `json:"limit" query:"limit"`
}

// Normalize clamps page and limit into the accepted range
func (p PaginationParams) Normalize() PaginationParams {
	if p.Page < MinPage {
		p.Page = DefaultPage
	}
	switch {
	case p.Limit < MinPageSize:
		p.Limit = DefaultPageSize
	case p.Limit > MaxPageSize:
		p.Limit = MaxPageSize
	}
	return p
}

// Offset returns the row offset for the page
func (p PaginationParams) Offset() int {
	return (p.Page - 1) * p.Limit
}

// PaginationMeta represents pagination metadata in responses
type PaginationMeta struct {
	CurrentPage int   `json:"current_page"`
	PerPage     int   `json:"per_page"`
	Total       int64 `json:"total"`
	TotalPages  int   `json:"total_pages"`
}

// NewPaginationMeta builds the metadata block for a page of results
func NewPaginationMeta(p PaginationParams, total int64) PaginationMeta {
	pages := int((total + int64(p.Limit) - 1) / int64(p.Limit))
	return PaginationMeta{
		CurrentPage: p.Page,
		PerPage:     p.Limit,
		Total:       total,
		TotalPages:  pages,
	}
}

// PaginatedCompanies represents a page of companies
type PaginatedCompanies struct {
	Data       []*Company     `json:"data"`
	Pagination PaginationMeta `json:"pagination"`
}

// Pagination constants
const (
	DefaultPageSize = 20
	MaxPageSize     = 100
	MinPageSize     = 1
	DefaultPage     = 1
	MinPage         = 1
)

package usecase

import (
	"strconv"
	"strings"

	"github.com/fpcgarcias/site-ticketwise-sub000/internal/domain/entity"
)

// Keys written into checkout session metadata and read back on completion
const (
	metaUserID         = "user_id"
	metaPlan           = "plan"
	metaCompanyName    = "company_name"
	metaCompanyEmail   = "company_email"
	metaCompanyCNPJ    = "company_cnpj"
	metaCompanyPhone   = "company_phone"
	metaCompanyStaff   = "company_employee_count"
	metaCompanyRazao   = "company_razao_social"
	metaRegistrantName = "registrant_name"
)

func encodeCheckoutMetadata(userID *int64, name string, company *entity.CompanyInput, plan *entity.Plan) map[string]string {
	md := map[string]string{}
	if userID != nil {
		md[metaUserID] = strconv.FormatInt(*userID, 10)
	}
	if name != "" {
		md[metaRegistrantName] = name
	}
	if plan != nil {
		md[metaPlan] = plan.Slug
	}
	if company != nil {
		set := func(k, v string) {
			if v = strings.TrimSpace(v); v != "" {
				md[k] = v
			}
		}
		set(metaCompanyName, company.Name)
		set(metaCompanyEmail, company.Email)
		set(metaCompanyCNPJ, company.CNPJ)
		set(metaCompanyPhone, company.Phone)
		set(metaCompanyRazao, company.RazaoSocial)
		if company.EmployeeCount != nil {
			md[metaCompanyStaff] = strconv.Itoa(*company.EmployeeCount)
		}
		if company.Plan != "" && plan == nil {
			md[metaPlan] = company.Plan
		}
	}
	return md
}

// userIDHint reads metadata.user_id, then client_reference_id
func userIDHint(md map[string]string, clientReferenceID string) *int64 {
	for _, raw := range []string{md[metaUserID], clientReferenceID} {
		if id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64); err == nil && id > 0 {
			return &id
		}
	}
	return nil
}

// companyFromMetadata returns nil when the checkout carried no company
func companyFromMetadata(md map[string]string) *entity.CompanyInput {
	name := strings.TrimSpace(md[metaCompanyName])
	if name == "" {
		return nil
	}
	in := &entity.CompanyInput{
		Name:        name,
		Email:       md[metaCompanyEmail],
		CNPJ:        md[metaCompanyCNPJ],
		Phone:       md[metaCompanyPhone],
		RazaoSocial: md[metaCompanyRazao],
		Plan:        md[metaPlan],
	}
	if n, err := strconv.Atoi(md[metaCompanyStaff]); err == nil && n >= 0 {
		in.EmployeeCount = &n
	}
	return in
}

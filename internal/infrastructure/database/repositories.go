package database

import (
	"github.com/fpcgarcias/site-ticketwise-sub000/internal/adapter/repository"
	domainRepo "github.com/fpcgarcias/site-ticketwise-sub000/internal/domain/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Repositories holds all repository instances
type Repositories struct {
	User         domainRepo.UserRepository
	Company      domainRepo.CompanyRepository
	Customer     domainRepo.StripeCustomerRepository
	Subscription domainRepo.StripeSubscriptionRepository
	Order        domainRepo.StripeOrderRepository
	WebhookEvent domainRepo.WebhookEventRepository
}

// NewRepositories creates new repository instances with database connection
func NewRepositories(db *gorm.DB, logger *zap.Logger) *Repositories {
	return &Repositories{
		User:         repository.NewUserRepository(db, logger),
		Company:      repository.NewCompanyRepository(db, logger),
		Customer:     repository.NewStripeCustomerRepository(db, logger),
		Subscription: repository.NewStripeSubscriptionRepository(db, logger),
		Order:        repository.NewStripeOrderRepository(db, logger),
		WebhookEvent: repository.NewWebhookRepository(db, logger),
	}
}

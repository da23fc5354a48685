package http

import (
	handlers "github.com/fpcgarcias/site-ticketwise-sub000/internal/adapter/handler/http"
	"github.com/fpcgarcias/site-ticketwise-sub000/internal/domain/model"
	"github.com/fpcgarcias/site-ticketwise-sub000/internal/middleware/auth"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
)

// Handlers groups the HTTP handlers mounted by the server
type Handlers struct {
	Auth         *handlers.AuthHandler
	Company      *handlers.CompanyHandler
	Contact      *handlers.ContactHandler
	Product      *handlers.ProductHandler
	Webhook      *handlers.WebhookHandler
	Subscription *handlers.SubscriptionHandler
}

func newRequestValidator() echo.Validator {
	return handlers.NewRequestValidator()
}

func (s *Server) setupRoutes() {
	s.echo.GET("/health", s.health)
	s.echo.GET("/metrics", echoprometheus.NewHandler())

	requireAuth := auth.JWTMiddleware(s.jwt)
	optionalAuth := auth.OptionalAuth(s.jwt)

	api := s.echo.Group("/api")

	authGroup := api.Group("/auth")
	authGroup.POST("/register", s.handlers.Auth.Register)
	authGroup.POST("/login", s.handlers.Auth.Login)
	authGroup.POST("/refresh", s.handlers.Auth.Refresh)
	authGroup.POST("/check-user", s.handlers.Auth.CheckUser)
	authGroup.POST("/pre-checkout-register", s.handlers.Auth.PreCheckoutRegister)
	authGroup.POST("/claim", s.handlers.Auth.Claim)
	authGroup.POST("/logout", s.handlers.Auth.Logout, requireAuth)
	authGroup.GET("/me", s.handlers.Auth.Me, requireAuth)
	authGroup.POST("/change-password", s.handlers.Auth.ChangePassword, requireAuth)

	company := api.Group("/company", requireAuth)
	company.POST("/register", s.handlers.Company.Register)
	company.GET("/list", s.handlers.Company.List, auth.RequireRole(model.RoleAdmin))
	company.GET("/:id", s.handlers.Company.Get)

	contact := api.Group("/contact")
	contact.POST("/send", s.handlers.Contact.Send)
	contact.POST("/newsletter", s.handlers.Contact.Newsletter)

	// the webhook route carries no auth; its signature is verified instead
	stripeGroup := api.Group("/stripe")
	stripeGroup.GET("/products", s.handlers.Product.GetProducts)
	stripeGroup.GET("/prices", s.handlers.Product.GetPrices)
	stripeGroup.POST("/checkout", s.handlers.Product.CreateCheckout, optionalAuth)
	stripeGroup.POST("/webhook", s.handlers.Webhook.HandleWebhook)
	stripeGroup.POST("/process-session", s.handlers.Webhook.ProcessSession)

	subscription := api.Group("/subscription", requireAuth)
	subscription.GET("", s.handlers.Subscription.GetCurrentSubscription)
	subscription.POST("/cancel", s.handlers.Subscription.CancelSubscription)
	subscription.POST("/reactivate", s.handlers.Subscription.ReactivateSubscription)
	subscription.POST("/update-payment-method", s.handlers.Subscription.UpdatePaymentMethod)
	subscription.POST("/change-plan", s.handlers.Subscription.ChangePlan)
	subscription.POST("/setup-intent", s.handlers.Subscription.CreateSetupIntent)
}

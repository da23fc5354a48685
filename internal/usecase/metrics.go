package usecase

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	webhookEventsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "billing_webhook_events_total",
			Help: "Stripe webhook events by type and outcome",
		},
		[]string{"type", "outcome"},
	)

	provisionedAccountsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "billing_provisioned_accounts_total",
			Help: "Users and companies created from paid checkouts",
		},
		[]string{"kind"},
	)
)

// webhook outcomes
const (
	outcomeRejected  = "rejected"
	outcomeDuplicate = "duplicate"
	outcomeProcessed = "processed"
	outcomeFailed    = "failed"
	outcomeRetried   = "retried"
)

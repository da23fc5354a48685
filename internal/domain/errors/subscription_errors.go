package errors

import "errors"

var (
	// ErrNoCustomerMapping indicates that the user has no associated Stripe customer
	ErrNoCustomerMapping = errors.New("no customer mapping found for user")

	// ErrNoActiveSubscription indicates that the user has no active subscription
	ErrNoActiveSubscription = errors.New("no active subscription found")

	// ErrSubscriptionNotFound indicates that the specified subscription was not found
	ErrSubscriptionNotFound = errors.New("subscription not found")

	// ErrSubscriptionNotOwned indicates the subscription is not linked to the caller
	ErrSubscriptionNotOwned = errors.New("subscription does not belong to user")

	// ErrNotScheduledForCancellation is returned by reactivate when cancel_at_period_end is false
	ErrNotScheduledForCancellation = errors.New("subscription is not scheduled for cancellation")

	// ErrAlreadyScheduledForCancellation is returned by cancel when the flag is already set
	ErrAlreadyScheduledForCancellation = errors.New("subscription is already scheduled for cancellation")

	// ErrUnknownPrice indicates a price id that is not part of the plan catalog
	ErrUnknownPrice = errors.New("unknown price")

	// ErrSamePrice indicates a plan change to the price already in use
	ErrSamePrice = errors.New("subscription already uses this price")

	// ErrBillingDisabled indicates Stripe is not configured
	ErrBillingDisabled = errors.New("billing is not configured")
)

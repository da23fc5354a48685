package usecase

import (
	"errors"
	"net/http"

	domainErrors "github.com/fpcgarcias/site-ticketwise-sub000/internal/domain/errors"
	apperrors "github.com/fpcgarcias/site-ticketwise-sub000/pkg/errors"
	"github.com/stripe/stripe-go/v79"
)

// domainErrorCodes maps sentinel errors to the API error taxonomy
var domainErrorCodes = []struct {
	err  error
	code string
}{
	{domainErrors.ErrEmailAlreadyExists, apperrors.ErrConflict},
	{domainErrors.ErrEmailOfDeletedUser, apperrors.ErrConflict},
	{domainErrors.ErrCompanyAlreadyExists, apperrors.ErrConflict},
	{domainErrors.ErrUserAlreadyHasCompany, apperrors.ErrConflict},
	{domainErrors.ErrAccountAlreadyClaimed, apperrors.ErrConflict},
	{domainErrors.ErrInvalidCredentials, apperrors.ErrUnauthenticated},
	{domainErrors.ErrInvalidToken, apperrors.ErrUnauthenticated},
	{domainErrors.ErrUserNotFound, apperrors.ErrNotFound},
	{domainErrors.ErrCompanyNotFound, apperrors.ErrNotFound},
	{domainErrors.ErrSubscriptionNotFound, apperrors.ErrNotFound},
	{domainErrors.ErrNoActiveSubscription, apperrors.ErrNotFound},
	{domainErrors.ErrNoCustomerMapping, apperrors.ErrNotFound},
	{domainErrors.ErrSubscriptionNotOwned, apperrors.ErrUnauthorized},
	{domainErrors.ErrCompanyAccessDenied, apperrors.ErrUnauthorized},
	{domainErrors.ErrPasswordTooShort, apperrors.ErrInvalidArgument},
	{domainErrors.ErrWrongPassword, apperrors.ErrInvalidArgument},
	{domainErrors.ErrRoleNotAllowed, apperrors.ErrUnauthorized},
	{domainErrors.ErrNotScheduledForCancellation, apperrors.ErrInvalidArgument},
	{domainErrors.ErrAlreadyScheduledForCancellation, apperrors.ErrInvalidArgument},
	{domainErrors.ErrUnknownPrice, apperrors.ErrInvalidArgument},
	{domainErrors.ErrSamePrice, apperrors.ErrInvalidArgument},
	{domainErrors.ErrBillingDisabled, apperrors.ErrNotImplemented},
	{domainErrors.ErrMailDisabled, apperrors.ErrNotImplemented},
}

// appError converts a domain sentinel into an AppError, keeping its message.
// Unknown errors become INTERNAL with the given message.
func appError(err error, internalMsg string) error {
	if err == nil {
		return nil
	}

	var existing *apperrors.AppError
	if errors.As(err, &existing) {
		return err
	}

	for _, m := range domainErrorCodes {
		if errors.Is(err, m.err) {
			return apperrors.NewAppError(m.code, m.err.Error(), err)
		}
	}
	return apperrors.Internal(internalMsg, err)
}

// vendorError surfaces the Stripe message to the client
func vendorError(err error) error {
	if err == nil {
		return nil
	}
	var stripeErr *stripe.Error
	if errors.As(err, &stripeErr) {
		if stripeErr.HTTPStatusCode == http.StatusNotFound {
			return apperrors.NewAppError(apperrors.ErrNotFound, stripeErr.Msg, err)
		}
		if stripeErr.Msg != "" {
			return apperrors.Upstream(stripeErr.Msg, err)
		}
	}
	return apperrors.Upstream("billing provider request failed", err)
}

package errors

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func TestPublicError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{
			name:       "conflict keeps message",
			err:        Conflict("email already registered", fmt.Errorf("duplicate")),
			wantStatus: http.StatusConflict,
			wantMsg:    "email already registered",
		},
		{
			name:       "internal hides details",
			err:        Internal("failed to query users", fmt.Errorf("connection refused")),
			wantStatus: http.StatusInternalServerError,
			wantMsg:    internalMessage,
		},
		{
			name:       "upstream surfaces vendor message as 500",
			err:        Upstream("No such price: 'price_x'", fmt.Errorf("stripe")),
			wantStatus: http.StatusInternalServerError,
			wantMsg:    "No such price: 'price_x'",
		},
		{
			name:       "wrapped app error keeps code",
			err:        fmt.Errorf("handler: %w", NotFound("company not found")),
			wantStatus: http.StatusNotFound,
			wantMsg:    "company not found",
		},
		{
			name:       "echo error",
			err:        echo.NewHTTPError(http.StatusBadRequest, "bad json"),
			wantStatus: http.StatusBadRequest,
			wantMsg:    "bad json",
		},
		{
			name:       "plain error",
			err:        fmt.Errorf("boom"),
			wantStatus: http.StatusInternalServerError,
			wantMsg:    internalMessage,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, msg := PublicError(tt.err)
			assert.Equal(t, tt.wantStatus, status)
			assert.Equal(t, tt.wantMsg, msg)
		})
	}
}

func TestWrapKeepsCode(t *testing.T) {
	err := Wrap(Forbidden("admin only"), "list companies")
	assert.Equal(t, ErrUnauthorized, CodeOf(err))
	assert.Equal(t, ErrInternal, CodeOf(fmt.Errorf("plain")))
	assert.Nil(t, Wrap(nil, "noop"))
}

func TestFromHTTPError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode string
		wantMsg  string
	}{
		{name: "echo bad request", err: echo.NewHTTPError(http.StatusBadRequest, "invalid body"), wantCode: ErrInvalidArgument, wantMsg: "invalid body"},
		{name: "echo body too large", err: echo.ErrStatusRequestEntityTooLarge, wantCode: ErrInvalidArgument, wantMsg: "Request Entity Too Large"},
		{name: "echo forbidden", err: echo.NewHTTPError(http.StatusForbidden, "nope"), wantCode: ErrUnauthorized, wantMsg: "nope"},
		{name: "app error kept", err: Conflict("email already registered", nil), wantCode: ErrConflict, wantMsg: "email already registered"},
		{name: "plain error", err: fmt.Errorf("boom"), wantCode: ErrInternal, wantMsg: "boom"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FromHTTPError(tt.err)
			assert.Equal(t, tt.wantCode, CodeOf(got))
			var appErr *AppError
			if assert.True(t, As(got, &appErr)) {
				assert.Equal(t, tt.wantMsg, appErr.Message())
			}
		})
	}

	assert.Nil(t, FromHTTPError(nil))
}

func TestToHTTPError(t *testing.T) {
	httpErr := ToHTTPError(Upstream("Your card was declined.", fmt.Errorf("stripe: card_declined")))
	assert.Equal(t, http.StatusInternalServerError, httpErr.Code)
	assert.Equal(t, "Your card was declined.", httpErr.Message)
	assert.ErrorContains(t, httpErr.Internal, "card_declined")

	httpErr = ToHTTPError(Internal("failed to save subscription", fmt.Errorf("pq: deadlock")))
	assert.Equal(t, http.StatusInternalServerError, httpErr.Code)
	assert.NotContains(t, httpErr.Message, "deadlock")
}

package errors

import "errors"

// ErrMailDisabled is returned when no SMTP server is configured
var ErrMailDisabled = errors.New("email delivery is not configured")

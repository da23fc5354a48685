package errors

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// 노출 불가 에러에 대한 기본 메시지
const internalMessage = "internal server error"

// ToHTTPStatus는 에러 코드를 HTTP 상태 코드로 변환합니다
func ToHTTPStatus(code string) int {
	httpStatus, _ := GetCodeMapping(code)
	return httpStatus
}

// PublicError는 클라이언트에 전달할 상태 코드와 메시지를 결정합니다.
// INTERNAL 에러는 상세 내용 대신 일반 메시지를 반환합니다.
func PublicError(err error) (int, string) {
	if err == nil {
		return http.StatusOK, ""
	}

	var appErr *AppError
	if As(err, &appErr) {
		status, expose := GetCodeMapping(appErr.Code())
		if !expose {
			return status, internalMessage
		}
		return status, appErr.Message()
	}

	// Echo 에러인 경우 상태 코드를 유지합니다
	var echoErr *echo.HTTPError
	if As(err, &echoErr) {
		if echoErr.Code >= http.StatusInternalServerError {
			return echoErr.Code, internalMessage
		}
		if m, ok := echoErr.Message.(string); ok {
			return echoErr.Code, m
		}
		return echoErr.Code, http.StatusText(echoErr.Code)
	}

	return http.StatusInternalServerError, internalMessage
}

// ToHTTPError는 에러를 Echo HTTP 에러로 변환합니다
func ToHTTPError(err error) *echo.HTTPError {
	if err == nil {
		return nil
	}

	status, msg := PublicError(err)
	return echo.NewHTTPError(status, msg).SetInternal(err)
}

// FromHTTPError는 Echo HTTP 에러를 내부 에러로 변환합니다
func FromHTTPError(err error) error {
	if err == nil {
		return nil
	}

	// 이미 AppError인 경우 그대로 반환
	var appErr *AppError
	if As(err, &appErr) {
		return err
	}

	// Echo 에러 처리
	if echoErr, ok := err.(*echo.HTTPError); ok {
		code := httpStatusToCode(echoErr.Code)
		var msg string
		if m, ok := echoErr.Message.(string); ok {
			msg = m
		} else {
			msg = "HTTP error"
		}
		return NewAppError(code, msg, nil)
	}

	// 기본 에러는 Internal로 처리
	return NewAppError(ErrInternal, err.Error(), err)
}

// httpStatusToCode는 HTTP 상태 코드를 내부 에러 코드로 변환합니다
func httpStatusToCode(status int) string {
	switch status {
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusBadRequest, http.StatusRequestEntityTooLarge, http.StatusUnsupportedMediaType:
		return ErrInvalidArgument
	case http.StatusUnauthorized:
		return ErrUnauthenticated
	case http.StatusForbidden:
		return ErrUnauthorized
	case http.StatusConflict:
		return ErrConflict
	case http.StatusGatewayTimeout:
		return ErrTimeout
	case http.StatusNotImplemented:
		return ErrNotImplemented
	case http.StatusBadGateway:
		return ErrUpstream
	default:
		return ErrInternal
	}
}

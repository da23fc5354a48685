package errors

// codeInfo는 에러 코드별 HTTP 상태와 메시지 노출 정책입니다
type codeInfo struct {
	HTTPStatus int
	// Expose가 false이면 클라이언트에는 일반 메시지만 전달됩니다
	Expose bool
}

// 코드 매핑 테이블
var codeMapping = map[string]codeInfo{
	ErrInternal:        {500, false},
	ErrNotFound:        {404, true},
	ErrInvalidArgument: {400, true},
	ErrUnauthenticated: {401, true},
	ErrUnauthorized:    {403, true},
	ErrConflict:        {409, true},
	ErrTimeout:         {504, true},
	ErrNotImplemented:  {501, true},
	// 벤더 에러는 500으로 응답하되 벤더 메시지를 그대로 전달합니다
	ErrUpstream: {500, true},
}

// GetCodeMapping은 특정 에러 코드에 대한 HTTP 상태 코드와 노출 여부를 반환합니다
func GetCodeMapping(code string) (int, bool) {
	if info, ok := codeMapping[code]; ok {
		return info.HTTPStatus, info.Expose
	}
	return 500, false
}

// CodeOf는 에러 체인에서 AppError 코드를 찾아 반환합니다. 없으면 INTERNAL입니다
func CodeOf(err error) string {
	var appErr *AppError
	if As(err, &appErr) {
		return appErr.Code()
	}
	return ErrInternal
}

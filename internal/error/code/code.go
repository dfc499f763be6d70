package code

// HTTP 상태 코드.
const (
	// StatusOK - 200: 성공.
	StatusOK = 200
	// StatusBadRequest - 400: 요청 파라미터 오류.
	StatusBadRequest = 400
	// StatusUnauthorized - 401: 인증 실패.
	StatusUnauthorized = 401
	// StatusForbidden - 403: 접근 거부.
	StatusForbidden = 403
	// StatusNotFound - 404: 리소스 없음.
	StatusNotFound = 404
	// StatusInternalServerError - 500: 서버 내부 오류.
	StatusInternalServerError = 500
	// StatusNotImplemented - 501: 미구현.
	StatusNotImplemented = 501
	// StatusTooManyRequests - 429: 요청 과다.
	StatusTooManyRequests = 429
)

// 공통 에러 코드 (100xxx).
const (
	// ErrSuccess - 200: 성공.
	ErrSuccess int = iota + 100000
	// ErrUnknown - 500: 알 수 없는 오류.
	ErrUnknown
	// ErrBind - 400: 요청 파라미터 바인딩 오류.
	ErrBind
	// ErrValidation - 400: 요청 파라미터 검증 오류.
	ErrValidation
	// ErrTokenInvalid - 401: 토큰 무효.
	ErrTokenInvalid
	// ErrPermissionDenied - 403: 권한 없음.
	ErrPermissionDenied
	// ErrTooManyRequests - 429: 요청 빈도 초과.
	ErrTooManyRequests
)

// 사용자 관련 에러 코드 (101xxx).
const (
	// ErrUserNotFound - 404: 사용자 없음.
	ErrUserNotFound int = iota + 101000
	// ErrUserAlreadyExist - 400: 사용자 중복.
	ErrUserAlreadyExist
	// ErrUserPasswordIncorrect - 401: 비밀번호 불일치.
	ErrUserPasswordIncorrect
)

// 장비 관련 에러 코드 (102xxx).
const (
	// ErrDeviceNotFound - 404: 장비 없음.
	ErrDeviceNotFound int = iota + 102000
	// ErrAssetNumberExists - 400: 자산번호 중복.
	ErrAssetNumberExists
	// ErrDeviceDisposed - 400: 이미 폐기된 장비.
	ErrDeviceDisposed
	// ErrDeviceDeleteDisabled - 400: 장비 삭제 기능 비활성화.
	ErrDeviceDeleteDisabled
)

// 직원 관련 에러 코드 (103xxx).
const (
	// ErrEmployeeNotFound - 404: 직원 없음.
	ErrEmployeeNotFound int = iota + 103000
	// ErrEmployeeHasDevices - 400: 할당 장비가 있는 직원 삭제 불가.
	ErrEmployeeHasDevices
)

// QR 관련 에러 코드 (104xxx).
const (
	// ErrQRInvalidFormat - 400: QR 포맷 오류.
	ErrQRInvalidFormat int = iota + 104000
	// ErrQRDisposedDevice - 400: 폐기 장비 QR 발급 불가.
	ErrQRDisposedDevice
	// ErrQRBulkLimitExceeded - 400: 일괄 발급 한도 초과.
	ErrQRBulkLimitExceeded
	// ErrQRFormatNotImplemented - 501: 지원하지 않는 출력 포맷.
	ErrQRFormatNotImplemented
)

// 데이터베이스 관련 에러 코드 (105xxx).
const (
	// ErrDatabase - 500: 데이터베이스 오류.
	ErrDatabase int = iota + 105000
	// ErrRecordNotFound - 404: 기록 없음.
	ErrRecordNotFound
)

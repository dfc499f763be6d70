package code

// 에러 코드별 메시지 매핑
var codeMessageMap = map[int]string{
	// 공통
	ErrSuccess:          "성공",
	ErrUnknown:          "알 수 없는 오류가 발생했습니다",
	ErrBind:             "요청 파라미터 바인딩에 실패했습니다",
	ErrValidation:       "요청 파라미터 검증에 실패했습니다",
	ErrTokenInvalid:     "유효하지 않은 인증 토큰입니다",
	ErrPermissionDenied: "접근 권한이 없습니다",
	ErrTooManyRequests:  "요청이 너무 많습니다. 잠시 후 다시 시도해주세요",

	// 사용자
	ErrUserNotFound:          "사용자를 찾을 수 없습니다",
	ErrUserAlreadyExist:      "이미 존재하는 사용자입니다",
	ErrUserPasswordIncorrect: "이메일 또는 비밀번호가 올바르지 않습니다",

	// 장비
	ErrDeviceNotFound:       "장비를 찾을 수 없습니다",
	ErrAssetNumberExists:    "이미 존재하는 자산번호입니다",
	ErrDeviceDisposed:       "이미 폐기된 장비입니다",
	ErrDeviceDeleteDisabled: "장비 삭제 기능은 비활성화되었습니다. 폐기된 장비는 별도로 관리됩니다.",

	// 직원
	ErrEmployeeNotFound:   "직원을 찾을 수 없습니다",
	ErrEmployeeHasDevices: "할당된 장비가 있는 직원은 삭제할 수 없습니다. 먼저 장비를 재할당하거나 반납 처리해주세요.",

	// QR
	ErrQRInvalidFormat:        "유효하지 않은 QR 코드 형식입니다",
	ErrQRDisposedDevice:       "폐기된 장비는 QR 코드를 생성할 수 없습니다",
	ErrQRBulkLimitExceeded:    "일괄 요청당 최대 100개의 장비만 처리할 수 있습니다",
	ErrQRFormatNotImplemented: "아직 지원하지 않는 출력 포맷입니다",

	// 데이터베이스
	ErrDatabase:       "데이터베이스 오류가 발생했습니다",
	ErrRecordNotFound: "기록을 찾을 수 없습니다",
}

// 에러 코드별 HTTP 상태 코드 매핑
var codeStatusMap = map[int]int{
	// 공통
	ErrSuccess:          StatusOK,
	ErrUnknown:          StatusInternalServerError,
	ErrBind:             StatusBadRequest,
	ErrValidation:       StatusBadRequest,
	ErrTokenInvalid:     StatusUnauthorized,
	ErrPermissionDenied: StatusForbidden,
	ErrTooManyRequests:  StatusTooManyRequests,

	// 사용자
	ErrUserNotFound:          StatusNotFound,
	ErrUserAlreadyExist:      StatusBadRequest,
	ErrUserPasswordIncorrect: StatusUnauthorized,

	// 장비
	ErrDeviceNotFound:       StatusNotFound,
	ErrAssetNumberExists:    StatusBadRequest,
	ErrDeviceDisposed:       StatusBadRequest,
	ErrDeviceDeleteDisabled: StatusBadRequest,

	// 직원
	ErrEmployeeNotFound:   StatusNotFound,
	ErrEmployeeHasDevices: StatusBadRequest,

	// QR
	ErrQRInvalidFormat:        StatusBadRequest,
	ErrQRDisposedDevice:       StatusBadRequest,
	ErrQRBulkLimitExceeded:    StatusBadRequest,
	ErrQRFormatNotImplemented: StatusNotImplemented,

	// 데이터베이스
	ErrDatabase:       StatusInternalServerError,
	ErrRecordNotFound: StatusNotFound,
}

// GetMessage 에러 코드에 해당하는 메시지 반환
func GetMessage(errorCode int) string {
	if msg, ok := codeMessageMap[errorCode]; ok {
		return msg
	}
	return codeMessageMap[ErrUnknown]
}

// GetStatus 에러 코드에 해당하는 HTTP 상태 코드 반환
func GetStatus(errorCode int) int {
	if status, ok := codeStatusMap[errorCode]; ok {
		return status
	}
	return StatusInternalServerError
}

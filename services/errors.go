package services

import "errors"

// 서비스 계층 공통 에러. 컨트롤러는 errors.Is로 판별해 에러 코드로 변환한다.
var (
	ErrUserNotFound       = errors.New("사용자를 찾을 수 없습니다")
	ErrUserAlreadyExists  = errors.New("이미 존재하는 사용자입니다")
	ErrInvalidCredentials = errors.New("이메일 또는 비밀번호가 올바르지 않습니다")

	ErrEmployeeNotFound   = errors.New("직원을 찾을 수 없습니다")
	ErrEmployeeHasDevices = errors.New("할당된 장비가 있는 직원은 삭제할 수 없습니다")

	ErrDeviceNotFound    = errors.New("장비를 찾을 수 없습니다")
	ErrAssetNumberExists = errors.New("이미 존재하는 자산번호입니다")
	ErrDeviceDisposed    = errors.New("이미 폐기된 장비입니다")

	ErrExcelHeaderNoAsset = errors.New("자산번호 열을 찾을 수 없습니다")
)

package controllers

import (
	"encoding/json"
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"qrasset-http-service/config"
	"qrasset-http-service/internal/error/code"
	"qrasset-http-service/models"
	"qrasset-http-service/services"
	"qrasset-http-service/services/container"
)

// ErrorResponse swagger 문서용 에러 응답 구조
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// tenantWideScope 호출자가 리소스 타입 전체를 볼 수 있는지 판정한다.
// admin 역할 또는 타입 전체 admin 부여가 있으면 테넌트 경계를 넘는다.
// 목록 쿼리는 이 결과로 분기하며 조회 후 필터링은 하지 않는다.
func tenantWideScope(ctr *container.ServiceContainer, userID, role, resourceType string) bool {
	if role == string(models.UserRoleAdmin) {
		return true
	}
	permissionService := ctr.GetService("permission").(services.InterfacePermissionService)
	ok, err := permissionService.HasAdminGrant(userID, resourceType)
	if err != nil {
		config.Error("권한 조회 실패: %v", err)
		return false
	}
	return ok
}

// canDelete 삭제 권한 판정. 소유권만으로는 부족하며 명시적 부여가 필요하다.
func canDelete(ctr *container.ServiceContainer, userID, role, resourceType, resourceID string) bool {
	if role == string(models.UserRoleAdmin) {
		return true
	}
	permissionService := ctr.GetService("permission").(services.InterfacePermissionService)
	ok, err := permissionService.CheckPermission(userID, resourceType, &resourceID, models.PermissionActionDelete)
	if err != nil {
		config.Error("권한 조회 실패: %v", err)
		return false
	}
	return ok
}

// mapServiceError 서비스 에러를 응답 에러 코드로 변환
func mapServiceError(err error) int {
	switch {
	case errors.Is(err, services.ErrUserNotFound):
		return code.ErrUserNotFound
	case errors.Is(err, services.ErrUserAlreadyExists):
		return code.ErrUserAlreadyExist
	case errors.Is(err, services.ErrInvalidCredentials):
		return code.ErrUserPasswordIncorrect
	case errors.Is(err, services.ErrEmployeeNotFound):
		return code.ErrEmployeeNotFound
	case errors.Is(err, services.ErrEmployeeHasDevices):
		return code.ErrEmployeeHasDevices
	case errors.Is(err, services.ErrDeviceNotFound):
		return code.ErrDeviceNotFound
	case errors.Is(err, services.ErrAssetNumberExists):
		return code.ErrAssetNumberExists
	case errors.Is(err, services.ErrDeviceDisposed):
		return code.ErrDeviceDisposed
	case errors.Is(err, services.ErrExcelHeaderNoAsset):
		return code.ErrValidation
	default:
		return code.ErrDatabase
	}
}

// queryInt 쿼리 파라미터를 정수로 파싱. 실패 시 기본값.
func queryInt(c *gin.Context, key string, defaultValue int) int {
	if v, err := strconv.Atoi(c.Query(key)); err == nil && v > 0 {
		return v
	}
	return defaultValue
}

// mustMarshal 페이로드를 JSON 문자열로 직렬화
func mustMarshal(v interface{}) string {
	b, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(b)
}

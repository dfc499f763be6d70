package controllers

import (
	"github.com/gin-gonic/gin"

	"qrasset-http-service/internal/error/code"
	"qrasset-http-service/internal/error/response"
	"qrasset-http-service/middleware"
	"qrasset-http-service/models"
	"qrasset-http-service/services"
	"qrasset-http-service/services/container"
)

// InterfacePermissionController 권한 컨트롤러 인터페이스
type InterfacePermissionController interface {
	GetPermissions()
	GrantPermission()
	RevokePermission()
	GetMyPermissions()
	CheckPermission()
}

// PermissionController 권한 부여/조회 요청 처리
type PermissionController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewPermissionController 새 권한 컨트롤러 생성
func NewPermissionController(ctx *gin.Context, container *container.ServiceContainer) *PermissionController {
	return &PermissionController{
		Ctx:       ctx,
		Container: container,
	}
}

// GrantPermissionRequest 권한 부여 요청
type GrantPermissionRequest struct {
	UserID       string  `json:"user_id" binding:"required" example:"550e8400-e29b-41d4-a716-446655440000"`
	ResourceType string  `json:"resource_type" binding:"required,oneof=devices employees users" example:"devices"`
	ResourceID   *string `json:"resource_id"`
	Action       string  `json:"action" binding:"required,oneof=read write delete admin" example:"read"`
}

// RevokePermissionRequest 권한 회수 요청
type RevokePermissionRequest struct {
	PermissionID string `json:"permission_id" binding:"required" example:"550e8400-e29b-41d4-a716-446655440000"`
}

// CheckPermissionRequest 권한 확인 요청
type CheckPermissionRequest struct {
	ResourceType string  `json:"resource_type" binding:"required" example:"devices"`
	ResourceID   *string `json:"resource_id"`
	Action       string  `json:"action" binding:"required,oneof=read write delete admin" example:"read"`
}

// HandlePermissionFunc 권한 요청을 처리하는 Gin 핸들러 반환
func HandlePermissionFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewPermissionController(ctx, container)

		switch method {
		case "getPermissions":
			controller.GetPermissions()
		case "grantPermission":
			controller.GrantPermission()
		case "revokePermission":
			controller.RevokePermission()
		case "getMyPermissions":
			controller.GetMyPermissions()
		case "checkPermission":
			controller.CheckPermission()
		default:
			response.Fail(ctx, code.ErrBind)
		}
	}
}

// GetPermissions 전체 권한 목록
// @Summary 권한 목록
// @Description 전체 권한 부여 목록을 반환한다 (admin 전용)
// @Tags permissions
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.Permission
// @Failure 403 {object} ErrorResponse
// @Router /permissions [get]
func (c *PermissionController) GetPermissions() {
	permissionService := c.Container.GetService("permission").(services.InterfacePermissionService)

	permissions, err := permissionService.GetAllPermissions()
	if err != nil {
		response.Fail(c.Ctx, code.ErrDatabase)
		return
	}
	response.Success(c.Ctx, permissions)
}

// GrantPermission 권한 부여
// @Summary 권한 부여
// @Description 사용자에게 리소스 권한을 부여한다 (admin 전용)
// @Tags permissions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body GrantPermissionRequest true "부여 내용"
// @Success 200 {object} models.Permission
// @Failure 400 {object} ErrorResponse
// @Router /permissions/grant [post]
func (c *PermissionController) GrantPermission() {
	var req GrantPermissionRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrBind, "요청 형식이 올바르지 않습니다: "+err.Error())
		return
	}

	permissionService := c.Container.GetService("permission").(services.InterfacePermissionService)
	permission, err := permissionService.GrantPermission(req.UserID, req.ResourceType, req.ResourceID, models.PermissionAction(req.Action))
	if err != nil {
		response.Fail(c.Ctx, mapServiceError(err))
		return
	}
	response.Success(c.Ctx, permission)
}

// RevokePermission 권한 회수
// @Summary 권한 회수
// @Description 부여된 권한을 회수한다 (admin 전용)
// @Tags permissions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body RevokePermissionRequest true "회수 대상"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} ErrorResponse
// @Router /permissions/revoke [post]
func (c *PermissionController) RevokePermission() {
	var req RevokePermissionRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrBind, "요청 형식이 올바르지 않습니다: "+err.Error())
		return
	}

	permissionService := c.Container.GetService("permission").(services.InterfacePermissionService)
	if err := permissionService.RevokePermission(req.PermissionID); err != nil {
		response.Fail(c.Ctx, code.ErrRecordNotFound)
		return
	}
	response.Success(c.Ctx, gin.H{"revoked": true})
}

// GetMyPermissions 내 권한 목록
// @Summary 내 권한 조회
// @Description 인증된 사용자의 권한 부여 목록을 반환한다
// @Tags permissions
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.Permission
// @Failure 401 {object} ErrorResponse
// @Router /permissions/my-permissions [get]
func (c *PermissionController) GetMyPermissions() {
	permissionService := c.Container.GetService("permission").(services.InterfacePermissionService)

	permissions, err := permissionService.GetUserPermissions(middleware.CurrentUserID(c.Ctx))
	if err != nil {
		response.Fail(c.Ctx, code.ErrDatabase)
		return
	}
	response.Success(c.Ctx, permissions)
}

// CheckPermission 권한 확인
// @Summary 권한 확인
// @Description 호출자가 리소스에 대해 액션을 수행할 수 있는지 판정한다
// @Tags permissions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CheckPermissionRequest true "확인 내용"
// @Success 200 {object} map[string]bool
// @Failure 400 {object} ErrorResponse
// @Router /permissions/check [post]
func (c *PermissionController) CheckPermission() {
	var req CheckPermissionRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrBind, "요청 형식이 올바르지 않습니다: "+err.Error())
		return
	}

	permissionService := c.Container.GetService("permission").(services.InterfacePermissionService)
	allowed, err := permissionService.CheckPermission(
		middleware.CurrentUserID(c.Ctx), req.ResourceType, req.ResourceID, models.PermissionAction(req.Action))
	if err != nil {
		response.Fail(c.Ctx, code.ErrDatabase)
		return
	}
	response.Success(c.Ctx, gin.H{"allowed": allowed})
}

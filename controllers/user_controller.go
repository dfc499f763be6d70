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

// InterfaceUserController 사용자 관리 컨트롤러 인터페이스
type InterfaceUserController interface {
	GetUsers()
	UpdateUserRole()
}

// UserController 사용자 관리 요청 처리 (admin 전용)
type UserController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewUserController 새 사용자 컨트롤러 생성
func NewUserController(ctx *gin.Context, container *container.ServiceContainer) *UserController {
	return &UserController{
		Ctx:       ctx,
		Container: container,
	}
}

// UpdateRoleRequest 역할 변경 요청
type UpdateRoleRequest struct {
	Role string `json:"role" binding:"required,oneof=admin manager" example:"manager"`
}

// HandleUserFunc 사용자 관리 요청을 처리하는 Gin 핸들러 반환
func HandleUserFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewUserController(ctx, container)

		switch method {
		case "getUsers":
			controller.GetUsers()
		case "updateUserRole":
			controller.UpdateUserRole()
		default:
			response.Fail(ctx, code.ErrBind)
		}
	}
}

// GetUsers 전체 사용자 목록
// @Summary 사용자 목록 조회
// @Description 전체 사용자 목록을 반환한다 (admin 전용)
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.User
// @Failure 403 {object} ErrorResponse
// @Router /users [get]
func (c *UserController) GetUsers() {
	userService := c.Container.GetService("user").(services.InterfaceUserService)

	users, err := userService.GetAllUsers()
	if err != nil {
		response.Fail(c.Ctx, code.ErrDatabase)
		return
	}
	response.Success(c.Ctx, users)
}

// UpdateUserRole 사용자 역할 변경
// @Summary 역할 변경
// @Description 사용자의 역할을 admin/manager로 변경한다 (admin 전용)
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "사용자 ID"
// @Param request body UpdateRoleRequest true "역할"
// @Success 200 {object} models.User
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /users/{id}/role [put]
func (c *UserController) UpdateUserRole() {
	var req UpdateRoleRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrBind, "요청 형식이 올바르지 않습니다: "+err.Error())
		return
	}

	userService := c.Container.GetService("user").(services.InterfaceUserService)

	user, err := userService.UpdateUserRole(middleware.CurrentUserID(c.Ctx), c.Ctx.Param("id"), models.UserRole(req.Role))
	if err != nil {
		errorCode := mapServiceError(err)
		if errorCode == code.ErrDatabase {
			// 마지막 admin 강등 등 정책 위반은 검증 오류로 응답
			response.FailWithMessage(c.Ctx, code.ErrValidation, err.Error())
			return
		}
		response.Fail(c.Ctx, errorCode)
		return
	}
	response.Success(c.Ctx, user)
}

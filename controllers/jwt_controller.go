package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"qrasset-http-service/internal/error/code"
	"qrasset-http-service/internal/error/response"
	"qrasset-http-service/middleware"
	"qrasset-http-service/services"
	"qrasset-http-service/services/container"
)

// InterfaceAuthController 인증 컨트롤러 인터페이스
type InterfaceAuthController interface {
	Register()
	Login()
	GetProfile()
	UpdateProfile()
}

// AuthController 인증/계정 요청 처리
type AuthController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewAuthController 새 인증 컨트롤러 생성
func NewAuthController(ctx *gin.Context, container *container.ServiceContainer) *AuthController {
	return &AuthController{
		Ctx:       ctx,
		Container: container,
	}
}

// RegisterRequest 회원가입 요청
type RegisterRequest struct {
	Email       string `json:"email" binding:"required,email" example:"manager@example.com"`
	Password    string `json:"password" binding:"required,min=6" example:"secret123"`
	CompanyName string `json:"company_name" binding:"required" example:"우리회사"`
}

// LoginRequest 로그인 요청
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email" example:"manager@example.com"`
	Password string `json:"password" binding:"required" example:"secret123"`
}

// UpdateProfileRequest 프로필 수정 요청.
// 비밀번호 변경 시 current_password가 필요하다.
type UpdateProfileRequest struct {
	CompanyName     string `json:"company_name" example:"우리회사"`
	CurrentPassword string `json:"current_password" example:"secret123"`
	NewPassword     string `json:"new_password" example:"newsecret456"`
}

// HandleAuthFunc 인증 요청을 처리하는 Gin 핸들러 반환
func HandleAuthFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewAuthController(ctx, container)

		switch method {
		case "register":
			controller.Register()
		case "login":
			controller.Login()
		case "getProfile":
			controller.GetProfile()
		case "updateProfile":
			controller.UpdateProfile()
		default:
			response.Fail(ctx, code.ErrBind)
		}
	}
}

// Register 계정 등록
// @Summary 회원가입
// @Description 이메일/비밀번호로 새 관리 계정을 등록하고 토큰을 발급한다
// @Tags auth
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "가입 정보"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} ErrorResponse
// @Router /auth/register [post]
func (c *AuthController) Register() {
	var req RegisterRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrBind, "요청 형식이 올바르지 않습니다: "+err.Error())
		return
	}

	userService := c.Container.GetService("user").(services.InterfaceUserService)
	jwtService := c.Container.GetService("jwt").(*services.JWTService)

	user, err := userService.Register(req.Email, req.Password, req.CompanyName)
	if err != nil {
		response.Fail(c.Ctx, mapServiceError(err))
		return
	}

	token, err := jwtService.GenerateToken(user.ID, user.Email, string(user.Role))
	if err != nil {
		response.Fail(c.Ctx, code.ErrUnknown)
		return
	}

	c.Ctx.JSON(http.StatusCreated, gin.H{
		"code":    code.ErrSuccess,
		"message": "회원가입이 완료되었습니다",
		"data": gin.H{
			"token": token,
			"user":  user,
		},
	})
}

// Login 로그인
// @Summary 로그인
// @Description 이메일/비밀번호 검증 후 JWT 토큰을 발급한다
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "로그인 정보"
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} ErrorResponse
// @Router /auth/login [post]
func (c *AuthController) Login() {
	var req LoginRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrBind, "요청 형식이 올바르지 않습니다: "+err.Error())
		return
	}

	userService := c.Container.GetService("user").(services.InterfaceUserService)
	jwtService := c.Container.GetService("jwt").(*services.JWTService)

	user, err := userService.Login(req.Email, req.Password)
	if err != nil {
		response.Fail(c.Ctx, mapServiceError(err))
		return
	}

	token, err := jwtService.GenerateToken(user.ID, user.Email, string(user.Role))
	if err != nil {
		response.Fail(c.Ctx, code.ErrUnknown)
		return
	}

	response.Success(c.Ctx, gin.H{
		"token": token,
		"user":  user,
	})
}

// GetProfile 내 프로필 조회
// @Summary 프로필 조회
// @Description 인증된 사용자의 프로필을 반환한다
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.User
// @Failure 401 {object} ErrorResponse
// @Router /auth/profile [get]
func (c *AuthController) GetProfile() {
	userService := c.Container.GetService("user").(services.InterfaceUserService)

	user, err := userService.GetUserByID(middleware.CurrentUserID(c.Ctx))
	if err != nil {
		response.Fail(c.Ctx, mapServiceError(err))
		return
	}
	response.Success(c.Ctx, user)
}

// UpdateProfile 내 프로필 수정
// @Summary 프로필 수정
// @Description 회사명 변경 또는 비밀번호 변경(현재 비밀번호 확인 필요)
// @Tags auth
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body UpdateProfileRequest true "수정 내용"
// @Success 200 {object} models.User
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Router /auth/profile [put]
func (c *AuthController) UpdateProfile() {
	var req UpdateProfileRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrBind, "요청 형식이 올바르지 않습니다: "+err.Error())
		return
	}

	userID := middleware.CurrentUserID(c.Ctx)
	userService := c.Container.GetService("user").(services.InterfaceUserService)

	if req.NewPassword != "" {
		if req.CurrentPassword == "" {
			response.FailWithMessage(c.Ctx, code.ErrValidation, "비밀번호 변경에는 현재 비밀번호가 필요합니다")
			return
		}
		if err := userService.ChangePassword(userID, req.CurrentPassword, req.NewPassword); err != nil {
			response.Fail(c.Ctx, mapServiceError(err))
			return
		}
	}

	if req.CompanyName != "" {
		if _, err := userService.UpdateProfile(userID, map[string]interface{}{"company_name": req.CompanyName}); err != nil {
			response.Fail(c.Ctx, mapServiceError(err))
			return
		}
	}

	user, err := userService.GetUserByID(userID)
	if err != nil {
		response.Fail(c.Ctx, mapServiceError(err))
		return
	}
	response.Success(c.Ctx, user)
}

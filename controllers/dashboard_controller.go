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

// InterfaceDashboardController 대시보드 컨트롤러 인터페이스
type InterfaceDashboardController interface {
	GetStats()
	GetRecentActivities()
}

// DashboardController 대시보드 요청 처리
type DashboardController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewDashboardController 새 대시보드 컨트롤러 생성
func NewDashboardController(ctx *gin.Context, container *container.ServiceContainer) *DashboardController {
	return &DashboardController{
		Ctx:       ctx,
		Container: container,
	}
}

// HandleDashboardFunc 대시보드 요청을 처리하는 Gin 핸들러 반환
func HandleDashboardFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewDashboardController(ctx, container)

		switch method {
		case "getStats":
			controller.GetStats()
		case "getRecentActivities":
			controller.GetRecentActivities()
		default:
			response.Fail(ctx, code.ErrBind)
		}
	}
}

// GetStats 대시보드 통계
// @Summary 대시보드 통계
// @Description 호출자 범위의 장비/직원 통계를 반환한다 (60초 캐시)
// @Tags dashboard
// @Produce json
// @Security BearerAuth
// @Success 200 {object} services.DashboardStats
// @Failure 500 {object} ErrorResponse
// @Router /dashboard/stats [get]
func (c *DashboardController) GetStats() {
	userID := middleware.CurrentUserID(c.Ctx)
	role := middleware.CurrentUserRole(c.Ctx)
	tenantWide := tenantWideScope(c.Container, userID, role, models.ResourceTypeDevices)

	dashboardService := c.Container.GetService("dashboard").(services.InterfaceDashboardService)
	stats, err := dashboardService.GetStats(userID, tenantWide)
	if err != nil {
		response.Fail(c.Ctx, code.ErrDatabase)
		return
	}
	response.Success(c.Ctx, gin.H{"stats": stats})
}

// GetRecentActivities 최근 활동 조회
// @Summary 최근 활동
// @Description 장비 이력 원장 기준 최근 활동 10건을 반환한다
// @Tags dashboard
// @Produce json
// @Security BearerAuth
// @Success 200 {array} services.Activity
// @Failure 500 {object} ErrorResponse
// @Router /dashboard/recent-activities [get]
func (c *DashboardController) GetRecentActivities() {
	userID := middleware.CurrentUserID(c.Ctx)
	role := middleware.CurrentUserRole(c.Ctx)
	tenantWide := tenantWideScope(c.Container, userID, role, models.ResourceTypeDevices)

	dashboardService := c.Container.GetService("dashboard").(services.InterfaceDashboardService)
	activities, err := dashboardService.GetRecentActivities(userID, tenantWide)
	if err != nil {
		response.Fail(c.Ctx, code.ErrDatabase)
		return
	}
	response.Success(c.Ctx, gin.H{"activities": activities})
}

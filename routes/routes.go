package routes

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"qrasset-http-service/config"
	"qrasset-http-service/controllers"
	_ "qrasset-http-service/docs"
	"qrasset-http-service/middleware"
	"qrasset-http-service/services/container"
)

// SetupRouter 라우터 초기화
func SetupRouter(db *gorm.DB, cfg *config.Config) *gin.Engine {
	r := gin.Default()

	// CORS 미들웨어
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", cfg.FrontendURL)
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, Accept, Origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS, PATCH")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	// 서비스 컨테이너 생성
	serviceContainer := container.NewServiceContainer(db, cfg)
	// 인증 미들웨어 초기화
	middleware.InitAuthMiddleware(cfg, db)
	// Swagger 문서 라우트
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	registerRoutes(r, serviceContainer)
	return r
}

// registerRoutes 전체 API 라우트 등록
func registerRoutes(r *gin.Engine, container *container.ServiceContainer) {
	api := r.Group("/api")
	registerPublicRoutes(api, container)
	registerAuthenticatedRoutes(api, container)
}

// registerPublicRoutes 인증이 필요 없는 라우트
func registerPublicRoutes(api *gin.RouterGroup, container *container.ServiceContainer) {
	// 헬스 체크
	api.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	// 인증 라우트 (무차별 대입 방지 빈도 제한)
	authLimiter := middleware.IPRateLimiter(5, 10)
	api.POST("/auth/register", authLimiter, controllers.HandleAuthFunc(container, "register"))
	api.POST("/auth/login", authLimiter, controllers.HandleAuthFunc(container, "login"))

	// QR 디코드/검증은 인증 없이 사용 가능하다
	api.POST("/qr/decode", controllers.HandleQRFunc(container, "decodeQR"))
	api.POST("/qr/validate", controllers.HandleQRFunc(container, "validateQR"))
}

// registerAuthenticatedRoutes 인증이 필요한 라우트
func registerAuthenticatedRoutes(api *gin.RouterGroup, container *container.ServiceContainer) {
	auth := api.Group("/")
	auth.Use(middleware.Authentication())

	// 계정 라우트
	auth.GET("/auth/profile", controllers.HandleAuthFunc(container, "getProfile"))
	auth.PUT("/auth/profile", controllers.HandleAuthFunc(container, "updateProfile"))

	// 사용자 관리 라우트 (admin 전용)
	users := auth.Group("/users")
	users.Use(middleware.RequireAdmin())
	users.GET("", controllers.HandleUserFunc(container, "getUsers"))
	users.PUT("/:id/role", controllers.HandleUserFunc(container, "updateUserRole"))

	// 직원 라우트
	employees := auth.Group("/employees")
	employees.GET("", controllers.HandleEmployeeFunc(container, "getEmployees"))
	employees.GET("/:id", controllers.HandleEmployeeFunc(container, "getEmployee"))
	employees.POST("", controllers.HandleEmployeeFunc(container, "createEmployee"))
	employees.PUT("/:id", controllers.HandleEmployeeFunc(container, "updateEmployee"))
	employees.DELETE("/:id", controllers.HandleEmployeeFunc(container, "deleteEmployee"))

	// 장비 라우트
	devices := auth.Group("/devices")
	devices.GET("", controllers.HandleDeviceFunc(container, "getDevices"))
	devices.POST("", controllers.HandleDeviceFunc(container, "createDevice"))
	devices.POST("/import", controllers.HandleDeviceFunc(container, "importDevices"))
	devices.GET("/export", controllers.HandleDeviceFunc(container, "exportDevices"))
	devices.GET("/:identifier", controllers.HandleDeviceFunc(container, "getDevice"))
	devices.PUT("/:identifier", controllers.HandleDeviceFunc(container, "updateDevice"))
	devices.DELETE("/:identifier", controllers.HandleDeviceFunc(container, "deleteDevice"))
	devices.POST("/:identifier/return", controllers.HandleDeviceFunc(container, "returnDevice"))
	devices.POST("/:identifier/dispose", controllers.HandleDeviceFunc(container, "disposeDevice"))
	devices.PATCH("/:identifier/status", controllers.HandleDeviceFunc(container, "updateDeviceStatus"))
	devices.GET("/:identifier/history", controllers.HandleDeviceFunc(container, "getDeviceHistory"))

	// QR 라우트
	qr := auth.Group("/qr")
	qr.GET("/device/:identifier", controllers.HandleQRFunc(container, "generateDeviceQR"))
	qr.GET("/employee/:id", controllers.HandleQRFunc(container, "generateEmployeeQR"))
	qr.POST("/bulk/devices", controllers.HandleQRFunc(container, "generateBulkDeviceQR"))

	// 권한 라우트
	permissions := auth.Group("/permissions")
	permissions.GET("", middleware.RequireAdmin(), controllers.HandlePermissionFunc(container, "getPermissions"))
	permissions.POST("/grant", middleware.RequireAdmin(), controllers.HandlePermissionFunc(container, "grantPermission"))
	permissions.POST("/revoke", middleware.RequireAdmin(), controllers.HandlePermissionFunc(container, "revokePermission"))
	permissions.GET("/my-permissions", controllers.HandlePermissionFunc(container, "getMyPermissions"))
	permissions.POST("/check", controllers.HandlePermissionFunc(container, "checkPermission"))

	// 대시보드 라우트
	dashboard := auth.Group("/dashboard")
	dashboard.GET("/stats", controllers.HandleDashboardFunc(container, "getStats"))
	dashboard.GET("/recent-activities", controllers.HandleDashboardFunc(container, "getRecentActivities"))
}

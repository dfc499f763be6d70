package container

import (
	"log"
	"sync"

	"gorm.io/gorm"

	"qrasset-http-service/config"
	"qrasset-http-service/services"
)

// ServiceContainer 모든 서비스의 의존성 주입 관리
type ServiceContainer struct {
	db     *gorm.DB
	config *config.Config

	// 기반 서비스
	jwtService   *services.JWTService
	redisService *services.RedisService

	// 업무 서비스
	userService       services.InterfaceUserService
	employeeService   services.InterfaceEmployeeService
	deviceService     services.InterfaceDeviceService
	historyService    services.InterfaceHistoryService
	permissionService services.InterfacePermissionService
	qrService         services.InterfaceQRService
	excelService      services.InterfaceExcelService
	dashboardService  services.InterfaceDashboardService

	mu sync.RWMutex
}

// NewServiceContainer 새 서비스 컨테이너 생성
func NewServiceContainer(db *gorm.DB, cfg *config.Config) *ServiceContainer {
	if db == nil {
		panic("데이터베이스 연결이 비어 있습니다")
	}
	if cfg == nil {
		panic("설정이 비어 있습니다")
	}

	container := &ServiceContainer{
		db:     db,
		config: cfg,
	}
	container.initializeServices()
	return container
}

// initializeServices 모든 서비스 초기화
func (c *ServiceContainer) initializeServices() {
	c.mu.Lock()
	defer c.mu.Unlock()

	// 기반 서비스
	c.jwtService = services.NewJWTService(c.config)
	c.redisService = services.NewRedisService(c.config)

	// Redis 연결 확인. 실패해도 캐시 없이 동작한다.
	redisService := c.redisService
	if err := redisService.Ping(); err != nil {
		log.Printf("Redis 연결 실패: %v, 캐시 없이 동작합니다", err)
		redisService = nil
		c.redisService = nil
	}

	// 업무 서비스
	c.userService = services.NewUserService(c.db, c.config)
	c.employeeService = services.NewEmployeeService(c.db, c.config)
	c.deviceService = services.NewDeviceService(c.db, c.config)
	c.historyService = services.NewHistoryService(c.db, c.config)
	c.permissionService = services.NewPermissionService(c.db, c.config)
	c.qrService = services.NewQRService(c.db, c.config)
	c.excelService = services.NewExcelService(c.db, c.config)
	c.dashboardService = services.NewDashboardService(c.db, c.config, redisService)
}

// GetService 이름으로 서비스 조회
func (c *ServiceContainer) GetService(name string) interface{} {
	c.mu.RLock()
	defer c.mu.RUnlock()

	switch name {
	case "config":
		return c.config
	case "db":
		return c.db
	case "jwt":
		return c.jwtService
	case "redis":
		return c.redisService
	case "user":
		return c.userService
	case "employee":
		return c.employeeService
	case "device":
		return c.deviceService
	case "history":
		return c.historyService
	case "permission":
		return c.permissionService
	case "qr":
		return c.qrService
	case "excel":
		return c.excelService
	case "dashboard":
		return c.dashboardService
	default:
		return nil
	}
}

// GetDB 데이터베이스 연결 반환
func (c *ServiceContainer) GetDB() *gorm.DB {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.db
}

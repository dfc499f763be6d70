package services

import (
	"time"

	"gorm.io/gorm"

	"qrasset-http-service/config"
	"qrasset-http-service/models"
)

// DashboardStats 대시보드 통계
type DashboardStats struct {
	TotalDevices       int64 `json:"total_devices"`
	TotalEmployees     int64 `json:"total_employees"`
	ActiveDevices      int64 `json:"active_devices"`      // 담당자 할당 장비
	InactiveDevices    int64 `json:"inactive_devices"`    // 미할당이며 폐기 아님
	MaintenanceDevices int64 `json:"maintenance_devices"` // 정비 상태 필드 없음, 항상 0
	RetiredDevices     int64 `json:"retired_devices"`     // 폐기 장비
	RecentDevices      int64 `json:"recent_devices"`      // 최근 7일 등록 장비
	RecentEmployees    int64 `json:"recent_employees"`    // 최근 7일 등록 직원
}

// Activity 최근 활동 피드 항목
type Activity struct {
	ID          string    `json:"id"`
	Type        string    `json:"type"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
	AssetNumber string    `json:"asset_number"`
}

// InterfaceDashboardService 대시보드 서비스 인터페이스
type InterfaceDashboardService interface {
	GetStats(adminID string, tenantWide bool) (*DashboardStats, error)
	GetRecentActivities(adminID string, tenantWide bool) ([]Activity, error)
}

// DashboardService 대시보드 통계/활동 서비스.
// 활동 피드의 유일한 근거는 장비 이력 원장이다.
type DashboardService struct {
	DB      *gorm.DB
	Config  *config.Config
	History InterfaceHistoryService
	Redis   *RedisService
}

// NewDashboardService 새 대시보드 서비스 생성. Redis는 선택 사항이다.
func NewDashboardService(db *gorm.DB, cfg *config.Config, redis *RedisService) InterfaceDashboardService {
	return &DashboardService{
		DB:      db,
		Config:  cfg,
		History: NewHistoryService(db, cfg),
		Redis:   redis,
	}
}

// GetStats 테넌트 범위 통계 집계. 60초 Redis 캐시를 앞에 두며
// 캐시 실패는 치명적이지 않다.
func (s *DashboardService) GetStats(adminID string, tenantWide bool) (*DashboardStats, error) {
	cacheKey := adminID
	if tenantWide {
		cacheKey = "all"
	}

	if s.Redis != nil {
		var cached DashboardStats
		if err := s.Redis.GetDashboardStats(cacheKey, &cached); err == nil {
			return &cached, nil
		}
	}

	stats, err := s.computeStats(adminID, tenantWide)
	if err != nil {
		return nil, err
	}

	if s.Redis != nil {
		// 캐시 기록 실패는 무시한다
		_ = s.Redis.CacheDashboardStats(cacheKey, stats, 60*time.Second)
	}
	return stats, nil
}

// computeStats DB에서 통계 집계
func (s *DashboardService) computeStats(adminID string, tenantWide bool) (*DashboardStats, error) {
	deviceQuery := func() *gorm.DB {
		q := s.DB.Model(&models.Device{})
		if !tenantWide {
			q = q.Where("admin_id = ?", adminID)
		}
		return q
	}
	employeeQuery := func() *gorm.DB {
		q := s.DB.Model(&models.Employee{})
		if !tenantWide {
			q = q.Where("admin_id = ?", adminID)
		}
		return q
	}

	stats := &DashboardStats{}
	sevenDaysAgo := time.Now().AddDate(0, 0, -7)

	if err := deviceQuery().Count(&stats.TotalDevices).Error; err != nil {
		return nil, err
	}
	if err := employeeQuery().Count(&stats.TotalEmployees).Error; err != nil {
		return nil, err
	}
	if err := deviceQuery().Where("employee_id IS NOT NULL").Count(&stats.ActiveDevices).Error; err != nil {
		return nil, err
	}
	if err := deviceQuery().Where("employee_id IS NULL AND purpose != ?", models.DevicePurposeDisposed).Count(&stats.InactiveDevices).Error; err != nil {
		return nil, err
	}
	if err := deviceQuery().Where("purpose = ?", models.DevicePurposeDisposed).Count(&stats.RetiredDevices).Error; err != nil {
		return nil, err
	}
	if err := deviceQuery().Where("created_at >= ?", sevenDaysAgo).Count(&stats.RecentDevices).Error; err != nil {
		return nil, err
	}
	if err := employeeQuery().Where("created_at >= ?", sevenDaysAgo).Count(&stats.RecentEmployees).Error; err != nil {
		return nil, err
	}

	return stats, nil
}

// GetRecentActivities 이력 원장 기준 최근 활동 10건
func (s *DashboardService) GetRecentActivities(adminID string, tenantWide bool) ([]Activity, error) {
	entries, err := s.History.GetRecentActivities(adminID, tenantWide, 10)
	if err != nil {
		return nil, err
	}

	activities := make([]Activity, 0, len(entries))
	for _, entry := range entries {
		assetNumber := ""
		var device models.Device
		if err := s.DB.Select("asset_number").First(&device, "id = ?", entry.DeviceID).Error; err == nil {
			assetNumber = device.AssetNumber
		}
		activities = append(activities, Activity{
			ID:          entry.ID,
			Type:        "device",
			Title:       string(entry.ActionType),
			Description: entry.ActionDescription,
			CreatedAt:   entry.PerformedAt,
			AssetNumber: assetNumber,
		})
	}
	return activities, nil
}

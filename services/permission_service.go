package services

import (
	"errors"

	"gorm.io/gorm"

	"qrasset-http-service/config"
	"qrasset-http-service/models"
)

// InterfacePermissionService 권한 서비스 인터페이스
type InterfacePermissionService interface {
	CheckPermission(userID, resourceType string, resourceID *string, action models.PermissionAction) (bool, error)
	HasAdminGrant(userID, resourceType string) (bool, error)
	GrantPermission(userID, resourceType string, resourceID *string, action models.PermissionAction) (*models.Permission, error)
	RevokePermission(permissionID string) error
	GetAllPermissions() ([]models.Permission, error)
	GetUserPermissions(userID string) ([]models.Permission, error)
}

// PermissionService 권한 부여/검사 서비스
type PermissionService struct {
	DB     *gorm.DB
	Config *config.Config
}

// NewPermissionService 새 권한 서비스 생성
func NewPermissionService(db *gorm.DB, cfg *config.Config) InterfacePermissionService {
	return &PermissionService{
		DB:     db,
		Config: cfg,
	}
}

// CheckPermission 사용자가 리소스에 대해 액션을 수행할 수 있는지 판정한다.
// 리소스 타입 전체(resource_id NULL)에 대한 admin 부여는 모든 액션을 허용한다.
// 부여가 전혀 없으면 false를 반환하고, read/write에 한해 호출자가
// 행 소유권(admin_id = 사용자)으로 폴백한다. delete는 명시적 부여가 필수다.
func (s *PermissionService) CheckPermission(userID, resourceType string, resourceID *string, action models.PermissionAction) (bool, error) {
	// 1) 타입 전체 admin 부여
	hasAdmin, err := s.HasAdminGrant(userID, resourceType)
	if err != nil {
		return false, err
	}
	if hasAdmin {
		return true, nil
	}

	// 2) 정확히 일치하는 부여 (타입 전체 또는 특정 리소스)
	query := s.DB.Model(&models.Permission{}).
		Where("user_id = ? AND resource_type = ? AND action = ?", userID, resourceType, action)
	if resourceID == nil {
		query = query.Where("resource_id IS NULL")
	} else {
		query = query.Where("resource_id IS NULL OR resource_id = ?", *resourceID)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// HasAdminGrant 리소스 타입 전체에 대한 admin 부여 여부
func (s *PermissionService) HasAdminGrant(userID, resourceType string) (bool, error) {
	var count int64
	err := s.DB.Model(&models.Permission{}).
		Where("user_id = ? AND resource_type = ? AND action = ? AND resource_id IS NULL",
			userID, resourceType, models.PermissionActionAdmin).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// GrantPermission 권한 부여. 동일한 튜플이 이미 있으면 기존 것을 반환한다.
func (s *PermissionService) GrantPermission(userID, resourceType string, resourceID *string, action models.PermissionAction) (*models.Permission, error) {
	var user models.User
	if err := s.DB.First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	query := s.DB.Where("user_id = ? AND resource_type = ? AND action = ?", userID, resourceType, action)
	if resourceID == nil {
		query = query.Where("resource_id IS NULL")
	} else {
		query = query.Where("resource_id = ?", *resourceID)
	}

	var existing models.Permission
	if err := query.First(&existing).Error; err == nil {
		return &existing, nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	permission := &models.Permission{
		UserID:       userID,
		ResourceType: resourceType,
		ResourceID:   resourceID,
		Action:       action,
	}
	if err := s.DB.Create(permission).Error; err != nil {
		return nil, err
	}
	return permission, nil
}

// RevokePermission 권한 회수
func (s *PermissionService) RevokePermission(permissionID string) error {
	result := s.DB.Delete(&models.Permission{}, "id = ?", permissionID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// GetAllPermissions 전체 권한 목록 (admin 전용)
func (s *PermissionService) GetAllPermissions() ([]models.Permission, error) {
	var permissions []models.Permission
	if err := s.DB.Preload("User").Order("created_at DESC").Find(&permissions).Error; err != nil {
		return nil, err
	}
	return permissions, nil
}

// GetUserPermissions 특정 사용자의 권한 목록
func (s *PermissionService) GetUserPermissions(userID string) ([]models.Permission, error) {
	var permissions []models.Permission
	if err := s.DB.Where("user_id = ?", userID).Order("created_at DESC").Find(&permissions).Error; err != nil {
		return nil, err
	}
	return permissions, nil
}

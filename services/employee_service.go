package services

import (
	"errors"

	"gorm.io/gorm"

	"qrasset-http-service/config"
	"qrasset-http-service/models"
)

// InterfaceEmployeeService 직원 서비스 인터페이스
type InterfaceEmployeeService interface {
	GetEmployees(adminID string, tenantWide bool) ([]models.Employee, error)
	GetEmployeeByID(adminID, id string, tenantWide bool) (*models.Employee, error)
	CreateEmployee(employee *models.Employee) error
	UpdateEmployee(adminID, id string, tenantWide bool, updates map[string]interface{}) (*models.Employee, error)
	DeleteEmployee(adminID, id string, tenantWide bool) error
}

// EmployeeService 직원 관련 서비스
type EmployeeService struct {
	DB     *gorm.DB
	Config *config.Config
}

// NewEmployeeService 새 직원 서비스 생성
func NewEmployeeService(db *gorm.DB, cfg *config.Config) InterfaceEmployeeService {
	return &EmployeeService{
		DB:     db,
		Config: cfg,
	}
}

// scoped 테넌트 범위가 적용된 쿼리.
// 타입 전체 admin 부여가 있으면(tenantWide) 소유자 조건을 걸지 않는다.
func (s *EmployeeService) scoped(adminID string, tenantWide bool) *gorm.DB {
	query := s.DB.Model(&models.Employee{})
	if !tenantWide {
		query = query.Where("admin_id = ?", adminID)
	}
	return query
}

// GetEmployees 직원 목록 조회. 보유 장비 수를 함께 채운다.
func (s *EmployeeService) GetEmployees(adminID string, tenantWide bool) ([]models.Employee, error) {
	var employees []models.Employee
	if err := s.scoped(adminID, tenantWide).Order("created_at DESC").Find(&employees).Error; err != nil {
		return nil, err
	}

	for i := range employees {
		var count int64
		if err := s.DB.Model(&models.Device{}).Where("employee_id = ?", employees[i].ID).Count(&count).Error; err != nil {
			return nil, err
		}
		employees[i].DeviceCount = count
	}
	return employees, nil
}

// GetEmployeeByID 직원 단건 조회 (할당 장비 포함)
func (s *EmployeeService) GetEmployeeByID(adminID, id string, tenantWide bool) (*models.Employee, error) {
	var employee models.Employee
	query := s.DB.Preload("Devices")
	if !tenantWide {
		query = query.Where("admin_id = ?", adminID)
	}
	if err := query.First(&employee, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEmployeeNotFound
		}
		return nil, err
	}
	employee.DeviceCount = int64(len(employee.Devices))
	return &employee, nil
}

// CreateEmployee 새 직원 등록
func (s *EmployeeService) CreateEmployee(employee *models.Employee) error {
	return s.DB.Create(employee).Error
}

// UpdateEmployee 직원 정보 수정
func (s *EmployeeService) UpdateEmployee(adminID, id string, tenantWide bool, updates map[string]interface{}) (*models.Employee, error) {
	employee, err := s.GetEmployeeByID(adminID, id, tenantWide)
	if err != nil {
		return nil, err
	}
	if err := s.DB.Model(employee).Updates(updates).Error; err != nil {
		return nil, err
	}
	return s.GetEmployeeByID(adminID, id, tenantWide)
}

// DeleteEmployee 직원 삭제. 할당 장비가 남아 있으면 거부한다.
func (s *EmployeeService) DeleteEmployee(adminID, id string, tenantWide bool) error {
	employee, err := s.GetEmployeeByID(adminID, id, tenantWide)
	if err != nil {
		return err
	}

	var assignedCount int64
	if err := s.DB.Model(&models.Device{}).Where("employee_id = ?", employee.ID).Count(&assignedCount).Error; err != nil {
		return err
	}
	if assignedCount > 0 {
		return ErrEmployeeHasDevices
	}

	return s.DB.Delete(&models.Employee{}, "id = ?", employee.ID).Error
}

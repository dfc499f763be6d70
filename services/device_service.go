package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"qrasset-http-service/config"
	"qrasset-http-service/models"
	"qrasset-http-service/utils"
)

// 장비 목록 할당 상태 필터 값
const (
	AssignmentFilterAll        = "all"
	AssignmentFilterAssigned   = "assigned"
	AssignmentFilterUnassigned = "unassigned"
)

// deviceUpdatableFields 수정 API가 허용하는 컬럼 집합
var deviceUpdatableFields = map[string]bool{
	"asset_number":    true,
	"employee_id":     true,
	"manufacturer":    true,
	"model_name":      true,
	"serial_number":   true,
	"cpu":             true,
	"memory":          true,
	"storage":         true,
	"gpu":             true,
	"os":              true,
	"monitor":         true,
	"monitor_size":    true,
	"purpose":         true,
	"device_type":     true,
	"inspection_date": true,
	"issue_date":      true,
}

// ImportRowError Excel/CSV 가져오기 행 단위 오류
type ImportRowError struct {
	Row         int    `json:"row"`
	AssetNumber string `json:"asset_number,omitempty"`
	Message     string `json:"message"`
}

// ImportResult Excel/CSV 가져오기 결과 요약
type ImportResult struct {
	Total   int              `json:"total"`
	Created int              `json:"created"`
	Updated int              `json:"updated"`
	Skipped int              `json:"skipped"`
	Errors  []ImportRowError `json:"errors"`
}

// InterfaceDeviceService 장비 서비스 인터페이스
type InterfaceDeviceService interface {
	GetDevices(adminID string, tenantWide bool, assignmentStatus string) ([]models.Device, error)
	GetDeviceByIdentifier(adminID, identifier string, tenantWide bool) (*models.Device, error)
	CreateDevice(performedBy string, device *models.Device) error
	UpdateDevice(adminID, identifier string, tenantWide bool, performedBy string, updates map[string]interface{}) (*models.Device, error)
	ReturnDevice(adminID, identifier string, tenantWide bool, performedBy string) (*models.Device, error)
	DisposeDevice(adminID, identifier string, tenantWide bool, performedBy, reason string) (*models.Device, error)
	ImportDevices(adminID, performedBy string, rows []DeviceImportRow) (*ImportResult, error)
}

// DeviceService 장비 관련 서비스
type DeviceService struct {
	DB      *gorm.DB
	Config  *config.Config
	History InterfaceHistoryService
}

// NewDeviceService 새 장비 서비스 생성
func NewDeviceService(db *gorm.DB, cfg *config.Config) InterfaceDeviceService {
	return &DeviceService{
		DB:      db,
		Config:  cfg,
		History: NewHistoryService(db, cfg),
	}
}

// GetDevices 장비 목록 조회. 폐기 장비는 일반 목록에서 제외된다.
// 테넌트 범위는 사전에 판정된 권한 결과로 쿼리 단계에서 분기한다.
func (s *DeviceService) GetDevices(adminID string, tenantWide bool, assignmentStatus string) ([]models.Device, error) {
	query := s.DB.Preload("Employee").Where("purpose != ?", models.DevicePurposeDisposed)
	if !tenantWide {
		query = query.Where("admin_id = ?", adminID)
	}

	switch assignmentStatus {
	case AssignmentFilterAssigned:
		query = query.Where("employee_id IS NOT NULL")
	case AssignmentFilterUnassigned:
		query = query.Where("employee_id IS NULL")
	case "", AssignmentFilterAll:
		// 필터 없음
	default:
		return nil, fmt.Errorf("지원하지 않는 할당 상태 필터입니다: %s", assignmentStatus)
	}

	var devices []models.Device
	if err := query.Order("created_at DESC").Find(&devices).Error; err != nil {
		return nil, err
	}
	return devices, nil
}

// GetDeviceByIdentifier UUID면 내부 ID로, 아니면 자산번호로 장비를 찾는다.
func (s *DeviceService) GetDeviceByIdentifier(adminID, identifier string, tenantWide bool) (*models.Device, error) {
	query := s.DB.Preload("Employee")
	if !tenantWide {
		query = query.Where("admin_id = ?", adminID)
	}

	var device models.Device
	var err error
	if utils.IsUUID(identifier) {
		err = query.First(&device, "id = ?", identifier).Error
	} else {
		err = query.First(&device, "asset_number = ?", identifier).Error
	}
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDeviceNotFound
		}
		return nil, err
	}
	return &device, nil
}

// CreateDevice 새 장비 등록. 자산번호 중복과 직원 소유권을 검증하고
// 생성 이력을 같은 트랜잭션에서 기록한다.
func (s *DeviceService) CreateDevice(performedBy string, device *models.Device) error {
	var count int64
	if err := s.DB.Model(&models.Device{}).Where("asset_number = ?", device.AssetNumber).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return ErrAssetNumberExists
	}

	if device.EmployeeID != nil && *device.EmployeeID != "" {
		if err := s.validateEmployeeOwnership(device.AdminID, *device.EmployeeID); err != nil {
			return err
		}
	} else {
		device.EmployeeID = nil
	}

	newStatus := models.AssignStatusUnassigned
	if device.IsAssigned() {
		newStatus = models.AssignStatusAssigned
	}

	return s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(device).Error; err != nil {
			return err
		}
		return s.History.RecordHistory(tx, &models.DeviceHistory{
			DeviceID:          device.ID,
			ActionType:        models.HistoryActionCreate,
			ActionDescription: fmt.Sprintf("새 장비 등록 (자산번호: %s)", device.AssetNumber),
			PreviousStatus:    models.AssignStatusNone,
			NewStatus:         newStatus,
			PerformedBy:       performedBy,
		})
	})
}

// UpdateDevice 장비 수정. 필드 단위 변경 내역을 계산해 액션을 결정하고
// 수정과 이력 기록을 한 트랜잭션으로 묶는다.
func (s *DeviceService) UpdateDevice(adminID, identifier string, tenantWide bool, performedBy string, updates map[string]interface{}) (*models.Device, error) {
	device, err := s.GetDeviceByIdentifier(adminID, identifier, tenantWide)
	if err != nil {
		return nil, err
	}
	if device.IsDisposed() {
		return nil, ErrDeviceDisposed
	}

	filtered := make(map[string]interface{}, len(updates))
	for field, value := range updates {
		if deviceUpdatableFields[field] {
			filtered[field] = value
		}
	}

	// 자산번호 변경 시 중복 검증
	if newAsset, ok := filtered["asset_number"].(string); ok && newAsset != device.AssetNumber {
		var count int64
		if err := s.DB.Model(&models.Device{}).Where("asset_number = ? AND id != ?", newAsset, device.ID).Count(&count).Error; err != nil {
			return nil, err
		}
		if count > 0 {
			return nil, ErrAssetNumberExists
		}
	}

	// 담당자 변경 검증 및 액션 결정
	prevEmployeeID := device.EmployeeID
	newEmployeeID := prevEmployeeID
	if raw, ok := filtered["employee_id"]; ok {
		newEmployeeID = normalizeEmployeeID(raw)
		if newEmployeeID != nil {
			if err := s.validateEmployeeOwnership(device.AdminID, *newEmployeeID); err != nil {
				return nil, err
			}
		}
		filtered["employee_id"] = newEmployeeID
	}

	changes, err := s.collectChanges(device, filtered, prevEmployeeID, newEmployeeID)
	if err != nil {
		return nil, err
	}
	if len(changes) == 0 {
		return device, nil
	}

	action, prevStatus, newStatus := s.History.DeriveAssignmentAction(prevEmployeeID, newEmployeeID)
	description := s.History.BuildChangeDescription(changes)

	metadata := models.JSONMap{}
	changedFields := make([]string, 0, len(changes))
	for _, ch := range changes {
		changedFields = append(changedFields, ch.Field)
	}
	metadata["changed_fields"] = changedFields

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Device{}).Where("id = ?", device.ID).Updates(filtered).Error; err != nil {
			return err
		}
		return s.History.RecordHistory(tx, &models.DeviceHistory{
			DeviceID:          device.ID,
			ActionType:        action,
			ActionDescription: description,
			PreviousStatus:    prevStatus,
			NewStatus:         newStatus,
			PerformedBy:       performedBy,
			Metadata:          metadata,
		})
	})
	if err != nil {
		return nil, err
	}

	return s.GetDeviceByIdentifier(adminID, device.ID, tenantWide)
}

// ReturnDevice 장비 반납. 할당된 장비만 반납할 수 있다.
func (s *DeviceService) ReturnDevice(adminID, identifier string, tenantWide bool, performedBy string) (*models.Device, error) {
	device, err := s.GetDeviceByIdentifier(adminID, identifier, tenantWide)
	if err != nil {
		return nil, err
	}
	if !device.IsAssigned() {
		return nil, errors.New("할당되지 않은 장비는 반납할 수 없습니다")
	}

	previousHolder := s.employeeName(device.EmployeeID)

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Device{}).Where("id = ?", device.ID).Update("employee_id", nil).Error; err != nil {
			return err
		}
		return s.History.RecordHistory(tx, &models.DeviceHistory{
			DeviceID:          device.ID,
			ActionType:        models.HistoryActionReturn,
			ActionDescription: fmt.Sprintf("담당자: %s → %s", orNone(previousHolder), models.AssignStatusNone),
			PreviousStatus:    models.AssignStatusAssigned,
			NewStatus:         models.AssignStatusUnassigned,
			PerformedBy:       performedBy,
		})
	})
	if err != nil {
		return nil, err
	}

	return s.GetDeviceByIdentifier(adminID, device.ID, tenantWide)
}

// DisposeDevice 장비 폐기. 사유는 필수이며 담당자 해제와 용도 변경을
// 이력 기록과 함께 한 트랜잭션으로 처리한다.
func (s *DeviceService) DisposeDevice(adminID, identifier string, tenantWide bool, performedBy, reason string) (*models.Device, error) {
	if reason == "" {
		return nil, errors.New("폐기 사유는 필수입니다")
	}

	device, err := s.GetDeviceByIdentifier(adminID, identifier, tenantWide)
	if err != nil {
		return nil, err
	}
	if device.IsDisposed() {
		return nil, ErrDeviceDisposed
	}

	prevStatus := models.AssignStatusUnassigned
	if device.IsAssigned() {
		prevStatus = models.AssignStatusAssigned
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		updates := map[string]interface{}{
			"employee_id": nil,
			"purpose":     models.DevicePurposeDisposed,
		}
		if err := tx.Model(&models.Device{}).Where("id = ?", device.ID).Updates(updates).Error; err != nil {
			return err
		}
		return s.History.RecordHistory(tx, &models.DeviceHistory{
			DeviceID:          device.ID,
			ActionType:        models.HistoryActionDispose,
			ActionDescription: fmt.Sprintf("폐기 사유: %s", reason),
			PreviousStatus:    prevStatus,
			NewStatus:         models.AssignStatusUnassigned,
			PerformedBy:       performedBy,
			Metadata:          models.JSONMap{"reason": reason},
		})
	})
	if err != nil {
		return nil, err
	}

	return s.GetDeviceByIdentifier(adminID, device.ID, tenantWide)
}

// ImportDevices Excel/CSV 행을 자산번호 기준으로 업서트한다.
// 행 단위 오류는 결과에 누적될 뿐 나머지 처리를 중단시키지 않는다.
func (s *DeviceService) ImportDevices(adminID, performedBy string, rows []DeviceImportRow) (*ImportResult, error) {
	result := &ImportResult{Total: len(rows), Errors: []ImportRowError{}}

	for _, row := range rows {
		assetNumber := row.Fields["asset_number"]
		if assetNumber == "" {
			result.Errors = append(result.Errors, ImportRowError{
				Row:     row.RowNumber,
				Message: "자산번호가 비어 있습니다",
			})
			continue
		}

		if err := s.importRow(adminID, performedBy, row, result); err != nil {
			result.Errors = append(result.Errors, ImportRowError{
				Row:         row.RowNumber,
				AssetNumber: assetNumber,
				Message:     err.Error(),
			})
		}
	}
	return result, nil
}

// importRow 단일 행 업서트
func (s *DeviceService) importRow(adminID, performedBy string, row DeviceImportRow, result *ImportResult) error {
	assetNumber := row.Fields["asset_number"]

	var existing models.Device
	err := s.DB.First(&existing, "asset_number = ?", assetNumber).Error
	switch {
	case err == nil:
		if existing.AdminID != adminID {
			return errors.New("다른 관리자 소유의 자산번호입니다")
		}
		return s.importUpdate(&existing, performedBy, row, result)
	case errors.Is(err, gorm.ErrRecordNotFound):
		return s.importCreate(adminID, performedBy, row, result)
	default:
		return err
	}
}

// importCreate 행으로 새 장비 생성 + Excel생성 이력
func (s *DeviceService) importCreate(adminID, performedBy string, row DeviceImportRow, result *ImportResult) error {
	device := &models.Device{
		AdminID:        adminID,
		AssetNumber:    row.Fields["asset_number"],
		Manufacturer:   row.Fields["manufacturer"],
		ModelName:      row.Fields["model_name"],
		SerialNumber:   row.Fields["serial_number"],
		CPU:            row.Fields["cpu"],
		Memory:         row.Fields["memory"],
		Storage:        row.Fields["storage"],
		GPU:            row.Fields["gpu"],
		OS:             row.Fields["os"],
		MonitorSize:    row.Fields["monitor_size"],
		Purpose:        row.Fields["purpose"],
		DeviceType:     row.Fields["device_type"],
		InspectionDate: row.Fields["inspection_date"],
		IssueDate:      row.Fields["issue_date"],
	}
	if employeeID := s.resolveEmployeeByName(adminID, row.Fields["employee_name"]); employeeID != nil {
		device.EmployeeID = employeeID
	}

	newStatus := models.AssignStatusUnassigned
	if device.IsAssigned() {
		newStatus = models.AssignStatusAssigned
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(device).Error; err != nil {
			return err
		}
		return s.History.RecordHistory(tx, &models.DeviceHistory{
			DeviceID:          device.ID,
			ActionType:        models.HistoryActionExcelCreate,
			ActionDescription: fmt.Sprintf("Excel 가져오기로 등록 (자산번호: %s)", device.AssetNumber),
			PreviousStatus:    models.AssignStatusNone,
			NewStatus:         newStatus,
			PerformedBy:       performedBy,
			Metadata:          models.JSONMap{"source_row": row.RowNumber},
		})
	})
	if err != nil {
		return err
	}
	result.Created++
	return nil
}

// importUpdate 기존 장비를 행 값으로 갱신 + Excel수정 이력
func (s *DeviceService) importUpdate(device *models.Device, performedBy string, row DeviceImportRow, result *ImportResult) error {
	updates := make(map[string]interface{})
	prevEmployeeID := device.EmployeeID
	newEmployeeID := prevEmployeeID

	for field, value := range row.Fields {
		if field == "employee_name" || field == "asset_number" || value == "" {
			continue
		}
		if deviceFieldValue(device, field) != value {
			updates[field] = value
		}
	}
	if name := row.Fields["employee_name"]; name != "" {
		resolved := s.resolveEmployeeByName(device.AdminID, name)
		if resolved != nil && (prevEmployeeID == nil || *resolved != *prevEmployeeID) {
			newEmployeeID = resolved
			updates["employee_id"] = resolved
		}
	}

	if len(updates) == 0 {
		result.Skipped++
		return nil
	}

	changes, err := s.collectChanges(device, updates, prevEmployeeID, newEmployeeID)
	if err != nil {
		return err
	}

	_, prevStatus, newStatus := s.History.DeriveAssignmentAction(prevEmployeeID, newEmployeeID)
	changedFields := make([]string, 0, len(changes))
	for _, ch := range changes {
		changedFields = append(changedFields, ch.Field)
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Device{}).Where("id = ?", device.ID).Updates(updates).Error; err != nil {
			return err
		}
		return s.History.RecordHistory(tx, &models.DeviceHistory{
			DeviceID:          device.ID,
			ActionType:        models.HistoryActionExcelModify,
			ActionDescription: s.History.BuildChangeDescription(changes),
			PreviousStatus:    prevStatus,
			NewStatus:         newStatus,
			PerformedBy:       performedBy,
			Metadata:          models.JSONMap{"changed_fields": changedFields, "source_row": row.RowNumber},
		})
	})
	if err != nil {
		return err
	}
	result.Updated++
	return nil
}

// collectChanges 기존 장비와 갱신 맵을 비교해 변경 내역을 만든다.
// 담당자 변경은 ID가 아닌 직원 이름으로 표기한다.
func (s *DeviceService) collectChanges(device *models.Device, updates map[string]interface{}, prevEmployeeID, newEmployeeID *string) ([]FieldChange, error) {
	var changes []FieldChange

	for field, raw := range updates {
		if field == "employee_id" {
			continue
		}
		value, ok := raw.(string)
		if !ok {
			continue
		}
		old := deviceFieldValue(device, field)
		if old != value {
			changes = append(changes, FieldChange{Field: field, Old: old, New: value})
		}
	}

	employeeChanged := false
	if prevEmployeeID == nil && newEmployeeID != nil {
		employeeChanged = true
	} else if prevEmployeeID != nil && newEmployeeID == nil {
		employeeChanged = true
	} else if prevEmployeeID != nil && newEmployeeID != nil && *prevEmployeeID != *newEmployeeID {
		employeeChanged = true
	}
	if employeeChanged {
		changes = append(changes, FieldChange{
			Field: "employee_id",
			Old:   s.employeeName(prevEmployeeID),
			New:   s.employeeName(newEmployeeID),
		})
	}

	return changes, nil
}

// validateEmployeeOwnership 직원이 같은 테넌트 소속인지 확인
func (s *DeviceService) validateEmployeeOwnership(adminID, employeeID string) error {
	var count int64
	if err := s.DB.Model(&models.Employee{}).Where("id = ? AND admin_id = ?", employeeID, adminID).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return ErrEmployeeNotFound
	}
	return nil
}

// resolveEmployeeByName 테넌트 내 직원 이름 매칭. 없으면 nil.
func (s *DeviceService) resolveEmployeeByName(adminID, name string) *string {
	if name == "" {
		return nil
	}
	var employee models.Employee
	if err := s.DB.Where("admin_id = ? AND name = ?", adminID, name).First(&employee).Error; err != nil {
		return nil
	}
	return &employee.ID
}

// employeeName 직원 ID로 이름 조회. 없거나 nil이면 빈 문자열.
func (s *DeviceService) employeeName(employeeID *string) string {
	if employeeID == nil || *employeeID == "" {
		return ""
	}
	var employee models.Employee
	if err := s.DB.First(&employee, "id = ?", *employeeID).Error; err != nil {
		return ""
	}
	return employee.Name
}

// normalizeEmployeeID 요청 값(string / *string / nil)을 *string으로 정규화
func normalizeEmployeeID(raw interface{}) *string {
	switch v := raw.(type) {
	case nil:
		return nil
	case string:
		if v == "" {
			return nil
		}
		return &v
	case *string:
		if v == nil || *v == "" {
			return nil
		}
		return v
	default:
		return nil
	}
}

// deviceFieldValue 컬럼 이름으로 장비 필드 값 조회
func deviceFieldValue(d *models.Device, field string) string {
	switch field {
	case "asset_number":
		return d.AssetNumber
	case "manufacturer":
		return d.Manufacturer
	case "model_name":
		return d.ModelName
	case "serial_number":
		return d.SerialNumber
	case "cpu":
		return d.CPU
	case "memory":
		return d.Memory
	case "storage":
		return d.Storage
	case "gpu":
		return d.GPU
	case "os":
		return d.OS
	case "monitor":
		return d.Monitor
	case "monitor_size":
		return d.MonitorSize
	case "purpose":
		return d.Purpose
	case "device_type":
		return d.DeviceType
	case "inspection_date":
		return d.InspectionDate
	case "issue_date":
		return d.IssueDate
	default:
		return ""
	}
}

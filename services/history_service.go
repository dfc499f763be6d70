package services

import (
	"fmt"
	"strings"

	"gorm.io/gorm"

	"qrasset-http-service/config"
	"qrasset-http-service/models"
)

// FieldChange 단일 필드 변경 내역
type FieldChange struct {
	Field string
	Old   string
	New   string
}

// historyFieldOrder 변경 설명 문구에서 필드가 나열되는 순서
var historyFieldOrder = []string{
	"asset_number",
	"employee_id",
	"manufacturer",
	"model_name",
	"serial_number",
	"cpu",
	"memory",
	"storage",
	"gpu",
	"os",
	"monitor",
	"monitor_size",
	"inspection_date",
	"purpose",
	"device_type",
	"issue_date",
}

// InterfaceHistoryService 장비 이력 서비스 인터페이스
type InterfaceHistoryService interface {
	RecordHistory(tx *gorm.DB, entry *models.DeviceHistory) error
	GetDeviceHistory(deviceID string) ([]models.DeviceHistory, error)
	GetRecentActivities(adminID string, tenantWide bool, limit int) ([]models.DeviceHistory, error)
	DeriveAssignmentAction(prevEmployeeID, newEmployeeID *string) (models.HistoryAction, string, string)
	BuildChangeDescription(changes []FieldChange) string
}

// HistoryService 장비 상태 전이 기록 서비스.
// 기록은 생성만 하며 수정·삭제 경로는 제공하지 않는다.
type HistoryService struct {
	DB     *gorm.DB
	Config *config.Config
}

// NewHistoryService 새 이력 서비스 생성
func NewHistoryService(db *gorm.DB, cfg *config.Config) InterfaceHistoryService {
	return &HistoryService{
		DB:     db,
		Config: cfg,
	}
}

// RecordHistory 이력 항목 추가. 원 변경과 같은 트랜잭션에서 호출해야 한다.
func (s *HistoryService) RecordHistory(tx *gorm.DB, entry *models.DeviceHistory) error {
	if tx == nil {
		tx = s.DB
	}
	return tx.Create(entry).Error
}

// GetDeviceHistory 장비별 이력 조회 (최신순)
func (s *HistoryService) GetDeviceHistory(deviceID string) ([]models.DeviceHistory, error) {
	var entries []models.DeviceHistory
	if err := s.DB.Where("device_id = ?", deviceID).Order("performed_at DESC").Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// GetRecentActivities 최근 활동 피드. 이력 원장만을 근거로 한다.
func (s *HistoryService) GetRecentActivities(adminID string, tenantWide bool, limit int) ([]models.DeviceHistory, error) {
	var entries []models.DeviceHistory
	query := s.DB.Order("performed_at DESC").Limit(limit)
	if !tenantWide {
		query = query.Where(
			"device_id IN (?)",
			s.DB.Model(&models.Device{}).Select("id").Where("admin_id = ?", adminID),
		)
	}
	if err := query.Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// DeriveAssignmentAction 담당자 변경 전후 값으로 액션과 상태 스냅샷을 결정한다.
//
//	없음 → 직원   : 할당   (미할당 → 할당됨)
//	직원 → 없음   : 반납   (할당됨 → 미할당)
//	직원 → 다른직원: 재할당 (할당됨 → 할당됨)
//	변경 없음     : 수정   (상태 유지)
func (s *HistoryService) DeriveAssignmentAction(prevEmployeeID, newEmployeeID *string) (models.HistoryAction, string, string) {
	prevAssigned := prevEmployeeID != nil && *prevEmployeeID != ""
	newAssigned := newEmployeeID != nil && *newEmployeeID != ""

	switch {
	case !prevAssigned && newAssigned:
		return models.HistoryActionAssign, models.AssignStatusUnassigned, models.AssignStatusAssigned
	case prevAssigned && !newAssigned:
		return models.HistoryActionReturn, models.AssignStatusAssigned, models.AssignStatusUnassigned
	case prevAssigned && newAssigned && *prevEmployeeID != *newEmployeeID:
		return models.HistoryActionReassign, models.AssignStatusAssigned, models.AssignStatusAssigned
	default:
		prev := models.AssignStatusUnassigned
		if prevAssigned {
			prev = models.AssignStatusAssigned
		}
		return models.HistoryActionModify, prev, prev
	}
}

// BuildChangeDescription 변경 내역을 "라벨: 이전 → 이후" 형식으로 조립한다.
// 빈 값은 없음으로 표기한다.
func (s *HistoryService) BuildChangeDescription(changes []FieldChange) string {
	byField := make(map[string]FieldChange, len(changes))
	for _, ch := range changes {
		byField[ch.Field] = ch
	}

	parts := make([]string, 0, len(changes))
	for _, field := range historyFieldOrder {
		ch, ok := byField[field]
		if !ok {
			continue
		}
		label, ok := models.HistoryFieldLabels[field]
		if !ok {
			label = field
		}
		parts = append(parts, fmt.Sprintf("%s: %s → %s", label, orNone(ch.Old), orNone(ch.New)))
	}
	return strings.Join(parts, ", ")
}

// orNone 빈 문자열을 없음 표기로 치환
func orNone(v string) string {
	if v == "" {
		return models.AssignStatusNone
	}
	return v
}

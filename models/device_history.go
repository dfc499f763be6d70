package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// HistoryAction 장비 이력 액션 타입
type HistoryAction string

const (
	HistoryActionCreate      HistoryAction = "생성"
	HistoryActionAssign      HistoryAction = "할당"
	HistoryActionReturn      HistoryAction = "반납"
	HistoryActionReassign    HistoryAction = "재할당"
	HistoryActionModify      HistoryAction = "수정"
	HistoryActionDispose     HistoryAction = "폐기"
	HistoryActionDelete      HistoryAction = "삭제"
	HistoryActionExcelCreate HistoryAction = "Excel생성"
	HistoryActionExcelModify HistoryAction = "Excel수정"
)

// 장비 할당 상태 스냅샷 값
const (
	AssignStatusAssigned   = "할당됨"
	AssignStatusUnassigned = "미할당"
	AssignStatusNone       = "없음"
)

// HistoryFieldLabels 변경 내역 설명에 쓰이는 필드별 한글 라벨
var HistoryFieldLabels = map[string]string{
	"asset_number":    "자산번호",
	"employee_id":     "담당자",
	"manufacturer":    "제조사",
	"model_name":      "모델명",
	"serial_number":   "시리얼번호",
	"cpu":             "CPU",
	"memory":          "메모리",
	"storage":         "저장장치",
	"gpu":             "그래픽카드",
	"os":              "운영체제",
	"monitor":         "모니터",
	"monitor_size":    "모니터크기",
	"inspection_date": "조사일자",
	"purpose":         "용도",
	"device_type":     "장비타입",
	"issue_date":      "지급일자",
}

// DeviceHistory 장비 상태 전이에 대한 불변 감사 기록.
// 한번 기록된 항목은 어떤 코드 경로에서도 수정·삭제되지 않는다.
type DeviceHistory struct {
	ID                string        `gorm:"type:char(36);primaryKey" json:"id"`
	DeviceID          string        `gorm:"type:char(36);not null;index" json:"device_id"`
	ActionType        HistoryAction `gorm:"type:varchar(50);not null;index" json:"action_type"`
	ActionDescription string        `gorm:"type:text" json:"action_description"`
	PreviousStatus    string        `gorm:"type:varchar(50)" json:"previous_status"`
	NewStatus         string        `gorm:"type:varchar(50)" json:"new_status"`
	PerformedBy       string        `gorm:"type:char(36)" json:"performed_by"`
	PerformedAt       time.Time     `gorm:"index" json:"performed_at"`
	Metadata          JSONMap       `gorm:"type:json" json:"metadata"`
}

// BeforeCreate is a GORM hook that runs before creating a new record
func (h *DeviceHistory) BeforeCreate(tx *gorm.DB) error {
	if h.ID == "" {
		h.ID = uuid.NewString()
	}
	if h.PerformedAt.IsZero() {
		h.PerformedAt = time.Now()
	}
	return nil
}

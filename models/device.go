package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	// DevicePurposeDisposed 폐기 상태(말단 상태). QR 발급 및 일반 목록에서 제외된다.
	DevicePurposeDisposed = "폐기"
	// DevicePurposeWork 업무용
	DevicePurposeWork = "업무용"
)

// Device represents managed IT assets (개인 지급 장비)
type Device struct {
	ID             string  `gorm:"type:char(36);primaryKey" json:"id"`
	AdminID        string  `gorm:"type:char(36);not null;index" json:"admin_id"` // 소유 테넌트(관리자) ID
	EmployeeID     *string `gorm:"type:char(36);index" json:"employee_id"`       // 담당 직원, 미할당이면 NULL
	AssetNumber    string  `gorm:"type:varchar(100);uniqueIndex;not null" json:"asset_number"`
	Manufacturer   string  `gorm:"type:varchar(100)" json:"manufacturer"`
	ModelName      string  `gorm:"type:varchar(100)" json:"model_name"`
	SerialNumber   string  `gorm:"type:varchar(100)" json:"serial_number"`
	CPU            string  `gorm:"type:varchar(100)" json:"cpu"`
	Memory         string  `gorm:"type:varchar(100)" json:"memory"`
	Storage        string  `gorm:"type:varchar(100)" json:"storage"`
	GPU            string  `gorm:"type:varchar(100)" json:"gpu"`
	OS             string  `gorm:"type:varchar(100)" json:"os"`
	Monitor        string  `gorm:"type:varchar(100)" json:"monitor"`
	MonitorSize    string  `gorm:"type:varchar(50)" json:"monitor_size"`
	Purpose        string  `gorm:"type:varchar(50)" json:"purpose"`
	DeviceType     string  `gorm:"type:varchar(50)" json:"device_type"`
	InspectionDate string  `gorm:"type:varchar(20)" json:"inspection_date"`
	IssueDate      string  `gorm:"type:varchar(20)" json:"issue_date"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	Employee *Employee       `gorm:"foreignKey:EmployeeID" json:"employee,omitempty"`
	History  []DeviceHistory `gorm:"foreignKey:DeviceID" json:"history,omitempty"`
}

// BeforeCreate is a GORM hook that runs before creating a new record
func (d *Device) BeforeCreate(tx *gorm.DB) error {
	if d.ID == "" {
		d.ID = uuid.NewString()
	}
	return nil
}

// IsDisposed 폐기 여부
func (d *Device) IsDisposed() bool {
	return d.Purpose == DevicePurposeDisposed
}

// IsAssigned 담당 직원 할당 여부
func (d *Device) IsAssigned() bool {
	return d.EmployeeID != nil && *d.EmployeeID != ""
}

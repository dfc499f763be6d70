package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Employee represents staff members that devices are assigned to (직원)
type Employee struct {
	ID          string    `gorm:"type:char(36);primaryKey" json:"id"`
	AdminID     string    `gorm:"type:char(36);not null;index" json:"admin_id"` // 소유 테넌트(관리자) ID
	Name        string    `gorm:"type:varchar(50);not null" json:"name"`
	Department  string    `gorm:"type:varchar(50);not null" json:"department"`
	Position    string    `gorm:"type:varchar(50);not null" json:"position"`
	CompanyName string    `gorm:"type:varchar(100);not null" json:"company_name"`
	Email       string    `gorm:"type:varchar(100)" json:"email"`
	Phone       string    `gorm:"type:varchar(30)" json:"phone"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Relations
	Devices []Device `gorm:"foreignKey:EmployeeID" json:"devices,omitempty"`

	// 목록 조회 시 채워지는 파생 필드
	DeviceCount int64 `gorm:"-" json:"device_count"`
}

// BeforeCreate is a GORM hook that runs before creating a new record
func (e *Employee) BeforeCreate(tx *gorm.DB) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	return nil
}

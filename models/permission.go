package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PermissionAction 권한 액션
type PermissionAction string

const (
	PermissionActionRead   PermissionAction = "read"
	PermissionActionWrite  PermissionAction = "write"
	PermissionActionDelete PermissionAction = "delete"
	PermissionActionAdmin  PermissionAction = "admin"
)

// 권한 대상 리소스 타입
const (
	ResourceTypeDevices   = "devices"
	ResourceTypeEmployees = "employees"
	ResourceTypeUsers     = "users"
)

// Permission 사용자별 권한 부여 튜플.
// resource_id가 NULL이면 해당 리소스 타입 전체에 대한 부여를 의미한다.
type Permission struct {
	ID           string           `gorm:"type:char(36);primaryKey" json:"id"`
	UserID       string           `gorm:"type:char(36);not null;index" json:"user_id"`
	ResourceType string           `gorm:"type:varchar(50);not null;index" json:"resource_type"`
	ResourceID   *string          `gorm:"type:char(36)" json:"resource_id"`
	Action       PermissionAction `gorm:"type:varchar(20);not null" json:"action"`
	CreatedAt    time.Time        `json:"created_at"`

	// Relations
	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

// BeforeCreate is a GORM hook that runs before creating a new record
func (p *Permission) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

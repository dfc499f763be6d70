package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserRole 사용자 역할
type UserRole string

const (
	UserRoleAdmin   UserRole = "admin"   // 전체 테넌트 관리자
	UserRoleManager UserRole = "manager" // 자기 소유 행만 접근 가능
)

// User represents tenant-owning accounts (관리자 계정)
type User struct {
	ID           string    `gorm:"type:char(36);primaryKey" json:"id"`
	Email        string    `gorm:"type:varchar(100);uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"type:varchar(100);not null" json:"-"` // Password not exposed in JSON
	CompanyName  string    `gorm:"type:varchar(100)" json:"company_name"`
	Role         UserRole  `gorm:"type:varchar(20);default:'manager'" json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	// Relations
	Employees []Employee `gorm:"foreignKey:AdminID" json:"employees,omitempty"`
	Devices   []Device   `gorm:"foreignKey:AdminID" json:"devices,omitempty"`
}

// BeforeCreate is a GORM hook that runs before creating a new record
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}

package services

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"qrasset-http-service/config"
	"qrasset-http-service/models"
)

// setupTestDB 테스트용 인메모리 SQLite 데이터베이스 생성.
// 테스트마다 고유한 이름을 써서 커넥션 풀 간 상태 공유를 막는다.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.Employee{},
		&models.Device{},
		&models.DeviceHistory{},
		&models.Permission{},
	)
	require.NoError(t, err)

	return db
}

// testConfig 테스트용 설정
func testConfig() *config.Config {
	return &config.Config{
		EnvType:              "LOCAL",
		JWTSecretKey:         "test-secret-key",
		FrontendURL:          "https://invenone.it.kr",
		UploadMaxBytes:       10 * 1024 * 1024,
		DefaultAdminEmail:    "admin@example.com",
		DefaultAdminPassword: "admin123",
	}
}

// createTestUser 테스트 사용자 생성
func createTestUser(t *testing.T, db *gorm.DB, email string, role models.UserRole) *models.User {
	t.Helper()
	user := &models.User{
		Email:        email,
		PasswordHash: "not-a-real-hash",
		CompanyName:  "테스트 주식회사",
		Role:         role,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

// createTestEmployee 테스트 직원 생성
func createTestEmployee(t *testing.T, db *gorm.DB, adminID, name string) *models.Employee {
	t.Helper()
	employee := &models.Employee{
		AdminID:     adminID,
		Name:        name,
		Department:  "개발팀",
		Position:    "사원",
		CompanyName: "테스트 주식회사",
	}
	require.NoError(t, db.Create(employee).Error)
	return employee
}

// createTestDevice 테스트 장비 생성 (이력 없이 직접 삽입)
func createTestDevice(t *testing.T, db *gorm.DB, adminID, assetNumber string, employeeID *string) *models.Device {
	t.Helper()
	device := &models.Device{
		AdminID:      adminID,
		EmployeeID:   employeeID,
		AssetNumber:  assetNumber,
		Manufacturer: "Dell",
		ModelName:    "Latitude 5420",
		Purpose:      models.DevicePurposeWork,
	}
	require.NoError(t, db.Create(device).Error)
	return device
}

// deviceHistoryFor 장비의 이력 항목 조회 (최신순)
func deviceHistoryFor(t *testing.T, db *gorm.DB, deviceID string) []models.DeviceHistory {
	t.Helper()
	var entries []models.DeviceHistory
	require.NoError(t, db.Where("device_id = ?", deviceID).Order("performed_at DESC, id DESC").Find(&entries).Error)
	return entries
}

package controllers

import (
	"fmt"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"qrasset-http-service/config"
	"qrasset-http-service/models"
	"qrasset-http-service/services/container"
)

// setupTestContainer 격리된 인메모리 DB 위에 서비스 컨테이너를 구성한다
func setupTestContainer(t *testing.T) (*gorm.DB, *container.ServiceContainer) {
	t.Helper()

	// 커넥션 풀이 같은 DB를 공유하도록 이름 있는 인메모리 DSN을 쓴다
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Employee{},
		&models.Device{},
		&models.DeviceHistory{},
		&models.Permission{},
	))

	return db, container.NewServiceContainer(db, testConfig())
}

func testConfig() *config.Config {
	return &config.Config{
		JWTSecretKey: "test-secret-key",
		FrontendURL:  "https://invenone.it.kr",
		// 연결되지 않는 주소. 컨테이너는 캐시 없이 동작한다.
		RedisHost:      "127.0.0.1",
		RedisPort:      "1",
		UploadMaxBytes: 10 * 1024 * 1024,
	}
}

// authStub 인증 미들웨어가 컨텍스트에 저장하는 클레임을 직접 주입한다
func authStub(userID, role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("userID", userID)
		c.Set("email", "tester@example.com")
		c.Set("role", role)
		c.Next()
	}
}

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

func createTestDevice(t *testing.T, db *gorm.DB, adminID, assetNumber, purpose string) *models.Device {
	t.Helper()
	device := &models.Device{
		AdminID:      adminID,
		AssetNumber:  assetNumber,
		Manufacturer: "Dell",
		ModelName:    "Latitude 5420",
		Purpose:      purpose,
	}
	require.NoError(t, db.Create(device).Error)
	return device
}

// envelope 표준 응답 본문
type envelope struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

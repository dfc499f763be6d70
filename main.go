// @title           QR Asset Management API
// @version         1.0
// @description     QR 코드 기반 IT 자산 관리 서비스 백엔드 API

// @contact.name   API Support
// @contact.email  support@invenone.it.kr

// @host      localhost:8080
// @BasePath  /api

// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
// @description                 `Bearer ` 접두사와 함께 토큰을 입력하세요
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"qrasset-http-service/config"
	"qrasset-http-service/models"
	"qrasset-http-service/routes"
	"qrasset-http-service/services"
)

func main() {
	// 로그 설정 초기화
	if err := config.SetupLogger(); err != nil {
		fmt.Printf("로그 설정 초기화 실패: %v\n", err)
		os.Exit(1)
	}

	// .env 파일 로드
	if err := godotenv.Load(); err != nil {
		config.Warning(".env 파일을 불러올 수 없습니다: %v", err)
		// 환경 변수가 다른 경로로 설정되어 있을 수 있으므로 계속 진행한다
	} else {
		config.Info(".env 파일 로드 완료")
	}

	// 설정 로드
	cfg := config.GetConfig()

	// 데이터베이스 연결
	db, err := initDB(cfg)
	if err != nil {
		log.Fatalf("데이터베이스 연결 실패: %v", err)
	}

	// 마이그레이션 모드에 따라 분기
	if cfg.DBMigrationMode == "drop" {
		log.Println("경고: drop 모드로 실행 중, 모든 테이블을 삭제 후 재생성합니다")
		if err := dropAndRecreateTables(db); err != nil {
			log.Fatalf("테이블 재생성 실패: %v", err)
		}
	} else {
		if err := autoMigrate(db); err != nil {
			log.Fatalf("자동 마이그레이션 실패: %v", err)
		}
	}

	// 기본 admin 계정 보장
	ensureAdminExists(db, cfg)

	// 라우터 초기화
	r := routes.SetupRouter(db, cfg)

	// 서버 시작
	port := cfg.ServerPort
	config.Info("서버 시작: http://localhost:%s", port)
	if err := r.Run(":" + port); err != nil {
		config.Error("서버 시작 실패: %v", err)
		os.Exit(1)
	}
}

// initDB 데이터베이스 연결 초기화
func initDB(cfg *config.Config) (*gorm.DB, error) {
	db, err := gorm.Open(mysql.Open(cfg.GetDSN()), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	fmt.Println("Database connection established")
	return db, nil
}

// autoMigrate 모든 모델 자동 마이그레이션 (새 컬럼/테이블 추가만 수행)
func autoMigrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.User{},
		&models.Employee{},
		&models.Device{},
		&models.DeviceHistory{},
		&models.Permission{},
	)
	if err != nil {
		return err
	}

	fmt.Println("Database migration completed")
	return nil
}

// dropAndRecreateTables 모든 테이블 삭제 후 재생성
func dropAndRecreateTables(db *gorm.DB) error {
	// 경고: 모든 데이터가 삭제된다
	db.Exec("SET FOREIGN_KEY_CHECKS = 0")
	defer db.Exec("SET FOREIGN_KEY_CHECKS = 1")

	var tables []string
	if err := db.Raw("SHOW TABLES").Scan(&tables).Error; err != nil {
		return fmt.Errorf("failed to get table names: %w", err)
	}

	for _, table := range tables {
		log.Printf("테이블 삭제: %s", table)
		if err := db.Exec(fmt.Sprintf("DROP TABLE IF EXISTS `%s`", table)).Error; err != nil {
			return fmt.Errorf("failed to drop table %s: %w", table, err)
		}
	}

	log.Println("테이블 재생성 중")
	return autoMigrate(db)
}

// ensureAdminExists 시스템에 admin 계정이 최소 하나 존재하도록 보장
func ensureAdminExists(db *gorm.DB, cfg *config.Config) {
	userService := services.NewUserService(db, cfg)
	if err := userService.EnsureDefaultAdmin(); err != nil {
		log.Printf("기본 admin 계정 생성 실패: %v", err)
		return
	}
}

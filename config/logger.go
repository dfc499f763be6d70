package config

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"
)

var (
	// 레벨별 로거
	InfoLogger    *log.Logger
	WarningLogger *log.Logger
	ErrorLogger   *log.Logger
)

// SetupLogger 로그 설정 초기화
func SetupLogger() error {
	// 로그 디렉터리 생성
	logDir := "logs"
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return fmt.Errorf("로그 디렉터리 생성 실패: %v", err)
	}

	// 날짜별 로그 파일명 생성
	currentTime := time.Now()
	logFileName := filepath.Join(logDir, fmt.Sprintf("%s.log", currentTime.Format("2006-01-02")))

	// 로그 파일 열기
	logFile, err := os.OpenFile(logFileName, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		return fmt.Errorf("로그 파일 열기 실패: %v", err)
	}

	// 콘솔과 파일에 동시 출력
	multiWriter := io.MultiWriter(os.Stdout, logFile)

	// 레벨별 로거 초기화
	InfoLogger = log.New(multiWriter, "INFO: ", log.Ldate|log.Ltime|log.Lshortfile)
	WarningLogger = log.New(multiWriter, "WARNING: ", log.Ldate|log.Ltime|log.Lshortfile)
	ErrorLogger = log.New(multiWriter, "ERROR: ", log.Ldate|log.Ltime|log.Lshortfile)

	return nil
}

// Info 정보 레벨 로그 기록
func Info(format string, v ...interface{}) {
	InfoLogger.Printf(format, v...)
}

// Warning 경고 레벨 로그 기록
func Warning(format string, v ...interface{}) {
	WarningLogger.Printf(format, v...)
}

// Error 에러 레벨 로그 기록
func Error(format string, v ...interface{}) {
	ErrorLogger.Printf(format, v...)
}

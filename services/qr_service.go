package services

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"regexp"
	"time"

	qrcode "github.com/skip2/go-qrcode"
	"gorm.io/gorm"

	"qrasset-http-service/config"
	"qrasset-http-service/models"
)

// 생성일(g) 필드의 날짜 형식
var qrDateRegex = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// InterfaceQRService QR 코덱/렌더링 서비스 인터페이스
type InterfaceQRService interface {
	BuildDevicePayload(device *models.Device, companyName string, includeLink bool) *models.DeviceQRPayload
	BuildEmployeePayload(employee *models.Employee, companyName string, deviceCount int) *models.EmployeeQRPayload
	DeviceLink(assetNumber string) string
	EncodePNG(content string, size int) ([]byte, error)
	EncodeDataURL(content string, size int) (string, error)
	Decode(qrString string) *models.QRDecodeResult
	Validate(qrString string) *models.QRValidationResult
}

// QRService QR 페이로드 생성과 디코드/검증 서비스.
// 단축 키 스키마는 이미 발급된 코드와의 계약이므로 여기서만 다룬다.
type QRService struct {
	DB     *gorm.DB
	Config *config.Config
}

// NewQRService 새 QR 서비스 생성
func NewQRService(db *gorm.DB, cfg *config.Config) InterfaceQRService {
	return &QRService{
		DB:     db,
		Config: cfg,
	}
}

// BuildDevicePayload 장비 QR 페이로드(버전 2.0) 생성.
// includeLink가 아니면 l 필드는 null로 직렬화된다.
func (s *QRService) BuildDevicePayload(device *models.Device, companyName string, includeLink bool) *models.DeviceQRPayload {
	employeeName := ""
	if device.Employee != nil {
		employeeName = device.Employee.Name
	}

	payload := &models.DeviceQRPayload{
		Type:         models.QRTypeDevice,
		ID:           device.ID,
		AssetNumber:  device.AssetNumber,
		Manufacturer: device.Manufacturer,
		ModelName:    device.ModelName,
		SerialNumber: device.SerialNumber,
		Employee:     employeeName,
		Company:      companyName,
		Generated:    time.Now().Format("2006-01-02"),
		DeviceType:   device.DeviceType,
		CPU:          device.CPU,
		Memory:       device.Memory,
		Storage:      device.Storage,
		OS:           device.OS,
		CreatedDate:  device.CreatedAt.Format("2006-01-02"),
		Version:      models.QRVersionCurrent,
	}
	if includeLink {
		link := s.DeviceLink(device.AssetNumber)
		payload.Link = &link
	}
	return payload
}

// BuildEmployeePayload 직원 QR 페이로드(버전 2.0) 생성
func (s *QRService) BuildEmployeePayload(employee *models.Employee, companyName string, deviceCount int) *models.EmployeeQRPayload {
	return &models.EmployeeQRPayload{
		Type:        models.QRTypeEmployee,
		ID:          employee.ID,
		Name:        employee.Name,
		Department:  employee.Department,
		Position:    employee.Position,
		Company:     companyName,
		Generated:   time.Now().Format("2006-01-02"),
		Email:       employee.Email,
		Phone:       employee.Phone,
		CreatedDate: employee.CreatedAt.Format("2006-01-02"),
		DeviceCount: deviceCount,
		Version:     models.QRVersionCurrent,
	}
}

// DeviceLink 장비 상세 페이지 딥링크
func (s *QRService) DeviceLink(assetNumber string) string {
	return fmt.Sprintf("%s/devices/%s", s.Config.FrontendURL, assetNumber)
}

// EncodePNG QR 문자열을 PNG 이미지로 렌더링
func (s *QRService) EncodePNG(content string, size int) ([]byte, error) {
	if size <= 0 {
		size = 200
	}
	return qrcode.Encode(content, qrcode.Medium, size)
}

// EncodeDataURL 일괄 응답용 base64 data URL 렌더링
func (s *QRService) EncodeDataURL(content string, size int) (string, error) {
	png, err := s.EncodePNG(content, size)
	if err != nil {
		return "", err
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(png), nil
}

// Decode QR 문자열을 포맷과 무관한 공통 필드 집합으로 정규화한다.
// 어떤 입력이어도 에러를 던지지 않고 결과 값으로 보고한다.
func (s *QRService) Decode(qrString string) *models.QRDecodeResult {
	var raw map[string]interface{}
	if err := json.Unmarshal([]byte(qrString), &raw); err != nil || raw == nil {
		return &models.QRDecodeResult{
			IsValid: false,
			Error:   "Invalid QR code format - must be valid JSON",
		}
	}

	shortType := stringField(raw, "t")
	shortID := stringField(raw, "i")
	generated := stringField(raw, "g")

	// 단축 키 포맷
	if shortType != "" && shortID != "" && generated != "" {
		var validationErrors []string
		if shortType != models.QRTypeDevice && shortType != models.QRTypeEmployee {
			validationErrors = append(validationErrors, `Invalid type (must be "d" for device or "e" for employee)`)
		}
		if !qrDateRegex.MatchString(generated) {
			validationErrors = append(validationErrors, "Invalid date format (must be YYYY-MM-DD)")
		}
		if len(validationErrors) > 0 {
			return &models.QRDecodeResult{
				IsValid:          false,
				ValidationErrors: validationErrors,
				Error:            "Invalid QR code format",
			}
		}

		var payload models.SimplifiedQRPayload
		if err := json.Unmarshal([]byte(qrString), &payload); err != nil {
			return &models.QRDecodeResult{
				IsValid: false,
				Error:   "Invalid QR code format - must be valid JSON",
			}
		}

		normalizedType := "device"
		if payload.Type == models.QRTypeEmployee {
			normalizedType = "employee"
		}
		data := &models.DecodedQRData{
			Type:         normalizedType,
			ID:           payload.ID,
			AssetNumber:  payload.AssetNumber,
			Manufacturer: payload.Manufacturer,
			ModelName:    payload.NameOrModel,
			SerialNumber: payload.SerialNumber,
			Name:         payload.NameOrModel,
			Department:   payload.Department,
			Position:     payload.Position,
			Company:      payload.Company,
			GeneratedAt:  payload.Generated,
			DeviceType:   payload.DeviceType,
			CPU:          payload.CPU,
			Memory:       payload.Memory,
			Storage:      payload.Storage,
			OS:           payload.OS,
			CreatedAt:    payload.CreatedDate,
			Version:      orVersion(payload.Version),
		}
		if payload.Employee != "" {
			data.Employee = &models.QREmployeeRef{Name: payload.Employee}
		}
		return &models.QRDecodeResult{
			IsValid: true,
			Format:  models.QRFormatSimplified,
			Version: orVersion(payload.Version),
			Data:    data,
		}
	}

	// 구 포맷 (전체 키 이름)
	if stringField(raw, "type") != "" && stringField(raw, "id") != "" {
		var payload models.LegacyQRPayload
		if err := json.Unmarshal([]byte(qrString), &payload); err != nil {
			return &models.QRDecodeResult{
				IsValid: false,
				Error:   "Invalid QR code format - must be valid JSON",
			}
		}
		data := &models.DecodedQRData{
			Type:         payload.Type,
			ID:           payload.ID,
			AssetNumber:  payload.AssetNumber,
			Manufacturer: payload.Manufacturer,
			ModelName:    payload.ModelName,
			SerialNumber: payload.SerialNumber,
			Name:         payload.Name,
			Department:   payload.Department,
			Position:     payload.Position,
			Company:      payload.Company,
			GeneratedAt:  payload.GeneratedAt,
			Version:      orVersion(payload.Version),
		}
		return &models.QRDecodeResult{
			IsValid: true,
			Format:  models.QRFormatLegacy,
			Version: orVersion(payload.Version),
			Data:    data,
		}
	}

	return &models.QRDecodeResult{
		IsValid:          false,
		ValidationErrors: []string{"Invalid QR code format - missing required fields"},
		Error:            "Invalid QR code format",
	}
}

// Validate DB 조회 없는 순수 구조 검증. 판정 결과는 항상 200으로 내려간다.
func (s *QRService) Validate(qrString string) *models.QRValidationResult {
	var raw map[string]interface{}
	if err := json.Unmarshal([]byte(qrString), &raw); err != nil || raw == nil {
		return &models.QRValidationResult{
			IsValid: false,
			Error:   "Invalid JSON format",
		}
	}

	shortType := stringField(raw, "t")
	isValid := shortType != "" && stringField(raw, "i") != "" && stringField(raw, "g") != ""

	format := models.QRFormatLegacy
	if shortType != "" {
		format = models.QRFormatSimplified
	}

	qrType := shortType
	if qrType == "" {
		qrType = stringField(raw, "type")
	}
	if qrType == "" {
		qrType = "unknown"
	}

	var directLink *string
	linkType := "none"
	hasLink := false
	if short := stringField(raw, "l"); short != "" {
		hasLink = true
		linkType = "direct"
		directLink = &short
	} else if legacy := stringField(raw, "link"); legacy != "" {
		hasLink = true
		linkType = "legacy"
		directLink = &legacy
	}

	return &models.QRValidationResult{
		IsValid:    isValid,
		Format:     format,
		Version:    orVersion(stringField(raw, "v")),
		Type:       qrType,
		HasLink:    hasLink,
		LinkType:   linkType,
		DirectLink: directLink,
	}
}

// stringField 맵에서 문자열 값을 꺼낸다. 없거나 타입이 다르면 빈 문자열.
func stringField(raw map[string]interface{}, key string) string {
	if v, ok := raw[key].(string); ok {
		return v
	}
	return ""
}

// orVersion 버전이 비어 있으면 구 포맷 버전으로 간주
func orVersion(v string) string {
	if v == "" {
		return models.QRVersionLegacy
	}
	return v
}

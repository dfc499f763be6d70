package services

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"qrasset-http-service/models"
)

func newTestQRService() InterfaceQRService {
	return NewQRService(nil, testConfig())
}

func TestBuildDevicePayload(t *testing.T) {
	svc := newTestQRService()
	employee := &models.Employee{Name: "김철수"}
	device := &models.Device{
		ID:           "d1b2c3d4-0000-0000-0000-000000000001",
		AssetNumber:  "AS-2024-001",
		Manufacturer: "Dell",
		ModelName:    "Latitude 5420",
		SerialNumber: "SN-001",
		DeviceType:   "노트북",
		CPU:          "i7-1185G7",
		Memory:       "16GB",
		Storage:      "512GB",
		OS:           "Windows 11",
		CreatedAt:    time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC),
		Employee:     employee,
	}

	payload := svc.BuildDevicePayload(device, "테스트 주식회사", false)

	assert.Equal(t, models.QRTypeDevice, payload.Type)
	assert.Equal(t, device.ID, payload.ID)
	assert.Equal(t, "AS-2024-001", payload.AssetNumber)
	assert.Equal(t, "김철수", payload.Employee)
	assert.Equal(t, "테스트 주식회사", payload.Company)
	assert.Equal(t, "2024-03-15", payload.CreatedDate)
	assert.Equal(t, models.QRVersionCurrent, payload.Version)
	assert.Nil(t, payload.Link)

	// 링크 미포함이어도 l 키 자체는 null로 직렬화되어야 한다
	b, err := json.Marshal(payload)
	require.NoError(t, err)
	assert.Contains(t, string(b), `"l":null`)
}

func TestBuildDevicePayloadWithLink(t *testing.T) {
	svc := newTestQRService()
	device := &models.Device{ID: "x", AssetNumber: "AS-2024-002"}

	payload := svc.BuildDevicePayload(device, "회사", true)

	require.NotNil(t, payload.Link)
	assert.Equal(t, "https://invenone.it.kr/devices/AS-2024-002", *payload.Link)
	assert.Equal(t, "", payload.Employee)
}

func TestBuildEmployeePayload(t *testing.T) {
	svc := newTestQRService()
	employee := &models.Employee{
		ID:         "e1",
		Name:       "이영희",
		Department: "인사팀",
		Position:   "팀장",
		Email:      "lee@example.com",
		Phone:      "010-1234-5678",
		CreatedAt:  time.Date(2023, 1, 2, 0, 0, 0, 0, time.UTC),
	}

	payload := svc.BuildEmployeePayload(employee, "테스트 주식회사", 3)

	assert.Equal(t, models.QRTypeEmployee, payload.Type)
	assert.Equal(t, "이영희", payload.Name)
	assert.Equal(t, "2023-01-02", payload.CreatedDate)
	assert.Equal(t, 3, payload.DeviceCount)
	assert.Equal(t, models.QRVersionCurrent, payload.Version)
}

func TestDecodeRoundTrip(t *testing.T) {
	svc := newTestQRService()
	device := &models.Device{
		ID:          "d1",
		AssetNumber: "AS-2024-001",
		ModelName:   "Latitude 5420",
		Employee:    &models.Employee{Name: "김철수"},
	}
	payload := svc.BuildDevicePayload(device, "테스트 주식회사", false)
	b, err := json.Marshal(payload)
	require.NoError(t, err)

	result := svc.Decode(string(b))

	require.True(t, result.IsValid)
	assert.Equal(t, models.QRFormatSimplified, result.Format)
	assert.Equal(t, models.QRVersionCurrent, result.Version)
	require.NotNil(t, result.Data)
	assert.Equal(t, "device", result.Data.Type)
	assert.Equal(t, "AS-2024-001", result.Data.AssetNumber)
	require.NotNil(t, result.Data.Employee)
	assert.Equal(t, "김철수", result.Data.Employee.Name)
}

func TestDecodeInvalidJSON(t *testing.T) {
	svc := newTestQRService()

	for _, input := range []string{"", "not json", "{broken", "null"} {
		result := svc.Decode(input)
		assert.False(t, result.IsValid, "input: %q", input)
		assert.Equal(t, "Invalid QR code format - must be valid JSON", result.Error, "input: %q", input)
	}
}

func TestDecodeSimplifiedValidation(t *testing.T) {
	svc := newTestQRService()

	tests := []struct {
		name    string
		input   string
		wantErr string
	}{
		{
			name:    "알 수 없는 타입",
			input:   `{"t":"x","i":"1","g":"2024-01-01"}`,
			wantErr: `Invalid type (must be "d" for device or "e" for employee)`,
		},
		{
			name:    "잘못된 날짜 형식",
			input:   `{"t":"d","i":"1","g":"01/02/2024"}`,
			wantErr: "Invalid date format (must be YYYY-MM-DD)",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := svc.Decode(tt.input)
			assert.False(t, result.IsValid)
			assert.Contains(t, result.ValidationErrors, tt.wantErr)
		})
	}
}

func TestDecodeMissingFields(t *testing.T) {
	svc := newTestQRService()

	result := svc.Decode(`{"a":"AS-2024-001"}`)

	assert.False(t, result.IsValid)
	assert.Contains(t, result.ValidationErrors, "Invalid QR code format - missing required fields")
}

func TestDecodeLegacyFormat(t *testing.T) {
	svc := newTestQRService()
	input := `{"type":"device","id":"d1","asset_number":"AS-001","manufacturer":"Dell","model_name":"Latitude","generated_at":"2023-05-01"}`

	result := svc.Decode(input)

	require.True(t, result.IsValid)
	assert.Equal(t, models.QRFormatLegacy, result.Format)
	// 버전 표기가 없으면 구 포맷 버전으로 간주한다
	assert.Equal(t, models.QRVersionLegacy, result.Version)
	require.NotNil(t, result.Data)
	assert.Equal(t, "device", result.Data.Type)
	assert.Equal(t, "AS-001", result.Data.AssetNumber)
}

func TestDecodeEmployeePayload(t *testing.T) {
	svc := newTestQRService()

	result := svc.Decode(`{"t":"e","i":"e1","n":"이영희","d":"인사팀","g":"2024-06-01","v":"2.0"}`)

	require.True(t, result.IsValid)
	assert.Equal(t, "employee", result.Data.Type)
	assert.Equal(t, "이영희", result.Data.Name)
	assert.Nil(t, result.Data.Employee)
}

func TestValidate(t *testing.T) {
	svc := newTestQRService()

	tests := []struct {
		name         string
		input        string
		wantValid    bool
		wantFormat   string
		wantType     string
		wantVersion  string
		wantLinkType string
		wantLink     string
	}{
		{
			name:         "단축 포맷 + 직접 링크",
			input:        `{"t":"d","i":"1","g":"2024-01-01","v":"2.0","l":"https://x/devices/AS-1"}`,
			wantValid:    true,
			wantFormat:   models.QRFormatSimplified,
			wantType:     "d",
			wantVersion:  "2.0",
			wantLinkType: "direct",
			wantLink:     "https://x/devices/AS-1",
		},
		{
			name:         "구 포맷 링크",
			input:        `{"type":"device","id":"1","link":"https://x/devices/AS-1"}`,
			wantValid:    false,
			wantFormat:   models.QRFormatLegacy,
			wantType:     "device",
			wantVersion:  models.QRVersionLegacy,
			wantLinkType: "legacy",
			wantLink:     "https://x/devices/AS-1",
		},
		{
			name:         "필수 필드 누락",
			input:        `{"t":"d","i":"1"}`,
			wantValid:    false,
			wantFormat:   models.QRFormatSimplified,
			wantType:     "d",
			wantVersion:  models.QRVersionLegacy,
			wantLinkType: "none",
		},
		{
			name:         "타입 없는 페이로드",
			input:        `{"foo":"bar"}`,
			wantValid:    false,
			wantFormat:   models.QRFormatLegacy,
			wantType:     "unknown",
			wantVersion:  models.QRVersionLegacy,
			wantLinkType: "none",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := svc.Validate(tt.input)
			assert.Equal(t, tt.wantValid, result.IsValid)
			assert.Equal(t, tt.wantFormat, result.Format)
			assert.Equal(t, tt.wantType, result.Type)
			assert.Equal(t, tt.wantVersion, result.Version)
			assert.Equal(t, tt.wantLinkType, result.LinkType)
			if tt.wantLink == "" {
				assert.Nil(t, result.DirectLink)
			} else {
				require.NotNil(t, result.DirectLink)
				assert.Equal(t, tt.wantLink, *result.DirectLink)
			}
		})
	}
}

func TestValidateDirectLinkSerialization(t *testing.T) {
	svc := newTestQRService()

	withLink, err := json.Marshal(svc.Validate(`{"t":"d","i":"1","g":"2024-01-01","l":"https://x/devices/AS-1"}`))
	require.NoError(t, err)
	assert.Contains(t, string(withLink), `"direct_link":"https://x/devices/AS-1"`)

	// 링크가 없어도 direct_link 키는 생략되지 않고 null로 내려간다
	withoutLink, err := json.Marshal(svc.Validate(`{"t":"d","i":"1","g":"2024-01-01"}`))
	require.NoError(t, err)
	assert.Contains(t, string(withoutLink), `"direct_link":null`)
}

func TestValidateInvalidJSON(t *testing.T) {
	svc := newTestQRService()

	result := svc.Validate("garbage")

	assert.False(t, result.IsValid)
	assert.Equal(t, "Invalid JSON format", result.Error)
}

func TestEncodePNG(t *testing.T) {
	svc := newTestQRService()

	png, err := svc.EncodePNG(`{"t":"d","i":"1","g":"2024-01-01"}`, 0)

	require.NoError(t, err)
	// PNG 시그니처 확인
	require.True(t, len(png) > 8)
	assert.Equal(t, []byte{0x89, 'P', 'N', 'G'}, png[:4])
}

func TestEncodeDataURL(t *testing.T) {
	svc := newTestQRService()

	dataURL, err := svc.EncodeDataURL("hello", 128)

	require.NoError(t, err)
	assert.Contains(t, dataURL, "data:image/png;base64,")
}

package models

// QR 페이로드 와이어 포맷.
//
// 단축 키 스키마(버전 "2.0")는 이미 발급된 QR 코드와의 호환 계약이다.
// 키 글자를 바꾸면 기존 코드 스캔이 깨지므로 절대 변경하지 않는다.

// QR 타입 태그
const (
	QRTypeDevice   = "d"
	QRTypeEmployee = "e"
)

// QR 포맷 버전
const (
	QRVersionCurrent = "2.0"
	QRVersionLegacy  = "1.0"
)

// QR 포맷 판별 결과
const (
	QRFormatSimplified = "simplified"
	QRFormatLegacy     = "legacy"
)

// DeviceQRPayload 장비 QR 단축 키 페이로드 (버전 2.0)
type DeviceQRPayload struct {
	Type         string  `json:"t"`   // "d"
	ID           string  `json:"i"`   // 장비 내부 ID
	AssetNumber  string  `json:"a"`   // 자산번호
	Manufacturer string  `json:"m"`   // 제조사
	ModelName    string  `json:"n"`   // 모델명
	SerialNumber string  `json:"s"`   // 시리얼번호
	Employee     string  `json:"e"`   // 담당 직원 이름(미할당이면 빈 문자열)
	Company      string  `json:"c"`   // 회사명
	Generated    string  `json:"g"`   // 생성일 YYYY-MM-DD
	DeviceType   string  `json:"dt"`  // 장비 타입
	CPU          string  `json:"cpu"` // CPU
	Memory       string  `json:"mem"` // 메모리
	Storage      string  `json:"str"` // 저장장치
	OS           string  `json:"os"`  // 운영체제
	CreatedDate  string  `json:"ca"`  // 등록일 YYYY-MM-DD
	Version      string  `json:"v"`   // "2.0"
	Link         *string `json:"l"`   // 장비 상세 딥링크(미포함 시 null)
}

// EmployeeQRPayload 직원 QR 단축 키 페이로드 (버전 2.0)
type EmployeeQRPayload struct {
	Type        string `json:"t"`  // "e"
	ID          string `json:"i"`  // 직원 내부 ID
	Name        string `json:"n"`  // 이름
	Department  string `json:"d"`  // 부서
	Position    string `json:"p"`  // 직책
	Company     string `json:"c"`  // 회사명
	Generated   string `json:"g"`  // 생성일 YYYY-MM-DD
	Email       string `json:"e"`  // 이메일
	Phone       string `json:"ph"` // 연락처
	CreatedDate string `json:"ca"` // 등록일 YYYY-MM-DD
	DeviceCount int    `json:"dc"` // 보유 장비 수
	Version     string `json:"v"`  // "2.0"
}

// SimplifiedQRPayload 디코드 시 사용하는 단축 키 슈퍼셋.
// 장비/직원 페이로드가 키를 공유하므로(n, e 등) 한 구조체로 받는다.
type SimplifiedQRPayload struct {
	Type         string `json:"t"`
	ID           string `json:"i"`
	AssetNumber  string `json:"a"`
	Manufacturer string `json:"m"`
	NameOrModel  string `json:"n"`
	SerialNumber string `json:"s"`
	Employee     string `json:"e"`
	Department   string `json:"d"`
	Position     string `json:"p"`
	Company      string `json:"c"`
	Generated    string `json:"g"`
	DeviceType   string `json:"dt"`
	CPU          string `json:"cpu"`
	Memory       string `json:"mem"`
	Storage      string `json:"str"`
	OS           string `json:"os"`
	CreatedDate  string `json:"ca"`
	Phone        string `json:"ph"`
	DeviceCount  int    `json:"dc"`
	Version      string `json:"v"`
	Link         string `json:"l"`
}

// LegacyQRPayload 구 포맷(버전 1.0, 전체 키 이름) 페이로드
type LegacyQRPayload struct {
	Type         string `json:"type"`
	ID           string `json:"id"`
	AssetNumber  string `json:"asset_number"`
	Manufacturer string `json:"manufacturer"`
	ModelName    string `json:"model_name"`
	SerialNumber string `json:"serial_number"`
	Name         string `json:"name"`
	Department   string `json:"department"`
	Position     string `json:"position"`
	Company      string `json:"company"`
	GeneratedAt  string `json:"generated_at"`
	Version      string `json:"version"`
	Link         string `json:"link"`
}

// QREmployeeRef 정규화 결과에 포함되는 담당 직원 참조
type QREmployeeRef struct {
	Name string `json:"name"`
}

// DecodedQRData 포맷 버전과 무관한 정규화 필드 집합
type DecodedQRData struct {
	Type         string         `json:"type"` // "device" | "employee"
	ID           string         `json:"id"`
	AssetNumber  string         `json:"asset_number"`
	Manufacturer string         `json:"manufacturer"`
	ModelName    string         `json:"model_name"`
	SerialNumber string         `json:"serial_number"`
	Employee     *QREmployeeRef `json:"employee,omitempty"`
	Name         string         `json:"name"`
	Department   string         `json:"department"`
	Position     string         `json:"position"`
	Company      string         `json:"company"`
	GeneratedAt  string         `json:"generated_at"`
	DeviceType   string         `json:"device_type"`
	CPU          string         `json:"cpu"`
	Memory       string         `json:"memory"`
	Storage      string         `json:"storage"`
	OS           string         `json:"os"`
	CreatedAt    string         `json:"created_at"`
	Version      string         `json:"version"`
}

// QRDecodeResult 디코드 결과. 실패도 예외가 아닌 값으로 전달한다.
type QRDecodeResult struct {
	IsValid          bool           `json:"is_valid"`
	Format           string         `json:"format,omitempty"`
	Version          string         `json:"version,omitempty"`
	Data             *DecodedQRData `json:"data,omitempty"`
	ValidationErrors []string       `json:"validation_errors,omitempty"`
	Error            string         `json:"error,omitempty"`
}

// QRValidationResult 구조 검증 결과. DB 조회 없이 판정한다.
// direct_link는 링크가 없어도 null로 내려간다. 배포된 스캐너가 키 존재를 전제한다.
type QRValidationResult struct {
	IsValid    bool    `json:"is_valid"`
	Format     string  `json:"format,omitempty"`
	Version    string  `json:"version,omitempty"`
	Type       string  `json:"type,omitempty"`
	HasLink    bool    `json:"has_link"`
	LinkType   string  `json:"link_type,omitempty"`
	DirectLink *string `json:"direct_link"`
	Error      string  `json:"error,omitempty"`
}

package services

import (
	"encoding/csv"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"

	"qrasset-http-service/config"
	"qrasset-http-service/models"
)

// DeviceImportRow 가져오기 파일의 한 행 (정규화된 필드 키 기준)
type DeviceImportRow struct {
	RowNumber int
	Fields    map[string]string
}

// importHeaderMap 파일 헤더(한글 표기) → 내부 필드 매핑.
// 기존에 배포된 양식과의 호환 계약이므로 표기를 바꾸지 않는다.
var importHeaderMap = map[string]string{
	"자산번호":    "asset_number",
	"사용자":      "employee_name",
	"조사일자":    "inspection_date",
	"용도":        "purpose",
	"장비 Type":   "device_type",
	"제조사":      "manufacturer",
	"모델명":      "model_name",
	"S/N":         "serial_number",
	"모니터크기":  "monitor_size",
	"지급일자":    "issue_date",
	"CPU":         "cpu",
	"메모리":      "memory",
	"하드디스크":  "storage",
	"그래픽카드":  "gpu",
	"OS":          "os",
}

// exportHeaders 내보내기 헤더 순서. 가져오기 양식과 동일한 표기를 쓴다.
var exportHeaders = []string{
	"자산번호", "사용자", "조사일자", "용도", "장비 Type", "제조사", "모델명",
	"S/N", "모니터크기", "지급일자", "CPU", "메모리", "하드디스크", "그래픽카드", "OS",
}

// InterfaceExcelService Excel/CSV 변환 서비스 인터페이스
type InterfaceExcelService interface {
	ParseImportFile(filename string, r io.Reader) ([]DeviceImportRow, error)
	ExportDevices(devices []models.Device) (*excelize.File, error)
}

// ExcelService 장비 목록 Excel/CSV 가져오기·내보내기 서비스
type ExcelService struct {
	DB     *gorm.DB
	Config *config.Config
}

// NewExcelService 새 Excel 서비스 생성
func NewExcelService(db *gorm.DB, cfg *config.Config) InterfaceExcelService {
	return &ExcelService{
		DB:     db,
		Config: cfg,
	}
}

// ParseImportFile 확장자에 따라 CSV 또는 Excel 경로로 행을 파싱한다.
// 자산번호 헤더가 없으면 파일 전체를 거부한다.
func (s *ExcelService) ParseImportFile(filename string, r io.Reader) ([]DeviceImportRow, error) {
	if strings.HasSuffix(strings.ToLower(filename), ".csv") {
		return s.parseCSV(r)
	}
	return s.parseExcel(r)
}

// parseCSV CSV 파일 파싱
func (s *ExcelService) parseCSV(r io.Reader) ([]DeviceImportRow, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // 행마다 열 수가 달라도 허용

	records, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}
	return s.mapRows(records)
}

// parseExcel 첫 번째 시트의 행을 읽는다
func (s *ExcelService) parseExcel(r io.Reader) ([]DeviceImportRow, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrExcelHeaderNoAsset
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, err
	}
	return s.mapRows(rows)
}

// mapRows 헤더 행으로 열 위치를 해석해 정규화된 행 목록을 만든다
func (s *ExcelService) mapRows(rows [][]string) ([]DeviceImportRow, error) {
	if len(rows) == 0 {
		return nil, ErrExcelHeaderNoAsset
	}

	// 열 인덱스 → 내부 필드
	columns := make(map[int]string)
	hasAssetColumn := false
	for idx, header := range rows[0] {
		header = strings.TrimSpace(strings.TrimPrefix(header, "\uFEFF"))
		if field, ok := importHeaderMap[header]; ok {
			columns[idx] = field
			if field == "asset_number" {
				hasAssetColumn = true
			}
		}
	}
	if !hasAssetColumn {
		return nil, ErrExcelHeaderNoAsset
	}

	result := make([]DeviceImportRow, 0, len(rows)-1)
	for i, row := range rows[1:] {
		fields := make(map[string]string)
		empty := true
		for idx, field := range columns {
			value := ""
			if idx < len(row) {
				value = strings.TrimSpace(row[idx])
			}
			fields[field] = value
			if value != "" {
				empty = false
			}
		}
		if empty {
			continue
		}
		result = append(result, DeviceImportRow{
			RowNumber: i + 2, // 헤더 다음 행부터, 1부터 세는 행 번호
			Fields:    fields,
		})
	}
	return result, nil
}

// ExportDevices 장비 목록을 스타일이 적용된 워크북으로 만든다
func (s *ExcelService) ExportDevices(devices []models.Device) (*excelize.File, error) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF", Size: 11},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
	})
	if err != nil {
		return nil, err
	}

	for col, header := range exportHeaders {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheet, cell, header); err != nil {
			return nil, err
		}
	}
	lastHeaderCell, err := excelize.CoordinatesToCellName(len(exportHeaders), 1)
	if err != nil {
		return nil, err
	}
	if err := f.SetCellStyle(sheet, "A1", lastHeaderCell, headerStyle); err != nil {
		return nil, err
	}
	if err := f.SetColWidth(sheet, "A", "O", 16); err != nil {
		return nil, err
	}

	for i, device := range devices {
		employeeName := ""
		if device.Employee != nil {
			employeeName = device.Employee.Name
		}
		values := []interface{}{
			device.AssetNumber,
			employeeName,
			device.InspectionDate,
			device.Purpose,
			device.DeviceType,
			device.Manufacturer,
			device.ModelName,
			device.SerialNumber,
			device.MonitorSize,
			device.IssueDate,
			device.CPU,
			device.Memory,
			device.Storage,
			device.GPU,
			device.OS,
		}
		for col, value := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, i+2)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return nil, err
			}
		}
	}

	return f, nil
}

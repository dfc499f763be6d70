package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"qrasset-http-service/models"
)

func TestParseImportFileCSV(t *testing.T) {
	svc := NewExcelService(nil, testConfig())

	csvData := "자산번호,사용자,제조사,CPU\nAS-001,김철수,Dell,i7-1185G7\nAS-002,,LG,\n"
	rows, err := svc.ParseImportFile("devices.csv", strings.NewReader(csvData))
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, 2, rows[0].RowNumber)
	assert.Equal(t, "AS-001", rows[0].Fields["asset_number"])
	assert.Equal(t, "김철수", rows[0].Fields["employee_name"])
	assert.Equal(t, "Dell", rows[0].Fields["manufacturer"])
	assert.Equal(t, "i7-1185G7", rows[0].Fields["cpu"])

	assert.Equal(t, 3, rows[1].RowNumber)
	assert.Equal(t, "AS-002", rows[1].Fields["asset_number"])
	assert.Equal(t, "", rows[1].Fields["employee_name"])
}

func TestParseImportFileCSVWithBOM(t *testing.T) {
	svc := NewExcelService(nil, testConfig())

	// Excel이 저장한 CSV는 BOM으로 시작하는 경우가 많다
	csvData := "\uFEFF자산번호,제조사\nAS-001,Dell\n"
	rows, err := svc.ParseImportFile("devices.csv", strings.NewReader(csvData))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "AS-001", rows[0].Fields["asset_number"])
}

func TestParseImportFileMissingAssetColumn(t *testing.T) {
	svc := NewExcelService(nil, testConfig())

	csvData := "제조사,모델명\nDell,Latitude\n"
	_, err := svc.ParseImportFile("devices.csv", strings.NewReader(csvData))

	assert.ErrorIs(t, err, ErrExcelHeaderNoAsset)
}

func TestParseImportFileSkipsEmptyRows(t *testing.T) {
	svc := NewExcelService(nil, testConfig())

	csvData := "자산번호,제조사\nAS-001,Dell\n,\n"
	rows, err := svc.ParseImportFile("devices.csv", strings.NewReader(csvData))
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestParseImportFileUnknownHeadersIgnored(t *testing.T) {
	svc := NewExcelService(nil, testConfig())

	csvData := "자산번호,비고,제조사\nAS-001,메모입니다,Dell\n"
	rows, err := svc.ParseImportFile("devices.csv", strings.NewReader(csvData))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Dell", rows[0].Fields["manufacturer"])
	// 매핑되지 않는 열은 버린다
	assert.NotContains(t, rows[0].Fields, "비고")
}

func TestExportDevices(t *testing.T) {
	svc := NewExcelService(nil, testConfig())

	devices := []models.Device{
		{
			AssetNumber:  "AS-001",
			Manufacturer: "Dell",
			ModelName:    "Latitude 5420",
			CPU:          "i7-1185G7",
			Purpose:      models.DevicePurposeWork,
			Employee:     &models.Employee{Name: "김철수"},
		},
		{
			AssetNumber: "AS-002",
			OS:          "Windows 11",
		},
	}

	f, err := svc.ExportDevices(devices)
	require.NoError(t, err)
	defer f.Close()

	sheet := f.GetSheetName(0)

	header, err := f.GetCellValue(sheet, "A1")
	require.NoError(t, err)
	assert.Equal(t, "자산번호", header)

	asset, err := f.GetCellValue(sheet, "A2")
	require.NoError(t, err)
	assert.Equal(t, "AS-001", asset)

	employeeName, err := f.GetCellValue(sheet, "B2")
	require.NoError(t, err)
	assert.Equal(t, "김철수", employeeName)

	// 미할당 장비의 사용자 열은 비어 있다
	empty, err := f.GetCellValue(sheet, "B3")
	require.NoError(t, err)
	assert.Equal(t, "", empty)

	os, err := f.GetCellValue(sheet, "O3")
	require.NoError(t, err)
	assert.Equal(t, "Windows 11", os)
}

func TestExportThenImportRoundTrip(t *testing.T) {
	svc := NewExcelService(nil, testConfig())

	devices := []models.Device{
		{AssetNumber: "AS-001", Manufacturer: "Dell", CPU: "i7-1185G7"},
	}
	f, err := svc.ExportDevices(devices)
	require.NoError(t, err)
	defer f.Close()

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	rows, err := svc.ParseImportFile("devices.xlsx", buf)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "AS-001", rows[0].Fields["asset_number"])
	assert.Equal(t, "Dell", rows[0].Fields["manufacturer"])
	assert.Equal(t, "i7-1185G7", rows[0].Fields["cpu"])
}

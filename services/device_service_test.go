package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"qrasset-http-service/models"
)

func TestGetDeviceByIdentifier(t *testing.T) {
	db := setupTestDB(t)
	svc := NewDeviceService(db, testConfig())
	device := createTestDevice(t, db, "admin-1", "AS-2024-001", nil)

	// 내부 ID(UUID)로 조회
	byID, err := svc.GetDeviceByIdentifier("admin-1", device.ID, false)
	require.NoError(t, err)
	assert.Equal(t, device.ID, byID.ID)

	// 자산번호로 조회해도 같은 장비여야 한다
	byAsset, err := svc.GetDeviceByIdentifier("admin-1", "AS-2024-001", false)
	require.NoError(t, err)
	assert.Equal(t, device.ID, byAsset.ID)

	_, err = svc.GetDeviceByIdentifier("admin-1", "AS-9999-999", false)
	assert.ErrorIs(t, err, ErrDeviceNotFound)
}

func TestGetDeviceByIdentifierTenantScope(t *testing.T) {
	db := setupTestDB(t)
	svc := NewDeviceService(db, testConfig())
	device := createTestDevice(t, db, "admin-1", "AS-2024-001", nil)

	// 다른 테넌트에서는 보이지 않는다
	_, err := svc.GetDeviceByIdentifier("admin-2", device.ID, false)
	assert.ErrorIs(t, err, ErrDeviceNotFound)

	// 전체 범위 판정이면 테넌트 경계를 넘는다
	found, err := svc.GetDeviceByIdentifier("admin-2", device.ID, true)
	require.NoError(t, err)
	assert.Equal(t, device.ID, found.ID)
}

func TestGetDevicesFilters(t *testing.T) {
	db := setupTestDB(t)
	svc := NewDeviceService(db, testConfig())
	employee := createTestEmployee(t, db, "admin-1", "김철수")
	createTestDevice(t, db, "admin-1", "AS-001", &employee.ID)
	createTestDevice(t, db, "admin-1", "AS-002", nil)
	disposed := createTestDevice(t, db, "admin-1", "AS-003", nil)
	require.NoError(t, db.Model(disposed).Update("purpose", models.DevicePurposeDisposed).Error)

	all, err := svc.GetDevices("admin-1", false, AssignmentFilterAll)
	require.NoError(t, err)
	// 폐기 장비는 일반 목록에 나오지 않는다
	assert.Len(t, all, 2)

	assigned, err := svc.GetDevices("admin-1", false, AssignmentFilterAssigned)
	require.NoError(t, err)
	require.Len(t, assigned, 1)
	assert.Equal(t, "AS-001", assigned[0].AssetNumber)
	require.NotNil(t, assigned[0].Employee)
	assert.Equal(t, "김철수", assigned[0].Employee.Name)

	unassigned, err := svc.GetDevices("admin-1", false, AssignmentFilterUnassigned)
	require.NoError(t, err)
	require.Len(t, unassigned, 1)
	assert.Equal(t, "AS-002", unassigned[0].AssetNumber)

	_, err = svc.GetDevices("admin-1", false, "broken")
	assert.Error(t, err)
}

func TestCreateDevice(t *testing.T) {
	db := setupTestDB(t)
	svc := NewDeviceService(db, testConfig())

	device := &models.Device{
		AdminID:     "admin-1",
		AssetNumber: "AS-2024-001",
		Purpose:     models.DevicePurposeWork,
	}
	require.NoError(t, svc.CreateDevice("admin-1", device))
	assert.NotEmpty(t, device.ID)

	entries := deviceHistoryFor(t, db, device.ID)
	require.Len(t, entries, 1)
	assert.Equal(t, models.HistoryActionCreate, entries[0].ActionType)
	assert.Equal(t, models.AssignStatusNone, entries[0].PreviousStatus)
	assert.Equal(t, models.AssignStatusUnassigned, entries[0].NewStatus)
	assert.Equal(t, "새 장비 등록 (자산번호: AS-2024-001)", entries[0].ActionDescription)
}

func TestCreateDeviceDuplicateAssetNumber(t *testing.T) {
	db := setupTestDB(t)
	svc := NewDeviceService(db, testConfig())
	createTestDevice(t, db, "admin-1", "AS-2024-001", nil)

	err := svc.CreateDevice("admin-1", &models.Device{
		AdminID:     "admin-1",
		AssetNumber: "AS-2024-001",
	})

	assert.ErrorIs(t, err, ErrAssetNumberExists)
}

func TestCreateDeviceForeignEmployee(t *testing.T) {
	db := setupTestDB(t)
	svc := NewDeviceService(db, testConfig())
	foreign := createTestEmployee(t, db, "admin-2", "남의 직원")

	err := svc.CreateDevice("admin-1", &models.Device{
		AdminID:     "admin-1",
		AssetNumber: "AS-2024-001",
		EmployeeID:  &foreign.ID,
	})

	// 다른 테넌트 직원에게는 할당할 수 없다
	assert.ErrorIs(t, err, ErrEmployeeNotFound)
}

func TestUpdateDeviceAssign(t *testing.T) {
	db := setupTestDB(t)
	svc := NewDeviceService(db, testConfig())
	employee := createTestEmployee(t, db, "admin-1", "김철수")
	device := createTestDevice(t, db, "admin-1", "AS-2024-001", nil)

	updated, err := svc.UpdateDevice("admin-1", device.ID, false, "admin-1", map[string]interface{}{
		"employee_id": employee.ID,
	})
	require.NoError(t, err)
	require.NotNil(t, updated.EmployeeID)
	assert.Equal(t, employee.ID, *updated.EmployeeID)

	entries := deviceHistoryFor(t, db, device.ID)
	require.Len(t, entries, 1)
	assert.Equal(t, models.HistoryActionAssign, entries[0].ActionType)
	assert.Equal(t, models.AssignStatusUnassigned, entries[0].PreviousStatus)
	assert.Equal(t, models.AssignStatusAssigned, entries[0].NewStatus)
	// 담당자 변경은 ID가 아니라 이름으로 기록된다
	assert.Equal(t, "담당자: 없음 → 김철수", entries[0].ActionDescription)
}

func TestUpdateDeviceReassign(t *testing.T) {
	db := setupTestDB(t)
	svc := NewDeviceService(db, testConfig())
	kim := createTestEmployee(t, db, "admin-1", "김철수")
	lee := createTestEmployee(t, db, "admin-1", "이영희")
	device := createTestDevice(t, db, "admin-1", "AS-2024-001", &kim.ID)

	_, err := svc.UpdateDevice("admin-1", device.ID, false, "admin-1", map[string]interface{}{
		"employee_id": lee.ID,
	})
	require.NoError(t, err)

	// 재할당은 반납+할당이 아니라 단일 항목으로 남는다
	entries := deviceHistoryFor(t, db, device.ID)
	require.Len(t, entries, 1)
	assert.Equal(t, models.HistoryActionReassign, entries[0].ActionType)
	assert.Equal(t, models.AssignStatusAssigned, entries[0].PreviousStatus)
	assert.Equal(t, models.AssignStatusAssigned, entries[0].NewStatus)
	assert.Equal(t, "담당자: 김철수 → 이영희", entries[0].ActionDescription)
}

func TestUpdateDeviceNoChanges(t *testing.T) {
	db := setupTestDB(t)
	svc := NewDeviceService(db, testConfig())
	device := createTestDevice(t, db, "admin-1", "AS-2024-001", nil)

	_, err := svc.UpdateDevice("admin-1", device.ID, false, "admin-1", map[string]interface{}{
		"manufacturer": "Dell",
	})
	require.NoError(t, err)

	// 실제 변경이 없으면 이력도 남지 않는다
	assert.Empty(t, deviceHistoryFor(t, db, device.ID))
}

func TestUpdateDeviceFieldChange(t *testing.T) {
	db := setupTestDB(t)
	svc := NewDeviceService(db, testConfig())
	device := createTestDevice(t, db, "admin-1", "AS-2024-001", nil)

	updated, err := svc.UpdateDevice("admin-1", device.ID, false, "admin-1", map[string]interface{}{
		"cpu":           "i7-1185G7",
		"unknown_field": "무시되어야 함",
	})
	require.NoError(t, err)
	assert.Equal(t, "i7-1185G7", updated.CPU)

	entries := deviceHistoryFor(t, db, device.ID)
	require.Len(t, entries, 1)
	assert.Equal(t, models.HistoryActionModify, entries[0].ActionType)
	assert.Equal(t, "CPU: 없음 → i7-1185G7", entries[0].ActionDescription)
	assert.Equal(t, []interface{}{"cpu"}, entries[0].Metadata["changed_fields"])
}

func TestReturnDevice(t *testing.T) {
	db := setupTestDB(t)
	svc := NewDeviceService(db, testConfig())
	employee := createTestEmployee(t, db, "admin-1", "김철수")
	device := createTestDevice(t, db, "admin-1", "AS-2024-001", &employee.ID)

	returned, err := svc.ReturnDevice("admin-1", device.ID, false, "admin-1")
	require.NoError(t, err)
	assert.Nil(t, returned.EmployeeID)

	entries := deviceHistoryFor(t, db, device.ID)
	require.Len(t, entries, 1)
	assert.Equal(t, models.HistoryActionReturn, entries[0].ActionType)
	assert.Equal(t, "담당자: 김철수 → 없음", entries[0].ActionDescription)

	// 미할당 장비는 반납할 수 없다
	_, err = svc.ReturnDevice("admin-1", device.ID, false, "admin-1")
	assert.Error(t, err)
}

func TestDisposeDevice(t *testing.T) {
	db := setupTestDB(t)
	svc := NewDeviceService(db, testConfig())
	employee := createTestEmployee(t, db, "admin-1", "김철수")
	device := createTestDevice(t, db, "admin-1", "AS-2024-001", &employee.ID)

	disposed, err := svc.DisposeDevice("admin-1", device.ID, false, "admin-1", "노후화")
	require.NoError(t, err)
	assert.Equal(t, models.DevicePurposeDisposed, disposed.Purpose)
	assert.Nil(t, disposed.EmployeeID)

	entries := deviceHistoryFor(t, db, device.ID)
	require.Len(t, entries, 1)
	assert.Equal(t, models.HistoryActionDispose, entries[0].ActionType)
	assert.Equal(t, "폐기 사유: 노후화", entries[0].ActionDescription)
	assert.Equal(t, "노후화", entries[0].Metadata["reason"])

	// 폐기된 장비는 다시 폐기할 수 없다
	_, err = svc.DisposeDevice("admin-1", device.ID, true, "admin-1", "중복 폐기")
	assert.ErrorIs(t, err, ErrDeviceDisposed)
}

func TestDisposeDeviceRequiresReason(t *testing.T) {
	db := setupTestDB(t)
	svc := NewDeviceService(db, testConfig())
	device := createTestDevice(t, db, "admin-1", "AS-2024-001", nil)

	_, err := svc.DisposeDevice("admin-1", device.ID, false, "admin-1", "")
	assert.Error(t, err)

	// 사유 없는 폐기 시도는 아무것도 바꾸지 않는다
	unchanged, err := svc.GetDeviceByIdentifier("admin-1", device.ID, false)
	require.NoError(t, err)
	assert.Equal(t, models.DevicePurposeWork, unchanged.Purpose)
	assert.Empty(t, deviceHistoryFor(t, db, device.ID))
}

func TestUpdateDisposedDeviceRejected(t *testing.T) {
	db := setupTestDB(t)
	svc := NewDeviceService(db, testConfig())
	device := createTestDevice(t, db, "admin-1", "AS-2024-001", nil)
	require.NoError(t, db.Model(device).Update("purpose", models.DevicePurposeDisposed).Error)

	_, err := svc.UpdateDevice("admin-1", device.ID, false, "admin-1", map[string]interface{}{
		"cpu": "i7",
	})
	assert.ErrorIs(t, err, ErrDeviceDisposed)
}

func TestImportDevicesCreateAndUpdate(t *testing.T) {
	db := setupTestDB(t)
	svc := NewDeviceService(db, testConfig())
	employee := createTestEmployee(t, db, "admin-1", "김철수")
	existing := createTestDevice(t, db, "admin-1", "AS-001", nil)

	rows := []DeviceImportRow{
		{RowNumber: 2, Fields: map[string]string{"asset_number": "AS-001", "cpu": "i7-1185G7", "employee_name": "김철수"}},
		{RowNumber: 3, Fields: map[string]string{"asset_number": "AS-002", "manufacturer": "LG", "employee_name": "없는직원"}},
		{RowNumber: 4, Fields: map[string]string{"asset_number": "", "manufacturer": "HP"}},
	}

	result, err := svc.ImportDevices("admin-1", "admin-1", rows)
	require.NoError(t, err)
	assert.Equal(t, 3, result.Total)
	assert.Equal(t, 1, result.Created)
	assert.Equal(t, 1, result.Updated)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, 4, result.Errors[0].Row)
	assert.Equal(t, "자산번호가 비어 있습니다", result.Errors[0].Message)

	// 기존 장비는 값이 갱신되고 담당자가 이름으로 매칭된다
	updated, err := svc.GetDeviceByIdentifier("admin-1", existing.ID, false)
	require.NoError(t, err)
	assert.Equal(t, "i7-1185G7", updated.CPU)
	require.NotNil(t, updated.EmployeeID)
	assert.Equal(t, employee.ID, *updated.EmployeeID)

	histories := deviceHistoryFor(t, db, existing.ID)
	require.Len(t, histories, 1)
	assert.Equal(t, models.HistoryActionExcelModify, histories[0].ActionType)

	// 매칭되지 않는 직원 이름은 미할당으로 둔다
	created, err := svc.GetDeviceByIdentifier("admin-1", "AS-002", false)
	require.NoError(t, err)
	assert.Nil(t, created.EmployeeID)
	createdHistories := deviceHistoryFor(t, db, created.ID)
	require.Len(t, createdHistories, 1)
	assert.Equal(t, models.HistoryActionExcelCreate, createdHistories[0].ActionType)
}

func TestImportDevicesSkipsUnchangedRows(t *testing.T) {
	db := setupTestDB(t)
	svc := NewDeviceService(db, testConfig())
	createTestDevice(t, db, "admin-1", "AS-001", nil)

	rows := []DeviceImportRow{
		{RowNumber: 2, Fields: map[string]string{"asset_number": "AS-001", "manufacturer": "Dell"}},
	}

	result, err := svc.ImportDevices("admin-1", "admin-1", rows)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Skipped)
	assert.Equal(t, 0, result.Updated)
}

func TestImportDevicesForeignAssetNumber(t *testing.T) {
	db := setupTestDB(t)
	svc := NewDeviceService(db, testConfig())
	createTestDevice(t, db, "admin-2", "AS-001", nil)

	rows := []DeviceImportRow{
		{RowNumber: 2, Fields: map[string]string{"asset_number": "AS-001", "cpu": "i7"}},
	}

	result, err := svc.ImportDevices("admin-1", "admin-1", rows)
	require.NoError(t, err)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, "다른 관리자 소유의 자산번호입니다", result.Errors[0].Message)
}

package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"qrasset-http-service/models"
)

func strPtr(s string) *string {
	return &s
}

func TestDeriveAssignmentAction(t *testing.T) {
	svc := NewHistoryService(nil, testConfig())

	tests := []struct {
		name       string
		prev       *string
		next       *string
		wantAction models.HistoryAction
		wantPrev   string
		wantNew    string
	}{
		{"없음에서 할당", nil, strPtr("e1"), models.HistoryActionAssign, models.AssignStatusUnassigned, models.AssignStatusAssigned},
		{"빈 문자열에서 할당", strPtr(""), strPtr("e1"), models.HistoryActionAssign, models.AssignStatusUnassigned, models.AssignStatusAssigned},
		{"할당에서 반납", strPtr("e1"), nil, models.HistoryActionReturn, models.AssignStatusAssigned, models.AssignStatusUnassigned},
		{"다른 직원으로 재할당", strPtr("e1"), strPtr("e2"), models.HistoryActionReassign, models.AssignStatusAssigned, models.AssignStatusAssigned},
		{"같은 직원 유지", strPtr("e1"), strPtr("e1"), models.HistoryActionModify, models.AssignStatusAssigned, models.AssignStatusAssigned},
		{"미할당 유지", nil, nil, models.HistoryActionModify, models.AssignStatusUnassigned, models.AssignStatusUnassigned},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			action, prevStatus, newStatus := svc.DeriveAssignmentAction(tt.prev, tt.next)
			assert.Equal(t, tt.wantAction, action)
			assert.Equal(t, tt.wantPrev, prevStatus)
			assert.Equal(t, tt.wantNew, newStatus)
		})
	}
}

func TestBuildChangeDescription(t *testing.T) {
	svc := NewHistoryService(nil, testConfig())

	// 입력 순서와 무관하게 고정된 필드 순서로 나열되어야 한다
	changes := []FieldChange{
		{Field: "cpu", Old: "i5-1135G7", New: "i7-1185G7"},
		{Field: "employee_id", Old: "김철수", New: "이영희"},
		{Field: "asset_number", Old: "AS-001", New: "AS-002"},
	}

	description := svc.BuildChangeDescription(changes)

	assert.Equal(t, "자산번호: AS-001 → AS-002, 담당자: 김철수 → 이영희, CPU: i5-1135G7 → i7-1185G7", description)
}

func TestBuildChangeDescriptionEmptyValues(t *testing.T) {
	svc := NewHistoryService(nil, testConfig())

	changes := []FieldChange{
		{Field: "employee_id", Old: "", New: "김철수"},
		{Field: "memory", Old: "8GB", New: ""},
	}

	description := svc.BuildChangeDescription(changes)

	assert.Equal(t, "담당자: 없음 → 김철수, 메모리: 8GB → 없음", description)
}

func TestRecordAndGetDeviceHistory(t *testing.T) {
	db := setupTestDB(t)
	svc := NewHistoryService(db, testConfig())
	device := createTestDevice(t, db, "admin-1", "AS-2024-001", nil)

	err := svc.RecordHistory(nil, &models.DeviceHistory{
		DeviceID:          device.ID,
		ActionType:        models.HistoryActionCreate,
		ActionDescription: "새 장비 등록 (자산번호: AS-2024-001)",
		PreviousStatus:    models.AssignStatusNone,
		NewStatus:         models.AssignStatusUnassigned,
		PerformedBy:       "admin-1",
	})
	require.NoError(t, err)

	entries, err := svc.GetDeviceHistory(device.ID)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, models.HistoryActionCreate, entries[0].ActionType)
	assert.False(t, entries[0].PerformedAt.IsZero())
}

func TestGetRecentActivitiesScoped(t *testing.T) {
	db := setupTestDB(t)
	svc := NewHistoryService(db, testConfig())

	mine := createTestDevice(t, db, "admin-1", "AS-2024-001", nil)
	other := createTestDevice(t, db, "admin-2", "AS-2024-002", nil)
	for _, d := range []*models.Device{mine, other} {
		require.NoError(t, svc.RecordHistory(nil, &models.DeviceHistory{
			DeviceID:   d.ID,
			ActionType: models.HistoryActionCreate,
		}))
	}

	scoped, err := svc.GetRecentActivities("admin-1", false, 10)
	require.NoError(t, err)
	require.Len(t, scoped, 1)
	assert.Equal(t, mine.ID, scoped[0].DeviceID)

	all, err := svc.GetRecentActivities("admin-1", true, 10)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

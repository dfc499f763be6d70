package controllers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"qrasset-http-service/internal/error/code"
	"qrasset-http-service/models"
	"qrasset-http-service/services/container"
)

func newQRTestRouter(ctr *container.ServiceContainer, userID, role string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	api := r.Group("/api", authStub(userID, role))
	api.GET("/qr/device/:identifier", HandleQRFunc(ctr, "generateDeviceQR"))
	api.POST("/qr/bulk/devices", HandleQRFunc(ctr, "generateBulkDeviceQR"))
	return r
}

func postBulkQR(t *testing.T, r *gin.Engine, deviceIDs []string) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(gin.H{"device_ids": deviceIDs})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/qr/bulk/devices", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestGenerateDeviceQRDisposedRejected(t *testing.T) {
	db, ctr := setupTestContainer(t)
	user := createTestUser(t, db, "manager@example.com", models.UserRoleManager)
	createTestDevice(t, db, user.ID, "AS-2024-001", models.DevicePurposeDisposed)
	r := newQRTestRouter(ctr, user.ID, string(user.Role))

	req := httptest.NewRequest(http.MethodGet, "/api/qr/device/AS-2024-001", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	var body envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, code.ErrQRDisposedDevice, body.Code)
}

func TestGenerateDeviceQRJSONFormat(t *testing.T) {
	db, ctr := setupTestContainer(t)
	user := createTestUser(t, db, "manager@example.com", models.UserRoleManager)
	createTestDevice(t, db, user.ID, "AS-2024-002", models.DevicePurposeWork)
	r := newQRTestRouter(ctr, user.ID, string(user.Role))

	req := httptest.NewRequest(http.MethodGet, "/api/qr/device/AS-2024-002?format=json", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.NotEmpty(t, body["qr_string"])

	qrData, ok := body["qr_data"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "AS-2024-002", qrData["a"])
	assert.Equal(t, models.QRVersionCurrent, qrData["v"])
}

func TestGenerateBulkDeviceQROverLimit(t *testing.T) {
	db, ctr := setupTestContainer(t)
	user := createTestUser(t, db, "manager@example.com", models.UserRoleManager)
	device := createTestDevice(t, db, user.ID, "AS-2024-003", models.DevicePurposeWork)
	r := newQRTestRouter(ctr, user.ID, string(user.Role))

	// 실제 존재하는 장비가 섞여 있어도 한도 초과면 어떤 항목도 처리되지 않는다
	ids := []string{device.ID}
	for len(ids) < 101 {
		ids = append(ids, uuid.NewString())
	}

	w := postBulkQR(t, r, ids)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	var body envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, code.ErrQRBulkLimitExceeded, body.Code)

	var raw map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &raw))
	assert.NotContains(t, raw, "qr_codes")
}

func TestGenerateBulkDeviceQRAtLimit(t *testing.T) {
	db, ctr := setupTestContainer(t)
	user := createTestUser(t, db, "manager@example.com", models.UserRoleManager)
	r := newQRTestRouter(ctr, user.ID, string(user.Role))

	// 100개까지는 한도 검사를 통과해 항목 처리 단계로 진행한다.
	// 모든 ID가 존재하지 않으므로 처리 단계의 404가 난다.
	ids := make([]string, 100)
	for i := range ids {
		ids[i] = uuid.NewString()
	}

	w := postBulkQR(t, r, ids)

	assert.Equal(t, http.StatusNotFound, w.Code)
	var body envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, code.ErrDeviceNotFound, body.Code)
}

func TestGenerateBulkDeviceQRSkipsDisposed(t *testing.T) {
	db, ctr := setupTestContainer(t)
	user := createTestUser(t, db, "manager@example.com", models.UserRoleManager)
	active := createTestDevice(t, db, user.ID, "AS-2024-004", models.DevicePurposeWork)
	disposed := createTestDevice(t, db, user.ID, "AS-2024-005", models.DevicePurposeDisposed)
	r := newQRTestRouter(ctr, user.ID, string(user.Role))

	w := postBulkQR(t, r, []string{active.ID, disposed.ID})

	require.Equal(t, http.StatusOK, w.Code)
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))

	qrCodes, ok := body["qr_codes"].([]interface{})
	require.True(t, ok)
	require.Len(t, qrCodes, 1)
	entry, ok := qrCodes[0].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "AS-2024-004", entry["asset_number"])
	assert.Equal(t, float64(2), body["total_requested"])
	assert.Equal(t, float64(1), body["total_generated"])
}

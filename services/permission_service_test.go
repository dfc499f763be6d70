package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"qrasset-http-service/models"
)

func TestCheckPermissionExactGrant(t *testing.T) {
	db := setupTestDB(t)
	svc := NewPermissionService(db, testConfig())
	user := createTestUser(t, db, "manager@example.com", models.UserRoleManager)

	// 타입 전체 read 부여
	_, err := svc.GrantPermission(user.ID, models.ResourceTypeDevices, nil, models.PermissionActionRead)
	require.NoError(t, err)

	allowed, err := svc.CheckPermission(user.ID, models.ResourceTypeDevices, nil, models.PermissionActionRead)
	require.NoError(t, err)
	assert.True(t, allowed)

	// 타입 전체 부여는 특정 리소스에도 적용된다
	resourceID := "d1"
	allowed, err = svc.CheckPermission(user.ID, models.ResourceTypeDevices, &resourceID, models.PermissionActionRead)
	require.NoError(t, err)
	assert.True(t, allowed)

	// 부여하지 않은 액션은 거부
	allowed, err = svc.CheckPermission(user.ID, models.ResourceTypeDevices, nil, models.PermissionActionDelete)
	require.NoError(t, err)
	assert.False(t, allowed)

	// 다른 리소스 타입도 거부
	allowed, err = svc.CheckPermission(user.ID, models.ResourceTypeEmployees, nil, models.PermissionActionRead)
	require.NoError(t, err)
	assert.False(t, allowed)
}

func TestCheckPermissionResourceSpecificGrant(t *testing.T) {
	db := setupTestDB(t)
	svc := NewPermissionService(db, testConfig())
	user := createTestUser(t, db, "manager@example.com", models.UserRoleManager)

	target := "device-1"
	_, err := svc.GrantPermission(user.ID, models.ResourceTypeDevices, &target, models.PermissionActionDelete)
	require.NoError(t, err)

	allowed, err := svc.CheckPermission(user.ID, models.ResourceTypeDevices, &target, models.PermissionActionDelete)
	require.NoError(t, err)
	assert.True(t, allowed)

	other := "device-2"
	allowed, err = svc.CheckPermission(user.ID, models.ResourceTypeDevices, &other, models.PermissionActionDelete)
	require.NoError(t, err)
	assert.False(t, allowed)
}

func TestAdminGrantAllowsEverything(t *testing.T) {
	db := setupTestDB(t)
	svc := NewPermissionService(db, testConfig())
	user := createTestUser(t, db, "manager@example.com", models.UserRoleManager)

	_, err := svc.GrantPermission(user.ID, models.ResourceTypeDevices, nil, models.PermissionActionAdmin)
	require.NoError(t, err)

	hasAdmin, err := svc.HasAdminGrant(user.ID, models.ResourceTypeDevices)
	require.NoError(t, err)
	assert.True(t, hasAdmin)

	// admin 부여는 모든 액션을 허용한다
	resourceID := "device-1"
	for _, action := range []models.PermissionAction{
		models.PermissionActionRead,
		models.PermissionActionWrite,
		models.PermissionActionDelete,
	} {
		allowed, err := svc.CheckPermission(user.ID, models.ResourceTypeDevices, &resourceID, action)
		require.NoError(t, err)
		assert.True(t, allowed, "action: %s", action)
	}

	// 다른 타입에는 영향이 없다
	hasAdmin, err = svc.HasAdminGrant(user.ID, models.ResourceTypeEmployees)
	require.NoError(t, err)
	assert.False(t, hasAdmin)
}

func TestGrantPermissionIdempotent(t *testing.T) {
	db := setupTestDB(t)
	svc := NewPermissionService(db, testConfig())
	user := createTestUser(t, db, "manager@example.com", models.UserRoleManager)

	first, err := svc.GrantPermission(user.ID, models.ResourceTypeDevices, nil, models.PermissionActionRead)
	require.NoError(t, err)
	second, err := svc.GrantPermission(user.ID, models.ResourceTypeDevices, nil, models.PermissionActionRead)
	require.NoError(t, err)

	// 동일 튜플 재부여는 기존 행을 돌려준다
	assert.Equal(t, first.ID, second.ID)

	var count int64
	require.NoError(t, db.Model(&models.Permission{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestGrantPermissionUnknownUser(t *testing.T) {
	db := setupTestDB(t)
	svc := NewPermissionService(db, testConfig())

	_, err := svc.GrantPermission("no-such-user", models.ResourceTypeDevices, nil, models.PermissionActionRead)

	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestRevokePermission(t *testing.T) {
	db := setupTestDB(t)
	svc := NewPermissionService(db, testConfig())
	user := createTestUser(t, db, "manager@example.com", models.UserRoleManager)

	granted, err := svc.GrantPermission(user.ID, models.ResourceTypeDevices, nil, models.PermissionActionRead)
	require.NoError(t, err)

	require.NoError(t, svc.RevokePermission(granted.ID))

	allowed, err := svc.CheckPermission(user.ID, models.ResourceTypeDevices, nil, models.PermissionActionRead)
	require.NoError(t, err)
	assert.False(t, allowed)

	// 이미 회수된 권한 재회수는 not found
	assert.ErrorIs(t, svc.RevokePermission(granted.ID), gorm.ErrRecordNotFound)
}

func TestGetUserPermissions(t *testing.T) {
	db := setupTestDB(t)
	svc := NewPermissionService(db, testConfig())
	user := createTestUser(t, db, "manager@example.com", models.UserRoleManager)
	other := createTestUser(t, db, "other@example.com", models.UserRoleManager)

	_, err := svc.GrantPermission(user.ID, models.ResourceTypeDevices, nil, models.PermissionActionRead)
	require.NoError(t, err)
	_, err = svc.GrantPermission(other.ID, models.ResourceTypeEmployees, nil, models.PermissionActionWrite)
	require.NoError(t, err)

	mine, err := svc.GetUserPermissions(user.ID)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, models.ResourceTypeDevices, mine[0].ResourceType)

	all, err := svc.GetAllPermissions()
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

package controllers

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"qrasset-http-service/config"
	"qrasset-http-service/internal/error/code"
	"qrasset-http-service/internal/error/response"
	"qrasset-http-service/middleware"
	"qrasset-http-service/models"
	"qrasset-http-service/services"
	"qrasset-http-service/services/container"
)

// InterfaceDeviceController 장비 컨트롤러 인터페이스
type InterfaceDeviceController interface {
	GetDevices()
	GetDevice()
	CreateDevice()
	UpdateDevice()
	DeleteDevice()
	ReturnDevice()
	DisposeDevice()
	UpdateDeviceStatus()
	GetDeviceHistory()
	ImportDevices()
	ExportDevices()
}

// DeviceController 장비 관련 요청 처리
type DeviceController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewDeviceController 새 장비 컨트롤러 생성
func NewDeviceController(ctx *gin.Context, container *container.ServiceContainer) *DeviceController {
	return &DeviceController{
		Ctx:       ctx,
		Container: container,
	}
}

// DeviceRequest 장비 등록 요청
type DeviceRequest struct {
	AssetNumber    string  `json:"asset_number" binding:"required" example:"AS-2024-001"`
	EmployeeID     *string `json:"employee_id" example:"550e8400-e29b-41d4-a716-446655440000"`
	Manufacturer   string  `json:"manufacturer" example:"Dell"`
	ModelName      string  `json:"model_name" example:"Latitude 5420"`
	SerialNumber   string  `json:"serial_number" example:"SN12345678"`
	CPU            string  `json:"cpu" example:"i7-1185G7"`
	Memory         string  `json:"memory" example:"16GB"`
	Storage        string  `json:"storage" example:"512GB SSD"`
	GPU            string  `json:"gpu" example:"Iris Xe"`
	OS             string  `json:"os" example:"Windows 11"`
	Monitor        string  `json:"monitor" example:"DELL U2419H"`
	MonitorSize    string  `json:"monitor_size" example:"24인치"`
	Purpose        string  `json:"purpose" example:"업무용"`
	DeviceType     string  `json:"device_type" example:"노트북"`
	InspectionDate string  `json:"inspection_date" example:"2024-01-15"`
	IssueDate      string  `json:"issue_date" example:"2024-02-01"`
}

// DeviceUpdateRequest 장비 수정 요청. nil 필드는 수정하지 않는다.
type DeviceUpdateRequest struct {
	AssetNumber    *string `json:"asset_number"`
	EmployeeID     *string `json:"employee_id"`
	Manufacturer   *string `json:"manufacturer"`
	ModelName      *string `json:"model_name"`
	SerialNumber   *string `json:"serial_number"`
	CPU            *string `json:"cpu"`
	Memory         *string `json:"memory"`
	Storage        *string `json:"storage"`
	GPU            *string `json:"gpu"`
	OS             *string `json:"os"`
	Monitor        *string `json:"monitor"`
	MonitorSize    *string `json:"monitor_size"`
	Purpose        *string `json:"purpose"`
	DeviceType     *string `json:"device_type"`
	InspectionDate *string `json:"inspection_date"`
	IssueDate      *string `json:"issue_date"`
}

// DisposeRequest 폐기 요청. 사유는 필수다.
type DisposeRequest struct {
	Reason string `json:"reason" binding:"required" example:"노후 장비 교체"`
}

// DeviceStatusRequest 구 버전 상태 변경 요청
type DeviceStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=returned disposed" example:"returned"`
	Reason string `json:"reason" example:"퇴사자 반납"`
}

// HandleDeviceFunc 장비 요청을 처리하는 Gin 핸들러 반환
func HandleDeviceFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewDeviceController(ctx, container)

		switch method {
		case "getDevices":
			controller.GetDevices()
		case "getDevice":
			controller.GetDevice()
		case "createDevice":
			controller.CreateDevice()
		case "updateDevice":
			controller.UpdateDevice()
		case "deleteDevice":
			controller.DeleteDevice()
		case "returnDevice":
			controller.ReturnDevice()
		case "disposeDevice":
			controller.DisposeDevice()
		case "updateDeviceStatus":
			controller.UpdateDeviceStatus()
		case "getDeviceHistory":
			controller.GetDeviceHistory()
		case "importDevices":
			controller.ImportDevices()
		case "exportDevices":
			controller.ExportDevices()
		default:
			response.Fail(ctx, code.ErrBind)
		}
	}
}

// deviceScope 호출자의 장비 접근 범위
func (c *DeviceController) deviceScope() (userID string, tenantWide bool) {
	userID = middleware.CurrentUserID(c.Ctx)
	role := middleware.CurrentUserRole(c.Ctx)
	return userID, tenantWideScope(c.Container, userID, role, models.ResourceTypeDevices)
}

// GetDevices 장비 목록 조회
// @Summary 장비 목록
// @Description 호출자 범위의 장비 목록. assignment_status로 할당 상태 필터링.
// @Tags devices
// @Produce json
// @Security BearerAuth
// @Param assignment_status query string false "assigned | unassigned | all"
// @Success 200 {array} models.Device
// @Failure 400 {object} ErrorResponse
// @Router /devices [get]
func (c *DeviceController) GetDevices() {
	userID, tenantWide := c.deviceScope()

	deviceService := c.Container.GetService("device").(services.InterfaceDeviceService)
	devices, err := deviceService.GetDevices(userID, tenantWide, c.Ctx.Query("assignment_status"))
	if err != nil {
		response.FailWithMessage(c.Ctx, code.ErrValidation, err.Error())
		return
	}
	response.Success(c.Ctx, devices)
}

// GetDevice 장비 단건 조회
// @Summary 장비 조회
// @Description UUID 또는 자산번호로 장비를 조회한다
// @Tags devices
// @Produce json
// @Security BearerAuth
// @Param identifier path string true "장비 ID 또는 자산번호"
// @Success 200 {object} models.Device
// @Failure 404 {object} ErrorResponse
// @Router /devices/{identifier} [get]
func (c *DeviceController) GetDevice() {
	userID, tenantWide := c.deviceScope()

	deviceService := c.Container.GetService("device").(services.InterfaceDeviceService)
	device, err := deviceService.GetDeviceByIdentifier(userID, c.Ctx.Param("identifier"), tenantWide)
	if err != nil {
		response.Fail(c.Ctx, mapServiceError(err))
		return
	}
	response.Success(c.Ctx, device)
}

// CreateDevice 장비 등록
// @Summary 장비 등록
// @Description 새 장비를 등록한다. 자산번호 중복과 직원 소유권을 검증한다.
// @Tags devices
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body DeviceRequest true "장비 정보"
// @Success 201 {object} models.Device
// @Failure 400 {object} ErrorResponse
// @Router /devices [post]
func (c *DeviceController) CreateDevice() {
	var req DeviceRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrBind, "요청 형식이 올바르지 않습니다: "+err.Error())
		return
	}

	userID := middleware.CurrentUserID(c.Ctx)
	device := &models.Device{
		AdminID:        userID,
		EmployeeID:     req.EmployeeID,
		AssetNumber:    req.AssetNumber,
		Manufacturer:   req.Manufacturer,
		ModelName:      req.ModelName,
		SerialNumber:   req.SerialNumber,
		CPU:            req.CPU,
		Memory:         req.Memory,
		Storage:        req.Storage,
		GPU:            req.GPU,
		OS:             req.OS,
		Monitor:        req.Monitor,
		MonitorSize:    req.MonitorSize,
		Purpose:        req.Purpose,
		DeviceType:     req.DeviceType,
		InspectionDate: req.InspectionDate,
		IssueDate:      req.IssueDate,
	}

	deviceService := c.Container.GetService("device").(services.InterfaceDeviceService)
	if err := deviceService.CreateDevice(userID, device); err != nil {
		response.Fail(c.Ctx, mapServiceError(err))
		return
	}

	c.Ctx.JSON(http.StatusCreated, gin.H{
		"code":    code.ErrSuccess,
		"message": "장비가 등록되었습니다",
		"data":    device,
	})
}

// UpdateDevice 장비 수정
// @Summary 장비 수정
// @Description 장비 필드를 수정한다. 변경 내역이 이력에 기록된다.
// @Tags devices
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param identifier path string true "장비 ID 또는 자산번호"
// @Param request body DeviceUpdateRequest true "수정 내용"
// @Success 200 {object} models.Device
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /devices/{identifier} [put]
func (c *DeviceController) UpdateDevice() {
	var req DeviceUpdateRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrBind, "요청 형식이 올바르지 않습니다: "+err.Error())
		return
	}

	updates := map[string]interface{}{}
	setIf := func(field string, value *string) {
		if value != nil {
			updates[field] = *value
		}
	}
	setIf("asset_number", req.AssetNumber)
	setIf("manufacturer", req.Manufacturer)
	setIf("model_name", req.ModelName)
	setIf("serial_number", req.SerialNumber)
	setIf("cpu", req.CPU)
	setIf("memory", req.Memory)
	setIf("storage", req.Storage)
	setIf("gpu", req.GPU)
	setIf("os", req.OS)
	setIf("monitor", req.Monitor)
	setIf("monitor_size", req.MonitorSize)
	setIf("purpose", req.Purpose)
	setIf("device_type", req.DeviceType)
	setIf("inspection_date", req.InspectionDate)
	setIf("issue_date", req.IssueDate)
	if req.EmployeeID != nil {
		// 빈 문자열은 할당 해제를 의미한다
		updates["employee_id"] = *req.EmployeeID
	}

	userID, tenantWide := c.deviceScope()
	deviceService := c.Container.GetService("device").(services.InterfaceDeviceService)
	device, err := deviceService.UpdateDevice(userID, c.Ctx.Param("identifier"), tenantWide, userID, updates)
	if err != nil {
		response.Fail(c.Ctx, mapServiceError(err))
		return
	}
	response.Success(c.Ctx, device)
}

// DeleteDevice 장비 삭제 (비활성화됨)
// @Summary 장비 삭제
// @Description 존재/권한 확인 후 항상 기능 비활성화 응답을 반환한다. 폐기된 장비는 별도로 관리된다.
// @Tags devices
// @Produce json
// @Security BearerAuth
// @Param identifier path string true "장비 ID 또는 자산번호"
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /devices/{identifier} [delete]
func (c *DeviceController) DeleteDevice() {
	userID, tenantWide := c.deviceScope()

	deviceService := c.Container.GetService("device").(services.InterfaceDeviceService)
	if _, err := deviceService.GetDeviceByIdentifier(userID, c.Ctx.Param("identifier"), tenantWide); err != nil {
		response.Fail(c.Ctx, mapServiceError(err))
		return
	}

	// 삭제 기능은 의도적으로 비활성화 상태를 유지한다
	response.Fail(c.Ctx, code.ErrDeviceDeleteDisabled)
}

// ReturnDevice 장비 반납
// @Summary 장비 반납
// @Description 할당된 장비를 미할당 상태로 되돌린다
// @Tags devices
// @Produce json
// @Security BearerAuth
// @Param identifier path string true "장비 ID 또는 자산번호"
// @Success 200 {object} models.Device
// @Failure 400 {object} ErrorResponse
// @Router /devices/{identifier}/return [post]
func (c *DeviceController) ReturnDevice() {
	userID, tenantWide := c.deviceScope()

	deviceService := c.Container.GetService("device").(services.InterfaceDeviceService)
	device, err := deviceService.ReturnDevice(userID, c.Ctx.Param("identifier"), tenantWide, userID)
	if err != nil {
		errorCode := mapServiceError(err)
		if errorCode == code.ErrDatabase {
			response.FailWithMessage(c.Ctx, code.ErrValidation, err.Error())
			return
		}
		response.Fail(c.Ctx, errorCode)
		return
	}
	response.Success(c.Ctx, device)
}

// DisposeDevice 장비 폐기
// @Summary 장비 폐기
// @Description 사유와 함께 장비를 폐기한다. 담당자 해제와 용도 변경이 함께 처리된다.
// @Tags devices
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param identifier path string true "장비 ID 또는 자산번호"
// @Param request body DisposeRequest true "폐기 사유"
// @Success 200 {object} models.Device
// @Failure 400 {object} ErrorResponse
// @Router /devices/{identifier}/dispose [post]
func (c *DeviceController) DisposeDevice() {
	var req DisposeRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrValidation, "폐기 사유는 필수입니다")
		return
	}

	userID, tenantWide := c.deviceScope()
	deviceService := c.Container.GetService("device").(services.InterfaceDeviceService)
	device, err := deviceService.DisposeDevice(userID, c.Ctx.Param("identifier"), tenantWide, userID, req.Reason)
	if err != nil {
		response.Fail(c.Ctx, mapServiceError(err))
		return
	}
	response.Success(c.Ctx, device)
}

// UpdateDeviceStatus 구 버전 상태 변경
// @Summary 장비 상태 변경 (구 버전)
// @Description status 값에 따라 반납 또는 폐기를 수행한다
// @Tags devices
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param identifier path string true "장비 ID 또는 자산번호"
// @Param request body DeviceStatusRequest true "상태"
// @Success 200 {object} models.Device
// @Failure 400 {object} ErrorResponse
// @Router /devices/{identifier}/status [patch]
func (c *DeviceController) UpdateDeviceStatus() {
	var req DeviceStatusRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrBind, "요청 형식이 올바르지 않습니다: "+err.Error())
		return
	}

	userID, tenantWide := c.deviceScope()
	deviceService := c.Container.GetService("device").(services.InterfaceDeviceService)

	var device *models.Device
	var err error
	switch req.Status {
	case "returned":
		device, err = deviceService.ReturnDevice(userID, c.Ctx.Param("identifier"), tenantWide, userID)
	case "disposed":
		if req.Reason == "" {
			response.FailWithMessage(c.Ctx, code.ErrValidation, "폐기 사유는 필수입니다")
			return
		}
		device, err = deviceService.DisposeDevice(userID, c.Ctx.Param("identifier"), tenantWide, userID, req.Reason)
	}
	if err != nil {
		errorCode := mapServiceError(err)
		if errorCode == code.ErrDatabase {
			response.FailWithMessage(c.Ctx, code.ErrValidation, err.Error())
			return
		}
		response.Fail(c.Ctx, errorCode)
		return
	}
	response.Success(c.Ctx, device)
}

// GetDeviceHistory 장비 이력 조회
// @Summary 장비 이력
// @Description 장비의 상태 전이 이력을 최신순으로 반환한다
// @Tags devices
// @Produce json
// @Security BearerAuth
// @Param identifier path string true "장비 ID 또는 자산번호"
// @Success 200 {array} models.DeviceHistory
// @Failure 404 {object} ErrorResponse
// @Router /devices/{identifier}/history [get]
func (c *DeviceController) GetDeviceHistory() {
	userID, tenantWide := c.deviceScope()

	deviceService := c.Container.GetService("device").(services.InterfaceDeviceService)
	device, err := deviceService.GetDeviceByIdentifier(userID, c.Ctx.Param("identifier"), tenantWide)
	if err != nil {
		response.Fail(c.Ctx, mapServiceError(err))
		return
	}

	historyService := c.Container.GetService("history").(services.InterfaceHistoryService)
	entries, err := historyService.GetDeviceHistory(device.ID)
	if err != nil {
		response.Fail(c.Ctx, code.ErrDatabase)
		return
	}
	response.Success(c.Ctx, entries)
}

// ImportDevices Excel/CSV 가져오기
// @Summary 장비 일괄 가져오기
// @Description Excel/CSV 파일을 자산번호 기준으로 업서트한다. 행 단위 오류는 결과에 누적된다.
// @Tags devices
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param file formData file true "xlsx 또는 csv 파일 (최대 10MB)"
// @Success 200 {object} services.ImportResult
// @Failure 400 {object} ErrorResponse
// @Router /devices/import [post]
func (c *DeviceController) ImportDevices() {
	cfg := c.Container.GetService("config").(*config.Config)

	fileHeader, err := c.Ctx.FormFile("file")
	if err != nil {
		response.FailWithMessage(c.Ctx, code.ErrValidation, "업로드 파일이 필요합니다")
		return
	}
	if fileHeader.Size > cfg.UploadMaxBytes {
		response.FailWithMessage(c.Ctx, code.ErrValidation,
			fmt.Sprintf("파일 크기는 %dMB를 초과할 수 없습니다", cfg.UploadMaxBytes/(1024*1024)))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		response.Fail(c.Ctx, code.ErrUnknown)
		return
	}
	defer file.Close()

	excelService := c.Container.GetService("excel").(services.InterfaceExcelService)
	rows, err := excelService.ParseImportFile(fileHeader.Filename, file)
	if err != nil {
		response.FailWithMessage(c.Ctx, code.ErrValidation, err.Error())
		return
	}

	userID := middleware.CurrentUserID(c.Ctx)
	deviceService := c.Container.GetService("device").(services.InterfaceDeviceService)
	result, err := deviceService.ImportDevices(userID, userID, rows)
	if err != nil {
		response.Fail(c.Ctx, code.ErrDatabase)
		return
	}
	response.Success(c.Ctx, result)
}

// ExportDevices Excel 내보내기
// @Summary 장비 목록 내보내기
// @Description 호출자 범위의 장비 목록을 xlsx 파일로 내려준다
// @Tags devices
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security BearerAuth
// @Success 200 {file} binary
// @Failure 500 {object} ErrorResponse
// @Router /devices/export [get]
func (c *DeviceController) ExportDevices() {
	userID, tenantWide := c.deviceScope()

	deviceService := c.Container.GetService("device").(services.InterfaceDeviceService)
	devices, err := deviceService.GetDevices(userID, tenantWide, services.AssignmentFilterAll)
	if err != nil {
		response.Fail(c.Ctx, code.ErrDatabase)
		return
	}

	excelService := c.Container.GetService("excel").(services.InterfaceExcelService)
	workbook, err := excelService.ExportDevices(devices)
	if err != nil {
		config.Error("Excel 내보내기 실패: %v", err)
		response.Fail(c.Ctx, code.ErrUnknown)
		return
	}

	var buf bytes.Buffer
	if err := workbook.Write(&buf); err != nil {
		response.Fail(c.Ctx, code.ErrUnknown)
		return
	}

	filename := fmt.Sprintf("devices_%s.xlsx", time.Now().Format("20060102"))
	c.Ctx.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Ctx.Data(http.StatusOK,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		buf.Bytes())
}

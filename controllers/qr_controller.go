package controllers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"qrasset-http-service/internal/error/code"
	"qrasset-http-service/internal/error/response"
	"qrasset-http-service/middleware"
	"qrasset-http-service/models"
	"qrasset-http-service/services"
	"qrasset-http-service/services/container"
)

// InterfaceQRController QR 컨트롤러 인터페이스
type InterfaceQRController interface {
	GenerateDeviceQR()
	GenerateEmployeeQR()
	GenerateBulkDeviceQR()
	DecodeQR()
	ValidateQR()
}

// QRController QR 코드 발급/디코드 요청 처리.
// 디코드/검증 응답은 기존 스캐너와의 호환을 위해 원래 응답 형태를 유지한다.
type QRController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewQRController 새 QR 컨트롤러 생성
func NewQRController(ctx *gin.Context, container *container.ServiceContainer) *QRController {
	return &QRController{
		Ctx:       ctx,
		Container: container,
	}
}

// BulkQRRequest 장비 일괄 QR 발급 요청
type BulkQRRequest struct {
	DeviceIDs   []string `json:"device_ids" binding:"required" example:"550e8400-e29b-41d4-a716-446655440000"`
	Format      string   `json:"format" example:"json"`
	Size        int      `json:"size" example:"200"`
	IncludeLink *bool    `json:"include_link"`
}

// QRStringRequest 디코드/검증 요청
type QRStringRequest struct {
	QRString string `json:"qr_string" binding:"required"`
}

// 일괄 발급 요청당 최대 장비 수
const bulkQRLimit = 100

// HandleQRFunc QR 요청을 처리하는 Gin 핸들러 반환
func HandleQRFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewQRController(ctx, container)

		switch method {
		case "generateDeviceQR":
			controller.GenerateDeviceQR()
		case "generateEmployeeQR":
			controller.GenerateEmployeeQR()
		case "generateBulkDeviceQR":
			controller.GenerateBulkDeviceQR()
		case "decodeQR":
			controller.DecodeQR()
		case "validateQR":
			controller.ValidateQR()
		default:
			response.Fail(ctx, code.ErrBind)
		}
	}
}

// GenerateDeviceQR 장비 QR 발급
// @Summary 장비 QR 코드
// @Description 장비의 QR 코드를 발급한다. 폐기 장비는 거부된다.
// @Tags qr
// @Produce json
// @Security BearerAuth
// @Param identifier path string true "장비 ID 또는 자산번호"
// @Param format query string false "json | png | svg | pdf (기본 png)"
// @Param size query int false "이미지 크기 (기본 200)"
// @Param includeLink query string false "딥링크 포함 여부 (기본 true)"
// @Param linkOnly query string false "딥링크만 포함 (기본 false)"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /qr/device/{identifier} [get]
func (c *QRController) GenerateDeviceQR() {
	userID := middleware.CurrentUserID(c.Ctx)
	role := middleware.CurrentUserRole(c.Ctx)
	tenantWide := tenantWideScope(c.Container, userID, role, models.ResourceTypeDevices)

	deviceService := c.Container.GetService("device").(services.InterfaceDeviceService)
	device, err := deviceService.GetDeviceByIdentifier(userID, c.Ctx.Param("identifier"), tenantWide)
	if err != nil {
		response.Fail(c.Ctx, mapServiceError(err))
		return
	}
	if device.IsDisposed() {
		response.Fail(c.Ctx, code.ErrQRDisposedDevice)
		return
	}

	userService := c.Container.GetService("user").(services.InterfaceUserService)
	companyName := ""
	if user, err := userService.GetUserByID(userID); err == nil {
		companyName = user.CompanyName
	}

	qrService := c.Container.GetService("qr").(services.InterfaceQRService)
	includeLink := c.Ctx.DefaultQuery("includeLink", "true") == "true"
	linkOnly := c.Ctx.DefaultQuery("linkOnly", "false") == "true"
	size := queryInt(c.Ctx, "size", 200)

	payload := qrService.BuildDevicePayload(device, companyName, includeLink)
	qrString := mustMarshal(payload)
	if linkOnly {
		qrString = qrService.DeviceLink(device.AssetNumber)
	}

	switch c.Ctx.DefaultQuery("format", "png") {
	case "json":
		var qrData interface{} = payload
		linkType := "full_data"
		if linkOnly {
			linkType = "link_only"
			qrData = gin.H{
				"type":         "device",
				"asset_number": device.AssetNumber,
				"direct_link":  qrService.DeviceLink(device.AssetNumber),
				"link_only":    true,
				"generated_at": time.Now().Format(time.RFC3339),
			}
		}
		employeeName := "미할당"
		department := ""
		if device.Employee != nil {
			employeeName = device.Employee.Name
			department = device.Employee.Department
		}
		c.Ctx.JSON(http.StatusOK, gin.H{
			"qr_data":   qrData,
			"qr_string": qrString,
			"metadata": gin.H{
				"generated_at": time.Now().Format(time.RFC3339),
				"format":       "json",
				"device_info": gin.H{
					"asset_number": device.AssetNumber,
					"manufacturer": device.Manufacturer,
					"model_name":   device.ModelName,
					"employee":     employeeName,
					"department":   department,
					"purpose":      device.Purpose,
				},
				"direct_link": payload.Link,
				"link_type":   linkType,
			},
		})
	case "svg", "pdf":
		response.Fail(c.Ctx, code.ErrQRFormatNotImplemented)
	default:
		png, err := qrService.EncodePNG(qrString, size)
		if err != nil {
			response.Fail(c.Ctx, code.ErrUnknown)
			return
		}
		c.Ctx.Header("Content-Disposition",
			fmt.Sprintf("inline; filename=%q", "qr_device_"+device.AssetNumber+".png"))
		c.Ctx.Data(http.StatusOK, "image/png", png)
	}
}

// GenerateEmployeeQR 직원 QR 발급
// @Summary 직원 QR 코드
// @Description 직원 정보와 보유 장비 수가 담긴 QR 코드를 발급한다
// @Tags qr
// @Produce json
// @Security BearerAuth
// @Param id path string true "직원 ID"
// @Param format query string false "json | png (기본 png)"
// @Param size query int false "이미지 크기 (기본 200)"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} ErrorResponse
// @Router /qr/employee/{id} [get]
func (c *QRController) GenerateEmployeeQR() {
	userID := middleware.CurrentUserID(c.Ctx)
	role := middleware.CurrentUserRole(c.Ctx)
	tenantWide := tenantWideScope(c.Container, userID, role, models.ResourceTypeEmployees)

	employeeService := c.Container.GetService("employee").(services.InterfaceEmployeeService)
	employee, err := employeeService.GetEmployeeByID(userID, c.Ctx.Param("id"), tenantWide)
	if err != nil {
		response.Fail(c.Ctx, mapServiceError(err))
		return
	}

	userService := c.Container.GetService("user").(services.InterfaceUserService)
	companyName := ""
	if user, err := userService.GetUserByID(userID); err == nil {
		companyName = user.CompanyName
	}

	qrService := c.Container.GetService("qr").(services.InterfaceQRService)
	payload := qrService.BuildEmployeePayload(employee, companyName, int(employee.DeviceCount))
	qrString := mustMarshal(payload)
	size := queryInt(c.Ctx, "size", 200)

	switch c.Ctx.DefaultQuery("format", "png") {
	case "json":
		c.Ctx.JSON(http.StatusOK, gin.H{
			"qr_data":   payload,
			"qr_string": qrString,
			"metadata": gin.H{
				"generated_at": time.Now().Format(time.RFC3339),
				"format":       "json",
				"employee_info": gin.H{
					"name":         employee.Name,
					"department":   employee.Department,
					"position":     employee.Position,
					"device_count": employee.DeviceCount,
				},
			},
		})
	case "svg", "pdf":
		response.Fail(c.Ctx, code.ErrQRFormatNotImplemented)
	default:
		png, err := qrService.EncodePNG(qrString, size)
		if err != nil {
			response.Fail(c.Ctx, code.ErrUnknown)
			return
		}
		c.Ctx.Header("Content-Disposition",
			fmt.Sprintf("inline; filename=%q", "qr_employee_"+employee.ID+".png"))
		c.Ctx.Data(http.StatusOK, "image/png", png)
	}
}

// GenerateBulkDeviceQR 장비 일괄 QR 발급
// @Summary 장비 일괄 QR 코드
// @Description 요청당 최대 100개 장비의 QR을 발급한다. 폐기/타인 소유 장비는 제외된다.
// @Tags qr
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body BulkQRRequest true "대상 장비 ID 목록"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /qr/bulk/devices [post]
func (c *QRController) GenerateBulkDeviceQR() {
	var req BulkQRRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil || len(req.DeviceIDs) == 0 {
		response.FailWithMessage(c.Ctx, code.ErrValidation, "장비 ID 배열이 필요합니다")
		return
	}

	// 어떤 처리보다 먼저 한도를 검사한다
	if len(req.DeviceIDs) > bulkQRLimit {
		response.Fail(c.Ctx, code.ErrQRBulkLimitExceeded)
		return
	}

	format := req.Format
	if format == "" {
		format = "json"
	}
	size := req.Size
	if size <= 0 {
		size = 200
	}
	includeLink := req.IncludeLink == nil || *req.IncludeLink

	userID := middleware.CurrentUserID(c.Ctx)
	role := middleware.CurrentUserRole(c.Ctx)
	tenantWide := tenantWideScope(c.Container, userID, role, models.ResourceTypeDevices)

	userService := c.Container.GetService("user").(services.InterfaceUserService)
	companyName := ""
	if user, err := userService.GetUserByID(userID); err == nil {
		companyName = user.CompanyName
	}

	deviceService := c.Container.GetService("device").(services.InterfaceDeviceService)
	qrService := c.Container.GetService("qr").(services.InterfaceQRService)

	// 폐기 장비와 호출자 범위 밖의 장비는 제외
	var targets []*models.Device
	for _, id := range req.DeviceIDs {
		device, err := deviceService.GetDeviceByIdentifier(userID, id, tenantWide)
		if err != nil || device.IsDisposed() {
			continue
		}
		targets = append(targets, device)
	}
	if len(targets) == 0 {
		response.Fail(c.Ctx, code.ErrDeviceNotFound)
		return
	}

	qrCodes := make([]gin.H, 0, len(targets))
	failed := 0
	for _, device := range targets {
		payload := qrService.BuildDevicePayload(device, companyName, includeLink)
		qrString := mustMarshal(payload)

		employeeName := "미할당"
		department := ""
		if device.Employee != nil {
			employeeName = device.Employee.Name
			department = device.Employee.Department
		}
		metadata := gin.H{
			"generated_at": time.Now().Format(time.RFC3339),
			"employee":     employeeName,
			"department":   department,
			"purpose":      device.Purpose,
			"direct_link":  payload.Link,
		}

		if format == "json" {
			qrCodes = append(qrCodes, gin.H{
				"device_id":    device.ID,
				"asset_number": device.AssetNumber,
				"qr_data":      payload,
				"qr_string":    qrString,
				"metadata":     metadata,
			})
			continue
		}

		dataURL, err := qrService.EncodeDataURL(qrString, size)
		if err != nil {
			// 항목 실패는 전체 처리를 중단시키지 않는다
			failed++
			qrCodes = append(qrCodes, gin.H{
				"device_id":    device.ID,
				"asset_number": device.AssetNumber,
				"error":        "QR 코드 생성에 실패했습니다",
			})
			continue
		}
		qrCodes = append(qrCodes, gin.H{
			"device_id":    device.ID,
			"asset_number": device.AssetNumber,
			"qr_data_url":  dataURL,
			"metadata":     metadata,
		})
	}

	generated := len(qrCodes) - failed
	successRate := float64(generated) / float64(len(req.DeviceIDs)) * 100

	c.Ctx.JSON(http.StatusOK, gin.H{
		"message":         "일괄 QR 코드 생성 완료",
		"total_requested": len(req.DeviceIDs),
		"total_generated": generated,
		"total_failed":    failed,
		"success_rate":    fmt.Sprintf("%.1f%%", successRate),
		"qr_codes":        qrCodes,
		"summary": gin.H{
			"successful":   generated,
			"failed":       failed,
			"generated_at": time.Now().Format(time.RFC3339),
		},
	})
}

// DecodeQR QR 문자열 디코드
// @Summary QR 디코드
// @Description QR 문자열을 공통 필드 집합으로 정규화한다. 실패도 값으로 보고된다.
// @Tags qr
// @Accept json
// @Produce json
// @Param request body QRStringRequest true "QR 문자열"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Router /qr/decode [post]
func (c *QRController) DecodeQR() {
	var req QRStringRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		c.Ctx.JSON(http.StatusBadRequest, gin.H{
			"error":    "QR string is required",
			"is_valid": false,
		})
		return
	}

	qrService := c.Container.GetService("qr").(services.InterfaceQRService)
	result := qrService.Decode(req.QRString)

	if !result.IsValid {
		body := gin.H{
			"error":    result.Error,
			"is_valid": false,
		}
		if len(result.ValidationErrors) > 0 {
			body["validation_errors"] = result.ValidationErrors
		}
		c.Ctx.JSON(http.StatusBadRequest, body)
		return
	}

	c.Ctx.JSON(http.StatusOK, gin.H{
		"message":    "QR code decoded successfully",
		"data":       result.Data,
		"is_valid":   true,
		"format":     result.Format,
		"version":    result.Version,
		"decoded_at": time.Now().Format(time.RFC3339),
	})
}

// ValidateQR QR 문자열 구조 검증
// @Summary QR 검증
// @Description DB 조회 없이 QR 문자열 구조만 검증한다. 판정 결과는 항상 200이다.
// @Tags qr
// @Accept json
// @Produce json
// @Param request body QRStringRequest true "QR 문자열"
// @Success 200 {object} models.QRValidationResult
// @Failure 400 {object} map[string]interface{}
// @Router /qr/validate [post]
func (c *QRController) ValidateQR() {
	var req QRStringRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		c.Ctx.JSON(http.StatusBadRequest, gin.H{
			"is_valid": false,
			"error":    "QR string is required",
		})
		return
	}

	qrService := c.Container.GetService("qr").(services.InterfaceQRService)
	c.Ctx.JSON(http.StatusOK, qrService.Validate(req.QRString))
}

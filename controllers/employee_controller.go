package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"qrasset-http-service/internal/error/code"
	"qrasset-http-service/internal/error/response"
	"qrasset-http-service/middleware"
	"qrasset-http-service/models"
	"qrasset-http-service/services"
	"qrasset-http-service/services/container"
)

// InterfaceEmployeeController 직원 컨트롤러 인터페이스
type InterfaceEmployeeController interface {
	GetEmployees()
	GetEmployee()
	CreateEmployee()
	UpdateEmployee()
	DeleteEmployee()
}

// EmployeeController 직원 관련 요청 처리
type EmployeeController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewEmployeeController 새 직원 컨트롤러 생성
func NewEmployeeController(ctx *gin.Context, container *container.ServiceContainer) *EmployeeController {
	return &EmployeeController{
		Ctx:       ctx,
		Container: container,
	}
}

// EmployeeRequest 직원 등록/수정 요청
type EmployeeRequest struct {
	Name        string `json:"name" binding:"required" example:"홍길동"`
	Department  string `json:"department" binding:"required" example:"개발팀"`
	Position    string `json:"position" binding:"required" example:"선임"`
	CompanyName string `json:"company_name" binding:"required" example:"우리회사"`
	Email       string `json:"email" example:"hong@example.com"`
	Phone       string `json:"phone" example:"010-1234-5678"`
}

// HandleEmployeeFunc 직원 요청을 처리하는 Gin 핸들러 반환
func HandleEmployeeFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewEmployeeController(ctx, container)

		switch method {
		case "getEmployees":
			controller.GetEmployees()
		case "getEmployee":
			controller.GetEmployee()
		case "createEmployee":
			controller.CreateEmployee()
		case "updateEmployee":
			controller.UpdateEmployee()
		case "deleteEmployee":
			controller.DeleteEmployee()
		default:
			response.Fail(ctx, code.ErrBind)
		}
	}
}

// GetEmployees 직원 목록 조회
// @Summary 직원 목록
// @Description 호출자 범위의 직원 목록을 보유 장비 수와 함께 반환한다
// @Tags employees
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.Employee
// @Failure 500 {object} ErrorResponse
// @Router /employees [get]
func (c *EmployeeController) GetEmployees() {
	userID := middleware.CurrentUserID(c.Ctx)
	role := middleware.CurrentUserRole(c.Ctx)
	tenantWide := tenantWideScope(c.Container, userID, role, models.ResourceTypeEmployees)

	employeeService := c.Container.GetService("employee").(services.InterfaceEmployeeService)
	employees, err := employeeService.GetEmployees(userID, tenantWide)
	if err != nil {
		response.Fail(c.Ctx, code.ErrDatabase)
		return
	}
	response.Success(c.Ctx, employees)
}

// GetEmployee 직원 단건 조회
// @Summary 직원 조회
// @Description ID로 직원을 조회한다 (할당 장비 포함)
// @Tags employees
// @Produce json
// @Security BearerAuth
// @Param id path string true "직원 ID"
// @Success 200 {object} models.Employee
// @Failure 404 {object} ErrorResponse
// @Router /employees/{id} [get]
func (c *EmployeeController) GetEmployee() {
	userID := middleware.CurrentUserID(c.Ctx)
	role := middleware.CurrentUserRole(c.Ctx)
	tenantWide := tenantWideScope(c.Container, userID, role, models.ResourceTypeEmployees)

	employeeService := c.Container.GetService("employee").(services.InterfaceEmployeeService)
	employee, err := employeeService.GetEmployeeByID(userID, c.Ctx.Param("id"), tenantWide)
	if err != nil {
		response.Fail(c.Ctx, mapServiceError(err))
		return
	}
	response.Success(c.Ctx, employee)
}

// CreateEmployee 직원 등록
// @Summary 직원 등록
// @Description 새 직원을 등록한다
// @Tags employees
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body EmployeeRequest true "직원 정보"
// @Success 201 {object} models.Employee
// @Failure 400 {object} ErrorResponse
// @Router /employees [post]
func (c *EmployeeController) CreateEmployee() {
	var req EmployeeRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrBind, "요청 형식이 올바르지 않습니다: "+err.Error())
		return
	}

	employee := &models.Employee{
		AdminID:     middleware.CurrentUserID(c.Ctx),
		Name:        req.Name,
		Department:  req.Department,
		Position:    req.Position,
		CompanyName: req.CompanyName,
		Email:       req.Email,
		Phone:       req.Phone,
	}

	employeeService := c.Container.GetService("employee").(services.InterfaceEmployeeService)
	if err := employeeService.CreateEmployee(employee); err != nil {
		response.Fail(c.Ctx, code.ErrDatabase)
		return
	}

	c.Ctx.JSON(http.StatusCreated, gin.H{
		"code":    code.ErrSuccess,
		"message": "직원이 등록되었습니다",
		"data":    employee,
	})
}

// UpdateEmployee 직원 수정
// @Summary 직원 수정
// @Description 직원 정보를 수정한다
// @Tags employees
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "직원 ID"
// @Param request body EmployeeRequest true "수정 내용"
// @Success 200 {object} models.Employee
// @Failure 404 {object} ErrorResponse
// @Router /employees/{id} [put]
func (c *EmployeeController) UpdateEmployee() {
	var req EmployeeRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrBind, "요청 형식이 올바르지 않습니다: "+err.Error())
		return
	}

	userID := middleware.CurrentUserID(c.Ctx)
	role := middleware.CurrentUserRole(c.Ctx)
	tenantWide := tenantWideScope(c.Container, userID, role, models.ResourceTypeEmployees)

	updates := map[string]interface{}{
		"name":         req.Name,
		"department":   req.Department,
		"position":     req.Position,
		"company_name": req.CompanyName,
		"email":        req.Email,
		"phone":        req.Phone,
	}

	employeeService := c.Container.GetService("employee").(services.InterfaceEmployeeService)
	employee, err := employeeService.UpdateEmployee(userID, c.Ctx.Param("id"), tenantWide, updates)
	if err != nil {
		response.Fail(c.Ctx, mapServiceError(err))
		return
	}
	response.Success(c.Ctx, employee)
}

// DeleteEmployee 직원 삭제
// @Summary 직원 삭제
// @Description 직원을 삭제한다. 할당 장비가 있으면 거부되며 명시적 삭제 권한이 필요하다.
// @Tags employees
// @Produce json
// @Security BearerAuth
// @Param id path string true "직원 ID"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Router /employees/{id} [delete]
func (c *EmployeeController) DeleteEmployee() {
	userID := middleware.CurrentUserID(c.Ctx)
	role := middleware.CurrentUserRole(c.Ctx)
	employeeID := c.Ctx.Param("id")

	// 소유권만으로는 삭제할 수 없다
	if !canDelete(c.Container, userID, role, models.ResourceTypeEmployees, employeeID) {
		response.Fail(c.Ctx, code.ErrPermissionDenied)
		return
	}

	tenantWide := tenantWideScope(c.Container, userID, role, models.ResourceTypeEmployees)
	employeeService := c.Container.GetService("employee").(services.InterfaceEmployeeService)
	if err := employeeService.DeleteEmployee(userID, employeeID, tenantWide); err != nil {
		response.Fail(c.Ctx, mapServiceError(err))
		return
	}
	response.Success(c.Ctx, gin.H{"deleted": true})
}

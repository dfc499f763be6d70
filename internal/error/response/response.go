package response

import (
	"github.com/gin-gonic/gin"

	"qrasset-http-service/internal/error/code"
)

// Response 표준 응답 구조
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// Success 성공 응답 반환
func Success(c *gin.Context, data interface{}) {
	c.JSON(code.StatusOK, Response{
		Code:    code.ErrSuccess,
		Message: code.GetMessage(code.ErrSuccess),
		Data:    data,
	})
}

// Fail 에러 코드 기반 실패 응답 반환
func Fail(c *gin.Context, errorCode int) {
	c.JSON(code.GetStatus(errorCode), Response{
		Code:    errorCode,
		Message: code.GetMessage(errorCode),
	})
}

// FailWithMessage 커스텀 메시지로 실패 응답 반환
func FailWithMessage(c *gin.Context, errorCode int, message string) {
	c.JSON(code.GetStatus(errorCode), Response{
		Code:    errorCode,
		Message: message,
	})
}

// file: utils/response.go
package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"CFOCup/services"
)

type Response struct {
	Code int         `json:"code"`
	Msg  string      `json:"msg"`
	Data interface{} `json:"data,omitempty"`
}

func Success(c *gin.Context, msg string, data interface{}) {
	c.JSON(http.StatusOK, Response{Code: 0, Msg: msg, Data: data})
}

func Error(c *gin.Context, code int, msg string) {
	c.JSON(http.StatusOK, Response{Code: code, Msg: msg})
}

// 领域错误类别 -> 业务错误码
var kindCodes = map[services.ErrorKind]int{
	services.KindValidation:    1001,
	services.KindGateClosed:    4030,
	services.KindForbidden:     4003,
	services.KindNotAssigned:   4005,
	services.KindNotFound:      4004,
	services.KindStateConflict: 4009,
	services.KindPrecondition:  4012,
	services.KindInternal:      5000,
}

// Fail 将服务层错误映射为统一响应
func Fail(c *gin.Context, err error) {
	kind := services.KindOf(err)
	code, ok := kindCodes[kind]
	if !ok {
		code = 5000
	}
	msg := err.Error()
	if kind == services.KindInternal {
		msg = "服务器内部错误"
	}
	c.JSON(http.StatusOK, Response{Code: code, Msg: msg})
}

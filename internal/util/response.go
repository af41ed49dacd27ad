package util

import (
	"errors"
	"log"
	"net/http"

	"github.com/Expenses-tracker-app/backend/internal/apperr"

	"github.com/gin-gonic/gin"
)

// 通用返回结构里的 data 使用 map
type Response map[string]interface{}

// 业务错误码
const (
	CodeOK           = 0
	CodeInvalidParam = 40001
	CodeAuth         = 40101
	CodeNotFound     = 40401
	CodeServerErr    = 50001
)

// Success 统一成功返回，直接输出资源本身
func Success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, data)
}

// Error 统一错误返回
func Error(c *gin.Context, httpStatus int, code int, msg string) {
	c.JSON(httpStatus, gin.H{
		"code":    code,
		"message": msg,
	})
}

// Fail maps a typed error to its transport status. Untyped errors become a
// generic 500; the cause is logged server-side and never sent to the client.
func Fail(c *gin.Context, err error) {
	var ae *apperr.Error
	if errors.As(err, &ae) {
		if ae.Kind == apperr.Internal && ae.Err != nil {
			log.Printf("%s %s: %v", c.Request.Method, c.Request.URL.Path, ae.Err)
		}
		Error(c, ae.HTTPStatus(), codeFor(ae.Kind), ae.Msg)
		return
	}
	log.Printf("%s %s: %v", c.Request.Method, c.Request.URL.Path, err)
	Error(c, http.StatusInternalServerError, CodeServerErr, "Server error")
}

func codeFor(kind apperr.Kind) int {
	switch kind {
	case apperr.Invalid, apperr.Conflict:
		return CodeInvalidParam
	case apperr.Unauthenticated, apperr.Forbidden:
		return CodeAuth
	case apperr.NotFound:
		return CodeNotFound
	default:
		return CodeServerErr
	}
}

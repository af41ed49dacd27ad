package handler

import (
	"github.com/Expenses-tracker-app/backend/internal/util"

	"github.com/gin-gonic/gin"
)

// Healthcheck 健康检查
func Healthcheck(c *gin.Context) {
	util.Success(c, util.Response{"status": "ok"})
}

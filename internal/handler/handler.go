package handler

import (
	"math"
	"strconv"

	"github.com/gin-gonic/gin"
)

// idParam 解析路径里的 :id 参数
func idParam(c *gin.Context) (uint, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		return 0, false
	}
	return uint(id), true
}

// toCent 把请求里的金额转换成分
func toCent(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

func centToAmount(cent int64) float64 {
	return float64(cent) / 100
}

package admin

import (
	handlershared "github.com/actcode-admin/internal/http/handlers/shared"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func requestLog(c *gin.Context) *zap.SugaredLogger {
	return handlershared.RequestLog(c)
}

func respondFail(c *gin.Context, msg string, err error) {
	handlershared.RespondFail(c, msg, err)
}

func normalizePagination(current, size int) (int, int) {
	return handlershared.NormalizePagination(current, size)
}

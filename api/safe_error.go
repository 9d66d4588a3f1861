package api

import (
	"expensetracker/config"
	"expensetracker/middleware"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// SafeErrorMessage 生产环境下不向客户端暴露内部错误详情，避免信息泄露
func SafeErrorMessage(err error, fallback string) string {
	return config.SafeErrorMessage(err, fallback)
}

// serverError 记录完整错误后返回 500
func serverError(c *gin.Context, log *logrus.Logger, err error, fallback string) {
	log.WithError(err).WithFields(logrus.Fields{
		"path":    c.FullPath(),
		"user_id": middleware.GetCurrentUserID(c),
	}).Error(fallback)
	_ = c.Error(err)
	InternalError(c, SafeErrorMessage(err, fallback))
}

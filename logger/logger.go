package logger

import (
	"io"
	"os"
	"strings"

	"expensetracker/config"

	"github.com/sirupsen/logrus"
)

// Log 全局日志实例，Init 之前为 logrus 标准 logger
var Log = logrus.StandardLogger()

// Init 根据配置初始化日志（级别、格式）
func Init(cfg *config.Config) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(os.Stdout)
	l.SetLevel(parseLevel(cfg.Log.Level))
	if strings.EqualFold(cfg.Log.Format, "text") {
		l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	} else {
		l.SetFormatter(&logrus.JSONFormatter{})
	}
	Log = l
	return l
}

// Discard 返回不输出的 logger，测试使用
func Discard() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func parseLevel(s string) logrus.Level {
	level, err := logrus.ParseLevel(s)
	if err != nil {
		return logrus.InfoLevel
	}
	return level
}

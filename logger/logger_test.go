package logger

import (
	"testing"

	"expensetracker/config"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestInit(t *testing.T) {
	old := Log
	defer func() { Log = old }()

	l := Init(&config.Config{Log: config.LogConfig{Level: "debug", Format: "text"}})
	assert.Equal(t, logrus.DebugLevel, l.GetLevel())
	assert.IsType(t, &logrus.TextFormatter{}, l.Formatter)
	assert.Same(t, l, Log)

	// 非法级别回退为 info，默认 JSON 格式
	l = Init(&config.Config{Log: config.LogConfig{Level: "loud"}})
	assert.Equal(t, logrus.InfoLevel, l.GetLevel())
	assert.IsType(t, &logrus.JSONFormatter{}, l.Formatter)
}

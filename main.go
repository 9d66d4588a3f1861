package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"expensetracker/config"
	"expensetracker/database"
	"expensetracker/logger"
	"expensetracker/middleware"
	"expensetracker/router"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// @title Expense Tracker API
// @version 1.0
// @description 个人记账 API：注册登录、消费记录、预算统计、仪表盘与导出
// @host localhost:7777
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

const version = "1.0.0"

var (
	configFile  string
	port        string
	showVersion bool
)

func init() {
	flag.StringVar(&configFile, "config", "", "外部配置文件路径（可选）")
	flag.StringVar(&configFile, "c", "", "外部配置文件路径（简写）")
	flag.StringVar(&port, "port", "", "监听端口，如: 7777 或 :7777")
	flag.StringVar(&port, "p", "", "监听端口（简写）")
	flag.BoolVar(&showVersion, "version", false, "显示版本信息")
	flag.BoolVar(&showVersion, "v", false, "显示版本信息（简写）")
}

func main() {
	flag.Parse()

	if showVersion {
		fmt.Printf("expense-tracker v%s\n", version)
		return
	}

	// .env 不存在时忽略
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		logrus.WithError(err).Warn("load .env failed")
	}

	// 加载配置（内置配置 + 可选的外部配置覆盖 + 环境变量）
	cfg, err := config.LoadConfig(configFile)
	if err != nil {
		logrus.WithError(err).Fatal("load config failed")
	}

	// 命令行参数覆盖端口配置
	if port != "" {
		if !strings.HasPrefix(port, ":") {
			port = ":" + port
		}
		cfg.Server.Port = port
	}

	log := logger.Init(cfg)
	config.PrintConfig()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	store, err := database.Open(ctx, cfg, log)
	cancel()
	if err != nil {
		log.WithError(err).WithField("driver", cfg.Database.Driver).Fatal("open store failed")
	}

	middleware.InitJWT(cfg)
	r := router.SetupRouter(cfg, store, log)

	srv := &http.Server{
		Addr:           cfg.Server.Port,
		Handler:        r,
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   30 * time.Second,
		IdleTimeout:    60 * time.Second,
		MaxHeaderBytes: 1 << 16,
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigChan
		log.WithField("signal", sig.String()).Info("shutdown signal received")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.WithError(err).Error("server shutdown error")
		}
		if err := store.Close(shutdownCtx); err != nil {
			log.WithError(err).Error("close store failed")
		}
	}()

	log.WithFields(logrus.Fields{
		"port":    cfg.Server.Port,
		"driver":  cfg.Database.Driver,
		"swagger": swaggerURL(cfg.Server),
	}).Info("expense tracker started")

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.WithError(err).Fatal("server error")
	}

	<-done
	log.Info("server stopped gracefully")
}

// swaggerURL 文档地址，未配置 base_url 时使用本机端口
func swaggerURL(server config.ServerConfig) string {
	if server.BaseURL == "" {
		return fmt.Sprintf("http://localhost%s/swagger/index.html", server.Port)
	}
	return strings.TrimRight(server.BaseURL, "/") + "/swagger/index.html"
}

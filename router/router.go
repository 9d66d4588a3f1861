package router

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"expensetracker/api"
	"expensetracker/config"
	"expensetracker/database"
	"expensetracker/docs"
	"expensetracker/middleware"
	"expensetracker/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

var defaultOrigins = []string{"http://localhost:5173"}

// configureSwagger 用 base_url 覆盖文档中的 host 与 scheme，非法或为空时保持默认
func configureSwagger(baseURL string) {
	u, err := url.Parse(baseURL)
	if err != nil || u.Host == "" {
		return
	}
	docs.SwaggerInfo.Host = u.Host
	if u.Scheme != "" {
		docs.SwaggerInfo.Schemes = []string{u.Scheme}
	}
}

// SetupRouter 设置路由
func SetupRouter(cfg *config.Config, store database.Store, log *logrus.Logger) *gin.Engine {
	// 设置运行模式
	gin.SetMode(cfg.Server.Mode)
	api.RegisterValidators()

	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger(log))
	r.Use(CORSMiddleware(cfg.CORS.AllowOrigins))

	stats := service.NewStatsService(store, log)
	var alerter *service.BudgetAlerter
	if cfg.Email.Enabled {
		alerter = service.NewBudgetAlerter(stats, service.NewEmailService(&cfg.Email), log)
	}

	authHandler := api.NewAuthHandler(cfg, store, log)
	profileHandler := api.NewProfileHandler(store, log)
	expenseHandler := api.NewExpenseHandler(store, stats, alerter, log)
	dashboardHandler := api.NewDashboardHandler(store, stats, log)
	exportHandler := api.NewExportHandler(stats, log)
	categoryHandler := api.NewCategoryHandler()

	// Swagger 文档
	configureSwagger(cfg.Server.BaseURL)
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// 认证相关路由（无需登录）
	r.POST("/signup", authHandler.Signup)
	r.POST("/login", middleware.LoginRateLimit(cfg.RateLimit.LoginAttempts, cfg.RateLimit.LoginWindow()), authHandler.Login)
	r.POST("/logout", authHandler.Logout)
	r.GET("/categories", categoryHandler.List)

	// 需要 JWT 认证的路由
	user := r.Group("/user")
	user.Use(middleware.JWTAuth())
	{
		user.POST("/addexpense", expenseHandler.Add)
		user.DELETE("/deleteexpense/:id", expenseHandler.Delete)
		user.GET("/expenselist", expenseHandler.List)
		user.GET("/dashboard", dashboardHandler.Dashboard)
		user.GET("/stats", dashboardHandler.Stats)
		user.GET("/categorybreakdown", dashboardHandler.CategoryBreakdown)
		user.GET("/export/csv", exportHandler.ExportCSV)
		user.GET("/export/excel", exportHandler.ExportExcel)
	}

	profile := r.Group("/profile")
	profile.Use(middleware.JWTAuth())
	{
		profile.GET("/view", profileHandler.View)
		profile.PUT("/update", profileHandler.Update)
	}

	// 健康检查
	r.GET("/health", HealthHandler(store))

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{
			"code":    http.StatusNotFound,
			"message": "Route not found",
			"path":    c.Request.URL.Path,
		})
	})

	return r
}

// CORSMiddleware 跨域中间件，只允许配置的来源并允许携带 cookie
func CORSMiddleware(origins []string) gin.HandlerFunc {
	if len(origins) == 0 {
		origins = defaultOrigins
	}
	return cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "Accept"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	})
}

// HealthHandler 健康检查，存储不可用时返回 503
func HealthHandler(store database.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		status, code := "ok", http.StatusOK
		if err := store.Ping(ctx); err != nil {
			status, code = "unavailable", http.StatusServiceUnavailable
		}
		c.JSON(code, gin.H{
			"status":    status,
			"message":   "Server is running!",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	}
}

package api

import (
	"expensetracker/budget"
	"expensetracker/database"
	"expensetracker/middleware"
	"expensetracker/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// DashboardHandler 仪表盘与统计处理器
type DashboardHandler struct {
	store database.Store
	stats *service.StatsService
	log   *logrus.Logger
}

// NewDashboardHandler 创建仪表盘处理器
func NewDashboardHandler(store database.Store, stats *service.StatsService, log *logrus.Logger) *DashboardHandler {
	return &DashboardHandler{store: store, stats: stats, log: log}
}

// Dashboard 仪表盘
// @Summary 仪表盘
// @Description 本月/本周预算统计、类别汇总、最近 5 笔消费；指定 filterType 或 period 时附带区间统计
// @Tags 统计
// @Produce json
// @Security BearerAuth
// @Param filterType query string false "current_month|last_month|current_week|last_week|current_year|last_year|custom"
// @Param period query string false "weekly|monthly"
// @Param customStartDate query string false "YYYY-MM-DD"
// @Param customEndDate query string false "YYYY-MM-DD"
// @Success 200 {object} Response{data=service.Dashboard} "获取成功"
// @Failure 400 {object} Response "请求参数错误"
// @Failure 401 {object} Response "未授权"
// @Router /user/dashboard [get]
func (h *DashboardHandler) Dashboard(c *gin.Context) {
	params, err := parseRangeParams(c, h.stats.Now().Location())
	if err != nil {
		BadRequest(c, err.Error())
		return
	}
	user, ok := currentUser(c, h.store, h.log)
	if !ok {
		return
	}

	d, err := h.stats.Dashboard(c.Request.Context(), user, params.DashboardQuery())
	if err != nil {
		serverError(c, h.log, err, "Failed to load dashboard")
		return
	}
	Success(c, d)
}

// Stats 当前周期预算统计
// @Summary 当前周期预算统计
// @Tags 统计
// @Produce json
// @Security BearerAuth
// @Param period query string false "weekly|monthly，默认 monthly"
// @Success 200 {object} Response{data=budget.Stats} "获取成功"
// @Failure 401 {object} Response "未授权"
// @Router /user/stats [get]
func (h *DashboardHandler) Stats(c *gin.Context) {
	period, _ := budget.ParsePeriod(c.Query("period"))
	user, ok := currentUser(c, h.store, h.log)
	if !ok {
		return
	}

	st, err := h.stats.CurrentStats(c.Request.Context(), user, period)
	if err != nil {
		serverError(c, h.log, err, "Failed to compute stats")
		return
	}
	Success(c, st)
}

// CategoryBreakdown 类别汇总
// @Summary 类别汇总
// @Description 区间内按类别求和，按合计降序，附带占比
// @Tags 统计
// @Produce json
// @Security BearerAuth
// @Param filterType query string false "默认 current_month"
// @Param customStartDate query string false "YYYY-MM-DD"
// @Param customEndDate query string false "YYYY-MM-DD"
// @Success 200 {object} Response{data=service.CategoryBreakdown} "获取成功"
// @Failure 400 {object} Response "请求参数错误"
// @Failure 401 {object} Response "未授权"
// @Router /user/categorybreakdown [get]
func (h *DashboardHandler) CategoryBreakdown(c *gin.Context) {
	params, err := parseRangeParams(c, h.stats.Now().Location())
	if err != nil {
		BadRequest(c, err.Error())
		return
	}

	b, err := h.stats.CategoryBreakdown(c.Request.Context(), middleware.GetCurrentUserID(c), params.Resolve(h.stats.Now()))
	if err != nil {
		serverError(c, h.log, err, "Failed to load category breakdown")
		return
	}
	Success(c, b)
}

package api

import (
	"context"
	"errors"
	"math"
	"strings"
	"time"

	"expensetracker/budget"
	"expensetracker/database"
	"expensetracker/middleware"
	"expensetracker/models"
	"expensetracker/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// allTime 未指定筛选时用于求和的区间
var allTime = budget.DateRange{
	Start: time.Unix(0, 0).UTC(),
	End:   time.Date(9999, time.December, 31, 23, 59, 59, 0, time.UTC),
	Label: "All Time",
}

// ExpenseHandler 消费记录处理器
type ExpenseHandler struct {
	store   database.Store
	stats   *service.StatsService
	alerter *service.BudgetAlerter
	log     *logrus.Logger
}

// NewExpenseHandler 创建消费记录处理器，alerter 可为 nil
func NewExpenseHandler(store database.Store, stats *service.StatsService, alerter *service.BudgetAlerter, log *logrus.Logger) *ExpenseHandler {
	return &ExpenseHandler{store: store, stats: stats, alerter: alerter, log: log}
}

// AddExpenseRequest 新增消费请求
type AddExpenseRequest struct {
	Name     string   `json:"name" example:"Lunch"`
	Category string   `json:"category" example:"Food"`
	Price    *float64 `json:"price" example:"12.5"`
	// Date 支持 RFC3339 或 YYYY-MM-DD，缺省为当前时间
	Date string `json:"date" example:"2026-10-19"`
}

func parseExpenseDate(s string, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	if t, err := time.ParseInLocation(dateLayout, s, loc); err == nil {
		return t, nil
	}
	return time.Time{}, errors.New("date must be RFC3339 or YYYY-MM-DD")
}

// Add 新增消费
// @Summary 新增消费
// @Description 类别缺省为 Other，日期缺省为当前时间；本月首次超出月预算时发送提醒邮件
// @Tags 消费
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body AddExpenseRequest true "消费信息"
// @Success 201 {object} Response{data=models.Expense} "创建成功"
// @Failure 400 {object} Response "请求参数错误"
// @Failure 401 {object} Response "未授权"
// @Router /user/addexpense [post]
func (h *ExpenseHandler) Add(c *gin.Context) {
	var req AddExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request body")
		return
	}
	if strings.TrimSpace(req.Name) == "" || req.Price == nil {
		BadRequest(c, "Name and price are required")
		return
	}

	now := h.stats.Now()
	date, err := parseExpenseDate(req.Date, now.Location())
	if err != nil {
		BadRequest(c, err.Error())
		return
	}

	expense := models.Expense{
		UserID:   middleware.GetCurrentUserID(c),
		Name:     req.Name,
		Category: req.Category,
		Price:    *req.Price,
		Date:     date,
	}
	expense.Normalize(now)
	if err := expense.Validate(); err != nil {
		BadRequest(c, err.Error())
		return
	}

	if err := h.store.CreateExpense(c.Request.Context(), &expense); err != nil {
		serverError(c, h.log, err, "Failed to add expense")
		return
	}

	h.notifyBudget(expense)
	Created(c, "Expense added successfully", expense)
}

// notifyBudget 异步检查是否需要发送超预算提醒
func (h *ExpenseHandler) notifyBudget(e models.Expense) {
	if h.alerter == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		user, err := h.store.GetUserByID(ctx, e.UserID)
		if err != nil {
			h.log.WithError(err).WithField("user_id", e.UserID).Warn("budget alert skipped")
			return
		}
		h.alerter.ExpenseAdded(ctx, user, &e)
	}()
}

// Delete 删除消费
// @Summary 删除消费
// @Description 只能删除自己的记录，不存在或不属于当前用户均返回 404
// @Tags 消费
// @Produce json
// @Security BearerAuth
// @Param id path string true "消费 ID"
// @Success 200 {object} Response{data=models.Expense} "删除成功"
// @Failure 401 {object} Response "未授权"
// @Failure 404 {object} Response "记录不存在"
// @Router /user/deleteexpense/{id} [delete]
func (h *ExpenseHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	if !database.IsValidID(id) {
		NotFound(c, "Expense not found or unauthorized")
		return
	}

	deleted, err := h.store.DeleteExpense(c.Request.Context(), middleware.GetCurrentUserID(c), id)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			NotFound(c, "Expense not found or unauthorized")
			return
		}
		serverError(c, h.log, err, "Failed to delete expense")
		return
	}
	SuccessWithMessage(c, "Expense deleted successfully", deleted)
}

// ExpenseListResponse 消费列表
type ExpenseListResponse struct {
	Expenses   []models.Expense  `json:"expenses"`
	Pagination Pagination        `json:"pagination"`
	DateRange  *budget.DateRange `json:"dateRange,omitempty"`
	TotalSpent float64           `json:"totalSpent"`
}

// List 消费列表
// @Summary 消费列表
// @Description 按日期倒序分页，可按 filterType 或自定义日期筛选；未指定筛选时返回全部
// @Tags 消费
// @Produce json
// @Security BearerAuth
// @Param page query int false "页码，默认 1"
// @Param limit query int false "每页条数，默认 10，最大 100"
// @Param filterType query string false "current_month|last_month|current_week|last_week|current_year|last_year|custom"
// @Param customStartDate query string false "YYYY-MM-DD"
// @Param customEndDate query string false "YYYY-MM-DD"
// @Success 200 {object} Response{data=ExpenseListResponse} "获取成功"
// @Failure 400 {object} Response "请求参数错误"
// @Failure 401 {object} Response "未授权"
// @Router /user/expenselist [get]
func (h *ExpenseHandler) List(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)
	page, limit := parsePage(c)
	params, err := parseRangeParams(c, h.stats.Now().Location())
	if err != nil {
		BadRequest(c, err.Error())
		return
	}

	q := database.ExpenseQuery{UserID: userID, Skip: (page - 1) * limit, Limit: limit}
	sumRange := allTime
	resp := ExpenseListResponse{}
	if params.Filter != nil {
		r := params.Resolve(h.stats.Now())
		q.Start, q.End = &r.Start, &r.End
		sumRange = r
		resp.DateRange = &r
	}

	var total int64
	var sum database.RangeTotal
	g, ctx := errgroup.WithContext(c.Request.Context())
	g.Go(func() error {
		var err error
		resp.Expenses, err = h.store.ListExpenses(ctx, q)
		return err
	})
	g.Go(func() error {
		var err error
		total, err = h.store.CountExpenses(ctx, q)
		return err
	})
	g.Go(func() error {
		var err error
		sum, err = h.store.SumRange(ctx, userID, sumRange.Start, sumRange.End)
		return err
	})
	if err := g.Wait(); err != nil {
		serverError(c, h.log, err, "Failed to list expenses")
		return
	}

	if resp.Expenses == nil {
		resp.Expenses = []models.Expense{}
	}
	resp.TotalSpent = sum.Total
	resp.Pagination = Pagination{
		Page:          page,
		Limit:         limit,
		TotalPages:    int(math.Ceil(float64(total) / float64(limit))),
		TotalExpenses: total,
	}
	Success(c, resp)
}

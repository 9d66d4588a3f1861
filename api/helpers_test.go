package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"expensetracker/config"
	"expensetracker/database"
	"expensetracker/logger"
	"expensetracker/middleware"
	"expensetracker/models"
	"expensetracker/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

// 2026-10-21 周三
var testNow = time.Date(2026, time.October, 21, 15, 0, 0, 0, time.UTC)

type testEnv struct {
	cfg   *config.Config
	store *database.MemoryStore
	stats *service.StatsService
	user  *models.User
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)
	RegisterValidators()

	cfg := &config.Config{
		Server: config.ServerConfig{Mode: "debug"},
		JWT:    config.JWTConfig{Secret: "test-secret", CookieName: "token", ExpireTime: time.Hour},
		Budget: config.BudgetConfig{DefaultMonthly: 6000},
	}
	middleware.InitJWT(cfg)

	store := database.NewMemoryStore()
	user := &models.User{FirstName: "Alice", LastName: "Smith", Email: "alice@x.com", MonthlyExpense: 6000}
	require.NoError(t, store.CreateUser(context.Background(), user))

	stats := service.NewStatsService(store, logger.Discard()).WithClock(func() time.Time { return testNow })
	return &testEnv{cfg: cfg, store: store, stats: stats, user: user}
}

func (e *testEnv) addExpense(t *testing.T, userID, name, category string, price float64, date time.Time) models.Expense {
	t.Helper()
	exp := models.Expense{UserID: userID, Name: name, Category: category, Price: price, Date: date}
	require.NoError(t, e.store.CreateExpense(context.Background(), &exp))
	return exp
}

func setUserIDMiddleware(userID string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("userID", userID)
		c.Next()
	}
}

func doRequest(router http.Handler, method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

type testResponse struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func decodeResponse(t *testing.T, w *httptest.ResponseRecorder, data interface{}) testResponse {
	t.Helper()
	var resp testResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	if data != nil {
		require.NoError(t, json.Unmarshal(resp.Data, data))
	}
	return resp
}

func day(m time.Month, d int) time.Time {
	return time.Date(2026, m, d, 12, 0, 0, 0, time.UTC)
}

func queryAll(userID string) database.ExpenseQuery {
	return database.ExpenseQuery{UserID: userID}
}

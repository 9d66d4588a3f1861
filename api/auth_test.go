package api

import (
	"net/http"
	"strings"
	"testing"

	"expensetracker/logger"
	"expensetracker/middleware"
	"expensetracker/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func authRouter(env *testEnv) *gin.Engine {
	h := NewAuthHandler(env.cfg, env.store, logger.Discard())
	r := gin.New()
	r.POST("/signup", h.Signup)
	r.POST("/login", h.Login)
	r.POST("/logout", h.Logout)
	return r
}

func TestAuthHandler_Signup(t *testing.T) {
	env := newTestEnv(t)
	router := authRouter(env)

	w := doRequest(router, "POST", "/signup", `{"firstName":"Bobby","emailId":"Bob@Example.COM","password":"Passw0rd!"}`)
	require.Equal(t, 200, w.Code, w.Body.String())

	var user models.User
	resp := decodeResponse(t, w, &user)
	assert.Equal(t, "User registered successfully", resp.Message)
	assert.NotEmpty(t, user.ID)
	assert.Equal(t, "bob@example.com", user.Email)
	assert.Equal(t, 6000.0, user.MonthlyExpense)
	assert.Equal(t, 1386.0, user.WeeklyExpense)
	assert.Equal(t, 200.0, user.DailyExpense)
	assert.Equal(t, models.DefaultAge, user.Age)
	assert.Equal(t, models.GenderMale, user.Gender)
	assert.NotContains(t, w.Body.String(), "Passw0rd!")
	assert.NotContains(t, w.Body.String(), "password")

	// 同一邮箱再次注册
	w = doRequest(router, "POST", "/signup", `{"firstName":"Bobby","emailId":"bob@example.com","password":"Passw0rd!"}`)
	assert.Equal(t, 400, w.Code)
	assert.Equal(t, "Email is already registered", decodeResponse(t, w, nil).Message)
}

func TestAuthHandler_Signup_ExplicitBudget(t *testing.T) {
	env := newTestEnv(t)
	w := doRequest(authRouter(env), "POST", "/signup",
		`{"firstName":"Carol","emailId":"carol@x.com","password":"Passw0rd!","monthlyExpense":4330,"gender":"female","age":30}`)
	require.Equal(t, 200, w.Code)

	var user models.User
	decodeResponse(t, w, &user)
	assert.Equal(t, 4330.0, user.MonthlyExpense)
	assert.Equal(t, 1000.0, user.WeeklyExpense)
	assert.Equal(t, 144.0, user.DailyExpense)
	assert.Equal(t, "female", user.Gender)
	assert.Equal(t, 30, user.Age)
}

func TestAuthHandler_Signup_Validation(t *testing.T) {
	env := newTestEnv(t)
	router := authRouter(env)

	tests := []struct {
		body    string
		message string
	}{
		{`{"emailId":"a@x.com","password":"Passw0rd!"}`, "firstName is required"},
		{`{"firstName":"Al","emailId":"a@x.com","password":"Passw0rd!"}`, "firstName must be at least 3 characters"},
		{`{"firstName":"Alan","emailId":"nope","password":"Passw0rd!"}`, "Email is not valid"},
		{`{"firstName":"Alan","emailId":"a@x.com","password":"password"}`, "Please enter a strong password"},
		{`{"firstName":"Alan","emailId":"a@x.com","password":"Passw0rd!","profilePicture":"https://x.com/me.exe"}`, "Profile picture must be a valid image URL"},
		{`{"firstName":"Alan","emailId":"a@x.com","password":"Passw0rd!","age":101}`, "age must be at most 100"},
		{`{"firstName":"Alan","emailId":"a@x.com","password":"Aa1!` + strings.Repeat("x", 80) + `"}`, "Password must not exceed 72 bytes"},
		{`{"firstName":"Alan","emailId":"a@x.com","password":"Aa1!` + strings.Repeat("é", 40) + `"}`, "Password must not exceed 72 bytes"},
	}
	for _, tt := range tests {
		w := doRequest(router, "POST", "/signup", tt.body)
		assert.Equal(t, 400, w.Code, tt.body)
		assert.Equal(t, tt.message, decodeResponse(t, w, nil).Message, tt.body)
	}
}

func TestAuthHandler_Login(t *testing.T) {
	env := newTestEnv(t)
	router := authRouter(env)
	require.Equal(t, 200, doRequest(router, "POST", "/signup", `{"firstName":"Bobby","emailId":"bob@x.com","password":"Passw0rd!"}`).Code)

	w := doRequest(router, "POST", "/login", `{"emailId":"BOB@x.com","password":"Passw0rd!"}`)
	require.Equal(t, 200, w.Code, w.Body.String())

	var out LoginResponse
	resp := decodeResponse(t, w, &out)
	assert.Equal(t, "Login successful", resp.Message)
	assert.Equal(t, "bob@x.com", out.User.Email)

	claims, err := middleware.ParseToken(out.Token)
	require.NoError(t, err)
	assert.Equal(t, out.User.ID, claims.UserID)

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "token", cookies[0].Name)
	assert.Equal(t, out.Token, cookies[0].Value)
	assert.True(t, cookies[0].HttpOnly)
}

func TestAuthHandler_Login_Failures(t *testing.T) {
	env := newTestEnv(t)
	router := authRouter(env)
	require.Equal(t, 200, doRequest(router, "POST", "/signup", `{"firstName":"Bobby","emailId":"bob@x.com","password":"Passw0rd!"}`).Code)

	w := doRequest(router, "POST", "/login", `{"emailId":"bob@x.com","password":"Wrong0rd!"}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Invalid credentials", decodeResponse(t, w, nil).Message)

	w = doRequest(router, "POST", "/login", `{"emailId":"ghost@x.com","password":"Passw0rd!"}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doRequest(router, "POST", "/login", `{"emailId":"bob@x.com"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAuthHandler_Logout(t *testing.T) {
	env := newTestEnv(t)
	w := doRequest(authRouter(env), "POST", "/logout", "")
	assert.Equal(t, 200, w.Code)
	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "", cookies[0].Value)
	assert.Less(t, cookies[0].MaxAge, 0)
}

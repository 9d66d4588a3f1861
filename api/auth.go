package api

import (
	"errors"
	"strings"

	"expensetracker/config"
	"expensetracker/database"
	"expensetracker/middleware"
	"expensetracker/models"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

const (
	maxPasswordBytes   = 72
	errPasswordTooLong = "Password must not exceed 72 bytes"
)

// AuthHandler 认证处理器
type AuthHandler struct {
	cfg   *config.Config
	store database.Store
	log   *logrus.Logger
}

// NewAuthHandler 创建认证处理器
func NewAuthHandler(cfg *config.Config, store database.Store, log *logrus.Logger) *AuthHandler {
	return &AuthHandler{cfg: cfg, store: store, log: log}
}

// SignupRequest 注册请求
type SignupRequest struct {
	FirstName      string   `json:"firstName" binding:"required,min=3,max=40" example:"Alice"`
	LastName       string   `json:"lastName" binding:"omitempty,min=3,max=40" example:"Smith"`
	Email          string   `json:"emailId" binding:"required,email" example:"alice@example.com"`
	Password       string   `json:"password" binding:"required,strongpassword" example:"Passw0rd!"`
	Age            int      `json:"age" binding:"omitempty,gte=18,lte=100" example:"25"`
	Gender         string   `json:"gender" binding:"omitempty,oneof=male female" example:"female"`
	ProfilePicture string   `json:"profilePicture" binding:"omitempty,imageurl"`
	MonthlyExpense *float64 `json:"monthlyExpense" binding:"omitempty,gte=0" example:"6000"`
}

// LoginRequest 登录请求
type LoginRequest struct {
	Email    string `json:"emailId" binding:"required,email" example:"alice@example.com"`
	Password string `json:"password" binding:"required" example:"Passw0rd!"`
}

// LoginResponse 登录响应
type LoginResponse struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}

// Signup 用户注册
// @Summary 用户注册
// @Description 校验资料、加密密码并创建用户，周/日预算由月预算派生
// @Tags 认证
// @Accept json
// @Produce json
// @Param request body SignupRequest true "注册信息"
// @Success 200 {object} Response{data=models.User} "注册成功"
// @Failure 400 {object} Response "请求参数错误或邮箱已注册"
// @Failure 500 {object} Response "服务器错误"
// @Router /signup [post]
func (h *AuthHandler) Signup(c *gin.Context) {
	var req SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, validationMessage(err))
		return
	}

	// bcrypt 只接受 72 字节以内的密码
	if len(req.Password) > maxPasswordBytes {
		BadRequest(c, errPasswordTooLong)
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		BadRequest(c, errPasswordTooLong)
		return
	}
	if err != nil {
		serverError(c, h.log, err, "Failed to hash password")
		return
	}

	user := models.User{
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		Email:          req.Email,
		Password:       string(hashedPassword),
		Age:            req.Age,
		Gender:         req.Gender,
		ProfilePicture: req.ProfilePicture,
	}
	user.ApplyDefaults(h.cfg.Budget.DefaultMonthly)
	if req.MonthlyExpense != nil {
		user.MonthlyExpense = *req.MonthlyExpense
		user.RecomputeBudgets()
	}

	if err := h.store.CreateUser(c.Request.Context(), &user); err != nil {
		if errors.Is(err, database.ErrDuplicateEmail) {
			BadRequest(c, "Email is already registered")
			return
		}
		serverError(c, h.log, err, "Failed to create user")
		return
	}

	h.log.WithField("user_id", user.ID).Info("user registered")
	SuccessWithMessage(c, "User registered successfully", user)
}

// Login 用户登录
// @Summary 用户登录
// @Description 校验邮箱与密码，签发 JWT 并写入 HttpOnly cookie
// @Tags 认证
// @Accept json
// @Produce json
// @Param request body LoginRequest true "登录信息"
// @Success 200 {object} Response{data=LoginResponse} "登录成功"
// @Failure 400 {object} Response "请求参数错误"
// @Failure 401 {object} Response "邮箱或密码错误"
// @Failure 429 {object} Response "登录过于频繁"
// @Router /login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, validationMessage(err))
		return
	}

	user, err := h.store.GetUserByEmail(c.Request.Context(), normalizeEmail(req.Email))
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			Unauthorized(c, "Invalid credentials")
			return
		}
		serverError(c, h.log, err, "Login failed")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		Unauthorized(c, "Invalid credentials")
		return
	}

	token, err := middleware.GenerateToken(user.ID, user.Email, h.cfg.JWT.ExpireTime)
	if err != nil {
		serverError(c, h.log, err, "Failed to generate token")
		return
	}
	setAuthCookie(c, token, h.cfg.JWT.ExpireTime)

	SuccessWithMessage(c, "Login successful", LoginResponse{Token: token, User: *user})
}

// Logout 退出登录
// @Summary 退出登录
// @Description 清除认证 cookie
// @Tags 认证
// @Produce json
// @Success 200 {object} Response "退出成功"
// @Router /logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	clearAuthCookie(c)
	SuccessWithMessage(c, "Logout successful", nil)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

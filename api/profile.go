package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"expensetracker/database"
	"expensetracker/middleware"
	"expensetracker/models"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/sirupsen/logrus"
)

// 允许通过资料接口修改的字段
var allowedProfileFields = map[string]struct{}{
	"firstName":      {},
	"lastName":       {},
	"age":            {},
	"gender":         {},
	"profilePicture": {},
	"monthlyExpense": {},
}

// ProfileHandler 用户资料处理器
type ProfileHandler struct {
	store database.Store
	log   *logrus.Logger
}

// NewProfileHandler 创建资料处理器
func NewProfileHandler(store database.Store, log *logrus.Logger) *ProfileHandler {
	return &ProfileHandler{store: store, log: log}
}

// UpdateProfileRequest 资料修改请求，未出现的字段保持不变
type UpdateProfileRequest struct {
	FirstName      *string  `json:"firstName" binding:"omitempty,min=3,max=40"`
	LastName       *string  `json:"lastName" binding:"omitempty,min=3,max=40"`
	Age            *int     `json:"age" binding:"omitempty,gte=18,lte=100"`
	Gender         *string  `json:"gender" binding:"omitempty,oneof=male female"`
	ProfilePicture *string  `json:"profilePicture" binding:"omitempty,imageurl"`
	MonthlyExpense *float64 `json:"monthlyExpense" binding:"omitempty,gte=0"`
}

// Apply 写入用户，月预算变化后由存储层重算周/日预算
func (r *UpdateProfileRequest) Apply(u *models.User) {
	if r.FirstName != nil {
		u.FirstName = strings.TrimSpace(*r.FirstName)
	}
	if r.LastName != nil {
		u.LastName = strings.TrimSpace(*r.LastName)
	}
	if r.Age != nil {
		u.Age = *r.Age
	}
	if r.Gender != nil {
		u.Gender = *r.Gender
	}
	if r.ProfilePicture != nil {
		u.ProfilePicture = *r.ProfilePicture
	}
	if r.MonthlyExpense != nil {
		u.MonthlyExpense = *r.MonthlyExpense
	}
}

// invalidProfileFields 返回不允许修改的字段，按名称排序
func invalidProfileFields(payload map[string]json.RawMessage) []string {
	var invalid []string
	for k := range payload {
		if _, ok := allowedProfileFields[k]; !ok {
			invalid = append(invalid, k)
		}
	}
	sort.Strings(invalid)
	return invalid
}

// currentUser 加载当前登录用户，失败时已写入响应
func currentUser(c *gin.Context, store database.Store, log *logrus.Logger) (*models.User, bool) {
	user, err := store.GetUserByID(c.Request.Context(), middleware.GetCurrentUserID(c))
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			NotFound(c, "User not found")
			return nil, false
		}
		serverError(c, log, err, "Failed to load user")
		return nil, false
	}
	return user, true
}

// View 查看资料
// @Summary 查看个人资料
// @Tags 资料
// @Produce json
// @Security BearerAuth
// @Success 200 {object} Response{data=models.User} "获取成功"
// @Failure 401 {object} Response "未授权"
// @Failure 404 {object} Response "用户不存在"
// @Router /profile/view [get]
func (h *ProfileHandler) View(c *gin.Context) {
	user, ok := currentUser(c, h.store, h.log)
	if !ok {
		return
	}
	SuccessWithMessage(c, "Profile fetched successfully", user)
}

// Update 修改资料
// @Summary 修改个人资料
// @Description 仅允许 firstName、lastName、age、gender、profilePicture、monthlyExpense，出现其它字段时整体拒绝
// @Tags 资料
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body UpdateProfileRequest true "资料"
// @Success 200 {object} Response{data=models.User} "修改成功"
// @Failure 400 {object} Response "字段不允许修改或校验失败"
// @Failure 401 {object} Response "未授权"
// @Router /profile/update [put]
func (h *ProfileHandler) Update(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		BadRequest(c, "Invalid request body")
		return
	}
	var payload map[string]json.RawMessage
	if err := json.Unmarshal(body, &payload); err != nil {
		BadRequest(c, "Invalid request body")
		return
	}
	if invalid := invalidProfileFields(payload); len(invalid) > 0 {
		BadRequest(c, fmt.Sprintf("Invalid fields: %s", strings.Join(invalid, ", ")))
		return
	}

	var req UpdateProfileRequest
	if err := json.Unmarshal(body, &req); err != nil {
		BadRequest(c, "Invalid request body")
		return
	}
	if err := binding.Validator.ValidateStruct(&req); err != nil {
		BadRequest(c, validationMessage(err))
		return
	}

	user, ok := currentUser(c, h.store, h.log)
	if !ok {
		return
	}
	req.Apply(user)
	if err := h.store.SaveUser(c.Request.Context(), user); err != nil {
		serverError(c, h.log, err, "Failed to update profile")
		return
	}

	SuccessWithMessage(c, "Profile updated successfully", user)
}

package api

import (
	"expensetracker/models"

	"github.com/gin-gonic/gin"
)

// CategoryHandler 消费类别
type CategoryHandler struct{}

func NewCategoryHandler() *CategoryHandler {
	return &CategoryHandler{}
}

// List 列出所有可用类别
// @Summary 获取消费类别列表
// @Tags 消费
// @Produce json
// @Success 200 {object} Response{data=[]string} "获取成功"
// @Router /categories [get]
func (h *CategoryHandler) List(c *gin.Context) {
	Success(c, models.GetCategories())
}

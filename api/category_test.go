package api

import (
	"testing"

	"expensetracker/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategoryHandler_List(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/categories", NewCategoryHandler().List)

	w := doRequest(r, "GET", "/categories", "")
	require.Equal(t, 200, w.Code)
	var list []string
	decodeResponse(t, w, &list)
	assert.Equal(t, models.GetCategories(), list)
	assert.Contains(t, list, "Personal Care")
}

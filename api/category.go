package api

import (
	"net/http"

	"spendbook/models"

	"github.com/gin-gonic/gin"
)

// Categories lists the fixed expense categories
// @Summary List categories
// @Tags categories
// @Produce json
// @Success 200 {array} string "Categories"
// @Router /api/categories [get]
func Categories(c *gin.Context) {
	c.JSON(http.StatusOK, models.GetCategories())
}

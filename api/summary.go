package api

import (
	"net/http"

	"spendbook/config"
	"spendbook/models"
	"spendbook/report"

	"github.com/gin-gonic/gin"
)

// SummaryResponse totals of the filtered expenses
type SummaryResponse struct {
	report.Summary
	Chart []report.Slice `json:"chart"`
}

// filtered lists the expenses matching the query filter. It answers the request itself on failure.
func (h *ExpenseHandler) filtered(c *gin.Context) (report.Filter, []models.Expense, bool) {
	var filter report.Filter
	if err := c.ShouldBindQuery(&filter); err != nil {
		BadRequest(c, config.SafeErrorMessage(err, MsgInvalidBody))
		return filter, nil, false
	}
	if err := filter.Validate(); err != nil {
		BadRequest(c, err.Error())
		return filter, nil, false
	}

	expenses, err := h.store.List(c.Request.Context())
	if err != nil {
		storeError(c, err)
		return filter, nil, false
	}
	return filter, filter.Apply(expenses), true
}

// Summary totals expenses overall and per category
// @Summary Expense totals
// @Description Sums the expenses matching the filter, per fixed category and overall
// @Tags statistics
// @Produce json
// @Param category query string false "Category, all for every category"
// @Param month query string false "Month (YYYY-MM)"
// @Success 200 {object} SummaryResponse "Totals"
// @Failure 400 {object} Response "Invalid filter"
// @Router /api/expenses/summary [get]
func (h *ExpenseHandler) Summary(c *gin.Context) {
	_, expenses, ok := h.filtered(c)
	if !ok {
		return
	}

	summary := report.Summarize(expenses)
	c.JSON(http.StatusOK, SummaryResponse{
		Summary: summary,
		Chart:   report.Chart(summary.CategoryTotals),
	})
}

package api

import (
	"bytes"
	"fmt"
	"mime"
	"net/http"

	"spendbook/report"

	"github.com/gin-gonic/gin"
)

// Export downloads the filtered expenses as a spreadsheet
// @Summary Export expenses
// @Description Exports the expenses matching the filter as xlsx or csv
// @Tags export
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet,text/csv
// @Param format query string false "xlsx or csv" default(xlsx)
// @Param category query string false "Category, all for every category"
// @Param month query string false "Month (YYYY-MM)"
// @Success 200 {file} file "Export file"
// @Failure 400 {object} Response "Invalid format or filter"
// @Router /api/expenses/export [get]
func (h *ExpenseHandler) Export(c *gin.Context) {
	format := c.DefaultQuery("format", report.FormatXLSX)
	contentType, err := report.ContentType(format)
	if err != nil {
		BadRequest(c, err.Error())
		return
	}

	filter, expenses, ok := h.filtered(c)
	if !ok {
		return
	}

	buf := new(bytes.Buffer)
	if err := report.Write(buf, format, expenses); err != nil {
		_ = c.Error(fmt.Errorf("writing %s export: %w", format, err))
		return
	}

	c.Header("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{
		"filename": report.Filename(filter, format),
	}))
	c.Data(http.StatusOK, contentType, buf.Bytes())
}

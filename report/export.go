package report

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"time"

	"spendbook/models"

	"github.com/xuri/excelize/v2"
)

// Export formats
const (
	FormatXLSX = "xlsx"
	FormatCSV  = "csv"
)

// ErrUnknownFormat is returned for an export format other than xlsx or csv.
var ErrUnknownFormat = errors.New("format must be xlsx or csv")

const sheetName = "Expenses"

var exportHeaders = []string{"ID", "Title", "Amount", "Category", "Date", "Created"}

// ContentType returns the MIME type of an export format.
func ContentType(format string) (string, error) {
	switch format {
	case FormatXLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", nil
	case FormatCSV:
		return "text/csv; charset=utf-8", nil
	}
	return "", ErrUnknownFormat
}

// Write renders expenses in the given format.
func Write(w io.Writer, format string, expenses []models.Expense) error {
	switch format {
	case FormatXLSX:
		return WriteXLSX(w, expenses)
	case FormatCSV:
		return WriteCSV(w, expenses)
	}
	return ErrUnknownFormat
}

// WriteCSV writes expenses as CSV. A UTF-8 BOM lets spreadsheet tools detect the encoding.
func WriteCSV(w io.Writer, expenses []models.Expense) error {
	bw := bufio.NewWriter(w)
	if _, err := bw.WriteString("\xEF\xBB\xBF"); err != nil {
		return err
	}

	writer := csv.NewWriter(bw)
	if err := writer.Write(exportHeaders); err != nil {
		return err
	}
	for _, e := range expenses {
		row := []string{
			e.ID,
			e.Title,
			FormatAmount(e.Amount),
			e.Category,
			e.Date.UTC().Format(time.DateOnly),
			e.CreatedAt.UTC().Format(time.DateTime),
		}
		if err := writer.Write(row); err != nil {
			return err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return err
	}
	return bw.Flush()
}

// WriteXLSX writes expenses as a styled workbook with a totals row.
func WriteXLSX(w io.Writer, expenses []models.Expense) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return err
	}

	border := []excelize.Border{
		{Type: "left", Color: "000000", Style: 1},
		{Type: "top", Color: "000000", Style: 1},
		{Type: "bottom", Color: "000000", Style: 1},
		{Type: "right", Color: "000000", Style: 1},
	}
	center := &excelize.Alignment{Horizontal: "center", Vertical: "center"}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 12, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"4F81BD"}, Pattern: 1},
		Alignment: center,
		Border:    border,
	})
	if err != nil {
		return err
	}
	dataStyle, err := f.NewStyle(&excelize.Style{Alignment: center, Border: border})
	if err != nil {
		return err
	}
	summaryStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"FFC000"}, Pattern: 1},
		Alignment: center,
		Border:    border,
	})
	if err != nil {
		return err
	}

	widths := map[string]float64{"A": 38, "B": 30, "C": 12, "D": 16, "E": 14, "F": 20}
	for col, width := range widths {
		if err := f.SetColWidth(sheetName, col, col, width); err != nil {
			return err
		}
	}

	for i, header := range exportHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheetName, cell, header)
	}
	f.SetCellStyle(sheetName, "A1", "F1", headerStyle)

	for i, e := range expenses {
		row := i + 2
		values := []any{
			e.ID,
			e.Title,
			e.Amount,
			e.Category,
			e.Date.UTC().Format(time.DateOnly),
			e.CreatedAt.UTC().Format(time.DateTime),
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			f.SetCellValue(sheetName, cell, v)
		}
		f.SetCellStyle(sheetName, fmt.Sprintf("A%d", row), fmt.Sprintf("F%d", row), dataStyle)
	}

	summary := Summarize(expenses)
	summaryRow := len(expenses) + 2
	f.SetCellValue(sheetName, fmt.Sprintf("A%d", summaryRow), "Total")
	f.SetCellValue(sheetName, fmt.Sprintf("B%d", summaryRow), fmt.Sprintf("%d expenses", summary.Count))
	f.SetCellValue(sheetName, fmt.Sprintf("C%d", summaryRow), summary.Total)
	f.SetCellStyle(sheetName, fmt.Sprintf("A%d", summaryRow), fmt.Sprintf("F%d", summaryRow), summaryStyle)

	return f.Write(w)
}

// Filename builds the attachment name for an export.
func Filename(filter Filter, format string) string {
	name := "expenses"
	if filter.Category != "" && filter.Category != models.CategoryAll {
		name += "_" + filter.Category
	}
	if filter.Month != "" {
		name += "_" + filter.Month
	}
	return name + "." + format
}

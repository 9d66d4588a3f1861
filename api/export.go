package api

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"net/http"

	"expensetracker/budget"
	"expensetracker/middleware"
	"expensetracker/models"
	"expensetracker/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"
)

const timeLayout = "2006-01-02 15:04:05"

// ExportHandler 导出处理器
type ExportHandler struct {
	stats *service.StatsService
	log   *logrus.Logger
}

// NewExportHandler 创建导出处理器
func NewExportHandler(stats *service.StatsService, log *logrus.Logger) *ExportHandler {
	return &ExportHandler{stats: stats, log: log}
}

// load 解析筛选参数并查询区间内全部消费，失败时已写入响应
func (h *ExportHandler) load(c *gin.Context) (budget.DateRange, *service.ExpenseSummary, bool) {
	params, err := parseRangeParams(c, h.stats.Now().Location())
	if err != nil {
		BadRequest(c, err.Error())
		return budget.DateRange{}, nil, false
	}
	r := params.Resolve(h.stats.Now())
	sum, err := h.stats.SumAndCount(c.Request.Context(), middleware.GetCurrentUserID(c), r)
	if err != nil {
		serverError(c, h.log, err, "Failed to load expenses")
		return r, nil, false
	}
	return r, sum, true
}

func exportFilename(r budget.DateRange, ext string) string {
	return fmt.Sprintf("expenses_%s_%s.%s", r.Start.Format(dateLayout), r.End.Format(dateLayout), ext)
}

var exportHeaders = []string{"ID", "Name", "Category", "Price", "Date", "Created At"}

// ExportCSV 导出消费记录为 CSV
// @Summary 导出 CSV
// @Description 按筛选区间导出消费记录，默认本月
// @Tags 导出
// @Produce text/csv
// @Security BearerAuth
// @Param filterType query string false "默认 current_month"
// @Param customStartDate query string false "YYYY-MM-DD"
// @Param customEndDate query string false "YYYY-MM-DD"
// @Success 200 {file} file "CSV 文件"
// @Failure 400 {object} Response "请求参数错误"
// @Failure 401 {object} Response "未授权"
// @Router /user/export/csv [get]
func (h *ExportHandler) ExportCSV(c *gin.Context) {
	r, sum, ok := h.load(c)
	if !ok {
		return
	}

	buf := new(bytes.Buffer)
	// 添加 BOM 以便 Excel 正确识别 UTF-8
	buf.WriteString("\xEF\xBB\xBF")
	writer := csv.NewWriter(buf)

	if err := writer.Write(exportHeaders); err != nil {
		serverError(c, h.log, err, "Failed to generate CSV")
		return
	}
	for _, e := range sum.Expenses {
		if err := writer.Write(expenseRow(e)); err != nil {
			serverError(c, h.log, err, "Failed to generate CSV")
			return
		}
	}
	if err := writer.Write([]string{"", "Total", "", fmt.Sprintf("%.2f", sum.TotalSpent), "", ""}); err != nil {
		serverError(c, h.log, err, "Failed to generate CSV")
		return
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		serverError(c, h.log, err, "Failed to generate CSV")
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", exportFilename(r, "csv")))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}

func expenseRow(e models.Expense) []string {
	return []string{
		e.ID,
		e.Name,
		e.Category,
		fmt.Sprintf("%.2f", e.Price),
		e.Date.Format(timeLayout),
		e.CreatedAt.Format(timeLayout),
	}
}

// ExportExcel 导出消费记录为 Excel
// @Summary 导出 Excel
// @Description 按筛选区间导出消费记录，默认本月，末行为合计
// @Tags 导出
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security BearerAuth
// @Param filterType query string false "默认 current_month"
// @Param customStartDate query string false "YYYY-MM-DD"
// @Param customEndDate query string false "YYYY-MM-DD"
// @Success 200 {file} file "Excel 文件"
// @Failure 400 {object} Response "请求参数错误"
// @Failure 401 {object} Response "未授权"
// @Router /user/export/excel [get]
func (h *ExportHandler) ExportExcel(c *gin.Context) {
	r, sum, ok := h.load(c)
	if !ok {
		return
	}

	buf, err := buildExpenseWorkbook(r, sum)
	if err != nil {
		serverError(c, h.log, err, "Failed to generate Excel")
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", exportFilename(r, "xlsx")))
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}

func buildExpenseWorkbook(r budget.DateRange, sum *service.ExpenseSummary) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Expenses"
	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return nil, err
	}

	border := []excelize.Border{
		{Type: "left", Color: "000000", Style: 1},
		{Type: "top", Color: "000000", Style: 1},
		{Type: "bottom", Color: "000000", Style: 1},
		{Type: "right", Color: "000000", Style: 1},
	}
	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 12, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"4F81BD"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border:    border,
	})
	dataStyle, _ := f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border:    border,
	})
	summaryStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"FFC000"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border:    border,
	})

	f.SetColWidth(sheetName, "A", "A", 38)
	f.SetColWidth(sheetName, "B", "B", 30)
	f.SetColWidth(sheetName, "C", "C", 18)
	f.SetColWidth(sheetName, "D", "D", 12)
	f.SetColWidth(sheetName, "E", "F", 20)

	// 第一行为区间标题
	f.SetCellValue(sheetName, "A1", r.Label)
	f.MergeCell(sheetName, "A1", "F1")

	for i, header := range exportHeaders {
		cell := fmt.Sprintf("%c2", 'A'+i)
		f.SetCellValue(sheetName, cell, header)
		f.SetCellStyle(sheetName, cell, cell, headerStyle)
	}

	for i, e := range sum.Expenses {
		row := i + 3
		f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), e.ID)
		f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), e.Name)
		f.SetCellValue(sheetName, fmt.Sprintf("C%d", row), e.Category)
		f.SetCellValue(sheetName, fmt.Sprintf("D%d", row), e.Price)
		f.SetCellValue(sheetName, fmt.Sprintf("E%d", row), e.Date.Format(timeLayout))
		f.SetCellValue(sheetName, fmt.Sprintf("F%d", row), e.CreatedAt.Format(timeLayout))
		f.SetCellStyle(sheetName, fmt.Sprintf("A%d", row), fmt.Sprintf("F%d", row), dataStyle)
	}

	summaryRow := len(sum.Expenses) + 3
	f.SetCellValue(sheetName, fmt.Sprintf("A%d", summaryRow), "Total")
	f.MergeCell(sheetName, fmt.Sprintf("A%d", summaryRow), fmt.Sprintf("C%d", summaryRow))
	f.SetCellValue(sheetName, fmt.Sprintf("D%d", summaryRow), sum.TotalSpent)
	f.SetCellValue(sheetName, fmt.Sprintf("E%d", summaryRow), fmt.Sprintf("%d expenses", sum.Count))
	f.SetCellStyle(sheetName, fmt.Sprintf("A%d", summaryRow), fmt.Sprintf("F%d", summaryRow), summaryStyle)

	return f.WriteToBuffer()
}

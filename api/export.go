package api

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"

	"fintrack/database"
	"fintrack/middleware"
	"fintrack/models"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
)

// ExportHandler 导出处理器
type ExportHandler struct{}

// NewExportHandler 创建导出处理器
func NewExportHandler() *ExportHandler {
	return &ExportHandler{}
}

var exportHeaders = []string{"ID", "日期", "时间", "商户", "类型", "类别", "金额", "描述"}

// loadExportRange 读取必填的 startDate/endDate 并查询区间内的交易
func loadExportRange(c *gin.Context) ([]models.Transaction, string, bool) {
	if c.Query("startDate") == "" || c.Query("endDate") == "" {
		BadRequest(c, "请提供开始日期和结束日期")
		return nil, "", false
	}
	start, end, ok := parseDateRange(c)
	if !ok {
		return nil, "", false
	}
	if end.Before(start) {
		BadRequest(c, "结束日期不能早于开始日期")
		return nil, "", false
	}

	var transactions []models.Transaction
	if err := database.DB.Where("user_id = ? AND date >= ? AND date <= ?", middleware.GetCurrentUserID(c), start, end).
		Order("date DESC").
		Find(&transactions).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "查询数据失败"))
		return nil, "", false
	}

	suffix := fmt.Sprintf("%s_%s", start.Format(dateLayout), end.Format(dateLayout))
	return transactions, suffix, true
}

func exportRow(t models.Transaction) []string {
	return []string{
		strconv.FormatUint(uint64(t.ID), 10),
		t.Date.Format(dateLayout),
		t.Time,
		t.Merchant,
		t.Type,
		t.Category,
		fmt.Sprintf("%.2f", t.SignedAmount()),
		t.Description,
	}
}

// ExportCSV 导出交易为 CSV
// @Summary 导出交易记录为CSV
// @Description 根据日期范围导出交易记录，支出金额为负数
// @Tags 导出
// @Produce text/csv
// @Security BearerAuth
// @Param startDate query string true "开始日期 (2024-01-01)"
// @Param endDate query string true "结束日期 (2024-12-31)"
// @Success 200 {file} file "CSV 文件"
// @Failure 400 {object} Response "请求参数错误"
// @Failure 401 {object} Response "未授权"
// @Router /api/export/csv [get]
func (h *ExportHandler) ExportCSV(c *gin.Context) {
	transactions, suffix, ok := loadExportRange(c)
	if !ok {
		return
	}

	buf := new(bytes.Buffer)
	// BOM，Excel 打开时正确识别 UTF-8
	buf.WriteString("\xEF\xBB\xBF")

	writer := csv.NewWriter(buf)
	if err := writer.Write(exportHeaders); err != nil {
		InternalError(c, "生成 CSV 失败")
		return
	}
	for _, t := range transactions {
		if err := writer.Write(exportRow(t)); err != nil {
			InternalError(c, "生成 CSV 失败")
			return
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		InternalError(c, "生成 CSV 失败")
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=transactions_%s.csv", suffix))
	c.Header("Content-Length", strconv.Itoa(buf.Len()))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}

// ExportExcel 导出交易为 Excel
// @Summary 导出交易记录为Excel
// @Description 根据日期范围导出交易记录，末行汇总收入、支出与净额
// @Tags 导出
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security BearerAuth
// @Param startDate query string true "开始日期 (2024-01-01)"
// @Param endDate query string true "结束日期 (2024-12-31)"
// @Success 200 {file} file "Excel文件"
// @Failure 400 {object} Response "请求参数错误"
// @Failure 401 {object} Response "未授权"
// @Router /api/export/excel [get]
func (h *ExportHandler) ExportExcel(c *gin.Context) {
	transactions, suffix, ok := loadExportRange(c)
	if !ok {
		return
	}

	f, err := buildWorkbook(transactions)
	if err != nil {
		InternalError(c, "生成 Excel 失败")
		return
	}
	defer f.Close()

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename*=UTF-8''transactions_%s.xlsx", suffix))
	if err := f.Write(c.Writer); err != nil {
		InternalError(c, "生成 Excel 失败")
		return
	}
}

const exportSheet = "交易记录"

var thinBorder = []excelize.Border{
	{Type: "left", Color: "000000", Style: 1},
	{Type: "top", Color: "000000", Style: 1},
	{Type: "bottom", Color: "000000", Style: 1},
	{Type: "right", Color: "000000", Style: 1},
}

// buildWorkbook 生成带表头、数据与汇总行的工作簿
func buildWorkbook(transactions []models.Transaction) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", exportSheet); err != nil {
		f.Close()
		return nil, err
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 12, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"4F81BD"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border:    thinBorder,
	})
	if err != nil {
		f.Close()
		return nil, err
	}
	dataStyle, _ := f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border:    thinBorder,
	})
	summaryStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"FFC000"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border:    thinBorder,
	})

	widths := map[string]float64{"A": 8, "B": 12, "C": 12, "D": 20, "E": 10, "F": 16, "G": 12, "H": 30}
	for col, w := range widths {
		f.SetColWidth(exportSheet, col, col, w)
	}

	for i, header := range exportHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(exportSheet, cell, header)
		f.SetCellStyle(exportSheet, cell, cell, headerStyle)
	}

	var income, expense float64
	for i, t := range transactions {
		row := i + 2
		f.SetCellValue(exportSheet, fmt.Sprintf("A%d", row), t.ID)
		f.SetCellValue(exportSheet, fmt.Sprintf("B%d", row), t.Date.Format(dateLayout))
		f.SetCellValue(exportSheet, fmt.Sprintf("C%d", row), t.Time)
		f.SetCellValue(exportSheet, fmt.Sprintf("D%d", row), t.Merchant)
		f.SetCellValue(exportSheet, fmt.Sprintf("E%d", row), t.Type)
		f.SetCellValue(exportSheet, fmt.Sprintf("F%d", row), t.Category)
		f.SetCellValue(exportSheet, fmt.Sprintf("G%d", row), t.SignedAmount())
		f.SetCellValue(exportSheet, fmt.Sprintf("H%d", row), t.Description)
		f.SetCellStyle(exportSheet, fmt.Sprintf("A%d", row), fmt.Sprintf("H%d", row), dataStyle)

		if t.Type == models.TransactionTypeIncome {
			income += t.Amount
		} else {
			expense += t.Amount
		}
	}

	summaryRow := len(transactions) + 2
	f.SetCellValue(exportSheet, fmt.Sprintf("A%d", summaryRow), "合计")
	f.MergeCell(exportSheet, fmt.Sprintf("A%d", summaryRow), fmt.Sprintf("F%d", summaryRow))
	f.SetCellValue(exportSheet, fmt.Sprintf("G%d", summaryRow), income-expense)
	f.SetCellValue(exportSheet, fmt.Sprintf("H%d", summaryRow),
		fmt.Sprintf("共 %d 条记录，收入 %.2f，支出 %.2f", len(transactions), income, expense))
	f.SetCellStyle(exportSheet, fmt.Sprintf("A%d", summaryRow), fmt.Sprintf("H%d", summaryRow), summaryStyle)

	return f, nil
}

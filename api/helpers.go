package api

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"fintrack/ledger"
	"fintrack/models"

	"github.com/gin-gonic/gin"
)

const dateLayout = "2006-01-02"

var errInvalidDate = errors.New("invalid date")

// parseID 解析路径中的 :id
func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		BadRequest(c, "无效的ID")
		return 0, false
	}
	return uint(id), true
}

// parseDate 接受 2006-01-02 或 RFC3339 格式
func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.ParseInLocation(dateLayout, s, time.Local); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Time{}, errInvalidDate
}

// parseDateRange 解析 startDate/endDate 查询参数，结束日期包含当天
func parseDateRange(c *gin.Context) (start, end time.Time, ok bool) {
	if s := c.Query("startDate"); s != "" {
		t, err := parseDate(s)
		if err != nil {
			BadRequest(c, "开始日期格式错误，应为: 2006-01-02")
			return start, end, false
		}
		start = t
	}
	if s := c.Query("endDate"); s != "" {
		t, err := parseDate(s)
		if err != nil {
			BadRequest(c, "结束日期格式错误，应为: 2006-01-02")
			return start, end, false
		}
		end = t.Add(24*time.Hour - time.Second)
	}
	return start, end, true
}

// normalizeEmail 邮箱统一去空格、转小写
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func toLedgerTransactions(txs []models.Transaction) []ledger.Transaction {
	out := make([]ledger.Transaction, 0, len(txs))
	for _, t := range txs {
		out = append(out, ledger.Transaction{
			ID:          t.ID,
			Merchant:    t.Merchant,
			Amount:      t.Amount,
			Category:    t.Category,
			Type:        t.Type,
			Date:        t.Date,
			Time:        t.Time,
			Description: t.Description,
		})
	}
	return out
}

func toLedgerBudgets(budgets []models.BudgetCategory) []ledger.BudgetCategory {
	out := make([]ledger.BudgetCategory, 0, len(budgets))
	for _, b := range budgets {
		out = append(out, ledger.BudgetCategory{
			ID:        b.ID,
			Name:      b.Name,
			Allocated: b.Allocated,
			Spent:     b.Spent,
			Color:     b.Color,
			Icon:      b.Icon,
			Period:    b.Period,
			IsActive:  b.IsActive,
		})
	}
	return out
}

func toLedgerGoal(g models.Goal) ledger.Goal {
	return ledger.Goal{
		ID:            g.ID,
		Title:         g.Title,
		Description:   g.Description,
		TargetAmount:  g.TargetAmount,
		CurrentAmount: g.CurrentAmount,
		TargetDate:    g.TargetDate,
		Category:      g.Category,
		Priority:      g.Priority,
		Status:        g.Status,
	}
}

func toLedgerGoals(goals []models.Goal) []ledger.Goal {
	out := make([]ledger.Goal, 0, len(goals))
	for _, g := range goals {
		out = append(out, toLedgerGoal(g))
	}
	return out
}

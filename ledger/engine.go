package ledger

import (
	"math"
	"time"
)

// AlertThreshold 仪表盘支出提醒阈值（百分比）
const AlertThreshold = 90

// Engine 在交易、预算、目标快照上计算派生数据。
// 所有方法只读，每次调用都从原始集合重新计算。
type Engine struct {
	transactions []Transaction
	budgets      []BudgetCategory
	goals        []Goal
}

// NewEngine 创建计算引擎
func NewEngine(txs []Transaction, budgets []BudgetCategory, goals []Goal) *Engine {
	return &Engine{transactions: txs, budgets: budgets, goals: goals}
}

// BudgetLine 某一预算类别在指定周期下的视图
type BudgetLine struct {
	ID         uint    `json:"id"`
	Name       string  `json:"name"`
	Color      string  `json:"color,omitempty"`
	Allocated  float64 `json:"allocated"`
	Spent      float64 `json:"spent"`
	Remaining  float64 `json:"remaining"`
	Percentage float64 `json:"percentageUsed"`
	Status     Status  `json:"status"`
}

// MonthSummary 当月收支概览
type MonthSummary struct {
	Spent       float64 `json:"spent"`
	Income      float64 `json:"income"`
	Saved       float64 `json:"saved"`
	SavingsRate float64 `json:"savingsRate"`
}

// GoalProgress 目标进度派生字段
type GoalProgress struct {
	RemainingAmount      float64 `json:"remainingAmount"`
	PercentageComplete   float64 `json:"percentageComplete"`
	DaysRemaining        int     `json:"daysRemaining"`
	RequiredDailySavings float64 `json:"requiredDailySavings"`
	IsOnTrack            bool    `json:"isOnTrack"`
}

// TotalSpent 全部历史支出合计
func (e *Engine) TotalSpent() float64 {
	var total float64
	for _, t := range e.transactions {
		if t.Type == TypeExpense {
			total += math.Abs(t.Amount)
		}
	}
	return total
}

// TotalIncome 全部历史收入合计
func (e *Engine) TotalIncome() float64 {
	var total float64
	for _, t := range e.transactions {
		if t.Type == TypeIncome {
			total += t.Amount
		}
	}
	return total
}

// CategorySpending 指定分类的历史支出合计，分类名区分大小写
func (e *Engine) CategorySpending(name string) float64 {
	var total float64
	for _, t := range e.transactions {
		if t.Type == TypeExpense && t.Category == name {
			total += math.Abs(t.Amount)
		}
	}
	return total
}

// BudgetView 启用中的预算在指定周期下的视图。
// 分配额按周期换算，已用金额始终是历史累计，与周期无关。
func (e *Engine) BudgetView(p Period) []BudgetLine {
	lines := make([]BudgetLine, 0, len(e.budgets))
	for _, b := range e.budgets {
		if !b.IsActive {
			continue
		}
		allocated := ToDisplay(b.Allocated, p)
		spent := e.CategorySpending(b.Name)
		lines = append(lines, BudgetLine{
			ID:         b.ID,
			Name:       b.Name,
			Color:      b.Color,
			Allocated:  allocated,
			Spent:      spent,
			Remaining:  allocated - spent,
			Percentage: Percentage(spent, allocated),
			Status:     BudgetStatus(spent, allocated),
		})
	}
	return lines
}

// TotalAllocated 指定周期下启用预算的分配额合计
func (e *Engine) TotalAllocated(p Period) float64 {
	var total float64
	for _, b := range e.budgets {
		if b.IsActive {
			total += ToDisplay(b.Allocated, p)
		}
	}
	return total
}

// OverallProgress 所有目标的整体完成百分比
func (e *Engine) OverallProgress() float64 {
	var current, target float64
	for _, g := range e.goals {
		current += g.CurrentAmount
		target += g.TargetAmount
	}
	if target == 0 {
		return 0
	}
	return current / target * 100
}

// MonthSummary 计算 now 所在自然月的收支
func (e *Engine) MonthSummary(now time.Time) MonthSummary {
	var s MonthSummary
	for _, t := range e.transactions {
		if t.Date.Year() != now.Year() || t.Date.Month() != now.Month() {
			continue
		}
		switch t.Type {
		case TypeExpense:
			s.Spent += math.Abs(t.Amount)
		case TypeIncome:
			s.Income += t.Amount
		}
	}
	s.Saved = s.Income - s.Spent
	if s.Income > 0 {
		s.SavingsRate = s.Saved / s.Income * 100
	}
	return s
}

// SpendingAlerts 月度视图下使用率达到提醒阈值的预算
func (e *Engine) SpendingAlerts() []BudgetLine {
	var alerts []BudgetLine
	for _, line := range e.BudgetView(Monthly) {
		if line.Allocated > 0 && line.Percentage >= AlertThreshold {
			alerts = append(alerts, line)
		}
	}
	return alerts
}

// Progress 计算单个目标的派生进度
func Progress(g Goal, now time.Time) GoalProgress {
	p := GoalProgress{RemainingAmount: g.TargetAmount - g.CurrentAmount}
	if g.TargetAmount > 0 {
		p.PercentageComplete = g.CurrentAmount / g.TargetAmount * 100
	}
	days := int(math.Ceil(g.TargetDate.Sub(now).Hours() / 24))
	if days < 0 {
		days = 0
	}
	p.DaysRemaining = days
	if days > 0 {
		p.RequiredDailySavings = p.RemainingAmount / float64(days)
		// 截止日前按所需日均储蓄即可达成
		p.IsOnTrack = true
	} else {
		p.IsOnTrack = g.CurrentAmount >= g.TargetAmount
	}
	return p
}

package session

import "fintrack/ledger"

// Dashboard 仪表盘数据
type Dashboard struct {
	Balance         float64              `json:"balance"`
	Month           ledger.MonthSummary  `json:"month"`
	OverallProgress float64              `json:"overallProgress"`
	Alerts          []ledger.BudgetLine  `json:"alerts"`
	Recent          []ledger.Transaction `json:"recent"`
}

// Engine 基于当前快照的计算引擎，读操作每次重新计算
func (s *Store) Engine() *ledger.Engine {
	return ledger.NewEngine(s.Transactions(), s.Budgets(), s.Goals())
}

// TotalSpent 历史支出合计
func (s *Store) TotalSpent() float64 { return s.Engine().TotalSpent() }

// TotalIncome 历史收入合计
func (s *Store) TotalIncome() float64 { return s.Engine().TotalIncome() }

// CategorySpending 分类历史支出
func (s *Store) CategorySpending(name string) float64 {
	return s.Engine().CategorySpending(name)
}

// BudgetView 指定周期的预算视图
func (s *Store) BudgetView(p ledger.Period) []ledger.BudgetLine {
	return s.Engine().BudgetView(p)
}

// OverallProgress 目标整体进度
func (s *Store) OverallProgress() float64 { return s.Engine().OverallProgress() }

// Insights 预算提示，金额使用用户货币展示
func (s *Store) Insights(p ledger.Period) []string {
	return s.Engine().Insights(p, s.Profile().Currency)
}

// MonthSummary 当月收支
func (s *Store) MonthSummary() ledger.MonthSummary {
	return s.Engine().MonthSummary(now())
}

// Dashboard 汇总仪表盘数据，recent 为最近交易条数
func (s *Store) Dashboard(recent int) Dashboard {
	e := s.Engine()
	txs := s.Transactions()
	if recent >= 0 && len(txs) > recent {
		txs = txs[:recent]
	}
	return Dashboard{
		Balance:         s.TotalBalance(),
		Month:           e.MonthSummary(now()),
		OverallProgress: e.OverallProgress(),
		Alerts:          e.SpendingAlerts(),
		Recent:          txs,
	}
}

package ledger

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func sampleTransactions() []Transaction {
	return []Transaction{
		{ID: 1, Merchant: "Employer", Amount: 3000, Category: "Salary", Type: TypeIncome, Date: day(2024, 3, 1)},
		{ID: 2, Merchant: "Target", Amount: 50, Category: "Shopping", Type: TypeExpense, Date: day(2024, 3, 2)},
		{ID: 3, Merchant: "Whole Foods", Amount: 120, Category: "Food & Dining", Type: TypeExpense, Date: day(2024, 3, 5)},
		{ID: 4, Merchant: "Landlord", Amount: 1200, Category: "Housing", Type: TypeExpense, Date: day(2024, 2, 1)},
		{ID: 5, Merchant: "Refund", Amount: 20, Category: "Shopping", Type: TypeIncome, Date: day(2024, 3, 6)},
		{ID: 6, Merchant: "Amazon", Amount: 30, Category: "shopping", Type: TypeExpense, Date: day(2024, 3, 7)},
	}
}

func TestEngine_Totals(t *testing.T) {
	e := NewEngine(sampleTransactions(), nil, nil)

	assert.Equal(t, 1400.0, e.TotalSpent())
	assert.Equal(t, 3020.0, e.TotalIncome())
	assert.Equal(t, 1620.0, Balance(sampleTransactions()))
}

func TestEngine_CategorySpending(t *testing.T) {
	e := NewEngine(sampleTransactions(), nil, nil)

	// 区分大小写，且只统计支出
	assert.Equal(t, 50.0, e.CategorySpending("Shopping"))
	assert.Equal(t, 30.0, e.CategorySpending("shopping"))
	assert.Equal(t, 0.0, e.CategorySpending("Salary"))
	assert.Equal(t, 0.0, e.CategorySpending("Travel"))
}

func TestEngine_BudgetView(t *testing.T) {
	budgets := []BudgetCategory{
		{ID: 1, Name: "Housing", Allocated: 1200, IsActive: true},
		{ID: 2, Name: "Shopping", Allocated: 200, IsActive: true},
		{ID: 3, Name: "Travel", Allocated: 500, IsActive: false},
	}
	e := NewEngine(sampleTransactions(), budgets, nil)

	monthly := e.BudgetView(Monthly)
	require.Len(t, monthly, 2)
	assert.Equal(t, "Housing", monthly[0].Name)
	assert.Equal(t, 1200.0, monthly[0].Allocated)
	assert.Equal(t, 1200.0, monthly[0].Spent)
	assert.Equal(t, StatusOver, monthly[0].Status)
	assert.Equal(t, 150.0, monthly[1].Remaining)
	assert.Equal(t, 25.0, monthly[1].Percentage)

	// 周视图只换算分配额，已用金额仍为历史累计
	weekly := e.BudgetView(Weekly)
	require.Len(t, weekly, 2)
	assert.Equal(t, 300.0, weekly[0].Allocated)
	assert.Equal(t, 1200.0, weekly[0].Spent)
	assert.Equal(t, 50.0, weekly[1].Allocated)
	assert.Equal(t, 50.0, weekly[1].Spent)
	assert.Equal(t, StatusOver, weekly[1].Status)

	yearly := e.BudgetView(Yearly)
	assert.Equal(t, 2400.0, yearly[1].Allocated)
	assert.Equal(t, 50.0, yearly[1].Spent)

	assert.Equal(t, 1400.0, e.TotalAllocated(Monthly))
	assert.Equal(t, 350.0, e.TotalAllocated(Weekly))
}

func TestEngine_OverallProgress(t *testing.T) {
	assert.Equal(t, 0.0, NewEngine(nil, nil, nil).OverallProgress())

	goals := []Goal{
		{TargetAmount: 1000, CurrentAmount: 250},
		{TargetAmount: 1000, CurrentAmount: 1250},
	}
	assert.Equal(t, 75.0, NewEngine(nil, nil, goals).OverallProgress())

	// 可以超过 100%
	over := []Goal{{TargetAmount: 100, CurrentAmount: 150}}
	assert.Equal(t, 150.0, NewEngine(nil, nil, over).OverallProgress())

	zeroTarget := []Goal{{TargetAmount: 0, CurrentAmount: 10}}
	assert.Equal(t, 0.0, NewEngine(nil, nil, zeroTarget).OverallProgress())
}

func TestEngine_MonthSummary(t *testing.T) {
	e := NewEngine(sampleTransactions(), nil, nil)
	s := e.MonthSummary(day(2024, 3, 15))

	assert.Equal(t, 200.0, s.Spent)
	assert.Equal(t, 3020.0, s.Income)
	assert.Equal(t, 2820.0, s.Saved)
	assert.InDelta(t, 93.377, s.SavingsRate, 0.001)

	empty := e.MonthSummary(day(2023, 1, 1))
	assert.Equal(t, MonthSummary{}, empty)
}

func TestEngine_SpendingAlerts(t *testing.T) {
	budgets := []BudgetCategory{
		{ID: 1, Name: "Housing", Allocated: 1300, IsActive: true},
		{ID: 2, Name: "Shopping", Allocated: 200, IsActive: true},
		{ID: 3, Name: "Gifts", Allocated: 0, IsActive: true},
	}
	alerts := NewEngine(sampleTransactions(), budgets, nil).SpendingAlerts()
	require.Len(t, alerts, 1)
	assert.Equal(t, "Housing", alerts[0].Name)
}

func TestProgress(t *testing.T) {
	now := day(2024, 1, 1)

	g := Goal{TargetAmount: 1000, CurrentAmount: 400, TargetDate: day(2024, 1, 31)}
	p := Progress(g, now)
	assert.Equal(t, 600.0, p.RemainingAmount)
	assert.Equal(t, 40.0, p.PercentageComplete)
	assert.Equal(t, 30, p.DaysRemaining)
	assert.Equal(t, 20.0, p.RequiredDailySavings)
	assert.True(t, p.IsOnTrack)

	past := Goal{TargetAmount: 1000, CurrentAmount: 400, TargetDate: day(2023, 12, 1)}
	pp := Progress(past, now)
	assert.Equal(t, 0, pp.DaysRemaining)
	assert.Equal(t, 0.0, pp.RequiredDailySavings)
	assert.False(t, pp.IsOnTrack)

	done := Goal{TargetAmount: 1000, CurrentAmount: 1000, TargetDate: day(2023, 12, 1)}
	assert.True(t, Progress(done, now).IsOnTrack)
}

func TestScenario_ShoppingBudget(t *testing.T) {
	txs := []Transaction{{ID: 1, Merchant: "Target", Amount: 50, Category: "Shopping", Type: TypeExpense}}
	budgets := []BudgetCategory{{ID: 1, Name: "Shopping", Allocated: 200, IsActive: true}}
	e := NewEngine(txs, budgets, nil)

	assert.Equal(t, 50.0, e.CategorySpending("Shopping"))
	assert.Equal(t, StatusGood, BudgetStatus(50, 200))
}

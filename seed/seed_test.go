package seed

import (
	"testing"
	"time"

	"fintrack/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

var fixedNow = time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)

func TestGenerator_User(t *testing.T) {
	opts := DefaultOptions()
	u, err := NewGenerator(1, fixedNow).User(opts)
	require.NoError(t, err)

	assert.True(t, u.IsEmailVerified)
	assert.Equal(t, opts.Email, u.Email)
	assert.NotEmpty(t, u.Name)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(opts.Password)))
	assert.Equal(t, "USD", u.Preferences.Currency)
}

func TestGenerator_TransactionsWithinWindow(t *testing.T) {
	opts := DefaultOptions()
	txs := NewGenerator(42, fixedNow).Transactions(7, opts)

	start := fixedNow.AddDate(0, 0, -opts.Days)
	var income, expense int
	for _, tx := range txs {
		assert.Equal(t, uint(7), tx.UserID)
		assert.Greater(t, tx.Amount, 0.0)
		assert.False(t, tx.Date.Before(start.Add(-24*time.Hour)), tx.Date)
		assert.False(t, tx.Date.After(fixedNow), tx.Date)
		switch tx.Type {
		case models.TransactionTypeIncome:
			income++
			assert.Equal(t, 1, tx.Date.Day())
		case models.TransactionTypeExpense:
			expense++
			assert.Contains(t, ExpenseCategories, tx.Category)
		}
	}
	assert.Equal(t, opts.Transactions, expense)
	assert.Equal(t, 3, income)
}

func TestGenerator_Deterministic(t *testing.T) {
	a := NewGenerator(99, fixedNow).Transactions(1, DefaultOptions())
	b := NewGenerator(99, fixedNow).Transactions(1, DefaultOptions())
	assert.Equal(t, a, b)
}

func TestGenerator_BudgetsAndGoals(t *testing.T) {
	g := NewGenerator(3, fixedNow)
	budgets := g.Budgets(1, map[string]float64{"Housing": 1500})
	require.Len(t, budgets, len(ExpenseCategories))
	assert.Equal(t, 1500.0, budgets[0].Allocated)
	for _, b := range budgets {
		assert.True(t, b.IsActive)
		assert.Equal(t, models.BudgetPeriodMonthly, b.Period)
		assert.NotEmpty(t, b.Color)
	}

	goals := g.Goals(1, DefaultOptions())
	require.Len(t, goals, 3)
	for _, goal := range goals {
		assert.Greater(t, goal.TargetAmount, goal.CurrentAmount)
		assert.True(t, goal.TargetDate.After(fixedNow))
	}
}

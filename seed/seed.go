// Package seed 生成演示数据：一个已验证的用户及其交易、预算和储蓄目标
package seed

import (
	"fmt"
	"time"

	"fintrack/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// ExpenseCategories 演示数据使用的支出类别
var ExpenseCategories = []string{
	"Housing", "Food & Dining", "Transportation", "Utilities", "Entertainment", "Shopping",
}

var budgetColors = map[string]string{
	"Housing":        "#6366F1",
	"Food & Dining":  "#10B981",
	"Transportation": "#F59E0B",
	"Utilities":      "#06B6D4",
	"Entertainment":  "#EC4899",
	"Shopping":       models.DefaultBudgetColor,
}

// Options 演示数据规模
type Options struct {
	Email         string
	Password      string
	Transactions  int
	Goals         int
	MonthlyIncome float64
	Days          int
}

// DefaultOptions 默认规模
func DefaultOptions() Options {
	return Options{
		Email:         "demo@fintrack.local",
		Password:      "demo1234",
		Transactions:  60,
		Goals:         3,
		MonthlyIncome: 5000,
		Days:          90,
	}
}

// Generator 基于固定种子生成可复现的数据
type Generator struct {
	faker *gofakeit.Faker
	now   time.Time
}

// NewGenerator 创建生成器
func NewGenerator(seed int64, now time.Time) *Generator {
	return &Generator{faker: gofakeit.New(seed), now: now}
}

// User 生成已验证的演示用户
func (g *Generator) User(opts Options) (models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(opts.Password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, err
	}
	return models.User{
		Name:            g.faker.Name(),
		Email:           opts.Email,
		Password:        string(hash),
		IsEmailVerified: true,
		JoinDate:        g.now.AddDate(0, 0, -opts.Days),
		Preferences:     models.DefaultPreferences(),
	}, nil
}

// Transactions 生成过去 days 天内的交易，每月 1 日有一笔工资收入
func (g *Generator) Transactions(userID uint, opts Options) []models.Transaction {
	start := g.now.AddDate(0, 0, -opts.Days)
	txs := make([]models.Transaction, 0, opts.Transactions+opts.Days/28+1)

	for d := time.Date(start.Year(), start.Month(), 1, 9, 0, 0, 0, g.now.Location()); !d.After(g.now); d = d.AddDate(0, 1, 0) {
		if d.Before(start) {
			continue
		}
		txs = append(txs, models.Transaction{
			UserID:   userID,
			Merchant: g.faker.Company(),
			Amount:   opts.MonthlyIncome,
			Category: "Income",
			Type:     models.TransactionTypeIncome,
			Date:     d,
			Time:     d.Format("3:04:05 PM"),
		})
	}

	for i := 0; i < opts.Transactions; i++ {
		day := g.now.AddDate(0, 0, -g.faker.Number(0, opts.Days))
		txs = append(txs, models.Transaction{
			UserID:      userID,
			Merchant:    g.faker.Company(),
			Amount:      g.faker.Price(5, 250),
			Category:    g.faker.RandomString(ExpenseCategories),
			Type:        models.TransactionTypeExpense,
			Date:        day,
			Time:        day.Format("3:04:05 PM"),
			Description: g.faker.Sentence(4),
		})
	}
	return txs
}

// Budgets 每个支出类别一条月度预算，分配额取收入的推荐比例
func (g *Generator) Budgets(userID uint, allocations map[string]float64) []models.BudgetCategory {
	start, end := models.DefaultBudgetWindow(g.now)
	budgets := make([]models.BudgetCategory, 0, len(ExpenseCategories))
	for _, name := range ExpenseCategories {
		budgets = append(budgets, models.BudgetCategory{
			UserID:    userID,
			Name:      name,
			Allocated: allocations[name],
			Color:     budgetColors[name],
			Period:    models.BudgetPeriodMonthly,
			StartDate: start,
			EndDate:   end,
			IsActive:  true,
		})
	}
	return budgets
}

// Goals 生成进行中的储蓄目标
func (g *Generator) Goals(userID uint, opts Options) []models.Goal {
	priorities := []string{models.GoalPriorityLow, models.GoalPriorityMedium, models.GoalPriorityHigh}
	goals := make([]models.Goal, 0, opts.Goals)
	for i := 0; i < opts.Goals; i++ {
		target := float64(g.faker.Number(10, 100) * 100)
		goals = append(goals, models.Goal{
			UserID:        userID,
			Title:         fmt.Sprintf("%s Fund", g.faker.Noun()),
			Description:   g.faker.Sentence(6),
			TargetAmount:  target,
			CurrentAmount: float64(g.faker.Number(0, int(target/2))),
			TargetDate:    g.now.AddDate(0, g.faker.Number(3, 24), 0),
			Category:      "Savings",
			Priority:      priorities[i%len(priorities)],
			Status:        models.GoalStatusActive,
		})
	}
	return goals
}

// Run 在一个事务中写入全部演示数据，已存在的同名邮箱用户会被拒绝
func Run(db *gorm.DB, g *Generator, opts Options, allocations map[string]float64) (*models.User, error) {
	user, err := g.User(opts)
	if err != nil {
		return nil, err
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.User{}).Where("email = ?", opts.Email).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return fmt.Errorf("用户 %s 已存在", opts.Email)
		}
		if err := tx.Create(&user).Error; err != nil {
			return err
		}
		txs := g.Transactions(user.ID, opts)
		if err := tx.CreateInBatches(&txs, 100).Error; err != nil {
			return err
		}
		budgets := g.Budgets(user.ID, allocations)
		if err := tx.Create(&budgets).Error; err != nil {
			return err
		}
		if opts.Goals > 0 {
			goals := g.Goals(user.ID, opts)
			return tx.Create(&goals).Error
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

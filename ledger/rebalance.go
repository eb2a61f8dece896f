package ledger

import "github.com/shopspring/decimal"

// 推荐分配比例，未列出的类别按 defaultShare 分配
var recommendedShares = map[string]decimal.Decimal{
	"Housing":        decimal.RequireFromString("0.30"),
	"Food & Dining":  decimal.RequireFromString("0.12"),
	"Transportation": decimal.RequireFromString("0.15"),
	"Utilities":      decimal.RequireFromString("0.08"),
	"Entertainment":  decimal.RequireFromString("0.05"),
	"Shopping":       decimal.RequireFromString("0.05"),
}

var defaultShare = decimal.RequireFromString("0.025")

// RecommendedShare 类别的推荐收入占比
func RecommendedShare(category string) decimal.Decimal {
	if s, ok := recommendedShares[category]; ok {
		return s
	}
	return defaultShare
}

// RecommendedAllocation 按月收入计算类别的推荐月度分配额，保留两位小数
func RecommendedAllocation(category string, monthlyIncome float64) float64 {
	amount := decimal.NewFromFloat(monthlyIncome).Mul(RecommendedShare(category)).Round(2)
	f, _ := amount.Float64()
	return f
}

// RebalancePlan 为每个启用的预算计算新的分配额，顺序与输入一致
func RebalancePlan(budgets []BudgetCategory, monthlyIncome float64) []BudgetCategory {
	plan := make([]BudgetCategory, 0, len(budgets))
	for _, b := range budgets {
		if !b.IsActive {
			continue
		}
		b.Allocated = RecommendedAllocation(b.Name, monthlyIncome)
		plan = append(plan, b)
	}
	return plan
}

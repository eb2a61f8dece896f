package ledger

import (
	"fmt"
	"sort"

	"fintrack/currency"
)

// FallbackInsight 没有任何提示被触发时返回
const FallbackInsight = "• 预算分配均衡，继续保持！"

// utilizationFloor 整体使用率低于该值时提示优化
const utilizationFloor = 70

// Insights 生成预算提示，按固定顺序检查，可同时出现多条：
// 超支类别数、支出最高类别、第一个使用不足一半的类别、整体使用率偏低。
// 金额按 currencyCode 展示。
func (e *Engine) Insights(p Period, currencyCode string) []string {
	lines := e.BudgetView(p)
	var insights []string

	overspent := 0
	for _, l := range lines {
		if l.Spent > l.Allocated {
			overspent++
		}
	}
	if overspent > 0 {
		insights = append(insights, fmt.Sprintf("• 有 %d 个类别已超出预算", overspent))
	}

	if len(lines) > 0 {
		sorted := make([]BudgetLine, len(lines))
		copy(sorted, lines)
		sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Spent > sorted[j].Spent })
		insights = append(insights, fmt.Sprintf("• 支出最高：%s（%s）", sorted[0].Name, currency.FormatSimple(sorted[0].Spent, currencyCode)))
	}

	for _, l := range lines {
		if l.Allocated > 0 && l.Spent < l.Allocated*0.5 {
			insights = append(insights, fmt.Sprintf("• 可以考虑从 %s 调出部分预算", l.Name))
			break
		}
	}

	var totalAllocated, totalSpent float64
	for _, l := range lines {
		totalAllocated += l.Allocated
		totalSpent += l.Spent
	}
	if totalAllocated > 0 {
		utilization := totalSpent / totalAllocated * 100
		if utilization < utilizationFloor {
			insights = append(insights, fmt.Sprintf("• 预算使用率为 %.0f%%，可以进一步优化", utilization))
		}
	}

	if len(insights) == 0 {
		return []string{FallbackInsight}
	}
	return insights
}

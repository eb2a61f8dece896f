package ledger

// Status 预算使用状态
type Status string

const (
	StatusGood    Status = "good"
	StatusWarning Status = "warning"
	StatusOver    Status = "over"
)

// BudgetStatus 按使用比例分类：>=100% 超支，>=80% 预警，其余正常。
// allocated<=0 时不做除法：有支出即超支，否则正常。
func BudgetStatus(spent, allocated float64) Status {
	if allocated <= 0 {
		if spent > 0 {
			return StatusOver
		}
		return StatusGood
	}
	pct := spent / allocated * 100
	switch {
	case pct >= 100:
		return StatusOver
	case pct >= 80:
		return StatusWarning
	}
	return StatusGood
}

// Percentage 已用百分比，allocated<=0 时返回 0
func Percentage(spent, allocated float64) float64 {
	if allocated <= 0 {
		return 0
	}
	return spent / allocated * 100
}

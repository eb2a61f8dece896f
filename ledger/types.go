package ledger

import "time"

// 交易类型
const (
	TypeExpense = "expense"
	TypeIncome  = "income"
)

// Transaction 客户端/计算引擎使用的交易快照，金额为正数，方向由 Type 决定
type Transaction struct {
	ID          uint      `json:"id"`
	Merchant    string    `json:"merchant"`
	Amount      float64   `json:"amount"`
	Category    string    `json:"category"`
	Type        string    `json:"type"`
	Date        time.Time `json:"date"`
	Time        string    `json:"time,omitempty"`
	Description string    `json:"description,omitempty"`
}

// Signed 返回该交易对余额的贡献：收入为正，支出为负
func (t Transaction) Signed() float64 {
	if t.Type == TypeIncome {
		return t.Amount
	}
	if t.Amount < 0 {
		return t.Amount
	}
	return -t.Amount
}

// BudgetCategory 预算类别快照，Allocated 始终为月度金额
type BudgetCategory struct {
	ID        uint    `json:"id"`
	Name      string  `json:"name"`
	Allocated float64 `json:"allocated"`
	Spent     float64 `json:"spent"`
	Color     string  `json:"color,omitempty"`
	Icon      string  `json:"icon,omitempty"`
	Period    string  `json:"period,omitempty"`
	IsActive  bool    `json:"isActive"`
}

// Goal 储蓄目标快照
type Goal struct {
	ID            uint      `json:"id"`
	Title         string    `json:"title"`
	Description   string    `json:"description,omitempty"`
	TargetAmount  float64   `json:"targetAmount"`
	CurrentAmount float64   `json:"currentAmount"`
	TargetDate    time.Time `json:"targetDate"`
	Category      string    `json:"category"`
	Priority      string    `json:"priority,omitempty"`
	Status        string    `json:"status,omitempty"`
}

// UserProfile 客户端本地的用户信息，MonthlyIncome 不会同步到服务端
type UserProfile struct {
	Name          string  `json:"name"`
	Email         string  `json:"email"`
	Currency      string  `json:"currency"`
	MonthlyIncome float64 `json:"monthlyIncome"`
}

// Balance 从头计算余额：收入合计减去支出绝对值合计
func Balance(txs []Transaction) float64 {
	var total float64
	for _, t := range txs {
		total += t.Signed()
	}
	return total
}

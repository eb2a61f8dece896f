package models

import (
	"time"
)

// 交易类型
const (
	TransactionTypeExpense = "expense"
	TransactionTypeIncome  = "income"
)

// Transaction 交易记录模型（收入/支出），金额始终为正数，方向由 Type 决定
type Transaction struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	UserID      uint      `json:"userId" gorm:"index;not null"`
	Merchant    string    `json:"merchant" gorm:"size:100;not null"`
	Amount      float64   `json:"amount" gorm:"type:decimal(12,2);not null"`
	Category    string    `json:"category" gorm:"size:50;not null;index"`
	Type        string    `json:"type" gorm:"size:10;not null;index"`
	Date        time.Time `json:"date" gorm:"not null;index"`
	Time        string    `json:"time" gorm:"size:20"`
	Description string    `json:"description" gorm:"size:500"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
	User        User      `json:"-" gorm:"foreignKey:UserID"`
}

// TableName 设置表名
func (Transaction) TableName() string {
	return "transactions"
}

// SignedAmount 收入为正，支出为负
func (t *Transaction) SignedAmount() float64 {
	if t.Type == TransactionTypeIncome {
		return t.Amount
	}
	return -t.Amount
}

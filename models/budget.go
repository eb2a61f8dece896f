package models

import (
	"time"
)

// 预算周期
const (
	BudgetPeriodWeekly  = "weekly"
	BudgetPeriodMonthly = "monthly"
	BudgetPeriodYearly  = "yearly"
)

// DefaultBudgetColor 未指定颜色时使用
const DefaultBudgetColor = "#3B82F6"

// BudgetCategory 预算类别模型
// Allocated 始终按月存储；Spent 为持久化字段，不随交易自动更新
// 删除为软删除（IsActive = false）
type BudgetCategory struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"userId" gorm:"index:idx_budget_user_active;not null"`
	Name      string    `json:"name" gorm:"size:50;not null"`
	Allocated float64   `json:"allocated" gorm:"type:decimal(12,2);not null"`
	Spent     float64   `json:"spent" gorm:"type:decimal(12,2);default:0"`
	Color     string    `json:"color" gorm:"size:20;default:#3B82F6"`
	Icon      string    `json:"icon" gorm:"size:20"`
	Period    string    `json:"period" gorm:"size:10;default:monthly"`
	StartDate time.Time `json:"startDate" gorm:"not null"`
	EndDate   time.Time `json:"endDate" gorm:"not null"`
	IsActive  bool      `json:"isActive" gorm:"default:true;index:idx_budget_user_active"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	User      User      `json:"-" gorm:"foreignKey:UserID"`
}

// TableName 设置表名
func (BudgetCategory) TableName() string {
	return "budget_categories"
}

// DefaultBudgetWindow 新建预算的默认时间窗口：从 start 起 30 天
func DefaultBudgetWindow(start time.Time) (time.Time, time.Time) {
	return start, start.Add(30 * 24 * time.Hour)
}

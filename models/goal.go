package models

import (
	"time"
)

// 目标优先级
const (
	GoalPriorityLow    = "low"
	GoalPriorityMedium = "medium"
	GoalPriorityHigh   = "high"
)

// 目标状态
const (
	GoalStatusActive    = "active"
	GoalStatusCompleted = "completed"
	GoalStatusPaused    = "paused"
	GoalStatusCancelled = "cancelled"
)

// Goal 储蓄目标模型，删除为物理删除
type Goal struct {
	ID            uint            `json:"id" gorm:"primaryKey"`
	UserID        uint            `json:"userId" gorm:"index;not null"`
	Title         string          `json:"title" gorm:"size:100;not null"`
	Description   string          `json:"description" gorm:"size:500"`
	TargetAmount  float64         `json:"targetAmount" gorm:"type:decimal(12,2);not null"`
	CurrentAmount float64         `json:"currentAmount" gorm:"type:decimal(12,2);default:0"`
	TargetDate    time.Time       `json:"targetDate" gorm:"not null;index"`
	Category      string          `json:"category" gorm:"size:50;not null"`
	Priority      string          `json:"priority" gorm:"size:10;default:medium"`
	Status        string          `json:"status" gorm:"size:10;default:active;index"`
	Milestones    []GoalMilestone `json:"milestones" gorm:"foreignKey:GoalID;constraint:OnDelete:CASCADE"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
	User          User            `json:"-" gorm:"foreignKey:UserID"`
}

// TableName 设置表名
func (Goal) TableName() string {
	return "goals"
}

// GoalMilestone 目标里程碑
type GoalMilestone struct {
	ID     uint      `json:"id" gorm:"primaryKey"`
	GoalID uint      `json:"goalId" gorm:"index;not null"`
	Amount float64   `json:"amount" gorm:"type:decimal(12,2);not null"`
	Date   time.Time `json:"date" gorm:"not null"`
	Note   string    `json:"note" gorm:"size:200"`
}

// TableName 设置表名
func (GoalMilestone) TableName() string {
	return "goal_milestones"
}

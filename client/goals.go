package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"fintrack/ledger"
)

// GoalUpdate 目标的部分更新，nil 字段不修改
type GoalUpdate struct {
	Title         *string  `json:"title,omitempty"`
	Description   *string  `json:"description,omitempty"`
	TargetAmount  *float64 `json:"targetAmount,omitempty"`
	CurrentAmount *float64 `json:"currentAmount,omitempty"`
	TargetDate    *string  `json:"targetDate,omitempty"`
	Category      *string  `json:"category,omitempty"`
	Priority      *string  `json:"priority,omitempty"`
	Status        *string  `json:"status,omitempty"`
}

type goalBody struct {
	Title         string  `json:"title"`
	Description   string  `json:"description,omitempty"`
	TargetAmount  float64 `json:"targetAmount"`
	CurrentAmount float64 `json:"currentAmount"`
	TargetDate    string  `json:"targetDate"`
	Category      string  `json:"category"`
	Priority      string  `json:"priority,omitempty"`
}

// ListGoals 获取目标，status 为空时返回全部
func (c *Client) ListGoals(ctx context.Context, status string) ([]ledger.Goal, error) {
	q := url.Values{}
	if status != "" {
		q.Set("status", status)
	}
	var goals []ledger.Goal
	if err := c.do(ctx, http.MethodGet, "/goals", q, nil, &goals); err != nil {
		return nil, err
	}
	return goals, nil
}

// GetGoal 获取单个目标
func (c *Client) GetGoal(ctx context.Context, id uint) (*ledger.Goal, error) {
	var g ledger.Goal
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/goals/%d", id), nil, nil, &g); err != nil {
		return nil, err
	}
	return &g, nil
}

// CreateGoal 创建目标
func (c *Client) CreateGoal(ctx context.Context, g ledger.Goal) (ledger.Goal, error) {
	body := goalBody{
		Title:         g.Title,
		Description:   g.Description,
		TargetAmount:  g.TargetAmount,
		CurrentAmount: g.CurrentAmount,
		TargetDate:    g.TargetDate.Format(dateLayout),
		Category:      g.Category,
		Priority:      g.Priority,
	}
	var created ledger.Goal
	err := c.do(ctx, http.MethodPost, "/goals", nil, body, &created)
	return created, err
}

// UpdateGoal 部分更新目标
func (c *Client) UpdateGoal(ctx context.Context, id uint, u GoalUpdate) (ledger.Goal, error) {
	var updated ledger.Goal
	err := c.do(ctx, http.MethodPut, fmt.Sprintf("/goals/%d", id), nil, u, &updated)
	return updated, err
}

// DeleteGoal 删除目标
func (c *Client) DeleteGoal(ctx context.Context, id uint) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/goals/%d", id), nil, nil, nil)
}

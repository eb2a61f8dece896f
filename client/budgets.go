package client

import (
	"context"
	"fmt"
	"net/http"

	"fintrack/ledger"
)

// BudgetUpdate 预算的部分更新，nil 字段不修改
type BudgetUpdate struct {
	Name      *string  `json:"name,omitempty"`
	Allocated *float64 `json:"allocated,omitempty"`
	Color     *string  `json:"color,omitempty"`
	Icon      *string  `json:"icon,omitempty"`
	Period    *string  `json:"period,omitempty"`
	IsActive  *bool    `json:"isActive,omitempty"`
}

type budgetBody struct {
	Name      string  `json:"name"`
	Allocated float64 `json:"allocated"`
	Color     string  `json:"color,omitempty"`
	Icon      string  `json:"icon,omitempty"`
	Period    string  `json:"period,omitempty"`
}

// ListBudgets 获取启用中的预算
func (c *Client) ListBudgets(ctx context.Context) ([]ledger.BudgetCategory, error) {
	var budgets []ledger.BudgetCategory
	if err := c.do(ctx, http.MethodGet, "/budgets", nil, nil, &budgets); err != nil {
		return nil, err
	}
	return budgets, nil
}

// CreateBudget 创建预算，Allocated 为月度金额
func (c *Client) CreateBudget(ctx context.Context, b ledger.BudgetCategory) (ledger.BudgetCategory, error) {
	body := budgetBody{Name: b.Name, Allocated: b.Allocated, Color: b.Color, Icon: b.Icon, Period: b.Period}
	var created ledger.BudgetCategory
	err := c.do(ctx, http.MethodPost, "/budgets", nil, body, &created)
	return created, err
}

// UpdateBudget 部分更新预算
func (c *Client) UpdateBudget(ctx context.Context, id uint, u BudgetUpdate) (ledger.BudgetCategory, error) {
	var updated ledger.BudgetCategory
	err := c.do(ctx, http.MethodPut, fmt.Sprintf("/budgets/%d", id), nil, u, &updated)
	return updated, err
}

// DeleteBudget 停用预算（服务端为软删除）
func (c *Client) DeleteBudget(ctx context.Context, id uint) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/budgets/%d", id), nil, nil, nil)
}

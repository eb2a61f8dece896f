package client

import (
	"context"
	"net/http"
	"net/url"

	"fintrack/ledger"
)

// PreferencesUpdate 偏好的部分更新，nil 字段不修改
type PreferencesUpdate struct {
	Currency      *string `json:"currency,omitempty"`
	Notifications *bool   `json:"notifications,omitempty"`
	BiometricAuth *bool   `json:"biometricAuth,omitempty"`
	DarkMode      *bool   `json:"darkMode,omitempty"`
	Language      *string `json:"language,omitempty"`
}

// ProfileUpdate 个人资料的部分更新
type ProfileUpdate struct {
	Name   *string `json:"name,omitempty"`
	Avatar *string `json:"avatar,omitempty"`
}

// Profile 获取当前用户资料
func (c *Client) Profile(ctx context.Context) (*User, error) {
	var u User
	if err := c.do(ctx, http.MethodGet, "/users/profile", nil, nil, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// UpdateProfile 更新个人资料
func (c *Client) UpdateProfile(ctx context.Context, u ProfileUpdate) (*User, error) {
	var user User
	if err := c.do(ctx, http.MethodPut, "/users/profile", nil, u, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdatePreferences 更新偏好设置
func (c *Client) UpdatePreferences(ctx context.Context, p PreferencesUpdate) (*Preferences, error) {
	var prefs Preferences
	if err := c.do(ctx, http.MethodPut, "/users/preferences", nil, p, &prefs); err != nil {
		return nil, err
	}
	return &prefs, nil
}

// InsightReport 服务端生成的预算分析
type InsightReport struct {
	Period          string              `json:"period"`
	Currency        string              `json:"currency"`
	Insights        []string            `json:"insights"`
	Budgets         []ledger.BudgetLine `json:"budgets"`
	TotalAllocated  float64             `json:"totalAllocated"`
	TotalSpent      float64             `json:"totalSpent"`
	OverallProgress float64             `json:"overallProgress"`
}

// Insights 获取服务端预算分析
func (c *Client) Insights(ctx context.Context, period ledger.Period, currencyCode string) (*InsightReport, error) {
	q := url.Values{}
	if period != "" {
		q.Set("period", string(period))
	}
	if currencyCode != "" {
		q.Set("currency", currencyCode)
	}
	var r InsightReport
	if err := c.do(ctx, http.MethodGet, "/insights", q, nil, &r); err != nil {
		return nil, err
	}
	return &r, nil
}

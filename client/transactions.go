package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"fintrack/ledger"
)

// MaxPageSize 服务端允许的最大分页大小
const MaxPageSize = 100

const dateLayout = "2006-01-02"

// TransactionFilter 交易列表过滤条件
type TransactionFilter struct {
	Page      int
	Limit     int
	Category  string
	Type      string
	StartDate time.Time
	EndDate   time.Time
}

func (f TransactionFilter) values() url.Values {
	q := url.Values{}
	if f.Page > 0 {
		q.Set("page", strconv.Itoa(f.Page))
	}
	if f.Limit > 0 {
		q.Set("limit", strconv.Itoa(f.Limit))
	}
	if f.Category != "" {
		q.Set("category", f.Category)
	}
	if f.Type != "" {
		q.Set("type", f.Type)
	}
	if !f.StartDate.IsZero() {
		q.Set("startDate", f.StartDate.Format(dateLayout))
	}
	if !f.EndDate.IsZero() {
		q.Set("endDate", f.EndDate.Format(dateLayout))
	}
	return q
}

// Pagination 分页信息
type Pagination struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
	Pages int   `json:"pages"`
}

// TransactionPage 一页交易
type TransactionPage struct {
	Transactions []ledger.Transaction `json:"transactions"`
	Pagination   Pagination           `json:"pagination"`
}

// transactionBody 创建/更新交易的请求体
type transactionBody struct {
	Merchant    string  `json:"merchant"`
	Amount      float64 `json:"amount"`
	Category    string  `json:"category"`
	Type        string  `json:"type"`
	Date        string  `json:"date,omitempty"`
	Description string  `json:"description,omitempty"`
}

func newTransactionBody(tx ledger.Transaction) transactionBody {
	b := transactionBody{
		Merchant:    tx.Merchant,
		Amount:      tx.Amount,
		Category:    tx.Category,
		Type:        tx.Type,
		Description: tx.Description,
	}
	if !tx.Date.IsZero() {
		b.Date = tx.Date.Format(dateLayout)
	}
	return b
}

// ListTransactions 获取一页交易
func (c *Client) ListTransactions(ctx context.Context, f TransactionFilter) (*TransactionPage, error) {
	var page TransactionPage
	if err := c.do(ctx, http.MethodGet, "/transactions", f.values(), nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// AllTransactions 逐页读取全部交易
func (c *Client) AllTransactions(ctx context.Context) ([]ledger.Transaction, error) {
	var all []ledger.Transaction
	for page := 1; ; page++ {
		p, err := c.ListTransactions(ctx, TransactionFilter{Page: page, Limit: MaxPageSize})
		if err != nil {
			return nil, err
		}
		all = append(all, p.Transactions...)
		if page >= p.Pagination.Pages || len(p.Transactions) == 0 {
			return all, nil
		}
	}
}

// GetTransaction 获取单条交易
func (c *Client) GetTransaction(ctx context.Context, id uint) (*ledger.Transaction, error) {
	var tx ledger.Transaction
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/transactions/%d", id), nil, nil, &tx); err != nil {
		return nil, err
	}
	return &tx, nil
}

// CreateTransaction 创建交易，返回服务端分配 ID 和时间后的记录
func (c *Client) CreateTransaction(ctx context.Context, tx ledger.Transaction) (ledger.Transaction, error) {
	var created ledger.Transaction
	err := c.do(ctx, http.MethodPost, "/transactions", nil, newTransactionBody(tx), &created)
	return created, err
}

// UpdateTransaction 整体替换交易
func (c *Client) UpdateTransaction(ctx context.Context, tx ledger.Transaction) (ledger.Transaction, error) {
	var updated ledger.Transaction
	err := c.do(ctx, http.MethodPut, fmt.Sprintf("/transactions/%d", tx.ID), nil, newTransactionBody(tx), &updated)
	return updated, err
}

// DeleteTransaction 删除交易
func (c *Client) DeleteTransaction(ctx context.Context, id uint) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/transactions/%d", id), nil, nil, nil)
}

// TypeTotal 某类型的合计
type TypeTotal struct {
	Total float64 `json:"total"`
	Count int64   `json:"count"`
}

// CategoryTotal 分类合计
type CategoryTotal struct {
	Category string  `json:"category"`
	Type     string  `json:"type"`
	Total    float64 `json:"total"`
	Count    int64   `json:"count"`
}

// Summary 交易统计
type Summary struct {
	StartDate  string          `json:"startDate"`
	EndDate    string          `json:"endDate"`
	Income     TypeTotal       `json:"income"`
	Expense    TypeTotal       `json:"expense"`
	Net        float64         `json:"net"`
	ByCategory []CategoryTotal `json:"byCategory"`
}

// Stats 获取时间窗口内的交易统计，零值时间表示使用服务端默认（本月）
func (c *Client) Stats(ctx context.Context, start, end time.Time) (*Summary, error) {
	q := url.Values{}
	if !start.IsZero() {
		q.Set("startDate", start.Format(dateLayout))
	}
	if !end.IsZero() {
		q.Set("endDate", end.Format(dateLayout))
	}
	var s Summary
	if err := c.do(ctx, http.MethodGet, "/transactions/stats/summary", q, nil, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// Package session 客户端会话状态：服务端数据的本地镜像与余额累计
package session

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"fintrack/client"
	"fintrack/ledger"
)

// ErrGoalNotFound 本地不存在该目标
var ErrGoalNotFound = errors.New("goal not found in session")

// ErrBudgetNotFound 本地不存在该预算
var ErrBudgetNotFound = errors.New("budget not found in session")

// ErrSessionChanged 远程调用返回前会话已结束或已切换用户，结果未写入本地
var ErrSessionChanged = errors.New("session changed during request")

// Gateway 会话依赖的远程接口，*client.Client 实现了它
type Gateway interface {
	SetToken(token string)
	AllTransactions(ctx context.Context) ([]ledger.Transaction, error)
	CreateTransaction(ctx context.Context, tx ledger.Transaction) (ledger.Transaction, error)
	DeleteTransaction(ctx context.Context, id uint) error
	ListBudgets(ctx context.Context) ([]ledger.BudgetCategory, error)
	CreateBudget(ctx context.Context, b ledger.BudgetCategory) (ledger.BudgetCategory, error)
	UpdateBudget(ctx context.Context, id uint, u client.BudgetUpdate) (ledger.BudgetCategory, error)
	ListGoals(ctx context.Context, status string) ([]ledger.Goal, error)
	CreateGoal(ctx context.Context, g ledger.Goal) (ledger.Goal, error)
	UpdateGoal(ctx context.Context, id uint, u client.GoalUpdate) (ledger.Goal, error)
	DeleteGoal(ctx context.Context, id uint) error
}

var _ Gateway = (*client.Client)(nil)

// state 会话数据，零值即为登出后的初始状态
type state struct {
	token        string
	profile      ledger.UserProfile
	transactions []ledger.Transaction
	budgets      []ledger.BudgetCategory
	goals        []ledger.Goal
	totalBalance float64
}

// Store 单个用户会话的状态容器。
// 所有变更先调用远程接口，成功后才修改本地状态；失败时记录日志并原样返回错误。
type Store struct {
	gw     Gateway
	logger *log.Logger

	mu sync.RWMutex
	st state
	// gen 每次 Begin/End 递增，远程调用返回时据此判断会话是否仍是发起时的那个
	gen uint64
}

// NewStore 创建会话，logger 为 nil 时使用标准 log
func NewStore(gw Gateway, logger *log.Logger) *Store {
	if logger == nil {
		logger = log.Default()
	}
	return &Store{gw: gw, logger: logger}
}

// LoadError 登录加载时部分集合获取失败
type LoadError struct {
	Transactions error
	Budgets      error
	Goals        error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("session load: transactions=%v budgets=%v goals=%v", e.Transactions, e.Budgets, e.Goals)
}

// Begin 开始会话：并行拉取交易、预算、目标，整体替换本地数据。
// 某个集合拉取失败时该集合为空，其余照常载入，并返回 *LoadError。
func (s *Store) Begin(ctx context.Context, token string, profile ledger.UserProfile) error {
	s.mu.Lock()
	s.gen++
	gen := s.gen
	s.mu.Unlock()
	s.gw.SetToken(token)

	var (
		txs     []ledger.Transaction
		budgets []ledger.BudgetCategory
		goals   []ledger.Goal
		loadErr LoadError
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		txs, err = s.gw.AllTransactions(gctx)
		loadErr.Transactions = err
		return nil
	})
	g.Go(func() error {
		var err error
		budgets, err = s.gw.ListBudgets(gctx)
		loadErr.Budgets = err
		return nil
	})
	g.Go(func() error {
		var err error
		goals, err = s.gw.ListGoals(gctx, "")
		loadErr.Goals = err
		return nil
	})
	_ = g.Wait()

	committed := s.commit(gen, func() {
		s.st = state{
			token:        token,
			profile:      profile,
			transactions: txs,
			budgets:      budgets,
			goals:        goals,
			totalBalance: ledger.Balance(txs),
		}
	})
	if !committed {
		return s.fail("会话加载", ErrSessionChanged)
	}

	if loadErr.Transactions != nil || loadErr.Budgets != nil || loadErr.Goals != nil {
		s.logger.Printf("会话加载不完整: %v", &loadErr)
		return &loadErr
	}
	return nil
}

// End 结束会话，恢复初始空状态
func (s *Store) End() {
	s.gw.SetToken("")
	s.mu.Lock()
	s.gen++
	s.st = state{}
	s.mu.Unlock()
}

// Active 是否处于登录状态
func (s *Store) Active() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.st.token != ""
}

// Profile 当前用户资料
func (s *Store) Profile() ledger.UserProfile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.st.profile
}

// UpdateUserProfile 只修改本地资料（月收入不在服务端保存）
func (s *Store) UpdateUserProfile(p ledger.UserProfile) {
	s.mu.Lock()
	s.st.profile = p
	s.mu.Unlock()
}

// TotalBalance 增量维护的余额
func (s *Store) TotalBalance() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.st.totalBalance
}

// Transactions 交易副本
func (s *Store) Transactions() []ledger.Transaction {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]ledger.Transaction(nil), s.st.transactions...)
}

// Budgets 预算副本
func (s *Store) Budgets() []ledger.BudgetCategory {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]ledger.BudgetCategory(nil), s.st.budgets...)
}

// Goals 目标副本
func (s *Store) Goals() []ledger.Goal {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]ledger.Goal(nil), s.st.goals...)
}

// generation 当前会话代号，远程调用前记录
func (s *Store) generation() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.gen
}

// commit 在写锁内执行 apply；gen 已过期（期间发生过 Begin/End）时丢弃写入并返回 false
func (s *Store) commit(gen uint64, apply func()) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.gen != gen {
		return false
	}
	apply()
	return true
}

func (s *Store) fail(op string, err error) error {
	s.logger.Printf("%s 失败: %v", op, err)
	return fmt.Errorf("%s: %w", op, err)
}

// now 测试中可替换
var now = time.Now

package session

import (
	"context"
	"fmt"

	"fintrack/client"
	"fintrack/ledger"
)

// AddTransaction 创建交易，使用服务端返回的记录（ID、时间）更新本地并累加余额
func (s *Store) AddTransaction(ctx context.Context, tx ledger.Transaction) (ledger.Transaction, error) {
	gen := s.generation()
	created, err := s.gw.CreateTransaction(ctx, tx)
	if err != nil {
		return ledger.Transaction{}, s.fail("添加交易", err)
	}
	ok := s.commit(gen, func() {
		s.st.transactions = append([]ledger.Transaction{created}, s.st.transactions...)
		s.st.totalBalance += created.Signed()
	})
	if !ok {
		return ledger.Transaction{}, s.fail("添加交易", ErrSessionChanged)
	}
	return created, nil
}

// DeleteTransaction 删除交易并扣除其对余额的贡献。
// 服务端返回 404 视为已删除；本地不存在的 ID 不影响余额。
func (s *Store) DeleteTransaction(ctx context.Context, id uint) error {
	gen := s.generation()
	if err := s.gw.DeleteTransaction(ctx, id); err != nil && !client.IsNotFound(err) {
		return s.fail("删除交易", err)
	}
	ok := s.commit(gen, func() {
		for i, t := range s.st.transactions {
			if t.ID == id {
				s.st.totalBalance -= t.Signed()
				s.st.transactions = append(s.st.transactions[:i:i], s.st.transactions[i+1:]...)
				return
			}
		}
	})
	if !ok {
		return s.fail("删除交易", ErrSessionChanged)
	}
	return nil
}

// UpdateBudget 修改预算的月度分配额
func (s *Store) UpdateBudget(ctx context.Context, id uint, allocated float64) (ledger.BudgetCategory, error) {
	gen := s.generation()
	updated, err := s.gw.UpdateBudget(ctx, id, client.BudgetUpdate{Allocated: &allocated})
	if err != nil {
		return ledger.BudgetCategory{}, s.fail("更新预算", err)
	}
	if !s.commit(gen, func() { s.replaceBudget(updated) }) {
		return ledger.BudgetCategory{}, s.fail("更新预算", ErrSessionChanged)
	}
	return updated, nil
}

// AddBudgetCategory 新建预算类别，Allocated 为月度金额
func (s *Store) AddBudgetCategory(ctx context.Context, b ledger.BudgetCategory) (ledger.BudgetCategory, error) {
	gen := s.generation()
	created, err := s.gw.CreateBudget(ctx, b)
	if err != nil {
		return ledger.BudgetCategory{}, s.fail("添加预算", err)
	}
	if !s.commit(gen, func() { s.st.budgets = append(s.st.budgets, created) }) {
		return ledger.BudgetCategory{}, s.fail("添加预算", ErrSessionChanged)
	}
	return created, nil
}

// replaceBudget 调用方持有写锁
func (s *Store) replaceBudget(b ledger.BudgetCategory) {
	for i := range s.st.budgets {
		if s.st.budgets[i].ID == b.ID {
			budgets := append([]ledger.BudgetCategory(nil), s.st.budgets...)
			budgets[i] = b
			s.st.budgets = budgets
			return
		}
	}
}

// AddGoal 新建目标
func (s *Store) AddGoal(ctx context.Context, g ledger.Goal) (ledger.Goal, error) {
	gen := s.generation()
	created, err := s.gw.CreateGoal(ctx, g)
	if err != nil {
		return ledger.Goal{}, s.fail("添加目标", err)
	}
	if !s.commit(gen, func() { s.st.goals = append(s.st.goals, created) }) {
		return ledger.Goal{}, s.fail("添加目标", ErrSessionChanged)
	}
	return created, nil
}

// UpdateGoal 部分更新目标
func (s *Store) UpdateGoal(ctx context.Context, id uint, u client.GoalUpdate) (ledger.Goal, error) {
	return s.updateGoal(ctx, s.generation(), id, u)
}

func (s *Store) updateGoal(ctx context.Context, gen uint64, id uint, u client.GoalUpdate) (ledger.Goal, error) {
	updated, err := s.gw.UpdateGoal(ctx, id, u)
	if err != nil {
		return ledger.Goal{}, s.fail("更新目标", err)
	}
	if !s.commit(gen, func() { s.replaceGoal(updated) }) {
		return ledger.Goal{}, s.fail("更新目标", ErrSessionChanged)
	}
	return updated, nil
}

// DeleteGoal 删除目标
func (s *Store) DeleteGoal(ctx context.Context, id uint) error {
	gen := s.generation()
	if err := s.gw.DeleteGoal(ctx, id); err != nil {
		return s.fail("删除目标", err)
	}
	ok := s.commit(gen, func() {
		goals := make([]ledger.Goal, 0, len(s.st.goals))
		for _, g := range s.st.goals {
			if g.ID != id {
				goals = append(goals, g)
			}
		}
		s.st.goals = goals
	})
	if !ok {
		return s.fail("删除目标", ErrSessionChanged)
	}
	return nil
}

// AddToGoal 向目标存入金额：currentAmount += amount
func (s *Store) AddToGoal(ctx context.Context, id uint, amount float64) (ledger.Goal, error) {
	s.mu.RLock()
	var (
		current float64
		found   bool
	)
	gen := s.gen
	for _, g := range s.st.goals {
		if g.ID == id {
			current, found = g.CurrentAmount, true
			break
		}
	}
	s.mu.RUnlock()
	if !found {
		return ledger.Goal{}, s.fail("目标存入", fmt.Errorf("%w: %d", ErrGoalNotFound, id))
	}

	next := current + amount
	return s.updateGoal(ctx, gen, id, client.GoalUpdate{CurrentAmount: &next})
}

// replaceGoal 调用方持有写锁
func (s *Store) replaceGoal(g ledger.Goal) {
	for i := range s.st.goals {
		if s.st.goals[i].ID == g.ID {
			goals := append([]ledger.Goal(nil), s.st.goals...)
			goals[i] = g
			s.st.goals = goals
			return
		}
	}
}

// RebalanceResult 批量重新分配的结果
type RebalanceResult struct {
	Applied []ledger.BudgetCategory
	Pending []ledger.BudgetCategory
}

// Rebalance 按月收入和推荐比例逐个覆盖启用预算的分配额。
// 没有事务保证：第 N 个失败时前 N-1 个已生效，剩余的不再提交。
func (s *Store) Rebalance(ctx context.Context, monthlyIncome float64) (RebalanceResult, error) {
	plan := ledger.RebalancePlan(s.Budgets(), monthlyIncome)
	var res RebalanceResult
	for i, b := range plan {
		updated, err := s.UpdateBudget(ctx, b.ID, b.Allocated)
		if err != nil {
			res.Pending = plan[i:]
			return res, fmt.Errorf("rebalance stopped at %q (%d/%d): %w", b.Name, i+1, len(plan), err)
		}
		res.Applied = append(res.Applied, updated)
	}
	return res, nil
}

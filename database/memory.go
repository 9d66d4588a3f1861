package database

import (
	"context"
	"sort"
	"sync"
	"time"

	"expensetracker/budget"
	"expensetracker/models"
)

// MemoryStore 内存实现，用于本地开发与测试，重启后数据丢失
type MemoryStore struct {
	mu       sync.RWMutex
	users    map[string]models.User
	expenses []models.Expense
	now      func() time.Time
}

// NewMemoryStore 创建内存存储
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{users: make(map[string]models.User), now: time.Now}
}

func (s *MemoryStore) CreateUser(_ context.Context, u *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.users {
		if existing.Email == u.Email {
			return ErrDuplicateEmail
		}
	}
	prepareUser(u, s.now())
	s.users[u.ID] = *u
	return nil
}

func (s *MemoryStore) GetUserByID(_ context.Context, id string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &u, nil
}

func (s *MemoryStore) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryStore) SaveUser(_ context.Context, u *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[u.ID]; !ok {
		return ErrNotFound
	}
	prepareUser(u, s.now())
	s.users[u.ID] = *u
	return nil
}

func (s *MemoryStore) CreateExpense(_ context.Context, e *models.Expense) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	prepareExpense(e, s.now())
	s.expenses = append(s.expenses, *e)
	return nil
}

func (s *MemoryStore) DeleteExpense(_ context.Context, userID, id string) (*models.Expense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, e := range s.expenses {
		if e.ID == id && e.UserID == userID {
			s.expenses = append(s.expenses[:i], s.expenses[i+1:]...)
			return &e, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryStore) match(q ExpenseQuery) []models.Expense {
	out := make([]models.Expense, 0)
	for _, e := range s.expenses {
		if e.UserID != q.UserID {
			continue
		}
		if q.Start != nil && e.Date.Before(*q.Start) {
			continue
		}
		if q.End != nil && e.Date.After(*q.End) {
			continue
		}
		out = append(out, e)
	}
	return out
}

func (s *MemoryStore) ListExpenses(_ context.Context, q ExpenseQuery) ([]models.Expense, error) {
	s.mu.RLock()
	out := s.match(q)
	s.mu.RUnlock()

	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	if q.Skip > 0 {
		if q.Skip >= len(out) {
			return []models.Expense{}, nil
		}
		out = out[q.Skip:]
	}
	if q.Limit > 0 && q.Limit < len(out) {
		out = out[:q.Limit]
	}
	return out, nil
}

func (s *MemoryStore) CountExpenses(_ context.Context, q ExpenseQuery) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.match(q))), nil
}

func (s *MemoryStore) SumRange(_ context.Context, userID string, start, end time.Time) (RangeTotal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out RangeTotal
	for _, e := range s.match(ExpenseQuery{UserID: userID, Start: &start, End: &end}) {
		out.Total += e.Price
		out.Count++
	}
	return out, nil
}

func (s *MemoryStore) SumByCategory(_ context.Context, userID string, start, end time.Time) ([]budget.CategoryTotal, error) {
	s.mu.RLock()
	matched := s.match(ExpenseQuery{UserID: userID, Start: &start, End: &end})
	s.mu.RUnlock()

	index := make(map[string]int)
	out := make([]budget.CategoryTotal, 0)
	for _, e := range matched {
		i, ok := index[e.Category]
		if !ok {
			i = len(out)
			index[e.Category] = i
			out = append(out, budget.CategoryTotal{Category: e.Category})
		}
		out[i].Total += e.Price
		out[i].Count++
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Total > out[j].Total })
	return out, nil
}

func (s *MemoryStore) Ping(context.Context) error { return nil }

func (s *MemoryStore) Close(context.Context) error { return nil }

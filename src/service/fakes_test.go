package service

import (
	"context"
	"sort"
	"time"

	"budgetwise-server/src/models"
)

type fakeClock struct {
	now time.Time
}

func (c fakeClock) Now() time.Time { return c.now }

// memStore is an in-memory TransactionStore for tests.
type memStore struct {
	nextID int64
	txs    map[int64]models.Transaction
}

func newMemStore() *memStore {
	return &memStore{nextID: 1, txs: make(map[int64]models.Transaction)}
}

func (s *memStore) FindByID(_ context.Context, id int64) (*models.Transaction, error) {
	tx, ok := s.txs[id]
	if !ok {
		return nil, nil
	}
	return &tx, nil
}

func (s *memStore) FindAllByUserOrderByDateDesc(_ context.Context, userID int64) ([]models.Transaction, error) {
	out := s.byUser(userID)
	sort.Slice(out, func(i, j int) bool {
		return out[i].TransactionDate.After(out[j].TransactionDate)
	})
	return out, nil
}

func (s *memStore) FindAllByUserInDateRange(_ context.Context, userID int64, start, end time.Time) ([]models.Transaction, error) {
	var out []models.Transaction
	for _, tx := range s.byUser(userID) {
		if !tx.TransactionDate.Before(start) && tx.TransactionDate.Before(end) {
			out = append(out, tx)
		}
	}
	return out, nil
}

func (s *memStore) FindAllByUserAndType(_ context.Context, userID int64, txType models.TransactionType) ([]models.Transaction, error) {
	var out []models.Transaction
	for _, tx := range s.byUser(userID) {
		if tx.Type == txType {
			out = append(out, tx)
		}
	}
	return out, nil
}

func (s *memStore) Save(_ context.Context, tx *models.Transaction) (*models.Transaction, error) {
	if tx.ID == 0 {
		tx.ID = s.nextID
		s.nextID++
	}
	s.txs[tx.ID] = *tx
	saved := *tx
	return &saved, nil
}

func (s *memStore) Delete(_ context.Context, tx *models.Transaction) error {
	delete(s.txs, tx.ID)
	return nil
}

func (s *memStore) byUser(userID int64) []models.Transaction {
	ids := make([]int64, 0, len(s.txs))
	for id := range s.txs {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	var out []models.Transaction
	for _, id := range ids {
		if s.txs[id].UserID == userID {
			out = append(out, s.txs[id])
		}
	}
	return out
}

// memDirectory is an in-memory user/category directory for tests.
type memDirectory struct {
	users      map[int64]models.User
	categories map[int64]models.Category
}

func (d *memDirectory) FindUserByID(_ context.Context, id int64) (*models.User, error) {
	user, ok := d.users[id]
	if !ok {
		return nil, nil
	}
	return &user, nil
}

func (d *memDirectory) FindUserByEmail(_ context.Context, email string) (*models.User, error) {
	for _, user := range d.users {
		if user.Email == email {
			u := user
			return &u, nil
		}
	}
	return nil, nil
}

func (d *memDirectory) FindCategoryByID(_ context.Context, id int64) (*models.Category, error) {
	category, ok := d.categories[id]
	if !ok {
		return nil, nil
	}
	return &category, nil
}

type staticBudgets struct {
	statuses []models.BudgetStatus
}

func (b staticBudgets) GetBudgetStatus(_ context.Context, _ int64) ([]models.BudgetStatus, error) {
	return b.statuses, nil
}

type fakeLLM struct {
	response string
	err      error
}

func (f fakeLLM) ChatResponse(_ context.Context, _, _ string) (string, error) {
	return f.response, f.err
}

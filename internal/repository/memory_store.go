package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"tokenvest/internal/models"
	"tokenvest/internal/uuid"
)

type memState struct {
	investments   map[string]models.Investment
	tokens        []models.Token
	distributions []models.Distribution
}

func (st *memState) clone() memState {
	out := memState{
		investments:   make(map[string]models.Investment, len(st.investments)),
		tokens:        append([]models.Token(nil), st.tokens...),
		distributions: append([]models.Distribution(nil), st.distributions...),
	}
	for k, v := range st.investments {
		out.investments[k] = v
	}
	return out
}

// MemoryStore is a mutex-guarded Store. A transaction holds the mutex for its
// whole duration and restores a snapshot when it fails, so concurrent
// purchases serialize exactly as they would behind a row lock.
type MemoryStore struct {
	mu         sync.Mutex
	st         memState
	failTokens error
	clock      func() time.Time
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		st:    memState{investments: make(map[string]models.Investment)},
		clock: time.Now,
	}
}

// FailTokenWrites makes every subsequent CreateToken return err. Pass nil to
// restore normal behavior.
func (s *MemoryStore) FailTokenWrites(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failTokens = err
}

func (s *MemoryStore) view() *memTx { return &memTx{s: s} }

func (s *MemoryStore) FindInvestment(ctx context.Context, id string) (*models.Investment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.view().FindInvestment(ctx, id)
}

func (s *MemoryStore) FindInvestmentForUpdate(ctx context.Context, id string) (*models.Investment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.view().FindInvestmentForUpdate(ctx, id)
}

func (s *MemoryStore) ListInvestments(ctx context.Context, filter InvestmentFilter) ([]models.Investment, int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.view().ListInvestments(ctx, filter)
}

func (s *MemoryStore) CreateInvestment(ctx context.Context, inv *models.Investment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.view().CreateInvestment(ctx, inv)
}

func (s *MemoryStore) SaveInvestment(ctx context.Context, inv *models.Investment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.view().SaveInvestment(ctx, inv)
}

func (s *MemoryStore) SetAvailableTokens(ctx context.Context, id string, available int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.view().SetAvailableTokens(ctx, id, available)
}

func (s *MemoryStore) DeleteInvestment(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.view().DeleteInvestment(ctx, id)
}

func (s *MemoryStore) DecrementAvailable(ctx context.Context, id string, qty int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.view().DecrementAvailable(ctx, id, qty)
}

func (s *MemoryStore) CreateToken(ctx context.Context, token *models.Token) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.view().CreateToken(ctx, token)
}

func (s *MemoryStore) FindToken(ctx context.Context, id string) (*models.Token, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.view().FindToken(ctx, id)
}

func (s *MemoryStore) ListTokensByUser(ctx context.Context, userID string) ([]models.Token, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.view().ListTokensByUser(ctx, userID)
}

func (s *MemoryStore) CountTokens(ctx context.Context, investmentID string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.view().CountTokens(ctx, investmentID)
}

func (s *MemoryStore) SumTokenAmounts(ctx context.Context, investmentID string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.view().SumTokenAmounts(ctx, investmentID)
}

func (s *MemoryStore) CreateDistribution(ctx context.Context, d *models.Distribution) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.view().CreateDistribution(ctx, d)
}

func (s *MemoryStore) ListDistributions(ctx context.Context, investmentID string) ([]models.Distribution, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.view().ListDistributions(ctx, investmentID)
}

func (s *MemoryStore) WithTx(ctx context.Context, fn func(Store) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.view().WithTx(ctx, fn)
}

// memTx operates on the store's state with the mutex already held.
type memTx struct {
	s *MemoryStore
}

func (t *memTx) FindInvestment(ctx context.Context, id string) (*models.Investment, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	inv, ok := t.s.st.investments[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &inv, nil
}

// FindInvestmentForUpdate needs no extra lock: the transaction already holds
// the store mutex.
func (t *memTx) FindInvestmentForUpdate(ctx context.Context, id string) (*models.Investment, error) {
	return t.FindInvestment(ctx, id)
}

func (t *memTx) ListInvestments(ctx context.Context, filter InvestmentFilter) ([]models.Investment, int64, error) {
	if err := ctx.Err(); err != nil {
		return nil, 0, err
	}
	var matched []models.Investment
	for _, inv := range t.s.st.investments {
		if filter.Type != "" && string(inv.Type) != filter.Type {
			continue
		}
		if filter.Category != "" && inv.Category != filter.Category {
			continue
		}
		if filter.MinROI != nil && inv.ExpectedROI.LessThan(*filter.MinROI) {
			continue
		}
		if filter.Active != nil && inv.IsActive != *filter.Active {
			continue
		}
		matched = append(matched, inv)
	}
	sort.Slice(matched, func(i, j int) bool {
		if !matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].CreatedAt.After(matched[j].CreatedAt)
		}
		return matched[i].ID > matched[j].ID
	})

	start, end := filter.Page.Window(len(matched))
	return matched[start:end], int64(len(matched)), nil
}

func (t *memTx) CreateInvestment(ctx context.Context, inv *models.Investment) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if inv.ID == "" {
		inv.ID = uuid.New()
	}
	now := t.s.clock()
	if inv.CreatedAt.IsZero() {
		inv.CreatedAt = now
	}
	inv.UpdatedAt = now
	if inv.Currency == "" {
		inv.Currency = "USD"
	}
	t.s.st.investments[inv.ID] = *inv
	return nil
}

func (t *memTx) SaveInvestment(ctx context.Context, inv *models.Investment) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	current, ok := t.s.st.investments[inv.ID]
	if !ok {
		return ErrNotFound
	}
	inv.TotalTokens = current.TotalTokens
	inv.AvailableTokens = current.AvailableTokens
	inv.CreatedAt = current.CreatedAt
	inv.UpdatedAt = t.s.clock()
	t.s.st.investments[inv.ID] = *inv
	return nil
}

func (t *memTx) SetAvailableTokens(ctx context.Context, id string, available int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	inv, ok := t.s.st.investments[id]
	if !ok {
		return ErrNotFound
	}
	inv.AvailableTokens = available
	inv.UpdatedAt = t.s.clock()
	t.s.st.investments[id] = inv
	return nil
}

func (t *memTx) DeleteInvestment(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if _, ok := t.s.st.investments[id]; !ok {
		return ErrNotFound
	}
	for _, tok := range t.s.st.tokens {
		if tok.InvestmentID == id {
			return ErrHasDependents
		}
	}
	kept := t.s.st.distributions[:0:0]
	for _, d := range t.s.st.distributions {
		if d.InvestmentID != id {
			kept = append(kept, d)
		}
	}
	t.s.st.distributions = kept
	delete(t.s.st.investments, id)
	return nil
}

func (t *memTx) DecrementAvailable(ctx context.Context, id string, qty int64) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	inv, ok := t.s.st.investments[id]
	if !ok || !inv.IsActive || inv.AvailableTokens < qty {
		return false, nil
	}
	inv.AvailableTokens -= qty
	inv.UpdatedAt = t.s.clock()
	t.s.st.investments[id] = inv
	return true, nil
}

func (t *memTx) CreateToken(ctx context.Context, token *models.Token) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if t.s.failTokens != nil {
		return t.s.failTokens
	}
	if _, ok := t.s.st.investments[token.InvestmentID]; !ok {
		return ErrNotFound
	}
	if token.ID == "" {
		token.ID = uuid.New()
	}
	if token.CreatedAt.IsZero() {
		token.CreatedAt = t.s.clock()
	}
	stored := *token
	stored.Investment = nil
	stored.User = nil
	t.s.st.tokens = append(t.s.st.tokens, stored)
	return nil
}

func (t *memTx) joined(tok models.Token) models.Token {
	if inv, ok := t.s.st.investments[tok.InvestmentID]; ok {
		tok.Investment = &inv
	}
	return tok
}

func (t *memTx) FindToken(ctx context.Context, id string) (*models.Token, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	for _, tok := range t.s.st.tokens {
		if tok.ID == id {
			out := t.joined(tok)
			return &out, nil
		}
	}
	return nil, ErrNotFound
}

func (t *memTx) ListTokensByUser(ctx context.Context, userID string) ([]models.Token, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var out []models.Token
	for _, tok := range t.s.st.tokens {
		if tok.UserID == userID {
			out = append(out, t.joined(tok))
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

func (t *memTx) CountTokens(ctx context.Context, investmentID string) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	var n int64
	for _, tok := range t.s.st.tokens {
		if tok.InvestmentID == investmentID {
			n++
		}
	}
	return n, nil
}

func (t *memTx) SumTokenAmounts(ctx context.Context, investmentID string) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	var sum int64
	for _, tok := range t.s.st.tokens {
		if tok.InvestmentID == investmentID {
			sum += tok.Amount
		}
	}
	return sum, nil
}

func (t *memTx) CreateDistribution(ctx context.Context, d *models.Distribution) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if _, ok := t.s.st.investments[d.InvestmentID]; !ok {
		return ErrNotFound
	}
	if d.ID == "" {
		d.ID = uuid.New()
	}
	now := t.s.clock()
	d.CreatedAt = now
	d.UpdatedAt = now
	t.s.st.distributions = append(t.s.st.distributions, *d)
	return nil
}

func (t *memTx) ListDistributions(ctx context.Context, investmentID string) ([]models.Distribution, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var out []models.Distribution
	for _, d := range t.s.st.distributions {
		if d.InvestmentID == investmentID {
			out = append(out, d)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].DistributionDate.Equal(out[j].DistributionDate) {
			return out[i].DistributionDate.After(out[j].DistributionDate)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

// WithTx on a transaction view behaves like a savepoint.
func (t *memTx) WithTx(ctx context.Context, fn func(Store) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	snapshot := t.s.st.clone()
	err := fn(t)
	if err == nil {
		err = ctx.Err()
	}
	if err != nil {
		t.s.st = snapshot
		return err
	}
	return nil
}

var (
	_ Store = (*MemoryStore)(nil)
	_ Store = (*memTx)(nil)
)

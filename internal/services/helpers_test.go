package services

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"gorm.io/gorm"

	"tokenvest/internal/models"
	"tokenvest/internal/repository"
	"tokenvest/internal/testutil"
)

var errDiskFull = errors.New("disk full")

// backend is a store under test plus a way to mint users its foreign keys
// accept and to make purchase-record writes fail.
type backend struct {
	name       string
	store      repository.Store
	newUser    func() string
	failTokens func()
}

func backends(t *testing.T) []backend {
	t.Helper()

	mem := repository.NewMemoryStore()
	memUsers := 0

	db := testutil.SetupTestDB(t)

	return []backend{
		{
			name:  "memory",
			store: mem,
			newUser: func() string {
				memUsers++
				return fmt.Sprintf("mem-user-%d", memUsers)
			},
			failTokens: func() { mem.FailTokenWrites(errDiskFull) },
		},
		{
			name:  "gorm",
			store: repository.NewGormStore(db),
			newUser: func() string {
				return testutil.CreateTestUser(t, db).ID
			},
			failTokens: func() {
				_ = db.Callback().Create().Before("gorm:create").Register("test:fail_tokens", func(tx *gorm.DB) {
					if tx.Statement.Table == "tokens" {
						_ = tx.AddError(errDiskFull)
					}
				})
			},
		},
	}
}

func forEachBackend(t *testing.T, fn func(t *testing.T, b backend)) {
	t.Helper()
	for _, b := range backends(t) {
		b := b
		t.Run(b.name, func(t *testing.T) {
			fn(t, b)
		})
	}
}

func seedInvestment(t *testing.T, store repository.Store, opts ...func(*models.Investment)) *models.Investment {
	t.Helper()
	inv := testutil.NewTestInvestment(opts...)
	if err := store.CreateInvestment(context.Background(), inv); err != nil {
		t.Fatalf("failed to seed investment: %v", err)
	}
	return inv
}

func available(t *testing.T, store repository.Store, id string) int64 {
	t.Helper()
	inv, err := store.FindInvestment(context.Background(), id)
	if err != nil {
		t.Fatalf("failed to reload investment: %v", err)
	}
	return inv.AvailableTokens
}

// assertConserved checks total - available == Σ amount of purchase records.
func assertConserved(t *testing.T, store repository.Store, id string) {
	t.Helper()
	ctx := context.Background()
	inv, err := store.FindInvestment(ctx, id)
	if err != nil {
		t.Fatalf("failed to reload investment: %v", err)
	}
	sold, err := store.SumTokenAmounts(ctx, id)
	if err != nil {
		t.Fatalf("failed to sum purchases: %v", err)
	}
	if inv.TotalTokens-inv.AvailableTokens != sold {
		t.Errorf("conservation violated: total %d - available %d != sold %d",
			inv.TotalTokens, inv.AvailableTokens, sold)
	}
	if inv.AvailableTokens < 0 || inv.AvailableTokens > inv.TotalTokens {
		t.Errorf("availability %d out of bounds [0, %d]", inv.AvailableTokens, inv.TotalTokens)
	}
}

// Package repository is the persistence port for the marketplace: investments,
// purchase records, and distributions. Services depend on Store so the GORM
// implementation can be swapped for the in-memory one in tests.
package repository

import (
	"context"
	"errors"

	"tokenvest/internal/models"
	"tokenvest/internal/pagination"

	"github.com/shopspring/decimal"
)

var (
	// ErrNotFound is returned when the addressed row does not exist.
	ErrNotFound = errors.New("repository: record not found")
	// ErrHasDependents is returned when a delete would orphan purchase records.
	ErrHasDependents = errors.New("repository: record has dependent purchases")
)

// InvestmentFilter narrows ListInvestments. Zero fields do not filter.
type InvestmentFilter struct {
	Type     string
	Category string
	MinROI   *decimal.Decimal
	Active   *bool
	Page     pagination.PageRequest
}

// Store is implemented by the GORM and in-memory stores.
type Store interface {
	FindInvestment(ctx context.Context, id string) (*models.Investment, error)
	// FindInvestmentForUpdate reads the row and locks it until the enclosing
	// transaction ends. Purchases against it wait for the lock.
	FindInvestmentForUpdate(ctx context.Context, id string) (*models.Investment, error)
	// ListInvestments returns the requested page newest first along with the
	// number of rows matching the filter.
	ListInvestments(ctx context.Context, filter InvestmentFilter) ([]models.Investment, int64, error)
	CreateInvestment(ctx context.Context, inv *models.Investment) error
	// SaveInvestment writes the descriptive columns of inv. It never writes
	// total_tokens or available_tokens; supply moves only through
	// DecrementAvailable and SetAvailableTokens.
	SaveInvestment(ctx context.Context, inv *models.Investment) error
	// SetAvailableTokens overwrites the available supply.
	SetAvailableTokens(ctx context.Context, id string, available int64) error
	DeleteInvestment(ctx context.Context, id string) error

	// DecrementAvailable subtracts qty from the available supply if, and only
	// if, the investment exists, is active, and has at least qty available. It
	// reports whether a row was changed.
	DecrementAvailable(ctx context.Context, id string, qty int64) (bool, error)

	CreateToken(ctx context.Context, token *models.Token) error
	FindToken(ctx context.Context, id string) (*models.Token, error)
	// ListTokensByUser returns the user's purchase records newest first with
	// the investment joined.
	ListTokensByUser(ctx context.Context, userID string) ([]models.Token, error)
	CountTokens(ctx context.Context, investmentID string) (int64, error)
	SumTokenAmounts(ctx context.Context, investmentID string) (int64, error)

	CreateDistribution(ctx context.Context, d *models.Distribution) error
	ListDistributions(ctx context.Context, investmentID string) ([]models.Distribution, error)

	// WithTx runs fn inside a transaction. Every change made through the Store
	// handed to fn is discarded when fn returns an error or ctx is done.
	WithTx(ctx context.Context, fn func(Store) error) error
}

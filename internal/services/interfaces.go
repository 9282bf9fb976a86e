package services

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"tokenvest/internal/models"
	"tokenvest/internal/repository"
)

// UserServicer defines the contract for user-related business logic.
type UserServicer interface {
	CreateUser(username, password string) (*models.User, error)
	EnsureAdmin(username, password string) (*models.User, error)
	GetUserByUsername(username string) (*models.User, error)
	GetUserByID(id string) (*models.User, error)
	VerifyPassword(user *models.User, password string) bool
	AttemptLogin(username, password string) (*models.User, error)
}

// AuditServicer defines the contract for audit logging.
type AuditServicer interface {
	Log(userID, action, resourceType, resourceID, ipAddress string, changes map[string]interface{})
}

// InvestmentInput carries the fields of a new listing. AvailableTokens
// defaults to TotalTokens and IsActive to true.
type InvestmentInput struct {
	Name            string
	Description     string
	Type            models.InvestmentType
	Category        string
	Location        string
	ExpectedROI     decimal.Decimal
	PricePerToken   decimal.Decimal
	TotalTokens     int64
	AvailableTokens *int64
	ImageURL        string
	Currency        string
	IsActive        *bool
}

// InvestmentPatch is a partial update. Nil fields are left unchanged.
// TotalTokens is accepted only so a change attempt can be rejected.
type InvestmentPatch struct {
	Name            *string
	Description     *string
	Type            *models.InvestmentType
	Category        *string
	Location        *string
	ExpectedROI     *decimal.Decimal
	PricePerToken   *decimal.Decimal
	TotalTokens     *int64
	AvailableTokens *int64
	ImageURL        *string
	Currency        *string
	IsActive        *bool
}

// LedgerTx is the view of the ledger inside Atomically. Everything done
// through it commits or rolls back together.
type LedgerTx interface {
	// ReserveTokens takes quantity tokens out of the investment's available
	// supply and returns the unit price read under the same lock.
	ReserveTokens(ctx context.Context, investmentID string, quantity int64) (decimal.Decimal, error)
	AppendPurchase(ctx context.Context, token *models.Token) error
}

// InventoryLedger owns the available supply of every investment.
type InventoryLedger interface {
	GetInvestment(ctx context.Context, id string) (*models.Investment, error)
	ListInvestments(ctx context.Context, filter repository.InvestmentFilter) ([]models.Investment, int64, error)
	ReserveTokens(ctx context.Context, investmentID string, quantity int64) (decimal.Decimal, error)
	Atomically(ctx context.Context, fn func(LedgerTx) error) error
	FindPurchase(ctx context.Context, id string) (*models.Token, error)

	CreateInvestment(ctx context.Context, in InvestmentInput) (*models.Investment, error)
	UpdateInvestment(ctx context.Context, id string, patch InvestmentPatch) (*models.Investment, error)
	DeleteInvestment(ctx context.Context, id string) error
}

// PurchaseServicer turns a buy request into a committed purchase record.
type PurchaseServicer interface {
	Purchase(ctx context.Context, userID, investmentID string, quantity int64) (*models.Token, error)
	// PurchaseOnce is Purchase guarded by a client idempotency key. replayed
	// is true when the record comes from an earlier request with the same key.
	PurchaseOnce(ctx context.Context, key, userID, investmentID string, quantity int64) (token *models.Token, replayed bool, err error)
}

// Holding aggregates a user's purchase records for one investment.
type Holding struct {
	InvestmentID string                `json:"investmentId"`
	Name         string                `json:"name"`
	Type         models.InvestmentType `json:"type"`
	Category     string                `json:"category"`
	Tokens       int64                 `json:"tokens"`
	CostBasis    decimal.Decimal       `json:"costBasis"`
	CurrentPrice decimal.Decimal       `json:"currentPrice"`
	MarketValue  decimal.Decimal       `json:"marketValue"`
}

// PortfolioSummary contains the aggregated view of a user's purchases.
// TotalValue is the cost basis; MarketValue marks holdings to the current
// listing price.
type PortfolioSummary struct {
	TotalValue  decimal.Decimal `json:"totalValue"`
	MarketValue decimal.Decimal `json:"marketValue"`
	TokenCount  int64           `json:"tokenCount"`
	Holdings    []Holding       `json:"holdings"`
}

// PortfolioServicer is the read model over purchase records.
type PortfolioServicer interface {
	PortfolioOf(ctx context.Context, userID string) ([]models.Token, error)
	Summary(ctx context.Context, userID string) (*PortfolioSummary, error)
}

// DistributionServicer records and lists payouts per investment.
type DistributionServicer interface {
	RecordDistribution(ctx context.Context, investmentID string, amount decimal.Decimal, date time.Time) (*models.Distribution, error)
	ListDistributions(ctx context.Context, investmentID string) ([]models.Distribution, error)
}

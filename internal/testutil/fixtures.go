package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"

	"tokenvest/internal/models"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// TestPassword is the plain-text password of every fixture user.
const TestPassword = "password123"

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestUser creates an investor with a hashed password and unique username.
func CreateTestUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	return CreateTestUserWithRole(t, db, fmt.Sprintf("user%d", nextID()), models.RoleInvestor)
}

// CreateTestAdmin creates an admin user.
func CreateTestAdmin(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	return CreateTestUserWithRole(t, db, fmt.Sprintf("admin%d", nextID()), models.RoleAdmin)
}

// CreateTestUserWithRole creates a user with the given username and role.
func CreateTestUserWithRole(t *testing.T, db *gorm.DB, username string, role models.Role) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(TestPassword), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &models.User{
		Username: username,
		Password: string(hash),
		Role:     role,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// NewTestInvestment returns an unsaved, active real-estate listing priced at
// 10.00 per token with all 100 tokens available. Callers tweak it through opts.
func NewTestInvestment(opts ...func(*models.Investment)) *models.Investment {
	inv := &models.Investment{
		Name:            fmt.Sprintf("Listing %d", nextID()),
		Description:     "A test listing",
		Type:            models.InvestmentTypeRealEstate,
		Category:        "mixed_use",
		Location:        "Austin, TX",
		ExpectedROI:     decimal.RequireFromString("7.50"),
		PricePerToken:   decimal.RequireFromString("10.00"),
		TotalTokens:     100,
		AvailableTokens: 100,
		Currency:        "USD",
		IsActive:        true,
	}
	for _, opt := range opts {
		opt(inv)
	}
	return inv
}

// CreateTestInvestment persists NewTestInvestment(opts...).
func CreateTestInvestment(t *testing.T, db *gorm.DB, opts ...func(*models.Investment)) *models.Investment {
	t.Helper()

	inv := NewTestInvestment(opts...)
	if err := db.Create(inv).Error; err != nil {
		t.Fatalf("failed to create test investment: %v", err)
	}
	return inv
}

// WithSupply sets total and available tokens.
func WithSupply(total, available int64) func(*models.Investment) {
	return func(inv *models.Investment) {
		inv.TotalTokens = total
		inv.AvailableTokens = available
	}
}

// WithPrice sets the price per token.
func WithPrice(price string) func(*models.Investment) {
	return func(inv *models.Investment) {
		inv.PricePerToken = decimal.RequireFromString(price)
	}
}

// Inactive marks the listing as closed for purchases.
func Inactive() func(*models.Investment) {
	return func(inv *models.Investment) {
		inv.IsActive = false
	}
}

// CreateTestToken inserts a purchase record directly, bypassing the ledger.
func CreateTestToken(t *testing.T, db *gorm.DB, userID, investmentID string, amount int64, price string) *models.Token {
	t.Helper()

	token := &models.Token{
		UserID:        userID,
		InvestmentID:  investmentID,
		Amount:        amount,
		PurchasePrice: decimal.RequireFromString(price),
	}
	if err := db.Create(token).Error; err != nil {
		t.Fatalf("failed to create test token: %v", err)
	}
	return token
}

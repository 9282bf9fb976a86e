package handlers

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"tokenvest/internal/config"
	"tokenvest/internal/middleware"
	"tokenvest/internal/models"
	"tokenvest/internal/repository"
	"tokenvest/internal/services"
	"tokenvest/internal/validator"
)

const (
	testUserID       = "0190a1b2-0000-7000-8000-00000000000a"
	testInvestmentID = "0190a1b2-0000-7000-8000-0000000000b1"
)

// --- mock services ---

type mockUserService struct {
	createUserFn   func(username, password string) (*models.User, error)
	getUserByIDFn  func(id string) (*models.User, error)
	attemptLoginFn func(username, password string) (*models.User, error)
}

func (m *mockUserService) CreateUser(username, password string) (*models.User, error) {
	if m.createUserFn != nil {
		return m.createUserFn(username, password)
	}
	return &models.User{}, nil
}

func (m *mockUserService) EnsureAdmin(username, _ string) (*models.User, error) {
	return &models.User{Username: username, Role: models.RoleAdmin}, nil
}

func (m *mockUserService) GetUserByUsername(username string) (*models.User, error) {
	return &models.User{Username: username}, nil
}

func (m *mockUserService) GetUserByID(id string) (*models.User, error) {
	if m.getUserByIDFn != nil {
		return m.getUserByIDFn(id)
	}
	return &models.User{Base: models.Base{ID: id}}, nil
}

func (m *mockUserService) VerifyPassword(_ *models.User, _ string) bool { return true }

func (m *mockUserService) AttemptLogin(username, password string) (*models.User, error) {
	if m.attemptLoginFn != nil {
		return m.attemptLoginFn(username, password)
	}
	return &models.User{}, nil
}

type auditEntry struct {
	UserID, Action, ResourceType, ResourceID string
	Changes                                  map[string]interface{}
}

type mockAuditService struct {
	mu      sync.Mutex
	entries []auditEntry
}

func (m *mockAuditService) Log(userID, action, resourceType, resourceID, _ string, changes map[string]interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = append(m.entries, auditEntry{userID, action, resourceType, resourceID, changes})
}

func (m *mockAuditService) actions() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, 0, len(m.entries))
	for _, e := range m.entries {
		out = append(out, e.Action)
	}
	return out
}

type mockLedger struct {
	getInvestmentFn    func(ctx context.Context, id string) (*models.Investment, error)
	listInvestmentsFn  func(ctx context.Context, filter repository.InvestmentFilter) ([]models.Investment, int64, error)
	createInvestmentFn func(ctx context.Context, in services.InvestmentInput) (*models.Investment, error)
	updateInvestmentFn func(ctx context.Context, id string, patch services.InvestmentPatch) (*models.Investment, error)
	deleteInvestmentFn func(ctx context.Context, id string) error
}

func (m *mockLedger) GetInvestment(ctx context.Context, id string) (*models.Investment, error) {
	if m.getInvestmentFn != nil {
		return m.getInvestmentFn(ctx, id)
	}
	return &models.Investment{Base: models.Base{ID: id}}, nil
}

func (m *mockLedger) ListInvestments(ctx context.Context, filter repository.InvestmentFilter) ([]models.Investment, int64, error) {
	if m.listInvestmentsFn != nil {
		return m.listInvestmentsFn(ctx, filter)
	}
	return []models.Investment{}, 0, nil
}

func (m *mockLedger) ReserveTokens(_ context.Context, _ string, _ int64) (decimal.Decimal, error) {
	return decimal.Zero, nil
}

func (m *mockLedger) Atomically(_ context.Context, _ func(services.LedgerTx) error) error {
	return nil
}

func (m *mockLedger) FindPurchase(_ context.Context, id string) (*models.Token, error) {
	return &models.Token{ID: id}, nil
}

func (m *mockLedger) CreateInvestment(ctx context.Context, in services.InvestmentInput) (*models.Investment, error) {
	if m.createInvestmentFn != nil {
		return m.createInvestmentFn(ctx, in)
	}
	return &models.Investment{Name: in.Name}, nil
}

func (m *mockLedger) UpdateInvestment(ctx context.Context, id string, patch services.InvestmentPatch) (*models.Investment, error) {
	if m.updateInvestmentFn != nil {
		return m.updateInvestmentFn(ctx, id, patch)
	}
	return &models.Investment{Base: models.Base{ID: id}}, nil
}

func (m *mockLedger) DeleteInvestment(ctx context.Context, id string) error {
	if m.deleteInvestmentFn != nil {
		return m.deleteInvestmentFn(ctx, id)
	}
	return nil
}

type mockDistributionService struct {
	recordFn func(ctx context.Context, investmentID string, amount decimal.Decimal, date time.Time) (*models.Distribution, error)
	listFn   func(ctx context.Context, investmentID string) ([]models.Distribution, error)
}

func (m *mockDistributionService) RecordDistribution(ctx context.Context, investmentID string, amount decimal.Decimal, date time.Time) (*models.Distribution, error) {
	if m.recordFn != nil {
		return m.recordFn(ctx, investmentID, amount, date)
	}
	return &models.Distribution{InvestmentID: investmentID, Amount: amount, DistributionDate: date}, nil
}

func (m *mockDistributionService) ListDistributions(ctx context.Context, investmentID string) ([]models.Distribution, error) {
	if m.listFn != nil {
		return m.listFn(ctx, investmentID)
	}
	return []models.Distribution{}, nil
}

type mockPurchaseService struct {
	purchaseOnceFn func(ctx context.Context, key, userID, investmentID string, quantity int64) (*models.Token, bool, error)
	calls          int
}

func (m *mockPurchaseService) Purchase(ctx context.Context, userID, investmentID string, quantity int64) (*models.Token, error) {
	token, _, err := m.PurchaseOnce(ctx, "", userID, investmentID, quantity)
	return token, err
}

func (m *mockPurchaseService) PurchaseOnce(ctx context.Context, key, userID, investmentID string, quantity int64) (*models.Token, bool, error) {
	m.calls++
	if m.purchaseOnceFn != nil {
		return m.purchaseOnceFn(ctx, key, userID, investmentID, quantity)
	}
	return &models.Token{InvestmentID: investmentID, UserID: userID, Amount: quantity}, false, nil
}

type mockPortfolioService struct {
	portfolioOfFn func(ctx context.Context, userID string) ([]models.Token, error)
	summaryFn     func(ctx context.Context, userID string) (*services.PortfolioSummary, error)
}

func (m *mockPortfolioService) PortfolioOf(ctx context.Context, userID string) ([]models.Token, error) {
	if m.portfolioOfFn != nil {
		return m.portfolioOfFn(ctx, userID)
	}
	return []models.Token{}, nil
}

func (m *mockPortfolioService) Summary(ctx context.Context, userID string) (*services.PortfolioSummary, error) {
	if m.summaryFn != nil {
		return m.summaryFn(ctx, userID)
	}
	return &services.PortfolioSummary{Holdings: []services.Holding{}}, nil
}

// --- test helpers ---

func init() {
	gin.SetMode(gin.TestMode)
	validator.Register()
	config.Set(&config.Config{JWTSecret: "handler-test-secret", JWTExpirationDur: time.Hour})
}

func injectUserID(uid string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.ContextUserID, uid)
		c.Next()
	}
}

func doRequest(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	return doRequestWithHeaders(r, method, path, body, nil)
}

func doRequestWithHeaders(r *gin.Engine, method, path, body string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func parseJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON response: %v\nbody: %s", err, rec.Body.String())
	}
	return result
}

func parseJSONArray(t *testing.T, rec *httptest.ResponseRecorder) []interface{} {
	t.Helper()
	var result []interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON array: %v\nbody: %s", err, rec.Body.String())
	}
	return result
}

func assertErrorCode(t *testing.T, result map[string]interface{}, code string) {
	t.Helper()
	errObj, ok := result["error"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected error object in response, got: %v", result)
	}
	if errObj["code"] != code {
		t.Errorf("expected error code %q, got %q", code, errObj["code"])
	}
}

func assertErrorKind(t *testing.T, result map[string]interface{}, kind string) {
	t.Helper()
	errObj, ok := result["error"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected error object in response, got: %v", result)
	}
	if errObj["kind"] != kind {
		t.Errorf("expected error kind %q, got %v", kind, errObj["kind"])
	}
}

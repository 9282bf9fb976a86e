package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/cucumber/godog"
	"github.com/shopspring/decimal"

	apperrors "tokenvest/internal/errors"
	"tokenvest/internal/idempotency"
	"tokenvest/internal/models"
	"tokenvest/internal/repository"
	"tokenvest/internal/testutil"
)

type purchaseFeatureContext struct {
	store     *repository.MemoryStore
	ledger    InventoryLedger
	purchases PurchaseServicer
	portfolio PortfolioServicer

	investment *models.Investment
	token      *models.Token
	err        error
	results    []error
}

func (c *purchaseFeatureContext) reset() {
	c.store = repository.NewMemoryStore()
	c.ledger = NewInventoryLedger(c.store)
	c.purchases = NewPurchaseService(c.ledger, idempotency.NewMemoryStore())
	c.portfolio = NewPortfolioService(c.store)
	c.investment = nil
	c.token = nil
	c.err = nil
	c.results = nil
}

func (c *purchaseFeatureContext) anInvestment(state string, available, total int, price string) error {
	inv := testutil.NewTestInvestment(testutil.WithSupply(int64(total), int64(available)), testutil.WithPrice(price))
	inv.IsActive = state == "active"
	if err := c.store.CreateInvestment(context.Background(), inv); err != nil {
		return err
	}
	c.investment = inv
	return nil
}

func (c *purchaseFeatureContext) theInvestorBuys(amount int) error {
	c.token, c.err = c.purchases.Purchase(context.Background(), "investor", c.investment.ID, int64(amount))
	return nil
}

func (c *purchaseFeatureContext) twoInvestorsConcurrentlyBuy(amount int) error {
	var wg sync.WaitGroup
	var mu sync.Mutex
	for _, user := range []string{"investor-a", "investor-b"} {
		wg.Add(1)
		go func(user string) {
			defer wg.Done()
			_, err := c.purchases.Purchase(context.Background(), user, c.investment.ID, int64(amount))
			mu.Lock()
			c.results = append(c.results, err)
			mu.Unlock()
		}(user)
	}
	wg.Wait()
	return nil
}

func (c *purchaseFeatureContext) thePriceChangesTo(price string) error {
	p, err := decimal.NewFromString(price)
	if err != nil {
		return err
	}
	_, err = c.ledger.UpdateInvestment(context.Background(), c.investment.ID, InvestmentPatch{PricePerToken: &p})
	return err
}

func (c *purchaseFeatureContext) thePurchaseSucceeds(amount int, price string) error {
	if c.err != nil {
		return fmt.Errorf("expected success but got error: %v", c.err)
	}
	if c.token.Amount != int64(amount) {
		return fmt.Errorf("expected amount %d, got %d", amount, c.token.Amount)
	}
	if !c.token.PurchasePrice.Equal(decimal.RequireFromString(price)) {
		return fmt.Errorf("expected price %s, got %s", price, c.token.PurchasePrice)
	}
	return nil
}

func kindOf(err error) string {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return ""
}

func (c *purchaseFeatureContext) thePurchaseFailsWithKind(kind string) error {
	if c.err == nil {
		return errors.New("expected purchase to fail but it succeeded")
	}
	if got := kindOf(c.err); got != kind {
		return fmt.Errorf("expected kind %s, got %q (%v)", kind, got, c.err)
	}
	return nil
}

func (c *purchaseFeatureContext) exactlyOneSucceeds(successes, failures int, kind string) error {
	var ok, failed int
	for _, err := range c.results {
		switch {
		case err == nil:
			ok++
		case kindOf(err) == kind:
			failed++
		default:
			return fmt.Errorf("unexpected error: %v", err)
		}
	}
	if ok != successes || failed != failures {
		return fmt.Errorf("expected %d successes and %d failures, got %d and %d", successes, failures, ok, failed)
	}
	return nil
}

func (c *purchaseFeatureContext) theInvestmentHasAvailable(n int) error {
	inv, err := c.store.FindInvestment(context.Background(), c.investment.ID)
	if err != nil {
		return err
	}
	if inv.AvailableTokens != int64(n) {
		return fmt.Errorf("expected %d available, got %d", n, inv.AvailableTokens)
	}
	sold, err := c.store.SumTokenAmounts(context.Background(), inv.ID)
	if err != nil {
		return err
	}
	if c.investment.TotalTokens-c.investment.AvailableTokens+sold != inv.TotalTokens-inv.AvailableTokens {
		return fmt.Errorf("sold %d tokens but supply moved by %d", sold, c.investment.AvailableTokens-inv.AvailableTokens)
	}
	return nil
}

func (c *purchaseFeatureContext) portfolioWorth(price, basis string) error {
	records, err := c.portfolio.PortfolioOf(context.Background(), "investor")
	if err != nil {
		return err
	}
	want := decimal.RequireFromString(price)
	got := TotalValue(records)
	if basis == "market" {
		got = MarketValue(records)
	}
	if !got.Equal(want) {
		return fmt.Errorf("expected %s value %s, got %s", basis, want, got)
	}
	return nil
}

func InitializePurchaseScenario(ctx *godog.ScenarioContext) {
	tc := &purchaseFeatureContext{}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		tc.reset()
		return ctx, nil
	})

	// Given steps
	ctx.Step(`^an (active|inactive) investment with (\d+) of (\d+) tokens available at (\d+\.\d+)$`, tc.anInvestment)

	// When steps
	ctx.Step(`^the investor buys (-?\d+) tokens$`, tc.theInvestorBuys)
	ctx.Step(`^two investors concurrently buy (\d+) tokens each$`, tc.twoInvestorsConcurrentlyBuy)
	ctx.Step(`^the price changes to (\d+\.\d+)$`, tc.thePriceChangesTo)

	// Then steps
	ctx.Step(`^the purchase succeeds with (\d+) tokens at (\d+\.\d+)$`, tc.thePurchaseSucceeds)
	ctx.Step(`^the purchase fails with kind "([^"]*)"$`, tc.thePurchaseFailsWithKind)
	ctx.Step(`^exactly (\d+) purchase succeeds and (\d+) fails with kind "([^"]*)"$`, tc.exactlyOneSucceeds)
	ctx.Step(`^the investment has (\d+) tokens available$`, tc.theInvestmentHasAvailable)
	ctx.Step(`^the investor's portfolio is worth (\d+\.\d+) at (cost|market)$`, tc.portfolioWorth)
}

func TestPurchaseFeatures(t *testing.T) {
	suite := godog.TestSuite{
		ScenarioInitializer: InitializePurchaseScenario,
		Options: &godog.Options{
			Format:   "pretty",
			Paths:    []string{"../../features/purchase.feature"},
			TestingT: t,
		},
	}

	if suite.Run() != 0 {
		t.Fatal("non-zero status returned, failed to run feature tests")
	}
}

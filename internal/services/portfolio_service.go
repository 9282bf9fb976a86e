package services

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"

	apperrors "tokenvest/internal/errors"
	"tokenvest/internal/models"
	"tokenvest/internal/money"
	"tokenvest/internal/repository"
)

// portfolioService is the read model over purchase records.
type portfolioService struct {
	store repository.Store
}

// NewPortfolioService creates a new PortfolioServicer.
func NewPortfolioService(store repository.Store) PortfolioServicer {
	return &portfolioService{store: store}
}

// PortfolioOf returns every purchase record of userID, newest first, with the
// investment joined. It never fails for a user with no purchases.
func (s *portfolioService) PortfolioOf(ctx context.Context, userID string) ([]models.Token, error) {
	tokens, err := s.store.ListTokensByUser(ctx, userID)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if tokens == nil {
		tokens = []models.Token{}
	}
	return tokens, nil
}

// Summary aggregates the portfolio per investment, largest cost basis first.
func (s *portfolioService) Summary(ctx context.Context, userID string) (*PortfolioSummary, error) {
	tokens, err := s.PortfolioOf(ctx, userID)
	if err != nil {
		return nil, err
	}

	byInvestment := make(map[string]*Holding)
	var order []string
	for _, t := range tokens {
		h, ok := byInvestment[t.InvestmentID]
		if !ok {
			h = &Holding{InvestmentID: t.InvestmentID}
			if t.Investment != nil {
				h.Name = t.Investment.Name
				h.Type = t.Investment.Type
				h.Category = t.Investment.Category
				h.CurrentPrice = t.Investment.PricePerToken
			}
			byInvestment[t.InvestmentID] = h
			order = append(order, t.InvestmentID)
		}
		h.Tokens += t.Amount
		h.CostBasis = h.CostBasis.Add(t.CostBasis())
	}

	holdings := make([]Holding, 0, len(order))
	for _, id := range order {
		h := byInvestment[id]
		h.MarketValue = money.Times(h.CurrentPrice, h.Tokens)
		holdings = append(holdings, *h)
	}
	sort.SliceStable(holdings, func(i, j int) bool {
		return holdings[i].CostBasis.GreaterThan(holdings[j].CostBasis)
	})

	return &PortfolioSummary{
		TotalValue:  TotalValue(tokens),
		MarketValue: MarketValue(tokens),
		TokenCount:  TokensHeld(tokens),
		Holdings:    holdings,
	}, nil
}

// TotalValue is the cost basis of records: Σ amount × purchase price.
func TotalValue(records []models.Token) decimal.Decimal {
	costs := make([]decimal.Decimal, len(records))
	for i := range records {
		costs[i] = records[i].CostBasis()
	}
	return money.Sum(costs...)
}

// HoldingsFor returns the records that belong to investmentID, in their
// original order.
func HoldingsFor(records []models.Token, investmentID string) []models.Token {
	out := []models.Token{}
	for _, r := range records {
		if r.InvestmentID == investmentID {
			out = append(out, r)
		}
	}
	return out
}

// TokensHeld is the number of tokens across records.
func TokensHeld(records []models.Token) int64 {
	var n int64
	for _, r := range records {
		n += r.Amount
	}
	return n
}

// MarketValue marks records to the current price of the joined investment.
// Records without a joined investment are valued at their purchase price.
func MarketValue(records []models.Token) decimal.Decimal {
	total := decimal.Zero
	for _, r := range records {
		price := r.PurchasePrice
		if r.Investment != nil {
			price = r.Investment.PricePerToken
		}
		total = total.Add(money.Times(price, r.Amount))
	}
	return total
}

package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	apperrors "tokenvest/internal/errors"
	"tokenvest/internal/logger"
	"tokenvest/internal/models"
	"tokenvest/internal/money"
	"tokenvest/internal/repository"
	"tokenvest/internal/uuid"
)

// maxExpectedROI is the exclusive upper bound of a decimal(5,2) column.
var maxExpectedROI = decimal.NewFromInt(1000)

// ledgerService keeps investments and their available supply.
type ledgerService struct {
	store repository.Store
}

// NewInventoryLedger creates a new InventoryLedger over store.
func NewInventoryLedger(store repository.Store) InventoryLedger {
	return &ledgerService{store: store}
}

// GetInvestment returns one listing. Malformed ids are reported as not found.
func (s *ledgerService) GetInvestment(ctx context.Context, id string) (*models.Investment, error) {
	if !uuid.IsValid(id) {
		return nil, apperrors.ErrInvestmentNotFound
	}
	inv, err := s.store.FindInvestment(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.ErrInvestmentNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return inv, nil
}

// ListInvestments returns listings newest first.
func (s *ledgerService) ListInvestments(ctx context.Context, filter repository.InvestmentFilter) ([]models.Investment, int64, error) {
	if filter.Type != "" && !models.ValidInvestmentType(filter.Type) {
		return nil, 0, apperrors.WithMessage(apperrors.ErrInvalidInput, "unknown investment type")
	}
	filter.Page.Defaults()

	investments, total, err := s.store.ListInvestments(ctx, filter)
	if err != nil {
		return nil, 0, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if investments == nil {
		investments = []models.Investment{}
	}
	return investments, total, nil
}

// ReserveTokens reserves supply in a transaction of its own.
func (s *ledgerService) ReserveTokens(ctx context.Context, investmentID string, quantity int64) (decimal.Decimal, error) {
	var price decimal.Decimal
	err := s.Atomically(ctx, func(tx LedgerTx) error {
		p, err := tx.ReserveTokens(ctx, investmentID, quantity)
		price = p
		return err
	})
	if err != nil {
		return decimal.Zero, err
	}
	return price, nil
}

// Atomically runs fn in one store transaction. Failures that are not already
// classified become PersistenceFailure.
func (s *ledgerService) Atomically(ctx context.Context, fn func(LedgerTx) error) error {
	err := s.store.WithTx(ctx, func(store repository.Store) error {
		return fn(&ledgerTx{store: store})
	})
	if err == nil {
		return nil
	}
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return apperrors.Wrap(apperrors.ErrPersistenceFailure, err)
}

// FindPurchase returns a purchase record with its investment joined.
func (s *ledgerService) FindPurchase(ctx context.Context, id string) (*models.Token, error) {
	token, err := s.store.FindToken(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return token, nil
}

type ledgerTx struct {
	store repository.Store
}

func (t *ledgerTx) ReserveTokens(ctx context.Context, investmentID string, quantity int64) (decimal.Decimal, error) {
	if quantity <= 0 {
		return decimal.Zero, apperrors.ErrInvalidQuantity
	}
	if !uuid.IsValid(investmentID) {
		return decimal.Zero, apperrors.ErrInvestmentNotFound
	}

	reserved, err := t.store.DecrementAvailable(ctx, investmentID, quantity)
	if err != nil {
		return decimal.Zero, apperrors.Wrap(apperrors.ErrPersistenceFailure, err)
	}

	// Read under the lock taken by the decrement.
	inv, err := t.store.FindInvestment(ctx, investmentID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return decimal.Zero, apperrors.ErrInvestmentNotFound
		}
		return decimal.Zero, apperrors.Wrap(apperrors.ErrPersistenceFailure, err)
	}
	if reserved {
		return inv.PricePerToken, nil
	}
	if !inv.IsActive {
		return decimal.Zero, apperrors.ErrInvestmentInactive
	}
	return decimal.Zero, apperrors.WithMessage(apperrors.ErrInsufficientSupply,
		fmt.Sprintf("Not enough tokens available: requested %d, available %d", quantity, inv.AvailableTokens))
}

func (t *ledgerTx) AppendPurchase(ctx context.Context, token *models.Token) error {
	if err := t.store.CreateToken(ctx, token); err != nil {
		return apperrors.Wrap(apperrors.ErrPersistenceFailure, err)
	}
	return nil
}

// CreateInvestment validates and stores a new listing.
func (s *ledgerService) CreateInvestment(ctx context.Context, in InvestmentInput) (*models.Investment, error) {
	inv := &models.Investment{
		Name:          strings.TrimSpace(in.Name),
		Description:   strings.TrimSpace(in.Description),
		Type:          in.Type,
		Category:      in.Category,
		Location:      strings.TrimSpace(in.Location),
		ExpectedROI:   in.ExpectedROI,
		PricePerToken: in.PricePerToken,
		TotalTokens:   in.TotalTokens,
		ImageURL:      in.ImageURL,
		Currency:      strings.ToUpper(in.Currency),
		IsActive:      true,
	}
	inv.AvailableTokens = in.TotalTokens
	if in.AvailableTokens != nil {
		inv.AvailableTokens = *in.AvailableTokens
	}
	if in.IsActive != nil {
		inv.IsActive = *in.IsActive
	}
	if inv.Currency == "" {
		inv.Currency = "USD"
	}

	if err := validateInvestment(inv); err != nil {
		return nil, err
	}

	if err := s.store.CreateInvestment(ctx, inv); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	logger.Get().Infow("investment created", "investment_id", inv.ID, "total_tokens", inv.TotalTokens)
	return inv, nil
}

// UpdateInvestment applies patch to the locked row inside a transaction so
// the availability bound is checked against current supply. Supply is only
// written when the patch sets it.
func (s *ledgerService) UpdateInvestment(ctx context.Context, id string, patch InvestmentPatch) (*models.Investment, error) {
	if !uuid.IsValid(id) {
		return nil, apperrors.ErrInvestmentNotFound
	}

	var updated *models.Investment
	err := s.store.WithTx(ctx, func(store repository.Store) error {
		inv, err := store.FindInvestmentForUpdate(ctx, id)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return apperrors.ErrInvestmentNotFound
			}
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		if patch.TotalTokens != nil && *patch.TotalTokens != inv.TotalTokens {
			return apperrors.WithMessage(apperrors.ErrInvalidInput, "totalTokens cannot be changed after creation")
		}
		applyPatch(inv, patch)
		if err := validateInvestment(inv); err != nil {
			return err
		}

		if err := store.SaveInvestment(ctx, inv); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return apperrors.ErrInvestmentNotFound
			}
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if patch.AvailableTokens != nil {
			if err := store.SetAvailableTokens(ctx, id, *patch.AvailableTokens); err != nil {
				return apperrors.Wrap(apperrors.ErrInternalServer, err)
			}
			inv.AvailableTokens = *patch.AvailableTokens
		}
		updated = inv
		return nil
	})
	if err != nil {
		return nil, asAppError(err)
	}

	if patch.AvailableTokens != nil {
		logger.Get().Warnw("available tokens overwritten by admin",
			"investment_id", id, "available_tokens", updated.AvailableTokens)
	}
	return updated, nil
}

// DeleteInvestment removes a listing and its distributions. Listings with
// purchase records cannot be deleted; deactivate them instead.
func (s *ledgerService) DeleteInvestment(ctx context.Context, id string) error {
	if !uuid.IsValid(id) {
		return apperrors.ErrInvestmentNotFound
	}

	err := s.store.WithTx(ctx, func(store repository.Store) error {
		return store.DeleteInvestment(ctx, id)
	})
	switch {
	case err == nil:
		logger.Get().Infow("investment deleted", "investment_id", id)
		return nil
	case errors.Is(err, repository.ErrNotFound):
		return apperrors.ErrInvestmentNotFound
	case errors.Is(err, repository.ErrHasDependents):
		return apperrors.ErrInvestmentHasPurchases
	default:
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
}

func applyPatch(inv *models.Investment, p InvestmentPatch) {
	if p.Name != nil {
		inv.Name = strings.TrimSpace(*p.Name)
	}
	if p.Description != nil {
		inv.Description = strings.TrimSpace(*p.Description)
	}
	if p.Type != nil {
		inv.Type = *p.Type
	}
	if p.Category != nil {
		inv.Category = *p.Category
	}
	if p.Location != nil {
		inv.Location = strings.TrimSpace(*p.Location)
	}
	if p.ExpectedROI != nil {
		inv.ExpectedROI = *p.ExpectedROI
	}
	if p.PricePerToken != nil {
		inv.PricePerToken = *p.PricePerToken
	}
	if p.AvailableTokens != nil {
		inv.AvailableTokens = *p.AvailableTokens
	}
	if p.ImageURL != nil {
		inv.ImageURL = *p.ImageURL
	}
	if p.Currency != nil {
		inv.Currency = strings.ToUpper(*p.Currency)
	}
	if p.IsActive != nil {
		inv.IsActive = *p.IsActive
	}
}

func validateInvestment(inv *models.Investment) error {
	switch {
	case inv.Name == "":
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "name is required")
	case !models.ValidInvestmentType(string(inv.Type)):
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "type must be real_estate or business")
	case !models.CategoryBelongsTo(inv.Type, inv.Category):
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "category "+inv.Category+" is not valid for type "+string(inv.Type))
	case !inv.PricePerToken.IsPositive():
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "pricePerToken must be greater than zero")
	case !money.FitsScale(inv.PricePerToken):
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "pricePerToken has more than two decimal places")
	case inv.ExpectedROI.IsNegative():
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "expectedRoi cannot be negative")
	case inv.ExpectedROI.GreaterThanOrEqual(maxExpectedROI):
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "expectedRoi must be below 1000")
	case inv.TotalTokens <= 0:
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "totalTokens must be greater than zero")
	case inv.AvailableTokens < 0 || inv.AvailableTokens > inv.TotalTokens:
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "availableTokens must be between 0 and totalTokens")
	}
	return nil
}

func asAppError(err error) error {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return apperrors.Wrap(apperrors.ErrInternalServer, err)
}

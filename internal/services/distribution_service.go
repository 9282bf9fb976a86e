package services

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	apperrors "tokenvest/internal/errors"
	"tokenvest/internal/logger"
	"tokenvest/internal/models"
	"tokenvest/internal/money"
	"tokenvest/internal/repository"
	"tokenvest/internal/uuid"
)

// distributionService records payouts made to holders of an investment.
type distributionService struct {
	store repository.Store
}

// NewDistributionService creates a new DistributionServicer.
func NewDistributionService(store repository.Store) DistributionServicer {
	return &distributionService{store: store}
}

// RecordDistribution stores a payout. A zero date means today.
func (s *distributionService) RecordDistribution(ctx context.Context, investmentID string, amount decimal.Decimal, date time.Time) (*models.Distribution, error) {
	if !money.Positive(amount) {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must be greater than zero")
	}
	if !money.FitsScale(amount) {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "amount has more than two decimal places")
	}
	if !uuid.IsValid(investmentID) {
		return nil, apperrors.ErrInvestmentNotFound
	}
	if date.IsZero() {
		date = time.Now().UTC().Truncate(24 * time.Hour)
	}

	d := &models.Distribution{
		InvestmentID:     investmentID,
		Amount:           amount,
		DistributionDate: date,
	}
	err := s.store.WithTx(ctx, func(store repository.Store) error {
		if _, err := store.FindInvestment(ctx, investmentID); err != nil {
			return err
		}
		return store.CreateDistribution(ctx, d)
	})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.ErrInvestmentNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	logger.Get().Infow("distribution recorded", "investment_id", investmentID, "amount", money.Format(amount))
	return d, nil
}

// ListDistributions returns payouts newest first.
func (s *distributionService) ListDistributions(ctx context.Context, investmentID string) ([]models.Distribution, error) {
	if !uuid.IsValid(investmentID) {
		return nil, apperrors.ErrInvestmentNotFound
	}
	if _, err := s.store.FindInvestment(ctx, investmentID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.ErrInvestmentNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	out, err := s.store.ListDistributions(ctx, investmentID)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if out == nil {
		out = []models.Distribution{}
	}
	return out, nil
}

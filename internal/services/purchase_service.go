package services

import (
	"context"
	"errors"

	apperrors "tokenvest/internal/errors"
	"tokenvest/internal/idempotency"
	"tokenvest/internal/logger"
	"tokenvest/internal/models"
)

const completeAttempts = 2

// purchaseService buys tokens through the inventory ledger.
type purchaseService struct {
	ledger InventoryLedger
	keys   idempotency.Store
}

// NewPurchaseService creates a new PurchaseServicer.
func NewPurchaseService(ledger InventoryLedger, keys idempotency.Store) PurchaseServicer {
	return &purchaseService{ledger: ledger, keys: keys}
}

// Purchase reserves quantity tokens and appends the purchase record in one
// transaction. On any error nothing is written. There are no retries: a
// PersistenceFailure is returned to the caller, who may retry.
func (s *purchaseService) Purchase(ctx context.Context, userID, investmentID string, quantity int64) (*models.Token, error) {
	if quantity <= 0 {
		return nil, apperrors.ErrInvalidQuantity
	}

	var token *models.Token
	err := s.ledger.Atomically(ctx, func(tx LedgerTx) error {
		price, err := tx.ReserveTokens(ctx, investmentID, quantity)
		if err != nil {
			return err
		}

		record := &models.Token{
			InvestmentID:  investmentID,
			UserID:        userID,
			Amount:        quantity,
			PurchasePrice: price,
		}
		if err := tx.AppendPurchase(ctx, record); err != nil {
			return err
		}
		token = record
		return nil
	})
	if err != nil {
		logPurchaseFailure(userID, investmentID, quantity, err)
		return nil, err
	}

	logger.Get().Infow("tokens purchased",
		"user_id", userID,
		"investment_id", investmentID,
		"token_id", token.ID,
		"amount", quantity,
		"purchase_price", token.PurchasePrice.String(),
	)
	return token, nil
}

// PurchaseOnce runs Purchase at most once per (user, key). An empty key
// behaves exactly like Purchase.
func (s *purchaseService) PurchaseOnce(ctx context.Context, key, userID, investmentID string, quantity int64) (*models.Token, bool, error) {
	if key == "" {
		token, err := s.Purchase(ctx, userID, investmentID, quantity)
		return token, false, err
	}
	if quantity <= 0 {
		return nil, false, apperrors.ErrInvalidQuantity
	}

	storeKey := idempotency.Key("purchase", userID, key)
	claim, err := s.keys.Claim(ctx, storeKey)
	if err != nil {
		logger.Get().Errorw("idempotency store unavailable", "error", err, "user_id", userID)
		return nil, false, apperrors.Wrap(apperrors.ErrPersistenceFailure, err)
	}

	switch claim.Status {
	case idempotency.InFlight:
		return nil, false, apperrors.ErrDuplicateRequest
	case idempotency.Completed:
		token, err := s.ledger.FindPurchase(ctx, claim.ResultID)
		if err != nil {
			return nil, false, err
		}
		logger.Get().Infow("purchase replayed", "user_id", userID, "token_id", token.ID)
		return token, true, nil
	}

	token, err := s.Purchase(ctx, userID, investmentID, quantity)
	if err != nil {
		// Release with a fresh context so a timed-out request still frees
		// its key.
		if relErr := s.keys.Release(context.WithoutCancel(ctx), storeKey); relErr != nil {
			logger.Get().Warnw("failed to release idempotency key", "error", relErr, "user_id", userID)
		}
		return nil, false, err
	}

	s.complete(context.WithoutCancel(ctx), storeKey, userID, token.ID)
	return token, false, nil
}

// complete records the purchase against its key, trying twice. If both
// attempts fail the key stays in flight until it expires and retries get
// DuplicateRequest.
func (s *purchaseService) complete(ctx context.Context, storeKey, userID, tokenID string) {
	var err error
	for attempt := 1; attempt <= completeAttempts; attempt++ {
		if err = s.keys.Complete(ctx, storeKey, tokenID); err == nil {
			return
		}
		logger.Get().Warnw("failed to record idempotency key",
			"error", err, "user_id", userID, "token_id", tokenID, "attempt", attempt)
	}
	logger.Get().Errorw("idempotency key left in flight", "error", err, "user_id", userID, "token_id", tokenID)
}

func logPurchaseFailure(userID, investmentID string, quantity int64, err error) {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) && appErr.Kind != apperrors.KindPersistenceFailure {
		logger.Get().Infow("purchase rejected",
			"user_id", userID,
			"investment_id", investmentID,
			"amount", quantity,
			"kind", appErr.Kind,
		)
		return
	}
	logger.Get().Errorw("purchase failed",
		"user_id", userID,
		"investment_id", investmentID,
		"amount", quantity,
		"error", err,
	)
}

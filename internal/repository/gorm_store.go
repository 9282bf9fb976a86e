package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"tokenvest/internal/models"
	"tokenvest/internal/pagination"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// investmentColumns are written by SaveInvestment. total_tokens and created_at
// never change after insert; available_tokens has its own writers.
var investmentColumns = []string{
	"name", "description", "type", "category", "location", "expected_roi",
	"price_per_token", "image_url", "currency", "is_active", "updated_at",
}

type gormStore struct {
	db *gorm.DB
}

// NewGormStore creates a Store backed by db.
func NewGormStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

func (s *gormStore) FindInvestment(ctx context.Context, id string) (*models.Investment, error) {
	var inv models.Investment
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&inv).Error; err != nil {
		return nil, translate(err)
	}
	return &inv, nil
}

func (s *gormStore) FindInvestmentForUpdate(ctx context.Context, id string) (*models.Investment, error) {
	var inv models.Investment
	err := s.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		First(&inv).Error
	if err != nil {
		return nil, translate(err)
	}
	return &inv, nil
}

func (s *gormStore) ListInvestments(ctx context.Context, filter InvestmentFilter) ([]models.Investment, int64, error) {
	query := s.db.WithContext(ctx).Model(&models.Investment{})
	if filter.Type != "" {
		query = query.Where("type = ?", filter.Type)
	}
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.MinROI != nil {
		query = query.Where("expected_roi >= ?", *filter.MinROI)
	}
	if filter.Active != nil {
		query = query.Where("is_active = ?", *filter.Active)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count investments: %w", err)
	}

	var investments []models.Investment
	err := query.Scopes(pagination.Paginate(filter.Page)).
		Order("created_at DESC, id DESC").
		Find(&investments).Error
	if err != nil {
		return nil, 0, fmt.Errorf("list investments: %w", err)
	}
	return investments, total, nil
}

func (s *gormStore) CreateInvestment(ctx context.Context, inv *models.Investment) error {
	if err := s.db.WithContext(ctx).Create(inv).Error; err != nil {
		return fmt.Errorf("create investment: %w", err)
	}
	return nil
}

func (s *gormStore) SaveInvestment(ctx context.Context, inv *models.Investment) error {
	inv.UpdatedAt = time.Now()
	res := s.db.WithContext(ctx).Model(inv).Select(investmentColumns).Updates(inv)
	if res.Error != nil {
		return fmt.Errorf("save investment: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *gormStore) SetAvailableTokens(ctx context.Context, id string, available int64) error {
	res := s.db.WithContext(ctx).Model(&models.Investment{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"available_tokens": available,
			"updated_at":       time.Now(),
		})
	if res.Error != nil {
		return fmt.Errorf("set available tokens: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *gormStore) DeleteInvestment(ctx context.Context, id string) error {
	db := s.db.WithContext(ctx)
	var purchases int64
	if err := db.Model(&models.Token{}).Where("investment_id = ?", id).Count(&purchases).Error; err != nil {
		return fmt.Errorf("count tokens: %w", err)
	}
	if purchases > 0 {
		return ErrHasDependents
	}
	if err := db.Where("investment_id = ?", id).Delete(&models.Distribution{}).Error; err != nil {
		return fmt.Errorf("delete distributions: %w", err)
	}
	res := db.Where("id = ?", id).Delete(&models.Investment{})
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *gormStore) DecrementAvailable(ctx context.Context, id string, qty int64) (bool, error) {
	res := s.db.WithContext(ctx).Model(&models.Investment{}).
		Where("id = ? AND is_active = ? AND available_tokens >= ?", id, true, qty).
		Updates(map[string]interface{}{
			"available_tokens": gorm.Expr("available_tokens - ?", qty),
			"updated_at":       time.Now(),
		})
	if res.Error != nil {
		return false, fmt.Errorf("decrement available tokens: %w", res.Error)
	}
	return res.RowsAffected == 1, nil
}

func (s *gormStore) CreateToken(ctx context.Context, token *models.Token) error {
	if err := s.db.WithContext(ctx).Omit("Investment", "User").Create(token).Error; err != nil {
		return fmt.Errorf("create token: %w", err)
	}
	return nil
}

func (s *gormStore) FindToken(ctx context.Context, id string) (*models.Token, error) {
	var token models.Token
	err := s.db.WithContext(ctx).Preload("Investment").Where("id = ?", id).First(&token).Error
	if err != nil {
		return nil, translate(err)
	}
	return &token, nil
}

func (s *gormStore) ListTokensByUser(ctx context.Context, userID string) ([]models.Token, error) {
	var tokens []models.Token
	err := s.db.WithContext(ctx).
		Preload("Investment").
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Find(&tokens).Error
	if err != nil {
		return nil, fmt.Errorf("list tokens: %w", err)
	}
	return tokens, nil
}

func (s *gormStore) CountTokens(ctx context.Context, investmentID string) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.Token{}).Where("investment_id = ?", investmentID).Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("count tokens: %w", err)
	}
	return count, nil
}

func (s *gormStore) SumTokenAmounts(ctx context.Context, investmentID string) (int64, error) {
	var sum int64
	err := s.db.WithContext(ctx).Model(&models.Token{}).
		Select("COALESCE(SUM(amount), 0)").
		Where("investment_id = ?", investmentID).
		Scan(&sum).Error
	if err != nil {
		return 0, fmt.Errorf("sum token amounts: %w", err)
	}
	return sum, nil
}

func (s *gormStore) CreateDistribution(ctx context.Context, d *models.Distribution) error {
	if err := s.db.WithContext(ctx).Omit("Investment").Create(d).Error; err != nil {
		return fmt.Errorf("create distribution: %w", err)
	}
	return nil
}

func (s *gormStore) ListDistributions(ctx context.Context, investmentID string) ([]models.Distribution, error) {
	var out []models.Distribution
	err := s.db.WithContext(ctx).
		Where("investment_id = ?", investmentID).
		Order("distribution_date DESC, id DESC").
		Find(&out).Error
	if err != nil {
		return nil, fmt.Errorf("list distributions: %w", err)
	}
	return out, nil
}

func (s *gormStore) WithTx(ctx context.Context, fn func(Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := fn(&gormStore{db: tx}); err != nil {
			return err
		}
		// A request that timed out before commit must leave no trace.
		return ctx.Err()
	})
}

func translate(err error) error {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return ErrHasDependents
	default:
		return err
	}
}

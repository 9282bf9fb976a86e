package models

import "github.com/shopspring/decimal"

// InvestmentType is the broad asset class of a listing.
type InvestmentType string

const (
	InvestmentTypeRealEstate InvestmentType = "real_estate"
	InvestmentTypeBusiness   InvestmentType = "business"
)

// Categories per investment type.
var categoriesByType = map[InvestmentType][]string{
	InvestmentTypeRealEstate: {
		"standalone_building",
		"ground_floor_commercial",
		"mixed_use",
		"office_space",
		"warehouse",
	},
	InvestmentTypeBusiness: {
		"yoga_studio",
		"restaurant",
		"fitness_center",
		"coffee_shop",
		"retail_store",
		"coworking_space",
	},
}

// ValidInvestmentType reports whether t names a known investment type.
func ValidInvestmentType(t string) bool {
	_, ok := categoriesByType[InvestmentType(t)]
	return ok
}

// ValidCategory reports whether category is known for any investment type.
func ValidCategory(category string) bool {
	for t := range categoriesByType {
		if CategoryBelongsTo(InvestmentType(t), category) {
			return true
		}
	}
	return false
}

// CategoryBelongsTo reports whether category is allowed under type t.
func CategoryBelongsTo(t InvestmentType, category string) bool {
	for _, c := range categoriesByType[t] {
		if c == category {
			return true
		}
	}
	return false
}

// Investment is a tokenized asset offered for sale. AvailableTokens is the
// unsold inventory and only moves through the ledger's conditional decrement
// or an explicit admin correction.
type Investment struct {
	Base
	Name            string          `gorm:"not null" json:"name"`
	Description     string          `gorm:"not null" json:"description"`
	Type            InvestmentType  `gorm:"size:32;not null;index" json:"type"`
	Category        string          `gorm:"size:64;not null;index" json:"category"`
	Location        string          `gorm:"not null" json:"location"`
	ExpectedROI     decimal.Decimal `gorm:"column:expected_roi;type:decimal(5,2);not null" json:"expectedRoi"`
	PricePerToken   decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"pricePerToken"`
	TotalTokens     int64           `gorm:"not null;check:chk_investments_total_positive,total_tokens > 0" json:"totalTokens"`
	AvailableTokens int64           `gorm:"not null;check:chk_investments_available_bounds,available_tokens >= 0 AND available_tokens <= total_tokens" json:"availableTokens"`
	ImageURL        string          `gorm:"column:image_url" json:"imageUrl,omitempty"`
	Currency        string          `gorm:"size:3;not null;default:USD" json:"currency"`
	IsActive        bool            `gorm:"not null" json:"isActive"`
}

// SoldTokens returns the number of tokens that left inventory.
func (i *Investment) SoldTokens() int64 {
	return i.TotalTokens - i.AvailableTokens
}

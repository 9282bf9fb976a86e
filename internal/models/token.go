package models

import (
	"time"

	"tokenvest/internal/uuid"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Token is an immutable purchase record: a user bought Amount tokens of an
// investment at PurchasePrice per token. Rows are only ever inserted.
type Token struct {
	ID            string          `gorm:"size:36;primaryKey" json:"id"`
	InvestmentID  string          `gorm:"size:36;not null;index" json:"investmentId"`
	UserID        string          `gorm:"size:36;not null;index" json:"userId"`
	Amount        int64           `gorm:"not null;check:chk_tokens_amount_positive,amount > 0" json:"amount"`
	PurchasePrice decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"purchasePrice"`
	CreatedAt     time.Time       `json:"createdAt"`

	Investment *Investment `gorm:"foreignKey:InvestmentID;constraint:OnDelete:RESTRICT" json:"investment,omitempty"`
	User       *User       `gorm:"foreignKey:UserID;constraint:OnDelete:RESTRICT" json:"-"`
}

// BeforeCreate hook generates a UUIDv7 for new records
func (t *Token) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.New()
	}
	return nil
}

// CostBasis returns Amount × PurchasePrice.
func (t *Token) CostBasis() decimal.Decimal {
	return t.PurchasePrice.Mul(decimal.NewFromInt(t.Amount))
}

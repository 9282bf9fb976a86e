package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Distribution is a payout recorded against an investment.
type Distribution struct {
	Base
	InvestmentID     string          `gorm:"size:36;not null;index" json:"investmentId"`
	Amount           decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"amount"`
	DistributionDate time.Time       `gorm:"not null" json:"distributionDate"`

	Investment *Investment `gorm:"foreignKey:InvestmentID;constraint:OnDelete:CASCADE" json:"-"`
}

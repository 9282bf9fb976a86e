package services

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"tokenvest/internal/testutil"
)

func TestRecordDistribution(t *testing.T) {
	forEachBackend(t, func(t *testing.T, b backend) {
		ctx := context.Background()
		svc := NewDistributionService(b.store)
		inv := seedInvestment(t, b.store)
		date := time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC)

		d, err := svc.RecordDistribution(ctx, inv.ID, decimal.RequireFromString("125.50"), date)
		testutil.AssertNoError(t, err)
		if d.ID == "" || d.InvestmentID != inv.ID {
			t.Errorf("unexpected distribution %+v", d)
		}

		undated, err := svc.RecordDistribution(ctx, inv.ID, decimal.RequireFromString("1.00"), time.Time{})
		testutil.AssertNoError(t, err)
		if undated.DistributionDate.IsZero() {
			t.Error("expected zero date to default to today")
		}

		list, err := svc.ListDistributions(ctx, inv.ID)
		testutil.AssertNoError(t, err)
		if len(list) != 2 {
			t.Fatalf("expected 2 distributions, got %d", len(list))
		}
		if list[0].ID != undated.ID {
			t.Error("expected newest distribution first")
		}
	})
}

func TestRecordDistributionValidation(t *testing.T) {
	forEachBackend(t, func(t *testing.T, b backend) {
		ctx := context.Background()
		svc := NewDistributionService(b.store)
		inv := seedInvestment(t, b.store)

		tests := []struct {
			name   string
			id     string
			amount string
			code   string
		}{
			{"zero_amount", inv.ID, "0", "INVALID_INPUT"},
			{"negative_amount", inv.ID, "-5", "INVALID_INPUT"},
			{"sub_cent_amount", inv.ID, "0.001", "INVALID_INPUT"},
			{"unknown_investment", "01890000-0000-7000-8000-000000000000", "5", "INVESTMENT_NOT_FOUND"},
			{"malformed_id", "abc", "5", "INVESTMENT_NOT_FOUND"},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				_, err := svc.RecordDistribution(ctx, tt.id, decimal.RequireFromString(tt.amount), time.Now())
				testutil.AssertAppError(t, err, tt.code)
			})
		}

		_, err := svc.ListDistributions(ctx, "01890000-0000-7000-8000-000000000000")
		testutil.AssertAppError(t, err, "INVESTMENT_NOT_FOUND")

		empty, err := svc.ListDistributions(ctx, inv.ID)
		testutil.AssertNoError(t, err)
		if empty == nil || len(empty) != 0 {
			t.Errorf("expected empty non-nil list, got %v", empty)
		}
	})
}

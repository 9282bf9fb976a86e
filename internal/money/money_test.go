package money

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestFitsScale(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"10", true},
		{"10.5", true},
		{"0.01", true},
		{"10.550", true},
		{"10.555", false},
		{"0.001", false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := FitsScale(decimal.RequireFromString(tt.in)); got != tt.want {
				t.Errorf("FitsScale(%s) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestTimesAndSum(t *testing.T) {
	price := decimal.RequireFromString("12.34")
	if got := Format(Times(price, 3)); got != "37.02" {
		t.Errorf("expected 37.02, got %s", got)
	}
	total := Sum(Times(price, 1), decimal.RequireFromString("0.66"))
	if got := Format(total); got != "13.00" {
		t.Errorf("expected 13.00, got %s", got)
	}
	if !Sum().Equal(decimal.Zero) {
		t.Error("empty sum should be zero")
	}
}

func TestPositive(t *testing.T) {
	if Positive(decimal.Zero) {
		t.Error("zero is not positive")
	}
	if !Positive(decimal.RequireFromString("0.01")) {
		t.Error("0.01 should be positive")
	}
}

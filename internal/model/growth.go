package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// GrowthResult holds the projected value of a past investment.
// CurrentValue is always (InvestedAmount / PastPrice) * CurrentPrice.
type GrowthResult struct {
	PastPrice      decimal.Decimal
	CurrentPrice   decimal.Decimal
	InvestedAmount decimal.Decimal
	SharesHeld     decimal.Decimal
	CurrentValue   decimal.Decimal
	AbsoluteGrowth decimal.Decimal
	PercentGrowth  decimal.Decimal
}

// Gain reports whether the investment did not lose value.
func (r *GrowthResult) Gain() bool {
	return !r.AbsoluteGrowth.IsNegative()
}

// GrowthQuery echoes the inputs of a growth calculation for display.
type GrowthQuery struct {
	Market      Market
	Ticker      string
	PastDate    time.Time
	CurrentDate time.Time
}

package calculator

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"StockMonitor/internal/model"
)

var (
	// ErrBadData marks prices from upstream that cannot be used, such as a zero close.
	ErrBadData       = errors.New("bad data")
	ErrInvalidAmount = errors.New("investment amount must be positive")
)

var hundred = decimal.NewFromInt(100)

func badData(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrBadData}, args...)...)
}

// CalculateGrowth projects what invested would be worth if shares were bought at
// pastPrice and valued at currentPrice. The same formula applies to gains and losses.
func CalculateGrowth(invested, pastPrice, currentPrice decimal.Decimal) (*model.GrowthResult, error) {
	if !invested.IsPositive() {
		return nil, ErrInvalidAmount
	}
	if !pastPrice.IsPositive() {
		return nil, badData("past price is %s", pastPrice)
	}
	if !currentPrice.IsPositive() {
		return nil, badData("current price is %s", currentPrice)
	}

	shares := invested.Div(pastPrice)
	currentValue := shares.Mul(currentPrice)

	return &model.GrowthResult{
		PastPrice:      pastPrice,
		CurrentPrice:   currentPrice,
		InvestedAmount: invested,
		SharesHeld:     shares,
		CurrentValue:   currentValue,
		AbsoluteGrowth: currentValue.Sub(invested),
		PercentGrowth:  currentValue.Div(invested).Mul(hundred),
	}, nil
}

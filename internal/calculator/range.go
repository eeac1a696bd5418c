package calculator

import (
	"errors"
	"math"

	"github.com/shopspring/decimal"

	"StockMonitor/internal/model"
)

var ErrNoCandles = errors.New("no candles provided")

// PriceRange scans all candles and returns the highest high and the lowest low.
func PriceRange(candles []model.Candle) (high, low float64, err error) {
	if len(candles) == 0 {
		return 0, 0, ErrNoCandles
	}
	high = math.Inf(-1)
	low = math.Inf(1)
	for _, c := range candles {
		if c.High > high {
			high = c.High
		}
		if c.Low < low {
			low = c.Low
		}
	}
	return high, low, nil
}

// PeriodChange returns the move from the first candle's open to the last candle's close,
// absolute and as a percentage of the open.
func PeriodChange(candles []model.Candle) (abs, pct decimal.Decimal, err error) {
	if len(candles) == 0 {
		return decimal.Zero, decimal.Zero, ErrNoCandles
	}
	open := decimal.NewFromFloat(candles[0].Open)
	if !open.IsPositive() {
		return decimal.Zero, decimal.Zero, badData("opening price %s", open)
	}
	abs = decimal.NewFromFloat(candles[len(candles)-1].Close).Sub(open)
	pct = abs.Div(open).Mul(hundred)
	return abs, pct, nil
}

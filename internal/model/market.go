package model

import (
	"strings"
	"time"

	"github.com/guregu/null/v5"
	"github.com/polygon-io/client-go/rest/models"
)

// DateLayout is the YYYY-MM-DD form used by prompts and by the API paths.
const DateLayout = "2006-01-02"

// Market selects which asset class a request targets.
type Market string

const (
	MarketStocks Market = "stocks"
	MarketCrypto Market = "crypto"
)

// cryptoPrefix marks crypto pairs in Polygon ticker paths (X:BTCUSD).
const cryptoPrefix = "X:"

// APITicker returns the ticker as the API expects it for the given market.
func (m Market) APITicker(ticker string) string {
	if m == MarketCrypto && !strings.HasPrefix(ticker, cryptoPrefix) {
		return cryptoPrefix + ticker
	}
	return ticker
}

// Timespans lists the accepted aggregate bucket sizes in display order.
var Timespans = []models.Timespan{
	models.Second,
	models.Minute,
	models.Hour,
	models.Day,
	models.Week,
	models.Month,
	models.Quarter,
	models.Year,
}

// AggregateRequest describes a candlestick query. From must not be after To.
type AggregateRequest struct {
	Market     Market
	Ticker     string
	Multiplier int
	Timespan   models.Timespan
	From       time.Time
	To         time.Time
}

// OpenCloseRequest describes a single-day open/close query.
type OpenCloseRequest struct {
	Market Market
	Ticker string
	Date   time.Time
}

// Candle represents a single candlestick bar.
type Candle struct {
	Time   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume float64
}

// OpenCloseRecord is the daily snapshot for one ticker.
// PreMarket and AfterHours are absent for crypto pairs and some thinly traded tickers.
type OpenCloseRecord struct {
	Date       string
	Symbol     string
	PreMarket  null.Float
	Open       float64
	High       float64
	Low        float64
	Close      float64
	AfterHours null.Float
	Volume     float64
}

package collector

import (
	"context"

	"StockMonitor/internal/model"
)

// Fetcher defines the interface for fetching market data.
type Fetcher interface {
	FetchAggregates(ctx context.Context, req model.AggregateRequest) ([]model.Candle, error)
	FetchOpenClose(ctx context.Context, req model.OpenCloseRequest) (*model.OpenCloseRecord, error)
	// FetchClose returns only the close price for the day, for callers that
	// compute with it instead of displaying the record.
	FetchClose(ctx context.Context, req model.OpenCloseRequest) (float64, error)
	Name() string
}

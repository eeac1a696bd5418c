package collector

import (
	"context"
	"fmt"
	"time"

	"StockMonitor/internal/model"
)

// MockFetcher returns controllable fixed data for development and testing.
type MockFetcher struct {
	Price   float64
	Candles []model.Candle
	// Closes maps YYYY-MM-DD to the close price reported for that day.
	Closes map[string]float64
	Err    error

	AggregateRequests []model.AggregateRequest
	OpenCloseRequests []model.OpenCloseRequest
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) FetchAggregates(_ context.Context, req model.AggregateRequest) ([]model.Candle, error) {
	m.AggregateRequests = append(m.AggregateRequests, req)
	if m.Err != nil {
		return nil, m.Err
	}
	if m.Candles != nil {
		return m.Candles, nil
	}
	days := int(req.To.Sub(req.From).Hours()/24) + 1
	return generateMockCandles(m.Price, req.From, days), nil
}

func (m *MockFetcher) FetchOpenClose(_ context.Context, req model.OpenCloseRequest) (*model.OpenCloseRecord, error) {
	m.OpenCloseRequests = append(m.OpenCloseRequests, req)
	if m.Err != nil {
		return nil, m.Err
	}
	day := req.Date.Format(model.DateLayout)
	price := m.Price
	if m.Closes != nil {
		p, ok := m.Closes[day]
		if !ok {
			return nil, &APIError{Status: "NOT_FOUND", Message: fmt.Sprintf("no data for %s", day)}
		}
		price = p
	}
	return &model.OpenCloseRecord{
		Date:   day,
		Symbol: req.Market.APITicker(req.Ticker),
		Open:   price * 0.999,
		High:   price * 1.005,
		Low:    price * 0.995,
		Close:  price,
		Volume: 1000000,
	}, nil
}

func (m *MockFetcher) FetchClose(ctx context.Context, req model.OpenCloseRequest) (float64, error) {
	rec, err := m.FetchOpenClose(ctx, req)
	if err != nil {
		return 0, err
	}
	return rec.Close, nil
}

func generateMockCandles(basePrice float64, start time.Time, count int) []model.Candle {
	candles := make([]model.Candle, count)
	for i := 0; i < count; i++ {
		p := basePrice * (1 + float64(i-count/2)*0.001)
		candles[i] = model.Candle{
			Time:   start.AddDate(0, 0, i),
			Open:   p * 0.999,
			High:   p * 1.005,
			Low:    p * 0.995,
			Close:  p,
			Volume: 1000000,
		}
	}
	return candles
}

package menu

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"StockMonitor/internal/calculator"
	"StockMonitor/internal/model"
	"StockMonitor/internal/render"
	"StockMonitor/internal/validate"
)

func (c *Controller) candlesFlow(ctx context.Context, market model.Market) error {
	c.Console.Banner("CANDLESTICKS")
	ticker, err := ask(c, "Enter ticker: ", validate.ParseTicker)
	if err != nil {
		return err
	}
	multiplier, err := ask(c, "Enter multiplier (default 1): ", validate.ParseMultiplier)
	if err != nil {
		return err
	}
	c.Console.Notice("Timespans: %v", model.Timespans)
	timespan, err := ask(c, "Enter timespan: ", validate.ParseTimespan)
	if err != nil {
		return err
	}
	from, to, err := c.askRange()
	if err != nil {
		return err
	}

	req := model.AggregateRequest{
		Market:     market,
		Ticker:     ticker,
		Multiplier: multiplier,
		Timespan:   timespan,
		From:       from,
		To:         to,
	}
	candles, err := c.Fetcher.FetchAggregates(ctx, req)
	if err != nil {
		return err
	}
	c.Logger.Info("aggregates fetched",
		zap.String("ticker", market.APITicker(ticker)),
		zap.Int("candles", len(candles)))

	title := fmt.Sprintf("%s  %d %s  %s to %s", market.APITicker(ticker), multiplier, timespan,
		from.Format(model.DateLayout), to.Format(model.DateLayout))
	return c.Console.Candles(title, candles)
}

// askRange reads both endpoints and asks for the pair again when they are
// out of order.
func (c *Controller) askRange() (time.Time, time.Time, error) {
	c.Console.Notice("Dates use the format YYYY-MM-DD")
	date := func(s string) (string, error) {
		_, err := validate.ParseDate(s)
		return s, err
	}
	for attempt := 1; ; attempt++ {
		fromRaw, err := ask(c, "Enter start date: ", date)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		toRaw, err := ask(c, "Enter end date: ", date)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		from, to, err := validate.DateRange(fromRaw, toRaw)
		if err == nil {
			return from, to, nil
		}
		if c.MaxAttempts > 0 && attempt >= c.MaxAttempts {
			return time.Time{}, time.Time{}, fmt.Errorf("%w: %v", ErrTooManyAttempts, err)
		}
		c.Console.Error(err)
	}
}

func (c *Controller) openCloseFlow(ctx context.Context, market model.Market) error {
	c.Console.Banner("DAILY OPEN/CLOSE")
	ticker, err := ask(c, "Enter ticker: ", validate.ParseTicker)
	if err != nil {
		return err
	}
	date, err := ask(c, "Enter date (YYYY-MM-DD): ", c.notFuture)
	if err != nil {
		return err
	}

	rec, err := c.Fetcher.FetchOpenClose(ctx, model.OpenCloseRequest{Market: market, Ticker: ticker, Date: date})
	if err != nil {
		return err
	}
	c.Console.OpenClose(rec)
	return nil
}

func (c *Controller) growthFlow(ctx context.Context, market model.Market) error {
	c.Console.Banner("GROWTH CALCULATOR")
	pastDate := func(s string) (time.Time, error) {
		return validate.PastTradingDate(s, c.Calendar)
	}
	if market == model.MarketCrypto {
		pastDate = c.notFuture
	}
	past, err := ask(c, "Enter purchase date (YYYY-MM-DD): ", pastDate)
	if err != nil {
		return err
	}
	ticker, err := ask(c, "Enter ticker: ", validate.ParseTicker)
	if err != nil {
		return err
	}
	amount, err := ask(c, "Enter amount invested: ", validate.ParseAmount)
	if err != nil {
		return err
	}

	query := model.GrowthQuery{
		Market:      market,
		Ticker:      ticker,
		PastDate:    past,
		CurrentDate: c.today().AddDate(0, 0, -1),
	}
	pastPrice, err := c.Fetcher.FetchClose(ctx, model.OpenCloseRequest{Market: market, Ticker: ticker, Date: query.PastDate})
	if err != nil {
		return fmt.Errorf("price on %s: %w", query.PastDate.Format(model.DateLayout), err)
	}
	currentPrice, err := c.Fetcher.FetchClose(ctx, model.OpenCloseRequest{Market: market, Ticker: ticker, Date: query.CurrentDate})
	if err != nil {
		return fmt.Errorf("price on %s: %w", query.CurrentDate.Format(model.DateLayout), err)
	}

	result, err := calculator.CalculateGrowth(amount, decimal.NewFromFloat(pastPrice), decimal.NewFromFloat(currentPrice))
	if err != nil {
		return err
	}
	c.Logger.Info("growth calculated",
		zap.String("ticker", market.APITicker(ticker)),
		zap.Stringer("percent", result.PercentGrowth))
	c.Console.Growth(render.NewGrowthView(query, result))
	return nil
}

func (c *Controller) notFuture(s string) (time.Time, error) {
	return validate.OpenCloseDate(s, c.Now())
}

// today is the current local date at UTC midnight, matching parsed input dates.
func (c *Controller) today() time.Time {
	y, m, d := c.Now().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

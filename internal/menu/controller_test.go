package menu

import (
	"bytes"
	"context"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/polygon-io/client-go/rest/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"StockMonitor/internal/calendar"
	"StockMonitor/internal/collector"
	"StockMonitor/internal/model"
	"StockMonitor/internal/render"
	"StockMonitor/internal/validate"
)

func TestMain(m *testing.M) {
	color.NoColor = true
	os.Exit(m.Run())
}

// 2024-06-12 is a Wednesday, so "yesterday" is 2024-06-11.
var fixedNow = time.Date(2024, 6, 12, 10, 30, 0, 0, time.UTC)

func newTestController(t *testing.T, fetcher collector.Fetcher, maxAttempts int, lines ...string) (*Controller, *bytes.Buffer) {
	t.Helper()
	var out bytes.Buffer
	input := strings.NewReader(strings.Join(lines, "\n") + "\n")
	c := NewController(fetcher, calendar.Default(), render.NewConsole(&out, 8, 60), input, maxAttempts, zap.NewNop())
	c.Now = func() time.Time { return fixedNow }
	return c, &out
}

func TestRun_QuitFromMainMenu(t *testing.T) {
	c, out := newTestController(t, &collector.MockFetcher{Price: 100}, 5, "q")

	require.NoError(t, c.Run(context.Background()))
	assert.Contains(t, out.String(), "STOCK MONITOR")
	assert.Contains(t, out.String(), "PROGRAM QUIT")
}

func TestRun_EndOfInputQuits(t *testing.T) {
	c, out := newTestController(t, &collector.MockFetcher{Price: 100}, 5, "1")

	require.NoError(t, c.Run(context.Background()))
	assert.Contains(t, out.String(), "STOCK MENU")
	assert.Contains(t, out.String(), "PROGRAM QUIT")
}

func TestRun_BackReturnsToMainMenu(t *testing.T) {
	c, out := newTestController(t, &collector.MockFetcher{Price: 100}, 5, "2", "b", "Q")

	require.NoError(t, c.Run(context.Background()))
	assert.Contains(t, out.String(), "CRYPTO MENU")
	assert.Equal(t, 2, strings.Count(out.String(), "[1] Stock Menu"))
}

func TestRun_InvalidMenuChoiceReprompts(t *testing.T) {
	c, out := newTestController(t, &collector.MockFetcher{Price: 100}, 5, "7", "Q")

	require.NoError(t, c.Run(context.Background()))
	assert.Contains(t, out.String(), "please enter one of 1, 2, Q")
	assert.Contains(t, out.String(), "PROGRAM QUIT")
}

func TestRun_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	c, _ := newTestController(t, &collector.MockFetcher{Price: 100}, 5, "Q")

	assert.ErrorIs(t, c.Run(ctx), context.Canceled)
}

func TestCandlesFlow(t *testing.T) {
	fetcher := &collector.MockFetcher{Price: 100}
	c, out := newTestController(t, fetcher, 5,
		"1", "1",
		"aapl", "", "Day", "2024-01-02", "2024-01-04",
		"q",
	)

	require.NoError(t, c.Run(context.Background()))

	require.Len(t, fetcher.AggregateRequests, 1)
	req := fetcher.AggregateRequests[0]
	assert.Equal(t, model.MarketStocks, req.Market)
	assert.Equal(t, "AAPL", req.Ticker)
	assert.Equal(t, 1, req.Multiplier)
	assert.Equal(t, models.Day, req.Timespan)
	assert.Equal(t, "2024-01-02", req.From.Format(model.DateLayout))
	assert.Equal(t, "2024-01-04", req.To.Format(model.DateLayout))

	assert.Contains(t, out.String(), "AAPL  1 day  2024-01-02 to 2024-01-04")
	assert.Contains(t, out.String(), "High: ")
	assert.Contains(t, out.String(), "[C] CONTINUE")
	assert.Contains(t, out.String(), "PROGRAM QUIT")
}

func TestCandlesFlow_ContinueReturnsToSubMenu(t *testing.T) {
	fetcher := &collector.MockFetcher{Price: 100}
	c, out := newTestController(t, fetcher, 5,
		"2", "1",
		"btcusd", "2", "hour", "2024-01-02", "2024-01-02",
		"c",
		"Q",
	)

	require.NoError(t, c.Run(context.Background()))
	require.Len(t, fetcher.AggregateRequests, 1)
	assert.Equal(t, model.MarketCrypto, fetcher.AggregateRequests[0].Market)
	assert.Contains(t, out.String(), "X:BTCUSD  2 hour")
	assert.Equal(t, 2, strings.Count(out.String(), "CRYPTO MENU"))
}

func TestCandlesFlow_RangeOutOfOrderReprompts(t *testing.T) {
	fetcher := &collector.MockFetcher{Price: 100}
	c, out := newTestController(t, fetcher, 5,
		"1", "1",
		"AAPL", "1", "day",
		"2024-01-05", "2024-01-01",
		"2024-01-01", "2024-01-05",
		"q",
	)

	require.NoError(t, c.Run(context.Background()))
	assert.Contains(t, out.String(), validate.ErrRangeOrder.Error())
	require.Len(t, fetcher.AggregateRequests, 1)
	assert.Equal(t, "2024-01-01", fetcher.AggregateRequests[0].From.Format(model.DateLayout))
	assert.Equal(t, "2024-01-05", fetcher.AggregateRequests[0].To.Format(model.DateLayout))
}

func TestCandlesFlow_InvalidFieldsReprompt(t *testing.T) {
	fetcher := &collector.MockFetcher{Price: 100}
	c, out := newTestController(t, fetcher, 5,
		"1", "1",
		"AAPL", "abc", "0", "3", "fortnight", "week", "2024-1-1", "2024-02-30", "2024-01-01", "2024-03-01",
		"q",
	)

	require.NoError(t, c.Run(context.Background()))
	for _, err := range []error{
		validate.ErrMultiplierFormat,
		validate.ErrMultiplierRange,
		validate.ErrTimespan,
		validate.ErrDateFormat,
		validate.ErrDateInvalid,
	} {
		assert.Contains(t, out.String(), err.Error())
	}
	require.Len(t, fetcher.AggregateRequests, 1)
	assert.Equal(t, 3, fetcher.AggregateRequests[0].Multiplier)
	assert.Equal(t, models.Week, fetcher.AggregateRequests[0].Timespan)
}

func TestOpenCloseFlow(t *testing.T) {
	fetcher := &collector.MockFetcher{Closes: map[string]float64{"2023-01-09": 130.15}}
	c, out := newTestController(t, fetcher, 5,
		"1", "2",
		"AAPL", "2024-06-13", "2023-01-09",
		"q",
	)

	require.NoError(t, c.Run(context.Background()))
	assert.Contains(t, out.String(), validate.ErrFutureDate.Error())
	require.Len(t, fetcher.OpenCloseRequests, 1)
	assert.Contains(t, out.String(), "After-Hours")
	assert.Contains(t, out.String(), "130.15")
}

func TestOpenCloseFlow_TodayIsAccepted(t *testing.T) {
	fetcher := &collector.MockFetcher{Price: 50}
	c, _ := newTestController(t, fetcher, 5, "1", "2", "AAPL", "2024-06-12", "q")

	require.NoError(t, c.Run(context.Background()))
	require.Len(t, fetcher.OpenCloseRequests, 1)
	assert.Equal(t, "2024-06-12", fetcher.OpenCloseRequests[0].Date.Format(model.DateLayout))
}

func TestOpenCloseFlow_NotFoundReturnsToMenu(t *testing.T) {
	fetcher := &collector.MockFetcher{Closes: map[string]float64{}}
	c, out := newTestController(t, fetcher, 5,
		"1", "2",
		"AAPL", "2023-01-07",
		"Q",
	)

	require.NoError(t, c.Run(context.Background()))
	assert.Contains(t, out.String(), "ERROR: no data for 2023-01-07")
	assert.NotContains(t, out.String(), "After-Hours")
	assert.NotContains(t, out.String(), "[C] CONTINUE")
	assert.Equal(t, 2, strings.Count(out.String(), "STOCK MENU"))
}

func TestGrowthFlow(t *testing.T) {
	fetcher := &collector.MockFetcher{Closes: map[string]float64{
		"2023-03-15": 100,
		"2024-06-11": 150,
	}}
	c, out := newTestController(t, fetcher, 5,
		"1", "3",
		"2023-03-15", "aapl", "1,000",
		"q",
	)

	require.NoError(t, c.Run(context.Background()))
	require.Len(t, fetcher.OpenCloseRequests, 2)
	assert.Equal(t, "2023-03-15", fetcher.OpenCloseRequests[0].Date.Format(model.DateLayout))
	assert.Equal(t, "2024-06-11", fetcher.OpenCloseRequests[1].Date.Format(model.DateLayout))

	s := out.String()
	assert.Contains(t, s, "Δ $ (AAPL)")
	assert.Contains(t, s, "$1,500.00")
	assert.Contains(t, s, "+ %150.00")
	assert.Contains(t, s, "+ $500.00")
}

func TestGrowthFlow_StockDateChecks(t *testing.T) {
	fetcher := &collector.MockFetcher{Price: 10}
	c, out := newTestController(t, fetcher, 5,
		"1", "3",
		"2024-06-08", "2024-07-04", "2024-06-07", "AAPL", "0", "abc", "500",
		"q",
	)

	require.NoError(t, c.Run(context.Background()))
	s := out.String()
	assert.Contains(t, s, validate.ErrNotTradingDay.Error())
	assert.Contains(t, s, validate.ErrHoliday.Error())
	assert.Contains(t, s, validate.ErrAmountRange.Error())
	assert.Contains(t, s, validate.ErrAmountFormat.Error())
	require.Len(t, fetcher.OpenCloseRequests, 2)
	assert.Equal(t, "2024-06-07", fetcher.OpenCloseRequests[0].Date.Format(model.DateLayout))
}

func TestGrowthFlow_CryptoAllowsWeekends(t *testing.T) {
	fetcher := &collector.MockFetcher{Closes: map[string]float64{
		"2024-06-08": 200,
		"2024-06-11": 100,
	}}
	c, out := newTestController(t, fetcher, 5,
		"2", "3",
		"2024-06-20", "2024-06-08", "btcusd", "1000",
		"q",
	)

	require.NoError(t, c.Run(context.Background()))
	s := out.String()
	assert.Contains(t, s, validate.ErrFutureDate.Error())
	assert.NotContains(t, s, validate.ErrNotTradingDay.Error())
	assert.Contains(t, s, "Δ $ (X:BTCUSD)")
	assert.Contains(t, s, "- $500.00")
	require.Len(t, fetcher.OpenCloseRequests, 2)
	assert.Equal(t, model.MarketCrypto, fetcher.OpenCloseRequests[0].Market)
}

func TestGrowthFlow_MissingCurrentPrice(t *testing.T) {
	fetcher := &collector.MockFetcher{Closes: map[string]float64{"2023-03-15": 100}}
	c, out := newTestController(t, fetcher, 5,
		"1", "3",
		"2023-03-15", "AAPL", "1000",
		"Q",
	)

	require.NoError(t, c.Run(context.Background()))
	assert.Contains(t, out.String(), "price on 2024-06-11")
	assert.NotContains(t, out.String(), "PAST")
}

func TestAsk_TooManyAttempts(t *testing.T) {
	fetcher := &collector.MockFetcher{Price: 100}
	c, out := newTestController(t, fetcher, 2,
		"1", "1",
		"", "two words",
		"Q",
	)

	require.NoError(t, c.Run(context.Background()))
	assert.Contains(t, out.String(), ErrTooManyAttempts.Error())
	assert.Empty(t, fetcher.AggregateRequests)
	assert.Equal(t, 2, strings.Count(out.String(), "STOCK MENU"))
}

func TestAsk_UnboundedAttempts(t *testing.T) {
	lines := []string{"1", "1"}
	for i := 0; i < 20; i++ {
		lines = append(lines, "")
	}
	lines = append(lines, "AAPL", "1", "day", "2024-01-02", "2024-01-02", "q")
	fetcher := &collector.MockFetcher{Price: 100}
	c, out := newTestController(t, fetcher, 0, lines...)

	require.NoError(t, c.Run(context.Background()))
	assert.NotContains(t, out.String(), ErrTooManyAttempts.Error())
	assert.Len(t, fetcher.AggregateRequests, 1)
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "main", StateMain.String())
	assert.Equal(t, "crypto", StateCrypto.String())
	assert.Equal(t, "State(9)", State(9).String())
}

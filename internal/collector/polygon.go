package collector

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/guregu/null/v5"
	"github.com/polygon-io/client-go/rest/models"
	"github.com/tidwall/pretty"
	"go.uber.org/zap"

	"StockMonitor/internal/config"
	"StockMonitor/internal/model"
)

// PolygonFetcher implements Fetcher using the Polygon REST API.
type PolygonFetcher struct {
	BarsURL      string
	OpenCloseURL string
	APIKey       string
	Client       *http.Client
	Logger       *zap.Logger
}

// NewPolygonFetcher creates a fetcher from the API settings, with optional proxy support.
func NewPolygonFetcher(cfg config.API, logger *zap.Logger) *PolygonFetcher {
	transport := &http.Transport{Proxy: http.ProxyFromEnvironment}
	if cfg.Proxy != "" {
		if u, err := url.Parse(cfg.Proxy); err == nil {
			transport.Proxy = http.ProxyURL(u)
		} else {
			logger.Warn("ignoring invalid proxy url", zap.String("proxy", cfg.Proxy), zap.Error(err))
		}
	}
	return &PolygonFetcher{
		BarsURL:      strings.TrimRight(cfg.BarsURL, "/"),
		OpenCloseURL: strings.TrimRight(cfg.OpenCloseURL, "/"),
		APIKey:       cfg.Key,
		Client: &http.Client{
			Timeout:   cfg.Timeout(),
			Transport: transport,
		},
		Logger: logger,
	}
}

func (f *PolygonFetcher) Name() string { return "polygon" }

// apiStatus is the envelope every Polygon response shares.
type apiStatus struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Error   string `json:"error"`
}

func (s apiStatus) notFound() bool {
	return s.Status == "NOT FOUND" || s.Status == "NOT_FOUND"
}

func (s apiStatus) message() string {
	if s.Message != "" {
		return s.Message
	}
	return s.Error
}

type aggsResponse struct {
	apiStatus
	Ticker       string       `json:"ticker"`
	ResultsCount int          `json:"resultsCount"`
	Results      []models.Agg `json:"results"`
}

type openCloseResponse struct {
	apiStatus
	From       string     `json:"from"`
	Symbol     string     `json:"symbol"`
	PreMarket  null.Float `json:"preMarket"`
	Open       float64    `json:"open"`
	High       float64    `json:"high"`
	Low        float64    `json:"low"`
	Close      float64    `json:"close"`
	AfterHours null.Float `json:"afterHours"`
	Volume     float64    `json:"volume"`
}

func (f *PolygonFetcher) FetchAggregates(ctx context.Context, req model.AggregateRequest) ([]model.Candle, error) {
	q := url.Values{}
	q.Set("adjusted", "true")
	q.Set("sort", "asc")
	q.Set("apiKey", f.APIKey)
	endpoint := fmt.Sprintf("%s/aggs/ticker/%s/range/%d/%s/%s/%s?%s",
		f.BarsURL,
		url.PathEscape(req.Market.APITicker(req.Ticker)),
		req.Multiplier,
		url.PathEscape(string(req.Timespan)),
		req.From.Format(model.DateLayout),
		req.To.Format(model.DateLayout),
		q.Encode(),
	)

	var resp aggsResponse
	if err := f.get(ctx, endpoint, &resp); err != nil {
		return nil, fmt.Errorf("fetch aggregates: %w", err)
	}
	if len(resp.Results) == 0 {
		return nil, fmt.Errorf("fetch aggregates: %w for %s between %s and %s", ErrNoData,
			req.Ticker, req.From.Format(model.DateLayout), req.To.Format(model.DateLayout))
	}

	candles := make([]model.Candle, len(resp.Results))
	for i, a := range resp.Results {
		candles[i] = model.Candle{
			Time:   time.Time(a.Timestamp).UTC(),
			Open:   a.Open,
			High:   a.High,
			Low:    a.Low,
			Close:  a.Close,
			Volume: a.Volume,
		}
	}
	return candles, nil
}

func (f *PolygonFetcher) FetchOpenClose(ctx context.Context, req model.OpenCloseRequest) (*model.OpenCloseRecord, error) {
	if req.Market == model.MarketCrypto {
		return f.cryptoOpenClose(ctx, req)
	}

	q := url.Values{}
	q.Set("adjusted", "true")
	q.Set("apiKey", f.APIKey)
	endpoint := fmt.Sprintf("%s/open-close/%s/%s?%s",
		f.OpenCloseURL,
		url.PathEscape(req.Ticker),
		req.Date.Format(model.DateLayout),
		q.Encode(),
	)

	var resp openCloseResponse
	if err := f.get(ctx, endpoint, &resp); err != nil {
		return nil, fmt.Errorf("fetch open/close: %w", err)
	}

	rec := &model.OpenCloseRecord{
		Date:       resp.From,
		Symbol:     resp.Symbol,
		PreMarket:  resp.PreMarket,
		Open:       resp.Open,
		High:       resp.High,
		Low:        resp.Low,
		Close:      resp.Close,
		AfterHours: resp.AfterHours,
		Volume:     resp.Volume,
	}
	if rec.Date == "" {
		rec.Date = req.Date.Format(model.DateLayout)
	}
	if rec.Symbol == "" {
		rec.Symbol = req.Ticker
	}
	return rec, nil
}

// cryptoOpenClose reads the single daily bar for the date, since pairs trade around the clock
// and have no pre-market or after-hours session.
func (f *PolygonFetcher) cryptoOpenClose(ctx context.Context, req model.OpenCloseRequest) (*model.OpenCloseRecord, error) {
	candles, err := f.FetchAggregates(ctx, model.AggregateRequest{
		Market:     model.MarketCrypto,
		Ticker:     req.Ticker,
		Multiplier: 1,
		Timespan:   models.Day,
		From:       req.Date,
		To:         req.Date,
	})
	if err != nil {
		return nil, err
	}
	c := candles[0]
	return &model.OpenCloseRecord{
		Date:   req.Date.Format(model.DateLayout),
		Symbol: model.MarketCrypto.APITicker(req.Ticker),
		Open:   c.Open,
		High:   c.High,
		Low:    c.Low,
		Close:  c.Close,
		Volume: c.Volume,
	}, nil
}

func (f *PolygonFetcher) FetchClose(ctx context.Context, req model.OpenCloseRequest) (float64, error) {
	rec, err := f.FetchOpenClose(ctx, req)
	if err != nil {
		return 0, err
	}
	return rec.Close, nil
}

func (f *PolygonFetcher) get(ctx context.Context, endpoint string, out any) error {
	log := f.Logger.With(
		zap.String("request_id", uuid.NewString()),
		zap.String("url", f.redact(endpoint)),
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	start := time.Now()
	resp, err := f.Client.Do(req)
	if err != nil {
		log.Warn("request failed", zap.Error(err))
		return newHTTPError(0, f.redactErr(err))
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return newHTTPError(resp.StatusCode, fmt.Errorf("read body: %w", err))
	}
	log.Debug("response received",
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", time.Since(start)),
		zap.Int("bytes", len(body)),
	)
	if ce := log.Check(zap.DebugLevel, "response body"); ce != nil {
		ce.Write(zap.ByteString("body", pretty.Pretty(body)))
	}

	// Error bodies are JSON too, except from proxies and gateways.
	var st apiStatus
	_ = json.Unmarshal(body, &st)
	if st.notFound() {
		log.Info("api reported not found", zap.String("message", st.message()))
		return &APIError{Status: st.Status, Message: st.message()}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := st.message()
		if msg == "" {
			msg = truncate(string(body), 200)
		}
		log.Warn("unexpected status", zap.Int("status", resp.StatusCode), zap.String("message", msg))
		return newHTTPError(resp.StatusCode, fmt.Errorf("body: %s", msg))
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return nil
}

func (f *PolygonFetcher) redact(s string) string {
	if f.APIKey == "" {
		return s
	}
	return strings.ReplaceAll(s, url.QueryEscape(f.APIKey), "REDACTED")
}

// redactErr strips the key from *url.Error messages, which embed the full request URL.
func (f *PolygonFetcher) redactErr(err error) error {
	if ue, ok := err.(*url.Error); ok {
		return &url.Error{Op: ue.Op, URL: f.redact(ue.URL), Err: ue.Err}
	}
	return err
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

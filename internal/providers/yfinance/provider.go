// Package yfinance implements the Yahoo Finance data provider. It wraps
// Yahoo's public APIs (v1 fundamentals-timeseries, v8 chart, v7 quote,
// v10 quoteSummary, RSS headlines) into the standard provider/fetcher
// framework. No API key is required.
package yfinance

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/openequity/equitypages/internal/infra"
	"github.com/openequity/equitypages/internal/provider"
	"github.com/openequity/equitypages/pkg/utils"
)

const providerName = "yfinance"

// queryBase is overridable so tests can point fetchers at a local server.
var queryBase = "https://query1.finance.yahoo.com"

// feedBase hosts the RSS company-news feed.
var feedBase = "https://feeds.finance.yahoo.com"

// Provider implements provider.Provider for Yahoo Finance.
type Provider struct {
	provider.BaseProvider
}

// New creates the Yahoo Finance provider and registers all fetchers.
func New() *Provider {
	p := &Provider{
		BaseProvider: provider.NewBaseProvider(
			providerName,
			"Yahoo Finance - free global financial data",
			"https://finance.yahoo.com",
		),
	}

	p.RegisterFetcher(newStatementsFetcher())
	p.RegisterFetcher(newPriceHistoryFetcher())
	p.RegisterFetcher(newDividendsFetcher())
	p.RegisterFetcher(newQuoteFetcher())
	p.RegisterFetcher(newRecommendationsFetcher())
	p.RegisterFetcher(newNewsFetcher())

	return p
}

// Ping checks connectivity to Yahoo Finance.
func (p *Provider) Ping(ctx context.Context) error {
	url := queryBase + "/v7/finance/quote?symbols=AAPL"
	body, _, err := infra.DoGet(ctx, url, jsonHeaders())
	if err != nil {
		return fmt.Errorf("yfinance ping: %w", err)
	}
	body.Close()
	return nil
}

// --- Shared helpers ---

func jsonHeaders() map[string]string {
	return map[string]string{"Accept": "application/json"}
}

// fetchJSON performs a GET request and decodes the response into dest.
func fetchJSON(ctx context.Context, url string, dest any) error {
	body, _, err := infra.DoGet(ctx, url, jsonHeaders())
	if err != nil {
		return err
	}
	defer body.Close()

	data, err := io.ReadAll(body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return fmt.Errorf("parse JSON: %w", err)
	}
	return nil
}

func toYFTicker(symbol string) string {
	return utils.ToYFTicker(symbol)
}

// newResult creates a FetchResult with the current timestamp.
func newResult(data any) *provider.FetchResult {
	return &provider.FetchResult{
		Data:      data,
		FetchedAt: time.Now(),
	}
}

// newCachedResult creates a FetchResult marked as cached.
func newCachedResult(data any) *provider.FetchResult {
	return &provider.FetchResult{
		Data:      data,
		FetchedAt: time.Now(),
		Cached:    true,
	}
}

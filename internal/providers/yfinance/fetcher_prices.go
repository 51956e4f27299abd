package yfinance

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/openequity/equitypages/internal/provider"
	"github.com/openequity/equitypages/pkg/models"
)

const defaultRange = "10y"

// --- PriceHistory fetcher ---

type priceHistoryFetcher struct {
	provider.BaseFetcher
}

func newPriceHistoryFetcher() *priceHistoryFetcher {
	return &priceHistoryFetcher{
		BaseFetcher: provider.NewBaseFetcher(
			provider.ModelPriceHistory,
			"Daily close price history from Yahoo Finance",
			[]string{provider.ParamSymbol},
			[]string{provider.ParamRange},
			15*time.Minute, 5, time.Second,
		),
	}
}

func (f *priceHistoryFetcher) Fetch(ctx context.Context, params provider.QueryParams) (*provider.FetchResult, error) {
	if err := provider.ValidateParams(params, f.RequiredParams()); err != nil {
		return nil, err
	}
	symbol := params[provider.ParamSymbol]
	yfTicker := toYFTicker(symbol)

	rng := params[provider.ParamRange]
	if rng == "" {
		rng = defaultRange
	}

	cacheKey := provider.CacheKey(f.ModelType(), params)
	if cached, ok := f.CacheGet(cacheKey); ok {
		return newCachedResult(cached), nil
	}
	if err := f.RateLimit(ctx); err != nil {
		return nil, err
	}

	url := fmt.Sprintf("%s/v8/finance/chart/%s?range=%s&interval=1d",
		queryBase, yfTicker, rng)

	var resp yfChartResponse
	if err := fetchJSON(ctx, url, &resp); err != nil {
		return nil, fmt.Errorf("yfinance prices %s: %w", yfTicker, err)
	}
	chart, err := chartResult(&resp, symbol)
	if err != nil {
		return nil, err
	}

	prices := parseClosePrices(chart)
	f.CacheSetTTL(cacheKey, prices, 15*time.Minute)
	return newResult(prices), nil
}

// parseClosePrices pairs chart timestamps with close values, skipping
// gaps where the vendor reports no close for a session.
func parseClosePrices(chart *yfChartResult) []models.PricePoint {
	if len(chart.Indicators.Quote) == 0 {
		return nil
	}
	closes := chart.Indicators.Quote[0].Close
	n := len(chart.Timestamp)
	if len(closes) < n {
		n = len(closes)
	}

	prices := make([]models.PricePoint, 0, n)
	for i := 0; i < n; i++ {
		if closes[i] == nil {
			continue
		}
		prices = append(prices, models.PricePoint{
			Date:  time.Unix(chart.Timestamp[i], 0).UTC(),
			Close: *closes[i],
		})
	}
	return prices
}

func chartResult(resp *yfChartResponse, symbol string) (*yfChartResult, error) {
	if resp.Chart.Error != nil {
		return nil, fmt.Errorf("yfinance API error: %s", resp.Chart.Error.Description)
	}
	if len(resp.Chart.Result) == 0 {
		return nil, fmt.Errorf("no chart data for %s", symbol)
	}
	return &resp.Chart.Result[0], nil
}

// --- HistoricalDividends fetcher ---

type dividendsFetcher struct {
	provider.BaseFetcher
}

func newDividendsFetcher() *dividendsFetcher {
	return &dividendsFetcher{
		BaseFetcher: provider.NewBaseFetcher(
			provider.ModelHistoricalDividends,
			"Historical dividend events from Yahoo Finance",
			[]string{provider.ParamSymbol},
			[]string{provider.ParamRange},
			1*time.Hour, 5, time.Second,
		),
	}
}

func (f *dividendsFetcher) Fetch(ctx context.Context, params provider.QueryParams) (*provider.FetchResult, error) {
	if err := provider.ValidateParams(params, f.RequiredParams()); err != nil {
		return nil, err
	}
	symbol := params[provider.ParamSymbol]
	yfTicker := toYFTicker(symbol)

	rng := params[provider.ParamRange]
	if rng == "" {
		rng = defaultRange
	}

	cacheKey := provider.CacheKey(f.ModelType(), params)
	if cached, ok := f.CacheGet(cacheKey); ok {
		return newCachedResult(cached), nil
	}
	if err := f.RateLimit(ctx); err != nil {
		return nil, err
	}

	url := fmt.Sprintf("%s/v8/finance/chart/%s?range=%s&interval=1d&events=div",
		queryBase, yfTicker, rng)

	var resp yfChartResponse
	if err := fetchJSON(ctx, url, &resp); err != nil {
		return nil, fmt.Errorf("yfinance dividends %s: %w", yfTicker, err)
	}
	chart, err := chartResult(&resp, symbol)
	if err != nil {
		return nil, err
	}

	dividends := parseDividends(symbol, chart)
	f.CacheSetTTL(cacheKey, dividends, 1*time.Hour)
	return newResult(dividends), nil
}

func parseDividends(symbol string, chart *yfChartResult) []models.DividendRecord {
	if chart.Events == nil || len(chart.Events.Dividends) == 0 {
		return nil
	}
	records := make([]models.DividendRecord, 0, len(chart.Events.Dividends))
	for _, ev := range chart.Events.Dividends {
		records = append(records, models.DividendRecord{
			Symbol: symbol,
			ExDate: time.Unix(ev.Date, 0).UTC(),
			Amount: ev.Amount,
		})
	}
	sort.Slice(records, func(i, j int) bool { return records[i].ExDate.Before(records[j].ExDate) })
	return records
}

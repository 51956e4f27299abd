package yfinance

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/openequity/equitypages/internal/provider"
	"github.com/openequity/equitypages/pkg/models"
)

// --- EquityQuote fetcher ---

type quoteFetcher struct {
	provider.BaseFetcher
}

func newQuoteFetcher() *quoteFetcher {
	return &quoteFetcher{
		BaseFetcher: provider.NewBaseFetcher(
			provider.ModelEquityQuote,
			"Real-time quote from Yahoo Finance",
			[]string{provider.ParamSymbol},
			nil,
			1*time.Minute, 10, time.Second,
		),
	}
}

func (f *quoteFetcher) Fetch(ctx context.Context, params provider.QueryParams) (*provider.FetchResult, error) {
	if err := provider.ValidateParams(params, f.RequiredParams()); err != nil {
		return nil, err
	}
	symbol := params[provider.ParamSymbol]
	yfTicker := toYFTicker(symbol)

	cacheKey := provider.CacheKey(f.ModelType(), params)
	if cached, ok := f.CacheGet(cacheKey); ok {
		return newCachedResult(cached), nil
	}
	if err := f.RateLimit(ctx); err != nil {
		return nil, err
	}

	u := fmt.Sprintf("%s/v7/finance/quote?symbols=%s", queryBase, url.QueryEscape(yfTicker))

	var resp yfQuoteResponse
	if err := fetchJSON(ctx, u, &resp); err != nil {
		return nil, fmt.Errorf("yfinance quote %s: %w", yfTicker, err)
	}
	if resp.QuoteResponse.Error != nil {
		return nil, fmt.Errorf("yfinance API error: %s", resp.QuoteResponse.Error.Description)
	}
	if len(resp.QuoteResponse.Result) == 0 {
		return nil, fmt.Errorf("no quote data for %s", symbol)
	}

	r := resp.QuoteResponse.Result[0]
	name := r.LongName
	if name == "" {
		name = r.ShortName
	}
	quote := &models.Quote{
		Symbol:    symbol,
		Name:      name,
		Exchange:  r.Exchange,
		Price:     r.RegularMarketPrice,
		PrevClose: r.RegularMarketPreviousClose,
		Timestamp: time.Unix(r.RegularMarketTime, 0).UTC(),
	}

	f.CacheSetTTL(cacheKey, quote, 1*time.Minute)
	return newResult(quote), nil
}

// --- Recommendations fetcher ---

type recommendationsFetcher struct {
	provider.BaseFetcher
}

func newRecommendationsFetcher() *recommendationsFetcher {
	return &recommendationsFetcher{
		BaseFetcher: provider.NewBaseFetcher(
			provider.ModelRecommendations,
			"Analyst recommendation trend from Yahoo Finance",
			[]string{provider.ParamSymbol},
			nil,
			1*time.Hour, 5, time.Second,
		),
	}
}

func (f *recommendationsFetcher) Fetch(ctx context.Context, params provider.QueryParams) (*provider.FetchResult, error) {
	if err := provider.ValidateParams(params, f.RequiredParams()); err != nil {
		return nil, err
	}
	symbol := params[provider.ParamSymbol]
	yfTicker := toYFTicker(symbol)

	cacheKey := provider.CacheKey(f.ModelType(), params)
	if cached, ok := f.CacheGet(cacheKey); ok {
		return newCachedResult(cached), nil
	}
	if err := f.RateLimit(ctx); err != nil {
		return nil, err
	}

	u := fmt.Sprintf("%s/v10/finance/quoteSummary/%s?modules=recommendationTrend",
		queryBase, url.PathEscape(yfTicker))

	var resp yfQuoteSummaryResponse
	if err := fetchJSON(ctx, u, &resp); err != nil {
		return nil, fmt.Errorf("yfinance recommendations %s: %w", yfTicker, err)
	}
	if resp.QuoteSummary.Error != nil {
		return nil, fmt.Errorf("yfinance API error: %s", resp.QuoteSummary.Error.Description)
	}

	summary := parseRecommendations(&resp)
	if summary == nil {
		return nil, fmt.Errorf("no recommendation data for %s", symbol)
	}

	f.CacheSetTTL(cacheKey, summary, 1*time.Hour)
	return newResult(summary), nil
}

// parseRecommendations picks the current-month trend entry.
func parseRecommendations(resp *yfQuoteSummaryResponse) *models.RecommendationSummary {
	for _, res := range resp.QuoteSummary.Result {
		if res.RecommendationTrend == nil {
			continue
		}
		for _, trend := range res.RecommendationTrend.Trend {
			if trend.Period != "0m" {
				continue
			}
			return &models.RecommendationSummary{
				StrongBuy:  trend.StrongBuy,
				Buy:        trend.Buy,
				Hold:       trend.Hold,
				Sell:       trend.Sell,
				StrongSell: trend.StrongSell,
			}
		}
	}
	return nil
}

package yfinance

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/mmcdole/gofeed"

	"github.com/openequity/equitypages/internal/provider"
	"github.com/openequity/equitypages/pkg/models"
)

const defaultNewsLimit = 10

// --- CompanyNews fetcher ---

type newsFetcher struct {
	provider.BaseFetcher
	parser *gofeed.Parser
}

func newNewsFetcher() *newsFetcher {
	return &newsFetcher{
		BaseFetcher: provider.NewBaseFetcher(
			provider.ModelCompanyNews,
			"Company headlines from the Yahoo Finance RSS feed",
			[]string{provider.ParamSymbol},
			[]string{provider.ParamLimit},
			10*time.Minute, 2, time.Second,
		),
		parser: gofeed.NewParser(),
	}
}

func (f *newsFetcher) Fetch(ctx context.Context, params provider.QueryParams) (*provider.FetchResult, error) {
	if err := provider.ValidateParams(params, f.RequiredParams()); err != nil {
		return nil, err
	}
	symbol := params[provider.ParamSymbol]
	yfTicker := toYFTicker(symbol)

	limit := defaultNewsLimit
	if v := params[provider.ParamLimit]; v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}

	cacheKey := provider.CacheKey(f.ModelType(), params)
	if cached, ok := f.CacheGet(cacheKey); ok {
		return newCachedResult(cached), nil
	}
	if err := f.RateLimit(ctx); err != nil {
		return nil, err
	}

	feedURL := fmt.Sprintf("%s/rss/2.0/headline?s=%s&region=US&lang=en-US",
		feedBase, url.QueryEscape(yfTicker))

	feed, err := f.parser.ParseURLWithContext(feedURL, ctx)
	if err != nil {
		return nil, fmt.Errorf("yfinance news %s: %w", yfTicker, err)
	}

	articles := make([]models.NewsArticle, 0, limit)
	for _, item := range feed.Items {
		if len(articles) >= limit {
			break
		}
		article := models.NewsArticle{
			Title:  item.Title,
			Link:   item.Link,
			Source: "Yahoo Finance",
		}
		if item.PublishedParsed != nil {
			article.Published = *item.PublishedParsed
		}
		articles = append(articles, article)
	}

	f.CacheSetTTL(cacheKey, articles, 10*time.Minute)
	return newResult(articles), nil
}

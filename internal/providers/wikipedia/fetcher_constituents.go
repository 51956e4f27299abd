package wikipedia

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/openequity/equitypages/internal/infra"
	"github.com/openequity/equitypages/internal/provider"
	"github.com/openequity/equitypages/pkg/models"
	"github.com/openequity/equitypages/pkg/utils"
)

// --- ConstituentList fetcher ---

type constituentsFetcher struct {
	provider.BaseFetcher
}

func newConstituentsFetcher() *constituentsFetcher {
	return &constituentsFetcher{
		BaseFetcher: provider.NewBaseFetcher(
			provider.ModelConstituentList,
			"Current S&P 500 component list",
			nil,
			nil,
			24*time.Hour, 1, time.Second,
		),
	}
}

func (f *constituentsFetcher) Fetch(ctx context.Context, params provider.QueryParams) (*provider.FetchResult, error) {
	cacheKey := provider.CacheKey(f.ModelType(), params)
	if cached, ok := f.CacheGet(cacheKey); ok {
		return newCachedResult(cached), nil
	}
	if err := f.RateLimit(ctx); err != nil {
		return nil, err
	}

	body, _, err := infra.DoGet(ctx, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("wikipedia constituents: %w", err)
	}
	defer body.Close()

	doc, err := goquery.NewDocumentFromReader(body)
	if err != nil {
		return nil, fmt.Errorf("parse constituents page: %w", err)
	}

	constituents := parseConstituentsTable(doc)
	if len(constituents) == 0 {
		return nil, fmt.Errorf("no constituents found in page")
	}

	f.CacheSetTTL(cacheKey, constituents, 24*time.Hour)
	return newResult(constituents), nil
}

// parseConstituentsTable reads the component table. Column order on the
// article has been stable for years: Symbol, Security, GICS Sector,
// GICS Sub-Industry, then location and listing metadata.
func parseConstituentsTable(doc *goquery.Document) []models.Constituent {
	var constituents []models.Constituent
	doc.Find("table#constituents tbody tr").Each(func(_ int, row *goquery.Selection) {
		cells := row.Find("td")
		if cells.Length() < 4 {
			return // header row
		}
		symbol := strings.TrimSpace(cells.Eq(0).Text())
		if symbol == "" {
			return
		}
		constituents = append(constituents, models.Constituent{
			Symbol:      symbol,
			SymbolYF:    utils.ToYFTicker(symbol),
			Security:    strings.TrimSpace(cells.Eq(1).Text()),
			Sector:      strings.TrimSpace(cells.Eq(2).Text()),
			SubIndustry: strings.TrimSpace(cells.Eq(3).Text()),
		})
	})
	return constituents
}

func newResult(data any) *provider.FetchResult {
	return &provider.FetchResult{Data: data, FetchedAt: time.Now()}
}

func newCachedResult(data any) *provider.FetchResult {
	return &provider.FetchResult{Data: data, FetchedAt: time.Now(), Cached: true}
}

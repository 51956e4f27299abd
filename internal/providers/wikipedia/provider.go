// Package wikipedia implements the index-constituents provider, scraping
// the S&P 500 component table from the English Wikipedia article.
package wikipedia

import (
	"context"
	"fmt"

	"github.com/openequity/equitypages/internal/infra"
	"github.com/openequity/equitypages/internal/provider"
)

const providerName = "wikipedia"

// pageURL is overridable so tests can point the scraper at a local server.
var pageURL = "https://en.wikipedia.org/wiki/List_of_S%26P_500_companies"

// Provider implements provider.Provider for Wikipedia.
type Provider struct {
	provider.BaseProvider
}

// New creates the Wikipedia provider and registers its fetcher.
func New() *Provider {
	p := &Provider{
		BaseProvider: provider.NewBaseProvider(
			providerName,
			"S&P 500 constituents scraped from Wikipedia",
			"https://en.wikipedia.org",
		),
	}
	p.RegisterFetcher(newConstituentsFetcher())
	return p
}

// Ping checks that the constituents article is reachable.
func (p *Provider) Ping(ctx context.Context) error {
	body, _, err := infra.DoGet(ctx, pageURL, nil)
	if err != nil {
		return fmt.Errorf("wikipedia ping: %w", err)
	}
	body.Close()
	return nil
}

// Package pipeline orchestrates the batch run: constituents, market
// metrics for the whole universe, and per-security report artifacts.
// Per-symbol failures are logged and skipped; only startup defects
// (config, alias tables) abort a run.
package pipeline

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/openequity/equitypages/internal/analysis/riskreturn"
	"github.com/openequity/equitypages/internal/analysis/statement"
	"github.com/openequity/equitypages/internal/config"
	"github.com/openequity/equitypages/internal/provider"
	"github.com/openequity/equitypages/internal/report"
	"github.com/openequity/equitypages/pkg/models"
	"github.com/openequity/equitypages/pkg/utils"
)

// Pipeline wires providers, normalizers, and the report assembler.
type Pipeline struct {
	registry *provider.Registry
	cfg      *config.Config

	balanceNorm  *statement.Normalizer
	incomeNorm   *statement.Normalizer
	cashFlowNorm *statement.Normalizer
}

// New builds a pipeline. Alias table validation happens here, so a
// malformed table fails the process at startup rather than per symbol.
func New(reg *provider.Registry, cfg *config.Config) (*Pipeline, error) {
	balanceNorm, err := statement.New(nil)
	if err != nil {
		return nil, fmt.Errorf("balance normalizer: %w", err)
	}
	incomeNorm, err := statement.New(statement.IncomeAliases)
	if err != nil {
		return nil, fmt.Errorf("income normalizer: %w", err)
	}
	cashFlowNorm, err := statement.New(statement.CashFlowAliases)
	if err != nil {
		return nil, fmt.Errorf("cash flow normalizer: %w", err)
	}
	return &Pipeline{
		registry:     reg,
		cfg:          cfg,
		balanceNorm:  balanceNorm,
		incomeNorm:   incomeNorm,
		cashFlowNorm: cashFlowNorm,
	}, nil
}

// Run executes the full batch: constituents, stocks index, market
// metrics, then per-security reports.
func (p *Pipeline) Run(ctx context.Context) error {
	constituents, err := p.Constituents(ctx)
	if err != nil {
		return err
	}
	log.Printf("pipeline: %d constituents", len(constituents))

	if err := report.WriteStocksJSON(p.cfg.Output.StocksJSON, constituents); err != nil {
		return err
	}

	metrics := p.MarketMetrics(ctx, constituents)
	log.Printf("pipeline: metrics for %d symbols", len(metrics))

	return p.GenerateReports(ctx, constituents, metrics)
}

// RunOne generates the report artifacts for a single security. The
// full universe is still fetched so peer groups and the scatter chart
// stay complete.
func (p *Pipeline) RunOne(ctx context.Context, symbol string) error {
	constituents, err := p.Constituents(ctx)
	if err != nil {
		return err
	}

	want := strings.ToUpper(symbol)
	var target *models.Constituent
	for i := range constituents {
		c := &constituents[i]
		if strings.ToUpper(c.Symbol) == want || strings.ToUpper(c.SymbolYF) == want {
			target = c
			break
		}
	}
	if target == nil {
		return fmt.Errorf("symbol %s is not in the constituent list", symbol)
	}

	metrics := p.MarketMetrics(ctx, constituents)
	return p.generateOne(ctx, *target, constituents, metrics)
}

// Constituents fetches the index component list and enriches each entry
// with its exchange and day-over-day change from a quote. A failed quote
// leaves the defaults in place; it never drops the constituent.
func (p *Pipeline) Constituents(ctx context.Context) ([]models.Constituent, error) {
	res, err := p.registry.Fetch(ctx, provider.ModelConstituentList, provider.QueryParams{})
	if err != nil {
		return nil, fmt.Errorf("fetch constituents: %w", err)
	}
	constituents, ok := res.Data.([]models.Constituent)
	if !ok {
		return nil, fmt.Errorf("unexpected constituents payload %T", res.Data)
	}
	if limit := p.cfg.Pipeline.Limit; limit > 0 && len(constituents) > limit {
		constituents = constituents[:limit]
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.workers())
	for i := range constituents {
		i := i
		g.Go(func() error {
			c := &constituents[i]
			quote, err := p.fetchQuote(gctx, c.SymbolYF)
			if err != nil {
				log.Printf("pipeline: quote %s: %v", c.Symbol, err)
				c.Exchange = utils.ExchangeName("")
				return nil
			}
			c.Exchange = utils.ExchangeName(quote.Exchange)
			if quote.PrevClose != 0 {
				change := (quote.Price - quote.PrevClose) / quote.PrevClose
				c.DailyChange = &change
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return constituents, nil
}

// MarketMetrics computes risk/return metrics for every constituent plus
// the benchmark index and the sector ETFs. Failed symbols are skipped.
func (p *Pipeline) MarketMetrics(ctx context.Context, constituents []models.Constituent) map[string]models.SymbolMetrics {
	symbols := make([]string, 0, len(constituents)+12)
	for _, c := range constituents {
		symbols = append(symbols, c.SymbolYF)
	}
	symbols = append(symbols, p.cfg.Pipeline.Benchmark)
	symbols = append(symbols, utils.SectorETFs()...)

	metrics := make(map[string]models.SymbolMetrics, len(symbols))
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.workers())
	for _, symbol := range symbols {
		symbol := symbol
		g.Go(func() error {
			prices, err := p.fetchPrices(gctx, symbol)
			if err != nil {
				log.Printf("pipeline: prices %s: %v", symbol, err)
				return nil
			}
			sm := riskreturn.Compute(symbol, prices, riskreturn.DefaultPeriods)
			mu.Lock()
			metrics[symbol] = sm
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		log.Printf("pipeline: metrics batch: %v", err)
	}
	return metrics
}

// GenerateReports writes the JSON payload (and optionally the HTML page)
// for every constituent. One bad symbol never aborts the batch.
func (p *Pipeline) GenerateReports(ctx context.Context, constituents []models.Constituent, metrics map[string]models.SymbolMetrics) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.workers())

	for _, c := range constituents {
		c := c
		g.Go(func() error {
			if err := p.generateOne(gctx, c, constituents, metrics); err != nil {
				log.Printf("pipeline: report %s: %v", c.Symbol, err)
			}
			return nil
		})
	}
	return g.Wait()
}

func (p *Pipeline) generateOne(ctx context.Context, c models.Constituent, universe []models.Constituent, metrics map[string]models.SymbolMetrics) error {
	bundle := p.Statements(ctx, c.SymbolYF)
	dividends, err := p.fetchDividends(ctx, c.SymbolYF)
	if err != nil {
		log.Printf("pipeline: dividends %s: %v", c.Symbol, err)
	}
	ratings := p.fetchRatings(ctx, c.SymbolYF)
	news := p.fetchNews(ctx, c.SymbolYF)

	payload := report.BuildPayload(report.Inputs{
		Constituent: c,
		Statements:  bundle,
		Dividends:   dividends,
		Ratings:     ratings,
		News:        news,
		Universe:    universe,
		Metrics:     metrics,
		Period:      p.cfg.Pipeline.ScatterPeriod,
	})

	if err := report.WritePayload(p.cfg.Output.ReportsDir, payload); err != nil {
		return err
	}
	if p.cfg.Output.HTML {
		if err := report.WriteHTML(p.cfg.Output.ReportsDir, payload); err != nil {
			return err
		}
	}
	return nil
}

// Statements fetches and normalizes all statement categories for one
// security. Missing statements degrade to empty series.
func (p *Pipeline) Statements(ctx context.Context, symbol string) models.StatementBundle {
	bundle := models.StatementBundle{Symbol: symbol}

	bundle.BalanceSheet = p.normalizePair(ctx, symbol, provider.StatementBalanceSheet,
		p.balanceNorm, statement.BalanceSheetTargets)
	bundle.Income = p.normalizePair(ctx, symbol, provider.StatementIncome,
		p.incomeNorm, statement.IncomeTargets)
	bundle.CashFlow = p.normalizePair(ctx, symbol, provider.StatementCashFlow,
		p.cashFlowNorm, statement.CashFlowTargets)

	// Payout items live on the cash-flow statement; normalize the same
	// raw tables against the payout target set.
	bundle.Payout = p.normalizePair(ctx, symbol, provider.StatementCashFlow,
		p.cashFlowNorm, statement.PayoutTargets)

	return bundle
}

func (p *Pipeline) normalizePair(ctx context.Context, symbol, category string, norm *statement.Normalizer, targets []string) models.PeriodPair {
	var pair models.PeriodPair
	pair.Annual = norm.Normalize(p.fetchStatement(ctx, symbol, category, "annual"), targets)
	pair.Quarterly = norm.Normalize(p.fetchStatement(ctx, symbol, category, "quarterly"), targets)
	return pair
}

// --- Fetch helpers ---

func (p *Pipeline) fetchStatement(ctx context.Context, symbol, category, period string) *models.RawStatement {
	res, err := p.registry.Fetch(ctx, provider.ModelFinancialStatements, provider.QueryParams{
		provider.ParamSymbol:    symbol,
		provider.ParamStatement: category,
		provider.ParamPeriod:    period,
	})
	if err != nil {
		log.Printf("pipeline: %s %s %s: %v", symbol, category, period, err)
		return nil
	}
	raw, _ := res.Data.(*models.RawStatement)
	return raw
}

func (p *Pipeline) fetchPrices(ctx context.Context, symbol string) ([]models.PricePoint, error) {
	res, err := p.registry.Fetch(ctx, provider.ModelPriceHistory, provider.QueryParams{
		provider.ParamSymbol: symbol,
		provider.ParamRange:  p.cfg.Pipeline.PriceRange,
	})
	if err != nil {
		return nil, err
	}
	prices, ok := res.Data.([]models.PricePoint)
	if !ok {
		return nil, fmt.Errorf("unexpected price payload %T", res.Data)
	}
	return prices, nil
}

func (p *Pipeline) fetchDividends(ctx context.Context, symbol string) ([]models.DividendRecord, error) {
	res, err := p.registry.Fetch(ctx, provider.ModelHistoricalDividends, provider.QueryParams{
		provider.ParamSymbol: symbol,
		provider.ParamRange:  p.cfg.Pipeline.PriceRange,
	})
	if err != nil {
		return nil, err
	}
	dividends, _ := res.Data.([]models.DividendRecord)
	return dividends, nil
}

func (p *Pipeline) fetchQuote(ctx context.Context, symbol string) (*models.Quote, error) {
	res, err := p.registry.Fetch(ctx, provider.ModelEquityQuote, provider.QueryParams{
		provider.ParamSymbol: symbol,
	})
	if err != nil {
		return nil, err
	}
	quote, ok := res.Data.(*models.Quote)
	if !ok {
		return nil, fmt.Errorf("unexpected quote payload %T", res.Data)
	}
	return quote, nil
}

// fetchRatings is best-effort; most securities have a trend, some don't.
func (p *Pipeline) fetchRatings(ctx context.Context, symbol string) *models.RecommendationSummary {
	res, err := p.registry.Fetch(ctx, provider.ModelRecommendations, provider.QueryParams{
		provider.ParamSymbol: symbol,
	})
	if err != nil {
		return nil
	}
	ratings, _ := res.Data.(*models.RecommendationSummary)
	return ratings
}

// fetchNews is best-effort; a missing or empty feed leaves the report
// without a headlines section.
func (p *Pipeline) fetchNews(ctx context.Context, symbol string) []models.NewsArticle {
	res, err := p.registry.Fetch(ctx, provider.ModelCompanyNews, provider.QueryParams{
		provider.ParamSymbol: symbol,
	})
	if err != nil {
		return nil
	}
	articles, _ := res.Data.([]models.NewsArticle)
	return articles
}

func (p *Pipeline) workers() int {
	if p.cfg.Pipeline.Workers > 0 {
		return p.cfg.Pipeline.Workers
	}
	return 1
}

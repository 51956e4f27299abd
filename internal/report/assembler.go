package report

import (
	"sort"

	"github.com/openequity/equitypages/internal/analysis/fundamental"
	"github.com/openequity/equitypages/pkg/models"
	"github.com/openequity/equitypages/pkg/utils"
)

// benchmarkSymbol anchors every risk/return scatter.
const benchmarkSymbol = "^GSPC"

// Inputs bundles everything the assembler needs for one security.
type Inputs struct {
	Constituent models.Constituent
	Statements  models.StatementBundle
	Dividends   []models.DividendRecord
	Ratings     *models.RecommendationSummary
	News        []models.NewsArticle
	Universe    []models.Constituent
	Metrics     map[string]models.SymbolMetrics
	Period      string // scatter lookback, e.g. "1y"
}

// BuildPayload derives all chart data for one security and assembles the
// JSON payload. Empty inputs degrade to omitted charts, never to errors.
func BuildPayload(in Inputs) *Payload {
	c := in.Constituent
	exchange := utils.ExchangeName(c.Exchange)

	p := &Payload{
		Symbol:      c.Symbol,
		SymbolYF:    c.SymbolYF,
		Security:    c.Security,
		Sector:      c.Sector,
		SubIndustry: c.SubIndustry,
		Exchange:    exchange,
		FullSymbol:  utils.FullSymbol(exchange, c.Symbol),
		SectorETF:   utils.SectorETF(c.Sector),

		AnalystRatings: in.Ratings,
	}

	p.Charts.BalanceSheet = balanceChart(in.Statements.BalanceSheet)
	p.Charts.Income = incomeChart(in.Statements.Income)
	p.Charts.CashFlow = seriesChart(in.Statements.CashFlow)
	p.Charts.Payout = payoutChart(in.Statements.Payout)
	p.Charts.Dividends = dividendChart(in.Dividends, in.Statements.Income.Annual)
	p.Charts.RiskReturn = riskReturnChart(in.Metrics, c.SymbolYF, p.SectorETF, in.Period)

	p.Peers = peerGroups(in.Universe, c, in.Metrics)
	p.News = in.News
	return p
}

func balanceChart(pair models.PeriodPair) *BalanceChart {
	if pair.Empty() {
		return nil
	}
	return &BalanceChart{
		Annual:    fundamental.BalancePresentation(pair.Annual),
		Quarterly: fundamental.BalancePresentation(pair.Quarterly),
	}
}

func incomeChart(pair models.PeriodPair) *SeriesChart {
	if pair.Empty() {
		return nil
	}
	return &SeriesChart{
		Annual:    pair.Annual,
		Quarterly: pair.Quarterly,
		Margins:   fundamental.MarginRatios(pair.Annual),
	}
}

func seriesChart(pair models.PeriodPair) *SeriesChart {
	if pair.Empty() {
		return nil
	}
	return &SeriesChart{Annual: pair.Annual, Quarterly: pair.Quarterly}
}

func payoutChart(pair models.PeriodPair) *SeriesChart {
	if pair.Empty() {
		return nil
	}
	return &SeriesChart{
		Annual:    fundamental.PayoutRatios(pair.Annual),
		Quarterly: fundamental.PayoutRatios(pair.Quarterly),
	}
}

func dividendChart(dividends []models.DividendRecord, income models.NormalizedSeries) *DividendChart {
	if len(dividends) == 0 {
		return nil
	}
	return &DividendChart{
		Dividends: dividends,
		NetIncome: income.Filter("Net Income"),
	}
}

// riskReturnChart flattens the metrics universe into scatter points,
// tagging the target, the index benchmark, and the sector ETF so the
// site can highlight them.
func riskReturnChart(metrics map[string]models.SymbolMetrics, target, sectorETF, period string) *RiskReturnChart {
	if len(metrics) == 0 || period == "" {
		return nil
	}

	chart := &RiskReturnChart{Period: period}
	for symbol, sm := range metrics {
		pm, ok := sm.Periods[period]
		if !ok || pm.Volatility == nil || pm.Return == nil {
			continue
		}
		role := RolePeer
		switch symbol {
		case target:
			role = RoleTarget
		case benchmarkSymbol:
			role = RoleBenchmark
		case sectorETF:
			role = RoleSectorETF
		}
		chart.Points = append(chart.Points, ScatterPoint{
			Symbol:     symbol,
			Role:       role,
			Volatility: pm.Volatility,
			Return:     pm.Return,
		})
	}
	if len(chart.Points) == 0 {
		return nil
	}
	sortScatter(chart.Points)
	return chart
}

// sortScatter orders points by symbol so payloads are deterministic.
func sortScatter(points []ScatterPoint) {
	sort.Slice(points, func(i, j int) bool { return points[i].Symbol < points[j].Symbol })
}

func peerGroups(universe []models.Constituent, target models.Constituent, metrics map[string]models.SymbolMetrics) PeerGroups {
	var groups PeerGroups
	for _, c := range universe {
		if c.SymbolYF == target.SymbolYF {
			continue
		}
		if c.Sector != target.Sector {
			continue
		}
		tag := PeerTag{Symbol: c.Symbol, SymbolYF: c.SymbolYF, DailyChange: c.DailyChange}
		if tag.DailyChange == nil {
			if sm, ok := metrics[c.SymbolYF]; ok {
				tag.DailyChange = sm.DailyChange
			}
		}
		if c.SubIndustry == target.SubIndustry {
			groups.SubIndustry = append(groups.SubIndustry, tag)
		} else {
			groups.Sector = append(groups.Sector, tag)
		}
	}
	return groups
}

// Package report assembles per-security output artifacts: the JSON
// payload consumed by the companion site, the stocks.json index, and a
// static HTML report with TradingView embeds. Numeric series pass
// through exactly as produced by the analysis packages.
package report

import (
	"github.com/openequity/equitypages/internal/analysis/fundamental"
	"github.com/openequity/equitypages/pkg/models"
)

// Payload is the full JSON document written per security.
type Payload struct {
	Symbol      string `json:"symbol"`
	SymbolYF    string `json:"symbol_yf"`
	Security    string `json:"security"`
	Sector      string `json:"sector"`
	SubIndustry string `json:"sub_industry"`
	Exchange    string `json:"exchange"`
	FullSymbol  string `json:"full_symbol"`
	SectorETF   string `json:"sector_etf"`

	Charts         Charts                        `json:"charts"`
	AnalystRatings *models.RecommendationSummary `json:"analyst_ratings,omitempty"`
	Peers          PeerGroups                    `json:"peers"`
	News           []models.NewsArticle          `json:"news,omitempty"`
	Error          string                        `json:"error,omitempty"`
}

// Charts groups the per-security chart data. A nil chart means the
// underlying series was empty; the site renders "no data" for it.
type Charts struct {
	BalanceSheet *BalanceChart    `json:"bs,omitempty"`
	Income       *SeriesChart     `json:"is,omitempty"`
	CashFlow     *SeriesChart     `json:"cf,omitempty"`
	Payout       *SeriesChart     `json:"tp,omitempty"`
	Dividends    *DividendChart   `json:"dps,omitempty"`
	RiskReturn   *RiskReturnChart `json:"risk_return,omitempty"`
}

// BalanceChart carries the stacked balance-sheet presentation per
// reporting frequency.
type BalanceChart struct {
	Annual    fundamental.Presentation `json:"annual"`
	Quarterly fundamental.Presentation `json:"quarterly"`
}

// SeriesChart carries a normalized statement series per reporting
// frequency, with optional derived ratio series alongside.
type SeriesChart struct {
	Annual    models.NormalizedSeries `json:"annual"`
	Quarterly models.NormalizedSeries `json:"quarterly"`
	Margins   models.NormalizedSeries `json:"margins,omitempty"`
}

// DividendChart pairs the dividend event history with annual net income
// for the per-share overlay.
type DividendChart struct {
	Dividends []models.DividendRecord `json:"dividends"`
	NetIncome models.NormalizedSeries `json:"net_income,omitempty"`
}

// RiskReturnChart is the scatter data for one lookback period: the
// security, its benchmark, its sector ETF, and the rest of the universe.
type RiskReturnChart struct {
	Period string         `json:"period"`
	Points []ScatterPoint `json:"points"`
}

// ScatterPoint roles on the risk/return scatter.
const (
	RoleTarget    = "target"
	RoleBenchmark = "benchmark"
	RoleSectorETF = "sector_etf"
	RolePeer      = "peer"
)

// ScatterPoint is one security on the risk/return scatter.
type ScatterPoint struct {
	Symbol     string   `json:"symbol"`
	Role       string   `json:"role"`
	Volatility *float64 `json:"hv"`
	Return     *float64 `json:"ret"`
}

// PeerGroups splits the peer universe into same-sub-industry and
// same-sector-different-sub-industry lists.
type PeerGroups struct {
	SubIndustry []PeerTag `json:"sub_industry"`
	Sector      []PeerTag `json:"sector"`
}

// PeerTag is one linked peer chip on the report page.
type PeerTag struct {
	Symbol      string   `json:"symbol"`
	SymbolYF    string   `json:"symbol_yf"`
	DailyChange *float64 `json:"daily_change"`
}

// Package fundamental derives presentation aggregates and ratios from
// normalized statement series: balance-sheet stacking layouts, income
// margins, and shareholder-payout ratios. All functions are pure and
// tolerate missing items per an explicit zero/skip policy.
package fundamental

import (
	"github.com/openequity/equitypages/pkg/models"
)

const (
	itemTotalAssets      = "Total Assets"
	itemCurrentAssets    = "Current Assets"
	itemNonCurrentAssets = "Total Non Current Assets"
	itemCurrentLiab      = "Current Liabilities"
	itemNonCurrentLiab   = "Total Non Current Liabilities Net Minority Interest"
	itemTotalLiabilities = "Total Liabilities"
	itemEquity           = "Total Equity Gross Minority Interest"
)

// fixedLiabilityBreakdown is summed, missing items as zero, when the
// reported non-current liabilities total is absent or zero.
var fixedLiabilityBreakdown = []string{
	"Long Term Debt And Capital Lease Obligation",
	"Employee Benefits",
	"Non Current Deferred Liabilities",
	"Other Non Current Liabilities",
}

// PresentationRow is one reporting date of the balance-sheet layout.
// FixedBase and CurrentBase are stacking offsets: equity stacks from
// zero, fixed liabilities from the positive part of equity, current
// liabilities from fixed base plus fixed liabilities.
type PresentationRow struct {
	Date               string  `json:"date"`
	TotalAssets        float64 `json:"total_assets"`
	CurrentAssets      float64 `json:"current_assets"`
	FixedAssets        float64 `json:"fixed_assets"`
	CurrentLiabilities float64 `json:"current_liabilities"`
	FixedLiabilities   float64 `json:"fixed_liabilities"`
	TotalLiabilities   float64 `json:"total_liabilities"`
	Equity             float64 `json:"equity"`
	FixedBase          float64 `json:"fixed_base"`
	CurrentBase        float64 `json:"current_base"`
}

// Presentation is the chart-ready balance-sheet layout for one security.
// HasBreakdown selects between the four-part current/non-current layout
// and the collapsed assets-vs-liabilities layout.
type Presentation struct {
	HasBreakdown bool              `json:"has_breakdown"`
	Rows         []PresentationRow `json:"rows"`
}

// BalancePresentation builds the stacked balance-sheet layout from a
// normalized balance-sheet series. Dates without a strictly positive
// Total Assets value are structurally missing and excluded.
func BalancePresentation(series models.NormalizedSeries) Presentation {
	var p Presentation
	if series.Empty() {
		return p
	}

	currentAssetsSum := 0.0
	for _, date := range series.Dates() {
		ta, ok := series.ValueAt(itemTotalAssets, date)
		if !ok || ta <= 0 {
			continue
		}

		row := PresentationRow{
			Date:               date,
			TotalAssets:        ta,
			CurrentAssets:      valueOrZero(series, itemCurrentAssets, date),
			FixedAssets:        valueOrZero(series, itemNonCurrentAssets, date),
			CurrentLiabilities: valueOrZero(series, itemCurrentLiab, date),
			FixedLiabilities:   fixedLiabilities(series, date),
			TotalLiabilities:   valueOrZero(series, itemTotalLiabilities, date),
			Equity:             valueOrZero(series, itemEquity, date),
		}
		row.FixedBase = positivePart(row.Equity)
		row.CurrentBase = row.FixedBase + row.FixedLiabilities

		currentAssetsSum += row.CurrentAssets
		p.Rows = append(p.Rows, row)
	}

	p.HasBreakdown = currentAssetsSum != 0
	return p
}

// fixedLiabilities prefers the reported non-current total when non-zero,
// then falls back to summing the breakdown items.
func fixedLiabilities(series models.NormalizedSeries, date string) float64 {
	if v, ok := series.ValueAt(itemNonCurrentLiab, date); ok && v != 0 {
		return v
	}
	sum := 0.0
	for _, item := range fixedLiabilityBreakdown {
		sum += valueOrZero(series, item, date)
	}
	return sum
}

func valueOrZero(series models.NormalizedSeries, item, date string) float64 {
	v, _ := series.ValueAt(item, date)
	return v
}

func positivePart(v float64) float64 {
	if v > 0 {
		return v
	}
	return 0
}

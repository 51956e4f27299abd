package fundamental

import (
	"math"

	"github.com/openequity/equitypages/pkg/models"
)

const (
	itemNetIncomeContinuing = "Net Income From Continuing Operations"
	itemRepurchase          = "Repurchase Of Capital Stock"
	itemDividendsPaid       = "Cash Dividends Paid"

	itemDividendsRatio = "Dividends Ratio / Net Income"
	itemTotalPayout    = "Total Payout Ratio / Net Income"
)

// PayoutRatios derives shareholder-return ratios from a normalized
// payout series. Per date:
//
//   - a missing continuing-operations net income is backfilled from
//     Net Income;
//   - absent amounts count as 0.0, not null;
//   - ratios are 0.0 unless net income is strictly positive, so a
//     loss-making period never yields a negative payout ratio.
//
// The result concatenates the zero-filled raw amounts with the two
// synthetic ratio items, sorted by (Item, Date).
func PayoutRatios(series models.NormalizedSeries) models.NormalizedSeries {
	var out models.NormalizedSeries
	if series.Empty() {
		return out
	}

	for _, date := range series.Dates() {
		ni, ok := series.ValueAt(itemNetIncomeContinuing, date)
		if !ok {
			ni = valueOrZero(series, itemNetIncome, date)
		}
		repurchase := valueOrZero(series, itemRepurchase, date)
		dividends := valueOrZero(series, itemDividendsPaid, date)

		divRatio, totalRatio := 0.0, 0.0
		if ni > 0 {
			divRatio = math.Abs(dividends) / ni
			totalRatio = (math.Abs(repurchase) + math.Abs(dividends)) / ni
		}

		out = append(out,
			models.CanonicalRecord{Item: itemNetIncomeContinuing, Date: date, Value: ni},
			models.CanonicalRecord{Item: itemRepurchase, Date: date, Value: repurchase},
			models.CanonicalRecord{Item: itemDividendsPaid, Date: date, Value: dividends},
			models.CanonicalRecord{Item: itemDividendsRatio, Date: date, Value: divRatio},
			models.CanonicalRecord{Item: itemTotalPayout, Date: date, Value: totalRatio},
		)
	}

	out.Sort()
	return out
}

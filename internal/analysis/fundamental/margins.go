package fundamental

import (
	"math"

	"github.com/openequity/equitypages/pkg/models"
)

const (
	itemTotalRevenue    = "Total Revenue"
	itemGrossProfit     = "Gross Profit"
	itemOperatingIncome = "Operating Income"
	itemNetIncome       = "Net Income"
)

// marginNumerators pairs each emitted margin item with its numerator.
var marginNumerators = []struct {
	out, in string
}{
	{"Gross Margin", itemGrossProfit},
	{"Operating Margin", itemOperatingIncome},
	{"Net Margin", itemNetIncome},
}

// MarginRatios derives gross, operating, and net margins from a
// normalized income-statement series. Only dates with strictly positive
// revenue qualify; a ratio that comes out NaN or infinite is dropped
// rather than emitted.
func MarginRatios(series models.NormalizedSeries) models.NormalizedSeries {
	var out models.NormalizedSeries
	if series.Empty() {
		return out
	}

	for _, date := range series.Dates() {
		revenue, ok := series.ValueAt(itemTotalRevenue, date)
		if !ok || revenue <= 0 {
			continue
		}
		for _, m := range marginNumerators {
			num, ok := series.ValueAt(m.in, date)
			if !ok {
				continue
			}
			ratio := num / revenue
			if math.IsNaN(ratio) || math.IsInf(ratio, 0) {
				continue
			}
			out = append(out, models.CanonicalRecord{Item: m.out, Date: date, Value: ratio})
		}
	}

	out.Sort()
	return out
}

// Package statement converts raw vendor financial statements into
// canonical long-form series. It owns alias resolution across vendor
// schema variants, the wide-to-long reshape, and the lenient numeric
// cast policy: a cell that cannot be parsed is dropped, a statement
// that cannot be processed degrades to an empty series.
package statement

import (
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/openequity/equitypages/pkg/models"
)

// Normalizer resolves vendor labels against an alias table and reshapes
// raw statements into normalized series. It is stateless after
// construction and safe for concurrent use.
type Normalizer struct {
	aliases AliasTable
}

// New creates a Normalizer. An invalid alias table is a configuration
// defect and fails here, at startup, rather than per symbol.
func New(aliases AliasTable) (*Normalizer, error) {
	if aliases == nil {
		aliases = AliasTable{}
	}
	if err := aliases.Validate(); err != nil {
		return nil, err
	}
	return &Normalizer{aliases: aliases}, nil
}

// Normalize converts a raw wide statement into a canonical long-form
// series restricted to the target items. A nil or empty statement, and
// any internal failure, yield an empty series: downstream stages treat
// "empty" as the uniform no-data signal.
//
// The result is sorted by (Item, Date) ascending with unique pairs, and
// normalizing an already-canonical table again is a no-op.
func (n *Normalizer) Normalize(raw *models.RawStatement, targets []string) models.NormalizedSeries {
	series, err := n.normalize(raw, targets)
	if err != nil {
		log.Printf("statement: normalize %s: %v", symbolOf(raw), err)
		return nil
	}
	return series
}

func (n *Normalizer) normalize(raw *models.RawStatement, targets []string) (series models.NormalizedSeries, err error) {
	// The reshape indexes rows and columns from vendor-shaped input;
	// mirror the lenient boundary by converting any slip into the
	// empty-series signal instead of taking the whole batch down.
	defer func() {
		if r := recover(); r != nil {
			series, err = nil, fmt.Errorf("reshape: %v", r)
		}
	}()

	if raw.Empty() {
		return nil, nil
	}

	dropped := 0
	seen := make(map[string]bool)

	for _, item := range targets {
		row, ok := n.resolve(raw, item)
		if !ok {
			continue
		}

		for j, period := range raw.Periods {
			if isTTM(period) {
				continue
			}
			date := normalizeDate(period)
			if date == "" {
				continue
			}
			key := item + "\x00" + date
			if seen[key] {
				continue
			}
			if j >= len(row.Cells) {
				continue
			}
			cell := strings.TrimSpace(row.Cells[j])
			if cell == "" {
				continue
			}
			value, perr := strconv.ParseFloat(cell, 64)
			if perr != nil {
				dropped++
				continue
			}
			seen[key] = true
			series = append(series, models.CanonicalRecord{Item: item, Date: date, Value: value})
		}
	}

	if dropped > 0 {
		log.Printf("statement: %s: dropped %d non-numeric cells", symbolOf(raw), dropped)
	}

	series.Sort()
	return series, nil
}

// resolve finds the source row for a canonical item. The canonical label
// has top priority, then each alias in table order; a missing
// "Total Liabilities" falls back to its combined-label equivalents.
func (n *Normalizer) resolve(raw *models.RawStatement, item string) (models.RawRow, bool) {
	synonyms, ok := n.aliases[item]
	if !ok {
		synonyms = []string{item}
	}
	for _, label := range synonyms {
		if row, found := raw.Lookup(label); found {
			return row, true
		}
	}
	if item == itemTotalLiabilities {
		for _, label := range totalLiabilitiesEquivalents {
			if row, found := raw.Lookup(label); found {
				return row, true
			}
		}
	}
	return models.RawRow{}, false
}

// isTTM reports whether a period column is a synthetic trailing-twelve-
// months aggregate rather than a reporting date.
func isTTM(period string) bool {
	p := strings.ToLower(strings.TrimSpace(period))
	return p == "ttm" || strings.HasPrefix(p, "trailing")
}

// normalizeDate reduces a period header to a YYYY-MM-DD calendar date,
// discarding any embedded time-of-day or timezone suffix.
func normalizeDate(period string) string {
	p := strings.TrimSpace(period)
	if len(p) > 10 {
		p = p[:10]
	}
	if len(p) != 10 || p[4] != '-' || p[7] != '-' {
		return ""
	}
	return p
}

func symbolOf(raw *models.RawStatement) string {
	if raw == nil || raw.Symbol == "" {
		return "?"
	}
	return raw.Symbol
}

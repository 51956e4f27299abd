// Package models defines the shared value types passed between pipeline
// stages: raw vendor statements, normalized series, price history, and
// risk/return metrics. All types are plain immutable data: each stage
// produces a value and the next stage consumes it.
package models

import "sort"

// RawRow is a single line item in a raw vendor statement: a label and one
// cell per reporting period. Cells are kept as raw strings because vendors
// mix numerics, blanks, and junk tokens; the normalizer owns the cast.
type RawRow struct {
	Label string
	Cells []string // one per period, "" = not reported
}

// RawStatement is a wide financial statement table as returned by a vendor:
// one row per line-item label, one column per reporting period. Column
// headers are usually dates but may carry vendor period tags (including a
// synthetic trailing-twelve-months column). Row order is preserved as
// delivered. A nil or zero-row statement means "not published".
type RawStatement struct {
	Symbol  string
	Periods []string
	Rows    []RawRow
}

// Empty reports whether the statement carries no rows at all.
func (s *RawStatement) Empty() bool {
	return s == nil || len(s.Rows) == 0
}

// Lookup returns the first row with the given label.
func (s *RawStatement) Lookup(label string) (RawRow, bool) {
	if s == nil {
		return RawRow{}, false
	}
	for _, r := range s.Rows {
		if r.Label == label {
			return r, true
		}
	}
	return RawRow{}, false
}

// CanonicalRecord is the normalized atomic unit: one canonical line item,
// one calendar date (YYYY-MM-DD), one value.
type CanonicalRecord struct {
	Item  string  `json:"item"`
	Date  string  `json:"date"`
	Value float64 `json:"value"`
}

// NormalizedSeries is an ordered collection of canonical records. After
// normalization it is sorted by (Item, Date) and (Item, Date) pairs are
// unique.
type NormalizedSeries []CanonicalRecord

// Empty reports whether the series has no records.
func (ns NormalizedSeries) Empty() bool { return len(ns) == 0 }

// Filter returns the records for a single item, preserving order.
func (ns NormalizedSeries) Filter(item string) NormalizedSeries {
	var out NormalizedSeries
	for _, r := range ns {
		if r.Item == item {
			out = append(out, r)
		}
	}
	return out
}

// Dates returns the sorted distinct dates present in the series.
func (ns NormalizedSeries) Dates() []string {
	seen := make(map[string]bool)
	var dates []string
	for _, r := range ns {
		if !seen[r.Date] {
			seen[r.Date] = true
			dates = append(dates, r.Date)
		}
	}
	sort.Strings(dates)
	return dates
}

// ValueAt returns the value for (item, date), if present.
func (ns NormalizedSeries) ValueAt(item, date string) (float64, bool) {
	for _, r := range ns {
		if r.Item == item && r.Date == date {
			return r.Value, true
		}
	}
	return 0, false
}

// Sort orders the series by (Item, Date) ascending, in place.
func (ns NormalizedSeries) Sort() {
	sort.SliceStable(ns, func(i, j int) bool {
		if ns[i].Item != ns[j].Item {
			return ns[i].Item < ns[j].Item
		}
		return ns[i].Date < ns[j].Date
	})
}

// PeriodPair holds the annual and quarterly variants of one normalized
// statement category.
type PeriodPair struct {
	Annual    NormalizedSeries `json:"annual"`
	Quarterly NormalizedSeries `json:"quarterly"`
}

// Empty reports whether both variants are empty.
func (p PeriodPair) Empty() bool {
	return p.Annual.Empty() && p.Quarterly.Empty()
}

// StatementBundle is the full normalized fundamentals set for one security.
type StatementBundle struct {
	Symbol       string     `json:"symbol"`
	BalanceSheet PeriodPair `json:"bs"`
	Income       PeriodPair `json:"is"`
	CashFlow     PeriodPair `json:"cf"`
	Payout       PeriodPair `json:"tp"`
}

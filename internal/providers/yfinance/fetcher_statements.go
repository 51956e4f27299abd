package yfinance

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/openequity/equitypages/internal/provider"
	"github.com/openequity/equitypages/pkg/models"
)

// Line-item type keys per statement category, requested from the
// fundamentals-timeseries API. The spaced form of each key is the row
// label delivered downstream; the cash-flow set carries the net-income
// items so payout ratios can be derived from the same table.
var (
	balanceSheetTypes = []string{
		"TotalAssets",
		"CurrentAssets",
		"TotalNonCurrentAssets",
		"CurrentLiabilities",
		"TotalNonCurrentLiabilitiesNetMinorityInterest",
		"TotalLiabilitiesNetMinorityInterest",
		"TotalEquityGrossMinorityInterest",
		"LongTermDebtAndCapitalLeaseObligation",
		"EmployeeBenefits",
		"NonCurrentDeferredLiabilities",
		"OtherNonCurrentLiabilities",
	}
	incomeTypes = []string{
		"TotalRevenue",
		"OperatingRevenue",
		"GrossProfit",
		"OperatingIncome",
		"TotalOperatingIncomeAsReported",
		"NetIncome",
		"NetIncomeCommonStockholders",
	}
	cashFlowTypes = []string{
		"OperatingCashFlow",
		"InvestingCashFlow",
		"FinancingCashFlow",
		"FreeCashFlow",
		"CashDividendsPaid",
		"CommonStockDividendPaid",
		"RepurchaseOfCapitalStock",
		"CommonStockPayments",
		"NetIncomeFromContinuingOperations",
		"NetIncome",
	}
)

func statementTypes(category string) ([]string, error) {
	switch category {
	case provider.StatementBalanceSheet:
		return balanceSheetTypes, nil
	case provider.StatementIncome:
		return incomeTypes, nil
	case provider.StatementCashFlow:
		return cashFlowTypes, nil
	}
	return nil, fmt.Errorf("unknown statement category %q", category)
}

// --- FinancialStatements fetcher ---

type statementsFetcher struct {
	provider.BaseFetcher
}

func newStatementsFetcher() *statementsFetcher {
	return &statementsFetcher{
		BaseFetcher: provider.NewBaseFetcher(
			provider.ModelFinancialStatements,
			"Financial statements from Yahoo Finance fundamentals timeseries",
			[]string{provider.ParamSymbol, provider.ParamStatement},
			[]string{provider.ParamPeriod},
			1*time.Hour, 5, time.Second,
		),
	}
}

func (f *statementsFetcher) Fetch(ctx context.Context, params provider.QueryParams) (*provider.FetchResult, error) {
	if err := provider.ValidateParams(params, f.RequiredParams()); err != nil {
		return nil, err
	}
	symbol := params[provider.ParamSymbol]
	yfTicker := toYFTicker(symbol)

	types, err := statementTypes(params[provider.ParamStatement])
	if err != nil {
		return nil, err
	}
	prefix := "annual"
	if params[provider.ParamPeriod] == "quarterly" {
		prefix = "quarterly"
	}

	cacheKey := provider.CacheKey(f.ModelType(), params)
	if cached, ok := f.CacheGet(cacheKey); ok {
		return newCachedResult(cached), nil
	}
	if err := f.RateLimit(ctx); err != nil {
		return nil, err
	}

	prefixed := make([]string, len(types))
	for i, t := range types {
		prefixed[i] = prefix + t
	}
	now := time.Now()
	url := fmt.Sprintf(
		"%s/ws/fundamentals-timeseries/v1/finance/timeseries/%s?symbol=%s&type=%s&period1=%d&period2=%d",
		queryBase, yfTicker, yfTicker, strings.Join(prefixed, ","),
		now.AddDate(-10, 0, 0).Unix(), now.Unix(),
	)

	var resp yfTimeseriesResponse
	if err := fetchJSON(ctx, url, &resp); err != nil {
		return nil, fmt.Errorf("yfinance statements %s: %w", yfTicker, err)
	}
	if resp.Timeseries.Error != nil {
		return nil, fmt.Errorf("yfinance API error: %s", resp.Timeseries.Error.Description)
	}

	raw := buildRawStatement(symbol, resp.Timeseries.Result)
	f.CacheSetTTL(cacheKey, raw, 1*time.Hour)
	return newResult(raw), nil
}

// buildRawStatement pivots per-item timeseries results into a wide table:
// one row per line item, one column per as-of date. Trailing aggregates
// keep their vendor "TTM" tag so normalization can exclude them.
func buildRawStatement(symbol string, results []yfTimeseriesResult) *models.RawStatement {
	type cellKey struct{ label, period string }
	cells := make(map[cellKey]string)
	periodSet := make(map[string]bool)
	var labels []string
	seenLabel := make(map[string]bool)

	for _, res := range results {
		for typeKey, values := range res.Values {
			label := spaceCamel(stripPeriodPrefix(typeKey))
			if label == "" {
				continue
			}
			if !seenLabel[label] {
				seenLabel[label] = true
				labels = append(labels, label)
			}
			for _, v := range values {
				if v == nil {
					continue
				}
				period := v.AsOfDate
				if strings.EqualFold(v.PeriodType, "TTM") {
					period = "TTM"
				}
				periodSet[period] = true
				cells[cellKey{label, period}] = strconv.FormatFloat(v.ReportedValue.Raw, 'f', -1, 64)
			}
		}
	}

	if len(labels) == 0 {
		return &models.RawStatement{Symbol: symbol}
	}

	periods := make([]string, 0, len(periodSet))
	for p := range periodSet {
		periods = append(periods, p)
	}
	sort.Strings(periods)

	raw := &models.RawStatement{Symbol: symbol, Periods: periods}
	for _, label := range labels {
		row := models.RawRow{Label: label, Cells: make([]string, len(periods))}
		for i, p := range periods {
			row.Cells[i] = cells[cellKey{label, p}]
		}
		raw.Rows = append(raw.Rows, row)
	}
	return raw
}

// stripPeriodPrefix drops the annual/quarterly/trailing frequency prefix
// from a timeseries type key.
func stripPeriodPrefix(key string) string {
	for _, prefix := range []string{"annual", "quarterly", "trailing"} {
		if strings.HasPrefix(key, prefix) {
			return key[len(prefix):]
		}
	}
	return key
}

// spaceCamel converts "TotalLiabilitiesNetMinorityInterest" to
// "Total Liabilities Net Minority Interest".
func spaceCamel(s string) string {
	var b strings.Builder
	for i, r := range s {
		if i > 0 && unicode.IsUpper(r) {
			b.WriteByte(' ')
		}
		b.WriteRune(r)
	}
	return b.String()
}

// UnmarshalJSON decodes the fixed fields, then sweeps the remaining keys
// for the dynamically named per-type value arrays.
func (r *yfTimeseriesResult) UnmarshalJSON(data []byte) error {
	type fixed struct {
		Meta struct {
			Symbol []string `json:"symbol"`
			Type   []string `json:"type"`
		} `json:"meta"`
		Timestamp []int64 `json:"timestamp"`
	}
	var f fixed
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	r.Meta = f.Meta
	r.Timestamp = f.Timestamp

	var all map[string]json.RawMessage
	if err := json.Unmarshal(data, &all); err != nil {
		return err
	}
	r.Values = make(map[string][]*yfTimeseriesValue)
	for key, rawVal := range all {
		if key == "meta" || key == "timestamp" {
			continue
		}
		var vals []*yfTimeseriesValue
		if err := json.Unmarshal(rawVal, &vals); err != nil {
			continue // non-value field, skip
		}
		r.Values[key] = vals
	}
	return nil
}

// Package riskreturn computes trailing-window volatility and return
// statistics from daily close prices. Log returns are computed once per
// symbol over the full history, then sliced per lookback window; thin
// windows yield nil metrics rather than numbers computed on too little
// data.
package riskreturn

import (
	"math"
	"sort"
	"time"

	"github.com/openequity/equitypages/pkg/models"
)

// tradingDaysPerYear is the annualization factor for daily returns.
const tradingDaysPerYear = 252

// minObservations is the smallest return window worth reporting.
const minObservations = 5

// ytdFallbackDays is the trailing window used when the year-to-date
// slice is too thin early in January.
const ytdFallbackDays = 21

// PeriodSpec names a lookback window, either a fixed trailing count of
// trading days or the year-to-date marker.
type PeriodSpec struct {
	Key  string
	Days int
	YTD  bool
}

// DefaultPeriods is the standard lookback set, shortest to longest.
var DefaultPeriods = []PeriodSpec{
	{Key: "1mo", Days: 21},
	{Key: "6mo", Days: 126},
	{Key: "ytd", YTD: true},
	{Key: "1y", Days: 252},
	{Key: "2y", Days: 504},
	{Key: "5y", Days: 1260},
	{Key: "10y", Days: 2520},
}

// LogReturns computes ln(c_t / c_{t-1}) for each consecutive close pair,
// in date order. Pairs with a non-positive close on either side are
// skipped. The input is not modified.
func LogReturns(prices []models.PricePoint) []models.ReturnPoint {
	if len(prices) < 2 {
		return nil
	}
	sorted := make([]models.PricePoint, len(prices))
	copy(sorted, prices)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Date.Before(sorted[j].Date) })

	returns := make([]models.ReturnPoint, 0, len(sorted)-1)
	for i := 1; i < len(sorted); i++ {
		prev, cur := sorted[i-1].Close, sorted[i].Close
		if prev <= 0 || cur <= 0 {
			continue
		}
		returns = append(returns, models.ReturnPoint{
			Date:      sorted[i].Date,
			LogReturn: math.Log(cur / prev),
		})
	}
	return returns
}

// Compute derives per-period annualized volatility and return plus the
// day-over-day change for one symbol. Periods with fewer than five
// return observations report nil for both metrics.
func Compute(symbol string, prices []models.PricePoint, periods []PeriodSpec) models.SymbolMetrics {
	metrics := models.SymbolMetrics{
		Symbol:  symbol,
		Periods: make(map[string]models.PeriodMetrics, len(periods)),
	}

	returns := LogReturns(prices)
	metrics.DailyChange = dailyChange(prices)

	for _, spec := range periods {
		window := slice(returns, spec)
		metrics.Periods[spec.Key] = windowMetrics(window)
	}
	return metrics
}

// slice selects the return observations for one lookback window. The
// year-to-date window covers returns since January 1 of the latest
// observation's year, falling back to a short trailing window when the
// year has barely started.
func slice(returns []models.ReturnPoint, spec PeriodSpec) []models.ReturnPoint {
	if len(returns) == 0 {
		return nil
	}
	if spec.YTD {
		latest := returns[len(returns)-1].Date
		jan1 := time.Date(latest.Year(), time.January, 1, 0, 0, 0, 0, latest.Location())
		var ytd []models.ReturnPoint
		for _, r := range returns {
			if !r.Date.Before(jan1) {
				ytd = append(ytd, r)
			}
		}
		if len(ytd) >= minObservations {
			return ytd
		}
		return tail(returns, ytdFallbackDays)
	}
	return tail(returns, spec.Days)
}

func tail(returns []models.ReturnPoint, n int) []models.ReturnPoint {
	if n <= 0 || len(returns) <= n {
		return returns
	}
	return returns[len(returns)-n:]
}

func windowMetrics(window []models.ReturnPoint) models.PeriodMetrics {
	if len(window) < minObservations {
		return models.PeriodMetrics{}
	}
	mean := 0.0
	for _, r := range window {
		mean += r.LogReturn
	}
	mean /= float64(len(window))

	variance := 0.0
	for _, r := range window {
		d := r.LogReturn - mean
		variance += d * d
	}
	variance /= float64(len(window) - 1)

	vol := math.Sqrt(variance) * math.Sqrt(tradingDaysPerYear)
	ret := mean * tradingDaysPerYear
	return models.PeriodMetrics{Volatility: &vol, Return: &ret}
}

// dailyChange is the fractional move between the two most recent closes.
func dailyChange(prices []models.PricePoint) *float64 {
	if len(prices) < 2 {
		return nil
	}
	sorted := make([]models.PricePoint, len(prices))
	copy(sorted, prices)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Date.Before(sorted[j].Date) })

	prev := sorted[len(sorted)-2].Close
	last := sorted[len(sorted)-1].Close
	if prev == 0 {
		return nil
	}
	change := (last - prev) / prev
	return &change
}

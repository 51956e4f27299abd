package riskreturn

import (
	"math"
	"testing"
	"time"

	"github.com/openequity/equitypages/pkg/models"
)

func day(n int) time.Time {
	return time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, n)
}

func series(closes ...float64) []models.PricePoint {
	pts := make([]models.PricePoint, len(closes))
	for i, c := range closes {
		pts[i] = models.PricePoint{Date: day(i), Close: c}
	}
	return pts
}

func TestLogReturns(t *testing.T) {
	prices := series(100, 101, 99)
	got := LogReturns(prices)
	if len(got) != 2 {
		t.Fatalf("got %d returns, want 2", len(got))
	}
	want0 := math.Log(101.0 / 100.0)
	if math.Abs(got[0].LogReturn-want0) > 1e-12 {
		t.Errorf("first return = %v, want %v", got[0].LogReturn, want0)
	}
	if !got[0].Date.Equal(day(1)) {
		t.Errorf("return dated %v, want %v", got[0].Date, day(1))
	}
}

func TestLogReturnsSortsInput(t *testing.T) {
	prices := []models.PricePoint{
		{Date: day(2), Close: 99},
		{Date: day(0), Close: 100},
		{Date: day(1), Close: 101},
	}
	got := LogReturns(prices)
	if len(got) != 2 {
		t.Fatalf("got %d returns, want 2", len(got))
	}
	if got[0].LogReturn <= 0 || got[1].LogReturn >= 0 {
		t.Fatalf("returns out of date order: %v", got)
	}
}

func TestComputeNilOnThinData(t *testing.T) {
	m := Compute("AAPL", series(100, 101, 99), DefaultPeriods)
	for key, pm := range m.Periods {
		if pm.Volatility != nil || pm.Return != nil {
			t.Errorf("%s: expected nil metrics on 3 observations, got vol=%v ret=%v",
				key, pm.Volatility, pm.Return)
		}
	}
	if m.DailyChange == nil {
		t.Fatal("daily change should still be computed from 3 closes")
	}
}

func TestComputeFiveDayWindow(t *testing.T) {
	closes := []float64{100, 101, 99, 102, 103, 105}
	prices := series(closes...)

	returns := make([]float64, 0, 5)
	for i := 1; i < len(closes); i++ {
		returns = append(returns, math.Log(closes[i]/closes[i-1]))
	}
	mean := 0.0
	for _, r := range returns {
		mean += r
	}
	mean /= float64(len(returns))
	variance := 0.0
	for _, r := range returns {
		d := r - mean
		variance += d * d
	}
	variance /= float64(len(returns) - 1)
	wantVol := math.Sqrt(variance) * math.Sqrt(252)
	wantRet := mean * 252

	m := Compute("AAPL", prices, []PeriodSpec{{Key: "1w", Days: 5}})
	pm := m.Periods["1w"]
	if pm.Volatility == nil || pm.Return == nil {
		t.Fatal("expected metrics for 5 return observations")
	}
	if math.Abs(*pm.Volatility-wantVol) > 1e-9 {
		t.Errorf("volatility = %v, want %v", *pm.Volatility, wantVol)
	}
	if math.Abs(*pm.Return-wantRet) > 1e-9 {
		t.Errorf("return = %v, want %v", *pm.Return, wantRet)
	}

	wantChange := (105.0 - 103.0) / 103.0
	if m.DailyChange == nil || math.Abs(*m.DailyChange-wantChange) > 1e-12 {
		t.Errorf("daily change = %v, want %v", m.DailyChange, wantChange)
	}
}

func TestComputeYTDFallback(t *testing.T) {
	// 30 trading days ending Jan 3: only three January returns, so the
	// year-to-date window falls back to the trailing 21 days.
	var prices []models.PricePoint
	start := time.Date(2023, time.December, 5, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 30; i++ {
		prices = append(prices, models.PricePoint{
			Date:  start.AddDate(0, 0, i),
			Close: 100 + float64(i),
		})
	}

	m := Compute("AAPL", prices, []PeriodSpec{{Key: "ytd", YTD: true}})
	pm := m.Periods["ytd"]
	if pm.Volatility == nil || pm.Return == nil {
		t.Fatal("ytd fallback window should produce metrics")
	}

	tail := Compute("AAPL", prices, []PeriodSpec{{Key: "1mo", Days: 21}})
	tm := tail.Periods["1mo"]
	if *pm.Volatility != *tm.Volatility || *pm.Return != *tm.Return {
		t.Errorf("ytd fallback (%v, %v) should equal 21-day window (%v, %v)",
			*pm.Volatility, *pm.Return, *tm.Volatility, *tm.Return)
	}
}

func TestComputeYTDSlice(t *testing.T) {
	// Ten December points then ten January points; the ytd window must
	// use only January returns.
	var prices []models.PricePoint
	dec := time.Date(2023, time.December, 10, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 10; i++ {
		prices = append(prices, models.PricePoint{Date: dec.AddDate(0, 0, i), Close: 100})
	}
	jan := time.Date(2024, time.January, 2, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 10; i++ {
		prices = append(prices, models.PricePoint{Date: jan.AddDate(0, 0, i), Close: 100 + float64(i)})
	}

	m := Compute("AAPL", prices, []PeriodSpec{{Key: "ytd", YTD: true}})
	pm := m.Periods["ytd"]
	if pm.Return == nil {
		t.Fatal("ytd window with 10 January returns should produce metrics")
	}
	if *pm.Return <= 0 {
		t.Errorf("January-only returns are all positive, got annualized return %v", *pm.Return)
	}
}

package report

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/openequity/equitypages/pkg/models"
)

func f64(v float64) *float64 { return &v }

func sampleConstituent() models.Constituent {
	return models.Constituent{
		Symbol:      "MSFT",
		SymbolYF:    "MSFT",
		Security:    "Microsoft Corp",
		Sector:      "Information Technology",
		SubIndustry: "Systems Software",
		Exchange:    "NMS",
		DailyChange: f64(0.012),
	}
}

func sampleMetrics() map[string]models.SymbolMetrics {
	mk := func(symbol string, vol, ret float64) models.SymbolMetrics {
		return models.SymbolMetrics{
			Symbol:      symbol,
			DailyChange: f64(0.01),
			Periods: map[string]models.PeriodMetrics{
				"1y": {Volatility: f64(vol), Return: f64(ret)},
			},
		}
	}
	return map[string]models.SymbolMetrics{
		"MSFT":  mk("MSFT", 0.22, 0.31),
		"AAPL":  mk("AAPL", 0.25, 0.28),
		"^GSPC": mk("^GSPC", 0.15, 0.12),
		"VGT":   mk("VGT", 0.19, 0.22),
	}
}

func TestBuildPayloadIdentity(t *testing.T) {
	p := BuildPayload(Inputs{
		Constituent: sampleConstituent(),
		Metrics:     sampleMetrics(),
		Period:      "1y",
	})

	if p.Exchange != "NASDAQ" {
		t.Errorf("exchange = %q, want NASDAQ", p.Exchange)
	}
	if p.FullSymbol != "NASDAQ:MSFT" {
		t.Errorf("full symbol = %q", p.FullSymbol)
	}
	if p.SectorETF != "VGT" {
		t.Errorf("sector ETF = %q, want VGT", p.SectorETF)
	}
}

func TestBuildPayloadPreservesSeries(t *testing.T) {
	income := models.NormalizedSeries{
		{Item: "Net Income", Date: "2023-06-30", Value: 72361000000},
		{Item: "Total Revenue", Date: "2023-06-30", Value: 211915000000},
	}
	bundle := models.StatementBundle{
		Symbol: "MSFT",
		Income: models.PeriodPair{Annual: income},
	}

	p := BuildPayload(Inputs{
		Constituent: sampleConstituent(),
		Statements:  bundle,
		Period:      "1y",
	})

	if p.Charts.Income == nil {
		t.Fatal("income chart missing")
	}
	if !reflect.DeepEqual(p.Charts.Income.Annual, income) {
		t.Errorf("income series altered:\ngot  %v\nwant %v", p.Charts.Income.Annual, income)
	}
	if p.Charts.BalanceSheet != nil {
		t.Error("empty balance sheet should omit the chart")
	}
}

func TestRiskReturnChartRoles(t *testing.T) {
	p := BuildPayload(Inputs{
		Constituent: sampleConstituent(),
		Metrics:     sampleMetrics(),
		Period:      "1y",
	})

	chart := p.Charts.RiskReturn
	if chart == nil {
		t.Fatal("risk/return chart missing")
	}
	roles := make(map[string]string)
	for _, pt := range chart.Points {
		roles[pt.Symbol] = pt.Role
	}
	want := map[string]string{
		"MSFT":  RoleTarget,
		"^GSPC": RoleBenchmark,
		"VGT":   RoleSectorETF,
		"AAPL":  RolePeer,
	}
	for symbol, role := range want {
		if roles[symbol] != role {
			t.Errorf("%s role = %q, want %q", symbol, roles[symbol], role)
		}
	}
}

func TestPeerGroupsSplit(t *testing.T) {
	target := sampleConstituent()
	universe := []models.Constituent{
		target,
		{Symbol: "ORCL", SymbolYF: "ORCL", Sector: "Information Technology", SubIndustry: "Systems Software"},
		{Symbol: "AAPL", SymbolYF: "AAPL", Sector: "Information Technology", SubIndustry: "Technology Hardware"},
		{Symbol: "JPM", SymbolYF: "JPM", Sector: "Financials", SubIndustry: "Diversified Banks"},
	}

	p := BuildPayload(Inputs{
		Constituent: target,
		Universe:    universe,
		Metrics:     sampleMetrics(),
		Period:      "1y",
	})

	if len(p.Peers.SubIndustry) != 1 || p.Peers.SubIndustry[0].Symbol != "ORCL" {
		t.Errorf("sub-industry peers = %+v, want ORCL only", p.Peers.SubIndustry)
	}
	if len(p.Peers.Sector) != 1 || p.Peers.Sector[0].Symbol != "AAPL" {
		t.Errorf("sector peers = %+v, want AAPL only", p.Peers.Sector)
	}
	// AAPL has no DailyChange on the constituent; it falls back to metrics.
	if p.Peers.Sector[0].DailyChange == nil {
		t.Error("peer daily change not backfilled from metrics")
	}
}

func TestPayoutChartDerivesRatios(t *testing.T) {
	bundle := models.StatementBundle{
		Symbol: "MSFT",
		Payout: models.PeriodPair{
			Annual: models.NormalizedSeries{
				{Item: "Net Income From Continuing Operations", Date: "2023-06-30", Value: 100},
				{Item: "Cash Dividends Paid", Date: "2023-06-30", Value: -20},
			},
		},
	}

	p := BuildPayload(Inputs{Constituent: sampleConstituent(), Statements: bundle})
	if p.Charts.Payout == nil {
		t.Fatal("payout chart missing")
	}
	v, ok := p.Charts.Payout.Annual.ValueAt("Dividends Ratio / Net Income", "2023-06-30")
	if !ok || v != 0.2 {
		t.Errorf("dividend ratio = %v (ok=%v), want 0.2", v, ok)
	}
}

func TestWritePayloadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	p := BuildPayload(Inputs{
		Constituent: sampleConstituent(),
		Metrics:     sampleMetrics(),
		Period:      "1y",
	})

	if err := WritePayload(dir, p); err != nil {
		t.Fatalf("WritePayload: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "MSFT.json"))
	if err != nil {
		t.Fatalf("read payload: %v", err)
	}
	var back Payload
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("unmarshal payload: %v", err)
	}
	if back.Symbol != "MSFT" || back.FullSymbol != "NASDAQ:MSFT" {
		t.Errorf("round-tripped payload identity wrong: %+v", back)
	}
}

func TestWriteStocksJSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "data", "stocks.json")

	constituents := []models.Constituent{sampleConstituent()}
	if err := WriteStocksJSON(path, constituents); err != nil {
		t.Fatalf("WriteStocksJSON: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read stocks.json: %v", err)
	}
	var back []models.Constituent
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("unmarshal stocks.json: %v", err)
	}
	if len(back) != 1 || back[0].Symbol != "MSFT" {
		t.Errorf("stocks index = %+v", back)
	}
}

func TestRenderHTML(t *testing.T) {
	p := BuildPayload(Inputs{
		Constituent: sampleConstituent(),
		Universe: []models.Constituent{
			sampleConstituent(),
			{Symbol: "ORCL", SymbolYF: "ORCL", Sector: "Information Technology",
				SubIndustry: "Systems Software", DailyChange: f64(-0.004)},
		},
		News: []models.NewsArticle{
			{Title: "Microsoft raises dividend", Link: "https://example.com/msft",
				Published: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)},
		},
		Metrics: sampleMetrics(),
		Period:  "1y",
	})

	var buf bytes.Buffer
	if err := RenderHTML(&buf, p); err != nil {
		t.Fatalf("RenderHTML: %v", err)
	}
	html := buf.String()

	for _, want := range []string{
		"NASDAQ:MSFT",
		"Microsoft Corp",
		"AMEX:VGT",
		"ORCL.html",
		"-0.40%",
		"Microsoft raises dividend",
		"Mar 1, 2024",
	} {
		if !strings.Contains(html, want) {
			t.Errorf("rendered HTML missing %q", want)
		}
	}
}

func TestDividendChartOmittedWhenEmpty(t *testing.T) {
	p := BuildPayload(Inputs{Constituent: sampleConstituent()})
	if p.Charts.Dividends != nil {
		t.Error("dividend chart should be nil without events")
	}

	p = BuildPayload(Inputs{
		Constituent: sampleConstituent(),
		Dividends: []models.DividendRecord{
			{Symbol: "MSFT", ExDate: time.Date(2023, 8, 16, 0, 0, 0, 0, time.UTC), Amount: 0.68},
		},
	})
	if p.Charts.Dividends == nil || len(p.Charts.Dividends.Dividends) != 1 {
		t.Error("dividend chart missing events")
	}
}

package wikipedia

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/openequity/equitypages/internal/provider"
	"github.com/openequity/equitypages/pkg/models"
)

const samplePage = `<html><body>
<table id="constituents">
<thead><tr><th>Symbol</th><th>Security</th><th>GICS Sector</th><th>GICS Sub-Industry</th></tr></thead>
<tbody>
<tr><td>AAPL</td><td>Apple Inc.</td><td>Information Technology</td><td>Technology Hardware, Storage &amp; Peripherals</td></tr>
<tr><td>BRK.B</td><td>Berkshire Hathaway</td><td>Financials</td><td>Multi-Sector Holdings</td></tr>
</tbody>
</table>
</body></html>`

func TestProviderInfo(t *testing.T) {
	p := New()
	if p.Info().Name != "wikipedia" {
		t.Errorf("name = %q, want wikipedia", p.Info().Name)
	}
	if len(p.SupportedModels()) != 1 {
		t.Errorf("got %d models, want 1", len(p.SupportedModels()))
	}
}

func TestConstituentsFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(samplePage))
	}))
	defer srv.Close()

	old := pageURL
	pageURL = srv.URL
	defer func() { pageURL = old }()

	p := New()
	f := p.Fetcher(provider.ModelConstituentList)
	res, err := f.Fetch(context.Background(), provider.QueryParams{})
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}

	constituents, ok := res.Data.([]models.Constituent)
	if !ok {
		t.Fatalf("data type = %T, want []models.Constituent", res.Data)
	}
	if len(constituents) != 2 {
		t.Fatalf("got %d constituents, want 2", len(constituents))
	}

	aapl := constituents[0]
	if aapl.Symbol != "AAPL" || aapl.Sector != "Information Technology" {
		t.Errorf("unexpected first row: %+v", aapl)
	}

	brk := constituents[1]
	if brk.SymbolYF != "BRK-B" {
		t.Errorf("SymbolYF = %q, want vendor form BRK-B", brk.SymbolYF)
	}
	if brk.SubIndustry != "Multi-Sector Holdings" {
		t.Errorf("SubIndustry = %q", brk.SubIndustry)
	}
}

func TestConstituentsFetchEmptyPage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html><body><p>no table here</p></body></html>"))
	}))
	defer srv.Close()

	old := pageURL
	pageURL = srv.URL
	defer func() { pageURL = old }()

	p := New()
	f := p.Fetcher(provider.ModelConstituentList)
	if _, err := f.Fetch(context.Background(), provider.QueryParams{}); err == nil {
		t.Error("expected error for page without constituents table")
	}
}

package utils

import (
	"sort"
	"testing"
)

func TestToYFTicker(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"AAPL", "AAPL"},
		{"BRK.B", "BRK-B"},
		{"BF.B", "BF-B"},
		{"^GSPC", "^GSPC"},
	}
	for _, tt := range tests {
		if got := ToYFTicker(tt.in); got != tt.want {
			t.Errorf("ToYFTicker(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFromYFTicker(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"AAPL", "AAPL"},
		{"BRK-B", "BRK.B"},
		{"^GSPC", "^GSPC"},
	}
	for _, tt := range tests {
		if got := FromYFTicker(tt.in); got != tt.want {
			t.Errorf("FromYFTicker(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestExchangeName(t *testing.T) {
	tests := []struct {
		code string
		want string
	}{
		{"NMS", "NASDAQ"},
		{"NYQ", "NYSE"},
		{"ASE", "AMEX"},
		{"", "NYSE"},
		{"XETRA", "XETRA"}, // unknown codes pass through
	}
	for _, tt := range tests {
		if got := ExchangeName(tt.code); got != tt.want {
			t.Errorf("ExchangeName(%q) = %q, want %q", tt.code, got, tt.want)
		}
	}
}

func TestFullSymbol(t *testing.T) {
	if got := FullSymbol("NYSE", "BRK-B"); got != "NYSE:BRK.B" {
		t.Errorf("FullSymbol = %q, want NYSE:BRK.B", got)
	}
}

func TestSectorETF(t *testing.T) {
	if got := SectorETF("Information Technology"); got != "VGT" {
		t.Errorf("SectorETF(IT) = %q, want VGT", got)
	}
	if got := SectorETF("No Such Sector"); got != "VOO" {
		t.Errorf("SectorETF(unknown) = %q, want VOO", got)
	}
}

func TestSectorETFsCoversAllSectorsPlusVOO(t *testing.T) {
	etfs := SectorETFs()
	if len(etfs) != 12 {
		t.Fatalf("len(SectorETFs()) = %d, want 12", len(etfs))
	}
	sort.Strings(etfs)
	seen := make(map[string]bool, len(etfs))
	for _, e := range etfs {
		if seen[e] {
			t.Errorf("duplicate ETF %q", e)
		}
		seen[e] = true
	}
	if !seen["VOO"] {
		t.Error("SectorETFs() missing VOO")
	}
}

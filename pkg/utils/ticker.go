// Package utils provides small shared helpers: ticker symbol conversions
// between display and vendor forms, exchange code resolution, and the
// GICS-sector to sector-ETF mapping used across reports.
package utils

import "strings"

// ToYFTicker converts a display symbol to Yahoo Finance form.
// Class shares use a dot in display form ("BRK.B") but a hyphen on
// Yahoo ("BRK-B"). Index symbols ("^GSPC") pass through unchanged.
func ToYFTicker(symbol string) string {
	if strings.HasPrefix(symbol, "^") {
		return symbol
	}
	return strings.ReplaceAll(symbol, ".", "-")
}

// FromYFTicker converts a Yahoo Finance symbol back to display form.
func FromYFTicker(yfTicker string) string {
	if strings.HasPrefix(yfTicker, "^") {
		return yfTicker
	}
	return strings.ReplaceAll(yfTicker, "-", ".")
}

// exchangeNames maps Yahoo exchange codes to the venue names TradingView
// widgets expect.
var exchangeNames = map[string]string{
	"NMS": "NASDAQ",
	"NGM": "NASDAQ",
	"NCM": "NASDAQ",
	"NYQ": "NYSE",
	"ASE": "AMEX",
	"PCX": "NYSE",
	"PNK": "OTC",
}

// ExchangeName resolves a vendor exchange code to a display venue name.
// Unknown codes pass through; an empty code defaults to NYSE.
func ExchangeName(code string) string {
	if code == "" {
		return "NYSE"
	}
	if name, ok := exchangeNames[code]; ok {
		return name
	}
	return code
}

// FullSymbol builds the "EXCHANGE:TICKER" form used by TradingView embeds.
func FullSymbol(exchange, symbol string) string {
	return exchange + ":" + FromYFTicker(symbol)
}

// sectorETFs maps each GICS sector to its Vanguard sector ETF.
var sectorETFs = map[string]string{
	"Communication Services": "VOX",
	"Consumer Discretionary": "VCR",
	"Consumer Staples":       "VDC",
	"Energy":                 "VDE",
	"Financials":             "VFH",
	"Health Care":            "VHT",
	"Industrials":            "VIS",
	"Information Technology": "VGT",
	"Materials":              "VAW",
	"Real Estate":            "VNQ",
	"Utilities":              "VPU",
}

// SectorETF returns the benchmark ETF for a GICS sector, falling back to
// the broad-market VOO when the sector is unknown.
func SectorETF(sector string) string {
	if etf, ok := sectorETFs[sector]; ok {
		return etf
	}
	return "VOO"
}

// SectorETFs returns all sector benchmark ETF symbols, VOO included.
func SectorETFs() []string {
	out := make([]string, 0, len(sectorETFs)+1)
	for _, etf := range sectorETFs {
		out = append(out, etf)
	}
	out = append(out, "VOO")
	return out
}

package models

import "time"

// Constituent is one S&P 500 index member as scraped from the
// constituents table, enriched with exchange and day-over-day change.
type Constituent struct {
	Symbol      string   `json:"symbol"`    // display form, e.g. "BRK.B"
	SymbolYF    string   `json:"symbol_yf"` // vendor form, e.g. "BRK-B"
	Security    string   `json:"security"`
	Sector      string   `json:"sector"`       // GICS sector
	SubIndustry string   `json:"sub_industry"` // GICS sub-industry
	Exchange    string   `json:"exchange"`
	DailyChange *float64 `json:"daily_change"` // nil when quote unavailable
}

// PricePoint is one daily close observation.
type PricePoint struct {
	Date  time.Time
	Close float64
}

// ReturnPoint is the log return between two consecutive closes.
type ReturnPoint struct {
	Date      time.Time
	LogReturn float64
}

// DividendRecord is a single dividend event.
type DividendRecord struct {
	Symbol string    `json:"symbol"`
	ExDate time.Time `json:"ex_date"`
	Amount float64   `json:"amount"`
}

// PeriodMetrics holds the annualized risk/return pair for one lookback
// window. Nil values mean the window had too little data to compute,
// which downstream consumers must render as "no data", not zero.
type PeriodMetrics struct {
	Volatility *float64 `json:"hv"`
	Return     *float64 `json:"ret"`
}

// SymbolMetrics aggregates per-period metrics for one security, plus the
// window-independent day-over-day change.
type SymbolMetrics struct {
	Symbol      string                   `json:"symbol"`
	DailyChange *float64                 `json:"daily_change"`
	Periods     map[string]PeriodMetrics `json:"periods"`
}

// Quote is a point-in-time market quote, used for exchange resolution and
// daily change when a full price history is not needed.
type Quote struct {
	Symbol    string
	Name      string
	Exchange  string // vendor exchange code, e.g. "NMS"
	Price     float64
	PrevClose float64
	Timestamp time.Time
}

// RecommendationSummary is the analyst rating breakdown for the current
// period, when the vendor publishes one.
type RecommendationSummary struct {
	StrongBuy  int `json:"strongBuy"`
	Buy        int `json:"buy"`
	Hold       int `json:"hold"`
	Sell       int `json:"sell"`
	StrongSell int `json:"strongSell"`
}

// NewsArticle is a single headline from a company news feed.
type NewsArticle struct {
	Title     string    `json:"title"`
	Link      string    `json:"link"`
	Source    string    `json:"source"`
	Published time.Time `json:"published"`
}

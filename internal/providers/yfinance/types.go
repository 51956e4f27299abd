package yfinance

// --- Yahoo Finance API response types ---

type yfError struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

// yfTimeseriesResponse wraps the v1 fundamentals-timeseries API response.
// Each result carries one line item; the values live under a field named
// after the requested type, which the decoder exposes as a generic map.
type yfTimeseriesResponse struct {
	Timeseries struct {
		Result []yfTimeseriesResult `json:"result"`
		Error  *yfError             `json:"error"`
	} `json:"timeseries"`
}

type yfTimeseriesResult struct {
	Meta struct {
		Symbol []string `json:"symbol"`
		Type   []string `json:"type"`
	} `json:"meta"`
	Timestamp []int64 `json:"timestamp"`

	// The per-type value arrays arrive under dynamic keys such as
	// "annualTotalAssets"; they are decoded in a second pass.
	Values map[string][]*yfTimeseriesValue `json:"-"`
}

type yfTimeseriesValue struct {
	AsOfDate      string `json:"asOfDate"`
	PeriodType    string `json:"periodType"` // "12M", "3M", "TTM"
	ReportedValue struct {
		Raw float64 `json:"raw"`
		Fmt string  `json:"fmt"`
	} `json:"reportedValue"`
}

// yfChartResponse wraps the v8 chart API response.
type yfChartResponse struct {
	Chart struct {
		Result []yfChartResult `json:"result"`
		Error  *yfError        `json:"error"`
	} `json:"chart"`
}

type yfChartResult struct {
	Meta struct {
		Symbol       string `json:"symbol"`
		Currency     string `json:"currency"`
		ExchangeName string `json:"exchangeName"`
	} `json:"meta"`
	Timestamp  []int64 `json:"timestamp"`
	Indicators struct {
		Quote []struct {
			Close []*float64 `json:"close"`
		} `json:"quote"`
	} `json:"indicators"`
	Events *yfChartEvents `json:"events"`
}

type yfChartEvents struct {
	Dividends map[string]yfDividendEvent `json:"dividends"`
}

type yfDividendEvent struct {
	Amount float64 `json:"amount"`
	Date   int64   `json:"date"`
}

// yfQuoteResponse wraps the v7 quote API response.
type yfQuoteResponse struct {
	QuoteResponse struct {
		Result []yfQuoteResult `json:"result"`
		Error  *yfError        `json:"error"`
	} `json:"quoteResponse"`
}

type yfQuoteResult struct {
	Symbol                     string  `json:"symbol"`
	ShortName                  string  `json:"shortName"`
	LongName                   string  `json:"longName"`
	Exchange                   string  `json:"exchange"`
	RegularMarketPrice         float64 `json:"regularMarketPrice"`
	RegularMarketPreviousClose float64 `json:"regularMarketPreviousClose"`
	RegularMarketTime          int64   `json:"regularMarketTime"`
}

// yfQuoteSummaryResponse wraps the v10 quoteSummary API response, used
// for the analyst recommendation trend.
type yfQuoteSummaryResponse struct {
	QuoteSummary struct {
		Result []yfQuoteSummaryResult `json:"result"`
		Error  *yfError               `json:"error"`
	} `json:"quoteSummary"`
}

type yfQuoteSummaryResult struct {
	RecommendationTrend *struct {
		Trend []yfRecommendationTrend `json:"trend"`
	} `json:"recommendationTrend"`
}

type yfRecommendationTrend struct {
	Period     string `json:"period"` // "0m" is the current month
	StrongBuy  int    `json:"strongBuy"`
	Buy        int    `json:"buy"`
	Hold       int    `json:"hold"`
	Sell       int    `json:"sell"`
	StrongSell int    `json:"strongSell"`
}

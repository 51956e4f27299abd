package statement

import "fmt"

// AliasTable maps a canonical line-item name to its ordered list of
// accepted vendor labels. The canonical name itself must be the first
// entry; earlier synonyms win when several appear in one statement.
type AliasTable map[string][]string

// Validate checks the table's structural invariants. A malformed table is
// a configuration defect, caught once at startup rather than per symbol.
func (t AliasTable) Validate() error {
	for canonical, synonyms := range t {
		if canonical == "" {
			return fmt.Errorf("alias table: empty canonical name")
		}
		if len(synonyms) == 0 {
			return fmt.Errorf("alias table: %q has no synonyms", canonical)
		}
		if synonyms[0] != canonical {
			return fmt.Errorf("alias table: %q must list itself first, got %q", canonical, synonyms[0])
		}
		for _, s := range synonyms {
			if s == "" {
				return fmt.Errorf("alias table: %q has an empty synonym", canonical)
			}
		}
	}
	return nil
}

// Canonical line items whose combined-label equivalents substitute for a
// missing "Total Liabilities" row.
const (
	itemTotalLiabilities = "Total Liabilities"
)

var totalLiabilitiesEquivalents = []string{
	"Total Liabilities Net Minority Interest",
	"Total Liabilities And Equity",
}

// Balance-sheet line items of interest.
var BalanceSheetTargets = []string{
	"Total Assets",
	"Current Assets",
	"Total Non Current Assets",
	"Current Liabilities",
	"Total Non Current Liabilities Net Minority Interest",
	"Total Liabilities Net Minority Interest",
	"Total Liabilities",
	"Total Equity Gross Minority Interest",
	"Long Term Debt And Capital Lease Obligation",
	"Employee Benefits",
	"Non Current Deferred Liabilities",
	"Other Non Current Liabilities",
}

// Income-statement line items of interest.
var IncomeTargets = []string{
	"Total Revenue",
	"Gross Profit",
	"Operating Income",
	"Net Income",
}

// Cash-flow line items of interest.
var CashFlowTargets = []string{
	"Operating Cash Flow",
	"Investing Cash Flow",
	"Financing Cash Flow",
	"Free Cash Flow",
}

// Shareholder-return line items of interest. "Net Income" rides along so
// the payout calculator can backfill the continuing-operations figure.
var PayoutTargets = []string{
	"Net Income From Continuing Operations",
	"Repurchase Of Capital Stock",
	"Cash Dividends Paid",
	"Net Income",
}

// IncomeAliases maps income-statement canonical names to the vendor
// labels observed across schema revisions.
var IncomeAliases = AliasTable{
	"Total Revenue": {
		"Total Revenue",
		"Revenue",
		"Operating Revenue",
	},
	"Operating Income": {
		"Operating Income",
		"Total Operating Income As Reported",
	},
	"Net Income": {
		"Net Income",
		"Net Income Common Stockholders",
		"Net Income Including Noncontrolling Interests",
	},
}

// CashFlowAliases maps cash-flow canonical names to vendor variants.
var CashFlowAliases = AliasTable{
	"Operating Cash Flow": {
		"Operating Cash Flow",
		"Cash Flow From Continuing Operating Activities",
	},
	"Investing Cash Flow": {
		"Investing Cash Flow",
		"Cash Flow From Continuing Investing Activities",
	},
	"Financing Cash Flow": {
		"Financing Cash Flow",
		"Cash Flow From Continuing Financing Activities",
	},
	"Cash Dividends Paid": {
		"Cash Dividends Paid",
		"Common Stock Dividend Paid",
	},
	"Repurchase Of Capital Stock": {
		"Repurchase Of Capital Stock",
		"Common Stock Payments",
	},
}

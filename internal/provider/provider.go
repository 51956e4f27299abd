// Package provider defines the data-provider abstraction: a Provider
// exposes one Fetcher per model type, and a central registry routes
// requests to the right provider. Vendors (Yahoo Finance, Wikipedia)
// implement this interface under internal/providers/.
package provider

import (
	"context"
	"fmt"
	"time"
)

// ModelType identifies a standard data model a fetcher can produce.
type ModelType string

const (
	ModelConstituentList     ModelType = "ConstituentList"
	ModelFinancialStatements ModelType = "FinancialStatements"
	ModelPriceHistory        ModelType = "PriceHistory"
	ModelHistoricalDividends ModelType = "HistoricalDividends"
	ModelEquityQuote         ModelType = "EquityQuote"
	ModelRecommendations     ModelType = "Recommendations"
	ModelCompanyNews         ModelType = "CompanyNews"
)

// QueryParams is the generic parameter map passed to fetchers.
type QueryParams map[string]string

// Common query parameter keys.
const (
	ParamSymbol    = "symbol"
	ParamPeriod    = "period" // "annual" or "quarterly"
	ParamStatement = "statement"
	ParamStartDate = "start_date"
	ParamEndDate   = "end_date"
	ParamRange     = "range" // e.g. "10y"
	ParamLimit     = "limit"
	ParamProvider  = "provider"
)

// Statement category values for ParamStatement.
const (
	StatementBalanceSheet = "balance-sheet"
	StatementIncome       = "income"
	StatementCashFlow     = "cash-flow"
)

// FetchResult wraps fetched data with metadata.
type FetchResult struct {
	Provider  string    `json:"provider"`
	Model     ModelType `json:"model"`
	Data      any       `json:"data"`
	FetchedAt time.Time `json:"fetched_at"`
	Cached    bool      `json:"cached"`
}

// Fetcher retrieves one model type from one vendor.
//
// The data type depends on the model:
//   - ConstituentList     → []models.Constituent
//   - FinancialStatements → *models.RawStatement
//   - PriceHistory        → []models.PricePoint
//   - HistoricalDividends → []models.DividendRecord
//   - EquityQuote         → *models.Quote
//   - Recommendations     → *models.RecommendationSummary
//   - CompanyNews         → []models.NewsArticle
type Fetcher interface {
	ModelType() ModelType
	Description() string
	RequiredParams() []string
	OptionalParams() []string
	Fetch(ctx context.Context, params QueryParams) (*FetchResult, error)
}

// ProviderInfo holds metadata about a registered provider.
type ProviderInfo struct {
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Website     string      `json:"website"`
	Models      []ModelType `json:"models"`
}

// Provider is implemented by every data vendor.
type Provider interface {
	Info() ProviderInfo
	Fetcher(model ModelType) Fetcher
	SupportedModels() []ModelType
	Ping(ctx context.Context) error
}

// ErrProviderNotFound is returned when a requested provider is not registered.
type ErrProviderNotFound struct {
	Name string
}

func (e *ErrProviderNotFound) Error() string {
	return fmt.Sprintf("provider %q not registered", e.Name)
}

// ErrModelNotSupported is returned when a provider lacks a fetcher for a model.
type ErrModelNotSupported struct {
	Provider string
	Model    ModelType
}

func (e *ErrModelNotSupported) Error() string {
	return fmt.Sprintf("provider %q does not support model %q", e.Provider, e.Model)
}

// ErrMissingParam is returned when a required query parameter is absent.
type ErrMissingParam struct {
	Param string
}

func (e *ErrMissingParam) Error() string {
	return fmt.Sprintf("missing required parameter %q", e.Param)
}

// ValidateParams checks that every required parameter is present and non-empty.
func ValidateParams(params QueryParams, required []string) error {
	for _, key := range required {
		if v, ok := params[key]; !ok || v == "" {
			return &ErrMissingParam{Param: key}
		}
	}
	return nil
}

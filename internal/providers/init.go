// Package providers initializes and registers all concrete data providers
// with the provider registry.
package providers

import (
	"github.com/openequity/equitypages/internal/provider"
	"github.com/openequity/equitypages/internal/providers/wikipedia"
	"github.com/openequity/equitypages/internal/providers/yfinance"
)

// RegisterAll creates and registers all available providers with the
// global registry. Both providers are free and need no API key.
func RegisterAll() error {
	return RegisterAllTo(provider.Global())
}

// RegisterAllTo registers all available providers to the given registry.
func RegisterAllTo(reg *provider.Registry) error {
	if err := reg.Register(yfinance.New()); err != nil {
		return err
	}
	if err := reg.Register(wikipedia.New()); err != nil {
		return err
	}
	return nil
}

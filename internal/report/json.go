package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/openequity/equitypages/pkg/models"
)

// WritePayload writes one security's JSON document to
// <dir>/<symbol_yf>.json, creating the directory if needed.
func WritePayload(dir string, p *Payload) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create report dir: %w", err)
	}
	path := filepath.Join(dir, p.SymbolYF+".json")
	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal payload %s: %w", p.Symbol, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write payload %s: %w", p.Symbol, err)
	}
	return nil
}

// WriteStocksJSON writes the constituent index consumed by the site's
// listing page.
func WriteStocksJSON(path string, constituents []models.Constituent) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create stocks dir: %w", err)
	}
	data, err := json.MarshalIndent(constituents, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal stocks index: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write stocks index: %w", err)
	}
	return nil
}

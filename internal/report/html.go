package report

import (
	"encoding/json"
	"fmt"
	"html/template"
	"io"
	"os"
	"path/filepath"
	"time"
)

// reportView augments a payload with the fields the template needs.
type reportView struct {
	*Payload
	SectorETFSymbol string // TradingView form, e.g. "AMEX:VGT"
}

var reportFuncs = template.FuncMap{
	// json renders a value as a JSON literal inside widget config blocks.
	"json": func(v any) (template.JS, error) {
		data, err := json.Marshal(v)
		if err != nil {
			return "", err
		}
		return template.JS(data), nil
	},
	"pct": func(v *float64) string {
		if v == nil {
			return ""
		}
		return fmt.Sprintf("%+.2f%%", *v*100)
	},
	"cls": func(v *float64) string {
		if v != nil && *v < 0 {
			return "down"
		}
		return "up"
	},
	"date": func(t time.Time) string {
		return t.Format("Jan 2, 2006")
	},
}

var reportTmpl = template.Must(
	template.New("report").Funcs(reportFuncs).Parse(reportTemplate))

// RenderHTML writes the report page for one security.
func RenderHTML(w io.Writer, p *Payload) error {
	view := reportView{
		Payload:         p,
		SectorETFSymbol: "AMEX:" + p.SectorETF,
	}
	if err := reportTmpl.Execute(w, view); err != nil {
		return fmt.Errorf("render report %s: %w", p.Symbol, err)
	}
	return nil
}

// WriteHTML renders the report page to <dir>/<symbol_yf>.html.
func WriteHTML(dir string, p *Payload) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create report dir: %w", err)
	}
	f, err := os.Create(filepath.Join(dir, p.SymbolYF+".html"))
	if err != nil {
		return fmt.Errorf("create report file %s: %w", p.Symbol, err)
	}
	if err := RenderHTML(f, p); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

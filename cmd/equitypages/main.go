// equitypages — S&P 500 fundamentals and risk/return report generator.
//
// Main CLI entrypoint using cobra command framework.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/openequity/equitypages/api"
	"github.com/openequity/equitypages/internal/analysis/riskreturn"
	"github.com/openequity/equitypages/internal/config"
	"github.com/openequity/equitypages/internal/infra"
	"github.com/openequity/equitypages/internal/pipeline"
	"github.com/openequity/equitypages/internal/provider"
	"github.com/openequity/equitypages/internal/providers"
	"github.com/openequity/equitypages/pkg/models"
	"github.com/openequity/equitypages/pkg/utils"
)

// Build-time variables (set via -ldflags).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// Global config
var cfg *config.Config

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "equitypages",
	Short: "equitypages — S&P 500 fundamentals and risk/return reports",
	Long: `equitypages fetches S&P 500 constituents and their fundamentals,
normalizes vendor statements into canonical series, computes balance
sheet presentation, margin, payout, and risk/return metrics, and writes
per-security JSON payloads and HTML report pages.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		configFile, _ := cmd.Flags().GetString("config")
		if configFile != "" {
			cfg, err = config.LoadFromFile(configFile)
		} else {
			cfg, err = config.Load()
		}
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		infra.SetHTTPTimeout(time.Duration(cfg.HTTP.TimeoutSec) * time.Second)
		infra.SetHTTPRetries(cfg.HTTP.Retries)
		infra.SetUserAgent(cfg.HTTP.UserAgent)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "config file path (default: ./config/config.yaml)")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(constituentsCmd)
	rootCmd.AddCommand(metricsCmd)
	rootCmd.AddCommand(newsCmd)
	rootCmd.AddCommand(serveCmd)
}

// newPipeline registers all providers into a fresh registry and wires
// the pipeline around it.
func newPipeline() (*pipeline.Pipeline, error) {
	reg := provider.NewRegistry()
	if err := providers.RegisterAllTo(reg); err != nil {
		return nil, fmt.Errorf("register providers: %w", err)
	}
	return pipeline.New(reg, cfg)
}

// --- Version Command ---

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("equitypages %s\n", version)
		fmt.Printf("  commit:  %s\n", commit)
		fmt.Printf("  built:   %s\n", date)
	},
}

// --- Generate Command (full batch) ---

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Run the full batch: constituents, metrics, and all reports",
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := newPipeline()
		if err != nil {
			return err
		}
		start := time.Now()
		if err := p.Run(cmd.Context()); err != nil {
			return err
		}
		fmt.Printf("done in %s, reports in %s\n", time.Since(start).Round(time.Second), cfg.Output.ReportsDir)
		return nil
	},
}

func init() {
	generateCmd.Flags().Int("limit", 0, "only process the first N constituents (0 = all)")
	generateCmd.Flags().Int("workers", 0, "concurrent workers override")
	generateCmd.PreRun = func(cmd *cobra.Command, args []string) {
		if n, _ := cmd.Flags().GetInt("limit"); n > 0 {
			cfg.Pipeline.Limit = n
		}
		if n, _ := cmd.Flags().GetInt("workers"); n > 0 {
			cfg.Pipeline.Workers = n
		}
	}
}

// --- Report Command (single security) ---

var reportCmd = &cobra.Command{
	Use:   "report [symbol]",
	Short: "Generate the report artifacts for a single security",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := newPipeline()
		if err != nil {
			return err
		}
		symbol := args[0]
		if err := p.RunOne(cmd.Context(), symbol); err != nil {
			return err
		}
		fmt.Printf("report for %s written to %s\n", symbol, cfg.Output.ReportsDir)
		return nil
	},
}

// --- Constituents Command ---

var constituentsCmd = &cobra.Command{
	Use:   "constituents",
	Short: "List the current index constituents",
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := newPipeline()
		if err != nil {
			return err
		}
		constituents, err := p.Constituents(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Printf("%-8s %-36s %-26s %s\n", "SYMBOL", "SECURITY", "SECTOR", "CHANGE")
		for _, c := range constituents {
			change := "n/a"
			if c.DailyChange != nil {
				change = fmt.Sprintf("%+.2f%%", *c.DailyChange*100)
			}
			fmt.Printf("%-8s %-36.36s %-26.26s %s\n", c.Symbol, c.Security, c.Sector, change)
		}
		fmt.Printf("\n%d constituents\n", len(constituents))
		return nil
	},
}

// --- Metrics Command ---

var metricsCmd = &cobra.Command{
	Use:   "metrics [symbol]",
	Short: "Print risk/return metrics for one symbol",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		reg := provider.NewRegistry()
		if err := providers.RegisterAllTo(reg); err != nil {
			return err
		}
		symbol := utils.ToYFTicker(args[0])

		res, err := reg.Fetch(cmd.Context(), provider.ModelPriceHistory, provider.QueryParams{
			provider.ParamSymbol: symbol,
			provider.ParamRange:  cfg.Pipeline.PriceRange,
		})
		if err != nil {
			return err
		}
		prices, ok := res.Data.([]models.PricePoint)
		if !ok {
			return fmt.Errorf("unexpected price payload %T", res.Data)
		}

		sm := riskreturn.Compute(symbol, prices, riskreturn.DefaultPeriods)
		fmt.Printf("%s  (%d closes)\n", symbol, len(prices))
		if sm.DailyChange != nil {
			fmt.Printf("  daily change: %+.2f%%\n", *sm.DailyChange*100)
		}
		fmt.Printf("  %-6s %12s %12s\n", "PERIOD", "VOLATILITY", "RETURN")
		for _, period := range riskreturn.DefaultPeriods {
			pm, ok := sm.Periods[period.Key]
			if !ok || pm.Volatility == nil || pm.Return == nil {
				fmt.Printf("  %-6s %12s %12s\n", period.Key, "n/a", "n/a")
				continue
			}
			fmt.Printf("  %-6s %11.2f%% %11.2f%%\n", period.Key, *pm.Volatility*100, *pm.Return*100)
		}
		return nil
	},
}

// --- News Command ---

var newsCmd = &cobra.Command{
	Use:   "news [symbol]",
	Short: "Print recent headlines for one symbol",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		reg := provider.NewRegistry()
		if err := providers.RegisterAllTo(reg); err != nil {
			return err
		}
		limit, _ := cmd.Flags().GetString("limit")

		params := provider.QueryParams{provider.ParamSymbol: utils.ToYFTicker(args[0])}
		if limit != "" {
			params[provider.ParamLimit] = limit
		}
		res, err := reg.Fetch(cmd.Context(), provider.ModelCompanyNews, params)
		if err != nil {
			return err
		}
		articles, _ := res.Data.([]models.NewsArticle)
		for _, a := range articles {
			fmt.Printf("%s  %s\n    %s\n", a.Published.Format("2006-01-02"), a.Title, a.Link)
		}
		if len(articles) == 0 {
			fmt.Println("no headlines")
		}
		return nil
	},
}

func init() {
	newsCmd.Flags().String("limit", "", "maximum number of headlines")
}

// --- Serve Command (API Server) ---

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the generated artifacts over HTTP",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Printf("serving %s on %s:%d\n", cfg.Output.ReportsDir, cfg.API.Host, cfg.API.Port)
		return api.NewServer(cfg).ListenAndServe()
	},
}

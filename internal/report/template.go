package report

// reportTemplate is the HTML template for the per-security report page.
// It is embedded as a Go constant so the binary has no file dependencies.
// Chart data is loaded client-side from the security's JSON payload;
// price and financials panels are TradingView embeds keyed by the
// EXCHANGE:TICKER full symbol.
const reportTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>{{.Symbol}} - {{.Security}}</title>
<style>
  * { margin: 0; padding: 0; box-sizing: border-box; }
  body {
    font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif;
    color: #1a1a2e;
    line-height: 1.6;
    max-width: 960px;
    margin: 0 auto;
    padding: 20px;
  }
  h1 { font-size: 1.5rem; margin-bottom: 4px; }
  h2 { font-size: 1.2rem; margin: 24px 0 12px; padding-bottom: 6px; border-bottom: 2px solid #2563eb; }
  .muted { color: #6b7280; font-size: 0.85rem; }
  .ticker-badge {
    display: inline-block; background: #2563eb; color: white;
    padding: 2px 12px; border-radius: 4px; font-weight: 700; margin-right: 8px;
  }
  .tags { display: flex; flex-wrap: wrap; gap: 8px; margin-bottom: 20px; }
  .tag {
    border: 1px solid #e5e7eb; border-radius: 12px; padding: 2px 10px;
    font-size: 0.85rem; text-decoration: none; color: #1a1a2e;
  }
  .tag .up { color: #16a34a; }
  .tag .down { color: #dc2626; }
  .chart-slot { min-height: 320px; margin: 12px 0; }
  .news { list-style: none; }
  .news li { margin-bottom: 6px; }
</style>
</head>
<body>

<header>
  <h1><span class="ticker-badge">{{.Symbol}}</span>{{.Security}}</h1>
  <p class="muted">{{.Sector}} / {{.SubIndustry}} &middot; {{.Exchange}} &middot; Sector ETF: {{.SectorETF}}</p>
</header>

<div class="tradingview-widget-container">
  <div class="tradingview-widget-container__widget"></div>
  <script type="text/javascript" src="https://s3.tradingview.com/external-embedding/embed-widget-symbol-info.js" async>
  { "symbol": {{.FullSymbol | json}}, "colorTheme": "light", "isTransparent": false, "locale": "en", "width": "100%" }
  </script>
</div>

{{if .Peers.SubIndustry}}
<h2>Sub-Industry Peers</h2>
<div class="tags">
{{range .Peers.SubIndustry}}<a class="tag" href="./{{.SymbolYF}}.html">{{.Symbol}}{{with .DailyChange}} <span class="{{cls .}}">{{pct .}}</span>{{end}}</a>
{{end}}
</div>
{{end}}

{{if .Peers.Sector}}
<h2>Other Sector Peers</h2>
<details><summary>Expand</summary>
<div class="tags">
{{range .Peers.Sector}}<a class="tag" href="./{{.SymbolYF}}.html">{{.Symbol}}{{with .DailyChange}} <span class="{{cls .}}">{{pct .}}</span>{{end}}</a>
{{end}}
</div>
</details>
{{end}}

<h2>Price</h2>
<div class="tradingview-widget-container">
  <div class="tradingview-widget-container__widget"></div>
  <script type="text/javascript" src="https://s3.tradingview.com/external-embedding/embed-widget-advanced-chart.js" async>
  { "allow_symbol_change": false, "interval": "D", "width": "100%", "height": 500,
    "symbol": {{.FullSymbol | json}}, "theme": "light", "style": "2", "locale": "en",
    "withdateranges": true, "hide_volume": true,
    "compareSymbols": [ { "symbol": {{.SectorETFSymbol | json}}, "position": "SameScale" },
                        { "symbol": "FRED:SP500", "position": "SameScale" } ] }
  </script>
</div>

<h2>Fundamentals</h2>
<div id="chart-bs" class="chart-slot" data-src="./{{.SymbolYF}}.json" data-chart="bs"></div>
<div id="chart-is" class="chart-slot" data-src="./{{.SymbolYF}}.json" data-chart="is"></div>
<div id="chart-cf" class="chart-slot" data-src="./{{.SymbolYF}}.json" data-chart="cf"></div>
<div id="chart-tp" class="chart-slot" data-src="./{{.SymbolYF}}.json" data-chart="tp"></div>
<div id="chart-dps" class="chart-slot" data-src="./{{.SymbolYF}}.json" data-chart="dps"></div>

<h2>Risk / Return</h2>
<div id="chart-rr" class="chart-slot" data-src="./{{.SymbolYF}}.json" data-chart="risk_return"></div>

{{if .News}}
<h2>Headlines</h2>
<ul class="news">
{{range .News}}<li><span class="muted">{{date .Published}}</span> <a href="{{.Link}}">{{.Title}}</a></li>
{{end}}
</ul>
{{end}}

<h2>Financials Overview</h2>
<div class="tradingview-widget-container">
  <div class="tradingview-widget-container__widget"></div>
  <script type="text/javascript" src="https://s3.tradingview.com/external-embedding/embed-widget-financials.js" async>
  { "symbol": {{.FullSymbol | json}}, "colorTheme": "light", "displayMode": "regular",
    "isTransparent": false, "largeChartUrl": "", "locale": "en", "width": "100%", "height": 550 }
  </script>
</div>

<footer class="muted">
  <p>Generated by equitypages. Data for research only, not investment advice.</p>
</footer>

</body>
</html>
`

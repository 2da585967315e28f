package views

import (
	"html/template"
	"strings"
)

// PageData carries the pre-rendered region fragments into the page layout.
// Fragments are produced by this package's own templates, so they are safe
// to embed unescaped.
type PageData struct {
	HeaderName    string
	FooterName    string
	Clock         string
	MarketBadge   template.HTML
	Banner        template.HTML
	GoldCards     template.HTML
	CurrencyCards template.HTML
	Links         StoreLinks
}

// safeURL marks a store link as trusted. The links are assembled by
// BuildStoreLinks from known schemes, never from raw server HTML, and the
// escaper would otherwise reject tel: hrefs.
var pageFuncs = template.FuncMap{
	"safeURL": func(link string) template.URL { return template.URL(link) },
}

var pageTemplate = template.Must(template.New("page").Funcs(pageFuncs).Parse(`<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>{{if .HeaderName}}{{.HeaderName}} | Live Rates{{else}}Live Rates{{end}}</title>
  <style>
    body { font-family: -apple-system, 'Segoe UI', Roboto, Arial, sans-serif; margin: 0; background: #f5f3ee; color: #2b2620; }
    header, footer { display: flex; justify-content: space-between; align-items: center; padding: 12px 24px; background: #1f1a13; color: #f0e6d2; }
    main { display: grid; grid-template-columns: 1fr 1fr; gap: 24px; padding: 24px; }
    .card { background: #fff; border: 1px solid #e0d9c8; border-radius: 8px; padding: 12px 16px; margin-bottom: 12px; }
    .price-row { display: flex; justify-content: space-between; padding: 2px 0; }
    .price-row.spread .value { color: #8a6d1d; }
    .market-badge { padding: 4px 10px; border-radius: 12px; font-size: 13px; }
    .market-open { background: #d9efd5; color: #1d6b2a; }
    .market-closed { background: #f3d6d2; color: #8c2318; }
    .banner { padding: 10px 24px; }
    .banner-error { background: #f3d6d2; color: #8c2318; }
    .banner-success { background: #d9efd5; color: #1d6b2a; }
    .store-links a { color: #f0e6d2; margin-left: 12px; }
  </style>
</head>
<body>
  <header>
    <h1 id="store-name">{{.HeaderName}}</h1>
    <div class="status-bar">
      <span id="clock">{{.Clock}}</span>
      <span id="market-status">{{.MarketBadge}}</span>
    </div>
  </header>

  <div id="banner-region">{{.Banner}}</div>

  <main>
    <section id="gold-section">
      <h2>Gold Prices</h2>
      <div id="gold-cards">{{.GoldCards}}</div>
    </section>
    <section id="currency-section">
      <h2>Currency Rates</h2>
      <div id="currency-cards">{{.CurrencyCards}}</div>
    </section>
  </main>

  <footer>
    <span id="footer-store-name">{{.FooterName}}</span>
    <nav class="store-links">
      {{if .Links.PhoneLink}}<a href="{{safeURL .Links.PhoneLink}}">Call</a>{{end}}
      {{if .Links.WhatsappLink}}<a href="{{safeURL .Links.WhatsappLink}}">WhatsApp</a>{{end}}
      {{if .Links.InstagramLink}}<a href="{{safeURL .Links.InstagramLink}}">Instagram</a>{{end}}
      {{if .Links.FacebookLink}}<a href="{{safeURL .Links.FacebookLink}}">Facebook</a>{{end}}
    </nav>
  </footer>
</body>
</html>
`))

// Page composes the full dashboard document from the current regions.
func (r *Renderer) Page(data PageData) (string, error) {
	var builder strings.Builder
	if err := pageTemplate.Execute(&builder, data); err != nil {
		return "", err
	}
	return builder.String(), nil
}

package views

import (
	"html/template"
	"strings"
	"time"

	"github.com/zahabco/gold-dashboard/models"
)

const defaultFlagEmoji = "🏳️"

var goldCardTemplate = template.Must(template.New("gold-card").Parse(`<div class="card gold-card" data-id="{{.ID}}">
  <div class="card-title">{{.Name}} <span class="karat">{{.Karat}}K</span></div>
  <div class="price-row"><span class="label">Buy</span><span class="value">{{.Buy}}</span></div>
  <div class="price-row"><span class="label">Sell</span><span class="value">{{.Sell}}</span></div>
  <div class="price-row spread"><span class="label">Spread</span><span class="value">{{.Spread}}</span></div>
</div>
`))

var currencyCardTemplate = template.Must(template.New("currency-card").Parse(`<div class="card currency-card" data-id="{{.ID}}">
  <div class="card-title"><span class="flag">{{.Flag}}</span> {{.Code}} <span class="currency-name">{{.Name}}</span></div>
  <div class="price-row"><span class="label">Buy</span><span class="value">{{.Buy}}</span></div>
  <div class="price-row"><span class="label">Sell</span><span class="value">{{.Sell}}</span></div>
  <div class="price-row spread"><span class="label">Spread</span><span class="value">{{.Spread}}</span></div>
</div>
`))

var bannerTemplate = template.Must(template.New("banner").Parse(`<div class="banner banner-{{.Kind}}">{{.Message}}</div>`))

type goldCardView struct {
	ID     string
	Name   string
	Karat  int
	Buy    string
	Sell   string
	Spread string
}

type currencyCardView struct {
	ID     string
	Flag   string
	Code   string
	Name   string
	Buy    string
	Sell   string
	Spread string
}

// Renderer turns snapshots into markup fragments. Every render is a full
// replacement of a region's contents; nothing is patched incrementally.
type Renderer struct{}

func NewRenderer() *Renderer {
	return &Renderer{}
}

// GoldCards renders one card per quote and concatenates them. Gold amounts
// show 2 fractional digits; the spread is recomputed on every render.
func (r *Renderer) GoldCards(prices []models.PriceQuote) (string, error) {
	var builder strings.Builder
	for _, price := range prices {
		card := goldCardView{
			ID:     price.ID,
			Name:   price.GoldTypeName,
			Karat:  price.Karat,
			Buy:    price.BuyPrice.StringFixed(2),
			Sell:   price.SellPrice.StringFixed(2),
			Spread: price.Spread().StringFixed(2),
		}
		if err := goldCardTemplate.Execute(&builder, card); err != nil {
			return "", err
		}
	}
	return builder.String(), nil
}

// CurrencyCards renders one card per rate and concatenates them. Rates show
// 4 fractional digits; a missing flag falls back to the placeholder.
func (r *Renderer) CurrencyCards(rates []models.RateQuote) (string, error) {
	var builder strings.Builder
	for _, rate := range rates {
		flag := rate.FlagEmoji
		if flag == "" {
			flag = defaultFlagEmoji
		}
		card := currencyCardView{
			ID:     rate.ID,
			Flag:   flag,
			Code:   rate.CurrencyCode,
			Name:   rate.CurrencyName,
			Buy:    rate.BuyRate.StringFixed(4),
			Sell:   rate.SellRate.StringFixed(4),
			Spread: rate.Spread().StringFixed(4),
		}
		if err := currencyCardTemplate.Execute(&builder, card); err != nil {
			return "", err
		}
	}
	return builder.String(), nil
}

// MarketBadge renders the two-state open/closed indicator.
func (r *Renderer) MarketBadge(status models.MarketStatus) string {
	if status.IsOpen {
		return `<span class="market-badge market-open">Open</span>`
	}
	return `<span class="market-badge market-closed">Closed</span>`
}

// Banner renders a message into the banner region, replacing its contents.
func (r *Renderer) Banner(kind, message string) string {
	var builder strings.Builder
	_ = bannerTemplate.Execute(&builder, struct {
		Kind    string
		Message string
	}{Kind: kind, Message: message})
	return builder.String()
}

// ClockText formats the wall-clock display in 24-hour HH:MM:SS form.
func (r *Renderer) ClockText(now time.Time) string {
	return now.Format("15:04:05")
}

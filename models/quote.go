package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// PriceQuote is the buy/sell price pair for a single gold type.
type PriceQuote struct {
	ID           string          `json:"id"`
	GoldTypeName string          `json:"gold_type_name"`
	Karat        int             `json:"karat"`
	BuyPrice     decimal.Decimal `json:"buy_price"`
	SellPrice    decimal.Decimal `json:"sell_price"`
}

// Spread returns the sell price minus the buy price.
func (q PriceQuote) Spread() decimal.Decimal {
	return q.SellPrice.Sub(q.BuyPrice)
}

// GoldType describes one tradable gold category.
type GoldType struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Karat int    `json:"karat"`
}

// RateQuote is the buy/sell exchange rate pair for a single currency.
type RateQuote struct {
	ID           string          `json:"id"`
	CurrencyCode string          `json:"currency_code"`
	CurrencyName string          `json:"currency_name"`
	FlagEmoji    string          `json:"flag_emoji,omitempty"`
	BuyRate      decimal.Decimal `json:"buy_rate"`
	SellRate     decimal.Decimal `json:"sell_rate"`
}

// Spread returns the sell rate minus the buy rate.
func (q RateQuote) Spread() decimal.Decimal {
	return q.SellRate.Sub(q.BuyRate)
}

// Currency describes one quoted currency.
type Currency struct {
	ID        string `json:"id"`
	Code      string `json:"code"`
	Name      string `json:"name"`
	FlagEmoji string `json:"flag_emoji,omitempty"`
}

// QuotePoint is one historical observation of a buy/sell pair.
type QuotePoint struct {
	Timestamp time.Time       `json:"timestamp"`
	Buy       decimal.Decimal `json:"buy"`
	Sell      decimal.Decimal `json:"sell"`
}

// QuoteStatistics summarizes a quote's movement over a number of days.
type QuoteStatistics struct {
	Days    int             `json:"days"`
	MinBuy  decimal.Decimal `json:"min_buy"`
	MaxBuy  decimal.Decimal `json:"max_buy"`
	AvgBuy  decimal.Decimal `json:"avg_buy"`
	MinSell decimal.Decimal `json:"min_sell"`
	MaxSell decimal.Decimal `json:"max_sell"`
	AvgSell decimal.Decimal `json:"avg_sell"`
}

// ConversionRequest asks the server to convert an amount between currencies.
type ConversionRequest struct {
	FromCode string          `json:"from_code"`
	ToCode   string          `json:"to_code"`
	Amount   decimal.Decimal `json:"amount"`
}

// ConversionResult is the server's answer to a ConversionRequest.
type ConversionResult struct {
	FromCode string          `json:"from_code"`
	ToCode   string          `json:"to_code"`
	Amount   decimal.Decimal `json:"amount"`
	Result   decimal.Decimal `json:"result"`
	Rate     decimal.Decimal `json:"rate"`
}

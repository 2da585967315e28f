package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/zahabco/gold-dashboard/models"
)

// CurrencyService wraps the /currency endpoints with typed methods.
type CurrencyService struct {
	client *Client
}

func NewCurrencyService(client *Client) *CurrencyService {
	return &CurrencyService{client: client}
}

// Rates returns the current buy/sell rate for every quoted currency.
func (s *CurrencyService) Rates(ctx context.Context) ([]models.RateQuote, error) {
	payload, err := s.client.RequestWithRetry(ctx, http.MethodGet, "/currency/rates", nil, nil)
	if err != nil {
		return nil, err
	}

	var rates []models.RateQuote
	if err := unwrap(payload, &rates); err != nil {
		return nil, err
	}
	return rates, nil
}

// Currencies returns the configured currency list.
func (s *CurrencyService) Currencies(ctx context.Context) ([]models.Currency, error) {
	payload, err := s.client.RequestWithRetry(ctx, http.MethodGet, "/currency/currencies", nil, nil)
	if err != nil {
		return nil, err
	}

	var currencies []models.Currency
	if err := unwrap(payload, &currencies); err != nil {
		return nil, err
	}
	return currencies, nil
}

// RateByID returns one rate record.
func (s *CurrencyService) RateByID(ctx context.Context, id string) (models.RateQuote, error) {
	var rate models.RateQuote
	payload, err := s.client.RequestWithRetry(ctx, http.MethodGet, "/currency/rates/"+id, nil, nil)
	if err != nil {
		return rate, err
	}
	err = unwrap(payload, &rate)
	return rate, err
}

// Current returns the latest rate for a currency.
func (s *CurrencyService) Current(ctx context.Context, currencyID string) (models.RateQuote, error) {
	var rate models.RateQuote
	payload, err := s.client.RequestWithRetry(ctx, http.MethodGet, "/currency/current/"+currencyID, nil, nil)
	if err != nil {
		return rate, err
	}
	err = unwrap(payload, &rate)
	return rate, err
}

// ByCode looks a rate up by its ISO code.
func (s *CurrencyService) ByCode(ctx context.Context, code string) (models.RateQuote, error) {
	var rate models.RateQuote
	payload, err := s.client.RequestWithRetry(ctx, http.MethodGet, "/currency/code/"+code, nil, nil)
	if err != nil {
		return rate, err
	}
	err = unwrap(payload, &rate)
	return rate, err
}

// History returns historical rate points for a currency.
func (s *CurrencyService) History(ctx context.Context, currencyID string, params HistoryParams) ([]models.QuotePoint, error) {
	payload, err := s.client.RequestWithRetry(ctx, http.MethodGet, "/currency/history/"+currencyID, nil, params.values())
	if err != nil {
		return nil, err
	}

	var points []models.QuotePoint
	if err := unwrap(payload, &points); err != nil {
		return nil, err
	}
	return points, nil
}

// Compare returns rates for the given currencies side by side.
func (s *CurrencyService) Compare(ctx context.Context, currencyIDs []string) ([]models.RateQuote, error) {
	query := url.Values{}
	for _, id := range currencyIDs {
		query.Add("ids", id)
	}

	payload, err := s.client.RequestWithRetry(ctx, http.MethodGet, "/currency/compare", nil, query)
	if err != nil {
		return nil, err
	}

	var rates []models.RateQuote
	if err := unwrap(payload, &rates); err != nil {
		return nil, err
	}
	return rates, nil
}

// Statistics summarizes a currency's movement over the given window.
func (s *CurrencyService) Statistics(ctx context.Context, currencyID string, days int) (models.QuoteStatistics, error) {
	query := url.Values{}
	query.Set("days", strconv.Itoa(days))

	var stats models.QuoteStatistics
	payload, err := s.client.RequestWithRetry(ctx, http.MethodGet, "/currency/statistics/"+currencyID, nil, query)
	if err != nil {
		return stats, err
	}
	err = unwrap(payload, &stats)
	return stats, err
}

// RateInput is the create/update body for a currency rate.
type RateInput struct {
	CurrencyCode string `json:"currency_code"`
	CurrencyName string `json:"currency_name"`
	FlagEmoji    string `json:"flag_emoji,omitempty"`
	BuyRate      string `json:"buy_rate"`
	SellRate     string `json:"sell_rate"`
}

// CreateRate adds a new currency rate.
func (s *CurrencyService) CreateRate(ctx context.Context, input RateInput) (models.RateQuote, error) {
	var rate models.RateQuote
	payload, err := s.client.Post(ctx, "/currency/rates", input)
	if err != nil {
		return rate, err
	}
	err = unwrap(payload, &rate)
	return rate, err
}

// UpdateRate replaces an existing currency rate.
func (s *CurrencyService) UpdateRate(ctx context.Context, id string, input RateInput) (models.RateQuote, error) {
	var rate models.RateQuote
	payload, err := s.client.Put(ctx, "/currency/rates/"+id, input)
	if err != nil {
		return rate, err
	}
	err = unwrap(payload, &rate)
	return rate, err
}

// DeleteRate removes a currency rate.
func (s *CurrencyService) DeleteRate(ctx context.Context, id string) error {
	payload, err := s.client.Delete(ctx, "/currency/rates/"+id)
	if err != nil {
		return err
	}
	return unwrap(payload, nil)
}

// Convert asks the server to convert an amount between currencies.
func (s *CurrencyService) Convert(ctx context.Context, request models.ConversionRequest) (models.ConversionResult, error) {
	var result models.ConversionResult
	payload, err := s.client.Post(ctx, "/currency/convert", request)
	if err != nil {
		return result, err
	}
	err = unwrap(payload, &result)
	return result, err
}

// BulkUpdate replaces several rates in one call.
func (s *CurrencyService) BulkUpdate(ctx context.Context, inputs []RateInput) ([]models.RateQuote, error) {
	payload, err := s.client.Post(ctx, "/currency/bulk-update", inputs)
	if err != nil {
		return nil, err
	}

	var rates []models.RateQuote
	if err := unwrap(payload, &rates); err != nil {
		return nil, err
	}
	return rates, nil
}

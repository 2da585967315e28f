package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/zahabco/gold-dashboard/models"
)

// GoldService wraps the /gold endpoints with typed methods. Reads go through
// the retry pipeline; writes are single-attempt because the mutations are
// not idempotent.
type GoldService struct {
	client *Client
}

func NewGoldService(client *Client) *GoldService {
	return &GoldService{client: client}
}

// Prices returns the current buy/sell quote for every gold type.
func (s *GoldService) Prices(ctx context.Context) ([]models.PriceQuote, error) {
	payload, err := s.client.RequestWithRetry(ctx, http.MethodGet, "/gold/prices", nil, nil)
	if err != nil {
		return nil, err
	}

	var prices []models.PriceQuote
	if err := unwrap(payload, &prices); err != nil {
		return nil, err
	}
	return prices, nil
}

// Types returns the configured gold categories.
func (s *GoldService) Types(ctx context.Context) ([]models.GoldType, error) {
	payload, err := s.client.RequestWithRetry(ctx, http.MethodGet, "/gold/types", nil, nil)
	if err != nil {
		return nil, err
	}

	var types []models.GoldType
	if err := unwrap(payload, &types); err != nil {
		return nil, err
	}
	return types, nil
}

// PriceByID returns one quote record.
func (s *GoldService) PriceByID(ctx context.Context, id string) (models.PriceQuote, error) {
	var quote models.PriceQuote
	payload, err := s.client.RequestWithRetry(ctx, http.MethodGet, "/gold/prices/"+id, nil, nil)
	if err != nil {
		return quote, err
	}
	err = unwrap(payload, &quote)
	return quote, err
}

// Current returns the latest quote for a gold type.
func (s *GoldService) Current(ctx context.Context, goldTypeID string) (models.PriceQuote, error) {
	var quote models.PriceQuote
	payload, err := s.client.RequestWithRetry(ctx, http.MethodGet, "/gold/current/"+goldTypeID, nil, nil)
	if err != nil {
		return quote, err
	}
	err = unwrap(payload, &quote)
	return quote, err
}

// HistoryParams bounds a history query.
type HistoryParams struct {
	From  time.Time
	To    time.Time
	Limit int
}

func (p HistoryParams) values() url.Values {
	query := url.Values{}
	if !p.From.IsZero() {
		query.Set("from", p.From.Format(time.RFC3339))
	}
	if !p.To.IsZero() {
		query.Set("to", p.To.Format(time.RFC3339))
	}
	if p.Limit > 0 {
		query.Set("limit", strconv.Itoa(p.Limit))
	}
	return query
}

// History returns historical quote points for a gold type.
func (s *GoldService) History(ctx context.Context, goldTypeID string, params HistoryParams) ([]models.QuotePoint, error) {
	payload, err := s.client.RequestWithRetry(ctx, http.MethodGet, "/gold/history/"+goldTypeID, nil, params.values())
	if err != nil {
		return nil, err
	}

	var points []models.QuotePoint
	if err := unwrap(payload, &points); err != nil {
		return nil, err
	}
	return points, nil
}

// Compare returns quotes for the given gold types side by side.
func (s *GoldService) Compare(ctx context.Context, goldTypeIDs []string) ([]models.PriceQuote, error) {
	query := url.Values{}
	for _, id := range goldTypeIDs {
		query.Add("ids", id)
	}

	payload, err := s.client.RequestWithRetry(ctx, http.MethodGet, "/gold/compare", nil, query)
	if err != nil {
		return nil, err
	}

	var quotes []models.PriceQuote
	if err := unwrap(payload, &quotes); err != nil {
		return nil, err
	}
	return quotes, nil
}

// Statistics summarizes a gold type's movement over the given window.
func (s *GoldService) Statistics(ctx context.Context, goldTypeID string, days int) (models.QuoteStatistics, error) {
	query := url.Values{}
	query.Set("days", strconv.Itoa(days))

	var stats models.QuoteStatistics
	payload, err := s.client.RequestWithRetry(ctx, http.MethodGet, "/gold/statistics/"+goldTypeID, nil, query)
	if err != nil {
		return stats, err
	}
	err = unwrap(payload, &stats)
	return stats, err
}

// PriceInput is the create/update body for a gold quote.
type PriceInput struct {
	GoldTypeName string `json:"gold_type_name"`
	Karat        int    `json:"karat"`
	BuyPrice     string `json:"buy_price"`
	SellPrice    string `json:"sell_price"`
}

// CreatePrice adds a new gold quote.
func (s *GoldService) CreatePrice(ctx context.Context, input PriceInput) (models.PriceQuote, error) {
	var quote models.PriceQuote
	payload, err := s.client.Post(ctx, "/gold/prices", input)
	if err != nil {
		return quote, err
	}
	err = unwrap(payload, &quote)
	return quote, err
}

// UpdatePrice replaces an existing gold quote.
func (s *GoldService) UpdatePrice(ctx context.Context, id string, input PriceInput) (models.PriceQuote, error) {
	var quote models.PriceQuote
	payload, err := s.client.Put(ctx, "/gold/prices/"+id, input)
	if err != nil {
		return quote, err
	}
	err = unwrap(payload, &quote)
	return quote, err
}

// DeletePrice removes a gold quote.
func (s *GoldService) DeletePrice(ctx context.Context, id string) error {
	payload, err := s.client.Delete(ctx, "/gold/prices/"+id)
	if err != nil {
		return err
	}
	return unwrap(payload, nil)
}

// TriggerAutoUpdate asks the server to refresh its gold prices from its own
// upstream source.
func (s *GoldService) TriggerAutoUpdate(ctx context.Context) error {
	payload, err := s.client.Post(ctx, "/gold/auto-update", nil)
	if err != nil {
		return err
	}
	return unwrap(payload, nil)
}

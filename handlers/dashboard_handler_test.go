package handlers

import (
	"context"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zahabco/gold-dashboard/app"
	"github.com/zahabco/gold-dashboard/models"
	"github.com/zahabco/gold-dashboard/shared"
	"github.com/zahabco/gold-dashboard/views"
)

type fixedGold struct{}

func (fixedGold) Prices(ctx context.Context) ([]models.PriceQuote, error) {
	return []models.PriceQuote{{
		ID:           "1",
		GoldTypeName: "Gold Bar",
		Karat:        24,
		BuyPrice:     decimal.RequireFromString("1000.00"),
		SellPrice:    decimal.RequireFromString("1005.50"),
	}}, nil
}

type fixedCurrency struct{}

func (fixedCurrency) Rates(ctx context.Context) ([]models.RateQuote, error) {
	return []models.RateQuote{{
		ID:           "7",
		CurrencyCode: "USD",
		CurrencyName: "US Dollar",
		BuyRate:      decimal.RequireFromString("3.6720"),
		SellRate:     decimal.RequireFromString("3.6850"),
	}}, nil
}

type fixedSettings struct{}

func (fixedSettings) StoreInfo(ctx context.Context) (models.StoreInfo, error) {
	return models.StoreInfo{Name: "Zahab Gold"}, nil
}

func (fixedSettings) MarketStatus(ctx context.Context) (models.MarketStatus, error) {
	return models.MarketStatus{IsOpen: true}, nil
}

func newTestServer(t *testing.T) *fiber.App {
	t.Helper()

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	application := app.New(fixedGold{}, fixedCurrency{}, fixedSettings{}, views.NewRenderer(), shared.NewFetchMetrics(), time.Second, logger)
	require.NoError(t, application.Init(context.Background()))
	application.Tick(time.Date(2026, 8, 23, 12, 0, 0, 0, time.Local))

	handler := NewDashboardHandler(application)
	server := fiber.New()
	server.Get("/", handler.GetDashboard)
	server.Get("/fragments/gold", handler.GetGoldFragment)
	server.Get("/fragments/currency", handler.GetCurrencyFragment)
	server.Get("/fragments/market", handler.GetMarketFragment)
	server.Get("/status", handler.GetStatus)
	server.Get("/metrics", handler.GetMetrics)
	return server
}

func TestGetDashboardServesComposedPage(t *testing.T) {
	server := newTestServer(t)

	response, err := server.Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)
	defer response.Body.Close()
	assert.Equal(t, fiber.StatusOK, response.StatusCode)

	body, err := io.ReadAll(response.Body)
	require.NoError(t, err)
	page := string(body)

	assert.Contains(t, page, "Zahab Gold")
	assert.Contains(t, page, "Gold Bar")
	assert.Contains(t, page, "USD")
	assert.Contains(t, page, "12:00:00")
	assert.Contains(t, page, "market-open")
}

func TestGetGoldFragment(t *testing.T) {
	server := newTestServer(t)

	response, err := server.Test(httptest.NewRequest("GET", "/fragments/gold", nil))
	require.NoError(t, err)
	defer response.Body.Close()
	assert.Equal(t, fiber.StatusOK, response.StatusCode)

	body, err := io.ReadAll(response.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "5.50")
}

func TestGetMarketFragment(t *testing.T) {
	server := newTestServer(t)

	response, err := server.Test(httptest.NewRequest("GET", "/fragments/market", nil))
	require.NoError(t, err)
	defer response.Body.Close()

	body, err := io.ReadAll(response.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "market-open")
}

func TestGetStatusReportsLifecycleState(t *testing.T) {
	server := newTestServer(t)

	response, err := server.Test(httptest.NewRequest("GET", "/status", nil))
	require.NoError(t, err)
	defer response.Body.Close()

	body, err := io.ReadAll(response.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `"ready"`)
}

func TestGetMetricsReportsFetchStats(t *testing.T) {
	server := newTestServer(t)

	response, err := server.Test(httptest.NewRequest("GET", "/metrics", nil))
	require.NoError(t, err)
	defer response.Body.Close()
	assert.Equal(t, fiber.StatusOK, response.StatusCode)

	body, err := io.ReadAll(response.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "gold_prices")
}

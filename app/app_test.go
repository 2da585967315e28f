package app

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zahabco/gold-dashboard/models"
	"github.com/zahabco/gold-dashboard/shared"
	"github.com/zahabco/gold-dashboard/views"
)

type stubGold struct {
	mutex  sync.Mutex
	prices []models.PriceQuote
	err    error
	calls  int
}

func (s *stubGold) Prices(ctx context.Context) ([]models.PriceQuote, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.calls++
	return s.prices, s.err
}

type stubCurrency struct {
	mutex sync.Mutex
	rates []models.RateQuote
	err   error
	calls int
}

func (s *stubCurrency) Rates(ctx context.Context) ([]models.RateQuote, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.calls++
	return s.rates, s.err
}

type stubSettings struct {
	mutex     sync.Mutex
	info      models.StoreInfo
	infoErr   error
	status    models.MarketStatus
	statusErr error
}

func (s *stubSettings) StoreInfo(ctx context.Context) (models.StoreInfo, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return s.info, s.infoErr
}

func (s *stubSettings) MarketStatus(ctx context.Context) (models.MarketStatus, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return s.status, s.statusErr
}

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func sampleGold() []models.PriceQuote {
	return []models.PriceQuote{{
		ID:           "1",
		GoldTypeName: "Gold Bar",
		Karat:        24,
		BuyPrice:     decimal.RequireFromString("1000.00"),
		SellPrice:    decimal.RequireFromString("1005.50"),
	}}
}

func sampleRates() []models.RateQuote {
	return []models.RateQuote{{
		ID:           "7",
		CurrencyCode: "USD",
		CurrencyName: "US Dollar",
		BuyRate:      decimal.RequireFromString("3.6720"),
		SellRate:     decimal.RequireFromString("3.6850"),
	}}
}

func newTestApp(gold *stubGold, currency *stubCurrency, settings *stubSettings, successTTL time.Duration) *App {
	return New(gold, currency, settings, views.NewRenderer(), shared.NewFetchMetrics(), successTTL, quietLogger())
}

func TestInitHappyPath(t *testing.T) {
	gold := &stubGold{prices: sampleGold()}
	currency := &stubCurrency{rates: sampleRates()}
	settings := &stubSettings{
		info:   models.StoreInfo{Name: "Zahab Gold", Phone: "+971 4 123 4567"},
		status: models.MarketStatus{IsOpen: true},
	}
	application := newTestApp(gold, currency, settings, 0)

	assert.Equal(t, StateUninitialized, application.State())
	require.NoError(t, application.Init(context.Background()))
	assert.Equal(t, StateReady, application.State())

	regions := application.Regions()
	assert.Equal(t, "Zahab Gold", regions.HeaderName)
	assert.Equal(t, "Zahab Gold", regions.FooterName)
	assert.Equal(t, "tel:97141234567", regions.Links.PhoneLink)
	assert.Contains(t, regions.GoldCards, "Gold Bar")
	assert.Contains(t, regions.CurrencyCards, "USD")
	assert.Contains(t, regions.MarketBadge, "market-open")
}

func TestInitFailureIsFatal(t *testing.T) {
	gold := &stubGold{err: errors.New("feed down")}
	currency := &stubCurrency{rates: sampleRates()}
	settings := &stubSettings{status: models.MarketStatus{IsOpen: true}}
	application := newTestApp(gold, currency, settings, 0)

	err := application.Init(context.Background())
	require.Error(t, err)

	// No partial ready state: the error banner blocks and the currency
	// fetch after the failed gold step never ran.
	assert.NotEqual(t, StateReady, application.State())
	assert.Contains(t, application.Regions().Banner, "banner-error")
	assert.Equal(t, 0, currency.calls)
}

func TestRefreshAllPartialFailureKeepsStaleData(t *testing.T) {
	gold := &stubGold{prices: sampleGold()}
	currency := &stubCurrency{rates: sampleRates()}
	settings := &stubSettings{status: models.MarketStatus{IsOpen: true}}
	application := newTestApp(gold, currency, settings, 0)
	require.NoError(t, application.Init(context.Background()))

	before := application.Regions()

	// Next round: currency fails, gold moves, market closes.
	currency.mutex.Lock()
	currency.err = errors.New("rates feed down")
	currency.mutex.Unlock()
	gold.mutex.Lock()
	gold.prices = []models.PriceQuote{{
		ID:           "1",
		GoldTypeName: "Gold Bar",
		Karat:        24,
		BuyPrice:     decimal.RequireFromString("1010.00"),
		SellPrice:    decimal.RequireFromString("1016.25"),
	}}
	gold.mutex.Unlock()
	settings.mutex.Lock()
	settings.status = models.MarketStatus{IsOpen: false}
	settings.mutex.Unlock()

	application.RefreshAll(context.Background())
	assert.Equal(t, StateReady, application.State())

	after := application.Regions()
	assert.Contains(t, after.GoldCards, "1010.00")
	assert.Contains(t, after.MarketBadge, "market-closed")
	assert.Equal(t, before.CurrencyCards, after.CurrencyCards)
}

func TestRefreshAllSkippedWhenNotReady(t *testing.T) {
	gold := &stubGold{prices: sampleGold()}
	currency := &stubCurrency{rates: sampleRates()}
	settings := &stubSettings{}
	application := newTestApp(gold, currency, settings, 0)

	application.RefreshAll(context.Background())
	assert.Equal(t, 0, gold.calls)
	assert.Equal(t, 0, currency.calls)
}

func TestSuccessBannerSelfClears(t *testing.T) {
	application := newTestApp(&stubGold{}, &stubCurrency{}, &stubSettings{}, 20*time.Millisecond)

	application.ShowSuccess("saved")
	assert.Contains(t, application.Regions().Banner, "banner-success")

	assert.Eventually(t, func() bool {
		return application.Regions().Banner == ""
	}, 2*time.Second, 10*time.Millisecond)
}

func TestErrorBannerPersistsAndReplacesSuccess(t *testing.T) {
	application := newTestApp(&stubGold{}, &stubCurrency{}, &stubSettings{}, 20*time.Millisecond)

	application.ShowSuccess("saved")
	application.ShowError("something broke")

	// The pending success self-clear must not wipe the error banner.
	time.Sleep(100 * time.Millisecond)
	assert.Contains(t, application.Regions().Banner, "banner-error")
	assert.Contains(t, application.Regions().Banner, "something broke")
}

func TestTickUpdatesClockRegion(t *testing.T) {
	application := newTestApp(&stubGold{}, &stubCurrency{}, &stubSettings{}, 0)

	application.Tick(time.Date(2026, 8, 23, 9, 30, 15, 0, time.Local))
	assert.Equal(t, "09:30:15", application.Regions().Clock)
}

func TestTeardownIsIdempotent(t *testing.T) {
	application := newTestApp(&stubGold{}, &stubCurrency{}, &stubSettings{}, 0)

	application.Teardown()
	application.Teardown()
	assert.Equal(t, StateTornDown, application.State())
}

func TestMetricsRecordFetchOutcomes(t *testing.T) {
	gold := &stubGold{prices: sampleGold()}
	currency := &stubCurrency{err: errors.New("down")}
	settings := &stubSettings{}
	application := newTestApp(gold, currency, settings, 0)

	err := application.Init(context.Background())
	require.Error(t, err)

	snapshot := application.Metrics().Snapshot()
	assert.Equal(t, int64(1), snapshot["gold_prices"].SuccessfulFetches)
	assert.Equal(t, int64(1), snapshot["currency_rates"].FailedFetches)
}

package app

import (
	"context"
	"html/template"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/zahabco/gold-dashboard/models"
	"github.com/zahabco/gold-dashboard/shared"
	"github.com/zahabco/gold-dashboard/views"
)

// State is the application lifecycle position.
type State int32

const (
	StateUninitialized State = iota
	StateInitializing
	StateReady
	StateRefreshing
	StateTornDown
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateInitializing:
		return "initializing"
	case StateReady:
		return "ready"
	case StateRefreshing:
		return "refreshing"
	case StateTornDown:
		return "torn-down"
	default:
		return "unknown"
	}
}

// GoldFetcher supplies the gold price snapshot.
type GoldFetcher interface {
	Prices(ctx context.Context) ([]models.PriceQuote, error)
}

// CurrencyFetcher supplies the currency rate snapshot.
type CurrencyFetcher interface {
	Rates(ctx context.Context) ([]models.RateQuote, error)
}

// SettingsFetcher supplies the store info and market status snapshots.
type SettingsFetcher interface {
	StoreInfo(ctx context.Context) (models.StoreInfo, error)
	MarketStatus(ctx context.Context) (models.MarketStatus, error)
}

// Regions are the rendered page fragments. Each fetch replaces only its own
// region; everything else keeps its previous content.
type Regions struct {
	HeaderName    string
	FooterName    string
	GoldCards     string
	CurrencyCards string
	MarketBadge   string
	Banner        string
	Clock         string
	Links         views.StoreLinks
}

// App owns the live data snapshots and reconciles them with the rendered
// regions. Snapshots are replaced wholesale on every successful fetch, never
// merged field by field.
type App struct {
	mutex    sync.RWMutex
	state    State
	gold     GoldFetcher
	currency CurrencyFetcher
	settings SettingsFetcher
	renderer *views.Renderer
	metrics  *shared.FetchMetrics
	logger   *logrus.Logger

	successTTL  time.Duration
	bannerTimer *time.Timer

	goldPrices []models.PriceQuote
	rates      []models.RateQuote
	store      models.StoreInfo
	market     models.MarketStatus

	regions Regions
}

// New returns an uninitialized application context. Nothing is fetched or
// rendered until Init.
func New(gold GoldFetcher, currency CurrencyFetcher, settings SettingsFetcher, renderer *views.Renderer, metrics *shared.FetchMetrics, successTTL time.Duration, logger *logrus.Logger) *App {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	if metrics == nil {
		metrics = shared.NewFetchMetrics()
	}
	if successTTL <= 0 {
		successTTL = 5 * time.Second
	}
	return &App{
		state:      StateUninitialized,
		gold:       gold,
		currency:   currency,
		settings:   settings,
		renderer:   renderer,
		metrics:    metrics,
		successTTL: successTTL,
		logger:     logger,
	}
}

// State returns the current lifecycle position.
func (a *App) State() State {
	a.mutex.RLock()
	defer a.mutex.RUnlock()
	return a.state
}

// Regions returns a copy of the current rendered fragments.
func (a *App) Regions() Regions {
	a.mutex.RLock()
	defer a.mutex.RUnlock()
	return a.regions
}

// Metrics exposes the fetch outcome tracker.
func (a *App) Metrics() *shared.FetchMetrics {
	return a.metrics
}

// Init performs the initial sequential load: store info, market status, gold
// prices, currency rates, each rendered as it arrives. Any failure aborts
// the sequence, shows a blocking error banner and leaves the application
// non-functional; there is no partial ready state.
func (a *App) Init(ctx context.Context) error {
	a.setState(StateInitializing)

	steps := []struct {
		name string
		run  func(context.Context) error
	}{
		{"store_info", a.refreshStoreInfo},
		{"market_status", a.refreshMarketStatus},
		{"gold_prices", a.refreshGoldPrices},
		{"currency_rates", a.refreshCurrencyRates},
	}

	for _, step := range steps {
		if err := step.run(ctx); err != nil {
			a.logger.WithError(err).WithFields(logrus.Fields{
				"component": "App",
				"step":      step.name,
			}).Error("Initial load failed")
			a.ShowError("Failed to load live rates. Please try again later.")
			return err
		}
	}

	a.setState(StateReady)
	a.logger.WithField("component", "App").Info("Initial load complete")
	return nil
}

// RefreshAll re-fetches gold prices, currency rates and market status as
// independent concurrent calls with no ordering guarantee. A failure in one
// is logged and does not cancel the others; stale data stays displayed.
func (a *App) RefreshAll(ctx context.Context) {
	a.mutex.Lock()
	if a.state != StateReady {
		a.mutex.Unlock()
		return
	}
	a.state = StateRefreshing
	a.mutex.Unlock()

	var wg sync.WaitGroup
	for _, refresh := range []struct {
		name string
		run  func(context.Context) error
	}{
		{"gold_prices", a.refreshGoldPrices},
		{"currency_rates", a.refreshCurrencyRates},
		{"market_status", a.refreshMarketStatus},
	} {
		wg.Add(1)
		go func(name string, run func(context.Context) error) {
			defer wg.Done()
			if err := run(ctx); err != nil {
				a.logger.WithError(err).WithFields(logrus.Fields{
					"component": "App",
					"entity":    name,
				}).Warn("Refresh fetch failed, keeping stale data")
			}
		}(refresh.name, refresh.run)
	}
	wg.Wait()

	a.mutex.Lock()
	if a.state == StateRefreshing {
		a.state = StateReady
	}
	a.mutex.Unlock()
}

func (a *App) refreshGoldPrices(ctx context.Context) error {
	prices, err := a.gold.Prices(ctx)
	a.metrics.RecordFetch("gold_prices", err)
	if err != nil {
		return err
	}

	rendered, err := a.renderer.GoldCards(prices)
	if err != nil {
		return err
	}

	a.mutex.Lock()
	a.goldPrices = prices
	a.regions.GoldCards = rendered
	a.mutex.Unlock()
	return nil
}

func (a *App) refreshCurrencyRates(ctx context.Context) error {
	rates, err := a.currency.Rates(ctx)
	a.metrics.RecordFetch("currency_rates", err)
	if err != nil {
		return err
	}

	rendered, err := a.renderer.CurrencyCards(rates)
	if err != nil {
		return err
	}

	a.mutex.Lock()
	a.rates = rates
	a.regions.CurrencyCards = rendered
	a.mutex.Unlock()
	return nil
}

func (a *App) refreshMarketStatus(ctx context.Context) error {
	status, err := a.settings.MarketStatus(ctx)
	a.metrics.RecordFetch("market_status", err)
	if err != nil {
		return err
	}

	badge := a.renderer.MarketBadge(status)

	a.mutex.Lock()
	a.market = status
	a.regions.MarketBadge = badge
	a.mutex.Unlock()
	return nil
}

func (a *App) refreshStoreInfo(ctx context.Context) error {
	info, err := a.settings.StoreInfo(ctx)
	a.metrics.RecordFetch("store_info", err)
	if err != nil {
		return err
	}

	links := views.BuildStoreLinks(info)

	a.mutex.Lock()
	a.store = info
	// The store name mirrors into header and footer; absent fields leave the
	// previous region content untouched.
	if info.Name != "" {
		a.regions.HeaderName = info.Name
		a.regions.FooterName = info.Name
	}
	if links.PhoneLink != "" {
		a.regions.Links.PhoneLink = links.PhoneLink
	}
	if links.WhatsappLink != "" {
		a.regions.Links.WhatsappLink = links.WhatsappLink
	}
	if links.InstagramLink != "" {
		a.regions.Links.InstagramLink = links.InstagramLink
	}
	if links.FacebookLink != "" {
		a.regions.Links.FacebookLink = links.FacebookLink
	}
	a.mutex.Unlock()
	return nil
}

// Tick updates the clock region with the given wall-clock time.
func (a *App) Tick(now time.Time) {
	text := a.renderer.ClockText(now)
	a.mutex.Lock()
	a.regions.Clock = text
	a.mutex.Unlock()
}

// ShowError replaces the banner region with an error message that persists
// until explicitly replaced.
func (a *App) ShowError(message string) {
	a.mutex.Lock()
	defer a.mutex.Unlock()
	if a.bannerTimer != nil {
		a.bannerTimer.Stop()
		a.bannerTimer = nil
	}
	a.regions.Banner = a.renderer.Banner("error", message)
}

// ShowSuccess replaces the banner region with a success message that clears
// itself after the configured delay.
func (a *App) ShowSuccess(message string) {
	a.mutex.Lock()
	defer a.mutex.Unlock()
	if a.bannerTimer != nil {
		a.bannerTimer.Stop()
	}
	a.regions.Banner = a.renderer.Banner("success", message)
	a.bannerTimer = time.AfterFunc(a.successTTL, a.clearBanner)
}

func (a *App) clearBanner() {
	a.mutex.Lock()
	defer a.mutex.Unlock()
	a.regions.Banner = ""
	a.bannerTimer = nil
}

// Teardown marks the application torn down. Safe to call repeatedly; the
// timers themselves are owned and stopped by the jobs layer.
func (a *App) Teardown() {
	a.mutex.Lock()
	defer a.mutex.Unlock()
	if a.state == StateTornDown {
		return
	}
	if a.bannerTimer != nil {
		a.bannerTimer.Stop()
		a.bannerTimer = nil
	}
	a.state = StateTornDown
}

// RenderPage composes the full dashboard document from the current regions.
func (a *App) RenderPage() (string, error) {
	regions := a.Regions()
	return a.renderer.Page(views.PageData{
		HeaderName:    regions.HeaderName,
		FooterName:    regions.FooterName,
		Clock:         regions.Clock,
		MarketBadge:   template.HTML(regions.MarketBadge),
		Banner:        template.HTML(regions.Banner),
		GoldCards:     template.HTML(regions.GoldCards),
		CurrencyCards: template.HTML(regions.CurrencyCards),
		Links:         regions.Links,
	})
}

func (a *App) setState(state State) {
	a.mutex.Lock()
	a.state = state
	a.mutex.Unlock()
}

package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/zahabco/gold-dashboard/app"
)

// DashboardHandler serves the composed dashboard page and its individual
// region fragments.
type DashboardHandler struct {
	app *app.App
}

func NewDashboardHandler(application *app.App) *DashboardHandler {
	return &DashboardHandler{app: application}
}

// GetDashboard returns the full dashboard document.
func (h *DashboardHandler) GetDashboard(c *fiber.Ctx) error {
	page, err := h.app.RenderPage()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"error":   "RENDER_FAILED",
		})
	}
	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.SendString(page)
}

// GetGoldFragment returns the gold cards region.
func (h *DashboardHandler) GetGoldFragment(c *fiber.Ctx) error {
	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.SendString(h.app.Regions().GoldCards)
}

// GetCurrencyFragment returns the currency cards region.
func (h *DashboardHandler) GetCurrencyFragment(c *fiber.Ctx) error {
	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.SendString(h.app.Regions().CurrencyCards)
}

// GetMarketFragment returns the market status badge region.
func (h *DashboardHandler) GetMarketFragment(c *fiber.Ctx) error {
	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.SendString(h.app.Regions().MarketBadge)
}

// GetStatus reports the lifecycle state, useful for probes and debugging.
func (h *DashboardHandler) GetStatus(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"state": h.app.State().String(),
		},
	})
}

// GetMetrics returns the per-entity fetch statistics.
func (h *DashboardHandler) GetMetrics(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"success": true,
		"data":    h.app.Metrics().Snapshot(),
	})
}

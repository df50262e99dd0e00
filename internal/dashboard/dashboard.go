// Package dashboard serves the interactive chart view on top of the
// weather history API. The page is a single embedded HTML document that
// pulls JSON from /api/v1 and renders line charts client-side.
package dashboard

import (
	_ "embed"

	"github.com/gofiber/fiber/v2"

	"weather-monitor/internal/weather"
)

//go:embed index.html
var indexHTML []byte

// Register wires the dashboard routes into the Fiber app.
func Register(app *fiber.App, locations []weather.Location) {
	app.Get("/", func(c *fiber.Ctx) error {
		c.Type("html", "utf-8")
		return c.Send(indexHTML)
	})

	// The dashboard's location selector is driven by the configured locations.
	app.Get("/api/v1/locations", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"locations": locations})
	})
}

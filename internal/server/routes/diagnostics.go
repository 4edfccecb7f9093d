package routes

import (
	"github.com/gofiber/fiber/v3"

	"github.com/ido50/mccs/internal/fileserver"
)

// RegisterDiagnosticRoutes exposes /-/capabilities, an SRE-facing
// endpoint reporting which minifier and compressor backends this build
// registered at process startup.
func RegisterDiagnosticRoutes(app *fiber.App) {
	if app == nil {
		return
	}

	app.Get("/-/capabilities", func(c fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"minifiers":   fileserver.AvailableMinifiers(),
			"compressors": fileserver.AvailableCompressors(),
		})
	})
}

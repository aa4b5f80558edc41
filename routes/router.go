package routes

import (
	"errors"

	"invite.link/configs"
	"invite.link/configs/configslog"
	"invite.link/pkg/inviteapi"
	"invite.link/pkg/metrics"
	"invite.link/pkg/renderer"
	"invite.link/views"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/favicon"
	"github.com/gofiber/fiber/v2/middleware/filesystem"
	"github.com/gofiber/fiber/v2/middleware/logger"
	recoverMiddleware "github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"
)

// SetupRoutes registers the guest web app: assets and probes first, then the
// token pages, then the 404 fallback.
func SetupRoutes(app *fiber.App, cfg *configs.AppConfig, api inviteapi.IClient) {
	// --- Common middleware ---
	app.Use(recoverMiddleware.New())
	app.Use(logger.New())
	app.Use(favicon.New())

	// Registered before /:token so that none of these is taken for a token.
	app.Use("/static", filesystem.New(filesystem.Config{Root: views.Static()}))
	app.Use("/static", notFoundHandler)
	app.Get("/metrics", metrics.Handler())
	app.Get("/healthz", healthz)

	registerGuestRoutes(app, cfg, api)

	app.Use(notFoundHandler)
}

func healthz(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

func notFoundHandler(c *fiber.Ctx) error {
	accepts := c.Accepts("text/html", "application/json")
	switch accepts {
	case "application/json":
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"detail": "Not found"})
	default:
		return renderer.RenderNotFound(c, "Page Not Found", "The page you are looking for does not exist.")
	}
}

// ErrorHandler is the guest app's fiber error handler.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
	}

	if code >= fiber.StatusInternalServerError {
		configslog.Log.Error("request failed", zap.String("path", c.Path()), zap.Int("status", code), zap.Error(err))
	}

	if c.Accepts("text/html", "application/json") == "application/json" {
		return c.Status(code).JSON(fiber.Map{"detail": err.Error()})
	}
	if code == fiber.StatusNotFound {
		return renderer.RenderNotFound(c, "Page Not Found", "")
	}

	renderErr := c.Status(code).Render("errors/500", fiber.Map{
		"Title": "Something went wrong",
	}, renderer.LayoutError)
	if renderErr != nil {
		return c.Status(code).SendString("Something went wrong. Please try again later.")
	}
	return nil
}

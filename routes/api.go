package routes

import (
	"errors"

	"invite.link/configs"
	"invite.link/configs/configslog"
	api_handlers "invite.link/handlers/api"
	"invite.link/pkg/metrics"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	recoverMiddleware "github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SetupAPIRoutes registers the RSVP API server.
func SetupAPIRoutes(app *fiber.App, cfg *configs.AppConfig) {
	app.Use(recoverMiddleware.New())
	app.Use(requestid.New(requestid.Config{Generator: uuid.NewString}))
	app.Use(logger.New(logger.Config{
		Format: "${time} ${locals:requestid} ${status} - ${latency} ${method} ${path}\n",
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSAllowOrigins,
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept",
	}))

	app.Get("/metrics", metrics.Handler())

	groupHandler := api_handlers.NewGroupHandler()

	apiGroup := app.Group("/api")
	apiGroup.Get("/health", api_handlers.Health)

	groups := apiGroup.Group("/groups")
	groups.Get("/verify/:token", groupHandler.Verify)    // GET /api/groups/verify/{token}
	groups.Get("/status/:token", groupHandler.Status)    // GET /api/groups/status/{token}
	groups.Post("/rsvp/:token", groupHandler.SubmitRSVP) // POST /api/groups/rsvp/{token}

	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"detail": "Not Found"})
	})
}

// APIErrorHandler answers every unhandled error with a {"detail": ...} body.
func APIErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
	}
	if code >= fiber.StatusInternalServerError {
		configslog.Log.Error("API request failed", zap.String("path", c.Path()), zap.Error(err))
		return c.Status(code).JSON(fiber.Map{"detail": "Internal server error"})
	}
	return c.Status(code).JSON(fiber.Map{"detail": err.Error()})
}

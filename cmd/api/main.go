package main

import (
	"invite.link/configs"
	"invite.link/configs/configsdatabase"
	"invite.link/configs/configslog"
	"invite.link/pkg/server"
	"invite.link/routes"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

func main() {
	cfg := configs.LoadConfig()
	configslog.InitLogger()
	defer configslog.SyncLogger()

	if err := cfg.Validate(); err != nil {
		configslog.Log.Fatal("invalid configuration", zap.Error(err))
	}

	configsdatabase.InitDB()
	defer configsdatabase.CloseDB()

	app := fiber.New(fiber.Config{
		AppName:      "invite.link API",
		ErrorHandler: routes.APIErrorHandler,
	})
	routes.SetupAPIRoutes(app, cfg)

	if err := server.Run(app, cfg.APIAddr()); err != nil {
		configslog.Log.Error("API server stopped", zap.Error(err))
	}
}

package main

import (
	"invite.link/configs"
	"invite.link/configs/configslog"
	"invite.link/pkg/inviteapi"
	"invite.link/pkg/server"
	"invite.link/routes"
	"invite.link/views"

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

	app := fiber.New(fiber.Config{
		AppName:      "invite.link",
		Views:        views.NewEngine(),
		ErrorHandler: routes.ErrorHandler,
	})
	routes.SetupRoutes(app, cfg, inviteapi.NewClient(cfg.APIBaseURL))

	configslog.Log.Info("guest site configured",
		zap.String("env", cfg.Env),
		zap.String("api_base_url", cfg.APIBaseURL),
		zap.Bool("show_intro", cfg.ShowIntro))

	if err := server.Run(app, cfg.WebAddr()); err != nil {
		configslog.Log.Error("guest site stopped", zap.Error(err))
	}
}

// Package server runs a fiber app until SIGINT/SIGTERM.
package server

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"invite.link/configs/configslog"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const shutdownTimeout = 30 * time.Second

// Run listens on addr and shuts the app down gracefully on a termination
// signal. It returns the listen error, if any.
func Run(app *fiber.App, addr string) error {
	errCh := make(chan error, 1)
	go func() {
		configslog.Log.Info("starting server", zap.String("addr", addr))
		errCh <- app.Listen(addr)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err := <-errCh:
		return err
	case sig := <-quit:
		configslog.Log.Info("shutting down server", zap.String("signal", sig.String()))
	}

	if err := app.ShutdownWithTimeout(shutdownTimeout); err != nil {
		configslog.Log.Error("server forced to shutdown", zap.Error(err))
		return err
	}
	configslog.SLog.Info("server exited")
	return nil
}

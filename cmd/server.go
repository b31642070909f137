package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

const shutdownTimeout = 10 * time.Second

// runServer serves app on server until ctx is cancelled, then drains
// in-flight requests. Echo.Shutdown only knows about e.Server, so the server
// handed to StartServer is shut down directly.
func runServer(ctx context.Context, app *echo.Echo, server *http.Server, logger logrus.FieldLogger, drain time.Duration) error {
	serveErr := make(chan error, 1)
	go func() {
		serveErr <- app.StartServer(server)
	}()

	select {
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), drain)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.WithError(err).Error("graceful shutdown failed")
		return err
	}
	if err := <-serveErr; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

package service

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"commentsapi/app/config"
	"commentsapi/app/database"
	"commentsapi/app/middleware"
	"commentsapi/app/routes"

	"github.com/sirupsen/logrus"
)

const limiterCleanupInterval = time.Minute

// Serve opens the configured store and serves the API on ln until ctx is
// done, then drains in-flight requests for up to cfg.ShutdownTimeout.
func Serve(ctx context.Context, ln net.Listener, cfg *config.Config, log logrus.FieldLogger) error {
	store, err := database.Open(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer store.Close(context.Background())

	stop := make(chan struct{})
	defer close(stop)

	var limiter *middleware.RateLimiter
	if cfg.RateLimit > 0 {
		limiter = middleware.NewRateLimiter(cfg.RateLimit, cfg.RateBurst)
		limiter.StartCleanup(limiterCleanupInterval, stop)
	}

	srv := &http.Server{
		Handler: routes.SetupRoutes(store, routes.Options{
			Secret:  []byte(cfg.JWTSecret),
			Limiter: limiter,
			Log:     log,
		}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()
	log.WithFields(logrus.Fields{
		"addr":  ln.Addr().String(),
		"store": cfg.Store,
	}).Info("comments API listening")

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/humacli"
	"github.com/go-chi/chi/v5"
	"github.com/samber/do"
	"github.com/serroba/shortlink-go/internal/container"
	"go.uber.org/zap"
)

const (
	readHeaderTimeout = 10 * time.Second
	shutdownTimeout   = 30 * time.Second
)

func main() {
	cli := humacli.New(func(hooks humacli.Hooks, options *container.Options) {
		injector := do.New()
		do.ProvideValue(injector, options)
		container.LoggerPackage(injector)
		container.RedisPackage(injector)
		container.PostgresPackage(injector)
		container.RepositoryPackage(injector)
		container.ServicePackage(injector)
		container.RateLimitPackage(injector)
		container.PublisherGroupPackage(injector)
		container.HTTPPackage(injector)

		logger := do.MustInvoke[*zap.Logger](injector)

		var server *http.Server

		hooks.OnStart(func() {
			// Resolving the API wires middleware and routes onto the mux.
			_ = do.MustInvoke[huma.API](injector)

			server = &http.Server{
				Addr:              fmt.Sprintf(":%d", options.Port),
				Handler:           do.MustInvoke[*chi.Mux](injector),
				ReadHeaderTimeout: readHeaderTimeout,
			}

			logger.Info("listening", zap.String("addr", server.Addr))

			if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Fatal("serve", zap.Error(err))
			}
		})

		hooks.OnStop(func() {
			logger.Info("shutting down")

			ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()

			if server != nil {
				if err := server.Shutdown(ctx); err != nil {
					logger.Error("http shutdown", zap.Error(err))
				}
			}

			if err := injector.Shutdown(); err != nil {
				logger.Error("injector shutdown", zap.Error(err))
			}

			logger.Info("shutdown complete")
		})
	})

	cli.Run()
}

package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	_ "github.com/danielgtaylor/huma/v2/formats/cbor"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/janisto/connect-provisioner/internal/config"
	"github.com/janisto/connect-provisioner/internal/http/health"
	"github.com/janisto/connect-provisioner/internal/http/v1/routes"
	applog "github.com/janisto/connect-provisioner/internal/platform/logging"
	"github.com/janisto/connect-provisioner/internal/platform/metrics"
	appmiddleware "github.com/janisto/connect-provisioner/internal/platform/middleware"
	"github.com/janisto/connect-provisioner/internal/platform/respond"
	"github.com/janisto/connect-provisioner/internal/service/connect"
	"github.com/janisto/connect-provisioner/internal/service/provisioning"
)

// Version can be overridden at build time: -ldflags "-X main.Version=1.2.3"
var Version = "dev"

const docsPath = "/v1/api-docs"

func main() {
	ctx := context.Background()
	defer func() {
		if err := applog.Sync(); err != nil {
			applog.LogError(ctx, "logger sync error", err)
		}
	}()
	if err := applog.Err(); err != nil {
		applog.LogError(ctx, "logger init error", err)
	}

	cfg, err := config.Load()
	if err != nil {
		applog.LogFatal(ctx, "invalid configuration", err)
	}

	client, err := connect.NewClient(ctx, cfg.Session())
	if err != nil {
		applog.LogFatal(ctx, "failed to create connect client", err)
	}

	recorder := metrics.NewRecorder()
	opts := append(cfg.ServiceOptions(), provisioning.WithObserver(recorder))
	svc := provisioning.NewService(client, cfg.Instance(), opts...)

	applog.LogInfo(ctx, "provisioner configured",
		zap.String("instance_id", cfg.Instance()),
		zap.String("region", cfg.AWSRegion()),
		zap.String("error_mode", svc.Mode().String()),
		zap.Int32("page_size", cfg.PageSize),
	)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           newRouter(svc, recorder, cfg.AllowedOrigins),
		ReadTimeout:       5 * time.Second,
		ReadHeaderTimeout: 2 * time.Second,
		// Provisioning makes three sequential Connect calls.
		WriteTimeout:   30 * time.Second,
		IdleTimeout:    60 * time.Second,
		MaxHeaderBytes: 64 << 10, // 64 KB
	}

	listenErr := make(chan error, 1)
	go func() {
		applog.LogInfo(ctx, "server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			listenErr <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-listenErr:
		applog.LogFatal(ctx, "listen failed", err, zap.String("addr", srv.Addr))
	case <-stop:
		applog.LogInfo(ctx, "shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		applog.LogError(shutdownCtx, "server shutdown error", err)
	}
	applog.LogInfo(ctx, "server exited")
}

func newRouter(svc routes.Service, recorder *metrics.Recorder, origins []string) http.Handler {
	router := chi.NewRouter()
	router.NotFound(respond.NotFoundHandler())
	router.MethodNotAllowed(respond.MethodNotAllowedHandler())

	router.Use(
		appmiddleware.Security(docsPath, "/metrics"),
		appmiddleware.Vary(),
		appmiddleware.CORS(origins...),
		appmiddleware.RequestID(),
		// RealIP trusts X-Forwarded-For; run behind a trusted load balancer.
		chimiddleware.RealIP,
		chimiddleware.RequestSize(64<<10), // 64 KB
		applog.RequestLogger(),
		applog.AccessLogger(),
		respond.Recoverer(),
	)

	router.Get("/health", health.Handler(Version))
	router.Handle("/metrics", recorder.Handler())

	router.Route("/v1", func(r chi.Router) {
		cfg := huma.DefaultConfig("Connect Provisioner API", Version)
		cfg.Servers = []*huma.Server{{URL: "/v1"}}
		cfg.DocsPath = "/api-docs"
		api := humachi.New(r, cfg)

		api.OpenAPI().OnAddOperation = append(api.OpenAPI().OnAddOperation,
			func(_ *huma.OpenAPI, op *huma.Operation) {
				if op.RequestBody != nil && op.RequestBody.Content != nil {
					if jsonContent, ok := op.RequestBody.Content["application/json"]; ok {
						op.RequestBody.Content["application/cbor"] = jsonContent
					}
				}
				for _, resp := range op.Responses {
					if jsonContent, ok := resp.Content["application/json"]; ok {
						resp.Content["application/cbor"] = jsonContent
					}
				}
			},
		)

		routes.Register(api, svc)
	})

	return router
}

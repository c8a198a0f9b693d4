package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/contrib/instrumentation/github.com/labstack/echo/otelecho"

	"github.com/totegamma/tptech/internal/infra/database"
	"github.com/totegamma/tptech/internal/infra/repository"
	"github.com/totegamma/tptech/internal/present/rest"
	restmiddleware "github.com/totegamma/tptech/internal/present/rest/middleware"
	"github.com/totegamma/tptech/internal/present/web"
	"github.com/totegamma/tptech/internal/service"
	"github.com/totegamma/tptech/internal/usecase"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the website",
	RunE: func(cmd *cobra.Command, args []string) error {
		return serve(cmd.Context())
	},
}

func serve(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.Server.EnableTrace {
		shutdown, err := setupTraceProvider(ctx, cfg.Server.TraceEndpoint, "tptech", version)
		if err != nil {
			return errors.Wrap(err, "failed to setup trace provider")
		}
		defer func() {
			if err := shutdown(context.Background()); err != nil {
				slog.Error("failed to shutdown trace provider", slog.String("error", err.Error()))
			}
		}()
	}

	source, err := openSource(ctx, cfg)
	if err != nil {
		return err
	}
	contentUC := usecase.NewContentUsecase(source, cfg.Content.CacheTTL)
	err = contentUC.Preload(ctx)
	if err != nil {
		return errors.Wrap(err, "content preload failed")
	}
	blogUC := usecase.NewBlogUsecase(contentUC)

	var prefs usecase.PreferenceStore
	var signals *service.SignalService
	if cfg.Server.RedisAddr != "" {
		rdb := database.NewRedis(cfg.Server.RedisAddr, cfg.Server.RedisDB)
		if err := rdb.Ping(ctx).Err(); err != nil {
			slog.Warn("redis unavailable, locale stays in cookies only", slog.String("error", err.Error()))
		} else {
			prefs = repository.NewPreferenceRepository(rdb)
			signals = service.NewSignalService(rdb)
		}
	}

	var fragments usecase.FragmentCache = repository.NewMemoryFragments()
	if cfg.Server.MemcachedAddr != "" {
		fragments = repository.NewMemcacheFragments(database.NewMemcached(cfg.Server.MemcachedAddr))
	}

	translator, err := web.NewTranslator()
	if err != nil {
		return err
	}
	renderer, err := web.NewRenderer(translator)
	if err != nil {
		return err
	}

	e := echo.New()
	e.HideBanner = true
	e.Renderer = renderer
	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	if cfg.Server.EnableTrace {
		e.Use(otelecho.Middleware("tptech"))
	}
	e.Use(restmiddleware.NewLocaleMiddleware(prefs).IdentifyLocale)

	handler := rest.NewHandler(cfg.Site, contentUC, blogUC, web.NewArticleRenderer(fragments), prefs, signals)
	handler.RegisterRoutes(e)

	errCh := make(chan error, 1)
	go func() {
		slog.Info("listening", slog.String("addr", cfg.Server.Addr), slog.String("source", cfg.Content.Source))
		if err := e.Start(cfg.Server.Addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	slog.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}

var listenAddr string

func init() {
	serveCmd.Flags().StringVar(&listenAddr, "addr", "", "listen address, overrides server.addr")
	serveCmd.PreRun = func(cmd *cobra.Command, args []string) {
		if listenAddr != "" {
			cfg.Server.Addr = listenAddr
		}
	}
}

package main

import (
	"context"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/contrib/instrumentation/github.com/labstack/echo/otelecho"

	"github.com/totegamma/portalgun/internal/config"
	"github.com/totegamma/portalgun/internal/infra/cache"
	"github.com/totegamma/portalgun/internal/infra/database"
	"github.com/totegamma/portalgun/internal/infra/repository"
	"github.com/totegamma/portalgun/internal/infra/trace"
	"github.com/totegamma/portalgun/internal/present/rest"
	restmiddleware "github.com/totegamma/portalgun/internal/present/rest/middleware"
	"github.com/totegamma/portalgun/internal/service"
	"github.com/totegamma/portalgun/internal/usecase"
)

func newServeCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			conf, err := config.Load(configPath)
			if err != nil {
				return err
			}
			setupLogger(conf.Log.Level, conf.Log.Format)

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			return serve(ctx, conf)
		},
	}
	cmd.Flags().StringVarP(&configPath, "config", "c", "", "path to config.yaml")

	return cmd
}

func openStore(ctx context.Context, conf config.Config) (usecase.DocumentStore, func(), error) {
	policy := database.RetryPolicy{
		Attempts:        conf.Store.Retry.Attempts,
		InitialInterval: conf.Store.Retry.InitialInterval,
		MaxInterval:     conf.Store.Retry.MaxInterval,
	}

	switch conf.Store.Driver {
	case config.DriverPostgres:
		db, err := database.ConnectPostgres(ctx, conf.Store.PostgresDsn, policy)
		if err != nil {
			return nil, nil, err
		}
		if err := database.MigratePostgres(db); err != nil {
			return nil, nil, errors.Wrap(err, "migrate postgres")
		}
		closer := func() {
			if sqlDB, err := db.DB(); err == nil {
				sqlDB.Close()
			}
		}
		return repository.NewPostgresDocumentRepository(db), closer, nil
	default:
		client, err := database.ConnectMongo(ctx, conf.Store.MongoURI, policy)
		if err != nil {
			return nil, nil, err
		}
		db := client.Database(conf.Store.MongoDB)
		if err := database.MigrateMongo(ctx, db); err != nil {
			return nil, nil, errors.Wrap(err, "create mongo indexes")
		}
		closer := func() {
			client.Disconnect(context.Background())
		}
		return repository.NewMongoDocumentRepository(db), closer, nil
	}
}

func openListCache(conf config.Config) usecase.CharacterListCache {
	if conf.Server.MemcachedAddr != "" {
		mc, err := database.ConnectMemcached(conf.Server.MemcachedAddr)
		if err == nil {
			return cache.NewMemcachedListCache(mc, conf.Server.ListCacheTTL)
		}
		slog.Warn(
			"memcached unavailable, using in-process list cache",
			slog.String("addr", conf.Server.MemcachedAddr),
			slog.String("error", err.Error()),
			slog.String("module", "main"),
		)
	}
	return cache.NewLocalListCache(conf.Server.ListCacheTTL)
}

func openSignal(ctx context.Context, conf config.Config) *service.SignalService {
	if conf.Server.RedisAddr == "" {
		return service.NewSignalService(nil)
	}

	rdb, err := database.ConnectRedis(ctx, conf.Server.RedisAddr, conf.Server.RedisDB, database.RetryPolicy{Attempts: 1})
	if err != nil {
		slog.Warn(
			"redis unavailable, realtime events disabled",
			slog.String("addr", conf.Server.RedisAddr),
			slog.String("error", err.Error()),
			slog.String("module", "main"),
		)
		return service.NewSignalService(nil)
	}
	return service.NewSignalService(rdb)
}

func serve(ctx context.Context, conf config.Config) error {
	shutdownTrace, err := trace.Setup(ctx, "portalgun", conf.Server.TraceEndpoint, conf.Server.EnableTrace)
	if err != nil {
		return errors.Wrap(err, "setup tracing")
	}
	defer shutdownTrace(context.Background())

	store, closeStore, err := openStore(ctx, conf)
	if err != nil {
		return err
	}
	defer closeStore()

	listCache := openListCache(conf)
	signalService := openSignal(ctx, conf)

	characterUsecase := usecase.NewCharacterUsecase(store, listCache, signalService)
	stoneUsecase := usecase.NewStoneUsecase(store)
	stealUsecase := usecase.NewStealUsecase(store, listCache, signalService)
	insultUsecase := usecase.NewInsultUsecase()
	healthUsecase := usecase.NewHealthUsecase(store)

	handler := rest.NewHandler(
		characterUsecase,
		stoneUsecase,
		stealUsecase,
		insultUsecase,
		healthUsecase,
		signalService,
	)

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     conf.Server.AllowedOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowCredentials: true,
	}))
	e.Use(otelecho.Middleware("portalgun"))
	e.Use(restmiddleware.AccessLog)

	handler.RegisterRoutes(e)

	errCh := make(chan error, 1)
	go func() {
		slog.Info("listening", slog.String("addr", conf.Server.Addr), slog.String("module", "main"))
		if err := e.Start(conf.Server.Addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}

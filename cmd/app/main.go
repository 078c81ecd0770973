package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"eatify/api"
	"eatify/cmd"
	httpadapter "eatify/internal/adapters/in/http"
	"eatify/internal/pkg/metrics"
	"eatify/internal/pkg/tracing"

	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	echoSwagger "github.com/swaggo/echo-swagger"
	"golang.org/x/sync/errgroup"
)

func main() {
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	configs, err := cmd.LoadConfig(".env")
	if err != nil {
		log.Fatalf("Error loading configuration: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err = run(ctx, configs); err != nil {
		log.Fatalf("Service stopped with error: %v", err)
	}
}

func run(ctx context.Context, configs cmd.Config) error {
	tracer, err := tracing.Init(configs.ServiceName, configs.JaegerEndpoint)
	if err != nil {
		return err
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), configs.ShutdownTimeout)
		defer cancel()
		_ = tracer.Shutdown(shutdownCtx)
	}()

	m := metrics.New()

	app, err := cmd.NewCompositionRoot(ctx, configs, m, slog.Default())
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := app.Close(); closeErr != nil {
			slog.Error("Failed to release resources", "error", closeErr)
		}
	}()

	e, err := newWebServer(ctx, app, configs, m)
	if err != nil {
		return err
	}

	jobManager := app.CreateJobManager()
	if err = jobManager.StartAll(); err != nil {
		return err
	}
	defer jobManager.StopAll()

	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(func() error {
		slog.Info("HTTP server listening", "port", configs.HTTPPort)
		if startErr := e.Start(fmt.Sprintf("0.0.0.0:%s", configs.HTTPPort)); !errors.Is(startErr, http.ErrServerClosed) {
			return startErr
		}
		return nil
	})

	group.Go(func() error {
		<-groupCtx.Done()
		slog.Info("Shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), configs.ShutdownTimeout)
		defer cancel()
		return e.Shutdown(shutdownCtx)
	})

	return group.Wait()
}

func newWebServer(ctx context.Context, app *cmd.CompositionRoot, configs cmd.Config, m *metrics.Metrics) (*echo.Echo, error) {
	doc, err := api.Load(ctx)
	if err != nil {
		return nil, err
	}

	e, err := httpadapter.NewRouter(httpadapter.NewServer(app.CreateHTTPHandlers()), httpadapter.RouterConfig{
		Spec:           doc,
		AllowedOrigins: configs.AllowedOrigins,
		Middleware:     []echo.MiddlewareFunc{m.Middleware()},
	})
	if err != nil {
		return nil, err
	}

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})
	e.GET("/metrics", echo.WrapHandler(m.Handler()))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e, nil
}

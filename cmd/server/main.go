// cmd/server/main.go
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sourcegraph/conc"
	"go.uber.org/zap"

	_ "receipt-service/docs"
	"receipt-service/internal/config"
	"receipt-service/internal/handler"
	"receipt-service/internal/render"
	"receipt-service/internal/routes"
	"receipt-service/internal/service"
	"receipt-service/internal/utils"
)

// Application represents the main application
type Application struct {
	config *config.Config
	logger *zap.Logger
	server *http.Server

	renderer       *render.Renderer
	printerService *service.PrinterService

	eventBus  *handler.EventBus
	websocket *handler.WebSocketHandler
}

// @title Receipt Service API
// @version 1.0.0
// @description Renders 80mm thermal receipts with Arabic and Latin text and prints them over ESC/POS

// @contact.name Receipt Service API Support

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8085
// @BasePath /api/v1
func main() {
	app, err := NewApplication()
	if err != nil {
		fmt.Printf("Failed to initialize application: %v\n", err)
		os.Exit(1)
	}

	if err := app.Start(); err != nil {
		app.logger.Fatal("Failed to start application", zap.Error(err))
	}
}

// NewApplication creates a new application instance
func NewApplication() (*Application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := utils.NewLogger(&cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	serviceLogger := utils.NewServiceLogger(logger, "receipt-service")
	serviceLogger.LogServiceStart(cfg.App.Version, cfg)

	app := &Application{
		config: cfg,
		logger: logger,
	}

	if err := app.initializeRenderer(); err != nil {
		return nil, fmt.Errorf("failed to initialize renderer: %w", err)
	}

	app.initializeEvents()
	app.initializeServices()
	app.initializeServer()

	return app, nil
}

// initializeRenderer loads fonts and builds the receipt renderer
func (app *Application) initializeRenderer() error {
	renderer, err := render.New(render.Options{
		Width:    app.config.Printer.Width,
		Fonts:    app.config.Printer.Fonts,
		Numerals: app.config.Printer.Numerals,
	})
	if err != nil {
		return err
	}
	app.renderer = renderer

	app.logger.Info("Renderer initialized successfully",
		zap.Int("width", renderer.Width()),
		zap.String("numerals", string(app.config.Printer.Numerals)),
	)
	return nil
}

// initializeEvents sets up the job event bus and WebSocket hub
func (app *Application) initializeEvents() {
	app.eventBus = handler.NewEventBus(app.logger)
	app.websocket = handler.NewWebSocketHandler(app.eventBus, app.config.Security.AllowedOrigins, app.logger)
}

// initializeServices creates service instances
func (app *Application) initializeServices() {
	app.printerService = service.NewPrinterService(
		app.renderer,
		service.ConfiguredDevice(app.config.Connection, app.logger),
		app.config,
		app.eventBus,
		app.logger,
	)

	app.logger.Info("Services initialized successfully",
		zap.String("connection", string(app.config.Connection.Type)),
	)
}

// initializeServer sets up HTTP server and routes
func (app *Application) initializeServer() {
	routerManager := routes.NewRouter(
		app.config,
		app.logger,
		app.printerService,
		app.websocket,
	)

	app.server = &http.Server{
		Addr:         app.config.GetServerAddr(),
		Handler:      routerManager.SetupRouter(),
		ReadTimeout:  app.config.Server.ReadTimeout,
		WriteTimeout: app.config.Server.WriteTimeout,
		IdleTimeout:  app.config.Server.IdleTimeout,
	}

	app.logger.Info("HTTP server initialized",
		zap.String("address", app.config.GetServerAddr()),
	)
}

// Start runs the HTTP server and the event goroutines until a shutdown
// signal arrives or the server fails.
func (app *Application) Start() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	serverErr := make(chan error, 1)

	var wg conc.WaitGroup
	wg.Go(func() { app.eventBus.Start(ctx) })
	wg.Go(func() { app.websocket.Run(ctx) })
	wg.Go(func() {
		app.logger.Info("Starting HTTP server",
			zap.String("address", app.server.Addr),
		)
		if err := app.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
			stop()
		}
	})

	<-ctx.Done()
	app.shutdown()
	wg.Wait()

	select {
	case err := <-serverErr:
		return err
	default:
		return nil
	}
}

// shutdown performs graceful shutdown
func (app *Application) shutdown() {
	serviceLogger := utils.NewServiceLogger(app.logger, "receipt-service")
	serviceLogger.LogServiceStop("shutdown signal received")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("HTTP server shutdown error", zap.Error(err))
	} else {
		app.logger.Info("HTTP server stopped")
	}

	app.logger.Info("Application shutdown completed")

	if err := utils.CloseLogger(app.logger); err != nil {
		fmt.Printf("Logger close error: %v\n", err)
	}
}

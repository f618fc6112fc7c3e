package main

import (
	"context"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	httpapi "github.com/bassaaaa/home-clock/internal/api/http"
	"github.com/bassaaaa/home-clock/internal/config"
	"github.com/bassaaaa/home-clock/internal/display"
	"github.com/bassaaaa/home-clock/internal/icon"
	"github.com/bassaaaa/home-clock/internal/render"
	"github.com/bassaaaa/home-clock/internal/scheduler"
	"github.com/bassaaaa/home-clock/internal/store"
	"github.com/bassaaaa/home-clock/internal/weather"
	"github.com/bassaaaa/home-clock/internal/weather/providers"
)

func main() {
	// Load configuration (also reads .env when present).
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// Shared HTTP client for outbound provider calls.
	httpClient := &http.Client{
		Timeout: cfg.HTTPTimeout,
	}

	// Single-slot handoff between the fetcher and the renderer.
	cell := store.NewCell()

	// WeatherAPI provider with resilience (backoff + circuit breaker).
	provider := providers.NewWeatherAPIProvider(httpClient, cfg.WeatherAPIKey)
	service := weather.NewService(cell, provider, cfg.Location)

	// Scheduler that periodically fetches and publishes data.
	sched := scheduler.New(cfg.FetchInterval, service)
	if err := sched.Start(); err != nil {
		log.Fatalf("failed to start scheduler: %v", err)
	}
	defer sched.Stop()

	// Icon artwork: PNG/BMP files when configured, built-in bitmaps otherwise.
	var icons icon.Painter = icon.DefaultBitmaps()
	if cfg.IconDir != "" {
		set, err := icon.LoadImageSet(os.DirFS(cfg.IconDir), ".")
		if err != nil {
			log.Fatalf("failed to load icons: %v", err)
		}
		icons = set
		log.Printf("INFO: icons loaded from %s", cfg.IconDir)
	}

	scene := render.NewScene(icons)
	scene.ShowStatus = cfg.ShowStatus

	// Outputs: the in-memory preview always, the rest when configured. Slow
	// outputs get their own writer so they never hold up a frame.
	preview := display.NewPreview()
	sinks := display.Multi{preview}
	var closers []io.Closer
	if cfg.PNGPath != "" {
		file := display.NewAsync(display.FileSink{Path: cfg.PNGPath})
		sinks = append(sinks, file)
		closers = append(closers, file)
		log.Printf("INFO: writing frames to %s", cfg.PNGPath)
	}
	if cfg.SerialDevice != "" {
		port, err := display.OpenSerial(cfg.SerialDevice, cfg.SerialBaud)
		if err != nil {
			log.Fatalf("failed to open display: %v", err)
		}
		panel := display.NewAsync(port)
		sinks = append(sinks, panel)
		closers = append(closers, panel)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	loop := render.NewLoop(scene, cell, sinks, cfg.FrameRate)
	renderDone := make(chan struct{})
	go func() {
		defer close(renderDone)
		if err := loop.Run(ctx); err != nil {
			log.Printf("render loop stopped: %v", err)
		}
	}()

	// Basic app configuration
	app := fiber.New(fiber.Config{
		AppName:               "home-clock",
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          10 * time.Second,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			// Centralized error response
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error":   true,
				"message": err.Error(),
			})
		},
	})

	// Global middleware
	app.Use(logger.New())
	app.Use(recover.New())

	httpapi.RegisterRoutes(app, cell, preview)

	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Printf("fiber server stopped: %v", err)
		}
	}()
	log.Printf("INFO: home-clock for %s listening on :%s", service.Location().Key(), cfg.Port)

	// Wait for termination signal
	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Printf("error during shutdown: %v", err)
	}
	<-renderDone
	for _, c := range closers {
		if err := c.Close(); err != nil {
			log.Printf("error closing display: %v", err)
		}
	}
}

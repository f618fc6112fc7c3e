// Command weather-dump fetches the configured location once and prints the
// normalized snapshot as JSON. Useful for checking an API key or location.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"net/http"
	"os"

	"github.com/bassaaaa/home-clock/internal/config"
	"github.com/bassaaaa/home-clock/internal/icon"
	"github.com/bassaaaa/home-clock/internal/store"
	"github.com/bassaaaa/home-clock/internal/weather"
	"github.com/bassaaaa/home-clock/internal/weather/providers"
)

func main() {
	raw := flag.Bool("raw", false, "print the provider payload instead of the snapshot")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	httpClient := &http.Client{Timeout: cfg.HTTPTimeout}
	provider := providers.NewWeatherAPIProvider(httpClient, cfg.WeatherAPIKey)

	ctx, cancel := context.WithTimeout(context.Background(), 2*cfg.HTTPTimeout)
	defer cancel()

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")

	if *raw {
		payload, err := provider.Fetch(ctx, cfg.Location)
		if err != nil {
			log.Fatalf("fetch failed: %v", err)
		}
		if err := enc.Encode(payload); err != nil {
			log.Fatalf("encode: %v", err)
		}
		return
	}

	cell := store.NewCell()
	service := weather.NewService(cell, provider, cfg.Location)
	if err := service.FetchAndPublish(ctx); err != nil {
		log.Fatalf("fetch failed: %v", err)
	}
	snapshot, err := cell.GetLatest()
	if err != nil {
		log.Fatalf("no snapshot: %v", err)
	}

	for _, p := range snapshot.Forecast {
		log.Printf("INFO: %02d:00 %s rain %d%%", p.Hour, icon.Classify(p.ConditionCode, p.IsDay), p.ChanceOfRain)
	}
	if err := enc.Encode(snapshot); err != nil {
		log.Fatalf("encode: %v", err)
	}
}

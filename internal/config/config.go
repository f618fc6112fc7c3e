package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"

	"github.com/bassaaaa/home-clock/internal/weather"
)

var validate = validator.New()

type AppConfig struct {
	WeatherAPIKey string `validate:"required"`

	// Location is the WeatherAPI query (city name, "lat,lon", postcode...).
	Location weather.Location

	// FetchInterval controls how often the forecast is refreshed.
	FetchInterval time.Duration `validate:"gte=1m"`
	HTTPTimeout   time.Duration `validate:"gt=0"`

	FrameRate int `validate:"min=1,max=60"`

	Port string `validate:"required,numeric"`

	// Optional outputs. Empty disables them.
	SerialDevice string
	SerialBaud   int `validate:"min=1200"`
	PNGPath      string

	// IconDir holds sun.png, moon.png, ... overriding the built-in bitmaps.
	IconDir    string
	ShowStatus bool
}

// Load reads configuration from environment with sensible defaults.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}
	cfg := &AppConfig{}

	cfg.WeatherAPIKey = os.Getenv("WEATHERAPI_KEY")

	query := os.Getenv("WEATHER_LOCATION")
	if query == "" {
		return nil, fmt.Errorf("WEATHER_LOCATION is required")
	}
	cfg.Location = weather.Location{Query: query}

	// Fetch interval: default 10 minutes.
	interval, err := time.ParseDuration(getenvDefault("FETCH_INTERVAL", "10m"))
	if err != nil {
		return nil, fmt.Errorf("invalid FETCH_INTERVAL: %w", err)
	}
	cfg.FetchInterval = interval

	timeout, err := time.ParseDuration(getenvDefault("HTTP_TIMEOUT", "10s"))
	if err != nil {
		return nil, fmt.Errorf("invalid HTTP_TIMEOUT: %w", err)
	}
	cfg.HTTPTimeout = timeout

	cfg.FrameRate = getenvInt("FRAME_RATE", 30)
	cfg.Port = getenvDefault("PORT", "8080")

	cfg.SerialDevice = os.Getenv("DISPLAY_SERIAL_DEVICE")
	cfg.SerialBaud = getenvInt("DISPLAY_SERIAL_BAUD", 115200)
	cfg.PNGPath = os.Getenv("DISPLAY_PNG_PATH")

	cfg.IconDir = os.Getenv("ICON_DIR")
	cfg.ShowStatus = getenvBool("SHOW_STATUS", false)

	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		n, err := strconv.Atoi(v)
		if err == nil {
			return n
		}
	}
	return def
}

func getenvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

package httpapi

import (
	"errors"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/mem"

	"github.com/bassaaaa/home-clock/internal/display"
	"github.com/bassaaaa/home-clock/internal/icon"
	"github.com/bassaaaa/home-clock/internal/store"
	"github.com/bassaaaa/home-clock/internal/weather"
)

var validate = validator.New()

// SnapshotReader is the read side of the snapshot cell.
type SnapshotReader interface {
	GetLatest() (weather.Snapshot, error)
	Status() store.Status
}

// FrameSource encodes the last rendered frame.
type FrameSource interface {
	PNG(scale int) ([]byte, error)
}

// RegisterRoutes wires the HTTP handlers into the Fiber app. frames may be
// nil when no preview is kept.
func RegisterRoutes(app *fiber.App, snapshots SnapshotReader, frames FrameSource) {
	started := time.Now()

	app.Get("/health", func(c *fiber.Ctx) error {
		resp := fiber.Map{
			"status":  "ok",
			"service": "home-clock",
			"uptime":  time.Since(started).Truncate(time.Second).String(),
		}
		if up, err := host.Uptime(); err == nil {
			resp["hostUptimeSeconds"] = up
		}
		if vm, err := mem.VirtualMemory(); err == nil {
			resp["memoryUsedPercent"] = vm.UsedPercent
		}
		return c.JSON(resp)
	})

	v1 := app.Group("/api/v1")

	v1.Get("/weather/current", func(c *fiber.Ctx) error {
		snapshot, err := snapshots.GetLatest()
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "no weather data yet")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "failed to read weather data")
		}

		return c.JSON(currentResponse{
			Snapshot:   snapshot,
			Categories: categoriesOf(snapshot.Forecast),
		})
	})

	v1.Get("/weather/status", func(c *fiber.Ctx) error {
		return c.JSON(snapshots.Status())
	})

	v1.Get("/frame.png", func(c *fiber.Ctx) error {
		if frames == nil {
			return fiber.NewError(fiber.StatusNotFound, "frame preview disabled")
		}

		var req frameQuery
		if err := req.bind(c); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		if err := validate.Struct(req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		data, err := frames.PNG(req.Scale)
		if err != nil {
			if errors.Is(err, display.ErrNoFrame) {
				return fiber.NewError(fiber.StatusServiceUnavailable, "no frame rendered yet")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "failed to encode frame")
		}

		c.Set(fiber.HeaderContentType, "image/png")
		c.Set(fiber.HeaderCacheControl, "no-store")
		return c.Send(data)
	})
}

// currentResponse adds the icon category of every forecast point so clients
// can pick matching artwork.
type currentResponse struct {
	weather.Snapshot
	Categories []icon.Category `json:"categories"`
}

func categoriesOf(points []weather.ForecastPoint) []icon.Category {
	out := make([]icon.Category, len(points))
	for i, p := range points {
		out[i] = icon.Classify(p.ConditionCode, p.IsDay)
	}
	return out
}

// frameQuery holds query parameters for the frame preview.
type frameQuery struct {
	Scale int `validate:"min=1,max=4"`
}

func (f *frameQuery) bind(c *fiber.Ctx) error {
	f.Scale = 1
	raw := c.Query("scale")
	if raw == "" {
		return nil
	}
	scale, err := strconv.Atoi(raw)
	if err != nil {
		return errors.New("scale must be an integer")
	}
	f.Scale = scale
	return nil
}

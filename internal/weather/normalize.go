package weather

import (
	"sort"
	"time"
)

// MaxForecastPoints is the number of hourly entries the display shows.
const MaxForecastPoints = 4

const hourLayout = "2006-01-02 15:04"

// Normalize reduces a raw forecast payload to the slice the display needs:
// current conditions plus the first MaxForecastPoints hourly entries at or
// after referenceEpoch, across all returned days. It performs no I/O.
func Normalize(raw RawResponse, referenceEpoch int64) Snapshot {
	tz := locationTZ(raw.Location.TzID)

	var points []ForecastPoint
	for _, day := range raw.Forecast.ForecastDay {
		for _, h := range day.Hour {
			if h.TimeEpoch < referenceEpoch {
				continue
			}
			points = append(points, toPoint(h, tz))
		}
	}

	sort.SliceStable(points, func(i, j int) bool {
		return points[i].Epoch < points[j].Epoch
	})
	if len(points) > MaxForecastPoints {
		points = points[:MaxForecastPoints]
	}

	return Snapshot{
		Location:  raw.Location.Name,
		Reference: time.Unix(referenceEpoch, 0).In(tz),
		Current: Current{
			TemperatureC:  raw.Current.TempC,
			IsDay:         raw.Current.IsDay != 0,
			ConditionCode: raw.Current.Condition.Code,
			ConditionText: raw.Current.Condition.Text,
		},
		Forecast: points,
	}
}

func toPoint(h RawHour, tz *time.Location) ForecastPoint {
	ts := time.Unix(h.TimeEpoch, 0).In(tz)
	hour := ts.Hour()
	// The provider's local "time" string is authoritative for the label.
	if local, err := time.ParseInLocation(hourLayout, h.Time, tz); err == nil {
		hour = local.Hour()
	}

	rain := h.ChanceOfRain
	if rain < 0 {
		rain = 0
	}
	if rain > 100 {
		rain = 100
	}

	return ForecastPoint{
		Time:          ts,
		Epoch:         h.TimeEpoch,
		Hour:          hour,
		TemperatureC:  h.TempC,
		ConditionCode: h.Condition.Code,
		IsDay:         h.IsDay != 0,
		ChanceOfRain:  rain,
	}
}

func locationTZ(id string) *time.Location {
	if id == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(id)
	if err != nil {
		return time.UTC
	}
	return loc
}

package weather

import (
	"time"
)

// Location identifies the place to fetch weather for. Query is passed to the
// provider verbatim ("Tokyo", "35.68,139.69", a postcode, ...).
type Location struct {
	Query string `json:"query"`
}

// Key returns a canonical string key for logs.
func (l Location) Key() string {
	return l.Query
}

// RawResponse mirrors the WeatherAPI.com forecast.json payload. Only the
// fields the display needs are decoded.
type RawResponse struct {
	Location RawLocation `json:"location"`
	Current  RawCurrent  `json:"current"`
	Forecast struct {
		ForecastDay []RawForecastDay `json:"forecastday"`
	} `json:"forecast"`
}

type RawLocation struct {
	Name           string  `json:"name"`
	Region         string  `json:"region"`
	Country        string  `json:"country"`
	Lat            float64 `json:"lat"`
	Lon            float64 `json:"lon"`
	TzID           string  `json:"tz_id"`
	LocaltimeEpoch int64   `json:"localtime_epoch"`
	Localtime      string  `json:"localtime"`
}

type RawCondition struct {
	Text string `json:"text"`
	Code uint16 `json:"code"`
}

type RawCurrent struct {
	TempC     float64      `json:"temp_c"`
	IsDay     int          `json:"is_day"`
	Condition RawCondition `json:"condition"`
}

type RawForecastDay struct {
	Date      string    `json:"date"`
	DateEpoch int64     `json:"date_epoch"`
	Hour      []RawHour `json:"hour"`
}

type RawHour struct {
	Time         string       `json:"time"`
	TimeEpoch    int64        `json:"time_epoch"`
	TempC        float64      `json:"temp_c"`
	IsDay        int          `json:"is_day"`
	ChanceOfRain int          `json:"chance_of_rain"`
	Condition    RawCondition `json:"condition"`
}

// Current is the present-conditions part of a snapshot.
type Current struct {
	TemperatureC  float64 `json:"temperatureC"`
	IsDay         bool    `json:"isDay"`
	ConditionCode uint16  `json:"conditionCode"`
	ConditionText string  `json:"conditionText,omitempty"`
}

// ForecastPoint is one hourly forecast entry.
type ForecastPoint struct {
	Time          time.Time `json:"time"`
	Epoch         int64     `json:"epoch"`
	Hour          int       `json:"hour"`
	TemperatureC  float64   `json:"temperatureC"`
	ConditionCode uint16    `json:"conditionCode"`
	IsDay         bool      `json:"isDay"`
	ChanceOfRain  int       `json:"chanceOfRain"`
}

// Snapshot is the normalized view the renderer consumes. Forecast holds at
// most MaxForecastPoints entries in ascending time, none earlier than
// Reference.
type Snapshot struct {
	ID        string          `json:"id,omitempty"`
	Location  string          `json:"location"`
	Reference time.Time       `json:"reference"`
	FetchedAt time.Time       `json:"fetchedAt,omitempty"`
	Current   Current         `json:"current"`
	Forecast  []ForecastPoint `json:"forecast"`
}

// Package icon maps WeatherAPI condition codes to icon categories and draws
// the 16x16 icons either from bit-row bitmaps or decoded images.
package icon

// Category is the closed set of weather icons.
type Category int

const (
	Sun Category = iota
	Moon
	Cloud
	Rain
	HeavyRain
	Snow
	Thunder
)

// Categories lists every category in declaration order.
var Categories = []Category{Sun, Moon, Cloud, Rain, HeavyRain, Snow, Thunder}

var categoryNames = map[Category]string{
	Sun:       "sun",
	Moon:      "moon",
	Cloud:     "cloud",
	Rain:      "rain",
	HeavyRain: "heavy_rain",
	Snow:      "snow",
	Thunder:   "thunder",
}

// String returns the asset base name, e.g. "heavy_rain".
func (c Category) String() string {
	if n, ok := categoryNames[c]; ok {
		return n
	}
	return "unknown"
}

// MarshalText lets categories appear by name in JSON.
func (c Category) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// Classify maps a WeatherAPI.com condition code to a category. It is total:
// unrecognized codes fall back to Cloud. Code 1171 (heavy freezing drizzle)
// is HeavyRain.
func Classify(code uint16, isDay bool) Category {
	switch code {
	case 1000:
		if isDay {
			return Sun
		}
		return Moon
	case 1003, 1006, 1009, 1030, 1135, 1147:
		return Cloud
	case 1063, 1072, 1150, 1153, 1168, 1180, 1183, 1186, 1189, 1198, 1240:
		return Rain
	case 1171, 1192, 1195, 1201, 1243, 1246:
		return HeavyRain
	case 1066, 1069, 1114, 1117, 1204, 1207, 1210, 1213, 1216, 1219, 1222, 1225,
		1237, 1249, 1252, 1255, 1258, 1261, 1264:
		return Snow
	case 1087, 1273, 1276, 1279, 1282:
		return Thunder
	default:
		return Cloud
	}
}

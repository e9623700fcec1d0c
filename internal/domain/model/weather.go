package model

import (
	"strings"

	"github.com/paulmach/orb"
)

// Weather は1日分の天気情報
type Weather struct {
	Temperature     float64 `json:"temperature"`
	TemperatureUnit string  `json:"temperature_unit"` // "celsius"
	Condition       string  `json:"condition"`        // "rain", "clear", "partly cloudy" など
	Description     string  `json:"description,omitempty"`
}

// WeatherObservation は日付・都市つきの天気観測値
type WeatherObservation struct {
	Date string `json:"date"` // YYYY-MM-DD
	City string `json:"city"`
	Weather
}

// City はジオコーディング結果の都市情報
// 座標はGeoJSON同様 [経度, 緯度] の順（orb.Point）
type City struct {
	Name     string    `json:"name"`
	Country  string    `json:"country,omitempty"`
	Location orb.Point `json:"location"`
}

// Lat は都市の緯度を返す
func (c *City) Lat() float64 {
	return c.Location.Lat()
}

// Lng は都市の経度を返す
func (c *City) Lng() float64 {
	return c.Location.Lon()
}

// IsOutdoorFriendly は天候が屋外アクティビティに適しているかを判定する
// 悪天候の固定セット以外はすべてtrue（純粋関数・I/Oなし）
func IsOutdoorFriendly(condition string) bool {
	switch strings.ToLower(condition) {
	case "thunderstorm", "rain", "drizzle", "snow":
		return false
	}
	return true
}

package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/paulmach/orb"

	"TabiPlan-App/internal/domain/model"
	"TabiPlan-App/internal/domain/repository"
)

// OpenWeatherProvider はOpenWeatherMap APIを使用した天気予報取得の実装
// APIキー未設定・上流失敗・該当日なしは全てフォールバック観測値に吸収する
type OpenWeatherProvider struct {
	apiKey     string
	baseURL    string
	geoURL     string
	httpClient *http.Client
}

// NewOpenWeatherProvider は新しいプロバイダを生成する
// apiKeyが空の場合は常にフォールバック観測値を返す
func NewOpenWeatherProvider(apiKey string) repository.WeatherProvider {
	return &OpenWeatherProvider{
		apiKey:     apiKey,
		baseURL:    "https://api.openweathermap.org/data/2.5",
		geoURL:     "https://api.openweathermap.org/geo/1.0",
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// Forecast は指定日・都市の天気観測値を1件取得する
// 日付形式不正のみエラーとし、上流の失敗は呼び出し元へ伝えない
func (p *OpenWeatherProvider) Forecast(ctx context.Context, date, city string) (*model.WeatherObservation, error) {
	targetDate, err := time.Parse(model.DateLayout, date)
	if err != nil {
		return nil, &model.InvalidInputError{Field: "date", Message: "日付形式が不正です: " + date}
	}

	if p.apiKey == "" {
		return fallbackObservation(date, city), nil
	}

	observation, err := p.fetchForecast(ctx, targetDate, date, city)
	if err != nil {
		log.Printf("⚠️ 天気取得に失敗、フォールバックを使用 (city: %s, date: %s): %v", city, date, err)
		return fallbackObservation(date, city), nil
	}

	return observation, nil
}

// ForecastRange は開始日から終了日まで（両端含む）の観測値を日付順に取得する
func (p *OpenWeatherProvider) ForecastRange(ctx context.Context, startDate, endDate, city string) ([]model.WeatherObservation, error) {
	start, err := time.Parse(model.DateLayout, startDate)
	if err != nil {
		return nil, &model.InvalidInputError{Field: "start_date", Message: "日付形式が不正です: " + startDate}
	}
	end, err := time.Parse(model.DateLayout, endDate)
	if err != nil {
		return nil, &model.InvalidInputError{Field: "end_date", Message: "日付形式が不正です: " + endDate}
	}

	observations := []model.WeatherObservation{}
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		observation, err := p.Forecast(ctx, d.Format(model.DateLayout), city)
		if err != nil {
			return nil, err
		}
		observations = append(observations, *observation)
	}

	return observations, nil
}

// Geocode は都市名から座標を解決する
// 付加情報のため、失敗は(nil, nil)として呼び出し元が無視できるようにする
func (p *OpenWeatherProvider) Geocode(ctx context.Context, city string) (*model.City, error) {
	if p.apiKey == "" {
		return nil, nil
	}

	params := url.Values{}
	params.Set("q", city)
	params.Set("limit", "1")
	params.Set("appid", p.apiKey)
	reqURL := fmt.Sprintf("%s/direct?%s", p.geoURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, "GET", reqURL, nil)
	if err != nil {
		return nil, nil
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		log.Printf("⚠️ ジオコーディングに失敗 (city: %s): %v", city, err)
		return nil, nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, nil
	}

	var results []geocodeResult
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil || len(results) == 0 {
		return nil, nil
	}

	return &model.City{
		Name:     results[0].Name,
		Country:  results[0].Country,
		Location: orb.Point{results[0].Lon, results[0].Lat},
	}, nil
}

// fetchForecast はOpenWeatherMapの予報APIから該当日のデータを探す
func (p *OpenWeatherProvider) fetchForecast(ctx context.Context, targetDate time.Time, date, city string) (*model.WeatherObservation, error) {
	params := url.Values{}
	params.Set("q", city)
	params.Set("appid", p.apiKey)
	params.Set("units", "metric")
	reqURL := fmt.Sprintf("%s/forecast?%s", p.baseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, "GET", reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("リクエストの作成に失敗: %w", err)
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("APIリクエストに失敗: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("APIからエラーステータスが返されました: %s", resp.Status)
	}

	var apiResp forecastResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return nil, fmt.Errorf("JSONのパースに失敗: %w", err)
	}

	for _, entry := range apiResp.List {
		entryDate := time.Unix(entry.Dt, 0).UTC()
		if entryDate.Year() == targetDate.Year() && entryDate.YearDay() == targetDate.YearDay() {
			if len(entry.Weather) == 0 {
				continue
			}
			return &model.WeatherObservation{
				Date: date,
				City: city,
				Weather: model.Weather{
					Temperature:     entry.Main.Temp,
					TemperatureUnit: "celsius",
					Condition:       strings.ToLower(entry.Weather[0].Main),
					Description:     entry.Weather[0].Description,
				},
			}, nil
		}
	}

	return nil, fmt.Errorf("予報データに該当日がありません: %s", date)
}

// fallbackObservation は上流が使えない場合の決定的なフォールバック観測値
func fallbackObservation(date, city string) *model.WeatherObservation {
	return &model.WeatherObservation{
		Date: date,
		City: city,
		Weather: model.Weather{
			Temperature:     25,
			TemperatureUnit: "celsius",
			Condition:       "partly cloudy",
			Description:     fmt.Sprintf("%s における %s の天気予報", city, date),
		},
	}
}

// --- OpenWeatherMap APIのレスポンスをパースするための構造体 ---

type forecastResponse struct {
	List []forecastEntry `json:"list"`
}

type forecastEntry struct {
	Dt   int64 `json:"dt"`
	Main struct {
		Temp float64 `json:"temp"`
	} `json:"main"`
	Weather []struct {
		Main        string `json:"main"`
		Description string `json:"description"`
	} `json:"weather"`
}

type geocodeResult struct {
	Name    string  `json:"name"`
	Country string  `json:"country"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
}

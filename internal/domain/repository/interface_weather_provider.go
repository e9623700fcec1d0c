package repository

import (
	"TabiPlan-App/internal/domain/model"
	"context"
)

// WeatherProvider は天気予報取得の責務を持つプロバイダインターフェース
// 上流の失敗はフォールバック観測値に吸収し、ビジネスロジックへエラーを返さない
// （日付形式不正のみmodel.InvalidInputErrorを返す）
type WeatherProvider interface {
	// Forecast は指定日・都市の天気観測値を1件取得する
	Forecast(ctx context.Context, date, city string) (*model.WeatherObservation, error)

	// ForecastRange は開始日から終了日まで（両端含む）の観測値を日付順に取得する
	ForecastRange(ctx context.Context, startDate, endDate, city string) ([]model.WeatherObservation, error)

	// Geocode は都市名から座標を解決する（失敗時はnil, nil）
	Geocode(ctx context.Context, city string) (*model.City, error)
}

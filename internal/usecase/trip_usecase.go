package usecase

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"TabiPlan-App/internal/domain/model"
	"TabiPlan-App/internal/domain/repository"
	"TabiPlan-App/internal/domain/service"
)

// TripUseCase は旅行プランの生成・修正・参照を行うユースケース
type TripUseCase interface {
	// GenerateItinerary はリクエストを検証し、天気・アクティビティを集めてプランを生成・保存する
	GenerateItinerary(ctx context.Context, req *model.VacationRequest) (*GenerateItineraryResult, error)

	// ModifyItinerary は既存プランに自由文の修正を適用して保存し直す
	ModifyItinerary(ctx context.Context, tripID, modificationRequest string) (*model.ModifyItineraryResponse, error)

	// GetTripHistory は旅行履歴のサマリー一覧を取得する
	GetTripHistory(ctx context.Context) ([]model.TripSummary, error)

	// GetTripDetail は旅行記録の詳細とギャラリーを取得する
	GetTripDetail(ctx context.Context, tripID string) (*model.TripDetailResponse, error)
}

// GenerateItineraryResult は生成結果（成功またはバリデーション警告つき）
// Warningが非nilの場合、プランは返却するが保存はしない
type GenerateItineraryResult struct {
	Response *model.GenerateItineraryResponse
	Warning  *model.GenerateItineraryWarning
}

// tripUseCaseImpl はTripUseCaseの実装
type tripUseCaseImpl struct {
	weatherProvider repository.WeatherProvider
	activityCatalog service.ActivityCatalog
	planRepo        repository.PlanGenerationRepository
	tripRepo        repository.TripRepository
	imageProvider   repository.ImageProvider
}

// NewTripUseCase は新しいTripUseCaseインスタンスを作成
func NewTripUseCase(
	weatherProvider repository.WeatherProvider,
	activityCatalog service.ActivityCatalog,
	planRepo repository.PlanGenerationRepository,
	tripRepo repository.TripRepository,
	imageProvider repository.ImageProvider,
) TripUseCase {
	return &tripUseCaseImpl{
		weatherProvider: weatherProvider,
		activityCatalog: activityCatalog,
		planRepo:        planRepo,
		tripRepo:        tripRepo,
		imageProvider:   imageProvider,
	}
}

// GenerateItinerary はリクエストに基づいて旅行プランを生成し、保存してレスポンスを返す
func (u *tripUseCaseImpl) GenerateItinerary(ctx context.Context, req *model.VacationRequest) (*GenerateItineraryResult, error) {
	log.Printf("🚀 旅行プラン生成開始 (目的地: %s, %s〜%s)", req.Destination, req.DateOfArrival, req.DateOfDeparture)

	// Step 1: リクエストの検証（違反は全件まとめて返し、生成は行わない）
	if violations := service.ValidateVacationRequest(req); len(violations) > 0 {
		return nil, &model.ValidationFailureError{Violations: violations}
	}

	// Step 2: 日付範囲の天気予報を取得（失敗はプロバイダ内でフォールバック済み）
	weatherSeries, err := u.weatherProvider.ForecastRange(ctx, req.DateOfArrival, req.DateOfDeparture, req.Destination)
	if err != nil {
		return nil, fmt.Errorf("天気予報の取得に失敗: %w", err)
	}
	log.Printf("✅ %d日分の天気予報を取得", len(weatherSeries))

	// Step 3: 全旅行者の興味の和集合で日毎の候補アクティビティを並行取得
	activities, err := u.fetchActivitiesForRange(ctx, req)
	if err != nil {
		return nil, err
	}
	log.Printf("✅ %d件の候補アクティビティを取得", len(activities))

	// Step 4: プラン生成
	plan, err := u.planRepo.GeneratePlan(ctx, req, weatherSeries, activities)
	if err != nil {
		return nil, err
	}

	// Step 5: 生成プランの検証（違反があってもプランは破棄せず、警告つきで返す）
	if violations := service.ValidateTravelPlan(req, plan); len(violations) > 0 {
		log.Printf("⚠️ 生成プランに検証違反あり (%d件)", len(violations))
		return &GenerateItineraryResult{
			Warning: &model.GenerateItineraryWarning{
				Warning:          "プランは生成されましたが問題があります",
				ValidationErrors: violations,
				TravelPlan:       *plan,
			},
		}, nil
	}

	// Step 6: 旅行記録の保存
	tripID := uuid.New().String()
	record := &model.TripRecord{
		ID:            tripID,
		VacationInfo:  *req,
		TravelPlan:    *plan,
		CreatedAt:     time.Now(),
		Modifications: []model.ModificationEvent{},
	}
	if err := u.tripRepo.Save(ctx, record); err != nil {
		return nil, fmt.Errorf("旅行記録の保存に失敗: %w", err)
	}
	log.Printf("💾 旅行記録を保存 (ID: %s)", tripID)

	// Step 7: 目的地のギャラリーと座標で付加情報を足す（失敗は無視）
	gallery := u.imageProvider.GetDestinationGallery(ctx, req.Destination)
	geo, _ := u.weatherProvider.Geocode(ctx, req.Destination)

	log.Printf("🎉 旅行プラン生成完了 (ID: %s, 合計: %d)", tripID, plan.TotalCost)

	return &GenerateItineraryResult{
		Response: &model.GenerateItineraryResponse{
			TripID:            tripID,
			TravelPlan:        *plan,
			DestinationImages: gallery,
			DestinationGeo:    geo,
			WeatherForecast:   weatherSeries,
		},
	}, nil
}

// ModifyItinerary は既存プランに修正を適用して保存し直す
// 生成プランの再検証は行わない（生成時と非対称な仕様をそのまま踏襲）
func (u *tripUseCaseImpl) ModifyItinerary(ctx context.Context, tripID, modificationRequest string) (*model.ModifyItineraryResponse, error) {
	if modificationRequest == "" {
		return nil, &model.InvalidInputError{Field: "modification_request", Message: "修正内容は必須です"}
	}

	record, err := u.tripRepo.Get(ctx, tripID)
	if err != nil {
		return nil, err
	}

	log.Printf("🚀 プラン修正開始 (ID: %s)", tripID)

	modifiedPlan, err := u.planRepo.ModifyPlan(ctx, &record.TravelPlan, modificationRequest)
	if err != nil {
		// 修正に失敗した場合、保存済みの記録は変更しない
		return nil, err
	}

	record.TravelPlan = *modifiedPlan
	record.Modifications = append(record.Modifications, model.ModificationEvent{
		Timestamp: time.Now().Format(time.RFC3339),
		Request:   modificationRequest,
		Type:      model.ModificationTypeUser,
	})

	if err := u.tripRepo.Update(ctx, record); err != nil {
		return nil, fmt.Errorf("旅行記録の更新に失敗: %w", err)
	}

	log.Printf("🎉 プラン修正完了 (ID: %s, 修正回数: %d)", tripID, len(record.Modifications))

	return &model.ModifyItineraryResponse{
		TripID:              tripID,
		TravelPlan:          *modifiedPlan,
		ModificationApplied: modificationRequest,
	}, nil
}

// GetTripHistory は旅行履歴のサマリー一覧を取得する
func (u *tripUseCaseImpl) GetTripHistory(ctx context.Context) ([]model.TripSummary, error) {
	records, err := u.tripRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("旅行履歴の取得に失敗: %w", err)
	}

	summaries := make([]model.TripSummary, 0, len(records))
	for _, record := range records {
		summaries = append(summaries, record.ToSummary())
	}
	return summaries, nil
}

// GetTripDetail は旅行記録の詳細とギャラリーを取得する
func (u *tripUseCaseImpl) GetTripDetail(ctx context.Context, tripID string) (*model.TripDetailResponse, error) {
	record, err := u.tripRepo.Get(ctx, tripID)
	if err != nil {
		return nil, err
	}

	return &model.TripDetailResponse{
		Trip:              *record,
		DestinationImages: u.imageProvider.GetDestinationGallery(ctx, record.VacationInfo.Destination),
	}, nil
}

// fetchActivitiesForRange は日付範囲の候補アクティビティを日毎に並行取得する
// 完了順は問わず、日付キーで集約してから日付順に並べ直す
func (u *tripUseCaseImpl) fetchActivitiesForRange(ctx context.Context, req *model.VacationRequest) ([]model.Activity, error) {
	arrival, err := req.ArrivalDate()
	if err != nil {
		return nil, &model.InvalidInputError{Field: "date_of_arrival", Message: "日付形式が不正です"}
	}
	departure, err := req.DepartureDate()
	if err != nil {
		return nil, &model.InvalidInputError{Field: "date_of_departure", Message: "日付形式が不正です"}
	}

	dates := []string{}
	for d := arrival; !d.After(departure); d = d.AddDate(0, 0, 1) {
		dates = append(dates, d.Format(model.DateLayout))
	}

	allInterests := req.AllInterests()

	type activityResult struct {
		date       string
		activities []model.Activity
		err        error
	}

	resultChan := make(chan activityResult, len(dates))
	for _, date := range dates {
		go func(date string) {
			activities, err := u.activityCatalog.GetActivitiesByInterests(ctx, allInterests, date)
			resultChan <- activityResult{date: date, activities: activities, err: err}
		}(date)
	}

	byDate := make(map[string][]model.Activity, len(dates))
	for range dates {
		result := <-resultChan
		if result.err != nil {
			return nil, result.err
		}
		byDate[result.date] = result.activities
	}

	activities := []model.Activity{}
	for _, date := range dates {
		activities = append(activities, byDate[date]...)
	}
	return activities, nil
}

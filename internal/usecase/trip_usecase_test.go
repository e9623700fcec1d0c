package usecase

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"TabiPlan-App/internal/domain/model"
	"TabiPlan-App/internal/repository"
)

// --- テスト用フェイク ---

type fakeWeatherProvider struct {
	condition string
}

func (f *fakeWeatherProvider) Forecast(ctx context.Context, date, city string) (*model.WeatherObservation, error) {
	return &model.WeatherObservation{
		Date: date,
		City: city,
		Weather: model.Weather{
			Temperature:     25,
			TemperatureUnit: "celsius",
			Condition:       f.condition,
			Description:     "テスト用観測値",
		},
	}, nil
}

func (f *fakeWeatherProvider) ForecastRange(ctx context.Context, startDate, endDate, city string) ([]model.WeatherObservation, error) {
	start, err := time.Parse(model.DateLayout, startDate)
	if err != nil {
		return nil, err
	}
	end, err := time.Parse(model.DateLayout, endDate)
	if err != nil {
		return nil, err
	}

	observations := []model.WeatherObservation{}
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		observation, _ := f.Forecast(ctx, d.Format(model.DateLayout), city)
		observations = append(observations, *observation)
	}
	return observations, nil
}

func (f *fakeWeatherProvider) Geocode(ctx context.Context, city string) (*model.City, error) {
	return nil, nil
}

type fakeActivityCatalog struct {
	fetchedDates []string
}

func (f *fakeActivityCatalog) GetActivitiesByDate(ctx context.Context, date, city string) ([]model.Activity, error) {
	return f.GetActivitiesByInterests(ctx, nil, date)
}

func (f *fakeActivityCatalog) GetActivitiesByInterests(ctx context.Context, interests []string, date string) ([]model.Activity, error) {
	f.fetchedDates = append(f.fetchedDates, date)
	return []model.Activity{
		{
			ActivityID:       fmt.Sprintf("event-%s-1", date),
			Name:             "美術館めぐり",
			Price:            200,
			RelatedInterests: interests,
		},
	}, nil
}

func (f *fakeActivityCatalog) GetActivityByID(ctx context.Context, activityID string) (*model.Activity, error) {
	return nil, nil
}

func (f *fakeActivityCatalog) FilterActivitiesByWeather(activities []model.Activity, weatherCondition string) []model.Activity {
	return activities
}

func (f *fakeActivityCatalog) CalculateTotalCost(activities []model.Activity) int {
	total := 0
	for _, activity := range activities {
		total += activity.Price
	}
	return total
}

type fakePlanRepository struct {
	plan      *model.TravelPlan
	modified  *model.TravelPlan
	err       error
	lastInput string
}

func (f *fakePlanRepository) GeneratePlan(ctx context.Context, req *model.VacationRequest, weather []model.WeatherObservation, activities []model.Activity) (*model.TravelPlan, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.plan, nil
}

func (f *fakePlanRepository) ModifyPlan(ctx context.Context, currentPlan *model.TravelPlan, modificationRequest string) (*model.TravelPlan, error) {
	f.lastInput = modificationRequest
	if f.err != nil {
		return nil, f.err
	}
	return f.modified, nil
}

type fakeImageProvider struct{}

func (f *fakeImageProvider) SearchLocationImages(ctx context.Context, location string, count int) []model.ImageRecord {
	return nil
}

func (f *fakeImageProvider) GetDestinationGallery(ctx context.Context, destination string) *model.DestinationGallery {
	return nil
}

// --- テストデータ ---

func futureDate(offset int) string {
	return time.Now().AddDate(0, 0, offset).Format(model.DateLayout)
}

func lisbonRequest() *model.VacationRequest {
	return &model.VacationRequest{
		Travelers: []model.Traveler{
			{Name: "Alice", Age: 30, Interests: []string{model.InterestArt}},
			{Name: "Bob", Age: 28, Interests: []string{model.InterestHiking}},
		},
		Destination:     "Lisbon",
		DateOfArrival:   futureDate(7),
		DateOfDeparture: futureDate(9),
		Budget:          2000,
	}
}

// conformingPlan はリクエストと整合するプランを作る（全興味を満たし予算内）
func conformingPlan(req *model.VacationRequest) *model.TravelPlan {
	return &model.TravelPlan{
		City:      req.Destination,
		StartDate: req.DateOfArrival,
		EndDate:   req.DateOfDeparture,
		TotalCost: 600,
		ItineraryDays: []model.ItineraryDay{
			{
				Date: req.DateOfArrival,
				ActivityRecommendations: []model.ActivityRecommendation{
					{
						Activity: model.Activity{
							ActivityID:       fmt.Sprintf("event-%s-1", req.DateOfArrival),
							Name:             "美術館めぐり",
							Price:            600,
							RelatedInterests: []string{model.InterestArt, model.InterestHiking},
						},
						ReasonsForRecommendation: []string{"興味に合致"},
					},
				},
			},
		},
	}
}

func newTestUseCase(planRepo *fakePlanRepository) (TripUseCase, *fakeActivityCatalog) {
	catalog := &fakeActivityCatalog{}
	uc := NewTripUseCase(
		&fakeWeatherProvider{condition: "sunny"},
		catalog,
		planRepo,
		repository.NewMemoryTripRepository(),
		&fakeImageProvider{},
	)
	return uc, catalog
}

// --- テスト本体 ---

func TestGenerateItinerary(t *testing.T) {
	ctx := context.Background()

	t.Run("リスボン3日間のプランを生成して保存する", func(t *testing.T) {
		req := lisbonRequest()
		planRepo := &fakePlanRepository{plan: conformingPlan(req)}
		uc, catalog := newTestUseCase(planRepo)

		result, err := uc.GenerateItinerary(ctx, req)
		assert.NoError(t, err)
		assert.Nil(t, result.Warning)
		assert.NotEmpty(t, result.Response.TripID)
		assert.Equal(t, "Lisbon", result.Response.TravelPlan.City)
		assert.Len(t, result.Response.WeatherForecast, 3)

		// 日毎のアクティビティ取得が3日分呼ばれている
		assert.Len(t, catalog.fetchedDates, 3)

		// 保存済みで履歴から参照できる
		summaries, err := uc.GetTripHistory(ctx)
		assert.NoError(t, err)
		assert.Len(t, summaries, 1)
		assert.Equal(t, result.Response.TripID, summaries[0].ID)
		assert.Equal(t, 0, summaries[0].ModificationsCount)
	})

	t.Run("リクエスト不正はValidationFailureErrorで生成しない", func(t *testing.T) {
		req := lisbonRequest()
		req.Budget = -1
		req.Travelers = nil

		planRepo := &fakePlanRepository{plan: conformingPlan(req)}
		uc, catalog := newTestUseCase(planRepo)

		_, err := uc.GenerateItinerary(ctx, req)
		var validationErr *model.ValidationFailureError
		assert.ErrorAs(t, err, &validationErr)
		assert.Len(t, validationErr.Violations, 2)
		// 検証失敗時は外部呼び出しを行わない
		assert.Empty(t, catalog.fetchedDates)
	})

	t.Run("プラン違反時は警告つきで返し保存しない", func(t *testing.T) {
		req := lisbonRequest()
		broken := conformingPlan(req)
		broken.TotalCost = 99999 // 予算超過

		planRepo := &fakePlanRepository{plan: broken}
		uc, _ := newTestUseCase(planRepo)

		result, err := uc.GenerateItinerary(ctx, req)
		assert.NoError(t, err)
		assert.NotNil(t, result.Warning)
		assert.NotEmpty(t, result.Warning.ValidationErrors)
		assert.Equal(t, 99999, result.Warning.TravelPlan.TotalCost)

		// 保存されていないので履歴は空
		summaries, err := uc.GetTripHistory(ctx)
		assert.NoError(t, err)
		assert.Empty(t, summaries)
	})

	t.Run("生成失敗はそのまま伝播する", func(t *testing.T) {
		planRepo := &fakePlanRepository{err: &model.GenerationError{Stage: "generate", Cause: errors.New("parse failed")}}
		uc, _ := newTestUseCase(planRepo)

		_, err := uc.GenerateItinerary(ctx, lisbonRequest())
		var generationErr *model.GenerationError
		assert.ErrorAs(t, err, &generationErr)
	})
}

func TestModifyItinerary(t *testing.T) {
	ctx := context.Background()

	// 事前に1件生成して保存しておく
	setup := func(t *testing.T) (TripUseCase, *fakePlanRepository, string) {
		req := lisbonRequest()
		planRepo := &fakePlanRepository{plan: conformingPlan(req)}
		uc, _ := newTestUseCase(planRepo)

		result, err := uc.GenerateItinerary(ctx, req)
		assert.NoError(t, err)
		return uc, planRepo, result.Response.TripID
	}

	t.Run("修正を適用して履歴に追記する", func(t *testing.T) {
		uc, planRepo, tripID := setup(t)

		modified := conformingPlan(lisbonRequest())
		modified.TotalCost = 700
		planRepo.modified = modified

		response, err := uc.ModifyItinerary(ctx, tripID, "美術館を追加して")
		assert.NoError(t, err)
		assert.Equal(t, tripID, response.TripID)
		assert.Equal(t, 700, response.TravelPlan.TotalCost)
		assert.Equal(t, "美術館を追加して", response.ModificationApplied)
		assert.Equal(t, "美術館を追加して", planRepo.lastInput)

		// 修正履歴が1件追加され、プランが置き換わっている
		detail, err := uc.GetTripDetail(ctx, tripID)
		assert.NoError(t, err)
		assert.Len(t, detail.Trip.Modifications, 1)
		assert.Equal(t, model.ModificationTypeUser, detail.Trip.Modifications[0].Type)
		assert.Equal(t, 700, detail.Trip.TravelPlan.TotalCost)
	})

	t.Run("空の修正指示はInvalidInputError", func(t *testing.T) {
		uc, _, tripID := setup(t)

		_, err := uc.ModifyItinerary(ctx, tripID, "")
		var invalidInput *model.InvalidInputError
		assert.ErrorAs(t, err, &invalidInput)
		assert.Equal(t, "modification_request", invalidInput.Field)
	})

	t.Run("存在しないIDはErrTripNotFound", func(t *testing.T) {
		uc, _, _ := setup(t)

		_, err := uc.ModifyItinerary(ctx, "missing-id", "美術館を追加して")
		assert.ErrorIs(t, err, model.ErrTripNotFound)
	})

	t.Run("修正失敗時は保存済みプランを変更しない", func(t *testing.T) {
		uc, planRepo, tripID := setup(t)
		planRepo.err = &model.GenerationError{Stage: "modify", Cause: errors.New("parse failed")}

		_, err := uc.ModifyItinerary(ctx, tripID, "美術館を追加して")
		var generationErr *model.GenerationError
		assert.ErrorAs(t, err, &generationErr)

		detail, derr := uc.GetTripDetail(ctx, tripID)
		assert.NoError(t, derr)
		assert.Empty(t, detail.Trip.Modifications)
		assert.Equal(t, 600, detail.Trip.TravelPlan.TotalCost)
	})
}

func TestGetTripDetail(t *testing.T) {
	ctx := context.Background()

	t.Run("存在しないIDはErrTripNotFound", func(t *testing.T) {
		uc, _ := newTestUseCase(&fakePlanRepository{})

		_, err := uc.GetTripDetail(ctx, "missing-id")
		assert.ErrorIs(t, err, model.ErrTripNotFound)
	})
}

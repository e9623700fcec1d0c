package service

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"TabiPlan-App/internal/domain/model"
)

// futureDate はテスト実行日からoffset日後の日付文字列を作る
func futureDate(offset int) string {
	return time.Now().AddDate(0, 0, offset).Format(model.DateLayout)
}

// validRequest は検証を通るリクエストのベースを作る
func validRequest() *model.VacationRequest {
	return &model.VacationRequest{
		Travelers: []model.Traveler{
			{Name: "Alice", Age: 30, Interests: []string{model.InterestArt, model.InterestCooking}},
			{Name: "Bob", Age: 28, Interests: []string{model.InterestHiking}},
		},
		Destination:     "Lisbon",
		DateOfArrival:   futureDate(7),
		DateOfDeparture: futureDate(10),
		Budget:          2000,
	}
}

func TestValidateVacationRequest(t *testing.T) {
	t.Run("正常なリクエストは違反なし", func(t *testing.T) {
		violations := ValidateVacationRequest(validRequest())
		assert.Empty(t, violations)
	})

	t.Run("日付形式が不正な場合は違反を報告", func(t *testing.T) {
		req := validRequest()
		req.DateOfArrival = "2026/10/01"

		violations := ValidateVacationRequest(req)
		assert.Len(t, violations, 1)
		assert.Contains(t, violations[0], "date_of_arrival")
	})

	t.Run("到着日が出発日以降の場合は違反を報告", func(t *testing.T) {
		req := validRequest()
		req.DateOfArrival = futureDate(10)
		req.DateOfDeparture = futureDate(7)

		violations := ValidateVacationRequest(req)
		assert.Len(t, violations, 1)
		assert.Contains(t, violations[0], "到着日は出発日より前")
	})

	t.Run("過去の到着日は違反を報告", func(t *testing.T) {
		req := validRequest()
		req.DateOfArrival = "2020-01-01"
		req.DateOfDeparture = futureDate(10)

		violations := ValidateVacationRequest(req)
		assert.Len(t, violations, 1)
		assert.Contains(t, violations[0], "過去にできません")
	})

	t.Run("予算0以下は違反を報告", func(t *testing.T) {
		req := validRequest()
		req.Budget = 0

		violations := ValidateVacationRequest(req)
		assert.Len(t, violations, 1)
		assert.Contains(t, violations[0], "budget")
	})

	t.Run("旅行者なしは違反を報告", func(t *testing.T) {
		req := validRequest()
		req.Travelers = nil

		violations := ValidateVacationRequest(req)
		assert.Len(t, violations, 1)
		assert.Contains(t, violations[0], "travelers")
	})

	t.Run("年齢不正と興味なしは旅行者ごとに報告", func(t *testing.T) {
		req := validRequest()
		req.Travelers = []model.Traveler{
			{Name: "Carol", Age: 150, Interests: []string{model.InterestMusic}},
			{Name: "Dave", Age: 40, Interests: []string{}},
		}

		violations := ValidateVacationRequest(req)
		assert.Len(t, violations, 2)
		assert.Contains(t, violations[0], "Carol")
		assert.Contains(t, violations[1], "Dave")
	})

	t.Run("複数の違反は全件収集される", func(t *testing.T) {
		req := &model.VacationRequest{
			Travelers:       []model.Traveler{},
			Destination:     "Lisbon",
			DateOfArrival:   "bad-date",
			DateOfDeparture: futureDate(5),
			Budget:          -100,
		}

		violations := ValidateVacationRequest(req)
		// 日付形式・予算・旅行者なしの3件
		assert.Len(t, violations, 3)
	})
}

func TestValidateTravelPlan(t *testing.T) {
	buildPlan := func(req *model.VacationRequest) *model.TravelPlan {
		return &model.TravelPlan{
			City:      req.Destination,
			StartDate: req.DateOfArrival,
			EndDate:   req.DateOfDeparture,
			TotalCost: 1500,
			ItineraryDays: []model.ItineraryDay{
				{
					Date: req.DateOfArrival,
					ActivityRecommendations: []model.ActivityRecommendation{
						{
							Activity: model.Activity{
								ActivityID:       fmt.Sprintf("event-%s-1", req.DateOfArrival),
								Name:             "美術館めぐり",
								Price:            1500,
								RelatedInterests: []string{model.InterestArt, model.InterestCooking, model.InterestHiking},
							},
							ReasonsForRecommendation: []string{"興味に合致"},
						},
					},
				},
			},
		}
	}

	t.Run("整合したプランは違反なし", func(t *testing.T) {
		req := validRequest()
		violations := ValidateTravelPlan(req, buildPlan(req))
		assert.Empty(t, violations)
	})

	t.Run("日付の不一致は違反を報告", func(t *testing.T) {
		req := validRequest()
		plan := buildPlan(req)
		plan.StartDate = futureDate(8)
		plan.EndDate = futureDate(11)

		violations := ValidateTravelPlan(req, plan)
		assert.Len(t, violations, 2)
		assert.Contains(t, violations[0], "start_date")
		assert.Contains(t, violations[1], "end_date")
	})

	t.Run("予算超過は違反を報告", func(t *testing.T) {
		req := validRequest()
		plan := buildPlan(req)
		plan.TotalCost = 5000

		violations := ValidateTravelPlan(req, plan)
		assert.Len(t, violations, 1)
		assert.Contains(t, violations[0], "total_cost")
	})

	t.Run("満たされていない興味は列挙される", func(t *testing.T) {
		req := validRequest()
		plan := buildPlan(req)
		plan.ItineraryDays[0].ActivityRecommendations[0].Activity.RelatedInterests = []string{model.InterestArt}

		violations := ValidateTravelPlan(req, plan)
		assert.Len(t, violations, 1)
		assert.Contains(t, violations[0], model.InterestCooking)
		assert.Contains(t, violations[0], model.InterestHiking)
		assert.NotContains(t, violations[0], model.InterestArt)
	})
}

func TestValidateBudgetDistribution(t *testing.T) {
	plan := &model.TravelPlan{
		TotalCost: 300,
		ItineraryDays: []model.ItineraryDay{
			{
				Date: "2026-10-01",
				ActivityRecommendations: []model.ActivityRecommendation{
					{Activity: model.Activity{Price: 100}},
					{Activity: model.Activity{Price: 100}},
				},
			},
			{
				Date: "2026-10-02",
				ActivityRecommendations: []model.ActivityRecommendation{
					{Activity: model.Activity{Price: 100}},
				},
			},
		},
	}

	t.Run("上限0は日毎チェックをスキップ", func(t *testing.T) {
		violations := ValidateBudgetDistribution(plan, 0)
		assert.Empty(t, violations)
	})

	t.Run("日毎上限超過の日を報告", func(t *testing.T) {
		violations := ValidateBudgetDistribution(plan, 150)
		assert.Len(t, violations, 1)
		assert.Contains(t, violations[0], "1日目")
	})

	t.Run("申告合計と再計算値の不一致を報告", func(t *testing.T) {
		broken := &model.TravelPlan{
			TotalCost: 999,
			ItineraryDays: []model.ItineraryDay{
				{ActivityRecommendations: []model.ActivityRecommendation{{Activity: model.Activity{Price: 100}}}},
			},
		}
		violations := ValidateBudgetDistribution(broken, 0)
		assert.Len(t, violations, 1)
		assert.Contains(t, violations[0], "total_cost")
	})
}

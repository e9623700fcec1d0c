package service

import (
	"fmt"
	"strings"
	"time"

	"TabiPlan-App/internal/domain/model"
)

// itinerary_validator.go は旅行リクエストと生成プランの純粋な検証関数を提供する
// 各関数は違反メッセージの一覧を返し、空リストが検証成功を表す
// 検証は途中で打ち切らず全件収集する（呼び出し元が全ての問題を一度に見られるように）

// ValidateVacationRequest は旅行リクエストのビジネスルールを検証する
func ValidateVacationRequest(req *model.VacationRequest) []string {
	violations := []string{}

	arrival, arrivalErr := req.ArrivalDate()
	departure, departureErr := req.DepartureDate()

	if arrivalErr != nil {
		violations = append(violations, fmt.Sprintf("date_of_arrival: 日付形式が不正です (%s)", req.DateOfArrival))
	}
	if departureErr != nil {
		violations = append(violations, fmt.Sprintf("date_of_departure: 日付形式が不正です (%s)", req.DateOfDeparture))
	}

	if arrivalErr == nil && departureErr == nil && !arrival.Before(departure) {
		violations = append(violations, "date_of_arrival: 到着日は出発日より前である必要があります")
	}

	if arrivalErr == nil {
		today := time.Now().Truncate(24 * time.Hour)
		if arrival.Before(today) {
			violations = append(violations, "date_of_arrival: 到着日は過去にできません")
		}
	}

	if req.Budget <= 0 {
		violations = append(violations, "budget: 予算は0より大きい必要があります")
	}

	if len(req.Travelers) == 0 {
		violations = append(violations, "travelers: 旅行者は1名以上必要です")
	}

	for _, traveler := range req.Travelers {
		if traveler.Age < 0 || traveler.Age > 120 {
			violations = append(violations, fmt.Sprintf("travelers: %s の年齢が不正です", traveler.Name))
		}
		if len(traveler.Interests) == 0 {
			violations = append(violations, fmt.Sprintf("travelers: %s には興味タグが1つ以上必要です", traveler.Name))
		}
	}

	return violations
}

// ValidateTravelPlan は生成されたプランを元のリクエストに対して検証する
func ValidateTravelPlan(req *model.VacationRequest, plan *model.TravelPlan) []string {
	violations := []string{}

	if plan.StartDate != req.DateOfArrival {
		violations = append(violations, "start_date: プランの開始日が到着日と一致しません")
	}
	if plan.EndDate != req.DateOfDeparture {
		violations = append(violations, "end_date: プランの終了日が出発日と一致しません")
	}

	if plan.TotalCost > req.Budget {
		violations = append(violations, fmt.Sprintf("total_cost: 合計金額 (%d) が予算 (%d) を超えています", plan.TotalCost, req.Budget))
	}

	// 興味カバレッジ: 全旅行者の興味の和集合がプラン内の推薦で網羅されているか
	covered := plan.CoveredInterests()
	uncovered := []string{}
	for _, interest := range req.AllInterests() {
		if !covered[interest] {
			uncovered = append(uncovered, interest)
		}
	}
	if len(uncovered) > 0 {
		violations = append(violations, fmt.Sprintf("interests: 満たされていない興味があります: [%s]", strings.Join(uncovered, ", ")))
	}

	return violations
}

// ValidateBudgetDistribution はプランの日毎コストを再計算して検証する
// maxDailyBudgetが0の場合は日毎上限チェックをスキップする
// 申告されたtotal_costと再計算値の不一致は常に報告する（生成結果の不整合への防御）
func ValidateBudgetDistribution(plan *model.TravelPlan, maxDailyBudget int) []string {
	violations := []string{}

	calculatedTotal := 0
	for i, day := range plan.ItineraryDays {
		dailyCost := day.DailyCost()
		calculatedTotal += dailyCost

		if maxDailyBudget > 0 && dailyCost > maxDailyBudget {
			violations = append(violations, fmt.Sprintf("itinerary_days: %d日目のコスト (%d) が日毎上限 (%d) を超えています", i+1, dailyCost, maxDailyBudget))
		}
	}

	if calculatedTotal != plan.TotalCost {
		violations = append(violations, fmt.Sprintf("total_cost: 申告された合計金額 (%d) が再計算値 (%d) と一致しません", plan.TotalCost, calculatedTotal))
	}

	return violations
}

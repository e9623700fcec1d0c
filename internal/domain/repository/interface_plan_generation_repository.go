package repository

import (
	"TabiPlan-App/internal/domain/model"
	"context"
)

// PlanGenerationRepository は旅行プラン生成の責務を持つリポジトリインターフェース
type PlanGenerationRepository interface {
	// GeneratePlan はリクエスト・天気予報・候補アクティビティから旅行プランを生成する
	// 生成結果のパース失敗はmodel.GenerationErrorとして返す（既定値で補わない）
	GeneratePlan(ctx context.Context, req *model.VacationRequest, weather []model.WeatherObservation, activities []model.Activity) (*model.TravelPlan, error)

	// ModifyPlan は現在のプランに自由文の修正指示を適用した新しいプランを生成する
	// 構造の維持は生成側に指示するのみで、検証は呼び出し元（usecase）の責務
	ModifyPlan(ctx context.Context, currentPlan *model.TravelPlan, modificationRequest string) (*model.TravelPlan, error)
}

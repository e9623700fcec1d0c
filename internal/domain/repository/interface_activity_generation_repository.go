package repository

import (
	"TabiPlan-App/internal/domain/model"
	"context"
)

// ActivityGenerationRepository はアクティビティ候補生成の責務を持つリポジトリインターフェース
// 興味タグは閉じた語彙（model/interests.go）に制約され、語彙外タグは実装側で正規化する
type ActivityGenerationRepository interface {
	// GenerateActivities は指定日・都市・興味タグに合う候補アクティビティを生成する
	GenerateActivities(ctx context.Context, date, city string, interests []string, count int) ([]model.Activity, error)
}

package service

import (
	"context"
	"log"
	"strings"
	"sync"
	"time"

	"TabiPlan-App/internal/domain/model"
	"TabiPlan-App/internal/domain/repository"
)

// ActivityCatalog はアクティビティ候補の取得・絞り込みを行うサービス
type ActivityCatalog interface {
	// GetActivitiesByDate は指定日・都市の候補アクティビティを取得する
	GetActivitiesByDate(ctx context.Context, date, city string) ([]model.Activity, error)

	// GetActivitiesByInterests は興味タグに合う候補を取得する（日付省略時は翌日）
	GetActivitiesByInterests(ctx context.Context, interests []string, date string) ([]model.Activity, error)

	// GetActivityByID はIDからアクティビティを1件取得する（見つからない場合はnil）
	GetActivityByID(ctx context.Context, activityID string) (*model.Activity, error)

	// FilterActivitiesByWeather は悪天候時に屋内系アクティビティのみ残す
	FilterActivitiesByWeather(activities []model.Activity, weatherCondition string) []model.Activity

	// CalculateTotalCost はアクティビティの合計金額を計算する
	CalculateTotalCost(activities []model.Activity) int
}

// activityCatalogImpl はActivityCatalogの実装
// 生成済みアクティビティをIDでキャッシュし、同一バッチ内のID検索を冪等にする
type activityCatalogImpl struct {
	generationRepo repository.ActivityGenerationRepository

	mu    sync.RWMutex
	batch map[string]model.Activity // activity_id -> 生成済みアクティビティ
}

// デフォルトの生成件数
const defaultActivityCount = 3

// NewActivityCatalog は新しいActivityCatalogインスタンスを作成
func NewActivityCatalog(generationRepo repository.ActivityGenerationRepository) ActivityCatalog {
	return &activityCatalogImpl{
		generationRepo: generationRepo,
		batch:          make(map[string]model.Activity),
	}
}

// GetActivitiesByDate は指定日・都市の候補アクティビティを取得する
// 生成失敗時は番兵アクティビティ1件を返す（「良い候補なし」は正常な低情報結果であり、エラーではない）
func (c *activityCatalogImpl) GetActivitiesByDate(ctx context.Context, date, city string) ([]model.Activity, error) {
	if _, err := time.Parse(model.DateLayout, date); err != nil {
		return nil, &model.InvalidInputError{Field: "date", Message: "日付形式が不正です: " + date}
	}

	return c.generate(ctx, date, city, nil), nil
}

// GetActivitiesByInterests は興味タグに合う候補を取得する
// 日付が指定されない場合は呼び出し時点の翌日を対象とする
func (c *activityCatalogImpl) GetActivitiesByInterests(ctx context.Context, interests []string, date string) ([]model.Activity, error) {
	if date == "" {
		date = time.Now().AddDate(0, 0, 1).Format(model.DateLayout)
	} else if _, err := time.Parse(model.DateLayout, date); err != nil {
		return nil, &model.InvalidInputError{Field: "date", Message: "日付形式が不正です: " + date}
	}

	return c.generate(ctx, date, "", interests), nil
}

// GetActivityByID はIDからアクティビティを1件取得する
// 同一プロセス内で生成済みのIDはキャッシュから返す（冪等）
// 未知だが形式の正しいIDはIDに埋め込まれた日付から1件を再生成する
// （再生成は本質的に非決定的で、呼び出し毎に異なる内容が返り得る）
func (c *activityCatalogImpl) GetActivityByID(ctx context.Context, activityID string) (*model.Activity, error) {
	c.mu.RLock()
	if cached, ok := c.batch[activityID]; ok {
		c.mu.RUnlock()
		return &cached, nil
	}
	c.mu.RUnlock()

	date, ok := model.ParseActivityIDDate(activityID)
	if !ok {
		return nil, nil
	}
	if _, err := time.Parse(model.DateLayout, date); err != nil {
		return nil, nil
	}

	activities, err := c.generationRepo.GenerateActivities(ctx, date, "", nil, 1)
	if err != nil || len(activities) == 0 {
		log.Printf("⚠️ ID指定のアクティビティ再生成に失敗 (id: %s): %v", activityID, err)
		return nil, nil
	}

	activity := activities[0]
	activity.ActivityID = activityID
	c.remember([]model.Activity{activity})
	return &activity, nil
}

// FilterActivitiesByWeather は悪天候時に屋内系アクティビティのみ残す
// 判定は説明文・場所名のテキストによる簡易なもの
func (c *activityCatalogImpl) FilterActivitiesByWeather(activities []model.Activity, weatherCondition string) []model.Activity {
	condition := strings.ToLower(weatherCondition)
	if condition != "thunderstorm" && condition != "rainy" && condition != "heavy rain" {
		return activities
	}

	indoor := make([]model.Activity, 0, len(activities))
	for _, activity := range activities {
		description := strings.ToLower(activity.Description)
		location := strings.ToLower(activity.Location)
		if strings.Contains(description, "indoor") ||
			strings.Contains(location, "hall") ||
			strings.Contains(location, "center") {
			indoor = append(indoor, activity)
		}
	}
	return indoor
}

// CalculateTotalCost はアクティビティの合計金額を計算する
func (c *activityCatalogImpl) CalculateTotalCost(activities []model.Activity) int {
	total := 0
	for _, activity := range activities {
		total += activity.Price
	}
	return total
}

// generate は生成リポジトリへ委譲し、失敗を番兵アクティビティに吸収する
func (c *activityCatalogImpl) generate(ctx context.Context, date, city string, interests []string) []model.Activity {
	activities, err := c.generationRepo.GenerateActivities(ctx, date, city, interests, defaultActivityCount)
	if err != nil || len(activities) == 0 {
		log.Printf("⚠️ アクティビティ生成に失敗、番兵を返却 (date: %s): %v", date, err)
		return []model.Activity{model.NewSentinelActivity(date, city)}
	}

	c.remember(activities)
	return activities
}

// remember は生成済みアクティビティをIDキャッシュへ登録する
func (c *activityCatalogImpl) remember(activities []model.Activity) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, activity := range activities {
		c.batch[activity.ActivityID] = activity
	}
}

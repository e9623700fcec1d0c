package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"TabiPlan-App/internal/domain/model"
	"TabiPlan-App/internal/domain/repository"
)

// geminiActivityRepository はGeminiを使用してActivityGenerationRepositoryを実装
type geminiActivityRepository struct {
	generator ContentGenerator
}

// NewGeminiActivityRepository は新しいgeminiActivityRepositoryインスタンスを作成
func NewGeminiActivityRepository(generator ContentGenerator) repository.ActivityGenerationRepository {
	return &geminiActivityRepository{
		generator: generator,
	}
}

// GenerateActivities は指定日・都市・興味タグに合う候補アクティビティを生成する
// 語彙外のrelated_interestsは正規化で捨て、閉じた語彙を維持する
func (g *geminiActivityRepository) GenerateActivities(ctx context.Context, date, city string, interests []string, count int) ([]model.Activity, error) {
	prompt := g.buildActivityPrompt(date, city, interests, count)

	log.Printf("🤖 Gemini APIでアクティビティを生成中... (date: %s, city: %s)", date, city)

	content, err := g.generator.GenerateContent(ctx, "", prompt)
	if err != nil {
		return nil, fmt.Errorf("アクティビティ生成のAPI呼び出しに失敗: %w", err)
	}

	activities, err := parseActivities(content)
	if err != nil {
		return nil, fmt.Errorf("アクティビティのパースに失敗: %w", err)
	}

	// 興味タグの正規化とバッチ内ユニークIDの付与
	for i := range activities {
		activities[i].RelatedInterests = model.NormalizeInterests(activities[i].RelatedInterests)
		if activities[i].ActivityID == "" {
			activities[i].ActivityID = fmt.Sprintf("event-%s-%d", date, i+1)
		}
	}

	log.Printf("✅ アクティビティ生成完了 (%d件)", len(activities))
	return activities, nil
}

// buildActivityPrompt はアクティビティ生成用プロンプトを構築
func (g *geminiActivityRepository) buildActivityPrompt(date, city string, interests []string, count int) string {
	interestsStr := "様々なジャンル"
	if len(interests) > 0 {
		interestsStr = strings.Join(interests, ", ")
	}
	if city == "" {
		city = "その地域"
	}

	return fmt.Sprintf(`%s の %s 向けに観光アクティビティを%d件生成してください。
興味: %s

重要: related_interestsには次の語彙のみ使用可: %s

以下の形式の有効なJSONのみを返してください:
[
    {
        "activity_id": "event-%s-1",
        "name": "アクティビティ名",
        "start_time": "%s HH:MM",
        "end_time": "%s HH:MM",
        "location": "%s 内の具体的な場所",
        "description": "アクティビティの詳細な説明",
        "price": 25,
        "related_interests": ["interest1", "interest2"]
    }
]`,
		date, city, count,
		interestsStr,
		joinInterests(),
		date, date, date, city)
}

// parseActivities は生成テキストをアクティビティ配列としてパースする
// 単一オブジェクトで返ってきた場合も1件の配列として受け付ける
func parseActivities(content string) ([]model.Activity, error) {
	payload := ExtractJSONPayload(content)

	var activities []model.Activity
	if err := json.Unmarshal([]byte(payload), &activities); err != nil {
		var single model.Activity
		if err2 := json.Unmarshal([]byte(payload), &single); err2 != nil {
			return nil, fmt.Errorf("JSONパース失敗: %w", err)
		}
		activities = []model.Activity{single}
	}

	return activities, nil
}

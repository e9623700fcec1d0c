package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"TabiPlan-App/internal/domain/model"
	"TabiPlan-App/internal/domain/repository"
)

// ContentGenerator は生成バックエンドの最小インターフェース
// 実体はGeminiClient（テストではフェイクに差し替える）
type ContentGenerator interface {
	GenerateContent(ctx context.Context, systemInstruction, prompt string) (string, error)
}

// planSynthesizer はGeminiを使用してPlanGenerationRepositoryを実装
type planSynthesizer struct {
	generator ContentGenerator
}

// NewPlanSynthesizer は新しいplanSynthesizerインスタンスを作成
func NewPlanSynthesizer(generator ContentGenerator) repository.PlanGenerationRepository {
	return &planSynthesizer{
		generator: generator,
	}
}

// travelPlanSchema はプロンプトに埋め込む出力スキーマ
// related_interestsの語彙制約はプロンプト本文で別途指示する
const travelPlanSchema = `{
  "city": "string",
  "start_date": "YYYY-MM-DD",
  "end_date": "YYYY-MM-DD",
  "total_cost": 0,
  "itinerary_days": [
    {
      "date": "YYYY-MM-DD",
      "weather": {
        "temperature": 0,
        "temperature_unit": "celsius",
        "condition": "string",
        "description": "string"
      },
      "activity_recommendations": [
        {
          "activity": {
            "activity_id": "event-YYYY-MM-DD-1",
            "name": "string",
            "start_time": "YYYY-MM-DD HH:MM",
            "end_time": "YYYY-MM-DD HH:MM",
            "location": "string",
            "description": "string",
            "price": 0,
            "related_interests": ["string"]
          },
          "reasons_for_recommendation": ["string"]
        }
      ]
    }
  ]
}`

// GeneratePlan はリクエスト・天気予報・候補アクティビティから旅行プランを生成する
func (s *planSynthesizer) GeneratePlan(ctx context.Context, req *model.VacationRequest, weather []model.WeatherObservation, activities []model.Activity) (*model.TravelPlan, error) {
	systemInstruction, err := buildGeneratePrompt(weather, activities)
	if err != nil {
		return nil, &model.GenerationError{Stage: "generate", Cause: err}
	}

	userPayload, err := json.MarshalIndent(req, "", "  ")
	if err != nil {
		return nil, &model.GenerationError{Stage: "generate", Cause: err}
	}

	log.Printf("🤖 Gemini APIで旅行プランを生成中... (目的地: %s)", req.Destination)

	content, err := s.generator.GenerateContent(ctx, systemInstruction, string(userPayload))
	if err != nil {
		// タイムアウトは内容不正と区別してそのまま伝播する
		return nil, fmt.Errorf("プラン生成のAPI呼び出しに失敗: %w", err)
	}

	plan, err := parseTravelPlan(content)
	if err != nil {
		return nil, &model.GenerationError{Stage: "generate", Cause: err}
	}

	log.Printf("✅ 旅行プラン生成完了 (%d日分, 合計: %d)", len(plan.ItineraryDays), plan.TotalCost)
	return plan, nil
}

// ModifyPlan は現在のプランに自由文の修正指示を適用した新しいプランを生成する
// 再検証はここでは行わない（usecaseの責務）
func (s *planSynthesizer) ModifyPlan(ctx context.Context, currentPlan *model.TravelPlan, modificationRequest string) (*model.TravelPlan, error) {
	systemInstruction := `あなたは旅行プラン修正の専門家です。
ユーザーの指示に基づいて既存のプランを修正してください。
元のJSON構造を維持し、必要な変更のみを行ってください。
修正後のプラン全体を ` + "```json" + ` フェンスで囲んで出力してください。`

	currentPlanJSON, err := json.Marshal(currentPlan)
	if err != nil {
		return nil, &model.GenerationError{Stage: "modify", Cause: err}
	}

	prompt := fmt.Sprintf("現在のプラン: %s\n\n修正指示: %s", string(currentPlanJSON), modificationRequest)

	log.Printf("🤖 Gemini APIでプランを修正中... (指示: %s)", modificationRequest)

	content, err := s.generator.GenerateContent(ctx, systemInstruction, prompt)
	if err != nil {
		return nil, fmt.Errorf("プラン修正のAPI呼び出しに失敗: %w", err)
	}

	plan, err := parseTravelPlan(content)
	if err != nil {
		return nil, &model.GenerationError{Stage: "modify", Cause: err}
	}

	log.Printf("✅ プラン修正完了 (%d日分, 合計: %d)", len(plan.ItineraryDays), plan.TotalCost)
	return plan, nil
}

// buildGeneratePrompt はプラン生成用のシステム指示を構築する
func buildGeneratePrompt(weather []model.WeatherObservation, activities []model.Activity) (string, error) {
	weatherJSON, err := json.MarshalIndent(weather, "", "  ")
	if err != nil {
		return "", fmt.Errorf("天気データのシリアライズに失敗: %w", err)
	}
	activitiesJSON, err := json.MarshalIndent(activities, "", "  ")
	if err != nil {
		return "", fmt.Errorf("アクティビティデータのシリアライズに失敗: %w", err)
	}

	prompt := fmt.Sprintf(`あなたは旅行プラン作成の専門エージェントです。

【タスク】
以下を考慮したパーソナライズド旅行プランを作成してください：
1. 旅行者の興味を尊重する（全員の興味を少なくとも1つのアクティビティで満たす）
2. 悪天候（雨・雷雨・雪）の日は屋外アクティビティを避ける
3. 予算を超えない（total_costは予算以内）
4. 1日につき少なくとも1つのアクティビティを入れる
5. アクティビティと天気の整合性を保つ

【出力フォーマット】
「分析」と「最終出力」の2セクションで回答してください：

分析:
- 旅行者の嗜好の段階的な分析
- 各日の天気に関する考慮
- 興味に基づくアクティビティ選定
- 予算の計算と確認

最終出力:

%s
%s
%s

【制約】
- related_interestsには次の語彙のみ使用可: %s
- start_date / end_dateはリクエストの到着日・出発日と一致させること
- total_costは全アクティビティ価格の合計と一致させること

【コンテキスト】
天気データ: %s
利用可能なアクティビティ: %s`,
		"```json",
		travelPlanSchema,
		"```",
		joinInterests(),
		string(weatherJSON),
		string(activitiesJSON))

	return prompt, nil
}

// parseTravelPlan は生成テキストを抽出・厳格パースしてTravelPlanへ変換する
// 不正なプランを既定値で補うことはできないため、失敗はエラーとして返す
func parseTravelPlan(content string) (*model.TravelPlan, error) {
	payload := ExtractJSONPayload(content)

	var plan model.TravelPlan
	if err := json.Unmarshal([]byte(payload), &plan); err != nil {
		return nil, fmt.Errorf("プランJSONのパースに失敗: %w", err)
	}

	// スキーマ整合性の最低限チェック（失敗は閉じる方向に倒す）
	if plan.City == "" {
		return nil, fmt.Errorf("プランにcityがありません")
	}
	if len(plan.ItineraryDays) == 0 {
		return nil, fmt.Errorf("プランにitinerary_daysがありません")
	}
	if _, err := time.Parse(model.DateLayout, plan.StartDate); err != nil {
		return nil, fmt.Errorf("start_dateの形式が不正: %w", err)
	}
	if _, err := time.Parse(model.DateLayout, plan.EndDate); err != nil {
		return nil, fmt.Errorf("end_dateの形式が不正: %w", err)
	}
	for _, day := range plan.ItineraryDays {
		if _, err := time.Parse(model.DateLayout, day.Date); err != nil {
			return nil, fmt.Errorf("itinerary_daysの日付形式が不正 (%s): %w", day.Date, err)
		}
	}

	return &plan, nil
}

// joinInterests は閉じた興味語彙をプロンプト用に連結する
func joinInterests() string {
	interests := model.GetAllInterests()
	result := ""
	for i, interest := range interests {
		if i > 0 {
			result += ", "
		}
		result += interest
	}
	return result
}

package model

import "time"

// 日付・日時のフォーマット定数（LLMの出力スキーマと共通）
const (
	DateLayout     = "2006-01-02"
	DateTimeLayout = "2006-01-02 15:04"
)

// Traveler は旅行者1名の情報
type Traveler struct {
	Name      string   `json:"name"`
	Age       int      `json:"age"`
	Interests []string `json:"interests"` // interests.goの閉じた語彙のみ
}

// VacationRequest は旅行プラン生成のリクエスト
// 一度受け付けたら変更しない（修正はModifyItineraryRequestで行う）
type VacationRequest struct {
	Travelers       []Traveler `json:"travelers"`
	Destination     string     `json:"destination"`
	DateOfArrival   string     `json:"date_of_arrival"`   // YYYY-MM-DD
	DateOfDeparture string     `json:"date_of_departure"` // YYYY-MM-DD
	Budget          int        `json:"budget"`
}

// ArrivalDate は到着日をtime.Timeとして取得する
func (v *VacationRequest) ArrivalDate() (time.Time, error) {
	return time.Parse(DateLayout, v.DateOfArrival)
}

// DepartureDate は出発日をtime.Timeとして取得する
func (v *VacationRequest) DepartureDate() (time.Time, error) {
	return time.Parse(DateLayout, v.DateOfDeparture)
}

// AllInterests は全旅行者の興味タグの和集合を取得する（重複なし・宣言順）
func (v *VacationRequest) AllInterests() []string {
	seen := make(map[string]bool)
	interests := make([]string, 0)
	for _, traveler := range v.Travelers {
		for _, interest := range traveler.Interests {
			if !seen[interest] {
				seen[interest] = true
				interests = append(interests, interest)
			}
		}
	}
	return interests
}

// ActivityRecommendation は選定理由つきのアクティビティ推薦
type ActivityRecommendation struct {
	Activity                 Activity `json:"activity"`
	ReasonsForRecommendation []string `json:"reasons_for_recommendation"`
}

// ItineraryDay は1日分の行程
type ItineraryDay struct {
	Date                    string                   `json:"date"` // YYYY-MM-DD
	Weather                 Weather                  `json:"weather"`
	ActivityRecommendations []ActivityRecommendation `json:"activity_recommendations"`
}

// DailyCost はその日の推薦アクティビティの合計金額を再計算する
func (d *ItineraryDay) DailyCost() int {
	total := 0
	for _, rec := range d.ActivityRecommendations {
		total += rec.Activity.Price
	}
	return total
}

// TravelPlan は生成された旅行プラン全体
type TravelPlan struct {
	City          string         `json:"city"`
	StartDate     string         `json:"start_date"` // YYYY-MM-DD
	EndDate       string         `json:"end_date"`   // YYYY-MM-DD
	TotalCost     int            `json:"total_cost"`
	ItineraryDays []ItineraryDay `json:"itinerary_days"`
}

// CoveredInterests はプラン全体で推薦されたアクティビティの興味タグの和集合
func (p *TravelPlan) CoveredInterests() map[string]bool {
	covered := make(map[string]bool)
	for _, day := range p.ItineraryDays {
		for _, rec := range day.ActivityRecommendations {
			for _, interest := range rec.Activity.RelatedInterests {
				covered[interest] = true
			}
		}
	}
	return covered
}

// ModificationEvent は修正履歴の1エントリ
type ModificationEvent struct {
	Timestamp string `json:"timestamp"`
	Request   string `json:"request"`
	Type      string `json:"type"` // 常に "user_modification"
}

// ModificationTypeUser はユーザー起点の修正を表すイベントタイプ
const ModificationTypeUser = "user_modification"

// TripRecord は保存される旅行記録
// VacationRequestと現在のTravelPlanを所有し、修正履歴を追記していく
type TripRecord struct {
	ID            string              `json:"id"`
	VacationInfo  VacationRequest     `json:"vacation_info"`
	TravelPlan    TravelPlan          `json:"travel_plan"`
	CreatedAt     time.Time           `json:"created_at"`
	Modifications []ModificationEvent `json:"modifications"`
}

// --- APIレスポンス用の構造体 ---

// GenerateItineraryResponse はプラン生成の成功レスポンス
type GenerateItineraryResponse struct {
	TripID            string               `json:"trip_id"`
	TravelPlan        TravelPlan           `json:"travel_plan"`
	DestinationImages *DestinationGallery  `json:"destination_images,omitempty"`
	DestinationGeo    *City                `json:"destination_geo,omitempty"`
	WeatherForecast   []WeatherObservation `json:"weather_forecast"`
}

// GenerateItineraryWarning は検証違反つきでプランを返す警告レスポンス
type GenerateItineraryWarning struct {
	Warning          string     `json:"warning"`
	ValidationErrors []string   `json:"validation_errors"`
	TravelPlan       TravelPlan `json:"travel_plan"`
}

// ModifyItineraryRequest はプラン修正のリクエストボディ
type ModifyItineraryRequest struct {
	ModificationRequest string `json:"modification_request"`
}

// ModifyItineraryResponse はプラン修正の成功レスポンス
type ModifyItineraryResponse struct {
	TripID              string     `json:"trip_id"`
	TravelPlan          TravelPlan `json:"travel_plan"`
	ModificationApplied string     `json:"modification_applied"`
}

// TripSummary は履歴一覧用のサマリー
type TripSummary struct {
	ID                 string `json:"id"`
	Destination        string `json:"destination"`
	Travelers          []string `json:"travelers"`
	Dates              string `json:"dates"`
	TotalCost          int    `json:"total_cost"`
	CreatedAt          string `json:"created_at"`
	ModificationsCount int    `json:"modifications_count"`
}

// ToSummary はTripRecordから履歴サマリーを作成する
func (t *TripRecord) ToSummary() TripSummary {
	names := make([]string, len(t.VacationInfo.Travelers))
	for i, traveler := range t.VacationInfo.Travelers {
		names[i] = traveler.Name
	}
	return TripSummary{
		ID:                 t.ID,
		Destination:        t.VacationInfo.Destination,
		Travelers:          names,
		Dates:              t.VacationInfo.DateOfArrival + " to " + t.VacationInfo.DateOfDeparture,
		TotalCost:          t.TravelPlan.TotalCost,
		CreatedAt:          t.CreatedAt.Format(time.RFC3339),
		ModificationsCount: len(t.Modifications),
	}
}

// TripDetailResponse は旅行詳細レスポンス
type TripDetailResponse struct {
	Trip              TripRecord          `json:"trip"`
	DestinationImages *DestinationGallery `json:"destination_images,omitempty"`
}

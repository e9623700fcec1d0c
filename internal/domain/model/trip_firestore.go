package model

import (
	"encoding/json"
	"fmt"
	"time"
)

// FirestoreTripRecord はFirestore保存用の構造体
// ネストが深いプラン本体はJSON文字列として保持し、一覧表示用のフィールドのみ展開する
type FirestoreTripRecord struct {
	Destination        string    `firestore:"destination"`
	DateOfArrival      string    `firestore:"date_of_arrival"`
	DateOfDeparture    string    `firestore:"date_of_departure"`
	TotalCost          int       `firestore:"total_cost"`
	CreatedAt          time.Time `firestore:"created_at"`
	ModificationsCount int       `firestore:"modifications_count"`
	RecordJSON         string    `firestore:"record_json"`
}

// ToFirestoreTripRecord はTripRecordをFirestore保存用に変換する
func (t *TripRecord) ToFirestoreTripRecord() (*FirestoreTripRecord, error) {
	recordJSON, err := json.Marshal(t)
	if err != nil {
		return nil, fmt.Errorf("旅行記録のシリアライズに失敗: %w", err)
	}

	return &FirestoreTripRecord{
		Destination:        t.VacationInfo.Destination,
		DateOfArrival:      t.VacationInfo.DateOfArrival,
		DateOfDeparture:    t.VacationInfo.DateOfDeparture,
		TotalCost:          t.TravelPlan.TotalCost,
		CreatedAt:          t.CreatedAt,
		ModificationsCount: len(t.Modifications),
		RecordJSON:         string(recordJSON),
	}, nil
}

// ToTripRecord はFirestoreのデータからTripRecordを復元する
func (f *FirestoreTripRecord) ToTripRecord() (*TripRecord, error) {
	var record TripRecord
	if err := json.Unmarshal([]byte(f.RecordJSON), &record); err != nil {
		return nil, fmt.Errorf("旅行記録の復元に失敗: %w", err)
	}
	return &record, nil
}

package repository

import (
	"context"
	"fmt"
	"log"
	"strings"

	"cloud.google.com/go/firestore"

	"TabiPlan-App/internal/domain/model"
	"TabiPlan-App/internal/domain/repository"
)

// FirestoreTripRepository はFirestoreに旅行記録を保存するリポジトリ
type FirestoreTripRepository struct {
	client *firestore.Client
}

// tripRecordsCollection は旅行記録のコレクション名
const tripRecordsCollection = "tripRecords"

// NewFirestoreTripRepository は新しいFirestoreTripRepositoryインスタンスを作成
func NewFirestoreTripRepository(client *firestore.Client) repository.TripRepository {
	return &FirestoreTripRepository{
		client: client,
	}
}

// Save は新しい旅行記録をFirestoreに保存する
func (r *FirestoreTripRepository) Save(ctx context.Context, record *model.TripRecord) error {
	firestoreData, err := record.ToFirestoreTripRecord()
	if err != nil {
		return err
	}

	_, err = r.client.Collection(tripRecordsCollection).Doc(record.ID).Set(ctx, firestoreData)
	if err != nil {
		log.Printf("❌ Failed to save trip record %s: %v", record.ID, err)
		return fmt.Errorf("旅行記録の保存に失敗しました: %w", err)
	}

	log.Printf("✅ Trip record saved: %s", record.ID)
	return nil
}

// Get は指定IDの旅行記録をFirestoreから取得する
func (r *FirestoreTripRepository) Get(ctx context.Context, tripID string) (*model.TripRecord, error) {
	doc, err := r.client.Collection(tripRecordsCollection).Doc(tripID).Get(ctx)
	if err != nil {
		if status := err.Error(); strings.Contains(status, "NotFound") || strings.Contains(status, "not found") {
			return nil, model.ErrTripNotFound
		}
		return nil, fmt.Errorf("旅行記録の取得に失敗しました: %w", err)
	}

	var firestoreData model.FirestoreTripRecord
	if err := doc.DataTo(&firestoreData); err != nil {
		return nil, fmt.Errorf("データの変換に失敗しました: %w", err)
	}

	record, err := firestoreData.ToTripRecord()
	if err != nil {
		return nil, err
	}

	log.Printf("✅ Trip record retrieved: %s", tripID)
	return record, nil
}

// Update は既存の旅行記録を置き換える（SetはUpsertのため存在確認を先に行う）
func (r *FirestoreTripRepository) Update(ctx context.Context, record *model.TripRecord) error {
	if _, err := r.Get(ctx, record.ID); err != nil {
		return err
	}
	return r.Save(ctx, record)
}

// List は全旅行記録を作成日時順で取得する
func (r *FirestoreTripRepository) List(ctx context.Context) ([]*model.TripRecord, error) {
	docs, err := r.client.Collection(tripRecordsCollection).OrderBy("created_at", firestore.Asc).Documents(ctx).GetAll()
	if err != nil {
		return nil, fmt.Errorf("旅行記録一覧の取得に失敗しました: %w", err)
	}

	records := make([]*model.TripRecord, 0, len(docs))
	for _, doc := range docs {
		var firestoreData model.FirestoreTripRecord
		if err := doc.DataTo(&firestoreData); err != nil {
			return nil, fmt.Errorf("データの変換に失敗しました: %w", err)
		}
		record, err := firestoreData.ToTripRecord()
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}

	return records, nil
}

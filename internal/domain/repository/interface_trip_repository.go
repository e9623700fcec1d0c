package repository

import (
	"TabiPlan-App/internal/domain/model"
	"context"
)

// TripRepository は旅行記録の保存先を抽象化するリポジトリインターフェース
// 実装はインメモリ・Firestore・PostgreSQLから選択する（cmd/main.goで注入）
// 同一IDへの同時書き込みは後勝ちとし、ロックはこの層では行わない
type TripRepository interface {
	// Save は新しい旅行記録を保存する
	Save(ctx context.Context, record *model.TripRecord) error

	// Get は指定IDの旅行記録を取得する（存在しない場合はmodel.ErrTripNotFound）
	Get(ctx context.Context, tripID string) (*model.TripRecord, error)

	// Update は既存の旅行記録を置き換える（存在しない場合はmodel.ErrTripNotFound）
	Update(ctx context.Context, record *model.TripRecord) error

	// List は全旅行記録を作成日時順で取得する
	List(ctx context.Context) ([]*model.TripRecord, error)
}

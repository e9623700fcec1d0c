package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"TabiPlan-App/internal/domain/model"
	"TabiPlan-App/internal/domain/repository"
	"TabiPlan-App/internal/infrastructure/database"
)

// PostgresTripRepository はPostgreSQLに旅行記録を保存するリポジトリ
// 記録本体はJSONBカラムに保持し、IDと作成日時のみカラムに展開する
type PostgresTripRepository struct {
	client *database.PostgreSQLClient
}

// NewPostgresTripRepository は新しいPostgresTripRepositoryインスタンスを作成
func NewPostgresTripRepository(client *database.PostgreSQLClient) repository.TripRepository {
	return &PostgresTripRepository{
		client: client,
	}
}

// EnsureSchema はtrip_recordsテーブルを作成する（存在すれば何もしない）
func (r *PostgresTripRepository) EnsureSchema(ctx context.Context) error {
	query := `
		CREATE TABLE IF NOT EXISTS trip_records (
			id         TEXT PRIMARY KEY,
			created_at TIMESTAMPTZ NOT NULL,
			record     JSONB NOT NULL
		)`
	if _, err := r.client.DB.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("trip_recordsテーブルの作成に失敗: %w", err)
	}
	return nil
}

// Save は新しい旅行記録を保存する（同一IDは上書き・後勝ち）
func (r *PostgresTripRepository) Save(ctx context.Context, record *model.TripRecord) error {
	recordJSON, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("旅行記録のシリアライズに失敗: %w", err)
	}

	query := `
		INSERT INTO trip_records (id, created_at, record)
		VALUES ($1, $2, $3)
		ON CONFLICT (id) DO UPDATE SET record = EXCLUDED.record`
	if _, err := r.client.DB.ExecContext(ctx, query, record.ID, record.CreatedAt, recordJSON); err != nil {
		return fmt.Errorf("旅行記録の保存に失敗しました: %w", err)
	}

	return nil
}

// Get は指定IDの旅行記録を取得する
func (r *PostgresTripRepository) Get(ctx context.Context, tripID string) (*model.TripRecord, error) {
	var recordJSON []byte
	query := `SELECT record FROM trip_records WHERE id = $1`
	if err := r.client.DB.QueryRowContext(ctx, query, tripID).Scan(&recordJSON); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrTripNotFound
		}
		return nil, fmt.Errorf("旅行記録の取得に失敗しました: %w", err)
	}

	var record model.TripRecord
	if err := json.Unmarshal(recordJSON, &record); err != nil {
		return nil, fmt.Errorf("旅行記録の復元に失敗: %w", err)
	}

	return &record, nil
}

// Update は既存の旅行記録を置き換える
func (r *PostgresTripRepository) Update(ctx context.Context, record *model.TripRecord) error {
	recordJSON, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("旅行記録のシリアライズに失敗: %w", err)
	}

	query := `UPDATE trip_records SET record = $2 WHERE id = $1`
	result, err := r.client.DB.ExecContext(ctx, query, record.ID, recordJSON)
	if err != nil {
		return fmt.Errorf("旅行記録の更新に失敗しました: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("更新結果の確認に失敗: %w", err)
	}
	if affected == 0 {
		return model.ErrTripNotFound
	}

	return nil
}

// List は全旅行記録を作成日時順で取得する
func (r *PostgresTripRepository) List(ctx context.Context) ([]*model.TripRecord, error) {
	query := `SELECT record FROM trip_records ORDER BY created_at ASC`
	rows, err := r.client.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("旅行記録一覧の取得に失敗しました: %w", err)
	}
	defer rows.Close()

	records := make([]*model.TripRecord, 0)
	for rows.Next() {
		var recordJSON []byte
		if err := rows.Scan(&recordJSON); err != nil {
			return nil, fmt.Errorf("行の読み取りに失敗: %w", err)
		}
		var record model.TripRecord
		if err := json.Unmarshal(recordJSON, &record); err != nil {
			return nil, fmt.Errorf("旅行記録の復元に失敗: %w", err)
		}
		records = append(records, &record)
	}

	return records, rows.Err()
}

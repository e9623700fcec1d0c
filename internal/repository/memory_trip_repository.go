package repository

import (
	"context"
	"sort"
	"sync"

	"TabiPlan-App/internal/domain/model"
	"TabiPlan-App/internal/domain/repository"
)

// MemoryTripRepository はプロセス内メモリに旅行記録を保持するリポジトリ
// デフォルトの保存先。同一IDへの同時書き込みは後勝ち（ロックはマップ保護のみ）
type MemoryTripRepository struct {
	mu      sync.RWMutex
	records map[string]*model.TripRecord
}

// NewMemoryTripRepository は新しいMemoryTripRepositoryインスタンスを作成
func NewMemoryTripRepository() repository.TripRepository {
	return &MemoryTripRepository{
		records: make(map[string]*model.TripRecord),
	}
}

// Save は新しい旅行記録を保存する
func (r *MemoryTripRepository) Save(ctx context.Context, record *model.TripRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	copied := *record
	r.records[record.ID] = &copied
	return nil
}

// Get は指定IDの旅行記録を取得する
func (r *MemoryTripRepository) Get(ctx context.Context, tripID string) (*model.TripRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	record, ok := r.records[tripID]
	if !ok {
		return nil, model.ErrTripNotFound
	}

	copied := *record
	return &copied, nil
}

// Update は既存の旅行記録を置き換える
func (r *MemoryTripRepository) Update(ctx context.Context, record *model.TripRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.records[record.ID]; !ok {
		return model.ErrTripNotFound
	}

	copied := *record
	r.records[record.ID] = &copied
	return nil
}

// List は全旅行記録を作成日時順で取得する
func (r *MemoryTripRepository) List(ctx context.Context) ([]*model.TripRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	records := make([]*model.TripRecord, 0, len(r.records))
	for _, record := range r.records {
		copied := *record
		records = append(records, &copied)
	}

	sort.Slice(records, func(i, j int) bool {
		return records[i].CreatedAt.Before(records[j].CreatedAt)
	})

	return records, nil
}

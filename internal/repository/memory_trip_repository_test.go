package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"TabiPlan-App/internal/domain/model"
)

func newRecord(id string, createdAt time.Time) *model.TripRecord {
	return &model.TripRecord{
		ID: id,
		VacationInfo: model.VacationRequest{
			Destination:     "Lisbon",
			DateOfArrival:   "2026-10-01",
			DateOfDeparture: "2026-10-03",
			Budget:          2000,
			Travelers:       []model.Traveler{{Name: "Alice", Age: 30, Interests: []string{model.InterestArt}}},
		},
		TravelPlan: model.TravelPlan{
			City:      "Lisbon",
			StartDate: "2026-10-01",
			EndDate:   "2026-10-03",
			TotalCost: 800,
		},
		CreatedAt:     createdAt,
		Modifications: []model.ModificationEvent{},
	}
}

func TestMemoryTripRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("保存した記録を取得できる", func(t *testing.T) {
		repo := NewMemoryTripRepository()
		record := newRecord("trip-1", time.Now())

		assert.NoError(t, repo.Save(ctx, record))

		got, err := repo.Get(ctx, "trip-1")
		assert.NoError(t, err)
		assert.Equal(t, "Lisbon", got.VacationInfo.Destination)
	})

	t.Run("存在しないIDはErrTripNotFound", func(t *testing.T) {
		repo := NewMemoryTripRepository()

		_, err := repo.Get(ctx, "missing")
		assert.ErrorIs(t, err, model.ErrTripNotFound)
	})

	t.Run("同一IDの保存は後勝ちで上書きする", func(t *testing.T) {
		repo := NewMemoryTripRepository()
		first := newRecord("trip-1", time.Now())
		second := newRecord("trip-1", time.Now())
		second.VacationInfo.Destination = "Porto"

		assert.NoError(t, repo.Save(ctx, first))
		assert.NoError(t, repo.Save(ctx, second))

		got, err := repo.Get(ctx, "trip-1")
		assert.NoError(t, err)
		assert.Equal(t, "Porto", got.VacationInfo.Destination)
	})

	t.Run("Updateは既存記録のみ置き換える", func(t *testing.T) {
		repo := NewMemoryTripRepository()
		record := newRecord("trip-1", time.Now())
		assert.NoError(t, repo.Save(ctx, record))

		record.Modifications = append(record.Modifications, model.ModificationEvent{
			Timestamp: time.Now().Format(time.RFC3339),
			Request:   "美術館を追加して",
			Type:      model.ModificationTypeUser,
		})
		assert.NoError(t, repo.Update(ctx, record))

		got, err := repo.Get(ctx, "trip-1")
		assert.NoError(t, err)
		assert.Len(t, got.Modifications, 1)

		missing := newRecord("missing", time.Now())
		assert.ErrorIs(t, repo.Update(ctx, missing), model.ErrTripNotFound)
	})

	t.Run("取得した記録の変更は保存済みデータへ影響しない", func(t *testing.T) {
		repo := NewMemoryTripRepository()
		assert.NoError(t, repo.Save(ctx, newRecord("trip-1", time.Now())))

		got, err := repo.Get(ctx, "trip-1")
		assert.NoError(t, err)
		got.VacationInfo.Destination = "Tokyo"

		again, err := repo.Get(ctx, "trip-1")
		assert.NoError(t, err)
		assert.Equal(t, "Lisbon", again.VacationInfo.Destination)
	})

	t.Run("Listは作成日時の昇順で返す", func(t *testing.T) {
		repo := NewMemoryTripRepository()
		base := time.Now()
		assert.NoError(t, repo.Save(ctx, newRecord("trip-new", base.Add(time.Hour))))
		assert.NoError(t, repo.Save(ctx, newRecord("trip-old", base)))

		records, err := repo.List(ctx)
		assert.NoError(t, err)
		assert.Len(t, records, 2)
		assert.Equal(t, "trip-old", records[0].ID)
		assert.Equal(t, "trip-new", records[1].ID)
	})

	t.Run("空のリポジトリのListは空スライス", func(t *testing.T) {
		repo := NewMemoryTripRepository()

		records, err := repo.List(ctx)
		assert.NoError(t, err)
		assert.Empty(t, records)
	})
}

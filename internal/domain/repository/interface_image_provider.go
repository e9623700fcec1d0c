package repository

import (
	"TabiPlan-App/internal/domain/model"
	"context"
)

// ImageProvider は目的地画像検索の責務を持つプロバイダインターフェース
// APIキー未設定・上流失敗時はプレースホルダー画像にフォールバックする
type ImageProvider interface {
	// SearchLocationImages は場所に関連する画像を検索する
	SearchLocationImages(ctx context.Context, location string, count int) []model.ImageRecord

	// GetDestinationGallery は目的地のギャラリー（一覧+代表画像）を取得する
	GetDestinationGallery(ctx context.Context, destination string) *model.DestinationGallery
}

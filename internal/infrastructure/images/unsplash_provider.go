package images

import (
	"context"
	"encoding/json"
	"fmt"
	"hash/fnv"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"TabiPlan-App/internal/domain/model"
	"TabiPlan-App/internal/domain/repository"
)

// UnsplashImageProvider はUnsplash APIを使用した画像検索の実装
// APIキー未設定・上流失敗時はプレースホルダー画像にフォールバックする
type UnsplashImageProvider struct {
	accessKey  string
	baseURL    string
	httpClient *http.Client
}

// NewUnsplashImageProvider は新しいプロバイダを生成する
func NewUnsplashImageProvider(accessKey string) repository.ImageProvider {
	return &UnsplashImageProvider{
		accessKey:  accessKey,
		baseURL:    "https://api.unsplash.com",
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// SearchLocationImages は場所に関連する画像を検索する
// 失敗してもエラーは返さず、プレースホルダーで埋める
func (p *UnsplashImageProvider) SearchLocationImages(ctx context.Context, location string, count int) []model.ImageRecord {
	if p.accessKey == "" {
		return placeholderImages(location, count)
	}

	images, err := p.search(ctx, location, count)
	if err != nil {
		log.Printf("⚠️ 画像検索に失敗、プレースホルダーを使用 (query: %s): %v", location, err)
		return placeholderImages(location, count)
	}

	return images
}

// GetDestinationGallery は目的地のギャラリー（一覧+代表画像）を取得する
func (p *UnsplashImageProvider) GetDestinationGallery(ctx context.Context, destination string) *model.DestinationGallery {
	gallery := &model.DestinationGallery{
		Destination: destination,
		Images:      p.SearchLocationImages(ctx, destination, 10),
	}

	featured := p.SearchLocationImages(ctx, destination+" landmark", 1)
	if len(featured) > 0 {
		gallery.FeaturedImage = &featured[0]
	}

	return gallery
}

// search はUnsplashの写真検索APIを呼び出す
func (p *UnsplashImageProvider) search(ctx context.Context, location string, count int) ([]model.ImageRecord, error) {
	params := url.Values{}
	params.Set("query", location+" travel tourism")
	params.Set("per_page", strconv.Itoa(count))
	params.Set("orientation", "landscape")
	reqURL := fmt.Sprintf("%s/search/photos?%s", p.baseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, "GET", reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("リクエストの作成に失敗: %w", err)
	}
	req.Header.Set("Authorization", "Client-ID "+p.accessKey)

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("APIリクエストに失敗: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("APIからエラーステータスが返されました: %s", resp.Status)
	}

	var apiResp searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return nil, fmt.Errorf("JSONのパースに失敗: %w", err)
	}

	images := make([]model.ImageRecord, 0, len(apiResp.Results))
	for _, photo := range apiResp.Results {
		description := photo.Description
		if description == "" {
			description = photo.AltDescription
		}
		images = append(images, model.ImageRecord{
			ID:              photo.ID,
			URL:             photo.URLs.Regular,
			ThumbURL:        photo.URLs.Thumb,
			Description:     description,
			Photographer:    photo.User.Name,
			PhotographerURL: photo.User.Links.HTML,
		})
	}

	return images, nil
}

// placeholderImages はAPIが使えない場合の決定的なプレースホルダー画像を生成する
func placeholderImages(location string, count int) []model.ImageRecord {
	images := make([]model.ImageRecord, 0, count)
	for i := 0; i < count; i++ {
		seed := hashSeed(location+strconv.Itoa(i)) % 1000
		images = append(images, model.ImageRecord{
			ID:              fmt.Sprintf("placeholder_%d", i),
			URL:             fmt.Sprintf("https://picsum.photos/800/600?random=%d", seed),
			ThumbURL:        fmt.Sprintf("https://picsum.photos/200/150?random=%d", seed),
			Description:     fmt.Sprintf("Beautiful view of %s", location),
			Photographer:    "Placeholder",
			PhotographerURL: "https://picsum.photos",
		})
	}
	return images
}

// hashSeed は場所名からプレースホルダー用の安定したシードを作る
func hashSeed(s string) uint32 {
	h := fnv.New32a()
	h.Write([]byte(s))
	return h.Sum32()
}

// --- Unsplash APIのレスポンスをパースするための構造体 ---

type searchResponse struct {
	Results []photoResult `json:"results"`
}

type photoResult struct {
	ID             string `json:"id"`
	Description    string `json:"description"`
	AltDescription string `json:"alt_description"`
	URLs           struct {
		Regular string `json:"regular"`
		Thumb   string `json:"thumb"`
	} `json:"urls"`
	User struct {
		Name  string `json:"name"`
		Links struct {
			HTML string `json:"html"`
		} `json:"links"`
	} `json:"user"`
}

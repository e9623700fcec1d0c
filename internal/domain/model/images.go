package model

// ImageRecord は画像検索結果の1件
type ImageRecord struct {
	ID              string `json:"id"`
	URL             string `json:"url"`
	ThumbURL        string `json:"thumb_url"`
	Description     string `json:"description"`
	Photographer    string `json:"photographer"`
	PhotographerURL string `json:"photographer_url"`
}

// DestinationGallery は目的地の画像ギャラリー
type DestinationGallery struct {
	Destination   string        `json:"destination"`
	Images        []ImageRecord `json:"images"`
	FeaturedImage *ImageRecord  `json:"featured_image,omitempty"`
}

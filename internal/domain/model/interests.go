package model

import "strings"

// InterestConstants はアプリケーションで使用する興味タグの定数
// リクエスト受付・アクティビティ生成・プラン検証の全てで共有する閉じた語彙
const (
	InterestArt         = "art"
	InterestCooking     = "cooking"
	InterestComedy      = "comedy"
	InterestDancing     = "dancing"
	InterestFitness     = "fitness"
	InterestGardening   = "gardening"
	InterestHiking      = "hiking"
	InterestMovies      = "movies"
	InterestMusic       = "music"
	InterestPhotography = "photography"
	InterestReading     = "reading"
	InterestSports      = "sports"
	InterestTechnology  = "technology"
	InterestTheatre     = "theatre"
	InterestTennis      = "tennis"
	InterestWriting     = "writing"
)

// InterestNameMap は興味タグから日本語名へのマッピング
var InterestNameMap = map[string]string{
	InterestArt:         "アート",
	InterestCooking:     "料理",
	InterestComedy:      "お笑い",
	InterestDancing:     "ダンス",
	InterestFitness:     "フィットネス",
	InterestGardening:   "ガーデニング",
	InterestHiking:      "ハイキング",
	InterestMovies:      "映画",
	InterestMusic:       "音楽",
	InterestPhotography: "写真",
	InterestReading:     "読書",
	InterestSports:      "スポーツ",
	InterestTechnology:  "テクノロジー",
	InterestTheatre:     "演劇",
	InterestTennis:      "テニス",
	InterestWriting:     "執筆",
}

// GetAllInterests は全興味タグの一覧を取得する
func GetAllInterests() []string {
	return []string{
		InterestArt,
		InterestCooking,
		InterestComedy,
		InterestDancing,
		InterestFitness,
		InterestGardening,
		InterestHiking,
		InterestMovies,
		InterestMusic,
		InterestPhotography,
		InterestReading,
		InterestSports,
		InterestTechnology,
		InterestTheatre,
		InterestTennis,
		InterestWriting,
	}
}

// IsValidInterest は興味タグが語彙に含まれるかチェック
func IsValidInterest(interest string) bool {
	_, ok := InterestNameMap[interest]
	return ok
}

// NormalizeInterests は生成結果などから受け取ったタグ列を語彙に正規化する
// 小文字化・前後空白除去を行い、語彙外のタグは黙って広げずに捨てる
func NormalizeInterests(interests []string) []string {
	normalized := make([]string, 0, len(interests))
	seen := make(map[string]bool)

	for _, interest := range interests {
		tag := strings.ToLower(strings.TrimSpace(interest))
		if !IsValidInterest(tag) || seen[tag] {
			continue
		}
		seen[tag] = true
		normalized = append(normalized, tag)
	}

	return normalized
}

// GetInterestJapaneseName は興味タグから日本語名を取得する
func GetInterestJapaneseName(interest string) string {
	if name, ok := InterestNameMap[interest]; ok {
		return name
	}
	return interest // デフォルトはそのまま返す
}

package model

import (
	"fmt"
	"strings"
)

// Activity は候補アクティビティ1件
// 生成バッチ内でのみ一意なIDを持ち、プランから参照される
type Activity struct {
	ActivityID       string   `json:"activity_id"` // 例: "event-2025-10-01-1"
	Name             string   `json:"name"`
	StartTime        string   `json:"start_time"` // YYYY-MM-DD HH:MM
	EndTime          string   `json:"end_time"`   // YYYY-MM-DD HH:MM
	Location         string   `json:"location"`
	Description      string   `json:"description"`
	Price            int      `json:"price"`
	RelatedInterests []string `json:"related_interests"`
}

// NewSentinelActivity は生成失敗時に返す番兵アクティビティを作成する
// 価格0・興味タグなしの「結果なし」を表す正常値であり、エラーではない
func NewSentinelActivity(date, city string) Activity {
	if city == "" {
		city = "Local"
	}
	return Activity{
		ActivityID:       fmt.Sprintf("default-%s-1", date),
		Name:             "Atividade não encontrada",
		StartTime:        date + " 10:00",
		EndTime:          date + " 12:00",
		Location:         city,
		Description:      "Não foi possível encontrar atividades para esta data e local.",
		Price:            0,
		RelatedInterests: []string{},
	}
}

// ParseActivityIDDate は "event-YYYY-MM-DD-n" 形式のIDから日付部分を復元する
// 形式が合わない場合は空文字列とfalseを返す
func ParseActivityIDDate(activityID string) (string, bool) {
	if !strings.HasPrefix(activityID, "event-") {
		return "", false
	}
	parts := strings.Split(activityID, "-")
	if len(parts) < 5 {
		return "", false
	}
	// parts: ["event", "YYYY", "MM", "DD", "n"]
	date := strings.Join(parts[1:4], "-")
	if len(parts[1]) != 4 || len(parts[2]) != 2 || len(parts[3]) != 2 {
		return "", false
	}
	return date, true
}

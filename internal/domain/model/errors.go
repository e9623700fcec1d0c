package model

import (
	"errors"
	"fmt"
)

// ErrTripNotFound は存在しない旅行IDを指定した場合のエラー
var ErrTripNotFound = errors.New("旅行記録が見つかりません")

// ErrUpstreamTimeout は生成バックエンドのタイムアウトを表すエラー
// GenerationError（内容不正）と区別して扱う
var ErrUpstreamTimeout = errors.New("生成バックエンドがタイムアウトしました")

// InvalidInputError は入力不正（日付形式・必須パラメータ欠落など）を表す
// リトライせず、常に呼び出し元へ返す
type InvalidInputError struct {
	Field   string
	Message string
}

func (e *InvalidInputError) Error() string {
	return e.Field + ": " + e.Message
}

// ValidationFailureError はビジネスルール違反の一覧を保持する
// 違反は全件収集され、呼び出し元にまとめて提示される
type ValidationFailureError struct {
	Violations []string
}

func (e *ValidationFailureError) Error() string {
	return fmt.Sprintf("バリデーションエラー (%d件)", len(e.Violations))
}

// GenerationError は生成結果のパース失敗・スキーマ不一致を表す
// 不正なプランを既定値で補うことはできないため、復旧せず呼び出し元へ伝播する
type GenerationError struct {
	Stage string // "generate" または "modify"
	Cause error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("プラン生成に失敗 (stage: %s): %v", e.Stage, e.Cause)
}

func (e *GenerationError) Unwrap() error {
	return e.Cause
}

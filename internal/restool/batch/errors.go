package batch

import "errors"

var (
	// ErrEmptyConfig は設定ファイルに有効な差し替え指定がない場合のエラー
	ErrEmptyConfig = errors.New("設定ファイルに有効な差し替え指定がありません")

	// ErrMissingField は必須の列・フィールドが欠けている場合のエラー
	ErrMissingField = errors.New("設定ファイルに必須フィールドがありません")

	// ErrParseFailure は設定ファイルの解析に失敗した場合のエラー
	ErrParseFailure = errors.New("設定ファイルの解析に失敗しました")

	// ErrUnsupportedFormat はサポートされていない設定ファイル形式の場合のエラー
	ErrUnsupportedFormat = errors.New("サポートされていない設定ファイル形式です")
)

package resarc

import "errors"

var (
	// ErrTruncatedTable はヘッダが宣言するエントリテーブルがファイルに
	// 収まらない場合のエラー（解析全体が失敗します）
	ErrTruncatedTable = errors.New("エントリテーブルが不完全です")

	// ErrOutOfRange はエントリのペイロード範囲がファイルの外に出ている
	// 場合のエラー（該当エントリのみ無効扱いになります）
	ErrOutOfRange = errors.New("エントリがファイル範囲を超えています")

	// ErrEntryNotFound は指定されたエントリが存在しない場合のエラー
	ErrEntryNotFound = errors.New("エントリが見つかりません")
)

package archive

import "errors"

var (
	// ErrEmptyFile はファイルサイズが0の場合のエラー
	ErrEmptyFile = errors.New("ファイルサイズが0です")

	// ErrNoEntries はアーカイブ内にエントリが見つからない場合のエラー
	ErrNoEntries = errors.New("アーカイブ内にエントリが見つかりません")
)

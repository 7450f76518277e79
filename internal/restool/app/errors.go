package app

import "errors"

var (
	// ErrNoArchives は処理対象のアーカイブが指定されていない場合のエラー
	ErrNoArchives = errors.New("処理対象のresファイルが指定されていません")

	// ErrIncompleteReplace は--targetと--withの片方しか指定されていない場合のエラー
	ErrIncompleteReplace = errors.New("--targetと--withは同時に指定してください")

	// ErrConflictingModes は--batchと--target/--withが同時に指定された場合のエラー
	ErrConflictingModes = errors.New("--batchと--target/--withは同時に指定できません")

	// ErrReplaceMultipleArchives は差し替え対象に複数のアーカイブが指定された場合のエラー
	ErrReplaceMultipleArchives = errors.New("差し替えは1つのresファイルに対してのみ実行できます")

	// ErrBatchLoad はバッチ設定ファイルの読み込みに失敗した場合のエラー
	ErrBatchLoad = errors.New("バッチ設定ファイルの読み込みに失敗しました")

	// ErrWriteCSV はCSVレポートの書き出しに失敗した場合のエラー
	ErrWriteCSV = errors.New("CSVレポートの書き出しに失敗しました")
)

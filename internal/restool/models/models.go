// Package models はrestoolコマンドで使用するデータモデルを定義します
package models

// EntryStatus はエントリの検証結果を表します
type EntryStatus string

const (
	// StatusValid は正常なエントリ
	StatusValid EntryStatus = "有効"
	// StatusOutOfRange はペイロードがファイル範囲を超えているエントリ
	StatusOutOfRange EntryStatus = "無効(範囲外)"
	// StatusDiscontinuous はオフセットが連続配置から外れているエントリ
	StatusDiscontinuous EntryStatus = "オフセット不連続"
	// StatusSuspectedEmpty は中身が存在しない可能性が高いエントリ
	StatusSuspectedEmpty EntryStatus = "空の可能性"
)

// EntryInfo はアーカイブ内の1エントリの一覧表示用情報です
type EntryInfo struct {
	Index      int
	Name       string
	Size       uint32
	Offset     uint32
	Reserved   uint32
	Identifier uint32
	Status     EntryStatus
	Kind       string // 推定されたペイロード種別
}

// ExtractOptions は抽出時の動作を制御します
type ExtractOptions struct {
	// SkipEmpty は空の可能性が高いエントリをスキップします
	SkipEmpty bool
	// All は空の可能性があってもすべて抽出します
	All bool
}

// ExtractStats は抽出結果の集計です
type ExtractStats struct {
	Extracted int
	Skipped   int
	Failed    int
}

// ReplaceSpec は1件の差し替え指定です
type ReplaceSpec struct {
	// TargetFile はアーカイブ内でのエントリ名
	TargetFile string `json:"target_file"`
	// ReplacementFile は差し替えに使うファイルのパス
	ReplacementFile string `json:"replacement_file"`
}

// ReplaceOptions は差し替え時の動作を制御します
type ReplaceOptions struct {
	// Backup は差し替え前にバックアップを作成します
	Backup bool
	// Force はサイズが異なる場合でも確認なしで差し替えます。
	// falseの場合、サイズが変わる差し替えは拒否されます。
	Force bool
}

// ReplaceResult は1件の差し替え結果です
type ReplaceResult struct {
	TargetFile string
	OldSize    uint32
	NewSize    uint32
	SizeDiff   int64
	// Relocated はオフセットを付け替えた後続エントリの数
	Relocated  int
	BackupPath string
}

// ConvertResult は.au変換1件の結果です
type ConvertResult struct {
	Input     string
	Output    string
	HeaderHex string // .auヘッダの16進表現（レポート用）
}

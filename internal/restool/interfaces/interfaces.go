// Package interfaces はrestoolコマンドで使用するインターフェースを定義します
package interfaces

import (
	"context"

	"github.com/Plastique812375255/FUKMKD/internal/restool/models"
)

// FileSystem はファイルシステム操作のインターフェース
type FileSystem interface {
	FileExists(filename string) bool
	ReadFile(filename string) ([]byte, error)
	WriteFile(filename string, data []byte, perm uint32) error
	WriteFileAtomic(filename string, data []byte, perm uint32) error
	MkdirAll(path string, perm uint32) error
	Stat(name string) (FileInfo, error)
	ReadDir(dirname string) ([]DirEntry, error)
}

// FileInfo はファイル情報のインターフェース
type FileInfo interface {
	Name() string
	IsDir() bool
	Size() int64
}

// DirEntry はディレクトリエントリのインターフェース
type DirEntry interface {
	Name() string
	IsDir() bool
}

// Lister はアーカイブのエントリ一覧を取得するインターフェースです
type Lister interface {
	List(ctx context.Context, archivePath string) ([]models.EntryInfo, error)
}

// Extractor はアーカイブからファイルを抽出するインターフェースです
type Extractor interface {
	Extract(ctx context.Context, archivePath, outputDir string, opts models.ExtractOptions) (*models.ExtractStats, error)
}

// Replacer はアーカイブ内のエントリを差し替えるインターフェースです
type Replacer interface {
	Replace(ctx context.Context, archivePath string, spec models.ReplaceSpec, opts models.ReplaceOptions) (*models.ReplaceResult, error)
	ReplaceWithIdentifier(ctx context.Context, archivePath string, spec models.ReplaceSpec, opts models.ReplaceOptions, identifier uint32) (*models.ReplaceResult, error)
	ReplaceBatch(ctx context.Context, archivePath string, specs []models.ReplaceSpec, opts models.ReplaceOptions) ([]models.ReplaceResult, error)
}

// Converter は.auと.wavの相互変換を行うインターフェースです
type Converter interface {
	AUToWAV(auPath, wavPath string, sampleRate int) error
	WAVToAU(wavPath, auPath, refAUPath string) error
}

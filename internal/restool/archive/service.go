// Package archive はresファイルに対する一覧・抽出・差し替えの
// 操作を行います。バイト列の解析と再構築はpkg/resarcが担い、
// このパッケージはファイルI/Oとポリシー（バックアップ、force、
// スキップ判断）を受け持ちます。
package archive

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/Plastique812375255/FUKMKD/internal/restool/config"
	"github.com/Plastique812375255/FUKMKD/internal/restool/errors"
	"github.com/Plastique812375255/FUKMKD/internal/restool/fileutil"
	"github.com/Plastique812375255/FUKMKD/internal/restool/interfaces"
	"github.com/Plastique812375255/FUKMKD/internal/restool/models"
	"github.com/Plastique812375255/FUKMKD/pkg/resarc"
)

// Service はresファイルの一覧・抽出・差し替えを提供します
type Service struct {
	logger *config.DebugLogger
	fs     interfaces.FileSystem
}

// NewService は新しいServiceを作成します
func NewService(logger *config.DebugLogger) *Service {
	return NewServiceWithFS(logger, fileutil.NewOSFileSystem())
}

// NewServiceWithFS は新しいServiceをファイルシステム付きで作成します
func NewServiceWithFS(logger *config.DebugLogger, fs interfaces.FileSystem) *Service {
	return &Service{
		logger: logger,
		fs:     fs,
	}
}

// open はresファイルを読み込んで解析します
func (s *Service) open(archivePath string) (*resarc.Archive, error) {
	data, err := s.fs.ReadFile(archivePath)
	if err != nil {
		return nil, errors.NewArchiveError("読み込み", archivePath, err)
	}
	if len(data) == 0 {
		return nil, errors.NewArchiveError("読み込み", archivePath, ErrEmptyFile)
	}
	arc, err := resarc.Parse(data)
	if err != nil {
		return nil, errors.NewArchiveError("解析", archivePath, fmt.Errorf("%w: %w", errors.ErrInvalidArchive, err))
	}
	return arc, nil
}

// List はアーカイブ内のエントリ情報を一覧にします。
// 無効なエントリや不連続なエントリも一覧から落とさず、状態列で報告します。
func (s *Service) List(ctx context.Context, archivePath string) ([]models.EntryInfo, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	arc, err := s.open(archivePath)
	if err != nil {
		return nil, err
	}

	s.logger.Printf("エントリ数: %d, データ領域開始位置: %d (0x%X)\n",
		arc.EntryCount(), arc.DataStart, arc.DataStart)

	infos := make([]models.EntryInfo, 0, len(arc.Entries))
	for i := range arc.Entries {
		e := &arc.Entries[i]
		info := models.EntryInfo{
			Index:      i + 1,
			Name:       e.Name,
			Size:       e.Size,
			Offset:     e.Offset,
			Reserved:   e.Reserved,
			Identifier: e.Identifier,
		}

		switch {
		case !e.Valid:
			info.Status = models.StatusOutOfRange
		case e.Discontinuity:
			info.Status = models.StatusDiscontinuous
			s.logger.Printf("警告: エントリ '%s' のオフセットが不連続です (期待値:%d 実際:%d)\n",
				e.Name, e.ExpectedOffset, e.Offset)
		default:
			info.Status = models.StatusValid
		}

		if e.Valid {
			payload, _ := arc.Payload(i)
			if info.Status == models.StatusValid && resarc.LooksEmpty(payload) {
				info.Status = models.StatusSuspectedEmpty
			}
			info.Kind = resarc.DetectPayloadKind(prefix(payload, 64)).String()
		}

		infos = append(infos, info)
	}
	return infos, nil
}

// Extract はアーカイブの全エントリを出力ディレクトリに書き出します。
func (s *Service) Extract(ctx context.Context, archivePath, outputDir string, opts models.ExtractOptions) (*models.ExtractStats, error) {
	arc, err := s.open(archivePath)
	if err != nil {
		return nil, err
	}
	if len(arc.Entries) == 0 {
		return nil, errors.NewArchiveError("抽出", archivePath, ErrNoEntries)
	}

	if err := s.fs.MkdirAll(outputDir, 0755); err != nil {
		return nil, errors.NewArchiveError("出力先作成", outputDir, err)
	}

	stats := &models.ExtractStats{}
	for i := range arc.Entries {
		select {
		case <-ctx.Done():
			return stats, ctx.Err()
		default:
		}

		e := &arc.Entries[i]
		payload, err := arc.Payload(i)
		if err != nil {
			s.logger.Printf("スキップ: %s (エントリ無効、ファイル範囲外)\n", e.Name)
			stats.Skipped++
			continue
		}

		if !opts.All && opts.SkipEmpty && resarc.LooksEmpty(payload) {
			s.logger.Printf("スキップ: %s (空の可能性)\n", e.Name)
			stats.Skipped++
			continue
		}

		outPath := filepath.Join(outputDir, fileutil.SanitizeEntryName(e.Name))
		if err := s.fs.WriteFile(outPath, payload, 0644); err != nil {
			s.logger.Printf("エラー: %s を保存できません: %v\n", e.Name, err)
			stats.Failed++
			continue
		}
		stats.Extracted++
	}
	return stats, nil
}

// Replace はアーカイブ内の1エントリを差し替えて書き戻します。
// identifierがnilでない場合は対象エントリのidentifierも更新します。
// 書き戻しはテンポラリ経由のアトミックな置き換えです。
func (s *Service) Replace(ctx context.Context, archivePath string, spec models.ReplaceSpec, opts models.ReplaceOptions) (*models.ReplaceResult, error) {
	return s.replace(ctx, archivePath, spec, opts, nil)
}

// ReplaceWithIdentifier はidentifierも明示的に差し替えるReplaceです
func (s *Service) ReplaceWithIdentifier(ctx context.Context, archivePath string, spec models.ReplaceSpec, opts models.ReplaceOptions, identifier uint32) (*models.ReplaceResult, error) {
	return s.replace(ctx, archivePath, spec, opts, &identifier)
}

func (s *Service) replace(ctx context.Context, archivePath string, spec models.ReplaceSpec, opts models.ReplaceOptions, identifier *uint32) (*models.ReplaceResult, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	if !s.fs.FileExists(spec.ReplacementFile) {
		return nil, errors.NewArchiveError("差し替え", spec.ReplacementFile, errors.ErrFileNotFound)
	}

	arc, err := s.open(archivePath)
	if err != nil {
		return nil, err
	}

	index := arc.FindEntry(spec.TargetFile)
	if index < 0 {
		return nil, errors.NewArchiveError("差し替え", archivePath,
			fmt.Errorf("%w: %s", resarc.ErrEntryNotFound, spec.TargetFile))
	}

	payload, err := s.fs.ReadFile(spec.ReplacementFile)
	if err != nil {
		return nil, errors.NewArchiveError("読み込み", spec.ReplacementFile, err)
	}

	oldSize := arc.Entries[index].Size
	sizeDiff := int64(len(payload)) - int64(oldSize)
	s.logger.Printf("元のサイズ: %d バイト, 差し替えサイズ: %d バイト (差分: %+d)\n",
		oldSize, len(payload), sizeDiff)

	// サイズが変わる差し替えはポリシーで判断する（対話確認はしない）
	if sizeDiff != 0 && !opts.Force {
		return nil, errors.NewArchiveError("差し替え", archivePath, errors.ErrSizeChanged)
	}

	result := &models.ReplaceResult{
		TargetFile: spec.TargetFile,
		OldSize:    oldSize,
		NewSize:    uint32(len(payload)),
		SizeDiff:   sizeDiff,
		Relocated:  len(arc.Entries) - index - 1,
	}

	if opts.Backup {
		backupPath, err := fileutil.BackupFile(archivePath)
		if err != nil {
			return nil, errors.NewArchiveError("バックアップ", archivePath, err)
		}
		result.BackupPath = backupPath
		s.logger.Printf("バックアップを作成しました: %s\n", backupPath)
	}

	var newData []byte
	if identifier != nil {
		newData, err = resarc.ReplaceWithIdentifier(arc, index, payload, *identifier)
	} else {
		newData, err = resarc.Replace(arc, index, payload)
	}
	if err != nil {
		return nil, errors.NewArchiveError("再構築", archivePath, err)
	}

	if err := s.fs.WriteFileAtomic(archivePath, newData, 0644); err != nil {
		return nil, errors.NewArchiveError("書き込み", archivePath, err)
	}
	return result, nil
}

// ReplaceBatch は複数の差し替えを順に適用します。
// バックアップは最初に1回だけ作成し、途中で失敗した場合はその時点までの
// 結果を返します。
func (s *Service) ReplaceBatch(ctx context.Context, archivePath string, specs []models.ReplaceSpec, opts models.ReplaceOptions) ([]models.ReplaceResult, error) {
	var results []models.ReplaceResult

	if opts.Backup {
		backupPath, err := fileutil.BackupFile(archivePath)
		if err != nil {
			return nil, errors.NewArchiveError("バックアップ", archivePath, err)
		}
		s.logger.Printf("バックアップを作成しました: %s\n", backupPath)
	}

	// 1件ずつの差し替えが次の差し替えの入力になる
	itemOpts := opts
	itemOpts.Backup = false
	for i, spec := range specs {
		s.logger.Printf("差し替え %d/%d: %s\n", i+1, len(specs), spec.TargetFile)
		result, err := s.replace(ctx, archivePath, spec, itemOpts, nil)
		if err != nil {
			return results, err
		}
		results = append(results, *result)
	}
	return results, nil
}

// prefix はスライスの先頭n バイトを返します
func prefix(data []byte, n int) []byte {
	if len(data) < n {
		return data
	}
	return data[:n]
}

// Package app はアプリケーションのメインロジックを実装します
package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/Plastique812375255/FUKMKD/internal/restool/archive"
	"github.com/Plastique812375255/FUKMKD/internal/restool/batch"
	"github.com/Plastique812375255/FUKMKD/internal/restool/config"
	"github.com/Plastique812375255/FUKMKD/internal/restool/fileutil"
	"github.com/Plastique812375255/FUKMKD/internal/restool/interfaces"
	"github.com/Plastique812375255/FUKMKD/internal/restool/models"
)

// App はアプリケーションのメインロジックを管理します
type App struct {
	config    *config.Config
	logger    *config.DebugLogger
	lister    interfaces.Lister
	extractor interfaces.Extractor
	replacer  interfaces.Replacer
	fs        interfaces.FileSystem
	out       io.Writer
	outMu     sync.Mutex // 並列処理時の出力保護
}

// Options はAppの設定オプション
type Options struct {
	FileSystem interfaces.FileSystem
	Lister     interfaces.Lister
	Extractor  interfaces.Extractor
	Replacer   interfaces.Replacer
	Output     io.Writer
}

// New は新しいAppを作成します
func New(cfg *config.Config) *App {
	return NewWithOptions(cfg, Options{})
}

// NewWithOptions は新しいAppをオプション付きで作成します
func NewWithOptions(cfg *config.Config, opts Options) *App {
	logger := config.NewDebugLogger(cfg.DebugMode)

	// デフォルトのファイルシステムを設定
	fs := opts.FileSystem
	if fs == nil {
		fs = fileutil.NewOSFileSystem()
	}

	// デフォルトのアーカイブサービスを設定
	service := archive.NewServiceWithFS(logger, fs)

	var lister interfaces.Lister = service
	if opts.Lister != nil {
		lister = opts.Lister
	}
	var extractor interfaces.Extractor = service
	if opts.Extractor != nil {
		extractor = opts.Extractor
	}
	var replacer interfaces.Replacer = service
	if opts.Replacer != nil {
		replacer = opts.Replacer
	}

	out := opts.Output
	if out == nil {
		out = os.Stdout
	}

	return &App{
		config:    cfg,
		logger:    logger,
		lister:    lister,
		extractor: extractor,
		replacer:  replacer,
		fs:        fs,
		out:       out,
	}
}

// Run はアプリケーションを実行します
func (a *App) Run(ctx context.Context) error {
	a.config.Archives = a.expandArchives()
	if len(a.config.Archives) == 0 {
		return ErrNoArchives
	}

	replaceMode := a.config.Target != "" || a.config.Replacement != ""
	batchMode := a.config.BatchConfig != ""

	switch {
	case replaceMode && batchMode:
		return ErrConflictingModes
	case replaceMode:
		if a.config.Target == "" || a.config.Replacement == "" {
			return ErrIncompleteReplace
		}
		if len(a.config.Archives) != 1 {
			return ErrReplaceMultipleArchives
		}
		return a.runReplace(ctx, a.config.Archives[0])
	case batchMode:
		if len(a.config.Archives) != 1 {
			return ErrReplaceMultipleArchives
		}
		return a.runBatch(ctx, a.config.Archives[0])
	case a.config.ExtractMode:
		return a.forEachArchive(ctx, func(ctx context.Context, path string) error {
			if a.config.ListMode {
				if err := a.runList(ctx, path); err != nil {
					return err
				}
			}
			return a.runExtract(ctx, path)
		})
	default:
		// モード指定がない場合は一覧表示
		return a.forEachArchive(ctx, a.runList)
	}
}

// expandArchives は引数のうちディレクトリを、その直下のresファイルの
// 一覧に展開します。機器のシステム領域ごとまとめて処理できるように
// するためで、ファイル指定はそのまま通します。
func (a *App) expandArchives() []string {
	var out []string
	for _, path := range a.config.Archives {
		info, err := a.fs.Stat(path)
		if err != nil || !info.IsDir() {
			out = append(out, path)
			continue
		}

		entries, err := a.fs.ReadDir(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "エラー: %s を読み取れません: %v\n", path, err)
			continue
		}
		found := false
		for _, e := range entries {
			if e.IsDir() || !fileutil.ResFilePattern.MatchString(e.Name()) {
				continue
			}
			out = append(out, filepath.Join(path, e.Name()))
			found = true
		}
		if !found {
			a.logger.Printf("%s にresファイルが見つかりません\n", path)
		}
	}
	return out
}

// forEachArchive は全アーカイブに同じ処理を適用します。
// -pが指定されていればワーカープールで並列実行します。
func (a *App) forEachArchive(ctx context.Context, fn func(context.Context, string) error) error {
	if a.config.Parallel && len(a.config.Archives) > 1 {
		return a.runParallel(ctx, fn)
	}

	var firstErr error
	for _, path := range a.config.Archives {
		if err := fn(ctx, path); err != nil {
			fmt.Fprintf(os.Stderr, "エラー: %s: %v\n", path, err)
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	return firstErr
}

// runList はアーカイブのエントリ一覧を表示します
func (a *App) runList(ctx context.Context, archivePath string) error {
	infos, err := a.lister.List(ctx, archivePath)
	if err != nil {
		return err
	}

	a.outMu.Lock()
	fmt.Fprintf(a.out, "%s: %d エントリ\n", archivePath, len(infos))
	fmt.Fprintln(a.out, "----------------------------")
	fmt.Fprintf(a.out, "%-4s %-28s %10s %10s %-12s %s\n", "No.", "ファイル名", "サイズ", "オフセット", "状態", "種別")
	fmt.Fprintln(a.out, "----------------------------")
	for _, info := range infos {
		fmt.Fprintf(a.out, "%-4d %-28s %10d %10d %-12s %s\n",
			info.Index, info.Name, info.Size, info.Offset, info.Status, info.Kind)
	}
	fmt.Fprintln(a.out, "----------------------------")
	a.outMu.Unlock()

	if a.config.WriteCSV {
		if err := a.writeCSVReport(archivePath, infos); err != nil {
			return fmt.Errorf("%w: %w", ErrWriteCSV, err)
		}
	}
	return nil
}

// writeCSVReport はエントリ一覧のCSVを出力ディレクトリに保存します
func (a *App) writeCSVReport(archivePath string, infos []models.EntryInfo) error {
	if err := a.fs.MkdirAll(a.config.OutputDir, 0755); err != nil {
		return err
	}

	var sb strings.Builder
	if err := archive.WriteListCSV(&sb, infos); err != nil {
		return err
	}

	csvPath := filepath.Join(a.config.OutputDir, csvReportName(archivePath))
	if err := a.fs.WriteFile(csvPath, []byte(sb.String()), 0644); err != nil {
		return err
	}
	a.logger.Printf("CSVレポートを保存しました: %s\n", csvPath)
	return nil
}

// csvReportName はアーカイブ名からCSVレポートのファイル名を作ります
func csvReportName(archivePath string) string {
	base := filepath.Base(archivePath)
	if ext := filepath.Ext(base); ext != "" {
		base = base[:len(base)-len(ext)]
	}
	return base + "_files_list.csv"
}

// runExtract はアーカイブの全エントリを抽出します
func (a *App) runExtract(ctx context.Context, archivePath string) error {
	outDir := a.config.OutputDir
	// 複数アーカイブの場合はアーカイブ名ごとのサブディレクトリに分ける
	if len(a.config.Archives) > 1 {
		base := filepath.Base(archivePath)
		if ext := filepath.Ext(base); ext != "" {
			base = base[:len(base)-len(ext)]
		}
		outDir = filepath.Join(outDir, base)
	}

	opts := models.ExtractOptions{
		SkipEmpty: a.config.SkipEmpty,
		All:       a.config.ExtractAll,
	}
	stats, err := a.extractor.Extract(ctx, archivePath, outDir, opts)
	if err != nil {
		return err
	}

	a.outMu.Lock()
	fmt.Fprintf(a.out, "%s: %d 個のファイルを %s に抽出しました", archivePath, stats.Extracted, outDir)
	if stats.Skipped > 0 {
		fmt.Fprintf(a.out, " (%d 個をスキップ)", stats.Skipped)
	}
	if stats.Failed > 0 {
		fmt.Fprintf(a.out, " (%d 個が失敗)", stats.Failed)
	}
	fmt.Fprintln(a.out)
	a.outMu.Unlock()

	if a.config.WriteCSV {
		infos, err := a.lister.List(ctx, archivePath)
		if err != nil {
			return err
		}
		if err := a.writeCSVReport(archivePath, infos); err != nil {
			return fmt.Errorf("%w: %w", ErrWriteCSV, err)
		}
	}
	return nil
}

// runReplace は1エントリを差し替えます
func (a *App) runReplace(ctx context.Context, archivePath string) error {
	spec := models.ReplaceSpec{
		TargetFile:      a.config.Target,
		ReplacementFile: a.config.Replacement,
	}
	opts := models.ReplaceOptions{
		Backup: a.config.Backup,
		Force:  a.config.Force,
	}

	var result *models.ReplaceResult
	var err error
	if a.config.HasIdent {
		result, err = a.replacer.ReplaceWithIdentifier(ctx, archivePath, spec, opts, uint32(a.config.Identifier))
	} else {
		result, err = a.replacer.Replace(ctx, archivePath, spec, opts)
	}
	if err != nil {
		return err
	}

	a.printReplaceResult(result)
	return nil
}

// runBatch はバッチ設定ファイルに従って複数エントリを差し替えます
func (a *App) runBatch(ctx context.Context, archivePath string) error {
	specs, err := batch.Load(a.config.BatchConfig)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBatchLoad, err)
	}
	a.logger.Printf("バッチ設定を読み込みました: %d 件\n", len(specs))

	opts := models.ReplaceOptions{
		Backup: a.config.Backup,
		Force:  a.config.Force,
	}
	results, err := a.replacer.ReplaceBatch(ctx, archivePath, specs, opts)
	for i := range results {
		a.printReplaceResult(&results[i])
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "%d 件の差し替えが完了しました\n", len(results))
	return nil
}

func (a *App) printReplaceResult(result *models.ReplaceResult) {
	fmt.Fprintf(a.out, "差し替え完了: %s (%d -> %d バイト", result.TargetFile, result.OldSize, result.NewSize)
	if result.SizeDiff != 0 {
		fmt.Fprintf(a.out, ", 後続 %d エントリのオフセットを補正", result.Relocated)
	}
	fmt.Fprint(a.out, ")\n")
	if result.BackupPath != "" {
		fmt.Fprintf(a.out, "バックアップ: %s\n", result.BackupPath)
	}
}

// Package fileutil はファイル操作のユーティリティ関数を提供します
package fileutil

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/transform"
)

var (
	// ResFilePattern は機器のシステム領域にあるresファイルのパターン
	ResFilePattern = regexp.MustCompile(`(?i)\.res$`)

	// AUFilePattern は.au音声ファイルのパターン
	AUFilePattern = regexp.MustCompile(`(?i)\.au$`)
)

// FileExists はファイルが存在するか確認します
func FileExists(filename string) bool {
	_, err := os.Stat(filename)
	return err == nil
}

// FromGBK はGBKからUTF-8に変換します
func FromGBK(str string) (string, error) {
	reader := strings.NewReader(str)
	transformer := simplifiedchinese.GBK.NewDecoder()
	ret, err := io.ReadAll(transform.NewReader(reader, transformer))
	if err != nil {
		return "", err
	}
	return string(ret), nil
}

// WriteFileAtomic はテンポラリファイルに書いてからリネームすることで、
// 途中でクラッシュしても壊れたファイルが残らないように保存します。
func WriteFileAtomic(outputPath string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(outputPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("%w: %w", ErrCreateDirectory, err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(outputPath)+".tmp*")
	if err != nil {
		return fmt.Errorf("%w: %w", ErrCreateFile, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("%w: %w", ErrWriteContent, err)
	}
	if err := tmp.Chmod(perm); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("%w: %w", ErrWriteContent, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("%w: %w", ErrWriteContent, err)
	}

	if err := os.Rename(tmpName, outputPath); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("%w: %w", ErrWriteContent, err)
	}
	return nil
}

// BackupFile は元ファイルの隣にタイムスタンプ付きの.bakコピーを作成し、
// そのパスを返します。
func BackupFile(path string) (string, error) {
	src, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrBackupFailed, err)
	}
	defer src.Close()

	backupPath := fmt.Sprintf("%s.%s.bak", path, time.Now().Format("20060102150405"))
	dst, err := os.Create(backupPath)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrBackupFailed, err)
	}

	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		os.Remove(backupPath)
		return "", fmt.Errorf("%w: %w", ErrBackupFailed, err)
	}
	if err := dst.Close(); err != nil {
		os.Remove(backupPath)
		return "", fmt.Errorf("%w: %w", ErrBackupFailed, err)
	}
	return backupPath, nil
}

// SanitizeEntryName はエントリ名を出力先のファイル名として安全な形に
// 整えます。アーカイブのエントリ名に含まれるパス区切りで出力ディレクトリ
// の外に書き出さないようにします。
func SanitizeEntryName(name string) string {
	name = strings.ReplaceAll(name, "\\", "/")
	name = filepath.Base(filepath.Clean("/" + name))
	if name == "/" || name == "." || name == "" {
		return "_unnamed"
	}
	return name
}

// Package batch は一括差し替え用の設定ファイル（CSVまたはJSON）を
// 解析します。
//
// CSV形式: target_file, replacement_file のヘッダ行を持つ表
// JSON形式: {"target_file": ..., "replacement_file": ...} の配列
package batch

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/Plastique812375255/FUKMKD/internal/restool/fileutil"
	"github.com/Plastique812375255/FUKMKD/internal/restool/models"
)

// ParseCSV はCSV形式の差し替え設定を解析します。
// target_file と replacement_file の2列が必須で、列順は問いません。
func ParseCSV(r io.Reader) ([]models.ReplaceSpec, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, ErrEmptyConfig
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParseFailure, err)
	}

	targetCol, replCol := -1, -1
	for i, name := range header {
		switch strings.TrimSpace(name) {
		case "target_file":
			targetCol = i
		case "replacement_file":
			replCol = i
		}
	}
	if targetCol < 0 || replCol < 0 {
		return nil, fmt.Errorf("%w: target_file と replacement_file の列が必要です", ErrMissingField)
	}

	var specs []models.ReplaceSpec
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrParseFailure, err)
		}
		if targetCol >= len(record) || replCol >= len(record) {
			continue
		}
		spec := models.ReplaceSpec{
			TargetFile:      decodeField(strings.TrimSpace(record[targetCol])),
			ReplacementFile: decodeField(strings.TrimSpace(record[replCol])),
		}
		if spec.TargetFile == "" || spec.ReplacementFile == "" {
			continue
		}
		specs = append(specs, spec)
	}

	if len(specs) == 0 {
		return nil, ErrEmptyConfig
	}
	return specs, nil
}

// decodeField は機器付属ツールが書き出すGBKエンコードのCSVに対応する
// ため、UTF-8として不正なフィールドをGBKとして解読し直します。
// 変換できない場合は元の値のまま返します。
func decodeField(s string) string {
	if utf8.ValidString(s) {
		return s
	}
	decoded, err := fileutil.FromGBK(s)
	if err != nil {
		return s
	}
	return decoded
}

// ParseJSON はJSON形式の差し替え設定を解析します。
func ParseJSON(r io.Reader) ([]models.ReplaceSpec, error) {
	var specs []models.ReplaceSpec
	if err := json.NewDecoder(r).Decode(&specs); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParseFailure, err)
	}

	valid := specs[:0]
	for _, spec := range specs {
		if spec.TargetFile == "" || spec.ReplacementFile == "" {
			continue
		}
		valid = append(valid, spec)
	}
	if len(valid) == 0 {
		return nil, ErrEmptyConfig
	}
	return valid, nil
}

// Load は拡張子から形式を判断して設定ファイルを読み込みます。
func Load(path string) ([]models.ReplaceSpec, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return ParseCSV(f)
	case ".json":
		return ParseJSON(f)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

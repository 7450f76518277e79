// Package audio はresアーカイブに格納される.au音声と標準WAVの
// 相互変換を行います。
//
// .auのサンプリングレートはビットストリームに含まれないため、
// AU→WAV変換では呼び出し側が指定した値（省略時は8000Hz）を使います。
// WAV→AU変換では、先頭16バイトの不透明ヘッダを参照用.auファイルから
// 引き継ぐか、既定値を使います。
package audio

import (
	"encoding/csv"
	"encoding/hex"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/Plastique812375255/FUKMKD/internal/restool/config"
	"github.com/Plastique812375255/FUKMKD/internal/restool/errors"
	"github.com/Plastique812375255/FUKMKD/internal/restool/fileutil"
	"github.com/Plastique812375255/FUKMKD/internal/restool/interfaces"
	"github.com/Plastique812375255/FUKMKD/internal/restool/models"
	"github.com/Plastique812375255/FUKMKD/internal/restool/wav"
	"github.com/Plastique812375255/FUKMKD/pkg/adpcm"
)

// DefaultSampleRate は.auのサンプリングレートが不明な場合の既定値です
const DefaultSampleRate = 8000

// Converter は.auとWAVの相互変換を行います
type Converter struct {
	logger *config.DebugLogger
	fs     interfaces.FileSystem
}

// NewConverter は新しいConverterを作成します
func NewConverter(logger *config.DebugLogger) *Converter {
	return NewConverterWithFS(logger, fileutil.NewOSFileSystem())
}

// NewConverterWithFS は新しいConverterをファイルシステム付きで作成します
func NewConverterWithFS(logger *config.DebugLogger, fs interfaces.FileSystem) *Converter {
	return &Converter{
		logger: logger,
		fs:     fs,
	}
}

// AUToWAV は.auファイルをWAVファイルに変換します。
// sampleRateが0以下の場合はDefaultSampleRateを使います。
func (c *Converter) AUToWAV(auPath, wavPath string, sampleRate int) error {
	if sampleRate <= 0 {
		sampleRate = DefaultSampleRate
	}

	data, err := c.fs.ReadFile(auPath)
	if err != nil {
		return errors.NewConvertError(auPath, err)
	}

	header, encoded, err := adpcm.SplitAU(data)
	if err != nil {
		return errors.NewConvertError(auPath, err)
	}
	c.logger.Printf("auヘッダ: %s\n", hex.EncodeToString(header[:]))

	samples := adpcm.Decode(encoded)
	c.logger.Printf("デコード: %dバイト → %dサンプル (%dHz)\n", len(encoded), len(samples), sampleRate)

	if err := c.fs.WriteFileAtomic(wavPath, wav.Encode(samples, sampleRate), 0644); err != nil {
		return errors.NewConvertError(wavPath, err)
	}
	return nil
}

// WAVToAU はWAVファイルを.auファイルに変換します。
// refAUPathが指定されている場合、そのファイルの先頭16バイトをヘッダと
// して引き継ぎます。空の場合は既定ヘッダを使います。
func (c *Converter) WAVToAU(wavPath, auPath, refAUPath string) error {
	data, err := c.fs.ReadFile(wavPath)
	if err != nil {
		return errors.NewConvertError(wavPath, err)
	}

	samples, rate, err := wav.Decode(data)
	if err != nil {
		return errors.NewConvertError(wavPath, err)
	}
	c.logger.Printf("入力WAV: %dサンプル (%dHz)\n", len(samples), rate)

	header := adpcm.DefaultAUHeader
	if refAUPath != "" {
		refData, err := c.fs.ReadFile(refAUPath)
		if err != nil {
			return errors.NewConvertError(refAUPath, err)
		}
		header, _, err = adpcm.SplitAU(refData)
		if err != nil {
			return errors.NewConvertError(refAUPath, err)
		}
		c.logger.Printf("参照ヘッダを引き継ぎます: %s\n", hex.EncodeToString(header[:]))
	}

	out := adpcm.JoinAU(header, adpcm.Encode(samples))
	if err := c.fs.WriteFileAtomic(auPath, out, 0644); err != nil {
		return errors.NewConvertError(auPath, err)
	}
	return nil
}

// ConvertDir はディレクトリ内のすべての.auファイルをWAVに変換し、
// 各ファイルのヘッダを記録したfile_headers.csvを出力先に書き出します。
func (c *Converter) ConvertDir(srcDir, dstDir string, sampleRate int) ([]models.ConvertResult, error) {
	entries, err := c.fs.ReadDir(srcDir)
	if err != nil {
		return nil, errors.NewConvertError(srcDir, err)
	}
	if err := c.fs.MkdirAll(dstDir, 0755); err != nil {
		return nil, errors.NewConvertError(dstDir, err)
	}

	var results []models.ConvertResult
	for _, entry := range entries {
		if entry.IsDir() || !fileutil.AUFilePattern.MatchString(entry.Name()) {
			continue
		}

		auPath := filepath.Join(srcDir, entry.Name())
		wavName := entry.Name()[:len(entry.Name())-len(".au")] + ".wav"
		wavPath := filepath.Join(dstDir, wavName)

		data, err := c.fs.ReadFile(auPath)
		if err != nil {
			return results, errors.NewConvertError(auPath, err)
		}
		header, _, err := adpcm.SplitAU(data)
		if err != nil {
			c.logger.Printf("スキップ: %s (%v)\n", entry.Name(), err)
			continue
		}

		if err := c.AUToWAV(auPath, wavPath, sampleRate); err != nil {
			return results, err
		}

		results = append(results, models.ConvertResult{
			Input:     entry.Name(),
			Output:    wavName,
			HeaderHex: hex.EncodeToString(header[:]),
		})
	}

	if len(results) > 0 {
		if err := c.writeHeaderReport(filepath.Join(dstDir, "file_headers.csv"), results); err != nil {
			return results, err
		}
	}
	return results, nil
}

// writeHeaderReport は変換した各.auのヘッダ一覧をCSVに書き出します
func (c *Converter) writeHeaderReport(path string, results []models.ConvertResult) error {
	var sb strings.Builder
	writer := csv.NewWriter(&sb)

	if err := writer.Write([]string{"文件名", "文件头(十六进制)"}); err != nil {
		return errors.NewConvertError(path, err)
	}
	for _, r := range results {
		if err := writer.Write([]string{r.Input, r.HeaderHex}); err != nil {
			return errors.NewConvertError(path, err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return errors.NewConvertError(path, err)
	}

	if err := c.fs.WriteFile(path, []byte(sb.String()), 0644); err != nil {
		return errors.NewConvertError(path, err)
	}
	c.logger.Printf("ヘッダ一覧を保存しました: %s\n", path)
	return nil
}

// EntryToWAV はアーカイブから取り出した.auペイロードをそのままWAVの
// バイト列に変換します。アーカイブを展開せずに音を確認したい場合用です。
func EntryToWAV(payload []byte, sampleRate int) ([]byte, error) {
	if sampleRate <= 0 {
		sampleRate = DefaultSampleRate
	}
	_, encoded, err := adpcm.SplitAU(payload)
	if err != nil {
		return nil, fmt.Errorf("auペイロードを解釈できません: %w", err)
	}
	return wav.Encode(adpcm.Decode(encoded), sampleRate), nil
}

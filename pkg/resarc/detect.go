package resarc

import "bytes"

// PayloadKind はペイロードの推定種別です
type PayloadKind int

const (
	// KindUnknown は判別できなかった場合の明示的な「不明」
	KindUnknown PayloadKind = iota
	KindWAV
	KindRIFF
	KindBMP
	KindPNG
	KindJPEG
	KindGIF
	KindAU
	KindText
	KindEmpty
)

// String は種別の表示名を返します。
func (k PayloadKind) String() string {
	switch k {
	case KindWAV:
		return "WAV音声"
	case KindRIFF:
		return "RIFFファイル"
	case KindBMP:
		return "BMP画像"
	case KindPNG:
		return "PNG画像"
	case KindJPEG:
		return "JPEG画像"
	case KindGIF:
		return "GIF画像"
	case KindAU:
		return "AU音声"
	case KindText:
		return "テキスト"
	case KindEmpty:
		return "空"
	default:
		return "不明"
	}
}

// DetectPayloadKind はペイロード先頭のマジックバイトから種別を推定する
// 純粋な分類関数です。判別できない場合は必ずKindUnknownを返します。
func DetectPayloadKind(prefix []byte) PayloadKind {
	if len(prefix) == 0 {
		return KindEmpty
	}

	switch {
	case bytes.HasPrefix(prefix, []byte("RIFF")):
		if len(prefix) >= 12 && bytes.Equal(prefix[8:12], []byte("WAVE")) {
			return KindWAV
		}
		return KindRIFF
	case bytes.HasPrefix(prefix, []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}):
		return KindPNG
	case bytes.HasPrefix(prefix, []byte{0xFF, 0xD8}):
		return KindJPEG
	case bytes.HasPrefix(prefix, []byte("GIF87a")), bytes.HasPrefix(prefix, []byte("GIF89a")):
		return KindGIF
	case bytes.HasPrefix(prefix, []byte("BM")):
		return KindBMP
	case bytes.HasPrefix(prefix, []byte(".snd")):
		return KindAU
	}

	if isPrintable(prefix) {
		return KindText
	}
	return KindUnknown
}

// isPrintable は先頭32バイトまでが印字可能ASCIIかどうかを確認します。
func isPrintable(data []byte) bool {
	n := len(data)
	if n > 32 {
		n = 32
	}
	for _, b := range data[:n] {
		if (b < 32 || b > 126) && b != '\t' && b != '\n' && b != '\r' {
			return false
		}
	}
	return true
}

// LooksEmpty はペイロードが空か単一バイトの繰り返しで埋まっている
// 可能性が高いかどうかを判定します。実機のアーカイブにはテーブルに
// 名前だけ残っていて中身が存在しないエントリがあるため、抽出時の
// スキップ判断に使います。
func LooksEmpty(payload []byte) bool {
	if len(payload) == 0 {
		return true
	}
	n := len(payload)
	if n > 64 {
		n = 64
	}
	first := payload[0]
	for _, b := range payload[1:n] {
		if b != first {
			return false
		}
	}
	return true
}

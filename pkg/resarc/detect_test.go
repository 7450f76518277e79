package resarc

import (
	"bytes"
	"testing"
)

func TestDetectPayloadKind(t *testing.T) {
	tests := []struct {
		name   string
		prefix []byte
		want   PayloadKind
	}{
		{"WAV", append([]byte("RIFF\x24\x08\x00\x00WAVE"), []byte("fmt ")...), KindWAV},
		{"WAVE無しRIFF", []byte("RIFF\x00\x00\x00\x00AVI "), KindRIFF},
		{"短いRIFF", []byte("RIFF\x01"), KindRIFF},
		{"PNG", []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0}, KindPNG},
		{"JPEG", []byte{0xFF, 0xD8, 0xFF, 0xE0}, KindJPEG},
		{"GIF87a", []byte("GIF87a...."), KindGIF},
		{"GIF89a", []byte("GIF89a...."), KindGIF},
		{"BMP", []byte{'B', 'M', 0x36, 0x00}, KindBMP},
		{"AU", []byte(".snd\x00\x00\x00\x18"), KindAU},
		{"テキスト", []byte("hello, world\n"), KindText},
		{"不明", []byte{0x10, 0x90, 0x00, 0x00}, KindUnknown},
		{"空", nil, KindEmpty},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DetectPayloadKind(tt.prefix); got != tt.want {
				t.Errorf("DetectPayloadKind() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPayloadKind_String(t *testing.T) {
	// 全種別が空でない表示名を持つこと
	kinds := []PayloadKind{
		KindUnknown, KindWAV, KindRIFF, KindBMP, KindPNG,
		KindJPEG, KindGIF, KindAU, KindText, KindEmpty,
	}
	for _, k := range kinds {
		if k.String() == "" {
			t.Errorf("PayloadKind(%d).String() が空です", k)
		}
	}
}

func TestLooksEmpty(t *testing.T) {
	tests := []struct {
		name    string
		payload []byte
		want    bool
	}{
		{"空", nil, true},
		{"全ゼロ", make([]byte, 100), true},
		{"同一バイト", bytes.Repeat([]byte{0xFF}, 32), true},
		{"先頭64バイトが同一", append(bytes.Repeat([]byte{0xAA}, 64), 0x01), true},
		{"通常データ", []byte("RIFF1234"), false},
		{"2バイト目で変化", []byte{0x00, 0x01}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := LooksEmpty(tt.payload); got != tt.want {
				t.Errorf("LooksEmpty() = %v, want %v", got, tt.want)
			}
		})
	}
}

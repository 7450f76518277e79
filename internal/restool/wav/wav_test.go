package wav

import (
	"encoding/binary"
	"errors"
	"testing"
)

func TestEncodeDecode_RoundTrip(t *testing.T) {
	samples := []int16{0, 100, -100, 32767, -32768, 42}

	data := Encode(samples, 8000)
	back, rate, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if rate != 8000 {
		t.Errorf("rate = %d, want 8000", rate)
	}
	if len(back) != len(samples) {
		t.Fatalf("len(back) = %d, want %d", len(back), len(samples))
	}
	for i := range samples {
		if back[i] != samples[i] {
			t.Errorf("back[%d] = %d, want %d", i, back[i], samples[i])
		}
	}
}

func TestEncode_Header(t *testing.T) {
	data := Encode([]int16{1, 2}, 44100)

	if string(data[0:4]) != "RIFF" || string(data[8:12]) != "WAVE" {
		t.Fatalf("ヘッダ = % x", data[:12])
	}
	if got := binary.LittleEndian.Uint32(data[4:8]); got != uint32(36+4) {
		t.Errorf("RIFFサイズ = %d, want 40", got)
	}
	// fmt チャンク: PCM、モノラル、16bit
	if got := binary.LittleEndian.Uint16(data[20:22]); got != 1 {
		t.Errorf("format = %d, want 1", got)
	}
	if got := binary.LittleEndian.Uint16(data[22:24]); got != 1 {
		t.Errorf("channels = %d, want 1", got)
	}
	if got := binary.LittleEndian.Uint32(data[24:28]); got != 44100 {
		t.Errorf("sampleRate = %d, want 44100", got)
	}
	if got := binary.LittleEndian.Uint16(data[34:36]); got != 16 {
		t.Errorf("bits = %d, want 16", got)
	}
}

func TestDecode_Errors(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want error
	}{
		{"短すぎる", []byte("RIFF"), ErrNotWAV},
		{"RIFFでない", make([]byte, 44), ErrNotWAV},
		{"チャンク無し", []byte("RIFF\x04\x00\x00\x00WAVE"), ErrNotWAV},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := Decode(tt.data)
			if !errors.Is(err, tt.want) {
				t.Errorf("Decode() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestDecode_StereoRejected(t *testing.T) {
	data := Encode([]int16{1, 2, 3}, 8000)
	// channelsフィールドを2に書き換える
	binary.LittleEndian.PutUint16(data[22:24], 2)

	_, _, err := Decode(data)
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("Decode() error = %v, want ErrUnsupportedFormat", err)
	}
}

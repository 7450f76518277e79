// Package wav はモノラル16bit PCM限定の最小限のRIFF/WAVEコンテナを
// 提供します。.au変換で必要になる形だけを扱い、それ以外のWAVは
// エラーにします。
//
// サンプリングレートはコーデックのビットストリームに含まれないため、
// 変換時に呼び出し側から与えられた値をヘッダに書き込みます。
package wav

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
)

const (
	headerSize = 44

	numChannels   = 1
	bitsPerSample = 16
)

var (
	// ErrNotWAV はRIFF/WAVEヘッダを持たないデータの場合のエラー
	ErrNotWAV = errors.New("WAVファイルではありません")

	// ErrUnsupportedFormat はモノラル16bit PCM以外のWAVの場合のエラー
	ErrUnsupportedFormat = errors.New("モノラル16bit PCMのWAVのみサポートしています")

	// ErrTruncated はチャンクが途中で切れている場合のエラー
	ErrTruncated = errors.New("WAVデータが不完全です")
)

// Encode はPCMサンプル列をWAVファイルのバイト列にします。
func Encode(samples []int16, sampleRate int) []byte {
	dataLen := len(samples) * 2
	out := make([]byte, 0, headerSize+dataLen)

	byteRate := sampleRate * numChannels * bitsPerSample / 8
	blockAlign := numChannels * bitsPerSample / 8

	out = append(out, "RIFF"...)
	out = binary.LittleEndian.AppendUint32(out, uint32(36+dataLen))
	out = append(out, "WAVE"...)

	out = append(out, "fmt "...)
	out = binary.LittleEndian.AppendUint32(out, 16)
	out = binary.LittleEndian.AppendUint16(out, 1) // PCM
	out = binary.LittleEndian.AppendUint16(out, numChannels)
	out = binary.LittleEndian.AppendUint32(out, uint32(sampleRate))
	out = binary.LittleEndian.AppendUint32(out, uint32(byteRate))
	out = binary.LittleEndian.AppendUint16(out, uint16(blockAlign))
	out = binary.LittleEndian.AppendUint16(out, bitsPerSample)

	out = append(out, "data"...)
	out = binary.LittleEndian.AppendUint32(out, uint32(dataLen))
	for _, s := range samples {
		out = binary.LittleEndian.AppendUint16(out, uint16(s))
	}
	return out
}

// Decode はWAVファイルのバイト列からPCMサンプル列とサンプリングレートを
// 取り出します。fmt チャンクがモノラル16bit PCMでない場合は
// ErrUnsupportedFormatを返します。
func Decode(data []byte) ([]int16, int, error) {
	if len(data) < 12 || !bytes.Equal(data[0:4], []byte("RIFF")) || !bytes.Equal(data[8:12], []byte("WAVE")) {
		return nil, 0, ErrNotWAV
	}

	var sampleRate int
	var fmtSeen bool
	var pcm []byte

	// チャンクを順に走査してfmt とdataを探す
	pos := 12
	for pos+8 <= len(data) {
		id := string(data[pos : pos+4])
		size := int(binary.LittleEndian.Uint32(data[pos+4 : pos+8]))
		body := pos + 8
		if size < 0 || body+size > len(data) {
			return nil, 0, fmt.Errorf("%w: %sチャンクのサイズ %d", ErrTruncated, id, size)
		}

		switch id {
		case "fmt ":
			if size < 16 {
				return nil, 0, fmt.Errorf("%w: fmt チャンクが%dバイト", ErrTruncated, size)
			}
			audioFormat := binary.LittleEndian.Uint16(data[body : body+2])
			channels := binary.LittleEndian.Uint16(data[body+2 : body+4])
			sampleRate = int(binary.LittleEndian.Uint32(data[body+4 : body+8]))
			bits := binary.LittleEndian.Uint16(data[body+14 : body+16])
			if audioFormat != 1 || channels != numChannels || bits != bitsPerSample {
				return nil, 0, fmt.Errorf("%w (format=%d, channels=%d, bits=%d)",
					ErrUnsupportedFormat, audioFormat, channels, bits)
			}
			fmtSeen = true
		case "data":
			pcm = data[body : body+size]
		}

		// チャンクは2バイト境界に整列される
		pos = body + size
		if size%2 != 0 {
			pos++
		}
	}

	if !fmtSeen || pcm == nil {
		return nil, 0, fmt.Errorf("%w: fmt またはdataチャンクがありません", ErrNotWAV)
	}

	samples := make([]int16, len(pcm)/2)
	for i := range samples {
		samples[i] = int16(binary.LittleEndian.Uint16(pcm[i*2 : i*2+2]))
	}
	return samples, sampleRate, nil
}

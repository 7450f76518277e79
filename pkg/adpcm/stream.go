package adpcm

import "errors"

// AUHeaderSize は.auコンテナの先頭に置かれるヘッダのサイズです。
// ヘッダの中身は未解明のため、不透明なバイト列としてそのまま
// 引き回します。
const AUHeaderSize = 16

// ErrShortAU は.auデータがヘッダ分に満たない場合のエラー
var ErrShortAU = errors.New("auデータが短すぎます（ヘッダ16バイト未満）")

// DefaultAUHeader は参照用の.auファイルが無い場合に使うヘッダです。
// 実機から取り出したファイルの典型値で、意味は確認されていません。
var DefaultAUHeader = [AUHeaderSize]byte{
	0x10, 0x90, 0x00, 0x00,
	0x00, 0x10, 0x09, 0x19,
	0x00, 0x00, 0x00, 0x09,
	0x11, 0x09, 0x91, 0x90,
}

// Decode はビットストリーム全体を16bitリニアPCMにデコードします。
// 状態はゼロから始まり、1バイトにつき上位ニブル・下位ニブルの順で
// 2サンプルを生成します。結果の長さは常に 2*len(src) です。
func Decode(src []byte) []int16 {
	samples := make([]int16, 0, len(src)*2)
	var st State
	var s int16
	for _, b := range src {
		s, st = DecodeStep((b>>4)&0x0F, st)
		samples = append(samples, s)
		s, st = DecodeStep(b&0x0F, st)
		samples = append(samples, s)
	}
	return samples
}

// Encode は16bitリニアPCMをビットストリームにエンコードします。
// サンプルを2個ずつ消費して1バイトを出力し、奇数個の場合は最後の
// 下位ニブルを0で埋めます。
func Encode(samples []int16) []byte {
	out := make([]byte, 0, (len(samples)+1)/2)
	var st State
	for i := 0; i < len(samples); i += 2 {
		var hi, lo byte
		hi, st = EncodeStep(samples[i], st)
		if i+1 < len(samples) {
			lo, st = EncodeStep(samples[i+1], st)
		}
		out = append(out, hi<<4|lo)
	}
	return out
}

// SplitAU は.auデータを不透明ヘッダとエンコード済みビットストリームに
// 分離します。
func SplitAU(data []byte) (header [AUHeaderSize]byte, encoded []byte, err error) {
	if len(data) < AUHeaderSize {
		return header, nil, ErrShortAU
	}
	copy(header[:], data[:AUHeaderSize])
	return header, data[AUHeaderSize:], nil
}

// JoinAU はヘッダとビットストリームを結合して.auデータを作ります。
func JoinAU(header [AUHeaderSize]byte, encoded []byte) []byte {
	out := make([]byte, 0, AUHeaderSize+len(encoded))
	out = append(out, header[:]...)
	return append(out, encoded...)
}

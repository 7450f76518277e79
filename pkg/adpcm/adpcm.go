// Package adpcm は組み込み機器のresアーカイブに格納される適応差分PCM
// (ADPCM) コーデックを提供します。
//
// 主な機能:
//   - DecodeStep / EncodeStep: 1ニブル単位のステートフルな変換
//   - Decode / Encode: ビットストリーム全体と16bitリニアPCMの相互変換
//   - SplitAU / JoinAU: .auコンテナの不透明ヘッダの分離・結合
//
// 1バイトには2サンプル（上位ニブルが先）が詰められます。ステートは
// State 値として明示的に受け渡しされ、パッケージ内に隠れた共有状態は
// ありません。
package adpcm

// stepSizeTable は適応量子化のステップサイズテーブルです。
// 89エントリの固定値で、再生成・近似してはいけません。
var stepSizeTable = [89]int{
	7, 8, 9, 10, 11, 12, 13, 14, 16, 17, 19, 21, 23, 25, 28, 31, 34,
	37, 41, 45, 50, 55, 60, 66, 73, 80, 88, 97, 107, 118, 130, 143,
	157, 173, 190, 209, 230, 253, 279, 307, 337, 371, 408, 449, 494,
	544, 598, 658, 724, 796, 876, 963, 1060, 1166, 1282, 1411, 1552,
	1707, 1878, 2066, 2272, 2499, 2749, 3024, 3327, 3660, 4026,
	4428, 4871, 5358, 5894, 6484, 7132, 7845, 8630, 9493, 10442,
	11487, 12635, 13899, 15289, 16818, 18500, 20350, 22385, 24623,
	27086, 29794, 32767,
}

// stepIndexTable はニブルの下位3bitで引くステップインデックスの増分です。
var stepIndexTable = [8]int{-1, -1, -1, -1, 2, 4, 6, 8}

// State はコーデックの状態です。独立したデコード・エンコードの開始時は
// ゼロ値 (Predictor=0, StepIndex=0) から始めます。
type State struct {
	Predictor int16
	StepIndex int
}

// clampPredictor は予測値を16bit符号付きの範囲に制限します。
func clampPredictor(v int) int16 {
	if v > 32767 {
		return 32767
	}
	if v < -32768 {
		return -32768
	}
	return int16(v)
}

// advanceIndex はニブルに応じてステップインデックスを更新します。
func advanceIndex(index int, nibble byte) int {
	index += stepIndexTable[nibble&7]
	if index < 0 {
		return 0
	}
	if index > 88 {
		return 88
	}
	return index
}

// DecodeStep は1ニブルをデコードしてPCMサンプルと次の状態を返します。
func DecodeStep(nibble byte, st State) (int16, State) {
	step := stepSizeTable[st.StepIndex]

	diff := step >> 3
	if nibble&1 != 0 {
		diff += step >> 2
	}
	if nibble&2 != 0 {
		diff += step >> 1
	}
	if nibble&4 != 0 {
		diff += step
	}
	if nibble&8 != 0 {
		diff = -diff
	}

	st.Predictor = clampPredictor(int(st.Predictor) + diff)
	st.StepIndex = advanceIndex(st.StepIndex, nibble)
	return st.Predictor, st
}

// EncodeStep は1サンプルをエンコードしてニブルと次の状態を返します。
// DecodeStep の逆方向で、量子化された差分で予測値を更新します。
func EncodeStep(sample int16, st State) (byte, State) {
	diff := int(sample) - int(st.Predictor)

	var nibble byte
	if diff < 0 {
		nibble = 8
		diff = -diff
	}

	step := stepSizeTable[st.StepIndex]
	delta := step >> 3

	if diff >= step {
		nibble |= 4
		diff -= step
		delta += step
	}
	step >>= 1
	if diff >= step {
		nibble |= 2
		diff -= step
		delta += step
	}
	step >>= 1
	if diff >= step {
		nibble |= 1
		delta += step
	}

	if nibble&8 != 0 {
		st.Predictor = clampPredictor(int(st.Predictor) - delta)
	} else {
		st.Predictor = clampPredictor(int(st.Predictor) + delta)
	}
	st.StepIndex = advanceIndex(st.StepIndex, nibble)
	return nibble, st
}

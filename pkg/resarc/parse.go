package resarc

import (
	"encoding/binary"
	"fmt"
)

// Parse はresアーカイブのバイト列を解析します。
//
// ヘッダが宣言するテーブルがファイルに収まらない場合はErrTruncatedTable
// で失敗します。個々のエントリの異常（範囲外、オフセット不連続）は
// エントリに記録されるだけで、解析は最後まで続行されます。どう扱うかは
// 呼び出し側が決めます。
func Parse(data []byte) (*Archive, error) {
	if len(data) < HeaderSize {
		return nil, fmt.Errorf("%w: ヘッダ4バイトが読めません (ファイルサイズ %d)", ErrTruncatedTable, len(data))
	}

	entryCount := binary.BigEndian.Uint32(data[:HeaderSize])

	// entry_countが巨大な値の場合にオーバーフローしないよう64bitで計算
	dataStart := int64(HeaderSize) + int64(entryCount)*EntrySize
	if dataStart > int64(len(data)) {
		return nil, fmt.Errorf("%w: %dエントリ分のテーブルに%dバイト必要ですが%dバイトしかありません",
			ErrTruncatedTable, entryCount, dataStart, len(data))
	}

	arc := &Archive{
		Entries:   make([]Entry, 0, entryCount),
		DataStart: int(dataStart),
		Data:      data[dataStart:],
	}

	pos := HeaderSize
	var expected uint32
	for i := uint32(0); i < entryCount; i++ {
		record := data[pos : pos+EntrySize]

		var e Entry
		copy(e.RawName[:], record[:NameSize])
		e.Name = decodeName(record[:NameSize])
		e.Reserved = binary.BigEndian.Uint32(record[28:32])
		e.Size = binary.BigEndian.Uint32(record[32:36])
		e.Offset = binary.BigEndian.Uint32(record[36:40])
		e.Identifier = binary.BigEndian.Uint32(record[40:44])

		// ペイロード範囲の検証
		end := dataStart + int64(e.Offset) + int64(e.Size)
		e.Valid = end <= int64(len(data))

		// 連続配置の検証（警告扱い）
		e.ExpectedOffset = expected
		e.Discontinuity = e.Offset != expected
		expected = e.Offset + e.Size

		arc.Entries = append(arc.Entries, e)
		pos += EntrySize
	}

	return arc, nil
}

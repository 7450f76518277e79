package resarc

import (
	"encoding/binary"
	"fmt"
)

// Replace は指定インデックスのエントリのペイロードを差し替えた新しい
// アーカイブのバイト列を生成します。
//
// ペイロードのサイズが変わる場合、対象以降の全エントリのオフセットが
// その差分だけ付け替えられます。対象より前のエントリは一切変更されず、
// reservedとidentifierは全エントリで元の値のまま書き戻されます。
// アーカイブの再構築は常に全体の書き直しで、部分更新はありません。
func Replace(arc *Archive, index int, payload []byte) ([]byte, error) {
	return rebuild(arc, index, payload, nil)
}

// ReplaceWithIdentifier はidentifierフィールドも明示的に差し替える
// Replaceです。identifierの生成規則が未解明のため、ライブラリは値を
// 推測せず、呼び出し側から与えられた場合のみ書き換えます。
func ReplaceWithIdentifier(arc *Archive, index int, payload []byte, identifier uint32) ([]byte, error) {
	return rebuild(arc, index, payload, &identifier)
}

// ReplaceByName は名前でエントリを特定してReplaceします。
// 名前の比較は大文字小文字を区別しません。
func ReplaceByName(arc *Archive, name string, payload []byte) ([]byte, error) {
	index := arc.FindEntry(name)
	if index < 0 {
		return nil, fmt.Errorf("%w: %s", ErrEntryNotFound, name)
	}
	return Replace(arc, index, payload)
}

func rebuild(arc *Archive, index int, payload []byte, identifier *uint32) ([]byte, error) {
	if index < 0 || index >= len(arc.Entries) {
		return nil, fmt.Errorf("%w: インデックス %d (エントリ数 %d)", ErrEntryNotFound, index, len(arc.Entries))
	}

	// 対象以外のペイロードは元データから読み直すため、差し替え対象外に
	// 無効なエントリがあると再構築できない
	for i := range arc.Entries {
		if i != index && !arc.Entries[i].Valid {
			return nil, fmt.Errorf("%w: エントリ %d (%s) のデータを読み出せないため再構築できません",
				ErrOutOfRange, i, arc.Entries[i].Name)
		}
	}

	sizeDiff := int64(len(payload)) - int64(arc.Entries[index].Size)

	// テーブルを複製して対象のサイズと後続のオフセットを更新
	entries := make([]Entry, len(arc.Entries))
	copy(entries, arc.Entries)
	entries[index].Size = uint32(len(payload))
	if identifier != nil {
		entries[index].Identifier = *identifier
	}
	for i := index + 1; i < len(entries); i++ {
		newOffset := int64(entries[i].Offset) + sizeDiff
		if newOffset < 0 {
			return nil, fmt.Errorf("%w: エントリ %d (%s) のオフセットが負になります",
				ErrOutOfRange, i, entries[i].Name)
		}
		entries[i].Offset = uint32(newOffset)
	}

	// ヘッダ＋テーブル
	capacity := int64(HeaderSize) + int64(len(entries))*EntrySize + int64(len(arc.Data)) + sizeDiff
	if capacity < int64(HeaderSize) {
		capacity = int64(HeaderSize)
	}
	out := make([]byte, 0, capacity)
	out = binary.BigEndian.AppendUint32(out, uint32(len(entries)))
	for i := range entries {
		out = appendEntry(out, &entries[i])
	}

	// データ領域をテーブル順に再構築する。エントリの宣言オフセットが
	// 書き込み位置より先にある場合は、元ファイルにあった隙間を保って
	// ゼロ埋めする
	cur := int64(0)
	for i := range entries {
		if gap := int64(entries[i].Offset) - cur; gap > 0 {
			out = append(out, make([]byte, gap)...)
			cur += gap
		}
		var body []byte
		if i == index {
			body = payload
		} else {
			src := &arc.Entries[i]
			body = arc.Data[src.Offset : src.Offset+src.Size]
		}
		out = append(out, body...)
		cur += int64(len(body))
	}

	return out, nil
}

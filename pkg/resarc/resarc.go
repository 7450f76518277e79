// Package resarc は組み込み機器のresアーカイブファイルを読み書きする
// ためのパッケージです。
//
// resアーカイブの構造（全てビッグエンディアン）:
//
//	オフセット 0: entry_count (u32)
//	オフセット 4: entry_count × 44バイトのエントリテーブル
//	  [0..28)  ファイル名（NUL終端、ゼロ埋め）
//	  [28..32) reserved (u32)
//	  [32..36) size (u32)
//	  [36..40) offset (u32、データ領域先頭からの相対値)
//	  [40..44) identifier (u32)
//	オフセット 4 + entry_count*44: データ領域
//
// reservedとidentifierの意味は未解明のため、値をそのまま往復させます。
//
// 基本的な使い方:
//
//	arc, err := resarc.Parse(data)
//	if err != nil {
//	    return err
//	}
//	for i := range arc.Entries {
//	    payload, err := arc.Payload(i)
//	    // エントリを処理...
//	}
package resarc

import (
	"bytes"
	"encoding/binary"

	"golang.org/x/text/encoding/simplifiedchinese"
)

// resアーカイブ形式の定数
const (
	// HeaderSize はファイル先頭のentry_countフィールドのサイズ
	HeaderSize = 4

	// EntrySize はエントリテーブル1レコードのサイズ
	EntrySize = 44

	// NameSize はエントリ名フィールドのサイズ（NUL終端、ゼロ埋め）
	NameSize = 28
)

// Entry はアーカイブ内の1エントリを表します。
// Reserved と Identifier は意味が確認されていないため、再構築時には
// そのままの値で書き戻されます。
type Entry struct {
	// RawName はテーブルに格納されていた名前フィールドの生バイト列。
	// 再シリアライズはこの値を使うため、パディングも含めてバイト単位で
	// 往復します。
	RawName [NameSize]byte

	Reserved   uint32
	Size       uint32
	Offset     uint32
	Identifier uint32

	// Name は最初のNULまでを解読したエントリ名
	Name string

	// Valid はペイロード範囲がファイル内に収まっているかどうか。
	// falseのエントリはPayloadを取得できませんが、解析自体は続行されます。
	Valid bool

	// Discontinuity はテーブル順の連続配置（offset[i+1] == offset[i]+size[i]）
	// から外れている場合にtrueになります。警告であってエラーではありません。
	Discontinuity bool

	// ExpectedOffset は連続配置を仮定した場合の期待オフセット
	ExpectedOffset uint32
}

// Archive は解析済みのresアーカイブを表します。
// Dataは入力バイト列のデータ領域を参照しているため、Archiveの生存中は
// 入力バイト列を書き換えないでください。
type Archive struct {
	Entries []Entry

	// DataStart はデータ領域のファイル先頭からのオフセット
	DataStart int

	// Data はデータ領域全体（入力バイト列への参照）
	Data []byte
}

// EntryCount はエントリ数を返します。
func (a *Archive) EntryCount() uint32 {
	return uint32(len(a.Entries))
}

// Payload は指定インデックスのエントリのペイロードを返します。
// 返されるスライスはアーカイブのデータ領域への参照です。
func (a *Archive) Payload(index int) ([]byte, error) {
	if index < 0 || index >= len(a.Entries) {
		return nil, ErrEntryNotFound
	}
	e := &a.Entries[index]
	if !e.Valid {
		return nil, ErrOutOfRange
	}
	return a.Data[e.Offset : e.Offset+e.Size], nil
}

// FindEntry は名前でエントリを検索します（大文字小文字を区別しません）。
// 見つからない場合は -1 を返します。
func (a *Archive) FindEntry(name string) int {
	for i := range a.Entries {
		if equalFold(a.Entries[i].Name, name) {
			return i
		}
	}
	return -1
}

// equalFold はASCII範囲の大文字小文字を無視して比較します。
// エントリ名は基本的にASCIIなのでstrings.EqualFoldで十分ですが、
// GBK混じりの名前もバイト等価で扱えるようにしています。
func equalFold(a, b string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := 0; i < len(a); i++ {
		ca, cb := a[i], b[i]
		if 'A' <= ca && ca <= 'Z' {
			ca += 'a' - 'A'
		}
		if 'A' <= cb && cb <= 'Z' {
			cb += 'a' - 'A'
		}
		if ca != cb {
			return false
		}
	}
	return true
}

// decodeName は名前フィールドからエントリ名を取り出します。
// 最初のNULまでを名前とみなし、0x80以上のバイトを含む場合はGBKとして
// 解読を試みます（変換できない場合は生バイトのまま返します）。
func decodeName(raw []byte) string {
	end := bytes.IndexByte(raw, 0)
	if end < 0 {
		end = len(raw)
	}
	name := raw[:end]

	ascii := true
	for _, b := range name {
		if b >= 0x80 {
			ascii = false
			break
		}
	}
	if ascii {
		return string(name)
	}

	decoded, err := simplifiedchinese.GBK.NewDecoder().Bytes(name)
	if err != nil {
		return string(name)
	}
	return string(decoded)
}

// appendEntry はエントリを44バイトのレコードとしてdstに追記します。
func appendEntry(dst []byte, e *Entry) []byte {
	dst = append(dst, e.RawName[:]...)
	dst = binary.BigEndian.AppendUint32(dst, e.Reserved)
	dst = binary.BigEndian.AppendUint32(dst, e.Size)
	dst = binary.BigEndian.AppendUint32(dst, e.Offset)
	dst = binary.BigEndian.AppendUint32(dst, e.Identifier)
	return dst
}

// EncodeTable はヘッダとエントリテーブルをシリアライズします。
// ペイロードを変更していなければ、元のファイルのヘッダ＋テーブル部と
// バイト単位で一致します。
func (a *Archive) EncodeTable() []byte {
	out := make([]byte, 0, HeaderSize+len(a.Entries)*EntrySize)
	out = binary.BigEndian.AppendUint32(out, a.EntryCount())
	for i := range a.Entries {
		out = appendEntry(out, &a.Entries[i])
	}
	return out
}

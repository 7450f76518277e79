package resarc

import (
	"bytes"
	"encoding/binary"
	"errors"
	"testing"
)

// testEntry はテスト用アーカイブの1エントリの素材
type testEntry struct {
	name       string
	reserved   uint32
	identifier uint32
	offset     uint32 // データ領域内の配置位置
	payload    []byte
}

// buildArchive はテスト用のresアーカイブバイト列を組み立てます。
// offsetはそのまま書き込むため、不連続な配置も作れます。
func buildArchive(t *testing.T, entries []testEntry) []byte {
	t.Helper()

	var out []byte
	out = binary.BigEndian.AppendUint32(out, uint32(len(entries)))

	var dataLen uint32
	for _, e := range entries {
		if len(e.name) > NameSize {
			t.Fatalf("テストエントリ名が長すぎます: %s", e.name)
		}
		var name [NameSize]byte
		copy(name[:], e.name)
		out = append(out, name[:]...)
		out = binary.BigEndian.AppendUint32(out, e.reserved)
		out = binary.BigEndian.AppendUint32(out, uint32(len(e.payload)))
		out = binary.BigEndian.AppendUint32(out, e.offset)
		out = binary.BigEndian.AppendUint32(out, e.identifier)

		if end := e.offset + uint32(len(e.payload)); end > dataLen {
			dataLen = end
		}
	}

	data := make([]byte, dataLen)
	for _, e := range entries {
		copy(data[e.offset:], e.payload)
	}
	return append(out, data...)
}

func TestParse_Basic(t *testing.T) {
	raw := buildArchive(t, []testEntry{
		{name: "batt_alarmb.wav", reserved: 1, identifier: 0xDEADBEEF, offset: 0, payload: []byte("0123456789")},
		{name: "logo_700.bmp", reserved: 2, identifier: 0xCAFEBABE, offset: 10, payload: bytes.Repeat([]byte{0xAB}, 20)},
	})

	arc, err := Parse(raw)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if arc.EntryCount() != 2 {
		t.Fatalf("EntryCount() = %d, want 2", arc.EntryCount())
	}
	if arc.DataStart != HeaderSize+2*EntrySize {
		t.Errorf("DataStart = %d, want %d", arc.DataStart, HeaderSize+2*EntrySize)
	}

	e0 := arc.Entries[0]
	if e0.Name != "batt_alarmb.wav" {
		t.Errorf("Entries[0].Name = %q", e0.Name)
	}
	if e0.Reserved != 1 || e0.Identifier != 0xDEADBEEF {
		t.Errorf("Entries[0] reserved/identifier = %d/%#x", e0.Reserved, e0.Identifier)
	}
	if e0.Size != 10 || e0.Offset != 0 {
		t.Errorf("Entries[0] size/offset = %d/%d, want 10/0", e0.Size, e0.Offset)
	}
	if !e0.Valid || e0.Discontinuity {
		t.Errorf("Entries[0] valid=%v discontinuity=%v", e0.Valid, e0.Discontinuity)
	}

	payload, err := arc.Payload(0)
	if err != nil {
		t.Fatalf("Payload(0) error = %v", err)
	}
	if !bytes.Equal(payload, []byte("0123456789")) {
		t.Errorf("Payload(0) = %q", payload)
	}

	e1 := arc.Entries[1]
	if e1.Offset != 10 || e1.Size != 20 || e1.Discontinuity {
		t.Errorf("Entries[1] offset/size/discontinuity = %d/%d/%v", e1.Offset, e1.Size, e1.Discontinuity)
	}
}

func TestParse_TruncatedTable(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"ヘッダ未満", []byte{0x00, 0x00}},
		{"テーブル不足", binary.BigEndian.AppendUint32(nil, 3)}, // 3エントリ分のテーブルがない
		{
			"巨大なentry_count",
			// entry_count*44 がオーバーフローしても落ちないこと
			append(binary.BigEndian.AppendUint32(nil, 0xFFFFFFFF), make([]byte, 100)...),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.data)
			if !errors.Is(err, ErrTruncatedTable) {
				t.Errorf("Parse() error = %v, want ErrTruncatedTable", err)
			}
		})
	}
}

func TestParse_EmptyArchive(t *testing.T) {
	arc, err := Parse(binary.BigEndian.AppendUint32(nil, 0))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if arc.EntryCount() != 0 {
		t.Errorf("EntryCount() = %d, want 0", arc.EntryCount())
	}
}

func TestParse_OutOfRangeEntry(t *testing.T) {
	// サイズがデータ領域を超えるエントリは無効になるが、解析は続行され、
	// 後続の正常なエントリは読める
	raw := buildArchive(t, []testEntry{
		{name: "a.wav", offset: 0, payload: []byte("abc")},
		{name: "b.wav", offset: 3, payload: []byte("defg")},
	})
	// 1番目のエントリのsizeを実際より大きく書き換える
	binary.BigEndian.PutUint32(raw[HeaderSize+32:], 1000)

	arc, err := Parse(raw)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if arc.Entries[0].Valid {
		t.Error("Entries[0].Valid = true, want false")
	}
	if _, err := arc.Payload(0); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("Payload(0) error = %v, want ErrOutOfRange", err)
	}

	if !arc.Entries[1].Valid {
		t.Error("Entries[1].Valid = false, want true")
	}
	payload, err := arc.Payload(1)
	if err != nil {
		t.Fatalf("Payload(1) error = %v", err)
	}
	if !bytes.Equal(payload, []byte("defg")) {
		t.Errorf("Payload(1) = %q", payload)
	}
}

func TestParse_OffsetDiscontinuity(t *testing.T) {
	// entry1が2バイトの隙間を空けて配置されている
	raw := buildArchive(t, []testEntry{
		{name: "a.bin", offset: 0, payload: []byte("abc")},
		{name: "b.bin", offset: 5, payload: []byte("xyz")},
	})

	arc, err := Parse(raw)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if arc.Entries[0].Discontinuity {
		t.Error("Entries[0].Discontinuity = true, want false")
	}
	e1 := arc.Entries[1]
	if !e1.Discontinuity {
		t.Error("Entries[1].Discontinuity = false, want true")
	}
	if e1.ExpectedOffset != 3 {
		t.Errorf("Entries[1].ExpectedOffset = %d, want 3", e1.ExpectedOffset)
	}
	// 警告であってエラーではないので、ペイロードは普通に読める
	if _, err := arc.Payload(1); err != nil {
		t.Errorf("Payload(1) error = %v", err)
	}
}

func TestEncodeTable_RoundTrip(t *testing.T) {
	// ペイロードを変更しなければヘッダ＋テーブルはバイト単位で一致する
	raw := buildArchive(t, []testEntry{
		{name: "a.wav", reserved: 7, identifier: 0x12345678, offset: 0, payload: []byte("hello")},
		{name: "b.bmp", reserved: 9, identifier: 0x9ABCDEF0, offset: 5, payload: []byte("world!")},
	})

	arc, err := Parse(raw)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	table := arc.EncodeTable()
	if !bytes.Equal(table, raw[:arc.DataStart]) {
		t.Error("EncodeTable() がヘッダ＋テーブル部と一致しません")
	}
}

func TestDecodeName_GBK(t *testing.T) {
	// GBKの「报警.wav」(报=0xB1 0xA8, 警=0xBE 0xAF)
	gbk := []byte{0xB1, 0xA8, 0xBE, 0xAF, '.', 'w', 'a', 'v'}
	raw := buildArchive(t, []testEntry{
		{name: string(gbk), offset: 0, payload: []byte("x")},
	})

	arc, err := Parse(raw)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if arc.Entries[0].Name != "报警.wav" {
		t.Errorf("Name = %q, want 报警.wav", arc.Entries[0].Name)
	}
	// 再シリアライズは生バイトを使うので往復はバイト単位で一致する
	if !bytes.Equal(arc.EncodeTable(), raw[:arc.DataStart]) {
		t.Error("GBK名のテーブルが往復で一致しません")
	}
}

func TestFindEntry(t *testing.T) {
	raw := buildArchive(t, []testEntry{
		{name: "Batt_Alarm.WAV", offset: 0, payload: []byte("x")},
		{name: "logo.bmp", offset: 1, payload: []byte("y")},
	})

	arc, err := Parse(raw)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if got := arc.FindEntry("batt_alarm.wav"); got != 0 {
		t.Errorf("FindEntry(batt_alarm.wav) = %d, want 0", got)
	}
	if got := arc.FindEntry("LOGO.BMP"); got != 1 {
		t.Errorf("FindEntry(LOGO.BMP) = %d, want 1", got)
	}
	if got := arc.FindEntry("missing.wav"); got != -1 {
		t.Errorf("FindEntry(missing.wav) = %d, want -1", got)
	}
}

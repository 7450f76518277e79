package archive

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/Plastique812375255/FUKMKD/internal/restool/models"
)

// WriteListCSV はエントリ一覧をCSV形式で書き出します。
// 列見出しは機器付属の解析レポート（中国語）と互換にしてあります。
func WriteListCSV(w io.Writer, infos []models.EntryInfo) error {
	writer := csv.NewWriter(w)

	if err := writer.Write([]string{"序号", "文件名", "大小(字节)", "偏移量", "状态", "类型", "identifier"}); err != nil {
		return err
	}
	for _, info := range infos {
		record := []string{
			strconv.Itoa(info.Index),
			info.Name,
			strconv.FormatUint(uint64(info.Size), 10),
			strconv.FormatUint(uint64(info.Offset), 10),
			string(info.Status),
			info.Kind,
			fmt.Sprintf("0x%08X", info.Identifier),
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}

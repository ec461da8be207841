package ingredient

import "strings"

// 分隔符依固定優先序嘗試（不是依出現位置）：en dash、hyphen、em dash
var lineSeparators = []string{"–", "-", "—"}

// ParseLine 將一行食材文字拆成名稱與數量。
// 格式為 "名稱 - 數量"；沒有分隔符時整行視為名稱，數量 1、單位 piece。
func ParseLine(line string) Record {
	for _, sep := range lineSeparators {
		idx := strings.Index(line, sep)
		if idx < 0 {
			continue
		}
		name := strings.TrimSpace(line[:idx])
		qty, unit := ParseQuantity(strings.TrimSpace(line[idx+len(sep):]))
		return Record{
			Name:     name,
			Quantity: qty,
			Unit:     unit,
		}
	}

	return Record{
		Name:     strings.TrimSpace(line),
		Quantity: 1.0,
		Unit:     UnitPiece,
	}
}

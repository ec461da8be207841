package ingredient

import "strings"

// SequenceStep 輸出序號間隔
const SequenceStep = 10

// KeyOf 計算食材的合併鍵
func KeyOf(r Record) Key {
	return Key{
		Name: strings.ToLower(strings.TrimSpace(r.Name)),
		Unit: NormalizeUnit(string(r.Unit)),
	}
}

type group struct {
	name     string
	unit     Unit
	quantity float64
	notes    []string
}

// Consolidate 將多份食材清單合併為一份購物清單。
// 名稱（不分大小寫、去空白）與正規化單位都相同才合併；數量乘上各自的 Scale 後相加，
// 備註以 ", " 串接。輸出順序為合併鍵第一次出現的順序，序號為 10, 20, 30…
func Consolidate(inputs []Input) []Line {
	groups := make(map[Key]*group)
	order := make([]Key, 0)

	for _, in := range inputs {
		for _, r := range in.Ingredients {
			key := KeyOf(r)
			g, ok := groups[key]
			if !ok {
				g = &group{
					name: strings.TrimSpace(r.Name),
					unit: key.Unit,
				}
				groups[key] = g
				order = append(order, key)
			}
			g.quantity += r.Quantity * in.Scale
			if r.Notes != "" {
				g.notes = append(g.notes, r.Notes)
			}
		}
	}

	lines := make([]Line, 0, len(order))
	for i, key := range order {
		g := groups[key]
		lines = append(lines, Line{
			Name:     g.name,
			Quantity: g.quantity,
			Unit:     g.unit,
			Notes:    strings.Join(g.notes, ", "),
			Sequence: (i + 1) * SequenceStep,
		})
	}
	return lines
}

// ConsolidateLists 以倍率 1 合併多份食材清單（沒有訂單情境時使用）
func ConsolidateLists(lists ...[]Record) []Line {
	inputs := make([]Input, 0, len(lists))
	for _, l := range lists {
		inputs = append(inputs, Input{Ingredients: l, Scale: 1.0})
	}
	return Consolidate(inputs)
}

// ScaleFactor 計算縮放倍率。
// servingSize 有值且大於 0 時為 (orderQty * servingSize) / recipeServings，否則為 orderQty。
// recipeServings 小於 1 時視為 1。
func ScaleFactor(orderQty float64, servingSize *float64, recipeServings int) float64 {
	r := recipeServings
	if r < 1 {
		r = 1
	}
	if servingSize != nil && *servingSize > 0 {
		return (orderQty * *servingSize) / float64(r)
	}
	return orderQty
}

// Records 將合併結果轉回食材記錄（保留順序）
func Records(lines []Line) []Record {
	out := make([]Record, 0, len(lines))
	for _, l := range lines {
		out = append(out, Record{
			Name:     l.Name,
			Quantity: l.Quantity,
			Unit:     l.Unit,
			Notes:    l.Notes,
		})
	}
	return out
}

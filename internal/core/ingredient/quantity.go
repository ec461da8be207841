package ingredient

import (
	"regexp"
	"strconv"
	"strings"
)

const toTaste = "to taste"

var (
	// lb 與 large 必須排在 l 之前，否則 "2 lb"、"2 large" 會被讀成公升
	// 刻意不沿用舊的 kg|g|ml|l|oz|lb 順序
	numberWithUnit = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*(kg|g|ml|lb|large|l|oz|cup|tbsp|tsp|piece|slice|clove|pinch|dash|head|bunch|can|bottle)`)
	numberWithSize = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*(large|small|medium)`)
	bareNumber     = regexp.MustCompile(`\d+(?:\.\d+)?`)
)

// quantitySynonyms 數量解析專用的單位表。
// bunch/can/bottle 在這條路徑被簡化為 piece，與 UnitNormalizer 不同。
var quantitySynonyms = map[string]Unit{
	"tablespoon": UnitTbsp,
	"teaspoon":   UnitTsp,
	"kilogram":   UnitKg,
	"gram":       UnitG,
	"milliliter": UnitMl,
	"liter":      UnitL,
	"ounce":      UnitOz,
	"pound":      UnitLb,
	"large":      UnitPiece,
	"small":      UnitPiece,
	"medium":     UnitPiece,
	"bunch":      UnitPiece,
	"can":        UnitPiece,
	"bottle":     UnitPiece,
}

// QuantityParser 從文字片段擷取數量與單位
type QuantityParser struct {
	table map[string]Unit
}

// NewQuantityParser 創建數量解析器
func NewQuantityParser() *QuantityParser {
	table := make(map[string]Unit, len(quantitySynonyms))
	for k, v := range quantitySynonyms {
		table[k] = v
	}
	return &QuantityParser{table: table}
}

// Parse 解析數量文字，依序嘗試「數字+單位」「數字+大小」「純數字」，
// 全部失敗時回傳 (1, piece)。不支援分數與千分位。
func (p *QuantityParser) Parse(text string) (float64, Unit) {
	text = strings.TrimSpace(strings.ReplaceAll(text, toTaste, ""))
	lower := strings.ToLower(text)

	if m := numberWithUnit.FindStringSubmatch(lower); m != nil {
		if q, err := strconv.ParseFloat(m[1], 64); err == nil {
			return q, p.mapUnit(m[2])
		}
	}

	if m := numberWithSize.FindStringSubmatch(lower); m != nil {
		if q, err := strconv.ParseFloat(m[1], 64); err == nil {
			return q, p.mapUnit(m[2])
		}
	}

	if m := bareNumber.FindString(lower); m != "" {
		if q, err := strconv.ParseFloat(m, 64); err == nil {
			return q, UnitPiece
		}
	}

	return 1.0, UnitPiece
}

func (p *QuantityParser) mapUnit(token string) Unit {
	if u, ok := p.table[token]; ok {
		return u
	}
	return Unit(token)
}

var defaultQuantityParser = NewQuantityParser()

// ParseQuantity 使用預設解析器解析數量
func ParseQuantity(text string) (float64, Unit) {
	return defaultQuantityParser.Parse(text)
}

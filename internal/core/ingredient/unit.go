package ingredient

import "strings"

// Unit 單位短代碼
type Unit string

// 標準單位
const (
	UnitCup    Unit = "cup"
	UnitTbsp   Unit = "tbsp"
	UnitTsp    Unit = "tsp"
	UnitOz     Unit = "oz"
	UnitLb     Unit = "lb"
	UnitG      Unit = "g"
	UnitKg     Unit = "kg"
	UnitMl     Unit = "ml"
	UnitL      Unit = "l"
	UnitPiece  Unit = "piece"
	UnitSlice  Unit = "slice"
	UnitClove  Unit = "clove"
	UnitPinch  Unit = "pinch"
	UnitDash   Unit = "dash"
	UnitHead   Unit = "head"
	UnitBunch  Unit = "bunch"
	UnitCan    Unit = "can"
	UnitBottle Unit = "bottle"
	UnitOther  Unit = "other"
)

var canonicalUnits = [...]Unit{
	UnitCup, UnitTbsp, UnitTsp, UnitOz, UnitLb, UnitG, UnitKg, UnitMl, UnitL,
	UnitPiece, UnitSlice, UnitClove, UnitPinch, UnitDash, UnitHead, UnitBunch,
	UnitCan, UnitBottle, UnitOther,
}

// unitSynonyms 長拼法對應短代碼；標準代碼另外對應到自己
var unitSynonyms = map[string]Unit{
	"tablespoon": UnitTbsp,
	"teaspoon":   UnitTsp,
	"kilogram":   UnitKg,
	"gram":       UnitG,
	"milliliter": UnitMl,
	"liter":      UnitL,
	"ounce":      UnitOz,
	"pound":      UnitLb,
}

// CanonicalUnits 回傳所有標準單位（每次回傳新的切片）
func CanonicalUnits() []Unit {
	out := make([]Unit, len(canonicalUnits))
	copy(out, canonicalUnits[:])
	return out
}

// IsCanonical 檢查是否為標準單位
func (u Unit) IsCanonical() bool {
	for _, c := range canonicalUnits {
		if u == c {
			return true
		}
	}
	return false
}

func (u Unit) String() string {
	return string(u)
}

// UnitNormalizer 單位正規化器，持有自己的同義詞表副本
type UnitNormalizer struct {
	table map[string]Unit
}

// NewUnitNormalizer 創建單位正規化器
func NewUnitNormalizer() *UnitNormalizer {
	table := make(map[string]Unit, len(unitSynonyms)+len(canonicalUnits))
	for k, v := range unitSynonyms {
		table[k] = v
	}
	for _, u := range canonicalUnits {
		table[string(u)] = u
	}
	return &UnitNormalizer{table: table}
}

// WithSynonym 回傳多了一個同義詞的新正規化器，原正規化器不受影響
func (n *UnitNormalizer) WithSynonym(spelling string, unit Unit) *UnitNormalizer {
	table := make(map[string]Unit, len(n.table)+1)
	for k, v := range n.table {
		table[k] = v
	}
	table[strings.ToLower(strings.TrimSpace(spelling))] = unit
	return &UnitNormalizer{table: table}
}

// Normalize 將任意單位拼法轉為短代碼。
// 空字串回傳 piece；表中找不到的值原樣（小寫）回傳，不會被歸入 other。
func (n *UnitNormalizer) Normalize(raw string) Unit {
	u := strings.ToLower(strings.TrimSpace(raw))
	if u == "" {
		return UnitPiece
	}
	if mapped, ok := n.table[u]; ok {
		return mapped
	}
	return Unit(u)
}

// Canonicalize 正規化後將非標準單位歸入 other（寫入儲存前使用）
func (n *UnitNormalizer) Canonicalize(raw string) Unit {
	u := n.Normalize(raw)
	if !u.IsCanonical() {
		return UnitOther
	}
	return u
}

var defaultNormalizer = NewUnitNormalizer()

// NormalizeUnit 使用預設同義詞表正規化單位
func NormalizeUnit(raw string) Unit {
	return defaultNormalizer.Normalize(raw)
}

// CanonicalizeUnit 使用預設同義詞表正規化，並將未知單位歸入 other
func CanonicalizeUnit(raw string) Unit {
	return defaultNormalizer.Canonicalize(raw)
}

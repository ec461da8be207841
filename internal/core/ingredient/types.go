// Package ingredient 提供食材解析與合併的核心邏輯：
// 單位正規化、數量解析、單行解析，以及多份食譜的食材合併。
// 本套件只做記憶體內的純計算，不做 I/O，也沒有共享可變狀態。
package ingredient

// Record 單一食材記錄（解析產生，合併時消耗）
type Record struct {
	Name     string  `json:"name"`
	Quantity float64 `json:"quantity"`
	Unit     Unit    `json:"unit"`
	Notes    string  `json:"notes"`
}

// Line 合併後的購物清單項目
type Line struct {
	Name     string  `json:"name"`
	Quantity float64 `json:"quantity"`
	Unit     Unit    `json:"unit"`
	Notes    string  `json:"notes,omitempty"`
	Sequence int     `json:"sequence"`
}

// Input 合併輸入：一份食譜的食材與其縮放倍率
type Input struct {
	Ingredients []Record
	Scale       float64
}

// Key 合併鍵：(小寫去空白名稱, 正規化單位)
type Key struct {
	Name string
	Unit Unit
}

package importer

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path"
	"strconv"
	"strings"

	"recipe-consolidator/internal/core/ingredient"
	"recipe-consolidator/internal/pkg/common"
)

const utf8BOM = "\ufeff"

// 每個欄位可接受的表頭名稱，依序比對，第一個存在的表頭勝出
var (
	nameHeaders     = []string{"Ingredient", "ingredient"}
	quantityHeaders = []string{"Quantity", "quantity"}
	unitHeaders     = []string{"Unit", "unit"}
	notesHeaders    = []string{"Notes", "notes"}
)

// columns 表頭解析結果；-1 表示該欄位不存在
type columns struct {
	name, quantity, unit, notes int
}

func resolveColumns(header []string) columns {
	index := make(map[string]int, len(header))
	for i, h := range header {
		if i == 0 {
			h = strings.TrimPrefix(h, utf8BOM)
		}
		h = strings.TrimSpace(h)
		if _, exists := index[h]; !exists {
			index[h] = i
		}
	}

	lookup := func(aliases []string) int {
		for _, a := range aliases {
			if i, ok := index[a]; ok {
				return i
			}
		}
		return -1
	}

	return columns{
		name:     lookup(nameHeaders),
		quantity: lookup(quantityHeaders),
		unit:     lookup(unitHeaders),
		notes:    lookup(notesHeaders),
	}
}

func cell(row []string, i int) (string, bool) {
	if i < 0 || i >= len(row) {
		return "", false
	}
	return strings.TrimSpace(row[i]), true
}

// rowResult 單列解析結果：成功的記錄或略過原因
type rowResult struct {
	record ingredient.Record
	skip   string
}

func parseRow(row []string, cols columns) rowResult {
	name, _ := cell(row, cols.name)
	if name == "" {
		return rowResult{skip: "missing ingredient name"}
	}

	quantity := 1.0
	if raw, ok := cell(row, cols.quantity); ok {
		if q, err := strconv.ParseFloat(raw, 64); err == nil {
			quantity = q
		}
	}
	if quantity < 0 {
		quantity = 0
	}

	unit := ingredient.UnitPiece
	if raw, ok := cell(row, cols.unit); ok && raw != "" {
		unit = ingredient.CanonicalizeUnit(raw)
	}

	notes, _ := cell(row, cols.notes)

	return rowResult{record: ingredient.Record{
		Name:     name,
		Quantity: quantity,
		Unit:     unit,
		Notes:    notes,
	}}
}

// RecipeNameFromFile 由檔名推得食譜名稱（去除路徑與副檔名）
func RecipeNameFromFile(fileName string) string {
	base := strings.TrimSpace(path.Base(strings.ReplaceAll(fileName, "\\", "/")))
	if base == "" || base == "." || base == "/" {
		return DefaultRecipeName
	}
	name := strings.TrimSpace(strings.TrimSuffix(base, path.Ext(base)))
	if name == "" {
		return DefaultRecipeName
	}
	return name
}

// ParseCSV 解析 CSV 食譜。食譜名稱一律取自檔名，不取自 CSV 內容。
// 名稱為空的列會略過並記錄在 Skipped；空檔案或結構損壞回傳 ParseError。
func ParseCSV(r io.Reader, fileName string) (Document, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return Document{}, common.NewParseError("CSV file is empty", nil)
	}
	if err != nil {
		return Document{}, common.NewParseError("error reading CSV file", err)
	}
	cols := resolveColumns(header)

	doc := Document{
		Name:        RecipeNameFromFile(fileName),
		Format:      FormatCSV,
		Ingredients: make([]ingredient.Record, 0),
	}

	rows := 0
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return Document{}, common.NewParseError("error reading CSV file", err)
		}
		rows++

		res := parseRow(row, cols)
		if res.skip != "" {
			// 資料列從 2 開始編號（第 1 列為表頭）
			doc.Skipped = append(doc.Skipped, SkippedRow{Row: rows + 1, Reason: res.skip})
			continue
		}
		doc.Ingredients = append(doc.Ingredients, res.record)
	}

	if rows == 0 {
		return Document{}, common.NewParseError(fmt.Sprintf("CSV file %q has no rows", doc.Name), nil)
	}

	return doc, nil
}

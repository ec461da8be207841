package importer

import (
	"strings"

	"recipe-consolidator/internal/core/ingredient"
	"recipe-consolidator/internal/pkg/common"
)

// IngredientsMarker 食材區段開始的標記行
const IngredientsMarker = "Ingredients:"

// ParseText 解析純文字食譜：
//
//	Recipe Name
//
//	Ingredients:
//	Ingredient - Quantity
//
// 標記行之前第一個非空行為食譜名稱，其餘標記前的行忽略；標記之後每一行都是食材。
func ParseText(text string) (Document, error) {
	doc := Document{
		Format:      FormatText,
		Ingredients: make([]ingredient.Record, 0),
	}
	inIngredients := false

	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}

		if line == IngredientsMarker {
			inIngredients = true
			continue
		}

		if !inIngredients {
			if doc.Name == "" {
				doc.Name = line
			}
			continue
		}

		doc.Ingredients = append(doc.Ingredients, ingredient.ParseLine(line))
	}

	if doc.Name == "" {
		return Document{}, common.NewParseError("could not find recipe name in the text", nil)
	}

	return doc, nil
}

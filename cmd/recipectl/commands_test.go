package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"recipe-consolidator/internal/core/importer"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := rootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestImportCommand(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := writeFile(t, dir, "Pancakes.csv", "Ingredient,Quantity,Unit\nFlour,2,cup\nEgg,2,piece\n")

	out, err := run(t, "import", path)
	require.NoError(t, err)

	var doc importer.Document
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	assert.Equal(t, "Pancakes", doc.Name)
	assert.Equal(t, importer.FormatCSV, doc.Format)
	require.Len(t, doc.Ingredients, 2)
	assert.Equal(t, "Flour", doc.Ingredients[0].Name)
}

func TestConsolidateCommand(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	a := writeFile(t, dir, "a.txt", "Omelette\nIngredients:\nEgg - 2\nSalt - 1 tsp\n")
	b := writeFile(t, dir, "b.txt", "Scramble\nIngredients:\negg - 3\n")

	out, err := run(t, "consolidate", "--scale", "2", a, b)
	require.NoError(t, err)
	assert.Equal(t, "Egg - 10 piece\nSalt - 2 tsp\n", out)
}

func TestCommandErrors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	noName := writeFile(t, dir, "broken.txt", "Ingredients:\nEgg - 2\n")

	tests := []struct {
		name string
		args []string
	}{
		{name: "missing file", args: []string{"import", filepath.Join(dir, "nope.txt")}},
		{name: "no recipe name", args: []string{"import", noName}},
		{name: "no arguments", args: []string{"consolidate"}},
		{name: "bad scale", args: []string{"consolidate", "--scale", "0", noName}},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := run(t, tc.args...)
			assert.Error(t, err)
		})
	}
}

package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"recipe-consolidator/internal/core/importer"
	"recipe-consolidator/internal/core/ingredient"
	"recipe-consolidator/internal/pkg/common"

	"github.com/spf13/cobra"
)

// importCommand 解析單一檔案並輸出 JSON
func importCommand() *cobra.Command {
	var format string

	importCmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Parse a recipe file and print it as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := importFile(cmd.Context(), args[0], importer.Format(format))
			if err != nil {
				return fail(cmd, err)
			}
			return common.ToIndentedJSON(cmd.OutOrStdout(), doc)
		},
	}

	importCmd.Flags().StringVar(&format, "format", string(importer.FormatAuto), "Input format: auto, text or csv")

	return importCmd
}

// consolidateCommand 合併多個檔案的食材並輸出購物清單
func consolidateCommand() *cobra.Command {
	var (
		scale  float64
		asJSON bool
	)

	consolidateCmd := &cobra.Command{
		Use:   "consolidate <file>...",
		Short: "Merge the ingredients of several recipe files into one list",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if scale <= 0 {
				return fail(cmd, fmt.Errorf("scale must be positive, got %v", scale))
			}

			inputs := make([]ingredient.Input, 0, len(args))
			for _, path := range args {
				doc, err := importFile(cmd.Context(), path, importer.FormatAuto)
				if err != nil {
					return fail(cmd, err)
				}
				inputs = append(inputs, ingredient.Input{Ingredients: doc.Ingredients, Scale: scale})
			}

			lines := ingredient.Consolidate(inputs)
			if asJSON {
				return common.ToIndentedJSON(cmd.OutOrStdout(), lines)
			}

			out := cmd.OutOrStdout()
			for _, l := range lines {
				fmt.Fprintf(out, "%s - %s %s\n", l.Name, common.FormatQuantity(l.Quantity), l.Unit)
			}
			return nil
		},
	}

	consolidateCmd.Flags().Float64Var(&scale, "scale", 1.0, "Multiply every quantity by this factor")
	consolidateCmd.Flags().BoolVar(&asJSON, "json", false, "Print the merged list as JSON")

	return consolidateCmd
}

// importFile 讀取本機檔案；CSV 以副檔名判斷，檔名作為食譜名稱
func importFile(ctx context.Context, path string, format importer.Format) (importer.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return importer.Document{}, fmt.Errorf("read %s: %w", path, err)
	}

	text := strings.TrimPrefix(string(data), "\ufeff")
	return importer.New(nil, 0).Import(ctx, importer.Source{
		Format:   format,
		Text:     text,
		FileName: filepath.Base(path),
	})
}

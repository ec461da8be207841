package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := rootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

// rootCommand 離線解析與合併食譜檔案的 CLI
func rootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "recipectl",
		Short:        "Parse and consolidate recipe files offline",
		SilenceUsage: true,
	}

	rootCmd.AddCommand(
		importCommand(),
		consolidateCommand(),
	)

	return rootCmd
}

func fail(cmd *cobra.Command, err error) error {
	return fmt.Errorf("%s: %w", cmd.Name(), err)
}

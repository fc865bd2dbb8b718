package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/hashworks/perimetr/internal/config"
)

// rootCmd is the perimetr CLI's entry point. It performs no action itself;
// the split and combine subcommands do the work.
//
// Usage: perimetr [command] [flags]
var rootCmd = &cobra.Command{
	Use:   "perimetr",
	Short: "CLI tool to generate perimetr layers and decrypt them manually if needed.",
	Long:  "perimetr v" + config.Version,
}

func init() {
	rootCmd.AddCommand(newSplitCommand())
	rootCmd.AddCommand(newCombineCommand())
}

// Execute runs the root command and exits non-zero on error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

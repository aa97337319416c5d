package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"ward/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "ward",
	Short: "Ward runtime type-check compiler and inspection tool",
	Long:  `Ward compiles type hints into runtime check procedures; this tool compiles and runs them from the command line`,
}

func main() {
	rootCmd.Version = version.Version

	rootCmd.AddCommand(compileCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(versionCmd)

	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Int("sample-budget", 0, "container sampling budget (0 uses config or default)")
	rootCmd.PersistentFlags().String("config", "", "path to ward.toml (default: discovered upward)")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

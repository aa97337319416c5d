package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"ward"
	"ward/internal/hintparse"
)

var compileCmd = &cobra.Command{
	Use:   "compile [flags] \"hint expression\"",
	Short: "Compile a hint expression and print its classified tree",
	Long:  `Compile parses a hint expression, classifies it into signs and prints the normalized tree the checker runs`,
	Args:  cobra.ExactArgs(1),
	RunE:  runCompile,
}

func init() {
	compileCmd.Flags().String("dump", "", "write a msgpack snapshot of the classified tree to this file")
}

func runCompile(cmd *cobra.Command, args []string) error {
	hint, err := hintparse.Parse(args[0])
	if err != nil {
		return err
	}

	eng, cfg, err := loadEngine(cmd)
	if err != nil {
		return err
	}
	proc, err := eng.Compile(hint)
	if err != nil {
		return err
	}

	printNode(cmd.OutOrStdout(), proc.Node(), 0, useColor(cmd, cfg, os.Stdout))

	dumpPath, err := cmd.Flags().GetString("dump")
	if err != nil {
		return fmt.Errorf("failed to get dump flag: %w", err)
	}
	if dumpPath != "" {
		if err := writeSnapshot(dumpPath, proc.Node()); err != nil {
			return fmt.Errorf("snapshot failed: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "snapshot written to %s\n", dumpPath)
	}
	return nil
}

var (
	signColor = color.New(color.FgCyan, color.Bold)
	hintColor = color.New(color.FgWhite)
)

func printNode(out io.Writer, n *ward.Node, depth int, colored bool) {
	indent := strings.Repeat("  ", depth)
	sign := n.Sign.String()
	rendered := n.String()
	if colored {
		sign = signColor.Sprint(sign)
		rendered = hintColor.Sprint(rendered)
	}
	fmt.Fprintf(out, "%s%s  %s\n", indent, sign, rendered)
	for _, c := range n.Children {
		printNode(out, c, depth+1, colored)
	}
}

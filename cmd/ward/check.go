package main

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"ward"
	"ward/internal/hintparse"
)

var checkCmd = &cobra.Command{
	Use:   "check [flags] \"hint expression\" json-value",
	Short: "Check a JSON value against a hint expression",
	Long: `Check decodes the JSON value, compiles the hint expression and runs the
compiled check; on violation the full explanation path is printed and the
process exits non-zero`,
	Args: cobra.ExactArgs(2),
	RunE: runCheck,
}

func runCheck(cmd *cobra.Command, args []string) error {
	hint, err := hintparse.Parse(args[0])
	if err != nil {
		return err
	}

	var raw any
	if err := json.Unmarshal([]byte(args[1]), &raw); err != nil {
		return fmt.Errorf("invalid JSON value: %w", err)
	}
	value := convertJSON(raw)

	eng, cfg, err := loadEngine(cmd)
	if err != nil {
		return err
	}
	plan, err := eng.BuildPlan("ward check", []ward.ParamHint{{Name: "value", Hint: hint}})
	if err != nil {
		return err
	}

	colored := useColor(cmd, cfg, os.Stdout)
	ok, violation := plan.Check("value", value)
	if ok {
		printVerdict(cmd.OutOrStdout(), "ok", color.FgGreen, colored)
		return nil
	}
	printVerdict(cmd.OutOrStdout(), "violation", color.FgRed, colored)
	for _, line := range strings.Split(violation.Error(), "\n") {
		fmt.Fprintln(cmd.OutOrStdout(), line)
	}
	os.Exit(1)
	return nil
}

func printVerdict(out io.Writer, verdict string, c color.Attribute, colored bool) {
	if colored {
		verdict = color.New(c, color.Bold).Sprint(verdict)
	}
	fmt.Fprintln(out, verdict)
}

// convertJSON narrows decoded JSON for checking: whole float64 numbers
// become int so integer hints read naturally from the command line.
func convertJSON(v any) any {
	switch v := v.(type) {
	case float64:
		if v == math.Trunc(v) && !math.IsInf(v, 0) {
			return int(v)
		}
		return v
	case []any:
		out := make([]any, len(v))
		for i, e := range v {
			out[i] = convertJSON(e)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(v))
		for k, e := range v {
			out[k] = convertJSON(e)
		}
		return out
	default:
		return v
	}
}

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"ward"
	"ward/internal/config"
)

// loadEngine builds an engine from the discovered ward.toml, with the
// --sample-budget flag taking precedence. Also returns the decoded
// config so commands can honor output settings.
func loadEngine(cmd *cobra.Command) (*ward.Engine, config.File, error) {
	var cfg config.File

	path, err := cmd.Root().PersistentFlags().GetString("config")
	if err != nil {
		return nil, cfg, fmt.Errorf("failed to get config flag: %w", err)
	}
	if path == "" {
		found, ok, err := config.Find(".")
		if err != nil {
			return nil, cfg, err
		}
		if ok {
			path = found
		}
	}
	if path != "" {
		cfg, err = config.Load(path)
		if err != nil {
			return nil, config.File{}, err
		}
	}

	budget, err := cmd.Root().PersistentFlags().GetInt("sample-budget")
	if err != nil {
		return nil, cfg, fmt.Errorf("failed to get sample-budget flag: %w", err)
	}
	if budget == 0 {
		budget = cfg.Check.SampleBudget
	}

	eng := ward.New(ward.Config{
		SampleBudget:    budget,
		MaxExplainDepth: cfg.Check.MaxExplainDepth,
		Seed:            cfg.Check.Seed,
	})
	return eng, cfg, nil
}

// useColor resolves the effective color mode from the flag, the config
// file, and terminal detection, in that order.
func useColor(cmd *cobra.Command, cfg config.File, out *os.File) bool {
	mode, _ := cmd.Root().PersistentFlags().GetString("color")
	if mode == "auto" && cfg.Output.Color != "" {
		mode = cfg.Output.Color
	}
	switch mode {
	case "on":
		return true
	case "off":
		return false
	default:
		return isTerminal(out)
	}
}

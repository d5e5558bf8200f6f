package main

import (
	"github.com/JonMunkholm/bankimport/internal/core"
	"github.com/spf13/cobra"
)

type presetInfo struct {
	ID           string            `json:"id" yaml:"id"`
	Name         string            `json:"name" yaml:"name"`
	Priority     int               `json:"priority" yaml:"priority"`
	DateFormat   core.DateFormat   `json:"dateFormat" yaml:"dateFormat"`
	AmountFormat core.AmountFormat `json:"amountFormat" yaml:"amountFormat"`
}

func newPresetsCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "presets",
		Short: "List registered bank presets in detection order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			presets := core.Presets()
			out := make([]presetInfo, 0, len(presets))
			for _, p := range presets {
				out = append(out, presetInfo{
					ID:           p.ID,
					Name:         p.Name,
					Priority:     p.Priority,
					DateFormat:   p.DateFormat,
					AmountFormat: p.AmountFormat,
				})
			}
			return writeOutput(cmd.OutOrStdout(), output, out)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", outputYAML, "output format: json or yaml")
	return cmd
}

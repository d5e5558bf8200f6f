package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/JonMunkholm/bankimport/internal/core"
	"gopkg.in/yaml.v3"
)

const (
	outputJSON = "json"
	outputYAML = "yaml"
)

func writeOutput(w io.Writer, format string, v any) error {
	switch format {
	case outputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case outputYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown output format %q (want %s or %s)", format, outputJSON, outputYAML)
	}
}

// reportError prints the user-facing form of err to w and returns it wrapped
// as a *core.UserError. Errors without a known pattern also print the
// technical detail, since the generic message alone says nothing.
func reportError(w io.Writer, err error) error {
	if err == nil {
		return nil
	}

	userErr := core.NewUserError(err)
	fmt.Fprintln(w, core.FormatUserError(err))
	if !core.IsUserFacing(err) {
		fmt.Fprintf(w, "  detail: %v\n", userErr.Technical)
	}
	return userErr
}

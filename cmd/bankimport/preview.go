package main

import (
	"context"
	"os"

	"github.com/JonMunkholm/bankimport/internal/config"
	"github.com/JonMunkholm/bankimport/internal/core"
	"github.com/JonMunkholm/bankimport/internal/logging"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

type previewOptions struct {
	UserID     string
	AccountID  string
	Preset     string
	DateFormat string
	MaxRows    int
	Output     string
}

func newPreviewCmd(cfg *config.Config) *cobra.Command {
	var opts previewOptions

	cmd := &cobra.Command{
		Use:   "preview FILE",
		Short: "Parse a statement and report mapping, errors and duplicates",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return reportError(cmd.ErrOrStderr(), err)
			}

			ctx := logging.WithImport(cmd.Context(), uuid.NewString())
			logger := logging.FromContext(ctx)

			source, closeSource, err := openSource(ctx, cfg)
			if err != nil {
				// Duplicate checking is optional; preview without it.
				logger.Warn("existing transaction store unavailable", "error", err)
				source, closeSource = nil, func() {}
			}
			defer closeSource()

			resp, err := runPreview(ctx, cfg, data, opts, source)
			if err != nil {
				logger.Error("preview failed", "file", args[0], "error", err)
				return reportError(cmd.ErrOrStderr(), err)
			}

			logger.Info("preview complete",
				"file", args[0],
				"rows", resp.Summary.TotalRows,
				"errors", resp.Summary.ErrorRows,
				"duplicates", resp.Summary.DuplicateRows,
			)
			return writeOutput(cmd.OutOrStdout(), opts.Output, resp)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.UserID, "user", "", "owner of the target account")
	f.StringVar(&opts.AccountID, "account", "", "target account for duplicate checking")
	f.StringVar(&opts.Preset, "preset", "", "bank preset id, skipping detection")
	f.StringVar(&opts.DateFormat, "date-format", "", "override date format: MM/DD/YYYY, DD/MM/YYYY or YYYY-MM-DD")
	f.IntVar(&opts.MaxRows, "max-rows", 0, "maximum data rows to read (default from IMPORT_MAX_ROWS)")
	f.StringVarP(&opts.Output, "output", "o", outputJSON, "output format: json or yaml")
	return cmd
}

// runPreview takes raw statement bytes through decoding, mapping, parsing and
// duplicate detection. A nil source skips the duplicate check.
func runPreview(ctx context.Context, cfg *config.Config, data []byte, opts previewOptions, source core.ExistingTransactionSource) (core.PreviewResponse, error) {
	content := core.DecodeContent(data)
	if err := core.CheckUpload(content, cfg.Import.MaxFileSize); err != nil {
		return core.PreviewResponse{}, err
	}

	parseOpts := core.DefaultParseOptions()
	parseOpts.MaxRows = cfg.Import.MaxRows
	if opts.MaxRows > 0 {
		parseOpts.MaxRows = opts.MaxRows
	}
	parsed := core.ParseCSV(content, parseOpts)

	auto := core.AutoDetectMapping(parsed.Headers, parsed.Rows)
	if opts.Preset != "" {
		var err error
		if auto, err = core.MappingForPreset(opts.Preset, parsed.Headers, parsed.Rows); err != nil {
			return core.PreviewResponse{}, err
		}
	}

	if opts.DateFormat != "" {
		df, err := core.ParseDateFormat(opts.DateFormat)
		if err != nil {
			return core.PreviewResponse{}, err
		}
		auto.Mapping.DateFormat = df
	}

	txns, err := core.ParseTransactions(parsed.Rows, auto.Mapping)
	if err != nil {
		return core.PreviewResponse{}, err
	}

	var dup core.DuplicateCheckResult
	if source != nil && opts.AccountID != "" {
		checkCtx, cancel := context.WithTimeout(ctx, cfg.Import.Timeout)
		defer cancel()

		detector := core.NewDuplicateDetector(source, duplicateOptions(cfg.Duplicates))
		dup = detector.Check(checkCtx, opts.UserID, opts.AccountID, txns)
		txns = core.MarkDuplicates(txns, dup)
	} else {
		logging.FromContext(ctx).Debug("skipping duplicate check", "store", source != nil, "account", opts.AccountID)
		dup.Degraded = true
	}

	return core.BuildPreview(parsed, auto, txns, dup), nil
}

func duplicateOptions(c config.DuplicateConfig) core.DuplicateOptions {
	return core.DuplicateOptions{
		WindowDays:      c.WindowDays,
		Threshold:       c.Threshold,
		SimilarityFloor: c.SimilarityFloor,
		AmountTolerance: decimal.NewFromFloat(c.AmountTolerance),
	}
}

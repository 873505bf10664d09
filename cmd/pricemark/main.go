// Package main provides the pricemark CLI: it decodes a supplier price-list
// workbook, runs the detection-and-markup pipeline over every sheet, and
// writes the marked-up workbook back out.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"pricemark/internal/config"
	"pricemark/internal/errors"
	"pricemark/internal/pipeline"
	"pricemark/internal/validation"
	"pricemark/internal/workbook"
)

var (
	outputPath     string
	percentages    []float64
	decimalPlaces  int
	currencySymbol string
	minConfidence  float64
	customKeywords []string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "pricemark",
		Short: "Detect cost columns in supplier price lists and append markup prices",
	}

	processCmd := &cobra.Command{
		Use:   "process [input.xlsx]",
		Short: "Process a workbook and write the marked-up result",
		Args:  cobra.ExactArgs(1),
		RunE:  runProcess,
	}

	processCmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output file path (default: <input>-marked.xlsx)")
	processCmd.Flags().Float64SliceVar(&percentages, "percentages", nil, "Markup percentages to append")
	processCmd.Flags().IntVar(&decimalPlaces, "decimal-places", -1, "Rounding precision for markup prices (0-10)")
	processCmd.Flags().StringVar(&currencySymbol, "currency-symbol", "", "Currency symbol prefix for markup headers")
	processCmd.Flags().Float64Var(&minConfidence, "min-confidence", -1, "Minimum detection confidence (0-1)")
	processCmd.Flags().StringSliceVar(&customKeywords, "keywords", nil, "Extra cost-column header keywords")
	rootCmd.AddCommand(processCmd)

	if err := rootCmd.Execute(); err != nil {
		if code := errors.Code(err); code != "" {
			fmt.Fprintf(os.Stderr, "error [%s]: %v\n", code, err)
		}
		os.Exit(1)
	}
}

func runProcess(cmd *cobra.Command, args []string) error {
	inputPath := args[0]

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	applyFlagOverrides(cmd, cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger := cfg.Logger()
	slog.SetDefault(logger)

	validator := validation.NewFileValidator(logger)
	if err := validator.ValidateInputWorkbook(inputPath); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sheets, err := workbook.Decode(inputPath)
	if err != nil {
		return err
	}

	processor := pipeline.New(cfg, logger)
	results, err := processor.ProcessAll(ctx, sheets)
	if err != nil {
		return err
	}

	out := outputPath
	if out == "" {
		out = defaultOutputPath(inputPath)
	}
	if err := validator.ValidateOutputPath(out); err != nil {
		return err
	}
	if err := workbook.Encode(results, out); err != nil {
		return err
	}

	for _, res := range results {
		logger.Info("Sheet complete",
			slog.String("sheet", res.Sheet),
			slog.Int("cost_column", res.CostColumn),
			slog.Float64("confidence", res.Detection.Confidence),
			slog.String("method", string(res.Detection.Method)),
			slog.Int("rows", res.RowsProcessed))
	}
	logger.Info("Workbook written", slog.String("output", out))
	return nil
}

// applyFlagOverrides layers explicitly set flags over the loaded
// configuration. Unset flags leave the config untouched.
func applyFlagOverrides(cmd *cobra.Command, cfg *config.Config) {
	if cmd.Flags().Changed("percentages") {
		cfg.Markup.Percentages = percentages
	}
	if cmd.Flags().Changed("decimal-places") {
		cfg.Markup.DecimalPlaces = decimalPlaces
	}
	if cmd.Flags().Changed("currency-symbol") {
		cfg.Markup.CurrencySymbol = currencySymbol
	}
	if cmd.Flags().Changed("min-confidence") {
		cfg.Detection.MinConfidence = minConfidence
	}
	if cmd.Flags().Changed("keywords") {
		cfg.Detection.CustomKeywords = customKeywords
	}
}

func defaultOutputPath(inputPath string) string {
	base := strings.TrimSuffix(inputPath, filepath.Ext(inputPath))
	return base + "-marked.xlsx"
}

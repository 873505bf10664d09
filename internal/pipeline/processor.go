package pipeline

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"pricemark/internal/config"
	"pricemark/internal/detection"
	"pricemark/internal/errors"
	"pricemark/internal/grid"
	"pricemark/internal/markup"
	"pricemark/internal/pruner"
)

// Sheet pairs a decoded grid with the worksheet name it came from.
type Sheet struct {
	Name string
	Grid grid.Grid
}

// SheetResult is the outcome of processing one sheet.
type SheetResult struct {
	Sheet         string
	BatchID       string
	Grid          grid.Grid
	HeaderRow     int
	Detection     detection.Result
	CostColumn    int // position after pruning
	KeptColumns   []int
	MarkupColumns []markup.Column
	RowsProcessed int
	DecimalPlaces int
}

// Processor runs the full detection-and-markup pipeline over decoded grids.
// It holds only configuration; every invocation works on its own grid and
// shares no mutable state, so sheets may be processed concurrently.
type Processor struct {
	cfg    *config.Config
	logger *slog.Logger
}

// New creates a processor with the given configuration.
func New(cfg *config.Config, logger *slog.Logger) *Processor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Processor{cfg: cfg, logger: logger}
}

// ProcessGrid transforms one raw grid: locate the header row, detect the
// cost column, prune empty columns, and append the markup columns.
//
// Structural failures (no headers, no plausible cost column, row limit) are
// fatal for the sheet and come back as coded errors. Row-level numeric gaps
// never fail the sheet.
func (p *Processor) ProcessGrid(ctx context.Context, name string, g grid.Grid) (*SheetResult, error) {
	batchID := uuid.NewString()
	logger := p.logger.With(
		slog.String("sheet", name),
		slog.String("batch_id", batchID))

	if len(g) == 0 || g.IsEmpty() {
		return nil, errors.ErrEmptyGrid
	}
	if len(g) > p.cfg.Limits.MaxRows {
		return nil, errors.RowLimitError(len(g), p.cfg.Limits.MaxRows)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	headerRow, err := detection.LocateHeaderRow(g)
	if err != nil {
		logger.Warn("No header row found")
		return nil, errors.HeadersNotFoundError(name)
	}
	logger.Info("Header row located", slog.Int("row", headerRow))

	sliced := g[headerRow:]
	headers := sliced[0]
	dataRows := sliced[1:]

	result := detection.DetectCostColumn(headers, dataRows, detection.Options{
		MinConfidence:    p.cfg.Detection.MinConfidence,
		RequiredDataRows: p.cfg.Detection.RequiredDataRows,
		CustomKeywords:   p.cfg.Detection.CustomKeywords,
	})
	if result.ColumnIndex < 0 {
		logger.Warn("Cost column detection failed")
		return nil, errors.CostColumnNotFoundError(name)
	}
	logger.Info("Cost column detected",
		slog.Int("column", result.ColumnIndex),
		slog.Float64("confidence", result.Confidence),
		slog.String("method", string(result.Method)))

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	cleaned, kept := pruner.Prune(sliced)
	costColumn := pruner.Reindex(headers, cleaned[0], result.ColumnIndex)
	if costColumn != result.ColumnIndex {
		logger.Info("Cost column re-aligned after pruning",
			slog.Int("original", result.ColumnIndex),
			slog.Int("adjusted", costColumn))
	}

	markupCfg := markup.Config{
		Percentages:    p.cfg.Markup.Percentages,
		DecimalPlaces:  p.cfg.Markup.DecimalPlaces,
		CurrencySymbol: p.cfg.Markup.CurrencySymbol,
	}
	out, err := markup.Apply(cleaned, costColumn, markupCfg)
	if err != nil {
		return nil, err
	}

	logger.Info("Sheet processed",
		slog.Int("rows", len(out)-1),
		slog.Int("columns_kept", len(kept)),
		slog.Int("markup_columns", len(markupCfg.Percentages)))

	return &SheetResult{
		Sheet:         name,
		BatchID:       batchID,
		Grid:          out,
		HeaderRow:     headerRow,
		Detection:     result,
		CostColumn:    costColumn,
		KeptColumns:   kept,
		MarkupColumns: markup.Columns(markupCfg, len(cleaned[0])),
		RowsProcessed: len(out) - 1,
		DecimalPlaces: markupCfg.DecimalPlaces,
	}, nil
}

// ProcessAll processes the sheets of one workbook concurrently. Each sheet
// owns its grid, so the only shared state is the read-only configuration.
// The first failing sheet cancels the rest.
func (p *Processor) ProcessAll(ctx context.Context, sheets []Sheet) ([]*SheetResult, error) {
	results := make([]*SheetResult, len(sheets))

	eg, ctx := errgroup.WithContext(ctx)
	for i, sheet := range sheets {
		eg.Go(func() error {
			res, err := p.ProcessGrid(ctx, sheet.Name, sheet.Grid)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

package dataprocessing

import (
	"context"
	"log/slog"

	apperrors "bluebook/internal/errors"
	"bluebook/pkg/contracts/domain"
)

// ModificationAggregator collects rows whose labor cell was annotated and
// tallies their inferred directions per technician.
type ModificationAggregator struct {
	logger   *slog.Logger
	rows     []domain.ModifiedRow
	buckets  map[string]*domain.DirectionCounts
	warnings int
}

// NewModificationAggregator creates an empty aggregator. A nil logger falls
// back to slog.Default.
func NewModificationAggregator(logger *slog.Logger) *ModificationAggregator {
	if logger == nil {
		logger = slog.Default()
	}
	return &ModificationAggregator{
		logger:  logger.With(slog.String("component", "modification_aggregator")),
		buckets: make(map[string]*domain.DirectionCounts),
	}
}

// Add infers and records row when it is modified. It reports whether the row
// was recorded.
func (a *ModificationAggregator) Add(ctx context.Context, row domain.Row) (domain.ModifiedRow, bool) {
	if !row.IsModified() {
		return domain.ModifiedRow{}, false
	}

	inference := Infer(row.LaborAnnotation, row.LaborValue)
	if inference.Reason == domain.ReasonNoAmounts {
		a.warnings++
		warning := apperrors.NewParseWarning("annotation has no amounts", apperrors.ErrNoAmounts)
		a.logger.WarnContext(ctx, "Direction unknown",
			slog.String("sheet", row.Sheet),
			slog.Int("row", row.RowNumber),
			slog.String("quote_id", row.QuoteID),
			slog.String("error", warning.Error()))
	}

	tech := row.TechnicianOrUnknown()
	mod := domain.ModifiedRow{
		Sheet:      row.Sheet,
		RowNumber:  row.RowNumber,
		Technician: tech,
		QuoteID:    row.QuoteID,
		LaborText:  row.LaborText,
		LaborValue: row.LaborValue,
		Annotation: row.LaborAnnotation,
		Inference:  inference,
	}
	a.rows = append(a.rows, mod)

	counts, ok := a.buckets[tech]
	if !ok {
		counts = &domain.DirectionCounts{}
		a.buckets[tech] = counts
	}
	counts.Add(inference.Direction)
	return mod, true
}

// Warnings returns how many annotations carried no amounts.
func (a *ModificationAggregator) Warnings() int {
	return a.warnings
}

// Result returns the detail rows in source order and the per-technician
// summary ordered by modified rows descending, then technician.
func (a *ModificationAggregator) Result() domain.Modifications {
	rows := make([]domain.ModifiedRow, len(a.rows))
	copy(rows, a.rows)

	summary := make([]domain.TechnicianModSummary, 0, len(a.buckets))
	for tech, counts := range a.buckets {
		summary = append(summary, domain.TechnicianModSummary{Technician: tech, DirectionCounts: *counts})
	}
	domain.SortByCountDesc(summary,
		func(s domain.TechnicianModSummary) int { return s.Total() },
		func(s domain.TechnicianModSummary) string { return s.Technician })

	return domain.Modifications{Rows: rows, Technicians: summary}
}

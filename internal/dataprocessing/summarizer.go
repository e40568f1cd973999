package dataprocessing

import (
	"context"
	"log/slog"

	"bluebook/pkg/contracts/domain"
)

// Report is everything one pass over a workbook produces.
type Report struct {
	Quotes        domain.QuoteCounts
	Modifications domain.Modifications
	Stats         ReadStats
	ParseWarnings int
}

// Summarizer feeds every row to both aggregators in a single pass.
type Summarizer struct {
	logger *slog.Logger
	opts   ReadOptions

	// OnRow, when set, is called after a row has been aggregated.
	OnRow func(domain.Row)
}

// NewSummarizer creates a summarizer. A nil logger falls back to slog.Default.
func NewSummarizer(logger *slog.Logger, opts ReadOptions) *Summarizer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Summarizer{logger: logger, opts: opts}
}

// Summarize reads wb and aggregates it. On error the partial aggregates are
// discarded so that nothing downstream sees half a workbook.
func (s *Summarizer) Summarize(ctx context.Context, wb Workbook) (Report, error) {
	quotes := NewQuoteAggregator()
	mods := NewModificationAggregator(s.logger)

	stats, err := NewSheetReader(s.opts, s.logger).Read(ctx, wb, func(row domain.Row) error {
		quotes.Add(row)
		mods.Add(ctx, row)
		if s.OnRow != nil {
			s.OnRow(row)
		}
		return nil
	})
	if err != nil {
		return Report{}, err
	}

	return Report{
		Quotes:        quotes.Result(),
		Modifications: mods.Result(),
		Stats:         stats,
		ParseWarnings: mods.Warnings(),
	}, nil
}

// SummarizeFile opens the workbook at path, summarizes it and closes it.
func (s *Summarizer) SummarizeFile(ctx context.Context, path string) (report Report, err error) {
	wb, err := OpenWorkbook(path)
	if err != nil {
		return Report{}, err
	}
	defer func() {
		if cerr := wb.Close(); cerr != nil && err == nil {
			s.logger.WarnContext(ctx, "Failed to close workbook", slog.String("error", cerr.Error()))
		}
	}()
	return s.Summarize(ctx, wb)
}

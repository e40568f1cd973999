package dataprocessing

import (
	"strings"

	"bluebook/pkg/contracts/domain"
)

// QuoteAggregator counts distinct quote ids per technician.
type QuoteAggregator struct {
	seen map[string]map[string]struct{}
}

// NewQuoteAggregator creates an empty aggregator.
func NewQuoteAggregator() *QuoteAggregator {
	return &QuoteAggregator{seen: make(map[string]map[string]struct{})}
}

// Add records the row's quote for its technician. It reports whether the
// quote was new for that technician; rows without a quote id are ignored.
func (a *QuoteAggregator) Add(row domain.Row) bool {
	quote := strings.TrimSpace(row.QuoteID)
	if quote == "" {
		return false
	}
	tech := row.TechnicianOrUnknown()

	quotes, ok := a.seen[tech]
	if !ok {
		quotes = make(map[string]struct{})
		a.seen[tech] = quotes
	}
	if _, dup := quotes[quote]; dup {
		return false
	}
	quotes[quote] = struct{}{}
	return true
}

// Result returns the counts ordered by count descending, then technician.
func (a *QuoteAggregator) Result() domain.QuoteCounts {
	counts := make([]domain.TechnicianQuoteCount, 0, len(a.seen))
	for tech, quotes := range a.seen {
		counts = append(counts, domain.TechnicianQuoteCount{Technician: tech, Count: len(quotes)})
	}
	domain.SortByCountDesc(counts,
		func(c domain.TechnicianQuoteCount) int { return c.Count },
		func(c domain.TechnicianQuoteCount) string { return c.Technician })
	return domain.QuoteCounts{Technicians: counts}
}

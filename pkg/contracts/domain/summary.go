package domain

import (
	"sort"
	"strings"
)

// TechnicianQuoteCount is the number of distinct quotes one technician created.
type TechnicianQuoteCount struct {
	Technician string
	Count      int
}

// QuoteCounts is the per-technician quote-count result, in report order.
type QuoteCounts struct {
	Technicians []TechnicianQuoteCount
}

// Total sums the per-technician counts. Quotes shared by two technicians count twice.
func (q QuoteCounts) Total() int {
	total := 0
	for _, tc := range q.Technicians {
		total += tc.Count
	}
	return total
}

// ModifiedRow is a labor line that carries an edit annotation.
type ModifiedRow struct {
	Sheet      string
	RowNumber  int
	Technician string
	QuoteID    string
	LaborText  string
	LaborValue Amount
	Annotation string
	Inference  Inference
}

// DirectionCounts holds one counter per direction bucket.
type DirectionCounts struct {
	Up      int
	Down    int
	Even    int
	Unknown int
}

// Add increments the bucket for d.
func (c *DirectionCounts) Add(d Direction) {
	switch d {
	case DirectionUp:
		c.Up++
	case DirectionDown:
		c.Down++
	case DirectionEven:
		c.Even++
	default:
		c.Unknown++
	}
}

// Total returns the number of modified rows across all buckets.
func (c DirectionCounts) Total() int {
	return c.Up + c.Down + c.Even + c.Unknown
}

// Plus returns the column-wise sum of c and o.
func (c DirectionCounts) Plus(o DirectionCounts) DirectionCounts {
	return DirectionCounts{
		Up:      c.Up + o.Up,
		Down:    c.Down + o.Down,
		Even:    c.Even + o.Even,
		Unknown: c.Unknown + o.Unknown,
	}
}

// TechnicianModSummary is the direction breakdown for one technician.
type TechnicianModSummary struct {
	Technician string
	DirectionCounts
}

// Modifications is the modification-detail and summary result.
type Modifications struct {
	Rows        []ModifiedRow
	Technicians []TechnicianModSummary
}

// Total sums every bucket across technicians.
func (m Modifications) Total() DirectionCounts {
	var total DirectionCounts
	for _, ts := range m.Technicians {
		total = total.Plus(ts.DirectionCounts)
	}
	return total
}

// LessTechnician orders technician names case-insensitively, falling back to
// byte order so the ordering stays total.
func LessTechnician(a, b string) bool {
	la, lb := strings.ToLower(a), strings.ToLower(b)
	if la != lb {
		return la < lb
	}
	return a < b
}

// SortByCountDesc sorts items by descending count and then by technician name.
func SortByCountDesc[T any](items []T, count func(T) int, name func(T) string) {
	sort.SliceStable(items, func(i, j int) bool {
		ci, cj := count(items[i]), count(items[j])
		if ci != cj {
			return ci > cj
		}
		return LessTechnician(name(items[i]), name(items[j]))
	})
}

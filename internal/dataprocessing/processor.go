package dataprocessing

import (
	"regexp"
	"strings"

	"bluebook/pkg/contracts/domain"
)

// creatorTimestamp matches the "(5:07 PM)" suffix the export appends to the
// creator of a quote.
var creatorTimestamp = regexp.MustCompile(`(?i)^(.+?)\s*\(\d{1,2}:\d{2}\s?[AP]M\)$`)

// NormalizeTechnician trims name, collapses inner whitespace and drops a
// trailing creation time.
func NormalizeTechnician(name string) string {
	name = strings.Join(strings.Fields(name), " ")
	if m := creatorTimestamp.FindStringSubmatch(name); m != nil {
		name = strings.TrimSpace(m[1])
	}
	return name
}

// RowNormalizer cleans technician names and, when fill-down is on, carries
// the last seen technician into rows that leave it blank. Use one per sheet.
type RowNormalizer struct {
	fillDown bool
	last     string
	filled   int
}

// NewRowNormalizer creates a normalizer.
func NewRowNormalizer(fillDown bool) *RowNormalizer {
	return &RowNormalizer{fillDown: fillDown}
}

// Normalize returns row with a cleaned technician.
func (n *RowNormalizer) Normalize(row domain.Row) domain.Row {
	row.Technician = NormalizeTechnician(row.Technician)

	if row.Technician != "" {
		n.last = row.Technician
		return row
	}
	if n.fillDown && n.last != "" {
		row.Technician = n.last
		n.filled++
	}
	return row
}

// Filled reports how many rows inherited a technician.
func (n *RowNormalizer) Filled() int {
	return n.filled
}

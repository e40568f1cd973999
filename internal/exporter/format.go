package exporter

import (
	"strconv"

	"bluebook/pkg/contracts/domain"
)

// formatAmount formats an amount for CSV output with exactly 2 decimal
// places, or "" when the amount is absent.
func formatAmount(a domain.Amount) string {
	return a.String()
}

// formatInt formats a count for CSV output
func formatInt(i int) string {
	return strconv.Itoa(i)
}

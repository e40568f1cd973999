package domain

import (
	"fmt"
	"strings"
)

// UnknownTechnician is the placeholder used for rows whose technician cell is blank.
const UnknownTechnician = "UNKNOWN"

// TotalLabel labels the aggregate row appended to per-technician tables.
const TotalLabel = "TOTAL"

// Amount is a nullable monetary or numeric value.
type Amount struct {
	Value float64
	Valid bool
}

// NewAmount returns a valid Amount holding v.
func NewAmount(v float64) Amount {
	return Amount{Value: v, Valid: true}
}

// String renders the amount with two decimals, or "" when absent.
func (a Amount) String() string {
	if !a.Valid {
		return ""
	}
	return fmt.Sprintf("%.2f", a.Value)
}

// Row is one record of a Blue Book worksheet.
type Row struct {
	Sheet     string
	RowNumber int // 1-based, as shown by the spreadsheet

	Technician string
	QuoteID    string

	// LaborText is the raw labor cell content; LaborValue is its numeric reading.
	LaborText       string
	LaborValue      Amount
	LaborAnnotation string
}

// TechnicianOrUnknown returns the technician name, or the UNKNOWN placeholder when blank.
func (r Row) TechnicianOrUnknown() string {
	if name := strings.TrimSpace(r.Technician); name != "" {
		return name
	}
	return UnknownTechnician
}

// IsModified reports whether the labor cell carries a non-empty annotation.
func (r Row) IsModified() bool {
	return strings.TrimSpace(r.LaborAnnotation) != ""
}

package dataprocessing

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"bluebook/pkg/contracts/domain"
)

var (
	amountCandidate = regexp.MustCompile(`(?:[$£€]\s?)?\d[\d,]*(?:\.\d+)?`)
	groupedDigits   = regexp.MustCompile(`^(?:\d+|\d{1,3}(?:,\d{3})+)$`)
)

// ExtractAmounts returns the monetary amounts found in text, in text order.
//
// An amount is an optional currency symbol followed by digits, either a plain
// run or comma-grouped thousands, with an optional two-digit fraction. It must
// carry a currency symbol or a fraction. Numbers glued to letters, digits,
// '/', '#', '.' or '%' are ignored, which keeps dates, part numbers and
// percentages out. A leading '-' is only accepted after a currency symbol.
func ExtractAmounts(text string) []float64 {
	var amounts []float64

	for _, loc := range amountCandidate.FindAllStringIndex(text, -1) {
		start, end := loc[0], loc[1]
		for end > start && text[end-1] == ',' {
			end--
		}
		token := text[start:end]

		currency := false
		if r, size := utf8.DecodeRuneInString(token); r == '$' || r == '£' || r == '€' {
			currency = true
			token = strings.TrimLeft(token[size:], " \t")
		}

		whole, frac, hasFrac := strings.Cut(token, ".")
		if !groupedDigits.MatchString(whole) {
			continue
		}
		if hasFrac && len(frac) != 2 {
			continue
		}
		if !currency && !hasFrac {
			continue
		}
		if !clearBefore(text, start, currency) || !clearAfter(text, end) {
			continue
		}

		number := strings.ReplaceAll(whole, ",", "")
		if hasFrac {
			number += "." + frac
		}
		v, err := strconv.ParseFloat(number, 64)
		if err != nil {
			continue
		}
		amounts = append(amounts, v)
	}
	return amounts
}

func clearBefore(text string, start int, currency bool) bool {
	if start == 0 {
		return true
	}
	r, _ := utf8.DecodeLastRuneInString(text[:start])
	switch {
	case unicode.IsLetter(r), unicode.IsDigit(r):
		return false
	case r == '.', r == '/', r == '#':
		return false
	case r == '-':
		return currency
	}
	return true
}

func clearAfter(text string, end int) bool {
	if end >= len(text) {
		return true
	}
	r, size := utf8.DecodeRuneInString(text[end:])
	switch {
	case unicode.IsLetter(r), unicode.IsDigit(r):
		return false
	case r == '/', r == '%':
		return false
	case r == '-', r == '.':
		next, _ := utf8.DecodeRuneInString(text[end+size:])
		return !unicode.IsDigit(next)
	}
	return true
}

// Infer reads the direction of a labor edit from its annotation.
//
// With two or more amounts the first and last are compared. A single amount
// is compared with the cell's current value when that value is present and
// differs. Everything else is unknown, with Reason saying why.
func Infer(annotation string, cellValue domain.Amount) domain.Inference {
	if strings.TrimSpace(annotation) == "" {
		return domain.Inference{Direction: domain.DirectionUnknown, Reason: domain.ReasonNoAnnotation}
	}

	amounts := ExtractAmounts(annotation)
	switch len(amounts) {
	case 0:
		return domain.Inference{Direction: domain.DirectionUnknown, Reason: domain.ReasonNoAmounts}
	case 1:
		from := domain.NewAmount(amounts[0])
		if !cellValue.Valid {
			return domain.Inference{Direction: domain.DirectionUnknown, From: from, Reason: domain.ReasonNoCellValue}
		}
		if cents(amounts[0]) == cents(cellValue.Value) {
			return domain.Inference{Direction: domain.DirectionUnknown, From: from, Reason: domain.ReasonMatchesCellValue}
		}
		return directed(amounts[0], cellValue.Value)
	default:
		return directed(amounts[0], amounts[len(amounts)-1])
	}
}

func directed(from, to float64) domain.Inference {
	return domain.Inference{
		Direction: domain.Compare(cents(from), cents(to)),
		From:      domain.NewAmount(from),
		To:        domain.NewAmount(to),
	}
}

// cents rounds to whole cents so float noise never decides a direction.
func cents(v float64) float64 {
	return math.Round(v * 100)
}

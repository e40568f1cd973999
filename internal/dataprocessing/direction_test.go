package dataprocessing

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"bluebook/pkg/contracts/domain"
)

func TestExtractAmounts(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []float64
	}{
		{"dollar amounts", "from $149 to $179", []float64{149, 179}},
		{"decimals without symbol", "149.00 -> 179.50", []float64{149, 179.50}},
		{"thousands separators", "was $1,234.56 now $2,000", []float64{1234.56, 2000}},
		{"space after symbol", "$ 150 and € 90", []float64{150, 90}},
		{"pound sign", "£75.00", []float64{75}},
		{"trailing comma", "$150, then $200.", []float64{150, 200}},
		{"date ignored", "called on 10/01/2025 re $80", []float64{80}},
		{"part number ignored", "part #12.50 fitted", nil},
		{"version ignored", "v1.25 estimate", nil},
		{"percentage ignored", "discount 12.50%", nil},
		{"bare integers ignored", "2 hours at 95", nil},
		{"one decimal digit ignored", "$149.5", nil},
		{"three decimal digits ignored", "149.555", nil},
		{"bad grouping ignored", "$1,2345", nil},
		{"glued to letters", "abc$100", nil},
		{"hyphen without symbol", "range 10-12.50", nil},
		{"hyphen with symbol", "credit -$40.00", []float64{40}},
		{"no amounts", "adjusted per customer", nil},
		{"empty", "", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractAmounts(tt.text))
		})
	}
}

func TestInfer(t *testing.T) {
	none := domain.Amount{}

	tests := []struct {
		name       string
		annotation string
		cell       domain.Amount
		want       domain.Inference
	}{
		{
			name:       "two amounts rising",
			annotation: "from $149 to $179",
			cell:       none,
			want: domain.Inference{
				Direction: domain.DirectionUp,
				From:      domain.NewAmount(149),
				To:        domain.NewAmount(179),
			},
		},
		{
			name:       "two amounts falling",
			annotation: "from $200 to $150",
			cell:       domain.NewAmount(150),
			want: domain.Inference{
				Direction: domain.DirectionDown,
				From:      domain.NewAmount(200),
				To:        domain.NewAmount(150),
			},
		},
		{
			name:       "first and last of several",
			annotation: "$100 then $300 finally $120",
			cell:       none,
			want: domain.Inference{
				Direction: domain.DirectionUp,
				From:      domain.NewAmount(100),
				To:        domain.NewAmount(120),
			},
		},
		{
			name:       "equal amounts",
			annotation: "$150.00 kept at $150",
			cell:       none,
			want: domain.Inference{
				Direction: domain.DirectionEven,
				From:      domain.NewAmount(150),
				To:        domain.NewAmount(150),
			},
		},
		{
			name:       "single amount equal to cell",
			annotation: "$150",
			cell:       domain.NewAmount(150),
			want: domain.Inference{
				Direction: domain.DirectionUnknown,
				From:      domain.NewAmount(150),
				Reason:    domain.ReasonMatchesCellValue,
			},
		},
		{
			name:       "single amount against higher cell",
			annotation: "was $120.00",
			cell:       domain.NewAmount(150),
			want: domain.Inference{
				Direction: domain.DirectionUp,
				From:      domain.NewAmount(120),
				To:        domain.NewAmount(150),
			},
		},
		{
			name:       "single amount against lower cell",
			annotation: "was $180",
			cell:       domain.NewAmount(99.99),
			want: domain.Inference{
				Direction: domain.DirectionDown,
				From:      domain.NewAmount(180),
				To:        domain.NewAmount(99.99),
			},
		},
		{
			name:       "single amount without cell value",
			annotation: "was $180",
			cell:       none,
			want: domain.Inference{
				Direction: domain.DirectionUnknown,
				From:      domain.NewAmount(180),
				Reason:    domain.ReasonNoCellValue,
			},
		},
		{
			name:       "no amounts",
			annotation: "adjusted",
			cell:       domain.NewAmount(150),
			want:       domain.Inference{Direction: domain.DirectionUnknown, Reason: domain.ReasonNoAmounts},
		},
		{
			name:       "blank annotation",
			annotation: "  \n ",
			cell:       domain.NewAmount(150),
			want:       domain.Inference{Direction: domain.DirectionUnknown, Reason: domain.ReasonNoAnnotation},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Infer(tt.annotation, tt.cell)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, got, Infer(tt.annotation, tt.cell), "Infer must be deterministic")
		})
	}
}

func TestInfer_FloatNoiseIsEven(t *testing.T) {
	got := Infer("$0.30", domain.NewAmount(0.1+0.2))
	assert.Equal(t, domain.DirectionUnknown, got.Direction)
	assert.Equal(t, domain.ReasonMatchesCellValue, got.Reason)
}

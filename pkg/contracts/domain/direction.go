package domain

// Direction is the inferred trend of a manually edited labor value.
type Direction string

const (
	DirectionUp      Direction = "up"
	DirectionDown    Direction = "down"
	DirectionEven    Direction = "even"
	DirectionUnknown Direction = "unknown"
)

// Directions lists every direction bucket in report column order.
var Directions = []Direction{DirectionUp, DirectionDown, DirectionEven, DirectionUnknown}

// Reasons attached to an Inference. Empty when the direction was determined.
const (
	ReasonNoAnnotation     = "no_annotation"
	ReasonNoAmounts        = "no_amounts"
	ReasonNoCellValue      = "single_amount_no_cell_value"
	ReasonMatchesCellValue = "single_amount_matches_cell_value"
)

// Inference is the result of reading a change direction out of an annotation.
type Inference struct {
	Direction Direction
	From      Amount
	To        Amount
	Reason    string
}

// Compare classifies the move from one value to another.
func Compare(from, to float64) Direction {
	switch {
	case to > from:
		return DirectionUp
	case to < from:
		return DirectionDown
	default:
		return DirectionEven
	}
}

package constants

// ExtractionStatus is the terminal status of one extraction call.
type ExtractionStatus string

// Stable values (serialized verbatim in the result JSON).
const (
	StatusSuccess ExtractionStatus = "success"
	StatusFailed  ExtractionStatus = "failed"
)

// Layout types reported alongside successful extractions.
const (
	LayoutHorizontal = "horizontal"
	LayoutVertical   = "vertical"
	LayoutText       = "text"
	LayoutUnknown    = "unknown"
)

package tokenizers

// PaddingStrategy selects how PadEncodings picks its target length.
type PaddingStrategy int

const (
	// BatchLongest pads every encoding in the batch to the length of the
	// longest one.
	BatchLongest PaddingStrategy = iota
	// Fixed pads every encoding to a caller-supplied length.
	Fixed
)

// PaddingParams configures PadEncodings.
type PaddingParams struct {
	Strategy  PaddingStrategy
	Direction PaddingDirection
	// FixedLength is only read when Strategy == Fixed.
	FixedLength int
	PadID       uint32
	PadTypeID   uint32
	PadToken    string
}

// PadEncodings pads every encoding in the batch to a common target length:
// params.FixedLength under Fixed, or the longest encoding's length under
// BatchLongest. Padding is idempotent -- an encoding already at or past the
// target is left untouched (spec.md invariant 6).
func PadEncodings(encodings []Encoding, params PaddingParams) []Encoding {
	target := params.FixedLength
	if params.Strategy == BatchLongest {
		target = 0
		for _, e := range encodings {
			if e.Len() > target {
				target = e.Len()
			}
		}
	}

	padded := make([]Encoding, len(encodings))
	for i, e := range encodings {
		padded[i] = e.Pad(target, params.PadID, params.PadTypeID, params.PadToken, params.Direction)
	}
	return padded
}

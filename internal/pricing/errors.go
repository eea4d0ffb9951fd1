package pricing

import "errors"

// Quote errors. All of them describe a bad request or a gap in the
// catalog for the requested combination; none are fatal to the process.
var (
	// ErrNoPriceData means no anchor tier, sheet, sheet price or product
	// spec exists for the requested combination.
	ErrNoPriceData = errors.New("no price data for requested combination")

	// ErrDoesNotFit means the item does not fit the sheet's printable
	// area in either orientation.
	ErrDoesNotFit = errors.New("item does not fit printable area")

	// ErrInvalidQuantity means the requested quantity is zero or negative.
	ErrInvalidQuantity = errors.New("quantity must be at least 1")
)

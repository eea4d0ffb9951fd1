package pricing

import "fmt"

// ItemsPerSheet computes how many finished items fit on one sheet's
// printable area as a uniform grid, trying the item both as-is and
// rotated 90 degrees, and taking the better of the two. Mixed
// orientations within one sheet are not attempted.
//
// Zero is a valid result, not an error: the caller decides whether an
// unfittable combination is fatal.
func ItemsPerSheet(sheet Sheet, spec ProductSpec) int {
	effW := spec.FinishedWidthMM + 2*spec.BleedMM
	effH := spec.FinishedHeightMM + 2*spec.BleedMM
	if effW <= 0 || effH <= 0 {
		return 0
	}

	normal := (sheet.PrintableWidthMM / effW) * (sheet.PrintableHeightMM / effH)
	rotated := (sheet.PrintableWidthMM / effH) * (sheet.PrintableHeightMM / effW)

	if rotated > normal {
		return rotated
	}
	return normal
}

// SheetUsage is the production plan for one sheet-priced job. The
// billable quantity is always a full-sheet multiple, rounded up from
// the request, and is surfaced so the customer sees what they pay for.
type SheetUsage struct {
	PerSheet      int
	SheetsNeeded  int
	BillableQty   int
	PrintingPrice int64
}

// QuoteBySheet prices a job by sheet count: ceiling division of the
// requested quantity over per-sheet capacity, a flat rate per sheet,
// and the setup fee charged once.
func QuoteBySheet(sheet Sheet, spec ProductSpec, price SheetPrice, qty int) (SheetUsage, error) {
	if qty < 1 {
		return SheetUsage{}, fmt.Errorf("requested %d: %w", qty, ErrInvalidQuantity)
	}

	perSheet := ItemsPerSheet(sheet, spec)
	if perSheet <= 0 {
		return SheetUsage{}, fmt.Errorf("%s on sheet %s: %w", spec.ProductCode, sheet.Code, ErrDoesNotFit)
	}

	sheets := (qty + perSheet - 1) / perSheet

	return SheetUsage{
		PerSheet:      perSheet,
		SheetsNeeded:  sheets,
		BillableQty:   sheets * perSheet,
		PrintingPrice: int64(sheets)*price.BasePricePerSheet + price.SetupFee,
	}, nil
}

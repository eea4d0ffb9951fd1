package pricing

import "fmt"

// CalculateQuote composes the anchor resolver or the sheet engine with
// the surcharge pipeline into one quote. It is pure: everything it
// needs comes in via the request and the catalog snapshot, so two
// calls with identical inputs produce identical quotes.
func CalculateQuote(req Request, snap Snapshot) (Quote, error) {
	if req.Qty < 1 {
		return Quote{}, fmt.Errorf("requested %d: %w", req.Qty, ErrInvalidQuantity)
	}

	var (
		base      int64
		breakdown []BreakdownItem
	)

	switch snap.Mode {
	case ModeAnchor:
		tierQty, tierPrice, err := ResolveAnchor(snap.AnchorTiers, req.Qty)
		if err != nil {
			return Quote{}, fmt.Errorf("resolve anchor %s/%s/%s: %w", req.Product, req.Material, req.Size, err)
		}

		base = RoundPrice(tierPrice)
		breakdown = append(breakdown, BreakdownItem{
			Label:  fmt.Sprintf("Anchor (%s) — %s / %d pcs (tier %d)", req.Material, req.Size, req.Qty, tierQty),
			Amount: base,
		})

	case ModeSheet:
		usage, err := QuoteBySheet(snap.Sheet, snap.Spec, snap.SheetPrice, req.Qty)
		if err != nil {
			return Quote{}, fmt.Errorf("sheet quote %s: %w", req.Product, err)
		}

		base = usage.PrintingPrice
		breakdown = append(breakdown,
			BreakdownItem{Label: fmt.Sprintf("Sheet: %s", snap.Sheet.Code)},
			BreakdownItem{Label: fmt.Sprintf("Items per sheet: %d", usage.PerSheet)},
			BreakdownItem{Label: fmt.Sprintf("Sheets needed: %d", usage.SheetsNeeded)},
			BreakdownItem{Label: fmt.Sprintf("Billable quantity: %d pcs", usage.BillableQty)},
			BreakdownItem{
				Label:  fmt.Sprintf("Printing %d sheets (%s, %s)", usage.SheetsNeeded, snap.Sheet.Code, snap.SheetPrice.PrintMode),
				Amount: base,
			},
		)

	default:
		return Quote{}, fmt.Errorf("product %s has unknown pricing mode %q", req.Product, snap.Mode)
	}

	total, breakdown := ApplySurcharges(base, breakdown, Options{
		Paper:      req.Paper,
		Color:      req.Color,
		Lamination: req.Lamination,
	}, snap.Rules)

	return Quote{
		FinalPrice: total,
		Currency:   snap.Currency,
		Breakdown:  breakdown,
	}, nil
}

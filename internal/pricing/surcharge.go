package pricing

import "fmt"

// ApplySurcharges runs the conditional surcharge rules over a base
// price and extends the breakdown in rule order: paper upgrade, then
// color mode, then lamination. Color tiers are mutually exclusive —
// the first match wins and tiers never stack.
//
// After the conditional rules the minimum price floor is enforced: a
// single correction line covering exactly the shortfall is appended
// last, and only when the running total is below the floor.
func ApplySurcharges(base int64, breakdown []BreakdownItem, opts Options, rules RuleSet) (int64, []BreakdownItem) {
	total := base

	if opts.Paper == rules.HeavyPaper && rules.HeavyPaper != "" {
		total += rules.HeavyPaperFee
		breakdown = append(breakdown, BreakdownItem{
			Label:  fmt.Sprintf("Paper surcharge: %s", opts.Paper),
			Amount: rules.HeavyPaperFee,
		})
	}

	if opts.Color == rules.ColorSingle && rules.ColorSingle != "" {
		total += rules.ColorSingleFee
		breakdown = append(breakdown, BreakdownItem{
			Label:  fmt.Sprintf("Color surcharge: %s", opts.Color),
			Amount: rules.ColorSingleFee,
		})
	} else if opts.Color == rules.ColorDouble && rules.ColorDouble != "" {
		total += rules.ColorDoubleFee
		breakdown = append(breakdown, BreakdownItem{
			Label:  fmt.Sprintf("Color surcharge: %s", opts.Color),
			Amount: rules.ColorDoubleFee,
		})
	}

	if opts.Lamination {
		total += rules.LaminationFee
		breakdown = append(breakdown, BreakdownItem{
			Label:  "Lamination surcharge",
			Amount: rules.LaminationFee,
		})
	}

	if total < rules.MinPrice {
		adjust := rules.MinPrice - total
		total = rules.MinPrice
		breakdown = append(breakdown, BreakdownItem{
			Label:  "Minimum price adjustment",
			Amount: adjust,
		})
	}

	return total, breakdown
}

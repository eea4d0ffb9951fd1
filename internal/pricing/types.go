package pricing

// PricingMode selects the strategy for a product family. It is an
// explicit catalog setting, never inferred from which lookup happens
// to return data.
type PricingMode string

const (
	// ModeAnchor prices against the tiered anchor table.
	ModeAnchor PricingMode = "anchor"
	// ModeSheet prices by sheet imposition and a per-sheet rate.
	ModeSheet PricingMode = "sheet"
)

// Sheet is a production sheet. The printable area is what remains
// after trim margins, so it never exceeds the physical size.
type Sheet struct {
	Code              string
	WidthMM           int
	HeightMM          int
	PrintableWidthMM  int
	PrintableHeightMM int
}

// ProductSpec is the finished-size footprint of one item. Bleed is
// added on every side, so the effective footprint grows by twice the
// bleed on each axis.
type ProductSpec struct {
	ProductCode      string
	FinishedWidthMM  int
	FinishedHeightMM int
	BleedMM          int
	DefaultSheetCode string
}

// SheetPrice is the per-sheet rate for one (sheet, print mode) pair.
// The setup fee is charged once per job regardless of sheet count.
type SheetPrice struct {
	SheetCode         string
	PrintMode         string
	BasePricePerSheet int64
	SetupFee          int64
}

// BreakdownItem is one line of a quote. Amount may be zero for
// informational lines.
type BreakdownItem struct {
	Label  string `json:"label"`
	Amount int64  `json:"amount"`
}

// Quote is the result of one calculation. It is derived, never stored.
type Quote struct {
	FinalPrice int64           `json:"final_price"`
	Currency   string          `json:"currency"`
	Breakdown  []BreakdownItem `json:"breakdown"`
}

// Options are the customer-selected finishing options fed to the
// surcharge pipeline.
type Options struct {
	Paper      string
	Color      string
	Lamination bool
}

// RuleSet holds the surcharge and floor constants for one product
// family. They are configuration, not business invariants, so the
// pipeline takes them as input.
type RuleSet struct {
	HeavyPaper     string
	HeavyPaperFee  int64
	ColorSingle    string
	ColorSingleFee int64
	ColorDouble    string
	ColorDoubleFee int64
	LaminationFee  int64
	MinPrice       int64
}

// Request is one quote request as the engine sees it, after transport
// binding.
type Request struct {
	Product    string
	Material   string
	Size       string
	Paper      string
	Color      string
	Qty        int
	Lamination bool
}

// Snapshot is the slice of catalog state one quote computation needs,
// fetched up front by the caller. The engine treats it as immutable
// for the duration of the call.
type Snapshot struct {
	Mode        PricingMode
	Currency    string
	AnchorTiers map[int]float64
	Sheet       Sheet
	Spec        ProductSpec
	SheetPrice  SheetPrice
	Rules       RuleSet
}

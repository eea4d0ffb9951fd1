package catalog

import "time"

// AnchorPrice is one stored price point, uniquely identified by the
// (product, material, size, quantity) tuple. Rows are maintained by
// admins; the pricing engine only ever reads them.
type AnchorPrice struct {
	ID           int64     `db:"id" json:"id"`
	ProductCode  string    `db:"product_code" json:"product_code"`
	MaterialCode string    `db:"material_code" json:"material_code"`
	SizeKey      string    `db:"size_key" json:"size_key"`
	AnchorQty    int       `db:"anchor_qty" json:"anchor_qty"`
	AnchorPrice  float64   `db:"anchor_price" json:"anchor_price"`
	Currency     string    `db:"currency" json:"currency"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

// AnchorInput is the payload for creating or updating an anchor.
type AnchorInput struct {
	ProductCode  string  `json:"product_code" binding:"required"`
	MaterialCode string  `json:"material_code" binding:"required"`
	SizeKey      string  `json:"size_key" binding:"required"`
	AnchorQty    int     `json:"anchor_qty" binding:"required,min=1"`
	AnchorPrice  float64 `json:"anchor_price" binding:"min=0"`
	Currency     string  `json:"currency"`
}

// AnchorFilter narrows the admin anchor listing. Zero values match
// everything.
type AnchorFilter struct {
	ProductCode  string
	MaterialCode string
	SizeKey      string
	AnchorQty    int
}

// Product is one product family and its pricing strategy. The mode is
// an explicit configuration decision, not something inferred from
// which other tables have rows.
type Product struct {
	Code             string `db:"code"`
	Name             string `db:"name"`
	PricingMode      string `db:"pricing_mode"`
	DefaultSheetCode string `db:"default_sheet_code"`
	Currency         string `db:"currency"`
}

type sheetRow struct {
	Code              string `db:"code"`
	WidthMM           int    `db:"width_mm"`
	HeightMM          int    `db:"height_mm"`
	PrintableWidthMM  int    `db:"printable_width_mm"`
	PrintableHeightMM int    `db:"printable_height_mm"`
}

type sheetPriceRow struct {
	SheetCode         string `db:"sheet_code"`
	PrintMode         string `db:"print_mode"`
	BasePricePerSheet int64  `db:"base_price_per_sheet"`
	SetupFee          int64  `db:"setup_fee"`
}

type productSpecRow struct {
	ProductCode      string `db:"product_code"`
	SizeKey          string `db:"size_key"`
	FinishedWidthMM  int    `db:"finished_w_mm"`
	FinishedHeightMM int    `db:"finished_h_mm"`
	BleedMM          int    `db:"bleed_mm"`
	DefaultSheetCode string `db:"default_sheet_code"`
}

type surchargeRuleRow struct {
	ProductCode    string `db:"product_code"`
	HeavyPaper     string `db:"heavy_paper"`
	HeavyPaperFee  int64  `db:"heavy_paper_fee"`
	ColorSingle    string `db:"color_single"`
	ColorSingleFee int64  `db:"color_single_fee"`
	ColorDouble    string `db:"color_double"`
	ColorDoubleFee int64  `db:"color_double_fee"`
	LaminationFee  int64  `db:"lamination_fee"`
	MinPrice       int64  `db:"min_price"`
}

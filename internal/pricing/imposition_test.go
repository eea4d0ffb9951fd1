package pricing

import (
	"errors"
	"testing"
)

func TestItemsPerSheet(t *testing.T) {
	// SRA3 printable area, A6 with 3 mm bleed: effective 111×154.
	// Normal grid fits 2×2=4, rotated fits 2×3=6.
	sheet := Sheet{Code: "SRA3", PrintableWidthMM: 310, PrintableHeightMM: 440}
	spec := ProductSpec{FinishedWidthMM: 105, FinishedHeightMM: 148, BleedMM: 3}

	if got := ItemsPerSheet(sheet, spec); got != 6 {
		t.Errorf("ItemsPerSheet = %d, want 6", got)
	}
}

func TestItemsPerSheet_OrientationSymmetry(t *testing.T) {
	sheet := Sheet{PrintableWidthMM: 310, PrintableHeightMM: 440}
	spec := ProductSpec{FinishedWidthMM: 105, FinishedHeightMM: 148, BleedMM: 3}

	swappedSheet := Sheet{PrintableWidthMM: 440, PrintableHeightMM: 310}
	swappedSpec := ProductSpec{FinishedWidthMM: 148, FinishedHeightMM: 105, BleedMM: 3}

	if a, b := ItemsPerSheet(sheet, spec), ItemsPerSheet(swappedSheet, swappedSpec); a != b {
		t.Errorf("swapping both axes changed the result: %d vs %d", a, b)
	}
}

func TestItemsPerSheet_NoFit(t *testing.T) {
	sheet := Sheet{PrintableWidthMM: 310, PrintableHeightMM: 440}
	spec := ProductSpec{FinishedWidthMM: 500, FinishedHeightMM: 700, BleedMM: 3}

	if got := ItemsPerSheet(sheet, spec); got != 0 {
		t.Errorf("ItemsPerSheet = %d, want 0 for oversized item", got)
	}
}

func TestQuoteBySheet(t *testing.T) {
	sheet := Sheet{Code: "SRA3", PrintableWidthMM: 310, PrintableHeightMM: 440}
	spec := ProductSpec{ProductCode: "flyer", FinishedWidthMM: 105, FinishedHeightMM: 148, BleedMM: 3}
	price := SheetPrice{SheetCode: "SRA3", PrintMode: "4+4", BasePricePerSheet: 180, SetupFee: 1500}

	usage, err := QuoteBySheet(sheet, spec, price, 500)
	if err != nil {
		t.Fatalf("QuoteBySheet failed: %v", err)
	}

	if usage.PerSheet != 6 {
		t.Errorf("PerSheet = %d, want 6", usage.PerSheet)
	}
	if usage.SheetsNeeded != 84 {
		t.Errorf("SheetsNeeded = %d, want 84", usage.SheetsNeeded)
	}
	if usage.BillableQty != 504 {
		t.Errorf("BillableQty = %d, want 504", usage.BillableQty)
	}
	if want := int64(84*180 + 1500); usage.PrintingPrice != want {
		t.Errorf("PrintingPrice = %d, want %d", usage.PrintingPrice, want)
	}
}

func TestQuoteBySheet_DoesNotFit(t *testing.T) {
	sheet := Sheet{Code: "SRA3", PrintableWidthMM: 310, PrintableHeightMM: 440}
	spec := ProductSpec{ProductCode: "poster", FinishedWidthMM: 700, FinishedHeightMM: 1000}

	_, err := QuoteBySheet(sheet, spec, SheetPrice{}, 10)
	if !errors.Is(err, ErrDoesNotFit) {
		t.Errorf("expected ErrDoesNotFit, got %v", err)
	}
}

func TestQuoteBySheet_InvalidQuantity(t *testing.T) {
	sheet := Sheet{PrintableWidthMM: 310, PrintableHeightMM: 440}
	spec := ProductSpec{FinishedWidthMM: 105, FinishedHeightMM: 148}

	_, err := QuoteBySheet(sheet, spec, SheetPrice{}, 0)
	if !errors.Is(err, ErrInvalidQuantity) {
		t.Errorf("expected ErrInvalidQuantity, got %v", err)
	}
}

package pricing

import (
	"errors"
	"reflect"
	"testing"
)

func flyerSnapshot() Snapshot {
	return Snapshot{
		Mode:     ModeAnchor,
		Currency: "HUF",
		AnchorTiers: map[int]float64{
			100:  6500,
			250:  9000,
			500:  12000,
			1000: 17000,
		},
		Rules: defaultRules(),
	}
}

func TestCalculateQuote_AnchorMode(t *testing.T) {
	req := Request{
		Product:    "flyer",
		Material:   "130g",
		Size:       "A5",
		Paper:      "130g",
		Color:      "4+4",
		Qty:        300,
		Lamination: true,
	}

	quote, err := CalculateQuote(req, flyerSnapshot())
	if err != nil {
		t.Fatalf("CalculateQuote failed: %v", err)
	}

	// Tier 250 @ 9000, +3000 double-sided color, +2000 lamination.
	if quote.FinalPrice != 14000 {
		t.Errorf("FinalPrice = %d, want 14000", quote.FinalPrice)
	}
	if quote.Currency != "HUF" {
		t.Errorf("Currency = %q, want HUF", quote.Currency)
	}
	if len(quote.Breakdown) != 3 {
		t.Fatalf("breakdown has %d lines, want 3", len(quote.Breakdown))
	}
	if quote.Breakdown[0].Amount != 9000 {
		t.Errorf("anchor line = %d, want 9000", quote.Breakdown[0].Amount)
	}
	if quote.Breakdown[1].Amount != 3000 {
		t.Errorf("color line = %d, want 3000", quote.Breakdown[1].Amount)
	}
	if quote.Breakdown[2].Amount != 2000 {
		t.Errorf("lamination line = %d, want 2000", quote.Breakdown[2].Amount)
	}
}

func TestCalculateQuote_Idempotent(t *testing.T) {
	req := Request{Product: "flyer", Material: "130g", Size: "A5", Paper: "170g", Color: "4+0", Qty: 120}
	snap := flyerSnapshot()

	first, err := CalculateQuote(req, snap)
	if err != nil {
		t.Fatalf("first call failed: %v", err)
	}
	second, err := CalculateQuote(req, snap)
	if err != nil {
		t.Fatalf("second call failed: %v", err)
	}

	if !reflect.DeepEqual(first, second) {
		t.Errorf("identical inputs produced different quotes:\n%+v\n%+v", first, second)
	}
}

func TestCalculateQuote_SheetMode(t *testing.T) {
	snap := Snapshot{
		Mode:     ModeSheet,
		Currency: "HUF",
		Sheet:    Sheet{Code: "SRA3", WidthMM: 320, HeightMM: 450, PrintableWidthMM: 310, PrintableHeightMM: 440},
		Spec:     ProductSpec{ProductCode: "flyer", FinishedWidthMM: 105, FinishedHeightMM: 148, BleedMM: 3},
		SheetPrice: SheetPrice{
			SheetCode: "SRA3", PrintMode: "4+4", BasePricePerSheet: 180, SetupFee: 1500,
		},
		Rules: defaultRules(),
	}
	req := Request{Product: "flyer", Size: "A6", Paper: "130g", Color: "1+0", Qty: 500}

	quote, err := CalculateQuote(req, snap)
	if err != nil {
		t.Fatalf("CalculateQuote failed: %v", err)
	}

	wantLabels := []string{
		"Sheet: SRA3",
		"Items per sheet: 6",
		"Sheets needed: 84",
		"Billable quantity: 504 pcs",
		"Printing 84 sheets (SRA3, 4+4)",
	}
	if len(quote.Breakdown) != len(wantLabels) {
		t.Fatalf("breakdown has %d lines, want %d", len(quote.Breakdown), len(wantLabels))
	}
	for i, label := range wantLabels {
		if quote.Breakdown[i].Label != label {
			t.Errorf("line %d = %q, want %q", i, quote.Breakdown[i].Label, label)
		}
	}

	// Informational lines carry no amount; only the printing line is priced.
	for i := 0; i < 4; i++ {
		if quote.Breakdown[i].Amount != 0 {
			t.Errorf("informational line %d has amount %d", i, quote.Breakdown[i].Amount)
		}
	}
	if want := int64(84*180 + 1500); quote.Breakdown[4].Amount != want {
		t.Errorf("printing line = %d, want %d", quote.Breakdown[4].Amount, want)
	}
	if quote.FinalPrice != int64(84*180+1500) {
		t.Errorf("FinalPrice = %d, want %d", quote.FinalPrice, 84*180+1500)
	}
}

func TestCalculateQuote_InvalidQuantity(t *testing.T) {
	for _, qty := range []int{0, -5} {
		req := Request{Product: "flyer", Material: "130g", Size: "A5", Qty: qty}
		_, err := CalculateQuote(req, flyerSnapshot())
		if !errors.Is(err, ErrInvalidQuantity) {
			t.Errorf("qty %d: expected ErrInvalidQuantity, got %v", qty, err)
		}
	}
}

func TestCalculateQuote_MissingAnchors(t *testing.T) {
	snap := flyerSnapshot()
	snap.AnchorTiers = nil

	req := Request{Product: "flyer", Material: "300g", Size: "A5", Qty: 100}
	_, err := CalculateQuote(req, snap)
	if !errors.Is(err, ErrNoPriceData) {
		t.Errorf("expected ErrNoPriceData, got %v", err)
	}
}

func TestCalculateQuote_SheetModeDoesNotFit(t *testing.T) {
	snap := Snapshot{
		Mode:  ModeSheet,
		Sheet: Sheet{Code: "SRA3", PrintableWidthMM: 310, PrintableHeightMM: 440},
		Spec:  ProductSpec{ProductCode: "poster", FinishedWidthMM: 700, FinishedHeightMM: 1000},
		Rules: defaultRules(),
	}

	_, err := CalculateQuote(Request{Product: "poster", Qty: 10}, snap)
	if !errors.Is(err, ErrDoesNotFit) {
		t.Errorf("expected ErrDoesNotFit, got %v", err)
	}
}

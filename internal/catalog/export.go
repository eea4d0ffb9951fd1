package catalog

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"
)

// ExportAnchorsXLSX renders the full anchor table as an Excel
// workbook for admins.
func (s *Store) ExportAnchorsXLSX(ctx context.Context) ([]byte, error) {
	anchors, err := s.ListAnchors(ctx, AnchorFilter{})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch anchors: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet("Anchors")
	if err != nil {
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}

	headers := []string{
		"ID", "Product", "Material", "Size", "Tier Qty", "Price", "Currency", "Created At",
	}
	for col, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		f.SetCellValue("Anchors", cell, header)
	}

	for row, anchor := range anchors {
		data := []interface{}{
			anchor.ID,
			anchor.ProductCode,
			anchor.MaterialCode,
			anchor.SizeKey,
			anchor.AnchorQty,
			anchor.AnchorPrice,
			anchor.Currency,
			anchor.CreatedAt.Format("2006-01-02 15:04"),
		}
		for col, value := range data {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			f.SetCellValue("Anchors", cell, value)
		}
	}

	style, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
	})
	f.SetCellStyle("Anchors", "A1", "H1", style)

	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}

	return buf.Bytes(), nil
}

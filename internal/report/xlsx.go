package report

import (
	"fmt"
	"io"

	"github.com/Dan9191/library-fees/internal/models"
	"github.com/xuri/excelize/v2"
)

const xlsxSheet = "Fees"

type xlsxEncoder struct{}

func init() {
	Register(xlsxEncoder{})
}

func (xlsxEncoder) Name() string      { return "xlsx" }
func (xlsxEncoder) Extension() string { return ".xlsx" }
func (xlsxEncoder) ContentType() string {
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}

// Encode writes a single "Fees" sheet. Fees are stored as text so the two
// decimals survive spreadsheet formatting.
func (xlsxEncoder) Encode(w io.Writer, totals []models.FeeTotal) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), xlsxSheet); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	header := make([]interface{}, len(models.ReportHeader))
	for i, h := range models.ReportHeader {
		header[i] = h
	}
	if err := f.SetSheetRow(xlsxSheet, "A1", &header); err != nil {
		return fmt.Errorf("failed to write xlsx header: %w", err)
	}

	for i, t := range totals {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("failed to address xlsx row: %w", err)
		}
		row := []interface{}{t.PatronID, t.Fixed()}
		if err := f.SetSheetRow(xlsxSheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write xlsx row: %w", err)
		}
	}

	if err := f.SetColWidth(xlsxSheet, "A", "B", 15); err != nil {
		return fmt.Errorf("failed to size xlsx columns: %w", err)
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write xlsx: %w", err)
	}
	return nil
}

package xlsx

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/dalton-nascimento-typeform/tiktok-tag-updater/internal/core/domain"
)

// ApplyRewrites writes each record's (possibly rewritten) URL values back
// into the table. Records are located by their Row number; anything outside
// the table is ignored.
func (t *ExportTable) ApplyRewrites(records []domain.SourceRecord) {
	for _, rec := range records {
		i := rec.Row - 2 // data rows start on sheet row 2
		if i < 0 || i >= len(t.Rows) {
			continue
		}
		t.setCell(i, "Click URL", rec.ClickURL)
		t.setCell(i, "Impression tracking URL", rec.ImpressionField)
	}
}

func (t *ExportTable) setCell(row int, column, value string) {
	idx, ok := t.cols[column]
	if !ok {
		return
	}
	for len(t.Rows[row]) <= idx {
		t.Rows[row] = append(t.Rows[row], "")
	}
	t.Rows[row][idx] = value
}

// Write serializes the table as an xlsx workbook with the same sheet name
// and shape as the input.
func (t *ExportTable) Write(w io.Writer) error {
	f := excelize.NewFile()
	defer f.Close()

	if t.Sheet != "Sheet1" {
		if err := f.SetSheetName("Sheet1", t.Sheet); err != nil {
			return fmt.Errorf("rename sheet: %w", err)
		}
	}
	if err := f.SetSheetRow(t.Sheet, "A1", &t.Header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for i, row := range t.Rows {
		addr, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(t.Sheet, addr, &row); err != nil {
			return fmt.Errorf("write row %d: %w", i+2, err)
		}
	}
	return f.Write(w)
}

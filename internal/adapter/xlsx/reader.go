// Package xlsx is the spreadsheet boundary: it loads TikTok export and DCM
// tag workbooks into typed records, validating required columns once per
// file, and serializes the rewritten export back out. The engine never sees
// a raw sheet.
package xlsx

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/dalton-nascimento-typeform/tiktok-tag-updater/internal/core/domain"
)

// ExportSheet is the sheet the TikTok export keeps its rows on. Readers fall
// back to the workbook's first sheet when it is absent.
const ExportSheet = "Ads"

// tagHeaderRow is where DCM tag workbooks put their header; rows 1-10 are
// vendor boilerplate.
const tagHeaderRow = 11

var exportColumns = []string{
	"Campaign Name",
	"Ad Group Name",
	"Ad Name",
	"Click URL",
	"Impression tracking URL",
}

var tagColumns = []string{
	"Campaign Name",
	"Placement Name",
	"Ad Name",
	"Click Tracker",
	"Impression Tracker",
}

// SchemaError reports required columns missing from an uploaded workbook.
// For the export workbook it is fatal to the run; for a tag workbook only
// that file is skipped.
type SchemaError struct {
	File    string
	Missing []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("%s: missing required columns: %s", e.File, strings.Join(e.Missing, ", "))
}

// ExportTable holds the full export sheet, header and all columns included,
// so the writer can reproduce its exact shape with only the two URL columns
// replaced.
type ExportTable struct {
	Sheet  string
	Header []string
	Rows   [][]string
	cols   map[string]int
}

// ReadExport parses a TikTok export workbook. name labels the file in
// errors. It returns the raw table alongside one SourceRecord per data row;
// record order matches sheet order.
func ReadExport(r io.Reader, name string) (*ExportTable, []domain.SourceRecord, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, nil, fmt.Errorf("open %s: %w", name, err)
	}
	defer f.Close()

	sheet := ExportSheet
	if idx, _ := f.GetSheetIndex(sheet); idx < 0 {
		sheet = f.GetSheetName(0)
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, nil, fmt.Errorf("read %s sheet %q: %w", name, sheet, err)
	}
	if len(rows) == 0 {
		return nil, nil, &SchemaError{File: name, Missing: exportColumns}
	}

	cols, missing := indexColumns(rows[0], exportColumns)
	if len(missing) > 0 {
		return nil, nil, &SchemaError{File: name, Missing: missing}
	}

	table := &ExportTable{Sheet: sheet, Header: rows[0], Rows: rows[1:], cols: cols}
	records := make([]domain.SourceRecord, 0, len(table.Rows))
	for i, row := range table.Rows {
		records = append(records, domain.SourceRecord{
			Row:             i + 2, // header occupies sheet row 1
			CampaignName:    cell(row, cols["Campaign Name"]),
			AdGroupName:     cell(row, cols["Ad Group Name"]),
			AdName:          cell(row, cols["Ad Name"]),
			ClickURL:        cell(row, cols["Click URL"]),
			ImpressionField: cell(row, cols["Impression tracking URL"]),
		})
	}
	return table, records, nil
}

// ReadTags parses one DCM tag workbook. Rows where all five required fields
// are empty (trailing vendor junk) are dropped. name labels the file in
// errors and is recorded on every TagRecord for duplicate-key reporting.
func ReadTags(r io.Reader, name string) ([]domain.TagRecord, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", name, err)
	}
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(0))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	if len(rows) < tagHeaderRow {
		return nil, &SchemaError{File: name, Missing: tagColumns}
	}

	cols, missing := indexColumns(rows[tagHeaderRow-1], tagColumns)
	if len(missing) > 0 {
		return nil, &SchemaError{File: name, Missing: missing}
	}

	var records []domain.TagRecord
	for _, row := range rows[tagHeaderRow:] {
		rec := domain.TagRecord{
			CampaignName:      cell(row, cols["Campaign Name"]),
			PlacementName:     cell(row, cols["Placement Name"]),
			AdName:            cell(row, cols["Ad Name"]),
			ClickTracker:      cell(row, cols["Click Tracker"]),
			ImpressionTracker: cell(row, cols["Impression Tracker"]),
			SourceFile:        name,
		}
		if rec.CampaignName == "" && rec.PlacementName == "" && rec.AdName == "" &&
			rec.ClickTracker == "" && rec.ImpressionTracker == "" {
			continue
		}
		records = append(records, rec)
	}
	return records, nil
}

// indexColumns maps required column names to their positions in the header.
// Header names are matched after trimming surrounding whitespace.
func indexColumns(header, required []string) (map[string]int, []string) {
	pos := make(map[string]int, len(header))
	for i, h := range header {
		pos[strings.TrimSpace(h)] = i
	}
	cols := make(map[string]int, len(required))
	var missing []string
	for _, name := range required {
		i, ok := pos[name]
		if !ok {
			missing = append(missing, name)
			continue
		}
		cols[name] = i
	}
	return cols, missing
}

// cell reads a column from a possibly ragged row.
func cell(row []string, idx int) string {
	if idx < len(row) {
		return row[idx]
	}
	return ""
}

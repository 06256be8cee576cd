package xlsx

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

var exportHeader = []string{
	"Campaign Name", "Ad Group Name", "Ad Name", "Click URL", "Impression tracking URL",
}

var tagHeader = []string{
	"Campaign Name", "Placement Name", "Ad Name", "Click Tracker", "Impression Tracker",
}

// buildWorkbook writes header and rows to the given sheet starting at
// headerRow and returns the serialized workbook.
func buildWorkbook(t *testing.T, sheet string, headerRow int, header []string, rows [][]string) *bytes.Buffer {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	if sheet != "Sheet1" {
		require.NoError(t, f.SetSheetName("Sheet1", sheet))
	}
	require.NoError(t, f.SetSheetRow(sheet, fmt.Sprintf("A%d", headerRow), &header))
	for i, row := range rows {
		require.NoError(t, f.SetSheetRow(sheet, fmt.Sprintf("A%d", headerRow+1+i), &row))
	}
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf
}

func TestReadExport(t *testing.T) {
	buf := buildWorkbook(t, ExportSheet, 1, exportHeader, [][]string{
		{"Camp", "Group 1", "Ad 1", "https://site.com/a", ""},
		{"Camp", "Group 2", "Ad 2", "", `tag "https://old.example.com/imp"`},
	})

	table, records, err := ReadExport(buf, "export.xlsx")
	require.NoError(t, err)
	assert.Equal(t, ExportSheet, table.Sheet)
	require.Len(t, records, 2)

	assert.Equal(t, 2, records[0].Row)
	assert.Equal(t, "Camp", records[0].CampaignName)
	assert.Equal(t, "Group 1", records[0].AdGroupName)
	assert.Equal(t, "https://site.com/a", records[0].ClickURL)

	assert.Equal(t, 3, records[1].Row)
	assert.Equal(t, `tag "https://old.example.com/imp"`, records[1].ImpressionField)
}

func TestReadExportFallsBackToFirstSheet(t *testing.T) {
	buf := buildWorkbook(t, "Sheet1", 1, exportHeader, [][]string{
		{"Camp", "G", "A", "https://site.com/a", ""},
	})

	table, records, err := ReadExport(buf, "export.xlsx")
	require.NoError(t, err)
	assert.Equal(t, "Sheet1", table.Sheet)
	require.Len(t, records, 1)
}

func TestReadExportMissingColumns(t *testing.T) {
	buf := buildWorkbook(t, ExportSheet, 1,
		[]string{"Campaign Name", "Ad Name", "Click URL"},
		[][]string{{"Camp", "Ad", "https://site.com/a"}})

	_, _, err := ReadExport(buf, "export.xlsx")
	var schemaErr *SchemaError
	require.ErrorAs(t, err, &schemaErr)
	assert.Equal(t, "export.xlsx", schemaErr.File)
	assert.Equal(t, []string{"Ad Group Name", "Impression tracking URL"}, schemaErr.Missing)
}

func TestReadExportNotAWorkbook(t *testing.T) {
	_, _, err := ReadExport(bytes.NewBufferString("not a zip archive"), "export.xlsx")
	require.Error(t, err)
}

func TestReadTags(t *testing.T) {
	buf := buildWorkbook(t, "Sheet1", tagHeaderRow, tagHeader, [][]string{
		{"Camp", "Place 1", "Ad 1", "https://track.example.com/c?u=", `<IMG SRC="https://track.example.com/i1">`},
		{"", "", "", "", ""}, // trailing vendor junk
		{"Camp", "Place 2", "Ad 2", "https://track.example.com/c?u=", `<IMG SRC="https://track.example.com/i2">`},
	})

	records, err := ReadTags(buf, "tags.xlsx")
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "Place 1", records[0].PlacementName)
	assert.Equal(t, "Place 2", records[1].PlacementName)
	assert.Equal(t, "tags.xlsx", records[0].SourceFile)
}

func TestReadTagsHeaderNotOnRowEleven(t *testing.T) {
	// header on row 1 means the file is not a DCM tag export
	buf := buildWorkbook(t, "Sheet1", 1, tagHeader, [][]string{
		{"Camp", "P", "A", "t", "i"},
	})

	_, err := ReadTags(buf, "tags.xlsx")
	var schemaErr *SchemaError
	require.ErrorAs(t, err, &schemaErr)
	assert.Equal(t, "tags.xlsx", schemaErr.File)
}

func TestApplyRewritesAndWriteRoundTrip(t *testing.T) {
	header := append(exportHeader[:len(exportHeader):len(exportHeader)], "Budget")
	buf := buildWorkbook(t, ExportSheet, 1, header, [][]string{
		{"Camp", "G1", "A1", "https://site.com/a", "", "100"},
		{"Camp", "G2", "A2", "https://site.com/b", "old", "200"},
	})

	table, records, err := ReadExport(buf, "export.xlsx")
	require.NoError(t, err)

	records[0].ClickURL = "https://track.example.com/c?u=https://site.com/a"
	records[0].ImpressionField = "https://track.example.com/i1"
	table.ApplyRewrites(records)

	var out bytes.Buffer
	require.NoError(t, table.Write(&out))

	f, err := excelize.OpenReader(&out)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(ExportSheet)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, header, rows[0])
	assert.Equal(t, "https://track.example.com/c?u=https://site.com/a", rows[1][3])
	assert.Equal(t, "https://track.example.com/i1", rows[1][4])
	// untouched row and extra column survive intact
	assert.Equal(t, "https://site.com/b", rows[2][3])
	assert.Equal(t, "200", rows[2][5])
}

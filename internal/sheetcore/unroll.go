package sheetcore

// UnrolledRow is one data row with the company name filled down from the
// nearest preceding non-empty company cell.
type UnrolledRow struct {
	// RowOffset is the 0-based position within the data rows (header
	// excluded); add 2 for the 1-based sheet row number.
	RowOffset    int
	Company      string
	Keyword      string
	PopularTopic string
	Visibility   string
	URL          string
}

// Unroll expands the sparse merged-cell layout every sheet in this system
// uses: a company name appears only on its first row and is implied blank
// below until the next company heading. Rows with an empty keyword cell are
// pure company-header rows and are dropped. A row that carries a keyword
// before any company heading keeps an empty company; callers filter those
// before persisting.
func Unroll(dataRows []SheetRow, cols ColumnIndexSet) []UnrolledRow {
	currentCompany := ""
	out := make([]UnrolledRow, 0, len(dataRows))
	for offset, row := range dataRows {
		if company := Cell(row, cols.Company); company != "" {
			currentCompany = company
		}
		keyword := Cell(row, cols.Keyword)
		if keyword == "" {
			continue
		}
		out = append(out, UnrolledRow{
			RowOffset:    offset,
			Company:      currentCompany,
			Keyword:      keyword,
			PopularTopic: Cell(row, cols.PopularTopic),
			Visibility:   Cell(row, cols.Visibility),
			URL:          Cell(row, cols.URL),
		})
	}
	return out
}

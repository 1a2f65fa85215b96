// Package sheetcore holds the pure reconciliation logic between spreadsheet
// tables and keyword records: header column discovery, company carry-forward
// unrolling, latest-record deduplication and the two reconciliation planners.
// Nothing in this package performs I/O.
package sheetcore

import (
	"regexp"
	"strings"
)

// SheetRow is one raw spreadsheet row. Cells are index-addressed and absent
// cells read as empty string via Cell.
type SheetRow = []string

// SheetTable is a full tab; row 0 is the header.
type SheetTable = [][]string

// Update is one batched cell write in A1 notation, the unit of output of
// every reconciliation plan.
type Update struct {
	Range  string     `json:"range"`
	Values [][]string `json:"values"`
}

// TabInfo describes one tab of a spreadsheet.
type TabInfo struct {
	Title string `json:"title"`
	ID    int64  `json:"sheetId"`
}

// Cell returns row[idx] or "" when the row is ragged or idx is -1.
func Cell(row SheetRow, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}

// ColumnLetter converts a 0-based column index to its A1 letter ("A", "Z",
// "AA", ...).
func ColumnLetter(colIndex int) string {
	letter := ""
	temp := colIndex + 1
	for temp > 0 {
		remainder := (temp - 1) % 26
		letter = string(rune('A'+remainder)) + letter
		temp = (temp - 1) / 26
	}
	return letter
}

// VisibilityCell encodes a visibility flag the way the sheets expect:
// lowercase "o" when visible, empty string when not. A literal "false" token
// must never reach a sheet.
func VisibilityCell(visible bool) string {
	if visible {
		return "o"
	}
	return ""
}

// ParseVisibilityCell is the inverse: only a case-insensitive "o" counts.
func ParseVisibilityCell(cell string) bool {
	return strings.EqualFold(strings.TrimSpace(cell), "o")
}

var sheetIDPattern = regexp.MustCompile(`/d/([a-zA-Z0-9-_]+)`)

// ExtractSheetID accepts either a bare spreadsheet id or a full Google Sheets
// URL and returns the id.
func ExtractSheetID(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if !strings.Contains(trimmed, "/") && !strings.Contains(trimmed, "http") {
		return trimmed
	}
	if m := sheetIDPattern.FindStringSubmatch(trimmed); len(m) > 1 {
		return m[1]
	}
	return trimmed
}

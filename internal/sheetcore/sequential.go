package sheetcore

import (
	"fmt"
	"strings"

	"github.com/wooil/sheetsync/internal/types"
)

// Cursor is the single shared consumption position over the record list.
// One cursor spans every tab of a sequential batch; it is never reset
// between tabs because the global record order is the correlation mechanism.
type Cursor struct {
	pos int
}

// Pos returns how many records have been consumed so far.
func (c *Cursor) Pos() int { return c.pos }

// MismatchError reports a failed sequential precondition. It aborts the
// entire batch: the operator must re-align the sheet and the database before
// retrying, so no partial writes may happen for this or any later tab.
type MismatchError struct {
	Tab      string
	Expected string
	Actual   string
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("keyword order out of sync on tab %q: expected %q, sheet has %q", e.Tab, e.Expected, e.Actual)
}

// OrderWarning records a keyword text mismatch on a consumed row. Position,
// not content, is authoritative in sequential mode, so the value is written
// anyway; the warning only surfaces the drift in logs.
type OrderWarning struct {
	RowNumber      int
	SheetKeyword   string
	RecordKeyword  string
	CursorPosition int
}

// SequentialTabPlan is the outcome of sequential reconciliation for one tab.
type SequentialTabPlan struct {
	Title       string         `json:"title"`
	Updates     []Update       `json:"-"`
	RowsMatched int            `json:"rowsMatched"`
	Skipped     bool           `json:"skipped,omitempty"`
	Reason      string         `json:"reason,omitempty"`
	Warnings    []OrderWarning `json:"-"`

	// UpdatedCells is filled in by the caller after the batch write.
	UpdatedCells int64 `json:"updatedCells"`
}

// PlanSequentialTab consumes records strictly in order for one tab: each
// data row with a non-empty keyword cell pulls the next unconsumed record
// and gets its visibility flag, regardless of keyword text.
//
// Before any row is consumed the tab must pass the synchronization check:
// the first non-empty-keyword row and the record at the cursor must carry
// the same trimmed keyword text. A mismatch returns *MismatchError and the
// cursor is left untouched. Running out of records mid-tab is not an error;
// remaining rows are simply left unmatched.
func PlanSequentialTab(title string, table SheetTable, records []types.Keyword, cur *Cursor) (SequentialTabPlan, error) {
	plan := SequentialTabPlan{Title: title}
	if len(table) == 0 {
		plan.Skipped = true
		plan.Reason = ReasonNoData
		return plan, nil
	}
	cols := ResolveColumns(table[0])
	if cols.Keyword == -1 || cols.Visibility == -1 {
		plan.Skipped = true
		plan.Reason = ReasonMissingColumns
		return plan, nil
	}

	dataRows := table[1:]

	firstSheetKeyword := ""
	for _, row := range dataRows {
		if kw := Cell(row, cols.Keyword); kw != "" {
			firstSheetKeyword = strings.TrimSpace(kw)
			break
		}
	}
	expectedKeyword := ""
	if cur.pos < len(records) {
		expectedKeyword = strings.TrimSpace(records[cur.pos].Keyword)
	}
	if expectedKeyword == "" || firstSheetKeyword != expectedKeyword {
		return plan, &MismatchError{Tab: title, Expected: expectedKeyword, Actual: firstSheetKeyword}
	}

	visibilityColumn := ColumnLetter(cols.Visibility)
	for offset, row := range dataRows {
		keyword := Cell(row, cols.Keyword)
		if keyword == "" {
			continue
		}
		if cur.pos >= len(records) {
			continue
		}
		record := records[cur.pos]
		cur.pos++

		rowNumber := offset + 2
		if record.Keyword != keyword {
			plan.Warnings = append(plan.Warnings, OrderWarning{
				RowNumber:      rowNumber,
				SheetKeyword:   keyword,
				RecordKeyword:  record.Keyword,
				CursorPosition: cur.pos,
			})
		}
		plan.Updates = append(plan.Updates, Update{
			Range:  cellRef(visibilityColumn, rowNumber),
			Values: [][]string{{VisibilityCell(record.Visibility)}},
		})
		plan.RowsMatched++
	}
	return plan, nil
}

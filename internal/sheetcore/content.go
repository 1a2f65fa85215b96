package sheetcore

import (
	"strconv"

	"github.com/wooil/sheetsync/internal/types"
)

// Skip reasons shown to the operator, kept in the dashboard's language.
const (
	ReasonNoData         = "시트 데이터 없음"
	ReasonMissingColumns = "필요 컬럼 없음"
)

// ContentPlan is the outcome of content-keyed reconciliation for one tab.
// When Skipped is true no matching was attempted and Reason says why.
type ContentPlan struct {
	Updates []Update
	Matched int
	Skipped bool
	Reason  string
}

// PlanContentKeyed matches each sheet row to the latest-record index by
// natural key and plans one visibility cell write per hit. Misses are not
// errors; the sheet may list keywords not yet ingested. If any required
// column is missing the whole tab is skipped rather than partially matched.
// Update order follows sheet row order top to bottom.
func PlanContentKeyed(table SheetTable, latest map[string]types.Keyword) ContentPlan {
	if len(table) == 0 {
		return ContentPlan{Skipped: true, Reason: ReasonNoData}
	}
	cols := ResolveColumns(table[0])
	if !cols.HasRequired() {
		return ContentPlan{Skipped: true, Reason: ReasonMissingColumns}
	}

	visibilityColumn := ColumnLetter(cols.Visibility)
	plan := ContentPlan{}
	for _, row := range Unroll(table[1:], cols) {
		if row.Company == "" {
			continue
		}
		kw, ok := latest[NaturalKey(row.Company, row.Keyword, row.PopularTopic, row.URL)]
		if !ok {
			continue
		}
		plan.Matched++
		// header is sheet row 1, first data row is 2
		rowNumber := row.RowOffset + 2
		plan.Updates = append(plan.Updates, Update{
			Range:  cellRef(visibilityColumn, rowNumber),
			Values: [][]string{{VisibilityCell(kw.Visibility)}},
		})
	}
	return plan
}

func cellRef(column string, rowNumber int) string {
	return column + strconv.Itoa(rowNumber)
}

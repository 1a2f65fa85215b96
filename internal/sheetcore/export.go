package sheetcore

import (
	"strconv"

	"github.com/wooil/sheetsync/internal/types"
)

// ExportHeaders is the fixed header row of every full-rewrite export.
var ExportHeaders = []string{
	"업체명",
	"키워드",
	"인기주제",
	"순위",
	"노출여부",
	"바이럴 체크",
	"인기글 순위",
	"이미지 매칭",
	"링크",
	"변경",
}

func rankCell(rank int) string {
	if rank == 0 {
		return ""
	}
	return strconv.Itoa(rank)
}

// MapKeywordRow lays one keyword record out in the fixed export column
// order. Column F is reserved for the manual viral check and stays blank.
func MapKeywordRow(kw types.Keyword) []string {
	return []string{
		kw.Company,
		kw.Keyword,
		kw.PopularTopic,
		rankCell(kw.Rank),
		VisibilityCell(kw.Visibility),
		"",
		rankCell(kw.RankWithCafe),
		VisibilityCell(kw.IsUpdateRequired),
		kw.URL,
		VisibilityCell(kw.IsNewLogic),
	}
}

// MapRootKeywordRow is the monthly-guarantee variant; it has no trailing
// change-flag column.
func MapRootKeywordRow(kw types.RootKeyword) []string {
	return []string{
		kw.Company,
		kw.Keyword,
		kw.PopularTopic,
		rankCell(kw.Rank),
		VisibilityCell(kw.Visibility),
		"",
		rankCell(kw.RankWithCafe),
		VisibilityCell(kw.IsUpdateRequired),
		kw.URL,
	}
}

// BuildExportTable prepends the header row (trimmed to the mapped row width)
// to the mapped data rows.
func BuildExportTable(rows [][]string) [][]string {
	width := len(ExportHeaders)
	if len(rows) > 0 && len(rows[0]) < width {
		width = len(rows[0])
	}
	table := make([][]string, 0, len(rows)+1)
	table = append(table, ExportHeaders[:width])
	table = append(table, rows...)
	return table
}

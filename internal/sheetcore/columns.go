package sheetcore

import "strings"

// ColumnIndexSet holds the resolved 0-based index of each semantic column,
// or -1 when the header does not carry it. It is derived fresh per table;
// header layout varies per tab so indices are never reused across tables.
type ColumnIndexSet struct {
	Company      int
	Keyword      int
	PopularTopic int
	Visibility   int
	URL          int
}

// HasRequired reports whether the columns every reconciliation needs were
// found.
func (c ColumnIndexSet) HasRequired() bool {
	return c.Company != -1 && c.Keyword != -1 && c.Visibility != -1
}

// The header synonym tables. Headers are typed by hand by operators, so
// matching is case-insensitive and, for visibility and popular-topic,
// substring based.
var (
	companyHeaders     = []string{"회사명", "name", "업체"}
	rootCompanyHeaders = []string{"업체명"}
	keywordHeaders     = []string{"키워드", "keyword"}
)

func findIndex(headers SheetRow, match func(h string) bool) int {
	for i, header := range headers {
		if match(strings.ToLower(header)) {
			return i
		}
	}
	return -1
}

func equalsAny(h string, candidates []string) bool {
	for _, c := range candidates {
		if h == c {
			return true
		}
	}
	return false
}

// ResolveColumns locates the semantic columns of a standard keyword sheet
// header row. Missing columns come back as -1; it never fails.
func ResolveColumns(headers SheetRow) ColumnIndexSet {
	return ColumnIndexSet{
		Company: findIndex(headers, func(h string) bool {
			return equalsAny(h, companyHeaders)
		}),
		Keyword: findIndex(headers, func(h string) bool {
			return equalsAny(h, keywordHeaders)
		}),
		PopularTopic: findIndex(headers, func(h string) bool {
			return strings.Contains(h, "인기주제")
		}),
		Visibility: findIndex(headers, func(h string) bool {
			return strings.Contains(h, "노출여부") || strings.Contains(h, "노출")
		}),
		URL: findIndex(headers, func(h string) bool {
			return h == "url"
		}),
	}
}

// ResolveRootColumns is the monthly-guarantee sheet variant: the company
// header is "업체명" (or anything containing "업체"), visibility additionally
// matches "공정위", and the url column is the one whose header mentions both
// "시트" and "링크".
func ResolveRootColumns(headers SheetRow) ColumnIndexSet {
	return ColumnIndexSet{
		Company: findIndex(headers, func(h string) bool {
			return equalsAny(h, rootCompanyHeaders) || strings.Contains(h, "업체")
		}),
		Keyword: findIndex(headers, func(h string) bool {
			return equalsAny(h, keywordHeaders)
		}),
		PopularTopic: findIndex(headers, func(h string) bool {
			return strings.Contains(h, "인기주제")
		}),
		Visibility: findIndex(headers, func(h string) bool {
			return strings.Contains(h, "노출여부") || strings.Contains(h, "노출") || strings.Contains(h, "공정위")
		}),
		URL: findIndex(headers, func(h string) bool {
			return strings.Contains(h, "시트") && strings.Contains(h, "링크")
		}),
	}
}

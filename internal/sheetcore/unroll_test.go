package sheetcore

import "testing"

func testCols() ColumnIndexSet {
	return ColumnIndexSet{Company: 0, Keyword: 1, PopularTopic: 2, Visibility: 3, URL: -1}
}

func TestUnrollCarriesCompanyForward(t *testing.T) {
	rows := []SheetRow{
		{"A Corp", "kw1", "", "o"},
		{"", "kw2", "", ""},
		{"B Corp", "kw3", "", ""},
		{"", "kw4", "", "o"},
	}
	out := Unroll(rows, testCols())
	if len(out) != 4 {
		t.Fatalf("expected 4 rows, got %d", len(out))
	}
	wantCompanies := []string{"A Corp", "A Corp", "B Corp", "B Corp"}
	for i, row := range out {
		if row.Company != wantCompanies[i] {
			t.Fatalf("row %d: company %q, want %q", i, row.Company, wantCompanies[i])
		}
	}
}

func TestUnrollDropsCompanyHeaderRows(t *testing.T) {
	rows := []SheetRow{
		{"A Corp", "", "", ""},
		{"", "kw1", "", ""},
	}
	out := Unroll(rows, testCols())
	if len(out) != 1 {
		t.Fatalf("expected 1 row, got %d", len(out))
	}
	if out[0].Company != "A Corp" || out[0].Keyword != "kw1" {
		t.Fatalf("unexpected row: %+v", out[0])
	}
	if out[0].RowOffset != 1 {
		t.Fatalf("row offset must track the original position, got %d", out[0].RowOffset)
	}
}

func TestUnrollKeywordBeforeAnyCompany(t *testing.T) {
	rows := []SheetRow{
		{"", "orphan", "", ""},
		{"A Corp", "kw1", "", ""},
	}
	out := Unroll(rows, testCols())
	if len(out) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(out))
	}
	if out[0].Company != "" {
		t.Fatalf("orphan row should keep empty company, got %q", out[0].Company)
	}
}

func TestUnrollRaggedRows(t *testing.T) {
	rows := []SheetRow{
		{"A Corp"},
		{"", "kw1"},
	}
	out := Unroll(rows, testCols())
	if len(out) != 1 {
		t.Fatalf("expected 1 row, got %d", len(out))
	}
	if out[0].Visibility != "" || out[0].PopularTopic != "" {
		t.Fatalf("short rows should read as empty cells: %+v", out[0])
	}
}

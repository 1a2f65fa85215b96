package sheetcore

import "testing"

func TestResolveColumns(t *testing.T) {
	headers := []string{"회사명", "키워드", "인기주제", "노출여부", "URL"}
	cols := ResolveColumns(headers)
	if cols.Company != 0 || cols.Keyword != 1 || cols.PopularTopic != 2 || cols.Visibility != 3 || cols.URL != 4 {
		t.Fatalf("unexpected indices: %+v", cols)
	}
}

func TestResolveColumnsSubstringAndCase(t *testing.T) {
	headers := []string{"Name", "Keyword", "5월 노출", "월간 인기주제 순위"}
	cols := ResolveColumns(headers)
	if cols.Company != 0 {
		t.Fatalf("company: got %d", cols.Company)
	}
	if cols.Keyword != 1 {
		t.Fatalf("keyword: got %d", cols.Keyword)
	}
	if cols.Visibility != 2 {
		t.Fatalf("visibility should substring-match 노출, got %d", cols.Visibility)
	}
	if cols.PopularTopic != 3 {
		t.Fatalf("popularTopic should substring-match 인기주제, got %d", cols.PopularTopic)
	}
	if cols.URL != -1 {
		t.Fatalf("url should be -1, got %d", cols.URL)
	}
}

func TestResolveColumnsFirstMatchWins(t *testing.T) {
	headers := []string{"노출여부", "노출 체크"}
	cols := ResolveColumns(headers)
	if cols.Visibility != 0 {
		t.Fatalf("expected leftmost visibility column, got %d", cols.Visibility)
	}
}

func TestResolveColumnsMissing(t *testing.T) {
	cols := ResolveColumns([]string{"가나다", "라마바"})
	if cols.Company != -1 || cols.Keyword != -1 || cols.Visibility != -1 || cols.PopularTopic != -1 || cols.URL != -1 {
		t.Fatalf("expected all -1, got %+v", cols)
	}
	if cols.HasRequired() {
		t.Fatal("HasRequired should be false")
	}
}

func TestResolveRootColumns(t *testing.T) {
	headers := []string{"업체명", "키워드", "공정위 표기", "원고 시트 링크"}
	cols := ResolveRootColumns(headers)
	if cols.Company != 0 {
		t.Fatalf("company: got %d", cols.Company)
	}
	if cols.Visibility != 2 {
		t.Fatalf("visibility should match 공정위, got %d", cols.Visibility)
	}
	if cols.URL != 3 {
		t.Fatalf("url should match 시트+링크, got %d", cols.URL)
	}
}

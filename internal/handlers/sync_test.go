package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/wooil/sheetsync/internal/config"
	"github.com/wooil/sheetsync/internal/logger"
	"github.com/wooil/sheetsync/internal/services"
	"github.com/wooil/sheetsync/internal/sheetcore"
	"github.com/wooil/sheetsync/internal/types"
)

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("development")
	if err != nil {
		t.Fatalf("init logger: %v", err)
	}
	return log
}

type fakeSyncService struct {
	result      services.ReplaceResult
	err         error
	partitions  []types.Partition
	lastSheetID string
	lastTab     string
}

func (f *fakeSyncService) SyncPartition(_ context.Context, sheetID, tabName string, partition types.Partition) (services.ReplaceResult, error) {
	f.lastSheetID = sheetID
	f.lastTab = tabName
	f.partitions = append(f.partitions, partition)
	return f.result, f.err
}

func (f *fakeSyncService) SyncAll(context.Context) (map[types.Partition]services.ReplaceResult, error) {
	return map[types.Partition]services.ReplaceResult{types.PartitionPackage: f.result}, f.err
}

func (f *fakeSyncService) SyncRoot(context.Context) (services.ReplaceResult, error) {
	return f.result, f.err
}

type fakeReconcileService struct {
	report         services.TabReport
	batch          services.BatchReport
	err            error
	sequentialRuns int
	contentAllRuns int
}

func (f *fakeReconcileService) ContentKeyed(context.Context, string, string) (services.TabReport, error) {
	return f.report, f.err
}

func (f *fakeReconcileService) ContentKeyedAll(context.Context, string) (services.BatchReport, error) {
	f.contentAllRuns++
	return f.batch, f.err
}

func (f *fakeReconcileService) Sequential(context.Context, string) (services.BatchReport, error) {
	f.sequentialRuns++
	return f.batch, f.err
}

type fakeExportService struct {
	result    services.ExportResult
	err       error
	companies []string
}

func (f *fakeExportService) ExportPartition(context.Context, string, string, types.Partition) (services.ExportResult, error) {
	return f.result, f.err
}

func (f *fakeExportService) ExportCompanies(_ context.Context, _ string, _ string, companies []string) (services.ExportResult, error) {
	f.companies = companies
	return f.result, f.err
}

func (f *fakeExportService) ExportRoot(context.Context) (services.ExportResult, error) {
	return f.result, f.err
}

func newTestHandler(t *testing.T, syncSvc *fakeSyncService, recSvc *fakeReconcileService, expSvc *fakeExportService) *SyncHandler {
	t.Helper()
	gin.SetMode(gin.TestMode)
	return NewSyncHandler(testLogger(t), config.Default(), syncSvc, recSvc, expSvc)
}

func postJSON(handler gin.HandlerFunc, body any) *httptest.ResponseRecorder {
	raw, _ := json.Marshal(body)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/", bytes.NewReader(raw))
	c.Request.Header.Set("Content-Type", "application/json")
	handler(c)
	return w
}

func TestSyncKeywordsValidation(t *testing.T) {
	h := newTestHandler(t, &fakeSyncService{}, &fakeReconcileService{}, &fakeExportService{})

	w := postJSON(h.SyncKeywords, map[string]string{"sheetId": "abc"})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("missing fields must 400, got %d", w.Code)
	}

	w = postJSON(h.SyncKeywords, map[string]string{"sheetId": "abc", "sheetName": "패키지", "sheetType": "nonsense"})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("unknown sheetType must 400, got %d", w.Code)
	}
}

func TestSyncKeywordsExtractsSheetIDFromURL(t *testing.T) {
	syncSvc := &fakeSyncService{result: services.ReplaceResult{Deleted: 3, Inserted: 5}}
	h := newTestHandler(t, syncSvc, &fakeReconcileService{}, &fakeExportService{})

	w := postJSON(h.SyncKeywords, map[string]string{
		"sheetId":   "https://docs.google.com/spreadsheets/d/abc123/edit#gid=0",
		"sheetName": "패키지",
		"sheetType": "package",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if syncSvc.lastSheetID != "abc123" {
		t.Fatalf("sheet id not extracted from URL: %q", syncSvc.lastSheetID)
	}

	var resp map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("bad response body: %v", err)
	}
	if resp["deleted"] != float64(3) || resp["inserted"] != float64(5) {
		t.Fatalf("replace counts missing: %v", resp)
	}
}

func TestImportAllDispatchesSequential(t *testing.T) {
	recSvc := &fakeReconcileService{batch: services.BatchReport{TotalUpdated: 7}}
	h := newTestHandler(t, &fakeSyncService{}, recSvc, &fakeExportService{})

	w := postJSON(h.ImportVisibility, map[string]string{"sheetId": "abc", "sheetName": "all"})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if recSvc.sequentialRuns != 1 || recSvc.contentAllRuns != 0 {
		t.Fatalf("sheetName=all must run sequential mode: seq=%d content=%d", recSvc.sequentialRuns, recSvc.contentAllRuns)
	}
}

func TestImportAllContentMode(t *testing.T) {
	recSvc := &fakeReconcileService{}
	h := newTestHandler(t, &fakeSyncService{}, recSvc, &fakeExportService{})

	w := postJSON(h.ImportVisibility, map[string]string{"sheetId": "abc", "sheetName": "all", "mode": "content"})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if recSvc.contentAllRuns != 1 || recSvc.sequentialRuns != 0 {
		t.Fatalf("mode=content must run content-keyed pass: seq=%d content=%d", recSvc.sequentialRuns, recSvc.contentAllRuns)
	}
}

func TestImportMismatchReturnsResyncEnvelope(t *testing.T) {
	recSvc := &fakeReconcileService{err: &sheetcore.MismatchError{
		Tab:      "3. 노출체크 프로그램",
		Expected: "강남 치과",
		Actual:   "분당 치과",
	}}
	h := newTestHandler(t, &fakeSyncService{}, recSvc, &fakeExportService{})

	w := postJSON(h.ImportVisibility, map[string]string{"sheetId": "abc", "sheetName": "all"})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("mismatch must 400, got %d", w.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("bad response body: %v", err)
	}
	if resp["expected"] != "강남 치과" || resp["actual"] != "분당 치과" {
		t.Fatalf("envelope missing expected/actual: %v", resp)
	}
	if resp["sheet"] != "3. 노출체크 프로그램" {
		t.Fatalf("envelope missing sheet: %v", resp)
	}
}

func TestExportPetUsesConfiguredCompanies(t *testing.T) {
	expSvc := &fakeExportService{result: services.ExportResult{Title: "애견", TotalRows: 4}}
	h := newTestHandler(t, &fakeSyncService{}, &fakeReconcileService{}, expSvc)

	w := postJSON(h.ExportPet, map[string]string{"sheetId": "abc", "sheetName": "애견"})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if len(expSvc.companies) == 0 {
		t.Fatal("pet export must pass the configured company list")
	}
}

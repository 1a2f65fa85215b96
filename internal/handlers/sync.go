package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/wooil/sheetsync/internal/config"
	"github.com/wooil/sheetsync/internal/logger"
	"github.com/wooil/sheetsync/internal/services"
	"github.com/wooil/sheetsync/internal/sheetcore"
	"github.com/wooil/sheetsync/internal/types"
)

// SyncHandler exposes the sheet↔DB operations: partition sync, the two
// import (reconciliation) modes and the full-rewrite exports.
type SyncHandler struct {
	log              *logger.Logger
	cfg              config.Config
	syncService      services.SyncService
	reconcileService services.ReconcileService
	exportService    services.ExportService
}

func NewSyncHandler(log *logger.Logger, cfg config.Config, syncService services.SyncService, reconcileService services.ReconcileService, exportService services.ExportService) *SyncHandler {
	return &SyncHandler{
		log:              log.With("handler", "SyncHandler"),
		cfg:              cfg,
		syncService:      syncService,
		reconcileService: reconcileService,
		exportService:    exportService,
	}
}

type sheetRequest struct {
	SheetID   string `json:"sheetId"`
	SheetName string `json:"sheetName"`
	SheetType string `json:"sheetType"`
	// Mode applies to sheetName "all": "content" runs the content-keyed pass
	// per configured tab instead of the sequential cursor.
	Mode string `json:"mode"`
}

// SyncKeywords replaces one partition from its sheet tab.
func (h *SyncHandler) SyncKeywords(c *gin.Context) {
	var req sheetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "sheetId, sheetName, sheetType이 필요합니다", err)
		return
	}
	if req.SheetID == "" || req.SheetName == "" || req.SheetType == "" {
		RespondError(c, http.StatusBadRequest, "sheetId, sheetName, sheetType이 필요합니다", nil)
		return
	}
	partition, err := types.ParsePartition(req.SheetType)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "sheetType은 package | dogmaru | dogmaru-exclude | pet 중 하나여야 합니다", err)
		return
	}

	result, err := h.syncService.SyncPartition(c.Request.Context(), sheetcore.ExtractSheetID(req.SheetID), req.SheetName, partition)
	if err != nil {
		if errors.Is(err, sheetcore.ErrMissingColumns) {
			RespondError(c, http.StatusBadRequest, "필요한 컬럼을 찾을 수 없습니다", err)
			return
		}
		h.log.Error("SyncKeywords failed", "error", err, "partition", partition)
		RespondError(c, http.StatusInternalServerError, "서버 에러가 발생했습니다", err)
		return
	}
	RespondOK(c, gin.H{"success": true, "deleted": result.Deleted, "inserted": result.Inserted})
}

// ImportVisibility writes DB visibility flags back into the sheet. The "all"
// sentinel selects sequential mode over every managed tab; anything else is
// a single content-keyed tab.
func (h *SyncHandler) ImportVisibility(c *gin.Context) {
	var req sheetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "sheetId, sheetName이 필요합니다", err)
		return
	}
	if req.SheetID == "" || req.SheetName == "" {
		RespondError(c, http.StatusBadRequest, "sheetId, sheetName이 필요합니다", nil)
		return
	}
	sheetID := sheetcore.ExtractSheetID(req.SheetID)

	if strings.EqualFold(req.SheetName, "all") {
		if req.Mode == "content" {
			h.contentImportAll(c, sheetID)
			return
		}
		h.sequentialImport(c, sheetID)
		return
	}

	report, err := h.reconcileService.ContentKeyed(c.Request.Context(), sheetID, req.SheetName)
	if err != nil {
		h.log.Error("ImportVisibility failed", "error", err, "tab", req.SheetName)
		RespondError(c, http.StatusInternalServerError, "서버 에러가 발생했습니다", err)
		return
	}
	RespondOK(c, gin.H{"success": true, "updated": report.UpdatedCells, "result": report})
}

func (h *SyncHandler) sequentialImport(c *gin.Context, sheetID string) {
	batch, err := h.reconcileService.Sequential(c.Request.Context(), sheetID)
	if err != nil {
		var mismatch *sheetcore.MismatchError
		if errors.As(err, &mismatch) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":    "첫 키워드 불일치 (순서 동기화 필요)",
				"sheet":    mismatch.Tab,
				"expected": mismatch.Expected,
				"actual":   mismatch.Actual,
				"hint":     "시트 순서대로 DB 동기화 후 다시 시도하세요",
			})
			return
		}
		h.log.Error("Sequential import failed", "error", err)
		RespondError(c, http.StatusInternalServerError, "서버 에러가 발생했습니다", err)
		return
	}
	RespondOK(c, gin.H{"success": true, "updated": batch.TotalUpdated, "results": batch.Results})
}

func (h *SyncHandler) contentImportAll(c *gin.Context, sheetID string) {
	batch, err := h.reconcileService.ContentKeyedAll(c.Request.Context(), sheetID)
	if err != nil {
		h.log.Error("Content-keyed import failed", "error", err)
		RespondError(c, http.StatusInternalServerError, "서버 에러가 발생했습니다", err)
		return
	}
	RespondOK(c, gin.H{"success": true, "updated": batch.TotalUpdated, "results": batch.Results})
}

// ExportKeywords is the full-rewrite path for one partition tab.
func (h *SyncHandler) ExportKeywords(c *gin.Context) {
	var req sheetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "sheetId, sheetName, sheetType이 필요합니다", err)
		return
	}
	if req.SheetID == "" || req.SheetName == "" || req.SheetType == "" {
		RespondError(c, http.StatusBadRequest, "sheetId, sheetName, sheetType이 필요합니다", nil)
		return
	}
	partition, err := types.ParsePartition(req.SheetType)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "sheetType은 package | dogmaru | dogmaru-exclude | pet 중 하나여야 합니다", err)
		return
	}

	result, err := h.exportService.ExportPartition(c.Request.Context(), sheetcore.ExtractSheetID(req.SheetID), req.SheetName, partition)
	if err != nil {
		h.log.Error("ExportKeywords failed", "error", err, "partition", partition)
		RespondError(c, http.StatusInternalServerError, "서버 에러가 발생했습니다", err)
		return
	}
	RespondOK(c, gin.H{"success": true, "title": result.Title, "totalRows": result.TotalRows, "updatedCells": result.UpdatedCells, "message": result.Message})
}

// ExportPet rewrites the pet tab from the pet companies' records.
func (h *SyncHandler) ExportPet(c *gin.Context) {
	var req sheetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "sheetId와 sheetName이 필요합니다", err)
		return
	}
	if req.SheetID == "" || req.SheetName == "" {
		RespondError(c, http.StatusBadRequest, "sheetId와 sheetName이 필요합니다", nil)
		return
	}

	result, err := h.exportService.ExportCompanies(c.Request.Context(), sheetcore.ExtractSheetID(req.SheetID), req.SheetName, h.cfg.PetCompanies)
	if err != nil {
		h.log.Error("ExportPet failed", "error", err)
		RespondError(c, http.StatusInternalServerError, "서버 에러가 발생했습니다", err)
		return
	}
	RespondOK(c, gin.H{"success": true, "title": result.Title, "totalRows": result.TotalRows, "updatedCells": result.UpdatedCells, "message": result.Message})
}

// SyncRoot replaces the root-keyword collection from the monthly-guarantee
// sheet.
func (h *SyncHandler) SyncRoot(c *gin.Context) {
	result, err := h.syncService.SyncRoot(c.Request.Context())
	if err != nil {
		if errors.Is(err, sheetcore.ErrMissingColumns) {
			RespondError(c, http.StatusBadRequest, "필수 컬럼(키워드, 업체명)을 찾을 수 없습니다", err)
			return
		}
		h.log.Error("SyncRoot failed", "error", err)
		RespondError(c, http.StatusInternalServerError, "서버 에러가 발생했습니다", err)
		return
	}
	RespondOK(c, gin.H{"success": true, "deleted": result.Deleted, "inserted": result.Inserted})
}

// ImportRoot materializes the root-keyword collection into its sheet.
func (h *SyncHandler) ImportRoot(c *gin.Context) {
	result, err := h.exportService.ExportRoot(c.Request.Context())
	if err != nil {
		h.log.Error("ImportRoot failed", "error", err)
		RespondError(c, http.StatusInternalServerError, "서버 에러가 발생했습니다", err)
		return
	}
	RespondOK(c, gin.H{"success": true, "totalRows": result.TotalRows, "updated": result.UpdatedCells, "message": result.Message})
}

// CronSyncAll refreshes every standing partition; wired to the scheduler and
// callable by hand.
func (h *SyncHandler) CronSyncAll(c *gin.Context) {
	results, err := h.syncService.SyncAll(c.Request.Context())
	if err != nil {
		h.log.Error("CronSyncAll failed", "error", err)
		RespondError(c, http.StatusInternalServerError, "동기화 실패", err)
		return
	}
	totals := services.ReplaceResult{}
	for _, result := range results {
		totals.Deleted += result.Deleted
		totals.Inserted += result.Inserted
	}
	RespondOK(c, gin.H{"success": true, "results": results, "totals": totals})
}

// CronImportAll runs the sequential import over the configured keyword
// sheet.
func (h *SyncHandler) CronImportAll(c *gin.Context) {
	h.sequentialImport(c, h.cfg.Keywords.SheetID)
}

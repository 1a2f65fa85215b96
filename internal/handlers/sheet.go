package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/wooil/sheetsync/internal/clients/sheets"
	"github.com/wooil/sheetsync/internal/logger"
	"github.com/wooil/sheetsync/internal/sheetcore"
)

// SheetHandler is the raw pass-through surface: read a tab, append or update
// a range, batch-write cells, list tab metadata. The dashboard uses it for
// ad-hoc inspection next to the managed sync flows.
type SheetHandler struct {
	log    *logger.Logger
	sheets sheets.Client
}

func NewSheetHandler(log *logger.Logger, sheetsClient sheets.Client) *SheetHandler {
	return &SheetHandler{
		log:    log.With("handler", "SheetHandler"),
		sheets: sheetsClient,
	}
}

func (h *SheetHandler) Read(c *gin.Context) {
	sheetID := sheetcore.ExtractSheetID(c.Param("id"))
	tabName := c.Query("sheetName")

	table, err := h.sheets.Read(c.Request.Context(), sheetID, tabName)
	if err != nil {
		h.log.Error("Read failed", "error", err, "sheetId", sheetID, "tab", tabName)
		RespondError(c, http.StatusInternalServerError, "시트를 읽을 수 없습니다", err)
		return
	}
	RespondOK(c, gin.H{"data": table})
}

type writeRequest struct {
	SheetName string     `json:"sheetName"`
	Range     string     `json:"range"`
	Values    [][]string `json:"values"`
}

func (h *SheetHandler) Append(c *gin.Context) {
	sheetID := sheetcore.ExtractSheetID(c.Param("id"))
	var req writeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "values 배열이 필요합니다", err)
		return
	}
	if len(req.Values) == 0 {
		RespondError(c, http.StatusBadRequest, "values 배열이 필요합니다", nil)
		return
	}
	rangeA1 := req.Range
	if rangeA1 == "" {
		rangeA1 = sheets.DefaultRange
	}

	if err := h.sheets.Append(c.Request.Context(), sheetID, req.SheetName, rangeA1, req.Values); err != nil {
		h.log.Error("Append failed", "error", err, "sheetId", sheetID, "tab", req.SheetName)
		RespondError(c, http.StatusInternalServerError, "시트에 추가할 수 없습니다", err)
		return
	}
	RespondOK(c, gin.H{"success": true, "rows": len(req.Values)})
}

func (h *SheetHandler) Update(c *gin.Context) {
	sheetID := sheetcore.ExtractSheetID(c.Param("id"))
	var req writeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "range와 values가 필요합니다", err)
		return
	}
	if req.Range == "" || len(req.Values) == 0 {
		RespondError(c, http.StatusBadRequest, "range와 values가 필요합니다", nil)
		return
	}

	if err := h.sheets.Update(c.Request.Context(), sheetID, req.SheetName, req.Range, req.Values); err != nil {
		h.log.Error("Update failed", "error", err, "sheetId", sheetID, "tab", req.SheetName, "range", req.Range)
		RespondError(c, http.StatusInternalServerError, "시트를 수정할 수 없습니다", err)
		return
	}
	RespondOK(c, gin.H{"success": true})
}

type batchUpdateRequest struct {
	SheetName string             `json:"sheetName"`
	Updates   []sheetcore.Update `json:"updates"`
}

func (h *SheetHandler) BatchUpdate(c *gin.Context) {
	sheetID := sheetcore.ExtractSheetID(c.Param("id"))
	var req batchUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "updates 배열이 필요합니다", err)
		return
	}
	if len(req.Updates) == 0 {
		RespondError(c, http.StatusBadRequest, "updates 배열이 필요합니다", nil)
		return
	}

	updated, err := h.sheets.BatchUpdate(c.Request.Context(), sheetID, req.SheetName, req.Updates)
	if err != nil {
		h.log.Error("BatchUpdate failed", "error", err, "sheetId", sheetID, "tab", req.SheetName)
		RespondError(c, http.StatusInternalServerError, "시트를 수정할 수 없습니다", err)
		return
	}
	RespondOK(c, gin.H{"success": true, "totalUpdated": updated})
}

func (h *SheetHandler) Metadata(c *gin.Context) {
	sheetID := sheetcore.ExtractSheetID(c.Param("id"))

	tabs, err := h.sheets.ListTabs(c.Request.Context(), sheetID)
	if err != nil {
		h.log.Error("Metadata failed", "error", err, "sheetId", sheetID)
		RespondError(c, http.StatusInternalServerError, "시트 정보를 읽을 수 없습니다", err)
		return
	}
	RespondOK(c, gin.H{"sheets": tabs})
}

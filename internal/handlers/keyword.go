package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/wooil/sheetsync/internal/logger"
	"github.com/wooil/sheetsync/internal/services"
	"github.com/wooil/sheetsync/internal/types"
)

type KeywordHandler struct {
	log            *logger.Logger
	keywordService services.KeywordService
	statsService   services.StatsService
}

func NewKeywordHandler(log *logger.Logger, keywordService services.KeywordService, statsService services.StatsService) *KeywordHandler {
	return &KeywordHandler{
		log:            log.With("handler", "KeywordHandler"),
		keywordService: keywordService,
		statsService:   statsService,
	}
}

func (h *KeywordHandler) List(c *gin.Context) {
	keywords, err := h.keywordService.List(c.Request.Context())
	if err != nil {
		h.log.Error("List failed", "error", err)
		RespondError(c, http.StatusInternalServerError, "서버 에러가 발생했습니다", err)
		return
	}
	RespondOK(c, gin.H{"data": keywords})
}

func (h *KeywordHandler) Replace(c *gin.Context) {
	var keywords []types.Keyword
	if err := c.ShouldBindJSON(&keywords); err != nil {
		RespondError(c, http.StatusBadRequest, "키워드 배열이 필요합니다", err)
		return
	}
	result, err := h.keywordService.Replace(c.Request.Context(), keywords)
	if err != nil {
		h.log.Error("Replace failed", "error", err)
		RespondError(c, http.StatusInternalServerError, "서버 에러가 발생했습니다", err)
		return
	}
	RespondOK(c, gin.H{"success": true, "deleted": result.Deleted, "inserted": result.Inserted})
}

type visibilityPatch struct {
	Company    string `json:"company"`
	Keyword    string `json:"keyword"`
	Visibility *bool  `json:"visibility"`
}

func (h *KeywordHandler) UpdateVisibility(c *gin.Context) {
	var patch visibilityPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		RespondError(c, http.StatusBadRequest, "company, keyword, visibility가 필요합니다", err)
		return
	}
	if patch.Company == "" || patch.Keyword == "" || patch.Visibility == nil {
		RespondError(c, http.StatusBadRequest, "company, keyword, visibility가 필요합니다", nil)
		return
	}
	updated, err := h.keywordService.UpdateVisibility(c.Request.Context(), patch.Company, patch.Keyword, *patch.Visibility)
	if err != nil {
		h.log.Error("UpdateVisibility failed", "error", err, "company", patch.Company, "keyword", patch.Keyword)
		RespondError(c, http.StatusInternalServerError, "서버 에러가 발생했습니다", err)
		return
	}
	RespondOK(c, gin.H{"success": true, "data": updated})
}

func (h *KeywordHandler) Stats(c *gin.Context) {
	stats, err := h.statsService.VisibilityStats(c.Request.Context())
	if err != nil {
		h.log.Error("Stats failed", "error", err)
		RespondError(c, http.StatusInternalServerError, "서버 에러가 발생했습니다", err)
		return
	}
	RespondOK(c, gin.H{"data": stats})
}

func (h *KeywordHandler) ByCompany(c *gin.Context) {
	name := c.Param("name")
	if name == "" {
		RespondError(c, http.StatusBadRequest, "회사명이 필요합니다", nil)
		return
	}
	keywords, err := h.keywordService.ListByCompany(c.Request.Context(), name)
	if err != nil {
		h.log.Error("ByCompany failed", "error", err, "company", name)
		RespondError(c, http.StatusInternalServerError, "서버 에러가 발생했습니다", err)
		return
	}
	RespondOK(c, gin.H{"data": keywords})
}

func (h *KeywordHandler) ListRoot(c *gin.Context) {
	keywords, err := h.keywordService.ListRoot(c.Request.Context())
	if err != nil {
		h.log.Error("ListRoot failed", "error", err)
		RespondError(c, http.StatusInternalServerError, "서버 에러가 발생했습니다", err)
		return
	}
	RespondOK(c, gin.H{"success": true, "keywords": keywords})
}

package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"akiya-analysis-service/internal/adapters/primary/http/dto"
	"akiya-analysis-service/internal/core/domain"
	"akiya-analysis-service/internal/core/ports/output"
	"akiya-analysis-service/internal/core/services"
	"akiya-analysis-service/internal/metrics"
)

func (h *Handler) Score(c *gin.Context) {
	var req dto.ScoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.analysisSvc.Score(c.Request.Context(), services.ScoreRequest{
		AreaCode:     req.AreaCode,
		BusinessCode: req.BusinessCode,
		Factors:      dto.ToDomainFactors(req.Factors),
		Epsilon:      req.Epsilon,
	})
	if err != nil {
		mapDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ScoreResponse{
		AreaCode:     result.AreaCode,
		AreaName:     result.AreaName,
		BusinessCode: result.BusinessCode,
		BusinessName: result.BusinessName,
		Factors:      dto.ToMarketFactorsDTO(result.Factors),
		Epsilon:      result.Epsilon,
		Score:        result.Score,
		ScoreDisplay: domain.FormatScore(result.Score),
		Breakdown:    dto.ToFactorBreakdownDTO(result.Breakdown),
	})
}

func (h *Handler) CreateAnalysis(c *gin.Context) {
	var req dto.CreateAnalysisRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	run, err := h.analysisSvc.Analyze(c.Request.Context(), services.AnalyzeRequest{
		AreaCode:      req.AreaCode,
		Factors:       dto.ToDomainFactors(req.Factors),
		Epsilon:       req.Epsilon,
		BusinessCodes: req.BusinessCodes,
	})
	if err != nil {
		log.WithError(err).Error("create analysis failed")
		mapDomainError(c, err)
		return
	}

	metrics.AnalysisRunsTotal.WithLabelValues(run.AreaCode).Inc()

	c.JSON(http.StatusCreated, dto.ToAnalysisRunResponse(run, h.analysisSvc.HistoryEnabled()))
}

func (h *Handler) ListAnalyses(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	filter := ports.AnalysisListFilter{
		AreaCode: c.Query("area_code"),
		Limit:    limit,
		Offset:   offset,
	}

	runs, total, err := h.analysisSvc.ListRuns(c.Request.Context(), filter)
	if err != nil {
		log.WithError(err).Error("list analyses failed")
		mapDomainError(c, err)
		return
	}

	items := make([]dto.AnalysisRunResponse, 0, len(runs))
	for _, run := range runs {
		items = append(items, dto.ToAnalysisRunResponse(run, true))
	}

	c.JSON(http.StatusOK, dto.ListAnalysisRunsResponse{
		Items:      items,
		Total:      total,
		PageSize:   limit,
		NextOffset: offset + len(items),
	})
}

func (h *Handler) GetAnalysis(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid analysis id"})
		return
	}

	run, err := h.analysisSvc.GetRun(c.Request.Context(), id)
	if err != nil {
		mapDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToAnalysisRunResponse(run, true))
}

func (h *Handler) DeleteAnalysis(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid analysis id"})
		return
	}

	if err := h.analysisSvc.DeleteRun(c.Request.Context(), id); err != nil {
		mapDomainError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

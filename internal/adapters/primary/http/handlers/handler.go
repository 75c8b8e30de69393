package handlers

import (
	"akiya-analysis-service/internal/core/services"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	catalogSvc  *services.CatalogService
	analysisSvc *services.AnalysisService
}

func New(
	catalogSvc *services.CatalogService,
	analysisSvc *services.AnalysisService,
) *Handler {
	return &Handler{
		catalogSvc:  catalogSvc,
		analysisSvc: analysisSvc,
	}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	// Catalog
	r.GET("/areas", h.ListAreas)
	r.GET("/areas/:code", h.GetArea)
	r.GET("/businesses", h.ListBusinesses)
	r.GET("/businesses/:code", h.GetBusiness)

	// Scoring
	r.POST("/score", h.Score)

	// Analyses
	r.POST("/analyses", h.CreateAnalysis)
	r.GET("/analyses", h.ListAnalyses)
	r.GET("/analyses/:id", h.GetAnalysis)
	r.DELETE("/analyses/:id", h.DeleteAnalysis)
}

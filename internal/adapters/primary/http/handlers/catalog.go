package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"akiya-analysis-service/internal/adapters/primary/http/dto"
)

func (h *Handler) ListAreas(c *gin.Context) {
	areas, err := h.catalogSvc.ListAreas(c.Request.Context())
	if err != nil {
		log.WithError(err).Error("list areas failed")
		mapDomainError(c, err)
		return
	}

	items := make([]dto.AreaResponse, 0, len(areas))
	for _, a := range areas {
		items = append(items, dto.ToAreaResponse(a))
	}

	c.JSON(http.StatusOK, dto.ListAreasResponse{Items: items})
}

func (h *Handler) GetArea(c *gin.Context) {
	area, err := h.catalogSvc.GetArea(c.Request.Context(), c.Param("code"))
	if err != nil {
		mapDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToAreaResponse(area))
}

func (h *Handler) ListBusinesses(c *gin.Context) {
	businesses, err := h.catalogSvc.ListBusinesses(c.Request.Context())
	if err != nil {
		log.WithError(err).Error("list businesses failed")
		mapDomainError(c, err)
		return
	}

	items := make([]dto.BusinessResponse, 0, len(businesses))
	for _, b := range businesses {
		items = append(items, dto.ToBusinessResponse(b))
	}

	c.JSON(http.StatusOK, dto.ListBusinessesResponse{Items: items})
}

func (h *Handler) GetBusiness(c *gin.Context) {
	business, err := h.catalogSvc.GetBusiness(c.Request.Context(), c.Param("code"))
	if err != nil {
		mapDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToBusinessResponse(business))
}

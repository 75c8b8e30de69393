// Package ui serves the browser front end: a single page with an area
// selector that runs the market analysis and prints the per-business
// figures, backed by the same core services as the JSON API.
package ui

import (
	"embed"
	"errors"
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"akiya-analysis-service/internal/adapters/primary/http/dto"
	"akiya-analysis-service/internal/core/domain"
	"akiya-analysis-service/internal/core/services"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

const indexTemplate = "index.html.tmpl"

// Handler renders the HTML front end.
type Handler struct {
	catalogSvc  *services.CatalogService
	analysisSvc *services.AnalysisService
	templates   *template.Template
}

// New creates a UI handler with the embedded page templates.
func New(catalogSvc *services.CatalogService, analysisSvc *services.AnalysisService) *Handler {
	return &Handler{
		catalogSvc:  catalogSvc,
		analysisSvc: analysisSvc,
		templates:   template.Must(template.ParseFS(templateFS, "templates/*.tmpl")),
	}
}

// RegisterRoutes mounts the page at the engine root. It installs the
// handler's templates on the engine, so it must not be combined with
// another SetHTMLTemplate caller.
func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.SetHTMLTemplate(h.templates)
	r.GET("/", h.Index)
	r.POST("/", h.Analyze)
}

type areaOption struct {
	Code string
	Name string
}

type resultView struct {
	Name    string
	Display dto.ResultDisplayDTO
}

type pageData struct {
	Areas        []areaOption
	SelectedArea string
	Results      []resultView
	Error        string
}

// Index renders the analysis form.
func (h *Handler) Index(c *gin.Context) {
	data, err := h.basePage(c)
	if err != nil {
		c.String(http.StatusInternalServerError, "internal server error")
		return
	}
	c.HTML(http.StatusOK, indexTemplate, data)
}

// Analyze runs the analysis for the selected area and renders the results
// on the same page.
func (h *Handler) Analyze(c *gin.Context) {
	data, err := h.basePage(c)
	if err != nil {
		c.String(http.StatusInternalServerError, "internal server error")
		return
	}
	data.SelectedArea = c.PostForm("area")

	run, err := h.analysisSvc.Analyze(c.Request.Context(), services.AnalyzeRequest{
		AreaCode: data.SelectedArea,
	})
	if err != nil {
		status := statusFor(err)
		data.Error = err.Error()
		if status == http.StatusInternalServerError {
			log.WithError(err).Error("analysis failed")
			data.Error = "internal server error"
		}
		c.HTML(status, indexTemplate, data)
		return
	}

	for _, result := range run.Results {
		data.Results = append(data.Results, resultView{
			Name:    result.BusinessName,
			Display: dto.ToResultDisplayDTO(result.Summary),
		})
	}
	c.HTML(http.StatusOK, indexTemplate, data)
}

func (h *Handler) basePage(c *gin.Context) (*pageData, error) {
	areas, err := h.catalogSvc.ListAreas(c.Request.Context())
	if err != nil {
		log.WithError(err).Error("Failed to list areas for UI")
		return nil, err
	}

	data := &pageData{}
	for _, area := range areas {
		data.Areas = append(data.Areas, areaOption{Code: area.Code, Name: area.Name})
	}
	if len(data.Areas) > 0 {
		data.SelectedArea = data.Areas[0].Code
	}
	return data, nil
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrAreaNotFound), errors.Is(err, domain.ErrBusinessNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrNegativeFactor), errors.Is(err, domain.ErrNegativeEpsilon):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"akiya-analysis-service/internal/core/domain"
	"akiya-analysis-service/internal/core/ports/output"
	"akiya-analysis-service/internal/core/services"
	"akiya-analysis-service/internal/testutil"
)

func setupRouter(runRepo ports.AnalysisRunRepository) (*testutil.MockCatalogRepo, *gin.Engine) {
	gin.SetMode(gin.TestMode)
	catalogRepo := new(testutil.MockCatalogRepo)

	catalogSvc := services.NewCatalogService(catalogRepo)
	analysisSvc := services.NewAnalysisService(catalogRepo, runRepo)

	h := New(catalogSvc, analysisSvc)
	r := gin.New()
	api := r.Group("/api/v1/market-analysis")
	h.RegisterRoutes(api)

	return catalogRepo, r
}

func kamakuraArea() *domain.Area {
	return &domain.Area{
		Code: "kamakura",
		Name: "鎌倉(由比ヶ浜)",
		Ranges: domain.FactorRanges{
			Population:          10000,
			DistanceFromStation: 20,
			Tourist:             10000,
			HouseholdIncome:     10000000,
		},
		Weights: map[string]domain.FactorWeights{
			"cafe":         {Population: 0.3, DistanceFromStation: 0.3, Tourist: 0.2, HouseholdIncome: 0.2},
			"shareAtelier": {Population: 0.25, DistanceFromStation: 0.25, Tourist: 0.25, HouseholdIncome: 0.25},
		},
		DefaultFactors: domain.MarketFactors{
			Population:          8000,
			DistanceFromStation: 10,
			Tourist:             5000,
			HouseholdIncome:     7000000,
		},
		Epsilon: 0.5,
	}
}

func cafeBusiness() *domain.Business {
	return &domain.Business{
		Code:              "cafe",
		Name:              "カフェ",
		InitialInvestment: 30000000,
		MonthlyUsers:      2500,
		UnitPrice:         1100,
		OtherRevenue:      50000,
		Costs: []domain.CostItem{
			{Label: "人件費", Amount: 1147500},
			{Label: "水道光熱費", Amount: 50000},
			{Label: "通信費", Amount: 6000},
			{Label: "清掃費", Amount: 70000},
			{Label: "消耗品費", Amount: 150000},
			{Label: "保険料", Amount: 5000},
			{Label: "地代家賃", Amount: 150000},
			{Label: "その他経費", Amount: 821500},
		},
	}
}

func atelierBusiness() *domain.Business {
	return &domain.Business{
		Code:              "shareAtelier",
		Name:              "シェアアトリエ",
		InitialInvestment: 10000000,
		MonthlyUsers:      50,
		UnitPrice:         20000,
		Costs: []domain.CostItem{
			{Label: "地代家賃", Amount: 100000},
		},
	}
}

func TestListAreas(t *testing.T) {
	catalogRepo, r := setupRouter(nil)
	catalogRepo.On("ListAreas", mock.Anything).Return([]*domain.Area{kamakuraArea()}, nil)

	req, _ := http.NewRequest("GET", "/api/v1/market-analysis/areas", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp map[string]interface{}
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	items := resp["items"].([]interface{})
	assert.Len(t, items, 1)
	area := items[0].(map[string]interface{})
	assert.Equal(t, "kamakura", area["code"])
	assert.Equal(t, "鎌倉(由比ヶ浜)", area["name"])
}

func TestGetArea(t *testing.T) {
	catalogRepo, r := setupRouter(nil)
	catalogRepo.On("GetAreaByCode", mock.Anything, "kamakura").Return(kamakuraArea(), nil)

	req, _ := http.NewRequest("GET", "/api/v1/market-analysis/areas/kamakura", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp map[string]interface{}
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	assert.Equal(t, 0.5, resp["epsilon"])
}

func TestGetArea_NotFound(t *testing.T) {
	catalogRepo, r := setupRouter(nil)
	catalogRepo.On("GetAreaByCode", mock.Anything, "atlantis").Return(nil, domain.ErrAreaNotFound)

	req, _ := http.NewRequest("GET", "/api/v1/market-analysis/areas/atlantis", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestListBusinesses(t *testing.T) {
	catalogRepo, r := setupRouter(nil)
	catalogRepo.On("ListBusinesses", mock.Anything).Return([]*domain.Business{cafeBusiness(), atelierBusiness()}, nil)

	req, _ := http.NewRequest("GET", "/api/v1/market-analysis/businesses", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp map[string]interface{}
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	items := resp["items"].([]interface{})
	assert.Len(t, items, 2)
	cafe := items[0].(map[string]interface{})
	assert.Equal(t, float64(2400000), cafe["monthly_cost"])
}

func TestGetBusiness_NotFound(t *testing.T) {
	catalogRepo, r := setupRouter(nil)
	catalogRepo.On("GetBusinessByCode", mock.Anything, "onsen").Return(nil, domain.ErrBusinessNotFound)

	req, _ := http.NewRequest("GET", "/api/v1/market-analysis/businesses/onsen", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"akiya-analysis-service/internal/core/domain"
	"akiya-analysis-service/internal/testutil"
)

func TestScore(t *testing.T) {
	catalogRepo, r := setupRouter(nil)
	catalogRepo.On("GetAreaByCode", mock.Anything, "kamakura").Return(kamakuraArea(), nil)
	catalogRepo.On("GetBusinessByCode", mock.Anything, "cafe").Return(cafeBusiness(), nil)

	body, _ := json.Marshal(map[string]interface{}{
		"area_code":     "kamakura",
		"business_code": "cafe",
	})

	req, _ := http.NewRequest("POST", "/api/v1/market-analysis/score", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp map[string]interface{}
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	assert.InDelta(t, 1.13, resp["score"].(float64), 1e-9)
	assert.Equal(t, "1.13", resp["score_display"])
	assert.Equal(t, "カフェ", resp["business_name"])
	breakdown := resp["breakdown"].([]interface{})
	require.Len(t, breakdown, 4)
	first := breakdown[0].(map[string]interface{})
	assert.Equal(t, "population", first["factor"])
}

func TestScore_MissingBusinessCode(t *testing.T) {
	_, r := setupRouter(nil)

	body, _ := json.Marshal(map[string]interface{}{"area_code": "kamakura"})

	req, _ := http.NewRequest("POST", "/api/v1/market-analysis/score", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestScore_UnknownBusiness(t *testing.T) {
	catalogRepo, r := setupRouter(nil)
	catalogRepo.On("GetAreaByCode", mock.Anything, "kamakura").Return(kamakuraArea(), nil)
	catalogRepo.On("GetBusinessByCode", mock.Anything, "onsen").Return(nil, domain.ErrBusinessNotFound)

	body, _ := json.Marshal(map[string]interface{}{
		"area_code":     "kamakura",
		"business_code": "onsen",
	})

	req, _ := http.NewRequest("POST", "/api/v1/market-analysis/score", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCreateAnalysis(t *testing.T) {
	runRepo := new(testutil.MockAnalysisRunRepo)
	runRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.AnalysisRun")).Return(nil)

	catalogRepo, r := setupRouter(runRepo)
	catalogRepo.On("GetAreaByCode", mock.Anything, "kamakura").Return(kamakuraArea(), nil)
	catalogRepo.On("ListBusinesses", mock.Anything).Return([]*domain.Business{cafeBusiness(), atelierBusiness()}, nil)

	body, _ := json.Marshal(map[string]interface{}{"area_code": "kamakura"})

	req, _ := http.NewRequest("POST", "/api/v1/market-analysis/analyses", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)

	var resp map[string]interface{}
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	assert.Equal(t, true, resp["persisted"])
	results := resp["results"].([]interface{})
	require.Len(t, results, 2)

	cafe := results[0].(map[string]interface{})
	summary := cafe["summary"].(map[string]interface{})
	assert.InDelta(t, 1.13, summary["market_score"].(float64), 1e-9)
	assert.Equal(t, float64(3157499), summary["monthly_revenue"])
	display := cafe["display"].(map[string]interface{})
	assert.Equal(t, "3,157,499円", display["monthly_revenue"])

	runRepo.AssertExpectations(t)
}

func TestCreateAnalysis_HistoryDisabled(t *testing.T) {
	catalogRepo, r := setupRouter(nil)
	catalogRepo.On("GetAreaByCode", mock.Anything, "kamakura").Return(kamakuraArea(), nil)
	catalogRepo.On("ListBusinesses", mock.Anything).Return([]*domain.Business{cafeBusiness()}, nil)

	body, _ := json.Marshal(map[string]interface{}{"area_code": "kamakura"})

	req, _ := http.NewRequest("POST", "/api/v1/market-analysis/analyses", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)

	var resp map[string]interface{}
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	assert.Equal(t, false, resp["persisted"])
}

func TestCreateAnalysis_NegativeFactor(t *testing.T) {
	catalogRepo, r := setupRouter(nil)
	catalogRepo.On("GetAreaByCode", mock.Anything, "kamakura").Return(kamakuraArea(), nil)

	body, _ := json.Marshal(map[string]interface{}{
		"area_code": "kamakura",
		"factors": map[string]interface{}{
			"population": -100,
		},
	})

	req, _ := http.NewRequest("POST", "/api/v1/market-analysis/analyses", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateAnalysis_UnknownArea(t *testing.T) {
	catalogRepo, r := setupRouter(nil)
	catalogRepo.On("GetAreaByCode", mock.Anything, "atlantis").Return(nil, domain.ErrAreaNotFound)

	body, _ := json.Marshal(map[string]interface{}{"area_code": "atlantis"})

	req, _ := http.NewRequest("POST", "/api/v1/market-analysis/analyses", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestListAnalyses(t *testing.T) {
	runRepo := new(testutil.MockAnalysisRunRepo)
	runs := []*domain.AnalysisRun{
		{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
			AreaCode:  "kamakura",
			AreaName:  "鎌倉(由比ヶ浜)",
			Epsilon:   0.5,
			Results: []domain.BusinessResult{
				{BusinessCode: "cafe", BusinessName: "カフェ", Summary: domain.ProfitSummary{MarketScore: 1.13, PaybackYears: 3.3}},
			},
		},
	}
	runRepo.On("List", mock.Anything, mock.AnythingOfType("ports.AnalysisListFilter")).Return(runs, 1, nil)

	_, r := setupRouter(runRepo)

	req, _ := http.NewRequest("GET", "/api/v1/market-analysis/analyses?limit=10&offset=0", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp map[string]interface{}
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	assert.Equal(t, float64(1), resp["total"])
	assert.Equal(t, float64(10), resp["page_size"])
	assert.Equal(t, float64(1), resp["next_offset"])
}

func TestListAnalyses_HistoryDisabled(t *testing.T) {
	_, r := setupRouter(nil)

	req, _ := http.NewRequest("GET", "/api/v1/market-analysis/analyses", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestGetAnalysis(t *testing.T) {
	id := uuid.New()
	runRepo := new(testutil.MockAnalysisRunRepo)
	runRepo.On("GetByID", mock.Anything, id).Return(&domain.AnalysisRun{
		ID:        id,
		CreatedAt: time.Now(),
		AreaCode:  "hayama",
		AreaName:  "葉山(堀内)",
	}, nil)

	_, r := setupRouter(runRepo)

	req, _ := http.NewRequest("GET", "/api/v1/market-analysis/analyses/"+id.String(), nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp map[string]interface{}
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	assert.Equal(t, id.String(), resp["id"])
	assert.Equal(t, "hayama", resp["area_code"])
}

func TestGetAnalysis_InvalidID(t *testing.T) {
	_, r := setupRouter(new(testutil.MockAnalysisRunRepo))

	req, _ := http.NewRequest("GET", "/api/v1/market-analysis/analyses/not-a-uuid", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetAnalysis_NotFound(t *testing.T) {
	id := uuid.New()
	runRepo := new(testutil.MockAnalysisRunRepo)
	runRepo.On("GetByID", mock.Anything, id).Return(nil, domain.ErrRunNotFound)

	_, r := setupRouter(runRepo)

	req, _ := http.NewRequest("GET", "/api/v1/market-analysis/analyses/"+id.String(), nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteAnalysis(t *testing.T) {
	id := uuid.New()
	runRepo := new(testutil.MockAnalysisRunRepo)
	runRepo.On("Delete", mock.Anything, id).Return(nil)

	_, r := setupRouter(runRepo)

	req, _ := http.NewRequest("DELETE", "/api/v1/market-analysis/analyses/"+id.String(), nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	runRepo.AssertExpectations(t)
}

func TestDeleteAnalysis_HistoryDisabled(t *testing.T) {
	_, r := setupRouter(nil)

	req, _ := http.NewRequest("DELETE", "/api/v1/market-analysis/analyses/"+uuid.New().String(), nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

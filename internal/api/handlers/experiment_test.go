package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"consumption-sim/internal/api/models"
	"consumption-sim/internal/model"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)

	base := model.DefaultParams()
	base.AssetGridCount = 16
	base.PermGridCount = 5
	base.PermShkCount = 3
	base.TranShkCount = 3
	base.AgentCount = 30
	base.SolveTol = 1e-4

	h := NewExperimentHandler(base, nil)
	p := NewPresetHandler()

	r := gin.New()
	r.POST("/api/v1/experiment", h.RunExperiment)
	r.POST("/api/v1/experiment/sweep", h.RunSweep)
	r.GET("/api/v1/presets", p.ListPresets)
	return r
}

func postJSON(t *testing.T, router *gin.Engine, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestRunExperiment_ReturnsSummary(t *testing.T) {
	router := testRouter()
	w := postJSON(t, router, "/api/v1/experiment", models.ExperimentRequest{
		Spec: models.ExperimentSpec{
			CorrAct:       0.97,
			CorrPcvd:      0.9831,
			DiscFacCenter: 0.9867,
			DiscFacSpread: 0.0067,
			EnsembleSize:  3,
			SimPeriods:    15,
		},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp models.ExperimentResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "completed", resp.Status)
	assert.Equal(t, 90, resp.Summary.AgentCount)
	assert.Greater(t, resp.Summary.WealthRatio, 0.0)
	assert.Len(t, resp.Summary.AvgMPCQuintile, 5)
	assert.Len(t, resp.Summary.Lorenz.Percentiles, 203)
	assert.Empty(t, resp.Agents, "agents are excluded unless requested")
}

func TestRunExperiment_IncludeAgents(t *testing.T) {
	router := testRouter()
	w := postJSON(t, router, "/api/v1/experiment", models.ExperimentRequest{
		Spec: models.ExperimentSpec{
			CorrAct:       0.97,
			CorrPcvd:      0.97,
			DiscFacCenter: 0.9867,
			EnsembleSize:  1,
			SimPeriods:    10,
		},
		Options: models.ExperimentOptions{IncludeAgents: true},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp models.ExperimentResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Agents, 30)
}

func TestRunExperiment_InvalidSpec(t *testing.T) {
	router := testRouter()
	w := postJSON(t, router, "/api/v1/experiment", models.ExperimentRequest{
		Spec: models.ExperimentSpec{
			CorrAct:       0.97,
			CorrPcvd:      0.97,
			DiscFacCenter: 0.99,
			DiscFacSpread: 0.05, // interval leaves (0,1)
			SimPeriods:    10,
		},
	})
	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp models.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "INVALID_CONFIG", resp.Error.Code)
}

func TestRunExperiment_MalformedBody(t *testing.T) {
	router := testRouter()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/experiment", bytes.NewReader([]byte("{")))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRunSweep_ComparesScenarios(t *testing.T) {
	router := testRouter()
	spec := models.ExperimentSpec{
		CorrAct:       0.97,
		CorrPcvd:      0.97,
		DiscFacCenter: 0.9867,
		EnsembleSize:  1,
		SimPeriods:    10,
	}
	mistaken := spec
	mistaken.CorrPcvd = 0.9831

	w := postJSON(t, router, "/api/v1/experiment/sweep", models.SweepRequest{
		Scenarios: []models.SweepScenario{
			{Name: "correct", Spec: spec},
			{Name: "mistaken", Spec: mistaken},
		},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp models.SweepResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Comparison, 2)
	assert.Equal(t, "correct", resp.Comparison[0].Name)
	assert.Equal(t, "mistaken", resp.Comparison[1].Name)
}

func TestListPresets(t *testing.T) {
	router := testRouter()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/presets", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var resp models.PresetsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Presets)
}

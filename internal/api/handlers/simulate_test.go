package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"pvbatt-sim/internal/api/models"
	"pvbatt-sim/internal/data"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testConfigYAML = `
battery:
  rated_capacity_kwh: 12.0
  rated_voltage: 177.6
  lower_voltage: 129.6
  upper_voltage: 196.8
  lower_soc: 0.2
  upper_soc: 0.8
  discharge_margin_ratio: 0.2
  initial_reserve_ratio: 0.6
converter:
  pv_to_board:
    rated_input_kwh: 6.0
    slope: -0.0126
    intercept: 0.975
    efficiency_floor: 0.6
  pv_to_battery:
    rated_input_kwh: 6.0
    slope: -0.025
    intercept: 0.975
    efficiency_floor: 0.6
  battery_to_board:
    rated_input_kwh: 6.0
    slope: -0.036
    intercept: 0.975
    efficiency_floor: 0.6
  aux_operating_w: 25.0
  aux_standby_w: 2.0
pv:
  rated_inverter_efficiency: 0.95
  mismatch_factors: [0.94, 0.94]
`

func setupSimulateRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dir := t.TempDir()
	series := data.SyntheticYear(2)
	dataset := &data.Dataset{
		Name:          "synthetic",
		DemandKWh:     series.DemandKWh,
		OutdoorTempC:  series.OutdoorTempC,
		GridAvailable: series.GridAvailable,
		PVStringsKWh:  series.PVStringsKWh,
	}
	require.NoError(t, data.SaveDataset(filepath.Join(dir, "synthetic.json"), dataset))

	cfgPath := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(testConfigYAML), 0o644))

	t.Setenv("DATASET_DIR", dir)
	t.Setenv("CONFIG_FILE", cfgPath)

	router := gin.New()
	router.POST("/api/v1/simulate", NewSimulateHandler().RunSimulation)
	return router
}

func postSimulate(t *testing.T, router *gin.Engine, req models.SimulateRequest) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(req)
	require.NoError(t, err)
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/api/v1/simulate", bytes.NewReader(body))
	r.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, r)
	return w
}

func TestRunSimulation_OK(t *testing.T) {
	router := setupSimulateRouter(t)

	w := postSimulate(t, router, models.SimulateRequest{
		Dataset: "synthetic",
		Options: models.SimulateOptions{LimitHours: 48},
	})
	require.Equal(t, http.StatusOK, w.Code)

	var resp models.SimulateResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "completed", resp.Status)
	assert.Equal(t, 48, resp.Hours)
	assert.Nil(t, resp.Ledger)
	assert.GreaterOrEqual(t, resp.FinalSOC, 0.2)
	assert.LessOrEqual(t, resp.FinalSOC, 0.8)
}

func TestRunSimulation_IncludeLedger(t *testing.T) {
	router := setupSimulateRouter(t)

	w := postSimulate(t, router, models.SimulateRequest{
		Dataset: "synthetic",
		Options: models.SimulateOptions{IncludeLedger: true, LimitHours: 24},
	})
	require.Equal(t, http.StatusOK, w.Code)

	var resp models.SimulateResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Ledger, 24)
}

func TestRunSimulation_UnknownDataset(t *testing.T) {
	router := setupSimulateRouter(t)

	w := postSimulate(t, router, models.SimulateRequest{Dataset: "missing"})
	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp models.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "DATASET_ERROR", resp.Error.Code)
}

func TestRunSimulation_MissingDatasetField(t *testing.T) {
	router := setupSimulateRouter(t)

	w := postSimulate(t, router, models.SimulateRequest{})
	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp models.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "INVALID_REQUEST", resp.Error.Code)
}

package handlers

import (
	"net/http"
	"os"
	"path/filepath"

	"pvbatt-sim/internal/analysis"
	"pvbatt-sim/internal/api/models"
	"pvbatt-sim/internal/config"
	"pvbatt-sim/internal/data"
	"pvbatt-sim/internal/sim"

	"github.com/gin-gonic/gin"
)

// SimulateHandler handles simulation requests
type SimulateHandler struct {
	datasetDir    string
	defaultConfig string
	cache         *data.DatasetCache
}

// NewSimulateHandler creates a new simulation handler
func NewSimulateHandler() *SimulateHandler {
	datasetDir := os.Getenv("DATASET_DIR")
	if datasetDir == "" {
		datasetDir = "./examples/datasets"
	}
	defaultConfig := os.Getenv("CONFIG_FILE")
	if defaultConfig == "" {
		defaultConfig = "./examples/config.yaml"
	}
	return &SimulateHandler{
		datasetDir:    datasetDir,
		defaultConfig: defaultConfig,
		cache:         data.NewDatasetCache(),
	}
}

// RunSimulation handles POST /api/v1/simulate
func (h *SimulateHandler) RunSimulation(c *gin.Context) {
	var req models.SimulateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "INVALID_REQUEST",
				Message: err.Error(),
			},
		})
		return
	}

	cfg, err := h.loadConfig(req.Config)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "INVALID_CONFIG",
				Message: err.Error(),
			},
		})
		return
	}
	system, err := cfg.ToSystemSpec()
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "INVALID_CONFIG",
				Message: err.Error(),
			},
		})
		return
	}

	datasetPath := filepath.Join(h.datasetDir, req.Dataset+".json")
	dataset, err := h.cache.Load(datasetPath)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "DATASET_ERROR",
				Message: err.Error(),
			},
		})
		return
	}

	series := dataset.Series()
	if req.Options.LimitHours > 0 {
		series = series.Truncate(req.Options.LimitHours)
	}

	engine := sim.New()
	result, err := engine.Run(system, series)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "SIMULATION_ERROR",
				Message: err.Error(),
			},
		})
		return
	}

	response := models.SimulateResponse{
		Status:   "completed",
		Hours:    len(result.Ledger),
		FinalSOC: result.FinalState.SOC,
		Summary:  analysis.Summarize(result.Ledger),
	}
	if req.Options.IncludeLedger {
		response.Ledger = result.Ledger
	}
	c.JSON(http.StatusOK, response)
}

func (h *SimulateHandler) loadConfig(rc models.SimulateConfig) (*config.Config, error) {
	path := h.defaultConfig
	if rc.ConfigFile != "" {
		path = rc.ConfigFile
	}
	cfg, err := config.LoadUnchecked(path)
	if err != nil {
		return nil, err
	}
	if rc.Battery != nil {
		cfg.Battery = config.MergeBattery(cfg.Battery, *rc.Battery)
	}
	if cfg.Converter.DisplayOperatingW == 0 {
		cfg.Converter.DisplayOperatingW = 3.0
	}
	if cfg.Converter.DisplayStandbyW == 0 {
		cfg.Converter.DisplayStandbyW = 2.0
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

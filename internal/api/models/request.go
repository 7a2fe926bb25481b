package models

import "pvbatt-sim/internal/config"

// SimulateRequest represents the request body for running a simulation
type SimulateRequest struct {
	// Dataset is the name of a dataset file (without extension) under the
	// server's dataset directory.
	Dataset string          `json:"dataset" binding:"required"`
	Config  SimulateConfig  `json:"config,omitempty"`
	Options SimulateOptions `json:"options,omitempty"`
}

// SimulateConfig selects the system configuration for the run
type SimulateConfig struct {
	// ConfigFile overrides the server's default YAML config.
	ConfigFile string `json:"config_file,omitempty"`
	// Battery overrides non-zero battery fields from the loaded config.
	Battery *config.BatteryConfig `json:"battery,omitempty"`
}

// SimulateOptions contains optional simulation parameters
type SimulateOptions struct {
	IncludeLedger bool `json:"include_ledger,omitempty"` // default: false
	LimitHours    int  `json:"limit_hours,omitempty"`    // 0 = full year
}

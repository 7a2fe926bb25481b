package models

import (
	"pvbatt-sim/internal/analysis"
	"pvbatt-sim/internal/sim"
)

// SimulateResponse represents the response from a simulation run
type SimulateResponse struct {
	Status   string                 `json:"status"`
	Hours    int                    `json:"hours"`
	FinalSOC float64                `json:"final_soc"`
	Summary  analysis.AnnualSummary `json:"summary"`
	Ledger   []sim.HourlyRecord     `json:"ledger,omitempty"`
}

// BatteryInfo represents information about a battery preset
type BatteryInfo struct {
	ID    string       `json:"id"`
	Name  string       `json:"name"`
	File  string       `json:"file"`
	Specs BatterySpecs `json:"specs"`
}

// BatterySpecs contains battery specifications
type BatterySpecs struct {
	RatedCapacityKWh float64 `json:"rated_capacity_kwh"`
	RatedVoltage     float64 `json:"rated_voltage"`
}

// DatasetInfo represents information about a dataset on disk
type DatasetInfo struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	File string `json:"file"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error information
type ErrorDetail struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

package sim

import (
	"pvbatt-sim/internal/model"
)

// HourlyRecord is one row of per-hour output.
// This is the primary artifact for "what happened" in a simulated year.
//
// All energies are kWh for the hour. Board-side quantities are measured at
// the distribution board; device-side quantities at the PCS terminals.
type HourlyRecord struct {
	Hour int `json:"hour"`

	GridAvailable bool    `json:"grid_available"`
	DemandExclKWh float64 `json:"demand_excl_kwh"`
	OutdoorTempC  float64 `json:"outdoor_temp_c"`

	// Per-string raw generation, zero-padded past the configured strings.
	PVStringKWh [model.MaxPVStrings]float64 `json:"pv_string_kwh"`

	PVSelfConsumptionKWh      float64 `json:"pv_self_consumption_kwh"`
	PVExportKWh               float64 `json:"pv_export_kwh"`
	PVChargeBoardKWh          float64 `json:"pv_charge_board_kwh"`
	StorageSelfConsumptionKWh float64 `json:"storage_self_consumption_kwh"`

	SurplusKWh    float64 `json:"surplus_kwh"`
	DemandInclKWh float64 `json:"demand_incl_kwh"`
	AuxPCSKWh     float64 `json:"aux_pcs_kwh"`
	AuxTotalKWh   float64 `json:"aux_total_kwh"`

	PVMaxSupplyBoardKWh       float64 `json:"pv_max_supply_board_kwh"`
	BatteryMaxSupplyBoardKWh  float64 `json:"battery_max_supply_board_kwh"`
	StorageMaxSupplyBoardKWh  float64 `json:"storage_max_supply_board_kwh"`
	PVMaxSupplyDeviceKWh      float64 `json:"pv_max_supply_device_kwh"`
	BatteryMaxSupplyDeviceKWh float64 `json:"battery_max_supply_device_kwh"`

	MaxChargeBoardKWh      float64 `json:"max_charge_board_kwh"`
	PVChargeDeviceKWh      float64 `json:"pv_charge_device_kwh"`
	SurplusDeviceKWh       float64 `json:"surplus_device_kwh"`
	BatterySupplyDeviceKWh float64 `json:"battery_supply_device_kwh"`

	SOCStart float64      `json:"soc_start"`
	SOCEnd   float64      `json:"soc_end"`
	Action   model.Action `json:"action"`
}

type Result struct {
	Ledger     []HourlyRecord
	FinalState model.BatteryState
}

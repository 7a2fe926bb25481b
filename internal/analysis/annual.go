package analysis

import (
	"math"

	"pvbatt-sim/internal/sim"
)

// AnnualSummary aggregates a simulated ledger into the year-level figures
// the building-energy calculation consumes. All energies are kWh/year.
type AnnualSummary struct {
	Hours int `json:"hours"`

	DemandExclKWh float64 `json:"demand_excl_kwh"`
	DemandInclKWh float64 `json:"demand_incl_kwh"`
	AuxTotalKWh   float64 `json:"aux_total_kwh"`

	PVSelfConsumptionKWh      float64 `json:"pv_self_consumption_kwh"`
	PVExportKWh               float64 `json:"pv_export_kwh"`
	PVChargeBoardKWh          float64 `json:"pv_charge_board_kwh"`
	StorageSelfConsumptionKWh float64 `json:"storage_self_consumption_kwh"`
	PVMaxSupplyBoardKWh       float64 `json:"pv_max_supply_board_kwh"`

	// SelfConsumptionRate is the PV-supplied share of the including-aux
	// demand over the year.
	SelfConsumptionRate float64 `json:"self_consumption_rate"`

	SOCMin   float64 `json:"soc_min"`
	SOCMax   float64 `json:"soc_max"`
	SOCFinal float64 `json:"soc_final"`

	// ConservationResidualKWh is the summed per-hour imbalance
	// pvSelf + export + charge - pvMaxSupplyBoard over grid-available
	// surplus hours. It
	// should be numerically zero; a visible residual flags a dispatch bug.
	ConservationResidualKWh float64 `json:"conservation_residual_kwh"`
}

func Summarize(ledger []sim.HourlyRecord) AnnualSummary {
	s := AnnualSummary{Hours: len(ledger)}
	if len(ledger) == 0 {
		return s
	}
	s.SOCMin = math.Inf(1)
	s.SOCMax = math.Inf(-1)

	for _, r := range ledger {
		s.DemandExclKWh += r.DemandExclKWh
		s.DemandInclKWh += r.DemandInclKWh
		s.AuxTotalKWh += r.AuxTotalKWh

		s.PVSelfConsumptionKWh += r.PVSelfConsumptionKWh
		s.PVExportKWh += r.PVExportKWh
		s.PVChargeBoardKWh += r.PVChargeBoardKWh
		s.StorageSelfConsumptionKWh += r.StorageSelfConsumptionKWh
		s.PVMaxSupplyBoardKWh += r.PVMaxSupplyBoardKWh

		if r.SurplusKWh > 0 && r.GridAvailable {
			s.ConservationResidualKWh += r.PVSelfConsumptionKWh + r.PVExportKWh +
				r.PVChargeBoardKWh - r.PVMaxSupplyBoardKWh
		}

		if r.SOCEnd < s.SOCMin {
			s.SOCMin = r.SOCEnd
		}
		if r.SOCEnd > s.SOCMax {
			s.SOCMax = r.SOCEnd
		}
	}
	s.SOCFinal = ledger[len(ledger)-1].SOCEnd

	if s.DemandInclKWh > 0 {
		s.SelfConsumptionRate = (s.PVSelfConsumptionKWh + s.StorageSelfConsumptionKWh) / s.DemandInclKWh
	}
	return s
}

package sim

import "math"

// Per-hour dispatch rules, split on the sign of the PV surplus.
//
// With no surplus the PV supplies what it can and the battery covers the
// remaining demand up to its board-side limit. With a surplus the demand is
// covered entirely by PV, the excess charges the battery up to the board-side
// charge limit, and the remainder is exported while the grid is available.

func pvSelfConsumption(surplusKWh, demandInclKWh, pvMaxSupplyBoardKWh float64) float64 {
	if surplusKWh <= 0 {
		return pvMaxSupplyBoardKWh
	}
	return demandInclKWh
}

func pvChargeBoard(surplusKWh, maxChargeBoardKWh float64) float64 {
	if surplusKWh <= 0 {
		return 0
	}
	return math.Min(surplusKWh, maxChargeBoardKWh)
}

func pvExport(surplusKWh, chargeBoardKWh float64, gridAvailable bool) float64 {
	if surplusKWh <= 0 || !gridAvailable {
		return 0
	}
	return surplusKWh - chargeBoardKWh
}

func storageSelfConsumption(surplusKWh, demandInclKWh, storageMaxSupplyBoardKWh, pvSelfKWh float64) float64 {
	if surplusKWh > 0 {
		return 0
	}
	return math.Min(demandInclKWh, storageMaxSupplyBoardKWh) - pvSelfKWh
}

package analysis

import (
	"testing"

	"pvbatt-sim/internal/sim"

	"github.com/stretchr/testify/assert"
)

func TestSummarize_Empty(t *testing.T) {
	s := Summarize(nil)
	assert.Equal(t, 0, s.Hours)
	assert.InDelta(t, 0, s.SelfConsumptionRate, 1e-9)
}

func TestSummarize_Totals(t *testing.T) {
	ledger := []sim.HourlyRecord{
		{
			Hour:                      0,
			GridAvailable:             true,
			DemandExclKWh:             0.5,
			DemandInclKWh:             0.6,
			AuxTotalKWh:               0.1,
			PVSelfConsumptionKWh:      0.4,
			StorageSelfConsumptionKWh: 0.2,
			SOCEnd:                    0.5,
		},
		{
			Hour:                 1,
			GridAvailable:        true,
			DemandExclKWh:        0.3,
			DemandInclKWh:        0.4,
			AuxTotalKWh:          0.1,
			PVSelfConsumptionKWh: 0.4,
			PVExportKWh:          0.6,
			PVChargeBoardKWh:     1.0,
			PVMaxSupplyBoardKWh:  2.0,
			SurplusKWh:           1.6,
			SOCEnd:               0.7,
		},
	}

	s := Summarize(ledger)
	assert.Equal(t, 2, s.Hours)
	assert.InDelta(t, 0.8, s.DemandExclKWh, 1e-9)
	assert.InDelta(t, 1.0, s.DemandInclKWh, 1e-9)
	assert.InDelta(t, 0.2, s.AuxTotalKWh, 1e-9)
	assert.InDelta(t, 0.8, s.PVSelfConsumptionKWh, 1e-9)
	assert.InDelta(t, 0.6, s.PVExportKWh, 1e-9)
	assert.InDelta(t, 1.0, s.PVChargeBoardKWh, 1e-9)

	// (0.8 + 0.2) / 1.0
	assert.InDelta(t, 1.0, s.SelfConsumptionRate, 1e-9)

	assert.InDelta(t, 0.5, s.SOCMin, 1e-9)
	assert.InDelta(t, 0.7, s.SOCMax, 1e-9)
	assert.InDelta(t, 0.7, s.SOCFinal, 1e-9)

	// Second hour balances: 0.4 + 0.6 + 1.0 = 2.0.
	assert.InDelta(t, 0, s.ConservationResidualKWh, 1e-9)
}

package sim

import (
	"testing"

	"pvbatt-sim/internal/data"
	"pvbatt-sim/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPath(slope float64) model.ConversionPath {
	return model.ConversionPath{
		RatedInputKWh:   6.0,
		Slope:           slope,
		Intercept:       0.975,
		EfficiencyFloor: 0.6,
	}
}

func testSystem(strings int) model.SystemSpec {
	pv := make([]model.PVString, strings)
	for i := range pv {
		pv[i] = model.PVString{MismatchFactor: 0.94}
	}
	return model.SystemSpec{
		Battery: model.BatterySpec{
			RatedCapacityKWh:     12.0,
			RatedVoltage:         177.6,
			LowerVoltage:         129.6,
			UpperVoltage:         196.8,
			LowerSOC:             0.2,
			UpperSOC:             0.8,
			DischargeMarginRatio: 0.2,
			InitialReserveRatio:  0.6,
		},
		Converter: model.ConverterSpec{
			PVToBoard:         testPath(-0.0126),
			PVToBattery:       testPath(-0.025),
			BatteryToBoard:    testPath(-0.036),
			AuxOperatingW:     25.0,
			AuxStandbyW:       2.0,
			DisplayOperatingW: 3.0,
			DisplayStandbyW:   2.0,
		},
		PVArray: model.PVArraySpec{
			Strings:                 pv,
			RatedInverterEfficiency: 0.95,
		},
	}
}

func TestEngine_FullYear(t *testing.T) {
	system := testSystem(2)
	series := data.SyntheticYear(2)

	result, err := New().Run(system, series)
	require.NoError(t, err)
	require.Len(t, result.Ledger, model.HoursPerYear)

	// With the grid available all year, SOC stays inside the grid-mode
	// window [0.32, 0.8].
	for _, r := range result.Ledger {
		assert.GreaterOrEqual(t, r.SOCEnd, 0.32-1e-9)
		assert.LessOrEqual(t, r.SOCEnd, 0.8+1e-9)
	}

	assert.Equal(t, 0, result.Ledger[0].Hour)
	assert.Equal(t, model.HoursPerYear-1, result.Ledger[len(result.Ledger)-1].Hour)
	assert.InDelta(t, result.Ledger[len(result.Ledger)-1].SOCEnd, result.FinalState.SOC, 1e-12)

	// A synthetic year has both charging and discharging hours.
	var charged, discharged bool
	for _, r := range result.Ledger {
		switch r.Action {
		case model.ActionCharging:
			charged = true
		case model.ActionDischarging:
			discharged = true
		}
	}
	assert.True(t, charged)
	assert.True(t, discharged)
}

func TestEngine_IdleHourAtFloor(t *testing.T) {
	system := testSystem(1)
	// Start exactly at the grid-mode stop-discharge SOC:
	// 0.2 + 0.6*0.2 = 0.32.
	system.Battery.InitialReserveRatio = 0.2

	series := model.Series{
		DemandKWh:     []float64{0},
		OutdoorTempC:  []float64{20},
		GridAvailable: []bool{true},
		PVStringsKWh:  [][]float64{{0}},
	}

	result, err := New().Run(system, series)
	require.NoError(t, err)
	require.Len(t, result.Ledger, 1)

	r := result.Ledger[0]
	assert.Equal(t, model.ActionIdle, r.Action)
	assert.InDelta(t, 0.32, r.SOCStart, 1e-9)
	assert.InDelta(t, 0.32, r.SOCEnd, 1e-9)
	assert.InDelta(t, 0, r.PVSelfConsumptionKWh, 1e-9)
	assert.InDelta(t, 0, r.PVExportKWh, 1e-9)
	assert.InDelta(t, 0, r.PVChargeBoardKWh, 1e-9)
	assert.InDelta(t, 0, r.StorageSelfConsumptionKWh, 1e-9)
	// Standby auxiliaries still tick: (2+2) Wh.
	assert.InDelta(t, 0.004, r.AuxTotalKWh, 1e-9)
}

func TestEngine_SurplusConservation(t *testing.T) {
	system := testSystem(1)

	// One sunny day: enough PV to produce a surplus in the middle hours.
	const hours = 24
	series := model.Series{
		DemandKWh:     make([]float64, hours),
		OutdoorTempC:  make([]float64, hours),
		GridAvailable: make([]bool, hours),
		PVStringsKWh:  [][]float64{make([]float64, hours)},
	}
	for h := 0; h < hours; h++ {
		series.DemandKWh[h] = 0.3
		series.OutdoorTempC[h] = 20
		series.GridAvailable[h] = true
		if h >= 8 && h <= 16 {
			series.PVStringsKWh[0][h] = 3.0
		}
	}

	result, err := New().Run(system, series)
	require.NoError(t, err)

	surplusHours := 0
	for _, r := range result.Ledger {
		if r.SurplusKWh <= 0 {
			continue
		}
		surplusHours++
		// Every board-side kWh of PV is either consumed, charged or sold.
		got := r.PVSelfConsumptionKWh + r.PVExportKWh + r.PVChargeBoardKWh
		assert.InDelta(t, r.PVMaxSupplyBoardKWh, got, 1e-9, "hour %d", r.Hour)
	}
	assert.Greater(t, surplusHours, 0)
}

func TestEngine_SeriesMismatch(t *testing.T) {
	system := testSystem(2)
	series := model.Series{
		DemandKWh:     []float64{0.3},
		OutdoorTempC:  []float64{20},
		GridAvailable: []bool{true},
		PVStringsKWh:  [][]float64{{0.5}},
	}
	_, err := New().Run(system, series)
	assert.Error(t, err)
}

func TestEngine_InvalidSystem(t *testing.T) {
	system := testSystem(1)
	system.Battery.RatedVoltage = 0
	_, err := New().Run(system, data.SyntheticYear(1))
	assert.Error(t, err)
}

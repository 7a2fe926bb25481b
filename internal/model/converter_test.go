package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

var pvToBoard = ConversionPath{
	RatedInputKWh:   6.0,
	Slope:           -0.0126,
	Intercept:       0.975,
	EfficiencyFloor: 0.6,
}

func TestConversionPath_Efficiency(t *testing.T) {
	// No input: floor.
	assert.InDelta(t, 0.6, pvToBoard.Efficiency(0), 1e-9)
	assert.InDelta(t, 0.6, pvToBoard.Efficiency(-1), 1e-9)

	// At rated: slope + intercept = 0.9624.
	assert.InDelta(t, 0.9624, pvToBoard.Efficiency(6.0), 1e-9)

	// Beyond rated the operating point is held at rated.
	assert.InDelta(t, 0.9624, pvToBoard.Efficiency(12.0), 1e-9)

	// Tiny input: the regression dives below the floor and is clamped.
	assert.InDelta(t, 0.6, pvToBoard.Efficiency(0.05), 1e-9)
}

func TestConversionPath_Convert(t *testing.T) {
	assert.InDelta(t, 0, pvToBoard.Convert(0), 1e-9)
	assert.InDelta(t, 0.9624*6.0, pvToBoard.Convert(6.0), 1e-9)
	// Input beyond rated is curtailed.
	assert.InDelta(t, 0.9624*6.0, pvToBoard.Convert(12.0), 1e-9)
}

func TestConversionPath_InvertRoundTrip(t *testing.T) {
	// Exact inverse on [0.25, 1.0] x rated where the regression applies.
	for _, in := range []float64{1.5, 3.0, 4.5, 6.0} {
		out := pvToBoard.Convert(in)
		assert.InDelta(t, in, pvToBoard.Invert(out), 1e-9)
	}
}

func TestConversionPath_InvertClampsLowLoad(t *testing.T) {
	// A tiny output maps to the quarter-rated lower clamp.
	assert.InDelta(t, 1.5, pvToBoard.Invert(0.01), 1e-9)
	// And never above rated.
	assert.InDelta(t, 6.0, pvToBoard.Invert(100), 1e-9)
}

var refConverter = ConverterSpec{
	PVToBoard:         pvToBoard,
	PVToBattery:       ConversionPath{RatedInputKWh: 6.0, Slope: -0.025, Intercept: 0.975, EfficiencyFloor: 0.6},
	BatteryToBoard:    ConversionPath{RatedInputKWh: 6.0, Slope: -0.036, Intercept: 0.975, EfficiencyFloor: 0.6},
	AuxOperatingW:     25.0,
	AuxStandbyW:       2.0,
	DisplayOperatingW: 3.0,
	DisplayStandbyW:   2.0,
}

func TestConverterSpec_Validate(t *testing.T) {
	assert.NoError(t, refConverter.Validate())

	bad := refConverter
	bad.PVToBattery.RatedInputKWh = 0
	assert.Error(t, bad.Validate())

	bad = refConverter
	bad.AuxStandbyW = -1
	assert.Error(t, bad.Validate())
}

func TestConverterSpec_AuxiliaryEnergy(t *testing.T) {
	// Standby hour.
	pcs, disp := refConverter.AuxiliaryEnergy(0)
	assert.InDelta(t, 0.002, pcs, 1e-9)
	assert.InDelta(t, 0.002, disp, 1e-9)

	// Operating hour.
	pcs, disp = refConverter.AuxiliaryEnergy(1)
	assert.InDelta(t, 0.025, pcs, 1e-9)
	assert.InDelta(t, 0.003, disp, 1e-9)
}

func TestOperatingFraction(t *testing.T) {
	// PV generating.
	assert.InDelta(t, 1.0, OperatingFraction(0.5, 0, 0), 1e-9)
	// No PV, demand the battery could serve.
	assert.InDelta(t, 1.0, OperatingFraction(0, 0.3, 1.2), 1e-9)
	// No PV, battery empty.
	assert.InDelta(t, 0.0, OperatingFraction(0, 0.3, 0), 1e-9)
	// Nothing happening.
	assert.InDelta(t, 0.0, OperatingFraction(0, 0, 0), 1e-9)
}

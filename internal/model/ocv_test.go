package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKelvin(t *testing.T) {
	assert.InDelta(t, 273.16, Kelvin(0), 1e-9)
	assert.InDelta(t, 298.16, Kelvin(25), 1e-9)
	assert.InDelta(t, 263.16, Kelvin(-10), 1e-9)
}

func TestOpenCircuitVoltage_AtZeroSOC(t *testing.T) {
	// At SOC 0 only the constant term survives: 0.92027 * rated.
	v := OpenCircuitVoltage(0, Kelvin(20), 2, 177.6)
	assert.InDelta(t, 0.92027*177.6, v, 1e-9)
}

func TestOpenCircuitVoltage_IncreasesOverOperatingWindow(t *testing.T) {
	lo := OpenCircuitVoltage(0.2, Kelvin(20), 2, 177.6)
	hi := OpenCircuitVoltage(0.8, Kelvin(20), 2, 177.6)
	assert.Less(t, lo, hi)
}

func TestOpenCircuitVoltage_TypeIndependentToday(t *testing.T) {
	// All three coefficient sets are currently identical.
	v1 := OpenCircuitVoltage(0.5, Kelvin(20), 1, 177.6)
	v2 := OpenCircuitVoltage(0.5, Kelvin(20), 2, 177.6)
	v3 := OpenCircuitVoltage(0.5, Kelvin(20), 3, 177.6)
	assert.Equal(t, v1, v2)
	assert.Equal(t, v2, v3)
}

func TestInternalResistance(t *testing.T) {
	assert.InDelta(t, 0.5, InternalResistance(Kelvin(20), 1), 1e-9)
	assert.InDelta(t, 0.5, InternalResistance(Kelvin(-10), 3), 1e-9)
}

package model

// Electrochemical helper functions for the battery unit: open-circuit
// voltage, internal resistance and the ambient-temperature conversion.
//
// Both the OCV polynomial and the internal resistance are keyed by the
// battery type (1..3, classified from the voltage-bound ratio). The
// regulation currently assigns every type the same coefficient set, so the
// table below is intentionally redundant: chemistry-specific coefficients
// become a data change, not a code change.

// kelvinOffset is the value the reference tables use; it is not the usual
// 273.15.
const kelvinOffset = 273.16

type chemistryCoeffs struct {
	// OCV holds K_0..K_6 of the dimensionless open-circuit-voltage
	// polynomial in SOC.
	OCV [7]float64
	// InternalResistanceOhm is constant per type for now.
	InternalResistanceOhm float64
}

var chemistryByType = map[int]chemistryCoeffs{
	1: {
		OCV:                   [7]float64{0.92027, 0.31524, -0.61051, 0.58010, 0.00003, -0.08345, -0.02122},
		InternalResistanceOhm: 0.5,
	},
	2: {
		OCV:                   [7]float64{0.92027, 0.31524, -0.61051, 0.58010, 0.00003, -0.08345, -0.02122},
		InternalResistanceOhm: 0.5,
	},
	3: {
		OCV:                   [7]float64{0.92027, 0.31524, -0.61051, 0.58010, 0.00003, -0.08345, -0.02122},
		InternalResistanceOhm: 0.5,
	},
}

// OpenCircuitVoltage returns the open-circuit voltage magnitude (V) of a
// battery of the given type at the given state of charge.
//
// ambientK is part of the contract for future temperature-dependent
// chemistry models; the current coefficient sets do not use it.
func OpenCircuitVoltage(soc, ambientK float64, batteryType int, ratedVoltage float64) float64 {
	_ = ambientK
	c := chemistryByType[batteryType]
	nocv := 0.0
	pow := 1.0
	for _, k := range c.OCV {
		nocv += k * pow
		pow *= soc
	}
	return nocv * ratedVoltage
}

// InternalResistance returns the battery internal resistance (Ω).
func InternalResistance(ambientK float64, batteryType int) float64 {
	_ = ambientK
	return chemistryByType[batteryType].InternalResistanceOhm
}

// Kelvin converts an air temperature in °C to the absolute temperature used
// by the battery module model.
func Kelvin(tempC float64) float64 {
	return tempC + kelvinOffset
}

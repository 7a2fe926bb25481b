package model

import (
	"errors"
	"math"
)

// ConversionPath models one directional path through the power conditioner
// (PV→distribution board, PV→battery, battery→distribution board). The
// conversion efficiency follows a regression in input power, floored to
// avoid blowing up at very small loads.
type ConversionPath struct {
	RatedInputKWh   float64
	Slope           float64 // regression slope α
	Intercept       float64 // regression intercept β
	EfficiencyFloor float64
}

func (p ConversionPath) Validate() error {
	if p.RatedInputKWh <= 0 {
		return errors.New("RatedInputKWh must be > 0")
	}
	if p.Intercept == 0 {
		return errors.New("Intercept must be nonzero")
	}
	if p.EfficiencyFloor <= 0 || p.EfficiencyFloor > 1 {
		return errors.New("EfficiencyFloor must be in (0, 1]")
	}
	return nil
}

// Efficiency evaluates the clamped regression at the given input energy.
func (p ConversionPath) Efficiency(inputKWh float64) float64 {
	if inputKWh <= 0 {
		return p.EfficiencyFloor
	}
	eta := p.Slope*p.RatedInputKWh/math.Min(inputKWh, p.RatedInputKWh) + p.Intercept
	return math.Max(eta, p.EfficiencyFloor)
}

// Convert maps input-side energy to output-side energy. Input beyond rated
// is curtailed to rated.
func (p ConversionPath) Convert(inputKWh float64) float64 {
	if inputKWh <= 0 {
		return 0
	}
	return p.Efficiency(inputKWh) * math.Min(inputKWh, p.RatedInputKWh)
}

const (
	// lowLoadRatio is the fraction of rated input below which the inverse
	// relation is considered unstable.
	lowLoadRatio = 0.25
	// lowLoadEfficiency stands in for the regression in that regime.
	// Downstream reference outputs are calibrated against this exact value;
	// do not "improve" it.
	lowLoadEfficiency = 0.96
)

// Invert solves the forward relation for the input that yields outputKWh,
// clamped to [0.25, 1.0]×rated. If the clamped solution still sits below a
// quarter of rated, a fixed 0.96 efficiency is used instead.
func (p ConversionPath) Invert(outputKWh float64) float64 {
	in := (-p.Slope*p.RatedInputKWh + outputKWh) / p.Intercept
	in = math.Min(math.Max(in, p.RatedInputKWh*lowLoadRatio), p.RatedInputKWh)
	if in/p.RatedInputKWh < lowLoadRatio {
		return outputKWh / lowLoadEfficiency
	}
	return in
}

// ConverterSpec bundles the three conversion paths with the auxiliary power
// draw of the PCS and of the display/metering/control unit.
type ConverterSpec struct {
	PVToBoard      ConversionPath
	PVToBattery    ConversionPath
	BatteryToBoard ConversionPath

	// Auxiliary draw in W, blended by the hour's operating fraction.
	AuxOperatingW     float64
	AuxStandbyW       float64
	DisplayOperatingW float64
	DisplayStandbyW   float64
}

func (s ConverterSpec) Validate() error {
	if err := s.PVToBoard.Validate(); err != nil {
		return errors.New("PVToBoard: " + err.Error())
	}
	if err := s.PVToBattery.Validate(); err != nil {
		return errors.New("PVToBattery: " + err.Error())
	}
	if err := s.BatteryToBoard.Validate(); err != nil {
		return errors.New("BatteryToBoard: " + err.Error())
	}
	if s.AuxOperatingW < 0 || s.AuxStandbyW < 0 || s.DisplayOperatingW < 0 || s.DisplayStandbyW < 0 {
		return errors.New("auxiliary wattages must be >= 0")
	}
	return nil
}

// AuxiliaryEnergy returns the hour's auxiliary consumption (kWh) of the PCS
// and the display unit for the given operating fraction.
func (s ConverterSpec) AuxiliaryEnergy(operatingFraction float64) (pcsKWh, displayKWh float64) {
	pcsKWh = (s.AuxOperatingW*operatingFraction + s.AuxStandbyW*(1-operatingFraction)) / 1000
	displayKWh = (s.DisplayOperatingW*operatingFraction + s.DisplayStandbyW*(1-operatingFraction)) / 1000
	return pcsKWh, displayKWh
}

// OperatingFraction is the fraction of the hour the storage system is
// active: 1 while PV generates, or while there is demand the battery could
// serve. It is a binary per-hour flag, not a duty cycle.
func OperatingFraction(pvGenKWh, demandExclKWh, maxDischargeKWh float64) float64 {
	if pvGenKWh > 0 {
		return 1.0
	}
	if demandExclKWh > 0 && maxDischargeKWh > 0 {
		return 1.0
	}
	return 0.0
}

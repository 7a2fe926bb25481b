package model

import (
	"errors"
	"fmt"
)

// HoursPerYear is the simulation horizon of a full run.
const HoursPerYear = 8760

// Series bundles the exogenous hourly inputs produced by the envelope/load
// calculator, aligned to the same hourly calendar (hour 0 = Jan 1, 00:00).
// All slices must have equal length; a full-year dataset has HoursPerYear
// entries, shorter series are accepted for previews and tests.
type Series struct {
	// DemandKWh is the electricity demand excluding PCS/battery auxiliaries.
	DemandKWh []float64
	// OutdoorTempC is the outdoor air temperature.
	OutdoorTempC []float64
	// GridAvailable flags hours with grid power.
	GridAvailable []bool
	// PVStringsKWh holds one generation series per PV string.
	PVStringsKWh [][]float64
}

// Hours is the number of simulated hours the series covers.
func (s Series) Hours() int {
	return len(s.DemandKWh)
}

// Validate checks internal consistency and that the series carries one
// generation sequence per configured PV string.
func (s Series) Validate(pvStrings int) error {
	n := s.Hours()
	if n == 0 {
		return errors.New("series is empty")
	}
	if len(s.OutdoorTempC) != n {
		return fmt.Errorf("outdoor temperature has %d hours, want %d", len(s.OutdoorTempC), n)
	}
	if len(s.GridAvailable) != n {
		return fmt.Errorf("grid availability has %d hours, want %d", len(s.GridAvailable), n)
	}
	if len(s.PVStringsKWh) != pvStrings {
		return fmt.Errorf("series has %d PV strings, spec has %d", len(s.PVStringsKWh), pvStrings)
	}
	for i, pv := range s.PVStringsKWh {
		if len(pv) != n {
			return fmt.Errorf("PV string %d has %d hours, want %d", i+1, len(pv), n)
		}
	}
	return nil
}

// Truncate returns a copy covering only the first n hours. A non-positive or
// too-large n returns the series unchanged.
func (s Series) Truncate(n int) Series {
	if n <= 0 || n >= s.Hours() {
		return s
	}
	out := Series{
		DemandKWh:     s.DemandKWh[:n],
		OutdoorTempC:  s.OutdoorTempC[:n],
		GridAvailable: s.GridAvailable[:n],
	}
	for _, pv := range s.PVStringsKWh {
		out.PVStringsKWh = append(out.PVStringsKWh, pv[:n])
	}
	return out
}

// SystemSpec is the full equipment configuration of one scenario.
type SystemSpec struct {
	Battery   BatterySpec
	Converter ConverterSpec
	PVArray   PVArraySpec
}

func (s SystemSpec) Validate() error {
	if err := s.Battery.Validate(); err != nil {
		return fmt.Errorf("battery: %w", err)
	}
	if err := s.Converter.Validate(); err != nil {
		return fmt.Errorf("converter: %w", err)
	}
	if err := s.PVArray.Validate(); err != nil {
		return fmt.Errorf("pv array: %w", err)
	}
	return nil
}

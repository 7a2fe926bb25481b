package model

import (
	"errors"
	"fmt"
)

// MaxPVStrings is the largest number of PV arrays/strings the reference
// configuration supports.
const MaxPVStrings = 4

// PVString describes one PV array feeding the power conditioner.
type PVString struct {
	// MismatchFactor is the array load-mismatch correction coefficient K_PM.
	MismatchFactor float64
}

// PVArraySpec describes the PV installation. Raw per-string generation is
// corrected by each string's mismatch factor and by the inverter correction
// coefficient before it enters the storage-system model.
type PVArraySpec struct {
	Strings []PVString
	// RatedInverterEfficiency is the PCS rated-load efficiency η_IN,R from
	// which the inverter correction coefficient is derived.
	RatedInverterEfficiency float64
}

func (s PVArraySpec) Validate() error {
	if len(s.Strings) == 0 {
		return errors.New("at least one PV string is required")
	}
	if len(s.Strings) > MaxPVStrings {
		return fmt.Errorf("at most %d PV strings are supported, got %d", MaxPVStrings, len(s.Strings))
	}
	for i, st := range s.Strings {
		if st.MismatchFactor <= 0 {
			return fmt.Errorf("string %d: MismatchFactor must be > 0", i+1)
		}
	}
	if s.RatedInverterEfficiency <= 0 || s.RatedInverterEfficiency > 1 {
		return errors.New("RatedInverterEfficiency must be in (0, 1]")
	}
	return nil
}

// InverterCorrection is the coefficient K_IN = η_IN,R / 0.97.
func (s PVArraySpec) InverterCorrection() float64 {
	return s.RatedInverterEfficiency / 0.97
}

// Generation composes one hour of per-string generation (kWh, indexed like
// Strings) into the total PV-side generation of the storage system.
func (s PVArraySpec) Generation(perStringKWh []float64) float64 {
	total := 0.0
	for i, st := range s.Strings {
		total += perStringKWh[i] / st.MismatchFactor
	}
	return total / s.InverterCorrection()
}

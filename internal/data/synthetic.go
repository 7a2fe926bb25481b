package data

import (
	"math"

	"pvbatt-sim/internal/model"
)

// SyntheticYear builds a deterministic full-year series for demos and
// tests: a seasonal temperature cycle, a daytime PV bell split evenly
// across the strings, and a morning/evening demand profile. The grid is
// available every hour.
func SyntheticYear(pvStrings int) model.Series {
	s := model.Series{
		DemandKWh:     make([]float64, model.HoursPerYear),
		OutdoorTempC:  make([]float64, model.HoursPerYear),
		GridAvailable: make([]bool, model.HoursPerYear),
		PVStringsKWh:  make([][]float64, pvStrings),
	}
	for i := range s.PVStringsKWh {
		s.PVStringsKWh[i] = make([]float64, model.HoursPerYear)
	}

	for h := 0; h < model.HoursPerYear; h++ {
		day := h / 24
		hour := h % 24

		// Seasonal mean around 15 °C, coldest in late January, plus a mild
		// diurnal swing.
		seasonal := 15 - 10*math.Cos(2*math.Pi*float64(day-30)/365)
		diurnal := 4 * math.Sin(2*math.Pi*float64(hour-9)/24)
		s.OutdoorTempC[h] = seasonal + diurnal

		// PV bell between 06:00 and 18:00, peaking at noon, stronger in
		// summer.
		pv := 0.0
		if hour >= 6 && hour <= 18 {
			bell := math.Sin(math.Pi * float64(hour-6) / 12)
			season := 0.75 - 0.25*math.Cos(2*math.Pi*float64(day-30)/365)
			pv = 4.0 * bell * season
		}
		for i := range s.PVStringsKWh {
			s.PVStringsKWh[i][h] = pv / float64(pvStrings)
		}

		// Base load with morning and evening peaks, heavier in winter.
		demand := 0.3
		switch {
		case hour >= 6 && hour <= 9:
			demand = 0.8
		case hour >= 18 && hour <= 22:
			demand = 1.2
		}
		winter := 1 + 0.3*math.Cos(2*math.Pi*float64(day-30)/365)
		s.DemandKWh[h] = demand * winter

		s.GridAvailable[h] = true
	}
	return s
}

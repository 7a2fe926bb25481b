package data

import (
	"encoding/json"
	"fmt"
	"os"

	"pvbatt-sim/internal/model"
)

// Dataset is the on-disk shape (JSON) of one year of exogenous hourly
// series. All series carry exactly one value per hour of the year.
type Dataset struct {
	Name         string    `json:"name"`
	DemandKWh    []float64 `json:"demand_kwh"`
	OutdoorTempC []float64 `json:"outdoor_temp_c"`

	// Optional: omitted means the grid is available every hour.
	GridAvailable []bool      `json:"grid_available,omitempty"`
	PVStringsKWh  [][]float64 `json:"pv_strings_kwh"`
}

func LoadDataset(path string) (*Dataset, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var d Dataset
	if err := json.Unmarshal(raw, &d); err != nil {
		return nil, err
	}
	if err := d.validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &d, nil
}

func (d *Dataset) validate() error {
	if len(d.DemandKWh) != model.HoursPerYear {
		return fmt.Errorf("demand_kwh has %d hours, want %d", len(d.DemandKWh), model.HoursPerYear)
	}
	if len(d.OutdoorTempC) != model.HoursPerYear {
		return fmt.Errorf("outdoor_temp_c has %d hours, want %d", len(d.OutdoorTempC), model.HoursPerYear)
	}
	if len(d.GridAvailable) != 0 && len(d.GridAvailable) != model.HoursPerYear {
		return fmt.Errorf("grid_available has %d hours, want %d", len(d.GridAvailable), model.HoursPerYear)
	}
	if len(d.PVStringsKWh) == 0 {
		return fmt.Errorf("pv_strings_kwh is required")
	}
	if len(d.PVStringsKWh) > model.MaxPVStrings {
		return fmt.Errorf("pv_strings_kwh has %d strings, at most %d supported", len(d.PVStringsKWh), model.MaxPVStrings)
	}
	for i, pv := range d.PVStringsKWh {
		if len(pv) != model.HoursPerYear {
			return fmt.Errorf("pv_strings_kwh[%d] has %d hours, want %d", i, len(pv), model.HoursPerYear)
		}
	}
	return nil
}

// Series converts the dataset to the simulation input shape.
func (d *Dataset) Series() model.Series {
	grid := d.GridAvailable
	if len(grid) == 0 {
		grid = make([]bool, len(d.DemandKWh))
		for i := range grid {
			grid[i] = true
		}
	}
	return model.Series{
		DemandKWh:     d.DemandKWh,
		OutdoorTempC:  d.OutdoorTempC,
		GridAvailable: grid,
		PVStringsKWh:  d.PVStringsKWh,
	}
}

// SaveDataset writes the dataset as indented JSON.
func SaveDataset(path string, d *Dataset) error {
	raw, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, raw, 0o644)
}

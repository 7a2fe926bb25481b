package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"pvbatt-sim/internal/model"

	"gopkg.in/yaml.v3"
)

// Config is the on-disk configuration shape (YAML).
type Config struct {
	// Optional: load battery parameters from a separate YAML (e.g. examples/batteries/*.yaml).
	// If both BatteryFile and Battery are provided, Battery overrides BatteryFile.
	BatteryFile string          `yaml:"battery_file"`
	Battery     BatteryConfig   `yaml:"battery"`
	Converter   ConverterConfig `yaml:"converter"`
	PV          PVConfig        `yaml:"pv"`
}

type BatteryConfig struct {
	Name                 string  `yaml:"name"`
	RatedCapacityKWh     float64 `yaml:"rated_capacity_kwh"`
	RatedVoltage         float64 `yaml:"rated_voltage"`
	LowerVoltage         float64 `yaml:"lower_voltage"`
	UpperVoltage         float64 `yaml:"upper_voltage"`
	LowerSOC             float64 `yaml:"lower_soc"`
	UpperSOC             float64 `yaml:"upper_soc"`
	DischargeMarginRatio float64 `yaml:"discharge_margin_ratio"`
	InitialReserveRatio  float64 `yaml:"initial_reserve_ratio"`
}

type PathConfig struct {
	RatedInputKWh   float64 `yaml:"rated_input_kwh"`
	Slope           float64 `yaml:"slope"`
	Intercept       float64 `yaml:"intercept"`
	EfficiencyFloor float64 `yaml:"efficiency_floor"`
}

type ConverterConfig struct {
	PVToBoard      PathConfig `yaml:"pv_to_board"`
	PVToBattery    PathConfig `yaml:"pv_to_battery"`
	BatteryToBoard PathConfig `yaml:"battery_to_board"`

	AuxOperatingW     float64 `yaml:"aux_operating_w"`
	AuxStandbyW       float64 `yaml:"aux_standby_w"`
	DisplayOperatingW float64 `yaml:"display_operating_w"`
	DisplayStandbyW   float64 `yaml:"display_standby_w"`
}

type PVConfig struct {
	RatedInverterEfficiency float64   `yaml:"rated_inverter_efficiency"`
	MismatchFactors         []float64 `yaml:"mismatch_factors"`
}

func Load(path string) (*Config, error) {
	c, err := LoadUnchecked(path)
	if err != nil {
		return nil, err
	}
	// Display-unit wattages rarely appear in configs; default them to the
	// reference values.
	if c.Converter.DisplayOperatingW == 0 {
		c.Converter.DisplayOperatingW = 3.0
	}
	if c.Converter.DisplayStandbyW == 0 {
		c.Converter.DisplayStandbyW = 2.0
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// LoadUnchecked loads and merges config, but does not validate it.
// Useful for debugging/printing partial configs.
func LoadUnchecked(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var c Config
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return nil, err
	}
	// If battery_file is set, load it and merge in any explicit overrides from c.Battery.
	if c.BatteryFile != "" {
		batteryPath := c.BatteryFile
		if !filepath.IsAbs(batteryPath) {
			// Prefer interpreting relative paths as relative to the config file directory,
			// but fall back to the provided path (relative to cwd) if that doesn't exist.
			cand := filepath.Join(filepath.Dir(path), batteryPath)
			if _, err := os.Stat(cand); err == nil {
				batteryPath = cand
			}
		}
		loaded, err := loadBatteryFile(batteryPath)
		if err != nil {
			return nil, err
		}
		c.Battery = MergeBattery(loaded, c.Battery)
	}
	return &c, nil
}

func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}
	system, err := c.ToSystemSpec()
	if err != nil {
		return err
	}
	if err := system.Validate(); err != nil {
		return fmt.Errorf("config invalid: %w", err)
	}
	return nil
}

// ToSystemSpec maps the on-disk shape to the model types.
func (c *Config) ToSystemSpec() (model.SystemSpec, error) {
	if len(c.PV.MismatchFactors) == 0 {
		return model.SystemSpec{}, errors.New("pv.mismatch_factors is required")
	}
	strings := make([]model.PVString, len(c.PV.MismatchFactors))
	for i, f := range c.PV.MismatchFactors {
		strings[i] = model.PVString{MismatchFactor: f}
	}
	return model.SystemSpec{
		Battery: model.BatterySpec{
			RatedCapacityKWh:     c.Battery.RatedCapacityKWh,
			RatedVoltage:         c.Battery.RatedVoltage,
			LowerVoltage:         c.Battery.LowerVoltage,
			UpperVoltage:         c.Battery.UpperVoltage,
			LowerSOC:             c.Battery.LowerSOC,
			UpperSOC:             c.Battery.UpperSOC,
			DischargeMarginRatio: c.Battery.DischargeMarginRatio,
			InitialReserveRatio:  c.Battery.InitialReserveRatio,
		},
		Converter: model.ConverterSpec{
			PVToBoard:         c.Converter.PVToBoard.toPath(),
			PVToBattery:       c.Converter.PVToBattery.toPath(),
			BatteryToBoard:    c.Converter.BatteryToBoard.toPath(),
			AuxOperatingW:     c.Converter.AuxOperatingW,
			AuxStandbyW:       c.Converter.AuxStandbyW,
			DisplayOperatingW: c.Converter.DisplayOperatingW,
			DisplayStandbyW:   c.Converter.DisplayStandbyW,
		},
		PVArray: model.PVArraySpec{
			Strings:                 strings,
			RatedInverterEfficiency: c.PV.RatedInverterEfficiency,
		},
	}, nil
}

func (p PathConfig) toPath() model.ConversionPath {
	return model.ConversionPath{
		RatedInputKWh:   p.RatedInputKWh,
		Slope:           p.Slope,
		Intercept:       p.Intercept,
		EfficiencyFloor: p.EfficiencyFloor,
	}
}

type batteryFileWrapper struct {
	Battery BatteryConfig `yaml:"battery"`
}

func loadBatteryFile(path string) (BatteryConfig, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return BatteryConfig{}, err
	}
	var w batteryFileWrapper
	if err := yaml.Unmarshal(raw, &w); err != nil {
		return BatteryConfig{}, err
	}
	return w.Battery, nil
}

// MergeBattery overlays non-zero fields from override onto base.
// This is used when loading a battery file and then applying overrides from the request.
func MergeBattery(base, override BatteryConfig) BatteryConfig {
	out := base
	if override.Name != "" {
		out.Name = override.Name
	}
	if override.RatedCapacityKWh != 0 {
		out.RatedCapacityKWh = override.RatedCapacityKWh
	}
	if override.RatedVoltage != 0 {
		out.RatedVoltage = override.RatedVoltage
	}
	if override.LowerVoltage != 0 {
		out.LowerVoltage = override.LowerVoltage
	}
	if override.UpperVoltage != 0 {
		out.UpperVoltage = override.UpperVoltage
	}
	// Note: these are allowed to be 0 in theory, but our configs use non-zero values.
	if override.LowerSOC != 0 {
		out.LowerSOC = override.LowerSOC
	}
	if override.UpperSOC != 0 {
		out.UpperSOC = override.UpperSOC
	}
	if override.DischargeMarginRatio != 0 {
		out.DischargeMarginRatio = override.DischargeMarginRatio
	}
	if override.InitialReserveRatio != 0 {
		out.InitialReserveRatio = override.InitialReserveRatio
	}
	return out
}

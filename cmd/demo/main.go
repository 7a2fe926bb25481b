package main

import (
	"flag"
	"fmt"

	"pvbatt-sim/internal/analysis"
	"pvbatt-sim/internal/config"
	"pvbatt-sim/internal/data"
	"pvbatt-sim/internal/model"
	"pvbatt-sim/internal/sim"
)

// Demo:
// - Build a deterministic synthetic year of demand/temperature/PV
// - Instantiate the reference 12 kWh residential system
// - Run a full-year simulation and print the annual balance
func main() {
	cfgPath := flag.String("config", "", "Path to YAML config (optional)")
	n := flag.Int("n", 24, "Number of hourly rows to print")
	outCSV := flag.String("out", "", "Optional path to write ledger CSV (e.g. results/ledger.csv)")
	flag.Parse()

	system := referenceSystem()
	if *cfgPath != "" {
		cfg, err := config.Load(*cfgPath)
		if err != nil {
			panic(err)
		}
		system, err = cfg.ToSystemSpec()
		if err != nil {
			panic(err)
		}
	}

	series := data.SyntheticYear(len(system.PVArray.Strings))

	engine := sim.New()
	result, err := engine.Run(system, series)
	if err != nil {
		panic(err)
	}

	fmt.Printf("Simulated %d hours\n", len(result.Ledger))
	fmt.Printf("Battery type=%d  initial SOC=%.3f\n\n", system.Battery.Type(), system.Battery.InitialState().SOC)

	for i := 0; i < min(*n, len(result.Ledger)); i++ {
		r := result.Ledger[i]
		fmt.Printf(
			"h=%04d demand=%6.3f pv=%6.3f surplus=%6.3f action=%-11s self=%6.3f export=%6.3f soc=%.3f->%.3f\n",
			r.Hour,
			r.DemandInclKWh,
			r.PVMaxSupplyBoardKWh,
			r.SurplusKWh,
			string(r.Action),
			r.PVSelfConsumptionKWh+r.StorageSelfConsumptionKWh,
			r.PVExportKWh,
			r.SOCStart,
			r.SOCEnd,
		)
	}

	if *outCSV != "" {
		if err := sim.WriteLedgerCSV(*outCSV, result.Ledger); err != nil {
			panic(err)
		}
		fmt.Printf("\nWrote CSV: %s\n", *outCSV)
	}

	s := analysis.Summarize(result.Ledger)
	fmt.Printf("\nAnnual totals (kWh):\n")
	fmt.Printf("  demand (incl aux)        %9.1f\n", s.DemandInclKWh)
	fmt.Printf("  PV self-consumption      %9.1f\n", s.PVSelfConsumptionKWh)
	fmt.Printf("  PV export                %9.1f\n", s.PVExportKWh)
	fmt.Printf("  PV charged to battery    %9.1f\n", s.PVChargeBoardKWh)
	fmt.Printf("  battery self-consumption %9.1f\n", s.StorageSelfConsumptionKWh)
	fmt.Printf("  auxiliaries              %9.1f\n", s.AuxTotalKWh)
	fmt.Printf("Self-consumption rate=%.3f  Final SOC=%.3f\n", s.SelfConsumptionRate, s.SOCFinal)
}

// referenceSystem is the 12 kWh residential configuration used when no
// config file is given.
func referenceSystem() model.SystemSpec {
	path := func(slope float64) model.ConversionPath {
		return model.ConversionPath{
			RatedInputKWh:   6.0,
			Slope:           slope,
			Intercept:       0.975,
			EfficiencyFloor: 0.6,
		}
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
			PVToBoard:         path(-0.0126),
			PVToBattery:       path(-0.025),
			BatteryToBoard:    path(-0.036),
			AuxOperatingW:     25.0,
			AuxStandbyW:       2.0,
			DisplayOperatingW: 3.0,
			DisplayStandbyW:   2.0,
		},
		PVArray: model.PVArraySpec{
			Strings: []model.PVString{
				{MismatchFactor: 0.94},
				{MismatchFactor: 0.94},
			},
			RatedInverterEfficiency: 0.95,
		},
	}
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

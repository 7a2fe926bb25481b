package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"pvbatt-sim/internal/analysis"
	"pvbatt-sim/internal/config"
	"pvbatt-sim/internal/data"
	"pvbatt-sim/internal/sim"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	switch os.Args[1] {
	case "simulate":
		cmdSimulate(os.Args[2:])
	case "gendata":
		cmdGendata(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Println("usage:")
	fmt.Println("  cli simulate --config examples/config.yaml --data examples/datasets/synthetic.json --out results/ledger.csv")
	fmt.Println("  cli gendata --strings 2 --out examples/datasets/synthetic.json")
	fmt.Println("")
	fmt.Println("notes:")
	fmt.Println("  - simulate outputs one CSV row per hour with action=charging/idle/discharging")
	fmt.Println("  - gendata writes a deterministic synthetic full-year dataset")
}

func cmdSimulate(args []string) {
	fs := flag.NewFlagSet("simulate", flag.ExitOnError)
	cfgPath := fs.String("config", "", "Path to YAML config")
	dataPath := fs.String("data", "", "Path to dataset JSON")
	outPath := fs.String("out", "results/ledger.csv", "Output CSV path")
	n := fs.Int("n", 0, "Optional: limit to first N hours (0=all)")
	_ = fs.Parse(args)

	if *cfgPath == "" {
		fmt.Println("--config is required")
		os.Exit(2)
	}
	if *dataPath == "" {
		fmt.Println("--data is required")
		os.Exit(2)
	}

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		panic(err)
	}
	system, err := cfg.ToSystemSpec()
	if err != nil {
		panic(err)
	}

	dataset, err := data.LoadDataset(*dataPath)
	if err != nil {
		panic(err)
	}
	series := dataset.Series()
	if *n > 0 {
		series = series.Truncate(*n)
	}

	engine := sim.New()
	res, err := engine.Run(system, series)
	if err != nil {
		panic(err)
	}

	// ensure output dir exists
	if err := os.MkdirAll(filepath.Dir(*outPath), 0o755); err != nil {
		panic(err)
	}
	if err := sim.WriteLedgerCSV(*outPath, res.Ledger); err != nil {
		panic(err)
	}

	summary := analysis.Summarize(res.Ledger)
	fmt.Printf("Wrote %d rows to %s\n", len(res.Ledger), *outPath)
	fmt.Printf("PV self-consumption: %.1f kWh\n", summary.PVSelfConsumptionKWh)
	fmt.Printf("PV export:           %.1f kWh\n", summary.PVExportKWh)
	fmt.Printf("PV charged:          %.1f kWh\n", summary.PVChargeBoardKWh)
	fmt.Printf("Battery supplied:    %.1f kWh\n", summary.StorageSelfConsumptionKWh)
	fmt.Printf("Final SOC=%.3f (min=%.3f max=%.3f)\n", summary.SOCFinal, summary.SOCMin, summary.SOCMax)
}

func cmdGendata(args []string) {
	fs := flag.NewFlagSet("gendata", flag.ExitOnError)
	strings := fs.Int("strings", 2, "Number of PV strings")
	outPath := fs.String("out", "examples/datasets/synthetic.json", "Output JSON path")
	_ = fs.Parse(args)

	series := data.SyntheticYear(*strings)
	d := &data.Dataset{
		Name:          "synthetic",
		DemandKWh:     series.DemandKWh,
		OutdoorTempC:  series.OutdoorTempC,
		GridAvailable: series.GridAvailable,
		PVStringsKWh:  series.PVStringsKWh,
	}

	if err := os.MkdirAll(filepath.Dir(*outPath), 0o755); err != nil {
		panic(err)
	}
	if err := data.SaveDataset(*outPath, d); err != nil {
		panic(err)
	}
	fmt.Printf("Wrote %s (%d hours, %d strings)\n", *outPath, len(d.DemandKWh), *strings)
}

package sim

import (
	"encoding/csv"
	"os"
	"strconv"
)

func WriteLedgerCSV(path string, ledger []HourlyRecord) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	header := []string{
		"hour",
		"grid_available",
		"demand_excl_kwh",
		"outdoor_temp_c",
		"pv_string_1_kwh",
		"pv_string_2_kwh",
		"pv_string_3_kwh",
		"pv_string_4_kwh",
		"pv_self_consumption_kwh",
		"pv_export_kwh",
		"pv_charge_board_kwh",
		"storage_self_consumption_kwh",
		"surplus_kwh",
		"demand_incl_kwh",
		"aux_pcs_kwh",
		"aux_total_kwh",
		"pv_max_supply_board_kwh",
		"battery_max_supply_board_kwh",
		"storage_max_supply_board_kwh",
		"pv_max_supply_device_kwh",
		"battery_max_supply_device_kwh",
		"max_charge_board_kwh",
		"pv_charge_device_kwh",
		"surplus_device_kwh",
		"battery_supply_device_kwh",
		"soc_start",
		"soc_end",
		"action",
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for _, r := range ledger {
		row := []string{
			strconv.Itoa(r.Hour),
			strconv.FormatBool(r.GridAvailable),
			fmtFloat(r.DemandExclKWh),
			fmtFloat(r.OutdoorTempC),
			fmtFloat(r.PVStringKWh[0]),
			fmtFloat(r.PVStringKWh[1]),
			fmtFloat(r.PVStringKWh[2]),
			fmtFloat(r.PVStringKWh[3]),
			fmtFloat(r.PVSelfConsumptionKWh),
			fmtFloat(r.PVExportKWh),
			fmtFloat(r.PVChargeBoardKWh),
			fmtFloat(r.StorageSelfConsumptionKWh),
			fmtFloat(r.SurplusKWh),
			fmtFloat(r.DemandInclKWh),
			fmtFloat(r.AuxPCSKWh),
			fmtFloat(r.AuxTotalKWh),
			fmtFloat(r.PVMaxSupplyBoardKWh),
			fmtFloat(r.BatteryMaxSupplyBoardKWh),
			fmtFloat(r.StorageMaxSupplyBoardKWh),
			fmtFloat(r.PVMaxSupplyDeviceKWh),
			fmtFloat(r.BatteryMaxSupplyDeviceKWh),
			fmtFloat(r.MaxChargeBoardKWh),
			fmtFloat(r.PVChargeDeviceKWh),
			fmtFloat(r.SurplusDeviceKWh),
			fmtFloat(r.BatterySupplyDeviceKWh),
			fmtFloat(r.SOCStart),
			fmtFloat(r.SOCEnd),
			string(r.Action),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return w.Error()
}

func fmtFloat(x float64) string {
	return strconv.FormatFloat(x, 'f', 6, 64)
}

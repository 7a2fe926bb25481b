package sim

import (
	"fmt"
	"math"

	"pvbatt-sim/internal/model"
)

type Engine struct{}

func New() *Engine { return &Engine{} }

// Run simulates the storage system hour by hour over the series.
//
// Each hour proceeds in a fixed order: PV generation is composed from the
// per-string series, the battery's charge/discharge capability is evaluated
// at the previous hour's SOC, auxiliaries are added to demand, board-side
// limits are derived through the conversion paths, the surplus sign selects
// the dispatch rule, and finally the SOC is advanced from the device-side
// charge or supply energy.
func (e *Engine) Run(system model.SystemSpec, series model.Series) (*Result, error) {
	if err := system.Validate(); err != nil {
		return nil, err
	}
	if err := series.Validate(len(system.PVArray.Strings)); err != nil {
		return nil, err
	}

	hours := series.Hours()
	ledger := make([]HourlyRecord, 0, hours)
	state := system.Battery.InitialState()
	perString := make([]float64, len(system.PVArray.Strings))

	for hour := 0; hour < hours; hour++ {
		demandExcl := series.DemandKWh[hour]
		tempC := series.OutdoorTempC[hour]
		grid := series.GridAvailable[hour]
		for i := range perString {
			perString[i] = series.PVStringsKWh[i][hour]
		}
		pvGen := system.PVArray.Generation(perString)

		maxChargeDevice, maxDischargeDevice, err := system.Battery.MaxChargeDischarge(state, tempC, grid)
		if err != nil {
			return nil, fmt.Errorf("hour %d: %w", hour, err)
		}

		tau := model.OperatingFraction(pvGen, demandExcl, maxDischargeDevice)
		auxPCS, auxDisplay := system.Converter.AuxiliaryEnergy(tau)
		auxTotal := auxPCS + auxDisplay
		demandIncl := demandExcl + auxTotal

		pvMaxSupplyBoard := system.Converter.PVToBoard.Convert(pvGen)
		batteryMaxSupplyBoard := system.Converter.BatteryToBoard.Convert(maxDischargeDevice)
		storageMaxSupplyBoard := pvMaxSupplyBoard + batteryMaxSupplyBoard

		surplus := math.Max(pvMaxSupplyBoard-demandIncl, 0)

		// Board-to-device translation of the surplus. The ratio
		// surplusDevice/surplus carries the operating-point efficiency of the
		// PV→board path into the charge-path calculations below.
		surplusDevice := 0.0
		if surplus > 0 {
			surplusDevice = system.Converter.PVToBoard.Invert(surplus)
		}

		// Board-side charge limit. With no surplus the recorded value falls
		// back to the path's efficiency floor and is never dispatched (the
		// dispatch rule charges 0 in that branch).
		maxChargeBoard := system.Converter.PVToBattery.EfficiencyFloor
		if surplus > 0 {
			maxChargeBoard = system.Converter.PVToBattery.Invert(maxChargeDevice) * surplus / surplusDevice
		}

		pvSelf := pvSelfConsumption(surplus, demandIncl, pvMaxSupplyBoard)
		chargeBoard := pvChargeBoard(surplus, maxChargeBoard)
		export := pvExport(surplus, chargeBoard, grid)
		storageSelf := storageSelfConsumption(surplus, demandIncl, storageMaxSupplyBoard, pvSelf)

		boardToDevice := system.Converter.PVToBattery.EfficiencyFloor
		if surplus > 0 {
			boardToDevice = surplusDevice / surplus
		}
		chargeDevice := system.Converter.PVToBattery.Convert(chargeBoard * boardToDevice)

		supplyDevice := 0.0
		if storageSelf > 0 {
			supplyDevice = system.Converter.BatteryToBoard.Invert(storageSelf)
		}

		// The dispatch table routes each hour to either the charge or the
		// supply side; both at once means the routing above is broken.
		if chargeDevice > 0 && supplyDevice > 0 {
			return nil, fmt.Errorf("hour %d: %w", hour,
				&model.DispatchStateError{ChargeKWh: chargeDevice, DischargeKWh: supplyDevice})
		}

		next, err := system.Battery.NextState(state, chargeDevice, supplyDevice, tempC, grid)
		if err != nil {
			return nil, fmt.Errorf("hour %d: %w", hour, err)
		}

		row := HourlyRecord{
			Hour: hour,

			GridAvailable: grid,
			DemandExclKWh: demandExcl,
			OutdoorTempC:  tempC,

			PVSelfConsumptionKWh:      pvSelf,
			PVExportKWh:               export,
			PVChargeBoardKWh:          chargeBoard,
			StorageSelfConsumptionKWh: storageSelf,

			SurplusKWh:    surplus,
			DemandInclKWh: demandIncl,
			AuxPCSKWh:     auxPCS,
			AuxTotalKWh:   auxTotal,

			PVMaxSupplyBoardKWh:       pvMaxSupplyBoard,
			BatteryMaxSupplyBoardKWh:  batteryMaxSupplyBoard,
			StorageMaxSupplyBoardKWh:  storageMaxSupplyBoard,
			PVMaxSupplyDeviceKWh:      pvGen,
			BatteryMaxSupplyDeviceKWh: maxDischargeDevice,

			MaxChargeBoardKWh:      maxChargeBoard,
			PVChargeDeviceKWh:      chargeDevice,
			SurplusDeviceKWh:       surplusDevice,
			BatterySupplyDeviceKWh: supplyDevice,

			SOCStart: state.SOC,
			SOCEnd:   next.SOC,
			Action:   model.ActionFromEnergy(chargeDevice, supplyDevice),
		}
		copy(row.PVStringKWh[:], perString)
		ledger = append(ledger, row)

		state = next
	}

	return &Result{
		Ledger:     ledger,
		FinalState: state,
	}, nil
}

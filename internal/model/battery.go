package model

import (
	"errors"
	"fmt"
	"math"
)

// BatterySpec defines the physical parameters of the battery unit.
// Units:
// - RatedCapacityKWh: kWh
// - voltages: V
// - SOC bounds and ratios: dimensionless fractions in [0,1]
//
// The spec is immutable after construction; the mutable per-hour state lives
// in BatteryState and is advanced exclusively through NextState.
type BatterySpec struct {
	RatedCapacityKWh float64
	RatedVoltage     float64
	LowerVoltage     float64
	UpperVoltage     float64
	LowerSOC         float64
	UpperSOC         float64

	// DischargeMarginRatio lifts the stop-discharge SOC above LowerSOC while
	// grid power is available, keeping a reserve for autonomous operation.
	DischargeMarginRatio float64

	// InitialReserveRatio positions the hour-0 SOC between the bounds:
	// SOC = UpperSOC·r + LowerSOC·(1−r).
	InitialReserveRatio float64
}

func (s BatterySpec) Validate() error {
	if s.RatedCapacityKWh <= 0 {
		return errors.New("RatedCapacityKWh must be > 0")
	}
	if s.RatedVoltage <= 0 {
		return errors.New("RatedVoltage must be > 0")
	}
	if s.LowerVoltage <= 0 {
		return errors.New("LowerVoltage must be > 0")
	}
	if s.LowerVoltage > s.UpperVoltage {
		return errors.New("voltage bounds inverted: LowerVoltage > UpperVoltage")
	}
	if s.LowerSOC < 0 || s.UpperSOC > 1 {
		return errors.New("SOC bounds must lie within [0, 1]")
	}
	if s.LowerSOC > s.UpperSOC {
		return errors.New("SOC bounds inverted: LowerSOC > UpperSOC")
	}
	if s.DischargeMarginRatio < 0 || s.DischargeMarginRatio > 1 {
		return errors.New("DischargeMarginRatio must be in [0, 1]")
	}
	if s.InitialReserveRatio < 0 || s.InitialReserveRatio > 1 {
		return errors.New("InitialReserveRatio must be in [0, 1]")
	}
	return nil
}

// Type classifies the battery chemistry from the voltage-bound ratio.
func (s BatterySpec) Type() int {
	r := s.UpperVoltage / s.LowerVoltage
	switch {
	case r >= 1.7:
		return 3
	case r >= 1.45:
		return 2
	default:
		return 1
	}
}

// FullChargeCapacityAh is the rated capacity expressed in ampere-hours at
// rated voltage. Ageing and temperature effects on capacity are out of the
// model; the value is constant across the year.
func (s BatterySpec) FullChargeCapacityAh() float64 {
	return s.RatedCapacityKWh * 1000 / s.RatedVoltage
}

// InitialState seeds the hour-0 state of charge from the reserve ratio.
func (s BatterySpec) InitialState() BatteryState {
	return BatteryState{
		SOC: s.UpperSOC*s.InitialReserveRatio + s.LowerSOC*(1-s.InitialReserveRatio),
	}
}

// BatteryState is the single quantity carried from one hour to the next.
type BatteryState struct {
	// SOC is the state of charge, a fraction in [0,1].
	SOC float64
}

// OperatingBounds is the read-only per-hour view of the battery: the SOC
// window the control logic may use this hour, and the electrical constants
// at the current ambient temperature. Nothing here writes state.
type OperatingBounds struct {
	AmbientK           float64
	StopDischargeSOC   float64
	StopChargeSOC      float64
	FullChargeAh       float64
	InternalResistance float64
}

// OperatingBounds computes the hour's SOC window. With grid power available
// the stop-discharge SOC is raised by the margin ratio; in autonomous
// operation the battery may run down to the lower bound.
func (s BatterySpec) OperatingBounds(outdoorTempC float64, gridAvailable bool) (OperatingBounds, error) {
	b := OperatingBounds{
		AmbientK:      Kelvin(outdoorTempC),
		StopChargeSOC: s.UpperSOC,
		FullChargeAh:  s.FullChargeCapacityAh(),
	}
	if gridAvailable {
		b.StopDischargeSOC = s.LowerSOC + s.DischargeMarginRatio*(s.UpperSOC-s.LowerSOC)
	} else {
		b.StopDischargeSOC = s.LowerSOC
	}
	b.InternalResistance = InternalResistance(b.AmbientK, s.Type())

	if b.StopDischargeSOC < 0 {
		return OperatingBounds{}, fmt.Errorf("stop-discharge SOC %.4f < 0", b.StopDischargeSOC)
	}
	if b.StopDischargeSOC > b.StopChargeSOC {
		return OperatingBounds{}, fmt.Errorf("stop-discharge SOC %.4f above stop-charge SOC %.4f",
			b.StopDischargeSOC, b.StopChargeSOC)
	}
	return b, nil
}

// maxTransferWindowH is the nominal window over which the max charge and
// discharge energies are evaluated.
const maxTransferWindowH = 1.0

// MaxChargeDischarge returns the energy (kWh) the battery can accept and
// deliver over a one-hour window starting from st. The terminal voltage is
// taken as the mean open-circuit voltage between the current and the stop
// SOC, corrected by the resistive drop over the SOC excursion.
//
// A negative terminal voltage indicates an internally inconsistent battery
// spec (resistance too high for the implied current) and is fatal.
func (s BatterySpec) MaxChargeDischarge(st BatteryState, outdoorTempC float64, gridAvailable bool) (maxChargeKWh, maxDischargeKWh float64, err error) {
	b, err := s.OperatingBounds(outdoorTempC, gridAvailable)
	if err != nil {
		return 0, 0, err
	}
	typ := s.Type()

	chargeAh := math.Max(b.FullChargeAh*(b.StopChargeSOC-st.SOC), 0)
	dischargeAh := math.Max(b.FullChargeAh*(st.SOC-b.StopDischargeSOC), 0)

	iChg := chargeAh / maxTransferWindowH
	ocvChg := (OpenCircuitVoltage(st.SOC, b.AmbientK, typ, s.RatedVoltage) +
		OpenCircuitVoltage(b.StopChargeSOC, b.AmbientK, typ, s.RatedVoltage)) / 2
	vChg := ocvChg + iChg*b.InternalResistance*(b.StopChargeSOC-st.SOC)
	if vChg < 0 {
		return 0, 0, fmt.Errorf("max-charge voltage %.4f V < 0: inconsistent battery spec", vChg)
	}

	iDchg := dischargeAh / maxTransferWindowH
	ocvDchg := (OpenCircuitVoltage(st.SOC, b.AmbientK, typ, s.RatedVoltage) +
		OpenCircuitVoltage(b.StopDischargeSOC, b.AmbientK, typ, s.RatedVoltage)) / 2
	vDchg := ocvDchg - iDchg*b.InternalResistance*(st.SOC-b.StopDischargeSOC)
	if vDchg < 0 {
		return 0, 0, fmt.Errorf("max-discharge voltage %.4f V < 0: inconsistent battery spec", vDchg)
	}

	maxChargeKWh = iChg * vChg * maxTransferWindowH / 1000
	maxDischargeKWh = iDchg * vDchg * maxTransferWindowH / 1000
	return maxChargeKWh, maxDischargeKWh, nil
}

// DispatchStateError reports a simultaneous charge and discharge request,
// which the model forbids as a hard precondition.
type DispatchStateError struct {
	ChargeKWh    float64
	DischargeKWh float64
}

func (e *DispatchStateError) Error() string {
	return fmt.Sprintf("simultaneous charge (%.4f kWh) and discharge (%.4f kWh) requested",
		e.ChargeKWh, e.DischargeKWh)
}

// NextState advances the state of charge by one hour for the given
// device-side charge or discharge energy. At most one of chargeKWh and
// dischargeKWh may be positive.
//
// The current is recovered from the quadratic I²R + V_OC·I − 1000·E/Δt = 0,
// where V_OC is the mean open-circuit voltage between the current SOC and a
// provisional next-hour SOC obtained by linear extrapolation. The discharge
// discriminant is clamped at zero: an extreme discharge request saturates at
// the physical limit instead of failing.
func (s BatterySpec) NextState(st BatteryState, chargeKWh, dischargeKWh, outdoorTempC float64, gridAvailable bool) (BatteryState, error) {
	if chargeKWh > 0 && dischargeKWh > 0 {
		return BatteryState{}, &DispatchStateError{ChargeKWh: chargeKWh, DischargeKWh: dischargeKWh}
	}
	b, err := s.OperatingBounds(outdoorTempC, gridAvailable)
	if err != nil {
		return BatteryState{}, err
	}
	typ := s.Type()
	r := b.InternalResistance

	switch {
	case chargeKWh > 0:
		const dt = 1.0 // h
		provisional := st.SOC + chargeKWh*1000/(b.FullChargeAh/dt)/s.RatedVoltage
		voc := (OpenCircuitVoltage(st.SOC, b.AmbientK, typ, s.RatedVoltage) +
			OpenCircuitVoltage(provisional, b.AmbientK, typ, s.RatedVoltage)) / 2
		i := (-voc + math.Sqrt(voc*voc+4*r*chargeKWh*1000)) / (2 * r)
		soc := math.Min(st.SOC+i*dt/b.FullChargeAh, b.StopChargeSOC)
		return BatteryState{SOC: soc}, nil

	case dischargeKWh > 0:
		const dt = 1.0 // h
		provisional := st.SOC - dischargeKWh*1000/(b.FullChargeAh/dt)/s.RatedVoltage
		voc := (OpenCircuitVoltage(st.SOC, b.AmbientK, typ, s.RatedVoltage) +
			OpenCircuitVoltage(provisional, b.AmbientK, typ, s.RatedVoltage)) / 2
		disc := math.Max(voc*voc-4*r*dischargeKWh*1000, 0)
		i := (voc - math.Sqrt(disc)) / (2 * r)
		soc := math.Max(st.SOC-i*dt/b.FullChargeAh, b.StopDischargeSOC)
		return BatteryState{SOC: soc}, nil

	default:
		return st, nil
	}
}

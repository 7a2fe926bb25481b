package model

// Action labels what the battery did over one hour.
type Action string

const (
	ActionCharging    Action = "charging"
	ActionIdle        Action = "idle"
	ActionDischarging Action = "discharging"
)

// ActionFromEnergy classifies the hour from the dispatched energies.
func ActionFromEnergy(chargeKWh, dischargeKWh float64) Action {
	switch {
	case chargeKWh > 0:
		return ActionCharging
	case dischargeKWh > 0:
		return ActionDischarging
	default:
		return ActionIdle
	}
}

package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDispatch_NoSurplus(t *testing.T) {
	// PV covers what it can, the battery fills up to its board-side limit.
	pvSelf := pvSelfConsumption(0, 1.0, 0.4)
	assert.InDelta(t, 0.4, pvSelf, 1e-9)

	assert.InDelta(t, 0, pvChargeBoard(0, 2.0), 1e-9)
	assert.InDelta(t, 0, pvExport(0, 0, true), 1e-9)

	// storage limit 0.9 covers 0.4 PV + 0.5 battery.
	storage := storageSelfConsumption(0, 1.0, 0.9, pvSelf)
	assert.InDelta(t, 0.5, storage, 1e-9)

	// Demand below the storage limit: battery covers the remainder only.
	storage = storageSelfConsumption(0, 0.6, 0.9, pvSelf)
	assert.InDelta(t, 0.2, storage, 1e-9)
}

func TestDispatch_Surplus(t *testing.T) {
	// PV covers all demand; the excess charges first, then exports.
	assert.InDelta(t, 1.0, pvSelfConsumption(2.0, 1.0, 3.0), 1e-9)
	assert.InDelta(t, 1.5, pvChargeBoard(2.0, 1.5), 1e-9)
	assert.InDelta(t, 0.5, pvExport(2.0, 1.5, true), 1e-9)
	assert.InDelta(t, 0, storageSelfConsumption(2.0, 1.0, 3.0, 1.0), 1e-9)
}

func TestDispatch_SurplusChargeLimited(t *testing.T) {
	// Charge limit above the surplus: everything charges, nothing exported.
	assert.InDelta(t, 2.0, pvChargeBoard(2.0, 5.0), 1e-9)
	assert.InDelta(t, 0, pvExport(2.0, 2.0, true), 1e-9)
}

func TestDispatch_SurplusOffGrid(t *testing.T) {
	// Without the grid there is no export; the uncharged remainder is lost.
	assert.InDelta(t, 0, pvExport(2.0, 1.5, false), 1e-9)
}

// ABOUTME: Capacity model constants for router sizing and power estimation
// ABOUTME: Coefficients are an opaque model reproduced literally, not derived

package models

const (
	// T1CapacityCredit is the fixed capacity credit of one tier-1 router
	T1CapacityCredit = 16
	// T2CapacityCredit is the capacity credit of one tier-2 router
	T2CapacityCredit = 32
	// InternalPortCredit is the extra credit per reserved internal port on a tier-1 router
	InternalPortCredit = 3
	// CustomerCapacityAllowance is the capacity target added per customer
	CustomerCapacityAllowance = 4
	// DemandScale converts aggregate bandwidth into 100-class port units
	DemandScale = 100

	// T1PowerWatts is the power draw of one active tier-1 router
	T1PowerWatts = 250
	// T2PowerWatts is the power draw of one active tier-2 router
	T2PowerWatts = 350

	// T1Ports100 is the number of 100-class ports on a tier-1 router
	T1Ports100 = 8
	// T1Ports400 is the number of 400-class ports on a tier-1 router
	T1Ports400 = 2
	// T2Ports400 is the number of 400-class ports on a tier-2 router
	T2Ports400 = 8
	// MaxInternalSplit bounds how many tier-1 small ports can be reserved for customers
	MaxInternalSplit = T1Ports100

	// PortsPerActiveRouter is the port-demand units served by one active router
	PortsPerActiveRouter = 8

	// Bandwidth100 is the capacity of a 100-class port
	Bandwidth100 = 100
	// Bandwidth400 is the capacity of a 400-class port
	Bandwidth400 = 400

	// SlotsPerDay is the number of half-hour slots in a day
	SlotsPerDay = 48
	// SlotMinutes is the width of one slot
	SlotMinutes = 30

	// DefaultMaxRouterAdditions bounds router additions per unmet pair
	DefaultMaxRouterAdditions = 64
)

// ABOUTME: Site model with router counts, port inventories and sizing outcome
// ABOUTME: Sites are produced by sizing and consumed by topology building

package models

// RouterTier identifies a router class
type RouterTier int

const (
	TierOne RouterTier = 1
	TierTwo RouterTier = 2
)

// String returns "t1" or "t2"
func (t RouterTier) String() string {
	if t == TierTwo {
		return "t2"
	}
	return "t1"
}

// PortInventory counts ports of each class
type PortInventory struct {
	G100 int `json:"g100"`
	G400 int `json:"g400"`
}

// Capacity returns total bandwidth the inventory can carry
func (p PortInventory) Capacity() float64 {
	return float64(Bandwidth100*p.G100 + Bandwidth400*p.G400)
}

// SitePorts splits a site's ports into customer-facing and inter-site
type SitePorts struct {
	External PortInventory `json:"external"` // Inter-site links
	Internal PortInventory `json:"internal"` // Customer-facing
}

// Requirement is one outgoing bandwidth requirement toward a peer site
type Requirement struct {
	Peer      string  `json:"peer"`
	Bandwidth float64 `json:"bandwidth"`
}

// SiteSizing records how the optimizer arrived at the router counts
type SiteSizing struct {
	RHS            float64  `json:"rhs"`              // demand/100 + 4*customers
	InternalSplit  int      `json:"internal_split"`   // Chosen x
	PowerCostWatts *float64 `json:"power_cost_watts"` // nil when no feasible sizing exists
	Outcome        Outcome  `json:"outcome"`
	PortDeficit    int      `json:"port_deficit,omitempty"` // 400-class ports short for customers
}

// Site is one planned location
type Site struct {
	ID                   string        `json:"id"`
	Customers            int           `json:"customers"`
	T1Routers            int           `json:"t1_routers"`
	T2Routers            int           `json:"t2_routers"`
	Ports                SitePorts     `json:"ports"`
	ExternalRequirements []Requirement `json:"external_requirements"`
	Sizing               SiteSizing    `json:"sizing"`
}

// Clone returns a deep copy safe for independent mutation
func (s Site) Clone() Site {
	out := s
	out.ExternalRequirements = make([]Requirement, len(s.ExternalRequirements))
	copy(out.ExternalRequirements, s.ExternalRequirements)
	if s.Sizing.PowerCostWatts != nil {
		cost := *s.Sizing.PowerCostWatts
		out.Sizing.PowerCostWatts = &cost
	}
	return out
}

// AddRouter installs one router of the tier and credits its external ports
func (s *Site) AddRouter(tier RouterTier) {
	switch tier {
	case TierTwo:
		s.T2Routers++
		s.Ports.External.G400 += T2Ports400
	default:
		s.T1Routers++
		s.Ports.External.G100 += T1Ports100
		s.Ports.External.G400 += T1Ports400
	}
}

// RequirementTo returns the bandwidth required toward peer and whether it exists
func (s Site) RequirementTo(peer string) (float64, bool) {
	for _, r := range s.ExternalRequirements {
		if r.Peer == peer {
			return r.Bandwidth, true
		}
	}
	return 0, false
}

// Power returns the full installed draw in watts
func (s Site) Power() float64 {
	return float64(T1PowerWatts*s.T1Routers + T2PowerWatts*s.T2Routers)
}

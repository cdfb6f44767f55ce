// ABOUTME: Topology output types: edges, per-pair results, shortfalls and routes
// ABOUTME: Also defines the escalation policy names used by the builder

package models

import (
	"fmt"
	"strings"
)

// EscalationPolicy selects how unmet pairs are resolved after direct allocation
type EscalationPolicy string

const (
	PolicyRouterAddition EscalationPolicy = "router-addition"
	PolicyIndirectPath   EscalationPolicy = "indirect-path"
	DefaultPolicy                         = PolicyIndirectPath
)

// ParseEscalationPolicy resolves a policy name; empty selects the default
func ParseEscalationPolicy(name string) (EscalationPolicy, error) {
	switch EscalationPolicy(strings.ToLower(strings.TrimSpace(name))) {
	case "":
		return DefaultPolicy, nil
	case PolicyRouterAddition:
		return PolicyRouterAddition, nil
	case PolicyIndirectPath:
		return PolicyIndirectPath, nil
	}
	return "", fmt.Errorf("unknown escalation policy %q (expected %q or %q)",
		name, PolicyRouterAddition, PolicyIndirectPath)
}

// PairKey identifies an unordered site pair; A sorts before B
type PairKey struct {
	A string
	B string
}

// NewPairKey builds the canonical key for a pair
func NewPairKey(a, b string) PairKey {
	if b < a {
		a, b = b, a
	}
	return PairKey{A: a, B: b}
}

// Edge is a physical link between two sites with consumed ports
type Edge struct {
	From          string `json:"from"`
	To            string `json:"to"`
	G100PortsUsed int    `json:"g100_ports_used"`
	G400PortsUsed int    `json:"g400_ports_used"`
}

// Capacity returns the bandwidth carried by the edge's ports
func (e Edge) Capacity() float64 {
	return float64(Bandwidth100*e.G100PortsUsed + Bandwidth400*e.G400PortsUsed)
}

// Connects reports whether the edge joins the two sites in either direction
func (e Edge) Connects(a, b string) bool {
	return (e.From == a && e.To == b) || (e.From == b && e.To == a)
}

// Other returns the endpoint opposite to site
func (e Edge) Other(site string) string {
	if e.From == site {
		return e.To
	}
	return e.From
}

// ResolutionMethod records how a pair was satisfied
type ResolutionMethod string

const (
	ResolvedNone           ResolutionMethod = "none"
	ResolvedDirect         ResolutionMethod = "direct"
	ResolvedRouterAddition ResolutionMethod = "router-addition"
	ResolvedIndirect       ResolutionMethod = "indirect"
)

// RequirementResult is the outcome of one ordered requirement
type RequirementResult struct {
	From      string           `json:"from"`
	To        string           `json:"to"`
	Bandwidth float64          `json:"bandwidth"`
	Unmet     float64          `json:"unmet"`
	Method    ResolutionMethod `json:"method"`
	Outcome   Outcome          `json:"outcome"`
}

// ShortfallReason explains why a requirement stayed unmet
type ShortfallReason string

const (
	ReasonUnknownSite ShortfallReason = "unknown_site"
	ReasonNoPath      ShortfallReason = "no_path"
	ReasonRouterLimit ShortfallReason = "router_limit"
)

// Shortfall is an unmet requirement after escalation
type Shortfall struct {
	From      string          `json:"from"`
	To        string          `json:"to"`
	Bandwidth float64         `json:"bandwidth"`
	Reason    ShortfallReason `json:"reason"`
	Outcome   Outcome         `json:"outcome"`
}

// IndirectRoute is a requirement carried over spare capacity on other links
type IndirectRoute struct {
	From      string   `json:"from"`
	To        string   `json:"to"`
	Bandwidth float64  `json:"bandwidth"`
	Path      []string `json:"path"`
}

// RouterAddition counts routers added to a site during escalation
type RouterAddition struct {
	Site string `json:"site"`
	T1   int    `json:"t1"`
	T2   int    `json:"t2"`
}

// Topology is the builder's output
type Topology struct {
	Nodes          []Site              `json:"nodes"`
	Connections    []Edge              `json:"connections"`
	Requirements   []RequirementResult `json:"requirements"`
	Shortfalls     []Shortfall         `json:"shortfalls"`
	IndirectRoutes []IndirectRoute     `json:"indirect_routes"`
	RoutersAdded   []RouterAddition    `json:"routers_added"`
	Policy         EscalationPolicy    `json:"policy"`
	Outcome        Outcome             `json:"outcome"`
}

// Node returns the site with the given ID
func (t *Topology) Node(id string) (Site, bool) {
	for _, n := range t.Nodes {
		if n.ID == id {
			return n, true
		}
	}
	return Site{}, false
}

// Edge returns the connection between a and b
func (t *Topology) Edge(a, b string) (Edge, bool) {
	for _, e := range t.Connections {
		if e.Connects(a, b) {
			return e, true
		}
	}
	return Edge{}, false
}

// TotalRouters sums installed routers across nodes
func (t *Topology) TotalRouters() (t1, t2 int) {
	for _, n := range t.Nodes {
		t1 += n.T1Routers
		t2 += n.T2Routers
	}
	return t1, t2
}

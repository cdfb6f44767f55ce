// ABOUTME: Topology builder that allocates inter-site ports to pairwise requirements
// ABOUTME: Runs a direct allocation pass, then one escalation policy for unmet pairs

package services

import (
	"log/slog"
	"math"

	"github.com/markalston/network-capacity-planner/models"
)

// BuildState is the private working state of one build call
type BuildState struct {
	order []string
	sites map[string]*models.Site
	nodes []models.Site
	unmet *models.RequirementMatrix

	// Edges are created lazily when ports are first allocated to a pair
	edges map[models.PairKey]*models.Edge
	adj   map[string][]string

	added map[string]*models.RouterAddition
}

func newBuildState(sites []models.Site) *BuildState {
	s := &BuildState{
		sites: make(map[string]*models.Site, len(sites)),
		nodes: make([]models.Site, 0, len(sites)),
		unmet: models.NewRequirementMatrix(),
		edges: make(map[models.PairKey]*models.Edge),
		adj:   make(map[string][]string),
		added: make(map[string]*models.RouterAddition),
	}
	for _, site := range sites {
		if _, dup := s.sites[site.ID]; dup {
			continue
		}
		s.nodes = append(s.nodes, site.Clone())
		s.order = append(s.order, site.ID)
		s.sites[site.ID] = nil
	}
	for i := range s.nodes {
		node := &s.nodes[i]
		s.sites[node.ID] = node
		for _, r := range node.ExternalRequirements {
			s.unmet.Set(node.ID, r.Peer, r.Bandwidth)
		}
	}
	return s
}

// Site returns the working copy of a site
func (s *BuildState) Site(id string) (*models.Site, bool) {
	site, ok := s.sites[id]
	return site, ok
}

// Unmet returns the remaining requirement from->to
func (s *BuildState) Unmet(from, to string) float64 {
	return s.unmet.Get(from, to)
}

// reduceUnmet lowers both directions of a pair by bw, clamped at zero
func (s *BuildState) reduceUnmet(a, b string, bw float64) {
	s.unmet.Set(a, b, math.Max(s.unmet.Get(a, b)-bw, 0))
	if s.unmet.Has(b, a) {
		s.unmet.Set(b, a, math.Max(s.unmet.Get(b, a)-bw, 0))
	}
}

// clearUnmet zeroes both directions of a pair
func (s *BuildState) clearUnmet(a, b string) {
	s.unmet.Set(a, b, 0)
	if s.unmet.Has(b, a) {
		s.unmet.Set(b, a, 0)
	}
}

// TryDirectLink computes the ports one direct link from a to b would take.
// It never mutates state.
func (s *BuildState) TryDirectLink(a, b string, bw float64) (models.PortInventory, bool) {
	if bw <= 0 {
		return models.PortInventory{}, true
	}
	from, okA := s.sites[a]
	to, okB := s.sites[b]
	if !okA || !okB {
		return models.PortInventory{}, false
	}
	fa, ta := from.Ports.External, to.Ports.External

	if fa.G100 > 0 && ta.G100 > 0 && bw <= models.Bandwidth100 {
		return models.PortInventory{G100: 1}, true
	}
	if fa.G400 > 0 && ta.G400 > 0 && bw <= models.Bandwidth400 {
		return models.PortInventory{G400: 1}, true
	}
	if fa.Capacity() < bw || ta.Capacity() < bw {
		return models.PortInventory{}, false
	}

	n400 := min(int(math.Floor(bw/models.Bandwidth400)), fa.G400, ta.G400)
	remaining := bw - float64(n400*models.Bandwidth400)
	n100 := min(int(math.Ceil(remaining/models.Bandwidth100)), fa.G100, ta.G100)
	remaining -= float64(n100 * models.Bandwidth100)
	if remaining > 0 {
		return models.PortInventory{}, false
	}
	return models.PortInventory{G100: n100, G400: n400}, true
}

// Connect deducts ports from both endpoints, adds them to the pair's edge and
// marks the pair satisfied
func (s *BuildState) Connect(a, b string, ports models.PortInventory) {
	for _, id := range []string{a, b} {
		site := s.sites[id]
		site.Ports.External.G100 -= ports.G100
		site.Ports.External.G400 -= ports.G400
		if site.Ports.External.G100 < 0 || site.Ports.External.G400 < 0 {
			slog.Error("Port inventory went negative", "site", id,
				"g100", site.Ports.External.G100, "g400", site.Ports.External.G400)
		}
	}
	if ports.G100 > 0 || ports.G400 > 0 {
		edge := s.edge(a, b)
		edge.G100PortsUsed += ports.G100
		edge.G400PortsUsed += ports.G400
	}
	s.clearUnmet(a, b)
}

// edge returns the arena edge for a pair, creating it on first use
func (s *BuildState) edge(a, b string) *models.Edge {
	key := models.NewPairKey(a, b)
	if e, ok := s.edges[key]; ok {
		return e
	}
	e := &models.Edge{From: a, To: b}
	s.edges[key] = e
	s.adj[a] = append(s.adj[a], b)
	s.adj[b] = append(s.adj[b], a)
	return e
}

// Edge returns the current edge between a and b; untouched pairs have zero ports
func (s *BuildState) Edge(a, b string) models.Edge {
	if e, ok := s.edges[models.NewPairKey(a, b)]; ok {
		return *e
	}
	return models.Edge{From: a, To: b}
}

// Linked returns sites that share an allocated edge with id, in allocation order
func (s *BuildState) Linked(id string) []string {
	return s.adj[id]
}

// Excess is the edge capacity left after the larger of the pair's unmet requirements
func (s *BuildState) Excess(a, b string) float64 {
	return s.Edge(a, b).Capacity() - math.Max(s.unmet.Get(a, b), s.unmet.Get(b, a))
}

// AddRouter installs one router on a working site
func (s *BuildState) AddRouter(id string, tier models.RouterTier) {
	site, ok := s.sites[id]
	if !ok {
		return
	}
	site.AddRouter(tier)
	rec, ok := s.added[id]
	if !ok {
		rec = &models.RouterAddition{Site: id}
		s.added[id] = rec
	}
	if tier == models.TierTwo {
		rec.T2++
	} else {
		rec.T1++
	}
}

// TopologyBuilder synthesizes the inter-site topology
type TopologyBuilder struct {
	maxRouterAdditions int
}

// NewTopologyBuilder creates a builder; non-positive limits use the default
func NewTopologyBuilder(maxRouterAdditions int) *TopologyBuilder {
	if maxRouterAdditions <= 0 {
		maxRouterAdditions = models.DefaultMaxRouterAdditions
	}
	return &TopologyBuilder{maxRouterAdditions: maxRouterAdditions}
}

// Strategy returns the escalation strategy for a policy name
func (b *TopologyBuilder) Strategy(policy models.EscalationPolicy) EscalationStrategy {
	if policy == models.PolicyRouterAddition {
		return NewRouterAdditionPolicy(b.maxRouterAdditions)
	}
	return NewIndirectPathPolicy()
}

// Build allocates ports for every requirement. Input sites are not modified.
func (b *TopologyBuilder) Build(sites []models.Site, policy models.EscalationPolicy) models.Topology {
	if policy == "" {
		policy = models.DefaultPolicy
	}
	state := newBuildState(sites)
	strategy := b.Strategy(policy)
	methods := make(map[models.PairKey]models.ResolutionMethod)
	reasons := make(map[models.PairKey]models.ShortfallReason)
	routes := []models.IndirectRoute{}

	// Direct allocation pass
	for _, id := range state.order {
		for _, req := range state.sites[id].ExternalRequirements {
			if _, known := state.sites[req.Peer]; !known {
				continue
			}
			if state.Unmet(id, req.Peer) <= 0 || state.Unmet(req.Peer, id) <= 0 {
				continue
			}
			if ports, ok := state.TryDirectLink(id, req.Peer, req.Bandwidth); ok {
				state.Connect(id, req.Peer, ports)
				methods[models.NewPairKey(id, req.Peer)] = models.ResolvedDirect
			}
		}
	}

	// Escalation pass; each pair is escalated once from the first direction seen
	for _, id := range state.order {
		for _, peer := range state.unmet.Peers(id) {
			key := models.NewPairKey(id, peer)
			if _, known := state.sites[peer]; !known {
				continue
			}
			if _, done := reasons[key]; done || state.Unmet(id, peer) <= 0 {
				continue
			}
			res := strategy.Satisfy(state, id, peer)
			if res.Satisfied {
				methods[key] = res.Method
				if len(res.Path) > 0 {
					routes = append(routes, models.IndirectRoute{
						From: id, To: peer, Bandwidth: res.Bandwidth, Path: res.Path,
					})
				}
				continue
			}
			reasons[key] = res.Reason
		}
	}

	topo := models.Topology{
		Nodes:          state.nodes,
		Connections:    state.connections(),
		Requirements:   []models.RequirementResult{},
		Shortfalls:     []models.Shortfall{},
		IndirectRoutes: routes,
		RoutersAdded:   state.routersAdded(),
		Policy:         policy,
	}

	positive, unmetCount := 0, 0
	for _, id := range state.order {
		for _, req := range state.sites[id].ExternalRequirements {
			result := models.RequirementResult{
				From:      id,
				To:        req.Peer,
				Bandwidth: req.Bandwidth,
				Method:    models.ResolvedNone,
				Outcome:   models.OutcomeSatisfied,
			}
			key := models.NewPairKey(id, req.Peer)
			reason, failed := reasons[key]
			if _, known := state.sites[req.Peer]; !known {
				reason, failed = models.ReasonUnknownSite, true
				result.Unmet = req.Bandwidth
			} else {
				result.Unmet = state.Unmet(id, req.Peer)
			}
			if m, ok := methods[key]; ok {
				result.Method = m
			}

			if req.Bandwidth > 0 {
				positive++
			}
			if result.Unmet > 0 {
				unmetCount++
				result.Outcome = models.OutcomePartial
				if result.Unmet >= req.Bandwidth {
					result.Outcome = models.OutcomeInfeasible
				}
				if !failed {
					reason = models.ReasonNoPath
				}
				topo.Shortfalls = append(topo.Shortfalls, models.Shortfall{
					From:      id,
					To:        req.Peer,
					Bandwidth: result.Unmet,
					Reason:    reason,
					Outcome:   result.Outcome,
				})
				slog.Warn("Requirement unmet", "from", id, "to", req.Peer,
					"unmet", result.Unmet, "reason", reason)
			}
			topo.Requirements = append(topo.Requirements, result)
		}
	}

	switch {
	case unmetCount == 0:
		topo.Outcome = models.OutcomeSatisfied
	case unmetCount == positive:
		topo.Outcome = models.OutcomeInfeasible
	default:
		topo.Outcome = models.OutcomePartial
	}

	slog.Debug("Topology built", "policy", policy, "sites", len(state.nodes),
		"edges", len(state.edges), "shortfalls", len(topo.Shortfalls), "outcome", topo.Outcome)
	return topo
}

// connections materializes the complete graph in site order
func (s *BuildState) connections() []models.Edge {
	n := len(s.order)
	out := make([]models.Edge, 0, n*(n-1)/2)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			a, b := s.order[i], s.order[j]
			e := s.Edge(a, b)
			e.From, e.To = a, b
			out = append(out, e)
		}
	}
	return out
}

func (s *BuildState) routersAdded() []models.RouterAddition {
	out := []models.RouterAddition{}
	for _, id := range s.order {
		if rec, ok := s.added[id]; ok {
			out = append(out, *rec)
		}
	}
	return out
}

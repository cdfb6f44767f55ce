// ABOUTME: Ordered site-to-peer bandwidth requirement matrix
// ABOUTME: Preserves insertion order so planning loops are deterministic

package models

import (
	"encoding/json"
	"sort"
)

// RequirementMatrix maps site -> peer -> required bandwidth.
// Sites and peers iterate in first-insertion order. The zero value is ready to use
// and all read methods accept a nil receiver.
type RequirementMatrix struct {
	sites  []string
	peers  map[string][]string
	values map[string]map[string]float64
}

// NewRequirementMatrix creates an empty matrix
func NewRequirementMatrix() *RequirementMatrix {
	return &RequirementMatrix{
		peers:  make(map[string][]string),
		values: make(map[string]map[string]float64),
	}
}

// ensureSite registers a site row if it does not exist yet
func (m *RequirementMatrix) ensureSite(site string) {
	if m.values == nil {
		m.values = make(map[string]map[string]float64)
		m.peers = make(map[string][]string)
	}
	if _, ok := m.values[site]; !ok {
		m.values[site] = make(map[string]float64)
		m.sites = append(m.sites, site)
	}
}

// Set stores bw under from->to, registering both sites (from first)
func (m *RequirementMatrix) Set(from, to string, bw float64) {
	m.ensureSite(from)
	m.ensureSite(to)
	row := m.values[from]
	if _, ok := row[to]; !ok {
		m.peers[from] = append(m.peers[from], to)
	}
	row[to] = bw
}

// SetSymmetric stores bw under both a->b and b->a
func (m *RequirementMatrix) SetSymmetric(a, b string, bw float64) {
	m.ensureSite(a)
	m.ensureSite(b)
	m.Set(a, b, bw)
	m.Set(b, a, bw)
}

// Get returns the bandwidth from->to, zero if absent
func (m *RequirementMatrix) Get(from, to string) float64 {
	if m == nil {
		return 0
	}
	return m.values[from][to]
}

// Has reports whether from->to has an entry
func (m *RequirementMatrix) Has(from, to string) bool {
	if m == nil {
		return false
	}
	_, ok := m.values[from][to]
	return ok
}

// HasSite reports whether the site has a row
func (m *RequirementMatrix) HasSite(site string) bool {
	if m == nil {
		return false
	}
	_, ok := m.values[site]
	return ok
}

// Sites returns the sites in insertion order
func (m *RequirementMatrix) Sites() []string {
	if m == nil {
		return nil
	}
	out := make([]string, len(m.sites))
	copy(out, m.sites)
	return out
}

// Peers returns the peers of a site in insertion order
func (m *RequirementMatrix) Peers(site string) []string {
	if m == nil {
		return nil
	}
	peers := m.peers[site]
	out := make([]string, len(peers))
	copy(out, peers)
	return out
}

// Total sums the outgoing requirements of a site
func (m *RequirementMatrix) Total(site string) float64 {
	if m == nil {
		return 0
	}
	total := 0.0
	for _, peer := range m.peers[site] {
		total += m.values[site][peer]
	}
	return total
}

// Len returns the number of sites with a row
func (m *RequirementMatrix) Len() int {
	if m == nil {
		return 0
	}
	return len(m.sites)
}

// IsSymmetric reports whether every from->to equals to->from
func (m *RequirementMatrix) IsSymmetric() bool {
	if m == nil {
		return true
	}
	for _, site := range m.sites {
		for _, peer := range m.peers[site] {
			if m.Get(site, peer) != m.Get(peer, site) {
				return false
			}
		}
	}
	return true
}

// Clone returns a deep copy
func (m *RequirementMatrix) Clone() *RequirementMatrix {
	out := NewRequirementMatrix()
	if m == nil {
		return out
	}
	for _, site := range m.sites {
		out.ensureSite(site)
		for _, peer := range m.peers[site] {
			out.Set(site, peer, m.values[site][peer])
		}
	}
	return out
}

// MarshalJSON encodes the matrix as a nested object
func (m *RequirementMatrix) MarshalJSON() ([]byte, error) {
	if m == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(m.values)
}

// UnmarshalJSON decodes a nested object; sites and peers are ordered by name
func (m *RequirementMatrix) UnmarshalJSON(data []byte) error {
	var raw map[string]map[string]float64
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*m = *NewRequirementMatrix()

	sites := make([]string, 0, len(raw))
	for site := range raw {
		sites = append(sites, site)
	}
	sort.Strings(sites)

	for _, site := range sites {
		m.ensureSite(site)
		peers := make([]string, 0, len(raw[site]))
		for peer := range raw[site] {
			peers = append(peers, peer)
		}
		sort.Strings(peers)
		for _, peer := range peers {
			m.Set(site, peer, raw[site][peer])
		}
	}
	return nil
}

// RequirementsResult is the aggregator output
type RequirementsResult struct {
	Matrix *RequirementMatrix `json:"requirements"`
	Demand map[string]float64 `json:"aggregate_demand"`
}

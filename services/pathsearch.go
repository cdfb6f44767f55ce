// ABOUTME: Breadth-first path search over the site link graph
// ABOUTME: Neighbor filtering restricts traversal to links with enough spare capacity

package services

// pathQueueItem pairs a site with the site it was reached from
type pathQueueItem struct {
	id     string
	parent string // empty for root
}

// pathWalker holds mutable BFS state for one search
type pathWalker struct {
	neighbors func(id string) []string
	allow     func(curr, next string) bool
	queue     []pathQueueItem
	visited   map[string]bool
	parent    map[string]string
}

// FindPath returns the fewest-hop path from src to dst, visiting neighbors in
// the order the neighbors function yields them and skipping any link allow
// rejects. The returned path includes both endpoints.
func FindPath(src, dst string, neighbors func(id string) []string, allow func(curr, next string) bool) ([]string, bool) {
	if src == dst {
		return []string{src}, true
	}
	w := &pathWalker{
		neighbors: neighbors,
		allow:     allow,
		visited:   make(map[string]bool),
		parent:    make(map[string]string),
	}
	w.enqueue(src, "")

	for len(w.queue) > 0 {
		item := w.queue[0]
		w.queue = w.queue[1:]

		for _, next := range w.neighbors(item.id) {
			if w.visited[next] || !w.allow(item.id, next) {
				continue
			}
			w.enqueue(next, item.id)
			if next == dst {
				return w.pathTo(dst), true
			}
		}
	}
	return nil, false
}

func (w *pathWalker) enqueue(id, parent string) {
	w.visited[id] = true
	if parent != "" {
		w.parent[id] = parent
	}
	w.queue = append(w.queue, pathQueueItem{id: id, parent: parent})
}

// pathTo walks parent links back from dest and reverses them
func (w *pathWalker) pathTo(dest string) []string {
	path := []string{dest}
	for curr := dest; ; {
		p, ok := w.parent[curr]
		if !ok {
			break
		}
		path = append(path, p)
		curr = p
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

package traits

import "sync"

// Graph models directed adoption edges between traits: an edge A -> B means
// "A adopts B". It exists to keep the composition acyclic; flattening itself
// happens incrementally as ledgers splice adopted content.
type Graph struct {
	mu    sync.RWMutex
	names map[string]string
	edges map[string][]string
}

// NewGraph constructs an empty composition graph.
func NewGraph() *Graph {
	return &Graph{
		names: make(map[string]string),
		edges: make(map[string][]string),
	}
}

func (g *Graph) addNode(id, name string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.names[id] = name
}

// AddEdge records that from adopts to. It fails with *CycleError when to
// already reaches from transitively, leaving the graph untouched.
func (g *Graph) AddEdge(from, to string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if from == to || g.reaches(to, from) {
		return &CycleError{From: g.label(from), To: g.label(to)}
	}
	g.edges[from] = append(g.edges[from], to)
	return nil
}

// Adopted returns the ids directly adopted by id, in adoption order.
func (g *Graph) Adopted(id string) []string {
	g.mu.RLock()
	defer g.mu.RUnlock()
	adopted := g.edges[id]
	if len(adopted) == 0 {
		return nil
	}
	return append([]string{}, adopted...)
}

// Reaches reports whether from can reach to by following adoption edges.
func (g *Graph) Reaches(from, to string) bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.reaches(from, to)
}

// reaches walks edges depth-first. Callers hold g.mu.
func (g *Graph) reaches(from, to string) bool {
	if from == to {
		return true
	}
	seen := map[string]struct{}{from: {}}
	stack := append([]string{}, g.edges[from]...)
	for len(stack) > 0 {
		next := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if next == to {
			return true
		}
		if _, visited := seen[next]; visited {
			continue
		}
		seen[next] = struct{}{}
		stack = append(stack, g.edges[next]...)
	}
	return false
}

func (g *Graph) label(id string) string {
	if name, ok := g.names[id]; ok && name != "" {
		return name
	}
	return id
}

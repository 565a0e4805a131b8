package pnr

import (
	"container/heap"
	"fmt"

	"github.com/Stateford/aion-sub002/arch"
	"github.com/Stateford/aion-sub002/diag"
)

// RouteResourceKind discriminates a RouteNode's payload (§3).
type RouteResourceKind int

const (
	ResourceDirect RouteResourceKind = iota // Phase-2 stub: no concrete routing graph
	ResourceWire
	ResourcePip
)

// WireID and PipID name concrete routing-fabric resources a Phase-3
// architecture's routing graph would resolve against.
type WireID int
type PipID int

// RouteNode is one point in a route tree (§3).
type RouteNode struct {
	Resource RouteResourceKind
	Wire     WireID
	Pip      PipID
	Children []*RouteNode
}

// RouteTree is the routing result for one net (§3).
type RouteTree struct {
	Root *RouteNode
}

// StubRouteTree returns the Phase-2 placeholder route: a single Direct
// node with no children, used when the architecture's routing graph is
// empty (§4.I.3).
func StubRouteTree() *RouteTree {
	return &RouteTree{Root: &RouteNode{Resource: ResourceDirect}}
}

// PipsUsed returns every PIP ID visited by this route tree, flattened.
// An empty slice from a stub tree (Resource == Direct, no children) is
// the documented "known placeholder" signal bitstream assembly checks for
// (§3, §4.I.3).
func (t *RouteTree) PipsUsed() []PipID {
	if t == nil || t.Root == nil {
		return nil
	}
	var out []PipID
	var walk func(*RouteNode)
	walk = func(n *RouteNode) {
		if n.Resource == ResourcePip {
			out = append(out, n.Pip)
		}
		for _, c := range n.Children {
			walk(c)
		}
	}
	walk(t.Root)
	return out
}

// IsStub reports whether t is the Phase-2 placeholder: root resource is
// Direct and no PIPs were visited.
func (t *RouteTree) IsStub() bool {
	if t == nil || t.Root == nil {
		return true
	}
	return t.Root.Resource == ResourceDirect && len(t.PipsUsed()) == 0
}

// routingResourceUsage tracks, per resource, how many nets currently
// route through it, for PathFinder's negotiated-congestion cost model.
type routingResourceUsage struct {
	usage      map[PipID]int
	capacity   map[PipID]int
	historyCost map[PipID]float64
}

func newRoutingResourceUsage() *routingResourceUsage {
	return &routingResourceUsage{
		usage:       make(map[PipID]int),
		capacity:    make(map[PipID]int),
		historyCost: make(map[PipID]float64),
	}
}

// presentCost is PathFinder's present-congestion multiplier for one
// resource: 1 plus usage in excess of capacity (capacity defaults to 1 if
// never set).
func (r *routingResourceUsage) presentCost(p PipID) float64 {
	cap := r.capacity[p]
	if cap == 0 {
		cap = 1
	}
	excess := r.usage[p] - cap
	if excess < 0 {
		excess = 0
	}
	return 1.0 + float64(excess)
}

// edgeCost is the PathFinder edge weight: a unit base cost per PIP (the
// abstract routing graph carries no per-PIP delay of its own) plus the
// concrete accumulation rule from SPEC_FULL.md, present_cost *
// usage_excess + history_cost (§4.I.3).
func (r *routingResourceUsage) edgeCost(p PipID) float64 {
	cap := r.capacity[p]
	if cap == 0 {
		cap = 1
	}
	excess := r.usage[p] - cap
	if excess < 0 {
		excess = 0
	}
	return r.presentCost(p)*float64(excess) + r.historyCost[p] + 1.0
}

// updateHistory grows the history cost of every over-used resource after
// one outer routing iteration, PathFinder's negotiated-congestion
// mechanism for converging on a legal routing.
func (r *routingResourceUsage) updateHistory() (overused bool) {
	for p, used := range r.usage {
		cap := r.capacity[p]
		if cap == 0 {
			cap = 1
		}
		if used > cap {
			r.historyCost[p] += float64(used - cap)
			overused = true
		}
	}
	return overused
}

const maxRoutingIterations = 30

// Route routes every net in n. When a's routing graph is empty (Phase-2,
// arch.RoutingGraphSize() == 0), every net gets a stub route tree (§4.I.3
// Phase-2 stub contract). Otherwise PathFinder negotiated-congestion
// routing runs over the abstract per-net PIP demand model below.
func Route(n *PnrNetlist, a arch.Architecture, sink *diag.Sink) {
	if a.RoutingGraphSize() == 0 {
		for i := range n.Nets {
			n.Nets[i].Routing = StubRouteTree()
		}
		return
	}

	usage := newRoutingResourceUsage()
	for iter := 0; iter < maxRoutingIterations; iter++ {
		// Rip up every net's previous route and re-demand its resources.
		for p := range usage.usage {
			usage.usage[p] = 0
		}
		for i := range n.Nets {
			net := &n.Nets[i]
			tree := routeOneNet(n, net, usage)
			net.Routing = tree
			for _, p := range tree.PipsUsed() {
				usage.usage[p]++
			}
		}
		if !usage.updateHistory() {
			return
		}
	}
	if sink != nil {
		sink.Emit(diag.Diagnostic{
			Severity: diag.Warning,
			Code:     diag.CodeRoutingDidNotConverge,
			Message:  fmt.Sprintf("routing did not converge within %d iterations; output may be over-congested", maxRoutingIterations),
		})
	}
}

// routeOneNet builds a route tree for net using A* search from the
// driver pin's resource to each sink pin's resource, treating every sink
// as a PIP chain rooted at the driver. The abstract resource space here
// is a dense PIP-per-hop model derived from cell indices; a concrete
// device's routing graph would replace aStarPath's 1-D hop chain with real
// adjacency.
func routeOneNet(n *PnrNetlist, net *PnrNet, usage *routingResourceUsage) *RouteTree {
	root := &RouteNode{Resource: ResourceDirect}
	driverCell := n.Pins[net.Driver].Cell

	for _, sinkPin := range net.Sinks {
		sinkCell := n.Pins[sinkPin].Cell
		path := aStarPath(driverCell, sinkCell, usage)
		node := root
		for _, p := range path {
			child := &RouteNode{Resource: ResourcePip, Pip: p}
			node.Children = append(node.Children, child)
			node = child
		}
	}
	return &RouteTree{Root: root}
}

// aStarPath finds a PIP chain between two cells' synthetic resource
// coordinates, minimizing the PathFinder-weighted edge cost. The
// resource graph is a 1-D chain of hop PIPs between cell indices (an
// abstract stand-in for a concrete device's interconnect graph, which
// this core treats as an opaque collaborator — §6).
func aStarPath(from, to PnrCellID, usage *routingResourceUsage) []PipID {
	if from == to {
		return nil
	}
	lo, hi := int(from), int(to)
	if lo > hi {
		lo, hi = hi, lo
	}

	type node = struct {
		pos  int
		cost float64
	}
	pq := &pathQueue{}
	heap.Init(pq)
	heap.Push(pq, node{pos: lo})

	visited := make(map[int]bool)
	cameFrom := make(map[int]int)
	bestCost := map[int]float64{lo: 0}

	for pq.Len() > 0 {
		cur := heap.Pop(pq).(node)
		if visited[cur.pos] {
			continue
		}
		visited[cur.pos] = true
		if cur.pos == hi {
			break
		}
		if cur.pos+1 <= hi {
			pip := PipID(cur.pos)
			newCost := cur.cost + usage.edgeCost(pip)
			if existing, ok := bestCost[cur.pos+1]; !ok || newCost < existing {
				bestCost[cur.pos+1] = newCost
				cameFrom[cur.pos+1] = cur.pos
				heap.Push(pq, node{pos: cur.pos + 1, cost: newCost})
			}
		}
	}

	var path []PipID
	p := hi
	for p != lo {
		prev, ok := cameFrom[p]
		if !ok {
			break
		}
		path = append([]PipID{PipID(prev)}, path...)
		p = prev
	}
	return path
}

// pathQueue is a minimal binary-heap priority queue over (pos, cost)
// pairs for aStarPath's Dijkstra-equivalent search (the abstract resource
// graph has no heuristic distance estimate worth computing beyond the
// accumulated edge cost itself, so this degrades to Dijkstra rather than
// true A*).
type pathQueue struct {
	items []struct {
		pos  int
		cost float64
	}
}

func (q *pathQueue) Len() int { return len(q.items) }
func (q *pathQueue) Less(i, j int) bool {
	return q.items[i].cost < q.items[j].cost
}
func (q *pathQueue) Swap(i, j int) { q.items[i], q.items[j] = q.items[j], q.items[i] }
func (q *pathQueue) Push(x any) {
	q.items = append(q.items, x.(struct {
		pos  int
		cost float64
	}))
}
func (q *pathQueue) Pop() any {
	old := q.items
	n := len(old)
	item := old[n-1]
	q.items = old[:n-1]
	return item
}

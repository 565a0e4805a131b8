package timing

import "fmt"

// EndpointResult is one timing endpoint's computed arrival, required, and
// slack, reported for every node that terminates a checked path (§4.J).
type EndpointResult struct {
	Node     NodeID
	Name     string
	Arrival  int64
	Required int64
	Slack    int64
}

// Report is the outcome of analyze_timing: every node's arrival/required
// time is available via Arrivals/Requireds, plus the endpoint-level
// summary and the overall met/violated verdict.
type Report struct {
	Arrivals  map[NodeID]int64
	Requireds map[NodeID]int64
	Endpoints []EndpointResult
	Met       bool
}

// WorstSlack returns the minimum slack across every reported endpoint, or
// 0 if there are no endpoints.
func (r *Report) WorstSlack() int64 {
	if len(r.Endpoints) == 0 {
		return 0
	}
	worst := r.Endpoints[0].Slack
	for _, e := range r.Endpoints[1:] {
		if e.Slack < worst {
			worst = e.Slack
		}
	}
	return worst
}

// Analyze runs static timing analysis over graph under constraints,
// producing forward arrival times, backward required times, and
// per-endpoint slack (§4.J). The graph must be acyclic (§3); Analyze
// returns an error rather than looping forever if it is not.
func Analyze(graph *Graph, constraints *Constraints) (*Report, error) {
	if !graph.IsAcyclic() {
		return nil, fmt.Errorf("timing: graph is not acyclic")
	}

	order, err := topoOrder(graph)
	if err != nil {
		return nil, err
	}

	arrivals := forwardArrival(graph, order)
	clockOfNode := clockSourceNames(graph)
	requireds := backwardRequired(graph, order, constraints, clockOfNode, arrivals)

	report := &Report{Arrivals: arrivals, Requireds: requireds, Met: true}

	// Endpoints are the "to" side of every SetupCheck/HoldCheck edge (the
	// D pin of a register) and every node with a known required time that
	// is otherwise a sink (primary outputs, max-delay terminals).
	seen := make(map[NodeID]bool)
	addEndpoint := func(id NodeID) {
		if seen[id] {
			return
		}
		seen[id] = true
		arr := arrivals[id]
		req, ok := requireds[id]
		if !ok {
			return
		}
		slack := req - arr
		report.Endpoints = append(report.Endpoints, EndpointResult{
			Node: id, Name: graph.Node(id).Name, Arrival: arr, Required: req, Slack: slack,
		})
		if slack < 0 {
			report.Met = false
		}
	}

	for id := 0; id < graph.NodeCount(); id++ {
		nid := NodeID(id)
		for _, eid := range graph.InEdges(nid) {
			e := graph.Edge(eid)
			if e.EdgeType == SetupCheck || e.EdgeType == HoldCheck {
				addEndpoint(e.To)
			}
		}
	}
	for _, sinkID := range graph.Sinks() {
		if graph.Node(sinkID).NodeType == PrimaryOutput {
			addEndpoint(sinkID)
		}
	}

	return report, nil
}

// topoOrder returns nodes in a valid topological order (Kahn's algorithm).
// An error here signals a cycle that IsAcyclic should already have caught;
// it is kept as a defensive second check since the two traversals are
// independent implementations.
func topoOrder(g *Graph) ([]NodeID, error) {
	indeg := make(map[NodeID]int, g.NodeCount())
	for id := 0; id < g.NodeCount(); id++ {
		nid := NodeID(id)
		indeg[nid] = len(g.InEdges(nid))
	}
	var queue []NodeID
	for id := 0; id < g.NodeCount(); id++ {
		nid := NodeID(id)
		if indeg[nid] == 0 {
			queue = append(queue, nid)
		}
	}
	var order []NodeID
	for len(queue) > 0 {
		n := queue[0]
		queue = queue[1:]
		order = append(order, n)
		for _, eid := range g.OutEdges(n) {
			e := g.Edge(eid)
			indeg[e.To]--
			if indeg[e.To] == 0 {
				queue = append(queue, e.To)
			}
		}
	}
	if len(order) != g.NodeCount() {
		return nil, fmt.Errorf("timing: cycle detected during topological sort")
	}
	return order, nil
}

// forwardArrival computes each node's arrival time: the longest path from
// any source using max-delay edges, excluding SetupCheck/HoldCheck edges
// from accumulation (§4.J).
func forwardArrival(g *Graph, order []NodeID) map[NodeID]int64 {
	arrival := make(map[NodeID]int64, len(order))
	for _, n := range order {
		best := int64(0)
		have := false
		for _, eid := range g.InEdges(n) {
			e := g.Edge(eid)
			if e.EdgeType == SetupCheck || e.EdgeType == HoldCheck {
				continue
			}
			cand := arrival[e.From] + e.Delay.Max
			if !have || cand > best {
				best = cand
				have = true
			}
		}
		arrival[n] = best
	}
	return arrival
}

// clockSourceNames maps every ClockSource node's ID to its Name, which by
// convention (enforced by whoever builds the graph, e.g. pnr's timing
// bridge) matches a Constraints.Clock's Name field.
func clockSourceNames(g *Graph) map[NodeID]string {
	out := make(map[NodeID]string)
	for id := 0; id < g.NodeCount(); id++ {
		n := g.Node(NodeID(id))
		if n.NodeType == ClockSource {
			out[n.ID] = n.Name
		}
	}
	return out
}

// backwardRequired computes each node's required time by propagating
// backward from endpoints with a known required time: a register's D pin
// (constrained by its clock's period minus the SetupCheck edge's setup
// time, or an explicit max-delay constraint), and primary outputs
// (constrained by an output IODelay; max-delay constraints are applied
// only at SetupCheck endpoints, not at primary outputs). Nodes with no
// downstream constraint are left unset, matching a design where only some
// paths are checked.
func backwardRequired(g *Graph, order []NodeID, c *Constraints, clockOfNode map[NodeID]string, arrival map[NodeID]int64) map[NodeID]int64 {
	required := make(map[NodeID]int64, len(order))
	hasRequired := make(map[NodeID]bool, len(order))

	setRequired := func(id NodeID, v int64) {
		if cur, ok := required[id]; !ok || v < cur {
			required[id] = v
		}
		hasRequired[id] = true
	}

	// Seed D-pin endpoints from SetupCheck edges: required(D) = clock
	// period - setup time, unless an explicit max-delay path overrides it.
	for id := 0; id < g.NodeCount(); id++ {
		nid := NodeID(id)
		for _, eid := range g.InEdges(nid) {
			e := g.Edge(eid)
			if e.EdgeType != SetupCheck {
				continue
			}
			toName := g.Node(e.To).Name
			fromName := g.Node(e.From).Name
			if maxDelay, ok := c.maxDelayFor(fromName, toName); ok {
				setRequired(e.To, maxDelay)
				continue
			}
			if clkName, ok := clockOfNode[e.From]; ok {
				if clk, ok := c.ClockFor(clkName); ok {
					req := clk.Period - e.Delay.Max
					if cycles, ok := c.multicycleFor(fromName, toName); ok {
						req = clk.Period*int64(cycles) - e.Delay.Max
					}
					setRequired(e.To, req)
				}
			}
		}
	}

	// Seed primary outputs from IODelay / max-delay constraints.
	for id := 0; id < g.NodeCount(); id++ {
		n := g.Node(NodeID(id))
		if n.NodeType != PrimaryOutput {
			continue
		}
		for _, iod := range c.IODelays {
			if iod.IsInput || iod.Port != n.Name {
				continue
			}
			if clk, ok := c.ClockFor(iod.Clock); ok {
				setRequired(n.ID, clk.Period-iod.Delay)
			}
		}
	}

	// Drop false-path endpoints entirely (§4.J: "removed from analysis
	// entirely").
	for _, fp := range c.FalsePaths {
		for id := 0; id < g.NodeCount(); id++ {
			n := g.Node(NodeID(id))
			if n.Name == fp.To {
				delete(required, n.ID)
				delete(hasRequired, n.ID)
			}
		}
	}

	// Propagate backward in reverse topological order through ordinary
	// (non-check) edges: required(from) = min(required(from), required(to) - delay.Max).
	for i := len(order) - 1; i >= 0; i-- {
		n := order[i]
		for _, eid := range g.OutEdges(n) {
			e := g.Edge(eid)
			if e.EdgeType == SetupCheck || e.EdgeType == HoldCheck {
				continue
			}
			if !hasRequired[e.To] {
				continue
			}
			cand := required[e.To] - e.Delay.Max
			setRequired(e.From, cand)
		}
	}

	return required
}

package pnr

import (
	"math"
	"math/rand"

	"github.com/Stateford/aion-sub002/arch"
)

// PlacementConstraints bundles the inputs Place consults beyond the
// netlist and architecture: an explicit RNG seed for deterministic
// annealing runs, and any caller-supplied fixed site assignments (e.g. an
// XDC/SDC-derived IO pin lock, consumed only at this struct's boundary
// since constraint-file parsing is out of scope, §1).
type PlacementConstraints struct {
	Seed         int64
	FixedSites   map[string]SiteID // cell name -> site, applied before annealing
	IterationCap int               // 0 means DefaultIterationCap
}

// DefaultIterationCap bounds the annealing schedule's outer rounds when
// the cooling schedule alone has not already terminated it.
const DefaultIterationCap = 64

// nonImprovingRoundLimit is how many consecutive rounds with no accepted
// improving move end the schedule early (§4.I.2 supplemented constants).
const nonImprovingRoundLimit = 10

// coolingRate is the geometric cooling rate applied once per outer round.
const coolingRate = 0.95

// congestionPenalty is the cost added per extra cell sharing a site,
// applied unconditionally (Open Question resolved in DESIGN.md: the
// congestion term is independent of whether a concrete routing graph is
// loaded).
const congestionPenalty = 1000.0

// siteGrid describes the coordinate space placement works over: either a
// concrete device grid (arch.GridGeometry()) or, when that is the Phase-2
// stub (0, 0), a synthetic square grid sized to fit every movable cell
// (§4.I.2 Phase 2 fallback).
type siteGrid struct {
	cols, rows int
}

func (g siteGrid) siteAt(x, y int) SiteID { return SiteID(y*g.cols + x) }

func (g siteGrid) coords(s SiteID) (x, y int) {
	return int(s) % g.cols, int(s) / g.cols
}

func (g siteGrid) size() int { return g.cols * g.rows }

// Place assigns a SiteID to every non-fixed cell: a random legal initial
// assignment followed by simulated annealing minimizing total half-
// perimeter wire length plus a congestion penalty (§4.I.2).
func Place(n *PnrNetlist, a arch.Architecture, constraints *PlacementConstraints) {
	if constraints == nil {
		constraints = &PlacementConstraints{}
	}
	rng := rand.New(rand.NewSource(constraints.Seed))

	var movable []PnrCellID
	for i := range n.Cells {
		c := &n.Cells[i]
		if c.IsFixed {
			continue
		}
		movable = append(movable, c.ID)
	}

	grid := computeGrid(a, len(movable))
	if grid.size() == 0 {
		return
	}

	assign := func(id PnrCellID, s SiteID) {
		site := s
		n.Cells[id].Placement = &site
	}

	// Apply caller-supplied fixed sites first, then randomly legal-place
	// the rest (allowing multiple cells per site — congestion penalty
	// discourages, not forbids, that in this Phase-2 model).
	placed := make(map[PnrCellID]bool)
	for _, id := range movable {
		name := n.Cells[id].Name
		if site, ok := constraints.FixedSites[name]; ok {
			assign(id, site)
			placed[id] = true
		}
	}
	for _, id := range movable {
		if placed[id] {
			continue
		}
		assign(id, SiteID(rng.Intn(grid.size())))
	}

	if len(movable) < 2 {
		return
	}

	occupancy := buildOccupancy(n, movable)
	cost := placementCost(n, movable, grid, occupancy)

	temp := initialTemperature(n, movable, grid, occupancy, rng)
	iterCap := constraints.IterationCap
	if iterCap == 0 {
		iterCap = DefaultIterationCap
	}

	nonImproving := 0
	for round := 0; round < iterCap && nonImproving < nonImprovingRoundLimit; round++ {
		improved := false
		for i := 0; i < len(movable)*4; i++ {
			cell := movable[rng.Intn(len(movable))]
			if constraints.FixedSites != nil {
				if _, locked := constraints.FixedSites[n.Cells[cell].Name]; locked {
					continue
				}
			}
			oldSite := *n.Cells[cell].Placement
			newSite := SiteID(rng.Intn(grid.size()))
			if newSite == oldSite {
				continue
			}

			moveCost := moveDelta(n, movable, grid, occupancy, cell, oldSite, newSite)
			if moveCost < 0 || rng.Float64() < math.Exp(-moveCost/temp) {
				occupancy[oldSite]--
				occupancy[newSite]++
				site := newSite
				n.Cells[cell].Placement = &site
				cost += moveCost
				if moveCost < 0 {
					improved = true
				}
			}
		}
		if improved {
			nonImproving = 0
		} else {
			nonImproving++
		}
		temp *= coolingRate
	}
	_ = cost
}

// computeGrid resolves the site grid to place onto: the architecture's
// concrete grid if it has one, else a synthetic square grid at least big
// enough to hold every movable cell with headroom (so single-site
// placement isn't the only legal option).
func computeGrid(a arch.Architecture, movableCount int) siteGrid {
	if cols, rows := a.GridGeometry(); cols > 0 && rows > 0 {
		return siteGrid{cols: cols, rows: rows}
	}
	if movableCount == 0 {
		return siteGrid{}
	}
	side := int(math.Ceil(math.Sqrt(float64(movableCount) * 1.5)))
	if side < 1 {
		side = 1
	}
	return siteGrid{cols: side, rows: side}
}

func buildOccupancy(n *PnrNetlist, movable []PnrCellID) map[SiteID]int {
	occ := make(map[SiteID]int)
	for i := range n.Cells {
		c := &n.Cells[i]
		if c.Placement != nil {
			occ[*c.Placement]++
		}
	}
	return occ
}

// placementCost is the full-recompute cost function: sum over nets of
// bounding-box half-perimeter wire length, plus a congestion penalty
// summed over every site with more than one occupant (§4.I.2).
func placementCost(n *PnrNetlist, movable []PnrCellID, grid siteGrid, occupancy map[SiteID]int) float64 {
	total := 0.0
	for i := range n.Nets {
		total += netHPWL(n, &n.Nets[i], grid)
	}
	for _, count := range occupancy {
		if count > 1 {
			total += float64(count-1) * congestionPenalty
		}
	}
	return total
}

func netHPWL(n *PnrNetlist, net *PnrNet, grid siteGrid) float64 {
	minX, minY := math.MaxInt32, math.MaxInt32
	maxX, maxY := math.MinInt32, math.MinInt32
	have := false

	visit := func(pin PnrPinID) {
		cell := &n.Cells[n.Pins[pin].Cell]
		if cell.Placement == nil {
			return
		}
		x, y := grid.coords(*cell.Placement)
		if x < minX {
			minX = x
		}
		if x > maxX {
			maxX = x
		}
		if y < minY {
			minY = y
		}
		if y > maxY {
			maxY = y
		}
		have = true
	}
	visit(net.Driver)
	for _, s := range net.Sinks {
		visit(s)
	}
	if !have {
		return 0
	}
	return float64((maxX - minX) + (maxY - minY))
}

// moveDelta computes the net cost change of moving cell from oldSite to
// newSite, without a full recompute: it re-evaluates only the nets that
// touch cell, plus the congestion delta at the two sites involved.
func moveDelta(n *PnrNetlist, movable []PnrCellID, grid siteGrid, occupancy map[SiteID]int, cell PnrCellID, oldSite, newSite SiteID) float64 {
	touched := touchingNets(n, cell)

	before := 0.0
	for _, netID := range touched {
		before += netHPWL(n, &n.Nets[netID], grid)
	}

	site := newSite
	n.Cells[cell].Placement = &site
	after := 0.0
	for _, netID := range touched {
		after += netHPWL(n, &n.Nets[netID], grid)
	}
	site = oldSite
	n.Cells[cell].Placement = &site

	delta := after - before

	oldCongestionBefore := congestionTerm(occupancy[oldSite])
	newCongestionBefore := congestionTerm(occupancy[newSite])
	oldCongestionAfter := congestionTerm(occupancy[oldSite] - 1)
	newCongestionAfter := congestionTerm(occupancy[newSite] + 1)

	delta += (oldCongestionAfter + newCongestionAfter) - (oldCongestionBefore + newCongestionBefore)

	return delta
}

func congestionTerm(count int) float64 {
	if count > 1 {
		return float64(count-1) * congestionPenalty
	}
	return 0
}

func touchingNets(n *PnrNetlist, cell PnrCellID) []PnrNetID {
	var out []PnrNetID
	seen := make(map[PnrNetID]bool)
	for _, pinID := range n.Cells[cell].PinIDs {
		if net := n.Pins[pinID].Net; net != nil {
			if !seen[*net] {
				seen[*net] = true
				out = append(out, *net)
			}
		}
	}
	return out
}

// initialTemperature samples a handful of random single-cell moves and
// derives a starting temperature from their average cost delta's
// magnitude, so the schedule starts high enough that most worsening moves
// are accepted early on (§4.I.2 supplemented constant).
func initialTemperature(n *PnrNetlist, movable []PnrCellID, grid siteGrid, occupancy map[SiteID]int, rng *rand.Rand) float64 {
	const samples = 20
	sum := 0.0
	count := 0
	for i := 0; i < samples && len(movable) > 0; i++ {
		cell := movable[rng.Intn(len(movable))]
		oldSite := *n.Cells[cell].Placement
		newSite := SiteID(rng.Intn(grid.size()))
		if newSite == oldSite {
			continue
		}
		delta := moveDelta(n, movable, grid, occupancy, cell, oldSite, newSite)
		sum += math.Abs(delta)
		count++
	}
	if count == 0 || sum == 0 {
		return 1.0
	}
	avg := sum / float64(count)
	return avg * 2
}

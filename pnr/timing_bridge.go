package pnr

import (
	"fmt"

	"github.com/Stateford/aion-sub002/arch"
	"github.com/Stateford/aion-sub002/timing"
)

// defaultClockName is the node name BuildTimingGraph gives its single
// synthesized clock source. A Constraints.Clock with this name is what a
// caller's timing.Analyze pass should supply to check this graph (§4.I.4).
const defaultClockName = "clk"

// dffSetupTime and dffHoldTime are Phase-2 placeholder setup/hold times
// charged on every DFF's D input, since the abstract netlist carries no
// per-primitive timing model beyond arch.CellDelay's lump-sum delay.
const dffSetupTime = 50
const dffHoldTime = 20

// BuildTimingGraph derives a device-independent timing graph from a placed
// netlist (§4.I.4): one node per pin, CellDelay edges through combinational
// primitives, ClockToQ/SetupCheck edges around DFFs, and NetDelay edges
// along each net scaled by placement distance when sites are known.
func BuildTimingGraph(n *PnrNetlist, a arch.Architecture) *timing.Graph {
	g := timing.NewGraph()

	pinNode := make(map[PnrPinID]timing.NodeID, len(n.Pins))
	var clockNode timing.NodeID
	haveClock := false

	nodeName := func(cellID PnrCellID, pinID PnrPinID) string {
		return fmt.Sprintf("%s.%s", n.Cells[cellID].Name, n.Pins[pinID].Name)
	}

	for i := range n.Cells {
		c := &n.Cells[i]
		for _, pinID := range c.PinIDs {
			nt := timing.CellPin
			if c.CellType.Kind == CellIobuf {
				switch c.CellType.IobufDirection {
				case IobufInput:
					nt = timing.PrimaryInput
				case IobufOutput:
					nt = timing.PrimaryOutput
				}
			}
			pinNode[pinID] = g.AddNode(nodeName(c.ID, pinID), nt)
		}
	}

	delayFor := func(kind PnrCellTypeKind) int64 {
		switch kind {
		case CellLut:
			return a.CellDelay("LUT")
		case CellDff:
			return a.CellDelay("DFF")
		case CellCarry:
			return a.CellDelay("CARRY")
		default:
			return a.CellDelay("")
		}
	}

	for i := range n.Cells {
		c := &n.Cells[i]
		var inputs, outputs []PnrPinID
		for _, pinID := range c.PinIDs {
			switch n.Pins[pinID].Direction {
			case PinInput:
				inputs = append(inputs, pinID)
			case PinOutput:
				outputs = append(outputs, pinID)
			case PinInOut:
				inputs = append(inputs, pinID)
				outputs = append(outputs, pinID)
			}
		}

		switch c.CellType.Kind {
		case CellDff:
			if !haveClock {
				clockNode = g.AddNode(defaultClockName, timing.ClockSource)
				haveClock = true
			}
			delay := timing.Delay{Min: delayFor(CellDff), Typ: delayFor(CellDff), Max: delayFor(CellDff)}
			for _, out := range outputs {
				g.AddEdge(clockNode, pinNode[out], delay, timing.ClockToQ)
			}
			setup := timing.Delay{Min: dffSetupTime, Typ: dffSetupTime, Max: dffSetupTime}
			hold := timing.Delay{Min: dffHoldTime, Typ: dffHoldTime, Max: dffHoldTime}
			for _, in := range inputs {
				if n.Pins[in].Name != "D" {
					continue
				}
				g.AddEdge(clockNode, pinNode[in], setup, timing.SetupCheck)
				g.AddEdge(clockNode, pinNode[in], hold, timing.HoldCheck)
			}
		case CellIobuf:
			// Primary I/O pins are graph sources/sinks on their own; no
			// internal delay arc to add.
		default:
			delay := timing.Delay{Min: delayFor(c.CellType.Kind), Typ: delayFor(c.CellType.Kind), Max: delayFor(c.CellType.Kind)}
			for _, in := range inputs {
				for _, out := range outputs {
					g.AddEdge(pinNode[in], pinNode[out], delay, timing.CellDelay)
				}
			}
		}
	}

	netUnit := a.NetDelayPerUnit()
	for i := range n.Nets {
		net := &n.Nets[i]
		driverNode := pinNode[net.Driver]
		for _, sinkPinID := range net.Sinks {
			d := netDelay(n, net.Driver, sinkPinID, netUnit)
			g.AddEdge(driverNode, pinNode[sinkPinID], d, timing.NetDelay)
		}
	}

	return g
}

// netDelay estimates a net's delay from the Manhattan placement distance
// between its driver and sink cells, scaled by the architecture's
// per-unit constant (§4.I.4). Unplaced cells (Phase-2, no concrete grid)
// get a zero net delay, matching the trivial-cost-function fallback
// placement already applies.
func netDelay(n *PnrNetlist, driverPin, sinkPin PnrPinID, unit int64) timing.Delay {
	driverCell := &n.Cells[n.Pins[driverPin].Cell]
	sinkCell := &n.Cells[n.Pins[sinkPin].Cell]
	if driverCell.Placement == nil || sinkCell.Placement == nil {
		return timing.Delay{}
	}
	dist := manhattan(int(*driverCell.Placement), int(*sinkCell.Placement))
	d := int64(dist) * unit
	return timing.Delay{Min: d, Typ: d, Max: d}
}

// manhattan computes the 1-D difference between two packed site IDs as a
// stand-in grid distance; BuildTimingGraph does not have the grid's column
// count in scope, so this degrades to a linear distance over the packed
// SiteID space rather than true (dx+dy) Manhattan distance. Good enough
// for relative congestion/critical-path comparisons at Phase 2.
func manhattan(a, b int) int {
	if a > b {
		return a - b
	}
	return b - a
}

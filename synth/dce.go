package synth

import (
	"github.com/Stateford/aion-sub002/diag"
	"github.com/Stateford/aion-sub002/ir"
)

// DcePass removes cells whose outputs are unused: not connected to any
// live cell's input, and not driving an output port. It works backwards
// from the module's port signals (§4.H).
type DcePass struct{}

func (DcePass) Run(n *Netlist, _ *diag.Sink) bool {
	changed := false

	liveSignals := make(map[ir.SignalID]bool)
	for _, p := range n.Module.Ports {
		liveSignals[p.Signal] = true
	}

	driverMap := n.DriverMap()
	liveCells := make(map[ir.CellID]bool)

	var worklist []ir.SignalID
	for sig := range liveSignals {
		worklist = append(worklist, sig)
	}

	markCell := func(cellID ir.CellID) {
		if liveCells[cellID] {
			return
		}
		liveCells[cellID] = true
		cell := n.Module.Cells.Get(int(cellID))
		for _, sig := range cell.InputSignals() {
			if !liveSignals[sig] {
				liveSignals[sig] = true
				worklist = append(worklist, sig)
			}
		}
	}

	for len(worklist) > 0 {
		sig := worklist[len(worklist)-1]
		worklist = worklist[:len(worklist)-1]
		if cellID, ok := driverMap[sig]; ok {
			markCell(cellID)
		}
	}

	var deadIDs []ir.CellID
	n.Module.LiveCells(func(id ir.CellID, _ *ir.Cell) bool {
		if !liveCells[id] {
			deadIDs = append(deadIDs, id)
		}
		return true
	})
	for _, id := range deadIDs {
		n.RemoveCell(id)
		changed = true
	}
	return changed
}

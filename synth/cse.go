package synth

import (
	"sort"
	"strconv"
	"strings"

	"github.com/Stateford/aion-sub002/diag"
	"github.com/Stateford/aion-sub002/ir"
)

// CsePass merges cells with an identical kind and identical input signals,
// redirecting every consumer of the duplicate's output to the first
// occurrence's output and marking the duplicate dead (§4.H). Input order
// is normalized before keying for commutative kinds (AND/OR/XOR/ADD/MUL/EQ)
// so `a&b` and `b&a` are recognized as the same expression.
type CsePass struct{}

type cseKey struct {
	kind   ir.CellKind
	inputs string
}

func (CsePass) Run(n *Netlist, _ *diag.Sink) bool {
	changed := false
	seen := make(map[cseKey]ir.CellID)

	var liveIDs []ir.CellID
	n.Module.LiveCells(func(id ir.CellID, _ *ir.Cell) bool {
		liveIDs = append(liveIDs, id)
		return true
	})

	for _, cellID := range liveIDs {
		if n.IsDead(cellID) {
			continue
		}
		cell := n.Module.Cells.Get(int(cellID))
		if !cell.Kind.Tag.IsPure() {
			continue
		}

		key := makeCseKey(cell)
		existingID, ok := seen[key]
		if !ok {
			seen[key] = cellID
			continue
		}

		existingOut, okE := soleOutputSignal(n.Module.Cells.Get(int(existingID)))
		dupOut, okD := soleOutputSignal(cell)
		if !okE || !okD || existingOut == dupOut {
			continue
		}
		redirectSignal(n, dupOut, existingOut)
		n.RemoveCell(cellID)
		changed = true
	}
	return changed
}

func makeCseKey(cell ir.Cell) cseKey {
	inputs := cell.InputSignals()
	if cell.Kind.Tag.IsCommutative() {
		sort.Slice(inputs, func(i, j int) bool { return inputs[i] < inputs[j] })
	}
	parts := make([]string, len(inputs))
	for i, s := range inputs {
		parts[i] = strconv.Itoa(int(s))
	}
	return cseKey{kind: cell.Kind, inputs: strings.Join(parts, ",")}
}

// soleOutputSignal returns the signal a cell drives, when that output is a
// plain whole-signal connection (the only shape CSE knows how to redirect).
func soleOutputSignal(cell ir.Cell) (ir.SignalID, bool) {
	for _, conn := range cell.Connections {
		if conn.Direction != ir.DirOutput {
			continue
		}
		if conn.Signal.Tag == ir.RefSignal {
			return conn.Signal.Signal, true
		}
	}
	return 0, false
}

// redirectSignal rewrites every live cell's input connections that
// reference oldSig to reference newSig instead.
func redirectSignal(n *Netlist, oldSig, newSig ir.SignalID) {
	n.Module.LiveCells(func(id ir.CellID, _ *ir.Cell) bool {
		cell := n.Module.Cells.GetPtr(int(id))
		for i, conn := range cell.Connections {
			if conn.Direction == ir.DirOutput {
				continue
			}
			cell.Connections[i].Signal = substituteRef(conn.Signal, oldSig, newSig)
		}
		return true
	})
}

func substituteRef(ref ir.SignalRef, oldSig, newSig ir.SignalID) ir.SignalRef {
	switch ref.Tag {
	case ir.RefSignal:
		if ref.Signal == oldSig {
			ref.Signal = newSig
		}
		return ref
	case ir.RefSlice:
		if ref.Signal == oldSig {
			ref.Signal = newSig
		}
		return ref
	case ir.RefConcat:
		out := make([]ir.SignalRef, len(ref.Concat))
		for i, p := range ref.Concat {
			out[i] = substituteRef(p, oldSig, newSig)
		}
		ref.Concat = out
		return ref
	default:
		return ref
	}
}

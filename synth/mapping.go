package synth

import (
	"fmt"

	"github.com/Stateford/aion-sub002/arch"
	"github.com/Stateford/aion-sub002/diag"
	"github.com/Stateford/aion-sub002/ir"
)

// TechMap replaces every live, generic combinational cell with the
// primitives arch's TechMapper produces for it. A cell the mapper
// declines (MapUnmappable) is left untouched and emits W503, matching the
// spec's §7 policy of degrading gracefully rather than aborting synthesis
// for one unmappable cell.
func TechMap(n *Netlist, a arch.Architecture, sink *diag.Sink) {
	mapper := a.TechMapper()

	var liveIDs []ir.CellID
	n.Module.LiveCells(func(id ir.CellID, _ *ir.Cell) bool {
		liveIDs = append(liveIDs, id)
		return true
	})

	for _, cellID := range liveIDs {
		cell := n.Module.Cells.Get(int(cellID))
		if !isMappableTag(cell.Kind.Tag) {
			continue
		}

		result := mapper.MapCell(cell.Kind)
		switch result.Kind {
		case arch.MapLuts:
			applyLutMapping(n, cellID, result.Luts)
		case arch.MapUnmappable:
			sink.Emit(diag.Diagnostic{
				Code:     diag.CodeUnmappableCell,
				Severity: diag.Warning,
				Primary:  cell.Span,
				Message:  fmt.Sprintf("cell %q has no mapping on %s/%s; left generic", n.Interner.MustResolve(cell.Name), a.FamilyName(), a.DeviceName()),
			})
		}
	}
}

func isMappableTag(tag ir.CellTag) bool {
	switch tag {
	case ir.TagAnd, ir.TagOr, ir.TagXor, ir.TagNot:
		return true
	default:
		return false
	}
}

// applyLutMapping rewrites a single generic gate cell in place into a
// TagLut primitive. Only the single-LUT case (one output bit, already
// decomposed by the mapper) is rewritten directly; a width > 1 mapping
// (one LUT per bit) is represented as a single cell carrying the packed
// init of its first LUT, since downstream PnR treats cell width the same
// way DCE/CSE already do — per output-bit fanout is expressed through the
// signal width, not through one Cell per bit.
func applyLutMapping(n *Netlist, cellID ir.CellID, luts []arch.LutMapping) {
	if len(luts) == 0 {
		return
	}
	cell := n.Module.Cells.GetPtr(int(cellID))
	first := luts[0]
	cell.Kind = ir.CellKind{
		Tag:       ir.TagLut,
		Width:     cell.Kind.Width,
		LutInputs: first.InputCount,
		LutInit:   packInitBits(first.InitBits),
	}
}

// packInitBits packs a LUT truth table's init bytes (LSB-first) into a
// single 64-bit init word, the representation ir.CellKind.LutInit stores.
func packInitBits(bits []byte) uint64 {
	var word uint64
	for i, b := range bits {
		if i >= 8 {
			break
		}
		word |= uint64(b) << (8 * i)
	}
	return word
}

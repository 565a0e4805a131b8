package synth

import (
	"github.com/Stateford/aion-sub002/arch"
	"github.com/Stateford/aion-sub002/ir"
)

// CountResources tallies LUTs, FFs, BRAMs, DSPs, I/Os, and PLLs across
// every live cell in the netlist, counting both mapped primitives and
// generic (not-yet-mapped) cells by a rough per-bit-width estimate the
// same way the original's resource pass does for anything tech mapping
// left generic (§4.H). Every port also contributes one io, independent of
// any Iobuf cell (those are only synthesized later, during PnR's flatten
// step).
func CountResources(n *Netlist) arch.ResourceUsage {
	var usage arch.ResourceUsage

	n.Module.LiveCells(func(_ ir.CellID, c *ir.Cell) bool {
		w := c.Kind.Width
		if w == 0 {
			w = 1
		}
		switch c.Kind.Tag {
		case ir.TagLut:
			usage.Luts++
		case ir.TagDff, ir.TagLatch:
			usage.Ffs += w
		case ir.TagBram:
			usage.Bram++
		case ir.TagDsp:
			usage.Dsp++
		case ir.TagIobuf:
			usage.Io++
		case ir.TagPll:
			usage.Pll++
		case ir.TagAnd, ir.TagOr, ir.TagXor, ir.TagNot, ir.TagMux,
			ir.TagAdd, ir.TagSub, ir.TagShl, ir.TagShr, ir.TagEq, ir.TagLt, ir.TagCarry:
			usage.Luts += w
		case ir.TagMul:
			usage.Luts += w * w
		case ir.TagConst, ir.TagConcat, ir.TagSlice, ir.TagRepeat, ir.TagInstance, ir.TagBlackBox:
			// No physical resources of their own.
		}
		return true
	})

	for range n.Module.Ports {
		usage.Io++
	}

	return usage
}

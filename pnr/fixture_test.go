package pnr_test

import (
	"github.com/Stateford/aion-sub002/intern"
	"github.com/Stateford/aion-sub002/ir"
	"github.com/Stateford/aion-sub002/synth"
)

// buildRegisteredFixture constructs a tiny module: inputs a,b feed an AND
// gate whose output is registered by a DFF, whose Q drives output port y.
// Shaped to exercise Convert's IO-buffer synthesis, the combinational/
// sequential split in BuildTimingGraph, and placement/routing over a
// handful of movable cells.
func buildRegisteredFixture(in *intern.Interner) *synth.MappedDesign {
	types := ir.NewTypeDb()
	bitTy := types.Intern(ir.Bit)

	mod := &ir.Module{Name: in.Intern("top")}

	newPortSignal := func(name string) ir.SignalID {
		return ir.SignalID(mod.Signals.Alloc(ir.Signal{
			Name: in.Intern(name),
			Type: bitTy,
			Kind: ir.SignalPort,
		}))
	}
	newWire := func(name string) ir.SignalID {
		return ir.SignalID(mod.Signals.Alloc(ir.Signal{
			Name: in.Intern(name),
			Type: bitTy,
			Kind: ir.SignalWire,
		}))
	}

	a := newPortSignal("a")
	b := newPortSignal("b")
	y := newPortSignal("y")
	d := newWire("d")

	mod.Ports = []ir.Port{
		{Name: in.Intern("a"), Direction: ir.DirIn, Type: bitTy, Signal: a},
		{Name: in.Intern("b"), Direction: ir.DirIn, Type: bitTy, Signal: b},
		{Name: in.Intern("y"), Direction: ir.DirOut, Type: bitTy, Signal: y},
	}

	conn := func(port string, dir ir.PortDirection, sig ir.SignalID) ir.Connection {
		return ir.Connection{PortName: in.Intern(port), Direction: dir, Signal: ir.WholeSignal(sig)}
	}

	mod.Cells.Alloc(ir.Cell{
		Name: in.Intern("g_and"),
		Kind: ir.CellKind{Tag: ir.TagAnd, Width: 1},
		Connections: []ir.Connection{
			conn("A", ir.DirIn, a),
			conn("B", ir.DirIn, b),
			conn("Y", ir.DirOut, d),
		},
	})
	mod.Cells.Alloc(ir.Cell{
		Name: in.Intern("r_q"),
		Kind: ir.CellKind{Tag: ir.TagDff, Width: 1},
		Connections: []ir.Connection{
			conn("D", ir.DirIn, d),
			conn("Q", ir.DirOut, y),
		},
	})

	return &synth.MappedDesign{
		Modules: map[ir.ModuleID]*synth.MappedModule{0: {Module: mod}},
		Top:     0,
		Types:   types,
	}
}

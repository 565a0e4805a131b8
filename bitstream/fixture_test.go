package bitstream_test

import (
	"github.com/Stateford/aion-sub002/arch"
	_ "github.com/Stateford/aion-sub002/arch/cyclone"
	"github.com/Stateford/aion-sub002/diag"
	"github.com/Stateford/aion-sub002/intern"
	"github.com/Stateford/aion-sub002/ir"
	"github.com/Stateford/aion-sub002/pnr"
	"github.com/Stateford/aion-sub002/synth"
)

// buildPlacedFixture elaborates a tiny a,b -> AND -> DFF -> y module by
// hand (mirroring pnr's own fixture), synthesizes and places it against
// Cyclone IV, and returns the resulting PnrNetlist ready for bitstream
// assembly.
func buildPlacedFixture(in *intern.Interner) (*pnr.PnrNetlist, arch.Architecture) {
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
		Name: in.Intern("r_dff"),
		Kind: ir.CellKind{Tag: ir.TagDff, Width: 1},
		Connections: []ir.Connection{
			conn("D", ir.DirIn, d),
			conn("Q", ir.DirOut, y),
		},
	})

	design := &ir.Design{Types: types}
	modID := ir.ModuleID(design.Modules.Alloc(*mod))
	design.Top = modID

	a2, err := arch.Load("cyclone_iv", "EP4CE6E22C8N")
	if err != nil {
		panic(err)
	}
	sink := diag.NewSink(nil)

	mapped := synth.SynthesizeDesign(design, a2, in, sink)
	netlist, _, err := pnr.PlaceAndRoute(mapped, a2, nil, in, sink)
	if err != nil {
		panic(err)
	}
	return netlist, a2
}

package synth_test

import (
	"github.com/Stateford/aion-sub002/arch"
	_ "github.com/Stateford/aion-sub002/arch/cyclone"
	"github.com/Stateford/aion-sub002/diag"
	"github.com/Stateford/aion-sub002/intern"
	"github.com/Stateford/aion-sub002/ir"
	"github.com/Stateford/aion-sub002/synth"

	"github.com/golang/mock/gomock"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

// buildFixture constructs a three-input, one-output module shaped so that
// one DCE-removable cell and one CSE-mergeable duplicate pair both exist
// alongside a genuinely needed chain: a&b and b&a (duplicates) feed an OR
// that drives the output port, while a&c drives nothing.
func buildFixture(in *intern.Interner) (*ir.Module, *ir.TypeDb) {
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
	c := newPortSignal("c")
	s1 := newWire("s1") // a & b
	s2 := newWire("s2") // b & a, duplicate of s1
	s3 := newWire("s3") // s1 | s2, drives y
	dead := newWire("dead")

	mod.Ports = []ir.Port{
		{Name: in.Intern("a"), Direction: ir.DirIn, Type: bitTy, Signal: a},
		{Name: in.Intern("b"), Direction: ir.DirIn, Type: bitTy, Signal: b},
		{Name: in.Intern("c"), Direction: ir.DirIn, Type: bitTy, Signal: c},
		{Name: in.Intern("y"), Direction: ir.DirOut, Type: bitTy, Signal: s3},
	}

	conn := func(port string, dir ir.PortDirection, sig ir.SignalID) ir.Connection {
		return ir.Connection{PortName: in.Intern(port), Direction: dir, Signal: ir.WholeSignal(sig)}
	}

	mod.Cells.Alloc(ir.Cell{
		Name: in.Intern("g0"),
		Kind: ir.CellKind{Tag: ir.TagAnd, Width: 1},
		Connections: []ir.Connection{
			conn("a", ir.DirIn, a), conn("b", ir.DirIn, b), conn("y", ir.DirOut, s1),
		},
	})
	mod.Cells.Alloc(ir.Cell{
		Name: in.Intern("g1"),
		Kind: ir.CellKind{Tag: ir.TagAnd, Width: 1},
		Connections: []ir.Connection{
			conn("a", ir.DirIn, b), conn("b", ir.DirIn, a), conn("y", ir.DirOut, s2),
		},
	})
	mod.Cells.Alloc(ir.Cell{
		Name: in.Intern("g2"),
		Kind: ir.CellKind{Tag: ir.TagOr, Width: 1},
		Connections: []ir.Connection{
			conn("a", ir.DirIn, s1), conn("b", ir.DirIn, s2), conn("y", ir.DirOut, s3),
		},
	})
	mod.Cells.Alloc(ir.Cell{
		Name: in.Intern("dead0"),
		Kind: ir.CellKind{Tag: ir.TagAnd, Width: 1},
		Connections: []ir.Connection{
			conn("a", ir.DirIn, a), conn("b", ir.DirIn, c), conn("y", ir.DirOut, dead),
		},
	})

	return mod, types
}

var _ = Describe("DCE and CSE", func() {
	var (
		in   *intern.Interner
		mod  *ir.Module
		tys  *ir.TypeDb
		net  *synth.Netlist
		sink *diag.Sink
	)

	BeforeEach(func() {
		in = intern.New()
		mod, tys = buildFixture(in)
		net = synth.NewNetlist(mod, tys, in)
		sink = diag.NewSink(nil)
	})

	It("starts with all four cells live", func() {
		Expect(net.LiveCellCount()).To(Equal(4))
	})

	It("removes the cell whose output reaches no port", func() {
		changed := synth.DcePass{}.Run(net, sink)
		Expect(changed).To(BeTrue())
		Expect(net.LiveCellCount()).To(Equal(3))
	})

	It("merges the duplicate commutative AND gates", func() {
		synth.DcePass{}.Run(net, sink)
		changed := synth.CsePass{}.Run(net, sink)
		Expect(changed).To(BeTrue())
		Expect(net.LiveCellCount()).To(Equal(2))
	})

	It("reaches a stable fixpoint that a second pass run does not change", func() {
		n := synth.RunToFixpoint(synth.DefaultPasses(), net, sink)
		Expect(n).To(BeNumerically(">", 0))
		live := net.LiveCellCount()
		Expect(live).To(Equal(2))

		again := synth.RunToFixpoint(synth.DefaultPasses(), net, sink)
		Expect(again).To(Equal(1))
		Expect(net.LiveCellCount()).To(Equal(live))
	})
})

var _ = Describe("TechMap", func() {
	var (
		in   *intern.Interner
		mod  *ir.Module
		tys  *ir.TypeDb
		net  *synth.Netlist
		sink *diag.Sink
		ctrl *gomock.Controller
	)

	BeforeEach(func() {
		in = intern.New()
		mod, tys = buildFixture(in)
		net = synth.NewNetlist(mod, tys, in)
		sink = diag.NewSink(nil)
		ctrl = gomock.NewController(GinkgoT())
	})

	It("rewrites mappable gates to TagLut and leaves unmappable ones generic with a W503", func() {
		synth.RunToFixpoint(synth.DefaultPasses(), net, sink)

		mapper := NewMockTechMapper(ctrl)
		a := NewMockArchitecture(ctrl)
		a.EXPECT().TechMapper().Return(mapper).AnyTimes()
		a.EXPECT().FamilyName().Return("test-family").AnyTimes()
		a.EXPECT().DeviceName().Return("test-device").AnyTimes()

		mapper.EXPECT().MapCell(gomock.Any()).DoAndReturn(func(k ir.CellKind) arch.MapResult {
			switch k.Tag {
			case ir.TagAnd:
				return arch.MapResult{Kind: arch.MapLuts, Luts: []arch.LutMapping{{InputCount: 2, InitBits: []byte{0x08}}}}
			default:
				return arch.MapResult{Kind: arch.MapUnmappable}
			}
		}).AnyTimes()

		synth.TechMap(net, a, sink)

		var sawLut, sawGenericOr bool
		mod.LiveCells(func(_ ir.CellID, c *ir.Cell) bool {
			if c.Kind.Tag == ir.TagLut {
				sawLut = true
			}
			if c.Kind.Tag == ir.TagOr {
				sawGenericOr = true
			}
			return true
		})
		Expect(sawLut).To(BeTrue())
		Expect(sawGenericOr).To(BeTrue())

		diags := sink.All()
		Expect(diags).To(ContainElement(WithTransform(func(d diag.Diagnostic) string { return d.Code }, Equal(diag.CodeUnmappableCell))))
	})
})

var _ = Describe("Synthesize end to end", func() {
	It("optimizes, maps, and counts resources against a real Cyclone IV architecture", func() {
		in := intern.New()
		mod, tys := buildFixture(in)
		sink := diag.NewSink(nil)

		a, err := arch.Load("cyclone_iv", "EP4CE22F17C6N")
		Expect(err).NotTo(HaveOccurred())

		usage := synth.Synthesize(mod, tys, in, a, sink)

		Expect(usage.Luts).To(Equal(uint32(2)))
		Expect(usage.Ffs).To(BeZero())

		live := 0
		mod.LiveCells(func(ir.CellID, *ir.Cell) bool { live++; return true })
		Expect(live).To(Equal(2))
	})
})

package pnr_test

import (
	"github.com/Stateford/aion-sub002/arch"
	_ "github.com/Stateford/aion-sub002/arch/cyclone"
	"github.com/Stateford/aion-sub002/diag"
	"github.com/Stateford/aion-sub002/intern"
	"github.com/Stateford/aion-sub002/pnr"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("PlaceAndRoute", func() {
	var (
		in   *intern.Interner
		a    arch.Architecture
		sink *diag.Sink
	)

	BeforeEach(func() {
		in = intern.New()
		var err error
		a, err = arch.Load("cyclone_iv", "EP4CE6E22C8N")
		Expect(err).NotTo(HaveOccurred())
		sink = diag.NewSink(nil)
	})

	It("flattens, places, routes, and builds a timing graph without error", func() {
		mapped := buildRegisteredFixture(in)

		netlist, graph, err := pnr.PlaceAndRoute(mapped, a, nil, in, sink)
		Expect(err).NotTo(HaveOccurred())
		Expect(netlist).NotTo(BeNil())
		Expect(graph).NotTo(BeNil())

		Expect(netlist.CheckInvariants()).To(Succeed())
		Expect(netlist.AllPlaced()).To(BeTrue())
		Expect(graph.IsAcyclic()).To(BeTrue())
	})

	It("creates one fixed IO buffer per port and leaves them out of placement", func() {
		mapped := buildRegisteredFixture(in)
		netlist, _, err := pnr.PlaceAndRoute(mapped, a, nil, in, sink)
		Expect(err).NotTo(HaveOccurred())

		fixedCount := 0
		for i := range netlist.Cells {
			if netlist.Cells[i].IsFixed {
				fixedCount++
				Expect(netlist.Cells[i].IsPlaced()).To(BeFalse())
			}
		}
		Expect(fixedCount).To(Equal(3)) // a, b, y
	})

	It("gives every net exactly one driver pin with output or inout direction", func() {
		mapped := buildRegisteredFixture(in)
		netlist, _, err := pnr.PlaceAndRoute(mapped, a, nil, in, sink)
		Expect(err).NotTo(HaveOccurred())

		for _, net := range netlist.Nets {
			driver := netlist.Pin(net.Driver)
			Expect(driver.Direction).To(Or(Equal(pnr.PinOutput), Equal(pnr.PinInOut)))
		}
	})

	It("falls back to the Phase-2 stub grid and stub routing when the architecture has no concrete device model", func() {
		mapped := buildRegisteredFixture(in)
		stub := &stubArchitecture{Architecture: a}
		netlist, _, err := pnr.PlaceAndRoute(mapped, stub, nil, in, sink)
		Expect(err).NotTo(HaveOccurred())

		for i := range netlist.Nets {
			Expect(netlist.Nets[i].Routing.IsStub()).To(BeTrue())
		}
	})
})

// stubArchitecture wraps a real Architecture but reports an empty routing
// graph, forcing the Phase-2 stub routing path regardless of the wrapped
// family's own Phase-3 support.
type stubArchitecture struct {
	arch.Architecture
}

func (stubArchitecture) RoutingGraphSize() int { return 0 }

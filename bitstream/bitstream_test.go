package bitstream_test

import (
	"github.com/Stateford/aion-sub002/bitstream"
	"github.com/Stateford/aion-sub002/diag"
	"github.com/Stateford/aion-sub002/intern"
	"github.com/Stateford/aion-sub002/pnr"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

// fakeConfigDB is a deterministic stand-in for a real Project X-Ray /
// Mistral config-bit database: it derives a handful of bits from each
// call's arguments so assembly has something concrete to pack, without
// claiming vendor accuracy.
type fakeConfigDB struct{}

func (fakeConfigDB) LutConfigBits(site pnr.SiteID, init uint64, inputCount uint32) []bitstream.ConfigBit {
	return []bitstream.ConfigBit{
		{Frame: bitstream.FrameAddress(site), BitOffset: 0, Value: init&1 == 1},
		{Frame: bitstream.FrameAddress(site), BitOffset: 1, Value: inputCount > 0},
	}
}

func (fakeConfigDB) FfConfigBits(site pnr.SiteID) []bitstream.ConfigBit {
	return []bitstream.ConfigBit{{Frame: bitstream.FrameAddress(site), BitOffset: 2, Value: true}}
}

func (fakeConfigDB) IobufConfigBits(site pnr.SiteID, direction pnr.IobufDirection, standard string) []bitstream.ConfigBit {
	return []bitstream.ConfigBit{{Frame: bitstream.FrameAddress(site), BitOffset: 3, Value: len(standard) > 0}}
}

func (fakeConfigDB) PipConfigBits(pip pnr.PipID) []bitstream.ConfigBit {
	return []bitstream.ConfigBit{{Frame: bitstream.FrameAddress(pip), BitOffset: 4, Value: true}}
}

func (fakeConfigDB) BramConfigBits(site pnr.SiteID, hardConfig string) []bitstream.ConfigBit {
	return []bitstream.ConfigBit{{Frame: bitstream.FrameAddress(site), BitOffset: 5, Value: true}}
}

func (fakeConfigDB) DspConfigBits(site pnr.SiteID, hardConfig string) []bitstream.ConfigBit {
	return []bitstream.ConfigBit{{Frame: bitstream.FrameAddress(site), BitOffset: 6, Value: true}}
}

func (fakeConfigDB) FrameWordCount() uint32  { return 4 }
func (fakeConfigDB) TotalFrameCount() uint32 { return 256 }

var _ bitstream.ConfigBitDatabase = fakeConfigDB{}

var _ = Describe("XilinxBitstreamGenerator", func() {
	It("generates byte-identical, checksum-identical output for identical inputs", func() {
		in := intern.New()
		netlist, a := buildPlacedFixture(in)
		sink := diag.NewSink(nil)
		gen := &bitstream.XilinxBitstreamGenerator{
			DesignName: "top",
			Date:       "2026/01/01",
			Time:       "00:00:00",
			DB:         fakeConfigDB{},
		}

		bs1, err := gen.Generate(netlist, a, bitstream.FormatBit, sink)
		Expect(err).NotTo(HaveOccurred())

		bs2, err := gen.Generate(netlist, a, bitstream.FormatBit, sink)
		Expect(err).NotTo(HaveOccurred())

		Expect(bs1.Data).To(Equal(bs2.Data))
		Expect(bs1.Checksum).To(Equal(bs2.Checksum))
		Expect(bs1.Format).To(Equal(bitstream.FormatBit))
	})

	It("rejects formats it does not support", func() {
		in := intern.New()
		netlist, a := buildPlacedFixture(in)
		sink := diag.NewSink(nil)
		gen := &bitstream.XilinxBitstreamGenerator{DB: fakeConfigDB{}}

		_, err := gen.Generate(netlist, a, bitstream.FormatSof, sink)
		Expect(err).To(HaveOccurred())
	})

	It("warns but does not fail when a net is stub-routed", func() {
		in := intern.New()
		netlist, a := buildPlacedFixture(in)
		sink := diag.NewSink(nil)
		gen := &bitstream.XilinxBitstreamGenerator{DB: fakeConfigDB{}}

		_, err := gen.Generate(netlist, a, bitstream.FormatBit, sink)
		Expect(err).NotTo(HaveOccurred())

		found := false
		for _, d := range sink.All() {
			if d.Code == diag.CodeStubbedRoute {
				found = true
			}
		}
		Expect(found).To(BeTrue())
	})
})

var _ = Describe("IntelBitstreamGenerator", func() {
	It("produces deterministic output across Sof, Pof, and Rbf", func() {
		in := intern.New()
		netlist, a := buildPlacedFixture(in)
		sink := diag.NewSink(nil)
		gen := &bitstream.IntelBitstreamGenerator{DB: fakeConfigDB{}}

		for _, format := range []bitstream.BitstreamFormat{bitstream.FormatSof, bitstream.FormatPof, bitstream.FormatRbf} {
			bs1, err := gen.Generate(netlist, a, format, sink)
			Expect(err).NotTo(HaveOccurred())
			bs2, err := gen.Generate(netlist, a, format, sink)
			Expect(err).NotTo(HaveOccurred())
			Expect(bs1.Data).To(Equal(bs2.Data))
			Expect(bs1.Checksum).To(Equal(bs2.Checksum))
		}
	})

	It("rejects Bit, which is Xilinx-only", func() {
		in := intern.New()
		netlist, a := buildPlacedFixture(in)
		sink := diag.NewSink(nil)
		gen := &bitstream.IntelBitstreamGenerator{DB: fakeConfigDB{}}

		_, err := gen.Generate(netlist, a, bitstream.FormatBit, sink)
		Expect(err).To(HaveOccurred())
	})
})

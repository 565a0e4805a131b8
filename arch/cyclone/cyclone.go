// Package cyclone implements the arch.Architecture and arch.TechMapper
// contracts for the Intel Cyclone IV E and Cyclone V families, grounded on
// the device tables and mapping rules the original toolchain table-drives
// per part number (§4.G).
package cyclone

import (
	"strings"

	"github.com/Stateford/aion-sub002/arch"
	"github.com/Stateford/aion-sub002/ir"
)

func init() {
	arch.Register(loadIv, "cyclone_iv", "cycloneiv", "cyclone-iv", "cyclone4", "cyclone_4")
	arch.Register(loadV, "cyclone_v", "cyclonev", "cyclone-v")
}

type ivDevice struct {
	name        string
	les         uint32
	m9k         uint32
	multipliers uint32
	io          uint32
	pll         uint32
}

// ivDevices is the known Cyclone IV E part table; ivFallback indexes the
// smallest part, used when an unrecognized device name is requested.
var ivDevices = []ivDevice{
	{name: "EP4CE6E22C8N", les: 6272, m9k: 30, multipliers: 15, io: 91, pll: 2},
	{name: "EP4CE10F17C8N", les: 10320, m9k: 46, multipliers: 23, io: 136, pll: 2},
	{name: "EP4CE22F17C6N", les: 22320, m9k: 66, multipliers: 66, io: 154, pll: 4},
	{name: "EP4CE55F23C8N", les: 55856, m9k: 260, multipliers: 154, io: 325, pll: 4},
	{name: "EP4CE115F29C7N", les: 114480, m9k: 432, multipliers: 266, io: 528, pll: 4},
}

const ivFallback = 0

// CycloneIv models the Intel Cyclone IV E family: each logic element is a
// single 4-input LUT paired with one flip-flop, so total LUTs and total
// FFs both equal the LE count.
type CycloneIv struct {
	arch.Phase3Stub
	deviceIndex int
}

var ivDelays = arch.CellDelayTable{Lut: 380, Dff: 200, Carry: 120, Default: 300, NsPerUnit: 60}

func (c *CycloneIv) CellDelay(cellType string) int64 { return ivDelays.CellDelay(cellType) }
func (c *CycloneIv) NetDelayPerUnit() int64          { return ivDelays.NetDelayPerUnit() }

func loadIv(device string) (arch.Architecture, bool) {
	for i, d := range ivDevices {
		if strings.EqualFold(d.name, device) {
			return &CycloneIv{deviceIndex: i}, true
		}
	}
	return &CycloneIv{deviceIndex: ivFallback}, false
}

func (c *CycloneIv) dev() ivDevice { return ivDevices[c.deviceIndex] }

func (c *CycloneIv) FamilyName() string    { return "cyclone_iv" }
func (c *CycloneIv) DeviceName() string    { return c.dev().name }
func (c *CycloneIv) TotalLUTs() uint32     { return c.dev().les }
func (c *CycloneIv) TotalFFs() uint32      { return c.dev().les }
func (c *CycloneIv) TotalBRAM() uint32     { return c.dev().m9k }
func (c *CycloneIv) TotalDSP() uint32      { return c.dev().multipliers }
func (c *CycloneIv) TotalIO() uint32       { return c.dev().io }
func (c *CycloneIv) TotalPLL() uint32      { return c.dev().pll }
func (c *CycloneIv) LutInputCount() uint32 { return 4 }

func (c *CycloneIv) ResourceSummary() arch.ResourceUsage {
	d := c.dev()
	return arch.ResourceUsage{Luts: d.les, Ffs: d.les, Bram: d.m9k, Dsp: d.multipliers, Io: d.io, Pll: d.pll}
}

func (c *CycloneIv) TechMapper() arch.TechMapper { return cycloneIvMapper{} }

// cycloneIvMapper maps cells onto 4-input LUTs; M9K blocks hold 9,216 bits
// at up to 36 bits wide, and the embedded multipliers are 18x18.
type cycloneIvMapper struct{}

func (cycloneIvMapper) MapCell(k ir.CellKind) arch.MapResult {
	return mapSimpleGate(k, 4)
}

func (cycloneIvMapper) MapToLuts(k ir.CellKind) []arch.LutMapping {
	r := mapSimpleGate(k, 4)
	return r.Luts
}

func (cycloneIvMapper) InferBram(m arch.MemoryCell) bool {
	return m.Depth <= 9216 && m.Width <= 36
}

func (cycloneIvMapper) InferDsp(p arch.ArithmeticPattern) bool {
	return p.Kind == arch.PatternMultiply && p.WidthA <= 18 && p.WidthB <= 18
}

func (cycloneIvMapper) LutInputCount() uint32 { return 4 }
func (cycloneIvMapper) MaxBramDepth() uint32  { return 9216 }
func (cycloneIvMapper) MaxBramWidth() uint32  { return 36 }
func (cycloneIvMapper) MaxDspWidthA() uint32  { return 18 }
func (cycloneIvMapper) MaxDspWidthB() uint32  { return 18 }

type vDevice struct {
	name string
	alms uint32
	ffs  uint32
	m10k uint32
	dsp  uint32
	io   uint32
	pll  uint32
}

var vDevices = []vDevice{
	{name: "5CSEMA5F31C6", alms: 32070, ffs: 64140, m10k: 397, dsp: 87, io: 369, pll: 6},
	{name: "5CSEBA6U23I7", alms: 41910, ffs: 83820, m10k: 553, dsp: 112, io: 240, pll: 6},
	{name: "5CEBA4F23C7", alms: 18480, ffs: 36960, m10k: 308, dsp: 66, io: 224, pll: 4},
}

// vFallback is the smallest Cyclone V part, 5CEBA4F23C7.
const vFallback = 2

// CycloneV models the Intel Cyclone V family: fracturable 8-input ALMs
// decomposable into two 6-input LUTs, reported here as 6-input LUT
// capacity per the family's tech-mapping convention.
type CycloneV struct {
	arch.Phase3Stub
	deviceIndex int
}

var vDelays = arch.CellDelayTable{Lut: 310, Dff: 170, Carry: 95, Default: 250, NsPerUnit: 45}

func (c *CycloneV) CellDelay(cellType string) int64 { return vDelays.CellDelay(cellType) }
func (c *CycloneV) NetDelayPerUnit() int64          { return vDelays.NetDelayPerUnit() }

func loadV(device string) (arch.Architecture, bool) {
	for i, d := range vDevices {
		if strings.EqualFold(d.name, device) {
			return &CycloneV{deviceIndex: i}, true
		}
	}
	return &CycloneV{deviceIndex: vFallback}, false
}

func (c *CycloneV) dev() vDevice { return vDevices[c.deviceIndex] }

func (c *CycloneV) FamilyName() string    { return "cyclone_v" }
func (c *CycloneV) DeviceName() string    { return c.dev().name }
func (c *CycloneV) TotalLUTs() uint32     { return c.dev().alms }
func (c *CycloneV) TotalFFs() uint32      { return c.dev().ffs }
func (c *CycloneV) TotalBRAM() uint32     { return c.dev().m10k }
func (c *CycloneV) TotalDSP() uint32      { return c.dev().dsp }
func (c *CycloneV) TotalIO() uint32       { return c.dev().io }
func (c *CycloneV) TotalPLL() uint32      { return c.dev().pll }
func (c *CycloneV) LutInputCount() uint32 { return 6 }

func (c *CycloneV) ResourceSummary() arch.ResourceUsage {
	d := c.dev()
	return arch.ResourceUsage{Luts: d.alms, Ffs: d.ffs, Bram: d.m10k, Dsp: d.dsp, Io: d.io, Pll: d.pll}
}

func (c *CycloneV) TechMapper() arch.TechMapper { return cycloneVMapper{} }

// cycloneVMapper maps cells onto 6-input LUTs; M10K blocks hold 10,240
// bits at up to 40 bits wide (the fracturable ALM datapath), and the
// embedded multipliers are 18x18.
type cycloneVMapper struct{}

func (cycloneVMapper) MapCell(k ir.CellKind) arch.MapResult {
	return mapSimpleGate(k, 6)
}

func (cycloneVMapper) MapToLuts(k ir.CellKind) []arch.LutMapping {
	r := mapSimpleGate(k, 6)
	return r.Luts
}

func (cycloneVMapper) InferBram(m arch.MemoryCell) bool {
	return m.Depth <= 10240 && m.Width <= 40
}

func (cycloneVMapper) InferDsp(p arch.ArithmeticPattern) bool {
	return p.Kind == arch.PatternMultiply && p.WidthA <= 18 && p.WidthB <= 18
}

func (cycloneVMapper) LutInputCount() uint32 { return 6 }
func (cycloneVMapper) MaxBramDepth() uint32  { return 10240 }
func (cycloneVMapper) MaxBramWidth() uint32  { return 40 }
func (cycloneVMapper) MaxDspWidthA() uint32  { return 18 }
func (cycloneVMapper) MaxDspWidthB() uint32  { return 18 }

// mapSimpleGate decomposes a bitwise gate into one lutInputs-input LUT per
// output bit, using the same per-gate truth tables the original hardcodes
// for AND2/OR2/XOR2/NOT1 regardless of target LUT size (a real mapper
// would pack multiple gate inputs per LUT; this mirrors the teacher's
// Phase-2 scope of "one gate per LUT, correctness over density").
func mapSimpleGate(k ir.CellKind, lutInputs uint32) arch.MapResult {
	var truth []byte
	switch k.Tag {
	case ir.TagAnd:
		truth = []byte{0x08}
	case ir.TagOr:
		truth = []byte{0x0E}
	case ir.TagXor:
		truth = []byte{0x06}
	case ir.TagNot:
		truth = []byte{0x01}
	default:
		return arch.MapResult{Kind: arch.MapUnmappable}
	}

	width := k.Width
	if width == 0 {
		width = 1
	}
	luts := make([]arch.LutMapping, width)
	for i := range luts {
		luts[i] = arch.LutMapping{InputCount: lutInputs, InitBits: truth}
	}
	return arch.MapResult{Kind: arch.MapLuts, Luts: luts}
}

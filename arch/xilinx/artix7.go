// Package xilinx implements the arch.Architecture and arch.TechMapper
// contracts for the Xilinx Artix-7 family (§4.G).
package xilinx

import (
	"strings"

	"github.com/Stateford/aion-sub002/arch"
	"github.com/Stateford/aion-sub002/ir"
)

func init() {
	arch.Register(loadArtix7, "artix7", "artix-7", "artix_7")
}

type artix7Device struct {
	name    string
	luts    uint32
	ffs     uint32
	bram36  uint32
	dsp48e1 uint32
	io      uint32
	mmcm    uint32
}

var artix7Devices = []artix7Device{
	{name: "xc7a35ticpg236-1L", luts: 20800, ffs: 41600, bram36: 50, dsp48e1: 90, io: 106, mmcm: 5},
	{name: "xc7a100tcsg324-1", luts: 63400, ffs: 126800, bram36: 135, dsp48e1: 240, io: 210, mmcm: 6},
	{name: "xc7a200tffg1156-1", luts: 134600, ffs: 269200, bram36: 365, dsp48e1: 740, io: 500, mmcm: 10},
}

// artix7Fallback is the smallest Artix-7 part, xc7a35ticpg236-1L.
const artix7Fallback = 0

// Artix7 models the Xilinx Artix-7 family: SLICEL/SLICEM slices with four
// 6-input LUTs and eight flip-flops each, 36Kb Block RAMs, and DSP48E1
// slices.
type Artix7 struct {
	arch.Phase3Stub
	deviceIndex int
}

var artix7Delays = arch.CellDelayTable{Lut: 210, Dff: 130, Carry: 60, Default: 180, NsPerUnit: 35}

func (a *Artix7) CellDelay(cellType string) int64 { return artix7Delays.CellDelay(cellType) }
func (a *Artix7) NetDelayPerUnit() int64          { return artix7Delays.NetDelayPerUnit() }

// LoadArtix7 constructs an Artix7 architecture for device, exported for
// direct use outside the arch.Load family registry.
func LoadArtix7(device string) (*Artix7, bool) {
	for i, d := range artix7Devices {
		if strings.EqualFold(d.name, device) {
			return &Artix7{deviceIndex: i}, true
		}
	}
	return &Artix7{deviceIndex: artix7Fallback}, false
}

func loadArtix7(device string) (arch.Architecture, bool) {
	a, exact := LoadArtix7(device)
	return a, exact
}

func (a *Artix7) dev() artix7Device { return artix7Devices[a.deviceIndex] }

func (a *Artix7) FamilyName() string    { return "artix7" }
func (a *Artix7) DeviceName() string    { return a.dev().name }
func (a *Artix7) TotalLUTs() uint32     { return a.dev().luts }
func (a *Artix7) TotalFFs() uint32      { return a.dev().ffs }
func (a *Artix7) TotalBRAM() uint32     { return a.dev().bram36 }
func (a *Artix7) TotalDSP() uint32      { return a.dev().dsp48e1 }
func (a *Artix7) TotalIO() uint32       { return a.dev().io }
func (a *Artix7) TotalPLL() uint32      { return a.dev().mmcm }
func (a *Artix7) LutInputCount() uint32 { return 6 }

func (a *Artix7) ResourceSummary() arch.ResourceUsage {
	d := a.dev()
	return arch.ResourceUsage{Luts: d.luts, Ffs: d.ffs, Bram: d.bram36, Dsp: d.dsp48e1, Io: d.io, Pll: d.mmcm}
}

func (a *Artix7) TechMapper() arch.TechMapper { return artix7Mapper{} }

// artix7Mapper maps cells onto 6-input LUTs; BRAM36 tiles hold 36,864 bits
// at up to 72 bits wide (36Kb configured as a single wide port), and
// DSP48E1 slices support 25x18 signed multiplication.
type artix7Mapper struct{}

func (artix7Mapper) MapCell(k ir.CellKind) arch.MapResult {
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
		luts[i] = arch.LutMapping{InputCount: 6, InitBits: truth}
	}
	return arch.MapResult{Kind: arch.MapLuts, Luts: luts}
}

func (m artix7Mapper) MapToLuts(k ir.CellKind) []arch.LutMapping {
	return m.MapCell(k).Luts
}

func (artix7Mapper) InferBram(m arch.MemoryCell) bool {
	return m.Depth <= 36864 && m.Width <= 72
}

func (artix7Mapper) InferDsp(p arch.ArithmeticPattern) bool {
	return p.Kind == arch.PatternMultiply && p.WidthA <= 25 && p.WidthB <= 18
}

func (artix7Mapper) LutInputCount() uint32 { return 6 }
func (artix7Mapper) MaxBramDepth() uint32  { return 36864 }
func (artix7Mapper) MaxBramWidth() uint32  { return 72 }
func (artix7Mapper) MaxDspWidthA() uint32  { return 25 }
func (artix7Mapper) MaxDspWidthB() uint32  { return 18 }

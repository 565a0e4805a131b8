// Package arch models FPGA device architectures: per-family resource
// counts and the technology-mapping contract synthesis maps generic IR
// cells against. Concrete families register themselves into this
// package's family registry so load_architecture-style lookups stay
// table-driven instead of a hardcoded switch (§4.G).
package arch

import (
	"fmt"
	"strings"

	"github.com/Stateford/aion-sub002/ir"
)

// ResourceUsage summarizes the major resource categories an architecture
// reports and a design consumes (§4.G).
type ResourceUsage struct {
	Luts uint32
	Ffs  uint32
	Bram uint32
	Dsp  uint32
	Io   uint32
	Pll  uint32
}

// TotalLogic returns the combined LUT and flip-flop count.
func (r ResourceUsage) TotalLogic() uint32 { return r.Luts + r.Ffs }

// Architecture abstracts over a device family/part: resource counts and
// the technology mapper used to lower generic cells onto it.
type Architecture interface {
	FamilyName() string
	DeviceName() string
	TotalLUTs() uint32
	TotalFFs() uint32
	TotalBRAM() uint32
	TotalDSP() uint32
	TotalIO() uint32
	TotalPLL() uint32
	LutInputCount() uint32
	ResourceSummary() ResourceUsage
	TechMapper() TechMapper

	// Phase-3 methods (§3): grid geometry, routing graph, per-cell
	// delays. Default to empty/zero stubs; a family may override.
	CellDelay(cellType string) int64
	NetDelayPerUnit() int64
	GridGeometry() (cols, rows int)
	RoutingGraphSize() int
}

// LutMapping is one LUT the tech mapper lowered a cell (or part of a
// cell) onto: its fan-in count and truth-table init bits.
type LutMapping struct {
	InputCount uint32
	InitBits   []byte
}

// MemoryCell is the shape tech mapping inspects when deciding whether an
// IR pattern should infer a block-RAM primitive.
type MemoryCell struct {
	Depth uint32
	Width uint32
}

// ArithmeticPatternKind distinguishes the shapes the DSP-inference heuristic
// recognizes.
type ArithmeticPatternKind int

const (
	PatternMultiply ArithmeticPatternKind = iota
	PatternMultiplyAccumulate
)

// ArithmeticPattern is the shape tech mapping inspects when deciding
// whether an IR pattern should infer a DSP primitive.
type ArithmeticPattern struct {
	Kind    ArithmeticPatternKind
	WidthA  uint32
	WidthB  uint32
}

// MapResultKind discriminates MapResult's payload.
type MapResultKind int

const (
	MapLuts MapResultKind = iota
	MapMemory
	MapDsp
	MapUnmappable
)

// MapResult is the outcome of mapping one cell: either a LUT decomposition,
// a hard-block assignment, or Unmappable (the mapper declined, and
// synthesis emits W503 and leaves the cell generic).
type MapResult struct {
	Kind MapResultKind
	Luts []LutMapping
}

// TechMapper lowers generic IR cells onto one device family's primitives
// (§4.G, §4.H).
type TechMapper interface {
	MapCell(k ir.CellKind) MapResult
	InferBram(m MemoryCell) bool
	InferDsp(p ArithmeticPattern) bool
	MapToLuts(k ir.CellKind) []LutMapping
	LutInputCount() uint32
	MaxBramDepth() uint32
	MaxBramWidth() uint32
	MaxDspWidthA() uint32
	MaxDspWidthB() uint32
}

// Loader constructs an Architecture for a device name within one family,
// reporting whether the device name was an exact match (false means the
// loader fell back to the family's smallest known part, §4.G).
type Loader func(device string) (arch Architecture, exact bool)

var families = map[string]Loader{}

// Register associates one or more family-name aliases with a Loader. A
// family's own package init() registers itself here so that load_architecture
// style lookups never need to import every concrete family directly.
func Register(loader Loader, aliases ...string) {
	for _, a := range aliases {
		families[strings.ToLower(a)] = loader
	}
}

// Load resolves family (case-insensitively, tolerating the hyphen/
// underscore/no-separator spelling variants every alias list in this
// package registers) and constructs an Architecture for device. An
// unrecognized family name is the only error case; an unrecognized device
// name within a known family falls back to that family's smallest part
// (§4.G).
func Load(family, device string) (Architecture, error) {
	loader, ok := families[strings.ToLower(family)]
	if !ok {
		return nil, fmt.Errorf("arch: unknown FPGA family %q", family)
	}
	a, _ := loader(device)
	return a, nil
}

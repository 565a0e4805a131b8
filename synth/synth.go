package synth

import (
	"github.com/Stateford/aion-sub002/arch"
	"github.com/Stateford/aion-sub002/diag"
	"github.com/Stateford/aion-sub002/intern"
	"github.com/Stateford/aion-sub002/ir"
)

// MappedModule is one module's synthesis output: the module itself
// (mutated in place to a gate-level, technology-mapped netlist with dead
// cells flagged rather than removed) plus its resource tally.
type MappedModule struct {
	Module    *ir.Module
	Resources arch.ResourceUsage
}

// MappedDesign is the synthesized form of an entire ir.Design, keyed by
// the same ModuleIDs the elaborated design used, so PnR's conversion step
// can cross-reference instance cells' ModuleRef fields directly.
type MappedDesign struct {
	Modules map[ir.ModuleID]*MappedModule
	Top     ir.ModuleID
	Types   *ir.TypeDb
}

// DefaultPasses returns the pass sequence Synthesize runs to a fixpoint:
// DCE first (shrink before paying CSE's cost), then CSE, repeating the
// whole pair until neither changes anything (§4.H).
func DefaultPasses() []OptPass {
	return []OptPass{DcePass{}, CsePass{}}
}

// Synthesize lowers and optimizes a single module, then technology-maps it
// onto arch. It mutates mod in place and returns the resulting resource
// tally.
func Synthesize(mod *ir.Module, types *ir.TypeDb, in *intern.Interner, a arch.Architecture, sink *diag.Sink) arch.ResourceUsage {
	n := NewNetlist(mod, types, in)
	RunToFixpoint(DefaultPasses(), n, sink)
	TechMap(n, a, sink)
	return CountResources(n)
}

// SynthesizeDesign runs Synthesize over every module in design, building a
// MappedDesign. Each module is synthesized independently — there is no
// cross-module optimization in this pipeline (instances remain TagInstance
// cells referencing the already-synthesized child by ModuleID).
func SynthesizeDesign(design *ir.Design, a arch.Architecture, in *intern.Interner, sink *diag.Sink) *MappedDesign {
	out := &MappedDesign{
		Modules: make(map[ir.ModuleID]*MappedModule, design.Modules.Len()),
		Top:     design.Top,
		Types:   design.Types,
	}
	design.Modules.All(func(i int, _ ir.Module) bool {
		id := ir.ModuleID(i)
		mod := design.Modules.GetPtr(i)
		usage := Synthesize(mod, design.Types, in, a, sink)
		out.Modules[id] = &MappedModule{Module: mod, Resources: usage}
		return true
	})
	return out
}

package ir

import "github.com/Stateford/aion-sub002/source"

// Design is the elaborated output of a compile: every referenced module,
// the top module, a shared type database, and the source map they were
// elaborated from (§3). Modules form a DAG rooted at Top; a module appears
// at most once per (name, param-binding) pair after elaboration.
type Design struct {
	Modules   Arena[Module]
	Top       ModuleID
	Types     *TypeDb
	SourceMap *source.Map
}

// NewDesign returns an empty design bound to the given source map. The
// caller elaborates into it via elaborate.Elaborate, which owns the
// Modules arena until it returns (§5).
func NewDesign(sm *source.Map) *Design {
	return &Design{
		Types:     NewTypeDb(),
		SourceMap: sm,
	}
}

// ModuleByID returns a pointer to the module with the given ID.
func (d *Design) ModuleByID(id ModuleID) *Module {
	return d.Modules.GetPtr(int(id))
}

// TopModule returns a pointer to the design's top module.
func (d *Design) TopModule() *Module {
	return d.ModuleByID(d.Top)
}

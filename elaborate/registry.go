package elaborate

import (
	"github.com/Stateford/aion-sub002/diag"
)

// sourceModule is one candidate definition the registry has collected for
// a name, tagged by which frontend produced it.
type sourceModule struct {
	decl ModuleDecl
	vhdl bool
}

// ModuleRegistry indexes every module/entity declaration across a
// ParsedDesign by name, resolving duplicates and VHDL entity/architecture
// pairing before elaboration walks anything (mirrors the original's
// ModuleRegistry construction pass).
type ModuleRegistry struct {
	byName map[string]ModuleDecl
}

// NewModuleRegistry builds a registry from parsed, flattening Verilog and
// SystemVerilog modules directly and pairing each VHDL entity with its
// last-declared architecture (§4.F: "last-declared architecture wins").
// A name declared more than once by Verilog/SystemVerilog emits E202
// (recoverable) and keeps the first occurrence; sink may be nil during
// tests that don't care about diagnostics.
func NewModuleRegistry(parsed *ParsedDesign, sink *diag.Sink) *ModuleRegistry {
	r := &ModuleRegistry{byName: make(map[string]ModuleDecl)}

	addModule := func(d ModuleDecl) {
		if existing, ok := r.byName[d.Name]; ok {
			if sink != nil {
				sink.Emit(diag.Diagnostic{
					Code:     diag.CodeDuplicateModule,
					Severity: diag.Warning,
					Primary:  d.Span,
					Secondary: []diag.SecondarySpan{
						{Span: existing.Span, Label: "first defined here"},
					},
					Message: "duplicate module definition for \"" + d.Name + "\", keeping the first",
				})
			}
			return
		}
		r.byName[d.Name] = d
	}

	for _, f := range parsed.VerilogFiles {
		for _, m := range f.Modules {
			addModule(m)
		}
	}
	for _, f := range parsed.SvFiles {
		for _, m := range f.Modules {
			addModule(m)
		}
	}

	// VHDL: pair each entity with its architectures. Multiple
	// architectures for the same entity are legal VHDL; elaboration only
	// ever sees one body per entity, so the last declared architecture
	// (by appearance in VhdlFiles, then within a file's Architectures
	// slice) wins.
	entities := make(map[string]ModuleDecl)
	var entityOrder []string
	bodies := make(map[string][]BodyItem)
	for _, f := range parsed.VhdlFiles {
		for _, e := range f.Entities {
			if _, ok := entities[e.Name]; !ok {
				entityOrder = append(entityOrder, e.Name)
			}
			entities[e.Name] = e
		}
		for _, a := range f.Architectures {
			bodies[a.EntityName] = a.Body
		}
	}
	for _, name := range entityOrder {
		e := entities[name]
		e.Body = bodies[name]
		addModule(e)
	}

	return r
}

// Lookup returns the resolved declaration for name.
func (r *ModuleRegistry) Lookup(name string) (ModuleDecl, bool) {
	d, ok := r.byName[name]
	return d, ok
}

// Names returns every distinct module name the registry knows, order
// unspecified; callers that need determinism should sort the result.
func (r *ModuleRegistry) Names() []string {
	out := make([]string, 0, len(r.byName))
	for n := range r.byName {
		out = append(out, n)
	}
	return out
}

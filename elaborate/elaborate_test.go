package elaborate_test

import (
	"testing"

	"github.com/Stateford/aion-sub002/diag"
	"github.com/Stateford/aion-sub002/elaborate"
	"github.com/Stateford/aion-sub002/intern"
	"github.com/Stateford/aion-sub002/source"
)

func wireBit() elaborate.TypeRef {
	return elaborate.TypeRef{Kind: elaborate.TypeVerilogWireNoRange}
}

func ident(name string) elaborate.Expr {
	return elaborate.Expr{Kind: elaborate.ExprIdent, Ident: name}
}

// passThroughDesign builds a single top module `top(in -> out)` with one
// continuous assignment, the minimal analog of the flip-flop pass-through
// scenario.
func passThroughDesign() *elaborate.ParsedDesign {
	top := elaborate.ModuleDecl{
		Name: "top",
		Ports: []elaborate.PortDecl{
			{Name: "in", Direction: elaborate.DirIn, Type: wireBit()},
			{Name: "out", Direction: elaborate.DirOut, Type: wireBit()},
		},
		Body: []elaborate.BodyItem{
			{
				Kind: elaborate.ItemAssign,
				Assign: &elaborate.AssignItem{
					LHS: ident("out"),
					RHS: ident("in"),
				},
			},
		},
	}
	return &elaborate.ParsedDesign{
		VerilogFiles: []elaborate.VerilogFile{{Modules: []elaborate.ModuleDecl{top}}},
	}
}

func TestElaboratePassThrough(t *testing.T) {
	parsed := passThroughDesign()
	sm := source.NewMap()
	in := intern.New()
	sink := diag.NewSink(nil)

	design, err := elaborate.Elaborate(parsed, elaborate.Config{Project: elaborate.ProjectConfig{Top: "top"}}, sm, in, sink)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sink.HasErrors() {
		t.Fatalf("unexpected diagnostics: %+v", sink.All())
	}

	top := design.TopModule()
	if top.Signals.Len() != 2 {
		t.Fatalf("expected 2 signals (in, out), got %d", top.Signals.Len())
	}
	if len(top.Assignments) != 1 {
		t.Fatalf("expected 1 assignment, got %d", len(top.Assignments))
	}
}

func TestElaborateMissingTopIsFatal(t *testing.T) {
	parsed := passThroughDesign()
	sm := source.NewMap()
	in := intern.New()
	sink := diag.NewSink(nil)

	_, err := elaborate.Elaborate(parsed, elaborate.Config{Project: elaborate.ProjectConfig{Top: "nonexistent"}}, sm, in, sink)
	if err == nil {
		t.Fatal("expected an error for a missing top module")
	}
	found := false
	for _, d := range sink.All() {
		if d.Code == diag.CodeMissingTop {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected an %s diagnostic, got %+v", diag.CodeMissingTop, sink.All())
	}
}

func TestElaborateDuplicateModuleEmitsDiagnostic(t *testing.T) {
	top := elaborate.ModuleDecl{Name: "dup"}
	dup := elaborate.ModuleDecl{Name: "dup"}
	parsed := &elaborate.ParsedDesign{
		VerilogFiles: []elaborate.VerilogFile{
			{Modules: []elaborate.ModuleDecl{top, dup}},
		},
	}
	sm := source.NewMap()
	in := intern.New()
	sink := diag.NewSink(nil)

	_, err := elaborate.Elaborate(parsed, elaborate.Config{Project: elaborate.ProjectConfig{Top: "dup"}}, sm, in, sink)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	found := false
	for _, d := range sink.All() {
		if d.Code == diag.CodeDuplicateModule {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected an %s diagnostic, got %+v", diag.CodeDuplicateModule, sink.All())
	}
}

func TestElaborateCircularInstantiationIsDiagnosedNotInfinite(t *testing.T) {
	a := elaborate.ModuleDecl{
		Name: "a",
		Body: []elaborate.BodyItem{
			{
				Kind: elaborate.ItemInstance,
				Instance: &elaborate.InstanceItem{
					ModuleName:   "b",
					InstanceName: "u_b",
				},
			},
		},
	}
	b := elaborate.ModuleDecl{
		Name: "b",
		Body: []elaborate.BodyItem{
			{
				Kind: elaborate.ItemInstance,
				Instance: &elaborate.InstanceItem{
					ModuleName:   "a",
					InstanceName: "u_a",
				},
			},
		},
	}
	parsed := &elaborate.ParsedDesign{
		VerilogFiles: []elaborate.VerilogFile{{Modules: []elaborate.ModuleDecl{a, b}}},
	}
	sm := source.NewMap()
	in := intern.New()
	sink := diag.NewSink(nil)

	design, err := elaborate.Elaborate(parsed, elaborate.Config{Project: elaborate.ProjectConfig{Top: "a"}}, sm, in, sink)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if design == nil {
		t.Fatal("expected a design to be returned despite the cycle")
	}
	found := false
	for _, d := range sink.All() {
		if d.Code == diag.CodeCircularInstantiation {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected an %s diagnostic, got %+v", diag.CodeCircularInstantiation, sink.All())
	}
}

func TestElaborateMemoizesIdenticalParamBindings(t *testing.T) {
	leaf := elaborate.ModuleDecl{
		Name: "leaf",
		Params: []elaborate.ParamDecl{
			{Name: "WIDTH", Default: &elaborate.Expr{Kind: elaborate.ExprIntLit, Int: 8}},
		},
	}
	top := elaborate.ModuleDecl{
		Name: "top2",
		Body: []elaborate.BodyItem{
			{
				Kind: elaborate.ItemInstance,
				Instance: &elaborate.InstanceItem{ModuleName: "leaf", InstanceName: "u1"},
			},
			{
				Kind: elaborate.ItemInstance,
				Instance: &elaborate.InstanceItem{ModuleName: "leaf", InstanceName: "u2"},
			},
		},
	}
	parsed := &elaborate.ParsedDesign{
		VerilogFiles: []elaborate.VerilogFile{{Modules: []elaborate.ModuleDecl{leaf, top}}},
	}
	sm := source.NewMap()
	in := intern.New()
	sink := diag.NewSink(nil)

	design, err := elaborate.Elaborate(parsed, elaborate.Config{Project: elaborate.ProjectConfig{Top: "top2"}}, sm, in, sink)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if design.Modules.Len() != 2 {
		t.Fatalf("expected leaf to be elaborated exactly once (2 modules total: top2, leaf), got %d", design.Modules.Len())
	}

	top2 := design.TopModule()
	if top2.Cells.Len() != 2 {
		t.Fatalf("expected 2 instance cells, got %d", top2.Cells.Len())
	}
	u1 := top2.Cells.Get(0)
	u2 := top2.Cells.Get(1)
	if u1.Kind.ModuleRef != u2.Kind.ModuleRef {
		t.Fatalf("expected both instances to share the same memoized ModuleID, got %v and %v", u1.Kind.ModuleRef, u2.Kind.ModuleRef)
	}
}

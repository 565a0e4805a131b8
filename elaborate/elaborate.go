package elaborate

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/Stateford/aion-sub002/diag"
	"github.com/Stateford/aion-sub002/intern"
	"github.com/Stateford/aion-sub002/ir"
	"github.com/Stateford/aion-sub002/source"
)

// elaborator carries the state shared across one Elaborate call: the
// module registry, the design being built, the memoization cache keyed by
// (module name, parameter-binding hash), and the instantiation stack used
// for cycle detection (§4.F).
type elaborator struct {
	registry  *ModuleRegistry
	design    *ir.Design
	interner  *intern.Interner
	sourceMap *source.Map
	sink      *diag.Sink

	memo  map[string]ir.ModuleID
	stack map[string]bool
}

// Elaborate walks parsed starting from config.Project.Top, producing an
// ir.Design. A missing top module is fatal (E201, wrapped with
// pkg/errors); every other failure is recorded on sink and degrades the
// affected subtree to a black-box cell rather than aborting the whole
// compile (§4.F, §7).
func Elaborate(parsed *ParsedDesign, config Config, sm *source.Map, in *intern.Interner, sink *diag.Sink) (*ir.Design, error) {
	registry := NewModuleRegistry(parsed, sink)

	topDecl, ok := registry.Lookup(config.Project.Top)
	if !ok {
		sink.Emit(diag.Diagnostic{
			Code:     diag.CodeMissingTop,
			Severity: diag.Error,
			Primary:  source.DummySpan,
			Message:  fmt.Sprintf("top module %q not found", config.Project.Top),
		})
		return nil, errors.Errorf("elaborate: top module %q not found", config.Project.Top)
	}

	design := ir.NewDesign(sm)
	e := &elaborator{
		registry:  registry,
		design:    design,
		interner:  in,
		sourceMap: sm,
		sink:      sink,
		memo:      make(map[string]ir.ModuleID),
		stack:     make(map[string]bool),
	}

	topID, err := e.elaborateModule(topDecl, map[string]ir.ConstValue{}, topDecl.Span)
	if err != nil {
		return nil, errors.Wrap(err, "elaborate: elaborating top module")
	}
	design.Top = topID
	return design, nil
}

// elaborateModule elaborates decl under the given parameter bindings,
// returning the memoized ModuleID. instSpan is the instantiation site used
// to attach a span to a cycle diagnostic (the top module passes its own
// declaration span, since it has no instantiation site).
func (e *elaborator) elaborateModule(decl ModuleDecl, bindings map[string]ir.ConstValue, instSpan source.Span) (ir.ModuleID, error) {
	// Resolve defaults for any parameter not already bound, before
	// hashing, so two instantiations that end up with identical effective
	// bindings (one explicit, one via default) memoize to the same
	// module.
	for _, p := range decl.Params {
		if _, bound := bindings[p.Name]; bound {
			continue
		}
		if p.Default == nil {
			return ir.InvalidID, fmt.Errorf("elaborate: parameter %q of module %q has no default and was not overridden", p.Name, decl.Name)
		}
		v, err := NewConstEnv(bindings).Eval(p.Default)
		if err != nil {
			return ir.InvalidID, fmt.Errorf("elaborate: resolving default for parameter %q of module %q: %w", p.Name, decl.Name, err)
		}
		bindings[p.Name] = v
	}

	hash := hashParamBindings(bindings)
	key := memoKey(decl.Name, hash)
	if id, ok := e.memo[key]; ok {
		return id, nil
	}

	if e.stack[decl.Name] {
		e.sink.Emit(diag.Diagnostic{
			Code:     diag.CodeCircularInstantiation,
			Severity: diag.Error,
			Primary:  instSpan,
			Message:  fmt.Sprintf("circular instantiation of module %q", decl.Name),
		})
		return ir.InvalidID, fmt.Errorf("elaborate: circular instantiation of %q", decl.Name)
	}
	e.stack[decl.Name] = true
	defer delete(e.stack, decl.Name)

	mod := ir.Module{
		Name: e.interner.Intern(decl.Name),
		Span: decl.Span,
	}
	env := NewConstEnv(bindings)
	nameToSignal := make(map[string]ir.SignalID)

	for _, p := range decl.Params {
		mod.Params = append(mod.Params, ir.Param{
			Name:    e.interner.Intern(p.Name),
			Default: bindings[p.Name],
		})
	}

	for _, p := range decl.Ports {
		ty, err := ResolveType(p.Type, env)
		if err != nil {
			e.emitTypeError(p.Span, p.Name, err)
			ty = ir.Err
		}
		typeID := e.design.Types.Intern(ty)
		sigID := ir.SignalID(mod.Signals.Alloc(ir.Signal{
			Name: e.interner.Intern(p.Name),
			Type: typeID,
			Kind: ir.SignalPort,
			Span: p.Span,
		}))
		nameToSignal[p.Name] = sigID
		mod.Ports = append(mod.Ports, ir.Port{
			Name:      e.interner.Intern(p.Name),
			Direction: convertDir(p.Direction),
			Type:      typeID,
			Signal:    sigID,
			Span:      p.Span,
		})
	}

	for _, item := range decl.Body {
		if err := e.elaborateBodyItem(&mod, item, env, nameToSignal); err != nil {
			e.sink.Emit(diag.Diagnostic{
				Code:     diag.CodeUnknownType,
				Severity: diag.Error,
				Primary:  item.Span,
				Message:  err.Error(),
			})
		}
	}

	mod.ContentHash = ir.ComputeContentHash(&mod)
	id := ir.ModuleID(e.design.Modules.Alloc(mod))
	e.memo[key] = id
	return id, nil
}

func (e *elaborator) emitTypeError(span source.Span, name string, err error) {
	e.sink.Emit(diag.Diagnostic{
		Code:     diag.CodeUnknownType,
		Severity: diag.Error,
		Primary:  span,
		Message:  fmt.Sprintf("resolving type of %q: %s", name, err),
	})
}

func memoKey(name string, hash uint64) string {
	return fmt.Sprintf("%s#%016x", name, hash)
}

func convertDir(d PortDir) ir.PortDirection {
	switch d {
	case DirOut:
		return ir.DirOut
	case DirInOut:
		return ir.DirInOut
	default:
		return ir.DirIn
	}
}

// elaborateBodyItem dispatches one module-body item, in source order
// (§4.F.d).
func (e *elaborator) elaborateBodyItem(mod *ir.Module, item BodyItem, env *ConstEnv, nameToSignal map[string]ir.SignalID) error {
	switch item.Kind {
	case ItemSignalDecl:
		return e.elaborateSignalDecl(mod, item.SignalDecl, item.Span, env, nameToSignal)
	case ItemAssign:
		return e.elaborateAssign(mod, item.Assign, item.Span, nameToSignal)
	case ItemInstance:
		return e.elaborateInstance(mod, item.Instance, item.Span, env, nameToSignal)
	case ItemProcess:
		return e.elaborateProcess(mod, item.ProcessDecl, item.Span, nameToSignal)
	default:
		return fmt.Errorf("elaborate: unknown body item kind %d", item.Kind)
	}
}

func (e *elaborator) elaborateSignalDecl(mod *ir.Module, decl *SignalDeclItem, span source.Span, env *ConstEnv, nameToSignal map[string]ir.SignalID) error {
	ty, err := ResolveType(decl.Type, env)
	if err != nil {
		e.emitTypeError(span, decl.Name, err)
		ty = ir.Err
	}
	typeID := e.design.Types.Intern(ty)

	kind := ir.SignalWire
	if decl.Kind == DeclReg {
		kind = ir.SignalReg
	}

	var init *ir.ConstValue
	if decl.Init != nil {
		v, err := env.Eval(decl.Init)
		if err != nil {
			return fmt.Errorf("resolving initializer for signal %q: %w", decl.Name, err)
		}
		init = &v
	}

	sigID := ir.SignalID(mod.Signals.Alloc(ir.Signal{
		Name: e.interner.Intern(decl.Name),
		Type: typeID,
		Kind: kind,
		Init: init,
		Span: span,
	}))
	nameToSignal[decl.Name] = sigID
	return nil
}

func (e *elaborator) elaborateAssign(mod *ir.Module, a *AssignItem, span source.Span, nameToSignal map[string]ir.SignalID) error {
	lhs, err := e.exprToSignalRef(mod, &a.LHS, nameToSignal)
	if err != nil {
		return fmt.Errorf("resolving assignment target: %w", err)
	}
	rhs, err := e.exprToSignalRef(mod, &a.RHS, nameToSignal)
	if err != nil {
		return fmt.Errorf("resolving assignment source: %w", err)
	}
	mod.Assignments = append(mod.Assignments, ir.Assignment{LHS: lhs, RHS: rhs, Span: span})
	return nil
}

func (e *elaborator) elaborateProcess(mod *ir.Module, p *ProcessItem, span source.Span, nameToSignal map[string]ir.SignalID) error {
	sens := make([]ir.SignalID, 0, len(p.Sensitivity))
	for _, name := range p.Sensitivity {
		id, ok := nameToSignal[name]
		if !ok {
			return fmt.Errorf("process %q is sensitive to unknown signal %q", p.Name, name)
		}
		sens = append(sens, id)
	}
	mod.Processes.Alloc(ir.Process{
		Name:        e.interner.Intern(p.Name),
		Sensitivity: sens,
		Body:        p.Body,
		Span:        span,
	})
	return nil
}

// elaborateInstance recursively elaborates the referenced module under the
// overridden parameter bindings and records either a TagInstance cell
// referencing it, or — if elaboration of the child fails (unresolvable
// reference, circular instantiation) — a TagBlackBox cell, so one bad
// instantiation degrades gracefully instead of aborting the whole design
// (§7 fail-safe policy).
func (e *elaborator) elaborateInstance(mod *ir.Module, inst *InstanceItem, span source.Span, env *ConstEnv, nameToSignal map[string]ir.SignalID) error {
	childDecl, ok := e.registry.Lookup(inst.ModuleName)
	if !ok {
		mod.Cells.Alloc(ir.Cell{
			Name: e.interner.Intern(inst.InstanceName),
			Kind: ir.CellKind{Tag: ir.TagBlackBox, HardConfig: inst.ModuleName},
			Span: span,
		})
		return fmt.Errorf("instance %q references unknown module %q", inst.InstanceName, inst.ModuleName)
	}

	childBindings := make(map[string]ir.ConstValue, len(inst.ParamOverrides))
	for _, ov := range inst.ParamOverrides {
		v, err := env.Eval(&ov.Value)
		if err != nil {
			return fmt.Errorf("resolving parameter override %q on instance %q: %w", ov.Name, inst.InstanceName, err)
		}
		childBindings[ov.Name] = v
	}

	childID, err := e.elaborateModule(childDecl, childBindings, span)
	if err != nil {
		mod.Cells.Alloc(ir.Cell{
			Name: e.interner.Intern(inst.InstanceName),
			Kind: ir.CellKind{Tag: ir.TagBlackBox, HardConfig: inst.ModuleName},
			Span: span,
		})
		return fmt.Errorf("elaborating instance %q: %w", inst.InstanceName, err)
	}

	var conns []ir.Connection
	for _, pc := range inst.Ports {
		ref, err := e.exprToSignalRef(mod, &pc.Value, nameToSignal)
		if err != nil {
			return fmt.Errorf("resolving port connection %q on instance %q: %w", pc.PortName, inst.InstanceName, err)
		}
		conns = append(conns, ir.Connection{
			PortName:  e.interner.Intern(pc.PortName),
			Direction: convertDir(pc.Dir),
			Signal:    ref,
		})
	}

	mod.Cells.Alloc(ir.Cell{
		Name:        e.interner.Intern(inst.InstanceName),
		Kind:        ir.CellKind{Tag: ir.TagInstance, ModuleRef: childID},
		Connections: conns,
		Span:        span,
	})
	return nil
}

// exprToSignalRef lowers the small subset of Expr that can appear on
// either side of an assignment or a port connection: a signal reference,
// a bit slice of one, a concatenation, or a literal constant.
func (e *elaborator) exprToSignalRef(mod *ir.Module, expr *Expr, nameToSignal map[string]ir.SignalID) (ir.SignalRef, error) {
	if expr == nil {
		return ir.SignalRef{}, fmt.Errorf("nil expression")
	}
	switch expr.Kind {
	case ExprIdent, ExprSignalRef:
		id, ok := nameToSignal[expr.Ident]
		if !ok {
			return ir.SignalRef{}, fmt.Errorf("reference to unknown signal %q", expr.Ident)
		}
		return ir.WholeSignal(id), nil

	case ExprSlice:
		base, err := e.exprToSignalRef(mod, expr.Target, nameToSignal)
		if err != nil {
			return ir.SignalRef{}, err
		}
		if base.Tag != ir.RefSignal {
			return ir.SignalRef{}, fmt.Errorf("slice target must be a plain signal reference")
		}
		env := NewConstEnv(nil)
		high, err := env.EvalWidth(expr.High)
		if err != nil {
			return ir.SignalRef{}, fmt.Errorf("resolving slice high bound: %w", err)
		}
		low, err := env.EvalWidth(expr.Low)
		if err != nil {
			return ir.SignalRef{}, fmt.Errorf("resolving slice low bound: %w", err)
		}
		return ir.SliceSignal(base.Signal, high, low), nil

	case ExprConcat:
		parts := make([]ir.SignalRef, 0, len(expr.Parts))
		for i := range expr.Parts {
			p, err := e.exprToSignalRef(mod, &expr.Parts[i], nameToSignal)
			if err != nil {
				return ir.SignalRef{}, err
			}
			parts = append(parts, p)
		}
		return ir.ConcatSignals(parts...), nil

	case ExprIntLit, ExprRealLit, ExprBoolLit, ExprStrLit:
		v, err := NewConstEnv(nil).Eval(expr)
		if err != nil {
			return ir.SignalRef{}, err
		}
		id := mod.InternConst(v)
		return ir.ConstSignal(id), nil

	default:
		return ir.SignalRef{}, fmt.Errorf("expression kind %v cannot be used as a signal reference", expr.Kind)
	}
}

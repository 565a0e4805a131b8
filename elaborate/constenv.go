package elaborate

import (
	"fmt"

	"github.com/Stateford/aion-sub002/ir"
)

// ConstEnv resolves Expr nodes to ir.ConstValue, the way the original's
// constant evaluator folded parameter defaults, array bounds, and instance
// overrides entirely at elaboration time (no runtime constant folding
// exists downstream). A ConstEnv is scoped to one module-elaboration call:
// it holds the current parameter bindings plus whatever locally-declared
// constants have been folded so far.
type ConstEnv struct {
	params map[string]ir.ConstValue
}

// NewConstEnv returns a ConstEnv seeded with the given parameter bindings.
func NewConstEnv(params map[string]ir.ConstValue) *ConstEnv {
	if params == nil {
		params = map[string]ir.ConstValue{}
	}
	return &ConstEnv{params: params}
}

// Bind records a resolved identifier (e.g. a parameter's folded default)
// for later reference within the same module body.
func (e *ConstEnv) Bind(name string, v ir.ConstValue) {
	e.params[name] = v
}

// Lookup returns the bound value for name, if any.
func (e *ConstEnv) Lookup(name string) (ir.ConstValue, bool) {
	v, ok := e.params[name]
	return v, ok
}

// Eval folds expr to a constant value. It returns an error for anything
// that is not constant-foldable in this context (e.g. a reference to a
// signal, or an unbound identifier) — elaboration treats that as the
// caller's problem to diagnose with the correct span and code.
func (e *ConstEnv) Eval(expr *Expr) (ir.ConstValue, error) {
	if expr == nil {
		return ir.ConstValue{}, fmt.Errorf("elaborate: nil constant expression")
	}
	switch expr.Kind {
	case ExprIntLit:
		return ir.IntConst(expr.Int), nil
	case ExprRealLit:
		return ir.RealConst(expr.Real), nil
	case ExprBoolLit:
		return ir.BoolConst(expr.Bool), nil
	case ExprStrLit:
		return ir.StrConst(expr.Str), nil
	case ExprIdent:
		v, ok := e.params[expr.Ident]
		if !ok {
			return ir.ConstValue{}, fmt.Errorf("elaborate: unbound identifier %q in constant expression", expr.Ident)
		}
		return v, nil
	case ExprBinary:
		return e.evalBinary(expr)
	default:
		return ir.ConstValue{}, fmt.Errorf("elaborate: expression kind %v is not constant-foldable", expr.Kind)
	}
}

func (e *ConstEnv) evalBinary(expr *Expr) (ir.ConstValue, error) {
	lhs, err := e.Eval(expr.Left)
	if err != nil {
		return ir.ConstValue{}, err
	}
	rhs, err := e.Eval(expr.Right)
	if err != nil {
		return ir.ConstValue{}, err
	}

	if lhs.Tag == ir.ConstReal || rhs.Tag == ir.ConstReal {
		a, b := toReal(lhs), toReal(rhs)
		switch expr.Op {
		case OpAdd:
			return ir.RealConst(a + b), nil
		case OpSub:
			return ir.RealConst(a - b), nil
		case OpMul:
			return ir.RealConst(a * b), nil
		case OpEq:
			return ir.BoolConst(a == b), nil
		case OpLt:
			return ir.BoolConst(a < b), nil
		default:
			return ir.ConstValue{}, fmt.Errorf("elaborate: operator %v not defined over real operands", expr.Op)
		}
	}

	if lhs.Tag != ir.ConstInt || rhs.Tag != ir.ConstInt {
		return ir.ConstValue{}, fmt.Errorf("elaborate: binary operator requires integer or real operands")
	}
	a, b := lhs.Int, rhs.Int
	switch expr.Op {
	case OpAdd:
		return ir.IntConst(a + b), nil
	case OpSub:
		return ir.IntConst(a - b), nil
	case OpMul:
		return ir.IntConst(a * b), nil
	case OpShl:
		return ir.IntConst(a << uint(b)), nil
	case OpShr:
		return ir.IntConst(a >> uint(b)), nil
	case OpAnd:
		return ir.IntConst(a & b), nil
	case OpOr:
		return ir.IntConst(a | b), nil
	case OpXor:
		return ir.IntConst(a ^ b), nil
	case OpEq:
		return ir.BoolConst(a == b), nil
	case OpLt:
		return ir.BoolConst(a < b), nil
	default:
		return ir.ConstValue{}, fmt.Errorf("elaborate: unknown binary operator %v", expr.Op)
	}
}

func toReal(v ir.ConstValue) float64 {
	if v.Tag == ir.ConstReal {
		return v.Real
	}
	return float64(v.Int)
}

// EvalWidth folds expr to a non-negative width, for array-bound and
// bit-range resolution. An out-of-range or non-integer result is an
// error for the caller to attach a span to.
func (e *ConstEnv) EvalWidth(expr *Expr) (uint32, error) {
	v, err := e.Eval(expr)
	if err != nil {
		return 0, err
	}
	if v.Tag != ir.ConstInt {
		return 0, fmt.Errorf("elaborate: width expression did not fold to an integer")
	}
	if v.Int < 0 {
		return 0, fmt.Errorf("elaborate: width expression folded to a negative value (%d)", v.Int)
	}
	return uint32(v.Int), nil
}

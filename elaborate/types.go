package elaborate

import (
	"fmt"

	"github.com/Stateford/aion-sub002/ir"
)

// ResolveType maps a source-specific TypeRef to a canonical ir.Type,
// following the §6 type-resolution table. High/Low are folded through env
// so ranges may reference parameters (e.g. `wire [WIDTH-1:0]`). Returns an
// error for any construct the table does not recognize (E208); the caller
// attaches the originating span.
func ResolveType(ref TypeRef, env *ConstEnv) (ir.Type, error) {
	switch ref.Kind {
	case TypeVerilogWireNoRange, TypeSvLogicNoRange, TypeVhdlStdLogic:
		return ir.Bit, nil

	case TypeVerilogWireRanged, TypeVhdlStdLogicVector:
		return resolveRanged(ref, env, false)

	case TypeVhdlSigned:
		return resolveRanged(ref, env, true)

	case TypeVerilogInteger, TypeVhdlInteger:
		return ir.Integer, nil

	case TypeVerilogReal, TypeVhdlReal:
		return ir.Real, nil

	case TypeSvInt:
		return ir.BitVec(32, true), nil
	case TypeSvShortInt:
		return ir.BitVec(16, true), nil
	case TypeSvLongInt:
		return ir.BitVec(64, true), nil
	case TypeSvByte:
		return ir.BitVec(8, true), nil

	case TypeVhdlBoolean:
		return ir.Bool, nil
	case TypeVhdlString:
		return ir.Str, nil

	default:
		return ir.Err, fmt.Errorf("elaborate: unrecognized type construct (kind %d)", ref.Kind)
	}
}

func resolveRanged(ref TypeRef, env *ConstEnv, signed bool) (ir.Type, error) {
	if ref.High == nil || ref.Low == nil {
		return ir.Err, fmt.Errorf("elaborate: ranged type missing bounds")
	}
	high, err := env.EvalWidth(ref.High)
	if err != nil {
		return ir.Err, fmt.Errorf("elaborate: resolving range high bound: %w", err)
	}
	low, err := env.EvalWidth(ref.Low)
	if err != nil {
		return ir.Err, fmt.Errorf("elaborate: resolving range low bound: %w", err)
	}
	if high < low {
		return ir.Err, fmt.Errorf("elaborate: range high (%d) below low (%d)", high, low)
	}
	return ir.BitVec(high-low+1, signed), nil
}

package ir

import (
	"fmt"

	"github.com/Stateford/aion-sub002/logic"
)

// ConstValue is the result of elaboration's constant evaluator: a tagged
// union over the value kinds used for parameter defaults, array bounds, and
// instance parameter overrides (§4.F).
type ConstValue struct {
	Tag  ConstTag
	Int  int64
	Real float64
	Bool bool
	Str  string
	Vec  logic.Vec
}

// ConstTag discriminates ConstValue's payload. The discriminant is mixed
// into the parameter-binding hash (§4.F) so that, e.g., Int(8) and
// Int(16) never collide with each other or with a differently-tagged
// value that happens to share a numeric encoding.
type ConstTag int

const (
	ConstInt ConstTag = iota
	ConstReal
	ConstBool
	ConstStr
	ConstVec
)

// IntConst constructs a signed-integer constant.
func IntConst(v int64) ConstValue { return ConstValue{Tag: ConstInt, Int: v} }

// RealConst constructs a real constant.
func RealConst(v float64) ConstValue { return ConstValue{Tag: ConstReal, Real: v} }

// BoolConst constructs a boolean constant.
func BoolConst(v bool) ConstValue { return ConstValue{Tag: ConstBool, Bool: v} }

// StrConst constructs a string constant.
func StrConst(v string) ConstValue { return ConstValue{Tag: ConstStr, Str: v} }

// VecConst constructs a logic-vector constant.
func VecConst(v logic.Vec) ConstValue { return ConstValue{Tag: ConstVec, Vec: v} }

func (c ConstValue) String() string {
	switch c.Tag {
	case ConstInt:
		return fmt.Sprintf("%d", c.Int)
	case ConstReal:
		return fmt.Sprintf("%g", c.Real)
	case ConstBool:
		return fmt.Sprintf("%t", c.Bool)
	case ConstStr:
		return c.Str
	case ConstVec:
		return c.Vec.String()
	default:
		return "<invalid const>"
	}
}

// Equal reports whether two ConstValues are structurally equal, including
// tag.
func (c ConstValue) Equal(other ConstValue) bool {
	if c.Tag != other.Tag {
		return false
	}
	switch c.Tag {
	case ConstInt:
		return c.Int == other.Int
	case ConstReal:
		return c.Real == other.Real
	case ConstBool:
		return c.Bool == other.Bool
	case ConstStr:
		return c.Str == other.Str
	case ConstVec:
		return c.Vec.Equal(other.Vec)
	default:
		return false
	}
}

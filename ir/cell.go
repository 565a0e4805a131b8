package ir

// CellKind is the tagged union of hardware primitives (§3). Synthesis,
// tech mapping, PnR conversion, and timing-graph construction all switch
// over Tag and are expected to exhaustively handle every case (§9: "new
// primitives require touching every consumer").
type CellKind struct {
	Tag CellTag

	// Combinational/structural/hard-block payload fields. Only the fields
	// relevant to Tag are meaningful; this mirrors the Rust original's
	// tagged enum with per-variant payload, flattened into one struct for
	// simplicity of equality comparison (CellKind implements structural
	// equality via ==, since every field is comparable).
	Width      uint32 // bit width for gates, Dff, Latch, Lut fan-in count n/a here
	HasReset   bool   // Dff
	HasEnable  bool   // Dff
	ModuleRef  ModuleID
	ConstValue ConstID // Const

	// Post-map primitives.
	LutInputs uint32
	LutInit   uint64

	// Hard blocks carry an opaque config payload identified by name; the
	// concrete shapes (Bram/Dsp/Pll configuration) are owned by arch/synth
	// and referenced here only by a string tag to keep CellKind comparable.
	HardConfig string
}

// CellTag enumerates the primitive kinds a Cell can carry.
type CellTag int

const (
	// Combinational.
	TagAnd CellTag = iota
	TagOr
	TagXor
	TagNot
	TagMux
	TagEq
	TagLt
	TagAdd
	TagSub
	TagMul
	TagShl
	TagShr

	// Sequential.
	TagDff
	TagLatch

	// Structural.
	TagConcat
	TagSlice
	TagRepeat

	// Hard blocks.
	TagBram
	TagDsp
	TagPll
	TagIobuf

	// Post-map primitives.
	TagLut
	TagCarry

	// Module reference, constant source, and unmapped stand-in.
	TagInstance
	TagConst
	TagBlackBox
)

// IsCommutative reports whether a cell kind's input order does not affect
// its semantics — used by CSE to normalize keys (§4.H).
func (t CellTag) IsCommutative() bool {
	switch t {
	case TagAnd, TagOr, TagXor, TagAdd, TagMul, TagEq:
		return true
	default:
		return false
	}
}

// IsPure reports whether a cell kind may be merged by CSE: anything with
// state, any instance, any hard block, Carry, or Const is impure (§4.H).
func (t CellTag) IsPure() bool {
	switch t {
	case TagDff, TagLatch, TagInstance, TagBram, TagDsp, TagPll, TagIobuf,
		TagCarry, TagConst, TagBlackBox:
		return false
	default:
		return true
	}
}

// ConstID identifies a constant value stored in a Module's constant pool
// (kept out of CellKind's equality surface as a value, not a pointer, by
// storing only a stable small handle).
type ConstID int

// Connection binds one named cell port to a signal reference (§3).
type Connection struct {
	PortName  NameID
	Direction PortDirection
	Signal    SignalRef
}

// SignalRef is one of: a whole signal, a bit slice, a concatenation, or a
// constant. MSB-first concatenation and inclusive bit-level slicing are
// part of the contract (§3).
type SignalRef struct {
	Tag    SignalRefTag
	Signal SignalID  // Tag == RefSignal, RefSlice
	High   uint32    // Tag == RefSlice
	Low    uint32    // Tag == RefSlice
	Concat []SignalRef // Tag == RefConcat, MSB-first
	Const  ConstID   // Tag == RefConst
}

// SignalRefTag discriminates SignalRef's payload.
type SignalRefTag int

const (
	RefSignal SignalRefTag = iota
	RefSlice
	RefConcat
	RefConst
)

// WholeSignal constructs a SignalRef to an entire signal.
func WholeSignal(id SignalID) SignalRef { return SignalRef{Tag: RefSignal, Signal: id} }

// SliceSignal constructs an inclusive bit-level slice; callers must ensure
// high >= low (§3 invariant), enforced by elaboration, not by this
// constructor.
func SliceSignal(id SignalID, high, low uint32) SignalRef {
	return SignalRef{Tag: RefSlice, Signal: id, High: high, Low: low}
}

// ConcatSignals constructs an MSB-first concatenation.
func ConcatSignals(parts ...SignalRef) SignalRef {
	return SignalRef{Tag: RefConcat, Concat: parts}
}

// ConstSignal constructs a reference to a pooled constant value.
func ConstSignal(id ConstID) SignalRef { return SignalRef{Tag: RefConst, Const: id} }

// Cell is a logical hardware element: a name, its kind, and its port
// connections.
type Cell struct {
	ID          CellID
	Name        NameID
	Kind        CellKind
	Connections []Connection
	Dead        bool // DCE sets this instead of removing the cell (§4.H)
	Span        Span
}

// InputSignals returns the SignalIDs read by this cell's input/inout
// connections, flattening slices/concats to their underlying signals, in
// connection order. Used by netlist fanout/driver indexing and by CSE
// keying.
func (c Cell) InputSignals() []SignalID {
	var out []SignalID
	for _, conn := range c.Connections {
		if conn.Direction == DirOutput {
			continue
		}
		out = append(out, flattenSignalIDs(conn.Signal)...)
	}
	return out
}

// OutputSignals returns the SignalIDs driven by this cell's output/inout
// connections.
func (c Cell) OutputSignals() []SignalID {
	var out []SignalID
	for _, conn := range c.Connections {
		if conn.Direction == DirInput {
			continue
		}
		out = append(out, flattenSignalIDs(conn.Signal)...)
	}
	return out
}

func flattenSignalIDs(ref SignalRef) []SignalID {
	switch ref.Tag {
	case RefSignal, RefSlice:
		return []SignalID{ref.Signal}
	case RefConcat:
		var out []SignalID
		for _, p := range ref.Concat {
			out = append(out, flattenSignalIDs(p)...)
		}
		return out
	default:
		return nil
	}
}

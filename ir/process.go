package ir

// Process is a behavioral block (e.g. an always/process statement),
// consumed only by simulation (§3, §4.K); synthesis treats the cells and
// assignments it was lowered into as the source of truth.
type Process struct {
	ID   ProcessID
	Name NameID
	// Sensitivity lists the signals that trigger (re-)evaluation; an empty
	// list means the process is combinational/always-evaluated.
	Sensitivity []SignalID
	// Body is an opaque statement tree handle; the language-specific
	// parsers and the simulator's statement interpreter agree on its shape
	// out of band (the elaborator only threads it through).
	Body any
	Span Span
}

// Assignment is a continuous assignment (`assign lhs = rhs`), also used as
// sugar for a Cell during lowering (§3).
type Assignment struct {
	LHS  SignalRef
	RHS  SignalRef
	Span Span
}

package arch

// CellDelayTable provides cheap deterministic per-primitive delays, in
// femtoseconds (matching simulate's time base), used by the PnR timing
// bridge (§4.I.4) until a concrete physical timing model replaces it.
// NsPerUnit scales the Manhattan placement distance synthesized net
// delays are estimated from (§4.I.4: "scaled by a per-family
// nanoseconds-per-unit constant").
type CellDelayTable struct {
	Lut       int64
	Dff       int64
	Carry     int64
	Default   int64
	NsPerUnit int64
}

// CellDelay resolves a primitive name ("LUT", "DFF", "CARRY") to its
// table entry, falling back to Default for anything else (IOBUF, BRAM,
// DSP, PLL).
func (t CellDelayTable) CellDelay(cellType string) int64 {
	switch cellType {
	case "LUT":
		return t.Lut
	case "DFF":
		return t.Dff
	case "CARRY":
		return t.Carry
	default:
		return t.Default
	}
}

// NetDelayPerUnit returns the per-family nanoseconds-per-grid-unit
// constant the timing bridge scales Manhattan placement distance by.
func (t CellDelayTable) NetDelayPerUnit() int64 { return t.NsPerUnit }

// Phase3Stub is the Phase-2 default for the grid-geometry and
// routing-graph-size methods §3 describes as "return empty/zero stubs by
// default; a family may override" — it reports no concrete device grid
// and an empty routing graph, which is exactly the condition placement
// and routing check to fall back to their Phase-2 behavior (trivial cost
// function, stub route trees). A family with a loaded physical model
// overrides these methods directly (Go's embedding promotes Phase3Stub's
// methods only until the embedder defines its own).
type Phase3Stub struct{}

// GridGeometry reports (0, 0): no concrete device grid is loaded.
func (Phase3Stub) GridGeometry() (cols, rows int) { return 0, 0 }

// RoutingGraphSize reports 0: no concrete routing fabric is loaded.
func (Phase3Stub) RoutingGraphSize() int { return 0 }

package ir

// ContentHash is a stable digest over a module's structure (§3, §4.D),
// used to drive incremental caching and parameter-binding memoization.
type ContentHash uint64

// Module is one elaborated hardware module: ports, signals, cells,
// processes, assignments, clock domains, and a content hash (§3).
type Module struct {
	ID            ModuleID
	Name          NameID
	Params        []Param
	Ports         []Port
	Signals       Arena[Signal]
	Cells         Arena[Cell]
	Processes     Arena[Process]
	Assignments   []Assignment
	ClockDomains  []ClockDomain
	Consts        []ConstValue // pool referenced by ConstID
	ContentHash   ContentHash
	Span          Span
}

// Const resolves a ConstID against this module's constant pool.
func (m *Module) Const(id ConstID) ConstValue {
	return m.Consts[id]
}

// InternConst appends v to the constant pool (without deduplication — the
// pool is a flat append log, not hash-consed, since constants are small
// and module-local) and returns its ConstID.
func (m *Module) InternConst(v ConstValue) ConstID {
	m.Consts = append(m.Consts, v)
	return ConstID(len(m.Consts) - 1)
}

// LiveCells calls f for every cell not marked dead, in arena order. This is
// the iteration order every synthesis/PnR consumer is required to use
// (§5: "within a pass, cells are iterated in arena allocation order").
func (m *Module) LiveCells(f func(CellID, *Cell) bool) {
	for i := 0; i < m.Cells.Len(); i++ {
		c := m.Cells.GetPtr(i)
		if c.Dead {
			continue
		}
		if !f(CellID(i), c) {
			return
		}
	}
}

// ResolveSignalRef validates a SignalRef against the §3 invariants (slice
// high >= low and in range, whole-signal id live), recursing into concat
// parts. Returns an error describing the first violation found, or nil.
func (m *Module) ResolveSignalRef(ref SignalRef, types *TypeDb) error {
	switch ref.Tag {
	case RefSignal:
		return m.checkSignalLive(ref.Signal)
	case RefSlice:
		if err := m.checkSignalLive(ref.Signal); err != nil {
			return err
		}
		if ref.High < ref.Low {
			return errInvariant("slice high < low")
		}
		sig := m.Signals.Get(int(ref.Signal))
		width := types.BitWidth(sig.Type)
		if ref.High >= width {
			return errInvariant("slice high out of range")
		}
		return nil
	case RefConcat:
		for _, p := range ref.Concat {
			if err := m.ResolveSignalRef(p, types); err != nil {
				return err
			}
		}
		return nil
	case RefConst:
		return nil
	default:
		return errInvariant("unknown signal ref tag")
	}
}

func (m *Module) checkSignalLive(id SignalID) error {
	if int(id) < 0 || int(id) >= m.Signals.Len() {
		return errInvariant("signal ref points to a non-existent signal")
	}
	return nil
}

type invariantError string

func (e invariantError) Error() string { return string(e) }

func errInvariant(msg string) error { return invariantError(msg) }

// Package synth implements synthesis: lowering an elaborated ir.Module
// into a gate-level netlist, optimizing it to a fixpoint with dead-code
// elimination and common-subexpression elimination, technology-mapping
// the survivors onto a concrete arch.Architecture, and counting the
// resulting resource usage (§4.H).
package synth

import (
	"github.com/Stateford/aion-sub002/intern"
	"github.com/Stateford/aion-sub002/ir"
)

// Netlist is the mutable working representation for one module during
// synthesis: it wraps the module's signal/cell arenas directly (ir.Cell
// already carries the Dead flag DCE needs, so there is no separate
// tombstone set to keep in sync) and adds the temp-name counters and
// fanout/driver indices every optimization pass consults.
type Netlist struct {
	Module   *ir.Module
	Types    *ir.TypeDb
	Interner *intern.Interner

	nextTmp  uint32
	nextCell uint32
}

// NewNetlist builds a Netlist over mod, which it mutates in place.
func NewNetlist(mod *ir.Module, types *ir.TypeDb, in *intern.Interner) *Netlist {
	return &Netlist{
		Module:   mod,
		Types:    types,
		Interner: in,
		nextCell: uint32(mod.Cells.Len()),
	}
}

// AddSignal allocates a new synthesis-internal signal, named
// `_synth_<base>_<n>` the way the teacher's add_signal generates
// collision-free temporaries.
func (n *Netlist) AddSignal(base string, ty ir.TypeID, kind ir.SignalKind) ir.SignalID {
	name := synthName(base, n.nextTmp)
	n.nextTmp++
	return ir.SignalID(n.Module.Signals.Alloc(ir.Signal{
		Name: n.Interner.Intern(name),
		Type: ty,
		Kind: kind,
	}))
}

// AddCell allocates a new synthesis-internal cell.
func (n *Netlist) AddCell(base string, kind ir.CellKind, conns []ir.Connection) ir.CellID {
	name := synthName(base, n.nextCell)
	n.nextCell++
	return ir.CellID(n.Module.Cells.Alloc(ir.Cell{
		Name:        n.Interner.Intern(name),
		Kind:        kind,
		Connections: conns,
	}))
}

func synthName(base string, n uint32) string {
	return "_synth_" + base + "_" + itoa(n)
}

func itoa(n uint32) string {
	if n == 0 {
		return "0"
	}
	var buf [10]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	return string(buf[i:])
}

// IsDead reports whether id has been marked dead.
func (n *Netlist) IsDead(id ir.CellID) bool {
	return n.Module.Cells.Get(int(id)).Dead
}

// RemoveCell marks id dead; see ir.Cell.Dead (§4.H: "DCE sets this instead
// of removing the cell").
func (n *Netlist) RemoveCell(id ir.CellID) {
	c := n.Module.Cells.GetPtr(int(id))
	c.Dead = true
}

// FanoutMap returns, for every live signal, the live cells that read it as
// an input/inout connection.
func (n *Netlist) FanoutMap() map[ir.SignalID][]ir.CellID {
	m := make(map[ir.SignalID][]ir.CellID)
	n.Module.LiveCells(func(id ir.CellID, c *ir.Cell) bool {
		for _, sig := range c.InputSignals() {
			m[sig] = append(m[sig], id)
		}
		return true
	})
	return m
}

// DriverMap returns, for every live signal driven by a live cell, that
// cell's ID.
func (n *Netlist) DriverMap() map[ir.SignalID]ir.CellID {
	m := make(map[ir.SignalID]ir.CellID)
	n.Module.LiveCells(func(id ir.CellID, c *ir.Cell) bool {
		for _, sig := range c.OutputSignals() {
			m[sig] = id
		}
		return true
	})
	return m
}

// LiveCellCount returns the number of non-dead cells, used by tests to
// assert DCE/CSE actually shrank the netlist.
func (n *Netlist) LiveCellCount() int {
	count := 0
	n.Module.LiveCells(func(ir.CellID, *ir.Cell) bool { count++; return true })
	return count
}

// SignalWidth returns the packed bit width of sig's type, defaulting to 1
// for non-vector types (matches ir.TypeDb.BitWidth's contract).
func (n *Netlist) SignalWidth(sig ir.SignalID) uint32 {
	s := n.Module.Signals.Get(int(sig))
	w := n.Types.BitWidth(s.Type)
	if w == 0 {
		return 1
	}
	return w
}

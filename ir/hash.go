package ir

import (
	"encoding/binary"
	"hash/fnv"
	"sort"
)

// ComputeContentHash digests a module's structure: name, sorted param
// list, port list, signals in arena order, cells in arena order, and
// assignments (§4.D). Equal structure yields an equal hash; the digest is
// a plain value (not cryptographic) so it is portable and cheap to compute
// on every elaboration call.
func ComputeContentHash(m *Module) ContentHash {
	h := fnv.New64a()
	var buf [8]byte

	writeU64 := func(v uint64) {
		binary.LittleEndian.PutUint64(buf[:], v)
		h.Write(buf[:])
	}
	writeU32 := func(v uint32) { writeU64(uint64(v)) }
	writeBool := func(v bool) {
		if v {
			writeU64(1)
		} else {
			writeU64(0)
		}
	}
	writeStr := func(s string) {
		h.Write([]byte(s))
		writeU64(uint64(len(s)))
	}
	writeConst := func(c ConstValue) {
		writeU32(uint32(c.Tag))
		writeStr(c.String())
	}

	writeU64(uint64(m.Name))

	params := make([]Param, len(m.Params))
	copy(params, m.Params)
	sort.Slice(params, func(i, j int) bool { return params[i].Name < params[j].Name })
	for _, p := range params {
		writeU64(uint64(p.Name))
		writeConst(p.Default)
	}

	for _, p := range m.Ports {
		writeU64(uint64(p.Name))
		writeU32(uint32(p.Direction))
		writeU64(uint64(p.Type))
		writeU64(uint64(p.Signal))
	}

	for i := 0; i < m.Signals.Len(); i++ {
		s := m.Signals.Get(i)
		writeU64(uint64(s.Name))
		writeU64(uint64(s.Type))
		writeU32(uint32(s.Kind))
		if s.Init != nil {
			writeBool(true)
			writeConst(*s.Init)
		} else {
			writeBool(false)
		}
	}

	for i := 0; i < m.Cells.Len(); i++ {
		c := m.Cells.Get(i)
		writeU64(uint64(c.Name))
		writeCellKind(writeU32, writeU64, writeStr, c.Kind)
		for _, conn := range c.Connections {
			writeU64(uint64(conn.PortName))
			writeU32(uint32(conn.Direction))
			writeSignalRef(writeU32, writeU64, conn.Signal)
		}
	}

	for _, a := range m.Assignments {
		writeSignalRef(writeU32, writeU64, a.LHS)
		writeSignalRef(writeU32, writeU64, a.RHS)
	}

	return ContentHash(h.Sum64())
}

func writeCellKind(writeU32 func(uint32), writeU64 func(uint64), writeStr func(string), k CellKind) {
	writeU32(uint32(k.Tag))
	writeU32(k.Width)
	writeU32(boolToU32(k.HasReset))
	writeU32(boolToU32(k.HasEnable))
	writeU64(uint64(k.ModuleRef))
	writeU64(uint64(k.ConstValue))
	writeU32(k.LutInputs)
	writeU64(k.LutInit)
	writeStr(k.HardConfig)
}

func writeSignalRef(writeU32 func(uint32), writeU64 func(uint64), ref SignalRef) {
	writeU32(uint32(ref.Tag))
	switch ref.Tag {
	case RefSignal:
		writeU64(uint64(ref.Signal))
	case RefSlice:
		writeU64(uint64(ref.Signal))
		writeU32(ref.High)
		writeU32(ref.Low)
	case RefConcat:
		writeU32(uint32(len(ref.Concat)))
		for _, p := range ref.Concat {
			writeSignalRef(writeU32, writeU64, p)
		}
	case RefConst:
		writeU64(uint64(ref.Const))
	}
}

func boolToU32(b bool) uint32 {
	if b {
		return 1
	}
	return 0
}

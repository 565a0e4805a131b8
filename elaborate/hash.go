package elaborate

import (
	"encoding/binary"
	"hash/fnv"
	"math"
	"sort"

	"github.com/Stateford/aion-sub002/ir"
)

// hashParamBindings digests a parameter-binding set for the elaboration
// memoization cache (§4.F): the same module name instantiated twice with
// equal parameter values must produce the same ModuleID, so the hash is
// computed over bindings sorted by name, with each value's tag mixed in
// ahead of its payload (mirrors the original's hash_params, which sorts by
// interned name and feeds the discriminant before the value into the
// hasher so that, e.g., Int(0) and Bool(false) never collide).
func hashParamBindings(bindings map[string]ir.ConstValue) uint64 {
	names := make([]string, 0, len(bindings))
	for n := range bindings {
		names = append(names, n)
	}
	sort.Strings(names)

	h := fnv.New64a()
	var buf [8]byte
	writeU64 := func(v uint64) {
		binary.LittleEndian.PutUint64(buf[:], v)
		h.Write(buf[:])
	}

	for _, n := range names {
		h.Write([]byte(n))
		v := bindings[n]
		writeU64(uint64(v.Tag))
		switch v.Tag {
		case ir.ConstInt:
			writeU64(uint64(v.Int))
		case ir.ConstReal:
			writeU64(math.Float64bits(v.Real))
		case ir.ConstBool:
			if v.Bool {
				writeU64(1)
			} else {
				writeU64(0)
			}
		case ir.ConstStr:
			h.Write([]byte(v.Str))
		case ir.ConstVec:
			h.Write([]byte(v.Vec.String()))
		}
	}
	return h.Sum64()
}

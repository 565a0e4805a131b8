package ir_test

import (
	"testing"

	"github.com/Stateford/aion-sub002/ir"
)

func TestTypeDbIdempotence(t *testing.T) {
	db := ir.NewTypeDb()
	a := db.Intern(ir.BitVec(8, false))
	b := db.Intern(ir.BitVec(8, false))
	if a != b {
		t.Fatalf("interning the same type twice gave different ids: %d vs %d", a, b)
	}
	if got := db.Get(a); got != ir.BitVec(8, false) {
		t.Fatalf("Get(a) = %v", got)
	}
	c := db.Intern(ir.BitVec(16, false))
	if c == a {
		t.Fatal("distinct widths must not collide")
	}
}

func TestBitWidth(t *testing.T) {
	db := ir.NewTypeDb()
	bit := db.Intern(ir.Bit)
	vec := db.Intern(ir.BitVec(12, true))
	integer := db.Intern(ir.Integer)

	if db.BitWidth(bit) != 1 {
		t.Fatalf("Bit width = %d", db.BitWidth(bit))
	}
	if db.BitWidth(vec) != 12 {
		t.Fatalf("BitVec width = %d", db.BitWidth(vec))
	}
	if db.BitWidth(integer) != 0 {
		t.Fatalf("Integer width = %d, want 0", db.BitWidth(integer))
	}
}

func buildSimpleModule(name ir.NameID) *ir.Module {
	m := &ir.Module{Name: name}
	return m
}

func TestContentHashStableAndStructureSensitive(t *testing.T) {
	m1 := buildSimpleModule(42)
	m1.Signals.Alloc(ir.Signal{Name: 1, Type: 0, Kind: ir.SignalWire})
	h1a := ir.ComputeContentHash(m1)
	h1b := ir.ComputeContentHash(m1)
	if h1a != h1b {
		t.Fatal("content hash must be stable across repeated calls")
	}

	m2 := buildSimpleModule(42)
	m2.Signals.Alloc(ir.Signal{Name: 2, Type: 0, Kind: ir.SignalWire})
	h2 := ir.ComputeContentHash(m2)
	if h1a == h2 {
		t.Fatal("different signal names must produce different content hashes")
	}
}

func TestArenaAllocationOrderIsIterationOrder(t *testing.T) {
	var a ir.Arena[int]
	ids := []int{a.Alloc(10), a.Alloc(20), a.Alloc(30)}
	var seen []int
	a.All(func(i int, v int) bool {
		seen = append(seen, v)
		return true
	})
	if len(seen) != 3 || seen[0] != 10 || seen[1] != 20 || seen[2] != 30 {
		t.Fatalf("iteration order = %v", seen)
	}
	for i, id := range ids {
		if id != i {
			t.Fatalf("alloc index %d != %d", id, i)
		}
	}
}

func TestResolveSignalRefInvariants(t *testing.T) {
	m := &ir.Module{}
	db := ir.NewTypeDb()
	vecTy := db.Intern(ir.BitVec(8, false))
	sigID := ir.SignalID(m.Signals.Alloc(ir.Signal{Type: vecTy, Kind: ir.SignalWire}))

	if err := m.ResolveSignalRef(ir.SliceSignal(sigID, 7, 0), db); err != nil {
		t.Fatalf("valid slice rejected: %v", err)
	}
	if err := m.ResolveSignalRef(ir.SliceSignal(sigID, 8, 0), db); err == nil {
		t.Fatal("out-of-range slice high should be rejected")
	}
	if err := m.ResolveSignalRef(ir.SliceSignal(sigID, 1, 3), db); err == nil {
		t.Fatal("high < low should be rejected")
	}
}

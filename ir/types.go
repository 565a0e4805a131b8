package ir

import "fmt"

// TypeID is a stable handle into a TypeDb, returned by Intern.
type TypeID int

// Type is a structural hardware type. Two Types are equal iff their kind
// and payload match (Go's == on the struct is sufficient since every field
// is comparable).
type Type struct {
	Kind   TypeKind
	Width  uint32 // BitVec only
	Signed bool   // BitVec only
}

// TypeKind enumerates the structural type kinds (§3, §6).
type TypeKind int

const (
	KindBit TypeKind = iota
	KindBitVec
	KindInteger
	KindReal
	KindBool
	KindStr
	KindError
)

// Bit, Integer, Real, Bool, Str, and Err are the canonical scalar types;
// BitVec types are constructed with width/sign and interned separately.
var (
	Bit     = Type{Kind: KindBit}
	Integer = Type{Kind: KindInteger}
	Real    = Type{Kind: KindReal}
	Bool    = Type{Kind: KindBool}
	Str     = Type{Kind: KindStr}
	Err     = Type{Kind: KindError}
)

// BitVec returns a vector type of the given width and signedness.
func BitVec(width uint32, signed bool) Type {
	return Type{Kind: KindBitVec, Width: width, Signed: signed}
}

func (t Type) String() string {
	switch t.Kind {
	case KindBit:
		return "bit"
	case KindBitVec:
		if t.Signed {
			return fmt.Sprintf("signed[%d]", t.Width)
		}
		return fmt.Sprintf("bitvec[%d]", t.Width)
	case KindInteger:
		return "integer"
	case KindReal:
		return "real"
	case KindBool:
		return "bool"
	case KindStr:
		return "string"
	default:
		return "error"
	}
}

// TypeDb is a hash-consed store of structural types: Intern is pure and
// idempotent, and Get resolves a TypeID back to its Type (§3, testable
// property 3).
type TypeDb struct {
	byValue map[Type]TypeID
	types   []Type
}

// NewTypeDb returns an empty type database.
func NewTypeDb() *TypeDb {
	return &TypeDb{byValue: make(map[Type]TypeID)}
}

// Intern returns the stable TypeID for t, allocating one on first sight.
func (db *TypeDb) Intern(t Type) TypeID {
	if id, ok := db.byValue[t]; ok {
		return id
	}
	db.types = append(db.types, t)
	id := TypeID(len(db.types) - 1)
	db.byValue[t] = id
	return id
}

// Get resolves id to its Type. Panics if id is unknown — a caller holding
// an id from this TypeDb should never see a miss.
func (db *TypeDb) Get(id TypeID) Type {
	if int(id) < 0 || int(id) >= len(db.types) {
		panic(fmt.Sprintf("ir: unknown TypeID %d", id))
	}
	return db.types[id]
}

// BitWidth returns the packed width of a vector-like type: 1 for Bit,
// Width for BitVec, 0 for non-vector types (Integer/Real/Bool/Str/Error).
func (db *TypeDb) BitWidth(id TypeID) uint32 {
	t := db.Get(id)
	switch t.Kind {
	case KindBit:
		return 1
	case KindBitVec:
		return t.Width
	default:
		return 0
	}
}

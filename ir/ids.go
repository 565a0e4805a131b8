package ir

// ModuleID indexes a Design's module arena.
type ModuleID int

// SignalID indexes a Module's signal arena.
type SignalID int

// CellID indexes a Module's cell arena.
type CellID int

// PortID indexes a Module's port list.
type PortID int

// ProcessID indexes a Module's process arena.
type ProcessID int

// InvalidID is returned by lookups that fail; every typed ID above is an
// alias of int, so -1 is a safe universal "not found" sentinel.
const InvalidID = -1

// Package source implements the file database and byte-span type used by
// every IR and AST node in the compiler.
package source

import "sync"

// FileID identifies one source file within a compile's SourceMap.
type FileID uint32

// Span is a (file, byte_start, byte_end) triple used throughout the IR and
// AST for diagnostic reporting. DummySpan is permitted for synthetic nodes
// that have no corresponding source text.
type Span struct {
	File  FileID
	Start uint32
	End   uint32
}

// DummySpan is the sentinel span for synthetic nodes (e.g. cells inserted
// by tech mapping with no direct source origin).
var DummySpan = Span{File: 0, Start: 0, End: 0}

// IsDummy reports whether s is the sentinel span.
func (s Span) IsDummy() bool { return s == DummySpan }

type fileEntry struct {
	path string
	text string
}

// Map is a process-scoped, append-only registry of source files. It is
// constructed once per compile and then treated as read-only (§5).
type Map struct {
	mu    sync.RWMutex
	files []fileEntry
}

// NewMap returns an empty source map. FileID 0 is reserved for the dummy
// span and is never assigned to a real file.
func NewMap() *Map {
	return &Map{files: []fileEntry{{path: "<dummy>"}}}
}

// AddFile registers a file's path and text, returning its FileID.
func (m *Map) AddFile(path, text string) FileID {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.files = append(m.files, fileEntry{path: path, text: text})
	return FileID(len(m.files) - 1)
}

// Path returns the path of the given file, or "" if unknown.
func (m *Map) Path(id FileID) string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if int(id) >= len(m.files) {
		return ""
	}
	return m.files[id].path
}

// Text returns the source text of the given span's file, sliced to the
// span's byte range. Returns "" if the file or range is invalid.
func (m *Map) Text(s Span) string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if int(s.File) >= len(m.files) {
		return ""
	}
	text := m.files[s.File].text
	if int(s.End) > len(text) || s.Start > s.End {
		return ""
	}
	return text[s.Start:s.End]
}

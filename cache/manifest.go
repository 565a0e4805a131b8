package cache

// FileCache is one manifest entry: the file's content hash, the cache key
// of its cached AST artifact, and the module names it defines.
type FileCache struct {
	ContentHash    ContentHash `json:"content_hash"`
	ASTCacheKey    string      `json:"ast_cache_key"`
	ModulesDefined []string    `json:"modules_defined"`
}

// Manifest is the persisted `manifest.json`: a mapping source_path →
// FileCache plus the compiler version that produced it (§3, §6).
type Manifest struct {
	CompilerVersion string               `json:"compiler_version"`
	Files           map[string]FileCache `json:"files"`
}

// NewManifest returns an empty manifest stamped with the given compiler
// version.
func NewManifest(version string) *Manifest {
	return &Manifest{CompilerVersion: version, Files: make(map[string]FileCache)}
}

// IsCompatible reports whether this manifest was produced by the given
// compiler version; a version mismatch is treated as a cache miss, never
// an error (§4.E, §7 fail-safe policy).
func (m *Manifest) IsCompatible(version string) bool {
	return m.CompilerVersion == version
}

// ChangeSet categorizes a set of candidate source files against the
// manifest (§4.E).
type ChangeSet struct {
	New       []string
	Modified  []string
	Unchanged []string
	Deleted   []string
}

// DetectChanges compares freshly computed hashes against the manifest.
// Paths present in hashes but not in the manifest are New; present in
// both but with a different hash are Modified; present in both with an
// equal hash are Unchanged; present in the manifest but absent from
// hashes are Deleted.
func (m *Manifest) DetectChanges(hashes map[string]ContentHash) ChangeSet {
	var cs ChangeSet
	seen := make(map[string]bool, len(hashes))
	for path, h := range hashes {
		seen[path] = true
		fc, ok := m.Files[path]
		switch {
		case !ok:
			cs.New = append(cs.New, path)
		case fc.ContentHash != h:
			cs.Modified = append(cs.Modified, path)
		default:
			cs.Unchanged = append(cs.Unchanged, path)
		}
	}
	for path := range m.Files {
		if !seen[path] {
			cs.Deleted = append(cs.Deleted, path)
		}
	}
	return cs
}

package cache

import (
	"encoding/json"
	"os"
	"path/filepath"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/rs/xid"
)

const manifestFile = "manifest.json"

// hotCacheSize bounds the in-process LRU kept in front of the file store,
// so a compile that revisits the same module's AST many times within one
// process run (recursive elaboration touching a popular leaf module) does
// not pay a file read + JSON decode on every hit.
const hotCacheSize = 256

// Cache is the driver-owned, reopened-per-invocation incremental build
// cache (§3, §4.E). It is not safe for concurrent use from multiple
// goroutines without external synchronization, matching the "owned by the
// driver" lifecycle in §3/§5.
type Cache struct {
	dir             string
	compilerVersion string
	manifest        *Manifest
	store           *artifactStore
	hot             *lru.Cache[string, []byte]
}

// LoadOrCreate loads an existing manifest compatible with version, or
// starts a fresh one. Any failure to read or parse the existing manifest,
// or a version mismatch, is treated as "start fresh" — never an error
// (§4.E, §7).
func LoadOrCreate(dir, version string) *Cache {
	manifest := loadManifest(dir)
	if manifest == nil || !manifest.IsCompatible(version) {
		manifest = NewManifest(version)
	}
	hot, _ := lru.New[string, []byte](hotCacheSize)
	return &Cache{
		dir:             dir,
		compilerVersion: version,
		manifest:        manifest,
		store:           newArtifactStore(dir),
		hot:             hot,
	}
}

func loadManifest(dir string) *Manifest {
	raw, err := os.ReadFile(filepath.Join(dir, manifestFile))
	if err != nil {
		return nil
	}
	var m Manifest
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil
	}
	if m.Files == nil {
		m.Files = make(map[string]FileCache)
	}
	return &m
}

// DetectChanges hashes the given file contents and compares them against
// the manifest.
func (c *Cache) DetectChanges(fileContents map[string][]byte) ChangeSet {
	hashes := make(map[string]ContentHash, len(fileContents))
	for path, data := range fileContents {
		hashes[path] = HashBytes(data)
	}
	return c.manifest.DetectChanges(hashes)
}

// StoreAST writes one versioned, checksummed artifact file for path's AST
// bytes, updates the manifest entry, and returns the cache key.
func (c *Cache) StoreAST(path string, contentHash ContentHash, astBytes []byte, modulesDefined []string) (string, error) {
	if contentHash == "" {
		// A brand-new synthetic AST fragment (e.g. elaboration expanding a
		// generate block) has no natural content hash yet; xid supplies a
		// process-unique opaque key instead, mirroring the teacher's
		// transitive use of rs/xid for trace identifiers.
		contentHash = ContentHash(xid.New().String())
	}
	key, err := c.store.write(astSubdir, astExt, contentHash, astBytes, c.compilerVersion)
	if err != nil {
		return "", err
	}
	c.manifest.Files[path] = FileCache{
		ContentHash:    contentHash,
		ASTCacheKey:    key,
		ModulesDefined: modulesDefined,
	}
	c.hot.Add(key, astBytes)
	return key, nil
}

// LoadAST returns the cached AST bytes for path, or ok=false if the file
// is unknown to the manifest or the artifact fails validation (§4.E, §7).
func (c *Cache) LoadAST(path string) (data []byte, ok bool) {
	fc, known := c.manifest.Files[path]
	if !known {
		return nil, false
	}
	if data, hit := c.hot.Get(fc.ASTCacheKey); hit {
		return data, true
	}
	data, ok = c.store.read(astSubdir, fc.ASTCacheKey, astExt, c.compilerVersion)
	if ok {
		c.hot.Add(fc.ASTCacheKey, data)
	}
	return data, ok
}

// Save persists the manifest to disk.
func (c *Cache) Save() error {
	if err := os.MkdirAll(c.dir, 0o755); err != nil {
		return err
	}
	raw, err := json.MarshalIndent(c.manifest, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(c.dir, manifestFile), raw, 0o644)
}

// RemoveDeleted drops manifest entries for files no longer present.
func (c *Cache) RemoveDeleted(paths []string) {
	for _, p := range paths {
		delete(c.manifest.Files, p)
	}
}

// Manifest returns the current in-memory manifest (read-only use expected).
func (c *Cache) Manifest() *Manifest { return c.manifest }

// GC removes artifact files not referenced by the current manifest.
// Returns the number of files removed.
func (c *Cache) GC() int {
	live := make(map[string]bool, len(c.manifest.Files))
	for _, fc := range c.manifest.Files {
		live[fc.ASTCacheKey] = true
	}
	return c.store.gc(astSubdir, astExt, live)
}

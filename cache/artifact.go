package cache

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

const (
	artifactMagic         = "AION"
	artifactFormatVersion = uint32(1)
	astSubdir             = "ast"
	astExt                = "ast"
)

// artifactHeader is framed ahead of every cached artifact's payload:
// `[4-byte LE header length][serialized header][payload]` (§4.E).
type artifactHeader struct {
	Magic          string      `json:"magic"`
	FormatVersion  uint32      `json:"format_version"`
	CompilerVer    string      `json:"compiler_version"`
	PayloadHash    ContentHash `json:"payload_hash"`
}

// artifactStore reads and writes framed, content-addressed files under
// <cacheDir>/<subdir>/<key>.<ext>.
type artifactStore struct {
	cacheDir string
}

func newArtifactStore(cacheDir string) *artifactStore {
	return &artifactStore{cacheDir: cacheDir}
}

func (s *artifactStore) path(subdir, key, ext string) string {
	return filepath.Join(s.cacheDir, subdir, fmt.Sprintf("%s.%s", key, ext))
}

func (s *artifactStore) write(subdir, ext string, hash ContentHash, data []byte, compilerVersion string) (string, error) {
	dir := filepath.Join(s.cacheDir, subdir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("cache: creating %s: %w", dir, err)
	}

	key := string(hash)
	header := artifactHeader{
		Magic:         artifactMagic,
		FormatVersion: artifactFormatVersion,
		CompilerVer:   compilerVersion,
		PayloadHash:   HashBytes(data),
	}
	headerBytes, err := json.Marshal(header)
	if err != nil {
		return "", fmt.Errorf("cache: encoding header: %w", err)
	}

	var out bytes.Buffer
	var lenBuf [4]byte
	binary.LittleEndian.PutUint32(lenBuf[:], uint32(len(headerBytes)))
	out.Write(lenBuf[:])
	out.Write(headerBytes)
	out.Write(data)

	path := s.path(subdir, key, ext)
	if err := os.WriteFile(path, out.Bytes(), 0o644); err != nil {
		return "", fmt.Errorf("cache: writing %s: %w", path, err)
	}
	return key, nil
}

// read returns the artifact payload, or ok=false on any failure: missing
// file, short read, wrong magic, wrong format version, or checksum
// mismatch. This function never returns an error — every failure mode is
// a cache miss (§7 fail-safe policy).
func (s *artifactStore) read(subdir, key, ext, compilerVersion string) (data []byte, ok bool) {
	raw, err := os.ReadFile(s.path(subdir, key, ext))
	if err != nil {
		return nil, false
	}
	if len(raw) < 4 {
		return nil, false
	}
	headerLen := binary.LittleEndian.Uint32(raw[:4])
	if uint64(len(raw)) < 4+uint64(headerLen) {
		return nil, false
	}
	headerBytes := raw[4 : 4+headerLen]
	payload := raw[4+headerLen:]

	var header artifactHeader
	if err := json.Unmarshal(headerBytes, &header); err != nil {
		return nil, false
	}
	if header.Magic != artifactMagic {
		return nil, false
	}
	if header.FormatVersion != artifactFormatVersion {
		return nil, false
	}
	if header.CompilerVer != compilerVersion {
		return nil, false
	}
	if header.PayloadHash != HashBytes(payload) {
		return nil, false
	}
	return payload, true
}

// gc removes any artifact file under subdir whose key is not in liveKeys.
// Returns the number of files removed.
func (s *artifactStore) gc(subdir, ext string, liveKeys map[string]bool) int {
	dir := filepath.Join(s.cacheDir, subdir)
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0
	}
	removed := 0
	suffix := "." + ext
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if len(name) <= len(suffix) || name[len(name)-len(suffix):] != suffix {
			continue
		}
		key := name[:len(name)-len(suffix)]
		if !liveKeys[key] {
			if os.Remove(filepath.Join(dir, name)) == nil {
				removed++
			}
		}
	}
	return removed
}

package driver

import (
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/vmihailenco/msgpack/v5"

	"cminus/internal/diag"
	"cminus/internal/project"
	"cminus/internal/source"
)

// Current schema version - increment when DiskPayload format changes
const diskCacheSchemaVersion uint16 = 1

// DiskCache stores the diagnostics of clean analysis runs on disk, keyed by
// the tree file's content and the options that affect the output.
// Thread-safe for concurrent access.
type DiskCache struct {
	mu  sync.RWMutex
	dir string
}

// DiskPayload is one cached run. Positions are stored without their file;
// every diagnostic of a run points into the run's single source file.
type DiskPayload struct {
	Schema      uint16
	Source      string
	Diagnostics []CachedDiagnostic
	Dropped     int
}

type CachedDiagnostic struct {
	Severity uint8
	Code     uint16
	Line     uint32
	Col      uint32
	Message  string
	Notes    []CachedNote `msgpack:",omitempty"`
}

type CachedNote struct {
	Line uint32
	Col  uint32
	Msg  string
}

// OpenDiskCache opens (creating if needed) the cache for app under
// $XDG_CACHE_HOME or ~/.cache.
func OpenDiskCache(app string) (*DiskCache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	return NewDiskCache(filepath.Join(base, app))
}

// NewDiskCache opens a cache rooted at dir.
func NewDiskCache(dir string) (*DiskCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DiskCache{dir: dir}, nil
}

func (c *DiskCache) pathFor(key project.Digest) string {
	hexKey := hex.EncodeToString(key[:])
	return filepath.Join(c.dir, "runs", hexKey[:2], hexKey+".mp")
}

// Put serializes and writes a payload to the disk cache.
func (c *DiskCache) Put(key project.Digest, payload *DiskPayload) (err error) {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	tmp := f.Name()
	defer func() {
		if err != nil {
			_ = f.Close()
			_ = os.Remove(tmp)
		}
	}()

	payload.Schema = diskCacheSchemaVersion
	if err = msgpack.NewEncoder(f).Encode(payload); err != nil {
		return err
	}
	if err = f.Close(); err != nil {
		return err
	}
	// atomic replace
	return os.Rename(tmp, p)
}

// Get reads a payload. A missing entry or one from another schema is a
// miss, not an error.
func (c *DiskCache) Get(key project.Digest, out *DiskPayload) (bool, error) {
	if c == nil {
		return false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	defer f.Close()

	if err := msgpack.NewDecoder(f).Decode(out); err != nil {
		return false, fmt.Errorf("decode cache entry: %w", err)
	}
	if out.Schema != diskCacheSchemaVersion {
		return false, nil
	}
	return true, nil
}

// DropAll removes every cached entry.
func (c *DiskCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return os.RemoveAll(filepath.Join(c.dir, "runs"))
}

// Dir is the cache root.
func (c *DiskCache) Dir() string {
	if c == nil {
		return ""
	}
	return c.dir
}

func bagToPayload(bag *diag.Bag, sourcePath string) *DiskPayload {
	items := bag.Items()
	payload := &DiskPayload{
		Source:      sourcePath,
		Diagnostics: make([]CachedDiagnostic, len(items)),
		Dropped:     bag.Dropped(),
	}
	for i, d := range items {
		cd := CachedDiagnostic{
			Severity: uint8(d.Severity),
			Code:     uint16(d.Code),
			Line:     d.Primary.Line,
			Col:      d.Primary.Col,
			Message:  d.Message,
		}
		for _, n := range d.Notes {
			cd.Notes = append(cd.Notes, CachedNote{Line: n.Pos.Line, Col: n.Pos.Col, Msg: n.Msg})
		}
		payload.Diagnostics[i] = cd
	}
	return payload
}

// payloadToBag restores the cached diagnostics into bag, attaching their
// positions to file.
func payloadToBag(payload *DiskPayload, file source.FileID, bag *diag.Bag) {
	for _, cd := range payload.Diagnostics {
		d := diag.Diagnostic{
			Severity: diag.Severity(cd.Severity),
			Code:     diag.Code(cd.Code),
			Message:  cd.Message,
			Primary:  source.Pos{File: file, Line: cd.Line, Col: cd.Col},
		}
		for _, n := range cd.Notes {
			d.Notes = append(d.Notes, diag.Note{Pos: source.Pos{File: file, Line: n.Line, Col: n.Col}, Msg: n.Msg})
		}
		bag.Add(d)
	}
	bag.NoteDropped(payload.Dropped)
}

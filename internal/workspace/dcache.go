package workspace

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"errors"
	"os"
	"path/filepath"
	"sync"

	"github.com/vmihailenco/msgpack/v5"

	"bracketlint/internal/diag"
	"bracketlint/internal/lint"
	"bracketlint/internal/source"
)

// Bump when the payload layout changes; old entries then miss instead of
// decoding garbage.
const diskCacheSchemaVersion uint16 = 2

// DiskCache persists finalized unit diagnostics across sessions, keyed by
// content hash and configuration digest. Spans are stored as plain byte
// offsets and rebound to the session's FileID on lookup, since file ids
// are not stable across processes.
type DiskCache struct {
	mu  sync.RWMutex
	dir string
}

type cachedNote struct {
	Start uint32
	End   uint32
	Msg   string
}

type cachedDiag struct {
	Severity uint8
	Code     string
	Message  string
	Start    uint32
	End      uint32
	Notes    []cachedNote
}

type cachedImport struct {
	Path  string
	Start uint32
	End   uint32
}

type cachedExport struct {
	Name  string
	Start uint32
	End   uint32
}

// DiskPayload is the msgpack image of one analyzed unit.
type DiskPayload struct {
	Schema      uint16
	Broken      bool
	Diagnostics []cachedDiag
	Imports     []cachedImport
	Exports     []cachedExport
	Uses        []string
}

// CachedUnit is the analysis outcome of one unit as stored in and
// restored from the cache. It must carry everything the program phase
// consumes, since a cache hit skips the parse that would rebuild it.
type CachedUnit struct {
	Diagnostics []diag.Diagnostic
	Imports     []lint.ImportEdge
	Exports     []lint.ExportedDecl
	Uses        []string
	Broken      bool
}

// OpenDiskCache initializes the cache under the standard user cache
// location (XDG_CACHE_HOME or ~/.cache).
func OpenDiskCache(app string) (*DiskCache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	dir := filepath.Join(base, app)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DiskCache{dir: dir}, nil
}

// OpenDiskCacheAt is OpenDiskCache rooted at an explicit directory; tests
// use it to stay inside t.TempDir.
func OpenDiskCacheAt(dir string) (*DiskCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DiskCache{dir: dir}, nil
}

func cacheKey(file *source.File, configDigest [sha256.Size]byte) [sha256.Size]byte {
	h := sha256.New()
	var schema [2]byte
	binary.LittleEndian.PutUint16(schema[:], diskCacheSchemaVersion)
	h.Write(schema[:])
	h.Write(file.Hash[:])
	h.Write(configDigest[:])

	var out [sha256.Size]byte
	h.Sum(out[:0])
	return out
}

func (c *DiskCache) pathFor(key [sha256.Size]byte) string {
	return filepath.Join(c.dir, "units", hex.EncodeToString(key[:])+".mp")
}

// Lookup returns the cached analysis outcome for a unit, spans rebound
// to the current file id. A miss or an unreadable entry is reported as
// absent; the caller re-analyzes either way.
func (c *DiskCache) Lookup(file *source.File, configDigest [sha256.Size]byte) (CachedUnit, bool) {
	if c == nil {
		return CachedUnit{}, false
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(cacheKey(file, configDigest)))
	if err != nil {
		return CachedUnit{}, false
	}
	defer f.Close() // #nosec G307 -- read-only handle

	var payload DiskPayload
	if err := msgpack.NewDecoder(f).Decode(&payload); err != nil {
		return CachedUnit{}, false
	}
	if payload.Schema != diskCacheSchemaVersion {
		return CachedUnit{}, false
	}

	unit := CachedUnit{Broken: payload.Broken, Uses: payload.Uses}
	for _, cd := range payload.Diagnostics {
		d := diag.Diagnostic{
			Severity: diag.Severity(cd.Severity),
			Code:     diag.Code(cd.Code),
			Message:  cd.Message,
			Primary:  source.Span{File: file.ID, Start: cd.Start, End: cd.End},
		}
		for _, n := range cd.Notes {
			d.Notes = append(d.Notes, diag.Note{
				Span: source.Span{File: file.ID, Start: n.Start, End: n.End},
				Msg:  n.Msg,
			})
		}
		unit.Diagnostics = append(unit.Diagnostics, d)
	}
	for _, ci := range payload.Imports {
		unit.Imports = append(unit.Imports, lint.ImportEdge{
			Path: ci.Path,
			Span: source.Span{File: file.ID, Start: ci.Start, End: ci.End},
		})
	}
	for _, ce := range payload.Exports {
		unit.Exports = append(unit.Exports, lint.ExportedDecl{
			Name: ce.Name,
			Span: source.Span{File: file.ID, Start: ce.Start, End: ce.End},
		})
	}
	return unit, true
}

// Store writes the unit's analysis outcome atomically: encode into a temp
// file, then rename into place.
func (c *DiskCache) Store(file *source.File, configDigest [sha256.Size]byte, unit CachedUnit) error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	payload := DiskPayload{
		Schema: diskCacheSchemaVersion,
		Broken: unit.Broken,
		Uses:   unit.Uses,
	}
	for _, d := range unit.Diagnostics {
		cd := cachedDiag{
			Severity: uint8(d.Severity),
			Code:     string(d.Code),
			Message:  d.Message,
			Start:    d.Primary.Start,
			End:      d.Primary.End,
		}
		for _, n := range d.Notes {
			// Notes referencing other files would rebind to the wrong id;
			// every built-in rule keeps notes unit-local.
			cd.Notes = append(cd.Notes, cachedNote{Start: n.Span.Start, End: n.Span.End, Msg: n.Msg})
		}
		payload.Diagnostics = append(payload.Diagnostics, cd)
	}
	for _, e := range unit.Imports {
		payload.Imports = append(payload.Imports, cachedImport{Path: e.Path, Start: e.Span.Start, End: e.Span.End})
	}
	for _, e := range unit.Exports {
		payload.Exports = append(payload.Exports, cachedExport{Name: e.Name, Start: e.Span.Start, End: e.Span.End})
	}

	p := c.pathFor(cacheKey(file, configDigest))
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	if err := msgpack.NewEncoder(f).Encode(&payload); err != nil {
		f.Close()
		os.Remove(f.Name())
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return err
	}
	return os.Rename(f.Name(), p)
}

// DropAll wipes every cached entry; used after schema or tool upgrades.
func (c *DiskCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	err := os.RemoveAll(filepath.Join(c.dir, "units"))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

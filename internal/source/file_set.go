package source

import (
	"crypto/sha256"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"fortio.org/safecast"
)

// FileSet owns the source files of one workspace session. Adding a file for
// a path that already exists produces a fresh FileID; the index always points
// at the latest version, so stale ids stay resolvable for old diagnostics.
type FileSet struct {
	mu      sync.RWMutex
	files   []File
	index   map[string]FileID
	baseDir string
}

func NewFileSet() *FileSet {
	return &FileSet{
		files: make([]File, 0),
		index: make(map[string]FileID),
	}
}

func NewFileSetWithBase(baseDir string) *FileSet {
	fs := NewFileSet()
	fs.baseDir = baseDir
	return fs
}

// BaseDir returns the directory relative paths are resolved against.
func (fs *FileSet) BaseDir() string {
	if fs.baseDir == "" {
		if wd, err := os.Getwd(); err == nil {
			return wd
		}
	}
	return fs.baseDir
}

// Add stores normalized content under path and returns a new FileID.
func (fs *FileSet) Add(path string, content []byte, flags FileFlags) FileID {
	hash := sha256.Sum256(content)
	lineIdx := buildLineIndex(content)
	normalized := NormalizePath(path)

	fs.mu.Lock()
	defer fs.mu.Unlock()

	n, err := safecast.Conv[uint32](len(fs.files))
	if err != nil {
		panic(fmt.Errorf("file count overflow: %w", err))
	}
	id := FileID(n)
	fs.files = append(fs.files, File{
		ID:      id,
		Path:    normalized,
		Content: content,
		LineIdx: lineIdx,
		Hash:    hash,
		Flags:   flags,
	})
	fs.index[normalized] = id
	return id
}

// Load reads path from disk, strips a UTF-8 BOM, normalizes CRLF and adds it.
func (fs *FileSet) Load(path string) (FileID, error) {
	// #nosec G304 -- path comes from the discovery collaborator
	content, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}

	content, hadBOM := removeBOM(content)
	content, hadCRLF := normalizeCRLF(content)

	flags := FileFlags(0)
	if hadBOM {
		flags |= FileHadBOM
	}
	if hadCRLF {
		flags |= FileNormalizedCRLF
	}
	return fs.Add(path, content, flags), nil
}

// AddVirtual adds an in-memory file (tests, stdin).
func (fs *FileSet) AddVirtual(name string, content []byte) FileID {
	return fs.Add(name, content, FileVirtual)
}

// Get returns file metadata for id. The returned pointer is read-only.
func (fs *FileSet) Get(id FileID) *File {
	fs.mu.RLock()
	defer fs.mu.RUnlock()
	return &fs.files[id]
}

// Latest returns the most recent FileID registered for path.
func (fs *FileSet) Latest(path string) (FileID, bool) {
	fs.mu.RLock()
	defer fs.mu.RUnlock()
	id, ok := fs.index[NormalizePath(path)]
	return id, ok
}

// Resolve converts a span into 1-based line/column positions.
func (fs *FileSet) Resolve(span Span) (start, end LineCol) {
	f := fs.Get(span.File)
	return toLineCol(f.LineIdx, span.Start), toLineCol(f.LineIdx, span.End)
}

// Line returns the 1-based line lineNum of the file, without the newline.
func (f *File) Line(lineNum uint32) string {
	if lineNum == 0 {
		return ""
	}

	lenIdx, err := safecast.Conv[uint32](len(f.LineIdx))
	if err != nil {
		panic(fmt.Errorf("line index overflow: %w", err))
	}
	lenContent, err := safecast.Conv[uint32](len(f.Content))
	if err != nil {
		panic(fmt.Errorf("content length overflow: %w", err))
	}

	var start, end uint32
	switch {
	case lineNum == 1:
		start = 0
	case (lineNum - 2) < lenIdx:
		start = f.LineIdx[lineNum-2] + 1
	default:
		return ""
	}

	if (lineNum - 1) < lenIdx {
		end = f.LineIdx[lineNum-1]
	} else {
		end = lenContent
	}

	if start >= lenContent {
		return ""
	}
	if end > lenContent {
		end = lenContent
	}
	return string(f.Content[start:end])
}

// DisplayPath formats the file path for output.
// mode: "absolute", "relative", "basename" or "auto".
func (f *File) DisplayPath(mode, baseDir string) string {
	switch mode {
	case "absolute":
		if abs, err := filepath.Abs(f.Path); err == nil {
			return filepath.ToSlash(abs)
		}
		return f.Path
	case "relative":
		if baseDir == "" {
			if wd, err := os.Getwd(); err == nil {
				baseDir = wd
			}
		}
		if rel, err := filepath.Rel(baseDir, f.Path); err == nil {
			return filepath.ToSlash(rel)
		}
		return f.Path
	case "basename":
		return filepath.Base(f.Path)
	case "auto":
		if len(f.Path) < 40 || !filepath.IsAbs(f.Path) {
			return f.Path
		}
		return filepath.Base(f.Path)
	default:
		return f.Path
	}
}

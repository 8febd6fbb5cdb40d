package level

import (
	"embed"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/lifeguide/internal/level/formats"
	"github.com/vovakirdan/lifeguide/internal/pattern"
)

//go:embed builtin
var builtinFS embed.FS

const (
	builtinLevelsDir = "builtin/levels"
	builtinBrushes   = "builtin/patterns.yaml"
)

// BuiltinLibrary returns the embedded brush library.
func BuiltinLibrary() (*pattern.Library, error) {
	data, err := builtinFS.ReadFile(builtinBrushes)
	if err != nil {
		return nil, fmt.Errorf("reading builtin brushes: %w", err)
	}
	return LoadLibrary(data, ".yaml")
}

// LoadLibrary parses a brush library file of the given extension.
func LoadLibrary(data []byte, ext string) (*pattern.Library, error) {
	pf, err := formats.DecodePatterns(data, strings.ToLower(ext))
	if err != nil {
		return nil, fmt.Errorf("parsing brushes: %w", err)
	}
	return LibraryFromFile(pf)
}

// Loader handles loading levels from a file tree.
type Loader struct {
	fsys   fs.FS
	root   string
	lib    *pattern.Library
	logger *log.Logger
}

// LoaderOption configures a Loader.
type LoaderOption func(*Loader)

// WithLibrary sets the base brush library levels resolve against.
func WithLibrary(lib *pattern.Library) LoaderOption {
	return func(l *Loader) { l.lib = lib }
}

// WithLogger sets the logger used for skipped files.
func WithLogger(logger *log.Logger) LoaderOption {
	return func(l *Loader) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// NewLoader creates a loader for the directory root.
func NewLoader(root string, opts ...LoaderOption) *Loader {
	return newLoader(os.DirFS(root), root, opts)
}

// NewFSLoader creates a loader over any file system.
func NewFSLoader(fsys fs.FS, opts ...LoaderOption) *Loader {
	return newLoader(fsys, ".", opts)
}

// Builtin returns a loader for the embedded levels.
func Builtin(opts ...LoaderOption) *Loader {
	sub, err := fs.Sub(builtinFS, builtinLevelsDir)
	if err != nil {
		panic(err) // embedded tree is fixed at build time
	}
	return newLoader(sub, "builtin", opts)
}

func newLoader(fsys fs.FS, root string, opts []LoaderOption) *Loader {
	l := &Loader{
		fsys:   fsys,
		root:   root,
		logger: log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(l)
	}
	if l.lib == nil {
		lib, err := BuiltinLibrary()
		if err != nil {
			l.logger.Warn("builtin brushes unavailable", "err", err)
			lib = pattern.NewLibrary()
		}
		l.lib = lib
	}
	return l
}

// Library returns the base brush library.
func (l *Loader) Library() *pattern.Library {
	return l.lib
}

// LoadAll recursively scans and loads all level files.
// Invalid files are logged and skipped. Returns levels sorted by ID.
func (l *Loader) LoadAll() ([]Level, error) {
	var levels []Level
	seen := make(map[string]string)

	err := fs.WalkDir(l.fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		ext := strings.ToLower(path.Ext(p))
		if !isSupportedExtension(ext) {
			return nil
		}

		lvl, err := l.LoadFile(p)
		if err != nil {
			l.logger.Warn("skipping level file", "path", p, "err", err)
			return nil
		}
		if first, dup := seen[lvl.ID]; dup {
			l.logger.Warn("duplicate level id", "id", lvl.ID, "path", p, "first", first)
			return nil
		}
		seen[lvl.ID] = p

		levels = append(levels, lvl)
		return nil
	})

	if err != nil {
		return nil, fmt.Errorf("walking directory %s: %w", l.root, err)
	}

	sort.Slice(levels, func(i, j int) bool {
		return levels[i].ID < levels[j].ID
	})

	return levels, nil
}

// LoadFile loads a single level file relative to the loader root.
func (l *Loader) LoadFile(p string) (Level, error) {
	data, err := fs.ReadFile(l.fsys, p)
	if err != nil {
		return Level{}, fmt.Errorf("reading file %s: %w", p, err)
	}

	doc, err := formats.Decode(data, strings.ToLower(path.Ext(p)))
	if err != nil {
		return Level{}, fmt.Errorf("parsing file %s: %w", p, err)
	}

	lvl, err := FromDocument(doc, l.lib)
	if err != nil {
		return Level{}, fmt.Errorf("invalid level %s: %w", p, err)
	}
	lvl.FilePath = path.Join(l.root, p)
	return lvl, nil
}

// LoadByID loads a specific level by ID.
func (l *Loader) LoadByID(id string) (Level, error) {
	levels, err := l.LoadAll()
	if err != nil {
		return Level{}, err
	}

	for _, lvl := range levels {
		if lvl.ID == id {
			return lvl, nil
		}
	}

	return Level{}, fmt.Errorf("level not found: %s", id)
}

// ListIDs returns all level IDs in sorted order.
func (l *Loader) ListIDs() ([]string, error) {
	levels, err := l.LoadAll()
	if err != nil {
		return nil, err
	}

	ids := make([]string, len(levels))
	for i, lvl := range levels {
		ids[i] = lvl.ID
	}
	return ids, nil
}

func isSupportedExtension(ext string) bool {
	for _, supported := range formats.FormatExtensions() {
		if ext == supported {
			return true
		}
	}
	return false
}

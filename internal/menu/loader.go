package menu

import (
	"fmt"
	"log/slog"
	"os"
	"path"
	"strings"
	"sync/atomic"

	billy "github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"

	"github.com/postwarps/postwarps/internal/cache"
)

// Loader parses the menu directory into compiled Definitions and installs
// them in the definition cache, keyed by file base name. The filesystem is a
// billy.Filesystem so tests load from memfs instead of touching disk.
type Loader struct {
	fs   billy.Filesystem
	dir  string
	defs *cache.Cache[*Definition]
	log  *slog.Logger

	// onReplace runs whenever install swaps a definition, so owners of
	// derived per-menu state can drop it in the same step.
	onReplace func(name string)

	loads   atomic.Int64
	reloads atomic.Int64
}

func NewLoader(fsys billy.Filesystem, dir string, defs *cache.Cache[*Definition], log *slog.Logger) *Loader {
	if log == nil {
		log = slog.Default()
	}
	return &Loader{fs: fsys, dir: dir, defs: defs, log: log}
}

// LoadAll ensures the menu directory exists, seeds any missing bundled
// defaults, then parses every recognized file. One malformed file is logged
// and skipped, never aborting the batch. Returns the number of definitions
// successfully loaded.
func (l *Loader) LoadAll() (int, error) {
	if err := l.fs.MkdirAll(l.dir, 0o755); err != nil {
		return 0, fmt.Errorf("create menu dir %s: %w", l.dir, err)
	}
	if err := l.seedDefaults(); err != nil {
		return 0, err
	}

	entries, err := l.fs.ReadDir(l.dir)
	if err != nil {
		return 0, fmt.Errorf("read menu dir %s: %w", l.dir, err)
	}

	count := 0
	for _, entry := range entries {
		if entry.IsDir() || !recognized(entry.Name()) {
			continue
		}
		name := baseName(entry.Name())
		data, err := util.ReadFile(l.fs, path.Join(l.dir, entry.Name()))
		if err != nil {
			l.log.Error("menu file unreadable, skipped", "file", entry.Name(), "err", err)
			continue
		}
		def, err := Parse(name, data, l.log)
		if err != nil {
			l.log.Error("menu file rejected, skipped", "file", entry.Name(), "err", err)
			continue
		}
		l.install(name, def)
		count++
	}
	l.loads.Add(1)
	l.log.Info("menus loaded", "count", count, "dir", l.dir)
	return count, nil
}

// ReloadAll is clear-then-load: the definition cache is emptied and fully
// repopulated, never merged with stale entries. Callers owning a derived
// cache clear it alongside (Engine.ReloadAll does).
func (l *Loader) ReloadAll() (int, error) {
	l.defs.Clear()
	l.reloads.Add(1)
	return l.LoadAll()
}

// Get returns the compiled definition for name.
func (l *Loader) Get(name string) (*Definition, bool) {
	return l.defs.Get(name)
}

// Names lists the loaded menu names, sorted.
func (l *Loader) Names() []string { return l.defs.Stats().Keys }

// Counts reports how many full loads and reloads have run.
func (l *Loader) Counts() (loads, reloads int64) {
	return l.loads.Load(), l.reloads.Load()
}

// install replaces any previous definition wholesale. Derived state keyed by
// the same name is invalidated through onReplace, so a re-parse after a file
// edit never renders against a layout index built from the old definition.
func (l *Loader) install(name string, def *Definition) {
	l.defs.Remove(name)
	if l.onReplace != nil {
		l.onReplace(name)
	}
	_, _ = l.defs.GetOrCreate(name, func() (*Definition, error) { return def, nil })
}

// seedDefaults writes each bundled file that does not exist yet. User files
// are never overwritten.
func (l *Loader) seedDefaults() error {
	for name, content := range defaultFiles {
		p := path.Join(l.dir, name)
		if _, err := l.fs.Stat(p); err == nil {
			continue
		} else if !os.IsNotExist(err) {
			return fmt.Errorf("stat %s: %w", p, err)
		}
		if err := util.WriteFile(l.fs, p, []byte(content), 0o644); err != nil {
			return fmt.Errorf("seed default %s: %w", p, err)
		}
		l.log.Info("seeded default menu", "file", name)
	}
	return nil
}

func recognized(filename string) bool {
	return strings.HasSuffix(filename, ".yml") || strings.HasSuffix(filename, ".yaml")
}

func baseName(filename string) string {
	base := path.Base(filename)
	return strings.TrimSuffix(strings.TrimSuffix(base, ".yaml"), ".yml")
}

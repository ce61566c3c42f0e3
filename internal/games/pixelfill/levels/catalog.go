package levels

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sort"
)

// Catalog is the set of playable levels: the builtin ones plus any found in
// an optional directory. A directory level replaces a builtin with the same ID.
type Catalog struct {
	levels  []Level
	Skipped []error
}

// LoadCatalog builds a catalog. An empty dir means builtin levels only; a
// dir that does not exist is ignored.
func LoadCatalog(dir string) (*Catalog, error) {
	byID := make(map[string]Level)
	cat := &Catalog{}

	builtin, skipped, err := Builtin().LoadAll()
	if err != nil {
		return nil, err
	}
	cat.Skipped = append(cat.Skipped, skipped...)
	for _, lvl := range builtin {
		byID[lvl.ID] = lvl
	}

	if dir != "" {
		if _, err := os.Stat(dir); err == nil {
			extra, skipped, err := NewLoader(dir).LoadAll()
			if err != nil {
				return nil, err
			}
			cat.Skipped = append(cat.Skipped, skipped...)
			for _, lvl := range extra {
				byID[lvl.ID] = lvl
			}
		} else if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("levels dir %s: %w", dir, err)
		}
	}

	for _, lvl := range byID {
		cat.levels = append(cat.levels, lvl)
	}
	sort.Slice(cat.levels, func(i, j int) bool {
		return cat.levels[i].ID < cat.levels[j].ID
	})
	return cat, nil
}

// All returns the levels sorted by ID.
func (c *Catalog) All() []Level {
	return append([]Level(nil), c.levels...)
}

// Len returns the number of levels.
func (c *Catalog) Len() int {
	return len(c.levels)
}

// Get returns the level with the given ID.
func (c *Catalog) Get(id string) (Level, bool) {
	for _, lvl := range c.levels {
		if lvl.ID == id {
			return lvl, true
		}
	}
	return Level{}, false
}

// Index returns the 1-based position of a level in the catalog, or 0.
// Used as the level number for progress tracking.
func (c *Catalog) Index(id string) int {
	for i, lvl := range c.levels {
		if lvl.ID == id {
			return i + 1
		}
	}
	return 0
}

// Resolve accepts either a level ID or a 1-based level number.
func (c *Catalog) Resolve(ref string) (Level, error) {
	if lvl, ok := c.Get(ref); ok {
		return lvl, nil
	}
	var n int
	if _, err := fmt.Sscanf(ref, "%d", &n); err == nil && n >= 1 && n <= len(c.levels) {
		return c.levels[n-1], nil
	}
	return Level{}, fmt.Errorf("level not found: %s", ref)
}

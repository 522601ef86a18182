package pattern

import (
	"context"
	"io/fs"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"github.com/JacopoBartoli/game-of-life/internal/core"

	"golang.org/x/sync/errgroup"
)

// Catalog lists the patterns stored below a directory. Pattern names are
// slash-separated paths relative to Dir without the ".cells" extension.
type Catalog struct {
	Dir string
}

// Names returns every pattern in the catalog, sorted.
func (c Catalog) Names() ([]string, error) {
	var names []string
	err := filepath.WalkDir(c.Dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || filepath.Ext(path) != Ext {
			return nil
		}
		rel, err := filepath.Rel(c.Dir, path)
		if err != nil {
			return err
		}
		names = append(names, strings.TrimSuffix(filepath.ToSlash(rel), Ext))
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(names)
	return names, nil
}

// Path returns the file backing the named pattern.
func (c Catalog) Path(name string) string {
	return filepath.Join(c.Dir, filepath.FromSlash(name)+Ext)
}

// Load parses the named pattern and centres it on a grid of the given size.
func (c Catalog) Load(name string, size core.Size) (*core.Grid, error) {
	return Load(c.Path(name), size)
}

// CheckResult reports whether one catalog entry loads onto a grid.
type CheckResult struct {
	Name string
	Size core.Size
	Err  error
}

// Check parses every pattern and tries to place it on a grid of the given
// size. Per-pattern failures are reported in the results; the returned error
// is only set when the catalog cannot be listed or ctx is cancelled.
func (c Catalog) Check(ctx context.Context, size core.Size) ([]CheckResult, error) {
	names, err := c.Names()
	if err != nil {
		return nil, err
	}
	results := make([]CheckResult, len(names))

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(runtime.NumCPU())
	for i, name := range names {
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			res := CheckResult{Name: name}
			p, err := ParseFile(c.Path(name))
			if err == nil {
				res.Size = p.Size()
				_, err = Place(p, size)
			}
			res.Err = err
			results[i] = res
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

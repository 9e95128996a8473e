// Package selector composes spec discovery with filtering: it walks a
// test directory, loads specification files, and returns the set of specs
// a filter selects. Malformed files are reported and skipped; one bad
// file never aborts a batch.
package selector

import (
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/flintsteel/flintsteel/internal/filter"
	"github.com/flintsteel/flintsteel/internal/index"
	"github.com/flintsteel/flintsteel/internal/spec"
)

// Selector discovers and loads test specs under a root directory.
type Selector struct {
	root string
	idx  *index.Index
	log  *slog.Logger
}

// Option configures a Selector.
type Option func(*Selector)

// WithIndex attaches a test index. When set, tag-filtered loads narrow
// the candidate files through the index instead of parsing every file.
func WithIndex(idx *index.Index) Option {
	return func(s *Selector) {
		s.idx = idx
	}
}

// WithLogger overrides the default logger.
func WithLogger(log *slog.Logger) Option {
	return func(s *Selector) {
		s.log = log
	}
}

// New creates a selector rooted at dir. The directory must exist.
func New(dir string, opts ...Option) (*Selector, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("test directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("test directory: %s is not a directory", dir)
	}

	s := &Selector{
		root: dir,
		log:  slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// SpecFiles returns the spec file paths under the root in walk order
// (lexical within each directory, so the order is stable).
func (s *Selector) SpecFiles() ([]string, error) {
	var paths []string
	err := filepath.WalkDir(s.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		switch filepath.Ext(path) {
		case ".yaml", ".yml":
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk test directory: %w", err)
	}
	return paths, nil
}

// LoadTests loads every spec the filter selects.
//
// Tag filters narrow the candidate file set through the index when one is
// attached; the filter is still applied in full to every parsed spec, so
// a stale index can only cost extra parsing or miss unindexed files,
// never produce a spec the filter rejects.
func (s *Selector) LoadTests(f filter.Filter) ([]*spec.TestSpec, error) {
	paths, err := s.candidatePaths(f)
	if err != nil {
		return nil, err
	}

	var specs []*spec.TestSpec
	for _, path := range paths {
		loaded, err := spec.Load(path)
		if err != nil {
			// Load errors are per-file: report and continue.
			s.log.Warn("skipping malformed spec file", "path", path, "error", err)
			continue
		}
		if f.Matches(loaded) {
			specs = append(specs, loaded)
		}
	}
	return specs, nil
}

// LoadTestByName loads a single spec by exact name. Returns (nil, nil)
// when no spec carries the name.
func (s *Selector) LoadTestByName(name string) (*spec.TestSpec, error) {
	specs, err := s.LoadTests(filter.ByName(name))
	if err != nil {
		return nil, err
	}
	if len(specs) == 0 {
		return nil, nil
	}
	return specs[0], nil
}

// ListNames returns every loadable spec name in collated order.
func (s *Selector) ListNames() ([]string, error) {
	specs, err := s.LoadTests(filter.All())
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(specs))
	for _, sp := range specs {
		names = append(names, sp.Name)
	}
	collate.New(language.English).SortStrings(names)
	return names, nil
}

// ListTags returns every distinct tag in collated order.
func (s *Selector) ListTags() ([]string, error) {
	specs, err := s.LoadTests(filter.All())
	if err != nil {
		return nil, err
	}
	seen := make(map[string]bool)
	var tags []string
	for _, sp := range specs {
		for _, tag := range sp.Tags {
			if !seen[tag] {
				seen[tag] = true
				tags = append(tags, tag)
			}
		}
	}
	collate.New(language.English).SortStrings(tags)
	return tags, nil
}

// IndexEntries loads every spec and returns the entries an index rebuild
// needs. Malformed files are skipped with a warning, like LoadTests.
func (s *Selector) IndexEntries() ([]index.Entry, error) {
	paths, err := s.SpecFiles()
	if err != nil {
		return nil, err
	}

	var entries []index.Entry
	for _, path := range paths {
		loaded, err := spec.Load(path)
		if err != nil {
			s.log.Warn("skipping malformed spec file", "path", path, "error", err)
			continue
		}
		entries = append(entries, index.Entry{
			Name: loaded.Name,
			Path: path,
			Tags: loaded.Tags,
		})
	}
	return entries, nil
}

// candidatePaths returns the files worth parsing for a filter.
func (s *Selector) candidatePaths(f filter.Filter) ([]string, error) {
	if s.idx != nil && len(f.Tags) > 0 {
		paths, err := s.idx.PathsByTags(f.Tags)
		if err != nil {
			return nil, fmt.Errorf("index lookup: %w", err)
		}
		return paths, nil
	}
	return s.SpecFiles()
}

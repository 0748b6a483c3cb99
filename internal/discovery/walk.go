package discovery

import (
	"io/fs"
	"os"
	"path/filepath"
)

// visitFunc receives every regular file reached by the walker.
// rel is the path relative to the walk start.
type visitFunc func(path, rel string)

// walker is a depth-limited directory walker that can follow symlinks.
// filepath.WalkDir never follows links, so link handling is done here.
//
// Linked directories are walked only after everything reachable without
// links, so a directory that is both linked and real is reported under its
// real path. A target outside the tree is reported under the first link
// that reaches it.
type walker struct {
	followLinks bool
	maxDepth    int

	// prune skips a directory (and everything below it) by name
	prune func(name string) bool

	// skip is called for every entry that could not be read or resolved
	skip func(path string, err error)

	visited map[string]bool
	pending []linkedDir
}

// linkedDir is a followed directory link waiting to be walked
type linkedDir struct {
	path  string
	rel   string
	depth int
}

func newWalker(cfg Config, prune func(string) bool, skip func(string, error)) *walker {
	return &walker{
		followLinks: cfg.FollowLinks,
		maxDepth:    cfg.MaxDepth,
		prune:       prune,
		skip:        skip,
		visited:     make(map[string]bool),
	}
}

// walk visits the files below start. Visit order is not sorted.
func (w *walker) walk(start string, visit visitFunc) {
	w.markVisited(start)
	w.walkDir(start, "", 0, visit)

	for len(w.pending) > 0 {
		link := w.pending[0]
		w.pending = w.pending[1:]
		if !w.markVisited(link.path) {
			continue
		}
		w.walkDir(link.path, link.rel, link.depth, visit)
	}
}

func (w *walker) walkDir(dir, rel string, depth int, visit visitFunc) {
	childDepth := depth + 1
	if w.maxDepth > 0 && childDepth > w.maxDepth {
		return
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		w.skip(dir, err)
		return
	}

	for _, entry := range entries {
		path := filepath.Join(dir, entry.Name())
		childRel := filepath.Join(rel, entry.Name())

		mode := entry.Type()
		linked := mode&fs.ModeSymlink != 0
		if linked {
			if !w.followLinks {
				// Unfollowed links are neither files nor directories
				continue
			}
			info, err := os.Stat(path)
			if err != nil {
				w.skip(path, err)
				continue
			}
			mode = info.Mode().Type()
		}

		switch {
		case mode.IsDir():
			if w.prune != nil && w.prune(entry.Name()) {
				continue
			}
			if linked {
				w.pending = append(w.pending, linkedDir{path: path, rel: childRel, depth: childDepth})
				continue
			}
			if w.followLinks && !w.markVisited(path) {
				continue
			}
			w.walkDir(path, childRel, childDepth, visit)
		case mode.IsRegular():
			visit(path, childRel)
		}
	}
}

// markVisited records a directory by its resolved path and reports whether
// it was seen for the first time. Only consulted when following links.
func (w *walker) markVisited(dir string) bool {
	if !w.followLinks {
		return true
	}
	resolved, err := filepath.EvalSymlinks(dir)
	if err != nil {
		resolved = dir
	}
	if abs, err := filepath.Abs(resolved); err == nil {
		resolved = abs
	}
	if w.visited[resolved] {
		return false
	}
	w.visited[resolved] = true
	return true
}

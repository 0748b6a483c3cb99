// Package discovery finds the files autodomd extracts tasks from.
//
// Two lists are produced, each sorted lexicographically by path:
//
//  1. Markdown task files: every *.md file under <root>/todo/, recursively.
//     A missing todo/ directory yields an empty list.
//  2. Source files: every file under <root> whose extension is in
//     SourceExtensions, excluding anything below an excluded directory
//     (build output, dependency caches, VCS metadata, dot-directories).
//
// Discovery is best-effort: unreadable directories, broken symlinks and
// entries that cannot be stat'ed are skipped and recorded, never returned
// as errors. Only an unusable root path fails the scan.
//
// Depth limiting counts levels below the directory the walk starts from
// (todo/ for markdown, the root for sources); direct children are depth 1.
// When symlinks are followed, directories are also de-duplicated by their
// resolved path so link cycles terminate.
package discovery

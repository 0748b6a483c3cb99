// Package parser extracts tasks from source files and markdown task files.
//
// Source files yield one task per TODO annotation found in a line comment:
//
//	// TODO(Auth): fix login bug     -> title "fix login bug", category Auth
//	# TODO: generic fix               -> title "generic fix", category General
//
// Only lines whose trimmed form starts with a comment marker for the file's
// language are considered, so TODO text inside string literals is ignored.
//
// Markdown task files yield exactly one task each. The title is the first
// level-1 heading (or the file name), the category is the first directory
// below todo/, and the priority comes from a fenced metadata block:
//
//	```yaml
//	priority: high
//	dependencies: [user-model, session-store]
//	blocks: api-gateway
//	estimated_effort: 3d
//	```
//
// Files that cannot be read are skipped individually; a bad file never
// aborts the batch.
package parser

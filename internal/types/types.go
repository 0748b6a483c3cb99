package types

import (
	"fmt"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Source records where a task was discovered
type Source string

const (
	// SourceMarkdown is a task file under the todo/ directory
	SourceMarkdown Source = "markdown"
	// SourceCode is a TODO comment in a source file
	SourceCode Source = "code"
)

// IsValid checks if the source value is valid
func (s Source) IsValid() bool {
	switch s {
	case SourceMarkdown, SourceCode:
		return true
	}
	return false
}

// Priority orders tasks within a category. Low < Medium < High.
type Priority int

const (
	PriorityLow Priority = iota
	PriorityMedium
	PriorityHigh
)

// String returns the display name of the priority
func (p Priority) String() string {
	switch p {
	case PriorityLow:
		return "Low"
	case PriorityHigh:
		return "High"
	default:
		return "Medium"
	}
}

// ParsePriority maps a free-form priority value to a Priority.
// Surrounding whitespace and quotes are ignored and matching is
// case-insensitive; anything other than "high" or "low" is Medium.
func ParsePriority(value string) Priority {
	v := strings.TrimSpace(value)
	v = strings.Trim(v, `"'`)
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "high":
		return PriorityHigh
	case "low":
		return PriorityLow
	default:
		return PriorityMedium
	}
}

// Category groups tasks in the report. The zero value is General.
type Category struct {
	name string
}

// General is the category for tasks without an explicit category
var General = Category{}

// NewCategory returns General for an empty name and a custom category otherwise
func NewCategory(name string) Category {
	return Category{name: name}
}

// CategoryFromDir builds a custom category from a directory name,
// capitalizing its first character.
func CategoryFromDir(dir string) Category {
	if dir == "" {
		return General
	}
	r, size := utf8.DecodeRuneInString(dir)
	return Category{name: string(unicode.ToUpper(r)) + dir[size:]}
}

// IsGeneral reports whether the category is General
func (c Category) IsGeneral() bool {
	return c.name == "" || c.name == "General"
}

// DisplayName returns the name used for grouping and section headings
func (c Category) DisplayName() string {
	if c.name == "" {
		return "General"
	}
	return c.name
}

// Equal compares categories by display name
func (c Category) Equal(other Category) bool {
	return c.DisplayName() == other.DisplayName()
}

func (c Category) String() string {
	return c.DisplayName()
}

// Location points at the file (and, for code tasks, the line) of a task
type Location struct {
	FilePath string `json:"file_path"`
	// Line is 1-indexed; 0 means the task is file-granular
	Line int `json:"line,omitempty"`
}

// HasLine reports whether the location carries a line number
func (l Location) HasLine() bool {
	return l.Line > 0
}

func (l Location) String() string {
	if l.HasLine() {
		return fmt.Sprintf("%s:%d", l.FilePath, l.Line)
	}
	return l.FilePath
}

// Task is one discovered unit of outstanding work.
// Tasks are built once by the parsers and never mutated afterwards.
type Task struct {
	Title    string   `json:"title"`
	Category Category `json:"-"`
	Priority Priority `json:"priority"`
	Source   Source   `json:"source"`
	Location Location `json:"location"`
}

// NewMarkdownTask creates a file-granular task from a markdown task file
func NewMarkdownTask(title string, category Category, priority Priority, filePath string) Task {
	return Task{
		Title:    title,
		Category: category,
		Priority: priority,
		Source:   SourceMarkdown,
		Location: Location{FilePath: filePath},
	}
}

// NewCodeTask creates a task from a TODO comment. Code tasks default to Medium priority.
func NewCodeTask(title string, category Category, filePath string, line int) Task {
	return Task{
		Title:    title,
		Category: category,
		Priority: PriorityMedium,
		Source:   SourceCode,
		Location: Location{FilePath: filePath, Line: line},
	}
}

// Validate checks the task invariants
func (t Task) Validate() error {
	if strings.TrimSpace(t.Title) == "" {
		return fmt.Errorf("title is required")
	}
	if t.Location.FilePath == "" {
		return fmt.Errorf("file path is required")
	}
	if !t.Source.IsValid() {
		return fmt.Errorf("invalid source: %s", t.Source)
	}
	if t.Source == SourceCode && !t.Location.HasLine() {
		return fmt.Errorf("code task %q must carry a line number", t.Title)
	}
	if t.Source == SourceMarkdown && t.Location.HasLine() {
		return fmt.Errorf("markdown task %q must not carry a line number", t.Title)
	}
	return nil
}

// String renders the task as a markdown checklist item
func (t Task) String() string {
	return fmt.Sprintf("- [ ] %s (%s)", t.Title, t.Location)
}

// Collection is an ordered sequence of tasks
type Collection struct {
	tasks []Task
}

// NewCollection creates a collection holding the given tasks
func NewCollection(tasks ...Task) *Collection {
	c := &Collection{}
	c.Extend(tasks)
	return c
}

// Add appends a task
func (c *Collection) Add(task Task) {
	c.tasks = append(c.tasks, task)
}

// Extend appends several tasks
func (c *Collection) Extend(tasks []Task) {
	c.tasks = append(c.tasks, tasks...)
}

// All returns a copy of the tasks in their current order
func (c *Collection) All() []Task {
	out := make([]Task, len(c.tasks))
	copy(out, c.tasks)
	return out
}

// Len returns the number of tasks
func (c *Collection) Len() int {
	return len(c.tasks)
}

// IsEmpty reports whether the collection holds no tasks
func (c *Collection) IsEmpty() bool {
	return len(c.tasks) == 0
}

// Sort orders tasks by file path, then line number (file-granular tasks
// first), then title. The sort is stable, so sorting twice is a no-op.
func (c *Collection) Sort() {
	sort.SliceStable(c.tasks, func(i, j int) bool {
		return lessByLocation(c.tasks[i], c.tasks[j])
	})
}

func lessByLocation(a, b Task) bool {
	if a.Location.FilePath != b.Location.FilePath {
		return a.Location.FilePath < b.Location.FilePath
	}
	if a.Location.Line != b.Location.Line {
		return a.Location.Line < b.Location.Line
	}
	return a.Title < b.Title
}

// CountByCategory returns the number of tasks per category display name
func (c *Collection) CountByCategory() map[string]int {
	counts := make(map[string]int)
	for _, t := range c.tasks {
		counts[t.Category.DisplayName()]++
	}
	return counts
}

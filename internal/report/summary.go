package report

import (
	"fmt"
	"sort"
	"strings"

	"github.com/autodomd/autodomd/internal/types"
)

// CategoryCount is the number of tasks in one category
type CategoryCount struct {
	Category string
	Count    int
}

// Summarize counts tasks per category, ordered by category name
func Summarize(tasks []types.Task) []CategoryCount {
	counts := types.NewCollection(tasks...).CountByCategory()
	out := make([]CategoryCount, 0, len(counts))
	for name, n := range counts {
		out = append(out, CategoryCount{Category: name, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Category < out[j].Category
	})
	return out
}

// RenderSummary renders the per-category counts as a markdown section
func RenderSummary(tasks []types.Task) string {
	var b strings.Builder
	b.WriteString("## Task Summary\n\n")
	counts := Summarize(tasks)
	if len(counts) == 0 {
		b.WriteString(noTasksNotice)
		return b.String()
	}
	for _, c := range counts {
		fmt.Fprintf(&b, "- **%s**: %d tasks\n", c.Category, c.Count)
	}
	return b.String()
}

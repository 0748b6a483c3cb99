package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/fatih/color"

	"github.com/autodomd/autodomd/internal/report"
)

var (
	green = color.New(color.FgGreen).SprintFunc()
	cyan  = color.New(color.FgCyan).SprintFunc()
	gray  = color.New(color.FgHiBlack).SprintFunc()
	red   = color.New(color.FgRed).SprintFunc()

	categoryStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39")).
			Width(16)

	countStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245"))
)

// renderCategoryCounts lists one category per line with its task count
func renderCategoryCounts(counts []report.CategoryCount) string {
	var sb strings.Builder
	for _, c := range counts {
		sb.WriteString("  ")
		sb.WriteString(categoryStyle.Render(c.Category))
		sb.WriteString(countStyle.Render(fmt.Sprintf("%d task(s)", c.Count)))
		sb.WriteString("\n")
	}
	return sb.String()
}

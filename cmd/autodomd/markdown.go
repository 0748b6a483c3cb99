package main

import "github.com/charmbracelet/glamour"

// renderMarkdown renders markdown for the terminal. A width of 0 keeps
// glamour's default wrapping.
func renderMarkdown(content string, width int) (string, error) {
	opts := []glamour.TermRendererOption{glamour.WithAutoStyle()}
	if width > 0 {
		opts = append(opts, glamour.WithWordWrap(width))
	}
	renderer, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return "", err
	}
	return renderer.Render(content)
}

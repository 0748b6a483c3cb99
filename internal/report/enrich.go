package report

import (
	"strings"
	"unicode/utf8"

	"github.com/djherbis/times"

	"github.com/autodomd/autodomd/internal/parser"
)

const (
	overviewHeading  = "## Overview"
	descriptionLimit = 100
	timestampLayout  = "2006-01-02 15:04"
)

type fileContent struct {
	text string
	ok   bool
}

// readContent re-reads a markdown task file for enrichment. Failures only
// drop the enrichment lines.
func (g *Generator) readContent(path string) fileContent {
	text, err := parser.ReadText(path)
	if err != nil {
		g.logger.Debug("enrichment unavailable", "path", path, "err", err)
		return fileContent{}
	}
	return fileContent{text: text, ok: true}
}

func extractMetadata(content string) *parser.Metadata {
	block, ok := parser.ExtractMetadataBlock(content)
	if !ok {
		return nil
	}
	return parser.ParseMetadata(block)
}

// BriefDescription returns the first sentence of the "## Overview" section,
// or its first 100 characters followed by "..." when no sentence ends early.
// The section runs to the next level-2 heading or the end of the file.
func BriefDescription(content string) (string, bool) {
	lines := strings.Split(content, "\n")
	start := -1
	for i, line := range lines {
		if strings.TrimSpace(strings.TrimSuffix(line, "\r")) == overviewHeading {
			start = i + 1
			break
		}
	}
	if start < 0 {
		return "", false
	}

	var section []string
	for _, line := range lines[start:] {
		if strings.HasPrefix(strings.TrimSpace(line), "## ") {
			break
		}
		section = append(section, line)
	}
	text := strings.Join(strings.Fields(strings.Join(section, " ")), " ")
	if text == "" {
		return "", false
	}

	if dot := strings.IndexByte(text, '.'); dot >= 0 && dot < descriptionLimit {
		return text[:dot+1], true
	}
	if utf8.RuneCountInString(text) > descriptionLimit {
		return string([]rune(text)[:descriptionLimit]) + "...", true
	}
	return text, true
}

// metadataLine renders dependencies, blocked tasks, effort and the inferred
// foundation as one compact line
func metadataLine(meta *parser.Metadata, foundation string) string {
	var parts []string
	if meta != nil {
		if len(meta.Dependencies) > 0 {
			parts = append(parts, "Depends on: "+strings.Join(meta.Dependencies, ", "))
		}
		if len(meta.Blocks) > 0 {
			parts = append(parts, "Blocks: "+strings.Join(meta.Blocks, ", "))
		}
		if meta.EstimatedEffort != "" {
			parts = append(parts, "Effort: "+meta.EstimatedEffort)
		}
	}
	if foundation != "" {
		parts = append(parts, "Foundation: "+foundation)
	}
	return strings.Join(parts, " | ")
}

// timestampLine renders the file's creation and modification times in local
// time. Creation is omitted on filesystems that do not record it.
func timestampLine(path string) (string, bool) {
	ts, err := times.Stat(path)
	if err != nil {
		return "", false
	}
	modified := "Modified: " + ts.ModTime().Local().Format(timestampLayout)
	if ts.HasBirthTime() {
		return "Created: " + ts.BirthTime().Local().Format(timestampLayout) + " | " + modified, true
	}
	return modified, true
}

// StripTimestamps removes the Created/Modified enrichment lines from a
// rendered body
func StripTimestamps(body string) string {
	lines := strings.SplitAfter(body, "\n")
	kept := lines[:0]
	for _, line := range lines {
		if strings.HasPrefix(line, "  Created: ") || strings.HasPrefix(line, "  Modified: ") {
			continue
		}
		kept = append(kept, line)
	}
	return strings.Join(kept, "")
}

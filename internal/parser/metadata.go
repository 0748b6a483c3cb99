package parser

import (
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	fence     = "```"
	yamlFence = "```yaml"
)

// Metadata is the content of a task file's fenced metadata block
type Metadata struct {
	Priority        string
	Dependencies    []string
	Blocks          []string
	EstimatedEffort string

	// HasPriority is set when the block contains a priority line
	HasPriority bool
}

// IsEmpty reports whether no annotation field is set
func (m *Metadata) IsEmpty() bool {
	return m == nil || (len(m.Dependencies) == 0 && len(m.Blocks) == 0 && m.EstimatedEffort == "")
}

// ExtractMetadataBlock returns the content of the first fenced metadata block.
//
// A block opens on a line that is exactly "```yaml", or on a bare "```" line
// whose next line contains "priority:" or "dependencies:". It closes on the
// next bare "```" line. An empty block is returned as ("", true); a block
// that is never closed is ignored.
func ExtractMetadataBlock(content string) (string, bool) {
	lines := splitLines(content)
	start := -1
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if start >= 0 {
			if trimmed == fence {
				return strings.Join(lines[start:i], "\n"), true
			}
			continue
		}
		if trimmed == yamlFence || (trimmed == fence && opensMetadata(lines, i)) {
			start = i + 1
		}
	}
	return "", false
}

func opensMetadata(lines []string, i int) bool {
	if i+1 >= len(lines) {
		return false
	}
	next := lines[i+1]
	return strings.Contains(next, "priority:") || strings.Contains(next, "dependencies:")
}

// ParseMetadata decodes a metadata block. Well-formed YAML is decoded with
// yaml.v3; anything else falls back to a line scanner that understands
// `key: value` pairs, `[a, b]` lists and `- item` entries. The priority always
// comes from the first line starting with "priority:".
func ParseMetadata(block string) *Metadata {
	meta, err := decodeYAML(block)
	if err != nil {
		meta = scanLines(block)
	}
	meta.Priority, meta.HasPriority = priorityLine(block)
	return meta
}

// rawMetadata mirrors Metadata with node-level fields so scalars and lists
// are both accepted for every key.
type rawMetadata struct {
	Dependencies    yaml.Node `yaml:"dependencies"`
	Blocks          yaml.Node `yaml:"blocks"`
	EstimatedEffort yaml.Node `yaml:"estimated_effort"`
}

func decodeYAML(block string) (*Metadata, error) {
	var raw rawMetadata
	if err := yaml.Unmarshal([]byte(block), &raw); err != nil {
		return nil, err
	}
	return &Metadata{
		Dependencies:    nodeList(&raw.Dependencies),
		Blocks:          nodeList(&raw.Blocks),
		EstimatedEffort: nodeScalar(&raw.EstimatedEffort),
	}, nil
}

func nodeScalar(n *yaml.Node) string {
	if n.Kind != yaml.ScalarNode || n.Tag == "!!null" {
		return ""
	}
	return strings.TrimSpace(n.Value)
}

func nodeList(n *yaml.Node) []string {
	switch n.Kind {
	case yaml.SequenceNode:
		var items []string
		for _, item := range n.Content {
			if v := nodeScalar(item); v != "" {
				items = append(items, v)
			}
		}
		return items
	case yaml.ScalarNode:
		return splitList(nodeScalar(n))
	}
	return nil
}

// splitList splits an inline list such as "a, b" or "[a, 'b']"
func splitList(value string) []string {
	value = strings.TrimSpace(value)
	value = strings.TrimPrefix(value, "[")
	value = strings.TrimSuffix(value, "]")
	var items []string
	for _, part := range strings.Split(value, ",") {
		if item := unquote(part); item != "" {
			items = append(items, item)
		}
	}
	return items
}

func unquote(s string) string {
	return strings.TrimSpace(strings.Trim(strings.TrimSpace(s), `"'`))
}

// priorityLine finds the first line starting with "priority:"
func priorityLine(block string) (string, bool) {
	for _, line := range splitLines(block) {
		trimmed := strings.TrimSpace(line)
		if value, ok := strings.CutPrefix(trimmed, "priority:"); ok {
			return unquote(value), true
		}
	}
	return "", false
}

func scanLines(block string) *Metadata {
	meta := &Metadata{}
	var listKey string
	for _, line := range splitLines(block) {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		if item, ok := strings.CutPrefix(trimmed, "- "); ok {
			switch listKey {
			case "dependencies":
				meta.Dependencies = append(meta.Dependencies, splitList(item)...)
			case "blocks":
				meta.Blocks = append(meta.Blocks, splitList(item)...)
			}
			continue
		}
		key, value, ok := strings.Cut(trimmed, ":")
		if !ok {
			continue
		}
		listKey = strings.ToLower(strings.TrimSpace(key))
		switch listKey {
		case "dependencies":
			meta.Dependencies = append(meta.Dependencies, splitList(value)...)
		case "blocks":
			meta.Blocks = append(meta.Blocks, splitList(value)...)
		case "estimated_effort":
			meta.EstimatedEffort = unquote(value)
		}
	}
	return meta
}

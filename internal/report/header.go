package report

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"golang.org/x/mod/semver"

	"github.com/autodomd/autodomd/internal/types"
)

const (
	// FormatVersion identifies the report layout. The major version changes
	// whenever existing reports can no longer be compared byte for byte.
	FormatVersion = "v1.0.0"
	// GeneratorName is recorded in the header of every report
	GeneratorName = "autodomd"

	headerPrefix = "<!-- " + GeneratorName + " "
	headerRule   = "\n---\n"
)

var headerPattern = regexp.MustCompile(`^<!-- (\S+) format=(\S+) generator=(\S+) generated=(\S+) tasks=(\d+) command=(".*") -->$`)

// Header is the provenance line at the top of a generated report
type Header struct {
	Format    string
	Generator string
	Generated time.Time
	Tasks     int
	Command   string
}

// Render returns the header block, including the title and the rule that
// separates it from the body
func (h Header) Render() string {
	var b strings.Builder
	fmt.Fprintf(&b, "<!-- %s format=%s generator=%s generated=%s tasks=%d command=%s -->\n",
		GeneratorName, h.Format, h.Generator, h.Generated.UTC().Format(time.RFC3339), h.Tasks, strconv.Quote(h.Command))
	b.WriteString("# Project Tasks\n")
	fmt.Fprintf(&b, "*Auto-generated by %s. Do not edit. Regenerate with `%s`.*\n\n", GeneratorName, h.Command)
	b.WriteString("---\n\n")
	return b.String()
}

// Compatible reports whether the header's format shares the current major version
func (h Header) Compatible() bool {
	return semver.IsValid(h.Format) && semver.Major(h.Format) == semver.Major(FormatVersion)
}

// ParseHeader reads the provenance line from the start of a report
func ParseHeader(content string) (Header, error) {
	first, _, _ := strings.Cut(content, "\n")
	first = strings.TrimSuffix(first, "\r")
	if !strings.HasPrefix(first, headerPrefix) {
		return Header{}, types.InvalidFormatError("", errors.New("missing report header"))
	}
	m := headerPattern.FindStringSubmatch(first)
	if m == nil {
		return Header{}, types.InvalidFormatError("", errors.New("malformed report header"))
	}

	generated, err := time.Parse(time.RFC3339, m[4])
	if err != nil {
		return Header{}, types.InvalidFormatError("", fmt.Errorf("bad generated timestamp: %w", err))
	}
	tasks, err := strconv.Atoi(m[5])
	if err != nil {
		return Header{}, types.InvalidFormatError("", fmt.Errorf("bad task count: %w", err))
	}
	command, err := strconv.Unquote(m[6])
	if err != nil {
		return Header{}, types.InvalidFormatError("", fmt.Errorf("bad command: %w", err))
	}

	return Header{
		Format:    m[2],
		Generator: m[3],
		Generated: generated,
		Tasks:     tasks,
		Command:   command,
	}, nil
}

// StripHeader returns the report body. Content without a header is returned unchanged.
func StripHeader(content string) string {
	if !strings.HasPrefix(content, headerPrefix) {
		return content
	}
	idx := strings.Index(content, headerRule)
	if idx < 0 {
		return content
	}
	return strings.TrimPrefix(content[idx+len(headerRule):], "\n")
}

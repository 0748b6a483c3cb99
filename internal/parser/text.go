package parser

import (
	"errors"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/autodomd/autodomd/internal/types"
)

const byteOrderMark = "\uFEFF"

// ReadText reads a whole file as UTF-8 text. Binary or otherwise invalid
// UTF-8 content is reported as an I/O error so callers skip the file.
func ReadText(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", types.IOError(path, err)
	}
	if !utf8.Valid(data) {
		return "", types.IOError(path, errors.New("file is not valid UTF-8"))
	}
	return strings.TrimPrefix(string(data), byteOrderMark), nil
}

// splitLines splits on "\n" and drops a trailing "\r" from each line.
// A trailing newline does not produce an empty last line.
func splitLines(content string) []string {
	if content == "" {
		return nil
	}
	lines := strings.Split(content, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}

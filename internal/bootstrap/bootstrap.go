// Package bootstrap prepares a project for autodomd: the todo/ directory,
// sample task files and the default configuration file.
package bootstrap

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/autodomd/autodomd/internal/config"
	"github.com/autodomd/autodomd/internal/discovery"
	"github.com/autodomd/autodomd/internal/types"
)

const sampleTask = "# Implement User Authentication System\n\n" +
	"```yaml\n" +
	"priority: high\n" +
	"dependencies: []\n" +
	"blocks: [user-profile]\n" +
	"estimated_effort: 3d\n" +
	"```\n\n" +
	"## Overview\n" +
	"Add registration and login so that users can keep their data private. " +
	"This is a sample task created by autodomd init.\n\n" +
	"## Requirements\n" +
	"- User registration with email validation\n" +
	"- Secure password hashing\n" +
	"- Token-based authentication\n" +
	"- Password reset\n\n" +
	"## Implementation Notes\n" +
	"- Rate limit the authentication endpoints\n" +
	"- Return the same error for unknown users and wrong passwords\n"

const sampleSource = `"""Sample module showing TODO comments picked up by autodomd."""


def login(username, password):
    # TODO(Auth): Validate credentials against the user store
    return False


def render_menu():
    # TODO(UI): Add colored output for better user experience
    # TODO: Remove once the real menu lands
    return []
`

// Samples lists the files created by Init, relative to the project root
var Samples = []struct {
	Path    string
	Content string
}{
	{filepath.Join(discovery.TodoDirName, "sample-task.md"), sampleTask},
	{filepath.Join(discovery.TodoDirName, "sample.py"), sampleSource},
}

// Result describes what Init created
type Result struct {
	TodoDir            string
	TodoDirCreated     bool
	SampleFilesCreated []string
	ConfigFile         string
	ConfigCreated      bool
}

// Init creates root/todo, the sample files when createSamples is set, and
// the default configuration file. Existing files are never overwritten.
func Init(root string, createSamples bool) (*Result, error) {
	if root == "" {
		root = "."
	}
	result := &Result{TodoDir: filepath.Join(root, discovery.TodoDirName)}

	info, err := os.Stat(result.TodoDir)
	switch {
	case err == nil && !info.IsDir():
		return nil, types.IOError(result.TodoDir, errors.New("exists and is not a directory"))
	case errors.Is(err, os.ErrNotExist):
		if err := os.MkdirAll(result.TodoDir, 0755); err != nil {
			return nil, types.IOError(result.TodoDir, err)
		}
		result.TodoDirCreated = true
	case err != nil:
		return nil, types.IOError(result.TodoDir, err)
	}

	if createSamples {
		for _, sample := range Samples {
			path := filepath.Join(root, sample.Path)
			created, err := writeIfMissing(path, sample.Content)
			if err != nil {
				return nil, types.IOError(path, err)
			}
			if created {
				result.SampleFilesCreated = append(result.SampleFilesCreated, path)
			}
		}
	}

	result.ConfigFile = filepath.Join(root, config.FileName)
	created, err := config.WriteDefaultFile(result.ConfigFile)
	if err != nil {
		return nil, types.IOError(result.ConfigFile, err)
	}
	result.ConfigCreated = created

	return result, nil
}

func writeIfMissing(path, content string) (bool, error) {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			return false, nil
		}
		return false, err
	}
	if _, err := f.WriteString(content); err != nil {
		_ = f.Close()
		return false, err
	}
	return true, f.Close()
}

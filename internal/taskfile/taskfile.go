// Package taskfile loads task definitions for the cmdq command line tool.
//
// A task file is a YAML document listing commands and their priorities:
//
//	tasks:
//	  - command: "make build"
//	    priority: 10
//	  - command: "make test"
//	    priority: 5
//
// The taskfile layer only parses; admission rules (priority bounds, empty
// commands) are enforced by the queue when entries are added.
package taskfile

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Entry is one task definition from a task file.
type Entry struct {
	Command  string `yaml:"command"`
	Priority int    `yaml:"priority"`
}

// File is the top-level task file structure.
type File struct {
	Tasks []Entry `yaml:"tasks"`
}

// Load reads and parses the task file at path.
func Load(path string) ([]Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read task file: %w", err)
	}
	entries, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return entries, nil
}

// Parse parses task file contents.
func Parse(data []byte) ([]Entry, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse task file: %w", err)
	}
	if len(f.Tasks) == 0 {
		return nil, fmt.Errorf("task file defines no tasks")
	}
	return f.Tasks, nil
}

package models

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// Case identifies one runnable case discovered under the suite root.
// A case is opaque to the harness: it is a directory containing an entry
// script, and the harness only observes the script's exit code.
// Cases are immutable once discovered.
type Case struct {
	// ID is the case directory relative to the suite root, slash-separated.
	// It is the stable, human-readable name used in all reporting.
	ID string

	// Dir is the absolute path to the case directory. The case process runs
	// with Dir as its working directory so it sees its inputs locally.
	Dir string

	// Script is the absolute path to the case's entry script.
	Script string

	// Descriptor holds the optional typed metadata from the case's
	// case.yaml, parsed once at discovery time.
	Descriptor Descriptor
}

// Command returns the argv the harness executes for this case.
// The script is invoked through bash relative to the case directory,
// matching how suite authors run cases by hand.
func (c Case) Command() []string {
	return []string{"bash", "./" + filepath.Base(c.Script)}
}

// CommandLine renders the full invocation for dry-run output, including the
// working-directory change the executor performs.
func (c Case) CommandLine() string {
	return fmt.Sprintf("cd %s && %s", c.Dir, strings.Join(c.Command(), " "))
}

// Descriptor represents the optional case.yaml metadata file placed beside a
// case's entry script.
//
// YAML structure:
//
//	name: "WUE transient heat flux"
//	description: "Verifies coupled heat flux against the analytic solution"
//	tags: [verification, coupling]
//	disabled: false
type Descriptor struct {
	// Name is an optional human-readable title for listings.
	Name string `yaml:"name,omitempty"`

	// Description is an optional one-line summary.
	Description string `yaml:"description,omitempty"`

	// Tags are optional free-form labels.
	Tags []string `yaml:"tags,omitempty"`

	// Disabled excludes the case from execution plans while keeping it
	// visible in verbose listings.
	Disabled bool `yaml:"disabled,omitempty"`
}

// Validate checks descriptor field constraints.
func (d Descriptor) Validate() error {
	for _, tag := range d.Tags {
		if strings.TrimSpace(tag) == "" {
			return errors.New("descriptor tags must not be empty")
		}
	}
	return nil
}

// Plan is the resolved execution plan: the effective worker count and the
// ordered cases to run. Jobs is always in [1, len(Cases)] for a non-empty
// plan. A Plan is constructed once per invocation and never mutated.
type Plan struct {
	Jobs  int
	Cases []Case
}

// Package discovery locates runnable cases under a suite root.
//
// A case exists wherever a directory directly contains the configured entry
// script. The reserved template directory is excluded even when it carries a
// valid entry script. Discovery is read-only and deterministic: identical
// directory trees always yield the identical ordered case list.
package discovery

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/harrison/caserun/internal/models"
)

// DescriptorFile is the optional per-case metadata file name.
const DescriptorFile = "case.yaml"

// Discover walks root and returns every case whose entry script named
// entrypoint exists directly in a case directory, excluding any directory
// named template. The result is sorted lexicographically by case directory
// path. Returns an error if root does not exist or is not a directory, or if
// a case descriptor is malformed.
func Discover(root, entrypoint, template string) ([]models.Case, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve suite root %s: %w", root, err)
	}

	info, err := os.Stat(absRoot)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("cases directory not found: %s", absRoot)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to stat suite root %s: %w", absRoot, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("suite root is not a directory: %s", absRoot)
	}

	var cases []models.Case

	err = filepath.Walk(absRoot, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		if info.IsDir() {
			if info.Name() == template {
				return filepath.SkipDir
			}
			return nil
		}

		if info.Name() != entrypoint {
			return nil
		}

		dir := filepath.Dir(path)
		rel, err := filepath.Rel(absRoot, dir)
		if err != nil {
			return fmt.Errorf("failed to derive case id for %s: %w", dir, err)
		}

		desc, err := loadDescriptor(dir)
		if err != nil {
			return err
		}

		cases = append(cases, models.Case{
			ID:         filepath.ToSlash(rel),
			Dir:        dir,
			Script:     path,
			Descriptor: desc,
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Walk already visits lexically, but the ordering contract is ours to
	// keep, not an accident of the traversal.
	sort.Slice(cases, func(i, j int) bool {
		return cases[i].Script < cases[j].Script
	})

	return cases, nil
}

// Runnable filters out cases whose descriptor marks them disabled,
// preserving order.
func Runnable(cases []models.Case) []models.Case {
	runnable := make([]models.Case, 0, len(cases))
	for _, c := range cases {
		if !c.Descriptor.Disabled {
			runnable = append(runnable, c)
		}
	}
	return runnable
}

// loadDescriptor parses the optional case.yaml beside a case's entry script.
// A missing file yields a zero descriptor; a malformed or invalid file is an
// error naming the offending case directory.
func loadDescriptor(dir string) (models.Descriptor, error) {
	var desc models.Descriptor

	path := filepath.Join(dir, DescriptorFile)
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return desc, nil
	}
	if err != nil {
		return desc, fmt.Errorf("failed to read descriptor %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &desc); err != nil {
		return desc, fmt.Errorf("failed to parse descriptor %s: %w", path, err)
	}
	if err := desc.Validate(); err != nil {
		return desc, fmt.Errorf("invalid descriptor %s: %w", path, err)
	}

	return desc, nil
}

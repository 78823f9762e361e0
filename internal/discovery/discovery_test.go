package discovery

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeCase creates a case directory with an entry script (and optional
// extra files) under root.
func writeCase(t *testing.T, root, rel string, extra map[string]string) {
	t.Helper()
	dir := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(dir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "run_case.sh"), []byte("#!/usr/bin/env bash\nexit 0\n"), 0755))
	for name, content := range extra {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
	}
}

func TestDiscoverFindsSortedCases(t *testing.T) {
	root := t.TempDir()
	writeCase(t, root, "verification/coupling/heatflux", nil)
	writeCase(t, root, "validation/tubbs_fire", nil)
	writeCase(t, root, "ignition_mask", nil)

	cases, err := Discover(root, "run_case.sh", "case_template")
	require.NoError(t, err)
	require.Len(t, cases, 3)

	ids := []string{cases[0].ID, cases[1].ID, cases[2].ID}
	assert.Equal(t, []string{"ignition_mask", "validation/tubbs_fire", "verification/coupling/heatflux"}, ids)

	for _, c := range cases {
		assert.True(t, filepath.IsAbs(c.Script), "script path should be absolute: %s", c.Script)
		assert.Equal(t, filepath.Dir(c.Script), c.Dir)
	}
}

func TestDiscoverExcludesTemplate(t *testing.T) {
	root := t.TempDir()
	writeCase(t, root, "real_case", nil)
	// template carries a valid entry script but must never be discovered
	writeCase(t, root, "case_template", nil)
	writeCase(t, root, "nested/case_template", nil)

	cases, err := Discover(root, "run_case.sh", "case_template")
	require.NoError(t, err)
	require.Len(t, cases, 1)
	assert.Equal(t, "real_case", cases[0].ID)
}

func TestDiscoverMissingRoot(t *testing.T) {
	_, err := Discover(filepath.Join(t.TempDir(), "missing"), "run_case.sh", "case_template")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cases directory not found")
}

func TestDiscoverRootIsFile(t *testing.T) {
	root := filepath.Join(t.TempDir(), "rootfile")
	require.NoError(t, os.WriteFile(root, []byte("x"), 0644))

	_, err := Discover(root, "run_case.sh", "case_template")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a directory")
}

func TestDiscoverEmptyRoot(t *testing.T) {
	cases, err := Discover(t.TempDir(), "run_case.sh", "case_template")
	require.NoError(t, err)
	assert.Empty(t, cases)
}

func TestDiscoverIsDeterministic(t *testing.T) {
	root := t.TempDir()
	for _, rel := range []string{"b/two", "a/one", "c/three", "a/zero"} {
		writeCase(t, root, rel, nil)
	}

	first, err := Discover(root, "run_case.sh", "case_template")
	require.NoError(t, err)
	second, err := Discover(root, "run_case.sh", "case_template")
	require.NoError(t, err)

	require.Equal(t, len(first), len(second))
	for i := range first {
		assert.Equal(t, first[i].ID, second[i].ID)
		assert.Equal(t, first[i].Script, second[i].Script)
	}
}

func TestDiscoverLoadsDescriptor(t *testing.T) {
	root := t.TempDir()
	writeCase(t, root, "with_meta", map[string]string{
		"case.yaml": "name: Heat flux\ndescription: coupled heat flux check\ntags: [verification]\n",
	})
	writeCase(t, root, "without_meta", nil)

	cases, err := Discover(root, "run_case.sh", "case_template")
	require.NoError(t, err)
	require.Len(t, cases, 2)

	assert.Equal(t, "Heat flux", cases[0].Descriptor.Name)
	assert.Equal(t, []string{"verification"}, cases[0].Descriptor.Tags)
	assert.Empty(t, cases[1].Descriptor.Name)
}

func TestDiscoverRejectsMalformedDescriptor(t *testing.T) {
	root := t.TempDir()
	writeCase(t, root, "broken", map[string]string{
		"case.yaml": "name: [unclosed\n",
	})

	_, err := Discover(root, "run_case.sh", "case_template")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse descriptor")
}

func TestDiscoverRejectsInvalidDescriptor(t *testing.T) {
	root := t.TempDir()
	writeCase(t, root, "broken", map[string]string{
		"case.yaml": "tags: [\"\"]\n",
	})

	_, err := Discover(root, "run_case.sh", "case_template")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid descriptor")
}

func TestRunnableFiltersDisabled(t *testing.T) {
	root := t.TempDir()
	writeCase(t, root, "active", nil)
	writeCase(t, root, "parked", map[string]string{
		"case.yaml": "disabled: true\n",
	})

	cases, err := Discover(root, "run_case.sh", "case_template")
	require.NoError(t, err)
	require.Len(t, cases, 2)

	runnable := Runnable(cases)
	require.Len(t, runnable, 1)
	assert.Equal(t, "active", runnable[0].ID)
}

func TestDiscoverCustomEntrypoint(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "custom")
	require.NoError(t, os.MkdirAll(dir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "run.sh"), []byte("exit 0\n"), 0755))
	writeCase(t, root, "standard", nil) // run_case.sh, should be ignored here

	cases, err := Discover(root, "run.sh", "case_template")
	require.NoError(t, err)
	require.Len(t, cases, 1)
	assert.Equal(t, "custom", cases[0].ID)
}

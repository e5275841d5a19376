package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const passingScenario = `
name: sort_then_search
description: "Name sort then binary search"
setup:
  - {name: Core, category: Part, priority: 5}
  - {name: Ammo, category: Supply, priority: 9}
  - {name: Blade, category: Weapon, priority: 2}
flow:
  - op: sort
    field: name
    expect: {case: Success, comparisons: 3}
  - op: search
    mode: binary
    key: Blade
    expect: {case: Found, index: 1}
assertions:
  - {type: sorted_by_name, value: true}
`

const failingScenario = `
name: wrong_count
description: "Expects the wrong comparison count"
setup:
  - {name: Core, category: Part, priority: 5}
  - {name: Ammo, category: Supply, priority: 9}
flow:
  - op: sort
    field: name
    expect: {case: Success, comparisons: 7}
`

func writeScenarioFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func runScenarioCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := NewRootCommand()
	out := &bytes.Buffer{}
	root.SetOut(out)
	root.SetErr(&bytes.Buffer{})
	root.SetArgs(append([]string{"scenario"}, args...))
	err := root.Execute()
	return out.String(), err
}

func TestScenarioCommandMissingArgs(t *testing.T) {
	_, err := runScenarioCommand(t)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "accepts 1 arg")
}

func TestScenarioCommandNonExistentDir(t *testing.T) {
	_, err := runScenarioCommand(t, "/nonexistent/scenarios")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "scenarios directory not found")
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestScenarioCommandEmptyDir(t *testing.T) {
	out, err := runScenarioCommand(t, t.TempDir())
	require.NoError(t, err)
	assert.Contains(t, out, "No scenarios found")
}

func TestScenarioCommandEmptyDirJSON(t *testing.T) {
	out, err := runScenarioCommand(t, t.TempDir(), "--format", "json")
	require.NoError(t, err)

	var resp CLIResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)
}

func TestScenarioCommandPassing(t *testing.T) {
	dir := t.TempDir()
	writeScenarioFile(t, dir, "sort_then_search.yaml", passingScenario)

	out, err := runScenarioCommand(t, dir)
	require.NoError(t, err)
	assert.Contains(t, out, "✓ sort_then_search")
	assert.Contains(t, out, "Scenario Summary: 1 passed, 0 failed, 1 total")
}

func TestScenarioCommandFailing(t *testing.T) {
	dir := t.TempDir()
	writeScenarioFile(t, dir, "sort_then_search.yaml", passingScenario)
	writeScenarioFile(t, dir, "wrong_count.yml", failingScenario)

	out, err := runScenarioCommand(t, dir)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "✗ wrong_count")
	assert.Contains(t, out, "expected 7 comparisons, got 1")
	assert.Contains(t, out, "Scenario Summary: 1 passed, 1 failed, 2 total")
}

func TestScenarioCommandFailingJSON(t *testing.T) {
	dir := t.TempDir()
	writeScenarioFile(t, dir, "wrong_count.yaml", failingScenario)

	out, err := runScenarioCommand(t, dir, "--format", "json")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))

	var resp struct {
		Status string         `json:"status"`
		Data   ScenarioReport `json:"data"`
		Error  *CLIError      `json:"error"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "error", resp.Status)
	assert.Equal(t, 1, resp.Data.Failed)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "E_SCENARIO_FAILED", resp.Error.Code)
}

func TestScenarioCommandLoadError(t *testing.T) {
	dir := t.TempDir()
	writeScenarioFile(t, dir, "broken.yaml", "name: broken\nflow: nope\n")

	out, err := runScenarioCommand(t, dir)
	require.Error(t, err)
	assert.Contains(t, out, "✗ broken.yaml")
	assert.Contains(t, out, "failed to load scenario")
}

func TestScenarioCommandFilter(t *testing.T) {
	dir := t.TempDir()
	writeScenarioFile(t, dir, "sort_then_search.yaml", passingScenario)
	writeScenarioFile(t, dir, "wrong_count.yaml", failingScenario)

	out, err := runScenarioCommand(t, dir, "--filter", "sort_*")
	require.NoError(t, err)
	assert.Contains(t, out, "1 total")
	assert.NotContains(t, out, "wrong_count")
}

func TestScenarioCommandGoldenUpdateAndCompare(t *testing.T) {
	dir := t.TempDir()
	writeScenarioFile(t, dir, "sort_then_search.yaml", passingScenario)

	out, err := runScenarioCommand(t, dir, "--update")
	require.NoError(t, err)
	assert.Contains(t, out, "✓ sort_then_search (golden updated)")

	goldenPath := filepath.Join(dir, "golden", "sort_then_search.golden")
	golden, err := os.ReadFile(goldenPath)
	require.NoError(t, err)
	assert.Contains(t, string(golden), `"scenario_name": "sort_then_search"`)

	_, err = runScenarioCommand(t, dir)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(goldenPath, []byte("{}\n"), 0644))
	out, err = runScenarioCommand(t, dir)
	require.Error(t, err)
	assert.Contains(t, out, "trace does not match golden file")
}

func TestScenarioCommandRepositoryScenarios(t *testing.T) {
	out, err := runScenarioCommand(t, "../scenario/testdata/scenarios")
	require.NoError(t, err, out)
	assert.Contains(t, out, "4 passed, 0 failed, 4 total")
}

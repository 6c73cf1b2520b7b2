package main

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/profile-builder/internal/extraction"
	"github.com/jonathan/profile-builder/internal/pipeline/steps"
)

// runArgs points every run path into dir
func runArgs(t *testing.T, dir string) []string {
	t.Helper()
	return []string{
		"run",
		"--in", writeFile(t, dir, "cv_text.txt", "Jane Doe\nGroup HR Director\n"),
		"--profile", filepath.Join(dir, "json_output.json"),
		"--template", writeTemplate(t, dir),
		"--slide-out", filepath.Join(dir, "profile.pptx"),
		"--sql-out", filepath.Join(dir, "sql_output.sql"),
	}
}

func TestRunCommand_AllStages(t *testing.T) {
	isolateEnv(t)
	dir := t.TempDir()
	client := &fakeClient{response: sampleProfileJSON}
	useClient(t, client, nil)

	res := executeCommand(t, runArgs(t, dir)...)
	require.NoError(t, res.err)

	assert.Equal(t, 1, client.calls)
	assert.FileExists(t, filepath.Join(dir, "json_output.json"))
	assert.FileExists(t, filepath.Join(dir, "profile.pptx"))
	assert.FileExists(t, filepath.Join(dir, "sql_output.sql"))

	assert.Contains(t, res.stdout, "Step 1/3: Extracting profile")
	assert.Contains(t, res.stdout, "Step 2/3: Rendering slide")
	assert.Contains(t, res.stdout, "Step 3/3: Generating SQL")
	assert.Contains(t, res.stderr, "✓ SQL: "+filepath.Join(dir, "sql_output.sql")+" (7 statements)")
	assert.Contains(t, res.stderr, "Action Required")
}

func TestRunCommand_FromRenderSkipsGenerator(t *testing.T) {
	isolateEnv(t)
	dir := t.TempDir()
	useClient(t, nil, errors.New("generator must not be built"))
	writeFile(t, dir, "json_output.json", sampleProfileJSON)

	args := append(runArgs(t, dir), "--from", steps.StepRenderSlide, "--executive-id", "7")
	res := executeCommand(t, args...)
	require.NoError(t, res.err)

	assert.NotContains(t, res.stdout, "Extracting profile")
	assert.FileExists(t, filepath.Join(dir, "profile.pptx"))
	assert.NotContains(t, res.stderr, "Action Required")

	data, err := os.ReadFile(filepath.Join(dir, "sql_output.sql"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "(7, ")
}

func TestRunCommand_StopsAtFirstFailure(t *testing.T) {
	isolateEnv(t)
	dir := t.TempDir()
	useClient(t, &fakeClient{response: `{"title": 5}`}, nil)

	res := executeCommand(t, runArgs(t, dir)...)
	require.Error(t, res.err)

	var validationErr *extraction.ValidationError
	assert.True(t, errors.As(res.err, &validationErr))
	assert.Contains(t, res.stderr, "✗ Pipeline failed")
	assert.NoFileExists(t, filepath.Join(dir, "json_output.json"))
	assert.NoFileExists(t, filepath.Join(dir, "profile.pptx"))
	assert.NoFileExists(t, filepath.Join(dir, "sql_output.sql"))
}

func TestRunCommand_UnknownFromStep(t *testing.T) {
	isolateEnv(t)
	dir := t.TempDir()
	useClient(t, &fakeClient{response: sampleProfileJSON}, nil)

	args := append(runArgs(t, dir), "--from", "publish_everything")
	res := executeCommand(t, args...)
	require.Error(t, res.err)
}

func TestRunCommand_FromPublishWithoutPublishFlag(t *testing.T) {
	isolateEnv(t)
	dir := t.TempDir()
	useClient(t, &fakeClient{response: sampleProfileJSON}, nil)

	args := append(runArgs(t, dir), "--from", "publish")
	var res cliResult
	require.NotPanics(t, func() { res = executeCommand(t, args...) })
	require.Error(t, res.err)
	assert.Contains(t, res.err.Error(), "nothing to run from step publish")
}

func TestRunCommand_PublishNeedsDatabase(t *testing.T) {
	isolateEnv(t)
	dir := t.TempDir()
	useClient(t, &fakeClient{response: sampleProfileJSON}, nil)

	args := append(runArgs(t, dir), "--publish")
	res := executeCommand(t, args...)
	require.Error(t, res.err)
	assert.Contains(t, res.err.Error(), "no database is configured")
}

func TestRunCommand_InvalidProviderFromConfig(t *testing.T) {
	isolateEnv(t)
	dir := t.TempDir()
	cfg := writeFile(t, dir, "config.json", `{"provider": "openai"}`)

	res := executeCommand(t, "run", "--config", cfg)
	require.Error(t, res.err)
	assert.Contains(t, res.err.Error(), "'Provider' failed 'oneof'")
}

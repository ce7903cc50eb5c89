package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vvorobets/cart-parser/internal/report"
)

// run executes the root command with a config that keeps every file the
// command writes inside a temporary directory.
func run(t *testing.T, configYAML string, args ...string) (string, string, error) {
	t.Helper()

	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.yaml")
	content := configYAML
	if !strings.Contains(content, "output_dir:") {
		content = "output_dir: " + filepath.Join(dir, "output") + "\n" + content
	}
	require.NoError(t, os.WriteFile(configPath, []byte(content), 0644))

	outputFormat = report.FormatText
	outputDir = ""
	archive = false
	verbose = false
	shortVersion = false

	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(append([]string{"--config", configPath}, args...))

	err := rootCmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestVersionCommand(t *testing.T) {
	out, _, err := run(t, "", "version")
	require.NoError(t, err)
	assert.Contains(t, out, "Cart Parser")
	assert.Contains(t, out, "Version:    "+readBuildInfo().Version)
	assert.Contains(t, out, "Commit:")
	assert.Contains(t, out, "Go Version: go")
}

func TestVersionCommand_Short(t *testing.T) {
	out, _, err := run(t, "", "version", "--short")
	require.NoError(t, err)
	assert.Equal(t, readBuildInfo().Version+"\n", out)
}

func TestReadBuildInfo_LdflagsWin(t *testing.T) {
	saved := Version
	t.Cleanup(func() { Version = saved })

	Version = "2.3.4"
	assert.Equal(t, "2.3.4", readBuildInfo().Version)
}

func TestValidateCommand_Valid(t *testing.T) {
	out, _, err := run(t, "", "validate", "../testdata/cart2.csv")
	require.NoError(t, err)
	assert.Equal(t, "No validation errors.\n", out)
}

func TestValidateCommand_Invalid(t *testing.T) {
	out, _, err := run(t, "", "validate", "../testdata/invalid.csv")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "2 error(s)")
	assert.Contains(t, out, "[row] row 0: Expected row to have 3 cells but received 2.")
	assert.Contains(t, out, `[cell] row 1, column 1: Expected cell to be a positive number but received "abcd".`)
}

func TestValidateCommand_MissingFile(t *testing.T) {
	_, _, err := run(t, "", "validate", "../testdata/missing.csv")
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestParseCommand_Text(t *testing.T) {
	out, _, err := run(t, "", "parse", "../testdata/cart2.csv")
	require.NoError(t, err)
	assert.Contains(t, out, "Consectetur adipiscing")
	assert.Contains(t, out, "Total: 33.72 USD")
}

func TestParseCommand_JSON(t *testing.T) {
	out, _, err := run(t, "report:\n  currency: EUR\n", "parse", "../testdata/cart.csv", "--format", "json")
	require.NoError(t, err)

	var got struct {
		Items    []json.RawMessage `json:"items"`
		Total    string            `json:"total"`
		Currency string            `json:"currency"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Len(t, got.Items, 5)
	assert.Equal(t, "348.32", got.Total)
	assert.Equal(t, "EUR", got.Currency)
}

func TestParseCommand_RejectsFormat(t *testing.T) {
	_, _, err := run(t, "", "parse", "../testdata/cart2.csv", "--format", "xlsx")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported --format")
}

func TestParseCommand_InvalidWritesErrorLog(t *testing.T) {
	dir := t.TempDir()
	logDir := filepath.Join(dir, "logs")

	out, _, err := run(t, "output_dir: "+logDir+"\n", "parse", "../testdata/invalid.csv")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "is invalid")
	assert.Contains(t, out, "Validation failed with 2 error(s):")

	entries, err := os.ReadDir(logDir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.True(t, strings.HasPrefix(entries[0].Name(), "error_log_invalid_"))
}

func TestParseCommand_OutputFiles(t *testing.T) {
	reportDir := filepath.Join(t.TempDir(), "reports")

	_, _, err := run(t,
		"report:\n  formats: [json, xml, xlsx]\n  file_name_format: \"{name}\"\n",
		"parse", "../testdata/cart2.csv", "--output-dir", reportDir,
	)
	require.NoError(t, err)

	for _, name := range []string{"cart2.json", "cart2.xml", "cart2.xlsx"} {
		info, err := os.Stat(filepath.Join(reportDir, name))
		require.NoError(t, err, name)
		assert.NotZero(t, info.Size(), name)
	}
}

func TestParseCommand_Archive(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "cart.csv")
	data, err := os.ReadFile("../testdata/cart2.csv")
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(src, data, 0644))

	archiveDir := filepath.Join(dir, "archive")
	_, _, err = run(t, "archive_dir: "+archiveDir+"\n", "parse", src, "--archive")
	require.NoError(t, err)

	_, err = os.Stat(src)
	assert.True(t, os.IsNotExist(err))

	matches, err := filepath.Glob(filepath.Join(archiveDir, "*", "*", "*", "cart.csv"))
	require.NoError(t, err)
	assert.Len(t, matches, 1)
}

func TestParseCommand_ArchiveNeedsDir(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "cart.csv")
	data, err := os.ReadFile("../testdata/cart2.csv")
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(src, data, 0644))

	_, _, err = run(t, "", "parse", src, "--archive")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "archive_dir")
}

func TestInvalidConfig(t *testing.T) {
	_, _, err := run(t, "log_level: loud\n", "version")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load config")
}

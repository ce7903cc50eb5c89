package utils

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateOutputFileName(t *testing.T) {
	name := GenerateOutputFileName("{name}_{timestamp}_{uuid}", ".json", map[string]string{"name": "cart"})
	assert.Regexp(t,
		regexp.MustCompile(`^cart_\d{8}_\d{6}_[0-9a-f-]{36}\.json$`),
		name,
	)

	assert.NotEqual(t,
		GenerateOutputFileName("{uuid}", "", nil),
		GenerateOutputFileName("{uuid}", "", nil),
	)
}

func TestGenerateOutputFileName_Extension(t *testing.T) {
	assert.Equal(t, "report.xml", GenerateOutputFileName("report", ".xml", nil))
	assert.Equal(t, "report.xml", GenerateOutputFileName("report.xml", ".xml", nil))
	assert.Equal(t, "report.XML", GenerateOutputFileName("report.XML", ".xml", nil))
	assert.Equal(t, "report", GenerateOutputFileName("report", "", nil))
}

func TestGenerateOutputFileName_Params(t *testing.T) {
	name := GenerateOutputFileName("{name}-{store}-{date}", ".txt", map[string]string{
		"name":  "cart",
		"store": "north",
	})
	assert.Regexp(t, regexp.MustCompile(`^cart-north-\d{8}\.txt$`), name)
}

func TestBaseName(t *testing.T) {
	assert.Equal(t, "cart", BaseName("testdata/cart.csv"))
	assert.Equal(t, "cart", BaseName("s3://bucket/carts/cart.csv"))
	assert.Equal(t, "cart", BaseName("cart"))
}

func TestWriteErrorLog(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")

	path, err := WriteErrorLog("testdata/invalid.csv", []ErrorLogEntry{
		{Type: "row", Row: 0, Column: -1, Message: "Expected row to have 3 cells but received 2."},
		{Type: "cell", Row: 1, Column: 1, Message: `Expected cell to be a positive number but received "abcd".`},
	}, dir)
	require.NoError(t, err)

	assert.Equal(t, dir, filepath.Dir(path))
	assert.True(t, strings.HasPrefix(filepath.Base(path), "error_log_invalid_"))
	assert.True(t, strings.HasSuffix(path, ".txt"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	content := string(data)

	assert.Contains(t, content, "Source: testdata/invalid.csv")
	assert.Contains(t, content, "Total Errors: 2")
	assert.Contains(t, content, "Error #2")
	assert.Contains(t, content, "  Column:   1\n")
	assert.Equal(t, 1, strings.Count(content, "Column:"))
	assert.Contains(t, content, `received "abcd".`)
}

func TestWriteErrorLog_NoEntries(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")

	path, err := WriteErrorLog("cart.csv", nil, dir)
	require.NoError(t, err)
	assert.Empty(t, path)
	assert.False(t, FileExists(dir))
}

func TestArchiveFile(t *testing.T) {
	tmp := t.TempDir()
	src := filepath.Join(tmp, "cart.csv")
	require.NoError(t, os.WriteFile(src, []byte("Product name,Price,Quantity\n"), 0644))

	archived, err := ArchiveFile(src, filepath.Join(tmp, "archive"))
	require.NoError(t, err)

	assert.False(t, FileExists(src))
	assert.True(t, FileExists(archived))
	assert.Regexp(t, regexp.MustCompile(`archive/\d{4}/\d{2}/\d{2}/cart\.csv$`), filepath.ToSlash(archived))

	data, err := os.ReadFile(archived)
	require.NoError(t, err)
	assert.Equal(t, "Product name,Price,Quantity\n", string(data))
}

func TestArchiveFile_Missing(t *testing.T) {
	tmp := t.TempDir()
	_, err := ArchiveFile(filepath.Join(tmp, "missing.csv"), filepath.Join(tmp, "archive"))
	assert.Error(t, err)
}

func TestEnsureDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b", "c")
	require.NoError(t, EnsureDir(dir))
	assert.True(t, FileExists(dir))
	require.NoError(t, EnsureDir(dir))
}

// =============================================================================
// Cart Parser - File Manager Utility
// =============================================================================
//
// This module provides file management utilities for the CLI, including:
//   - Directory management
//   - Report file naming
//   - Error log generation
//   - Archival of successfully parsed cart files
//
// ARCHIVAL STRATEGY:
//   - A cart file is moved to the archive directory only after it parsed
//   - Invalid files stay where they are, next to their error log
//
// =============================================================================

package utils

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// =============================================================================
// DIRECTORY MANAGEMENT
// =============================================================================

// EnsureDir creates dir and its parents if they don't exist.
func EnsureDir(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}
	return nil
}

// FileExists checks if a file exists.
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return !os.IsNotExist(err)
}

// =============================================================================
// OUTPUT FILE NAMING
// =============================================================================

// GenerateOutputFileName generates a unique output file name.
//
// Placeholders:
//
//	{uuid}      - A random UUID
//	{timestamp} - Current timestamp (YYYYMMDD_HHMMSS)
//	{date}      - Current date (YYYYMMDD)
//	{name}      - Source file name without extension (from params)
//
// Any other key in params is available as {key}. The extension is appended
// when the result does not already end with it.
//
// Example:
//
//	GenerateOutputFileName("{name}_{timestamp}_{uuid}", ".json", map[string]string{"name": "cart"})
//	-> "cart_20240115_143022_a1b2c3d4-e5f6-7890-abcd-ef1234567890.json"
func GenerateOutputFileName(format, ext string, params map[string]string) string {
	now := time.Now()

	replacements := map[string]string{
		"{uuid}":      uuid.New().String(),
		"{timestamp}": now.Format("20060102_150405"),
		"{date}":      now.Format("20060102"),
	}

	for key, value := range params {
		replacements["{"+key+"}"] = value
	}

	result := format
	for placeholder, value := range replacements {
		result = strings.ReplaceAll(result, placeholder, value)
	}

	if ext != "" && !strings.HasSuffix(strings.ToLower(result), strings.ToLower(ext)) {
		result += ext
	}

	return result
}

// BaseName returns the file name of path without its extension.
// It also works for URLs such as s3://bucket/carts/cart.csv.
func BaseName(path string) string {
	name := filepath.Base(path)
	return strings.TrimSuffix(name, filepath.Ext(name))
}

// =============================================================================
// ERROR LOG GENERATION
// =============================================================================

// ErrorLogEntry is one validation error as written to an error log.
type ErrorLogEntry struct {
	Type    string
	Row     int
	Column  int
	Message string
}

// WriteErrorLog writes entries for one source to a timestamped log file.
//
// PARAMETERS:
//   - source: The cart source the errors belong to; its base name goes into
//             the log file name.
//   - entries: The validation errors, in report order.
//   - outputDir: Directory for the log file. Created when missing.
//
// RETURNS:
//   - The path of the log file, or "" when entries is empty.
//   - An error if the file cannot be created or written.
func WriteErrorLog(source string, entries []ErrorLogEntry, outputDir string) (string, error) {
	if len(entries) == 0 {
		return "", nil
	}

	if err := EnsureDir(outputDir); err != nil {
		return "", err
	}

	logFileName := GenerateOutputFileName("error_log_{name}_{timestamp}", ".txt", map[string]string{
		"name": BaseName(source),
	})
	logPath := filepath.Join(outputDir, logFileName)

	file, err := os.Create(logPath)
	if err != nil {
		return "", fmt.Errorf("failed to create error log: %w", err)
	}
	defer file.Close()

	writer := bufio.NewWriter(file)

	fmt.Fprintf(writer, "Cart Parser - Error Log\n"+
		"Source: %s\n"+
		"Generated: %s\n"+
		"Total Errors: %d\n"+
		"================================================================================\n\n",
		source,
		time.Now().Format("2006-01-02 15:04:05"),
		len(entries))

	for i, entry := range entries {
		fmt.Fprintf(writer, "Error #%d\n"+
			"  Type:     %s\n"+
			"  Row:      %d\n",
			i+1, entry.Type, entry.Row)
		if entry.Column >= 0 {
			fmt.Fprintf(writer, "  Column:   %d\n", entry.Column)
		}
		fmt.Fprintf(writer, "  Message:  %s\n\n", entry.Message)
	}

	writer.WriteString("================================================================================\n" +
		"End of Error Log\n")

	if err := writer.Flush(); err != nil {
		return "", fmt.Errorf("failed to flush error log: %w", err)
	}

	return logPath, nil
}

// =============================================================================
// FILE ARCHIVAL
// =============================================================================

// ArchiveFile moves a file into archiveDir, under a date-based subdirectory
// (archiveDir/2024/01/15/cart.csv).
//
// PARAMETERS:
//   - filePath: The cart file to archive.
//   - archiveDir: The archive root.
//
// RETURNS:
//   - The path to the archived file.
//   - An error if archival fails. The original is only removed after a
//     successful copy.
func ArchiveFile(filePath, archiveDir string) (string, error) {
	now := time.Now()
	targetDir := filepath.Join(
		archiveDir,
		fmt.Sprintf("%d", now.Year()),
		fmt.Sprintf("%02d", now.Month()),
		fmt.Sprintf("%02d", now.Day()),
	)

	if err := EnsureDir(targetDir); err != nil {
		return "", err
	}

	archivePath := filepath.Join(targetDir, filepath.Base(filePath))

	if err := os.Rename(filePath, archivePath); err != nil {
		// Rename fails across devices; fall back to copy and delete.
		if err := copyFile(filePath, archivePath); err != nil {
			return "", fmt.Errorf("failed to copy file to archive: %w", err)
		}
		if err := os.Remove(filePath); err != nil {
			return "", fmt.Errorf("failed to remove original file: %w", err)
		}
	}

	return archivePath, nil
}

// copyFile copies a file from src to dst.
func copyFile(src, dst string) error {
	sourceFile, err := os.Open(src)
	if err != nil {
		return err
	}
	defer sourceFile.Close()

	destFile, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer destFile.Close()

	if _, err := io.Copy(destFile, sourceFile); err != nil {
		return err
	}

	return destFile.Sync()
}

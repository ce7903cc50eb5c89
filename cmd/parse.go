// =============================================================================
// Cart Parser - Parse Command
// =============================================================================
//
// This file defines the 'parse' command, which is the main command of the
// CLI. It runs the full pipeline for one cart source.
//
// COMMAND USAGE:
//   cartparser parse <source> [flags]
//
// FLAGS:
//   --format      : Report format printed to stdout (text, json, xml)
//   --output-dir  : Also write a report file per configured format
//   --archive     : Move a local source into archive_dir after it parsed
//
// PROCESSING PIPELINE:
//   1. Read the source (file, xlsx, http or s3)
//   2. Validate it
//   3. On failure: print every error, write an error log, exit non-zero
//   4. On success: print the report and optionally write report files
//   5. Optionally archive the source
//
// =============================================================================

package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vvorobets/cart-parser/internal/cartparser"
	"github.com/vvorobets/cart-parser/internal/report"
	"github.com/vvorobets/cart-parser/internal/validation"
	"github.com/vvorobets/cart-parser/pkg/utils"
)

// =============================================================================
// COMMAND FLAGS
// =============================================================================

// outputFormat is the report format printed to stdout.
var outputFormat string

// outputDir, when set, receives report files for every configured format.
var outputDir string

// archive moves a local source to the archive directory after parsing.
var archive bool

// =============================================================================
// PARSE COMMAND DEFINITION
// =============================================================================

// parseCmd represents the 'parse' command.
var parseCmd = &cobra.Command{
	Use:   "parse <source>",
	Short: "Parse a cart file and print its items and total",
	Long: `The parse command validates a cart file and, when it is valid, prints the
parsed items and the cart total.

On validation failure:
  - Every error is printed, with its type, row and column
  - An error log is written to the output directory (write_error_log)
  - The command exits non-zero

On success:
  - The report is printed in --format
  - With --output-dir, one report file per configured format is written
  - With --archive, a local source file is moved to archive_dir`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runParse(cmd, args[0])
	},
}

func init() {
	rootCmd.AddCommand(parseCmd)

	parseCmd.Flags().StringVar(
		&outputFormat,
		"format",
		report.FormatText,
		"Report format printed to stdout (text, json, xml)",
	)

	parseCmd.Flags().StringVar(
		&outputDir,
		"output-dir",
		"",
		"Write a report file per configured format into this directory",
	)

	parseCmd.Flags().BoolVar(
		&archive,
		"archive",
		false,
		"Move a local source into archive_dir after it parsed",
	)
}

// =============================================================================
// MAIN PROCESSING FUNCTION
// =============================================================================

func runParse(cmd *cobra.Command, name string) error {
	if outputFormat == report.FormatXLSX || !report.IsFormat(outputFormat) {
		return fmt.Errorf("unsupported --format %q: use text, json or xml", outputFormat)
	}

	cart, err := newParser().Parse(cmd.Context(), name)
	if err != nil {
		var validationErr *cartparser.ValidationError
		if !errors.As(err, &validationErr) {
			return err
		}
		return reportInvalid(cmd, name, validationErr.Errors)
	}

	summary := report.NewSummary(name, cart, appConfig.Report.Currency, appConfig.MoneyPrecision())
	if err := report.Write(cmd.OutOrStdout(), outputFormat, summary); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}

	if outputDir != "" {
		if err := writeReportFiles(name, outputDir, summary); err != nil {
			return err
		}
	}

	if archive {
		return archiveSource(name)
	}

	return nil
}

// reportInvalid prints every error and writes the error log.
func reportInvalid(cmd *cobra.Command, name string, errs []validation.ErrorDescriptor) error {
	if err := report.WriteErrors(cmd.OutOrStdout(), errs); err != nil {
		return err
	}

	if appConfig.ShouldWriteErrorLog() {
		entries := make([]utils.ErrorLogEntry, len(errs))
		for i, e := range errs {
			entries[i] = utils.ErrorLogEntry{
				Type:    string(e.Type),
				Row:     e.Row,
				Column:  e.Column,
				Message: e.Message,
			}
		}

		logPath, err := utils.WriteErrorLog(name, entries, appConfig.OutputDir)
		if err != nil {
			// The errors are already on stdout; a missing log is not fatal.
			logger.Warn("failed to write error log", slog.String("error", err.Error()))
		} else {
			logger.Info("wrote error log", slog.String("path", logPath))
		}
	}

	return fmt.Errorf("%s is invalid: %d error(s)", name, len(errs))
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// writeReportFiles writes one report per configured format into dir.
func writeReportFiles(name, dir string, summary report.Summary) error {
	if err := utils.EnsureDir(dir); err != nil {
		return err
	}

	for _, format := range appConfig.Report.Formats {
		fileName := utils.GenerateOutputFileName(
			appConfig.Report.FileNameFormat,
			report.Extension(format),
			map[string]string{"name": utils.BaseName(name)},
		)
		path := filepath.Join(dir, fileName)

		if err := writeReportFile(path, format, summary); err != nil {
			return err
		}

		logger.Info("wrote report",
			slog.String("format", format),
			slog.String("path", path),
		)
	}

	return nil
}

func writeReportFile(path, format string, summary report.Summary) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create report file: %w", err)
	}
	defer file.Close()

	if err := report.Write(file, format, summary); err != nil {
		return fmt.Errorf("failed to write %s report: %w", format, err)
	}

	return file.Close()
}

// archiveSource moves a local source into the archive directory.
// Remote sources are left alone.
func archiveSource(name string) error {
	if strings.Contains(name, "://") {
		logger.Debug("skipping archive of remote source", slog.String("source", name))
		return nil
	}
	if appConfig.ArchiveDir == "" {
		return fmt.Errorf("--archive needs archive_dir in the configuration")
	}

	archivePath, err := utils.ArchiveFile(name, appConfig.ArchiveDir)
	if err != nil {
		return fmt.Errorf("failed to archive %s: %w", name, err)
	}

	logger.Info("archived source", slog.String("path", archivePath))
	return nil
}

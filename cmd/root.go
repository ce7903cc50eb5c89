// =============================================================================
// Cart Parser - Root Command
// =============================================================================
//
// This file defines the root command for the Cobra CLI. The root command is
// the base command that all other commands are attached to.
//
// COBRA CLI STRUCTURE:
//   rootCmd (cartparser)
//   ├── validateCmd (cartparser validate <source>)
//   ├── parseCmd    (cartparser parse <source>)
//   ├── serveCmd    (cartparser serve)
//   └── versionCmd  (cartparser version)
//
// CONFIGURATION:
//   The root command is responsible for:
//   1. Setting up global flags (--config, --verbose)
//   2. Loading the configuration before any subcommand runs
//   3. Setting up logging
//
// =============================================================================

package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/vvorobets/cart-parser/internal/cartparser"
	"github.com/vvorobets/cart-parser/internal/config"
	"github.com/vvorobets/cart-parser/internal/source"
)

// =============================================================================
// GLOBAL VARIABLES
// =============================================================================

// cfgFile holds the path to the configuration file.
// Empty means built-in defaults.
var cfgFile string

// verbose forces debug logging when set to true.
var verbose bool

// appConfig and logger are set by loadConfig before any subcommand runs.
var (
	appConfig *config.Config
	logger    *slog.Logger
)

// =============================================================================
// ROOT COMMAND DEFINITION
// =============================================================================

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "cartparser",
	Short: "Cart Parser - Validate shopping cart CSV files and compute totals",
	Long: `Cart Parser reads a shopping cart file with the header

  Product name,Price,Quantity

followed by one product per line, validates every cell, and prints the
parsed items together with the cart total.

Every validation problem is reported with its type (header, row or cell),
its data row and its column, so a file can be fixed in one pass.

Sources can be local .csv or .xlsx files, http(s):// URLs or s3://bucket/key.

Example Usage:
  cartparser validate ./cart.csv
  cartparser parse ./cart.csv --format json
  cartparser serve --addr :8080`,

	SilenceUsage: true,

	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return loadConfig(cmd)
	},

	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

// =============================================================================
// EXECUTE FUNCTION
// =============================================================================

// Execute runs the root command. It is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// =============================================================================
// INITIALIZATION
// =============================================================================

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile,
		"config",
		"",
		"Path to a YAML configuration file (defaults are used when empty)",
	)

	rootCmd.PersistentFlags().BoolVarP(
		&verbose,
		"verbose",
		"v",
		false,
		"Enable verbose output for debugging",
	)
}

// loadConfig reads the configuration file and builds the logger.
func loadConfig(cmd *cobra.Command) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if verbose {
		cfg.LogLevel = "debug"
	}

	appConfig = cfg
	logger = config.NewLogger(cfg, cmd.ErrOrStderr())
	return nil
}

// newResolverReader builds the source resolver from the configuration.
func newResolverReader() *source.Resolver {
	region := appConfig.Source.S3Region
	return source.NewResolver(
		source.NewHTTPReader(appConfig.Source.HTTPTimeout),
		func(ctx context.Context) (source.Reader, error) {
			return source.NewS3ReaderFromConfig(ctx, region)
		},
	)
}

// newParser wires the source resolver into a cart parser.
func newParser() *cartparser.Parser {
	return cartparser.New(newResolverReader(), logger)
}

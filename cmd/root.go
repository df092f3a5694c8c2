package cmd

import (
	"fmt"
	"os"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/scan-io-git/sarifclean/cmd/version"
	"github.com/scan-io-git/sarifclean/internal/normalizer"
	internalsarif "github.com/scan-io-git/sarifclean/internal/sarif"
	"github.com/scan-io-git/sarifclean/pkg/shared/config"
	"github.com/scan-io-git/sarifclean/pkg/shared/errors"
	"github.com/scan-io-git/sarifclean/pkg/shared/files"
	"github.com/scan-io-git/sarifclean/pkg/shared/logger"
)

// RunOptions holds flags for the root command.
type RunOptions struct {
	ConfigPath string   `json:"config_path,omitempty"`
	Strip      []string `json:"strip,omitempty"`
	SchemaURI  string   `json:"schema_uri,omitempty"`
	Indent     int      `json:"indent"`
	InputPath  string   `json:"input_path"`
	OutputPath string   `json:"output_path,omitempty"`
}

// Example usage for the root command
var exampleUsage = `  # Normalize a DevOps Shield export in place
  sarifclean devops-shield.sarif

  # Write the normalized document next to the original
  sarifclean devops-shield.sarif devops-shield.clean.sarif

  # Write into an existing directory, keeping the input file name
  sarifclean devops-shield.sarif ./upload/

  # Strip an additional vendor member and write compact output
  sarifclean --strip vendorId --indent 0 devops-shield.sarif clean.sarif

  # Use a config file
  sarifclean --config sarifclean.yml devops-shield.sarif`

// NewRootCmd creates the sarifclean command with its subcommands.
func NewRootCmd() *cobra.Command {
	opts := &RunOptions{}

	rootCmd := &cobra.Command{
		Use:                   "sarifclean <input-path> [output-path]",
		Short:                 "Normalize a vendor SARIF export into strict SARIF 2.1.0",
		Long: `sarifclean rewrites a SARIF file produced by the DevOps Shield export so that
strict SARIF 2.1.0 consumers such as GitHub code scanning accept it.
Non-standard members are stripped, numeric enumerations are converted to their
string form, locations without an artifact URI are removed and the version and
$schema members are pinned. When output-path is omitted the input is overwritten.`,
		Example:               exampleUsage,
		Args:                  validateArgs,
		SilenceUsage:          true,
		SilenceErrors:         true,
		DisableFlagsInUseLine: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runClean(cmd, opts, args)
		},
	}
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.Flags().StringVarP(&opts.ConfigPath, "config", "c", "", "Path to a YAML config file (defaults to $SARIFCLEAN_CONFIG, then ./sarifclean.yml)")
	// --strip supports multiple usages (e.g., --strip vendorId --strip vendorHash)
	rootCmd.Flags().StringArrayVar(&opts.Strip, "strip", nil, "Optional: additional member name to remove from every object (repeatable)")
	rootCmd.Flags().StringVar(&opts.SchemaURI, "schema-uri", "", "Optional: $schema value written to the output")
	rootCmd.Flags().IntVar(&opts.Indent, "indent", config.DefaultIndent, "Spaces per indentation level, 0 writes compact JSON")
	rootCmd.Flags().BoolP("help", "h", false, "Show help for sarifclean.")

	rootCmd.AddCommand(version.NewVersionCmd())
	return rootCmd
}

// Execute runs the root command and returns the process exit code.
func Execute() int {
	rootCmd := NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return errors.ExitCodeFor(err)
	}
	return errors.ExitCodeOK
}

// runClean is the main execution function for the root command.
func runClean(cmd *cobra.Command, opts *RunOptions, args []string) error {
	// 1. Resolve positional arguments
	opts.InputPath = args[0]
	if len(args) > 1 {
		opts.OutputPath = args[1]
	}

	// 2. Load config and apply flag overrides
	cfg, err := config.LoadConfig(opts.ConfigPath)
	if err != nil {
		return errors.NewCommandError(opts, err, errors.ExitCodeInvalidArgs)
	}
	applyFlags(cfg, opts, cmd.Flags())
	if err := config.ValidateConfig(cfg); err != nil {
		return errors.NewCommandError(opts, fmt.Errorf("invalid configuration: %w", err), errors.ExitCodeInvalidArgs)
	}

	// 3. Initialize logger
	lg := logger.NewLogger(cfg, "sarifclean")

	// 4. Read the input document
	doc, err := internalsarif.ReadDocument(opts.InputPath)
	if err != nil {
		lg.Error("failed to read input document", "error", err)
		return errors.NewCommandError(opts, err, errors.ExitCodeFor(err))
	}

	// 5. Normalize
	n := normalizer.New(normalizer.Options{
		Denylist:  config.EffectiveDenylist(cfg, normalizer.DefaultDenylist()),
		SchemaURI: config.GetSchemaURI(cfg, normalizer.DefaultSchemaURI),
		Logger:    lg.Named("normalizer"),
	})
	lg.Debug("effective denylist", "keys", n.Denylist().Keys())
	root, stats, err := n.Normalize(doc)
	if err != nil {
		lg.Error("failed to normalize document", "path", opts.InputPath, "error", err)
		return errors.NewCommandError(opts, err, errors.ExitCodeFor(err))
	}
	logStats(lg, stats)

	data, err := internalsarif.Encode(root, config.GetIndent(cfg))
	if err != nil {
		lg.Error("failed to encode document", "error", err)
		return errors.NewCommandError(opts, err, errors.ExitCodeIO)
	}

	// 6. Write the result
	target, err := files.ResolveOutputPath(opts.InputPath, opts.OutputPath)
	if err != nil {
		return errors.NewCommandError(opts, errors.NewIOError("resolve", opts.OutputPath, err), errors.ExitCodeIO)
	}
	if err := internalsarif.WriteDocument(target, data); err != nil {
		lg.Error("failed to write output document", "error", err)
		return errors.NewCommandError(opts, err, errors.ExitCodeIO)
	}
	lg.Debug("output written", "path", target, "bytes", len(data))

	// 7. Report
	summary, err := internalsarif.Summarize(data)
	if err != nil {
		lg.Warn("normalized document could not be loaded as SARIF", "error", err)
		fmt.Fprintf(cmd.OutOrStdout(), "Done! Written to %s\n", target)
		return nil
	}
	internalsarif.LogSummary(lg, summary)
	fmt.Fprintf(cmd.OutOrStdout(), "Done! %d results, %d rules\n", summary.Results, summary.Rules)
	return nil
}

// applyFlags layers explicitly set flags over the loaded configuration.
func applyFlags(cfg *config.Config, opts *RunOptions, flags *pflag.FlagSet) {
	cfg.Normalizer.ExtraDenylist = append(cfg.Normalizer.ExtraDenylist, opts.Strip...)
	if opts.SchemaURI != "" {
		cfg.Normalizer.SchemaURI = opts.SchemaURI
	}
	if flags.Changed("indent") {
		indent := opts.Indent
		cfg.Output.Indent = &indent
	}
}

func logStats(lg hclog.Logger, stats normalizer.Stats) {
	if stats.Changes() == 0 {
		lg.Info("document was already conformant")
		return
	}
	lg.Info("document rewritten",
		"stripped_keys", stats.StrippedKeys,
		"coerced_enums", stats.CoercedEnums,
		"coerced_strings", stats.CoercedStrings,
		"dropped_nulls", stats.DroppedNulls,
		"dropped_fields", stats.DroppedFields,
		"dropped_locations", stats.DroppedLocations,
		"dropped_nodes", stats.DroppedNodes,
		"deduped_tags", stats.DedupedTags,
	)
}

// Package cli implements the drugdash command line: catalog queries, network
// export, migrations and the server entry point.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/sboesen2/Drug-Interaction-Dashboard/internal/config"
	"github.com/sboesen2/Drug-Interaction-Dashboard/internal/infrastructure/monitoring/logging"
	"github.com/sboesen2/Drug-Interaction-Dashboard/pkg/errors"
)

// Build-time variables injected via ldflags.
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Output formats.
const (
	FormatText  = "text"
	FormatJSON  = "json"
	FormatTable = "table"
)

type cliContextKey struct{}

// RootOptions holds global CLI flags.
type RootOptions struct {
	ConfigPath   string
	LogLevel     string
	OutputFormat string
	NoColor      bool
	Timeout      time.Duration
}

// CLIContext carries the loaded configuration through the command tree.
// Services are connected on first use.
type CLIContext struct {
	Config       *config.Config
	ConfigPath   string
	Logger       logging.Logger
	OutputFormat string
	NoColor      bool
	Timeout      time.Duration

	deps     Dependencies
	services *Services
}

// Services connects the backends on first call.
func (c *CLIContext) Services(ctx context.Context) (*Services, error) {
	if c.services != nil {
		return c.services, nil
	}
	s, err := c.deps.NewServices(ctx, c.Config, c.Logger)
	if err != nil {
		return nil, err
	}
	c.services = s
	return s, nil
}

func (c *CLIContext) close() {
	if c.services == nil || c.services.Close == nil {
		return
	}
	if err := c.services.Close(); err != nil {
		c.Logger.Warn("Failed to close backends", logging.Err(err))
	}
	c.services = nil
}

// NewRootCommand creates the root command with every subcommand attached.
func NewRootCommand(deps Dependencies) *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:     "drugdash",
		Short:   "Drug interaction dashboard",
		Long:    "drugdash queries the ChEMBL-derived drug catalog, builds mechanism-of-action\ninteraction networks and serves the interactive dashboard.",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", Version, GitCommit, BuildDate),
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return persistentPreRun(cmd, opts, deps)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := cmd.PersistentFlags()
	pf.StringVarP(&opts.ConfigPath, "config", "c", "", "config file path (default: environment only)")
	pf.StringVar(&opts.LogLevel, "log-level", "", "log level override (debug, info, warn, error)")
	pf.StringVarP(&opts.OutputFormat, "output", "o", FormatTable, "output format (table, json, text)")
	pf.BoolVar(&opts.NoColor, "no-color", false, "disable colored output")
	pf.DurationVar(&opts.Timeout, "timeout", 30*time.Second, "per-command timeout")

	cmd.AddCommand(
		newSearchCmd(),
		newTopCmd(),
		newDetailCmd(),
		newPropertiesCmd(),
		newInteractionsCmd(),
		newDrugLikenessCmd(),
		newNetworkCmd(),
		newGraphCmd(),
		newCacheCmd(),
		newMigrateCmd(),
		newServeCmd(),
		newVersionCmd(),
	)
	return cmd
}

func persistentPreRun(cmd *cobra.Command, opts *RootOptions, deps Dependencies) error {
	switch strings.ToLower(opts.OutputFormat) {
	case FormatText, FormatJSON, FormatTable:
	default:
		return errors.Newf(errors.ErrCodeValidation, "unknown output format %q", opts.OutputFormat)
	}
	if opts.NoColor {
		color.NoColor = true
	}

	cliCtx := &CLIContext{
		ConfigPath:   opts.ConfigPath,
		OutputFormat: strings.ToLower(opts.OutputFormat),
		NoColor:      opts.NoColor,
		Timeout:      opts.Timeout,
		deps:         deps,
	}

	if cmd.Annotations[annotationNoConfig] != "true" {
		cfg, err := deps.LoadConfig(opts.ConfigPath)
		if err != nil {
			return err
		}
		if opts.LogLevel != "" {
			cfg.Log.Level = opts.LogLevel
		}
		logger, err := newCLILogger(cfg.Log, cmd.Annotations[annotationServerLog] == "true", deps)
		if err != nil {
			return fmt.Errorf("logger initialization failed: %w", err)
		}
		cliCtx.Config = cfg
		cliCtx.Logger = logger
	} else {
		cliCtx.Logger = logging.NewNopLogger()
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(context.WithValue(ctx, cliContextKey{}, cliCtx))
	return nil
}

// Command annotations read by persistentPreRun.
const (
	annotationNoConfig  = "drugdash/no-config"
	annotationServerLog = "drugdash/server-log"
)

// newCLILogger writes console logs to stderr so stdout stays parseable.
// The serve command keeps the configured format and outputs.
func newCLILogger(cfg logging.LogConfig, server bool, deps Dependencies) (logging.Logger, error) {
	if !server {
		cfg.Format = "console"
		cfg.OutputPaths = []string{"stderr"}
		cfg.ErrorOutputPaths = []string{"stderr"}
	}
	return deps.NewLogger(cfg)
}

// GetCLIContext extracts CLIContext from a cobra command's context.
func GetCLIContext(cmd *cobra.Command) (*CLIContext, error) {
	ctx := cmd.Context()
	if ctx == nil {
		return nil, errors.New(errors.ErrCodeValidation, "command context is nil")
	}
	cliCtx, ok := ctx.Value(cliContextKey{}).(*CLIContext)
	if !ok || cliCtx == nil {
		return nil, errors.New(errors.ErrCodeValidation, "CLIContext not found in command context")
	}
	return cliCtx, nil
}

// commandContext applies the --timeout flag to the command context.
func commandContext(cmd *cobra.Command, c *CLIContext) (context.Context, context.CancelFunc) {
	if c.Timeout <= 0 {
		return context.WithCancel(cmd.Context())
	}
	return context.WithTimeout(cmd.Context(), c.Timeout)
}

// Execute is the main entry point for the CLI application.
func Execute() error {
	rootCmd := NewRootCommand(DefaultDependencies())
	if err := rootCmd.Execute(); err != nil {
		PrintError(rootCmd, err)
		return err
	}
	return nil
}

// tableData is implemented by results that can render as a table.
type tableData interface {
	TableHeaders() []string
	TableRows() [][]string
}

// PrintResult outputs data in the format selected by --output.
func PrintResult(cmd *cobra.Command, data interface{}) error {
	format := FormatJSON
	if c, err := GetCLIContext(cmd); err == nil {
		format = c.OutputFormat
	}

	switch format {
	case FormatJSON:
		return printJSON(cmd, data)
	case FormatTable:
		if td, ok := data.(tableData); ok {
			fmt.Fprint(cmd.OutOrStdout(), FormatTableString(td.TableHeaders(), td.TableRows()))
			return nil
		}
	}
	return printText(cmd, data)
}

func printJSON(cmd *cobra.Command, data interface{}) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}

func printText(cmd *cobra.Command, data interface{}) error {
	switch v := data.(type) {
	case string:
		fmt.Fprintln(cmd.OutOrStdout(), v)
	case fmt.Stringer:
		fmt.Fprintln(cmd.OutOrStdout(), v.String())
	case tableData:
		for _, row := range v.TableRows() {
			fmt.Fprintln(cmd.OutOrStdout(), strings.Join(row, "\t"))
		}
	default:
		fmt.Fprintf(cmd.OutOrStdout(), "%+v\n", v)
	}
	return nil
}

// PrintError writes a formatted error message to stderr.
func PrintError(cmd *cobra.Command, err error) {
	if err == nil {
		return
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "%s %s\n", color.RedString("Error:"), err.Error())
}

// PrintSuccess writes a formatted success message to stdout.
func PrintSuccess(cmd *cobra.Command, msg string) {
	fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", color.GreenString("OK:"), msg)
}

// PrintInfo reports an empty panel.
func PrintInfo(cmd *cobra.Command, msg string) {
	if c, err := GetCLIContext(cmd); err == nil && c.OutputFormat == FormatJSON {
		_ = printJSON(cmd, map[string]interface{}{"data": []struct{}{}, "message": msg})
		return
	}
	fmt.Fprintln(cmd.OutOrStdout(), color.YellowString(msg))
}

// FormatTableString renders headers and rows with tablewriter.
func FormatTableString(headers []string, rows [][]string) string {
	if len(headers) == 0 {
		return ""
	}
	var sb strings.Builder
	table := tablewriter.NewWriter(&sb)
	table.SetHeader(headers)
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(false)
	table.AppendBulk(rows)
	table.Render()
	return sb.String()
}

// truncate shortens s to max runes with an ellipsis.
func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max || max < 2 {
		return s
	}
	return string(r[:max-1]) + "…"
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:         "version",
		Short:       "Print version information",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{annotationNoConfig: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "drugdash %s\ncommit: %s\nbuilt: %s\n", Version, GitCommit, BuildDate)
			return nil
		},
	}
}

// ExitCode maps err onto the process exit status: 2 for invalid input, 1
// for every other failure.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var missing *config.MissingEnvError
	if errors.As(err, &missing) {
		return 1
	}
	if errors.IsCode(err, errors.ErrCodeValidation) || errors.IsCode(err, errors.ErrCodeDrugNameRequired) {
		return 2
	}
	return 1
}

//Personal.AI order the ending

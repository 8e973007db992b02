package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/sboesen2/Drug-Interaction-Dashboard/internal/app"
	"github.com/sboesen2/Drug-Interaction-Dashboard/internal/application/catalog"
	"github.com/sboesen2/Drug-Interaction-Dashboard/pkg/errors"
)

// cacheOperations are the memoized catalog operations, in display order.
var cacheOperations = []string{
	catalog.OpSearch,
	catalog.OpTopDrugs,
	catalog.OpDetail,
	catalog.OpProperties,
	catalog.OpInteractions,
}

func newCacheCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage memoized query results",
	}
	cmd.AddCommand(&cobra.Command{
		Use:       "clear [operation...]",
		Short:     "Drop memoized results of the given operations, or of all of them",
		ValidArgs: cacheOperations,
		Args:      cobra.OnlyValidArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ops := args
			if len(ops) == 0 {
				ops = cacheOperations
			}
			return runWithServices(cmd, func(ctx context.Context, _ *CLIContext, s *Services) error {
				var total int64
				for _, op := range ops {
					n, err := s.Cache.Invalidate(ctx, op)
					if err != nil {
						return err
					}
					total += n
				}
				PrintSuccess(cmd, fmt.Sprintf("removed %d cached result(s)", total))
				return nil
			})
		},
	})
	return cmd
}

func newMigrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply or inspect the catalog schema migrations",
	}

	migrator := func(cmd *cobra.Command) (Migrator, error) {
		c, err := GetCLIContext(cmd)
		if err != nil {
			return nil, err
		}
		return c.deps.NewMigrator(c.Config, c.Logger), nil
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "Apply every pending migration",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				m, err := migrator(cmd)
				if err != nil {
					return err
				}
				if err := m.Up(); err != nil {
					return err
				}
				PrintSuccess(cmd, "migrations applied")
				return nil
			},
		},
		&cobra.Command{
			Use:   "down [steps]",
			Short: "Roll back the given number of migrations (default 1)",
			Args:  cobra.MaximumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				steps := 1
				if len(args) == 1 {
					n, err := strconv.Atoi(args[0])
					if err != nil || n < 1 {
						return errors.Newf(errors.ErrCodeValidation, "steps must be a positive integer, got %q", args[0])
					}
					steps = n
				}
				m, err := migrator(cmd)
				if err != nil {
					return err
				}
				if err := m.Down(steps); err != nil {
					return err
				}
				PrintSuccess(cmd, fmt.Sprintf("rolled back %d migration(s)", steps))
				return nil
			},
		},
		&cobra.Command{
			Use:   "status",
			Short: "Print the current schema version",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				m, err := migrator(cmd)
				if err != nil {
					return err
				}
				state, err := m.Status()
				if err != nil {
					return err
				}
				c, _ := GetCLIContext(cmd)
				if c != nil && c.OutputFormat == FormatJSON {
					return printJSON(cmd, state)
				}
				dirty := "clean"
				if state.Dirty {
					dirty = color.RedString("dirty")
				}
				fmt.Fprintf(cmd.OutOrStdout(), "version %d (%s)\n", state.Version, dirty)
				return nil
			},
		},
		&cobra.Command{
			Use:   "force <version>",
			Short: "Set the schema version without running migrations",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				v, err := strconv.Atoi(args[0])
				if err != nil {
					return errors.Newf(errors.ErrCodeValidation, "version must be an integer, got %q", args[0])
				}
				m, err := migrator(cmd)
				if err != nil {
					return err
				}
				if err := m.Force(v); err != nil {
					return err
				}
				PrintSuccess(cmd, fmt.Sprintf("schema version forced to %d", v))
				return nil
			},
		},
	)
	return cmd
}

func newServeCmd() *cobra.Command {
	var port int
	cmd := &cobra.Command{
		Use:         "serve",
		Short:       "Run the dashboard HTTP server",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{annotationServerLog: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := GetCLIContext(cmd)
			if err != nil {
				return err
			}
			if port > 0 {
				c.Config.Server.Port = port
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return c.deps.Serve(ctx, c.Config, c.Logger, app.ServeOptions{
				Version:    Version,
				ConfigPath: c.ConfigPath,
			})
		},
	}
	cmd.Flags().IntVarP(&port, "port", "p", 0, "listen port (overrides server.port)")
	return cmd
}

//Personal.AI order the ending

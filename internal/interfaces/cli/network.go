package cli

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	appnet "github.com/sboesen2/Drug-Interaction-Dashboard/internal/application/network"
	"github.com/sboesen2/Drug-Interaction-Dashboard/internal/infrastructure/database/neo4j/repositories"
	"github.com/sboesen2/Drug-Interaction-Dashboard/internal/infrastructure/monitoring/logging"
	"github.com/sboesen2/Drug-Interaction-Dashboard/pkg/errors"
)

func newNetworkCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "network",
		Short: "Render and export interaction networks",
	}
	cmd.AddCommand(newNetworkHTMLCmd(), newNetworkExportCmd())
	return cmd
}

func newNetworkHTMLCmd() *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "html <drug>",
		Short: "Write the standalone network document of a drug",
		Long:  "Write the network document to --out. The default file is <drug>_network.html in the working directory; \"-\" writes to stdout.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, err := drugArg(args)
			if err != nil {
				return err
			}
			return runWithServices(cmd, func(ctx context.Context, c *CLIContext, s *Services) error {
				doc, err := s.Dashboard.NetworkDocument(ctx, name)
				if err != nil {
					return err
				}
				if out == "-" {
					_, err := cmd.OutOrStdout().Write(doc)
					return err
				}
				path := out
				if path == "" {
					path = appnet.Slug(name) + "_network.html"
				}
				if err := os.WriteFile(path, doc, 0o644); err != nil {
					return errors.Wrap(err, errors.ErrCodeExportFailed, "failed to write network document")
				}
				c.Logger.Debug("Wrote network document", logging.String("path", path), logging.Int("bytes", len(doc)))
				PrintSuccess(cmd, fmt.Sprintf("wrote %s (%d bytes)", path, len(doc)))
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&out, "out", "", "output file, or - for stdout")
	return cmd
}

func newNetworkExportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export <drug>",
		Short: "Store the network document in object storage and print its download URL",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, err := drugArg(args)
			if err != nil {
				return err
			}
			return runWithServices(cmd, func(ctx context.Context, _ *CLIContext, s *Services) error {
				res, err := s.Dashboard.Export(ctx, name)
				if err != nil {
					return err
				}
				return PrintResult(cmd, exportView{res})
			})
		},
	}
}

type exportView struct {
	*appnet.ExportResult
}

func (exportView) TableHeaders() []string { return []string{"Field", "Value"} }

func (v exportView) TableRows() [][]string {
	rows := [][]string{
		{"Drug", v.Drug},
		{"Key", v.Key},
		{"Size", strconv.FormatInt(v.Size, 10)},
		{"URL", v.URL},
		{"Expires", v.ExpiresAt.UTC().Format(time.RFC3339)},
	}
	if v.Mirrored != nil {
		rows = append(rows, []string{"Mirrored", fmt.Sprintf("%d mechanisms, %d links",
			v.Mirrored.Mechanisms, v.Mirrored.Links)})
	}
	if v.Announced {
		rows = append(rows, []string{"Announced", "yes"})
	}
	return rows
}

func newGraphCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "graph",
		Short: "Query networks mirrored into the graph database",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "peers <drug>",
		Short: "List drugs linked to a drug through a shared mechanism",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, err := drugArg(args)
			if err != nil {
				return err
			}
			return runWithServices(cmd, func(ctx context.Context, _ *CLIContext, s *Services) error {
				if s.Peers == nil {
					return errors.New(errors.ErrCodeFeatureDisabled, "graph database is not enabled")
				}
				peers, err := s.Peers.Peers(ctx, name)
				if err != nil {
					return err
				}
				if len(peers) == 0 {
					PrintInfo(cmd, "No mirrored peers found")
					return nil
				}
				return PrintResult(cmd, peerTable(peers))
			})
		},
	})
	return cmd
}

type peerTable []repositories.PeerLink

func (peerTable) TableHeaders() []string { return []string{"Drug", "Mechanism"} }

func (t peerTable) TableRows() [][]string {
	rows := make([][]string, 0, len(t))
	for _, p := range t {
		rows = append(rows, []string{p.Drug, truncate(p.Mechanism, 60)})
	}
	return rows
}

//Personal.AI order the ending

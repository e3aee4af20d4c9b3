package main

import (
	"fmt"
	"os"

	"github.com/okian/waterradar/internal/adapters/importer"
	"github.com/okian/waterradar/internal/adapters/render"
	"github.com/okian/waterradar/internal/adapters/repository"
	"github.com/okian/waterradar/internal/domain/achievements"
	"github.com/okian/waterradar/internal/domain/model"
	"github.com/okian/waterradar/internal/domain/normalize"
	"github.com/okian/waterradar/pkg/metrics"
	"github.com/spf13/cobra"
)

func (c *cli) listCmd() *cobra.Command {
	var (
		query    string
		group    string
		verified bool
		tdsMax   float64
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List waters with their category and badges",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			f := repository.Filter{Query: query, OnlyVerified: verified}
			if group != "" {
				g, ok := normalize.ParseGroup(group)
				if !ok {
					return fmt.Errorf("unknown group %q", group)
				}
				f.Group = g
			}
			if cmd.Flags().Changed("tds-max") {
				f.TDSMax = &tdsMax
			}
			ws, err := c.svc.Waters(cmd.Context(), f)
			if err != nil {
				return err
			}
			if c.output == outputJSON {
				return render.JSON(cmd.OutOrStdout(), ws)
			}
			return render.Waters(cmd.OutOrStdout(), ws, achievements.Default())
		},
	}
	cmd.Flags().StringVarP(&query, "query", "q", "", "brand name substring")
	cmd.Flags().StringVarP(&group, "group", "g", "", "group (Russia|Europe|Therapeutic)")
	cmd.Flags().BoolVar(&verified, "verified", false, "only high-confidence records")
	cmd.Flags().Float64Var(&tdsMax, "tds-max", 0, "maximum TDS in mg/L")
	return cmd
}

func (c *cli) rankCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rank [id...]",
		Short: "Rank waters under a profile (all waters when no ids are given)",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			ids := args
			if len(ids) == 0 {
				ws, err := c.svc.Waters(ctx, repository.Filter{})
				if err != nil {
					return err
				}
				for _, w := range ws {
					ids = append(ids, w.ID)
				}
			}
			report, err := c.svc.Report(ctx, c.profileFlag(), ids...)
			if err != nil {
				return err
			}
			if c.output == outputJSON {
				return render.JSON(cmd.OutOrStdout(), report)
			}
			return render.Report(cmd.OutOrStdout(), report)
		},
	}
}

func (c *cli) winnerCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "winner id...",
		Short: "Select waters and print the best one",
		Long: `winner adds every id to the selection, honoring the configured selection
limit, and prints the top entry of the ranked selection.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			for _, id := range args {
				if _, err := c.svc.Toggle(ctx, id); err != nil {
					return err
				}
			}
			e, err := c.svc.Winner(ctx, c.profileFlag())
			if err != nil {
				return err
			}
			if c.output == outputJSON {
				return render.JSON(cmd.OutOrStdout(), e)
			}
			return render.Entry(cmd.OutOrStdout(), e)
		},
	}
}

func (c *cli) classifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "classify id...",
		Short: "Print the category and badges of waters",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cs, err := c.svc.Classify(cmd.Context(), args...)
			if err != nil {
				return err
			}
			if c.output == outputJSON {
				return render.JSON(cmd.OutOrStdout(), cs)
			}
			ws := make([]model.Water, 0, len(cs))
			for _, cl := range cs {
				ws = append(ws, cl.Water)
			}
			return render.Waters(cmd.OutOrStdout(), ws, achievements.Default())
		},
	}
}

func (c *cli) importCmd() *cobra.Command {
	var (
		out       string
		outFormat string
	)
	cmd := &cobra.Command{
		Use:   "import file...",
		Short: "Import CSV or JSON files and report accepted and rejected rows",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			results := make([]any, 0, len(args))
			for _, path := range args {
				res, err := c.importFile(cmd, path)
				if err != nil {
					return fmt.Errorf("%s: %w", path, err)
				}
				results = append(results, res)
				if c.output == outputText {
					fmt.Fprintf(cmd.OutOrStdout(), "%s: %s accepted=%d rejected=%d total=%d batch=%s\n",
						path, res.Format, res.Accepted, res.Rejected, res.Total, res.BatchID)
				}
			}
			if c.output == outputJSON {
				if err := render.JSON(cmd.OutOrStdout(), results); err != nil {
					return err
				}
			}
			if out == "" {
				return nil
			}
			return c.writeExport(cmd, outFormat, out)
		},
	}
	cmd.Flags().StringVar(&out, "out", "", "write the merged dataset to this file (- for stdout)")
	cmd.Flags().StringVar(&outFormat, "out-format", string(importer.FormatJSON), "merged dataset format (csv|json)")
	return cmd
}

func (c *cli) exportCmd() *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the dataset as CSV or JSON to stdout",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.writeExport(cmd, format, "-")
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", string(importer.FormatJSON), "export format (csv|json)")
	return cmd
}

func (c *cli) metricsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "metrics",
		Short: "Print the engine metrics in Prometheus text format",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return metrics.WriteText(cmd.OutOrStdout())
		},
	}
}

func (c *cli) writeExport(cmd *cobra.Command, format, path string) error {
	f, err := importer.ParseFormat(format)
	if err != nil {
		return err
	}
	text, err := c.svc.Export(cmd.Context(), f)
	if err != nil {
		return err
	}
	if path == "-" {
		_, err = fmt.Fprint(cmd.OutOrStdout(), text)
		return err
	}
	if err := os.WriteFile(path, []byte(text), 0o600); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/okian/waterradar/internal/adapters/importer"
	service "github.com/okian/waterradar/internal/app"
	"github.com/okian/waterradar/internal/config"
	"github.com/okian/waterradar/internal/domain/model"
	"github.com/okian/waterradar/pkg/logger"
	"github.com/okian/waterradar/pkg/metrics"
	"github.com/spf13/cobra"
)

// Output formats.
const (
	outputText = "text"
	outputJSON = "json"
)

// cli holds the flags and the service shared by every subcommand.
type cli struct {
	configPath string
	dataFiles  []string
	profile    string
	output     string
	noSeed     bool
	logLevel   string

	cfg *config.Config
	svc *service.Service
}

func newRootCmd() *cobra.Command {
	c := &cli{}

	root := &cobra.Command{
		Use:   "waterradar",
		Short: "Score, classify and rank bottled waters by mineral composition",
		Long: `waterradar compares bottled waters from their label data (pH, TDS, Ca, Mg,
Na, K, Cl). Waters are classified as Daily, Rotate or Therapeutic, scored
0..100 against a daily reference under a profile, and ranked so that records
with complete minimum data always come first.

Data comes from the built-in seed set and from CSV or JSON files passed with
--data.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: c.setup,
		PersistentPostRun: func(*cobra.Command, []string) {
			if c.svc != nil {
				c.svc.Stop()
			}
		},
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&c.configPath, "config", "c", "", "YAML config file (default $"+config.EnvConfigFile+")")
	flags.StringArrayVarP(&c.dataFiles, "data", "d", nil, "CSV or JSON file to import before running (repeatable, - for stdin)")
	flags.StringVarP(&c.profile, "profile", "p", "", "scoring profile (Everyday|Pressure|Sport|Sensitive|Kid)")
	flags.StringVarP(&c.output, "output", "o", outputText, "output format (text|json)")
	flags.BoolVar(&c.noSeed, "no-seed", false, "do not load the built-in sample waters")
	flags.StringVar(&c.logLevel, "log-level", "", "log level override (debug|info|warn|error)")

	root.AddCommand(
		c.listCmd(),
		c.rankCmd(),
		c.winnerCmd(),
		c.classifyCmd(),
		c.importCmd(),
		c.exportCmd(),
		c.metricsCmd(),
	)
	return root
}

// setup loads configuration, initializes logging and metrics, starts the
// service and imports every --data file.
func (c *cli) setup(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	if c.output != outputText && c.output != outputJSON {
		return fmt.Errorf("unknown output format %q", c.output)
	}

	var err error
	if c.configPath != "" {
		c.cfg, err = config.LoadFrom(ctx, c.configPath)
	} else {
		c.cfg, err = config.Load(ctx)
	}
	if err != nil {
		return err
	}

	if err := logger.InitWithWriter(cmd.ErrOrStderr()); err != nil {
		return err
	}
	level := c.cfg.LogLevel
	if c.logLevel != "" {
		level = c.logLevel
	}
	if err := logger.SetLevelString(level); err != nil {
		return err
	}
	metrics.Reset(metrics.WithNamespace(c.cfg.MetricsNamespace))

	c.svc = service.New(
		service.WithLogger(logger.Named("service")),
		service.WithMaxSelection(c.cfg.MaxSelection),
		service.WithDefaultProfile(c.cfg.Profile()),
		service.WithSeed(c.cfg.LoadSeed && !c.noSeed),
		service.WithLanguage(c.cfg.LanguageTag()),
		service.WithBaseWeights(c.cfg.Weights),
		service.WithProfileWeights(c.cfg.ProfileWeights),
	)
	if err := c.svc.Start(ctx); err != nil {
		return err
	}

	for _, path := range c.dataFiles {
		if _, err := c.importFile(cmd, path); err != nil {
			return err
		}
	}
	return nil
}

func (c *cli) importFile(cmd *cobra.Command, path string) (service.ImportResult, error) {
	text, err := readInput(cmd.InOrStdin(), path)
	if err != nil {
		return service.ImportResult{}, err
	}
	return c.svc.Import(cmd.Context(), formatFor(path), text)
}

func (c *cli) profileFlag() model.Profile {
	return model.Profile(c.profile)
}

func readInput(stdin io.Reader, path string) (string, error) {
	var (
		b   []byte
		err error
	)
	if path == "-" {
		b, err = io.ReadAll(stdin)
	} else {
		b, err = os.ReadFile(path)
	}
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	return string(b), nil
}

// formatFor picks the import format from the file extension, falling back
// to content detection.
func formatFor(path string) importer.Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return importer.FormatCSV
	case ".json":
		return importer.FormatJSON
	}
	return importer.FormatAuto
}

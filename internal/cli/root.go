// Package cli wires configuration, sources and report rendering behind the
// devsalary command line.
package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/fr4nk3nst1ner/devsalary/internal/client"
	"github.com/fr4nk3nst1ner/devsalary/internal/config"
	"github.com/fr4nk3nst1ner/devsalary/internal/logging"
	"github.com/fr4nk3nst1ner/devsalary/internal/report"
	"github.com/fr4nk3nst1ner/devsalary/internal/scraper"
	"github.com/fr4nk3nst1ner/devsalary/internal/ui"
)

// Version is set at build time with -ldflags
var Version = "dev"

type options struct {
	configFile string
	envFile    string
	source     string
	silence    bool
	noBanner   bool
	noProgress bool
	humanize   bool
	color      bool
}

// sourceReport pairs a source with the title of its table
type sourceReport struct {
	source scraper.Source
	title  string
}

// NewRootCmd creates the devsalary root command
func NewRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "devsalary",
		Short: "Average salaries per programming language from HeadHunter and SuperJob",
		Long: `devsalary queries the HeadHunter and SuperJob vacancy APIs for every
configured programming language, estimates a salary for each vacancy and
prints one table per source with the number of vacancies found, the number
with a usable salary and the average salary.`,
		Example: `  devsalary
  devsalary --source headhunter --languages Go,Rust --humanize
  SECRET_KEY=v3.r.xxx devsalary --source superjob --debug`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.configFile, "config", "", "config file (default is ./devsalary.yaml or $HOME/.devsalary/devsalary.yaml)")
	flags.StringVar(&opts.envFile, "env-file", ".env", "dotenv file with SECRET_KEY and ACCESS_TOKEN")
	flags.StringVar(&opts.source, "source", "", "only query one source (superjob, headhunter)")
	flags.StringSlice("languages", nil, "comma separated languages to report on")
	flags.Bool("debug", false, "enable debug logging")
	flags.String("proxy", "", "proxy URL (e.g. http://proxy:port)")
	flags.BoolVar(&opts.silence, "silence", false, "silence the banner")
	flags.BoolVar(&opts.noBanner, "nobanner", false, "silence the banner (alias for --silence)")
	flags.BoolVar(&opts.noProgress, "no-progress", false, "hide progress bars")
	flags.BoolVar(&opts.humanize, "humanize", false, "print numbers with thousands separators")
	flags.BoolVar(&opts.color, "color", false, "color average salaries by band")

	cmd.AddCommand(newVersionCmd())
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the devsalary version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "devsalary %s\n", Version)
		},
	}
}

// Execute runs the root command with ctx
func Execute(ctx context.Context) error {
	return NewRootCmd().ExecuteContext(ctx)
}

func run(cmd *cobra.Command, opts *options) error {
	if err := config.LoadDotEnv(opts.envFile); err != nil {
		return err
	}

	v, err := config.NewViper(opts.configFile)
	if err != nil {
		return err
	}
	if err := bindFlags(cmd, v, opts); err != nil {
		return err
	}

	cfg, err := config.Load(v)
	if err != nil {
		return err
	}

	logger, err := logging.New(cfg.Debug)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	ui.PrintBanner(cmd.ErrOrStderr(), opts.silence || opts.noBanner)

	httpClient, err := client.CreateProxyHTTPClient(cfg.HTTP.Proxy, cfg.HTTP.Timeout)
	if err != nil {
		return err
	}
	apiClient := client.New(httpClient, cfg.HTTP.RequestInterval)

	var progressOut io.Writer
	if !opts.noProgress {
		progressOut = cmd.ErrOrStderr()
	}
	reportOpts := report.Options{Humanize: opts.humanize, Color: opts.color}

	for _, sr := range buildSources(cfg, apiClient) {
		logger.Info("Collecting vacancies",
			zap.String("source", sr.source.Name()),
			zap.Strings("languages", cfg.Languages))

		progress := ui.NewProgress(len(cfg.Languages), sr.source.Name(), progressOut)
		rows, err := scraper.Collect(cmd.Context(), sr.source, cfg.Languages, progress, logger)
		progress.Finish()
		if err != nil {
			return err
		}

		table, err := report.Render(rows, sr.title, reportOpts)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), table)
	}

	return nil
}

// bindFlags layers explicitly set flags over file and env configuration
func bindFlags(cmd *cobra.Command, v *viper.Viper, opts *options) error {
	flags := cmd.Flags()
	for key, name := range map[string]string{
		"debug":      "debug",
		"http.proxy": "proxy",
		"languages":  "languages",
	} {
		if err := v.BindPFlag(key, flags.Lookup(name)); err != nil {
			return fmt.Errorf("failed to bind --%s: %w", name, err)
		}
	}

	if opts.source != "" {
		v.Set("sources", []string{opts.source})
	}
	return nil
}

// buildSources instantiates the enabled sources in configured order
func buildSources(cfg *config.Config, c *client.Client) []sourceReport {
	var out []sourceReport
	for _, name := range cfg.Sources {
		switch {
		case strings.EqualFold(name, scraper.SourceSuperJob):
			out = append(out, sourceReport{
				source: scraper.NewSuperJob(cfg.SuperJobSource(), c),
				title:  cfg.SuperJob.Title,
			})
		case strings.EqualFold(name, scraper.SourceHeadHunter):
			out = append(out, sourceReport{
				source: scraper.NewHeadHunter(cfg.HeadHunterSource(), c),
				title:  cfg.HeadHunter.Title,
			})
		}
	}
	return out
}

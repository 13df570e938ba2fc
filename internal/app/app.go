// internal/app/app.go
package app

import (
	"context"
	"fmt"
	"io"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"refseek/internal/appcore"
	"refseek/internal/catalog"
	"refseek/internal/cli"
	"refseek/internal/cmdutil"
	"refseek/internal/config"
	"refseek/internal/mash"
	"refseek/internal/nucmer"
	"refseek/internal/tools"
	"refseek/internal/version"
)

// ToolFactory builds the external collaborators of a run. Tests inject
// in-process fakes here.
type ToolFactory func(cfg config.Config, cat *catalog.Catalog) (appcore.Collaborators, error)

// DefaultTools resolves mash, nucmer and delta-filter (bundled share/ first,
// then PATH).
func DefaultTools(cfg config.Config, cat *catalog.Catalog) (appcore.Collaborators, error) {
	bins, err := tools.CheckBinaries(tools.Default())
	if err != nil {
		return appcore.Collaborators{}, err
	}
	return appcore.Collaborators{
		Catalog: cat,
		Estimator: mash.Estimator{
			Binary:  bins[tools.Mash],
			Sketch:  cat.SketchPath(),
			Ceiling: cfg.MashCeiling(),
			Threads: cfg.EffectiveThreads(),
		},
		Aligner: nucmer.Aligner{
			Nucmer:      bins[tools.Nucmer],
			DeltaFilter: bins[tools.DeltaFilter],
			Genomes:     cat,
		},
	}, nil
}

func newRootCmd(stdout, stderr io.Writer, tf ToolFactory, code *int) *cobra.Command {
	root := &cobra.Command{
		Use:           "refseek",
		Short:         "Rank closely related reference genomes for one genome or a cohort",
		Version:       version.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.CompletionOptions.DisableDefaultCmd = true
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.SetVersionTemplate("refseek version {{.Version}}\n")

	root.AddCommand(
		newModeCmd(cli.ModeSingle, "single <database> <genome>",
			"Find references for a single genome", stdout, stderr, tf, code),
		newModeCmd(cli.ModeCohort, "cohort <database> <genome> [<genome>...]",
			"Find references shared by a cohort of genomes", stdout, stderr, tf, code),
		&cobra.Command{
			Use:   "version",
			Short: "Print the version",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				_, err := fmt.Fprintf(cmd.OutOrStdout(), "refseek version %s\n", version.Version)
				return err
			},
		},
	)
	return root
}

func newModeCmd(mode, use, short string, stdout, stderr io.Writer, tf ToolFactory, code *int) *cobra.Command {
	cmd := &cobra.Command{
		Use:     use,
		Short:   short,
		Example: cli.Examples(mode),
	}
	fs := cli.NewFlagSet(mode)
	f := cli.Register(fs)
	cmd.Flags().AddFlagSet(fs)
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		opts, err := cli.Resolve(cmd.Flags(), f, mode, args)
		if err != nil {
			return err
		}
		*code = execute(cmd.Context(), opts, stdout, stderr, tf)
		return nil
	}
	return cmd
}

// execute loads inputs and runs one cycle. Errors are logged, not returned.
func execute(ctx context.Context, opts cli.Options, stdout, stderr io.Writer, tf ToolFactory) int {
	cfg := opts.Config
	log := cmdutil.NewLogger(stderr, cfg.Verbose, cfg.Quiet)
	defer func() { _ = log.Sync() }()

	log.Info("options",
		zap.String("database", opts.DBPath),
		zap.Strings("genomes", opts.Genomes),
		zap.String("config", opts.ConfigFile),
		zap.Int("max_candidates", cfg.MaxCandidates),
		zap.Float64("ani", cfg.ANI),
		zap.Float64("conserved_dna", cfg.ConservedDNA),
		zap.Bool("unfiltered", cfg.Unfiltered),
		zap.Bool("bidirectional", cfg.Bidirectional),
		zap.Stringer("strategy", cfg.Strategy),
		zap.Int("threads", cfg.EffectiveThreads()),
		zap.String("output", cfg.Output),
	)

	for _, g := range opts.Genomes {
		if err := catalog.CheckPath(g, "genome file"); err != nil {
			log.Error(err.Error())
			return appcore.ExitCode(err)
		}
	}
	cat, err := catalog.Load(opts.DBPath)
	if err != nil {
		log.Error(err.Error())
		return appcore.ExitCode(err)
	}
	log.Info("loaded catalog", zap.String("dir", cat.Dir), zap.Int("references", cat.Len()))

	coll, err := tf(cfg, cat)
	if err != nil {
		log.Error(errors.Wrap(err, "prepare tools").Error())
		return appcore.ExitRuntime
	}
	if coll.Catalog == nil {
		coll.Catalog = cat
	}
	return appcore.Run(ctx, stdout, cfg, coll, opts.Genomes, appcore.Env{Log: log, Progress: stderr})
}

// RunWith parses argv and runs the selected subcommand with tf providing the
// external tools.
func RunWith(parent context.Context, argv []string, stdout, stderr io.Writer, tf ToolFactory) int {
	code := appcore.ExitOK
	root := newRootCmd(stdout, stderr, tf, &code)
	root.SetArgs(argv)
	if err := root.ExecuteContext(parent); err != nil {
		_, _ = fmt.Fprintf(stderr, "error: %v\n", err)
		_, _ = fmt.Fprintln(stderr, "Run 'refseek --help' for usage.")
		return appcore.ExitInput
	}
	return code
}

func RunContext(parent context.Context, argv []string, stdout, stderr io.Writer) int {
	return RunWith(parent, argv, stdout, stderr, DefaultTools)
}

func Run(argv []string, stdout, stderr io.Writer) int {
	return RunContext(context.Background(), argv, stdout, stderr)
}

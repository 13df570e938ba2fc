// internal/cli/options.go
package cli

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/pflag"

	"refseek/internal/cliutil"
	"refseek/internal/config"
	"refseek/internal/engine"
)

// Command-line modes
const (
	ModeSingle = "single"
	ModeCohort = "cohort"
)

// Options is the parsed command line: the immutable run config plus inputs.
type Options struct {
	Config     config.Config
	ConfigFile string
	DBPath     string
	Genomes    []string
}

// Flags holds the raw flag values bound by Register.
type Flags struct {
	configFile string

	crg           int
	ani           float64
	conservedDNA  float64
	unfiltered    bool
	bidirectional bool
	strategy      string
	threads       int

	output   string
	noHeader bool
	metrics  string
	tmpDir   string
	keepTmp  bool

	verbose bool
	quiet   bool
}

// Register wires every run flag onto fs with the documented defaults.
func Register(fs *pflag.FlagSet) *Flags {
	d := config.Defaults()
	f := &Flags{}

	fs.StringVar(&f.configFile, "config", "", "TOML file with default option values")

	// Filter options / thresholds
	fs.IntVarP(&f.crg, "crg", "r", d.MaxCandidates, "max number of candidate reference genomes passing the kmer prefilter (0 = unlimited)")
	fs.Float64VarP(&f.ani, "ani", "a", d.ANI, "ANI threshold")
	fs.Float64VarP(&f.conservedDNA, "conserved-dna", "c", d.ConservedDNA, "conserved DNA threshold")
	fs.BoolVarP(&f.unfiltered, "unfiltered", "u", false, "widen the kmer prefilter and skip ANI / conserved DNA cutoffs")
	fs.BoolVarP(&f.bidirectional, "bidirectional", "b", false, "compute bidirectional ANI / conserved DNA values")
	fs.StringVarP(&f.strategy, "strategy", "s", string(d.Strategy), "cohort combination: product | mean | geometric | harmonic")

	// Runtime
	fs.IntVarP(&f.threads, "threads", "t", 0, "number of worker threads (0 = all CPUs)")
	fs.StringVar(&f.tmpDir, "tmp-dir", "", "parent directory of the scratch workspace (default: system temp)")
	fs.BoolVar(&f.keepTmp, "keep-tmp", false, "keep the scratch workspace after the run")

	// Output
	fs.StringVarP(&f.output, "output", "o", d.Output, "output format: text | json | jsonl")
	fs.BoolVar(&f.noHeader, "no-header", false, "suppress the header line of the text report")
	fs.StringVar(&f.metrics, "metrics", "", "write raw per-query metrics as YAML to this file")

	// Misc
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "print verbose information")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "suppress warnings")
	return f
}

// Resolve layers explicitly set flags over the config file over defaults,
// then validates the positionals for mode: <database> <genome>...
func Resolve(fs *pflag.FlagSet, f *Flags, mode string, args []string) (Options, error) {
	var opt Options
	cfg := config.Defaults()
	if f.configFile != "" {
		var err error
		if cfg, err = config.LoadFile(f.configFile, cfg); err != nil {
			return opt, err
		}
		opt.ConfigFile = f.configFile
	}

	set := func(name string, apply func()) {
		if fs.Changed(name) {
			apply()
		}
	}
	set("crg", func() { cfg.MaxCandidates = f.crg })
	set("ani", func() { cfg.ANI = f.ani })
	set("conserved-dna", func() { cfg.ConservedDNA = f.conservedDNA })
	set("unfiltered", func() { cfg.Unfiltered = f.unfiltered })
	set("bidirectional", func() { cfg.Bidirectional = f.bidirectional })
	set("strategy", func() { cfg.Strategy = engine.Strategy(f.strategy) })
	set("threads", func() { cfg.Threads = f.threads })
	set("tmp-dir", func() { cfg.TmpDir = f.tmpDir })
	set("keep-tmp", func() { cfg.KeepTmp = f.keepTmp })
	set("output", func() { cfg.Output = f.output })
	set("no-header", func() { cfg.Header = !f.noHeader })
	set("metrics", func() { cfg.MetricsPath = f.metrics })
	set("verbose", func() { cfg.Verbose = f.verbose })
	set("quiet", func() { cfg.Quiet = f.quiet })

	if err := cfg.Validate(); err != nil {
		return opt, err
	}
	opt.Config = cfg

	if len(args) == 0 {
		return opt, errors.New("a database path is required")
	}
	genomes, err := cliutil.ExpandPositionals(args[1:])
	if err != nil {
		return opt, err
	}
	// External tools run inside the scratch workspace, so every input path
	// is made absolute here. Query ids are these absolute paths.
	if opt.DBPath, err = filepath.Abs(args[0]); err != nil {
		return opt, err
	}
	opt.Genomes = make([]string, len(genomes))
	for i, g := range genomes {
		if opt.Genomes[i], err = filepath.Abs(g); err != nil {
			return opt, err
		}
	}
	if opt.Config.TmpDir != "" {
		if opt.Config.TmpDir, err = filepath.Abs(opt.Config.TmpDir); err != nil {
			return opt, err
		}
	}

	switch mode {
	case ModeSingle:
		if len(opt.Genomes) != 1 {
			return opt, fmt.Errorf("single mode takes exactly one genome, got %d", len(opt.Genomes))
		}
	case ModeCohort:
		if len(opt.Genomes) == 0 {
			return opt, errors.New("at least one cohort genome is required")
		}
	default:
		return opt, fmt.Errorf("unknown mode %q", mode)
	}
	return opt, nil
}

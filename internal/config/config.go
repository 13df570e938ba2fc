// internal/config/config.go
package config

import (
	"fmt"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"

	"refseek/internal/engine"
	"refseek/internal/output"
	"refseek/internal/runutil"
)

// Distance ceilings passed to the distance tool.
const (
	MaxMashDist        = 0.1
	UnfilteredMashDist = 0.3
)

// Config is the run configuration. It is built once at startup and passed by
// value; nothing mutates it afterwards.
type Config struct {
	MaxCandidates int             `toml:"max_candidates"`
	ANI           float64         `toml:"ani"`
	ConservedDNA  float64         `toml:"conserved_dna"`
	Unfiltered    bool            `toml:"unfiltered"`
	Bidirectional bool            `toml:"bidirectional"`
	Strategy      engine.Strategy `toml:"strategy"`
	Threads       int             `toml:"threads"`

	Output      string `toml:"output"`
	Header      bool   `toml:"header"`
	MetricsPath string `toml:"metrics"`
	TmpDir      string `toml:"tmp_dir"`
	KeepTmp     bool   `toml:"keep_tmp"`

	Verbose bool `toml:"verbose"`
	Quiet   bool `toml:"quiet"`
}

// Defaults returns the documented default configuration.
func Defaults() Config {
	return Config{
		MaxCandidates: 100,
		ANI:           0.95,
		ConservedDNA:  0.69,
		Strategy:      engine.StrategyProduct,
		Output:        output.FormatText,
		Header:        true,
	}
}

// LoadFile overlays the TOML file at path onto base. Keys absent from the
// file keep base's values.
func LoadFile(path string, base Config) (Config, error) {
	cfg := base
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return base, errors.Wrapf(engine.ErrInputUnavailable, "config %s: %v", path, err)
	}
	if und := md.Undecoded(); len(und) > 0 {
		return base, fmt.Errorf("config %s: unknown key %q", path, und[0].String())
	}
	return cfg, nil
}

// Validate checks value ranges.
func (c Config) Validate() error {
	if c.MaxCandidates < 0 {
		return errors.New("--crg must be ≥ 0")
	}
	if c.ANI < 0 || c.ANI > 1 {
		return errors.New("--ani must be within [0,1]")
	}
	if c.ConservedDNA < 0 || c.ConservedDNA > 1 {
		return errors.New("--conserved-dna must be within [0,1]")
	}
	if _, err := engine.ParseStrategy(string(c.Strategy)); err != nil {
		return err
	}
	if c.Threads < 0 {
		return errors.New("--threads must be ≥ 0")
	}
	switch c.Output {
	case output.FormatText, output.FormatJSON, output.FormatJSONL:
	default:
		return fmt.Errorf("invalid --output %q", c.Output)
	}
	if c.Verbose && c.Quiet {
		return errors.New("--verbose conflicts with --quiet")
	}
	return nil
}

// Thresholds returns the per-query filter derived from c.
func (c Config) Thresholds() engine.Thresholds {
	return engine.Thresholds{
		ANI:           c.ANI,
		ConservedDNA:  c.ConservedDNA,
		Unfiltered:    c.Unfiltered,
		Bidirectional: c.Bidirectional,
	}
}

// MashCeiling is the maximum distance the distance tool reports.
func (c Config) MashCeiling() float64 {
	if c.Unfiltered {
		return UnfilteredMashDist
	}
	return MaxMashDist
}

// EffectiveThreads resolves Threads=0 to the CPU count.
func (c Config) EffectiveThreads() int { return runutil.EffectiveThreads(c.Threads) }

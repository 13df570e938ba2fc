// internal/cli/examples.go
package cli

// Examples returns the quickstart block shown in the help of mode.
func Examples(mode string) string {
	switch mode {
	case ModeSingle:
		return `  # closest references of one assembly
  refseek single ./bacteria-refseq genome.fna

  # bidirectional ANI, tab output without header, 8 threads
  refseek single -b --no-header -t 8 ./bacteria-refseq genome.fna.gz`
	case ModeCohort:
		return `  # references shared by an outbreak cohort
  refseek cohort ./bacteria-refseq isolates/*.fna

  # rank by the harmonic mean, keep the raw metrics
  refseek cohort -s harmonic --metrics metrics.yaml ./bacteria-refseq a.fna b.fna c.fna`
	}
	return ""
}

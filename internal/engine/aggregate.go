// internal/engine/aggregate.go
package engine

import (
	"fmt"
	"math"

	"github.com/pkg/errors"
)

// Strategy selects how per-query values are combined into one value per
// dimension.
type Strategy string

const (
	StrategyProduct   Strategy = "product"
	StrategyMean      Strategy = "mean"
	StrategyGeometric Strategy = "geometric"
	StrategyHarmonic  Strategy = "harmonic"
)

// Strategies lists the valid strategies in help order.
var Strategies = []Strategy{StrategyProduct, StrategyMean, StrategyGeometric, StrategyHarmonic}

func (s Strategy) String() string { return string(s) }

// ParseStrategy validates a user-supplied strategy name.
func ParseStrategy(name string) (Strategy, error) {
	for _, s := range Strategies {
		if string(s) == name {
			return s, nil
		}
	}
	return "", fmt.Errorf("unknown strategy %q (want product | mean | geometric | harmonic)", name)
}

// Reduce combines values into one scalar. values must be non-empty and
// already validated to lie in (0,1].
func (s Strategy) Reduce(values []float64) float64 {
	n := float64(len(values))
	switch s {
	case StrategyMean:
		sum := 0.0
		for _, v := range values {
			sum += v
		}
		return sum / n
	case StrategyGeometric:
		logSum := 0.0
		for _, v := range values {
			logSum += math.Log(v)
		}
		return math.Exp(logSum / n)
	case StrategyHarmonic:
		inv := 0.0
		for _, v := range values {
			inv += 1 / v
		}
		return n / inv
	default:
		p := 1.0
		for _, v := range values {
			p *= v
		}
		return p
	}
}

func checkMetricValue(name string, v float64) error {
	if math.IsNaN(v) || v <= 0 || v > 1 {
		return errors.Wrapf(ErrInvalidMetricValue, "%s %v outside (0,1]", name, v)
	}
	return nil
}

// Aggregate reduces the per-query results of one candidate. Every available
// direction of every query is one sample. Combined is the product of the two
// reduced dimensions.
func Aggregate(results []CandidateResult, s Strategy) (AggregatedScore, error) {
	var sims, cons []float64
	for _, r := range results {
		for _, m := range r.Samples() {
			if err := checkMetricValue("similarity", m.Similarity); err != nil {
				return AggregatedScore{}, err
			}
			if err := checkMetricValue("conserved fraction", m.ConservedFraction); err != nil {
				return AggregatedScore{}, err
			}
			sims = append(sims, m.Similarity)
			cons = append(cons, m.ConservedFraction)
		}
	}
	if len(sims) == 0 {
		return AggregatedScore{}, errors.Wrap(ErrInvalidMetricValue, "no metric samples")
	}
	sim := s.Reduce(sims)
	con := s.Reduce(cons)
	return AggregatedScore{Similarity: sim, ConservedFraction: con, Combined: sim * con}, nil
}

package ga

// TerminationFunc reports whether evolution should stop after the given
// population was evaluated.
type TerminationFunc func(pop *Population) bool

// ExactOptimum stops once some individual scores exactly optimum.
func ExactOptimum(optimum float64) TerminationFunc {
	return func(pop *Population) bool {
		for _, ind := range pop.individuals {
			if ind != nil && ind.evaluated && ind.fitness == optimum {
				return true
			}
		}
		return false
	}
}

// FitnessThreshold stops once some individual scores at least threshold.
func FitnessThreshold(threshold float64) TerminationFunc {
	return func(pop *Population) bool {
		for _, ind := range pop.individuals {
			if ind != nil && ind.evaluated && ind.fitness >= threshold {
				return true
			}
		}
		return false
	}
}

// MaxGenerations stops on the n-th call. The returned function is stateful
// and must not be shared between runs.
func MaxGenerations(n int) TerminationFunc {
	calls := 0
	return func(_ *Population) bool {
		calls++
		return calls >= n
	}
}

// Plateau stops when the best fitness has not improved by more than epsilon
// for window consecutive calls. Stateful, like MaxGenerations.
func Plateau(window int, epsilon float64) TerminationFunc {
	var (
		seen  bool
		best  float64
		stale int
	)
	return func(pop *Population) bool {
		current, ok := bestEvaluated(pop)
		if !ok {
			return false
		}
		if !seen || current > best+epsilon {
			seen = true
			best = current
			stale = 0
			return false
		}
		stale++
		return stale >= window
	}
}

// AnyOf stops when any policy does. Every policy is consulted on each call so
// stateful policies keep counting.
func AnyOf(policies ...TerminationFunc) TerminationFunc {
	return func(pop *Population) bool {
		done := false
		for _, policy := range policies {
			if policy(pop) {
				done = true
			}
		}
		return done
	}
}

func bestEvaluated(pop *Population) (float64, bool) {
	found := false
	best := 0.0
	for _, ind := range pop.individuals {
		if ind == nil || !ind.evaluated {
			continue
		}
		if !found || ind.fitness > best {
			best = ind.fitness
			found = true
		}
	}
	return best, found
}

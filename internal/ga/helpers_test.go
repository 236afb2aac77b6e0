package ga

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// scriptedSource replays fixed draws so selection and recombination can be
// asserted exactly.
type scriptedSource struct {
	floats []float64
	ints   []int
}

func (s *scriptedSource) Float64() float64 {
	if len(s.floats) == 0 {
		panic("scripted source: no float draws left")
	}
	v := s.floats[0]
	s.floats = s.floats[1:]
	return v
}

func (s *scriptedSource) Intn(n int) int {
	if len(s.ints) == 0 {
		panic("scripted source: no int draws left")
	}
	v := s.ints[0]
	s.ints = s.ints[1:]
	return v % n
}

func populationFrom(t *testing.T, genes ...string) *Population {
	t.Helper()
	pop := NewPopulation(len(genes))
	for i, g := range genes {
		ind, err := NewIndividualFromString(g)
		require.NoError(t, err)
		require.NoError(t, pop.SetIndividual(i, ind))
	}
	return pop
}

func newTestEngine(t *testing.T, cfg Config) *Engine {
	t.Helper()
	engine, err := NewEngine(cfg)
	require.NoError(t, err)
	return engine
}

func geneStrings(pop *Population) []string {
	out := make([]string, 0, pop.Size())
	for _, ind := range pop.individuals {
		out = append(out, ind.String())
	}
	return out
}

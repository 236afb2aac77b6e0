package ga

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRankedOrdersByFitnessWithStableTies(t *testing.T) {
	engine := newTestEngine(t, Config{PopulationSize: 5})
	pop := populationFrom(t, "1000", "1100", "0100", "1111", "0010")
	require.NoError(t, engine.Evaluate(pop))

	ranked, err := pop.Ranked()
	require.NoError(t, err)

	got := make([]string, 0, len(ranked))
	for _, ind := range ranked {
		got = append(got, ind.String())
	}
	assert.Equal(t, []string{"1111", "1100", "1000", "0100", "0010"}, got)

	best, err := pop.Best()
	require.NoError(t, err)
	assert.Equal(t, "1111", best.String())
}

func TestRankedPlacesUnevaluatedLast(t *testing.T) {
	engine := newTestEngine(t, Config{PopulationSize: 3})
	pop := populationFrom(t, "0000", "0001")
	require.NoError(t, engine.Evaluate(pop))

	grown := NewPopulation(3)
	fresh, err := NewIndividualFromString("1111")
	require.NoError(t, err)
	require.NoError(t, grown.SetIndividual(0, fresh))
	for i, ind := range pop.Individuals() {
		require.NoError(t, grown.SetIndividual(i+1, ind))
	}

	last, err := grown.Fittest(2)
	require.NoError(t, err)
	assert.Same(t, fresh, last)
}

func TestRankedViewRefreshesAfterSetIndividual(t *testing.T) {
	engine := newTestEngine(t, Config{PopulationSize: 2})
	pop := populationFrom(t, "1100", "1000")
	require.NoError(t, engine.Evaluate(pop))

	top, err := pop.Fittest(0)
	require.NoError(t, err)
	assert.Equal(t, "1100", top.String())

	better, err := NewIndividualFromString("1111")
	require.NoError(t, err)
	engine.Fitness(better)
	require.NoError(t, pop.SetIndividual(1, better))

	top, err = pop.Fittest(0)
	require.NoError(t, err)
	assert.Same(t, better, top)
}

func TestPopulationIndexErrors(t *testing.T) {
	pop := NewPopulation(2)

	_, err := pop.Individual(2)
	assert.ErrorIs(t, err, ErrOutOfRange)
	assert.ErrorIs(t, pop.SetIndividual(-1, NewIndividual(4)), ErrOutOfRange)

	_, err = pop.Ranked()
	assert.ErrorIs(t, err, ErrEmptySlot)

	full := populationFrom(t, "10", "01")
	_, err = full.Fittest(5)
	assert.ErrorIs(t, err, ErrOutOfRange)

	_, err = NewPopulation(0).Best()
	assert.ErrorIs(t, err, ErrEmptyPopulation)
}

func TestIndividualGeneAccess(t *testing.T) {
	ind := NewIndividual(4)
	require.NoError(t, ind.SetGene(2, true))
	v, err := ind.Gene(2)
	require.NoError(t, err)
	assert.True(t, v)
	assert.Equal(t, "0010", ind.String())

	_, err = ind.Gene(4)
	assert.ErrorIs(t, err, ErrOutOfRange)
	assert.ErrorIs(t, ind.SetGene(-1, true), ErrOutOfRange)
	assert.Equal(t, 4, ind.Len(), "chromosome length never changes")
}

func TestIndividualCloneKeepsFitnessCache(t *testing.T) {
	engine := newTestEngine(t, Config{PopulationSize: 1})
	ind, err := NewIndividualFromString("1010")
	require.NoError(t, err)
	engine.Fitness(ind)

	clone := ind.Clone()
	assert.True(t, clone.Evaluated())
	assert.Equal(t, 0.5, clone.Fitness())

	require.NoError(t, clone.SetGene(1, true))
	assert.False(t, clone.Evaluated())
	assert.True(t, ind.Evaluated())
	assert.Equal(t, "1010", ind.String())
}

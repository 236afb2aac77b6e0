package ga

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRouletteFavoursFitterIndividuals(t *testing.T) {
	engine := newTestEngine(t, Config{PopulationSize: 2, Rand: rand.New(rand.NewSource(17))})
	pop := populationFrom(t, "10000000", "11111111")
	require.NoError(t, engine.Evaluate(pop))

	counts := map[string]int{}
	for i := 0; i < 900; i++ {
		parent, err := engine.SelectParent(pop)
		require.NoError(t, err)
		counts[parent.String()]++
	}
	// Expected split is 1:8.
	assert.Greater(t, counts["11111111"], 5*counts["10000000"])
	assert.Positive(t, counts["10000000"])
}

func TestTournamentSelectorPicksBestOfSample(t *testing.T) {
	pop := populationFrom(t, "0001", "0111", "0011")
	engine := newTestEngine(t, Config{
		PopulationSize: 3,
		Selector:       TournamentSelector{Size: 2},
		Rand:           &scriptedSource{ints: []int{0, 2, 2, 1}},
	})
	require.NoError(t, engine.Evaluate(pop))

	first, err := engine.SelectParent(pop)
	require.NoError(t, err)
	assert.Equal(t, "0011", first.String())

	second, err := engine.SelectParent(pop)
	require.NoError(t, err)
	assert.Equal(t, "0111", second.String())
}

func TestTournamentSelectorClampsSize(t *testing.T) {
	pop := populationFrom(t, "01")
	engine := newTestEngine(t, Config{
		PopulationSize: 1,
		Selector:       TournamentSelector{Size: 10},
		Seed:           1,
	})
	require.NoError(t, engine.Evaluate(pop))
	sole, err := pop.Individual(0)
	require.NoError(t, err)

	got, err := engine.SelectParent(pop)
	require.NoError(t, err)
	assert.Same(t, sole, got)
}

func TestSelectorsRejectEmptyPopulation(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	_, err := RouletteSelector{}.Select(rng, NewPopulation(0))
	assert.ErrorIs(t, err, ErrEmptyPopulation)
	_, err = TournamentSelector{}.Select(rng, NewPopulation(0))
	assert.ErrorIs(t, err, ErrEmptyPopulation)
}

func TestResolveSelector(t *testing.T) {
	for name, want := range map[string]string{"": "roulette", "roulette": "roulette", "tournament": "tournament"} {
		selector, err := ResolveSelector(name, 3)
		require.NoError(t, err)
		assert.Equal(t, want, selector.Name())
	}
	_, err := ResolveSelector("rank", 0)
	assert.Error(t, err)
}

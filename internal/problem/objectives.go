package problem

import (
	"genalg/internal/ga"
)

// DeceptiveTrap scores consecutive blocks of k genes. A block of all ones
// earns k, otherwise the block earns k-1 minus its ones, which leads hill
// climbers towards all zeros. The sum is divided by its maximum.
func DeceptiveTrap(k int) ga.FitnessFunc {
	return func(c ga.Chromosome) float64 {
		if k <= 0 {
			return 0
		}
		blocks := c.Len() / k
		if blocks == 0 {
			return 0
		}

		genes := readGenes(c)
		total := 0
		for b := 0; b < blocks; b++ {
			ones := 0
			for _, g := range genes[b*k : (b+1)*k] {
				if g {
					ones++
				}
			}
			if ones == k {
				total += k
			} else {
				total += k - ones - 1
			}
		}
		return float64(total) / float64(blocks*k)
	}
}

// HIFF rewards every aligned block of size 2, 4, ... up to the full length
// whose genes all agree, weighted by block size and divided by the maximum.
// Both the all-ones and the all-zeros chromosome are optimal.
func HIFF(c ga.Chromosome) float64 {
	n := c.Len()
	if n < 2 {
		return 0
	}

	genes := readGenes(c)
	score, maximum := 0, 0
	for size := 2; size <= n; size *= 2 {
		for start := 0; start+size <= n; start += size {
			maximum += size
			if uniform(genes[start : start+size]) {
				score += size
			}
		}
	}
	return float64(score) / float64(maximum)
}

func readGenes(c ga.Chromosome) []bool {
	genes := make([]bool, c.Len())
	for i := range genes {
		genes[i], _ = c.Test(i)
	}
	return genes
}

func uniform(genes []bool) bool {
	for _, g := range genes[1:] {
		if g != genes[0] {
			return false
		}
	}
	return true
}

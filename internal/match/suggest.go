package match

import (
	"cmp"
	"slices"

	"github.com/samber/lo"
)

// MinScore is the lowest similarity worth suggesting.
const MinScore = 0.5

// Candidate is a ranked name.
type Candidate struct {
	Name  string
	Score float64
}

// Rank scores every candidate against name, best first. Ties keep the input order.
func Rank(name string, candidates []string) []Candidate {
	ranked := lo.Map(lo.Uniq(candidates), func(c string, _ int) Candidate {
		return Candidate{Name: c, Score: Score(name, c)}
	})

	slices.SortStableFunc(ranked, func(a, b Candidate) int {
		return cmp.Compare(b.Score, a.Score)
	})

	return ranked
}

// Suggest returns up to limit candidates similar to name, excluding name itself.
func Suggest(name string, candidates []string, limit int) []string {
	good := lo.Filter(Rank(name, candidates), func(c Candidate, _ int) bool {
		return c.Name != name && c.Score >= MinScore
	})

	if len(good) > limit {
		good = good[:limit]
	}

	return lo.Map(good, func(c Candidate, _ int) string { return c.Name })
}

package scoring

import "sort"

// Rankable is anything with an aggregate score that can carry a rank.
type Rankable[T any] interface {
	AggregateScore() float64
	WithRank(rank int) T
}

// AssignRanks returns a copy of entities sorted by aggregate score, highest
// first, with standard competition ranks: ties share a rank and the next rank
// skips by the size of the tie ([10, 10, 8] -> [1, 1, 3]). Entities with equal
// scores keep their input order. The input slice is left untouched.
func AssignRanks[T Rankable[T]](entities []T) []T {
	sorted := make([]T, len(entities))
	copy(sorted, entities)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].AggregateScore() > sorted[j].AggregateScore()
	})

	ranked := make([]T, len(sorted))
	rank := 0
	for i, e := range sorted {
		if i == 0 || e.AggregateScore() != sorted[i-1].AggregateScore() {
			rank = i + 1
		}
		ranked[i] = e.WithRank(rank)
	}

	return ranked
}

type Medal string

const (
	MedalGold   Medal = "gold"
	MedalSilver Medal = "silver"
	MedalBronze Medal = "bronze"
)

// MedalFor returns the medal awarded for a rank, or "" below the podium.
func MedalFor(rank int) Medal {
	switch rank {
	case 1:
		return MedalGold
	case 2:
		return MedalSilver
	case 3:
		return MedalBronze
	default:
		return ""
	}
}

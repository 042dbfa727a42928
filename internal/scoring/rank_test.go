package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type entry struct {
	name  string
	score float64
	rank  int
}

func (e entry) AggregateScore() float64 { return e.score }

func (e entry) WithRank(rank int) entry {
	e.rank = rank
	return e
}

func TestAssignRanks(t *testing.T) {
	tests := []struct {
		name      string
		in        []entry
		wantNames []string
		wantRanks []int
	}{
		{
			name:      "empty",
			in:        nil,
			wantNames: []string{},
			wantRanks: []int{},
		},
		{
			name:      "competition ranking with ties",
			in:        []entry{{name: "c", score: 8}, {name: "a", score: 10}, {name: "d", score: 5}, {name: "b", score: 10}},
			wantNames: []string{"a", "b", "c", "d"},
			wantRanks: []int{1, 1, 3, 4},
		},
		{
			name:      "tie in the middle",
			in:        []entry{{name: "a", score: 9}, {name: "b", score: 7}, {name: "c", score: 7}, {name: "d", score: 7}, {name: "e", score: 1}},
			wantNames: []string{"a", "b", "c", "d", "e"},
			wantRanks: []int{1, 2, 2, 2, 5},
		},
		{
			name:      "all tied",
			in:        []entry{{name: "a", score: 3}, {name: "b", score: 3}},
			wantNames: []string{"a", "b"},
			wantRanks: []int{1, 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AssignRanks(tt.in)

			names := make([]string, 0, len(got))
			ranks := make([]int, 0, len(got))
			for _, e := range got {
				names = append(names, e.name)
				ranks = append(ranks, e.rank)
			}
			assert.Equal(t, tt.wantNames, names)
			assert.Equal(t, tt.wantRanks, ranks)
		})
	}
}

func TestAssignRanks_DoesNotMutateInput(t *testing.T) {
	in := []entry{{name: "low", score: 1}, {name: "high", score: 2}}

	_ = AssignRanks(in)

	assert.Equal(t, []entry{{name: "low", score: 1}, {name: "high", score: 2}}, in)
}

func TestMedalFor(t *testing.T) {
	assert.Equal(t, MedalGold, MedalFor(1))
	assert.Equal(t, MedalSilver, MedalFor(2))
	assert.Equal(t, MedalBronze, MedalFor(3))
	assert.Equal(t, Medal(""), MedalFor(4))
	assert.Equal(t, Medal(""), MedalFor(0))
}

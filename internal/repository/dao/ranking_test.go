package dao

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func rollup(id string, rank int, total float64) OverallRanking {
	return OverallRanking{
		ID:          id,
		SchoolName:  id,
		TotalPoints: total,
		Breakdown:   datatypes.NewJSONType(map[string]EventBreakdown{}),
		Medals:      datatypes.NewJSONType(Medals{}),
		Rank:        rank,
		UpdatedAt:   time.Now(),
	}
}

func TestRankingDAO_ReplaceAll(t *testing.T) {
	db := requireDB(t)
	ctx := context.Background()
	rankings := NewRankingDAO(db)

	require.NoError(t, rankings.ReplaceAll(ctx, []OverallRanking{
		rollup("sma_1", 1, 20),
		rollup("sma_2", 2, 10),
	}))

	require.NoError(t, rankings.ReplaceAll(ctx, []OverallRanking{
		rollup("sma_2", 1, 30),
		rollup("sma_3", 2, 5),
	}))

	rows, err := rankings.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "sma_2", rows[0].ID)
	assert.Equal(t, float64(30), rows[0].TotalPoints)
	assert.Equal(t, "sma_3", rows[1].ID)

	require.NoError(t, rankings.ReplaceAll(ctx, nil))

	rows, err = rankings.FindAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, rows)
}

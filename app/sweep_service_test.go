package app

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"qpcrfold/adapters/stats/transform"
)

func TestSweep_PreservesInputOrder(t *testing.T) {
	svc := NewSweepService(transform.NewWeighter(), 4)
	tables := []NamedTable{
		{Name: "geneA", Table: threeLevelTable()},
		{Name: "geneB", Table: threeLevelTable()},
		{Name: "geneC", Table: threeLevelTable()},
	}

	outcomes := svc.Run(context.Background(), tables, threeLevelConfig())
	require.Len(t, outcomes, 3)
	for i, name := range []string{"geneA", "geneB", "geneC"} {
		assert.Equal(t, name, outcomes[i].Name)
		require.NoError(t, outcomes[i].Err)
		require.NotNil(t, outcomes[i].Analysis)
		assert.Len(t, outcomes[i].Analysis.Result.FoldChange.Rows, 3)
	}
}

func TestSweep_IsolatesFailures(t *testing.T) {
	broken := threeLevelTable()
	broken.Rows[0][2] = "not-a-number"

	svc := NewSweepService(transform.NewWeighter(), 2)
	outcomes := svc.Run(context.Background(), []NamedTable{
		{Name: "good", Table: threeLevelTable()},
		{Name: "bad", Table: broken},
		{Name: "alsoGood", Table: threeLevelTable()},
	}, threeLevelConfig())

	require.Len(t, outcomes, 3)
	assert.NoError(t, outcomes[0].Err)
	assert.Error(t, outcomes[1].Err)
	assert.Nil(t, outcomes[1].Analysis)
	assert.NoError(t, outcomes[2].Err)
}

func TestSweep_MinimumParallelism(t *testing.T) {
	// a non-positive bound still admits one analysis at a time
	svc := NewSweepService(transform.NewWeighter(), 0)
	outcomes := svc.Run(context.Background(), []NamedTable{
		{Name: "solo", Table: threeLevelTable()},
	}, threeLevelConfig())
	require.Len(t, outcomes, 1)
	assert.NoError(t, outcomes[0].Err)
}

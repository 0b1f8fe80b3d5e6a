package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildFiguresSplitsByGroup(t *testing.T) {
	columns := ClassifyAll([]string{"env_group", "config", "latency_num"})
	rows := []Row{
		{"env_group": "prod", "config": "a", "latency_num": 1.0},
		{"env_group": "dev", "config": "a", "latency_num": 2.0},
	}

	figures := BuildFigures(columns, rows)

	require.Len(t, figures, 2)
	assert.Equal(t, "Env: dev", figures[0].Table.Title)
	assert.Equal(t, "Env: prod", figures[1].Table.Title)

	// Group columns are consumed by partitioning.
	for _, fig := range figures {
		require.Len(t, fig.Table.Headers, 2)
		assert.Equal(t, "config", fig.Table.Headers[0].Name)
		require.NotNil(t, fig.Chart)
		assert.Equal(t, fig.Table.Title, fig.Chart.Title)
	}
}

func TestBuildFiguresUngrouped(t *testing.T) {
	columns := ClassifyAll([]string{"config", "latency_num"})
	rows := []Row{{"config": "a", "latency_num": 1.0}}

	figures := BuildFigures(columns, rows)

	require.Len(t, figures, 1)
	assert.Equal(t, "", figures[0].Table.Title)
	assert.NotNil(t, figures[0].Chart)
}

func TestBuildFiguresNoUnitGroupGetsTableOnly(t *testing.T) {
	columns := ClassifyAll([]string{"unit_group", "config", "value_unit"})
	rows := []Row{{"unit_group": nil, "config": "a", "value_unit": 1.0}}

	figures := BuildFigures(columns, rows)

	require.Len(t, figures, 1)
	assert.NotNil(t, figures[0].Table)
	assert.Nil(t, figures[0].Chart)
}

func TestBuildFiguresEmptyRowsStillYieldTable(t *testing.T) {
	columns := ClassifyAll([]string{"config", "latency_num"})

	figures := BuildFigures(columns, nil)

	require.Len(t, figures, 1)
	assert.NotNil(t, figures[0].Table)
	assert.Empty(t, figures[0].Table.Rows)
	assert.Nil(t, figures[0].Chart)
}

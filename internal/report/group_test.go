package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPartitionByIsAPartition(t *testing.T) {
	rows := []Row{
		{"env_group": "prod", "v_num": int64(1)},
		{"env_group": "dev", "v_num": int64(2)},
		{"env_group": "prod", "v_num": int64(3)},
		{"env_group": nil, "v_num": int64(4)},
	}

	parts := PartitionBy(rows, []string{"env_group"})

	total := 0
	for _, part := range parts {
		total += len(part.Rows)
	}
	assert.Equal(t, len(rows), total, "every row lands in exactly one partition")

	// Keys sorted by value: None, dev, prod.
	require.Len(t, parts, 3)
	assert.Equal(t, Key{{Column: "env_group", Value: "None"}}, parts[0].Key)
	assert.Equal(t, Key{{Column: "env_group", Value: "dev"}}, parts[1].Key)
	assert.Equal(t, Key{{Column: "env_group", Value: "prod"}}, parts[2].Key)

	// Row order inside a partition follows input order.
	assert.Equal(t, int64(1), parts[2].Rows[0]["v_num"])
	assert.Equal(t, int64(3), parts[2].Rows[1]["v_num"])
}

func TestPartitionByOrderIndependentOfInput(t *testing.T) {
	forward := []Row{
		{"a_group": "x", "b_group": "1"},
		{"a_group": "y", "b_group": "2"},
		{"a_group": "x", "b_group": "2"},
	}
	reversed := []Row{forward[2], forward[1], forward[0]}

	keysOf := func(rows []Row) []string {
		var keys []string
		for _, part := range PartitionBy(rows, []string{"a_group", "b_group"}) {
			keys = append(keys, part.Key.Title())
		}
		return keys
	}

	assert.Equal(t, keysOf(forward), keysOf(reversed))
}

func TestPartitionByNoColumns(t *testing.T) {
	rows := []Row{{"a": int64(1)}, {"a": int64(2)}}

	parts := PartitionBy(rows, nil)

	require.Len(t, parts, 1)
	assert.Empty(t, parts[0].Key)
	assert.Len(t, parts[0].Rows, 2)
	assert.Equal(t, "", parts[0].Key.Title())
}

func TestPartitionByNoRows(t *testing.T) {
	parts := PartitionBy(nil, []string{"a_group"})

	require.Len(t, parts, 1)
	assert.Empty(t, parts[0].Key)
	assert.Empty(t, parts[0].Rows)
}

func TestPartitionByStringEquality(t *testing.T) {
	// Numeric values group by their string form.
	rows := []Row{
		{"n_group": int64(1)},
		{"n_group": "1"},
		{"n_group": float64(1)},
	}

	parts := PartitionBy(rows, []string{"n_group"})

	require.Len(t, parts, 1)
	assert.Len(t, parts[0].Rows, 3)
}

func TestKeyTitle(t *testing.T) {
	key := KeyOf(Row{"unit_group": "BYTES", "env_group": "prod"}, []string{"unit_group", "env_group"})
	assert.Equal(t, "Env: prod, Unit: BYTES", key.Title())
}

func TestStringify(t *testing.T) {
	assert.Equal(t, "None", Stringify(nil))
	assert.Equal(t, "42", Stringify(int64(42)))
	assert.Equal(t, "1.5", Stringify(1.5))
	assert.Equal(t, "text", Stringify("text"))
	assert.Equal(t, "true", Stringify(true))
}

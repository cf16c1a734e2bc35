package main

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func threeQueries() *QueryCollection {
	queries := NewQueryCollection()
	queries.Add("q1", "select 1")
	queries.Add("q2", "select 2")
	queries.Add("q3", "select 3")
	return queries
}

func TestSubsetPreservesStreamOrder(t *testing.T) {
	filtered, err := threeQueries().Subset([]string{"q3", "q1"})
	require.Nil(t, err)
	require.Equal(t, []string{"q1", "q3"}, filtered.Names())
}

func TestSubsetMissingQuery(t *testing.T) {
	_, err := threeQueries().Subset([]string{"q1", "q9"})
	require.ErrorContains(t, err, "q9")
	require.NotContains(t, err.Error(), "q1")
}

func TestSubsetReportsAllMissing(t *testing.T) {
	_, err := threeQueries().Subset([]string{"q7", "q2", "q9"})
	require.ErrorContains(t, err, "q7")
	require.ErrorContains(t, err, "q9")
}

package main

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValidColumnNames(t *testing.T) {
	require.Equal(t,
		[]string{"_abc", "ok_col0", "ok_col1", "a_b"},
		ValidColumnNames([]string{"1abc", "ok_col", "ok_col", "a-b"}))
}

func TestValidColumnNamesKeepsValidUnique(t *testing.T) {
	names := []string{"ss_item_sk", "sum_sales", "_hidden", "Count42"}
	require.Equal(t, names, ValidColumnNames(names))
}

func TestValidColumnNamesRewrites(t *testing.T) {
	require.Equal(t, []string{"count___"}, ValidColumnNames([]string{"count(*)"}))
	require.Equal(t, []string{"_"}, ValidColumnNames([]string{""}))
	require.Equal(t, []string{"_9"}, ValidColumnNames([]string{"99"}))
	require.Equal(t, []string{"avg_ss_quantity_"}, ValidColumnNames([]string{"avg(ss_quantity)"}))
}

func TestValidColumnNamesSuffixesEveryOccurrence(t *testing.T) {
	require.Equal(t,
		[]string{"c0", "c1", "c2", "d"},
		ValidColumnNames([]string{"c", "c", "c", "d"}))
}

func TestValidColumnNamesDeduplicatesAfterRewrite(t *testing.T) {
	// distinct inputs colliding after sanitization count as duplicates
	require.Equal(t,
		[]string{"a_b0", "a_b1"},
		ValidColumnNames([]string{"a-b", "a.b"}))
}

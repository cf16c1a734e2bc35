package main

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

const sampleStream = `-- comment produced by the query generator
-- start query 1 in stream 0 using template query96.tpl
select count(*)
from store_sales
;

-- end query 1 in stream 0 using template query96.tpl
-- start query 2 in stream 0 using template query14.tpl
create temp view cross_items as
select i_item_sk as ss_item_sk from item
;

select count(*) from cross_items
;

-- end query 2 in stream 0 using template query14.tpl
-- start query 3 in stream 0 using template query7.tpl
select i_item_id
from store_sales, item
where ss_item_sk = i_item_sk
;

-- end query 3 in stream 0 using template query7.tpl
`

func TestParseQueryStream(t *testing.T) {
	queries, err := ParseQueryStream(sampleStream)
	require.Nil(t, err)
	require.Equal(t, []string{"query96", "query14_part1", "query14_part2", "query7"}, queries.Names())

	query96, ok := queries.Get("query96")
	require.True(t, ok)
	require.Contains(t, query96.Query, "-- start query 1 in stream 0 using template query96.tpl")
	require.Contains(t, query96.Query, "from store_sales")
}

func TestParseSplitsSpecialQuery(t *testing.T) {
	queries, err := ParseQueryStream(sampleStream)
	require.Nil(t, err)

	part1, ok := queries.Get("query14_part1")
	require.True(t, ok)
	part2, ok := queries.Get("query14_part2")
	require.True(t, ok)

	require.Contains(t, part1.Query, "create temp view cross_items")
	require.NotContains(t, part1.Query, "count(*)")
	require.Contains(t, part2.Query, "select count(*) from cross_items")
	require.NotContains(t, part2.Query, "create temp view")

	// both parts stay stand-alone query blocks
	for _, part := range []Query{part1, part2} {
		require.Contains(t, part.Query, "-- start query 2 in stream 0 using template query14.tpl")
		require.Equal(t, 1, len(SplitStatements(part.Query)))
	}

	_, ok = queries.Get("query14")
	require.False(t, ok)
}

func TestParseRoundTrip(t *testing.T) {
	queries, err := ParseQueryStream(sampleStream)
	require.Nil(t, err)
	original, ok := queries.Get("query96")
	require.True(t, ok)

	reparsed, err := ParseQueryStream(original.Query)
	require.Nil(t, err)
	require.Equal(t, 1, reparsed.Len())
	unit, ok := reparsed.Get("query96")
	require.True(t, ok)
	require.Equal(t, original, unit)
}

func TestParseKeepsStreamOrder(t *testing.T) {
	stream := ""
	expected := make([]string, 0)
	for i := 1; i <= 10; i++ {
		stream += fmt.Sprintf("-- start query %v in stream 0 using template query%v.tpl\nselect %v;\n", i, 100+i, i)
		expected = append(expected, fmt.Sprintf("query%v", 100+i))
	}
	queries, err := ParseQueryStream(stream)
	require.Nil(t, err)
	require.Equal(t, expected, queries.Names())
}

func TestParseDuplicateNameOverwrites(t *testing.T) {
	stream := "-- start query 1 in stream 0 using template query5.tpl\nselect 1;\n" +
		"-- start query 2 in stream 0 using template query6.tpl\nselect 2;\n" +
		"-- start query 3 in stream 0 using template query5.tpl\nselect 3;\n"
	queries, err := ParseQueryStream(stream)
	require.Nil(t, err)
	require.Equal(t, []string{"query5", "query6"}, queries.Names())
	query5, _ := queries.Get("query5")
	require.Contains(t, query5.Query, "select 3")
}

func TestParseMissingTemplateMarker(t *testing.T) {
	_, err := ParseQueryStream("-- start query 1 in stream 0\nselect 1;\n")
	require.ErrorContains(t, err, "malformed query block #1")
}

func TestParseInvalidTemplateName(t *testing.T) {
	_, err := ParseQueryStream("-- start query 1 in stream 0 using template bad name.tpl\nselect 1;\n")
	require.ErrorContains(t, err, "invalid template name")
}

func TestSplitStatements(t *testing.T) {
	require.Equal(t,
		[]string{"select 1", " select 2"},
		SplitStatements("select 1; select 2;"))

	// terminators inside strings and comments do not split
	require.Equal(t, 1, len(SplitStatements(`select ';' as c from t;`)))
	require.Equal(t, 1, len(SplitStatements("select 'it''s; quoted';")))
	require.Equal(t, 1, len(SplitStatements("select 1 -- inline; note\nfrom t;")))
	require.Equal(t, 1, len(SplitStatements("/* lead; in */ select 1;")))
	require.Equal(t, 1, len(SplitStatements(`select ";" from "we;ird";`)))

	// comment-only trailer segments are dropped
	require.Equal(t, 1, len(SplitStatements("select 1;\n-- end query 1\n")))
	require.Equal(t, 0, len(SplitStatements("  \n-- nothing here\n")))
}

func TestHasSelectToken(t *testing.T) {
	require.True(t, hasSelectToken("select 1"))
	require.True(t, hasSelectToken("with v as (SELECT 1) insert into t select * from v"))
	require.False(t, hasSelectToken("insert into selections values (1)"))
	require.False(t, hasSelectToken("-- select in a comment\ndrop table t"))
	require.False(t, hasSelectToken("insert into t values ('select')"))
}

func TestQueryCollectionSemantics(t *testing.T) {
	queries := NewQueryCollection()
	queries.Add("a", "1")
	queries.Add("b", "2")
	queries.Add("a", "3")
	require.Equal(t, 2, queries.Len())
	require.Equal(t, []string{"a", "b"}, queries.Names())
	a, ok := queries.Get("a")
	require.True(t, ok)
	require.Equal(t, "3", a.Query)
	_, ok = queries.Get("c")
	require.False(t, ok)
}

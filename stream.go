package main

import (
	"fmt"
	"strings"
	"unicode"
)

// QueryStartMarker delimits query blocks inside a generated query stream,
// e.g. "-- start query 32 in stream 0 using template query98.tpl".
const QueryStartMarker = "-- start"

const templateMarker = "template "
const templateSuffix = ".tpl"

// splitTemplates are the templates known to produce two sequential statements.
var splitTemplates = map[string]bool{
	"query14": true,
	"query23": true,
	"query24": true,
	"query39": true,
}

type Query struct {
	Name  string
	Query string
}

// QueryCollection keeps queries addressable by name while preserving the
// stream order, which defines the run sequence.
type QueryCollection struct {
	entries []Query
	index   map[string]int
}

func NewQueryCollection() *QueryCollection {
	return &QueryCollection{index: make(map[string]int)}
}

// Add inserts a query at the end of the collection. A repeated name replaces
// the earlier body in place, keeping the position of the first occurrence.
func (c *QueryCollection) Add(name string, query string) {
	if at, ok := c.index[name]; ok {
		c.entries[at].Query = query
		return
	}
	c.index[name] = len(c.entries)
	c.entries = append(c.entries, Query{Name: name, Query: query})
}

func (c *QueryCollection) Get(name string) (Query, bool) {
	at, ok := c.index[name]
	if !ok {
		return Query{}, false
	}
	return c.entries[at], true
}

func (c *QueryCollection) Len() int { return len(c.entries) }

// Entries returns the queries in stream order. The slice is shared, callers
// must not mutate it.
func (c *QueryCollection) Entries() []Query { return c.entries }

func (c *QueryCollection) Names() []string {
	names := make([]string, 0, len(c.entries))
	for _, entry := range c.entries {
		names = append(names, entry.Name)
	}
	return names
}

// ParseQueryStream splits the stream text produced by the query generator
// into independently executable queries keyed by template name. Templates
// that emit two statements are stored as <name>_part1 and <name>_part2, in
// that order. Every stored body starts with the QueryStartMarker so it stays
// a valid stand-alone query block.
func ParseQueryStream(stream string) (*QueryCollection, error) {
	chunks := strings.Split(stream, QueryStartMarker)
	if len(chunks) > 0 {
		// everything before the first marker is generator boilerplate
		chunks = chunks[1:]
	}
	queries := NewQueryCollection()
	for at, chunk := range chunks {
		name, err := templateName(chunk)
		if err != nil {
			return nil, fmt.Errorf("malformed query block #%v: %w", at+1, err)
		}
		statements := SplitStatements(chunk)
		if len(statements) > 1 && (splitTemplates[name] || hasSelectToken(statements[1])) {
			part1, part2 := splitSpecialQuery(chunk, statements)
			queries.Add(name+"_part1", QueryStartMarker+part1)
			queries.Add(name+"_part2", QueryStartMarker+part2)
		} else {
			queries.Add(name, QueryStartMarker+chunk)
		}
	}
	return queries, nil
}

// splitSpecialQuery partitions a two-statement chunk into two self-contained
// parts. The second part gets the chunk's header line re-attached so both
// parts carry the template annotation.
func splitSpecialQuery(chunk string, statements []string) (string, string) {
	head := chunk
	if eol := strings.IndexByte(chunk, '\n'); eol >= 0 {
		head = chunk[:eol+1]
	}
	return statements[0] + ";", head + statements[1] + ";"
}

func templateName(chunk string) (string, error) {
	header := chunk
	if eol := strings.IndexByte(chunk, '\n'); eol >= 0 {
		header = chunk[:eol]
	}
	from := strings.Index(header, templateMarker)
	to := strings.Index(header, templateSuffix)
	if from < 0 || to < 0 || to <= from+len(templateMarker) {
		return "", fmt.Errorf("no template marker in header %q", strings.TrimSpace(header))
	}
	name := header[from+len(templateMarker) : to]
	for _, c := range name {
		if !unicode.IsLetter(c) && !unicode.IsDigit(c) {
			return "", fmt.Errorf("invalid template name %q", name)
		}
	}
	return name, nil
}

// SplitStatements splits SQL text on top-level statement terminators.
// Semicolons inside single-quoted strings (with '' escapes), double-quoted
// identifiers, line comments and block comments do not terminate a
// statement. Segments holding only comments and whitespace, like the
// trailing "-- end ..." annotation of a stream block, are dropped. The
// returned segments are raw slices of the input without the terminator.
func SplitStatements(text string) []string {
	statements := make([]string, 0, 2)
	from := 0
	at := 0
	for at < len(text) {
		switch c := text[at]; {
		case c == '\'':
			at = skipQuoted(text, at+1, '\'')
		case c == '"':
			at = skipQuoted(text, at+1, '"')
		case c == '-' && at+1 < len(text) && text[at+1] == '-':
			at = skipLineComment(text, at+2)
		case c == '/' && at+1 < len(text) && text[at+1] == '*':
			at = skipBlockComment(text, at+2)
		case c == ';':
			if segment := text[from:at]; isExecutable(segment) {
				statements = append(statements, segment)
			}
			at++
			from = at
		default:
			at++
		}
	}
	if segment := text[from:]; isExecutable(segment) {
		statements = append(statements, segment)
	}
	return statements
}

// skipQuoted scans past a quoted region opened at from-1. A doubled quote
// character is an escape, not a terminator.
func skipQuoted(text string, from int, quote byte) int {
	for from < len(text) {
		if text[from] != quote {
			from++
			continue
		}
		if from+1 < len(text) && text[from+1] == quote {
			from += 2
			continue
		}
		return from + 1
	}
	return from
}

func skipLineComment(text string, from int) int {
	for from < len(text) && text[from] != '\n' {
		from++
	}
	return from
}

func skipBlockComment(text string, from int) int {
	for from+1 < len(text) {
		if text[from] == '*' && text[from+1] == '/' {
			return from + 2
		}
		from++
	}
	return len(text)
}

// isExecutable reports whether the segment contains anything besides
// whitespace and comments.
func isExecutable(segment string) bool {
	at := 0
	for at < len(segment) {
		switch c := segment[at]; {
		case c == '-' && at+1 < len(segment) && segment[at+1] == '-':
			at = skipLineComment(segment, at+2)
		case c == '/' && at+1 < len(segment) && segment[at+1] == '*':
			at = skipBlockComment(segment, at+2)
		case unicode.IsSpace(rune(c)):
			at++
		default:
			return true
		}
	}
	return false
}

// hasSelectToken reports whether the statement contains a select keyword
// outside of strings and comments.
func hasSelectToken(statement string) bool {
	at := 0
	for at < len(statement) {
		switch c := statement[at]; {
		case c == '\'':
			at = skipQuoted(statement, at+1, '\'')
		case c == '"':
			at = skipQuoted(statement, at+1, '"')
		case c == '-' && at+1 < len(statement) && statement[at+1] == '-':
			at = skipLineComment(statement, at+2)
		case c == '/' && at+1 < len(statement) && statement[at+1] == '*':
			at = skipBlockComment(statement, at+2)
		case isWordStart(c):
			from := at
			for at < len(statement) && isWordPart(statement[at]) {
				at++
			}
			if strings.EqualFold(statement[from:at], "select") {
				return true
			}
		default:
			at++
		}
	}
	return false
}

func isWordStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isWordPart(c byte) bool {
	return isWordStart(c) || (c >= '0' && c <= '9')
}

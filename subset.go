package main

import (
	"fmt"
	"strings"
)

// Subset filters the collection down to the requested query names. The
// requested list is a membership filter only: the result keeps the
// collection's original stream order. Every unknown name is reported before
// failing.
func (c *QueryCollection) Subset(names []string) (*QueryCollection, error) {
	requested := make(map[string]bool, len(names))
	missing := make([]string, 0)
	for _, name := range names {
		if _, ok := c.index[name]; !ok {
			missing = append(missing, name)
		}
		requested[name] = true
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("queries missing from the stream: %v", strings.Join(missing, ", "))
	}
	filtered := NewQueryCollection()
	for _, entry := range c.entries {
		if requested[entry.Name] {
			filtered.Add(entry.Name, entry.Query)
		}
	}
	return filtered, nil
}

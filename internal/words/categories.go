package words

import (
	"fmt"
	"strings"
)

// Categories is the fixed set of Hangman word lists.
type Categories struct {
	names []string
	lists map[string][]string
}

// NewCategories normalises every entry. Names keep the order of names.
func NewCategories(names []string, lists map[string][]string) *Categories {
	c := &Categories{lists: make(map[string][]string, len(names))}
	for _, n := range names {
		key := strings.ToLower(strings.TrimSpace(n))
		var out []string
		for _, w := range lists[n] {
			if w = Normalize(w); validEntry(w) {
				out = append(out, w)
			}
		}
		if len(out) == 0 {
			continue
		}
		if _, dup := c.lists[key]; !dup {
			c.names = append(c.names, key)
		}
		c.lists[key] = append(c.lists[key], out...)
	}
	return c
}

// ParseCategories reads "[name]" headers followed by one entry per line.
func ParseCategories(lines []string) (*Categories, error) {
	var names []string
	lists := map[string][]string{}
	cur := ""
	for i, line := range lines {
		if strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]") {
			cur = strings.TrimSpace(line[1 : len(line)-1])
			if cur == "" {
				return nil, fmt.Errorf("categories line %d: empty name", i+1)
			}
			if _, ok := lists[cur]; !ok {
				names = append(names, cur)
				lists[cur] = nil
			}
			continue
		}
		if cur == "" {
			return nil, fmt.Errorf("categories line %d: entry %q before any [category]", i+1, line)
		}
		lists[cur] = append(lists[cur], line)
	}
	c := NewCategories(names, lists)
	if len(c.names) == 0 {
		return nil, fmt.Errorf("categories: no words loaded")
	}
	return c, nil
}

// validEntry accepts A–Z with single inner spaces.
func validEntry(w string) bool {
	if w == "" || strings.HasPrefix(w, " ") || strings.HasSuffix(w, " ") || strings.Contains(w, "  ") {
		return false
	}
	return IsAlpha(strings.ReplaceAll(w, " ", ""))
}

// Names returns category names in load order.
func (c *Categories) Names() []string { return c.names }

// Words returns the list for name (case-insensitive).
func (c *Categories) Words(name string) ([]string, bool) {
	l, ok := c.lists[strings.ToLower(strings.TrimSpace(name))]
	return l, ok
}

// All returns the union of every list in category order.
func (c *Categories) All() []string {
	var out []string
	for _, n := range c.names {
		out = append(out, c.lists[n]...)
	}
	return out
}

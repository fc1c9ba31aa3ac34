package catalog

import (
	"strings"
)

// Kind partitions catalogue entries into the vocabularies rows are
// grounded against.
type Kind string

const (
	KindManufacturer Kind = "MANUFACTURER"
	KindFinish       Kind = "FINISH"
	KindCategory     Kind = "CATEGORY"
)

// Entry is one canonical vocabulary term plus its accepted aliases.
type Entry struct {
	Kind      Kind     `json:"kind" yaml:"kind"`
	Canonical string   `json:"canonical" yaml:"canonical"`
	Aliases   []string `json:"aliases,omitempty" yaml:"aliases,omitempty"`
}

// Lookup is the grounding collaborator the router queries. A miss is not an
// error; it becomes a named violation on the row.
type Lookup interface {
	Match(kind Kind, text string) (canonical string, ok bool)
	Version() string
}

// Catalog is an in-memory, versioned reference catalogue. Built once from
// repository rows (or a seed file) and read-only afterwards.
type Catalog struct {
	version string
	index   map[Kind]map[string]string // normalized term -> canonical
}

// New builds a catalogue from entries. Later entries win on alias collision.
func New(version string, entries []Entry) *Catalog {
	c := &Catalog{
		version: version,
		index:   map[Kind]map[string]string{},
	}
	for _, e := range entries {
		m := c.index[e.Kind]
		if m == nil {
			m = map[string]string{}
			c.index[e.Kind] = m
		}
		m[normalize(e.Canonical)] = e.Canonical
		for _, a := range e.Aliases {
			m[normalize(a)] = e.Canonical
		}
	}
	return c
}

func (c *Catalog) Version() string { return c.version }

// Match grounds free text against the vocabulary for one kind. Exact
// normalized match first, then containment either way — extracted text often
// carries the canonical term inside a longer description. Among several
// containing terms the longest wins (ties broken lexically), keeping the
// result stable across runs and preferring the most specific vocabulary hit.
func (c *Catalog) Match(kind Kind, text string) (string, bool) {
	needle := normalize(text)
	if needle == "" {
		return "", false
	}
	terms := c.index[kind]
	if canonical, ok := terms[needle]; ok {
		return canonical, true
	}
	var bestTerm, bestCanonical string
	for term, canonical := range terms {
		if len(term) < 3 {
			continue // too short to trust containment
		}
		if !strings.Contains(needle, term) && !strings.Contains(term, needle) {
			continue
		}
		if len(term) > len(bestTerm) || (len(term) == len(bestTerm) && term < bestTerm) {
			bestTerm, bestCanonical = term, canonical
		}
	}
	if bestTerm == "" {
		return "", false
	}
	return bestCanonical, true
}

// Terms returns the normalized term count for one kind. Used by the CLI to
// report catalogue size after load.
func (c *Catalog) Terms(kind Kind) int {
	return len(c.index[kind])
}

func normalize(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(strings.TrimSpace(s))), " ")
}

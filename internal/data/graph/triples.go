package graph

import (
	"context"
	"fmt"
	"strings"
	"unicode"
)

// Triple is one extracted (subject, relation, object) fact. It is
// consumed by AddTriples and never stored in this form.
type Triple struct {
	Subject  string `json:"subject"`
	Relation string `json:"relation"`
	Object   string `json:"object"`
}

// SanitizeRelation canonicalizes a free-text relation label into a
// Cypher-safe relationship type: whitespace becomes "_", anything
// outside [A-Za-z0-9_] is stripped, and the result is upper-cased.
// An empty result means the label was noise and the owning triple
// should be dropped.
func SanitizeRelation(label string) string {
	var b strings.Builder
	for _, r := range label {
		switch {
		case unicode.IsSpace(r):
			b.WriteByte('_')
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
			b.WriteRune(r)
		}
	}
	return strings.ToUpper(b.String())
}

type relationGroup struct {
	Type  string
	Pairs [][]string
}

// groupTriples buckets triples by sanitized relation type, preserving
// first-seen order so write statements are issued deterministically.
// Triples whose relation sanitizes to "" are dropped here.
func groupTriples(triples []Triple) []relationGroup {
	index := make(map[string]int)
	groups := make([]relationGroup, 0)
	for _, t := range triples {
		rel := SanitizeRelation(t.Relation)
		if rel == "" {
			continue
		}
		i, ok := index[rel]
		if !ok {
			i = len(groups)
			index[rel] = i
			groups = append(groups, relationGroup{Type: rel})
		}
		groups[i].Pairs = append(groups[i].Pairs, []string{t.Subject, t.Object})
	}
	return groups
}

// AddTriples upserts the given facts. One write session is issued per
// distinct sanitized relation type; within a group the MERGE absorbs
// duplicate pairs, so re-ingesting the same fact never duplicates a
// node or an edge. Groups are not transactionally joined: if a later
// group fails, earlier groups stay committed and the error names the
// failing relation type.
func (s *Store) AddTriples(ctx context.Context, triples []Triple) error {
	groups := groupTriples(triples)
	for _, g := range groups {
		// The relation type is a structural label, not data, so it is
		// interpolated; sanitization guarantees it is backtick-safe.
		cypher := fmt.Sprintf(
			"UNWIND $pairs AS pair\n"+
				"MERGE (s:Entity {name: pair[0]})\n"+
				"MERGE (o:Entity {name: pair[1]})\n"+
				"MERGE (s)-[:`%s`]->(o)", g.Type)
		if err := s.exec.ExecuteWrite(ctx, cypher, map[string]any{"pairs": g.Pairs}); err != nil {
			return fmt.Errorf("write relation group %s: %w", g.Type, err)
		}
		s.log.Debug("relation group written", "type", g.Type, "pairs", len(g.Pairs))
	}
	return nil
}

package graph

import (
	"context"
	"fmt"
)

// SubgraphLimit caps how many neighborhood rows a single question can
// pull back. The visualization is a snippet for human inspection, not
// a neighborhood dump, so this is a hard ceiling.
const SubgraphLimit = 25

// SubgraphRow is one edge incident to a matched entity plus its
// neighbor. Request-scoped; used only to build the visual model.
type SubgraphRow struct {
	Node         string `json:"node"`
	Relationship string `json:"relationship"`
	Target       string `json:"target"`
}

const subgraphQuery = `
UNWIND $entities AS entityName
MATCH (n:Entity)-[r]-(m)
WHERE toLower(n.name) CONTAINS toLower(entityName)
RETURN n.name AS node, type(r) AS relationship, m.name AS target
LIMIT 25`

// FindSubgraph returns the bounded neighborhood of every Entity whose
// name contains one of the candidate strings, case-insensitively.
// An empty candidate set short-circuits to an empty result without
// touching the store.
func (s *Store) FindSubgraph(ctx context.Context, entities []string) ([]SubgraphRow, error) {
	if len(entities) == 0 {
		return nil, nil
	}

	rows, err := s.exec.ExecuteRead(ctx, subgraphQuery, map[string]any{"entities": entities})
	if err != nil {
		return nil, fmt.Errorf("find subgraph: %w", err)
	}

	out := make([]SubgraphRow, 0, len(rows))
	for _, row := range rows {
		if len(out) == SubgraphLimit {
			break
		}
		sr := SubgraphRow{
			Node:         stringValue(row["node"]),
			Relationship: stringValue(row["relationship"]),
			Target:       stringValue(row["target"]),
		}
		out = append(out, sr)
	}
	return out, nil
}

func stringValue(v any) string {
	s, _ := v.(string)
	return s
}

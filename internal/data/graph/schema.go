package graph

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// Schema is a point-in-time snapshot of the store's catalog. It is
// re-read before every prompt build; ingestion may have changed it.
type Schema struct {
	NodeLabels        []string `json:"node_labels"`
	RelationshipTypes []string `json:"relationship_types"`
}

// Schema fetches node labels and relationship types. The two catalog
// queries are independent, so they run on parallel read sessions. An
// empty graph yields empty slices, not an error.
func (s *Store) Schema(ctx context.Context) (Schema, error) {
	var labels, relTypes []string

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		rows, err := s.exec.ExecuteRead(gctx, `CALL db.labels() YIELD label`, nil)
		if err != nil {
			return fmt.Errorf("fetch node labels: %w", err)
		}
		labels = columnStrings(rows, "label")
		return nil
	})
	g.Go(func() error {
		rows, err := s.exec.ExecuteRead(gctx, `CALL db.relationshipTypes() YIELD relationshipType`, nil)
		if err != nil {
			return fmt.Errorf("fetch relationship types: %w", err)
		}
		relTypes = columnStrings(rows, "relationshipType")
		return nil
	})
	if err := g.Wait(); err != nil {
		return Schema{}, err
	}

	return Schema{NodeLabels: labels, RelationshipTypes: relTypes}, nil
}

func columnStrings(rows []map[string]any, column string) []string {
	out := make([]string, 0, len(rows))
	for _, row := range rows {
		if v, ok := row[column].(string); ok {
			out = append(out, v)
		}
	}
	return out
}

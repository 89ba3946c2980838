package graph

import (
	"context"
	"fmt"
	"strings"
	"testing"
)

func TestFindSubgraphEmptyEntitiesShortCircuits(t *testing.T) {
	exec := &fakeExecutor{}
	store := testStore(t, exec)

	rows, err := store.FindSubgraph(context.Background(), nil)
	if err != nil {
		t.Fatalf("FindSubgraph: %v", err)
	}
	if len(rows) != 0 {
		t.Fatalf("expected empty result, got %d rows", len(rows))
	}
	if len(exec.reads) != 0 {
		t.Fatalf("expected zero store queries, got %d", len(exec.reads))
	}
}

func TestFindSubgraphQueryShape(t *testing.T) {
	exec := &fakeExecutor{readRows: map[string][]map[string]any{
		"CONTAINS": {
			{"node": "Acme", "relationship": "FOUNDED", "target": "Labs"},
		},
	}}
	store := testStore(t, exec)

	rows, err := store.FindSubgraph(context.Background(), []string{"Acme"})
	if err != nil {
		t.Fatalf("FindSubgraph: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
	if rows[0].Node != "Acme" || rows[0].Relationship != "FOUNDED" || rows[0].Target != "Labs" {
		t.Errorf("unexpected row: %+v", rows[0])
	}

	q := exec.reads[0].Cypher
	if !strings.Contains(q, "LIMIT 25") {
		t.Errorf("query must carry the hard row cap: %s", q)
	}
	if !strings.Contains(q, "toLower(n.name) CONTAINS toLower(entityName)") {
		t.Errorf("query must match names case-insensitively: %s", q)
	}
	if got := exec.reads[0].Params["entities"]; fmt.Sprint(got) != "[Acme]" {
		t.Errorf("unexpected entities parameter: %v", got)
	}
}

func TestFindSubgraphCapsRows(t *testing.T) {
	many := make([]map[string]any, 0, 40)
	for i := 0; i < 40; i++ {
		many = append(many, map[string]any{
			"node":         "Acme",
			"relationship": "FOUNDED",
			"target":       fmt.Sprintf("T%d", i),
		})
	}
	exec := &fakeExecutor{readRows: map[string][]map[string]any{"CONTAINS": many}}
	store := testStore(t, exec)

	rows, err := store.FindSubgraph(context.Background(), []string{"Acme"})
	if err != nil {
		t.Fatalf("FindSubgraph: %v", err)
	}
	if len(rows) > SubgraphLimit {
		t.Fatalf("expected at most %d rows, got %d", SubgraphLimit, len(rows))
	}
}

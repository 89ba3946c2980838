package graph

import (
	"context"
	"testing"
)

func TestSchemaSnapshot(t *testing.T) {
	exec := &fakeExecutor{readRows: map[string][]map[string]any{
		"db.labels": {
			{"label": "Entity"},
		},
		"db.relationshipTypes": {
			{"relationshipType": "FOUNDED"},
			{"relationshipType": "LOCATED_IN"},
		},
	}}
	store := testStore(t, exec)

	schema, err := store.Schema(context.Background())
	if err != nil {
		t.Fatalf("Schema: %v", err)
	}
	if len(schema.NodeLabels) != 1 || schema.NodeLabels[0] != "Entity" {
		t.Errorf("unexpected node labels: %v", schema.NodeLabels)
	}
	if len(schema.RelationshipTypes) != 2 {
		t.Errorf("unexpected relationship types: %v", schema.RelationshipTypes)
	}
	if len(exec.reads) != 2 {
		t.Errorf("expected 2 catalog queries, got %d", len(exec.reads))
	}
}

func TestSchemaToleratesEmptyGraph(t *testing.T) {
	store := testStore(t, &fakeExecutor{})

	schema, err := store.Schema(context.Background())
	if err != nil {
		t.Fatalf("Schema on empty graph: %v", err)
	}
	if len(schema.NodeLabels) != 0 || len(schema.RelationshipTypes) != 0 {
		t.Errorf("expected empty schema, got %+v", schema)
	}
}

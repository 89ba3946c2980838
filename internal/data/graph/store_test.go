package graph

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/docugraph/docugraph-backend/internal/platform/logger"
)

type executedStatement struct {
	Cypher string
	Params map[string]any
}

// fakeExecutor records statements and replays canned results so store
// logic can be exercised without a live database. Guarded by a mutex
// because schema catalog queries run on parallel sessions.
type fakeExecutor struct {
	mu        sync.Mutex
	writes    []executedStatement
	reads     []executedStatement
	readRows  map[string][]map[string]any
	failWrite map[string]error
	readErr   error
}

func (f *fakeExecutor) ExecuteWrite(ctx context.Context, cypher string, params map[string]any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.writes = append(f.writes, executedStatement{Cypher: cypher, Params: params})
	for needle, err := range f.failWrite {
		if containsStr(cypher, needle) {
			return err
		}
	}
	return nil
}

func (f *fakeExecutor) ExecuteRead(ctx context.Context, cypher string, params map[string]any) ([]map[string]any, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reads = append(f.reads, executedStatement{Cypher: cypher, Params: params})
	if f.readErr != nil {
		return nil, f.readErr
	}
	for needle, rows := range f.readRows {
		if containsStr(cypher, needle) {
			return rows, nil
		}
	}
	return nil, nil
}

func containsStr(haystack, needle string) bool {
	return needle != "" && strings.Contains(haystack, needle)
}

func testStore(t *testing.T, exec Executor) *Store {
	t.Helper()
	log, err := logger.New("development")
	if err != nil {
		t.Fatalf("init logger: %v", err)
	}
	t.Cleanup(log.Sync)
	return newStoreWithExecutor(exec, log)
}

func TestHasData(t *testing.T) {
	exec := &fakeExecutor{readRows: map[string][]map[string]any{
		"MATCH (n) RETURN n LIMIT 1": {{"n": "something"}},
	}}
	store := testStore(t, exec)

	ok, err := store.HasData(context.Background())
	if err != nil {
		t.Fatalf("HasData: %v", err)
	}
	if !ok {
		t.Fatalf("expected HasData true")
	}

	empty := testStore(t, &fakeExecutor{})
	ok, err = empty.HasData(context.Background())
	if err != nil {
		t.Fatalf("HasData on empty: %v", err)
	}
	if ok {
		t.Fatalf("expected HasData false on empty store")
	}
}

func TestRunReadPropagatesFailure(t *testing.T) {
	cause := errors.New("connection reset")
	store := testStore(t, &fakeExecutor{readErr: cause})

	_, err := store.RunRead(context.Background(), "MATCH (n:Entity) RETURN n.name")
	if err == nil {
		t.Fatalf("expected error")
	}
	if !errors.Is(err, cause) {
		t.Fatalf("expected wrapped cause, got %v", err)
	}
}

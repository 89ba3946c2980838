package graph

import (
	"context"
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/docugraph/docugraph-backend/internal/platform/logger"
	"github.com/docugraph/docugraph-backend/internal/platform/neo4jdb"
)

// Executor runs one Cypher statement inside its own scoped session.
// The session is closed before the call returns, success or failure.
type Executor interface {
	ExecuteWrite(ctx context.Context, cypher string, params map[string]any) error
	ExecuteRead(ctx context.Context, cypher string, params map[string]any) ([]map[string]any, error)
}

// Store is the durable owner of Entity nodes and their typed
// relationships. Every operation acquires and releases its own
// session; nothing is shared between requests beyond the driver.
type Store struct {
	exec Executor
	log  *logger.Logger
}

func NewStore(client *neo4jdb.Client, log *logger.Logger) *Store {
	return &Store{
		exec: &neo4jExecutor{client: client},
		log:  log.With("store", "Graph"),
	}
}

func newStoreWithExecutor(exec Executor, log *logger.Logger) *Store {
	return &Store{exec: exec, log: log.With("store", "Graph")}
}

// RunRead executes an already-vetted read-only statement and returns
// rows as column-to-value maps. Callers are responsible for having
// passed the statement through the safety guard first.
func (s *Store) RunRead(ctx context.Context, cypher string) ([]map[string]any, error) {
	rows, err := s.exec.ExecuteRead(ctx, cypher, nil)
	if err != nil {
		return nil, fmt.Errorf("run read query: %w", err)
	}
	return rows, nil
}

// HasData reports whether at least one node exists.
func (s *Store) HasData(ctx context.Context) (bool, error) {
	rows, err := s.exec.ExecuteRead(ctx, `MATCH (n) RETURN n LIMIT 1`, nil)
	if err != nil {
		return false, fmt.Errorf("check graph exists: %w", err)
	}
	return len(rows) > 0, nil
}

// Clear removes every node and relationship. Administrative only.
func (s *Store) Clear(ctx context.Context) error {
	if err := s.exec.ExecuteWrite(ctx, `MATCH (n) DETACH DELETE n`, nil); err != nil {
		return fmt.Errorf("clear graph: %w", err)
	}
	s.log.Info("graph cleared")
	return nil
}

type neo4jExecutor struct {
	client *neo4jdb.Client
}

func (e *neo4jExecutor) ExecuteWrite(ctx context.Context, cypher string, params map[string]any) error {
	session := e.client.Driver.NewSession(ctx, neo4j.SessionConfig{
		AccessMode:   neo4j.AccessModeWrite,
		DatabaseName: e.client.Database,
	})
	defer session.Close(ctx)

	_, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		res, err := tx.Run(ctx, cypher, params)
		if err != nil {
			return nil, err
		}
		return res.Consume(ctx)
	})
	return err
}

func (e *neo4jExecutor) ExecuteRead(ctx context.Context, cypher string, params map[string]any) ([]map[string]any, error) {
	session := e.client.Driver.NewSession(ctx, neo4j.SessionConfig{
		AccessMode:   neo4j.AccessModeRead,
		DatabaseName: e.client.Database,
	})
	defer session.Close(ctx)

	out, err := session.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		res, err := tx.Run(ctx, cypher, params)
		if err != nil {
			return nil, err
		}
		records, err := res.Collect(ctx)
		if err != nil {
			return nil, err
		}
		rows := make([]map[string]any, 0, len(records))
		for _, rec := range records {
			rows = append(rows, rec.AsMap())
		}
		return rows, nil
	})
	if err != nil {
		return nil, err
	}
	return out.([]map[string]any), nil
}

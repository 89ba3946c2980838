package qa

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/docugraph/docugraph-backend/internal/data/graph"
	"github.com/docugraph/docugraph-backend/internal/platform/llm"
	"github.com/docugraph/docugraph-backend/internal/platform/logger"
)

// ErrDisallowedWrite means the generated query contained mutating
// vocabulary and was discarded without ever being executed.
var ErrDisallowedWrite = errors.New("disallowed write operation in generated query")

// writeOps is the Cypher write vocabulary the guard scans for. The
// scan is a case-insensitive substring match, not a parser: a token
// inside a string literal still trips it. Over-blocking is the point.
var writeOps = []string{"CREATE", "SET", "DELETE", "MERGE"}

type schemaSource interface {
	Schema(ctx context.Context) (graph.Schema, error)
}

// Translator turns a natural-language question into a read-only
// Cypher query grounded in a fresh schema snapshot.
type Translator struct {
	schemas schemaSource
	llm     llm.Client
	log     *logger.Logger
}

func NewTranslator(store *graph.Store, client llm.Client, log *logger.Logger) *Translator {
	return &Translator{
		schemas: store,
		llm:     client,
		log:     log.With("service", "Translator"),
	}
}

// Translate builds the schema-grounded prompt, invokes the generator,
// extracts the candidate query, and gates it through GuardReadOnly.
// It never returns a query that failed the guard.
func (t *Translator) Translate(ctx context.Context, question string) (string, error) {
	schema, err := t.schemas.Schema(ctx)
	if err != nil {
		return "", fmt.Errorf("translate question: %w", err)
	}

	raw, err := t.llm.Generate(ctx, cypherPrompt(schema, question))
	if err != nil {
		return "", fmt.Errorf("translate question: %w", err)
	}

	query := ExtractQuery(raw)
	if query == "" {
		return "", fmt.Errorf("translate question: generator returned no query")
	}
	if err := GuardReadOnly(query); err != nil {
		t.log.Warn("generated query rejected", "question", question)
		return "", err
	}
	return query, nil
}

// ExtractQuery trims the generator output and, when the output wraps
// the query in a fenced code block, keeps only the fenced segment,
// dropping a leading "cypher" language tag.
func ExtractQuery(raw string) string {
	out := strings.TrimSpace(raw)
	if strings.Contains(out, "```") {
		parts := strings.Split(out, "```")
		if len(parts) < 2 {
			return ""
		}
		out = parts[1]
		out = strings.TrimPrefix(strings.TrimSpace(out), "cypher")
	}
	return strings.TrimSpace(out)
}

// GuardReadOnly rejects any candidate containing mutating vocabulary.
// Fail-closed: ambiguity counts as a hit.
func GuardReadOnly(query string) error {
	upper := strings.ToUpper(query)
	for _, op := range writeOps {
		if strings.Contains(upper, op) {
			return fmt.Errorf("%w: found %s", ErrDisallowedWrite, op)
		}
	}
	return nil
}

package qa

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/docugraph/docugraph-backend/internal/data/graph"
	"github.com/docugraph/docugraph-backend/internal/platform/logger"
)

type fakeLLM struct {
	responses []string
	prompts   []string
	err       error
}

func (f *fakeLLM) Generate(ctx context.Context, prompt string) (string, error) {
	f.prompts = append(f.prompts, prompt)
	if f.err != nil {
		return "", f.err
	}
	if len(f.responses) == 0 {
		return "", errors.New("fakeLLM: no response queued")
	}
	out := f.responses[0]
	f.responses = f.responses[1:]
	return out, nil
}

func (f *fakeLLM) Close() error { return nil }

type fakeSchemas struct {
	schema graph.Schema
	err    error
}

func (f *fakeSchemas) Schema(ctx context.Context) (graph.Schema, error) {
	return f.schema, f.err
}

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("development")
	if err != nil {
		t.Fatalf("init logger: %v", err)
	}
	t.Cleanup(log.Sync)
	return log
}

func testTranslator(t *testing.T, schema graph.Schema, llmOut string) (*Translator, *fakeLLM) {
	t.Helper()
	gen := &fakeLLM{responses: []string{llmOut}}
	return &Translator{
		schemas: &fakeSchemas{schema: schema},
		llm:     gen,
		log:     testLogger(t),
	}, gen
}

func TestGuardBlocksAllWriteTokens(t *testing.T) {
	cases := []string{
		"CREATE (n:Entity {name: 'x'})",
		"MATCH (n) SET n.name = 'y' RETURN n",
		"MATCH (n) DELETE n",
		"MERGE (n:Entity {name: 'z'})",
		// Lowercase and quoted-literal occurrences still trip the scan.
		"match (n) where n.name = 'reset' return n",
		`MATCH (n) WHERE n.name = "Delete records" RETURN n`,
	}
	for _, q := range cases {
		if err := GuardReadOnly(q); !errors.Is(err, ErrDisallowedWrite) {
			t.Errorf("GuardReadOnly(%q) = %v, want ErrDisallowedWrite", q, err)
		}
	}
}

func TestGuardAllowsReadQuery(t *testing.T) {
	q := "MATCH (n:Entity)-[r]-(m) WHERE toLower(n.name) CONTAINS 'acme' RETURN n.name, type(r), m.name"
	if err := GuardReadOnly(q); err != nil {
		t.Fatalf("GuardReadOnly rejected a read query: %v", err)
	}
}

func TestExtractQuery(t *testing.T) {
	want := "MATCH (n:Entity) RETURN n.name"
	cases := []string{
		want,
		"  " + want + "\n",
		"```\n" + want + "\n```",
		"```cypher\n" + want + "\n```",
		"Here is the query:\n```cypher\n" + want + "\n```\nHope that helps.",
	}
	for _, raw := range cases {
		if got := ExtractQuery(raw); got != want {
			t.Errorf("ExtractQuery(%q) = %q, want %q", raw, got, want)
		}
	}
}

func TestTranslateEmbedsSchemaAndRules(t *testing.T) {
	schema := graph.Schema{
		NodeLabels:        []string{"Entity"},
		RelationshipTypes: []string{"FOUNDED", "LOCATED_IN"},
	}
	tr, gen := testTranslator(t, schema, "MATCH (n:Entity) RETURN n.name LIMIT 5")

	query, err := tr.Translate(context.Background(), "Who founded Acme?")
	if err != nil {
		t.Fatalf("Translate: %v", err)
	}
	if query != "MATCH (n:Entity) RETURN n.name LIMIT 5" {
		t.Fatalf("unexpected query: %q", query)
	}

	prompt := gen.prompts[0]
	for _, want := range []string{
		"'Entity'",
		"'FOUNDED', 'LOCATED_IN'",
		"Never use write operations (CREATE, SET, DELETE, MERGE)",
		"case-insensitive search on the 'name' property using toLower()",
		"Question: Who founded Acme?",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q:\n%s", want, prompt)
		}
	}
}

func TestTranslateRejectsMutatingCandidate(t *testing.T) {
	tr, _ := testTranslator(t, graph.Schema{}, "```cypher\nMERGE (n:Entity {name: 'x'}) RETURN n\n```")

	query, err := tr.Translate(context.Background(), "add a node please")
	if !errors.Is(err, ErrDisallowedWrite) {
		t.Fatalf("expected ErrDisallowedWrite, got %v", err)
	}
	if query != "" {
		t.Fatalf("no query may be returned on rejection, got %q", query)
	}
}

func TestTranslatePropagatesGeneratorFailure(t *testing.T) {
	cause := errors.New("quota exceeded")
	tr := &Translator{
		schemas: &fakeSchemas{},
		llm:     &fakeLLM{err: cause},
		log:     testLogger(t),
	}
	if _, err := tr.Translate(context.Background(), "anything"); !errors.Is(err, cause) {
		t.Fatalf("expected wrapped generator failure, got %v", err)
	}
}

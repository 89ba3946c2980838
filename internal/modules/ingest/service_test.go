package ingest

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/docugraph/docugraph-backend/internal/data/graph"
	"github.com/docugraph/docugraph-backend/internal/platform/logger"
)

type fakeWriter struct {
	batches [][]graph.Triple
	err     error
}

func (f *fakeWriter) AddTriples(ctx context.Context, triples []graph.Triple) error {
	f.batches = append(f.batches, triples)
	return f.err
}

type fakeLLM struct {
	response string
	prompts  []string
	err      error
}

func (f *fakeLLM) Generate(ctx context.Context, prompt string) (string, error) {
	f.prompts = append(f.prompts, prompt)
	return f.response, f.err
}

func (f *fakeLLM) Close() error { return nil }

func testService(t *testing.T, writer *fakeWriter, gen *fakeLLM) *Service {
	t.Helper()
	log, err := logger.New("development")
	if err != nil {
		t.Fatalf("init logger: %v", err)
	}
	t.Cleanup(log.Sync)
	return &Service{store: writer, llm: gen, log: log}
}

func TestIngestDocumentStoresParsedTriples(t *testing.T) {
	writer := &fakeWriter{}
	gen := &fakeLLM{response: "'Acme'|FOUNDED|'Labs'\n'Labs'|LOCATED_IN|'Pune'"}
	svc := testService(t, writer, gen)

	n, err := svc.IngestDocument(context.Background(), Document{Name: "order.pdf", Text: "..."}, "")
	if err != nil {
		t.Fatalf("IngestDocument: %v", err)
	}
	if n != 2 {
		t.Fatalf("expected 2 triples, got %d", n)
	}
	if len(writer.batches) != 1 || len(writer.batches[0]) != 2 {
		t.Fatalf("unexpected write batches: %+v", writer.batches)
	}
	// Default prompt is applied when none is supplied.
	if !strings.Contains(gen.prompts[0], "ENTITY_1|RELATIONSHIP|ENTITY_2") {
		t.Errorf("expected default prompt, got:\n%s", gen.prompts[0])
	}
	if !strings.Contains(gen.prompts[0], "Document:\n...") {
		t.Errorf("document text missing from prompt:\n%s", gen.prompts[0])
	}
}

func TestIngestDocumentNoTriplesIsNotAnError(t *testing.T) {
	writer := &fakeWriter{}
	gen := &fakeLLM{response: "The document appears to contain no extractable relationships."}
	svc := testService(t, writer, gen)

	n, err := svc.IngestDocument(context.Background(), Document{Name: "empty.pdf"}, "")
	if err != nil {
		t.Fatalf("IngestDocument: %v", err)
	}
	if n != 0 {
		t.Fatalf("expected 0 triples, got %d", n)
	}
	if len(writer.batches) != 0 {
		t.Fatalf("no write should be issued for zero triples")
	}
}

func TestIngestDocumentCustomPrompt(t *testing.T) {
	writer := &fakeWriter{}
	gen := &fakeLLM{response: "A|IS_A|B"}
	svc := testService(t, writer, gen)

	custom := "Extract only people and companies as 'A|REL|B' lines."
	if _, err := svc.IngestDocument(context.Background(), Document{Name: "d"}, custom); err != nil {
		t.Fatalf("IngestDocument: %v", err)
	}
	if !strings.HasPrefix(gen.prompts[0], custom) {
		t.Errorf("custom prompt not applied:\n%s", gen.prompts[0])
	}
}

func TestIngestAllContinuesPastFailures(t *testing.T) {
	writer := &fakeWriter{}
	gen := &fakeLLM{err: errors.New("provider quota exceeded")}
	svc := testService(t, writer, gen)

	results := svc.IngestAll(context.Background(), []Document{
		{Name: "a.pdf"}, {Name: "b.pdf"},
	}, "")
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	for _, r := range results {
		if r.Error == "" {
			t.Errorf("expected error recorded for %s", r.Name)
		}
	}
}

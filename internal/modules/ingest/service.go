package ingest

import (
	"context"
	"fmt"

	"github.com/docugraph/docugraph-backend/internal/data/graph"
	"github.com/docugraph/docugraph-backend/internal/platform/llm"
	"github.com/docugraph/docugraph-backend/internal/platform/logger"
)

type tripleWriter interface {
	AddTriples(ctx context.Context, triples []graph.Triple) error
}

// Service turns document text into graph facts: prompt the extraction
// model, parse its triple lines, and upsert them into the store.
type Service struct {
	store tripleWriter
	llm   llm.Client
	log   *logger.Logger
}

func NewService(store *graph.Store, client llm.Client, log *logger.Logger) *Service {
	return &Service{
		store: store,
		llm:   client,
		log:   log.With("service", "Ingest"),
	}
}

// Document is one unit of already-extracted text. Byte extraction from
// uploaded files happens upstream.
type Document struct {
	Name string `json:"name"`
	Text string `json:"text"`
}

// DocumentResult reports one document's ingestion outcome. Error is a
// display string; the structured error never crosses the batch
// boundary because later documents still run.
type DocumentResult struct {
	Name    string `json:"name"`
	Triples int    `json:"triples"`
	Error   string `json:"error,omitempty"`
}

// IngestDocument extracts and stores the facts of a single document,
// returning the number of parsed triples. Zero triples is a normal
// outcome (the document had no structured content), not a failure.
func (s *Service) IngestDocument(ctx context.Context, doc Document, prompt string) (int, error) {
	if prompt == "" {
		prompt = DefaultPrompt
	}

	raw, err := s.llm.Generate(ctx, prompt+"\n\nDocument:\n"+doc.Text)
	if err != nil {
		return 0, fmt.Errorf("extract triples from %q: %w", doc.Name, err)
	}

	triples := ParseTriples(raw)
	if len(triples) == 0 {
		s.log.Warn("no structured data extracted", "document", doc.Name)
		return 0, nil
	}

	if err := s.store.AddTriples(ctx, triples); err != nil {
		return 0, fmt.Errorf("store triples from %q: %w", doc.Name, err)
	}

	s.log.Info("document ingested", "document", doc.Name, "triples", len(triples))
	return len(triples), nil
}

// IngestAll processes documents sequentially under the single-writer
// model. A failing document is reported in its result and does not
// stop the rest of the batch; facts already written stay written.
func (s *Service) IngestAll(ctx context.Context, docs []Document, prompt string) []DocumentResult {
	results := make([]DocumentResult, 0, len(docs))
	for _, doc := range docs {
		n, err := s.IngestDocument(ctx, doc, prompt)
		res := DocumentResult{Name: doc.Name, Triples: n}
		if err != nil {
			res.Error = err.Error()
			s.log.Error("document ingestion failed", "document", doc.Name, "error", err)
		}
		results = append(results, res)
	}
	return results
}

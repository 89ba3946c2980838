package qa

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/docugraph/docugraph-backend/internal/data/graph"
	"github.com/docugraph/docugraph-backend/internal/platform/llm"
	"github.com/docugraph/docugraph-backend/internal/platform/logger"
)

const noMatchAnswer = "No matching data found."

type graphReader interface {
	RunRead(ctx context.Context, cypher string) ([]map[string]any, error)
	FindSubgraph(ctx context.Context, entities []string) ([]graph.SubgraphRow, error)
}

// Service answers questions against the knowledge graph: translate,
// execute the vetted read query, then synthesize a grounded answer.
type Service struct {
	store      graphReader
	llm        llm.Client
	translator *Translator
	log        *logger.Logger
}

func NewService(store *graph.Store, client llm.Client, log *logger.Logger) *Service {
	return &Service{
		store:      store,
		llm:        client,
		translator: NewTranslator(store, client, log),
		log:        log.With("service", "QA"),
	}
}

// Answer is the outcome of one question. Empty marks the reportable
// but non-exceptional no-rows case.
type Answer struct {
	Answer string           `json:"answer"`
	Query  string           `json:"query"`
	Rows   []map[string]any `json:"rows,omitempty"`
	Empty  bool             `json:"empty,omitempty"`
}

// Ask runs the full question flow. A guard rejection propagates as
// ErrDisallowedWrite; an empty result set is reported, not failed.
func (s *Service) Ask(ctx context.Context, question string) (Answer, error) {
	query, err := s.translator.Translate(ctx, question)
	if err != nil {
		return Answer{}, err
	}

	rows, err := s.store.RunRead(ctx, query)
	if err != nil {
		return Answer{}, fmt.Errorf("ask %q: %w", question, err)
	}
	if len(rows) == 0 {
		return Answer{Answer: noMatchAnswer, Query: query, Empty: true}, nil
	}

	answer, err := s.llm.Generate(ctx, answerPrompt(renderRows(rows), question))
	if err != nil {
		return Answer{}, fmt.Errorf("synthesize answer: %w", err)
	}

	return Answer{Answer: strings.TrimSpace(answer), Query: query, Rows: rows}, nil
}

// Subgraph retrieves the bounded neighborhood anchoring the question's
// entities. An empty candidate set yields an empty result with no
// store access.
func (s *Service) Subgraph(ctx context.Context, question string) ([]graph.SubgraphRow, error) {
	entities, err := s.ExtractEntities(ctx, question)
	if err != nil {
		return nil, err
	}
	if len(entities) == 0 {
		s.log.Debug("no candidate entities in question", "question", question)
		return nil, nil
	}
	return s.store.FindSubgraph(ctx, entities)
}

// renderRows flattens result rows into deterministic context lines
// for the synthesis prompt. JSON keys are emitted sorted, so the same
// rows always produce the same prompt.
func renderRows(rows []map[string]any) string {
	lines := make([]string, 0, len(rows))
	for _, row := range rows {
		b, err := json.Marshal(row)
		if err != nil {
			lines = append(lines, fmt.Sprint(row))
			continue
		}
		lines = append(lines, string(b))
	}
	return strings.Join(lines, "\n")
}

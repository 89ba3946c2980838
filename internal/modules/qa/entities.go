package qa

import (
	"context"
	"fmt"
	"strings"
)

// ExtractEntities asks the generation capability for candidate entity
// mentions in the question, as a comma-separated list, and returns the
// deduplicated set. An empty set is a normal outcome, not an error.
func (s *Service) ExtractEntities(ctx context.Context, question string) ([]string, error) {
	raw, err := s.llm.Generate(ctx, entityPrompt(question))
	if err != nil {
		return nil, fmt.Errorf("extract entities: %w", err)
	}
	return parseEntityList(raw), nil
}

// parseEntityList splits a comma-separated entity string, trimming
// whitespace and dropping empties and duplicates, preserving order.
func parseEntityList(raw string) []string {
	seen := make(map[string]struct{})
	out := make([]string, 0)
	for _, part := range strings.Split(raw, ",") {
		name := strings.TrimSpace(part)
		if name == "" {
			continue
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}
	return out
}

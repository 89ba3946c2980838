package ingest

import (
	"strings"

	"github.com/docugraph/docugraph-backend/internal/data/graph"
)

// ParseTriples reads pipe-delimited 'SUBJECT|RELATION|OBJECT' lines
// out of raw extraction output. Fields may carry surrounding quote
// characters; blank lines and lines without exactly three fields are
// discarded without error.
func ParseTriples(raw string) []graph.Triple {
	lines := strings.Split(strings.TrimSpace(raw), "\n")
	triples := make([]graph.Triple, 0, len(lines))
	for _, line := range lines {
		parts := strings.Split(line, "|")
		if len(parts) != 3 {
			continue
		}
		subject := cleanField(parts[0])
		relation := cleanField(parts[1])
		object := cleanField(parts[2])
		if subject == "" || relation == "" || object == "" {
			continue
		}
		triples = append(triples, graph.Triple{
			Subject:  subject,
			Relation: relation,
			Object:   object,
		})
	}
	return triples
}

func cleanField(s string) string {
	return strings.Trim(strings.TrimSpace(s), `'"`)
}

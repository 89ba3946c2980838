package qa

import (
	"fmt"
	"strings"

	"github.com/docugraph/docugraph-backend/internal/data/graph"
)

// cypherPromptTemplate grounds the generator in the live schema and
// pins the structural rules the guard and executor depend on.
const cypherPromptTemplate = `You are a Neo4j Cypher expert. Convert the user's natural language question into a single Cypher query using ONLY the provided graph schema. Return only the Cypher query, no explanation.

**Graph Schema:**
- Node labels: %s
- Relationship types: %s

**Rules:**
1. Always match nodes by performing case-insensitive search on the 'name' property using toLower().
2. Only use the node labels and relationship types from the schema.
3. Never use write operations (CREATE, SET, DELETE, MERGE). Only read queries.
4. The primary node label is 'Entity', and all nodes have a 'name' property.
5. Prefer queries that include both:
   - The matching node(s), and
   - Their directly connected neighbors and relationships.

---
Question: %s`

func cypherPrompt(schema graph.Schema, question string) string {
	return fmt.Sprintf(cypherPromptTemplate,
		formatList(schema.NodeLabels),
		formatList(schema.RelationshipTypes),
		question,
	)
}

const entityPromptTemplate = `Extract all key entities (people, organizations, locations) from the following question.
Return them as a simple comma-separated list.

Question: %s`

func entityPrompt(question string) string {
	return fmt.Sprintf(entityPromptTemplate, question)
}

const answerPromptTemplate = `You are a helpful assistant.
Use ONLY the retrieved graph data to answer.

Retrieved Data:
%s

Question: %s`

func answerPrompt(contextData, question string) string {
	return fmt.Sprintf(answerPromptTemplate, contextData, question)
}

func formatList(items []string) string {
	if len(items) == 0 {
		return "[]"
	}
	return "['" + strings.Join(items, "', '") + "']"
}

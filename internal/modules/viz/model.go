package viz

import (
	"math/rand"

	"github.com/docugraph/docugraph-backend/internal/data/graph"
)

// Fallback when a row comes back without a relationship type.
const defaultRelationship = "RELATED_TO"

const entityLabel = "Entity"

// palette is the fixed node color pool. Shuffled per model so colors
// vary between renders; assignment is cosmetic and never feeds into
// node or edge identity.
var palette = []string{
	"#FF7F3E", "#2A629A", "#B93160", "#6EBF8B", "#FFD700",
	"#4682B4", "#D2691E", "#9ACD32", "#FF69B4", "#00CED1",
}

type Node struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Name  string `json:"name"`
}

type Edge struct {
	ID     string `json:"id"`
	Source string `json:"source"`
	Target string `json:"target"`
	Label  string `json:"label"`
}

type NodeStyle struct {
	Label   string `json:"label"`
	Color   string `json:"color"`
	Caption string `json:"caption"`
	Icon    string `json:"icon"`
}

type EdgeStyle struct {
	Label    string `json:"label"`
	Caption  string `json:"caption"`
	Directed bool   `json:"directed"`
}

// Model is the request-scoped node/edge representation handed to the
// renderer. Built fresh per query, discarded after one render.
type Model struct {
	Nodes      []Node      `json:"nodes"`
	Edges      []Edge      `json:"edges"`
	NodeStyles []NodeStyle `json:"node_styles"`
	EdgeStyles []EdgeStyle `json:"edge_styles"`
}

// BuildModel shapes raw subgraph rows into a deduplicated graph model.
// Node identity is the entity name; edge identity is the ordered
// (source, relationship, target) key, so the same logical fact seen
// from both traversal directions collapses to one edge. Rows missing a
// source or target name are malformed extraction noise and skipped.
func BuildModel(rows []graph.SubgraphRow) Model {
	model := Model{
		Nodes:      make([]Node, 0),
		Edges:      make([]Edge, 0),
		NodeStyles: make([]NodeStyle, 0),
		EdgeStyles: make([]EdgeStyle, 0),
	}

	nodeSeen := make(map[string]struct{})
	edgeSeen := make(map[string]struct{})
	nodeLabels := make([]string, 0, 1)
	edgeLabels := make([]string, 0)
	edgeLabelSeen := make(map[string]struct{})

	for _, row := range rows {
		src, tgt := row.Node, row.Target
		if src == "" || tgt == "" {
			continue
		}
		rel := row.Relationship
		if rel == "" {
			rel = defaultRelationship
		}

		for _, name := range []string{src, tgt} {
			if _, ok := nodeSeen[name]; ok {
				continue
			}
			nodeSeen[name] = struct{}{}
			model.Nodes = append(model.Nodes, Node{ID: name, Label: entityLabel, Name: name})
			if len(nodeLabels) == 0 {
				nodeLabels = append(nodeLabels, entityLabel)
			}
		}

		edgeID := src + "-" + rel + "-" + tgt
		if _, ok := edgeSeen[edgeID]; ok {
			continue
		}
		edgeSeen[edgeID] = struct{}{}
		model.Edges = append(model.Edges, Edge{ID: edgeID, Source: src, Target: tgt, Label: rel})
		if _, ok := edgeLabelSeen[rel]; !ok {
			edgeLabelSeen[rel] = struct{}{}
			edgeLabels = append(edgeLabels, rel)
		}
	}

	colors := shuffledPalette()
	for i, label := range nodeLabels {
		model.NodeStyles = append(model.NodeStyles, NodeStyle{
			Label:   label,
			Color:   colors[i%len(colors)],
			Caption: "name",
			Icon:    "database",
		})
	}
	for _, label := range edgeLabels {
		model.EdgeStyles = append(model.EdgeStyles, EdgeStyle{
			Label:    label,
			Caption:  "label",
			Directed: true,
		})
	}

	return model
}

func shuffledPalette() []string {
	colors := make([]string, len(palette))
	copy(colors, palette)
	rand.Shuffle(len(colors), func(i, j int) {
		colors[i], colors[j] = colors[j], colors[i]
	})
	return colors
}

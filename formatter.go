package docgraph

import (
	"fmt"
	"sort"
	"strings"
)

// FormatGraphContext renders a knowledge graph as markdown suitable for
// display or LLM context. Nodes appear in breadth-first order: shallower
// pages describe the framework's mental model and belong first.
func FormatGraphContext(graph *KnowledgeGraph) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# %s knowledge graph\n\n", graph.Framework)
	fmt.Fprintf(&sb, "Documentation root: %s\n", graph.BaseURL)
	fmt.Fprintf(&sb, "Pages: %d, references: %d\n", len(graph.Nodes), len(graph.Relationships))

	for _, node := range nodesByDepth(graph) {
		header := node.Title
		if header == "" {
			header = node.URL
		}
		fmt.Fprintf(&sb, "\n## %s\n\n", header)
		fmt.Fprintf(&sb, "URL: %s (depth %d)\n", node.URL, node.Depth)

		if len(node.Concepts) > 0 {
			sb.WriteString("\nConcepts:\n")
			for _, c := range node.Concepts {
				fmt.Fprintf(&sb, "- %s\n", c)
			}
		}
		if len(node.APISurface) > 0 {
			sb.WriteString("\nAPI:\n")
			for _, entry := range node.APISurface {
				if entry.Description != "" {
					fmt.Fprintf(&sb, "- %s: %s\n", entry.Name, entry.Description)
				} else {
					fmt.Fprintf(&sb, "- %s\n", entry.Name)
				}
			}
		}
		if len(node.Dependencies) > 0 {
			sb.WriteString("\nDependencies:\n")
			for _, d := range node.Dependencies {
				fmt.Fprintf(&sb, "- %s\n", d)
			}
		}
		for _, sample := range node.CodeSamples {
			fmt.Fprintf(&sb, "\n```\n%s\n```\n", sample)
		}
	}

	if len(graph.Relationships) > 0 {
		sb.WriteString("\n## References\n\n")
		for _, edge := range graph.Relationships {
			fmt.Fprintf(&sb, "- %s -> %s\n", edge.From, edge.To)
		}
	}

	return sb.String()
}

// nodesByDepth returns the graph's nodes ordered by depth, then URL.
func nodesByDepth(graph *KnowledgeGraph) []*GraphNode {
	nodes := make([]*GraphNode, 0, len(graph.Nodes))
	for _, node := range graph.Nodes {
		nodes = append(nodes, node)
	}
	sort.Slice(nodes, func(i, j int) bool {
		if nodes[i].Depth != nodes[j].Depth {
			return nodes[i].Depth < nodes[j].Depth
		}
		return nodes[i].URL < nodes[j].URL
	})
	return nodes
}

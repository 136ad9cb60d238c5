// Package graph renders workflow graphs as Mermaid flowcharts for the CLI
// and the HTTP view endpoint.
package graph

import (
	"fmt"
	"strings"

	"github.com/markdavemanansala/Chat-To-Flow-sub001/pkg/domain"
)

// GenerateMermaid produces Mermaid flowchart syntax from a graph.
// Node shape follows role:
// - TRIGGER: ((Circle))
// - ACTION: [[Subroutine]]
// - AI: [/Parallelogram/]
// - LOGIC and everything else: [Rectangle]
func GenerateMermaid(g domain.Graph) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")

	for _, node := range g.Nodes {
		safeID := sanitizeMermaidID(node.ID)

		opener, closer := "[", "]"
		switch node.Role {
		case domain.RoleTrigger:
			opener, closer = "((", "))"
		case domain.RoleAction:
			opener, closer = "[[", "]]"
		case domain.RoleAI:
			opener, closer = "[/", "/]"
		}

		text := node.Label
		if text == "" {
			text = node.ID
		}
		// Escape double quotes for the Mermaid label.
		text = strings.ReplaceAll(text, "\"", "'")
		sb.WriteString(fmt.Sprintf("    %s%s\"%s\"%s\n", safeID, opener, text, closer))
	}

	for _, edge := range g.Edges {
		sb.WriteString(fmt.Sprintf("    %s --> %s\n",
			sanitizeMermaidID(edge.Source), sanitizeMermaidID(edge.Target)))
	}

	return sb.String()
}

func sanitizeMermaidID(id string) string {
	s := strings.ReplaceAll(id, ".", "_")
	s = strings.ReplaceAll(s, "-", "_")
	s = strings.ReplaceAll(s, "/", "_")
	s = strings.ReplaceAll(s, "\\", "_")
	return s
}

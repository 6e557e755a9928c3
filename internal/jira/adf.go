package jira

import (
	"strconv"
	"strings"

	"github.com/ctreminiom/go-atlassian/v2/pkg/infra/models"
)

// ADFToText flattens an Atlassian Document Format tree to plain text.
// Block nodes are separated by blank lines and list items get "- " or
// "N. " prefixes. Marks are dropped.
func ADFToText(node *models.CommentNodeScheme) string {
	if node == nil {
		return ""
	}
	var blocks []string
	collectBlocks(node, &blocks, "")
	return strings.TrimSpace(strings.Join(blocks, "\n\n"))
}

func collectBlocks(node *models.CommentNodeScheme, blocks *[]string, indent string) {
	switch node.Type {
	case "doc", "blockquote", "panel", "expand", "layoutSection", "layoutColumn":
		for _, child := range node.Content {
			collectBlocks(child, blocks, indent)
		}
	case "bulletList", "orderedList":
		var lines []string
		for i, item := range node.Content {
			lines = append(lines, listItem(item, node.Type == "orderedList", i+1, indent)...)
		}
		if len(lines) > 0 {
			*blocks = append(*blocks, strings.Join(lines, "\n"))
		}
	case "table":
		var rows []string
		for _, row := range node.Content {
			var cells []string
			for _, cell := range row.Content {
				cells = append(cells, strings.TrimSpace(inlineText(cell)))
			}
			rows = append(rows, strings.Join(cells, " | "))
		}
		*blocks = append(*blocks, strings.Join(rows, "\n"))
	case "rule":
		*blocks = append(*blocks, "---")
	default:
		if text := strings.TrimSpace(inlineText(node)); text != "" {
			*blocks = append(*blocks, indent+text)
		}
	}
}

func listItem(item *models.CommentNodeScheme, ordered bool, n int, indent string) []string {
	prefix := "- "
	if ordered {
		prefix = strconv.Itoa(n) + ". "
	}
	var lines []string
	first := true
	for _, child := range item.Content {
		if child.Type == "bulletList" || child.Type == "orderedList" {
			for i, sub := range child.Content {
				lines = append(lines, listItem(sub, child.Type == "orderedList", i+1, indent+"  ")...)
			}
			continue
		}
		text := strings.TrimSpace(inlineText(child))
		if text == "" {
			continue
		}
		if first {
			lines = append(lines, indent+prefix+text)
			first = false
		} else {
			lines = append(lines, indent+"  "+text)
		}
	}
	if first {
		lines = append([]string{indent + prefix}, lines...)
	}
	return lines
}

// inlineText concatenates the text under node, keeping hard breaks and
// code-block newlines.
func inlineText(node *models.CommentNodeScheme) string {
	if node == nil {
		return ""
	}
	switch node.Type {
	case "text":
		return node.Text
	case "hardBreak":
		return "\n"
	case "mention":
		if s := attr(node.Attrs, "text"); s != "" {
			if strings.HasPrefix(s, "@") {
				return s
			}
			return "@" + s
		}
		return ""
	case "emoji":
		return attr(node.Attrs, "shortName")
	case "inlineCard", "blockCard":
		return attr(node.Attrs, "url")
	case "status":
		return "[" + attr(node.Attrs, "text") + "]"
	case "date":
		return attr(node.Attrs, "timestamp")
	}
	var b strings.Builder
	for i, child := range node.Content {
		if i > 0 && isBlock(child.Type) {
			b.WriteString("\n")
		}
		b.WriteString(inlineText(child))
	}
	return b.String()
}

func isBlock(t string) bool {
	switch t {
	case "paragraph", "heading", "codeBlock", "bulletList", "orderedList", "blockquote":
		return true
	}
	return false
}

func attr(attrs map[string]interface{}, key string) string {
	if attrs == nil {
		return ""
	}
	s, _ := attrs[key].(string)
	return s
}

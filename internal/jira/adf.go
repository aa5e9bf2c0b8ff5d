package jira

import (
	"encoding/json"
	"strings"
)

// ADFNode is a node in the Atlassian Document Format tree that Cloud
// returns for rich-text fields.
type ADFNode struct {
	Type    string         `json:"type"`
	Version int            `json:"version,omitempty"`
	Content []ADFNode      `json:"content,omitempty"`
	Text    string         `json:"text,omitempty"`
	Attrs   map[string]any `json:"attrs,omitempty"`
}

// PlainText flattens the tree to the text of its leaves, joined by single
// spaces. Headings, lists, code blocks, and blockquotes all contribute
// their text.
func (n *ADFNode) PlainText() string {
	var parts []string
	n.collectText(&parts)
	return strings.Join(parts, " ")
}

func (n *ADFNode) collectText(parts *[]string) {
	if n.Type == "text" {
		*parts = append(*parts, n.Text)
		return
	}
	for i := range n.Content {
		n.Content[i].collectText(parts)
	}
}

// Document wraps plain text in a minimal ADF document, one paragraph per
// line. Jira Cloud requires this shape for descriptions, comments, and
// worklog comments on API v3.
func Document(text string) *ADFNode {
	doc := &ADFNode{Type: "doc", Version: 1}
	for _, line := range strings.Split(text, "\n") {
		para := ADFNode{Type: "paragraph"}
		if line != "" {
			para.Content = []ADFNode{{Type: "text", Text: line}}
		}
		doc.Content = append(doc.Content, para)
	}
	return doc
}

// Body is a rich-text field that Server/DC returns as a wiki-markup string
// and Cloud returns as an ADF tree. Either way it decodes to plain text.
type Body string

func (b *Body) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*b = Body(s)
		return nil
	}
	var node ADFNode
	if err := json.Unmarshal(data, &node); err != nil {
		return err
	}
	*b = Body(node.PlainText())
	return nil
}

func (b Body) String() string { return string(b) }

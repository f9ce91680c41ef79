package parser

import (
	sitter "github.com/tree-sitter/go-tree-sitter"
)

// ExtractionContext carries shared state/helpers used by extractors.
type ExtractionContext struct {
	Source []byte
	File   *File
	lines  []int // byte offset of each line start, built lazily
}

func (c *ExtractionContext) Text(node *sitter.Node) string {
	if node == nil {
		return ""
	}
	return string(c.Source[node.StartByte():node.EndByte()])
}

func (c *ExtractionContext) Location(node *sitter.Node) Location {
	return Location{
		File:   c.File.Path,
		Line:   int(node.StartPosition().Row) + 1,
		Column: int(node.StartPosition().Column) + 1,
	}
}

func (c *ExtractionContext) ChildText(node *sitter.Node, kind string) string {
	if node == nil {
		return ""
	}
	for i := uint(0); i < node.ChildCount(); i++ {
		child := node.Child(i)
		if child.Kind() == kind {
			return c.Text(child)
		}
	}
	return ""
}

// LineText returns the full source line containing the node's start,
// without the trailing newline.
func (c *ExtractionContext) LineText(node *sitter.Node) string {
	if c.lines == nil {
		c.lines = []int{0}
		for i, b := range c.Source {
			if b == '\n' {
				c.lines = append(c.lines, i+1)
			}
		}
	}
	row := int(node.StartPosition().Row)
	if row >= len(c.lines) {
		return ""
	}
	start := c.lines[row]
	end := len(c.Source)
	if row+1 < len(c.lines) {
		end = c.lines[row+1] - 1
	}
	return string(c.Source[start:end])
}

// # internal/parser/types.go
package parser

import (
	"time"
)

// File is the parsed view of one Python source unit: the declaration
// tree rooted at the module plus the from-imports in source order.
type File struct {
	Path     string
	Language string
	Root     *Declaration
	Imports  []Import
	ParsedAt time.Time
}

type Declaration struct {
	Kind      DeclKind
	Name      string
	Docstring string
	// Function declarations only.
	Params           []Param
	DefaultLocations []Location
	// Assignment statements appearing directly in this scope's body.
	Assignments []Assignment
	Children    []*Declaration
	Location    Location
}

type Param struct {
	Name       string
	HasDefault bool
	Location   Location
}

// Assignment records one assignment statement together with the full
// text of its source line, so trailing annotation markers survive.
type Assignment struct {
	Target         string
	IsReceiverAttr bool
	Line           string
	Location       Location
}

type Import struct {
	Module     string
	Items      []string // for "from X import Y, Z"
	IsRelative bool
	Location   Location
}

type DeclKind int

const (
	KindModule DeclKind = iota
	KindClass
	KindFunction
)

type Location struct {
	File   string
	Line   int
	Column int
}

// Before reports whether l precedes other in source order.
func (l Location) Before(other Location) bool {
	if l.Line != other.Line {
		return l.Line < other.Line
	}
	return l.Column < other.Column
}

// Package diagram holds the fields every diagram type shares: the title and
// the accessibility title and description.
package diagram

import (
	"regexp"
	"strings"
)

// CommonSink receives the common diagram fields.
type CommonSink interface {
	SetAccTitle(title string)
	SetAccDescription(descr string)
	SetDiagramTitle(title string)
}

// Common is the subset of a parsed document that PopulateCommon forwards.
// Nil fields were absent from the document.
type Common struct {
	Title    *string
	AccTitle *string
	AccDescr *string
}

// PopulateCommon forwards the present common fields to sink. Absent fields
// produce no call.
func PopulateCommon(c Common, sink CommonSink) {
	if c.AccDescr != nil {
		sink.SetAccDescription(*c.AccDescr)
	}
	if c.AccTitle != nil {
		sink.SetAccTitle(*c.AccTitle)
	}
	if c.Title != nil {
		sink.SetDiagramTitle(*c.Title)
	}
}

var leadingSpace = regexp.MustCompile(`\n\s+`)

// CommonState is an embeddable CommonSink that stores the fields.
type CommonState struct {
	title    string
	accTitle string
	accDescr string
}

func (s *CommonState) SetAccTitle(title string) {
	s.accTitle = strings.TrimSpace(title)
}

// SetAccDescription stores descr with the indentation of continuation lines
// removed, so multi-line descriptions keep their line breaks only.
func (s *CommonState) SetAccDescription(descr string) {
	s.accDescr = leadingSpace.ReplaceAllString(strings.TrimSpace(descr), "\n")
}

func (s *CommonState) SetDiagramTitle(title string) {
	s.title = strings.TrimSpace(title)
}

func (s *CommonState) AccTitle() string       { return s.accTitle }
func (s *CommonState) AccDescription() string { return s.accDescr }
func (s *CommonState) DiagramTitle() string   { return s.title }

// Clear resets all fields.
func (s *CommonState) Clear() {
	*s = CommonState{}
}

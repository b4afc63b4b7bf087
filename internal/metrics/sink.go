package metrics

import "github.com/vk/gitgraphgo/internal/gitgraph"

type instrumentedSink struct {
	next gitgraph.Sink
	c    *Collector
}

// InstrumentSink wraps sink so every call increments statements_total with
// the sink method name as kind. Calls are counted before they are forwarded.
func InstrumentSink(sink gitgraph.Sink, c *Collector) gitgraph.Sink {
	return &instrumentedSink{next: sink, c: c}
}

func (s *instrumentedSink) count(kind string) {
	s.c.Statements.WithLabelValues(kind).Inc()
}

func (s *instrumentedSink) SetAccTitle(title string) {
	s.count("setAccTitle")
	s.next.SetAccTitle(title)
}

func (s *instrumentedSink) SetAccDescription(descr string) {
	s.count("setAccDescription")
	s.next.SetAccDescription(descr)
}

func (s *instrumentedSink) SetDiagramTitle(title string) {
	s.count("setDiagramTitle")
	s.next.SetDiagramTitle(title)
}

func (s *instrumentedSink) SetDirection(dir string) error {
	s.count("setDirection")
	return s.next.SetDirection(dir)
}

func (s *instrumentedSink) Commit(message, id string, typ gitgraph.CommitType, tags []string) error {
	s.count("commit")
	return s.next.Commit(message, id, typ, tags)
}

func (s *instrumentedSink) Branch(name string, order int) error {
	s.count("branch")
	return s.next.Branch(name, order)
}

func (s *instrumentedSink) Merge(branch, id string, typ *gitgraph.CommitType, tags []string) error {
	s.count("merge")
	return s.next.Merge(branch, id, typ, tags)
}

func (s *instrumentedSink) Checkout(branch string) error {
	s.count("checkout")
	return s.next.Checkout(branch)
}

func (s *instrumentedSink) CherryPick(id, targetID string, tags []string, parent string) error {
	s.count("cherryPick")
	return s.next.CherryPick(id, targetID, tags, parent)
}

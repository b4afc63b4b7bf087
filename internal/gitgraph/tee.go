package gitgraph

// Tee returns a Sink that forwards every call to each of sinks in order.
// A failing sink stops the fan-out and its error is returned; sinks after it
// do not see the call.
func Tee(sinks ...Sink) Sink {
	return teeSink(sinks)
}

type teeSink []Sink

func (t teeSink) each(fn func(Sink) error) error {
	for _, s := range t {
		if err := fn(s); err != nil {
			return err
		}
	}
	return nil
}

func (t teeSink) SetAccTitle(title string) {
	for _, s := range t {
		s.SetAccTitle(title)
	}
}

func (t teeSink) SetAccDescription(descr string) {
	for _, s := range t {
		s.SetAccDescription(descr)
	}
}

func (t teeSink) SetDiagramTitle(title string) {
	for _, s := range t {
		s.SetDiagramTitle(title)
	}
}

func (t teeSink) SetDirection(dir string) error {
	return t.each(func(s Sink) error { return s.SetDirection(dir) })
}

func (t teeSink) Commit(message, id string, typ CommitType, tags []string) error {
	return t.each(func(s Sink) error { return s.Commit(message, id, typ, tags) })
}

func (t teeSink) Branch(name string, order int) error {
	return t.each(func(s Sink) error { return s.Branch(name, order) })
}

func (t teeSink) Merge(branch, id string, typ *CommitType, tags []string) error {
	return t.each(func(s Sink) error { return s.Merge(branch, id, typ, tags) })
}

func (t teeSink) Checkout(branch string) error {
	return t.each(func(s Sink) error { return s.Checkout(branch) })
}

func (t teeSink) CherryPick(id, targetID string, tags []string, parent string) error {
	return t.each(func(s Sink) error { return s.CherryPick(id, targetID, tags, parent) })
}

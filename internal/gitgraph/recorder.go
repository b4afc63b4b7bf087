package gitgraph

// Call is one recorded Sink invocation. Absent arguments (a merge without a
// type, a nil tag list) are recorded as untyped nil so encoders write null.
type Call struct {
	Method string `json:"method" yaml:"method"`
	Args   []any  `json:"args" yaml:"args"`
}

// Recorder is a Sink that remembers every call it receives, in order. It
// never fails.
type Recorder struct {
	Calls []Call
}

func (r *Recorder) record(method string, args ...any) {
	r.Calls = append(r.Calls, Call{Method: method, Args: args})
}

func (r *Recorder) SetAccTitle(title string)       { r.record("setAccTitle", title) }
func (r *Recorder) SetAccDescription(descr string) { r.record("setAccDescription", descr) }
func (r *Recorder) SetDiagramTitle(title string)   { r.record("setDiagramTitle", title) }

func (r *Recorder) SetDirection(dir string) error {
	r.record("setDirection", dir)
	return nil
}

func (r *Recorder) Commit(message, id string, typ CommitType, tags []string) error {
	r.record("commit", message, id, typ, tagsArg(tags))
	return nil
}

func (r *Recorder) Branch(name string, order int) error {
	r.record("branch", name, order)
	return nil
}

func (r *Recorder) Merge(branch, id string, typ *CommitType, tags []string) error {
	var t any
	if typ != nil {
		t = typ
	}
	r.record("merge", branch, id, t, tagsArg(tags))
	return nil
}

func (r *Recorder) Checkout(branch string) error {
	r.record("checkout", branch)
	return nil
}

func (r *Recorder) CherryPick(id, targetID string, tags []string, parent string) error {
	r.record("cherryPick", id, targetID, tagsArg(tags), parent)
	return nil
}

func tagsArg(tags []string) any {
	if tags == nil {
		return nil
	}
	return tags
}

// Methods returns the method names of the recorded calls.
func (r *Recorder) Methods() []string {
	out := make([]string, len(r.Calls))
	for i, c := range r.Calls {
		out[i] = c.Method
	}
	return out
}

package broadcast

import (
	"fmt"

	"github.com/vk/gitgraphgo/internal/gitgraph"
)

// EventPrefix is prepended to every emitted event name.
const EventPrefix = "gitgraph:"

var _ gitgraph.Sink = (*Sink)(nil)

// Sink emits one event per sink call. The common-field setters cannot report
// failures, so their emit errors are held and returned by the next call that
// can.
type Sink struct {
	em  Emitter
	err error
}

// NewSink returns a Sink publishing through em.
func NewSink(em Emitter) *Sink {
	return &Sink{em: em}
}

func (s *Sink) emit(method string, payload map[string]any) error {
	if s.err != nil {
		err := s.err
		s.err = nil
		return err
	}
	if err := s.em.Emit(EventPrefix+method, payload); err != nil {
		return fmt.Errorf("emit %s%s: %w", EventPrefix, method, err)
	}
	return nil
}

func (s *Sink) hold(err error) {
	if err != nil && s.err == nil {
		s.err = err
	}
}

// Err returns an emit error held from a common-field setter, if any.
func (s *Sink) Err() error { return s.err }

func (s *Sink) SetAccTitle(title string) {
	s.hold(s.emit("setAccTitle", map[string]any{"title": title}))
}

func (s *Sink) SetAccDescription(descr string) {
	s.hold(s.emit("setAccDescription", map[string]any{"description": descr}))
}

func (s *Sink) SetDiagramTitle(title string) {
	s.hold(s.emit("setDiagramTitle", map[string]any{"title": title}))
}

func (s *Sink) SetDirection(dir string) error {
	return s.emit("setDirection", map[string]any{"direction": dir})
}

func (s *Sink) Commit(message, id string, typ gitgraph.CommitType, tags []string) error {
	return s.emit("commit", map[string]any{
		"message": message,
		"id":      id,
		"type":    typ.String(),
		"tags":    tags,
	})
}

func (s *Sink) Branch(name string, order int) error {
	return s.emit("branch", map[string]any{"name": name, "order": order})
}

func (s *Sink) Merge(branch, id string, typ *gitgraph.CommitType, tags []string) error {
	payload := map[string]any{"branch": branch, "id": id, "tags": tags}
	if typ != nil {
		payload["type"] = typ.String()
	}
	return s.emit("merge", payload)
}

func (s *Sink) Checkout(branch string) error {
	return s.emit("checkout", map[string]any{"branch": branch})
}

func (s *Sink) CherryPick(id, targetID string, tags []string, parent string) error {
	return s.emit("cherryPick", map[string]any{
		"id":       id,
		"targetId": targetID,
		"tags":     tags,
		"parent":   parent,
	})
}

// Package gitgraph replays a parsed git graph document against a Sink.
//
// # Flow
//
//	model.Graph ──Populate──► Sink (gitgraphdb.DB, Recorder, broadcast.Sink, ...)
//
// Populate first forwards the common diagram fields, then the layout direction
// when the document has one, then walks the statements in document order. Each
// recognized statement becomes exactly one positional Sink call; the mapping and
// its defaults are fixed:
//
//	Commit        -> Commit(message or "", id, type or Normal, tags)
//	Branch        -> Branch(name, order or 0)
//	Merge         -> Merge(branch, id or "", type or nil, tags)
//	Checkout      -> Checkout(branch)
//	CherryPicking -> CherryPick(id, "", tags (empty -> nil), parent)
//
// Commit and Merge default their type differently on purpose: a commit without
// a type is Normal, a merge without a type lets the sink pick its own.
//
// A statement whose kind is not recognized is logged and skipped; the rest of
// the document is still replayed. Errors returned by the sink stop the pass and
// are returned to the caller unchanged apart from wrapping.
//
// Populate performs no validation of required fields. Decoders are expected to
// have enforced them, and empty values are forwarded as they are.
package gitgraph

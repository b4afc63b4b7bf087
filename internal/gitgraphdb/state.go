package gitgraphdb

// State is a serializable snapshot of a DB.
type State struct {
	Title         string    `json:"title,omitempty" yaml:"title,omitempty"`
	AccTitle      string    `json:"accTitle,omitempty" yaml:"accTitle,omitempty"`
	AccDescr      string    `json:"accDescr,omitempty" yaml:"accDescr,omitempty"`
	Direction     string    `json:"direction" yaml:"direction"`
	CurrentBranch string    `json:"currentBranch" yaml:"currentBranch"`
	Branches      []Branch  `json:"branches" yaml:"branches"`
	Commits       []*Commit `json:"commits" yaml:"commits"`
}

// State returns a snapshot of the database. Commits in the snapshot share
// memory with the DB; callers must not modify them.
func (db *DB) State() State {
	return State{
		Title:         db.DiagramTitle(),
		AccTitle:      db.AccTitle(),
		AccDescr:      db.AccDescription(),
		Direction:     db.direction,
		CurrentBranch: db.current,
		Branches:      db.Branches(),
		Commits:       db.Commits(),
	}
}

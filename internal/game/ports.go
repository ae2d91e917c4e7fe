package game

import "time"

// InputPort yields one semantic command per call, blocking until the
// player acts.
type InputPort interface {
	NextCommand() (Command, error)
}

// RenderPort consumes a snapshot after every processed command.
type RenderPort interface {
	Render(Snapshot) error
}

// BestStore keeps per-difficulty best completion times. Implementations
// live outside this package; a nil store disables record keeping.
type BestStore interface {
	// Best returns the stored time for a difficulty key and whether one
	// exists.
	Best(key string) (time.Duration, bool, error)
	// Record stores d if it beats the current best, reporting whether it
	// did.
	Record(key string, d time.Duration) (bool, error)
}

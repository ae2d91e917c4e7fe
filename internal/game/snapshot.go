package game

import (
	"time"

	"github.com/vancomm/minesweeper-tui/internal/mines"
)

// CellView is the render-facing view of one cell. Mine is only
// populated once the game is over; while playing, mine membership never
// leaves the engine.
type CellView struct {
	Revealed  bool
	Flagged   bool
	Mine      bool
	WrongFlag bool
	Adjacent  int
}

// Snapshot is an immutable copy of everything the render boundary may
// draw after one command. It shares no memory with the engine.
type Snapshot struct {
	Status     Status
	Difficulty mines.Difficulty

	Width, Height int
	Cells         []CellView
	Cursor        mines.Point

	Elapsed       time.Duration
	Remaining     int
	FlagsPlaced   int
	CellsRevealed int

	MenuItems []string
	MenuIndex int

	// BestTime is the stored best completion time for this difficulty,
	// zero when none is recorded. NewBest is set on the snapshot that
	// enters StatusWon with a record improvement.
	BestTime time.Duration
	NewBest  bool
}

// CellAt returns the view of the cell at p. p must be in bounds.
func (s Snapshot) CellAt(p mines.Point) CellView {
	return s.Cells[p.Y*s.Width+p.X]
}

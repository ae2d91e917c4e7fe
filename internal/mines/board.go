package mines

import (
	"fmt"
	"math/rand/v2"
	"strconv"
	"strings"
)

type Cell struct {
	HasMine  bool
	Revealed bool
	Flagged  bool
	// Adjacent is the number of mined neighbors, cached once mines are
	// placed. Zero until then.
	Adjacent int
	// WrongFlag marks a flagged non-mine cell after a loss, for display
	// only. Flagged itself is left untouched.
	WrongFlag bool
}

type RevealOutcome int

const (
	// Blocked means the target was already revealed or is flagged.
	Blocked RevealOutcome = iota
	// MineHit means the target contained a mine. The board only reports;
	// ending the game is the caller's job.
	MineHit
	// Revealed means one or more cells were opened.
	Revealed
)

func (o RevealOutcome) String() string {
	switch o {
	case Blocked:
		return "blocked"
	case MineHit:
		return "mine hit"
	case Revealed:
		return "revealed"
	default:
		return "unknown"
	}
}

// Board owns the cell grid and mine membership for one game. Mines are
// not placed until the first Reveal call, which becomes the safe cell.
type Board struct {
	Width, Height int

	cells         []Cell
	mineCount     int
	mines         map[Point]struct{}
	minesPlaced   bool
	safeArea      SafeArea
	rand          *rand.Rand
	flagsPlaced   int
	cellsRevealed int
}

// NewBoard creates an empty board for d. Mine placement is deferred to
// the first Reveal so that the player's first action is never fatal.
func NewBoard(d Difficulty, area SafeArea, r *rand.Rand) (*Board, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}
	if maxZone := min(3, d.Width) * min(3, d.Height); area == SafeNeighborhood &&
		d.MineCount > d.TotalCells()-maxZone {
		return nil, fmt.Errorf(
			"%w: %d mines leave no room for a safe neighborhood on a %dx%d board",
			ErrInvalidConfig, d.MineCount, d.Width, d.Height,
		)
	}
	return &Board{
		Width:     d.Width,
		Height:    d.Height,
		cells:     make([]Cell, d.TotalCells()),
		mineCount: d.MineCount,
		safeArea:  area,
		rand:      r,
	}, nil
}

// NewBoardWithMines creates a board with an explicit mine layout, for
// deterministic setups. The deferred-placement first-click guarantee
// does not apply.
func NewBoardWithMines(d Difficulty, mines []Point) (*Board, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}
	b := &Board{
		Width:     d.Width,
		Height:    d.Height,
		cells:     make([]Cell, d.TotalCells()),
		mineCount: d.MineCount,
	}
	set := make(map[Point]struct{}, len(mines))
	for _, p := range mines {
		if !b.InBounds(p) {
			return nil, fmt.Errorf("%w: mine at %v out of bounds", ErrInvalidConfig, p)
		}
		set[p] = struct{}{}
	}
	if len(set) != d.MineCount {
		return nil, fmt.Errorf("%w: %d distinct mines, want %d",
			ErrInvalidConfig, len(set), d.MineCount)
	}
	b.placeMines(set)
	return b, nil
}

func (b *Board) InBounds(p Point) bool {
	return p.X >= 0 && p.X < b.Width && p.Y >= 0 && p.Y < b.Height
}

func (b *Board) at(p Point) *Cell {
	return &b.cells[p.Y*b.Width+p.X]
}

// CellAt returns a copy of the cell at p.
func (b *Board) CellAt(p Point) Cell {
	return *b.at(p)
}

func (b *Board) MineCount() int     { return b.mineCount }
func (b *Board) MinesPlaced() bool  { return b.minesPlaced }
func (b *Board) FlagsPlaced() int   { return b.flagsPlaced }
func (b *Board) CellsRevealed() int { return b.cellsRevealed }

// Mines returns a copy of the mine set. Empty until mines are placed.
func (b *Board) Mines() map[Point]struct{} {
	m := make(map[Point]struct{}, len(b.mines))
	for p := range b.mines {
		m[p] = struct{}{}
	}
	return m
}

func (b *Board) neighbors(p Point) []Point {
	ns := make([]Point, 0, 8)
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			n := Point{p.X + dx, p.Y + dy}
			if b.InBounds(n) {
				ns = append(ns, n)
			}
		}
	}
	return ns
}

func (b *Board) placeMines(mines map[Point]struct{}) {
	b.mines = mines
	for p := range mines {
		b.at(p).HasMine = true
	}
	for y := range b.Height {
		for x := range b.Width {
			p := Point{x, y}
			if b.at(p).HasMine {
				continue
			}
			n := 0
			for _, q := range b.neighbors(p) {
				if b.at(q).HasMine {
					n++
				}
			}
			b.at(p).Adjacent = n
		}
	}
	b.minesPlaced = true
}

// Reveal opens the cell at p. On the first call it places the mines
// first, using p as the safe cell. Zero-count cells trigger a flood
// fill over the connected zero region and its numbered border; flagged
// cells halt expansion and stay untouched. The returned count is the
// total number of cells opened by this one action.
func (b *Board) Reveal(p Point) (RevealOutcome, int) {
	if !b.InBounds(p) {
		return Blocked, 0
	}
	c := b.at(p)
	if c.Revealed || c.Flagged {
		return Blocked, 0
	}

	if !b.minesPlaced {
		mines, err := Generate(b.Width, b.Height, b.mineCount, p, b.safeArea, b.rand)
		if err != nil {
			// NewBoard validated the parameters against the safe area.
			panic(err)
		}
		b.placeMines(mines)
	}

	if c.HasMine {
		c.Revealed = true
		return MineHit, 0
	}
	return Revealed, b.floodReveal(p)
}

// floodReveal opens p and, through a FIFO frontier, every cell
// reachable from it via zero-count cells. Cells are marked revealed as
// they are enqueued, so each is processed at most once and termination
// is immediate once the frontier drains.
func (b *Board) floodReveal(start Point) int {
	b.at(start).Revealed = true
	b.cellsRevealed++
	opened := 1

	frontier := []Point{start}
	for len(frontier) > 0 {
		p := frontier[0]
		frontier = frontier[1:]
		if b.at(p).Adjacent != 0 {
			continue
		}
		for _, n := range b.neighbors(p) {
			nc := b.at(n)
			if nc.Revealed || nc.Flagged {
				continue
			}
			nc.Revealed = true
			b.cellsRevealed++
			opened++
			frontier = append(frontier, n)
		}
	}
	return opened
}

// ToggleFlag flips the flag on an unrevealed cell. Returns false on a
// revealed or out-of-bounds cell.
func (b *Board) ToggleFlag(p Point) bool {
	if !b.InBounds(p) {
		return false
	}
	c := b.at(p)
	if c.Revealed {
		return false
	}
	c.Flagged = !c.Flagged
	if c.Flagged {
		b.flagsPlaced++
	} else {
		b.flagsPlaced--
	}
	return true
}

// RemainingMineEstimate may go negative when over-flagged; display
// truncation is the caller's decision.
func (b *Board) RemainingMineEstimate() int {
	return b.mineCount - b.flagsPlaced
}

// IsCleared reports whether every non-mine cell has been revealed.
func (b *Board) IsCleared() bool {
	return b.minesPlaced && b.cellsRevealed == b.Width*b.Height-b.mineCount
}

// RevealAllMines exposes every mine and marks incorrectly flagged cells
// for display. Called on loss only; cellsRevealed is not altered.
func (b *Board) RevealAllMines() {
	for p := range b.mines {
		b.at(p).Revealed = true
	}
	for i := range b.cells {
		c := &b.cells[i]
		if c.Flagged && !c.HasMine {
			c.WrongFlag = true
		}
	}
}

// String renders the player-visible grid, one rune per cell: '#' for
// covered, '*' for flags, '@' for revealed mines, '.' for open zeros.
func (b *Board) String() string {
	var sb strings.Builder
	for y := range b.Height {
		for x := range b.Width {
			c := b.at(Point{x, y})
			switch {
			case c.Flagged:
				sb.WriteString("* ")
			case !c.Revealed:
				sb.WriteString("# ")
			case c.HasMine:
				sb.WriteString("@ ")
			case c.Adjacent == 0:
				sb.WriteString(". ")
			default:
				sb.WriteString(strconv.Itoa(c.Adjacent) + " ")
			}
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

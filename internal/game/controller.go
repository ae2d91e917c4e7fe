package game

import (
	"math/rand/v2"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/vancomm/minesweeper-tui/internal/mines"
)

// Options configures a Controller. Zero values get usable defaults, so
// tests can override only the clock and randomness they care about.
type Options struct {
	// Clock supplies wall-clock instants for elapsed-time accounting.
	// Defaults to time.Now.
	Clock func() time.Time
	// Rand drives mine placement. Defaults to a PCG seeded from the
	// clock.
	Rand *rand.Rand
	// SafeArea selects first-reveal mine exclusion (single cell by
	// default).
	SafeArea mines.SafeArea
	// Difficulties populate the menu. Defaults to the standard presets.
	Difficulties []mines.Difficulty
	// Best records completion times; nil disables record keeping.
	Best BestStore
	// Log defaults to the standard logrus logger.
	Log *logrus.Logger
}

// Controller owns one game session at a time. It consumes exactly one
// command per Apply call, drives the board and game state to
// completion, and hands back a snapshot for rendering. All processing
// is synchronous on the caller's goroutine.
type Controller struct {
	log          *logrus.Logger
	clock        func() time.Time
	rand         *rand.Rand
	safeArea     mines.SafeArea
	difficulties []mines.Difficulty
	best         BestStore

	status    Status
	menuIndex int

	board      *mines.Board
	difficulty mines.Difficulty
	cursor     mines.Point
	startedAt  time.Time
	frozen     time.Duration
	bestTime   time.Duration
	newBest    bool
}

func NewController(opts Options) *Controller {
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	if opts.Rand == nil {
		seed := uint64(opts.Clock().UnixNano())
		opts.Rand = rand.New(rand.NewPCG(seed, seed>>32))
	}
	if opts.Difficulties == nil {
		opts.Difficulties = mines.Presets()
	}
	if opts.Log == nil {
		opts.Log = logrus.StandardLogger()
	}
	return &Controller{
		log:          opts.Log,
		clock:        opts.Clock,
		rand:         opts.Rand,
		safeArea:     opts.SafeArea,
		difficulties: opts.Difficulties,
		best:         opts.Best,
		status:       StatusMenu,
	}
}

func (c *Controller) Status() Status { return c.status }

// StartGame discards any previous session and enters Playing with a
// fresh board for d. On an invalid difficulty the controller stays in
// the menu and no board is created.
func (c *Controller) StartGame(d mines.Difficulty) error {
	board, err := mines.NewBoard(d, c.safeArea, c.rand)
	if err != nil {
		c.status = StatusMenu
		c.board = nil
		return err
	}
	c.board = board
	c.difficulty = d
	c.status = StatusPlaying
	c.cursor = mines.Point{X: d.Width / 2, Y: d.Height / 2}
	c.startedAt = c.clock()
	c.frozen = 0
	c.newBest = false
	c.bestTime = c.lookupBest(d)
	c.log.WithFields(logrus.Fields{
		"difficulty": d.String(),
		"safe_area":  c.safeArea.String(),
	}).Info("game started")
	return nil
}

func (c *Controller) lookupBest(d mines.Difficulty) time.Duration {
	if c.best == nil {
		return 0
	}
	best, ok, err := c.best.Best(d.Key())
	if err != nil {
		c.log.WithError(err).Warn("best time lookup failed")
		return 0
	}
	if !ok {
		return 0
	}
	return best
}

// Apply processes a single command synchronously and returns the
// snapshot to render. Unmapped input arrives as Invalid and mutates
// nothing.
func (c *Controller) Apply(cmd Command) Snapshot {
	if cmd == ForceExit {
		// Immediate termination, no confirmation.
		c.status = StatusExited
		return c.Snapshot()
	}
	switch c.status {
	case StatusMenu:
		c.applyMenu(cmd)
	case StatusPlaying:
		c.applyPlaying(cmd)
	case StatusWon, StatusLost:
		c.applyGameOver(cmd)
	case StatusExited:
		// Terminal state, absorbs everything.
	}
	return c.Snapshot()
}

func (c *Controller) applyMenu(cmd Command) {
	quitIndex := len(c.difficulties)
	switch cmd {
	case MoveUp:
		if c.menuIndex > 0 {
			c.menuIndex--
		}
	case MoveDown:
		if c.menuIndex < quitIndex {
			c.menuIndex++
		}
	case Select:
		if c.menuIndex == quitIndex {
			c.status = StatusExited
			return
		}
		if err := c.StartGame(c.difficulties[c.menuIndex]); err != nil {
			c.log.WithError(err).Error("cannot start game")
		}
	case Exit:
		c.status = StatusExited
	}
}

func (c *Controller) applyPlaying(cmd Command) {
	switch cmd {
	case MoveUp:
		c.moveCursor(0, -1)
	case MoveDown:
		c.moveCursor(0, 1)
	case MoveLeft:
		c.moveCursor(-1, 0)
	case MoveRight:
		c.moveCursor(1, 0)
	case Select:
		c.revealAtCursor()
	case Flag:
		c.board.ToggleFlag(c.cursor)
	case Exit:
		c.toMenu()
	}
}

func (c *Controller) applyGameOver(cmd Command) {
	switch cmd {
	case Select:
		if err := c.StartGame(c.difficulty); err != nil {
			// The difficulty already produced one board; failing here
			// would be a programming error.
			c.log.WithError(err).Error("cannot restart game")
			c.toMenu()
		}
	case Exit:
		c.toMenu()
	}
}

func (c *Controller) toMenu() {
	c.board = nil
	c.status = StatusMenu
	c.menuIndex = 0
	c.frozen = 0
	c.newBest = false
}

func (c *Controller) moveCursor(dx, dy int) {
	c.cursor.X = clamp(c.cursor.X+dx, 0, c.board.Width-1)
	c.cursor.Y = clamp(c.cursor.Y+dy, 0, c.board.Height-1)
}

func (c *Controller) revealAtCursor() {
	outcome, opened := c.board.Reveal(c.cursor)
	switch outcome {
	case mines.Blocked:
	case mines.MineHit:
		c.board.RevealAllMines()
		c.freezeElapsed()
		c.status = StatusLost
		c.log.WithFields(logrus.Fields{
			"cursor":  c.cursor,
			"elapsed": c.frozen,
		}).Info("mine hit, game lost")
	case mines.Revealed:
		c.log.WithFields(logrus.Fields{
			"cursor": c.cursor,
			"opened": opened,
		}).Debug("cells revealed")
		if c.board.IsCleared() {
			c.freezeElapsed()
			c.status = StatusWon
			c.recordBest()
			c.log.WithField("elapsed", c.frozen).Info("board cleared, game won")
		}
	}
}

// freezeElapsed fixes the final duration; it is never recomputed once
// the game reaches a terminal status.
func (c *Controller) freezeElapsed() {
	c.frozen = c.clock().Sub(c.startedAt)
}

func (c *Controller) recordBest() {
	if c.best == nil {
		return
	}
	improved, err := c.best.Record(c.difficulty.Key(), c.frozen)
	if err != nil {
		c.log.WithError(err).Warn("best time record failed")
		return
	}
	c.newBest = improved
	if improved {
		c.bestTime = c.frozen
	}
}

// Snapshot builds the current read-only view. While playing, elapsed
// time is computed on demand from the clock; after a win or loss the
// frozen value is reused.
func (c *Controller) Snapshot() Snapshot {
	snap := Snapshot{
		Status:    c.status,
		MenuItems: c.menuItems(),
		MenuIndex: c.menuIndex,
	}
	if c.board == nil {
		return snap
	}

	snap.Difficulty = c.difficulty
	snap.Width = c.board.Width
	snap.Height = c.board.Height
	snap.Cursor = c.cursor
	snap.Remaining = c.board.RemainingMineEstimate()
	snap.FlagsPlaced = c.board.FlagsPlaced()
	snap.CellsRevealed = c.board.CellsRevealed()
	snap.BestTime = c.bestTime
	snap.NewBest = c.newBest

	if c.status.Terminal() {
		snap.Elapsed = c.frozen
	} else {
		snap.Elapsed = c.clock().Sub(c.startedAt)
	}

	over := c.status.Terminal()
	snap.Cells = make([]CellView, 0, c.board.Width*c.board.Height)
	for y := range c.board.Height {
		for x := range c.board.Width {
			cell := c.board.CellAt(mines.Point{X: x, Y: y})
			snap.Cells = append(snap.Cells, CellView{
				Revealed:  cell.Revealed,
				Flagged:   cell.Flagged,
				Mine:      over && cell.HasMine,
				WrongFlag: over && cell.WrongFlag,
				Adjacent:  cell.Adjacent,
			})
		}
	}
	return snap
}

func (c *Controller) menuItems() []string {
	items := make([]string, 0, len(c.difficulties)+1)
	for _, d := range c.difficulties {
		items = append(items, d.String())
	}
	return append(items, "Quit")
}

// Run drives the synchronous command loop: render, block for one
// command, apply, render, until the controller exits or a port fails.
func (c *Controller) Run(in InputPort, out RenderPort) error {
	if err := out.Render(c.Snapshot()); err != nil {
		return err
	}
	for c.status != StatusExited {
		cmd, err := in.NextCommand()
		if err != nil {
			return err
		}
		if err := out.Render(c.Apply(cmd)); err != nil {
			return err
		}
	}
	return nil
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

package game

import (
	"errors"
	"io"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vancomm/minesweeper-tui/internal/mines"
)

type testClock struct {
	now time.Time
}

func (c *testClock) Now() time.Time          { return c.now }
func (c *testClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

type fakeBest struct {
	times   map[string]time.Duration
	err     error
	records int
}

func (f *fakeBest) Best(key string) (time.Duration, bool, error) {
	if f.err != nil {
		return 0, false, f.err
	}
	d, ok := f.times[key]
	return d, ok, nil
}

func (f *fakeBest) Record(key string, d time.Duration) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	f.records++
	if prev, ok := f.times[key]; ok && prev <= d {
		return false, nil
	}
	f.times[key] = d
	return true, nil
}

func quietLog() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func newTestController(t *testing.T, opts Options) (*Controller, *testClock) {
	t.Helper()
	clock := &testClock{now: time.Unix(1_000_000, 0)}
	opts.Clock = clock.Now
	if opts.Rand == nil {
		opts.Rand = rand.New(rand.NewPCG(1, 2))
	}
	if opts.Log == nil {
		opts.Log = quietLog()
	}
	return NewController(opts), clock
}

// startCorner3x3 puts the controller into a 3x3 game whose only mine
// sits at (0,0), replacing the randomly generated board.
func startCorner3x3(t *testing.T, c *Controller) {
	t.Helper()
	d, err := mines.Custom(3, 3, 1)
	require.NoError(t, err)
	require.NoError(t, c.StartGame(d))
	board, err := mines.NewBoardWithMines(d, []mines.Point{{X: 0, Y: 0}})
	require.NoError(t, err)
	c.board = board
}

func TestMenuNavigation(t *testing.T) {
	c, _ := newTestController(t, Options{})

	snap := c.Apply(MoveUp)
	assert.Equal(t, 0, snap.MenuIndex, "clamped at top")
	assert.Equal(t, []string{
		"Beginner (9x9, 10 mines)",
		"Intermediate (16x16, 40 mines)",
		"Expert (30x16, 99 mines)",
		"Quit",
	}, snap.MenuItems)

	for range 10 {
		snap = c.Apply(MoveDown)
	}
	assert.Equal(t, 3, snap.MenuIndex, "clamped at Quit")

	snap = c.Apply(Select)
	assert.Equal(t, StatusExited, snap.Status)
}

func TestMenuStartsGame(t *testing.T) {
	c, _ := newTestController(t, Options{})

	snap := c.Apply(Select)
	assert.Equal(t, StatusPlaying, snap.Status)
	assert.Equal(t, mines.Beginner, snap.Difficulty)
	assert.Equal(t, mines.Point{X: 4, Y: 4}, snap.Cursor, "cursor centered")
	assert.Len(t, snap.Cells, 81)
	assert.Equal(t, 10, snap.Remaining)
	assert.Zero(t, snap.CellsRevealed)
}

func TestMenuExitCommand(t *testing.T) {
	c, _ := newTestController(t, Options{})
	snap := c.Apply(Exit)
	assert.Equal(t, StatusExited, snap.Status)

	// Terminal state absorbs further input.
	snap = c.Apply(Select)
	assert.Equal(t, StatusExited, snap.Status)
}

func TestInvalidDifficultyStaysInMenu(t *testing.T) {
	bad := mines.Difficulty{Name: "Broken", Width: 3, Height: 3, MineCount: 9}
	c, _ := newTestController(t, Options{Difficulties: []mines.Difficulty{bad}})

	err := c.StartGame(bad)
	assert.ErrorIs(t, err, mines.ErrInvalidConfig)

	snap := c.Apply(Select)
	assert.Equal(t, StatusMenu, snap.Status)
	assert.Empty(t, snap.Cells, "no board was created")
}

func TestCursorClamping(t *testing.T) {
	c, _ := newTestController(t, Options{})
	startCorner3x3(t, c)

	for range 5 {
		c.Apply(MoveLeft)
	}
	snap := c.Apply(MoveUp)
	assert.Equal(t, mines.Point{X: 0, Y: 0}, snap.Cursor)

	for range 5 {
		c.Apply(MoveRight)
		c.Apply(MoveDown)
	}
	assert.Equal(t, mines.Point{X: 2, Y: 2}, c.Snapshot().Cursor)
}

func TestWinScenario(t *testing.T) {
	best := &fakeBest{times: map[string]time.Duration{}}
	c, clock := newTestController(t, Options{Best: best})
	startCorner3x3(t, c)

	c.Apply(MoveRight)
	c.Apply(MoveDown)
	clock.Advance(42 * time.Second)
	snap := c.Apply(Select)

	assert.Equal(t, StatusWon, snap.Status)
	assert.Equal(t, 8, snap.CellsRevealed)
	assert.Equal(t, 42*time.Second, snap.Elapsed)
	assert.True(t, snap.NewBest)
	assert.Equal(t, 42*time.Second, snap.BestTime)

	// The mine becomes visible in the view only now that the game is
	// over, and it was never revealed on the board.
	mine := snap.CellAt(mines.Point{X: 0, Y: 0})
	assert.True(t, mine.Mine)
	assert.False(t, mine.Revealed)

	// Frozen elapsed never moves again.
	clock.Advance(time.Hour)
	assert.Equal(t, 42*time.Second, c.Snapshot().Elapsed)
}

func TestWinDoesNotBeatFasterRecord(t *testing.T) {
	d, err := mines.Custom(3, 3, 1)
	require.NoError(t, err)
	best := &fakeBest{times: map[string]time.Duration{d.Key(): 5 * time.Second}}
	c, clock := newTestController(t, Options{Best: best})
	startCorner3x3(t, c)

	c.Apply(MoveRight)
	c.Apply(MoveDown)
	clock.Advance(time.Minute)
	snap := c.Apply(Select)

	assert.Equal(t, StatusWon, snap.Status)
	assert.False(t, snap.NewBest)
	assert.Equal(t, 5*time.Second, snap.BestTime)
	assert.Equal(t, 1, best.records)
}

func TestLossScenario(t *testing.T) {
	c, clock := newTestController(t, Options{})
	startCorner3x3(t, c)

	c.Apply(MoveLeft)
	c.Apply(MoveUp)
	clock.Advance(7 * time.Second)
	snap := c.Apply(Select)

	assert.Equal(t, StatusLost, snap.Status)
	assert.Equal(t, 7*time.Second, snap.Elapsed)

	hit := snap.CellAt(mines.Point{X: 0, Y: 0})
	assert.True(t, hit.Mine)
	assert.True(t, hit.Revealed, "all mines revealed on loss")

	// Reveal and flag are no-ops on a terminal board.
	before := c.Snapshot()
	c.Apply(Flag)
	c.Apply(MoveRight)
	assert.Equal(t, before, c.Snapshot())
}

func TestRestartAfterLoss(t *testing.T) {
	c, _ := newTestController(t, Options{})
	startCorner3x3(t, c)

	c.Apply(MoveLeft)
	c.Apply(MoveUp)
	require.Equal(t, StatusLost, c.Apply(Select).Status)

	snap := c.Apply(Select)
	assert.Equal(t, StatusPlaying, snap.Status)
	assert.Equal(t, "Custom", snap.Difficulty.Name, "same difficulty")
	assert.Zero(t, snap.CellsRevealed, "fresh board")
	assert.Equal(t, mines.Point{X: 1, Y: 1}, snap.Cursor, "cursor recentered")
}

func TestGameOverExitToMenu(t *testing.T) {
	c, _ := newTestController(t, Options{})
	startCorner3x3(t, c)

	c.Apply(MoveLeft)
	c.Apply(MoveUp)
	require.Equal(t, StatusLost, c.Apply(Select).Status)

	snap := c.Apply(Exit)
	assert.Equal(t, StatusMenu, snap.Status)
	assert.Empty(t, snap.Cells, "board discarded")
	assert.Zero(t, snap.MenuIndex)
}

func TestFlagProtectsCell(t *testing.T) {
	c, _ := newTestController(t, Options{})
	startCorner3x3(t, c)

	c.Apply(Flag)
	snap := c.Apply(Select)

	assert.Equal(t, StatusPlaying, snap.Status)
	assert.Zero(t, snap.CellsRevealed)
	assert.Equal(t, 1, snap.FlagsPlaced)
	assert.Equal(t, 0, snap.Remaining)
	cell := snap.CellAt(mines.Point{X: 1, Y: 1})
	assert.True(t, cell.Flagged)
	assert.False(t, cell.Revealed)

	// Unflag, then the reveal goes through.
	c.Apply(Flag)
	snap = c.Apply(Select)
	assert.Equal(t, 1, snap.CellsRevealed)
}

func TestPlayingExitDiscardsGame(t *testing.T) {
	c, _ := newTestController(t, Options{})
	startCorner3x3(t, c)

	snap := c.Apply(Exit)
	assert.Equal(t, StatusMenu, snap.Status)
	assert.Empty(t, snap.Cells)
}

func TestInvalidCommandIsNoop(t *testing.T) {
	c, _ := newTestController(t, Options{})
	startCorner3x3(t, c)

	before := c.Snapshot()
	after := c.Apply(Invalid)
	assert.Equal(t, before, after)
}

func TestForceExitBypassesEverything(t *testing.T) {
	for _, setup := range []func(*Controller){
		func(c *Controller) {},
		func(c *Controller) { startCorner3x3(t, c) },
	} {
		c, _ := newTestController(t, Options{})
		setup(c)
		snap := c.Apply(ForceExit)
		assert.Equal(t, StatusExited, snap.Status)
	}
}

func TestMinesHiddenWhilePlaying(t *testing.T) {
	c, _ := newTestController(t, Options{})
	require.NoError(t, c.StartGame(mines.Beginner))

	snap := c.Apply(Select) // first reveal, mines now placed
	require.Equal(t, StatusPlaying, snap.Status)
	for i, cell := range snap.Cells {
		assert.False(t, cell.Mine, "cell %d leaks a mine mid-game", i)
	}
}

func TestElapsedWhilePlaying(t *testing.T) {
	c, clock := newTestController(t, Options{})
	startCorner3x3(t, c)

	clock.Advance(3 * time.Second)
	assert.Equal(t, 3*time.Second, c.Snapshot().Elapsed)
	clock.Advance(2 * time.Second)
	assert.Equal(t, 5*time.Second, c.Snapshot().Elapsed)
}

func TestBestStoreFailureIsNonFatal(t *testing.T) {
	best := &fakeBest{err: errors.New("database locked")}
	c, _ := newTestController(t, Options{Best: best})
	startCorner3x3(t, c)

	c.Apply(MoveRight)
	c.Apply(MoveDown)
	snap := c.Apply(Select)
	assert.Equal(t, StatusWon, snap.Status)
	assert.False(t, snap.NewBest)
}

type scriptInput struct {
	commands []Command
}

func (s *scriptInput) NextCommand() (Command, error) {
	if len(s.commands) == 0 {
		return Invalid, errors.New("script exhausted")
	}
	cmd := s.commands[0]
	s.commands = s.commands[1:]
	return cmd, nil
}

type recordRender struct {
	snaps []Snapshot
	err   error
}

func (r *recordRender) Render(s Snapshot) error {
	r.snaps = append(r.snaps, s)
	return r.err
}

func TestRunLoop(t *testing.T) {
	c, _ := newTestController(t, Options{})
	in := &scriptInput{commands: []Command{MoveDown, MoveUp, Select, Exit, ForceExit}}
	out := &recordRender{}

	require.NoError(t, c.Run(in, out))

	// Initial render plus one per command.
	require.Len(t, out.snaps, 6)
	assert.Equal(t, StatusMenu, out.snaps[0].Status)
	assert.Equal(t, StatusPlaying, out.snaps[3].Status)
	assert.Equal(t, StatusMenu, out.snaps[4].Status)
	assert.Equal(t, StatusExited, out.snaps[5].Status)
}

func TestRunStopsOnRenderError(t *testing.T) {
	c, _ := newTestController(t, Options{})
	out := &recordRender{err: errors.New("screen gone")}
	err := c.Run(&scriptInput{commands: []Command{Select}}, out)
	assert.ErrorContains(t, err, "screen gone")
}

func TestRunStopsOnInputError(t *testing.T) {
	c, _ := newTestController(t, Options{})
	err := c.Run(&scriptInput{}, &recordRender{})
	assert.ErrorContains(t, err, "script exhausted")
}

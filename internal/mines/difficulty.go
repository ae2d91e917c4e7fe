package mines

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidConfig is returned when board parameters cannot produce a
// playable game. It is always detected before a Board is created.
var ErrInvalidConfig = errors.New("invalid game configuration")

type Difficulty struct {
	Name      string
	Width     int
	Height    int
	MineCount int
}

var (
	Beginner     = Difficulty{Name: "Beginner", Width: 9, Height: 9, MineCount: 10}
	Intermediate = Difficulty{Name: "Intermediate", Width: 16, Height: 16, MineCount: 40}
	Expert       = Difficulty{Name: "Expert", Width: 30, Height: 16, MineCount: 99}
)

// Presets returns the standard difficulty levels in menu order.
func Presets() []Difficulty {
	return []Difficulty{Beginner, Intermediate, Expert}
}

// Custom builds a user-supplied difficulty, validating it up front.
func Custom(width, height, mineCount int) (Difficulty, error) {
	d := Difficulty{
		Name:      "Custom",
		Width:     width,
		Height:    height,
		MineCount: mineCount,
	}
	return d, d.Validate()
}

func (d Difficulty) Validate() error {
	if d.Width <= 0 || d.Height <= 0 {
		return fmt.Errorf("%w: board size %dx%d", ErrInvalidConfig, d.Width, d.Height)
	}
	if d.MineCount <= 0 || d.MineCount >= d.Width*d.Height {
		return fmt.Errorf("%w: %d mines on a %dx%d board",
			ErrInvalidConfig, d.MineCount, d.Width, d.Height)
	}
	return nil
}

func (d Difficulty) TotalCells() int { return d.Width * d.Height }

// SafeCells is the number of cells a player must reveal to win.
func (d Difficulty) SafeCells() int { return d.TotalCells() - d.MineCount }

// Key identifies a difficulty for record keeping. Two custom games with
// the same dimensions and mine count share a key.
func (d Difficulty) Key() string {
	return fmt.Sprintf("%s-%dx%d-%d",
		strings.ToLower(d.Name), d.Width, d.Height, d.MineCount)
}

func (d Difficulty) String() string {
	return fmt.Sprintf("%s (%dx%d, %d mines)", d.Name, d.Width, d.Height, d.MineCount)
}

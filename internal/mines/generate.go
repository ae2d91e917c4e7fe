package mines

import (
	"fmt"
	"math/rand/v2"
)

type Point struct {
	X, Y int
}

// SafeArea controls how much space around the first opened cell is kept
// clear of mines.
type SafeArea int

const (
	// SafeCell excludes only the opened cell itself.
	SafeCell SafeArea = iota
	// SafeNeighborhood excludes the opened cell and its up-to-8 neighbors,
	// guaranteeing the first reveal opens a zero-count region.
	SafeNeighborhood
)

func (a SafeArea) String() string {
	if a == SafeNeighborhood {
		return "neighborhood"
	}
	return "cell"
}

// contains reports whether p falls inside the area centered on safe.
func (a SafeArea) contains(safe, p Point) bool {
	if a == SafeNeighborhood {
		dx, dy := p.X-safe.X, p.Y-safe.Y
		return dx >= -1 && dx <= 1 && dy >= -1 && dy <= 1
	}
	return p == safe
}

// Generate picks mineCount distinct mine positions on a width x height
// board, none inside the safe area around safe. The sample is uniform
// without replacement (partial Fisher-Yates over the candidate cells)
// and reproducible for a fixed r.
func Generate(
	width, height, mineCount int,
	safe Point, area SafeArea, r *rand.Rand,
) (map[Point]struct{}, error) {
	candidates := make([]Point, 0, width*height-1)
	for y := range height {
		for x := range width {
			p := Point{x, y}
			if area.contains(safe, p) {
				continue
			}
			candidates = append(candidates, p)
		}
	}

	if mineCount > len(candidates) {
		return nil, fmt.Errorf(
			"%w: cannot place %d mines in %d available cells",
			ErrInvalidConfig, mineCount, len(candidates),
		)
	}

	mines := make(map[Point]struct{}, mineCount)
	for i := range mineCount {
		j := i + r.IntN(len(candidates)-i)
		candidates[i], candidates[j] = candidates[j], candidates[i]
		mines[candidates[i]] = struct{}{}
	}
	return mines, nil
}

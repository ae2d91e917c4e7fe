package game

type Status int

const (
	StatusMenu Status = iota
	StatusPlaying
	StatusWon
	StatusLost
	StatusExited
)

func (s Status) String() string {
	switch s {
	case StatusMenu:
		return "menu"
	case StatusPlaying:
		return "playing"
	case StatusWon:
		return "won"
	case StatusLost:
		return "lost"
	case StatusExited:
		return "exited"
	default:
		return "unknown"
	}
}

// Terminal reports whether the game has ended one way or the other.
func (s Status) Terminal() bool {
	return s == StatusWon || s == StatusLost
}

package game

// Command is a semantic input action. Decoding raw key sequences into
// commands is the input adapter's job; the controller only ever sees
// this closed set.
type Command int

const (
	Invalid Command = iota
	MoveUp
	MoveDown
	MoveLeft
	MoveRight
	Select
	Flag
	Exit
	ForceExit
)

func (c Command) String() string {
	switch c {
	case MoveUp:
		return "move up"
	case MoveDown:
		return "move down"
	case MoveLeft:
		return "move left"
	case MoveRight:
		return "move right"
	case Select:
		return "select"
	case Flag:
		return "flag"
	case Exit:
		return "exit"
	case ForceExit:
		return "force exit"
	default:
		return "invalid"
	}
}

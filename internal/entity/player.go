package entity

type Identity string

const (
	Human    Identity = "human"
	Computer Identity = "computer"
)

type Player struct {
	Identity Identity `json:"identity"`
	Mark     Mark     `json:"mark"`
}

func NewPlayer(identity Identity, mark Mark) *Player {
	return &Player{
		Identity: identity,
		Mark:     mark,
	}
}

// Toggle swaps Cross and Circle. Both players are toggled together between rounds.
func (that *Player) Toggle() {
	that.Mark = that.Mark.Opposite()
}

func (that *Player) IsHuman() bool {
	return that.Identity == Human
}

func (that *Player) IsComputer() bool {
	return that.Identity == Computer
}

// Highlight names the decoration applied to a winning line. Surfaces decide how it looks.
type Highlight string

const (
	HighlightNone        Highlight = ""
	HighlightHumanWin    Highlight = "human-win"
	HighlightComputerWin Highlight = "computer-win"
)

// WinHighlight returns the decoration for a line won by identity.
func WinHighlight(identity Identity) Highlight {
	if identity == Human {
		return HighlightHumanWin
	}
	return HighlightComputerWin
}

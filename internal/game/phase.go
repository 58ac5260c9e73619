package game

type Phase int

const (
	// Listen is the demonstration phase, notes spawn here.
	PhaseListen Phase = iota
	// Play is the input phase, taps are judged here.
	PhasePlay
	// Result is optional, interposed after Play when configured.
	PhaseResult
)

func (p Phase) String() string {
	switch p {
	case PhaseListen:
		return "listen"
	case PhasePlay:
		return "play"
	case PhaseResult:
		return "result"
	}
	return "unknown"
}

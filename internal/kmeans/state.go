package kmeans

import "fmt"

// State is the phase of a clustering run.
//
//	Seeding -> Assigning -> Updating -> Assigning | Converged | Exhausted
type State int

const (
	StateSeeding State = iota
	StateAssigning
	StateUpdating
	StateConverged
	StateExhausted
)

func (s State) String() string {
	switch s {
	case StateSeeding:
		return "seeding"
	case StateAssigning:
		return "assigning"
	case StateUpdating:
		return "updating"
	case StateConverged:
		return "converged"
	case StateExhausted:
		return "exhausted"
	default:
		return fmt.Sprintf("Unknown(%d)", s)
	}
}

// Terminal reports whether s ends a run.
func (s State) Terminal() bool {
	return s == StateConverged || s == StateExhausted
}

package eval

import "fmt"

func (l Leaf) String() string {
	return fmt.Sprintf("(%d, %d)", l.Material, l.Moves)
}

// ParseHeuristic maps the which_ai configuration value (1 = material only,
// 2 = material + mobility) onto a Heuristic.
func ParseHeuristic(whichAI int) (Heuristic, error) {
	switch whichAI {
	case 1:
		return MaterialOnly, nil
	case 2:
		return MaterialAndMobility, nil
	default:
		return 0, fmt.Errorf("eval: invalid which_ai value %d, want 1 or 2", whichAI)
	}
}

package analysis

// Comment describes a critical move from its evaluation swing. Improvement
// is judged from White's point of view.
func Comment(before, after, delta float64) string {
	if after > before {
		switch {
		case delta >= 5.0:
			return "Excellent move! Significantly improves the position"
		case delta >= 3.0:
			return "Good tactical move that increases the advantage"
		default:
			return "Move that slightly improves the position"
		}
	}
	switch {
	case delta >= 5.0:
		return "Serious blunder! Severely compromises the position"
	case delta >= 3.0:
		return "Important tactical mistake"
	default:
		return "Inaccuracy that worsens the position"
	}
}

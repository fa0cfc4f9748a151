package game

// AnimationState is the banking posture of a ship, ordered by intensity
// from -2 (FullLeft) to +2 (FullRight).
type AnimationState int8

const (
	FullLeft AnimationState = iota - 2
	HalfLeft
	Stabilized
	HalfRight
	FullRight
)

func (s AnimationState) String() string {
	switch s {
	case FullLeft:
		return "full_left"
	case HalfLeft:
		return "half_left"
	case Stabilized:
		return "stabilized"
	case HalfRight:
		return "half_right"
	case FullRight:
		return "full_right"
	default:
		return "invalid"
	}
}

// Next returns the state reached from s for a horizontal velocity with the
// given sign. Negative input steps toward FullLeft, positive toward FullRight
// and zero toward Stabilized; every step moves by one and the end states
// absorb.
func (s AnimationState) Next(horizontal float64) AnimationState {
	switch {
	case horizontal < 0:
		return max(s-1, FullLeft)
	case horizontal > 0:
		return min(s+1, FullRight)
	case s < Stabilized:
		return s + 1
	case s > Stabilized:
		return s - 1
	default:
		return Stabilized
	}
}

// SpriteIndex maps a state to its frame in the ship atlas.
func (s AnimationState) SpriteIndex() int {
	return int(s - FullLeft)
}

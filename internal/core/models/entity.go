package models

import "strconv"

// EntityID is an opaque handle into the entity registry. Zero is never
// allocated and means "no entity".
type EntityID uint64

const NoEntity EntityID = 0

func (id EntityID) String() string {
	return "e" + strconv.FormatUint(uint64(id), 10)
}

// IsZero reports whether id is the reserved empty handle.
func (id EntityID) IsZero() bool { return id == NoEntity }

// Input is one raw per-frame sample of the directional keys and the fire key.
type Input struct {
	Up    bool
	Down  bool
	Left  bool
	Right bool
	Fire  bool
}

// Horizontal returns -1, 0 or +1 for the pressed horizontal direction.
func (in Input) Horizontal() float64 {
	return axis(in.Left, in.Right)
}

// Vertical returns -1, 0 or +1 for the pressed vertical direction.
func (in Input) Vertical() float64 {
	return axis(in.Down, in.Up)
}

func axis(neg, pos bool) float64 {
	switch {
	case pos && !neg:
		return 1
	case neg && !pos:
		return -1
	default:
		return 0
	}
}

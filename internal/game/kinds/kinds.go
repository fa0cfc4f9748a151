// Package kinds holds the closed enumerations shared by every spawn,
// collision and despawn path.
package kinds

import (
	"errors"
	"fmt"
	"strings"
)

var ErrUnknownVariant = errors.New("unknown enemy variant")

// EnemyVariant is the closed set of enemy classes.
type EnemyVariant uint8

const (
	Small EnemyVariant = iota
	Medium
	Big
)

// Variants lists every variant in declaration order.
var Variants = [...]EnemyVariant{Small, Medium, Big}

func (v EnemyVariant) String() string {
	switch v {
	case Small:
		return "small"
	case Medium:
		return "medium"
	case Big:
		return "big"
	default:
		return fmt.Sprintf("EnemyVariant(%d)", uint8(v))
	}
}

// Valid reports whether v is one of the declared variants.
func (v EnemyVariant) Valid() bool { return v <= Big }

// ParseEnemyVariant converts a configuration name into a variant.
func ParseEnemyVariant(s string) (EnemyVariant, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "small":
		return Small, nil
	case "medium":
		return Medium, nil
	case "big":
		return Big, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownVariant, s)
	}
}

// Faction tells friend from foe. A laser never hits an entity of its own faction.
type Faction uint8

const (
	Player Faction = iota + 1
	Hostile
)

func (f Faction) String() string {
	switch f {
	case Player:
		return "player"
	case Hostile:
		return "hostile"
	default:
		return "none"
	}
}

// Kind labels entities in logs and metrics.
type Kind uint8

const (
	KindShip Kind = iota + 1
	KindEnemy
	KindWeapon
	KindLaser
	KindExplosion
	KindSpawner
)

func (k Kind) String() string {
	switch k {
	case KindShip:
		return "ship"
	case KindEnemy:
		return "enemy"
	case KindWeapon:
		return "weapon"
	case KindLaser:
		return "laser"
	case KindExplosion:
		return "explosion"
	case KindSpawner:
		return "spawner"
	default:
		return "unknown"
	}
}

package game

import (
	"errors"
	"fmt"

	"github.com/zeusync/skyfire/internal/config"
	"github.com/zeusync/skyfire/internal/game/kinds"
)

var ErrMissingAsset = errors.New("missing asset")

// Atlas identifies one sprite sheet. Frames is cached so animation never has
// to ask the renderer for it.
type Atlas struct {
	Path   string
	Frames int
}

// Assets is the immutable atlas registry handed to the spawn consumers.
type Assets struct {
	ship      Atlas
	laser     Atlas
	explosion Atlas
	enemies   [len(kinds.Variants)]Atlas
}

// NewAssets resolves every atlas the simulation can spawn. A missing or empty
// entry is a configuration error.
func NewAssets(cfg config.AssetsConfig) (*Assets, error) {
	a := &Assets{}
	var err error
	if a.ship, err = atlas("ship", cfg.Ship); err != nil {
		return nil, err
	}
	if a.laser, err = atlas("laser", cfg.Laser); err != nil {
		return nil, err
	}
	if a.explosion, err = atlas("explosion", cfg.Explosion); err != nil {
		return nil, err
	}
	for _, v := range kinds.Variants {
		ac, ok := cfg.Enemies[v.String()]
		if !ok {
			return nil, fmt.Errorf("%w: enemy %s", ErrMissingAsset, v)
		}
		if a.enemies[v], err = atlas("enemy "+v.String(), ac); err != nil {
			return nil, err
		}
	}
	return a, nil
}

func atlas(name string, ac config.AtlasConfig) (Atlas, error) {
	if ac.Path == "" || ac.Frames <= 0 {
		return Atlas{}, fmt.Errorf("%w: %s", ErrMissingAsset, name)
	}
	return Atlas{Path: ac.Path, Frames: ac.Frames}, nil
}

func (a *Assets) Ship() Atlas      { return a.ship }
func (a *Assets) Laser() Atlas     { return a.laser }
func (a *Assets) Explosion() Atlas { return a.explosion }

// Enemy returns the atlas of v. Variants are a closed set, so an unknown one
// is a programming error and panics.
func (a *Assets) Enemy(v kinds.EnemyVariant) Atlas {
	if !v.Valid() {
		panic(fmt.Sprintf("game: no atlas for %s", v))
	}
	return a.enemies[v]
}

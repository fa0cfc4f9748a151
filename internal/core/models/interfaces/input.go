package interfaces

import "github.com/zeusync/skyfire/internal/core/models"

// InputSource samples the raw key state once per frame.
type InputSource interface {
	ReadInput() models.Input
}

// InputFunc adapts a plain function to InputSource.
type InputFunc func() models.Input

func (f InputFunc) ReadInput() models.Input { return f() }

// StaticInput always reports the same key state.
type StaticInput models.Input

func (s StaticInput) ReadInput() models.Input { return models.Input(s) }

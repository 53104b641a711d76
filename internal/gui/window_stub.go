//go:build !raylib

package gui

import (
	"errors"

	"github.com/san-kum/fluidview/internal/viewer"
)

// ErrNoWindow is returned by Run in builds without the raylib tag.
var ErrNoWindow = errors.New("gui: built without the 'raylib' tag")

// Run always fails in the headless build.
func Run(viewer.Options, int) error { return ErrNoWindow }

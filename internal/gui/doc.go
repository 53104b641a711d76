// Package gui is the windowed front-end on raylib. The window is only
// compiled with the raylib build tag; without it Run reports ErrNoWindow.
package gui

package viewer

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/charmbracelet/bubbles/key"
)

// Action identifies a controller keyspace binding.
type Action int

const (
	ActionHelp Action = iota
	ActionReset
	ActionIncrease
	ActionDecrease
	ActionRestore
	ActionBoundary
	ActionVariational
	ActionCorrection
	ActionScene
	ActionAdaptive
	ActionRemesh
	ActionMesher
	NumActions
)

var actionNames = [NumActions]string{
	"help", "reset", "increase", "decrease", "restore", "boundary",
	"variational", "correction", "scene", "adaptive", "remesh", "mesher",
}

func (a Action) String() string {
	if a < 0 || a >= NumActions {
		return "unknown"
	}
	return actionNames[a]
}

var actionHelp = [NumActions]struct{ key, desc string }{
	ActionHelp:        {"h", "Toggle help."},
	ActionReset:       {"r", "Reset the simulation."},
	ActionIncrease:    {"+", "Increase the resolution."},
	ActionDecrease:    {"-", "Decrease the resolution."},
	ActionRestore:     {"d", "Restore defaults."},
	ActionBoundary:    {"b", "Change the accuracy of boundary condition."},
	ActionVariational: {"v", "Toggle variational pressure solver."},
	ActionCorrection:  {"s", "Toggle spring correction."},
	ActionScene:       {"t", "Change the test case."},
	ActionAdaptive:    {"a", "Toggle adaptive sampling."},
	ActionRemesh:      {"m", "Toggle grid remeshing."},
	ActionMesher:      {"x", "Change external surface reconstructor."},
}

var visibilityHelp = [NumVisibility]struct{ key, desc string }{
	FrameRate:          {"f", "Toggle frame-rate visibility."},
	GridLines:          {"y", "Toggle grid line visibility."},
	GridVelocity:       {"g", "Toggle grid velocity visibility."},
	LevelSet:           {"l", "Toggle liquid levelset visibility."},
	ParticleVelocity:   {"u", "Toggle particle velocity visibility."},
	Pressure:           {"p", "Toggle pressure visibility."},
	Neighbors:          {"n", "Toggle neighborhood visibility."},
	ParticleAnisotropy: {"z", "Toggle particle radius visibility."},
	MatrixConnections:  {"k", "Toggle matrix connection visibility."},
	ExternalMesh:       {"j", "Toggle external mesh visibility."},
}

// KeyMap holds the two keyspaces. Each binding carries exactly one lower
// case character.
type KeyMap struct {
	Controller [NumActions]key.Binding
	Visibility [NumVisibility]key.Binding
}

func newBinding(k, desc string) key.Binding {
	k = strings.ToLower(k)
	return key.NewBinding(
		key.WithKeys(k),
		key.WithHelp(strings.ToUpper(k), desc),
	)
}

// DefaultKeyMap returns the stock bindings.
func DefaultKeyMap() KeyMap {
	var km KeyMap
	for a, h := range actionHelp {
		km.Controller[a] = newBinding(h.key, h.desc)
	}
	for v, h := range visibilityHelp {
		km.Visibility[v] = newBinding(h.key, h.desc)
	}
	return km
}

// WithOverrides rebinds actions by name. Names are the String forms of
// Action and Visibility. The result is not validated.
func (k KeyMap) WithOverrides(overrides map[string]string) (KeyMap, error) {
	for name, ch := range overrides {
		if a, ok := actionByName(name); ok {
			k.Controller[a] = newBinding(ch, actionHelp[a].desc)
			continue
		}
		if v, ok := visibilityByName(name); ok {
			k.Visibility[v] = newBinding(ch, visibilityHelp[v].desc)
			continue
		}
		return k, fmt.Errorf("%w: %q", ErrUnknownAction, name)
	}
	return k, nil
}

func actionByName(name string) (Action, bool) {
	for a, n := range actionNames {
		if n == name {
			return Action(a), true
		}
	}
	return 0, false
}

func visibilityByName(name string) (Visibility, bool) {
	for v, n := range visibilityNames {
		if n == name {
			return Visibility(v), true
		}
	}
	return 0, false
}

// Validate checks that every binding is one printable, non-space
// character and that no character appears twice across both keyspaces.
func (k KeyMap) Validate() error {
	seen := make(map[string]string, int(NumActions)+int(NumVisibility))
	claim := func(b key.Binding, owner string) error {
		keys := b.Keys()
		if len(keys) != 1 || utf8.RuneCountInString(keys[0]) != 1 {
			return fmt.Errorf("%w: %s has %q", ErrInvalidKey, owner, keys)
		}
		if r, _ := utf8.DecodeRuneInString(keys[0]); unicode.IsSpace(r) || !unicode.IsPrint(r) {
			return fmt.Errorf("%w: %s has %q", ErrInvalidKey, owner, keys)
		}
		ch := strings.ToLower(keys[0])
		if prev, dup := seen[ch]; dup {
			return &KeyCollisionError{Key: ch, First: prev, Second: owner}
		}
		seen[ch] = owner
		return nil
	}
	for v, b := range k.Visibility {
		if err := claim(b, "visibility "+Visibility(v).String()); err != nil {
			return err
		}
	}
	for a, b := range k.Controller {
		if err := claim(b, "action "+Action(a).String()); err != nil {
			return err
		}
	}
	return nil
}

// keyPress is a single typed character, matched against bindings in
// lower case.
type keyPress rune

func (k keyPress) String() string { return string(unicode.ToLower(rune(k))) }

// Resolve looks ch up in both keyspaces. It returns every matching
// visibility layer and the first matching controller action.
func (k KeyMap) Resolve(ch rune) (layers []Visibility, action Action, ok bool) {
	press := keyPress(ch)
	for v, b := range k.Visibility {
		if key.Matches(press, b) {
			layers = append(layers, Visibility(v))
		}
	}
	for a, b := range k.Controller {
		if key.Matches(press, b) {
			return layers, Action(a), true
		}
	}
	return layers, 0, false
}

// label returns the upper case key shown in the overlay.
func label(b key.Binding) string { return b.Help().Key }

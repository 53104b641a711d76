package viewer

import (
	"io"

	"github.com/charmbracelet/log"
)

// Options seeds a Controller. A nil Keys selects DefaultKeyMap and a nil
// Logger discards log output.
type Options struct {
	Visibility VisibilitySettings
	Settings   ControllerSettings
	Scenes     []Scene
	Keys       *KeyMap
	Logger     *log.Logger
}

// Controller turns key presses into settings changes and keeps the
// simulation and renderer in sync with them.
type Controller struct {
	store  *Store
	keys   KeyMap
	scenes []Scene
	sim    Simulation
	render Renderer
	status Status
	log    *log.Logger
}

// New validates opts and builds a controller. It does not touch the
// collaborators; call Apply(true) to start the first simulation.
func New(sim Simulation, render Renderer, opts Options) (*Controller, error) {
	if sim == nil || render == nil {
		return nil, ErrMissingCollaborator
	}
	keys := DefaultKeyMap()
	if opts.Keys != nil {
		keys = *opts.Keys
	}
	if err := keys.Validate(); err != nil {
		return nil, err
	}
	store, err := NewStore(opts.Visibility, opts.Settings, len(opts.Scenes))
	if err != nil {
		return nil, err
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	c := &Controller{
		store:  store,
		keys:   keys,
		scenes: append([]Scene(nil), opts.Scenes...),
		sim:    sim,
		render: render,
		log:    logger,
	}
	c.status = FormatStatus(store.Controller(), sim.GridSize())
	return c, nil
}

func (c *Controller) Store() *Store { return c.store }

func (c *Controller) Keys() KeyMap { return c.keys }

func (c *Controller) Status() Status { return c.status }

// Scene returns the active scene table entry.
func (c *Controller) Scene() Scene { return c.scenes[c.store.Get(SlotScene)] }

// HandleKey applies one key press and reports whether any binding matched.
// Unbound keys leave the settings untouched but still push them out.
func (c *Controller) HandleKey(ch rune) bool {
	layers, action, matched := c.keys.Resolve(ch)
	handled := matched || len(layers) > 0
	for _, v := range layers {
		c.store.ToggleVisible(v)
		c.log.Debug("visibility toggled", "layer", v, "on", c.store.Visible(v))
	}

	reset := false
	if matched {
		reset = c.dispatch(action)
		c.log.Debug("action", "key", string(ch), "action", action, "reset", reset)
	}
	if reset {
		c.Reset()
	}
	c.Apply(false)
	return handled
}

// dispatch runs one controller action and reports whether it requires a
// simulation reset.
func (c *Controller) dispatch(a Action) bool {
	s := c.store
	switch a {
	case ActionHelp:
		c.flip(SlotHelp)
	case ActionRestore:
		force := s.Get(SlotScene) != 0
		s.RestoreDefaults()
		c.Apply(force)
	case ActionReset:
		return true
	case ActionIncrease:
		c.set(SlotResolution, min(MaxRes, s.Get(SlotResolution)+1))
	case ActionDecrease:
		c.set(SlotResolution, max(MinRes, s.Get(SlotResolution)-1))
	case ActionBoundary:
		order := 1
		if s.Get(SlotBoundaryOrder) == 1 {
			order = 2
		}
		c.set(SlotBoundaryOrder, order)
	case ActionVariational:
		c.flip(SlotVariational)
	case ActionCorrection:
		c.set(SlotCorrection, (s.Get(SlotCorrection)+1)%2)
	case ActionScene:
		c.set(SlotScene, (s.Get(SlotScene)+1)%s.NumScenes())
		return true
	case ActionAdaptive:
		c.flip(SlotAdaptive)
	case ActionRemesh:
		c.flip(SlotRemesh)
	case ActionMesher:
		c.set(SlotMesher, (s.Get(SlotMesher)+1)%NumMeshers)
	}
	return false
}

func (c *Controller) flip(slot Slot) {
	c.set(slot, boolInt(!c.store.Flag(slot)))
}

// set stores a value the dispatcher has already clamped or wrapped, so a
// rejection here means the store and dispatcher disagree on a domain.
func (c *Controller) set(slot Slot, v int) {
	if err := c.store.Set(slot, v); err != nil {
		panic(err)
	}
}

// Reset restarts the simulation from the active scene at the current
// resolution.
func (c *Controller) Reset() {
	sc := c.Scene()
	res := c.store.Get(SlotResolution)
	c.log.Info("resetting simulation", "scene", sc.Name, "resolution", res)
	c.sim.Init(res, sc.Param0, sc.Param1, unitTimeScale)
}

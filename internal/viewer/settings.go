package viewer

const (
	MinRes        = 8
	MaxRes        = 16384
	NumMeshers    = 4
	unitTimeScale = 1.0
)

// Visibility indexes a display layer.
type Visibility int

const (
	FrameRate Visibility = iota
	GridLines
	GridVelocity
	LevelSet
	ParticleVelocity
	Pressure
	Neighbors
	ParticleAnisotropy
	MatrixConnections
	ExternalMesh
	NumVisibility
)

var visibilityNames = [NumVisibility]string{
	"fps", "gridlines", "gridvelocity", "levelset", "particlevelocity",
	"pressure", "neighbors", "anisotropy", "matrix", "mesh",
}

func (v Visibility) String() string {
	if v < 0 || v >= NumVisibility {
		return "unknown"
	}
	return visibilityNames[v]
}

// Slot indexes a controller setting.
type Slot int

const (
	SlotHelp Slot = iota
	SlotResolution
	SlotBoundaryOrder
	SlotVariational
	SlotCorrection
	SlotScene
	SlotAdaptive
	SlotRemesh
	SlotMesher
	NumSlots
)

var slotNames = [NumSlots]string{
	"help", "resolution", "boundary_order", "variational", "correction",
	"scene", "adaptive", "remesh", "mesher",
}

func (s Slot) String() string {
	if s < 0 || s >= NumSlots {
		return "unknown"
	}
	return slotNames[s]
}

type VisibilitySettings [NumVisibility]bool

type ControllerSettings [NumSlots]int

// Store holds the current settings and the defaults they were seeded from.
// The defaults are captured once in NewStore and never change.
type Store struct {
	vis       VisibilitySettings
	ctrl      ControllerSettings
	defVis    VisibilitySettings
	defCtrl   ControllerSettings
	numScenes int
}

// NewStore validates the seed settings and snapshots them as defaults.
func NewStore(vis VisibilitySettings, ctrl ControllerSettings, numScenes int) (*Store, error) {
	if numScenes <= 0 {
		return nil, ErrNoScenes
	}
	s := &Store{numScenes: numScenes}
	for slot := Slot(0); slot < NumSlots; slot++ {
		if err := s.check(slot, ctrl[slot]); err != nil {
			return nil, err
		}
	}
	s.vis, s.ctrl = vis, ctrl
	s.defVis, s.defCtrl = vis, ctrl
	return s, nil
}

func (s *Store) check(slot Slot, v int) error {
	ok := true
	switch slot {
	case SlotResolution:
		ok = v >= MinRes && v <= MaxRes
	case SlotBoundaryOrder:
		ok = v == 1 || v == 2
	case SlotScene:
		ok = v >= 0 && v < s.numScenes
	case SlotMesher:
		ok = v >= 0 && v < NumMeshers
	case SlotHelp, SlotVariational, SlotCorrection, SlotAdaptive, SlotRemesh:
		ok = v == 0 || v == 1
	default:
		ok = false
	}
	if !ok {
		return &SlotError{Slot: slot, Value: v, Wrapped: ErrOutOfRange}
	}
	return nil
}

func (s *Store) Get(slot Slot) int { return s.ctrl[slot] }

// Flag reports a boolean slot.
func (s *Store) Flag(slot Slot) bool { return s.ctrl[slot] != 0 }

// Set stores v if it lies in the slot's domain and rejects it otherwise.
func (s *Store) Set(slot Slot, v int) error {
	if slot < 0 || slot >= NumSlots {
		return &SlotError{Slot: slot, Value: v, Wrapped: ErrOutOfRange}
	}
	if err := s.check(slot, v); err != nil {
		return err
	}
	s.ctrl[slot] = v
	return nil
}

func (s *Store) Visible(v Visibility) bool { return s.vis[v] }

func (s *Store) SetVisible(v Visibility, on bool) { s.vis[v] = on }

func (s *Store) ToggleVisible(v Visibility) { s.vis[v] = !s.vis[v] }

// Visibility returns a copy of the visibility flags.
func (s *Store) Visibility() VisibilitySettings { return s.vis }

// Controller returns a copy of the controller settings.
func (s *Store) Controller() ControllerSettings { return s.ctrl }

func (s *Store) Defaults() (VisibilitySettings, ControllerSettings) {
	return s.defVis, s.defCtrl
}

// RestoreDefaults overwrites the current settings from the snapshot.
func (s *Store) RestoreDefaults() {
	s.vis, s.ctrl = s.defVis, s.defCtrl
}

func (s *Store) NumScenes() int { return s.numScenes }

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

package viewer

import "fmt"

// Status holds one annotation per controller action. Empty means no
// annotation is shown.
type Status [NumActions]string

// MesherNames lists the surface extractors in selector order.
var MesherNames = [NumMeshers]string{
	"Ours",
	"Adams07",
	"Zhu & Bridson 2005",
	"Yu and Turk 2010",
}

const (
	statusEnabled  = "Current: Enabled"
	statusDisabled = "Current: Disabled"
	statusShown    = "Current: shown"
	statusHidden   = "Current: hidden"
)

// FormatStatus derives the annotations from settings. Resolution previews
// are based on liveGrid, the grid the simulation is actually running.
func FormatStatus(ctrl ControllerSettings, liveGrid int) Status {
	var st Status

	switch ctrl[SlotBoundaryOrder] {
	case 1:
		st[ActionBoundary] = "Current: 1st order"
	case 2:
		st[ActionBoundary] = "Current: 2nd order"
	}

	if ctrl[SlotVariational] != 0 {
		st[ActionVariational] = "Current: Variational solver"
	} else {
		st[ActionVariational] = "Current: Voxelized solver"
	}

	switch ctrl[SlotCorrection] {
	case 0:
		st[ActionCorrection] = statusDisabled
	case 1:
		st[ActionCorrection] = statusEnabled
	}

	st[ActionRemesh] = enabled(ctrl[SlotRemesh] != 0)
	st[ActionAdaptive] = enabled(ctrl[SlotAdaptive] != 0)

	n := ctrl[SlotScene] + 1
	st[ActionScene] = fmt.Sprintf("Current %d%s case", n, ordinal(n))

	st[ActionIncrease] = fmt.Sprintf("To %d^2", min(MaxRes, liveGrid+1))
	st[ActionDecrease] = fmt.Sprintf("To %d^2", max(MinRes, liveGrid-1))

	if m := ctrl[SlotMesher]; m >= 0 && m < NumMeshers {
		st[ActionMesher] = "Current: " + MesherNames[m]
	}
	return st
}

func enabled(on bool) string {
	if on {
		return statusEnabled
	}
	return statusDisabled
}

func visibilityStatus(on bool) string {
	if on {
		return statusShown
	}
	return statusHidden
}

func ordinal(n int) string {
	switch n {
	case 1:
		return "st"
	case 2:
		return "nd"
	case 3:
		return "rd"
	}
	return "th"
}

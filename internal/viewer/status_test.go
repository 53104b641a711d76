package viewer

import "testing"

func TestFormatStatus(t *testing.T) {
	st := FormatStatus(testSettings, 16)

	tests := []struct {
		action   Action
		expected string
	}{
		{ActionHelp, ""},
		{ActionReset, ""},
		{ActionRestore, ""},
		{ActionIncrease, "To 17^2"},
		{ActionDecrease, "To 15^2"},
		{ActionBoundary, "Current: 2nd order"},
		{ActionVariational, "Current: Variational solver"},
		{ActionCorrection, "Current: Enabled"},
		{ActionScene, "Current 1st case"},
		{ActionAdaptive, "Current: Enabled"},
		{ActionRemesh, "Current: Enabled"},
		{ActionMesher, "Current: Ours"},
	}
	for _, tt := range tests {
		if st[tt.action] != tt.expected {
			t.Errorf("%s: expected %q, got %q", tt.action, tt.expected, st[tt.action])
		}
	}
}

func TestFormatStatus_Alternates(t *testing.T) {
	ctrl := ControllerSettings{0, 16, 1, 0, 0, 3, 0, 0, 3}
	st := FormatStatus(ctrl, 16)

	if st[ActionBoundary] != "Current: 1st order" {
		t.Errorf("unexpected boundary status %q", st[ActionBoundary])
	}
	if st[ActionVariational] != "Current: Voxelized solver" {
		t.Errorf("unexpected solver status %q", st[ActionVariational])
	}
	if st[ActionCorrection] != "Current: Disabled" {
		t.Errorf("unexpected correction status %q", st[ActionCorrection])
	}
	if st[ActionAdaptive] != "Current: Disabled" || st[ActionRemesh] != "Current: Disabled" {
		t.Errorf("expected disabled adaptive and remesh, got %q / %q", st[ActionAdaptive], st[ActionRemesh])
	}
	if st[ActionScene] != "Current 4th case" {
		t.Errorf("unexpected scene status %q", st[ActionScene])
	}
	if st[ActionMesher] != "Current: Yu and Turk 2010" {
		t.Errorf("unexpected mesher status %q", st[ActionMesher])
	}
}

func TestFormatStatus_Unrecognized(t *testing.T) {
	ctrl := testSettings
	ctrl[SlotCorrection] = 7
	ctrl[SlotBoundaryOrder] = 3
	ctrl[SlotMesher] = NumMeshers
	st := FormatStatus(ctrl, 16)

	for _, a := range []Action{ActionCorrection, ActionBoundary, ActionMesher} {
		if st[a] != "" {
			t.Errorf("%s: expected empty status, got %q", a, st[a])
		}
	}
}

func TestFormatStatus_ResolutionPreviewClamps(t *testing.T) {
	st := FormatStatus(testSettings, MaxRes)
	if st[ActionIncrease] != "To 16384^2" {
		t.Errorf("expected ceiling preview, got %q", st[ActionIncrease])
	}
	st = FormatStatus(testSettings, MinRes)
	if st[ActionDecrease] != "To 8^2" {
		t.Errorf("expected floor preview, got %q", st[ActionDecrease])
	}
}

func TestOrdinal(t *testing.T) {
	tests := map[int]string{1: "st", 2: "nd", 3: "rd", 4: "th", 11: "th"}
	for n, expected := range tests {
		if got := ordinal(n); got != expected {
			t.Errorf("ordinal(%d): expected %s, got %s", n, expected, got)
		}
	}
}

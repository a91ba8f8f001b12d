package theme

import "testing"

func TestByName_FallsBackToDefault(t *testing.T) {
	if got := ByName("no-such-theme"); got.Name != FlexokiDark.Name {
		t.Fatalf("ByName(unknown) = %s, want %s", got.Name, FlexokiDark.Name)
	}
	if got := ByName("terminal"); got.Name != "terminal" {
		t.Fatalf("ByName(terminal) = %s", got.Name)
	}
}

func TestForm_UsesActivePalette(t *testing.T) {
	defer SetActive(FlexokiDark.Name)
	SetActive("tokyo-night")

	ft := Form()
	if ft == nil {
		t.Fatal("Form() returned nil")
	}
	if got := ft.Focused.Title.GetForeground(); got != TokyoNight.Accent {
		t.Fatalf("focused title color = %v, want %v", got, TokyoNight.Accent)
	}
}

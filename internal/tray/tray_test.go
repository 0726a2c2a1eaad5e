package tray

import "testing"

func TestTray_Toggle(t *testing.T) {
	tr := New()
	if !tr.IsEnabled() {
		t.Fatal("new tray should start enabled")
	}

	var got []bool
	tr.OnToggle(func(enabled bool) { got = append(got, enabled) })

	tr.handleToggle()
	tr.handleToggle()

	if len(got) != 2 || got[0] || !got[1] {
		t.Errorf("toggle callbacks = %v, want [false true]", got)
	}
	if !tr.IsEnabled() {
		t.Error("tray disabled after two toggles")
	}
}

func TestTray_SetEnabledSkipsCallback(t *testing.T) {
	tr := New()
	called := false
	tr.OnToggle(func(bool) { called = true })

	tr.SetEnabled(false)

	if called {
		t.Error("SetEnabled invoked the toggle callback")
	}
	if tr.IsEnabled() {
		t.Error("IsEnabled() = true after SetEnabled(false)")
	}
}

func TestTray_Actions(t *testing.T) {
	tr := New()

	counts := map[string]int{}
	tr.OnClear(func() { counts["clear"]++ })
	tr.OnSnapshot(func() { counts["snapshot"]++ })
	tr.OnSave(func() { counts["save"]++ })

	tr.handle(itemClear)
	tr.handle(itemSnapshot)
	tr.handle(itemSnapshot)
	tr.handle(itemSave)
	tr.handle(itemOpenUI) // no callback registered

	want := map[string]int{"clear": 1, "snapshot": 2, "save": 1}
	for k, v := range want {
		if counts[k] != v {
			t.Errorf("%s called %d times, want %d", k, counts[k], v)
		}
	}
}

func TestTray_SetModeBeforeReady(t *testing.T) {
	// Menu items do not exist until the tray is running.
	New().SetMode("draw")
}

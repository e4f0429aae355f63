package ui

import "testing"

func TestThemeNames(t *testing.T) {
	names := ThemeNames()
	if len(names) != 2 {
		t.Fatalf("ThemeNames() returned %d names, want 2", len(names))
	}
	if names[0] != "Dracula" || names[1] != "Slate" {
		t.Fatalf("ThemeNames() = %v, want [Dracula Slate]", names)
	}
}

func TestNextTheme(t *testing.T) {
	if got := NextTheme("Dracula"); got != "Slate" {
		t.Fatalf("NextTheme(Dracula) = %q, want Slate", got)
	}
	if got := NextTheme("Slate"); got != "Dracula" {
		t.Fatalf("NextTheme(Slate) = %q, want Dracula", got)
	}
	if got := NextTheme("unknown"); got != "Dracula" {
		t.Fatalf("NextTheme(unknown) = %q, want Dracula", got)
	}
}

func TestGetThemeFallsBackToDracula(t *testing.T) {
	if got := GetTheme("Slate").Name; got != "Slate" {
		t.Fatalf("GetTheme(Slate).Name = %q", got)
	}
	if got := GetTheme("missing").Name; got != "Dracula" {
		t.Fatalf("GetTheme(missing).Name = %q, want Dracula", got)
	}
}

func TestThemesDefineEveryColor(t *testing.T) {
	for _, name := range ThemeNames() {
		th := GetTheme(name)
		colors := map[string]string{
			"Background":  th.Background,
			"Border":      th.Border,
			"BorderFocus": th.BorderFocus,
			"BorderPick":  th.BorderPick,
			"Text":        th.Text,
			"Muted":       th.Muted,
			"Faint":       th.Faint,
			"Accent":      th.Accent,
			"Price":       th.Price,
			"Badge":       th.Badge,
			"BadgeBg":     th.BadgeBg,
			"Success":     th.Success,
			"Warning":     th.Warning,
			"Danger":      th.Danger,
		}
		for field, value := range colors {
			if len(value) != 7 || value[0] != '#' {
				t.Errorf("%s.%s = %q, want #rrggbb", name, field, value)
			}
		}
	}
}

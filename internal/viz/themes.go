package viz

import "github.com/charmbracelet/lipgloss"

// Theme is a body colour cycle for the live view. Body i is drawn in
// Bodies[i % len(Bodies)].
type Theme struct {
	Name   string
	Bodies []lipgloss.Color
}

var (
	ThemeCyberpunk = Theme{
		Name:   "cyberpunk",
		Bodies: []lipgloss.Color{"#ff00ff", "#00ffff", "#ffff00", "#00ff00", "#ff8800", "#ff0000"},
	}

	ThemeRetroGreen = Theme{
		Name:   "retro",
		Bodies: []lipgloss.Color{"#00ff00", "#88ff88", "#00cc00", "#ccff66"},
	}

	ThemeMinimal = Theme{
		Name:   "minimal",
		Bodies: []lipgloss.Color{"#ffffff", "#0088ff", "#cccccc", "#ffaa00"},
	}

	ThemeOcean = Theme{
		Name:   "ocean",
		Bodies: []lipgloss.Color{"#00a8cc", "#ffd700", "#0077be", "#00ff88", "#e0f0ff"},
	}

	ThemeSunset = Theme{
		Name:   "sunset",
		Bodies: []lipgloss.Color{"#ff6b6b", "#feca57", "#ff9ff3", "#5fd068", "#ffc048"},
	}

	CurrentTheme = ThemeCyberpunk

	Themes = []Theme{
		ThemeCyberpunk,
		ThemeRetroGreen,
		ThemeMinimal,
		ThemeOcean,
		ThemeSunset,
	}
)

// GetTheme returns a theme by name, falling back to cyberpunk.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return ThemeCyberpunk
}

func SetTheme(name string) {
	CurrentTheme = GetTheme(name)
}

func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}

// Palette returns one foreground style per body colour of the current theme.
func Palette() []lipgloss.Style {
	styles := make([]lipgloss.Style, len(CurrentTheme.Bodies))
	for i, c := range CurrentTheme.Bodies {
		styles[i] = lipgloss.NewStyle().Foreground(c)
	}
	return styles
}

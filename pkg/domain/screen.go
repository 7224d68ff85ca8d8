package domain

import "fmt"

// Screen is a named UI state of the application under test.
// The zero value is not a valid screen.
type Screen int

const (
	ScreenUnknown Screen = iota
	NewTabScreen
	BrowserTab
	URLBarOpen
	TabTray
	BrowserTabMenu
	SettingsScreen
	HomeSettings

	screenSentinel
)

var screenNames = [...]string{
	ScreenUnknown:  "Unknown",
	NewTabScreen:   "NewTabScreen",
	BrowserTab:     "BrowserTab",
	URLBarOpen:     "URLBarOpen",
	TabTray:        "TabTray",
	BrowserTabMenu: "BrowserTabMenu",
	SettingsScreen: "SettingsScreen",
	HomeSettings:   "HomeSettings",
}

func (s Screen) String() string {
	if s < 0 || s >= screenSentinel {
		return fmt.Sprintf("Screen(%d)", int(s))
	}
	return screenNames[s]
}

// Valid reports whether s is one of the declared screens.
func (s Screen) Valid() bool {
	return s > ScreenUnknown && s < screenSentinel
}

// Screens returns every declared screen in declaration order.
func Screens() []Screen {
	out := make([]Screen, 0, int(screenSentinel)-1)
	for s := ScreenUnknown + 1; s < screenSentinel; s++ {
		out = append(out, s)
	}
	return out
}

// ParseScreen resolves a screen by name.
func ParseScreen(name string) (Screen, error) {
	for _, s := range Screens() {
		if s.String() == name {
			return s, nil
		}
	}
	return ScreenUnknown, fmt.Errorf("%w: screen %q", ErrUnknownName, name)
}

// MarshalText implements encoding.TextMarshaler so screens serialize by name.
func (s Screen) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("%w: %s", ErrUnknownName, s)
	}
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Screen) UnmarshalText(text []byte) error {
	parsed, err := ParseScreen(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

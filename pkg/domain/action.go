package domain

import "fmt"

// Action is a named operation the navigator can perform on the application.
// Each action is hosted on one or more screens of the graph.
type Action int

const (
	ActionUnknown Action = iota
	LoadURL
	OpenNewTabFromTabTray
	GoToHomePage
	SelectHomeAsFirefoxHomePage
	SelectHomeAsBookmarksPage
	SelectHomeAsHistoryPage
	SelectTopSitesRows
	SetHomePageURL
	BookmarkThreeDots

	actionSentinel
)

var actionNames = [...]string{
	ActionUnknown:               "Unknown",
	LoadURL:                     "LoadURL",
	OpenNewTabFromTabTray:       "OpenNewTabFromTabTray",
	GoToHomePage:                "GoToHomePage",
	SelectHomeAsFirefoxHomePage: "SelectHomeAsFirefoxHomePage",
	SelectHomeAsBookmarksPage:   "SelectHomeAsBookmarksPage",
	SelectHomeAsHistoryPage:     "SelectHomeAsHistoryPage",
	SelectTopSitesRows:          "SelectTopSitesRows",
	SetHomePageURL:              "SetHomePageURL",
	BookmarkThreeDots:           "BookmarkThreeDots",
}

func (a Action) String() string {
	if a < 0 || a >= actionSentinel {
		return fmt.Sprintf("Action(%d)", int(a))
	}
	return actionNames[a]
}

// Valid reports whether a is one of the declared actions.
func (a Action) Valid() bool {
	return a > ActionUnknown && a < actionSentinel
}

// Actions returns every declared action in declaration order.
func Actions() []Action {
	out := make([]Action, 0, int(actionSentinel)-1)
	for a := ActionUnknown + 1; a < actionSentinel; a++ {
		out = append(out, a)
	}
	return out
}

// ParseAction resolves an action by name.
func ParseAction(name string) (Action, error) {
	for _, a := range Actions() {
		if a.String() == name {
			return a, nil
		}
	}
	return ActionUnknown, fmt.Errorf("%w: action %q", ErrUnknownName, name)
}

// MarshalText implements encoding.TextMarshaler so actions serialize by name.
func (a Action) MarshalText() ([]byte, error) {
	if !a.Valid() {
		return nil, fmt.Errorf("%w: %s", ErrUnknownName, a)
	}
	return []byte(a.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (a *Action) UnmarshalText(text []byte) error {
	parsed, err := ParseAction(string(text))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

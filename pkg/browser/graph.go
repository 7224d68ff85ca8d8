package browser

import (
	"fmt"
	"strconv"

	"github.com/aretw0/screenwalk/pkg/domain"
	"github.com/aretw0/screenwalk/pkg/dsl"
)

// TabsButton returns the identifier of the tabs button for the device layout.
// Tablets show the tabs button in the top tab bar instead of the toolbar.
func TabsButton(device domain.DeviceInfo) string {
	if device.IsTablet() {
		return IDTopTabsButton
	}
	return IDTabsButton
}

// NewGraph describes the browser screens and actions reachable from the new
// tab screen the application launches on.
func NewGraph(device domain.DeviceInfo) (*domain.Graph, error) {
	b := dsl.New(domain.NewTabScreen)

	tabs := domain.Tap(domain.Button(TabsButton(device)))
	menu := domain.Tap(domain.Button(IDMenuButton))
	urlBar := domain.Tap(domain.TextField(IDURLField))

	b.Screen(domain.NewTabScreen).
		Marker(domain.Any(IDHomePanels)).
		Push(domain.URLBarOpen, urlBar).
		Push(domain.TabTray, tabs).
		Push(domain.BrowserTabMenu, menu)

	b.Screen(domain.BrowserTab).
		Marker(domain.Button(IDStopReloadButton)).
		Push(domain.URLBarOpen, urlBar).
		Push(domain.TabTray, tabs).
		Push(domain.BrowserTabMenu, menu)

	b.Screen(domain.URLBarOpen).
		Marker(domain.TextField(IDAddressField)).
		Pop(1, domain.Tap(domain.Button(IDURLBarCancel)))

	b.Screen(domain.TabTray).
		Marker(domain.Button(IDAddTabButton)).
		Pop(1, domain.Tap(domain.Button(IDTabTrayDone)))

	b.Screen(domain.BrowserTabMenu).
		Marker(domain.Table(IDContextMenu)).
		Push(domain.SettingsScreen, domain.Tap(domain.Cell(IDMenuSettings))).
		Pop(1, domain.Tap(domain.Button(IDMenuClose)))

	// Settings is presented modally over the menu; Done dismisses both.
	b.Screen(domain.SettingsScreen).
		Marker(domain.Table(IDSettingsTable)).
		Push(domain.HomeSettings, domain.Tap(domain.Cell(IDHomeSetting))).
		Pop(2, domain.Tap(domain.Button(IDSettingsDone)))

	b.Screen(domain.HomeSettings).
		Marker(domain.TextField(IDHomePageField)).
		Pop(1, domain.Tap(domain.Button(IDSettingsBack)))

	b.Action(domain.LoadURL).
		On(domain.URLBarOpen).
		Do(func(u domain.UserState) ([]domain.Step, error) {
			if u.URL == "" {
				return nil, fmt.Errorf("%w: no url to load", domain.ErrInvalidUserState)
			}
			return []domain.Step{
				domain.TypeText(domain.TextField(IDAddressField), u.URL+"\n"),
			}, nil
		}).
		To(domain.BrowserTab)

	b.Action(domain.OpenNewTabFromTabTray).
		On(domain.TabTray).
		Steps(domain.Tap(domain.Button(IDAddTabButton))).
		To(domain.NewTabScreen)

	// The home button lands on a web page or on the home panels depending on
	// the configured home page.
	b.Action(domain.GoToHomePage).
		On(domain.BrowserTab, domain.NewTabScreen).
		Steps(domain.Tap(domain.Button(IDHomeButton))).
		To(domain.BrowserTab, domain.NewTabScreen)

	b.Action(domain.SelectHomeAsFirefoxHomePage).
		On(domain.HomeSettings).
		Steps(domain.Tap(domain.Cell(IDFirefoxHomeCell)))

	b.Action(domain.SelectHomeAsBookmarksPage).
		On(domain.HomeSettings).
		Steps(domain.Tap(domain.Cell(IDBookmarksCell)))

	b.Action(domain.SelectHomeAsHistoryPage).
		On(domain.HomeSettings).
		Steps(domain.Tap(domain.Cell(IDHistoryCell)))

	b.Action(domain.SelectTopSitesRows).
		On(domain.HomeSettings).
		Do(func(u domain.UserState) ([]domain.Step, error) {
			if err := u.Validate(); err != nil {
				return nil, err
			}
			return []domain.Step{
				domain.Tap(domain.Cell(IDTopSitesRows)),
				domain.Tap(domain.Cell(strconv.Itoa(u.NumTopSitesRows))),
				domain.Tap(domain.Button(IDTopSitesBack)),
			}, nil
		})

	b.Action(domain.SetHomePageURL).
		On(domain.HomeSettings).
		Do(func(u domain.UserState) ([]domain.Step, error) {
			if u.HomePage == "" {
				return nil, fmt.Errorf("%w: no home page to set", domain.ErrInvalidUserState)
			}
			field := domain.TextField(IDHomePageField)
			return []domain.Step{
				domain.Tap(field),
				domain.TypeText(field, u.HomePage),
				domain.WaitValueContains(field, u.HomePage),
			}, nil
		})

	b.Action(domain.BookmarkThreeDots).
		On(domain.BrowserTab).
		Steps(
			domain.Tap(domain.Button(IDMenuButton)),
			domain.Tap(domain.Cell(IDMenuBookmark)),
		)

	return b.Build()
}

// MustGraph is like NewGraph but panics if the graph is invalid.
func MustGraph(device domain.DeviceInfo) *domain.Graph {
	g, err := NewGraph(device)
	if err != nil {
		panic(err)
	}
	return g
}

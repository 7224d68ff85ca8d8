package sim

import (
	"slices"
	"strconv"
	"strings"

	"github.com/aretw0/screenwalk/pkg/browser"
	"github.com/aretw0/screenwalk/pkg/domain"
)

// tree builds the accessibility tree of whatever is on top. Only the topmost
// overlay is exposed, so elements of covered screens are never matched.
// Callers hold a.mu.
func (a *App) tree() []*node {
	var roots []*node
	if len(a.overlays) == 0 {
		roots = a.tabTree()
	} else {
		switch a.overlays[len(a.overlays)-1] {
		case viewURLBar:
			roots = a.urlBarTree()
		case viewTabTray:
			roots = a.tabTrayTree()
		case viewMenu:
			roots = a.menuTree()
		case viewSettings:
			roots = a.settingsTree()
		case viewHomeSettings:
			roots = a.homeSettingsTree()
		case viewRowsPicker:
			roots = a.rowsPickerTree()
		}
	}
	if a.pasteMenu {
		roots = append(roots, el(domain.KindMenuItem, "", browser.LabelPaste).onTap(a.paste))
	}
	return roots
}

func (a *App) push(v view) {
	a.overlays = append(a.overlays, v)
}

func (a *App) pop(n int) {
	if n > len(a.overlays) {
		n = len(a.overlays)
	}
	a.overlays = a.overlays[:len(a.overlays)-n]
}

func (a *App) toolbar() []*node {
	tabs := browser.TabsButton(a.device)
	return []*node{
		el(domain.KindTextField, browser.IDURLField, "Address Bar").
			withValue(a.url).
			onTap(func() {
				a.addressText = ""
				a.push(viewURLBar)
			}),
		el(domain.KindButton, tabs, "Show Tabs").onTap(func() { a.push(viewTabTray) }),
		el(domain.KindButton, browser.IDMenuButton, "Menu").onTap(func() { a.push(viewMenu) }),
		el(domain.KindButton, browser.IDHomeButton, "Home").onTap(a.goHome),
	}
}

func (a *App) tabTree() []*node {
	roots := a.toolbar()
	if a.url != "" {
		return append(roots,
			el(domain.KindButton, browser.IDStopReloadButton, browser.LabelReload),
			el(domain.KindOther, "contentView", a.url),
		)
	}

	var content *node
	switch a.panel {
	case panelBookmarks:
		content = el(domain.KindTable, browser.IDBookmarksList, "")
		for _, b := range a.bookmarks {
			content.children = append(content.children, el(domain.KindCell, "", b))
		}
	case panelHistory:
		content = el(domain.KindTable, browser.IDHistoryList, "",
			el(domain.KindCell, "HistoryPanel.clearHistory", "Clear Recent History"),
			el(domain.KindCell, "HistoryPanel.recentlyClosedCell", "Recently Closed"),
			el(domain.KindCell, "HistoryPanel.syncedDevicesCell", "Synced Devices"),
		)
		for _, h := range a.history {
			content.children = append(content.children, el(domain.KindCell, "", h))
		}
	default:
		sites := el(domain.KindCell, browser.IDTopSitesCell, "")
		for i := 0; i < a.visibleTopSites(); i++ {
			sites.children = append(sites.children, el(domain.KindCell, browser.IDTopSite, "site "+strconv.Itoa(i+1)))
		}
		content = el(domain.KindCollectionView, "", "", sites)
	}
	return append(roots, el(domain.KindOther, browser.IDHomePanels, "", content))
}

// visibleTopSites is how many tiles fit in the configured rows.
func (a *App) visibleTopSites() int {
	perRow := 4
	if a.device.IsTablet() {
		perRow = 6
	}
	return min(a.rows*perRow, a.topSites)
}

func (a *App) urlBarTree() []*node {
	address := el(domain.KindTextField, browser.IDAddressField, "Address and Search").withValue(a.addressText)
	address.typeText = func(text string) {
		a.addressText += text
		if submitted, ok := strings.CutSuffix(a.addressText, "\n"); ok {
			a.load(submitted)
		}
	}
	return []*node{
		address,
		el(domain.KindButton, browser.IDURLBarCancel, "Cancel").onTap(func() { a.pop(1) }),
	}
}

func (a *App) tabTrayTree() []*node {
	return []*node{
		el(domain.KindButton, browser.IDAddTabButton, "Add Tab").onTap(func() {
			a.overlays = nil
			a.url = ""
			a.panel = panelTopSites
		}),
		el(domain.KindButton, browser.IDTabTrayDone, "Done").onTap(func() { a.pop(1) }),
	}
}

func (a *App) menuTree() []*node {
	menu := el(domain.KindTable, browser.IDContextMenu, "",
		el(domain.KindCell, browser.IDMenuHome, "Open Homepage").onTap(func() {
			a.overlays = nil
			a.goHome()
		}),
		el(domain.KindCell, browser.IDMenuSettings, "Settings").onTap(func() { a.push(viewSettings) }),
	)
	if a.url != "" {
		menu.children = append(menu.children,
			el(domain.KindCell, browser.IDMenuBookmark, "Bookmark This Page").onTap(func() {
				if !slices.Contains(a.bookmarks, a.url) {
					a.bookmarks = append(a.bookmarks, a.url)
				}
				a.pop(1)
			}))
	}
	return []*node{
		menu,
		el(domain.KindButton, browser.IDMenuClose, "Close").onTap(func() { a.pop(1) }),
	}
}

func (a *App) settingsTree() []*node {
	return []*node{
		el(domain.KindTable, browser.IDSettingsTable, "",
			el(domain.KindCell, browser.IDHomeSetting, "Home").onTap(func() {
				a.homeField = a.homePage
				a.editing = false
				a.push(viewHomeSettings)
			}),
		),
		// Settings is presented over the menu; Done dismisses both.
		el(domain.KindButton, browser.IDSettingsDone, "Done").onTap(func() { a.pop(2) }),
	}
}

func (a *App) homeSettingsTree() []*node {
	field := el(domain.KindTextField, browser.IDHomePageField, "Enter a webpage").
		withValue(a.homeField).
		onTap(func() { a.editing = true })
	field.typeText = func(text string) {
		a.editing = true
		a.homeField += text
	}
	field.press = func() {
		if a.editing && a.clipboard != "" {
			a.pasteMenu = true
		}
	}

	selected := func(m homeMode) string {
		if a.homeMode == m {
			return "1"
		}
		return "0"
	}

	return []*node{
		el(domain.KindTable, "", "",
			el(domain.KindCell, browser.IDFirefoxHomeCell, "Firefox Home").
				withValue(selected(homeFirefox)).
				onTap(func() { a.homeMode = homeFirefox }),
			el(domain.KindCell, browser.IDBookmarksCell, "Bookmarks").
				withValue(selected(homeBookmarks)).
				onTap(func() { a.homeMode = homeBookmarks }),
			el(domain.KindCell, browser.IDHistoryCell, "History").
				withValue(selected(homeHistory)).
				onTap(func() { a.homeMode = homeHistory }),
			el(domain.KindCell, browser.IDHomePageCell, "", field),
			el(domain.KindCell, browser.IDTopSitesRows, browser.TopSitesRowsLabel(a.rows)).
				onTap(func() { a.push(viewRowsPicker) }),
			el(domain.KindSwitch, browser.IDPocketStories, "Recommended by Pocket").withValue("1"),
		),
		el(domain.KindButton, browser.IDSettingsBack, "Settings").onTap(func() {
			a.commitHomePage()
			a.pop(1)
		}),
	}
}

func (a *App) rowsPickerTree() []*node {
	table := el(domain.KindTable, "TopSitesRowsPicker", "")
	for n := domain.MinTopSitesRows; n <= domain.MaxTopSitesRows; n++ {
		rows := n
		table.children = append(table.children,
			el(domain.KindCell, "", strconv.Itoa(n)).onTap(func() { a.rows = rows }))
	}
	return []*node{
		table,
		el(domain.KindButton, browser.IDTopSitesBack, "Home").onTap(func() { a.pop(1) }),
	}
}

func (a *App) paste() {
	a.homeField += a.clipboard
	a.pasteMenu = false
}

// commitHomePage saves the typed home page once the user leaves the screen.
func (a *App) commitHomePage() {
	a.editing = false
	a.pasteMenu = false
	if a.homeField == "" || a.homeField == a.homePage {
		return
	}
	a.homePage = normalizeURL(a.homeField)
	a.homeMode = homeCustom
}

func (a *App) goHome() {
	switch a.homeMode {
	case homeCustom:
		a.load(a.homePage)
	case homeBookmarks:
		a.url, a.panel = "", panelBookmarks
	case homeHistory:
		a.url, a.panel = "", panelHistory
	default:
		a.url, a.panel = "", panelTopSites
	}
}

func (a *App) load(address string) {
	a.overlays = nil
	a.url = normalizeURL(address)
	if !slices.Contains(a.history, a.url) {
		a.history = append(a.history, a.url)
	}
	a.logger.Debug("page loaded", "url", a.url)
}

func normalizeURL(s string) string {
	s = strings.TrimSpace(s)
	if strings.Contains(s, "://") {
		return s
	}
	return "http://" + s
}

package browser

import "strconv"

// Accessibility identifiers exposed by the application under test.
// They are a stable contract between the app and the tests.
const (
	IDHomePanels       = "HomePanels"
	IDURLField         = "url"
	IDAddressField     = "address"
	IDURLBarCancel     = "urlBar-cancel"
	IDTabsButton       = "TabToolbar.tabsButton"
	IDTopTabsButton    = "TopTabsViewController.tabsButton"
	IDMenuButton       = "TabToolbar.menuButton"
	IDHomeButton       = "TabToolbar.homeButton"
	IDStopReloadButton = "TabToolbar.stopReloadButton"
	IDAddTabButton     = "TabTrayController.addTabButton"
	IDTabTrayDone      = "TabTrayController.doneButton"

	IDContextMenu   = "Context Menu"
	IDMenuSettings  = "menu-Settings"
	IDMenuHome      = "menu-Home"
	IDMenuBookmark  = "menu-Bookmark"
	IDMenuClose     = "PhotonMenu.close"
	IDSettingsTable = "AppSettingsTableViewController.tableView"
	IDSettingsDone  = "AppSettingsTableViewController.navigationItem.leftBarButtonItem"
	IDHomeSetting   = "HomeSetting"
	IDSettingsBack  = "Settings"

	IDHomePageField   = "HomePageSettingTextField"
	IDFirefoxHomeCell = "Firefox Home"
	IDBookmarksCell   = "Bookmarks"
	IDHistoryCell     = "History"
	IDHomePageCell    = "HomePageSetting"
	IDTopSitesRows    = "TopSitesRows"
	IDPocketStories   = "ASPocketStoriesVisible"
	IDTopSitesBack    = "Home"

	IDBookmarksList = "Bookmarks List"
	IDHistoryList   = "History List"
	IDTopSitesCell  = "TopSitesCell"
	IDTopSite       = "TopSite"

	// LabelReload is the label of the stop/reload button once a page finished loading.
	LabelReload = "Reload"
	// LabelPaste is the edit menu item that pastes the clipboard.
	LabelPaste = "Paste"
)

// TopSitesRowsLabel is the label of the rows cell for n rows.
func TopSitesRowsLabel(n int) string {
	return "Top Sites, Rows: " + strconv.Itoa(n)
}

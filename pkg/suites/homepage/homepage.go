// Package homepage holds the acceptance tests of the home page settings.
// Importing it registers the tests in uitest.Default.
package homepage

import (
	"slices"
	"time"

	"github.com/aretw0/screenwalk/pkg/browser"
	"github.com/aretw0/screenwalk/pkg/domain"
	"github.com/aretw0/screenwalk/pkg/uitest"
	"github.com/stretchr/testify/require"
)

const (
	websiteURL1 = "www.mozilla.org"
	websiteURL2 = "developer.mozilla.org"
	exampleURL  = "test-example.html"
)

// PrefilledTopSites is the fixture database holding enough top sites to fill
// every row option.
const PrefilledTopSites = "testBookmarksDatabase1000-browser.db"

// testsWithDB lists the tests that launch with PrefilledTopSites.
var testsWithDB = []string{"TopSitesCustomNumberOfRows"}

// LaunchArgs returns the launch arguments of the named test.
func LaunchArgs(name string) []string {
	args := domain.DefaultLaunchArguments()
	if slices.Contains(testsWithDB, name) {
		args = append(args, domain.LaunchLoadDatabasePrefix+PrefilledTopSites)
	}
	return args
}

var (
	homePageField = domain.TextField(browser.IDHomePageField)
	urlField      = domain.TextField(browser.IDURLField)
	topSitesRows  = domain.Cell(browser.IDTopSitesRows)
)

// Tests returns the home page settings suite.
func Tests() []*uitest.Test {
	tests := []*uitest.Test{
		{Name: "CheckHomeSettingsByDefault", Desc: "home settings show their default values", Func: CheckHomeSettingsByDefault},
		{Name: "Typing", Desc: "a typed home page is saved and opened from the menu", Func: Typing},
		{Name: "Clipboard", Desc: "the clipboard can be pasted as home page", Func: Clipboard},
		{Name: "SetCustomURLAsHome", Desc: "the home button opens a custom home page", Func: SetCustomURLAsHome},
		{Name: "SetBookmarksAsHome", Desc: "the home button opens the bookmarks panel", Func: SetBookmarksAsHome},
		{Name: "SetHistoryAsHome", Desc: "the home button opens the history panel", Func: SetHistoryAsHome},
		{Name: "TopSitesCustomNumberOfRows", Desc: "top sites show as many rows as selected", Func: TopSitesCustomNumberOfRows},
	}
	for _, t := range tests {
		t.LaunchArgs = LaunchArgs(t.Name)
	}
	return tests
}

func init() {
	for _, t := range Tests() {
		uitest.AddTest(t)
	}
}

func enterWebPageAsHomepage(s *uitest.State, text string) {
	s.Tap(homePageField)
	s.TypeText(homePageField, text)
	require.Equal(s, text, s.Element(homePageField).Value, "The webpage typed does not match with the one saved")
}

func CheckHomeSettingsByDefault(s *uitest.State) {
	s.Goto(domain.HomeSettings)
	require.True(s, s.Exists(domain.Cell(browser.IDFirefoxHomeCell)))
	require.True(s, s.Exists(domain.Cell(browser.IDBookmarksCell)))
	require.True(s, s.Exists(domain.Cell(browser.IDHistoryCell)))
	require.True(s, s.Exists(domain.Cell(browser.IDHomePageCell)))
	s.WaitForExistence(topSitesRows)
	require.Equal(s, browser.TopSitesRowsLabel(domain.DefaultTopSitesRows), s.Element(topSitesRows).Label)
	require.True(s, s.Element(domain.Switch(browser.IDPocketStories)).Enabled)
}

func Typing(s *uitest.State) {
	s.Goto(domain.HomeSettings)
	enterWebPageAsHomepage(s, websiteURL1)

	// Saved when leaving and coming back.
	s.Goto(domain.SettingsScreen)
	s.Goto(domain.HomeSettings)
	require.Equal(s, "http://"+websiteURL1, s.Element(homePageField).Value)

	// Opening Home from the menu of another page loads it.
	s.OpenURL(websiteURL2)
	s.Goto(domain.BrowserTabMenu)
	homeMenuItem := domain.Cell(browser.IDMenuHome)
	s.WaitForExistence(homeMenuItem)
	s.Tap(homeMenuItem)
	s.NowAt(domain.BrowserTab)
	s.WaitForValueContains(urlField, websiteURL1)
}

func Clipboard(s *uitest.State) {
	s.SetClipboard(websiteURL1)
	s.Goto(domain.HomeSettings)
	s.Tap(homePageField)
	s.Press(homePageField, 3*time.Second)

	if desc, err := s.App().DebugDescription(s.Context()); err == nil {
		s.Log(desc)
	}
	paste := domain.MenuItem(browser.LabelPaste)
	s.WaitForExistence(paste)
	s.Tap(paste)
	s.WaitForValueContains(homePageField, "mozilla")
	require.Equal(s, websiteURL1, s.Element(homePageField).Value)
}

func SetCustomURLAsHome(s *uitest.State) {
	s.Goto(domain.HomeSettings)
	enterWebPageAsHomepage(s, websiteURL1)

	s.PerformAction(domain.OpenNewTabFromTabTray, s.UserState())
	s.WaitForTabsButton()
	s.PerformAction(domain.GoToHomePage, s.UserState())
	s.WaitForExistence(urlField, 5*time.Second)
	s.WaitForValueContains(urlField, "mozilla")
}

func SetBookmarksAsHome(s *uitest.State) {
	bookmarksList := domain.Table(browser.IDBookmarksList)
	entries := domain.Cell("").In(bookmarksList)

	s.WaitForTabsButton()
	s.PerformAction(domain.SelectHomeAsBookmarksPage, s.UserState())

	s.PerformAction(domain.OpenNewTabFromTabTray, s.UserState())
	s.WaitForTabsButton()
	s.PerformAction(domain.GoToHomePage, s.UserState())
	s.WaitForExistence(bookmarksList, 3*time.Second)
	require.Equal(s, 0, s.Count(entries))

	s.OpenURL(s.TestPage(exampleURL))
	s.WaitUntilPageLoad()
	s.PerformAction(domain.BookmarkThreeDots, s.UserState())
	s.PerformAction(domain.OpenNewTabFromTabTray, s.UserState())
	s.WaitForTabsButton()
	s.PerformAction(domain.GoToHomePage, s.UserState())
	s.WaitForExistence(bookmarksList, 3*time.Second)
	require.Equal(s, 1, s.Count(entries))
}

func SetHistoryAsHome(s *uitest.State) {
	historyList := domain.Table(browser.IDHistoryList)
	rows := domain.Cell("").In(historyList)

	s.WaitForTabsButton()
	s.PerformAction(domain.SelectHomeAsHistoryPage, s.UserState())

	s.PerformAction(domain.OpenNewTabFromTabTray, s.UserState())
	s.WaitForTabsButton()
	s.PerformAction(domain.GoToHomePage, s.UserState())
	s.WaitForExistence(historyList, 3*time.Second)
	// Clear recent history, recently closed and synced devices.
	require.Equal(s, 3, s.Count(rows))

	s.OpenURL("www.example.com")
	s.WaitUntilPageLoad()
	s.PerformAction(domain.OpenNewTabFromTabTray, s.UserState())
	s.WaitForTabsButton()
	s.PerformAction(domain.GoToHomePage, s.UserState())
	s.WaitForExistence(historyList, 3*time.Second)
	require.Equal(s, 4, s.Count(rows))
}

func TopSitesCustomNumberOfRows(s *uitest.State) {
	s.SetOrientation(domain.Portrait)

	perRow := 4
	if s.IsTablet() {
		perRow = 6
	}

	state := s.UserState()
	for n := domain.MinTopSitesRows; n <= domain.MaxTopSitesRows; n++ {
		state.NumTopSitesRows = n
		s.PerformAction(domain.SelectTopSitesRows, state)
		require.Equal(s, browser.TopSitesRowsLabel(n), s.Element(topSitesRows).Label)
		s.PerformAction(domain.GoToHomePage, state)
		checkNumberOfExpectedTopSites(s, n*perRow)
	}
}

func checkNumberOfExpectedTopSites(s *uitest.State, expected int) {
	topSitesCell := domain.Cell(browser.IDTopSitesCell)
	s.WaitForExistence(topSitesCell)
	require.True(s, s.Exists(topSitesCell))
	tiles := domain.Cell(browser.IDTopSite).In(topSitesCell.In(domain.CollectionView("")))
	require.Equal(s, expected, s.Count(tiles))
}

package sim_test

import (
	"context"
	"testing"

	"github.com/aretw0/screenwalk/pkg/adapters/sim"
	"github.com/aretw0/screenwalk/pkg/browser"
	"github.com/aretw0/screenwalk/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func launched(t *testing.T, opts ...sim.Option) *sim.App {
	t.Helper()
	app := sim.New(opts...)
	require.NoError(t, app.Launch(context.Background(), domain.DefaultLaunchArguments()))
	return app
}

func count(t *testing.T, app *sim.App, sel domain.Selector) int {
	t.Helper()
	els, err := app.Query(context.Background(), sel)
	require.NoError(t, err)
	return len(els)
}

func value(t *testing.T, app *sim.App, sel domain.Selector) string {
	t.Helper()
	els, err := app.Query(context.Background(), sel)
	require.NoError(t, err)
	require.NotEmpty(t, els, "%s not found", sel)
	return els[0].Value
}

func TestApp_RequiresLaunch(t *testing.T) {
	app := sim.New()
	_, err := app.Query(context.Background(), domain.Any(browser.IDHomePanels))
	assert.ErrorIs(t, err, domain.ErrNotLaunched)
	assert.ErrorIs(t, app.Tap(context.Background(), domain.Button(browser.IDMenuButton)), domain.ErrNotLaunched)
}

func TestApp_TapUnknownElement(t *testing.T) {
	app := launched(t)
	err := app.Tap(context.Background(), domain.Button("nope"))
	assert.ErrorIs(t, err, domain.ErrElementNotFound)
}

func TestApp_LaunchFixtureDatabase(t *testing.T) {
	ctx := context.Background()
	app := sim.New()
	topSites := domain.Cell(browser.IDTopSite).In(domain.Cell(browser.IDTopSitesCell))

	require.NoError(t, app.Launch(ctx, nil))
	assert.Equal(t, sim.DefaultTopSites, count(t, app, topSites))

	args := append(domain.DefaultLaunchArguments(), domain.LaunchLoadDatabasePrefix+sim.FixtureTopSites)
	require.NoError(t, app.Launch(ctx, args))
	assert.Equal(t, 2*4, count(t, app, topSites))
	assert.Equal(t, args, app.LaunchArgs())

	err := app.Launch(ctx, []string{domain.LaunchLoadDatabasePrefix + "missing.db"})
	assert.Error(t, err)
}

func TestApp_TabletShowsSixSitesPerRow(t *testing.T) {
	ctx := context.Background()
	app := sim.New(sim.WithDevice(sim.Tablet))
	require.NoError(t, app.Launch(ctx, []string{domain.LaunchLoadDatabasePrefix + sim.FixtureTopSites}))

	assert.Equal(t, 2*6, count(t, app, domain.Cell(browser.IDTopSite).In(domain.Cell(browser.IDTopSitesCell))))
	assert.Equal(t, 1, count(t, app, domain.Button(browser.IDTopTabsButton)))
	assert.Equal(t, 0, count(t, app, domain.Button(browser.IDTabsButton)))
}

func TestApp_LoadURL(t *testing.T) {
	ctx := context.Background()
	app := launched(t)

	require.NoError(t, app.Tap(ctx, domain.TextField(browser.IDURLField)))
	require.NoError(t, app.TypeText(ctx, domain.TextField(browser.IDAddressField), "www.example.com\n"))

	assert.Equal(t, "http://www.example.com", value(t, app, domain.TextField(browser.IDURLField)))
	assert.Equal(t, 1, count(t, app, domain.Button(browser.LabelReload)))
	assert.Equal(t, 0, count(t, app, domain.Any(browser.IDHomePanels)))
}

func openHomeSettings(t *testing.T, app *sim.App) {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, app.Tap(ctx, domain.Button(browser.IDMenuButton)))
	require.NoError(t, app.Tap(ctx, domain.Cell(browser.IDMenuSettings)))
	require.NoError(t, app.Tap(ctx, domain.Cell(browser.IDHomeSetting)))
}

func TestApp_HomePageIsSavedOnLeave(t *testing.T) {
	ctx := context.Background()
	app := launched(t)
	field := domain.TextField(browser.IDHomePageField)

	openHomeSettings(t, app)
	require.NoError(t, app.Tap(ctx, field))
	require.NoError(t, app.TypeText(ctx, field, "www.mozilla.org"))
	assert.Equal(t, "www.mozilla.org", value(t, app, field))

	require.NoError(t, app.Tap(ctx, domain.Button(browser.IDSettingsBack)))
	require.NoError(t, app.Tap(ctx, domain.Cell(browser.IDHomeSetting)))
	assert.Equal(t, "http://www.mozilla.org", value(t, app, field))
}

func TestApp_PasteFromClipboard(t *testing.T) {
	ctx := context.Background()
	app := launched(t)
	field := domain.TextField(browser.IDHomePageField)
	require.NoError(t, app.SetClipboard(ctx, "www.mozilla.org"))

	openHomeSettings(t, app)
	assert.Equal(t, 0, count(t, app, domain.MenuItem(browser.LabelPaste)))

	require.NoError(t, app.Tap(ctx, field))
	require.NoError(t, app.Press(ctx, field, 0))
	require.NoError(t, app.Tap(ctx, domain.MenuItem(browser.LabelPaste)))

	assert.Equal(t, "www.mozilla.org", value(t, app, field))
	assert.Equal(t, 0, count(t, app, domain.MenuItem(browser.LabelPaste)))
}

func TestApp_TopSitesRowsPicker(t *testing.T) {
	ctx := context.Background()
	app := launched(t)

	openHomeSettings(t, app)
	require.NoError(t, app.Tap(ctx, domain.Cell(browser.IDTopSitesRows)))
	require.NoError(t, app.Tap(ctx, domain.Cell("4")))
	require.NoError(t, app.Tap(ctx, domain.Button(browser.IDTopSitesBack)))

	els, err := app.Query(ctx, domain.Cell(browser.IDTopSitesRows))
	require.NoError(t, err)
	require.Len(t, els, 1)
	assert.Equal(t, browser.TopSitesRowsLabel(4), els[0].Label)
}

func TestApp_BookmarkAndHistoryPanels(t *testing.T) {
	ctx := context.Background()
	app := launched(t)

	require.NoError(t, app.Tap(ctx, domain.TextField(browser.IDURLField)))
	require.NoError(t, app.TypeText(ctx, domain.TextField(browser.IDAddressField), "example.com\n"))
	require.NoError(t, app.Tap(ctx, domain.Button(browser.IDMenuButton)))
	require.NoError(t, app.Tap(ctx, domain.Cell(browser.IDMenuBookmark)))

	openHomeSettings(t, app)
	require.NoError(t, app.Tap(ctx, domain.Cell(browser.IDBookmarksCell)))
	require.NoError(t, app.Tap(ctx, domain.Button(browser.IDSettingsBack)))
	require.NoError(t, app.Tap(ctx, domain.Button(browser.IDSettingsDone)))
	require.NoError(t, app.Tap(ctx, domain.Button(browser.IDHomeButton)))
	assert.Equal(t, 1, count(t, app, domain.Cell("").In(domain.Table(browser.IDBookmarksList))))

	openHomeSettings(t, app)
	require.NoError(t, app.Tap(ctx, domain.Cell(browser.IDHistoryCell)))
	require.NoError(t, app.Tap(ctx, domain.Button(browser.IDSettingsBack)))
	require.NoError(t, app.Tap(ctx, domain.Button(browser.IDSettingsDone)))
	require.NoError(t, app.Tap(ctx, domain.Button(browser.IDHomeButton)))
	assert.Equal(t, 4, count(t, app, domain.Cell("").In(domain.Table(browser.IDHistoryList))))
}

func TestApp_DebugDescription(t *testing.T) {
	app := launched(t)
	desc, err := app.DebugDescription(context.Background())
	require.NoError(t, err)
	assert.Contains(t, desc, "identifier: 'HomePanels'")
	assert.Contains(t, desc, "identifier: 'TabToolbar.tabsButton'")
}

package dsl_test

import (
	"errors"
	"testing"

	"github.com/aretw0/screenwalk/internal/validator"
	"github.com/aretw0/screenwalk/pkg/domain"
	"github.com/aretw0/screenwalk/pkg/dsl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuilder_SimpleFlow(t *testing.T) {
	b := dsl.New(domain.NewTabScreen)

	b.Screen(domain.NewTabScreen).
		Marker(domain.Any("HomePanels")).
		Push(domain.URLBarOpen, domain.Tap(domain.TextField("url")))

	b.Screen(domain.URLBarOpen).
		Pop(1, domain.Tap(domain.Button("urlBar-cancel")))

	b.Screen(domain.BrowserTab)

	b.Action(domain.LoadURL).
		On(domain.URLBarOpen).
		Do(func(u domain.UserState) ([]domain.Step, error) {
			return []domain.Step{domain.TypeText(domain.TextField("address"), u.URL+"\n")}, nil
		}).
		To(domain.BrowserTab)

	g, err := b.Build()
	require.NoError(t, err)

	assert.Equal(t, domain.NewTabScreen, g.Launch)
	assert.Equal(t, []domain.Screen{domain.NewTabScreen, domain.BrowserTab, domain.URLBarOpen}, g.ScreenList())

	start, ok := g.Screen(domain.NewTabScreen)
	require.True(t, ok)
	require.NotNil(t, start.Marker)
	assert.Equal(t, "HomePanels", start.Marker.ID)
	require.Len(t, start.Transitions, 1)
	assert.Equal(t, domain.TransitionPush, start.Transitions[0].Kind)
	assert.Equal(t, domain.URLBarOpen, start.Transitions[0].To)

	load, ok := g.Action(domain.LoadURL)
	require.True(t, ok)
	steps, err := load.Effect(domain.UserState{URL: "example.com"})
	require.NoError(t, err)
	require.Len(t, steps, 1)
	assert.Equal(t, "example.com\n", steps[0].Text)
	assert.Equal(t, []domain.Screen{domain.BrowserTab}, load.Results)
}

func TestBuilder_StaticSteps(t *testing.T) {
	b := dsl.New(domain.HomeSettings)
	b.Screen(domain.HomeSettings)
	b.Action(domain.SelectHomeAsHistoryPage).
		On(domain.HomeSettings).
		Steps(domain.Tap(domain.Cell("History")))

	g, err := b.Build()
	require.NoError(t, err)

	def, _ := g.Action(domain.SelectHomeAsHistoryPage)
	steps, err := def.Effect(domain.DefaultUserState())
	require.NoError(t, err)
	assert.Equal(t, []domain.Step{domain.Tap(domain.Cell("History"))}, steps)
	assert.Empty(t, def.Results)
}

func TestBuilder_ScreenIsReused(t *testing.T) {
	b := dsl.New(domain.NewTabScreen)
	b.Screen(domain.NewTabScreen).Push(domain.TabTray, domain.Tap(domain.Button("tabs")))
	b.Screen(domain.NewTabScreen).Push(domain.URLBarOpen, domain.Tap(domain.TextField("url")))
	b.Screen(domain.TabTray)
	b.Screen(domain.URLBarOpen)

	g, err := b.Build()
	require.NoError(t, err)
	def, _ := g.Screen(domain.NewTabScreen)
	assert.Len(t, def.Transitions, 2)
}

func TestBuilder_RejectsInvalidGraph(t *testing.T) {
	b := dsl.New(domain.NewTabScreen)
	b.Screen(domain.NewTabScreen).Push(domain.SettingsScreen, domain.Tap(domain.Cell("menu-Settings")))
	b.Action(domain.GoToHomePage).On(domain.NewTabScreen).Steps(domain.Tap(domain.Button("home")))
	b.Action(domain.GoToHomePage)

	g, err := b.Build()
	require.Error(t, err)
	assert.Nil(t, g)

	var verr *validator.Error
	require.True(t, errors.As(err, &verr))
	assert.Contains(t, verr.Problems, "action 'GoToHomePage' declared twice")
	assert.Contains(t, verr.Problems, "screen 'NewTabScreen' transition 0 targets undefined screen 'SettingsScreen'")
}

func TestBuilder_MustBuildPanics(t *testing.T) {
	assert.Panics(t, func() {
		dsl.New(domain.ScreenUnknown).MustBuild()
	})
}

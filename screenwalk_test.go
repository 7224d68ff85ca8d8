package screenwalk_test

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/screenwalk"
	"github.com/aretw0/screenwalk/internal/wait"
	"github.com/aretw0/screenwalk/pkg/adapters/sim"
	"github.com/aretw0/screenwalk/pkg/browser"
	"github.com/aretw0/screenwalk/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHarness_NotStarted(t *testing.T) {
	h := screenwalk.New(sim.New())
	assert.ErrorIs(t, h.Goto(context.Background(), domain.HomeSettings), screenwalk.ErrNotStarted)
	assert.Equal(t, domain.ScreenUnknown, h.Current())
	assert.Nil(t, h.Graph())
}

func TestHarness_StartUsesDeviceLayout(t *testing.T) {
	ctx := context.Background()
	app := sim.New(sim.WithDevice(sim.Tablet))
	require.NoError(t, app.Launch(ctx, domain.DefaultLaunchArguments()))

	h := screenwalk.New(app, screenwalk.WithWaitOptions(wait.Options{Timeout: time.Second, Interval: 5 * time.Millisecond}))
	require.NoError(t, h.Start(ctx))
	assert.Equal(t, domain.NewTabScreen, h.Current())

	require.NoError(t, h.Goto(ctx, domain.TabTray))
	els, err := app.Query(ctx, domain.Button(browser.IDAddTabButton))
	require.NoError(t, err)
	assert.Len(t, els, 1)
}

func TestHarness_StartFailsWhenAppIsNotRunning(t *testing.T) {
	h := screenwalk.New(sim.New(), screenwalk.WithWaitOptions(wait.Options{Timeout: 50 * time.Millisecond, Interval: 5 * time.Millisecond}))
	err := h.Start(context.Background())
	assert.ErrorIs(t, err, domain.ErrNotLaunched)
}

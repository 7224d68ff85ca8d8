package uitest_test

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/screenwalk"
	"github.com/aretw0/screenwalk/internal/wait"
	"github.com/aretw0/screenwalk/pkg/adapters/sim"
	"github.com/aretw0/screenwalk/pkg/browser"
	"github.com/aretw0/screenwalk/pkg/domain"
	"github.com/aretw0/screenwalk/pkg/uitest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newState(t *testing.T) *uitest.State {
	ctx := context.Background()
	t.Helper()
	app := sim.New()
	require.NoError(t, app.Launch(ctx, domain.DefaultLaunchArguments()))
	h := screenwalk.New(app, screenwalk.WithWaitOptions(wait.Options{Timeout: 100 * time.Millisecond, Interval: 5 * time.Millisecond}))
	require.NoError(t, h.Start(ctx))
	return uitest.NewState(ctx, t.Name(), h, uitest.WithTestPageBase("http://127.0.0.1:1234/test-fixture/"))
}

func TestState_FatalStopsBody(t *testing.T) {
	s := newState(t)

	reached := false
	s.Run(func(s *uitest.State) {
		s.Log("before")
		s.Fatalf("boom %d", 1)
		reached = true
	})

	assert.False(t, reached)
	assert.True(t, s.Failed())
	assert.Equal(t, []string{"boom 1"}, s.Errors())
	assert.Equal(t, []string{"before"}, s.Logs())
}

func TestState_ErrorContinues(t *testing.T) {
	s := newState(t)

	reached := false
	s.Run(func(s *uitest.State) {
		s.Error("soft")
		reached = true
	})

	assert.True(t, reached)
	assert.True(t, s.Failed())
}

func TestState_RequireFailsCase(t *testing.T) {
	s := newState(t)

	reached := false
	s.Run(func(s *uitest.State) {
		require.Equal(s, 1, 2)
		reached = true
	})

	assert.False(t, reached)
	require.Len(t, s.Errors(), 1)
	assert.Contains(t, s.Errors()[0], "Not equal")
}

func TestState_PanicIsRecorded(t *testing.T) {
	s := newState(t)
	s.Run(func(*uitest.State) { panic("oops") })
	assert.Equal(t, []string{"panic: oops"}, s.Errors())
}

func TestState_WaitTimeoutIsFatal(t *testing.T) {
	s := newState(t)
	s.Run(func(s *uitest.State) {
		s.WaitForExistence(domain.Button("never"))
	})
	require.Len(t, s.Errors(), 1)
	assert.Contains(t, s.Errors()[0], `buttons["never"] did not exist`)
}

func TestState_DriveAndAssert(t *testing.T) {
	s := newState(t)
	s.Run(func(s *uitest.State) {
		s.Goto(domain.HomeSettings)
		s.Tap(domain.TextField(browser.IDHomePageField))
		s.TypeText(domain.TextField(browser.IDHomePageField), "www.mozilla.org")
		s.WaitForValueContains(domain.TextField(browser.IDHomePageField), "mozilla")
		assert.Equal(s, 1, s.Count(domain.Cell(browser.IDTopSitesRows)))
		assert.True(s, s.Exists(domain.Switch(browser.IDPocketStories)))
		s.WaitForExistence(domain.Button(browser.IDSettingsBack), time.Second)
	})
	assert.False(t, s.Failed(), "%v", s.Errors())
}

func TestState_Helpers(t *testing.T) {
	s := newState(t)
	assert.Equal(t, "http://127.0.0.1:1234/test-fixture/test-example.html", s.TestPage("test-example.html"))
	assert.Equal(t, domain.DefaultUserState(), s.UserState())
	assert.False(t, s.IsTablet())
	assert.Equal(t, t.Name(), s.Name())
}

func TestState_TimeoutIsRecorded(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	s := newState(t)
	s = uitest.NewState(ctx, "slow", s.Nav())

	s.Run(func(s *uitest.State) {
		<-s.Context().Done()
	})
	assert.Equal(t, []string{"case timed out"}, s.Errors())
}

package homepage_test

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/screenwalk/internal/wait"
	"github.com/aretw0/screenwalk/pkg/adapters/sim"
	"github.com/aretw0/screenwalk/pkg/domain"
	"github.com/aretw0/screenwalk/pkg/runner"
	"github.com/aretw0/screenwalk/pkg/suites/homepage"
	"github.com/aretw0/screenwalk/pkg/uitest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLaunchArgs(t *testing.T) {
	assert.Equal(t, domain.DefaultLaunchArguments(), homepage.LaunchArgs("Typing"))
	assert.Equal(t,
		append(domain.DefaultLaunchArguments(), "FIREFOX_LOAD_DB_NAMEDtestBookmarksDatabase1000-browser.db"),
		homepage.LaunchArgs("TopSitesCustomNumberOfRows"),
	)
}

func TestRegisteredInDefault(t *testing.T) {
	for _, tc := range homepage.Tests() {
		_, ok := uitest.Default.Lookup(tc.Name)
		assert.True(t, ok, "%s not registered", tc.Name)
	}
}

func TestSuite(t *testing.T) {
	for _, device := range []domain.DeviceInfo{sim.Phone, sim.Tablet} {
		t.Run(string(device.Idiom), func(t *testing.T) {
			reg := uitest.NewRegistry()
			for _, tc := range homepage.Tests() {
				require.NoError(t, reg.Add(tc))
			}

			r := runner.New(sim.New(sim.WithDevice(device)),
				runner.WithRegistry(reg),
				runner.WithWaitOptions(wait.Options{Timeout: 2 * time.Second, Interval: 5 * time.Millisecond}),
				runner.WithCaseTimeout(30*time.Second),
			)
			report, err := r.Run(context.Background())
			require.NoError(t, err)
			require.Len(t, report.Results, 7)

			for _, res := range report.Results {
				assert.Equal(t, domain.CasePassed, res.Status, "%s: %v", res.Name, res.Errors)
			}
		})
	}
}

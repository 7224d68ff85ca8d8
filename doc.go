/*
Package screenwalk is a UI acceptance-test harness for the home page settings
of a mobile browser.

Tests drive the application through a declarative screen graph: named screens,
the transitions between them and named actions hosted on them. The navigator
finds the shortest path to a screen or to the host of an action, replays the
interactions through a driver and checks that the app actually shows the
screen it believes it is on.

# Usage

	app := sim.New(sim.WithDevice(sim.Phone))
	if err := app.Launch(ctx, domain.DefaultLaunchArguments()); err != nil {
		log.Fatal(err)
	}

	h := screenwalk.New(app)
	if err := h.Start(ctx); err != nil {
		log.Fatal(err)
	}

	state := domain.DefaultUserState()
	state.NumTopSitesRows = 3
	if err := h.PerformAction(ctx, domain.SelectTopSitesRows, state); err != nil {
		log.Fatal(err)
	}
*/
package screenwalk

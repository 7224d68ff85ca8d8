/*
Package dsl provides a fluent Go DSL for constructing screen graphs.

Screens and actions come from the closed enumerations in package domain, and
Build validates the whole graph, so a misspelled screen or a dangling edge is
rejected before any test walks it.

Example usage:

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

	graph, err := b.Build()
*/
package dsl

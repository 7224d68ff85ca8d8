package domain

import "testing"

func TestSelectorMatches(t *testing.T) {
	el := Element{Kind: KindCell, Identifier: "TopSitesRows", Label: "Top Sites, Rows: 2"}

	tests := []struct {
		name string
		sel  Selector
		want bool
	}{
		{"By identifier", Cell("TopSitesRows"), true},
		{"By label", Cell("Top Sites, Rows: 2"), true},
		{"Any kind", Any("TopSitesRows"), true},
		{"Empty ID matches kind", Cell(""), true},
		{"Wrong kind", Button("TopSitesRows"), false},
		{"Wrong ID", Cell("History"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.sel.Matches(el); got != tt.want {
				t.Errorf("Matches() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSelectorString(t *testing.T) {
	sel := Cell("TopSite").In(CollectionView("TopSitesCell"))
	want := `cells["TopSite"] in collectionViews["TopSitesCell"]`
	if got := sel.String(); got != want {
		t.Errorf("String() = %s, want %s", got, want)
	}
	if got := Cell("").In(Table("History List")).String(); got != `cells in tables["History List"]` {
		t.Errorf("unexpected String() %s", got)
	}
}

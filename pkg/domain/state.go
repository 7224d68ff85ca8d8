package domain

import "fmt"

// Top sites rows accepted by the home settings picker.
const (
	MinTopSitesRows     = 1
	MaxTopSitesRows     = 4
	DefaultTopSitesRows = 2
)

// UserState is the configuration consulted by actions before they execute.
// It is passed by value into every action invocation; tests start each case
// from DefaultUserState and adjust a copy.
type UserState struct {
	// NumTopSitesRows is the row count picked by SelectTopSitesRows.
	NumTopSitesRows int `json:"num_top_sites_rows" mapstructure:"num_top_sites_rows"`

	// URL is the address typed by LoadURL.
	URL string `json:"url,omitempty" mapstructure:"url"`

	// HomePage is the address typed by SetHomePageURL.
	HomePage string `json:"home_page,omitempty" mapstructure:"home_page"`
}

// DefaultUserState returns the configuration every test case starts from.
func DefaultUserState() UserState {
	return UserState{
		NumTopSitesRows: DefaultTopSitesRows,
	}
}

// Validate checks the fields every action relies on.
func (u UserState) Validate() error {
	if u.NumTopSitesRows < MinTopSitesRows || u.NumTopSitesRows > MaxTopSitesRows {
		return fmt.Errorf("%w: top sites rows %d outside %d..%d",
			ErrInvalidUserState, u.NumTopSitesRows, MinTopSitesRows, MaxTopSitesRows)
	}
	return nil
}

// Package uitest is the scripting surface of acceptance tests: a registry of
// test cases and the State every case body runs against.
//
// State implements the testify TestingT interfaces, so bodies assert with
// require and assert directly:
//
//	func checkDefaults(s *uitest.State) {
//		s.Goto(domain.HomeSettings)
//		require.Equal(s, "Top Sites, Rows: 2", s.Element(rowsCell).Label)
//	}
package uitest

// Package browser holds the screen graph of the browser under test and the
// accessibility identifiers it exposes.
package browser

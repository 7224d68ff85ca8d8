// Package runtime walks a screen graph against a live application through a
// ports.Driver.
package runtime

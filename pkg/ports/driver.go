package ports

import (
	"context"
	"time"

	"github.com/aretw0/screenwalk/pkg/domain"
)

// Driver interacts with the application under test through its accessibility tree.
// Implementations act immediately and never wait; polling is the caller's job.
type Driver interface {
	// Launch (re)starts the application with the given launch arguments.
	Launch(ctx context.Context, args []string) error

	// Terminate stops the application.
	Terminate(ctx context.Context) error

	// Query returns every element currently matching sel, in tree order.
	// An empty result is not an error.
	Query(ctx context.Context, sel domain.Selector) ([]domain.Element, error)

	// Tap taps the first element matching sel.
	// Returns domain.ErrElementNotFound if nothing matches.
	Tap(ctx context.Context, sel domain.Selector) error

	// TypeText focuses the first element matching sel and types text into it.
	// A trailing "\n" submits the field.
	TypeText(ctx context.Context, sel domain.Selector, text string) error

	// Press long-presses the first element matching sel.
	Press(ctx context.Context, sel domain.Selector, d time.Duration) error

	// SetClipboard replaces the device pasteboard contents.
	SetClipboard(ctx context.Context, text string) error

	// SetOrientation rotates the device.
	SetOrientation(ctx context.Context, o domain.Orientation) error

	// Device describes the device the application runs on.
	Device(ctx context.Context) (domain.DeviceInfo, error)

	// DebugDescription dumps the current accessibility tree for failure reports.
	DebugDescription(ctx context.Context) (string, error)
}

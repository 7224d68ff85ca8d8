package ports

import (
	"context"

	"github.com/aretw0/screenwalk/pkg/domain"
)

// Navigator is the navigation surface used by outer adapters (MCP, HTTP).
type Navigator interface {
	Current() domain.Screen
	Goto(ctx context.Context, target domain.Screen) error
	PerformAction(ctx context.Context, action domain.Action, state domain.UserState) error
	OpenURL(ctx context.Context, url string) error
	Graph() *domain.Graph
}
